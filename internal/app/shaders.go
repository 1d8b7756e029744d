package app

// Uniform names shared by the programs below and the renderer.
const (
	uniformProjection = "uProjection"
	uniformTexture    = "uTex"
	uniformThreshold  = "threshold"
	uniformSmoothness = "smoothness"
	uniformTint       = "tint"
)

// Sprite vertex shader: screen-space pixels through an orthographic projection.
const spriteVertSrc = `#version 410 core

layout(location = 0) in vec2 aPos;
layout(location = 1) in vec2 aUV;

uniform mat4 uProjection;

out vec2 vUV;

void main() {
    gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
    vUV = aUV;
}
` + "\x00"

const spriteFragSrc = `#version 410 core

uniform sampler2D uTex;

in vec2 vUV;
out vec4 FragColor;

void main() {
    FragColor = texture(uTex, vUV);
}
` + "\x00"

// Effect vertex shader: the quad is already in normalized device coordinates.
const effectVertSrc = `#version 410 core

layout(location = 0) in vec2 aPos;
layout(location = 1) in vec2 aUV;

out vec2 vUV;

void main() {
    gl_Position = vec4(aPos, 0.0, 1.0);
    vUV = aUV;
}
` + "\x00"

// Alpha threshold: squashes the soft overlap of blobs into a hard-ish edge.
const alphaThresholdFragSrc = `#version 410 core

uniform float threshold;
uniform float smoothness;
uniform sampler2D source_texture;

in vec2 vUV;
out vec4 FragColor;

void main() {
    vec4 col = texture(source_texture, vUV);
    col.a = smoothstep(threshold - smoothness, threshold + smoothness, col.a);
    FragColor = col;
}
` + "\x00"

const tintFragSrc = `#version 410 core

uniform vec3 tint;
uniform sampler2D source_texture;

in vec2 vUV;
out vec4 FragColor;

void main() {
    FragColor = texture(source_texture, vUV) * vec4(tint, 1.0);
}
` + "\x00"
