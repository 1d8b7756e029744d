package gfx

import "github.com/go-gl/mathgl/mgl32"

type UniformKind uint8

const (
	UniformFloat UniformKind = iota
	UniformVec3
	UniformMat4
	UniformSampler
)

func (k UniformKind) String() string {
	switch k {
	case UniformFloat:
		return "float"
	case UniformVec3:
		return "vec3"
	case UniformMat4:
		return "mat4"
	case UniformSampler:
		return "sampler2D"
	}
	return "unknown"
}

// Uniform is one shader parameter value. Only the field matching Kind is set.
type Uniform struct {
	Kind    UniformKind
	Float   float32
	Vec3    mgl32.Vec3
	Mat4    mgl32.Mat4
	Texture Texture
	Filter  Filter
}

// Uniforms maps shader parameter names to values. A set is built for one draw
// call and dropped afterwards: the textures it references are only borrowed.
type Uniforms map[string]Uniform

func (u Uniforms) Float(name string, v float32) Uniforms {
	u[name] = Uniform{Kind: UniformFloat, Float: v}
	return u
}

func (u Uniforms) Vec3(name string, v mgl32.Vec3) Uniforms {
	u[name] = Uniform{Kind: UniformVec3, Vec3: v}
	return u
}

func (u Uniforms) Mat4(name string, m mgl32.Mat4) Uniforms {
	u[name] = Uniform{Kind: UniformMat4, Mat4: m}
	return u
}

func (u Uniforms) Sampler(name string, tex Texture, filter Filter) Uniforms {
	u[name] = Uniform{Kind: UniformSampler, Texture: tex, Filter: filter}
	return u
}

// With returns a copy of u with name bound to v. The receiver is not modified.
func (u Uniforms) With(name string, v Uniform) Uniforms {
	out := make(Uniforms, len(u)+1)
	for k, val := range u {
		out[k] = val
	}
	out[name] = v
	return out
}
