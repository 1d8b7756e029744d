package gfx_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lavalamp/internal/gfx"
	"lavalamp/internal/gfx/gfxtest"
)

func TestUniforms_Builders(t *testing.T) {
	tex := &gfxtest.Surface{W: 4, H: 4}
	proj := mgl32.Ortho2D(0, 800, 600, 0)

	u := gfx.Uniforms{}.
		Float("threshold", 0.4).
		Vec3("tint", mgl32.Vec3{1, 0.5, 0.25}).
		Mat4("uProjection", proj).
		Sampler("uTex", tex, gfx.FilterLinear)

	require.Len(t, u, 4)
	assert.Equal(t, gfx.Uniform{Kind: gfx.UniformFloat, Float: 0.4}, u["threshold"])
	assert.Equal(t, gfx.UniformVec3, u["tint"].Kind)
	assert.Equal(t, mgl32.Vec3{1, 0.5, 0.25}, u["tint"].Vec3)
	assert.Equal(t, proj, u["uProjection"].Mat4)
	assert.Same(t, tex, u["uTex"].Texture)
	assert.Equal(t, gfx.FilterLinear, u["uTex"].Filter)
}

func TestUniforms_WithCopies(t *testing.T) {
	base := gfx.Uniforms{}.Float("a", 1)
	merged := base.With("b", gfx.Uniform{Kind: gfx.UniformFloat, Float: 2})

	assert.Len(t, base, 1)
	assert.Len(t, merged, 2)

	// Overrides win without touching the original.
	over := base.With("a", gfx.Uniform{Kind: gfx.UniformFloat, Float: 9})
	assert.Equal(t, float32(9), over["a"].Float)
	assert.Equal(t, float32(1), base["a"].Float)

	var empty gfx.Uniforms
	got := empty.With("x", gfx.Uniform{Kind: gfx.UniformVec3})
	assert.Len(t, got, 1)
}

func TestUniformKind_String(t *testing.T) {
	assert.Equal(t, "float", gfx.UniformFloat.String())
	assert.Equal(t, "vec3", gfx.UniformVec3.String())
	assert.Equal(t, "mat4", gfx.UniformMat4.String())
	assert.Equal(t, "sampler2D", gfx.UniformSampler.String())
	assert.Equal(t, "unknown", gfx.UniformKind(42).String())
}

func TestLogger_DefaultSilent(t *testing.T) {
	l := gfx.Logger()
	require.NotNil(t, l)
	assert.False(t, l.Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}

func TestSetLogger(t *testing.T) {
	orig := gfx.Logger()
	t.Cleanup(func() { gfx.SetLogger(orig) })

	var buf bytes.Buffer
	gfx.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	dev := &gfxtest.Device{}
	sb, err := gfx.NewShapeBuffer(dev)
	require.NoError(t, err)
	require.NoError(t, sb.Draw(gfx.Screen{}, rects(10), 1, gfx.Uniforms{}, gfx.BlendAlpha))
	assert.Contains(t, buf.String(), "vertex store reallocated")

	gfx.SetLogger(nil)
	assert.False(t, gfx.Logger().Enabled(context.Background(), slog.LevelError))
}
