package app

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lavalamp/internal/config"
	"lavalamp/internal/gfx"
	"lavalamp/internal/gfx/gfxtest"
	"lavalamp/internal/lamp"
)

func newTestRenderer(t *testing.T) (*gfxtest.Device, *Renderer) {
	t.Helper()
	dev := &gfxtest.Device{}
	r, err := NewRenderer(dev, 320, 240, config.Default())
	require.NoError(t, err)
	return dev, r
}

func TestNewRenderer_Resources(t *testing.T) {
	dev, r := newTestRenderer(t)

	require.Len(t, dev.Textures, 1)
	assert.Equal(t, BlobTextureSize, dev.Textures[0].W)
	assert.Equal(t, BlobTextureSize, dev.Textures[0].H)

	require.Len(t, dev.Programs, 3)
	assert.Equal(t, spriteVertSrc, dev.Programs[0].Vertex)
	assert.Equal(t, alphaThresholdFragSrc, dev.Programs[1].Frag)
	assert.Equal(t, tintFragSrc, dev.Programs[2].Frag)

	assert.Len(t, dev.Stores, 1)
	assert.Len(t, dev.Surfaces, 2)
	w, h := r.Size()
	assert.Equal(t, 320, w)
	assert.Equal(t, 240, h)
}

func TestNewRenderer_FailureReleasesResources(t *testing.T) {
	dev := &gfxtest.Device{FailSurfaceAt: 2}
	_, err := NewRenderer(dev, 320, 240, config.Default())
	require.ErrorIs(t, err, gfx.ErrAllocation)

	assert.True(t, dev.Textures[0].Released)
	assert.True(t, dev.Stores[0].Released)
	assert.True(t, dev.Surfaces[0].Released)
}

func TestDrawFrame_PassOrder(t *testing.T) {
	dev, r := newTestRenderer(t)
	opts := config.Default()
	a, b := dev.Surfaces[0], dev.Surfaces[1]
	screen := gfx.Screen{Width: 320, Height: 240}

	l := lamp.New(lampConfig(opts), 1)
	l.Add(lamp.Blob{Pos: mgl32.Vec2{100, 100}, Vel: mgl32.Vec2{0, -2}, Radius: 10})

	require.NoError(t, r.DrawFrame(l, 0.5, screen))

	require.Len(t, dev.Clears, 4)
	assert.Same(t, a, dev.Clears[0].Target)
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 0}, dev.Clears[0].Color)
	assert.Same(t, b, dev.Clears[1].Target)
	assert.Same(t, a, dev.Clears[2].Target)
	assert.Equal(t, screen, dev.Clears[3].Target)
	assert.Equal(t, opts.Background.Vec3().Vec4(1), dev.Clears[3].Color)

	require.Len(t, dev.Draws, 4)

	blobs := dev.Draws[0]
	assert.Same(t, a, blobs.Target)
	assert.Equal(t, gfx.Program(1), blobs.Program)
	assert.Equal(t, gfx.BlendAlpha, blobs.Blend)
	assert.Equal(t, mgl32.Ortho2D(0, 320, 240, 0), blobs.Uniforms[uniformProjection].Mat4)
	assert.Same(t, dev.Textures[0], blobs.Uniforms[uniformTexture].Texture)
	assert.Equal(t, gfx.FilterLinear, blobs.Uniforms[uniformTexture].Filter)
	require.Equal(t, 6, blobs.Count)
	// Interpolated half a step: y = 100 - 2*0.5, minus the radius.
	assert.Equal(t, mgl32.Vec2{90, 89}, blobs.Vertices[0].Pos)

	threshold := dev.Draws[1]
	assert.Same(t, b, threshold.Target)
	assert.Equal(t, gfx.Program(2), threshold.Program)
	assert.Equal(t, gfx.BlendPremultiplied, threshold.Blend)
	assert.Same(t, a, threshold.Uniforms[gfx.SourceTextureUniform].Texture)
	assert.InDelta(t, opts.Threshold, threshold.Uniforms[uniformThreshold].Float, 1e-6)
	assert.InDelta(t, opts.Smoothness, threshold.Uniforms[uniformSmoothness].Float, 1e-6)

	tint := dev.Draws[2]
	assert.Same(t, a, tint.Target)
	assert.Equal(t, gfx.Program(3), tint.Program)
	assert.Same(t, b, tint.Uniforms[gfx.SourceTextureUniform].Texture)
	assert.Equal(t, opts.Foreground.Vec3(), tint.Uniforms[uniformTint].Vec3)

	blit := dev.Draws[3]
	assert.Equal(t, screen, blit.Target)
	assert.Equal(t, gfx.Program(1), blit.Program)
	assert.Equal(t, gfx.BlendAlpha, blit.Blend)
	assert.Same(t, a, blit.Uniforms[uniformTexture].Texture)
	require.Equal(t, 6, blit.Count)
	assert.Equal(t, mgl32.Vec2{0, 0}, blit.Vertices[0].Pos)
	assert.Equal(t, mgl32.Vec2{320, 240}, blit.Vertices[4].Pos)

	// Drawing does not advance the simulation.
	assert.Equal(t, mgl32.Vec2{100, 100}, l.Blobs()[0].Pos)
}

func TestDrawFrame_EmptyLamp(t *testing.T) {
	dev, r := newTestRenderer(t)
	l := lamp.New(lampConfig(config.Default()), 1)

	require.NoError(t, r.DrawFrame(l, 0, gfx.Screen{Width: 320, Height: 240}))
	assert.Equal(t, 0, dev.Draws[0].Count)
	assert.Len(t, dev.Draws, 4)
}

func TestDrawFrame_DrawError(t *testing.T) {
	dev, r := newTestRenderer(t)
	l := lamp.New(lampConfig(config.Default()), 1)

	dev.FailDraw = true
	err := r.DrawFrame(l, 0, gfx.Screen{Width: 320, Height: 240})
	require.ErrorIs(t, err, gfx.ErrDraw)
	assert.Contains(t, err.Error(), "draw blobs")
}

func TestRenderer_ResizeThenDraw(t *testing.T) {
	dev, r := newTestRenderer(t)
	l := lamp.New(lampConfig(config.Default()), 1)

	require.NoError(t, r.Resize(640, 480))
	w, h := r.Size()
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)

	require.NoError(t, r.DrawFrame(l, 0, gfx.Screen{Width: 640, Height: 480}))
	assert.Same(t, dev.Surfaces[2], dev.Draws[0].Target)
	assert.Equal(t, mgl32.Ortho2D(0, 640, 480, 0), dev.Draws[0].Uniforms[uniformProjection].Mat4)
}

func TestRenderer_Destroy(t *testing.T) {
	dev, r := newTestRenderer(t)
	r.Destroy()

	assert.True(t, dev.Textures[0].Released)
	assert.True(t, dev.Stores[0].Released)
	assert.True(t, dev.Surfaces[0].Released)
	assert.True(t, dev.Surfaces[1].Released)
}
