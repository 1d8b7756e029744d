package gfx

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"lavalamp/internal/shape"
)

// SourceTextureUniform is the sampler name an effect program reads its input from.
const SourceTextureUniform = "source_texture"

// FxBuffer is a ping-pong pair of off-screen surfaces. Drawing goes into the
// front surface; each Effect renders front into back and then swaps them.
type FxBuffer struct {
	dev         Device
	front, back Surface
	width       int
	height      int
	fullscreen  *shape.Shape
	transparent mgl32.Vec4
}

func NewFxBuffer(dev Device, width, height int) (*FxBuffer, error) {
	fx := &FxBuffer{
		dev:        dev,
		fullscreen: shape.New(),
	}
	// Effects draw in normalized device coordinates: top-left (-1,1), bottom-right (1,-1).
	fx.fullscreen.AddRect(mgl32.Vec2{-1, 1}, mgl32.Vec2{2, -2})
	if err := fx.Resize(width, height); err != nil {
		return nil, err
	}
	return fx, nil
}

// Resize reallocates both surfaces at the new size, dropping their contents.
// The old pair is only released once the new one exists.
func (fx *FxBuffer) Resize(width, height int) error {
	front, err := fx.dev.NewSurface(width, height)
	if err != nil {
		return fmt.Errorf("fx buffer %dx%d: %w", width, height, err)
	}
	back, err := fx.dev.NewSurface(width, height)
	if err != nil {
		front.Release()
		return fmt.Errorf("fx buffer %dx%d: %w", width, height, err)
	}
	fx.Release()
	fx.front, fx.back = front, back
	fx.width, fx.height = width, height
	Logger().Debug("fx surfaces allocated", "width", width, "height", height)
	return nil
}

func (fx *FxBuffer) Size() (int, int) { return fx.width, fx.height }

// Front returns the surface holding the latest result.
func (fx *FxBuffer) Front() Surface { return fx.front }

// DrawTo gives fn the front surface for the duration of the call.
func (fx *FxBuffer) DrawTo(fn func(Surface) error) error {
	return fn(fx.front)
}

// Effect runs one full-screen pass of prog over the front surface, writing
// into back, then swaps the pair. u is merged with source_texture = front and
// left untouched. On error the pair is not swapped.
func (fx *FxBuffer) Effect(sb *ShapeBuffer, prog Program, u Uniforms, blend Blend) error {
	if err := fx.dev.Clear(fx.back, fx.transparent); err != nil {
		return fmt.Errorf("effect: %w", err)
	}
	merged := u.With(SourceTextureUniform, Uniform{
		Kind:    UniformSampler,
		Texture: fx.front,
		Filter:  FilterNearest,
	})
	if err := sb.Draw(fx.back, fx.fullscreen, prog, merged, blend); err != nil {
		return fmt.Errorf("effect: %w", err)
	}
	fx.front, fx.back = fx.back, fx.front
	return nil
}

func (fx *FxBuffer) Release() {
	if fx.front != nil {
		fx.front.Release()
		fx.front = nil
	}
	if fx.back != nil {
		fx.back.Release()
		fx.back = nil
	}
}
