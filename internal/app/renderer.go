package app

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"lavalamp/internal/config"
	"lavalamp/internal/gfx"
	"lavalamp/internal/lamp"
	"lavalamp/internal/shape"
)

// BlobTextureSize is the edge length of the generated blob sprite.
const BlobTextureSize = 64

// blobClear is transparent white so filtered blob edges fade to white, not black.
var blobClear = mgl32.Vec4{1, 1, 1, 0}

type Renderer struct {
	dev gfx.Device

	blobTex       gfx.Texture
	spriteProg    gfx.Program
	thresholdProg gfx.Program
	tintProg      gfx.Program

	sb    *gfx.ShapeBuffer
	fx    *gfx.FxBuffer
	shape *shape.Shape

	threshold  float32
	smoothness float32
	tint       mgl32.Vec3
	background mgl32.Vec4
}

// NewRenderer builds the sprite, programs and buffers; fx surfaces start at
// width x height.
func NewRenderer(dev gfx.Device, width, height int, opts config.Options) (*Renderer, error) {
	bg := opts.Background.Vec3()
	r := &Renderer{
		dev:        dev,
		shape:      shape.New(),
		threshold:  float32(opts.Threshold),
		smoothness: float32(opts.Smoothness),
		tint:       opts.Foreground.Vec3(),
		background: bg.Vec4(1),
	}
	if err := r.setup(width, height); err != nil {
		r.Destroy()
		return nil, err
	}
	return r, nil
}

func (r *Renderer) setup(width, height int) error {
	var err error
	r.blobTex, err = r.dev.NewTexture(gfx.GaussianBlob(BlobTextureSize), gfx.FilterLinear)
	if err != nil {
		return fmt.Errorf("blob sprite: %w", err)
	}
	if r.spriteProg, err = r.dev.NewProgram(spriteVertSrc, spriteFragSrc); err != nil {
		return fmt.Errorf("sprite program: %w", err)
	}
	if r.thresholdProg, err = r.dev.NewProgram(effectVertSrc, alphaThresholdFragSrc); err != nil {
		return fmt.Errorf("alpha threshold program: %w", err)
	}
	if r.tintProg, err = r.dev.NewProgram(effectVertSrc, tintFragSrc); err != nil {
		return fmt.Errorf("tint program: %w", err)
	}
	if r.sb, err = gfx.NewShapeBuffer(r.dev); err != nil {
		return err
	}
	if r.fx, err = gfx.NewFxBuffer(r.dev, width, height); err != nil {
		return err
	}
	return nil
}

// Size is the size of the effect surfaces, which is the simulation area.
func (r *Renderer) Size() (int, int) { return r.fx.Size() }

func (r *Renderer) Resize(width, height int) error {
	return r.fx.Resize(width, height)
}

func screenProjection(width, height int) mgl32.Mat4 {
	return mgl32.Ortho2D(0, float32(width), float32(height), 0)
}

// DrawFrame renders the lamp step ticks past its current state through the
// threshold and tint passes and composites the result onto screen.
func (r *Renderer) DrawFrame(l *lamp.LavaLamp, step float32, screen gfx.Target) error {
	err := r.fx.DrawTo(func(s gfx.Surface) error {
		if err := r.dev.Clear(s, blobClear); err != nil {
			return err
		}
		r.shape.Clear()
		l.AddToShape(r.shape, step)

		w, h := s.Size()
		u := gfx.Uniforms{}.
			Mat4(uniformProjection, screenProjection(w, h)).
			Sampler(uniformTexture, r.blobTex, gfx.FilterLinear)
		return r.sb.Draw(s, r.shape, r.spriteProg, u, gfx.BlendAlpha)
	})
	if err != nil {
		return fmt.Errorf("draw blobs: %w", err)
	}

	threshold := gfx.Uniforms{}.
		Float(uniformThreshold, r.threshold).
		Float(uniformSmoothness, r.smoothness)
	if err := r.fx.Effect(r.sb, r.thresholdProg, threshold, gfx.BlendPremultiplied); err != nil {
		return fmt.Errorf("alpha threshold: %w", err)
	}
	tint := gfx.Uniforms{}.Vec3(uniformTint, r.tint)
	if err := r.fx.Effect(r.sb, r.tintProg, tint, gfx.BlendPremultiplied); err != nil {
		return fmt.Errorf("tint: %w", err)
	}

	if err := r.dev.Clear(screen, r.background); err != nil {
		return fmt.Errorf("clear screen: %w", err)
	}
	w, h := screen.Size()
	r.shape.Clear()
	r.shape.AddRect(mgl32.Vec2{0, 0}, mgl32.Vec2{float32(w), float32(h)})
	u := gfx.Uniforms{}.
		Mat4(uniformProjection, screenProjection(w, h)).
		Sampler(uniformTexture, r.fx.Front(), gfx.FilterLinear)
	if err := r.sb.Draw(screen, r.shape, r.spriteProg, u, gfx.BlendAlpha); err != nil {
		return fmt.Errorf("blit: %w", err)
	}
	return nil
}

func (r *Renderer) Destroy() {
	if r.fx != nil {
		r.fx.Release()
	}
	if r.sb != nil {
		r.sb.Release()
	}
	if r.blobTex != nil {
		r.blobTex.Release()
	}
}
