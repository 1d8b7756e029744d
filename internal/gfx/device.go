package gfx

import (
	"errors"
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"lavalamp/internal/shape"
)

var (
	// ErrAllocation reports that the device could not create or resize a resource.
	ErrAllocation = errors.New("gfx: resource allocation failed")
	// ErrDraw reports a failed draw call (bad program, uniform or target).
	ErrDraw = errors.New("gfx: draw failed")
)

// Program is a linked shader program handle.
type Program uint32

// Target is anything a draw call can render into.
type Target interface {
	Size() (width, height int)
}

// Screen is the window's default framebuffer.
type Screen struct {
	Width, Height int
}

func (s Screen) Size() (int, int) { return s.Width, s.Height }

// Texture is a sampled image owned by a Device.
type Texture interface {
	Size() (width, height int)
	Release()
}

// Surface is an off-screen colour target that can also be sampled as a texture.
type Surface interface {
	Target
	Texture
}

// VertexStore is device-side vertex memory with a fixed capacity.
type VertexStore interface {
	Cap() int
	// Write replaces the store's contents from the start; len(v) must not exceed Cap.
	Write(v []shape.Vertex) error
	Release()
}

// Device is the graphics context every component receives explicitly.
// All calls happen on the render thread.
type Device interface {
	NewVertexStore(capacity int) (VertexStore, error)
	NewSurface(width, height int) (Surface, error)
	NewTexture(img *image.NRGBA, filter Filter) (Texture, error)
	NewProgram(vertSrc, fragSrc string) (Program, error)
	Clear(t Target, color mgl32.Vec4) error
	// Draw renders count vertices from vs as a triangle list.
	Draw(t Target, vs VertexStore, count int, prog Program, u Uniforms, blend Blend) error
}

type Filter uint8

const (
	FilterNearest Filter = iota
	FilterLinear
)

type BlendFactor uint8

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
)

// Blend is additive blending src*Src + dst*Dst, applied to colour and alpha alike.
type Blend struct {
	Src, Dst BlendFactor
}

var (
	// BlendAlpha is straight alpha compositing.
	BlendAlpha = Blend{Src: BlendSrcAlpha, Dst: BlendOneMinusSrcAlpha}
	// BlendPremultiplied composites a source whose colour already carries its alpha.
	BlendPremultiplied = Blend{Src: BlendOne, Dst: BlendOneMinusSrcAlpha}
)
