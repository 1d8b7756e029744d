// Package gfxtest provides a recording gfx.Device for tests that need no GPU.
package gfxtest

import (
	"errors"
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"lavalamp/internal/gfx"
	"lavalamp/internal/shape"
)

// Device records every call instead of talking to a GPU. Set the Fail*
// fields to make the next matching calls fail.
type Device struct {
	Stores   []*Store
	Surfaces []*Surface
	Textures []*Surface
	Programs []Program
	Clears   []ClearCall
	Draws    []DrawCall

	FailStore     bool
	FailSurfaceAt int // fail the n-th NewSurface call (1-based); 0 never fails
	FailDraw      bool
	FailClear     bool

	surfaceCalls int
}

type Program struct {
	ID           gfx.Program
	Vertex, Frag string
}

type ClearCall struct {
	Target gfx.Target
	Color  mgl32.Vec4
}

type DrawCall struct {
	Target   gfx.Target
	Store    *Store
	Count    int
	Program  gfx.Program
	Uniforms gfx.Uniforms
	Blend    gfx.Blend
	// Vertices is a copy of the first Count vertices at draw time.
	Vertices []shape.Vertex
}

type Store struct {
	Capacity int
	Data     []shape.Vertex
	Released bool
}

func (s *Store) Cap() int { return s.Capacity }

func (s *Store) Write(v []shape.Vertex) error {
	if len(v) > s.Capacity {
		return gfx.ErrDraw
	}
	s.Data = append(s.Data[:0], v...)
	return nil
}

func (s *Store) Release() { s.Released = true }

// Surface doubles as a plain texture.
type Surface struct {
	W, H     int
	Released bool
}

func (s *Surface) Size() (int, int) { return s.W, s.H }
func (s *Surface) Release()         { s.Released = true }

func (d *Device) NewVertexStore(capacity int) (gfx.VertexStore, error) {
	if d.FailStore {
		return nil, errors.Join(gfx.ErrAllocation, errors.New("out of memory"))
	}
	s := &Store{Capacity: capacity}
	d.Stores = append(d.Stores, s)
	return s, nil
}

func (d *Device) NewSurface(width, height int) (gfx.Surface, error) {
	d.surfaceCalls++
	if d.FailSurfaceAt == d.surfaceCalls {
		return nil, gfx.ErrAllocation
	}
	s := &Surface{W: width, H: height}
	d.Surfaces = append(d.Surfaces, s)
	return s, nil
}

func (d *Device) NewTexture(img *image.NRGBA, _ gfx.Filter) (gfx.Texture, error) {
	b := img.Bounds()
	t := &Surface{W: b.Dx(), H: b.Dy()}
	d.Textures = append(d.Textures, t)
	return t, nil
}

func (d *Device) NewProgram(vertSrc, fragSrc string) (gfx.Program, error) {
	p := Program{ID: gfx.Program(len(d.Programs) + 1), Vertex: vertSrc, Frag: fragSrc}
	d.Programs = append(d.Programs, p)
	return p.ID, nil
}

func (d *Device) Clear(t gfx.Target, c mgl32.Vec4) error {
	if d.FailClear {
		return gfx.ErrDraw
	}
	d.Clears = append(d.Clears, ClearCall{Target: t, Color: c})
	return nil
}

func (d *Device) Draw(t gfx.Target, vs gfx.VertexStore, count int, prog gfx.Program, u gfx.Uniforms, blend gfx.Blend) error {
	if d.FailDraw {
		return gfx.ErrDraw
	}
	store := vs.(*Store)
	d.Draws = append(d.Draws, DrawCall{
		Target:   t,
		Store:    store,
		Count:    count,
		Program:  prog,
		Uniforms: u,
		Blend:    blend,
		Vertices: append([]shape.Vertex(nil), store.Data[:count]...),
	})
	return nil
}

// LastDraw panics when nothing was drawn.
func (d *Device) LastDraw() DrawCall {
	return d.Draws[len(d.Draws)-1]
}
