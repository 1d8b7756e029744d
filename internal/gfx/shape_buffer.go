package gfx

import (
	"fmt"

	"lavalamp/internal/shape"
)

// DefaultShapeBufferSize is the vertex capacity a ShapeBuffer starts with.
const DefaultShapeBufferSize = 32

// ShapeBuffer uploads shapes into a grow-only device vertex store and draws them.
type ShapeBuffer struct {
	dev    Device
	store  VertexStore
	size   int
	padded []shape.Vertex
}

func NewShapeBuffer(dev Device) (*ShapeBuffer, error) {
	store, err := dev.NewVertexStore(DefaultShapeBufferSize)
	if err != nil {
		return nil, fmt.Errorf("shape buffer: %w", err)
	}
	return &ShapeBuffer{
		dev:   dev,
		store: store,
		size:  DefaultShapeBufferSize,
	}, nil
}

// Cap returns the current vertex capacity of the device store.
func (sb *ShapeBuffer) Cap() int { return sb.size }

func (sb *ShapeBuffer) reallocate(size int) error {
	store, err := sb.dev.NewVertexStore(size)
	if err != nil {
		return fmt.Errorf("shape buffer grow to %d: %w", size, err)
	}
	if sb.store != nil {
		sb.store.Release()
	}
	Logger().Debug("vertex store reallocated", "from", sb.size, "to", size)
	sb.store = store
	sb.size = size
	return nil
}

func (sb *ShapeBuffer) update(s *shape.Shape) error {
	if s.Len() > sb.size {
		if err := sb.reallocate(s.Len()); err != nil {
			return err
		}
	}
	// Pad with zero vertices so geometry left over from a bigger frame never renders.
	sb.padded = append(sb.padded[:0], s.Vertices...)
	for len(sb.padded) < sb.size {
		sb.padded = append(sb.padded, shape.Vertex{})
	}
	return sb.store.Write(sb.padded)
}

// Draw uploads s and renders its vertices into target as a triangle list.
func (sb *ShapeBuffer) Draw(target Target, s *shape.Shape, prog Program, u Uniforms, blend Blend) error {
	if err := sb.update(s); err != nil {
		return err
	}
	if err := sb.dev.Draw(target, sb.store, s.Len(), prog, u, blend); err != nil {
		return fmt.Errorf("shape buffer: %w", err)
	}
	return nil
}

func (sb *ShapeBuffer) Release() {
	if sb.store != nil {
		sb.store.Release()
		sb.store = nil
	}
}
