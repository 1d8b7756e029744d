package shape

import "github.com/go-gl/mathgl/mgl32"

// Vertex is one corner of a textured triangle.
type Vertex struct {
	Pos mgl32.Vec2
	UV  mgl32.Vec2
}

// VertexSize is the byte size of a Vertex as laid out in a GL vertex buffer.
const VertexSize = 4 * 4

// Shape is an append-only list of textured quads, two triangles (6 vertices) per quad.
// Insertion order is draw order.
type Shape struct {
	Vertices []Vertex
}

func New() *Shape {
	return &Shape{}
}

// Clear empties the shape but keeps the backing array for the next frame.
func (s *Shape) Clear() {
	s.Vertices = s.Vertices[:0]
}

func (s *Shape) Len() int { return len(s.Vertices) }

func (s *Shape) AddVert(v Vertex) {
	s.Vertices = append(s.Vertices, v)
}

// AddUVRect appends a rect at pos with the given size, sampling the texture
// sub-region uv = (u, v, w, h). Texture v=0 is the visual top, so v is flipped
// before the corners are expanded. Negative sizes are not rejected: they
// mirror the rect, and a zero size makes it degenerate.
func (s *Shape) AddUVRect(pos, size mgl32.Vec2, uv mgl32.Vec4) {
	u0, v0 := uv[0], 1-uv[1]
	du, dv := uv[2], -uv[3]

	x0, y0 := pos[0], pos[1]
	x1, y1 := pos[0]+size[0], pos[1]+size[1]

	s.Vertices = append(s.Vertices,
		Vertex{Pos: mgl32.Vec2{x0, y0}, UV: mgl32.Vec2{u0, v0}},
		Vertex{Pos: mgl32.Vec2{x1, y0}, UV: mgl32.Vec2{u0 + du, v0}},
		Vertex{Pos: mgl32.Vec2{x0, y1}, UV: mgl32.Vec2{u0, v0 + dv}},
		Vertex{Pos: mgl32.Vec2{x1, y0}, UV: mgl32.Vec2{u0 + du, v0}},
		Vertex{Pos: mgl32.Vec2{x1, y1}, UV: mgl32.Vec2{u0 + du, v0 + dv}},
		Vertex{Pos: mgl32.Vec2{x0, y1}, UV: mgl32.Vec2{u0, v0 + dv}},
	)
}

// AddRect appends a rect mapped to the whole texture.
func (s *Shape) AddRect(pos, size mgl32.Vec2) {
	s.AddUVRect(pos, size, mgl32.Vec4{0, 0, 1, 1})
}
