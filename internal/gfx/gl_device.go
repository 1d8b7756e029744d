package gfx

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"lavalamp/internal/shape"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// glError returns a non-nil error when the GL error flag is set, draining it.
func glError(kind error, op string) error {
	code := gl.GetError()
	if code == gl.NO_ERROR {
		return nil
	}
	for gl.GetError() != gl.NO_ERROR {
	}
	return fmt.Errorf("%w: %s: gl error 0x%04x", kind, op, code)
}

// GLDevice implements Device on an OpenGL 4.1 core context. It must be created
// and used on the thread that owns the current context.
type GLDevice struct {
	vao       uint32
	locations map[Program]map[string]int32
	programs  []Program
}

// NewGLDevice sets up the shared vertex array. gl.Init must have succeeded.
func NewGLDevice() (*GLDevice, error) {
	d := &GLDevice{locations: make(map[Program]map[string]int32)}
	gl.GenVertexArrays(1, &d.vao)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	if err := glError(ErrAllocation, "vertex array"); err != nil {
		return nil, err
	}
	Logger().Info("gl device ready",
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
		"version", gl.GoStr(gl.GetString(gl.VERSION)))
	return d, nil
}

func (d *GLDevice) Destroy() {
	for _, p := range d.programs {
		gl.DeleteProgram(uint32(p))
	}
	d.programs = nil
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
}

type glVertexStore struct {
	id  uint32
	cap int
}

func (s *glVertexStore) Cap() int { return s.cap }

func (s *glVertexStore) Write(v []shape.Vertex) error {
	if len(v) > s.cap {
		return fmt.Errorf("%w: write %d vertices into store of %d", ErrDraw, len(v), s.cap)
	}
	if len(v) == 0 {
		return nil
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, s.id)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(v)*shape.VertexSize, unsafe.Pointer(&v[0]))
	return glError(ErrDraw, "vertex upload")
}

func (s *glVertexStore) Release() {
	if s.id != 0 {
		gl.DeleteBuffers(1, &s.id)
		s.id = 0
	}
}

func (d *GLDevice) NewVertexStore(capacity int) (VertexStore, error) {
	s := &glVertexStore{cap: capacity}
	gl.GenBuffers(1, &s.id)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.id)
	gl.BufferData(gl.ARRAY_BUFFER, capacity*shape.VertexSize, nil, gl.DYNAMIC_DRAW)
	if err := glError(ErrAllocation, fmt.Sprintf("vertex store of %d", capacity)); err != nil {
		s.Release()
		return nil, err
	}
	return s, nil
}

type glTexture struct {
	id     uint32
	width  int
	height int
}

func (t *glTexture) Size() (int, int) { return t.width, t.height }

func (t *glTexture) Release() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

func (d *GLDevice) NewTexture(img *image.NRGBA, filter Filter) (Texture, error) {
	b := img.Bounds()
	t := &glTexture{width: b.Dx(), height: b.Dy()}
	if t.width <= 0 || t.height <= 0 {
		return nil, fmt.Errorf("%w: texture size %dx%d", ErrAllocation, t.width, t.height)
	}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	setFilter(filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(
		gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(t.width), int32(t.height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix),
	)
	if err := glError(ErrAllocation, "texture upload"); err != nil {
		t.Release()
		return nil, err
	}
	return t, nil
}

type glSurface struct {
	glTexture
	fbo uint32
}

func (s *glSurface) Release() {
	if s.fbo != 0 {
		gl.DeleteFramebuffers(1, &s.fbo)
		s.fbo = 0
	}
	s.glTexture.Release()
}

func (d *GLDevice) NewSurface(width, height int) (Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: surface size %dx%d", ErrAllocation, width, height)
	}
	s := &glSurface{glTexture: glTexture{width: width, height: height}}
	gl.GenTextures(1, &s.id)
	gl.BindTexture(gl.TEXTURE_2D, s.id)
	setFilter(FilterNearest)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	gl.GenFramebuffers(1, &s.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, s.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, s.id, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		s.Release()
		return nil, fmt.Errorf("%w: framebuffer incomplete (0x%04x)", ErrAllocation, status)
	}
	if err := glError(ErrAllocation, "surface"); err != nil {
		s.Release()
		return nil, err
	}

	// Fresh storage is undefined; start transparent.
	gl.BindFramebuffer(gl.FRAMEBUFFER, s.fbo)
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return s, nil
}

func (d *GLDevice) NewProgram(vertSrc, fragSrc string) (Program, error) {
	id, err := linkProgram(vertSrc, fragSrc)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	p := Program(id)
	d.programs = append(d.programs, p)
	d.locations[p] = make(map[string]int32)
	return p, nil
}

func setFilter(f Filter) {
	mode := int32(gl.NEAREST)
	if f == FilterLinear {
		mode = gl.LINEAR
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, mode)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, mode)
}

func (d *GLDevice) bindTarget(t Target) error {
	switch tt := t.(type) {
	case Screen:
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	case *glSurface:
		if tt.fbo == 0 {
			return fmt.Errorf("%w: surface released", ErrDraw)
		}
		gl.BindFramebuffer(gl.FRAMEBUFFER, tt.fbo)
	default:
		return fmt.Errorf("%w: target %T not owned by gl device", ErrDraw, t)
	}
	w, h := t.Size()
	gl.Viewport(0, 0, int32(w), int32(h))
	return nil
}

func textureID(t Texture) (uint32, bool) {
	switch tt := t.(type) {
	case *glTexture:
		return tt.id, tt.id != 0
	case *glSurface:
		return tt.id, tt.id != 0
	}
	return 0, false
}

func (d *GLDevice) location(prog Program, name string) int32 {
	locs := d.locations[prog]
	if locs == nil {
		locs = make(map[string]int32)
		d.locations[prog] = locs
	}
	loc, ok := locs[name]
	if !ok {
		loc = gl.GetUniformLocation(uint32(prog), gl.Str(name+"\x00"))
		locs[name] = loc
	}
	return loc
}

func (d *GLDevice) bindUniforms(prog Program, u Uniforms) error {
	var unit uint32
	for name, v := range u {
		loc := d.location(prog, name)
		if loc < 0 {
			return fmt.Errorf("%w: uniform %q is not active in program %d", ErrDraw, name, prog)
		}
		switch v.Kind {
		case UniformFloat:
			gl.Uniform1f(loc, v.Float)
		case UniformVec3:
			gl.Uniform3f(loc, v.Vec3[0], v.Vec3[1], v.Vec3[2])
		case UniformMat4:
			gl.UniformMatrix4fv(loc, 1, false, &v.Mat4[0])
		case UniformSampler:
			id, ok := textureID(v.Texture)
			if !ok {
				return fmt.Errorf("%w: uniform %q: texture %T not owned by gl device", ErrDraw, name, v.Texture)
			}
			gl.ActiveTexture(gl.TEXTURE0 + unit)
			gl.BindTexture(gl.TEXTURE_2D, id)
			setFilter(v.Filter)
			gl.Uniform1i(loc, int32(unit))
			unit++
		default:
			return fmt.Errorf("%w: uniform %q has unknown kind %d", ErrDraw, name, v.Kind)
		}
	}
	return nil
}

func glBlendFactor(f BlendFactor) uint32 {
	switch f {
	case BlendZero:
		return gl.ZERO
	case BlendOne:
		return gl.ONE
	case BlendSrcAlpha:
		return gl.SRC_ALPHA
	default:
		return gl.ONE_MINUS_SRC_ALPHA
	}
}

func (d *GLDevice) Clear(t Target, c mgl32.Vec4) error {
	if err := d.bindTarget(t); err != nil {
		return err
	}
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
	return glError(ErrDraw, "clear")
}

func (d *GLDevice) Draw(t Target, vs VertexStore, count int, prog Program, u Uniforms, blend Blend) error {
	store, ok := vs.(*glVertexStore)
	if !ok || store.id == 0 {
		return fmt.Errorf("%w: vertex store %T not owned by gl device", ErrDraw, vs)
	}
	if count > store.cap {
		return fmt.Errorf("%w: %d vertices exceed store of %d", ErrDraw, count, store.cap)
	}
	if err := d.bindTarget(t); err != nil {
		return err
	}

	gl.UseProgram(uint32(prog))
	if err := glError(ErrDraw, "use program"); err != nil {
		return err
	}
	if err := d.bindUniforms(prog, u); err != nil {
		return err
	}

	// Vertex layout: vec2 position at location 0, vec2 uv at location 1.
	gl.BindVertexArray(d.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, store.id)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, shape.VertexSize, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, shape.VertexSize, glOffset(2*4))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(glBlendFactor(blend.Src), glBlendFactor(blend.Dst))
	if count > 0 {
		gl.DrawArrays(gl.TRIANGLES, 0, int32(count))
	}
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)

	return glError(ErrDraw, "draw arrays")
}
