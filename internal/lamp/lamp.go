package lamp

import (
	"github.com/go-gl/mathgl/mgl32"

	"lavalamp/internal/config"
	"lavalamp/internal/shape"
)

// Blob is one rising circle. Velocity is in pixels per simulation step.
type Blob struct {
	Pos    mgl32.Vec2
	Vel    mgl32.Vec2
	Radius float32
}

func (b *Blob) update() {
	b.Pos = b.Pos.Add(b.Vel)
}

// addToShape appends the blob's bounding square, extrapolated step ticks ahead.
func (b Blob) addToShape(s *shape.Shape, step float32) {
	pos := b.Pos.Add(b.Vel.Mul(step))
	s.AddRect(
		mgl32.Vec2{pos[0] - b.Radius, pos[1] - b.Radius},
		mgl32.Vec2{b.Radius * 2, b.Radius * 2},
	)
}

type Config struct {
	SpawnChance float32      // probability of one spawn per step
	BlobSpeed   config.Range // pixels per step
	BlobSize    config.Range // diameter in pixels
}

// LavaLamp simulates blobs in screen pixels, y growing downwards. Blobs
// spawn below the bottom edge, rise, and are dropped once well above the top.
type LavaLamp struct {
	cfg     Config
	blobs   []Blob
	rng     *Rand
	garbage []int
}

func New(cfg Config, seed uint64) *LavaLamp {
	return &LavaLamp{
		cfg: cfg,
		rng: NewRand(seed),
	}
}

func (l *LavaLamp) Len() int { return len(l.blobs) }

// Blobs returns a copy of the live blobs.
func (l *LavaLamp) Blobs() []Blob {
	return append([]Blob(nil), l.blobs...)
}

// Add inserts a blob as if it had been spawned.
func (l *LavaLamp) Add(b Blob) {
	l.blobs = append(l.blobs, b)
}

// spawnBlob places a new blob below the visible area. The y offset uses the
// largest configured size rather than this blob's own radius, so small blobs
// start further down.
func (l *LavaLamp) spawnBlob(width, height int) {
	pos := mgl32.Vec2{
		l.rng.RangeF(0, float32(width)),
		float32(height) + l.cfg.BlobSize.Max,
	}
	vel := mgl32.Vec2{0, -l.rng.RangeF(l.cfg.BlobSpeed.Min, l.cfg.BlobSpeed.Max)}
	radius := l.rng.RangeF(l.cfg.BlobSize.Min, l.cfg.BlobSize.Max) / 2
	l.blobs = append(l.blobs, Blob{Pos: pos, Vel: vel, Radius: radius})
}

func (l *LavaLamp) collectGarbage() {
	l.garbage = l.garbage[:0]
	for i, b := range l.blobs {
		if b.Pos[1] <= -l.cfg.BlobSize.Max {
			l.garbage = append(l.garbage, i)
		}
	}
	// Highest index first so the remaining indices stay valid.
	for i := len(l.garbage) - 1; i >= 0; i-- {
		idx := l.garbage[i]
		l.blobs = append(l.blobs[:idx], l.blobs[idx+1:]...)
	}
}

// Update advances the simulation by one fixed step on a width x height surface.
func (l *LavaLamp) Update(width, height int) {
	for i := range l.blobs {
		l.blobs[i].update()
	}
	if l.rng.Float32() < l.cfg.SpawnChance {
		l.spawnBlob(width, height)
	}
	l.collectGarbage()
}

// AddToShape appends one square per blob, interpolated step (0..1) of the way
// to the next simulation state. The simulation itself is not changed.
func (l *LavaLamp) AddToShape(s *shape.Shape, step float32) {
	for _, b := range l.blobs {
		b.addToShape(s, step)
	}
}
