package lamp

// splitmix64 is a fast, high-quality 64-bit mixer.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Rand is a tiny deterministic RNG (xorshift64*). Each LavaLamp owns its own.
type Rand struct {
	s uint64
}

// NewRand scrambles seed so nearby seeds (clock readings) give unrelated streams.
func NewRand(seed uint64) *Rand {
	s := splitmix64(seed)
	if s == 0 {
		s = 1
	}
	return &Rand{s: s}
}

func (r *Rand) NextU64() uint64 {
	x := r.s
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.s = x
	return x * 2685821657736338717
}

// Float32 returns a value in [0,1).
func (r *Rand) Float32() float32 {
	return float32(r.NextU64()>>40) * (1.0 / (1 << 24))
}

// RangeF returns a value in [min,max), or min when the range is empty.
func (r *Rand) RangeF(min, max float32) float32 {
	if max <= min {
		return min
	}
	return min + (max-min)*r.Float32()
}
