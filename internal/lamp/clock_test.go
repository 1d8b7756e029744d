package lamp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClock_Advance(t *testing.T) {
	var c Clock

	assert.Equal(t, 0, c.Advance(0.4*SecondsPerUpdate))
	assert.InDelta(t, 0.4, c.Fraction(), 1e-5)

	assert.Equal(t, 1, c.Advance(0.8*SecondsPerUpdate))
	assert.InDelta(t, 0.2, c.Fraction(), 1e-5)

	assert.Equal(t, 3, c.Advance(3.1*SecondsPerUpdate))
	assert.InDelta(t, 0.3, c.Fraction(), 1e-5)
}

func TestClock_IgnoresNegative(t *testing.T) {
	var c Clock
	c.Advance(0.5 * SecondsPerUpdate)
	assert.Equal(t, 0, c.Advance(-1))
	assert.InDelta(t, 0.5, c.Fraction(), 1e-5)
}

func TestClock_CapsBacklog(t *testing.T) {
	var c Clock
	assert.Equal(t, MaxStepsPerFrame, c.Advance(60))
	assert.Zero(t, c.Fraction())
	assert.Equal(t, 1, c.Advance(1.5*SecondsPerUpdate))
}

func TestRand_Ranges(t *testing.T) {
	r := NewRand(0)
	for range 10000 {
		f := r.Float32()
		assert.True(t, f >= 0 && f < 1, "Float32 = %v", f)
		v := r.RangeF(-3, 5)
		assert.True(t, v >= -3 && v <= 5, "RangeF = %v", v)
	}
	assert.Equal(t, float32(2), r.RangeF(2, 2))
	assert.Equal(t, float32(4), r.RangeF(4, 1))
}

func TestRand_Deterministic(t *testing.T) {
	a, b := NewRand(42), NewRand(42)
	for range 100 {
		assert.Equal(t, a.NextU64(), b.NextU64())
	}
	assert.NotEqual(t, NewRand(1).NextU64(), NewRand(2).NextU64())
}
