package lamp

const (
	UpdateFrequency  = 60
	SecondsPerUpdate = 1.0 / UpdateFrequency
	// MaxStepsPerFrame bounds the catch-up after a stall (4 s of simulation).
	MaxStepsPerFrame = 4 * UpdateFrequency
)

// Clock turns variable frame times into whole simulation steps plus a
// leftover fraction used for interpolation.
type Clock struct {
	lag float64
}

// Advance adds elapsed seconds and returns how many fixed steps to run now.
// Backlog beyond MaxStepsPerFrame is dropped.
func (c *Clock) Advance(elapsed float64) int {
	if elapsed > 0 {
		c.lag += elapsed
	}
	steps := 0
	for c.lag >= SecondsPerUpdate {
		c.lag -= SecondsPerUpdate
		steps++
		if steps == MaxStepsPerFrame {
			c.lag = 0
			break
		}
	}
	return steps
}

// Fraction is the leftover time as a share of one step, in [0,1).
func (c *Clock) Fraction() float32 {
	return float32(c.lag / SecondsPerUpdate)
}
