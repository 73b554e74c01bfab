package metrics

import (
	"math"

	"github.com/san-kum/popsim/internal/popdyn"
)

// Conservation tracks how far the sum of all state variables drifts from a
// fixed expected total, as a maximum relative error. For SIR the total is N:
// S+I+R must stay within numerical tolerance of N at every sample.
type Conservation struct {
	name     string
	expected float64
	maxDrift float64
	samples  int
}

func NewConservation(expected float64) *Conservation {
	return &Conservation{name: "conservation_drift", expected: expected}
}

func (c *Conservation) Name() string { return c.name }

func (c *Conservation) Observe(s popdyn.Sample) {
	c.samples++
	if c.expected == 0 {
		return
	}
	sum := 0.0
	for _, v := range s.X {
		sum += v
	}
	drift := math.Abs(sum-c.expected) / math.Abs(c.expected)
	if drift > c.maxDrift {
		c.maxDrift = drift
	}
}

func (c *Conservation) Value() float64 { return c.maxDrift }

func (c *Conservation) Reset() {
	c.maxDrift = 0
	c.samples = 0
}
