package metrics

import (
	"math"

	"github.com/san-kum/popsim/internal/popdyn"
)

// HamiltonianDrift tracks the maximum relative drift of the Lotka-Volterra
// conserved quantity H(x,y) = c*x + b*y - d*ln(x) - a*ln(y). An exact
// trajectory keeps H constant; RK4 keeps it nearly constant for small h, so
// the drift doubles as an accuracy check. Samples with a non-positive
// population are skipped, since H is undefined there.
type HamiltonianDrift struct {
	name       string
	a, b, c, d float64
	initial    float64
	maxDrift   float64
	samples    int
}

func NewHamiltonianDrift(a, b, c, d float64) *HamiltonianDrift {
	return &HamiltonianDrift{name: "hamiltonian_drift", a: a, b: b, c: c, d: d}
}

func (h *HamiltonianDrift) Name() string { return h.name }

func (h *HamiltonianDrift) Observe(s popdyn.Sample) {
	if len(s.X) < 2 {
		return
	}
	x, y := s.X[0], s.X[1]
	if x <= 0 || y <= 0 {
		return
	}
	H := h.c*x + h.b*y - h.d*math.Log(x) - h.a*math.Log(y)
	if h.samples == 0 {
		h.initial = H
	}
	h.samples++
	if h.initial != 0 {
		drift := math.Abs(H-h.initial) / math.Abs(h.initial)
		if drift > h.maxDrift {
			h.maxDrift = drift
		}
	}
}

func (h *HamiltonianDrift) Value() float64 { return h.maxDrift }

func (h *HamiltonianDrift) Reset() {
	h.initial = 0
	h.maxDrift = 0
	h.samples = 0
}
