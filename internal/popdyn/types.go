package popdyn

import "math"

// State is the ordered vector of population values at a given time.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// IsValid reports whether the state contains only finite values. The solver
// never checks this itself; divergence is the caller's concern.
func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// RHS is one component of a coupled ODE system: dx_i/dt = f(t, x).
// Implementations must be pure; evaluating the same inputs twice yields the
// same result.
type RHS func(t float64, x State) (float64, error)

// System is the ordered set of RHS components of a model, one per state
// variable in declaration order.
type System []RHS

// Eval evaluates every component against the same time and state vector and
// returns the derivative vector.
func (sys System) Eval(t float64, x State) (State, error) {
	dx := make(State, len(sys))
	for i, f := range sys {
		v, err := f(t, x)
		if err != nil {
			return nil, err
		}
		dx[i] = v
	}
	return dx, nil
}

// Sample is a single (time, state) point produced by the solver.
type Sample struct {
	T float64
	X State
}

// Trajectory is the ordered, append-only sequence of samples of one run.
// Sample 0 is always the initial condition. Owned by the caller; the solver
// retains only its current state.
type Trajectory []Sample

// Times returns the time column.
func (tr Trajectory) Times() []float64 {
	ts := make([]float64, len(tr))
	for i, s := range tr {
		ts[i] = s.T
	}
	return ts
}

// Column returns the series of one state variable across the trajectory.
func (tr Trajectory) Column(i int) []float64 {
	vs := make([]float64, len(tr))
	for j, s := range tr {
		if i < len(s.X) {
			vs[j] = s.X[i]
		}
	}
	return vs
}

// Last returns the final sample, or a zero Sample for an empty trajectory.
func (tr Trajectory) Last() Sample {
	if len(tr) == 0 {
		return Sample{}
	}
	return tr[len(tr)-1]
}
