package solver

import "github.com/san-kum/popsim/internal/popdyn"

// Method advances a state vector by one fixed time step.
type Method interface {
	Name() string
	Step(sys popdyn.System, t float64, x popdyn.State, h float64) (popdyn.State, error)
}

// RK4 is the classical 4th-order Runge-Kutta method. The zero value is
// usable; stage buffers are lazily sized and reused across steps, so a
// single RK4 instance must not be shared between concurrent sequences.
type RK4 struct {
	k1, k2, k3, k4 popdyn.State
	scratch        popdyn.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(popdyn.State, n)
		r.k2 = make(popdyn.State, n)
		r.k3 = make(popdyn.State, n)
		r.k4 = make(popdyn.State, n)
		r.scratch = make(popdyn.State, n)
	}
}

// Step advances x from t to t+h. Every stage evaluates the full coupled
// system against the same perturbed state vector, which is what makes the
// method correct for interacting variables rather than n independent scalar
// solves.
func (r *RK4) Step(sys popdyn.System, t float64, x popdyn.State, h float64) (popdyn.State, error) {
	n := len(x)
	r.ensureScratch(n)

	k1, err := sys.Eval(t, x)
	if err != nil {
		return nil, err
	}
	copy(r.k1, k1)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + h*0.5*r.k1[i]
	}
	k2, err := sys.Eval(t+h*0.5, r.scratch)
	if err != nil {
		return nil, err
	}
	copy(r.k2, k2)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + h*0.5*r.k2[i]
	}
	k3, err := sys.Eval(t+h*0.5, r.scratch)
	if err != nil {
		return nil, err
	}
	copy(r.k3, k3)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + h*r.k3[i]
	}
	k4, err := sys.Eval(t+h, r.scratch)
	if err != nil {
		return nil, err
	}
	copy(r.k4, k4)

	result := make(popdyn.State, n)
	h6 := h / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + h6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}
	return result, nil
}

// Step is the single-shot RK4 step: a pure function of its inputs with no
// retained scratch state, deterministic given identical floating-point
// inputs.
func Step(sys popdyn.System, t float64, x popdyn.State, h float64) (popdyn.State, error) {
	return NewRK4().Step(sys, t, x, h)
}
