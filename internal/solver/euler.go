package solver

import "github.com/san-kum/popsim/internal/popdyn"

// Euler is the explicit first-order method, kept as an accuracy baseline for
// the compare command. Packaged models default to RK4.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(sys popdyn.System, t float64, x popdyn.State, h float64) (popdyn.State, error) {
	dx, err := sys.Eval(t, x)
	if err != nil {
		return nil, err
	}
	result := make(popdyn.State, len(x))
	for i := range x {
		result[i] = x[i] + h*dx[i]
	}
	return result, nil
}
