package solver

import (
	"math"
	"testing"

	"github.com/san-kum/popsim/internal/popdyn"
)

func logisticSys(r, K float64) popdyn.System {
	return popdyn.System{
		func(t float64, x popdyn.State) (float64, error) {
			return r * x[0] * (1 - x[0]/K), nil
		},
	}
}

func TestRK4MatchesLogisticClosedForm(t *testing.T) {
	r, K, x0 := 0.5, 100.0, 10.0
	sys := logisticSys(r, K)
	c := (K - x0) / x0
	exact := func(tm float64) float64 { return K / (1 + c*math.Exp(-r*tm)) }

	h := 0.05
	x := popdyn.State{x0}
	rk := NewRK4()
	for i := 0; i < 600; i++ {
		nx, err := rk.Step(sys, float64(i)*h, x, h)
		if err != nil {
			t.Fatal(err)
		}
		x = nx
		tm := float64(i+1) * h
		if diff := math.Abs(x[0] - exact(tm)); diff > 1e-4 {
			t.Fatalf("t=%.2f: rk4=%v exact=%v diff=%v", tm, x[0], exact(tm), diff)
		}
	}
}

// Exponential decay over one step, against the Taylor expansion of e^{-h}
// truncated at the h^4 term, which is exactly what RK4 produces for a linear
// system.
func TestRK4LinearStepIsFourthOrder(t *testing.T) {
	sys := popdyn.System{
		func(t float64, x popdyn.State) (float64, error) { return -x[0], nil },
	}
	h := 0.1
	nx, err := Step(sys, 0, popdyn.State{1}, h)
	if err != nil {
		t.Fatal(err)
	}
	want := 1 - h + h*h/2 - h*h*h/6 + h*h*h*h/24
	if math.Abs(nx[0]-want) > 1e-12 {
		t.Fatalf("got %v, want %v", nx[0], want)
	}
}

// All four stages must see the full perturbed state vector. For the coupled
// system x' = y, y' = -x one RK4 step from (1, 0) lands on the truncated
// Taylor series of (cos h, -sin h).
func TestRK4CoupledStagesShareState(t *testing.T) {
	sys := popdyn.System{
		func(t float64, x popdyn.State) (float64, error) { return x[1], nil },
		func(t float64, x popdyn.State) (float64, error) { return -x[0], nil },
	}
	h := 0.1
	nx, err := Step(sys, 0, popdyn.State{1, 0}, h)
	if err != nil {
		t.Fatal(err)
	}
	wantX := 1 - h*h/2 + h*h*h*h/24
	wantY := -(h - h*h*h/6)
	if math.Abs(nx[0]-wantX) > 1e-12 || math.Abs(nx[1]-wantY) > 1e-12 {
		t.Fatalf("got (%v, %v), want (%v, %v)", nx[0], nx[1], wantX, wantY)
	}
}

func TestRK4DoesNotMutateInput(t *testing.T) {
	sys := logisticSys(0.5, 100)
	x := popdyn.State{10}
	if _, err := Step(sys, 0, x, 0.05); err != nil {
		t.Fatal(err)
	}
	if x[0] != 10 {
		t.Fatalf("input state mutated: %v", x[0])
	}
}

func TestStepDeterministic(t *testing.T) {
	sys := logisticSys(0.5, 100)
	x := popdyn.State{10}
	a, err := Step(sys, 0, x, 0.05)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Step(sys, 0, x, 0.05)
	if err != nil {
		t.Fatal(err)
	}
	if a[0] != b[0] {
		t.Fatalf("identical inputs produced %v and %v", a[0], b[0])
	}
}

func TestEulerLessAccurateThanRK4(t *testing.T) {
	r, K, x0 := 0.5, 100.0, 10.0
	sys := logisticSys(r, K)
	c := (K - x0) / x0
	exact := K / (1 + c*math.Exp(-r*1.0))

	h := 0.1
	steps := 10
	rk4x := popdyn.State{x0}
	eulx := popdyn.State{x0}
	rk := NewRK4()
	eu := NewEuler()
	for i := 0; i < steps; i++ {
		tm := float64(i) * h
		var err error
		rk4x, err = rk.Step(sys, tm, rk4x, h)
		if err != nil {
			t.Fatal(err)
		}
		eulx, err = eu.Step(sys, tm, eulx, h)
		if err != nil {
			t.Fatal(err)
		}
	}
	rkErr := math.Abs(rk4x[0] - exact)
	euErr := math.Abs(eulx[0] - exact)
	if rkErr >= euErr {
		t.Fatalf("rk4 error %v not below euler error %v", rkErr, euErr)
	}
}

func BenchmarkRK4Step(b *testing.B) {
	sys := popdyn.System{
		func(t float64, x popdyn.State) (float64, error) { return x[0] - 0.5*x[0]*x[1], nil },
		func(t float64, x popdyn.State) (float64, error) { return 0.3*x[0]*x[1] - 0.8*x[1], nil },
	}
	rk := NewRK4()
	x := popdyn.State{10, 5}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		nx, err := rk.Step(sys, 0, x, 0.01)
		if err != nil {
			b.Fatal(err)
		}
		x = nx
	}
}
