package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/popsim/internal/model"
	"github.com/san-kum/popsim/internal/popdyn"
)

func TestConservationDrift(t *testing.T) {
	c := NewConservation(1000)
	c.Observe(popdyn.Sample{T: 0, X: popdyn.State{990, 10, 0}})
	if c.Value() != 0 {
		t.Fatalf("exact total reported drift %v", c.Value())
	}
	c.Observe(popdyn.Sample{T: 1, X: popdyn.State{980, 10, 0}}) // total 990
	if math.Abs(c.Value()-0.01) > 1e-12 {
		t.Fatalf("drift = %v, want 0.01", c.Value())
	}
	// drift is a running maximum
	c.Observe(popdyn.Sample{T: 2, X: popdyn.State{990, 10, 0}})
	if math.Abs(c.Value()-0.01) > 1e-12 {
		t.Fatalf("maximum not retained: %v", c.Value())
	}
	c.Reset()
	if c.Value() != 0 {
		t.Fatalf("reset did not clear drift: %v", c.Value())
	}
}

func TestConservationZeroExpected(t *testing.T) {
	c := NewConservation(0)
	c.Observe(popdyn.Sample{T: 0, X: popdyn.State{5}})
	if c.Value() != 0 {
		t.Fatalf("expected=0 must report no drift, got %v", c.Value())
	}
}

func TestHamiltonianDriftConstantOnExactOrbit(t *testing.T) {
	a, b, c, d := 1.0, 0.5, 0.3, 0.8
	h := NewHamiltonianDrift(a, b, c, d)
	// same point repeated has identical H
	for i := 0; i < 5; i++ {
		h.Observe(popdyn.Sample{T: float64(i), X: popdyn.State{10, 5}})
	}
	if h.Value() != 0 {
		t.Fatalf("constant orbit reported drift %v", h.Value())
	}
}

func TestHamiltonianDriftSkipsNonPositive(t *testing.T) {
	h := NewHamiltonianDrift(1, 0.5, 0.3, 0.8)
	h.Observe(popdyn.Sample{T: 0, X: popdyn.State{10, 5}})
	h.Observe(popdyn.Sample{T: 1, X: popdyn.State{-1, 5}}) // H undefined, skipped
	h.Observe(popdyn.Sample{T: 2, X: popdyn.State{10, 5}})
	if h.Value() != 0 {
		t.Fatalf("non-positive sample affected drift: %v", h.Value())
	}
}

func TestPeakTracksMaximum(t *testing.T) {
	p := NewPeak(1)
	for _, v := range []float64{10, 120, 80, 119} {
		p.Observe(popdyn.Sample{X: popdyn.State{0, v}})
	}
	if p.Value() != 120 {
		t.Fatalf("peak = %v, want 120", p.Value())
	}
}

func TestPeakNegativeSeries(t *testing.T) {
	p := NewPeak(0)
	for _, v := range []float64{-5, -2, -9} {
		p.Observe(popdyn.Sample{X: popdyn.State{v}})
	}
	if p.Value() != -2 {
		t.Fatalf("peak = %v, want -2", p.Value())
	}
}

func TestForModelSelection(t *testing.T) {
	reg := model.New()

	sir, err := reg.Get("sir")
	if err != nil {
		t.Fatal(err)
	}
	got := ForModel(sir, sir.DefaultParams())
	if len(got) != 2 {
		t.Fatalf("sir metrics = %d, want conservation and peak", len(got))
	}
	if got[0].Name() != "conservation_drift" {
		t.Errorf("sir first metric = %s", got[0].Name())
	}

	lv, err := reg.Get("lotka_volterra")
	if err != nil {
		t.Fatal(err)
	}
	got = ForModel(lv, lv.DefaultParams())
	if len(got) != 2 || got[0].Name() != "hamiltonian_drift" {
		t.Fatalf("lotka_volterra metrics wrong: %d metrics, first %s", len(got), got[0].Name())
	}

	logistic, err := reg.Get("logistic")
	if err != nil {
		t.Fatal(err)
	}
	got = ForModel(logistic, logistic.DefaultParams())
	if len(got) != 1 || got[0].Name() != "peak" {
		t.Fatalf("logistic metrics wrong")
	}
}
