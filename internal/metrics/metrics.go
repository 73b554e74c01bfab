// Package metrics provides streaming observers over solver samples.
// Metrics accumulate as the caller pulls samples and report a single value
// at the end of a run; the solver itself never observes anything.
package metrics

import (
	"github.com/san-kum/popsim/internal/model"
	"github.com/san-kum/popsim/internal/popdyn"
)

type Metric interface {
	Name() string
	Observe(s popdyn.Sample)
	Value() float64
	Reset()
}

// ForModel returns the default metric set for a bound model run.
func ForModel(def *model.Definition, params map[string]float64) []Metric {
	switch def.Key {
	case "sir":
		return []Metric{
			NewConservation(params["N"]),
			NewPeak(1), // infected
		}
	case "lotka_volterra":
		return []Metric{
			NewHamiltonianDrift(params["a"], params["b"], params["c"], params["d"]),
			NewPeak(0),
		}
	default:
		return []Metric{NewPeak(0)}
	}
}
