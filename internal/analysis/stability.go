package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/popsim/internal/model"
)

// StabilityReport is the textual stability summary for one model under
// concrete parameter values.
type StabilityReport struct {
	Model string
	Lines []string
}

// Stability evaluates the analytical stability facts of a model at the given
// parameter values.
func Stability(def *model.Definition, params map[string]float64) *StabilityReport {
	rep := &StabilityReport{Model: def.Key}
	add := func(format string, args ...any) {
		rep.Lines = append(rep.Lines, fmt.Sprintf(format, args...))
	}

	switch def.Key {
	case "logistic":
		r, K := params["r"], params["K"]
		add("equilibrium: x* = %g", K)
		add("stability: stable for r > 0 (r = %g)", r)
		if r > 0 {
			add("doubling time: t2 = %.2f", math.Ln2/r)
			add("time to 95%% of K: t95 = %.2f", 3/r)
		}
	case "lotka_volterra":
		a, b, c, d := params["a"], params["b"], params["c"], params["d"]
		if b != 0 && c != 0 {
			add("equilibrium point: (%.2f, %.2f)", d/c, a/b)
		}
		add("type: neutrally stable center")
		if a*d > 0 {
			add("oscillation period: T = %.2f", 2*math.Pi/math.Sqrt(a*d))
		}
	case "competition":
		alpha, beta := params["alpha"], params["beta"]
		K1, K2 := params["K1"], params["K2"]
		add("competition coefficients: alpha = %g, beta = %g", alpha, beta)
		add("coexistence product: alpha*beta = %.3f", alpha*beta)
		if alpha*beta < 1 {
			add("coexistence possible (alpha*beta < 1)")
			x := (K1 - alpha*K2) / (1 - alpha*beta)
			y := (K2 - beta*K1) / (1 - alpha*beta)
			if x > 0 && y > 0 {
				add("coexistence point: (%.1f, %.1f)", x, y)
			}
		} else {
			add("coexistence impossible (alpha*beta >= 1)")
		}
	case "sir":
		beta, gamma := params["beta"], params["gamma"]
		if gamma != 0 {
			r0 := beta / gamma
			add("basic reproduction number: R0 = %.2f", r0)
			if r0 > 1 {
				add("epidemic grows (R0 > 1)")
				add("herd immunity threshold: %.1f%%", (1-1/r0)*100)
			} else {
				add("epidemic dies out (R0 <= 1)")
			}
		}
	case "metapopulation":
		m := params["m"]
		add("migration rate m = %g couples the patches", m)
		add("equilibrium depends on m; migration evens out density differences")
	default:
		add("no analytical facts for model %q", def.Key)
	}
	return rep
}
