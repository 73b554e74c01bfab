package analysis

import "math"

// LogisticSolution returns the closed-form solution of the logistic model,
// x(t) = K / (1 + ((K-x0)/x0) e^{-rt}), used as the accuracy reference for
// the RK4 trajectory.
func LogisticSolution(r, K, x0 float64) func(t float64) float64 {
	c := (K - x0) / x0
	return func(t float64) float64 {
		return K / (1 + c*math.Exp(-r*t))
	}
}

// LotkaVolterraH evaluates the conserved quantity
// H(x,y) = c*x + b*y - d*ln(x) - a*ln(y). NaN for non-positive populations,
// where H is undefined.
func LotkaVolterraH(a, b, c, d, x, y float64) float64 {
	if x <= 0 || y <= 0 {
		return math.NaN()
	}
	return c*x + b*y - d*math.Log(x) - a*math.Log(y)
}
