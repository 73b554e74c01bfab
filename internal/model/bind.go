package model

import (
	"fmt"
	"math"

	"github.com/san-kum/popsim/internal/popdyn"
)

// Bind resolves every declared parameter to a concrete value and returns the
// evaluable system, one component per state variable in declaration order.
//
// Every declared parameter must be present and finite; extra names in params
// are ignored. The returned closures capture a private snapshot of the
// values, so later mutation of the caller's map does not affect a bound
// system. Symbols resolve through the environment at evaluation time: t
// first, then state variables by position, then parameters.
func (d *Definition) Bind(params map[string]float64) (popdyn.System, error) {
	bound := make(map[string]float64, len(d.Parameters))
	for _, p := range d.Parameters {
		v, ok := params[p.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %q for model %q", popdyn.ErrMissingParameter, p.Name, d.Key)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %q is not finite", popdyn.ErrMissingParameter, p.Name)
		}
		bound[p.Name] = v
	}

	vars := d.Variables
	sys := make(popdyn.System, len(d.compiled))
	for i, node := range d.compiled {
		node := node
		src := d.Equations[i]
		sys[i] = func(t float64, x popdyn.State) (float64, error) {
			v, err := node.Eval(func(name string) (float64, bool) {
				if name == "t" {
					return t, true
				}
				for j, vn := range vars {
					if vn == name && j < len(x) {
						return x[j], true
					}
				}
				pv, ok := bound[name]
				return pv, ok
			})
			if err != nil {
				return 0, &popdyn.EvalError{Step: -1, Time: t, Expr: src, Wrapped: err}
			}
			return v, nil
		}
	}
	return sys, nil
}
