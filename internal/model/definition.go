package model

import (
	"github.com/san-kum/popsim/internal/expr"
	"github.com/san-kum/popsim/internal/popdyn"
)

// Param describes one named model parameter. Min and Max are advisory hints
// for upstream validation and are never enforced at solve time.
type Param struct {
	Name    string
	Label   string
	Desc    string
	Default float64
	Min     float64
	Max     float64
}

// Initial describes one initial condition, one per state variable.
type Initial struct {
	Name    string
	Label   string
	Default float64
}

// Definition is one immutable catalog entry. The positional order of
// Variables defines the ordering used everywhere: equations, initial
// conditions, and the state vector layout.
type Definition struct {
	Key         string
	Name        string
	Description string

	Variables []string
	VarLabels []string
	Equations []string

	Parameters []Param
	Initial    []Initial

	// Analytical facts, reporting only; the solver never reads these.
	Equilibrium  string
	Analytical   string
	Conserved    string
	Reproduction string
	Coexistence  string

	compiled []expr.Expr
}

// Dimension is the number of state variables.
func (d *Definition) Dimension() int { return len(d.Variables) }

// DefaultParams returns the declared parameter defaults as a fresh map.
func (d *Definition) DefaultParams() map[string]float64 {
	m := make(map[string]float64, len(d.Parameters))
	for _, p := range d.Parameters {
		m[p.Name] = p.Default
	}
	return m
}

// DefaultInitial returns the declared initial-condition defaults as a fresh map.
func (d *Definition) DefaultInitial() map[string]float64 {
	m := make(map[string]float64, len(d.Initial))
	for _, ic := range d.Initial {
		m[ic.Name] = ic.Default
	}
	return m
}

// InitialState builds the ordered state vector from a name-value mapping,
// filling any absent name with its declared default.
func (d *Definition) InitialState(values map[string]float64) popdyn.State {
	x := make(popdyn.State, len(d.Initial))
	for i, ic := range d.Initial {
		if v, ok := values[ic.Name]; ok {
			x[i] = v
		} else {
			x[i] = ic.Default
		}
	}
	return x
}
