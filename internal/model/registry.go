package model

import (
	"fmt"
	"math"

	"github.com/san-kum/popsim/internal/expr"
	"github.com/san-kum/popsim/internal/popdyn"
)

// Registry is the read-only model catalog. It is populated once at
// construction and exposes no mutation; Keys preserves registration order so
// listings are reproducible.
type Registry struct {
	defs  map[string]*Definition
	order []string
}

// New builds the registry with the built-in catalog. Malformed built-in
// definitions are programmer errors and panic.
func New() *Registry {
	r := &Registry{defs: make(map[string]*Definition)}
	for _, d := range catalog() {
		if err := r.register(d); err != nil {
			panic(fmt.Sprintf("model: bad catalog entry %q: %v", d.Key, err))
		}
	}
	return r
}

// Get returns the definition for key.
func (r *Registry) Get(key string) (*Definition, error) {
	d, ok := r.defs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", popdyn.ErrUnknownModel, key)
	}
	return d, nil
}

// Keys returns the model identifiers in registration order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}

// register validates the definition, compiles its equations, and stores it.
// Validation happens here once; lookups and binds rely on it.
func (r *Registry) register(d *Definition) error {
	if d.Key == "" {
		return fmt.Errorf("empty model key")
	}
	if _, dup := r.defs[d.Key]; dup {
		return fmt.Errorf("duplicate model key %q", d.Key)
	}
	n := len(d.Variables)
	if n == 0 {
		return fmt.Errorf("model has no state variables")
	}
	if len(d.Equations) != n || len(d.Initial) != n {
		return fmt.Errorf("variable/equation/initial-condition counts disagree: %d/%d/%d",
			n, len(d.Equations), len(d.Initial))
	}
	if len(d.VarLabels) != 0 && len(d.VarLabels) != n {
		return fmt.Errorf("variable label count disagrees with dimension")
	}

	declared := make(map[string]bool, n+len(d.Parameters)+1)
	declared["t"] = true
	for _, v := range d.Variables {
		if declared[v] {
			return fmt.Errorf("duplicate variable name %q", v)
		}
		declared[v] = true
	}
	for _, p := range d.Parameters {
		if declared[p.Name] {
			return fmt.Errorf("duplicate name %q", p.Name)
		}
		if math.IsNaN(p.Default) || math.IsInf(p.Default, 0) {
			return fmt.Errorf("parameter %q has non-finite default", p.Name)
		}
		declared[p.Name] = true
	}

	d.compiled = make([]expr.Expr, n)
	for i, src := range d.Equations {
		e, err := expr.Parse(src)
		if err != nil {
			return fmt.Errorf("equation %d: %w", i, err)
		}
		for _, sym := range expr.Symbols(e) {
			if !declared[sym] {
				return fmt.Errorf("%w: %q in equation %q", popdyn.ErrUndefinedSymbol, sym, src)
			}
		}
		d.compiled[i] = e
	}
	r.defs[d.Key] = d
	r.order = append(r.order, d.Key)
	return nil
}
