package popdyn

import (
	"errors"
	"fmt"
)

// Domain errors for registry lookup, parameter binding, and solving.
var (
	// ErrUnknownModel indicates a model key absent from the registry.
	ErrUnknownModel = errors.New("popdyn: unknown model")

	// ErrMissingParameter indicates a declared parameter without a bound value.
	ErrMissingParameter = errors.New("popdyn: missing parameter value")

	// ErrUndefinedSymbol indicates an equation referencing a symbol that is
	// neither t, a state variable, nor a declared parameter.
	ErrUndefinedSymbol = errors.New("popdyn: undefined symbol in equation")

	// ErrZeroStep indicates a zero step size h.
	ErrZeroStep = errors.New("popdyn: step size must be nonzero")

	// ErrInvalidStepCount indicates a negative step count.
	ErrInvalidStepCount = errors.New("popdyn: step count must be non-negative")

	// ErrDimensionMismatch indicates a state vector whose length disagrees
	// with the system it is solved against.
	ErrDimensionMismatch = errors.New("popdyn: dimension mismatch between state and system")
)

// EvalError wraps an arithmetic failure during an RHS evaluation with the
// step index and the source text of the offending equation. Prior samples
// already produced remain valid; only the failing step is invalidated.
type EvalError struct {
	Step    int
	Time    float64
	Expr    string
	Wrapped error
}

func (e *EvalError) Error() string {
	if e.Expr != "" {
		return fmt.Sprintf("popdyn: step %d (t=%.4f): %q: %v", e.Step, e.Time, e.Expr, e.Wrapped)
	}
	return fmt.Sprintf("popdyn: step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *EvalError) Unwrap() error {
	return e.Wrapped
}
