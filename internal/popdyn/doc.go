// Package popdyn provides the core primitives for population dynamics
// simulation.
//
// The package defines the types shared by the model registry, the RHS
// binder, and the RK4 solver:
//
//   - [State]: vector of current population values
//   - [RHS]: a single right-hand-side component dx_i/dt = f_i(t, x)
//   - [System]: the ordered RHS set of a coupled model
//   - [Sample]: one (time, state) point of a trajectory
//   - [Trajectory]: the ordered samples of a finished run
//
// # Error Taxonomy
//
// All failures are recoverable at the call boundary and never logged by the
// core: [ErrUnknownModel], [ErrMissingParameter], [ErrUndefinedSymbol],
// [ErrZeroStep], [ErrInvalidStepCount], and [EvalError] for arithmetic
// failures inside an equation.
package popdyn
