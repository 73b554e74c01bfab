// Package analysis derives reporting facts from model definitions and
// finished trajectories: equilibrium and stability summaries, closed-form
// reference solutions, per-variable trajectory statistics, and parameter
// sweeps. Nothing here feeds back into the solver.
package analysis
