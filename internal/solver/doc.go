// Package solver advances population models through time with fixed-step
// numerical integration.
//
// [RK4] is the classical 4th-order Runge-Kutta method used by every packaged
// model; [Euler] exists as an accuracy baseline for comparisons. [Step] is
// the pure single-step operation; [Sequence] is the lazy, resumable sample
// generator that the live view and the run command consume one pull at a
// time. Each Sequence owns its state exclusively: abandoning one mid-stream
// needs no cleanup, and independent sequences over the same system never
// share mutable state.
//
// There is no adaptive error control: local truncation error is O(h^5) and
// global error O(h^4), and the caller picks h. Numerical blow-up is not
// detected; NaN and Inf propagate as ordinary samples.
package solver
