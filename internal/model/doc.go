// Package model holds the declarative catalog of population dynamics models
// and turns a chosen catalog entry into an evaluable ODE system.
//
// A [Definition] is pure data: the equations as source text, the ordered
// variable and parameter metadata, default values, advisory ranges, and
// analytical facts used only for reporting. The [Registry] validates every
// definition structurally when it is built, so lookups never re-check.
//
// [Definition.Bind] substitutes concrete parameter values and produces the
// popdyn.System consumed by the solver. Parameters are bound through a
// name lookup environment; equation text is never rewritten.
package model
