// Package expr implements the small arithmetic expression language used by
// model equations, e.g. "r*x*(1 - x/K)" or "beta*S*I/N".
//
// Expressions are parsed once into an immutable tree and evaluated against
// an [Env], a name lookup that binds t, the state variables, and the model
// parameters. Binding through the environment (rather than textual
// substitution) makes names with common prefixes, such as r and r1, safe.
//
// The language covers what the packaged population models need: the four
// arithmetic operators, unary minus, ^ for exponentiation, parentheses,
// numeric literals, named symbols, and single-argument calls to a fixed set
// of functions (sin, cos, tan, exp, log, ln, sqrt, abs).
package expr
