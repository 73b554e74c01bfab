package expr

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/san-kum/popsim/internal/popdyn"
)

// Arithmetic errors surfaced during evaluation.
var (
	// ErrDivideByZero indicates a zero denominator.
	ErrDivideByZero = errors.New("expr: division by zero")

	// ErrDomain indicates an argument outside a function's domain, such as
	// the logarithm of a non-positive value.
	ErrDomain = errors.New("expr: argument outside function domain")
)

// Env resolves a symbol name to its bound value. A false return means the
// symbol is not bound in this environment.
type Env func(name string) (float64, bool)

// MapEnv adapts a plain map to an Env.
func MapEnv(m map[string]float64) Env {
	return func(name string) (float64, bool) {
		v, ok := m[name]
		return v, ok
	}
}

// Expr is an immutable, side-effect-free expression tree. Evaluating the
// same tree against the same environment twice yields the same result.
type Expr interface {
	Eval(env Env) (float64, error)
	String() string
}

type num float64

func (n num) Eval(Env) (float64, error) { return float64(n), nil }
func (n num) String() string            { return strconv.FormatFloat(float64(n), 'g', -1, 64) }

type ident string

func (id ident) Eval(env Env) (float64, error) {
	v, ok := env(string(id))
	if !ok {
		return 0, fmt.Errorf("%w: %s", popdyn.ErrUndefinedSymbol, string(id))
	}
	return v, nil
}

func (id ident) String() string { return string(id) }

type neg struct{ x Expr }

func (n neg) Eval(env Env) (float64, error) {
	v, err := n.x.Eval(env)
	if err != nil {
		return 0, err
	}
	return -v, nil
}

func (n neg) String() string { return "-" + n.x.String() }

type binary struct {
	op   byte
	l, r Expr
}

func (b binary) Eval(env Env) (float64, error) {
	lv, err := b.l.Eval(env)
	if err != nil {
		return 0, err
	}
	rv, err := b.r.Eval(env)
	if err != nil {
		return 0, err
	}
	switch b.op {
	case '+':
		return lv + rv, nil
	case '-':
		return lv - rv, nil
	case '*':
		return lv * rv, nil
	case '/':
		if rv == 0 {
			return 0, ErrDivideByZero
		}
		return lv / rv, nil
	case '^':
		return math.Pow(lv, rv), nil
	}
	return 0, fmt.Errorf("expr: unknown operator %q", b.op)
}

func (b binary) String() string {
	return fmt.Sprintf("(%s %c %s)", b.l.String(), b.op, b.r.String())
}

type call struct {
	name string
	fn   func(float64) (float64, error)
	arg  Expr
}

func (c call) Eval(env Env) (float64, error) {
	v, err := c.arg.Eval(env)
	if err != nil {
		return 0, err
	}
	return c.fn(v)
}

func (c call) String() string { return c.name + "(" + c.arg.String() + ")" }

var builtins = map[string]func(float64) (float64, error){
	"sin": func(v float64) (float64, error) { return math.Sin(v), nil },
	"cos": func(v float64) (float64, error) { return math.Cos(v), nil },
	"tan": func(v float64) (float64, error) { return math.Tan(v), nil },
	"exp": func(v float64) (float64, error) { return math.Exp(v), nil },
	"abs": func(v float64) (float64, error) { return math.Abs(v), nil },
	"log": logFn,
	"ln":  logFn,
	"sqrt": func(v float64) (float64, error) {
		if v < 0 {
			return 0, fmt.Errorf("%w: sqrt(%g)", ErrDomain, v)
		}
		return math.Sqrt(v), nil
	},
}

func logFn(v float64) (float64, error) {
	if v <= 0 {
		return 0, fmt.Errorf("%w: log(%g)", ErrDomain, v)
	}
	return math.Log(v), nil
}

// Symbols returns the sorted set of symbol names referenced by the tree.
// Function names are not symbols.
func Symbols(e Expr) []string {
	seen := make(map[string]bool)
	collect(e, seen)
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func collect(e Expr, seen map[string]bool) {
	switch v := e.(type) {
	case ident:
		seen[string(v)] = true
	case neg:
		collect(v.x, seen)
	case binary:
		collect(v.l, seen)
		collect(v.r, seen)
	case call:
		collect(v.arg, seen)
	}
}
