package expr

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/popsim/internal/popdyn"
)

func evalOne(t *testing.T, src string, env map[string]float64) float64 {
	t.Helper()
	e, err := Parse(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	v, err := e.Eval(MapEnv(env))
	if err != nil {
		t.Fatalf("eval %q: %v", src, err)
	}
	return v
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		src  string
		env  map[string]float64
		want float64
	}{
		{"1 + 2*3", nil, 7},
		{"(1 + 2)*3", nil, 9},
		{"10 - 4 - 3", nil, 3},
		{"2^3^2", nil, 512}, // right-associative
		{"-x^2", map[string]float64{"x": 3}, -9},
		{"x^-1", map[string]float64{"x": 4}, 0.25},
		{"1e-3 * 2", nil, 0.002},
		{"r*x*(1 - x/K)", map[string]float64{"r": 0.5, "x": 10, "K": 100}, 0.45},
		{"sin(0)", nil, 0},
		{"exp(0) + cos(0)", nil, 2},
		{"sqrt(16)", nil, 4},
		{"log(exp(1))", nil, 1},
	}
	for _, tc := range tests {
		got := evalOne(t, tc.src, tc.env)
		if math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("%q = %v, want %v", tc.src, got, tc.want)
		}
	}
}

// Binding must go through symbol lookup, never text substitution. With both
// r and r1 bound, each resolves independently.
func TestPrefixSymbolsResolveIndependently(t *testing.T) {
	env := map[string]float64{"r": 2, "r1": 5, "x": 3}
	if got := evalOne(t, "r*x", env); got != 6 {
		t.Errorf("r*x = %v, want 6", got)
	}
	if got := evalOne(t, "r1*x", env); got != 15 {
		t.Errorf("r1*x = %v, want 15", got)
	}
	if got := evalOne(t, "r1 - r", env); got != 3 {
		t.Errorf("r1 - r = %v, want 3", got)
	}
}

func TestUndefinedSymbol(t *testing.T) {
	e := MustParse("a*x - b*x*y")
	_, err := e.Eval(MapEnv(map[string]float64{"a": 1, "x": 2, "y": 3}))
	if !errors.Is(err, popdyn.ErrUndefinedSymbol) {
		t.Fatalf("expected ErrUndefinedSymbol, got %v", err)
	}
}

func TestDivideByZero(t *testing.T) {
	e := MustParse("x/y")
	_, err := e.Eval(MapEnv(map[string]float64{"x": 1, "y": 0}))
	if !errors.Is(err, ErrDivideByZero) {
		t.Fatalf("expected ErrDivideByZero, got %v", err)
	}
}

func TestLogDomain(t *testing.T) {
	for _, src := range []string{"log(x)", "ln(x)", "sqrt(x)"} {
		e := MustParse(src)
		_, err := e.Eval(MapEnv(map[string]float64{"x": -1}))
		if !errors.Is(err, ErrDomain) {
			t.Errorf("%s at x=-1: expected ErrDomain, got %v", src, err)
		}
	}
}

func TestSymbols(t *testing.T) {
	e := MustParse("r1*x*(1 - (x + alpha*y)/K1)")
	got := Symbols(e)
	want := []string{"K1", "alpha", "r1", "x", "y"}
	if len(got) != len(want) {
		t.Fatalf("Symbols = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Symbols = %v, want %v", got, want)
		}
	}
}

func TestSymbolsExcludeFunctionNames(t *testing.T) {
	got := Symbols(MustParse("sin(x) + cos(t)"))
	for _, name := range got {
		if name == "sin" || name == "cos" {
			t.Fatalf("function name leaked into symbols: %v", got)
		}
	}
	if len(got) != 2 {
		t.Fatalf("Symbols = %v, want [t x]", got)
	}
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		"",
		"1 +",
		"(1 + 2",
		"foo(1)", // unknown function
		"1 2",
		"*x",
	}
	for _, src := range bad {
		if _, err := Parse(src); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", src)
		}
	}
}

func TestParseRejectsInvalidCharacters(t *testing.T) {
	// Characters outside the grammar must fail the whole parse, not
	// truncate the equation at the first one.
	bad := []string{
		"x % 2",
		"r*x # comment",
		"a $ b",
		"@x",
	}
	for _, src := range bad {
		_, err := Parse(src)
		if err == nil {
			t.Errorf("Parse(%q) succeeded, want error", src)
			continue
		}
		if !strings.Contains(err.Error(), "invalid character") {
			t.Errorf("Parse(%q) error lacks character context: %v", src, err)
		}
	}
}

func TestEvalIsPure(t *testing.T) {
	e := MustParse("r*x*(1 - x/K)")
	env := MapEnv(map[string]float64{"r": 0.5, "x": 10, "K": 100})
	first, err := e.Eval(env)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := e.Eval(env)
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatalf("eval not deterministic: %v then %v", first, again)
		}
	}
}
