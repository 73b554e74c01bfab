package expr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Parse compiles an equation source string into an expression tree.
func Parse(src string) (Expr, error) {
	p := &parser{src: src}
	p.next()
	e, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.tok.kind == tokInvalid {
		return nil, fmt.Errorf("expr: invalid character %q at offset %d in %q", p.tok.text, p.tok.pos, src)
	}
	if p.tok.kind != tokEOF {
		return nil, fmt.Errorf("expr: unexpected %q at offset %d in %q", p.tok.text, p.tok.pos, src)
	}
	return e, nil
}

// MustParse is Parse for statically-known equations; it panics on error and
// is intended for the built-in model catalog.
func MustParse(src string) Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokInvalid
	tokNum
	tokIdent
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokKind
	text string
	pos  int
}

type parser struct {
	src string
	off int
	tok token
}

func (p *parser) next() {
	for p.off < len(p.src) && (p.src[p.off] == ' ' || p.src[p.off] == '\t') {
		p.off++
	}
	start := p.off
	if p.off >= len(p.src) {
		p.tok = token{kind: tokEOF, pos: start}
		return
	}
	c := p.src[p.off]
	switch {
	case c == '(':
		p.off++
		p.tok = token{kind: tokLParen, text: "(", pos: start}
	case c == ')':
		p.off++
		p.tok = token{kind: tokRParen, text: ")", pos: start}
	case strings.IndexByte("+-*/^", c) >= 0:
		p.off++
		p.tok = token{kind: tokOp, text: string(c), pos: start}
	case c >= '0' && c <= '9' || c == '.':
		for p.off < len(p.src) && (p.src[p.off] >= '0' && p.src[p.off] <= '9' || p.src[p.off] == '.') {
			p.off++
		}
		// exponent suffix, e.g. 1e-3
		if p.off < len(p.src) && (p.src[p.off] == 'e' || p.src[p.off] == 'E') {
			mark := p.off
			p.off++
			if p.off < len(p.src) && (p.src[p.off] == '+' || p.src[p.off] == '-') {
				p.off++
			}
			if p.off < len(p.src) && p.src[p.off] >= '0' && p.src[p.off] <= '9' {
				for p.off < len(p.src) && p.src[p.off] >= '0' && p.src[p.off] <= '9' {
					p.off++
				}
			} else {
				p.off = mark
			}
		}
		p.tok = token{kind: tokNum, text: p.src[start:p.off], pos: start}
	case isIdentStart(rune(c)):
		for p.off < len(p.src) && isIdentPart(rune(p.src[p.off])) {
			p.off++
		}
		p.tok = token{kind: tokIdent, text: p.src[start:p.off], pos: start}
	default:
		p.off++
		p.tok = token{kind: tokInvalid, text: string(c), pos: start}
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

// parseSum handles + and -, the lowest precedence level.
func (p *parser) parseSum() (Expr, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokOp && (p.tok.text == "+" || p.tok.text == "-") {
		op := p.tok.text[0]
		p.next()
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = binary{op: op, l: left, r: right}
	}
	return left, nil
}

func (p *parser) parseProduct() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokOp && (p.tok.text == "*" || p.tok.text == "/") {
		op := p.tok.text[0]
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binary{op: op, l: left, r: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Expr, error) {
	if p.tok.kind == tokOp && p.tok.text == "-" {
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return neg{x: x}, nil
	}
	return p.parsePower()
}

// parsePower handles ^, right-associative and binding tighter than unary
// minus on its right operand: -x^2 is -(x^2), x^-1 is x^(-1).
func (p *parser) parsePower() (Expr, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.tok.kind == tokOp && p.tok.text == "^" {
		p.next()
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return binary{op: '^', l: base, r: exp}, nil
	}
	return base, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	switch p.tok.kind {
	case tokNum:
		v, err := strconv.ParseFloat(p.tok.text, 64)
		if err != nil {
			return nil, fmt.Errorf("expr: bad number %q at offset %d", p.tok.text, p.tok.pos)
		}
		p.next()
		return num(v), nil
	case tokIdent:
		name := p.tok.text
		p.next()
		if p.tok.kind == tokLParen {
			fn, ok := builtins[name]
			if !ok {
				return nil, fmt.Errorf("expr: unknown function %q", name)
			}
			p.next()
			arg, err := p.parseSum()
			if err != nil {
				return nil, err
			}
			if p.tok.kind != tokRParen {
				return nil, fmt.Errorf("expr: missing ) after %s(...", name)
			}
			p.next()
			return call{name: name, fn: fn, arg: arg}, nil
		}
		return ident(name), nil
	case tokLParen:
		p.next()
		e, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, fmt.Errorf("expr: missing closing parenthesis at offset %d", p.tok.pos)
		}
		p.next()
		return e, nil
	case tokInvalid:
		return nil, fmt.Errorf("expr: invalid character %q at offset %d", p.tok.text, p.tok.pos)
	}
	return nil, fmt.Errorf("expr: unexpected %q at offset %d", p.tok.text, p.tok.pos)
}
