// Package formula parses infix arithmetic over named arrays into lazy
// expression trees.
//
// The grammar is the usual one:
//
//	formula = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary }
//	unary   = "-" unary | primary
//	primary = number | name | name "(" formula ")" | "(" formula ")"
//
// Numbers are integers (4), reals (2.5, 1e3) or imaginary literals (2i) and
// broadcast against arrays. Operators are left associative.
package formula

import (
	"fmt"
	"slices"

	"github.com/san-kum/valarray/internal/expr"
	"github.com/san-kum/valarray/internal/numeric"
)

// Env resolves the names a formula refers to.
type Env interface {
	Lookup(name string) (expr.Expr, error)
}

// Vars is an Env backed by a map.
type Vars map[string]expr.Expr

func (v Vars) Lookup(name string) (expr.Expr, error) {
	if e, ok := v[name]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUndefined, name)
}

// Func builds the expression for a call from its single argument.
type Func func(arg expr.Expr) expr.Expr

// Funcs are the callable names. sum and len fold their argument when the
// formula is parsed and broadcast the result.
var Funcs = map[string]Func{
	"sqrt": func(e expr.Expr) expr.Expr { return expr.Sqrt(e) },
	"neg":  func(e expr.Expr) expr.Expr { return expr.Neg(e) },
	"abs":  func(e expr.Expr) expr.Expr { return expr.Abs(e) },
	"sum":  func(e expr.Expr) expr.Expr { return expr.BroadcastValue(expr.Sum(e)) },
	"len":  func(e expr.Expr) expr.Expr { return expr.Broadcast(expr.Extent(e)) },
}

// FuncNames lists the callable names in order.
func FuncNames() []string {
	names := make([]string, 0, len(Funcs))
	for name := range Funcs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

type parser struct {
	toks []token
	i    int
	env  Env
}

// Parse builds the expression tree for src, resolving names through env.
// Only sum and len look at element values while parsing.
func Parse(src string, env Env) (expr.Expr, error) {
	toks, err := scan(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, env: env}
	if p.peek().typ == tokEOF {
		return nil, syntaxErr(0, "empty formula")
	}
	e, err := p.expr(0)
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.typ != tokEOF {
		return nil, syntaxErr(t.pos, "unexpected %s", t.typ)
	}
	return e, nil
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) advance() token {
	t := p.toks[p.i]
	if t.typ != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) need(tt tokenType) (token, error) {
	t := p.peek()
	if t.typ != tt {
		return t, syntaxErr(t.pos, "expected %s, found %s", tt, t.typ)
	}
	return p.advance(), nil
}

// binding powers
const (
	bpSum     = 10
	bpProduct = 20
	bpPrefix  = 30
)

func lbp(t tokenType) (int, bool) {
	switch t {
	case tokPlus, tokMinus:
		return bpSum, true
	case tokStar, tokSlash:
		return bpProduct, true
	}
	return 0, false
}

func (p *parser) expr(minBP int) (expr.Expr, error) {
	left, err := p.prefix()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		bp, ok := lbp(op.typ)
		if !ok || bp <= minBP {
			return left, nil
		}
		p.advance()
		right, err := p.expr(bp)
		if err != nil {
			return nil, err
		}
		switch op.typ {
		case tokPlus:
			left = expr.Add(left, right)
		case tokMinus:
			left = expr.Sub(left, right)
		case tokStar:
			left = expr.Mul(left, right)
		case tokSlash:
			left = expr.Div(left, right)
		}
	}
}

func (p *parser) prefix() (expr.Expr, error) {
	t := p.advance()
	switch t.typ {
	case tokNumber:
		v, err := numeric.Parse(t.text)
		if err != nil {
			return nil, syntaxErr(t.pos, "bad number %q", t.text)
		}
		return expr.BroadcastValue(v), nil

	case tokIdent:
		if p.peek().typ == tokLParen {
			return p.call(t)
		}
		e, err := p.env.Lookup(t.text)
		if err != nil {
			return nil, fmt.Errorf("offset %d: %w", t.pos, err)
		}
		return e, nil

	case tokMinus:
		operand, err := p.expr(bpPrefix)
		if err != nil {
			return nil, err
		}
		return expr.Neg(operand), nil

	case tokLParen:
		inner, err := p.expr(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.need(tokRParen); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, syntaxErr(t.pos, "unexpected %s", t.typ)
}

func (p *parser) call(name token) (expr.Expr, error) {
	fn, ok := Funcs[name.text]
	if !ok {
		return nil, syntaxErr(name.pos, "unknown function %q", name.text)
	}
	p.advance() // (
	if p.peek().typ == tokRParen {
		return nil, fmt.Errorf("%w: %s takes one argument, got none", ErrArity, name.text)
	}
	arg, err := p.expr(0)
	if err != nil {
		return nil, err
	}
	if p.peek().typ == tokComma {
		return nil, fmt.Errorf("%w: %s takes one argument", ErrArity, name.text)
	}
	if _, err := p.need(tokRParen); err != nil {
		return nil, err
	}
	return fn(arg), nil
}
