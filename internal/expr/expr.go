// Package expr implements lazily evaluated elementwise expressions over
// numeric arrays.
//
// An expression is a read-only view: it reports a length and recomputes
// the element at a position every time it is asked. Building a tree with
// Add, Mul, Sqrt and friends does no element work and allocates no array;
// values only exist once a tree is folded or copied into an owning array.
//
// Views reference owning arrays (Container) and copy nested views. An
// array must outlive, and keep its length for, every view built over it.
//
// A broadcast scalar has length Unbounded so that it never shortens a
// binary view. Anything that walks an expression on its own (folds,
// iteration, formatting) sees a broadcast scalar as a single element.
package expr

import (
	"math"

	"github.com/san-kum/valarray/internal/numeric"
)

// Unbounded is the length of a broadcast scalar.
const Unbounded = math.MaxInt

// Expr is anything indexable by position that reports a length and an
// element kind.
type Expr interface {
	Len() int
	Elem(i int) numeric.Value
	Kind() numeric.Kind
}

// Container is an owning array. Views borrow containers instead of copying
// them.
type Container interface {
	Expr
	Cap() int
}

// Ownership records how a view holds one of its operands.
type Ownership uint8

const (
	// Owned operands are views copied into the slot.
	Owned Ownership = iota
	// Borrowed operands are containers referenced from the slot.
	Borrowed
)

func (o Ownership) String() string {
	if o == Borrowed {
		return "borrowed"
	}
	return "owned"
}

type slot struct {
	e   Expr
	own Ownership
}

func hold(e Expr) slot {
	if _, ok := e.(Container); ok {
		return slot{e: e, own: Borrowed}
	}
	return slot{e: e, own: Owned}
}

// Scalar broadcasts one value to every position.
type Scalar struct {
	v numeric.Value
}

// Broadcast wraps x so it can stand in for an array operand.
func Broadcast[T numeric.Scalar](x T) Scalar {
	return Scalar{v: numeric.Of(x)}
}

func BroadcastValue(v numeric.Value) Scalar {
	return Scalar{v: v}
}

func (s Scalar) Len() int               { return Unbounded }
func (s Scalar) Elem(int) numeric.Value { return s.v }
func (s Scalar) Kind() numeric.Kind     { return s.v.Kind() }
func (s Scalar) Value() numeric.Value   { return s.v }

// Unary applies an operation to every element of its operand.
type Unary struct {
	operand slot
	name    string
	kind    numeric.Kind
	fn      numeric.UnaryFunc
}

func (u Unary) Len() int                   { return u.operand.e.Len() }
func (u Unary) Elem(i int) numeric.Value   { return u.fn(u.operand.e.Elem(i)) }
func (u Unary) Kind() numeric.Kind         { return u.kind }
func (u Unary) Operand() (Expr, Ownership) { return u.operand.e, u.operand.own }

// Binary combines two operands position by position. Its length is the
// shorter of the two, so mismatched operands truncate.
type Binary struct {
	left, right slot
	name        string
	kind        numeric.Kind
	fn          numeric.BinaryFunc
}

func (b Binary) Len() int { return min(b.left.e.Len(), b.right.e.Len()) }

func (b Binary) Elem(i int) numeric.Value {
	return b.fn(b.left.e.Elem(i), b.right.e.Elem(i))
}

func (b Binary) Kind() numeric.Kind { return b.kind }

func (b Binary) Operands() (left Expr, lo Ownership, right Expr, ro Ownership) {
	return b.left.e, b.left.own, b.right.e, b.right.own
}

// Apply wraps e in a unary view whose elements are fn's results converted
// to kind.
func Apply(e Expr, name string, kind numeric.Kind, fn numeric.UnaryFunc) Unary {
	return apply(e, name, kind, func(v numeric.Value) numeric.Value {
		return fn(v).As(kind)
	})
}

func apply(e Expr, name string, kind numeric.Kind, fn numeric.UnaryFunc) Unary {
	return Unary{operand: hold(e), name: name, kind: kind, fn: fn}
}

// Map applies a typed function elementwise. Operands are converted to T
// before fn sees them, and the view's kind is T's.
func Map[T numeric.Scalar](e Expr, fn func(T) T) Unary {
	return apply(e, "map", numeric.KindOf[T](), func(v numeric.Value) numeric.Value {
		return numeric.Of(fn(numeric.Convert[T](v)))
	})
}

// Neg negates every element.
func Neg(e Expr) Unary {
	return apply(e, "-", e.Kind(), numeric.Neg)
}

// Sqrt takes the square root of every element. Integer and real operands
// produce float64, complex operands complex128.
func Sqrt(e Expr) Unary {
	return apply(e, "sqrt", numeric.SqrtKind(e.Kind()), numeric.Sqrt)
}

// Abs takes the magnitude of every element.
func Abs(e Expr) Unary {
	return apply(e, "abs", e.Kind().Real(), numeric.Abs)
}

func binary(name string, fn numeric.BinaryFunc, l, r Expr) Binary {
	return Binary{
		left:  hold(l),
		right: hold(r),
		name:  name,
		kind:  numeric.Promote(l.Kind(), r.Kind()),
		fn:    fn,
	}
}

func Add(l, r Expr) Binary { return binary("+", numeric.Add, l, r) }
func Sub(l, r Expr) Binary { return binary("-", numeric.Sub, l, r) }
func Mul(l, r Expr) Binary { return binary("*", numeric.Mul, l, r) }
func Div(l, r Expr) Binary { return binary("/", numeric.Div, l, r) }

// Combine builds a binary view from a caller supplied operation. Both
// operands reach fn promoted to a common kind, and its results are
// converted back to that kind.
func Combine(l, r Expr, name string, fn numeric.BinaryFunc) Binary {
	k := numeric.Promote(l.Kind(), r.Kind())
	return binary(name, func(a, b numeric.Value) numeric.Value {
		return fn(a.As(k), b.As(k)).As(k)
	}, l, r)
}
