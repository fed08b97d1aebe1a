package expr

import (
	"iter"

	"github.com/san-kum/valarray/internal/numeric"
)

// Position is a read-only cursor into an expression or container. Two
// positions are equal when they point at the same index.
type Position struct {
	src   Expr
	index int
}

func Begin(e Expr) Position { return Position{src: e} }
func End(e Expr) Position   { return Position{src: e, index: Extent(e)} }

func (p Position) Next() Position {
	p.index++
	return p
}

func (p Position) Prev() Position {
	p.index--
	return p
}

func (p Position) Index() int            { return p.index }
func (p Position) Elem() numeric.Value   { return p.src.Elem(p.index) }
func (p Position) Equal(q Position) bool { return p.index == q.index }

// All yields index/value pairs of e in order.
func All(e Expr) iter.Seq2[int, numeric.Value] {
	return func(yield func(int, numeric.Value) bool) {
		for i, n := 0, Extent(e); i < n; i++ {
			if !yield(i, e.Elem(i)) {
				return
			}
		}
	}
}

// Values yields the elements of e converted to T.
func Values[T numeric.Scalar](e Expr) iter.Seq[T] {
	return func(yield func(T) bool) {
		for i, n := 0, Extent(e); i < n; i++ {
			if !yield(numeric.Convert[T](e.Elem(i))) {
				return
			}
		}
	}
}

// Collect evaluates e into a plain slice of T. It does not construct an
// array.
func Collect[T numeric.Scalar](e Expr) []T {
	out := make([]T, 0, Extent(e))
	for x := range Values[T](e) {
		out = append(out, x)
	}
	return out
}
