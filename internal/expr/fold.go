package expr

import "github.com/san-kum/valarray/internal/numeric"

// Extent is the number of positions a walk over e visits. A broadcast
// scalar is walked as a single element.
func Extent(e Expr) int {
	n := e.Len()
	if n == Unbounded {
		return 1
	}
	return n
}

// Fold reduces e strictly left to right: r = e[0], then r = fn(r, e[i]).
//
// An empty expression folds to the zero value of its kind whatever fn is,
// which is wrong for operations whose identity is not zero (a product
// should start at one). FoldFrom takes the identity explicitly.
func Fold(e Expr, fn numeric.BinaryFunc) numeric.Value {
	n := Extent(e)
	if n == 0 {
		return numeric.Zero(e.Kind())
	}
	r := e.Elem(0)
	for i := 1; i < n; i++ {
		r = fn(r, e.Elem(i))
	}
	return r
}

// FoldFrom reduces e left to right starting from init.
func FoldFrom(e Expr, init numeric.Value, fn numeric.BinaryFunc) numeric.Value {
	r := init
	for i, n := 0, Extent(e); i < n; i++ {
		r = fn(r, e.Elem(i))
	}
	return r
}

// Sum adds every element of e in the kind of e.
func Sum(e Expr) numeric.Value {
	return Fold(e, numeric.Add)
}

// Accumulate is Fold with a typed operation. Elements are converted to T
// before fn sees them; an empty expression yields the zero T.
func Accumulate[T numeric.Scalar](e Expr, fn func(acc, x T) T) T {
	var r T
	n := Extent(e)
	if n == 0 {
		return r
	}
	r = numeric.Convert[T](e.Elem(0))
	for i := 1; i < n; i++ {
		r = fn(r, numeric.Convert[T](e.Elem(i)))
	}
	return r
}

// AccumulateFrom is FoldFrom with a typed operation.
func AccumulateFrom[T numeric.Scalar](e Expr, init T, fn func(acc, x T) T) T {
	r := init
	for i, n := 0, Extent(e); i < n; i++ {
		r = fn(r, numeric.Convert[T](e.Elem(i)))
	}
	return r
}
