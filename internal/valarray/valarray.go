// Package valarray provides Array, an owning numeric array that takes part
// in lazy expressions.
//
// Arithmetic on arrays goes through package expr and yields views:
//
//	x := valarray.Of(1.0, 2.0, 3.0)
//	y := valarray.Make[int](3)
//	e := expr.Sub(expr.Broadcast(1), expr.Add(x, y)) // no work yet
//	z := valarray.From[float64](e)                   // one array built here
//
// An array referenced by a view must stay alive and keep its length while
// the view is in use.
package valarray

import (
	"io"
	"iter"

	"github.com/san-kum/valarray/internal/expr"
	"github.com/san-kum/valarray/internal/numeric"
	"github.com/san-kum/valarray/internal/vector"
)

// Array is a numeric array over a double-ended vector. The zero Array is
// empty and ready to use; its vector is created on first use and counts
// toward vector.Instances like any other. An Array must not be copied by
// value.
type Array[T numeric.Scalar] struct {
	vec *vector.Vector[T]
}

var _ expr.Container = (*Array[float64])(nil)

func wrap[T numeric.Scalar](v *vector.Vector[T]) *Array[T] {
	return &Array[T]{vec: v}
}

// New returns an empty array.
func New[T numeric.Scalar]() *Array[T] {
	return wrap(vector.New[T]())
}

// Make returns an array of n zeros.
func Make[T numeric.Scalar](n int) *Array[T] {
	return wrap(vector.WithSize[T](n))
}

// Of builds an array from a literal sequence.
func Of[T numeric.Scalar](xs ...T) *Array[T] {
	return wrap(vector.FromSlice(xs))
}

func FromSlice[T numeric.Scalar](xs []T) *Array[T] {
	return wrap(vector.FromSlice(xs))
}

func Collect[T numeric.Scalar](seq iter.Seq[T]) *Array[T] {
	return wrap(vector.Collect(seq))
}

// From evaluates e into a new array, converting every element to T. This
// is the only way an expression becomes an array, and it builds exactly
// one. A broadcast scalar materialises as a single element.
func From[T numeric.Scalar](e expr.Expr) *Array[T] {
	if a, ok := e.(*Array[T]); ok {
		return a.Clone()
	}
	return wrap(vector.FromSized(expr.Extent(e), func(i int) T {
		return numeric.Convert[T](e.Elem(i))
	}))
}

// Clone returns a deep copy of a.
func (a *Array[T]) Clone() *Array[T] {
	return wrap(a.data().Clone())
}

// Move transfers a's elements to a new array and leaves a empty.
func (a *Array[T]) Move() *Array[T] {
	return wrap(a.data().Move())
}

func (a *Array[T]) data() *vector.Vector[T] {
	if a.vec == nil {
		a.vec = vector.New[T]()
	}
	return a.vec
}

func (a *Array[T]) Len() int                 { return a.data().Len() }
func (a *Array[T]) Cap() int                 { return a.data().Cap() }
func (a *Array[T]) Kind() numeric.Kind       { return numeric.KindOf[T]() }
func (a *Array[T]) Elem(i int) numeric.Value { return numeric.Of(a.data().Get(i)) }
func (a *Array[T]) At(i int) (T, error)      { return a.data().At(i) }
func (a *Array[T]) Ref(i int) (*T, error)    { return a.data().Ref(i) }
func (a *Array[T]) Set(i int, x T) error     { return a.data().Set(i, x) }
func (a *Array[T]) Get(i int) T              { return a.data().Get(i) }
func (a *Array[T]) Front() (T, error)        { return a.data().Front() }
func (a *Array[T]) Back() (T, error)         { return a.data().Back() }
func (a *Array[T]) PushBack(x T)             { a.data().PushBack(x) }
func (a *Array[T]) PushFront(x T)            { a.data().PushFront(x) }
func (a *Array[T]) PopBack() error           { return a.data().PopBack() }
func (a *Array[T]) PopFront() error          { return a.data().PopFront() }
func (a *Array[T]) All() iter.Seq2[int, T]   { return a.data().All() }
func (a *Array[T]) Values() iter.Seq[T]      { return a.data().Values() }
func (a *Array[T]) Slice() []T               { return a.data().Slice() }
func (a *Array[T]) Release()                 { a.data().Release() }

// Assign copies src into a position by position over the shorter of the
// two lengths. Elements of a past that prefix keep their values and a is
// never resized. Elements of another kind are converted as by From.
func (a *Array[T]) Assign(src expr.Expr) *Array[T] {
	if same, ok := src.(*Array[T]); ok {
		a.assignSame(same)
		return a
	}
	dst := a.data()
	for i, n := 0, min(dst.Len(), src.Len()); i < n; i++ {
		dst.Put(i, numeric.Convert[T](src.Elem(i)))
	}
	return a
}

func (a *Array[T]) assignSame(src *Array[T]) {
	if a == src {
		return
	}
	dst, from := a.data(), src.data()
	for i, n := 0, min(dst.Len(), from.Len()); i < n; i++ {
		dst.Put(i, from.Get(i))
	}
}

// AssignScalar sets every element of a to s converted to T.
func AssignScalar[T, S numeric.Scalar](a *Array[T], s S) *Array[T] {
	return a.Assign(expr.Broadcast(s))
}

// CopyFrom replaces a's contents and length with a deep copy of src.
func (a *Array[T]) CopyFrom(src *Array[T]) {
	a.data().CopyFrom(src.data())
}

// MoveFrom replaces a's contents with src's, leaving src empty.
func (a *Array[T]) MoveFrom(src *Array[T]) {
	a.data().MoveFrom(src.data())
}

// Apply returns a view of fn applied to every element.
func (a *Array[T]) Apply(fn func(T) T) expr.Unary {
	return expr.Map(a, fn)
}

// Sqrt returns a view of the elementwise square root.
func (a *Array[T]) Sqrt() expr.Unary {
	return expr.Sqrt(a)
}

// Neg returns a view of the elementwise negation.
func (a *Array[T]) Neg() expr.Unary {
	return expr.Neg(a)
}

// Accumulate folds the elements strictly left to right. An empty array
// yields the zero T regardless of fn.
func (a *Array[T]) Accumulate(fn func(acc, x T) T) T {
	var r T
	v := a.data()
	if v.Len() == 0 {
		return r
	}
	r = v.Get(0)
	for i := 1; i < v.Len(); i++ {
		r = fn(r, v.Get(i))
	}
	return r
}

func (a *Array[T]) Sum() T {
	return a.Accumulate(func(acc, x T) T { return acc + x })
}

// String renders the elements separated by spaces with a trailing newline.
func (a *Array[T]) String() string {
	return expr.Format(a)
}

func (a *Array[T]) WriteTo(w io.Writer) (int64, error) {
	return expr.Fprint(w, a)
}
