package vector

import "iter"

// MinCapacity is the storage floor of a freshly constructed vector.
const MinCapacity = 8

// Vector is a double-ended growable array.
//
// Storage is a single backing slice split into three regions:
//
//	buf[:begin]      spare capacity at the front
//	buf[begin:end]   live elements, front to back
//	buf[end:]        spare capacity at the back
//
// Slots outside the live region always hold the zero value so that removed
// elements are not kept reachable. The zero Vector is empty and allocates
// MinCapacity on its first push. A Vector must not be copied by value; use
// Clone or Move.
type Vector[T any] struct {
	buf   []T
	begin int
	end   int
}

// New returns an empty vector with MinCapacity slots.
func New[T any]() *Vector[T] {
	return track(&Vector[T]{buf: make([]T, MinCapacity)})
}

// WithSize returns a vector holding n zero values. Its capacity is exactly
// n, or MinCapacity when n is zero.
func WithSize[T any](n int) *Vector[T] {
	n = max(n, 0)
	capacity := n
	if capacity == 0 {
		capacity = MinCapacity
	}
	return track(&Vector[T]{buf: make([]T, capacity), end: n})
}

// Of builds a vector from a literal sequence.
func Of[T any](items ...T) *Vector[T] {
	return FromSlice(items)
}

// FromSlice copies items into a vector sized up front.
func FromSlice[T any](items []T) *Vector[T] {
	v := &Vector[T]{buf: make([]T, max(len(items), MinCapacity))}
	v.end = copy(v.buf, items)
	return track(v)
}

// FromSized builds a vector of n elements from a random-access source.
func FromSized[T any](n int, at func(i int) T) *Vector[T] {
	n = max(n, 0)
	v := &Vector[T]{buf: make([]T, max(n, MinCapacity))}
	for i := 0; i < n; i++ {
		v.buf[i] = at(i)
	}
	v.end = n
	return track(v)
}

// Collect drains a forward-only sequence, growing as elements arrive.
func Collect[T any](seq iter.Seq[T]) *Vector[T] {
	v := &Vector[T]{buf: make([]T, MinCapacity)}
	for x := range seq {
		v.PushBack(x)
	}
	return track(v)
}

// Convert copies src element by element into a vector of another element
// type.
func Convert[T, U any](src *Vector[U], fn func(U) T) *Vector[T] {
	items := src.live()
	return FromSized(len(items), func(i int) T { return fn(items[i]) })
}

// Clone returns a deep copy of v.
func (v *Vector[T]) Clone() *Vector[T] {
	return FromSlice(v.live())
}

// Move transfers v's storage to a new vector and leaves v empty with no
// storage.
func (v *Vector[T]) Move() *Vector[T] {
	moved := &Vector[T]{buf: v.buf, begin: v.begin, end: v.end}
	v.buf, v.begin, v.end = nil, 0, 0
	return track(moved)
}

// CopyFrom releases v's storage and replaces it with a deep copy of src.
func (v *Vector[T]) CopyFrom(src *Vector[T]) {
	if v == src {
		return
	}
	items := src.live()
	v.Release()
	v.buf = make([]T, max(len(items), MinCapacity))
	v.end = copy(v.buf, items)
}

// MoveFrom releases v's storage and adopts src's. src is left empty with no
// storage and remains safe to use or release.
func (v *Vector[T]) MoveFrom(src *Vector[T]) {
	if v == src {
		return
	}
	v.Release()
	v.buf, v.begin, v.end = src.buf, src.begin, src.end
	src.buf, src.begin, src.end = nil, 0, 0
}

// Release clears every live element and drops the storage. Releasing twice
// is a no-op.
func (v *Vector[T]) Release() {
	if v.buf == nil {
		return
	}
	clear(v.live())
	v.buf, v.begin, v.end = nil, 0, 0
}

func (v *Vector[T]) live() []T {
	return v.buf[v.begin:v.end]
}

func (v *Vector[T]) Len() int      { return v.end - v.begin }
func (v *Vector[T]) Cap() int      { return len(v.buf) }
func (v *Vector[T]) FrontCap() int { return v.begin }
func (v *Vector[T]) BackCap() int  { return len(v.buf) - v.end }
func (v *Vector[T]) IsEmpty() bool { return v.end == v.begin }

func (v *Vector[T]) check(op string, i int) error {
	if i < 0 || i >= v.Len() {
		return &RangeError{Op: op, Index: i, Len: v.Len()}
	}
	return nil
}

// At returns the element at index i.
func (v *Vector[T]) At(i int) (T, error) {
	if err := v.check("at", i); err != nil {
		var zero T
		return zero, err
	}
	return v.buf[v.begin+i], nil
}

// Ref returns a pointer to the element at index i. The pointer is valid
// until the next operation that grows or releases v.
func (v *Vector[T]) Ref(i int) (*T, error) {
	if err := v.check("ref", i); err != nil {
		return nil, err
	}
	return &v.buf[v.begin+i], nil
}

// Set overwrites the element at index i.
func (v *Vector[T]) Set(i int, x T) error {
	if err := v.check("set", i); err != nil {
		return err
	}
	v.buf[v.begin+i] = x
	return nil
}

// Get is At for callers that have already established i is in range. It
// panics with a *RangeError otherwise, like slice indexing.
func (v *Vector[T]) Get(i int) T {
	if err := v.check("get", i); err != nil {
		panic(err)
	}
	return v.buf[v.begin+i]
}

// Put is the panicking counterpart of Set.
func (v *Vector[T]) Put(i int, x T) {
	if err := v.check("put", i); err != nil {
		panic(err)
	}
	v.buf[v.begin+i] = x
}

func (v *Vector[T]) Front() (T, error) {
	if v.IsEmpty() {
		var zero T
		return zero, emptyError("front")
	}
	return v.buf[v.begin], nil
}

func (v *Vector[T]) Back() (T, error) {
	if v.IsEmpty() {
		var zero T
		return zero, emptyError("back")
	}
	return v.buf[v.end-1], nil
}

// PushBack appends x in amortised constant time.
func (v *Vector[T]) PushBack(x T) {
	v.ReserveBack(1)
	v.buf[v.end] = x
	v.end++
}

// PushFront prepends x in amortised constant time.
func (v *Vector[T]) PushFront(x T) {
	v.ReserveFront(1)
	v.begin--
	v.buf[v.begin] = x
}

func (v *Vector[T]) PopBack() error {
	if v.IsEmpty() {
		return emptyError("pop back")
	}
	v.end--
	var zero T
	v.buf[v.end] = zero
	return nil
}

func (v *Vector[T]) PopFront() error {
	if v.IsEmpty() {
		return emptyError("pop front")
	}
	var zero T
	v.buf[v.begin] = zero
	v.begin++
	return nil
}

// ReserveBack makes room for n more elements at the back. When the back
// spare is too small the storage grows and the front keeps whatever part of
// the new slack the back does not claim, at least half of it.
func (v *Vector[T]) ReserveBack(n int) {
	if n <= v.BackCap() {
		return
	}
	capacity, slack := v.grow(n)
	back := max(n, slack/2)
	v.relocate(capacity, capacity-back-v.Len())
}

// ReserveFront is ReserveBack for the front end.
func (v *Vector[T]) ReserveFront(n int) {
	if n <= v.FrontCap() {
		return
	}
	capacity, slack := v.grow(n)
	v.relocate(capacity, max(n, slack/2))
}

// grow doubles the capacity until n more elements fit and reports the new
// capacity with the spare it leaves around the live elements.
func (v *Vector[T]) grow(n int) (capacity, slack int) {
	size := v.Len()
	capacity = 2 * len(v.buf)
	if capacity == 0 {
		capacity = MinCapacity
	}
	for capacity < size+n {
		capacity *= 2
	}
	return capacity, capacity - size
}

// relocate moves the live elements, in order, to fresh storage starting at
// begin. The new storage is fully populated before it replaces the old one,
// so v is never observed half-moved.
func (v *Vector[T]) relocate(capacity, begin int) {
	next := make([]T, capacity)
	size := copy(next[begin:], v.live())
	clear(v.live())
	v.buf, v.begin, v.end = next, begin, begin+size
}

// All yields index/element pairs front to back.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := v.begin; i < v.end; i++ {
			if !yield(i-v.begin, v.buf[i]) {
				return
			}
		}
	}
}

// Backward yields index/element pairs back to front.
func (v *Vector[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := v.end - 1; i >= v.begin; i-- {
			if !yield(i-v.begin, v.buf[i]) {
				return
			}
		}
	}
}

// Values yields the elements front to back.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := v.begin; i < v.end; i++ {
			if !yield(v.buf[i]) {
				return
			}
		}
	}
}

// Slice returns a copy of the live elements.
func (v *Vector[T]) Slice() []T {
	out := make([]T, v.Len())
	copy(out, v.live())
	return out
}
