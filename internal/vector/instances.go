package vector

import "sync/atomic"

var instances atomic.Int64

// Instances reports how many vectors have been constructed by any path.
// Expression code uses it to prove that building a tree materialises
// nothing.
func Instances() int64 {
	return instances.Load()
}

func track[T any](v *Vector[T]) *Vector[T] {
	instances.Add(1)
	return v
}
