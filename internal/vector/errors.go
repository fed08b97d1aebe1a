package vector

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is the single failure kind of a vector: an index beyond the
// live elements, or a front/back access or removal on an empty vector.
var ErrOutOfRange = errors.New("vector: index out of range")

// RangeError wraps ErrOutOfRange with the failing operation.
type RangeError struct {
	Op    string
	Index int
	Len   int
}

func (e *RangeError) Error() string {
	if e.Len == 0 && e.Index < 0 {
		return fmt.Sprintf("vector: %s on empty vector", e.Op)
	}
	return fmt.Sprintf("vector: %s: index %d out of range [0:%d]", e.Op, e.Index, e.Len)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

func emptyError(op string) error {
	return &RangeError{Op: op, Index: -1}
}
