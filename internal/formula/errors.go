package formula

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax    = errors.New("formula: syntax error")
	ErrUndefined = errors.New("formula: undefined name")
	ErrArity     = errors.New("formula: wrong number of arguments")
)

// SyntaxError reports where in the source a formula stopped making sense.
// Pos is a byte offset.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("formula: %s at offset %d", e.Msg, e.Pos)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

func syntaxErr(pos int, format string, args ...any) error {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
