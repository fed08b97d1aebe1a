package expr

import (
	"io"
	"strconv"
	"strings"
)

// Labeled containers render under their label in Describe.
type Labeled interface {
	Label() string
}

// Format renders the elements of e separated by single spaces and followed
// by a newline. No space follows the last element: {1, 2} renders as
// "1 2\n", not "1 2 \n".
func Format(e Expr) string {
	var b strings.Builder
	for i, v := range All(e) {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(v.String())
	}
	b.WriteByte('\n')
	return b.String()
}

// Fprint writes Format(e) to w.
func Fprint(w io.Writer, e Expr) (int64, error) {
	n, err := io.WriteString(w, Format(e))
	return int64(n), err
}

// Describe renders the shape of an expression tree, for example
// "(&x + (2 * sqrt(&float64[10])))". Borrowed containers are prefixed with
// '&'.
func Describe(e Expr) string {
	return describe(hold(e))
}

func describe(s slot) string {
	if s.own == Borrowed {
		if l, ok := s.e.(Labeled); ok {
			return "&" + l.Label()
		}
		return "&" + s.e.Kind().String() + "[" + strconv.Itoa(s.e.Len()) + "]"
	}

	switch v := s.e.(type) {
	case Scalar:
		return v.v.String()
	case Unary:
		if v.name == "-" {
			return "-" + describe(v.operand)
		}
		return v.name + "(" + describe(v.operand) + ")"
	case Binary:
		return "(" + describe(v.left) + " " + v.name + " " + describe(v.right) + ")"
	}
	return "<" + s.e.Kind().String() + ">"
}
