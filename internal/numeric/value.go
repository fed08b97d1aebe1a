package numeric

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"strconv"
	"strings"
)

// ErrInvalidLiteral indicates text that is not an admissible numeric literal.
var ErrInvalidLiteral = errors.New("numeric: invalid literal")

// Scalar lists the admissible element types of numeric arrays.
type Scalar interface {
	int | int32 | int64 | float32 | float64 | complex64 | complex128
}

// Value is a tagged scalar. Integer kinds keep an exact int64 payload,
// every other kind keeps a complex128 whose imaginary part is zero for
// real kinds. Float32 and Complex64 payloads are always rounded to single
// precision.
type Value struct {
	kind Kind
	i    int64
	c    complex128
}

// KindOf maps a Go element type to its kind.
func KindOf[T Scalar]() Kind {
	var zero T
	switch any(zero).(type) {
	case int, int32, int64:
		return Int
	case float32:
		return Float32
	case float64:
		return Float64
	case complex64:
		return Complex64
	case complex128:
		return Complex128
	}
	return Opaque
}

// Of wraps x as a Value of its own kind.
func Of[T Scalar](x T) Value {
	switch v := any(x).(type) {
	case int:
		return IntValue(int64(v))
	case int32:
		return IntValue(int64(v))
	case int64:
		return IntValue(v)
	case float32:
		return Float32Value(v)
	case float64:
		return FloatValue(v)
	case complex64:
		return Complex64Value(v)
	case complex128:
		return ComplexValue(v)
	}
	return Value{}
}

// Convert applies a static conversion of v to T. Complex values keep only
// their real part when converted to a real or integer type.
func Convert[T Scalar](v Value) T {
	var out T
	switch p := any(&out).(type) {
	case *int:
		*p = int(v.Int())
	case *int32:
		*p = int32(v.Int())
	case *int64:
		*p = v.Int()
	case *float32:
		*p = float32(v.Float())
	case *float64:
		*p = v.Float()
	case *complex64:
		*p = complex64(v.Complex())
	case *complex128:
		*p = v.Complex()
	}
	return out
}

func IntValue(i int64) Value           { return Value{kind: Int, i: i} }
func FloatValue(f float64) Value       { return Value{kind: Float64, c: complex(f, 0)} }
func Float32Value(f float32) Value     { return Value{kind: Float32, c: complex(float64(f), 0)} }
func ComplexValue(c complex128) Value  { return Value{kind: Complex128, c: c} }
func Complex64Value(c complex64) Value { return Value{kind: Complex64, c: complex128(c)} }

// Zero returns the zero value of kind k.
func Zero(k Kind) Value {
	return Value{kind: k}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) Int() int64 {
	if v.kind == Int {
		return v.i
	}
	return int64(real(v.c))
}

func (v Value) Float() float64 {
	if v.kind == Int {
		return float64(v.i)
	}
	return real(v.c)
}

func (v Value) Complex() complex128 {
	if v.kind == Int {
		return complex(float64(v.i), 0)
	}
	return v.c
}

func (v Value) IsZero() bool {
	if v.kind == Int {
		return v.i == 0
	}
	return v.c == 0
}

// As converts v to kind k.
func (v Value) As(k Kind) Value {
	if v.kind == k {
		return v
	}
	switch k {
	case Int:
		return IntValue(v.Int())
	case Float32:
		return Float32Value(float32(v.Float()))
	case Float64:
		return FloatValue(v.Float())
	case Complex64:
		return Complex64Value(complex64(v.Complex()))
	case Complex128:
		return ComplexValue(v.Complex())
	}
	return Value{}
}

// Equal reports whether a and b are equal once promoted to a common kind.
func Equal(a, b Value) bool {
	k := Promote(a.kind, b.kind)
	a, b = a.As(k), b.As(k)
	if k == Int {
		return a.i == b.i
	}
	return a.c == b.c
}

func (v Value) String() string {
	switch v.kind {
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Float32:
		return formatReal(real(v.c), 32)
	case Float64:
		return formatReal(real(v.c), 64)
	case Complex64:
		return "(" + formatReal(real(v.c), 32) + "," + formatReal(imag(v.c), 32) + ")"
	case Complex128:
		return "(" + formatReal(real(v.c), 64) + "," + formatReal(imag(v.c), 64) + ")"
	}
	return "<opaque>"
}

// formatReal prints like a default C stream: six significant digits,
// trailing zeros dropped.
func formatReal(f float64, bits int) string {
	return strconv.FormatFloat(f, 'g', 6, bits)
}

// Parse reads an integer, real or imaginary literal. Integers become Int,
// reals Float64 and literals ending in 'i' Complex128.
func Parse(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}, fmt.Errorf("%w: empty", ErrInvalidLiteral)
	}
	if strings.HasSuffix(s, "i") {
		c, err := strconv.ParseComplex(s, 128)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q", ErrInvalidLiteral, s)
		}
		return ComplexValue(c), nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntValue(i), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %q", ErrInvalidLiteral, s)
	}
	return FloatValue(f), nil
}

// UnaryFunc is an elementwise operation on values.
type UnaryFunc func(Value) Value

// BinaryFunc combines two values.
type BinaryFunc func(a, b Value) Value

func Add(a, b Value) Value { return arith(a, b, '+') }
func Sub(a, b Value) Value { return arith(a, b, '-') }
func Mul(a, b Value) Value { return arith(a, b, '*') }

// Div divides a by b. Integer division truncates toward zero and panics on
// a zero divisor, as Go integer division does.
func Div(a, b Value) Value { return arith(a, b, '/') }

func arith(a, b Value, op byte) Value {
	k := Promote(a.kind, b.kind)
	a, b = a.As(k), b.As(k)

	switch k {
	case Int:
		x, y := a.i, b.i
		switch op {
		case '+':
			return IntValue(x + y)
		case '-':
			return IntValue(x - y)
		case '*':
			return IntValue(x * y)
		default:
			return IntValue(x / y)
		}
	case Float32, Float64, Complex64, Complex128:
		x, y := a.c, b.c
		var r complex128
		switch op {
		case '+':
			r = x + y
		case '-':
			r = x - y
		case '*':
			r = x * y
		default:
			if k.IsComplex() {
				r = x / y
			} else {
				r = complex(real(x)/real(y), 0)
			}
		}
		return Value{kind: k, c: r}.round()
	}
	return Value{}
}

// round narrows single precision payloads after an operation.
func (v Value) round() Value {
	switch v.kind {
	case Float32:
		v.c = complex(float64(float32(real(v.c))), 0)
	case Complex64:
		v.c = complex128(complex64(v.c))
	}
	return v
}

func Neg(v Value) Value {
	if v.kind == Int {
		return IntValue(-v.i)
	}
	v.c = -v.c
	return v
}

// Sqrt returns the principal square root, Float64 for integer and real
// inputs (NaN for negative ones) and Complex128 for complex inputs.
func Sqrt(v Value) Value {
	if v.kind.IsComplex() {
		return ComplexValue(cmplx.Sqrt(v.c))
	}
	return FloatValue(math.Sqrt(v.Float()))
}

// Abs returns the magnitude of v. Complex magnitudes are returned in the
// component kind.
func Abs(v Value) Value {
	switch v.kind {
	case Int:
		if v.i < 0 {
			return IntValue(-v.i)
		}
		return v
	case Complex64, Complex128:
		return Value{kind: v.kind.Real(), c: complex(cmplx.Abs(v.c), 0)}.round()
	}
	return Value{kind: v.kind, c: complex(math.Abs(real(v.c)), 0)}
}
