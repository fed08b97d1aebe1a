package numeric

// Kind tags the element type of a scalar, array or expression.
type Kind uint8

const (
	Opaque Kind = iota
	Int
	Float32
	Float64
	Complex64
	Complex128

	numKinds
)

var kindNames = [numKinds]string{
	Opaque:     "opaque",
	Int:        "int",
	Float32:    "float32",
	Float64:    "float64",
	Complex64:  "complex64",
	Complex128: "complex128",
}

func (k Kind) String() string {
	if k >= numKinds {
		return "invalid"
	}
	return kindNames[k]
}

// Rank orders kinds for promotion. Complex kinds share the rank of their
// component type.
func (k Kind) Rank() int {
	switch k {
	case Int:
		return 1
	case Float32, Complex64:
		return 2
	case Float64, Complex128:
		return 3
	default:
		return 0
	}
}

func (k Kind) IsComplex() bool {
	return k == Complex64 || k == Complex128
}

func (k Kind) IsInteger() bool {
	return k == Int
}

// Real returns the component kind of a complex kind and k itself otherwise.
func (k Kind) Real() Kind {
	switch k {
	case Complex64:
		return Float32
	case Complex128:
		return Float64
	}
	return k
}

// ParseKind resolves a kind name as used in config files and formulas.
func ParseKind(name string) (Kind, bool) {
	switch name {
	case "int", "int32", "int64":
		return Int, true
	case "float32", "float":
		return Float32, true
	case "float64", "double":
		return Float64, true
	case "complex64":
		return Complex64, true
	case "complex128", "complex":
		return Complex128, true
	}
	return Opaque, false
}

// Kinds lists the admissible element kinds in rank order.
func Kinds() []Kind {
	return []Kind{Int, Float32, Float64, Complex64, Complex128}
}
