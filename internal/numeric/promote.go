package numeric

// promotion is indexed by two kinds and yields the kind of any binary
// operation combining them.
var promotion [numKinds][numKinds]Kind

func init() {
	for a := Kind(0); a < numKinds; a++ {
		for b := Kind(0); b < numKinds; b++ {
			promotion[a][b] = promoteRule(a, b)
		}
	}
}

// promoteRule picks the higher-ranked component type and makes it complex if
// either side is complex. Rank 1 has no complex flavour, so a complex
// operand always lifts the result to at least rank 2.
func promoteRule(a, b Kind) Kind {
	rank := max(a.Rank(), b.Rank())
	complexResult := a.IsComplex() || b.IsComplex()

	switch rank {
	case 0:
		return Opaque
	case 1:
		if complexResult {
			return Complex64
		}
		return Int
	case 2:
		if complexResult {
			return Complex64
		}
		return Float32
	default:
		if complexResult {
			return Complex128
		}
		return Float64
	}
}

// Promote returns the result kind of combining a and b.
func Promote(a, b Kind) Kind {
	if a >= numKinds || b >= numKinds {
		return Opaque
	}
	return promotion[a][b]
}

// SqrtKind is the result kind of a square root: complex-aware double precision.
func SqrtKind(k Kind) Kind {
	if k.IsComplex() {
		return Complex128
	}
	return Float64
}
