package blend

// Operator is a feComposite operator.
type Operator uint8

const (
	OperatorOver Operator = iota
	OperatorIn
	OperatorOut
	OperatorAtop
	OperatorXor
	OperatorLighter
	OperatorArithmetic
)

var operatorNames = [...]string{
	OperatorOver:       "over",
	OperatorIn:         "in",
	OperatorOut:        "out",
	OperatorAtop:       "atop",
	OperatorXor:        "xor",
	OperatorLighter:    "lighter",
	OperatorArithmetic: "arithmetic",
}

// String returns the SVG keyword of the operator.
func (o Operator) String() string {
	if int(o) < len(operatorNames) {
		return operatorNames[o]
	}
	return "unknown"
}

// ParseOperator maps an SVG operator keyword to an Operator.
func ParseOperator(name string) (Operator, bool) {
	for i, n := range operatorNames {
		if n == name {
			return Operator(i), true
		}
	}
	return OperatorOver, false
}

// OperatorFunc returns the pixel function for a Porter-Duff operator.
// OperatorArithmetic needs coefficients; use Arithmetic instead. Unknown
// operators behave like OperatorOver.
func OperatorFunc(o Operator) Func {
	switch o {
	case OperatorIn:
		return blendSourceIn
	case OperatorOut:
		return blendSourceOut
	case OperatorAtop:
		return blendSourceAtop
	case OperatorXor:
		return blendXor
	case OperatorLighter:
		return blendPlus
	default:
		return blendSourceOver
	}
}

// Porter-Duff implementations (premultiplied alpha)

// blendSourceOver composites source over destination.
// Formula: S + D * (1 - Sa)
func blendSourceOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return addClamp(sr, mulDiv255(dr, invSa)),
		addClamp(sg, mulDiv255(dg, invSa)),
		addClamp(sb, mulDiv255(db, invSa)),
		addClamp(sa, mulDiv255(da, invSa))
}

// blendSourceIn shows source where destination is opaque.
// Formula: S * Da
func blendSourceIn(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return mulDiv255(sr, da), mulDiv255(sg, da), mulDiv255(sb, da), mulDiv255(sa, da)
}

// blendSourceOut shows source where destination is transparent.
// Formula: S * (1 - Da)
func blendSourceOut(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invDa := 255 - da
	return mulDiv255(sr, invDa), mulDiv255(sg, invDa), mulDiv255(sb, invDa), mulDiv255(sa, invDa)
}

// blendSourceAtop composites source over destination, preserving destination alpha.
// Formula: S * Da + D * (1 - Sa)
func blendSourceAtop(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return minByte(addClamp(mulDiv255(sr, da), mulDiv255(dr, invSa)), da),
		minByte(addClamp(mulDiv255(sg, da), mulDiv255(dg, invSa)), da),
		minByte(addClamp(mulDiv255(sb, da), mulDiv255(db, invSa)), da),
		da
}

// blendXor shows source and destination where they don't overlap.
// Formula: S * (1 - Da) + D * (1 - Sa)
func blendXor(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invDa := 255 - da
	invSa := 255 - sa
	a := addClamp(mulDiv255(sa, invDa), mulDiv255(da, invSa))
	return minByte(addClamp(mulDiv255(sr, invDa), mulDiv255(dr, invSa)), a),
		minByte(addClamp(mulDiv255(sg, invDa), mulDiv255(dg, invSa)), a),
		minByte(addClamp(mulDiv255(sb, invDa), mulDiv255(db, invSa)), a),
		a
}

// blendPlus adds source and destination colors (clamped to 255).
// Formula: min(S + D, 255)
func blendPlus(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return addClamp(sr, dr), addClamp(sg, dg), addClamp(sb, db), addClamp(sa, da)
}

// Arithmetic returns the feComposite arithmetic operator
// result = k1·i1·i2 + k2·i1 + k3·i2 + k4, evaluated per premultiplied
// channel in [0,1] and clamped so colour never exceeds alpha.
func Arithmetic(k1, k2, k3, k4 float64) Func {
	return func(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
		ch := func(i1, i2 byte) float64 {
			a := float64(i1) / 255
			b := float64(i2) / 255
			return k1*a*b + k2*a + k3*b + k4
		}
		a := unitToByte(ch(sa, da))
		return minByte(unitToByte(ch(sr, dr)), a),
			minByte(unitToByte(ch(sg, dg)), a),
			minByte(unitToByte(ch(sb, db)), a),
			a
	}
}
