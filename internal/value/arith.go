package value

import "math"

// Add implements the numeric branch of `+` (string concatenation is the
// executor's job since it needs ToString's object-coercion path).
// Integer+Integer promotes to Rational on overflow, per spec.md §8.
func Add(a, b Value) Value {
	if a.kind == KindInteger && b.kind == KindInteger {
		sum := int64(a.i) + int64(b.i)
		return NumberFromInt64(sum)
	}
	return Rational(a.AsFloat64() + b.AsFloat64())
}

func Sub(a, b Value) Value {
	if a.kind == KindInteger && b.kind == KindInteger {
		return NumberFromInt64(int64(a.i) - int64(b.i))
	}
	return Rational(a.AsFloat64() - b.AsFloat64())
}

func Mul(a, b Value) Value {
	if a.kind == KindInteger && b.kind == KindInteger {
		return NumberFromInt64(int64(a.i) * int64(b.i))
	}
	return Rational(a.AsFloat64() * b.AsFloat64())
}

// Div always promotes to Rational: ECMAScript division is floating
// point even for two integer operands (5/2 === 2.5).
func Div(a, b Value) Value {
	return Rational(a.AsFloat64() / b.AsFloat64())
}

func Mod(a, b Value) Value {
	if a.kind == KindInteger && b.kind == KindInteger && b.i != 0 {
		return Integer(a.i % b.i)
	}
	return Rational(math.Mod(a.AsFloat64(), b.AsFloat64()))
}

func Pow(a, b Value) Value {
	return NumberFromFloat64(math.Pow(a.AsFloat64(), b.AsFloat64()))
}

func Neg(a Value) Value {
	if a.kind == KindInteger {
		if a.i == math.MinInt32 || a.i == 0 {
			return Rational(-float64(a.i))
		}
		return Integer(-a.i)
	}
	return Rational(-a.AsFloat64())
}

// Compare returns -1, 0, or 1 for a<b, a==b, a>b, and ok=false when
// either operand is NaN (in which case every relational operator must
// report false, per spec.md §8).
func Compare(a, b Value) (cmp int, ok bool) {
	af, bf := a.AsFloat64(), b.AsFloat64()
	if math.IsNaN(af) || math.IsNaN(bf) {
		return 0, false
	}
	switch {
	case af < bf:
		return -1, true
	case af > bf:
		return 1, true
	default:
		return 0, true
	}
}

// ToInt32 implements the ECMAScript ToInt32 abstract operation used by
// bitwise operators.
func ToInt32(v Value) int32 {
	f := v.AsFloat64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	n := math.Trunc(f)
	const twoPow32 = 4294967296
	m := math.Mod(n, twoPow32)
	if m < 0 {
		m += twoPow32
	}
	u := uint32(m)
	return int32(u)
}

// ToUint32 implements the ECMAScript ToUint32 abstract operation.
func ToUint32(v Value) uint32 {
	return uint32(ToInt32(v))
}
