package value_test

import (
	"math"
	"testing"

	"github.com/quill-lang/quill/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegerOverflowPromotesToRational(t *testing.T) {
	v := value.Add(value.Integer(math.MaxInt32), value.Integer(1))
	require.Equal(t, value.KindRational, v.Kind())
	assert.Equal(t, float64(math.MaxInt32)+1, v.AsFloat64())
}

func TestZeroAndNegativeZero(t *testing.T) {
	zero := value.Rational(0)
	negZero := value.Rational(math.Copysign(0, -1))

	assert.True(t, value.StrictEquals(zero, negZero), "0 === -0 must be true")
	assert.True(t, value.SameValueZero(zero, negZero))
	assert.False(t, value.SameValue(zero, negZero), "Object.is(0, -0) must be false")
}

func TestNaNNeverEqualsItself(t *testing.T) {
	nan := value.Rational(math.NaN())
	assert.False(t, value.StrictEquals(nan, nan))
	_, ok := value.Compare(nan, nan)
	assert.False(t, ok)
}

func TestSameValueZeroTreatsNaNAsEqual(t *testing.T) {
	nan := value.Rational(math.NaN())
	assert.True(t, value.SameValueZero(nan, nan))
	assert.True(t, value.SameValue(nan, nan))
}

func TestDisplayForm(t *testing.T) {
	assert.Equal(t, "undefined", value.Undefined.Display())
	assert.Equal(t, "null", value.Null.Display())
	assert.Equal(t, "true", value.True.Display())
	assert.Equal(t, `"hi"`, value.String("hi").Display())
	assert.Equal(t, "7", value.Integer(7).Display())
}

func TestToBoolean(t *testing.T) {
	cases := []struct {
		v    value.Value
		want bool
	}{
		{value.Undefined, false},
		{value.Null, false},
		{value.Integer(0), false},
		{value.Integer(1), true},
		{value.String(""), false},
		{value.String("x"), true},
		{value.Rational(math.NaN()), false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.v.ToBoolean(), c.v.Display())
	}
}

func TestTypeOfPrimitives(t *testing.T) {
	assert.Equal(t, "undefined", value.Undefined.TypeOf())
	assert.Equal(t, "object", value.Null.TypeOf())
	assert.Equal(t, "boolean", value.True.TypeOf())
	assert.Equal(t, "number", value.Integer(1).TypeOf())
	assert.Equal(t, "string", value.String("a").TypeOf())
}

func TestNumberFromInt64Boundary(t *testing.T) {
	v := value.NumberFromInt64(int64(math.MaxInt32) + 1)
	assert.Equal(t, value.KindRational, v.Kind())

	v2 := value.NumberFromInt64(42)
	assert.Equal(t, value.KindInteger, v2.Kind())
}

func TestStringLengthCountsUTF16Units(t *testing.T) {
	// U+1F600 is outside the BMP and counts as a UTF-16 surrogate pair.
	assert.Equal(t, 2, value.String("😀").Length())
	assert.Equal(t, 1, value.String("a").Length())
}
