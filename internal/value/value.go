// Package value implements quill's tagged Value union: the uniform
// primitive/object carrier every other package (object, environment,
// executor, nativeclass) passes around. It is a small struct rather than
// an interface so the "exactly one variant populated" invariant in
// spec.md §3 is enforced by construction instead of by convention.
package value

import (
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"
)

// Kind tags which variant of Value is populated.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindNull
	KindBoolean
	KindInteger
	KindRational
	KindString
	KindSymbol
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindInteger, KindRational:
		return "number"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Objecter is the narrow view Value needs of a heap object, satisfied by
// *object.Object. Value cannot import internal/object directly (object
// imports value for property payloads), so the dependency is inverted
// through this interface — the same shape the teacher's AST nodes use to
// avoid an interp<->ast import cycle.
type Objecter interface {
	// ObjectDisplay renders the object's canonical display form, e.g.
	// "[object Object]" or a function's source text.
	ObjectDisplay() string
	// IsCallable reports whether the object's internal-data slot is a
	// callable Function.
	IsCallable() bool
}

// Symbol is a unique opaque identity with an optional description. Two
// Symbols are never equal unless they are the same Go value; identity is
// carried by a uuid.UUID (grounded on dphaener-conduit's use of
// google/uuid for stable identity) rather than a bare pointer so Symbol
// identity survives debug printing and gives well-known symbols a stable
// companion key.
type Symbol struct {
	id          uuid.UUID
	Description string
}

// NewSymbol allocates a fresh Symbol with the given description.
func NewSymbol(description string) *Symbol {
	return &Symbol{id: uuid.New(), Description: description}
}

// ID returns the Symbol's stable identity.
func (s *Symbol) ID() uuid.UUID { return s.id }

func (s *Symbol) String() string {
	if s.Description == "" {
		return "Symbol()"
	}
	return "Symbol(" + s.Description + ")"
}

// Value is quill's tagged primitive/object union (spec.md §3). Exactly
// one of the payload fields is meaningful at a time, selected by kind;
// unexported fields keep callers from constructing an invalid
// multi-variant Value directly.
type Value struct {
	kind   Kind
	b      bool
	i      int32
	f      float64
	s      string
	sym    *Symbol
	obj    Objecter
}

// Undefined is the Value of kind KindUndefined.
var Undefined = Value{kind: KindUndefined}

// Null is the Value of kind KindNull.
var Null = Value{kind: KindNull}

// True and False are the two Boolean singletons.
var (
	True  = Value{kind: KindBoolean, b: true}
	False = Value{kind: KindBoolean, b: false}
)

// Bool wraps a Go bool as a Value.
func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

// Integer constructs an Integer-kind Value. Per spec.md §3, an Integer
// never holds a value only representable as a float — overflowing
// arithmetic must promote to Rational before reaching this constructor;
// see Add/Sub/Mul in arith.go.
func Integer(i int32) Value { return Value{kind: KindInteger, i: i} }

// Rational constructs a Rational-kind (float64) Value.
func Rational(f float64) Value { return Value{kind: KindRational, f: f} }

// String constructs a String-kind Value. The payload is an immutable Go
// string (UTF-8); Length below presents the UTF-16 view spec.md
// §3 requires without needing a separate storage representation.
func String(s string) Value { return Value{kind: KindString, s: s} }

// SymbolValue wraps an existing *Symbol as a Value.
func SymbolValue(s *Symbol) Value { return Value{kind: KindSymbol, sym: s} }

// Object wraps a heap object reference as a Value.
func Object(o Objecter) Value { return Value{kind: KindObject, obj: o} }

// Kind reports which variant is populated.
func (v Value) Kind() Kind { return v.kind }

func (v Value) IsUndefined() bool { return v.kind == KindUndefined }
func (v Value) IsNull() bool      { return v.kind == KindNull }
func (v Value) IsNullish() bool   { return v.kind == KindUndefined || v.kind == KindNull }
func (v Value) IsBoolean() bool   { return v.kind == KindBoolean }
func (v Value) IsNumber() bool    { return v.kind == KindInteger || v.kind == KindRational }
func (v Value) IsInteger() bool   { return v.kind == KindInteger }
func (v Value) IsString() bool    { return v.kind == KindString }
func (v Value) IsSymbol() bool    { return v.kind == KindSymbol }
func (v Value) IsObject() bool    { return v.kind == KindObject }

// AsBool returns the Boolean payload; only meaningful when IsBoolean.
func (v Value) AsBool() bool { return v.b }

// AsInt32 returns the Integer payload; only meaningful when IsInteger.
func (v Value) AsInt32() int32 { return v.i }

// AsFloat64 returns the numeric payload as a float64 regardless of
// whether it is carried as Integer or Rational.
func (v Value) AsFloat64() float64 {
	if v.kind == KindInteger {
		return float64(v.i)
	}
	return v.f
}

// AsString returns the String payload; only meaningful when IsString.
func (v Value) AsString() string { return v.s }

// AsSymbol returns the Symbol payload; only meaningful when IsSymbol.
func (v Value) AsSymbol() *Symbol { return v.sym }

// AsObject returns the Object payload; only meaningful when IsObject.
func (v Value) AsObject() Objecter { return v.obj }

// Length returns the number of UTF-16 code units in a String value, per
// spec.md §3's "semantically a sequence of 16-bit code units" note.
// Characters outside the Basic Multilingual Plane count as two units,
// matching JavaScript's String.length.
func (v Value) Length() int {
	n := 0
	for _, r := range v.s {
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// NumberFromInt64 builds a numeric Value, choosing Integer when i fits in
// int32 and Rational otherwise — the promotion boundary spec.md §3 and §8
// require ("Integer(i32::MAX) + 1 yields Rational(2147483648.0)").
func NumberFromInt64(i int64) Value {
	if i >= math.MinInt32 && i <= math.MaxInt32 {
		return Integer(int32(i))
	}
	return Rational(float64(i))
}

// NumberFromFloat64 builds a numeric Value, demoting to Integer only when
// f is an exact, in-range integral value.
func NumberFromFloat64(f float64) Value {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && f >= math.MinInt32 && f <= math.MaxInt32 {
		return Integer(int32(f))
	}
	return Rational(f)
}

// ToBoolean implements the ECMAScript ToBoolean abstract operation.
func (v Value) ToBoolean() bool {
	switch v.kind {
	case KindUndefined, KindNull:
		return false
	case KindBoolean:
		return v.b
	case KindInteger:
		return v.i != 0
	case KindRational:
		return v.f != 0 && !math.IsNaN(v.f)
	case KindString:
		return v.s != ""
	case KindSymbol:
		return true
	case KindObject:
		return true
	default:
		return false
	}
}

// ToNumber implements a context-free slice of ECMAScript's ToNumber:
// primitives only. Object-to-primitive coercion (via valueOf/toString or
// Symbol.toPrimitive) is supplied by the executor, which has access to a
// Context able to Call the relevant methods; see executor.ToNumber.
func (v Value) ToNumber() (float64, bool) {
	switch v.kind {
	case KindUndefined:
		return math.NaN(), true
	case KindNull:
		return 0, true
	case KindBoolean:
		if v.b {
			return 1, true
		}
		return 0, true
	case KindInteger:
		return float64(v.i), true
	case KindRational:
		return v.f, true
	case KindString:
		return stringToNumber(v.s), true
	default:
		return math.NaN(), false
	}
}

func stringToNumber(s string) float64 {
	trimmed := trimJSWhitespace(s)
	if trimmed == "" {
		return 0
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f
	}
	if i, err := strconv.ParseInt(trimmed, 0, 64); err == nil {
		return float64(i)
	}
	return math.NaN()
}

func trimJSWhitespace(s string) string {
	start, end := 0, len(s)
	for start < end && isJSSpace(rune(s[start])) {
		start++
	}
	for end > start && isJSSpace(rune(s[end-1])) {
		end--
	}
	return s[start:end]
}

func isJSSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

// Display renders the canonical ECMAScript display form of a Value, the
// string a REPL or console.log would print — distinct from ToString,
// which is the coercion used by `+` and template literals (strings
// display unquoted under ToString, quoted under Display).
func (v Value) Display() string {
	switch v.kind {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		if v.b {
			return "true"
		}
		return "false"
	case KindInteger:
		return strconv.FormatInt(int64(v.i), 10)
	case KindRational:
		return formatFloat(v.f)
	case KindString:
		return strconv.Quote(v.s)
	case KindSymbol:
		return v.sym.String()
	case KindObject:
		return v.obj.ObjectDisplay()
	default:
		return "<invalid>"
	}
}

// ToStringSimple renders the ECMAScript ToString coercion for
// non-object Values (unquoted strings, "NaN"/"Infinity" for the special
// floats). Object coercion needs a Context (to call toString/valueOf)
// and is supplied by the executor package.
func (v Value) ToStringSimple() string {
	switch v.kind {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		if v.b {
			return "true"
		}
		return "false"
	case KindInteger:
		return strconv.FormatInt(int64(v.i), 10)
	case KindRational:
		return formatFloat(v.f)
	case KindString:
		return v.s
	case KindSymbol:
		return v.sym.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		if math.Signbit(f) {
			return "0" // -0 displays as "0", matching JS String(-0)
		}
		return "0"
	case f == math.Trunc(f) && math.Abs(f) < 1e21:
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

// SameValueZero implements the ECMAScript SameValueZero algorithm, used
// by Array.prototype.includes: NaN equals NaN, but +0 and -0 compare equal (spec.md §8).
func SameValueZero(a, b Value) bool {
	if a.kind != b.kind {
		if a.IsNumber() && b.IsNumber() {
			return a.AsFloat64() == b.AsFloat64() || (isNaNValue(a) && isNaNValue(b))
		}
		return false
	}
	switch a.kind {
	case KindUndefined, KindNull:
		return true
	case KindBoolean:
		return a.b == b.b
	case KindInteger, KindRational:
		af, bf := a.AsFloat64(), b.AsFloat64()
		if math.IsNaN(af) && math.IsNaN(bf) {
			return true
		}
		return af == bf
	case KindString:
		return a.s == b.s
	case KindSymbol:
		return a.sym == b.sym
	case KindObject:
		return a.obj == b.obj
	default:
		return false
	}
}

func isNaNValue(v Value) bool {
	return v.IsNumber() && math.IsNaN(v.AsFloat64())
}

// SameValue implements the ECMAScript SameValue algorithm, used by
// Object.is: like SameValueZero except +0 and -0 are distinct
// (spec.md §8: "Object.is(0, -0) is false").
func SameValue(a, b Value) bool {
	if !a.IsNumber() || !b.IsNumber() {
		return SameValueZero(a, b)
	}
	af, bf := a.AsFloat64(), b.AsFloat64()
	if math.IsNaN(af) && math.IsNaN(bf) {
		return true
	}
	if af == 0 && bf == 0 {
		return math.Signbit(af) == math.Signbit(bf)
	}
	return af == bf
}

// StrictEquals implements `===` for primitives (object identity is
// delegated to the Objecter's own comparison since value does not know
// how to compare object payloads beyond pointer identity).
func StrictEquals(a, b Value) bool {
	if a.kind != b.kind {
		return a.IsNumber() && b.IsNumber() && a.AsFloat64() == b.AsFloat64()
	}
	switch a.kind {
	case KindUndefined, KindNull:
		return true
	case KindBoolean:
		return a.b == b.b
	case KindInteger, KindRational:
		return a.AsFloat64() == b.AsFloat64()
	case KindString:
		return a.s == b.s
	case KindSymbol:
		return a.sym == b.sym
	case KindObject:
		return a.obj == b.obj
	default:
		return false
	}
}

// TypeOf implements the `typeof` operator's primitive cases. Functions
// report "function" rather than "object"; the executor supplies that
// refinement by checking Objecter.IsCallable before falling back here.
func (v Value) TypeOf() string {
	switch v.kind {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "object"
	case KindBoolean:
		return "boolean"
	case KindInteger, KindRational:
		return "number"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindObject:
		if v.obj != nil && v.obj.IsCallable() {
			return "function"
		}
		return "object"
	default:
		return "undefined"
	}
}
