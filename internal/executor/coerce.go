package executor

import (
	"github.com/quill-lang/quill/internal/object"
	"github.com/quill-lang/quill/internal/value"
)

// toPrimitive implements ToPrimitive for object Values, trying valueOf
// then toString (the "number" hint order) unless hint is "string", which
// tries them in the opposite order. Non-object Values pass through
// unchanged. value.Value's own ToNumber/ToStringSimple only handle
// primitives; this is the object-aware layer the executor adds on top,
// since only it can Call a method.
func (e *Executor) toPrimitive(v value.Value, hint string) (value.Value, *value.Thrown) {
	if !v.IsObject() {
		return v, nil
	}
	obj, ok := asObject(v)
	if !ok {
		return v, nil
	}
	methods := []string{"valueOf", "toString"}
	if hint == "string" {
		methods = []string{"toString", "valueOf"}
	}
	for _, name := range methods {
		fnVal, _, found := obj.Get(object.StringKey(name))
		if !found || !fnVal.IsObject() {
			continue
		}
		fnObj, ok := asObject(fnVal)
		if !ok || !fnObj.IsCallable() {
			continue
		}
		result, thrown := e.callFunction(fnVal, v, nil)
		if thrown != nil {
			return value.Undefined, thrown
		}
		if !result.IsObject() {
			return result, nil
		}
	}
	return value.Undefined, e.typeError("Cannot convert object to primitive value")
}

// toNumber implements object-aware ToNumber: primitives go straight
// through value.Value.ToNumber, objects are first reduced via
// toPrimitive(hint "number").
func (e *Executor) toNumber(v value.Value) (float64, *value.Thrown) {
	if f, ok := v.ToNumber(); ok {
		return f, nil
	}
	prim, thrown := e.toPrimitive(v, "number")
	if thrown != nil {
		return 0, thrown
	}
	f, _ := prim.ToNumber()
	return f, nil
}

// toStringValue implements object-aware ToString.
func (e *Executor) toStringValue(v value.Value) (string, *value.Thrown) {
	if !v.IsObject() {
		return v.ToStringSimple(), nil
	}
	prim, thrown := e.toPrimitive(v, "string")
	if thrown != nil {
		return "", thrown
	}
	if prim.IsObject() {
		return "", e.typeError("Cannot convert object to primitive value")
	}
	return prim.ToStringSimple(), nil
}

// toPropertyKey coerces v (already evaluated) into an object.PropertyKey,
// handling the Symbol-as-computed-key case that object.StringKey cannot.
func (e *Executor) toPropertyKey(v value.Value) (object.PropertyKey, *value.Thrown) {
	if v.IsSymbol() {
		return object.SymbolKey(v.AsSymbol()), nil
	}
	s, thrown := e.toStringValue(v)
	if thrown != nil {
		return object.PropertyKey{}, thrown
	}
	return object.StringKey(s), nil
}

// isLooselyEqual implements the `==` abstract equality comparison,
// including the numeric/string/boolean/object coercion ladder.
func (e *Executor) isLooselyEqual(a, b value.Value) (bool, *value.Thrown) {
	if a.Kind() == b.Kind() {
		return value.StrictEquals(a, b), nil
	}
	if a.IsNullish() && b.IsNullish() {
		return true, nil
	}
	if a.IsNullish() || b.IsNullish() {
		return false, nil
	}
	if a.IsNumber() && b.IsString() {
		bn, thrown := e.toNumber(b)
		if thrown != nil {
			return false, thrown
		}
		return a.AsFloat64() == bn, nil
	}
	if a.IsString() && b.IsNumber() {
		return e.isLooselyEqual(b, a)
	}
	if a.IsBoolean() {
		return e.isLooselyEqual(value.NumberFromFloat64(boolToFloat(a.AsBool())), b)
	}
	if b.IsBoolean() {
		return e.isLooselyEqual(a, value.NumberFromFloat64(boolToFloat(b.AsBool())))
	}
	if (a.IsNumber() || a.IsString()) && b.IsObject() {
		prim, thrown := e.toPrimitive(b, "default")
		if thrown != nil {
			return false, thrown
		}
		return e.isLooselyEqual(a, prim)
	}
	if a.IsObject() && (b.IsNumber() || b.IsString()) {
		return e.isLooselyEqual(b, a)
	}
	return false, nil
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
