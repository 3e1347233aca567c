package executor

import (
	"github.com/quill-lang/quill/internal/object"
	"github.com/quill-lang/quill/internal/value"
)

// newArray builds an Array instance holding elements, the object shape
// spec.md §3's ArrayLiteral evaluation and Array.prototype methods both
// produce: an ArrayData internal slot alongside ordinary indexed data
// properties and a writable "length", so the generic property protocol
// (for-in, Object.keys, spread) sees exactly what a hand-written object
// with the same own keys would.
func (e *Executor) newArray(elements []value.Value) *object.Object {
	arr := object.New(e.Realm.ArrayProto)
	arr.SetInternal(&object.ArraySlot{Elements: append([]value.Value(nil), elements...)})
	for i, v := range elements {
		arr.DefineData(object.IndexKey(uint32(i)), v, object.All)
	}
	arr.DefineData(object.StringKey("length"), value.Integer(int32(len(elements))), object.Writable)
	e.Heap.Register(arr)
	return arr
}

func (e *Executor) newPlainObject() *object.Object {
	obj := object.New(e.Realm.ObjectProto)
	e.Heap.Register(obj)
	return obj
}

func isArray(obj *object.Object) bool {
	return obj != nil && obj.InternalDataKind() == object.ArrayData
}

// arrayLength reads an object's "length" own/inherited property as an
// unsigned count, the way every array-like consumer (spread, for-of,
// Array.prototype methods, the arguments object) determines how far to
// iterate.
func (e *Executor) arrayLength(obj *object.Object) (int, *value.Thrown) {
	lv, thrown := e.getProperty(value.Object(obj), object.StringKey("length"))
	if thrown != nil {
		return 0, thrown
	}
	f, _ := lv.ToNumber()
	if f < 0 {
		return 0, nil
	}
	return int(f), nil
}

// arrayPush appends v as a new indexed property and grows "length" to
// match, the primitive both Array.prototype.push and the spread/rest
// collection logic build on.
func (e *Executor) arrayPush(arr *object.Object, v value.Value) {
	length, _ := e.arrayLength(arr)
	arr.DefineData(object.IndexKey(uint32(length)), v, object.All)
	arr.DefineData(object.StringKey("length"), value.Integer(int32(length+1)), object.Writable)
	if slot, ok := arr.Internal().(*object.ArraySlot); ok {
		slot.Elements = append(slot.Elements, v)
	}
}

// iterateArrayLike reads every index in [0, length) off v (an Array,
// arguments object, or any object with a numeric "length"), the shared
// expansion rule spread (CallExpression.Arguments/ArrayLiteral.Elements),
// for-of, and destructuring array patterns all use.
func (e *Executor) iterateArrayLike(v value.Value) ([]value.Value, *value.Thrown) {
	obj, ok := asObject(v)
	if !ok {
		if v.IsString() {
			return stringCodePoints(v.AsString()), nil
		}
		return nil, e.typeError(v.Display() + " is not iterable")
	}
	length, thrown := e.arrayLength(obj)
	if thrown != nil {
		return nil, thrown
	}
	out := make([]value.Value, length)
	for i := 0; i < length; i++ {
		ev, thrown := e.getProperty(v, object.IndexKey(uint32(i)))
		if thrown != nil {
			return nil, thrown
		}
		out[i] = ev
	}
	return out, nil
}

// stringCodePoints splits s into one Value per Unicode code point, the
// iteration a `for (const ch of str)` or `[...str]` spread performs.
func stringCodePoints(s string) []value.Value {
	runes := []rune(s)
	out := make([]value.Value, len(runes))
	for i, r := range runes {
		out[i] = value.String(string(r))
	}
	return out
}

// stringProperty handles the two member-access forms a string primitive
// answers directly (.length and index access); any other key falls
// through to String.prototype in the caller.
func (e *Executor) stringProperty(s string, key object.PropertyKey) (value.Value, bool) {
	units := []rune(s)
	if key.IsString() && key.String() == "length" {
		return value.Integer(int32(len(units))), true
	}
	if key.IsIndex() {
		idx := int(key.Index())
		if idx < len(units) {
			return value.String(string(units[idx])), true
		}
		return value.Undefined, true
	}
	return value.Undefined, false
}
