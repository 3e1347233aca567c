package object

import "github.com/quill-lang/quill/internal/value"

// Call implements the Call internal operation (spec.md §4.3): valid only
// when the internal-data slot is a callable Function.
func (o *Object) Call(this value.Value, args []value.Value) (value.Value, *value.Thrown) {
	fn, ok := o.internal.(*FunctionSlot)
	if !ok || !fn.Callable {
		return value.Undefined, value.Throw(value.String("TypeError: value is not a function"))
	}
	return fn.Call(this, args, nil)
}

// Construct implements the Construct internal operation (spec.md §4.3):
// valid only when the internal-data slot is a constructable Function.
// newTarget is the object whose `prototype` property seeds the freshly
// constructed instance's prototype link, per spec.md §4.4's `this`
// binding rule for `new`.
func (o *Object) Construct(args []value.Value, newTarget *Object) (value.Value, *value.Thrown) {
	fn, ok := o.internal.(*FunctionSlot)
	if !ok || !fn.Constructable {
		return value.Undefined, value.Throw(value.String("TypeError: value is not a constructor"))
	}
	if newTarget == nil {
		newTarget = o
	}
	instProto := fn.Prototype
	if ntFn, ok := newTarget.internal.(*FunctionSlot); ok && ntFn.Prototype != nil {
		instProto = ntFn.Prototype
	}
	instance := New(instProto)
	thisVal := value.Object(instance)
	result, thrown := fn.Call(thisVal, args, newTarget)
	if thrown != nil {
		return value.Undefined, thrown
	}
	if result.IsObject() {
		return result, nil
	}
	return thisVal, nil
}
