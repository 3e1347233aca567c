// Package nativeclass is the host-extension surface spec.md §4.5
// describes: a way for embedding Go code to register a constructor
// function, backed by an arbitrary Go payload, into a Context's global
// object without touching internal/executor directly. It is grounded on
// the same constructor/prototype wiring internal/executor/realm.go uses
// for built-in intrinsics (defineBuiltInConstructor), generalized so the
// payload and methods come from outside the engine instead of from a
// fixed built-in table.
package nativeclass

import (
	"errors"

	"github.com/quill-lang/quill/internal/executor"
	"github.com/quill-lang/quill/internal/object"
	"github.com/quill-lang/quill/internal/value"
)

var errEmptyName = errors.New("nativeclass: Class.Name() must be non-empty")

// HostFunc is the call shape a native method or static method
// implements: plain (this, args) in, (result, thrown) out. Unlike
// object.Invoke it has no newTarget parameter — native methods are
// never themselves constructors, only the class's Construct is.
type HostFunc func(this value.Value, args []value.Value) (value.Value, *value.Thrown)

// Class is implemented by host Go types that want a constructor
// function installed on a Context's global object, per spec.md §4.5.
type Class interface {
	// Name is both the global binding name and the constructor
	// function's "name" property.
	Name() string
	// Length is the constructor's declared arity ("length" property).
	Length() int
	// Attribute is the attribute bitset the constructor function gets
	// when bound onto the global object. The zero value (object.Empty)
	// is a legitimate choice (read-only, non-enumerable, non-
	// configurable) and is also what Register falls back to if the
	// Class does not care; this is not a second default layered on top
	// of the caller's choice, it is simply what Empty already means.
	Attribute() object.Attribute
	// Construct runs when script does `new Name(...)`. On success it
	// returns the host payload to store in the new instance's
	// NativeObject internal-data slot; on failure it returns a thrown
	// Value (for example value.Throw(value.String(...))).
	Construct(this value.Value, args []value.Value) (payload any, thrown *value.Thrown)
	// Init registers the class's prototype methods/properties and any
	// static methods/properties on b. Called once, at Register time.
	Init(b *Builder)
}

// Builder accumulates a Class's prototype and static members. Every
// Method/Property call without an explicit trailing Attribute defaults
// to object.Empty (read-only, non-enumerable, non-configurable) per the
// resolution of spec.md §9's Open Question #2: the caller's attribute,
// when supplied, is authoritative and is never OR'd together with a
// fixed default — Empty only applies when the caller supplies nothing.
type Builder struct {
	exec *executor.Executor

	proto *object.Object
	ctor  *object.Object
}

func newBuilder(exec *executor.Executor, proto, ctor *object.Object) *Builder {
	return &Builder{exec: exec, proto: proto, ctor: ctor}
}

// Prototype exposes the class's prototype object, for a Class that
// needs to seed inheritance from another native class's prototype via
// SetPrototype before Init installs its own members.
func (b *Builder) Prototype() *object.Object { return b.proto }

func attrOrDefault(attrs []object.Attribute) object.Attribute {
	if len(attrs) == 0 {
		return object.Empty
	}
	return attrs[0]
}

func wrapHostFunc(name string, length int, fn HostFunc) object.Invoke {
	return func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		return fn(this, args)
	}
}

// Method installs an instance method on the class's prototype.
func (b *Builder) Method(name string, length int, fn HostFunc, attrs ...object.Attribute) {
	obj := b.buildFunction(name, length, wrapHostFunc(name, length, fn))
	b.proto.DefineData(object.StringKey(name), value.Object(obj), attrOrDefault(attrs))
}

// StaticMethod installs a method directly on the constructor function
// object, e.g. a factory or utility the Class exposes without needing
// an instance (spec.md §4.5's "static" surface).
func (b *Builder) StaticMethod(name string, length int, fn HostFunc, attrs ...object.Attribute) {
	obj := b.buildFunction(name, length, wrapHostFunc(name, length, fn))
	b.ctor.DefineData(object.StringKey(name), value.Object(obj), attrOrDefault(attrs))
}

// Property installs a plain data property on the prototype.
func (b *Builder) Property(name string, v value.Value, attrs ...object.Attribute) {
	b.proto.DefineData(object.StringKey(name), v, attrOrDefault(attrs))
}

// StaticProperty installs a plain data property on the constructor
// function itself.
func (b *Builder) StaticProperty(name string, v value.Value, attrs ...object.Attribute) {
	b.ctor.DefineData(object.StringKey(name), v, attrOrDefault(attrs))
}

// Accessor installs a getter/setter pair on the prototype; set may be
// value.Undefined for a read-only accessor.
func (b *Builder) Accessor(name string, get, set HostFunc, attrs ...object.Attribute) {
	getObj := value.Object(b.buildFunction("get "+name, 0, wrapHostFunc(name, 0, get)))
	setVal := value.Undefined
	if set != nil {
		setVal = value.Object(b.buildFunction("set "+name, 1, wrapHostFunc(name, 1, set)))
	}
	b.proto.DefineAccessor(object.StringKey(name), getObj, setVal, attrOrDefault(attrs))
}

func (b *Builder) buildFunction(name string, length int, fn object.Invoke) *object.Object {
	slot := object.NewBuiltIn(name, length, true, false, fn)
	obj := object.New(b.exec.Realm.FunctionProto)
	obj.SetInternal(slot)
	obj.DefineData(object.StringKey("name"), value.String(name), object.Empty)
	obj.DefineData(object.StringKey("length"), value.Integer(int32(length)), object.Empty)
	b.exec.Heap.Register(obj)
	return obj
}

// Register builds c's constructor and prototype objects, wires them
// together, installs c's members via Init, and binds the constructor
// onto target (the Context's global object) under c.Name(). Construct
// failures surface as a thrown Value the caller can propagate; Register
// itself only fails if Name is empty.
func Register(exec *executor.Executor, target *object.Object, c Class) (*object.Object, error) {
	name := c.Name()
	if name == "" {
		return nil, errEmptyName
	}

	proto := object.New(exec.Realm.ObjectProto)
	exec.Heap.Register(proto)

	ctorSlot := object.NewBuiltIn(name, c.Length(), true, true, nil)
	ctorSlot.Prototype = proto
	ctorObj := object.New(exec.Realm.FunctionProto)
	ctorObj.SetInternal(ctorSlot)
	ctorObj.DefineData(object.StringKey("name"), value.String(name), object.Empty)
	ctorObj.DefineData(object.StringKey("length"), value.Integer(int32(c.Length())), object.Empty)
	exec.Heap.Register(ctorObj)

	ctorSlot.Call = buildConstructInvoke(c)

	proto.DefineData(object.StringKey("constructor"), value.Object(ctorObj), object.Writable|object.Configurable)

	b := newBuilder(exec, proto, ctorObj)
	c.Init(b)

	target.DefineData(object.StringKey(name), value.Object(ctorObj), c.Attribute())
	return ctorObj, nil
}

// buildConstructInvoke adapts Class.Construct to object.Invoke: the
// instance already exists (object.Construct allocates it against
// ctorSlot.Prototype before calling Call), so the wrapper only needs to
// run the host constructor and, on success, stash the returned payload
// into the instance's NativeObject internal-data slot.
func buildConstructInvoke(c Class) object.Invoke {
	return func(this value.Value, args []value.Value, newTarget *object.Object) (value.Value, *value.Thrown) {
		payload, thrown := c.Construct(this, args)
		if thrown != nil {
			return value.Undefined, thrown
		}
		if inst, ok := this.AsObject().(*object.Object); ok {
			inst.SetInternal(&object.NativeObjectSlot{Payload: payload})
		}
		return this, nil
	}
}

// PayloadOf retrieves a native instance's host payload, reporting ok=
// false if inst is not a NativeObject (e.g. the wrong class, or a plain
// object someone constructed by hand).
func PayloadOf(v value.Value) (any, bool) {
	obj, ok := v.AsObject().(*object.Object)
	if !ok {
		return nil, false
	}
	slot, ok := obj.Internal().(*object.NativeObjectSlot)
	if !ok {
		return nil, false
	}
	return slot.Payload, true
}
