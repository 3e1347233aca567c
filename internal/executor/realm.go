package executor

import (
	"io"
	"os"

	"github.com/quill-lang/quill/internal/environment"
	"github.com/quill-lang/quill/internal/gc"
	"github.com/quill-lang/quill/internal/object"
	"github.com/quill-lang/quill/internal/value"
)

// Realm bundles the global object, global environment, and intrinsic
// prototypes a Context owns exactly one of, per spec.md §3.
type Realm struct {
	Global    *object.Object
	GlobalEnv *environment.Environment

	ObjectProto   *object.Object
	FunctionProto *object.Object
	ArrayProto    *object.Object
	StringProto   *object.Object
	NumberProto   *object.Object
	BooleanProto  *object.Object

	ErrorProto          *object.Object
	TypeErrorProto      *object.Object
	RangeErrorProto     *object.Object
	ReferenceErrorProto *object.Object
	SyntaxErrorProto    *object.Object

	Stdout io.Writer
}

// NewRealm builds a fresh Realm with standard intrinsics registered on
// heap: the Object/Function/Array/Error prototype chain and the minimal
// global built-ins quill ships (spec.md §1 excludes "the full ECMAScript
// built-in library" as an external collaborator concern, but console,
// Object statics, and Array basics are what the Testable Properties in
// §8 actually exercise, so they live here rather than nowhere).
func NewRealm(heap *gc.Heap) *Realm {
	r := &Realm{Stdout: os.Stdout}

	r.ObjectProto = object.New(nil)
	heap.Register(r.ObjectProto)

	r.FunctionProto = object.New(r.ObjectProto)
	r.FunctionProto.SetInternal(object.NewBuiltIn("", 0, true, false, func(this value.Value, args []value.Value, nt *object.Object) (value.Value, *value.Thrown) {
		return value.Undefined, nil
	}))
	heap.Register(r.FunctionProto)

	r.ArrayProto = object.New(r.ObjectProto)
	heap.Register(r.ArrayProto)
	r.StringProto = object.New(r.ObjectProto)
	heap.Register(r.StringProto)
	r.NumberProto = object.New(r.ObjectProto)
	heap.Register(r.NumberProto)
	r.BooleanProto = object.New(r.ObjectProto)
	heap.Register(r.BooleanProto)

	r.ErrorProto = object.New(r.ObjectProto)
	heap.Register(r.ErrorProto)
	r.TypeErrorProto = object.New(r.ErrorProto)
	heap.Register(r.TypeErrorProto)
	r.RangeErrorProto = object.New(r.ErrorProto)
	heap.Register(r.RangeErrorProto)
	r.ReferenceErrorProto = object.New(r.ErrorProto)
	heap.Register(r.ReferenceErrorProto)
	r.SyntaxErrorProto = object.New(r.ErrorProto)
	heap.Register(r.SyntaxErrorProto)

	r.Global = object.New(r.ObjectProto)
	heap.Register(r.Global)
	r.GlobalEnv = environment.NewObjectRecord(nil, r.Global)
	heap.AddRoot(r.GlobalEnv)

	return r
}

func newFunctionObject(heap *gc.Heap, proto *object.Object, slot *object.FunctionSlot) *object.Object {
	fn := object.New(proto)
	fn.SetInternal(slot)
	fn.DefineData(object.StringKey("name"), value.String(slot.Name), object.Empty)
	fn.DefineData(object.StringKey("length"), value.Integer(int32(slot.Length)), object.Empty)
	heap.Register(fn)
	return fn
}

// defineBuiltIn installs fn as a named, non-constructable built-in
// on target's own properties, the shape every intrinsic method
// (Array.prototype.map, Object.keys, ...) uses.
func (e *Executor) defineBuiltIn(target *object.Object, name string, length int, fn object.Invoke) {
	obj := newFunctionObject(e.Heap, e.Realm.FunctionProto, object.NewBuiltIn(name, length, true, false, fn))
	target.DefineData(object.StringKey(name), value.Object(obj), object.Writable|object.Configurable)
}

func (e *Executor) defineBuiltInConstructor(target *object.Object, name string, length int, proto *object.Object, fn object.Invoke) *object.Object {
	slot := object.NewBuiltIn(name, length, true, true, fn)
	slot.Prototype = proto
	obj := newFunctionObject(e.Heap, e.Realm.FunctionProto, slot)
	proto.DefineData(object.StringKey("constructor"), value.Object(obj), object.Writable|object.Configurable)
	target.DefineData(object.StringKey(name), value.Object(obj), object.Writable|object.Configurable)
	return obj
}
