package executor

import (
	"github.com/quill-lang/quill/internal/object"
	"github.com/quill-lang/quill/internal/value"
)

// newError builds a standard Error instance of the given name/proto with
// a message property, per spec.md §7's three-strata error model: lex and
// parse errors are reported directly by diag, but runtime failures are
// always represented as thrown Values wrapping one of these objects.
func (e *Executor) newError(proto *object.Object, name, message string) *object.Object {
	obj := object.New(proto)
	obj.SetInternal(&object.ErrorSlot{Name: name, Message: message})
	obj.DefineData(object.StringKey("message"), value.String(message), object.Writable|object.Configurable)
	obj.DefineData(object.StringKey("name"), value.String(name), object.Writable|object.Configurable)
	e.Heap.Register(obj)
	return obj
}

func (e *Executor) throwError(proto *object.Object, name, message string) *value.Thrown {
	return value.Throw(value.Object(e.newError(proto, name, message)))
}

func (e *Executor) typeError(message string) *value.Thrown {
	return e.throwError(e.Realm.TypeErrorProto, "TypeError", message)
}

func (e *Executor) rangeError(message string) *value.Thrown {
	return e.throwError(e.Realm.RangeErrorProto, "RangeError", message)
}

func (e *Executor) referenceError(message string) *value.Thrown {
	return e.throwError(e.Realm.ReferenceErrorProto, "ReferenceError", message)
}

func (e *Executor) syntaxError(message string) *value.Thrown {
	return e.throwError(e.Realm.SyntaxErrorProto, "SyntaxError", message)
}
