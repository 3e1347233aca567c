package object

import "github.com/quill-lang/quill/internal/value"

// FunctionKind distinguishes the two Function shapes from spec.md §3:
// a native BuiltIn or a script-defined Ordinary function.
type FunctionKind uint8

const (
	BuiltIn FunctionKind = iota
	OrdinaryFunction
)

// Invoke is the single call shape every Function uses, whether BuiltIn
// or Ordinary. For BuiltIn functions it is the host's Go implementation
// directly; for Ordinary functions it is a closure the executor builds
// at function-creation time, capturing the function's AST body and
// closure environment — this keeps object free of any dependency on
// internal/ast or internal/executor while still letting Object.Call
// (defined in call.go) drive both kinds uniformly.
type Invoke func(this value.Value, args []value.Value, newTarget *Object) (value.Value, *value.Thrown)

// FunctionSlot is the internal-data payload for a Function object.
type FunctionSlot struct {
	Kind FunctionKind

	Name   string
	Length int

	Callable      bool
	Constructable bool

	Call Invoke

	// Prototype is the function's own `prototype` data property value
	// for constructors (spec.md §4.3: "Function objects additionally
	// carry prototype").
	Prototype *Object
}

func (*FunctionSlot) internalDataKind() InternalDataKind { return FunctionData }

// NewBuiltIn wraps a native Go function as a Function object's internal
// data. flags mark the function as callable, constructable, or both, per
// spec.md §3.
func NewBuiltIn(name string, length int, callable, constructable bool, fn Invoke) *FunctionSlot {
	return &FunctionSlot{
		Kind: BuiltIn, Name: name, Length: length,
		Callable: callable, Constructable: constructable, Call: fn,
	}
}

// NewOrdinary wraps an executor-built closure as an Ordinary function's
// internal data. Ordinary functions are always callable; Constructable
// reflects whether the declaration form permits `new` (arrow functions
// and methods are not constructable).
func NewOrdinary(name string, length int, constructable bool, fn Invoke) *FunctionSlot {
	return &FunctionSlot{
		Kind: OrdinaryFunction, Name: name, Length: length,
		Callable: true, Constructable: constructable, Call: fn,
	}
}

// ArraySlot is the internal-data payload for Array objects: a dense
// element vector. The slot keeps no separate length field.
type ArraySlot struct {
	Elements []value.Value
}

func (*ArraySlot) internalDataKind() InternalDataKind { return ArrayData }

// StringSlot boxes a primitive string for `new String(...)`.
type StringSlot struct{ Value string }

func (*StringSlot) internalDataKind() InternalDataKind { return StringData }

// BooleanSlot boxes a primitive boolean for `new Boolean(...)`.
type BooleanSlot struct{ Value bool }

func (*BooleanSlot) internalDataKind() InternalDataKind { return BooleanData }

// NumberSlot boxes a primitive number for `new Number(...)`.
type NumberSlot struct{ Value float64 }

func (*NumberSlot) internalDataKind() InternalDataKind { return NumberData }

// ErrorSlot tags an object as one of the standard Error subtypes.
type ErrorSlot struct {
	Name    string // "Error", "TypeError", "ReferenceError", ...
	Message string
}

func (*ErrorSlot) internalDataKind() InternalDataKind { return ErrorData }

// TraceFunc lets a NativeObjectSlot's host payload participate in the
// collector's mark phase: a host with custom trace needs supplies one
// alongside the payload. It should invoke visit for every value.Value the payload
// holds a reference to.
type TraceFunc func(visit func(value.Value))

// NativeObjectSlot is the internal-data payload for a host-registered
// native class instance (spec.md §3's NativeObject variant). Payload is
// opaque to the engine; Trace, if non-nil, is consulted by gc.Heap.
type NativeObjectSlot struct {
	Payload any
	Trace   TraceFunc
}

func (*NativeObjectSlot) internalDataKind() InternalDataKind { return NativeObjectData }

// DateSlot stores a Date object's internal time value as milliseconds
// since the Unix epoch, matching ECMAScript's internal representation.
type DateSlot struct{ TimeMS float64 }

func (*DateSlot) internalDataKind() InternalDataKind { return DateData }

// RegExpSlot stores a (non-matching, metadata-only) RegExp object's
// source and flags — the core keeps no matching engine (spec.md §1
// Non-goals), but a native class or host library can still construct
// and introspect RegExp-shaped objects.
type RegExpSlot struct {
	Source string
	Flags  string
}

func (*RegExpSlot) internalDataKind() InternalDataKind { return RegExpData }
