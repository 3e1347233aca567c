// Package environment implements quill's lexical scope chain (spec.md
// §3/§4.4): a chain of EnvironmentRecord frames mapping names to binding
// slots, with temporal-dead-zone tracking for `let`/`const`.
package environment

import (
	"github.com/quill-lang/quill/internal/gc"
	"github.com/quill-lang/quill/internal/object"
	"github.com/quill-lang/quill/internal/value"
)

// Kind tags which EnvironmentRecord flavor a frame is, per spec.md §3.
type Kind uint8

const (
	// Declarative holds bindings directly in this frame's map — the
	// shape for function bodies, blocks, and the `catch` clause.
	Declarative Kind = iota
	// ObjectRecord is backed by an Object's own properties — used for
	// the global environment and (if ever added) `with` statements.
	ObjectRecord
	// FunctionRecord is a Declarative frame that additionally carries a
	// `this` binding and an `arguments` object.
	FunctionRecord
)

// binding is one name's slot within a Declarative or Function frame.
type binding struct {
	value       value.Value
	mutable     bool
	initialized bool
}

// Environment is one frame in the scope chain.
type Environment struct {
	kind   Kind
	parent *Environment

	bindings map[string]*binding

	// backing is the Object powering an ObjectRecord frame's property
	// lookups; nil for Declarative/Function frames.
	backing *object.Object

	// this and hasThis implement the Function frame's `this` binding.
	// hasThis is false for ordinary Declarative/Object frames and for
	// arrow-function frames, which inherit `this` from the lexically
	// enclosing Function frame instead of binding their own (so arrow
	// GetThis walks up to find the nearest frame with hasThis==true).
	this    value.Value
	hasThis bool

	// arguments is the array-like `arguments` object bound by ordinary
	// (non-arrow) function calls.
	arguments value.Value
}

// NewDeclarative creates a child Declarative frame of parent. parent may
// be nil only for a root frame that is not the global environment
// (global environments should use NewObjectRecord).
func NewDeclarative(parent *Environment) *Environment {
	return &Environment{kind: Declarative, parent: parent, bindings: make(map[string]*binding)}
}

// NewObjectRecord creates an Object-backed frame over backing, used for
// the global environment (spec.md §3).
func NewObjectRecord(parent *Environment, backing *object.Object) *Environment {
	return &Environment{kind: ObjectRecord, parent: parent, backing: backing, bindings: make(map[string]*binding)}
}

// NewFunctionRecord creates a Function frame: a Declarative frame plus a
// bound `this` and (optionally) an `arguments` object.
func NewFunctionRecord(parent *Environment, this value.Value, args value.Value) *Environment {
	return &Environment{
		kind: FunctionRecord, parent: parent, bindings: make(map[string]*binding),
		this: this, hasThis: true, arguments: args,
	}
}

// NewArrowFunctionRecord creates a Function-shaped frame for an arrow
// function body: it does not bind its own `this`/`arguments`, so lookups
// for either fall through to the nearest enclosing frame that has one.
func NewArrowFunctionRecord(parent *Environment) *Environment {
	return &Environment{kind: FunctionRecord, parent: parent, bindings: make(map[string]*binding)}
}

// Parent returns the enclosing frame, or nil at the top of the chain.
func (e *Environment) Parent() *Environment { return e.parent }

// Kind reports which EnvironmentRecord flavor this frame is.
func (e *Environment) Kind() Kind { return e.kind }

// Backing returns the Object backing an ObjectRecord frame, or nil.
func (e *Environment) Backing() *object.Object { return e.backing }

// DeclareMutable creates a new `var`/`let`-style binding, already
// initialized to v (use DeclareUninitialized for TDZ bindings created by
// `let`/`const` hoisting).
func (e *Environment) DeclareMutable(name string, v value.Value) {
	if e.backing != nil {
		e.backing.DefineData(object.StringKey(name), v, object.Writable|object.Enumerable)
		return
	}
	e.bindings[name] = &binding{value: v, mutable: true, initialized: true}
}

// DeclareImmutable creates a new `const`-style binding, already
// initialized.
func (e *Environment) DeclareImmutable(name string, v value.Value) {
	if e.backing != nil {
		e.backing.DefineData(object.StringKey(name), v, object.Enumerable)
		return
	}
	e.bindings[name] = &binding{value: v, mutable: false, initialized: true}
}

// DeclareUninitialized creates a `let`/`const` binding in the temporal
// dead zone: present but unreadable until Initialize is called, per
// spec.md §3 and §8 ("reading a let binding before its declaration
// throws ReferenceError").
func (e *Environment) DeclareUninitialized(name string, mutable bool) {
	e.bindings[name] = &binding{mutable: mutable, initialized: false}
}

// Initialize ends the TDZ for name, giving it its first value. It is an
// error to call this on a name that was never declared uninitialized;
// callers (the executor's hoisting pass) are expected to have already
// called DeclareUninitialized.
func (e *Environment) Initialize(name string, v value.Value) bool {
	b, ok := e.bindings[name]
	if !ok {
		return false
	}
	b.value = v
	b.initialized = true
	return true
}

// LookupResult reports what HasBinding / Resolve found for a single
// frame, distinguishing "not found" from "found but in the TDZ" so the
// executor can raise the right ReferenceError per spec.md §4.4.
type LookupResult int

const (
	NotFound LookupResult = iota
	FoundUninitialized
	Found
)

// GetOwn looks up name in this frame only (no parent walk).
func (e *Environment) GetOwn(name string) (value.Value, LookupResult) {
	if e.backing != nil {
		if v, _, ok := e.backing.Get(object.StringKey(name)); ok {
			return v, Found
		}
	}
	b, ok := e.bindings[name]
	if !ok {
		return value.Undefined, NotFound
	}
	if !b.initialized {
		return value.Undefined, FoundUninitialized
	}
	return b.value, Found
}

// Resolve walks the environment chain from e outward looking for name,
// per spec.md §4.4's identifier-resolution algorithm.
func (e *Environment) Resolve(name string) (value.Value, LookupResult, *Environment) {
	for cur := e; cur != nil; cur = cur.parent {
		v, res := cur.GetOwn(name)
		if res != NotFound {
			return v, res, cur
		}
	}
	return value.Undefined, NotFound, nil
}

// Assign walks the chain looking for an existing binding named name and
// updates it in place, respecting mutability. ok is false if no binding
// exists anywhere in the chain (the executor decides whether that means
// "create a global" in sloppy mode or "ReferenceError" in strict mode,
// per spec.md §4.4). immutableViolation is true if the binding exists
// but is a `const`.
func (e *Environment) Assign(name string, v value.Value) (ok, immutableViolation bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if cur.backing != nil {
			if cur.backing.HasProperty(object.StringKey(name)) {
				cur.backing.Set(object.StringKey(name), v)
				return true, false
			}
		}
		if b, found := cur.bindings[name]; found {
			if !b.mutable {
				return true, true
			}
			b.value = v
			b.initialized = true
			return true, false
		}
	}
	return false, false
}

// This resolves the `this` binding by walking up to the nearest frame
// that actually binds one (skipping arrow-function frames, per spec.md
// §4.4), returning value.Undefined if none is found (top-level script
// `this`, the engine's responsibility to seed onto the global frame if
// sloppy-mode semantics are desired).
func (e *Environment) This() value.Value {
	for cur := e; cur != nil; cur = cur.parent {
		if cur.kind == FunctionRecord && cur.hasThis {
			return cur.this
		}
	}
	return value.Undefined
}

// Arguments resolves the nearest enclosing ordinary function's
// `arguments` object, per the same arrow-skipping rule as This.
func (e *Environment) Arguments() (value.Value, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if cur.kind == FunctionRecord && cur.hasThis {
			if cur.arguments.IsUndefined() {
				return value.Undefined, false
			}
			return cur.arguments, true
		}
	}
	return value.Undefined, false
}

// Roots implements gc.Root: every initialized binding value plus (for
// ObjectRecord frames) the backing object, and the parent chain's own
// contribution is picked up because the executor registers every live
// frame, not just the innermost one.
func (e *Environment) Roots() []value.Value {
	var out []value.Value
	if e.backing != nil {
		out = append(out, value.Object(e.backing))
	}
	for _, b := range e.bindings {
		if b.initialized {
			out = append(out, b.value)
		}
	}
	if e.hasThis {
		out = append(out, e.this)
	}
	if !e.arguments.IsUndefined() {
		out = append(out, e.arguments)
	}
	return out
}

var _ gc.Root = (*Environment)(nil)
