package executor

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/environment"
	"github.com/quill-lang/quill/internal/gc"
	"github.com/quill-lang/quill/internal/object"
	"github.com/quill-lang/quill/internal/value"
)

// Logger is the narrow logging surface Executor consults; internal/
// enginelog's implementation satisfies it, and the default is a
// no-op so construction never requires a logger.
type Logger interface {
	Debugf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}

// Executor drives evaluation of an ast.Program against a Realm. One
// Executor belongs to exactly one Context/Realm and is never shared
// across goroutines, per spec.md §5 ("a Context is not shared across
// threads").
type Executor struct {
	Realm *Realm
	Heap  *gc.Heap
	Log   Logger

	callDepth    int
	maxCallDepth int

	strict bool

	// superCtorStack/homeProtoStack let a class method's `super()`/
	// `super.x` resolve against the class it was defined on (spec.md
	// §4.2's ClassDeclaration), captured at method-creation time in
	// internal/executor/class.go and pushed/popped around each
	// invocation rather than threaded through every call signature.
	superCtorStack []*object.Object
	homeProtoStack []*object.Object

	// labelStack tracks the LabelledStatement names currently wrapping
	// the statement under execution, so a labelled break/continue deep
	// inside nested loops can be matched against the right one; see
	// loopMatches in internal/executor/stmt.go.
	labelStack []string
}

// pushSuper/popSuper/currentSuperCtor/currentHomeProto implement the
// super-call-site lookup a class method or constructor needs; see
// internal/executor/class.go.
func (e *Executor) pushSuper(superCtor, homeProto *object.Object) {
	e.superCtorStack = append(e.superCtorStack, superCtor)
	e.homeProtoStack = append(e.homeProtoStack, homeProto)
}

func (e *Executor) popSuper() {
	e.superCtorStack = e.superCtorStack[:len(e.superCtorStack)-1]
	e.homeProtoStack = e.homeProtoStack[:len(e.homeProtoStack)-1]
}

func (e *Executor) currentSuperCtor() *object.Object {
	if len(e.superCtorStack) == 0 {
		return nil
	}
	return e.superCtorStack[len(e.superCtorStack)-1]
}

func (e *Executor) currentHomeProto() *object.Object {
	if len(e.homeProtoStack) == 0 {
		return nil
	}
	return e.homeProtoStack[len(e.homeProtoStack)-1]
}

// defaultMaxCallDepth bounds recursive script calls so runaway
// recursion raises a catchable RangeError instead of overflowing the
// host Go stack (spec.md §8's Fibonacci scenario recurses to depth 10;
// this ceiling is for pathological input, not ordinary programs).
const defaultMaxCallDepth = 2000

// New constructs an Executor over a fresh Realm built on heap.
func New(heap *gc.Heap) *Executor {
	e := &Executor{Realm: NewRealm(heap), Heap: heap, Log: noopLogger{}, maxCallDepth: defaultMaxCallDepth}
	installBuiltins(e)
	return e
}

// SetMaxCallDepth overrides the recursion ceiling (internal/engineconfig
// plumbs a host-configured value through here via a ContextOption).
func (e *Executor) SetMaxCallDepth(n int) { e.maxCallDepth = n }

// SetStrict marks the top-level program as running under `"use strict"`
// semantics (assignment to an undeclared identifier raises
// ReferenceError instead of creating a global, per spec.md §4.4).
func (e *Executor) SetStrict(strict bool) { e.strict = strict }

// Run evaluates prog against the Realm's global environment and returns
// the completion value of its last top-level statement other than a
// declaration or an empty statement (the display form the embedder's
// REPL/eval surface reports), or the thrown Value if evaluation aborted
// abnormally.
func (e *Executor) Run(prog *ast.Program) (value.Value, *value.Thrown) {
	e.strict = e.strict || prog.Strict
	e.hoist(e.Realm.GlobalEnv, prog.Body, true)
	last := value.Undefined
	for _, stmt := range prog.Body {
		v, sig := e.execStatement(e.Realm.GlobalEnv, stmt)
		if sig.kind == Throw {
			return value.Undefined, sig.thrown
		}
		switch stmt.(type) {
		case *ast.VariableDeclaration, *ast.FunctionDeclaration, *ast.ClassDeclaration, *ast.EmptyStatement:
		default:
			last = v
		}
		if sig.kind != Normal {
			break
		}
	}
	return last, nil
}

// pushBlockEnv creates a child Declarative frame for a block body. The
// spec's "reuse the parent when a block has no let/const/class/function
// declarations" optimization is not implemented — always allocating a
// frame is semantically equivalent and far simpler to get right; the
// optimization is purely a performance concern spec.md §4.4 allows the
// implementation to skip.
func pushBlockEnv(parent *environment.Environment) *environment.Environment {
	return environment.NewDeclarative(parent)
}

// callFunction invokes fnVal as a function, per spec.md §4.3's Call
// operation, raising TypeError if fnVal is not callable.
func (e *Executor) callFunction(fnVal value.Value, this value.Value, args []value.Value) (value.Value, *value.Thrown) {
	if !fnVal.IsObject() {
		return value.Undefined, e.typeError(fnVal.Display() + " is not a function")
	}
	obj, ok := fnVal.AsObject().(*object.Object)
	if !ok || !obj.IsCallable() {
		return value.Undefined, e.typeError(fnVal.Display() + " is not a function")
	}
	e.callDepth++
	if e.callDepth > e.maxCallDepth {
		e.callDepth--
		return value.Undefined, e.rangeError("Maximum call stack size exceeded")
	}
	v, thrown := obj.Call(this, args)
	e.callDepth--
	return v, thrown
}

func (e *Executor) constructObject(fnVal value.Value, args []value.Value) (value.Value, *value.Thrown) {
	if !fnVal.IsObject() {
		return value.Undefined, e.typeError(fnVal.Display() + " is not a constructor")
	}
	obj, ok := fnVal.AsObject().(*object.Object)
	if !ok || !obj.IsConstructable() {
		return value.Undefined, e.typeError(fnVal.Display() + " is not a constructor")
	}
	e.callDepth++
	if e.callDepth > e.maxCallDepth {
		e.callDepth--
		return value.Undefined, e.rangeError("Maximum call stack size exceeded")
	}
	v, thrown := obj.Construct(args, obj)
	e.callDepth--
	return v, thrown
}

func asObject(v value.Value) (*object.Object, bool) {
	if !v.IsObject() {
		return nil, false
	}
	o, ok := v.AsObject().(*object.Object)
	return o, ok
}
