// Package quill is the embeddable JavaScript-subset evaluation engine's
// public facade, per spec.md §6/§5's Engine(Context) module: a Context
// bundles one heap, one realm, and one executor, and exposes Eval/
// EvalFile/RegisterClass/Global as the entire surface a host program
// needs. Grounded on the teacher's top-level `dws` package shape (a
// facade type wrapping interp/lexer/parser so cmd/dwscript never
// touches internal/ packages directly) generalized to this spec's
// functional-options construction style.
package quill

import (
	"fmt"

	"github.com/quill-lang/quill/internal/diag"
	"github.com/quill-lang/quill/internal/executor"
	"github.com/quill-lang/quill/internal/gc"
	"github.com/quill-lang/quill/internal/nativeclass"
	"github.com/quill-lang/quill/internal/object"
	"github.com/quill-lang/quill/internal/parser"
	"github.com/quill-lang/quill/internal/source"
	"github.com/quill-lang/quill/internal/value"
)

// Context is one self-contained evaluation environment: its own heap,
// realm, and global object, never shared across goroutines (spec.md
// §5). Create one per independent script sandbox.
type Context struct {
	heap *gc.Heap
	exec *executor.Executor
}

// ContextOption configures a Context at construction time, the same
// functional-options shape the teacher's lexer.LexerOption uses.
type ContextOption func(*Context)

// WithMaxCallDepth overrides the recursion ceiling (default 2000) a
// runaway script call chain hits before a catchable RangeError is
// raised instead of overflowing the host Go stack.
func WithMaxCallDepth(n int) ContextOption {
	return func(c *Context) { c.exec.SetMaxCallDepth(n) }
}

// WithStrict runs top-level script under `"use strict"` semantics even
// when the source has no directive prologue of its own.
func WithStrict(strict bool) ContextOption {
	return func(c *Context) { c.exec.SetStrict(strict) }
}

// WithLogger installs a logger satisfying executor.Logger (internal/
// enginelog.Logger does) for diagnostic tracing; the default is a
// no-op, so logging is always opt-in.
func WithLogger(l executor.Logger) ContextOption {
	return func(c *Context) { c.exec.Log = l }
}

// New constructs a Context with a fresh heap, realm, and global object.
func New(opts ...ContextOption) *Context {
	heap := gc.NewHeap()
	c := &Context{heap: heap, exec: executor.New(heap)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Eval parses and runs source against the Context's global environment,
// returning the completion value of the last top-level statement other
// than a declaration or an empty statement (spec.md §6's Eval
// operation). Lex and parse failures are returned as an *EvalError
// carrying internal/diag diagnostics (the lexer's errors when there are
// any, otherwise the parser's); runtime throws (including from a
// NativeClass's Construct) are returned as a *ThrownError carrying the
// thrown Value.
func (c *Context) Eval(src string) (value.Value, error) {
	return c.eval(src, "")
}

// EvalFile reads path (detecting a BOM and transcoding UTF-16 via
// internal/source the way the teacher's detectAndDecodeFile does) and
// evaluates its contents, reporting the file name in diagnostics.
func (c *Context) EvalFile(path string) (value.Value, error) {
	text, err := source.ReadFile(path)
	if err != nil {
		return value.Undefined, err
	}
	return c.eval(text, path)
}

func (c *Context) eval(src, file string) (value.Value, error) {
	p := parser.New(src)
	prog, parseErrs := p.Parse()

	if lexErrs := p.LexErrors(); len(lexErrs) > 0 {
		return value.Undefined, &EvalError{Diagnostics: diag.FromLexErrors(lexErrs, src, file)}
	}
	if len(parseErrs) > 0 {
		return value.Undefined, &EvalError{Diagnostics: diag.FromParseErrors(parseErrs, src, file)}
	}

	result, thrown := c.exec.Run(prog)
	if thrown != nil {
		return value.Undefined, &ThrownError{Value: thrown.V}
	}
	return result, nil
}

// RegisterClass installs c's constructor onto the Context's global
// object under c.Name(), per spec.md §4.5's NativeClass extension
// point. Returns an error only if c.Name() is empty.
func (c *Context) RegisterClass(class nativeclass.Class) error {
	_, err := nativeclass.Register(c.exec, c.exec.Realm.Global, class)
	return err
}

// Global returns the Context's global object, letting an embedder read
// or install bindings directly (e.g. to seed a value before Eval runs).
func (c *Context) Global() *object.Object {
	return c.exec.Realm.Global
}

// Heap exposes the Context's collector for an embedder that wants to
// drive collection explicitly (e.g. between REPL entries); quill never
// calls Collect on its own, per spec.md §9's "collection is host-
// triggered, never automatic" design note.
func (c *Context) Heap() *gc.Heap {
	return c.heap
}

// EvalError reports one or more lex/parse diagnostics that prevented
// source from running at all.
type EvalError struct {
	Diagnostics []*diag.Diagnostic
}

func (e *EvalError) Error() string {
	return diag.FormatAll(e.Diagnostics, false)
}

// ThrownError wraps a runtime-thrown Value (an uncaught script
// exception) in Go's error interface, per spec.md §7.
type ThrownError struct {
	Value value.Value
}

func (e *ThrownError) Error() string {
	return fmt.Sprintf("uncaught exception: %s", e.Value.Display())
}
