package quill_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	"github.com/quill-lang/quill/pkg/quill"
)

// TestEndToEndScenarios exercises the six end-to-end scenarios verbatim,
// each input evaluated against a fresh Context and its display form
// snapshotted with go-snaps so a future regression shows a diff instead
// of a silent wrong answer.
func TestEndToEndScenarios(t *testing.T) {
	scenarios := []struct {
		name   string
		source string
	}{
		{"arithmetic", "1 + 2 * 3"},
		{"array_map_reduce", "let xs = [1,2,3]; xs.map(x => x*x).reduce((a,b)=>a+b, 0)"},
		{"recursive_fibonacci", "function f(n){ return n<2?n:f(n-1)+f(n-2); } f(10)"},
		{"throw_object_literal", "try { throw {code: 42}; } catch(e) { e.code }"},
		{"define_property_non_enumerable", "let o = {a:1}; Object.defineProperty(o,'b',{value:2}); Object.keys(o).join(',')"},
		{"block_scoped_let_shadowing", "(function(){ var x=1; { let x=2; } return x; })()"},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			ctx := quill.New()
			result, err := ctx.Eval(s.source)
			require.NoError(t, err)
			snaps.MatchSnapshot(t, result.Display())
		})
	}
}

// TestEndToEndScenarioValues pins the six scenarios' exact expected
// values directly (not just via snapshot), matching spec.md §8 literally.
func TestEndToEndScenarioValues(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"1 + 2 * 3", "7"},
		{"let xs = [1,2,3]; xs.map(x => x*x).reduce((a,b)=>a+b, 0)", "14"},
		{"function f(n){ return n<2?n:f(n-1)+f(n-2); } f(10)", "55"},
		{"try { throw {code: 42}; } catch(e) { e.code }", "42"},
		{"let o = {a:1}; Object.defineProperty(o,'b',{value:2}); Object.keys(o).join(',')", `"a"`},
		{"(function(){ var x=1; { let x=2; } return x; })()", "1"},
	}
	for _, c := range cases {
		ctx := quill.New()
		result, err := ctx.Eval(c.source)
		require.NoError(t, err, "source: %s", c.source)
		require.Equal(t, c.want, result.Display(), "source: %s", c.source)
	}
}

// TestBoundaryBehaviors covers spec.md §8's boundary-behavior list that
// isn't already exercised by the AST/object/value package tests.
func TestBoundaryBehaviors(t *testing.T) {
	t.Run("integer overflow promotes to rational", func(t *testing.T) {
		ctx := quill.New()
		result, err := ctx.Eval("2147483647 + 1")
		require.NoError(t, err)
		require.Equal(t, "2147483648", result.Display())
	})

	t.Run("zero and negative zero are strictly equal", func(t *testing.T) {
		ctx := quill.New()
		result, err := ctx.Eval("0 === -0")
		require.NoError(t, err)
		require.Equal(t, "true", result.Display())
	})

	t.Run("Object.is distinguishes zero and negative zero", func(t *testing.T) {
		ctx := quill.New()
		result, err := ctx.Eval("Object.is(0, -0)")
		require.NoError(t, err)
		require.Equal(t, "false", result.Display())
	})

	t.Run("NaN is never equal to itself", func(t *testing.T) {
		ctx := quill.New()
		result, err := ctx.Eval("NaN === NaN")
		require.NoError(t, err)
		require.Equal(t, "false", result.Display())
	})

	t.Run("reading a let binding before declaration throws ReferenceError", func(t *testing.T) {
		ctx := quill.New()
		_, err := ctx.Eval("x; let x = 1;")
		require.Error(t, err)
		var thrown *quill.ThrownError
		require.ErrorAs(t, err, &thrown)
		require.Contains(t, thrown.Error(), "ReferenceError")
	})

	t.Run("writing to a property of a frozen object is a silent no-op in sloppy mode", func(t *testing.T) {
		ctx := quill.New()
		result, err := ctx.Eval("let o = {x:1}; Object.freeze(o); o.x = 2; o.x")
		require.NoError(t, err)
		require.Equal(t, "1", result.Display())
	})

	t.Run("writing to a non-configurable property of a frozen object throws in strict mode", func(t *testing.T) {
		ctx := quill.New()
		_, err := ctx.Eval(`"use strict"; let o = {x:1}; Object.freeze(o); o.x = 2;`)
		require.Error(t, err)
		var thrown *quill.ThrownError
		require.ErrorAs(t, err, &thrown)
		require.Contains(t, thrown.Error(), "TypeError")
	})

	t.Run("adding a property to a non-extensible object is a silent no-op in sloppy mode", func(t *testing.T) {
		ctx := quill.New()
		result, err := ctx.Eval("let o = {}; Object.preventExtensions(o); o.y = 1; o.y")
		require.NoError(t, err)
		require.Equal(t, "undefined", result.Display())
	})

	t.Run("adding a property to a non-extensible object throws in strict mode", func(t *testing.T) {
		ctx := quill.New()
		_, err := ctx.Eval(`"use strict"; let o = {}; Object.preventExtensions(o); o.y = 1;`)
		require.Error(t, err)
		var thrown *quill.ThrownError
		require.ErrorAs(t, err, &thrown)
		require.Contains(t, thrown.Error(), "TypeError")
	})

	t.Run("deleting a non-configurable own property returns false in sloppy mode", func(t *testing.T) {
		ctx := quill.New()
		result, err := ctx.Eval("let o = {}; Object.defineProperty(o, 'x', {value: 1, configurable: false}); delete o.x")
		require.NoError(t, err)
		require.Equal(t, "false", result.Display())
	})

	t.Run("deleting a non-configurable own property throws in strict mode", func(t *testing.T) {
		ctx := quill.New()
		_, err := ctx.Eval(`"use strict"; let o = {}; Object.defineProperty(o, 'x', {value: 1, configurable: false}); delete o.x;`)
		require.Error(t, err)
		var thrown *quill.ThrownError
		require.ErrorAs(t, err, &thrown)
		require.Contains(t, thrown.Error(), "TypeError")
	})
}

// TestFinallyOverridesAbruptCompletion covers SPEC_FULL.md §10's
// supplemented finally-override behavior: a `finally` block that itself
// completes abruptly (return/break/continue/throw) overrides whatever
// completion the try/catch block produced, the same rule the teacher's
// own try/finally handling in internal/interp implements.
func TestFinallyOverridesAbruptCompletion(t *testing.T) {
	ctx := quill.New()
	result, err := ctx.Eval(`
		function f() {
			try {
				return "from try";
			} finally {
				return "from finally";
			}
		}
		f()
	`)
	require.NoError(t, err)
	require.Equal(t, `"from finally"`, result.Display())
}
