package parser_test

import (
	"testing"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := parser.New(src)
	prog, errs := p.Parse()
	require.Empty(t, errs, "unexpected parse errors for %q", src)
	return prog
}

func TestParsesArithmeticPrecedence(t *testing.T) {
	prog := mustParse(t, "1 + 2 * 3;")
	stmt := prog.Body[0].(*ast.ExpressionStatement)
	assert.Equal(t, "(1 + (2 * 3))", stmt.Expression.String())
}

func TestParsesVariableDeclaration(t *testing.T) {
	prog := mustParse(t, "let x = 1, y = 2;")
	decl := prog.Body[0].(*ast.VariableDeclaration)
	assert.Equal(t, ast.Let, decl.Kind)
	assert.Len(t, decl.Declarations, 2)
}

func TestParsesArrowFunctionSingleParam(t *testing.T) {
	prog := mustParse(t, "let f = x => x + 1;")
	decl := prog.Body[0].(*ast.VariableDeclaration)
	arrow := decl.Declarations[0].Init.(*ast.ArrowFunctionExpression)
	assert.Len(t, arrow.Params, 1)
	assert.NotNil(t, arrow.ExprBody)
}

func TestParsesArrowFunctionParenParams(t *testing.T) {
	prog := mustParse(t, "let f = (a, b) => { return a + b; };")
	decl := prog.Body[0].(*ast.VariableDeclaration)
	arrow := decl.Declarations[0].Init.(*ast.ArrowFunctionExpression)
	assert.Len(t, arrow.Params, 2)
	assert.NotNil(t, arrow.Body)
}

func TestDistinguishesParenExpressionFromArrow(t *testing.T) {
	prog := mustParse(t, "(1 + 2);")
	stmt := prog.Body[0].(*ast.ExpressionStatement)
	_, isArrow := stmt.Expression.(*ast.ArrowFunctionExpression)
	assert.False(t, isArrow)
	assert.Equal(t, "(1 + 2)", stmt.Expression.String())
}

func TestParsesIfElseChain(t *testing.T) {
	prog := mustParse(t, "if (a) { b; } else if (c) { d; } else { e; }")
	ifStmt := prog.Body[0].(*ast.IfStatement)
	require.NotNil(t, ifStmt.Alternate)
	_, ok := ifStmt.Alternate.(*ast.IfStatement)
	assert.True(t, ok)
}

func TestParsesForOfLoop(t *testing.T) {
	prog := mustParse(t, "for (const x of xs) { y; }")
	forOf := prog.Body[0].(*ast.ForOfStatement)
	decl, ok := forOf.Left.(*ast.VariableDeclaration)
	require.True(t, ok)
	assert.Equal(t, ast.Const, decl.Kind)
}

func TestParsesClassicForDisambiguatesFromForIn(t *testing.T) {
	prog := mustParse(t, "for (let i = 0; i < 10; i++) { sum; }")
	forStmt := prog.Body[0].(*ast.ForStatement)
	require.NotNil(t, forStmt.Test)
	require.NotNil(t, forStmt.Update)
}

func TestParsesTryCatchFinally(t *testing.T) {
	prog := mustParse(t, `try { a; } catch (e) { b; } finally { c; }`)
	tryStmt := prog.Body[0].(*ast.TryStatement)
	require.NotNil(t, tryStmt.Catch)
	require.NotNil(t, tryStmt.Finally)
	assert.Equal(t, "e", tryStmt.Catch.Param.String())
}

func TestParsesObjectLiteralWithShorthandAndMethod(t *testing.T) {
	prog := mustParse(t, "let o = { x, y: 1, f() { return 1; } };")
	decl := prog.Body[0].(*ast.VariableDeclaration)
	obj := decl.Declarations[0].Init.(*ast.ObjectLiteral)
	require.Len(t, obj.Properties, 3)
	assert.True(t, obj.Properties[0].Shorthand)
	assert.Equal(t, ast.PropertyMethod, obj.Properties[2].Kind)
}

func TestParsesArrayDestructuringWithDefaultAndRest(t *testing.T) {
	prog := mustParse(t, "let [a, b = 2, ...rest] = xs;")
	decl := prog.Body[0].(*ast.VariableDeclaration)
	pat := decl.Declarations[0].Target.(*ast.ArrayPattern)
	require.Len(t, pat.Elements, 3)
	_, hasDefault := pat.Elements[1].(*ast.AssignmentPattern)
	assert.True(t, hasDefault)
	_, isRest := pat.Elements[2].(*ast.RestElement)
	assert.True(t, isRest)
}

func TestParsesClassWithMethodsAndFields(t *testing.T) {
	prog := mustParse(t, `class Point {
		x = 0;
		constructor(x, y) { this.x = x; this.y = y; }
		get sum() { return this.x + this.y; }
		static origin() { return new Point(0, 0); }
	}`)
	decl := prog.Body[0].(*ast.ClassDeclaration)
	assert.Equal(t, "Point", decl.Class.Name)
	require.Len(t, decl.Class.Members, 4)
	assert.Equal(t, ast.PropertyGet, decl.Class.Members[2].Kind)
	assert.True(t, decl.Class.Members[3].Static)
}

func TestParsesOptionalChainingAndNullish(t *testing.T) {
	prog := mustParse(t, "a?.b?.[0] ?? c;")
	stmt := prog.Body[0].(*ast.ExpressionStatement)
	_, ok := stmt.Expression.(*ast.LogicalExpression)
	assert.True(t, ok)
}

func TestParsesTemplateLiteralWithExpression(t *testing.T) {
	prog := mustParse(t, "`hello ${name}!`;")
	stmt := prog.Body[0].(*ast.ExpressionStatement)
	tmpl := stmt.Expression.(*ast.TemplateLiteral)
	assert.Len(t, tmpl.Expressions, 1)
	assert.Len(t, tmpl.Quasis, 2)
}

func TestUseStrictDirectiveDetected(t *testing.T) {
	prog := mustParse(t, `"use strict"; let x = 1;`)
	assert.True(t, prog.Strict)
}

func TestParsesSpreadInCallAndArray(t *testing.T) {
	prog := mustParse(t, "f(...args); let a = [...xs, 1];")
	call := prog.Body[0].(*ast.ExpressionStatement).Expression.(*ast.CallExpression)
	_, ok := call.Arguments[0].(*ast.Spread)
	assert.True(t, ok)

	decl := prog.Body[1].(*ast.VariableDeclaration)
	arr := decl.Declarations[0].Init.(*ast.ArrayLiteral)
	_, ok = arr.Elements[0].(*ast.Spread)
	assert.True(t, ok)
}
