package ast_test

import (
	"testing"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/token"
	"github.com/stretchr/testify/assert"
)

func TestBinaryExpressionString(t *testing.T) {
	expr := &ast.BinaryExpression{
		Operator: "+",
		Left:     &ast.NumericLiteral{Raw: "1", Value: 1},
		Right:    &ast.NumericLiteral{Raw: "2", Value: 2},
	}
	assert.Equal(t, "(1 + 2)", expr.String())
}

func TestProgramStringJoinsStatements(t *testing.T) {
	prog := &ast.Program{
		Body: []ast.Statement{
			&ast.ExpressionStatement{Expression: &ast.Identifier{Name: "a"}},
			&ast.ExpressionStatement{Expression: &ast.Identifier{Name: "b"}},
		},
	}
	assert.Contains(t, prog.String(), "a;")
	assert.Contains(t, prog.String(), "b;")
}

func TestSpreadOnlyLegalInArrayOrCallContexts(t *testing.T) {
	// Spread is a plain Expression node; the parser is responsible for
	// only ever constructing one inside ArrayLiteral.Elements or
	// CallExpression.Arguments (see internal/parser). This test just
	// pins the node's String form.
	sp := &ast.Spread{Argument: &ast.Identifier{Name: "xs"}}
	assert.Equal(t, "...xs", sp.String())
}

func TestPosReportsTokenPosition(t *testing.T) {
	id := &ast.Identifier{Token: token.Token{Pos: token.Position{Line: 3, Column: 4}}, Name: "x"}
	assert.Equal(t, 3, id.Pos().Line)
}
