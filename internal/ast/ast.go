// Package ast defines quill's typed syntax tree: a closed sum type over
// statement and expression variants (spec.md §4), closed rather than an
// open node trait because the grammar fixes the set of node kinds.
// internal/parser constructs these
// nodes; internal/executor dispatches over them with a type switch.
package ast

import (
	"strings"

	"github.com/quill-lang/quill/internal/token"
)

// Node is the capability every syntax-tree node has: its source
// position and a debug/round-trip string form.
type Node interface {
	Pos() token.Position
	String() string
}

// Statement is a Node that can appear in a StatementList.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that produces a Value when evaluated.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root of a parsed source file: a StatementList plus the
// flag the parser determined for whether the source used `"use strict"`.
type Program struct {
	Body   []Statement
	Strict bool
}

func (p *Program) Pos() token.Position {
	if len(p.Body) == 0 {
		return token.Position{Line: 1, Column: 1}
	}
	return p.Body[0].Pos()
}

func (p *Program) String() string {
	var b strings.Builder
	for _, s := range p.Body {
		b.WriteString(s.String())
		b.WriteString("\n")
	}
	return b.String()
}
