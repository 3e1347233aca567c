package ast

import (
	"strings"

	"github.com/quill-lang/quill/internal/token"
)

func (*BlockStatement) statementNode()      {}
func (*VariableDeclaration) statementNode() {}
func (*FunctionDeclaration) statementNode() {}
func (*ClassDeclaration) statementNode()    {}
func (*ExpressionStatement) statementNode() {}
func (*IfStatement) statementNode()         {}
func (*WhileStatement) statementNode()      {}
func (*DoWhileStatement) statementNode()    {}
func (*ForStatement) statementNode()        {}
func (*ForInStatement) statementNode()      {}
func (*ForOfStatement) statementNode()      {}
func (*SwitchStatement) statementNode()     {}
func (*BreakStatement) statementNode()      {}
func (*ContinueStatement) statementNode()   {}
func (*ReturnStatement) statementNode()     {}
func (*ThrowStatement) statementNode()      {}
func (*TryStatement) statementNode()        {}
func (*LabelledStatement) statementNode()   {}
func (*EmptyStatement) statementNode()      {}

type BlockStatement struct {
	Token token.Token
	Body  []Statement
}

func (b *BlockStatement) Pos() token.Position { return b.Token.Pos }
func (b *BlockStatement) String() string {
	var s strings.Builder
	s.WriteString("{\n")
	for _, stmt := range b.Body {
		s.WriteString("  " + stmt.String() + "\n")
	}
	s.WriteString("}")
	return s.String()
}

// DeclarationKind distinguishes `var`/`let`/`const`.
type DeclarationKind int

const (
	Var DeclarationKind = iota
	Let
	Const
)

func (k DeclarationKind) String() string {
	switch k {
	case Var:
		return "var"
	case Let:
		return "let"
	default:
		return "const"
	}
}

// VariableDeclarator is one `name = init` (or destructured pattern)
// entry in a VariableDeclaration; Init is nil for `var x;`.
type VariableDeclarator struct {
	Target Pattern
	Init   Expression
}

type VariableDeclaration struct {
	Token        token.Token
	Kind         DeclarationKind
	Declarations []VariableDeclarator
}

func (v *VariableDeclaration) Pos() token.Position { return v.Token.Pos }
func (v *VariableDeclaration) String() string {
	parts := make([]string, len(v.Declarations))
	for i, d := range v.Declarations {
		if d.Init != nil {
			parts[i] = d.Target.String() + " = " + d.Init.String()
		} else {
			parts[i] = d.Target.String()
		}
	}
	return v.Kind.String() + " " + strings.Join(parts, ", ") + ";"
}

// FunctionDeclaration is a named `function f() {}` statement; it shares
// FunctionExpression's shape via its Function field so the
// executor's hoisting pass and the expression evaluator can share one
// code path for building the closure.
type FunctionDeclaration struct {
	Function *FunctionExpression
}

func (f *FunctionDeclaration) Pos() token.Position { return f.Function.Pos() }
func (f *FunctionDeclaration) String() string      { return f.Function.String() }

type ClassDeclaration struct {
	Class *ClassExpression
}

func (c *ClassDeclaration) Pos() token.Position { return c.Class.Pos() }
func (c *ClassDeclaration) String() string      { return c.Class.String() }

type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (e *ExpressionStatement) Pos() token.Position { return e.Token.Pos }
func (e *ExpressionStatement) String() string      { return e.Expression.String() + ";" }

type IfStatement struct {
	Token      token.Token
	Test       Expression
	Consequent Statement
	Alternate  Statement // nil if no else
}

func (i *IfStatement) Pos() token.Position { return i.Token.Pos }
func (i *IfStatement) String() string {
	s := "if (" + i.Test.String() + ") " + i.Consequent.String()
	if i.Alternate != nil {
		s += " else " + i.Alternate.String()
	}
	return s
}

type WhileStatement struct {
	Token token.Token
	Test  Expression
	Body  Statement
}

func (w *WhileStatement) Pos() token.Position { return w.Token.Pos }
func (w *WhileStatement) String() string      { return "while (" + w.Test.String() + ") " + w.Body.String() }

type DoWhileStatement struct {
	Token token.Token
	Body  Statement
	Test  Expression
}

func (d *DoWhileStatement) Pos() token.Position { return d.Token.Pos }
func (d *DoWhileStatement) String() string {
	return "do " + d.Body.String() + " while (" + d.Test.String() + ");"
}

// ForStatement is the classic C-style loop; any of Init/Test/Update may
// be nil. Init may be a *VariableDeclaration or a bare Expression; the
// field is typed Node so both forms fit without a second node kind.
type ForStatement struct {
	Token  token.Token
	Init   Node // nil, *VariableDeclaration, or Expression
	Test   Expression
	Update Expression
	Body   Statement
}

func (f *ForStatement) Pos() token.Position { return f.Token.Pos }
func (f *ForStatement) String() string {
	init := ""
	if f.Init != nil {
		init = f.Init.String()
	}
	test, update := "", ""
	if f.Test != nil {
		test = f.Test.String()
	}
	if f.Update != nil {
		update = f.Update.String()
	}
	return "for (" + init + "; " + test + "; " + update + ") " + f.Body.String()
}

// ForInStatement is `for (Left in Right) Body`; Left is a
// *VariableDeclaration (`for (let k in o)`) or a plain Pattern
// (`for (k in o)`).
type ForInStatement struct {
	Token token.Token
	Left  Node
	Right Expression
	Body  Statement
}

func (f *ForInStatement) Pos() token.Position { return f.Token.Pos }
func (f *ForInStatement) String() string {
	return "for (" + f.Left.String() + " in " + f.Right.String() + ") " + f.Body.String()
}

// ForOfStatement is `for (Left of Right) Body`, shaped like ForIn.
type ForOfStatement struct {
	Token token.Token
	Left  Node
	Right Expression
	Body  Statement
	Await bool
}

func (f *ForOfStatement) Pos() token.Position { return f.Token.Pos }
func (f *ForOfStatement) String() string {
	return "for (" + f.Left.String() + " of " + f.Right.String() + ") " + f.Body.String()
}

// SwitchCase is one `case expr:`/`default:` arm; Test is nil for the
// default arm.
type SwitchCase struct {
	Test       Expression
	Consequent []Statement
}

type SwitchStatement struct {
	Token        token.Token
	Discriminant Expression
	Cases        []SwitchCase
}

func (s *SwitchStatement) Pos() token.Position { return s.Token.Pos }
func (s *SwitchStatement) String() string {
	var b strings.Builder
	b.WriteString("switch (" + s.Discriminant.String() + ") {\n")
	for _, c := range s.Cases {
		if c.Test != nil {
			b.WriteString("case " + c.Test.String() + ":\n")
		} else {
			b.WriteString("default:\n")
		}
		for _, stmt := range c.Consequent {
			b.WriteString("  " + stmt.String() + "\n")
		}
	}
	b.WriteString("}")
	return b.String()
}

type BreakStatement struct {
	Token token.Token
	Label string // empty if unlabelled
}

func (b *BreakStatement) Pos() token.Position { return b.Token.Pos }
func (b *BreakStatement) String() string {
	if b.Label != "" {
		return "break " + b.Label + ";"
	}
	return "break;"
}

type ContinueStatement struct {
	Token token.Token
	Label string
}

func (c *ContinueStatement) Pos() token.Position { return c.Token.Pos }
func (c *ContinueStatement) String() string {
	if c.Label != "" {
		return "continue " + c.Label + ";"
	}
	return "continue;"
}

type ReturnStatement struct {
	Token    token.Token
	Argument Expression // nil for bare `return;`
}

func (r *ReturnStatement) Pos() token.Position { return r.Token.Pos }
func (r *ReturnStatement) String() string {
	if r.Argument != nil {
		return "return " + r.Argument.String() + ";"
	}
	return "return;"
}

type ThrowStatement struct {
	Token    token.Token
	Argument Expression
}

func (t *ThrowStatement) Pos() token.Position { return t.Token.Pos }
func (t *ThrowStatement) String() string      { return "throw " + t.Argument.String() + ";" }

// CatchClause's Param is nil for `catch {}` (optional-binding catch).
type CatchClause struct {
	Param Pattern
	Body  *BlockStatement
}

// TryStatement models `try { } catch (e) { } finally { }`; Catch and
// Finally are independently optional but at least one must be present
// (enforced by the parser, not this type).
type TryStatement struct {
	Token   token.Token
	Block   *BlockStatement
	Catch   *CatchClause
	Finally *BlockStatement
}

func (t *TryStatement) Pos() token.Position { return t.Token.Pos }
func (t *TryStatement) String() string {
	s := "try " + t.Block.String()
	if t.Catch != nil {
		if t.Catch.Param != nil {
			s += " catch (" + t.Catch.Param.String() + ") " + t.Catch.Body.String()
		} else {
			s += " catch " + t.Catch.Body.String()
		}
	}
	if t.Finally != nil {
		s += " finally " + t.Finally.String()
	}
	return s
}

type LabelledStatement struct {
	Token token.Token
	Label string
	Body  Statement
}

func (l *LabelledStatement) Pos() token.Position { return l.Token.Pos }
func (l *LabelledStatement) String() string      { return l.Label + ": " + l.Body.String() }

type EmptyStatement struct{ Token token.Token }

func (e *EmptyStatement) Pos() token.Position { return e.Token.Pos }
func (e *EmptyStatement) String() string      { return ";" }
