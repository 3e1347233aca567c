package parser

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/lexer"
	"github.com/quill-lang/quill/internal/token"
)

// Parser consumes a lexer.Lexer's token stream and produces an
// ast.Program (spec.md §4.2). Grammar flags (AllowIn, AllowYield,
// AllowAwait) are threaded as boolean fields mutated around recursive
// calls rather than as parameters on every single method, to keep the
// large expression-parsing call graph readable; each entry point that
// changes a flag saves and restores it, matching the cover-grammar
// nesting rules the flags model.
type Parser struct {
	c *cursor

	allowIn    bool
	allowYield bool
	allowAwait bool

	inFunction bool
	inLoop     int
	inSwitch   int
}

// New constructs a Parser over source.
func New(source string, opts ...lexer.Option) *Parser {
	return &Parser{c: newCursor(lexer.New(source, opts...)), allowIn: true}
}

// Errors returns every ParseError accumulated so far. It does not
// include lexer-level errors (illegal characters, unterminated
// strings/templates) — those are reported separately by LexErrors,
// since they carry a different position/message shape than a
// ParseError; pkg/quill's Context.Eval reports LexErrors when there are
// any and Errors otherwise, converting either through internal/diag.
func (p *Parser) Errors() []*ParseError { return p.c.errors }

// LexErrors returns every lexer.LexerError the underlying lexer
// recorded while producing tokens for this parse.
func (p *Parser) LexErrors() []lexer.LexerError { return p.c.lex.Errors() }

// Parse consumes the entire token stream and returns the resulting
// Program. Parsing stops at the first error (spec.md §4.2: "no recovery
// attempted"); Errors() reports what went wrong.
func (p *Parser) Parse() (*ast.Program, []*ParseError) {
	prog := &ast.Program{}
	for !p.c.at(token.EOF) {
		stmt := p.parseStatement()
		if stmt == nil || len(p.c.errors) > 0 {
			if stmt != nil {
				prog.Body = append(prog.Body, stmt)
			}
			break
		}
		prog.Body = append(prog.Body, stmt)
	}
	if len(prog.Body) > 0 {
		if lit, ok := prog.Body[0].(*ast.ExpressionStatement); ok {
			if s, ok := lit.Expression.(*ast.StringLiteral); ok && s.Value == "use strict" {
				prog.Strict = true
			}
		}
	}
	return prog, p.c.errors
}

// setGoalForPrefix prepares the lexer to scan the next token as the
// start of an expression, where `/` opens a regex literal rather than
// meaning division (spec.md §4.1's goal-symbol disambiguation).
func (p *Parser) setGoalForPrefix() { p.c.setGoal(lexer.GoalRegExp) }
func (p *Parser) setGoalForDiv()    { p.c.setGoal(lexer.GoalDiv) }

// --- Statements ---

func (p *Parser) parseStatement() ast.Statement {
	p.setGoalForPrefix()
	tok := p.c.peek(0)
	switch tok.Type {
	case token.LBRACE:
		return p.parseBlock()
	case token.VAR, token.LET, token.CONST:
		return p.parseVariableDeclaration()
	case token.FUNCTION:
		return p.parseFunctionDeclaration()
	case token.CLASS:
		return p.parseClassDeclaration()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.DO:
		return p.parseDoWhile()
	case token.FOR:
		return p.parseFor()
	case token.SWITCH:
		return p.parseSwitch()
	case token.BREAK:
		return p.parseBreak()
	case token.CONTINUE:
		return p.parseContinue()
	case token.RETURN:
		return p.parseReturn()
	case token.THROW:
		return p.parseThrow()
	case token.TRY:
		return p.parseTry()
	case token.SEMICOLON:
		t := p.c.next()
		return &ast.EmptyStatement{Token: t}
	case token.IDENT:
		if p.c.peek(1).Type == token.COLON {
			return p.parseLabelledStatement()
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseBlock() *ast.BlockStatement {
	tok, _ := p.c.expect(token.LBRACE)
	block := &ast.BlockStatement{Token: tok}
	for !p.c.at(token.RBRACE) && !p.c.at(token.EOF) && len(p.c.errors) == 0 {
		stmt := p.parseStatement()
		if stmt == nil {
			break
		}
		block.Body = append(block.Body, stmt)
		p.setGoalForPrefix()
	}
	p.c.expect(token.RBRACE)
	p.setGoalForDiv()
	return block
}

func (p *Parser) declKind(tt token.Type) ast.DeclarationKind {
	switch tt {
	case token.LET:
		return ast.Let
	case token.CONST:
		return ast.Const
	default:
		return ast.Var
	}
}

func (p *Parser) parseVariableDeclaration() *ast.VariableDeclaration {
	tok := p.c.next() // var/let/const
	decl := &ast.VariableDeclaration{Token: tok, Kind: p.declKind(tok.Type)}
	for {
		target := p.parseBindingTarget()
		var init ast.Expression
		if p.c.at(token.ASSIGN) {
			p.c.next()
			p.setGoalForPrefix()
			init = p.parseAssignmentExpression()
		}
		decl.Declarations = append(decl.Declarations, ast.VariableDeclarator{Target: target, Init: init})
		if !p.c.at(token.COMMA) {
			break
		}
		p.c.next()
	}
	p.c.consumeSemicolon()
	return decl
}

func (p *Parser) parseFunctionDeclaration() *ast.FunctionDeclaration {
	fn := p.parseFunctionLiteral(true)
	return &ast.FunctionDeclaration{Function: fn}
}

func (p *Parser) parseFunctionLiteral(requireName bool) *ast.FunctionExpression {
	tok, _ := p.c.expect(token.FUNCTION)
	fn := &ast.FunctionExpression{Token: tok}
	if p.c.at(token.STAR) {
		p.c.next()
		fn.Generator = true
	}
	if p.c.at(token.IDENT) || requireName {
		name, _ := p.c.expect(token.IDENT)
		fn.Name = name.Literal
	}
	fn.Params = p.parseParams()

	savedYield, savedAwait, savedFn := p.allowYield, p.allowAwait, p.inFunction
	p.allowYield, p.allowAwait, p.inFunction = fn.Generator, fn.Async, true
	fn.Body = p.parseBlock()
	p.allowYield, p.allowAwait, p.inFunction = savedYield, savedAwait, savedFn
	return fn
}

func (p *Parser) parseParams() []ast.Param {
	p.c.expect(token.LPAREN)
	var params []ast.Param
	for !p.c.at(token.RPAREN) && !p.c.at(token.EOF) {
		var param ast.Param
		if p.c.at(token.DOT_DOT_DOT) {
			p.c.next()
			param.Rest = true
			param.Pattern = p.parseBindingTarget()
		} else {
			param.Pattern = p.parseBindingTarget()
			if p.c.at(token.ASSIGN) {
				p.c.next()
				p.setGoalForPrefix()
				param.Default = p.parseAssignmentExpression()
			}
		}
		params = append(params, param)
		if !p.c.at(token.COMMA) {
			break
		}
		p.c.next()
	}
	p.c.expect(token.RPAREN)
	return params
}

func (p *Parser) parseIf() *ast.IfStatement {
	tok, _ := p.c.expect(token.IF)
	p.c.expect(token.LPAREN)
	p.setGoalForPrefix()
	test := p.parseExpression()
	p.c.expect(token.RPAREN)
	cons := p.parseStatement()
	stmt := &ast.IfStatement{Token: tok, Test: test, Consequent: cons}
	if p.c.at(token.ELSE) {
		p.c.next()
		stmt.Alternate = p.parseStatement()
	}
	return stmt
}

func (p *Parser) parseWhile() *ast.WhileStatement {
	tok, _ := p.c.expect(token.WHILE)
	p.c.expect(token.LPAREN)
	p.setGoalForPrefix()
	test := p.parseExpression()
	p.c.expect(token.RPAREN)
	p.inLoop++
	body := p.parseStatement()
	p.inLoop--
	return &ast.WhileStatement{Token: tok, Test: test, Body: body}
}

func (p *Parser) parseDoWhile() *ast.DoWhileStatement {
	tok, _ := p.c.expect(token.DO)
	p.inLoop++
	body := p.parseStatement()
	p.inLoop--
	p.c.expect(token.WHILE)
	p.c.expect(token.LPAREN)
	p.setGoalForPrefix()
	test := p.parseExpression()
	p.c.expect(token.RPAREN)
	p.c.consumeSemicolon()
	return &ast.DoWhileStatement{Token: tok, Body: body, Test: test}
}

// parseFor disambiguates `for (;;)`, `for (x in y)`, and `for (x of y)`
// by parsing the init clause then checking for `in`/`of`.
func (p *Parser) parseFor() ast.Statement {
	tok, _ := p.c.expect(token.FOR)
	awaitFor := false
	if p.c.at(token.AWAIT) {
		p.c.next()
		awaitFor = true
	}
	p.c.expect(token.LPAREN)

	var left ast.Node
	var initExpr ast.Expression
	if p.c.at(token.SEMICOLON) {
		// no init
	} else if p.c.at(token.VAR) || p.c.at(token.LET) || p.c.at(token.CONST) {
		declTok := p.c.next()
		kind := p.declKind(declTok.Type)
		target := p.parseBindingTarget()
		if p.c.at(token.IN) || p.c.at(token.OF) {
			left = &ast.VariableDeclaration{Token: declTok, Kind: kind, Declarations: []ast.VariableDeclarator{{Target: target}}}
		} else {
			decl := &ast.VariableDeclaration{Token: declTok, Kind: kind}
			var init ast.Expression
			if p.c.at(token.ASSIGN) {
				p.c.next()
				p.setGoalForPrefix()
				init = p.parseAssignmentExpressionNoIn()
			}
			decl.Declarations = append(decl.Declarations, ast.VariableDeclarator{Target: target, Init: init})
			for p.c.at(token.COMMA) {
				p.c.next()
				t2 := p.parseBindingTarget()
				var init2 ast.Expression
				if p.c.at(token.ASSIGN) {
					p.c.next()
					p.setGoalForPrefix()
					init2 = p.parseAssignmentExpressionNoIn()
				}
				decl.Declarations = append(decl.Declarations, ast.VariableDeclarator{Target: t2, Init: init2})
			}
			initExpr = nil
			left = decl
			return p.finishClassicFor(tok, left, nil)
		}
	} else {
		p.setGoalForPrefix()
		savedIn := p.allowIn
		p.allowIn = false
		initExpr = p.parseExpression()
		p.allowIn = savedIn
		if !p.c.at(token.IN) && !p.c.at(token.OF) {
			left = initExpr
		}
	}

	if p.c.at(token.IN) {
		p.c.next()
		p.setGoalForPrefix()
		right := p.parseExpression()
		p.c.expect(token.RPAREN)
		p.inLoop++
		body := p.parseStatement()
		p.inLoop--
		return &ast.ForInStatement{Token: tok, Left: left, Right: right, Body: body}
	}
	if p.c.at(token.OF) {
		p.c.next()
		p.setGoalForPrefix()
		right := p.parseAssignmentExpression()
		p.c.expect(token.RPAREN)
		p.inLoop++
		body := p.parseStatement()
		p.inLoop--
		return &ast.ForOfStatement{Token: tok, Left: left, Right: right, Body: body, Await: awaitFor}
	}

	return p.finishClassicFor(tok, nil, initExpr)
}

func (p *Parser) finishClassicFor(tok token.Token, declInit ast.Node, exprInit ast.Expression) *ast.ForStatement {
	stmt := &ast.ForStatement{Token: tok}
	if declInit != nil {
		stmt.Init = declInit
	} else if exprInit != nil {
		stmt.Init = exprInit
	}
	p.c.expect(token.SEMICOLON)
	p.setGoalForPrefix()
	if !p.c.at(token.SEMICOLON) {
		stmt.Test = p.parseExpression()
	}
	p.c.expect(token.SEMICOLON)
	p.setGoalForPrefix()
	if !p.c.at(token.RPAREN) {
		stmt.Update = p.parseExpression()
	}
	p.c.expect(token.RPAREN)
	p.inLoop++
	stmt.Body = p.parseStatement()
	p.inLoop--
	return stmt
}

func (p *Parser) parseSwitch() *ast.SwitchStatement {
	tok, _ := p.c.expect(token.SWITCH)
	p.c.expect(token.LPAREN)
	p.setGoalForPrefix()
	disc := p.parseExpression()
	p.c.expect(token.RPAREN)
	p.c.expect(token.LBRACE)
	stmt := &ast.SwitchStatement{Token: tok, Discriminant: disc}
	p.inSwitch++
	for !p.c.at(token.RBRACE) && !p.c.at(token.EOF) {
		var c ast.SwitchCase
		if p.c.at(token.CASE) {
			p.c.next()
			p.setGoalForPrefix()
			c.Test = p.parseExpression()
			p.c.expect(token.COLON)
		} else {
			p.c.expect(token.DEFAULT)
			p.c.expect(token.COLON)
		}
		for !p.c.at(token.CASE) && !p.c.at(token.DEFAULT) && !p.c.at(token.RBRACE) && !p.c.at(token.EOF) {
			p.setGoalForPrefix()
			s := p.parseStatement()
			if s == nil {
				break
			}
			c.Consequent = append(c.Consequent, s)
		}
		stmt.Cases = append(stmt.Cases, c)
	}
	p.inSwitch--
	p.c.expect(token.RBRACE)
	return stmt
}

func (p *Parser) parseBreak() *ast.BreakStatement {
	tok, _ := p.c.expect(token.BREAK)
	stmt := &ast.BreakStatement{Token: tok}
	if p.c.at(token.IDENT) && !p.c.atLineBreak() {
		lbl := p.c.next()
		stmt.Label = lbl.Literal
	}
	p.c.consumeSemicolon()
	return stmt
}

func (p *Parser) parseContinue() *ast.ContinueStatement {
	tok, _ := p.c.expect(token.CONTINUE)
	stmt := &ast.ContinueStatement{Token: tok}
	if p.c.at(token.IDENT) && !p.c.atLineBreak() {
		lbl := p.c.next()
		stmt.Label = lbl.Literal
	}
	p.c.consumeSemicolon()
	return stmt
}

func (p *Parser) parseReturn() *ast.ReturnStatement {
	tok, _ := p.c.expect(token.RETURN)
	stmt := &ast.ReturnStatement{Token: tok}
	if !p.c.at(token.SEMICOLON) && !p.c.at(token.RBRACE) && !p.c.at(token.EOF) && !p.c.atLineBreak() {
		p.setGoalForPrefix()
		stmt.Argument = p.parseExpression()
	}
	p.c.consumeSemicolon()
	return stmt
}

func (p *Parser) parseThrow() *ast.ThrowStatement {
	tok, _ := p.c.expect(token.THROW)
	p.setGoalForPrefix()
	arg := p.parseExpression()
	p.c.consumeSemicolon()
	return &ast.ThrowStatement{Token: tok, Argument: arg}
}

func (p *Parser) parseTry() *ast.TryStatement {
	tok, _ := p.c.expect(token.TRY)
	stmt := &ast.TryStatement{Token: tok, Block: p.parseBlock()}
	if p.c.at(token.CATCH) {
		p.c.next()
		clause := &ast.CatchClause{}
		if p.c.at(token.LPAREN) {
			p.c.next()
			clause.Param = p.parseBindingTarget()
			p.c.expect(token.RPAREN)
		}
		clause.Body = p.parseBlock()
		stmt.Catch = clause
	}
	if p.c.at(token.FINALLY) {
		p.c.next()
		stmt.Finally = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseLabelledStatement() *ast.LabelledStatement {
	name := p.c.next()
	p.c.expect(token.COLON)
	body := p.parseStatement()
	return &ast.LabelledStatement{Token: name, Label: name.Literal, Body: body}
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	tok := p.c.peek(0)
	expr := p.parseExpression()
	p.c.consumeSemicolon()
	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}
