package parser

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/token"
)

func (p *Parser) parseClassDeclaration() *ast.ClassDeclaration {
	return &ast.ClassDeclaration{Class: p.parseClassBody(true)}
}

func (p *Parser) parseClassExpression() *ast.ClassExpression {
	return p.parseClassBody(false)
}

// parseClassBody parses `class Name? (extends Super)? { members }`,
// shared by both the declaration and expression forms (spec.md §4.5).
func (p *Parser) parseClassBody(requireName bool) *ast.ClassExpression {
	tok, _ := p.c.expect(token.CLASS)
	cls := &ast.ClassExpression{Token: tok}
	if p.c.at(token.IDENT) || requireName {
		name, _ := p.c.expect(token.IDENT)
		cls.Name = name.Literal
	}
	if p.c.at(token.EXTENDS) {
		p.c.next()
		cls.SuperClass = p.parseLeftHandSide()
	}
	p.c.expect(token.LBRACE)
	for !p.c.at(token.RBRACE) && !p.c.at(token.EOF) {
		if p.c.at(token.SEMICOLON) {
			p.c.next()
			continue
		}
		cls.Members = append(cls.Members, p.parseClassMember())
	}
	p.c.expect(token.RBRACE)
	return cls
}

func (p *Parser) parseClassMember() ast.ClassMember {
	var member ast.ClassMember

	if p.c.at(token.STATIC) && p.c.peek(1).Type != token.LPAREN && p.c.peek(1).Type != token.ASSIGN {
		p.c.next()
		member.Static = true
	}

	isAsync, isGenerator := false, false
	if p.c.at(token.ASYNC) && p.c.peek(1).Type != token.LPAREN && p.c.peek(1).Type != token.ASSIGN &&
		!p.c.peek(1).OnNewLine {
		p.c.next()
		isAsync = true
	}
	if p.c.at(token.STAR) {
		p.c.next()
		isGenerator = true
	}

	kind := ast.PropertyInit
	if (p.c.at(token.GET) || p.c.at(token.SET)) && p.c.peek(1).Type != token.LPAREN && p.c.peek(1).Type != token.ASSIGN {
		kindTok := p.c.next()
		if kindTok.Type == token.GET {
			kind = ast.PropertyGet
		} else {
			kind = ast.PropertySet
		}
	}

	key, computed := p.parsePropertyKey()
	member.Key, member.Computed = key, computed

	if p.c.at(token.LPAREN) {
		fn := &ast.FunctionExpression{Async: isAsync, Generator: isGenerator}
		if ident, ok := key.(*ast.Identifier); ok {
			fn.Name = ident.Name
		}
		fn.Params = p.parseParams()
		fn.Body = p.parseBlock()
		if kind == ast.PropertyInit {
			kind = ast.PropertyMethod
		}
		member.Kind = kind
		member.Value = fn
		return member
	}

	// Class field: `key = init;` or bare `key;`.
	member.Kind = ast.PropertyInit
	if p.c.at(token.ASSIGN) {
		p.c.next()
		p.setGoalForPrefix()
		member.Field = p.parseAssignmentExpression()
	}
	p.c.consumeSemicolon()
	return member
}
