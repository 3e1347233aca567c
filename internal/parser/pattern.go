package parser

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/token"
)

// parseBindingTarget parses a declaration/parameter/catch-clause binding
// target: a plain identifier or a destructuring array/object pattern,
// each of whose leaves may itself carry a default via AssignmentPattern
// (spec.md §4.4).
func (p *Parser) parseBindingTarget() ast.Pattern {
	switch p.c.peek(0).Type {
	case token.LBRACKET:
		return p.parseArrayPattern()
	case token.LBRACE:
		return p.parseObjectPattern()
	default:
		tok := p.c.next()
		return &ast.Identifier{Token: tok, Name: tok.Literal}
	}
}

func (p *Parser) parseArrayPattern() *ast.ArrayPattern {
	tok, _ := p.c.expect(token.LBRACKET)
	pat := &ast.ArrayPattern{Token: tok}
	for !p.c.at(token.RBRACKET) && !p.c.at(token.EOF) {
		if p.c.at(token.COMMA) {
			pat.Elements = append(pat.Elements, nil)
			p.c.next()
			continue
		}
		if p.c.at(token.DOT_DOT_DOT) {
			restTok := p.c.next()
			pat.Elements = append(pat.Elements, &ast.RestElement{Token: restTok, Target: p.parseBindingTarget()})
			break
		}
		pat.Elements = append(pat.Elements, p.parseBindingElement())
		if !p.c.at(token.COMMA) {
			break
		}
		p.c.next()
	}
	p.c.expect(token.RBRACKET)
	return pat
}

// parseBindingElement parses one destructuring target, wrapping it in an
// AssignmentPattern if followed by `= default`.
func (p *Parser) parseBindingElement() ast.Pattern {
	target := p.parseBindingTarget()
	if p.c.at(token.ASSIGN) {
		tok := p.c.next()
		p.setGoalForPrefix()
		def := p.parseAssignmentExpression()
		return &ast.AssignmentPattern{Token: tok, Target: target, Default: def}
	}
	return target
}

func (p *Parser) parseObjectPattern() *ast.ObjectPattern {
	tok, _ := p.c.expect(token.LBRACE)
	pat := &ast.ObjectPattern{Token: tok}
	for !p.c.at(token.RBRACE) && !p.c.at(token.EOF) {
		if p.c.at(token.DOT_DOT_DOT) {
			p.c.next()
			rest := p.parseBindingTarget()
			pat.Properties = append(pat.Properties, ast.ObjectPatternProperty{Rest: rest})
			break
		}

		key, computed := p.parsePropertyKey()
		var prop ast.ObjectPatternProperty
		prop.Key, prop.Computed = key, computed

		if p.c.at(token.COLON) {
			p.c.next()
			prop.Value = p.parseBindingElement()
		} else {
			ident, _ := key.(*ast.Identifier)
			prop.Shorthand = true
			if p.c.at(token.ASSIGN) {
				defTok := p.c.next()
				p.setGoalForPrefix()
				def := p.parseAssignmentExpression()
				prop.Value = &ast.AssignmentPattern{Token: defTok, Target: ident, Default: def}
			} else {
				prop.Value = ident
			}
		}
		pat.Properties = append(pat.Properties, prop)
		if !p.c.at(token.COMMA) {
			break
		}
		p.c.next()
	}
	p.c.expect(token.RBRACE)
	return pat
}
