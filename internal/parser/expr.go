package parser

import (
	"strconv"
	"strings"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/lexer"
	"github.com/quill-lang/quill/internal/token"
)

// parseExpression parses the comma (SequenceExpression) level, the
// widest expression grammar (spec.md §4.2's precedence table's lowest
// entry besides assignment itself, which sits one level tighter).
func (p *Parser) parseExpression() ast.Expression {
	first := p.parseAssignmentExpression()
	if !p.c.at(token.COMMA) {
		return first
	}
	seq := &ast.SequenceExpression{Expressions: []ast.Expression{first}}
	for p.c.at(token.COMMA) {
		p.c.next()
		p.setGoalForPrefix()
		seq.Expressions = append(seq.Expressions, p.parseAssignmentExpression())
	}
	return seq
}

func (p *Parser) parseAssignmentExpressionNoIn() ast.Expression {
	saved := p.allowIn
	p.allowIn = false
	e := p.parseAssignmentExpression()
	p.allowIn = saved
	return e
}

var assignmentOps = map[token.Type]string{
	token.ASSIGN: "=", token.PLUS_ASSIGN: "+=", token.MINUS_ASSIGN: "-=",
	token.STAR_ASSIGN: "*=", token.SLASH_ASSIGN: "/=", token.PERCENT_ASSIGN: "%=",
	token.STAR_STAR_ASSIGN: "**=", token.AND_ASSIGN: "&=", token.OR_ASSIGN: "|=",
	token.XOR_ASSIGN: "^=", token.SHL_ASSIGN: "<<=", token.SHR_ASSIGN: ">>=",
	token.USHR_ASSIGN: ">>>=", token.LOGICAL_AND_ASSIGN: "&&=",
	token.LOGICAL_OR_ASSIGN: "||=", token.NULLISH_ASSIGN: "??=",
}

// parseAssignmentExpression handles `=` and compound-assignment
// operators, which are right-associative: the right side recurses back
// into this same level (spec.md §4.2).
func (p *Parser) parseAssignmentExpression() ast.Expression {
	if p.c.at(token.YIELD) && p.allowYield {
		return p.parseYield()
	}
	if arrow := p.tryParseArrowFunction(); arrow != nil {
		return arrow
	}

	left := p.parseConditional()
	if op, ok := assignmentOps[p.c.peek(0).Type]; ok {
		tok := p.c.next()
		p.setGoalForPrefix()
		right := p.parseAssignmentExpression()
		return &ast.AssignmentExpression{Token: tok, Operator: op, Target: left, Value: right}
	}
	return left
}

func (p *Parser) parseYield() ast.Expression {
	tok := p.c.next()
	y := &ast.YieldExpression{Token: tok}
	if p.c.at(token.STAR) {
		p.c.next()
		y.Delegate = true
	}
	if !p.c.at(token.SEMICOLON) && !p.c.at(token.RPAREN) && !p.c.at(token.RBRACE) &&
		!p.c.at(token.RBRACKET) && !p.c.at(token.COMMA) && !p.c.at(token.EOF) && !p.c.atLineBreak() {
		p.setGoalForPrefix()
		y.Argument = p.parseAssignmentExpression()
	}
	return y
}

func (p *Parser) parseConditional() ast.Expression {
	test := p.parseNullish()
	if !p.c.at(token.QUESTION) {
		return test
	}
	tok := p.c.next()
	p.setGoalForPrefix()
	savedIn := p.allowIn
	p.allowIn = true
	cons := p.parseAssignmentExpression()
	p.allowIn = savedIn
	p.c.expect(token.COLON)
	p.setGoalForPrefix()
	alt := p.parseAssignmentExpression()
	return &ast.ConditionalExpression{Token: tok, Test: test, Consequent: cons, Alternate: alt}
}

func (p *Parser) parseNullish() ast.Expression {
	left := p.parseLogicalOr()
	for p.c.at(token.NULLISH) {
		tok := p.c.next()
		p.setGoalForPrefix()
		right := p.parseLogicalOr()
		left = &ast.LogicalExpression{Token: tok, Operator: "??", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseLogicalOr() ast.Expression {
	left := p.parseLogicalAnd()
	for p.c.at(token.OR) {
		tok := p.c.next()
		p.setGoalForPrefix()
		right := p.parseLogicalAnd()
		left = &ast.LogicalExpression{Token: tok, Operator: "||", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Expression {
	left := p.parseBitOr()
	for p.c.at(token.AND) {
		tok := p.c.next()
		p.setGoalForPrefix()
		right := p.parseBitOr()
		left = &ast.LogicalExpression{Token: tok, Operator: "&&", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseBitOr() ast.Expression {
	left := p.parseBitXor()
	for p.c.at(token.BIT_OR) {
		tok := p.c.next()
		p.setGoalForPrefix()
		left = &ast.BinaryExpression{Token: tok, Operator: "|", Left: left, Right: p.parseBitXor()}
	}
	return left
}

func (p *Parser) parseBitXor() ast.Expression {
	left := p.parseBitAnd()
	for p.c.at(token.BIT_XOR) {
		tok := p.c.next()
		p.setGoalForPrefix()
		left = &ast.BinaryExpression{Token: tok, Operator: "^", Left: left, Right: p.parseBitAnd()}
	}
	return left
}

func (p *Parser) parseBitAnd() ast.Expression {
	left := p.parseEquality()
	for p.c.at(token.BIT_AND) {
		tok := p.c.next()
		p.setGoalForPrefix()
		left = &ast.BinaryExpression{Token: tok, Operator: "&", Left: left, Right: p.parseEquality()}
	}
	return left
}

var equalityOps = map[token.Type]string{
	token.EQ: "==", token.NOT_EQ: "!=", token.STRICT_EQ: "===", token.STRICT_NOT_EQ: "!==",
}

func (p *Parser) parseEquality() ast.Expression {
	left := p.parseRelational()
	for {
		op, ok := equalityOps[p.c.peek(0).Type]
		if !ok {
			return left
		}
		tok := p.c.next()
		p.setGoalForPrefix()
		left = &ast.BinaryExpression{Token: tok, Operator: op, Left: left, Right: p.parseRelational()}
	}
}

var relationalOps = map[token.Type]string{
	token.LT: "<", token.GT: ">", token.LT_EQ: "<=", token.GT_EQ: ">=", token.INSTANCEOF: "instanceof",
}

func (p *Parser) parseRelational() ast.Expression {
	left := p.parseShift()
	for {
		if p.c.at(token.IN) && p.allowIn {
			tok := p.c.next()
			p.setGoalForPrefix()
			left = &ast.BinaryExpression{Token: tok, Operator: "in", Left: left, Right: p.parseShift()}
			continue
		}
		op, ok := relationalOps[p.c.peek(0).Type]
		if !ok {
			return left
		}
		tok := p.c.next()
		p.setGoalForPrefix()
		left = &ast.BinaryExpression{Token: tok, Operator: op, Left: left, Right: p.parseShift()}
	}
}

var shiftOps = map[token.Type]string{token.SHL: "<<", token.SHR: ">>", token.USHR: ">>>"}

func (p *Parser) parseShift() ast.Expression {
	left := p.parseAdditive()
	for {
		op, ok := shiftOps[p.c.peek(0).Type]
		if !ok {
			return left
		}
		tok := p.c.next()
		p.setGoalForPrefix()
		left = &ast.BinaryExpression{Token: tok, Operator: op, Left: left, Right: p.parseAdditive()}
	}
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.c.at(token.PLUS) || p.c.at(token.MINUS) {
		tok := p.c.next()
		op := "+"
		if tok.Type == token.MINUS {
			op = "-"
		}
		p.setGoalForPrefix()
		left = &ast.BinaryExpression{Token: tok, Operator: op, Left: left, Right: p.parseMultiplicative()}
	}
	return left
}

var multiplicativeOps = map[token.Type]string{token.STAR: "*", token.SLASH: "/", token.PERCENT: "%"}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseExponent()
	for {
		p.setGoalForDiv()
		op, ok := multiplicativeOps[p.c.peek(0).Type]
		if !ok {
			return left
		}
		tok := p.c.next()
		p.setGoalForPrefix()
		left = &ast.BinaryExpression{Token: tok, Operator: op, Left: left, Right: p.parseExponent()}
	}
}

// parseExponent handles right-associative `**`.
func (p *Parser) parseExponent() ast.Expression {
	left := p.parseUnary()
	if p.c.at(token.STAR_STAR) {
		tok := p.c.next()
		p.setGoalForPrefix()
		right := p.parseExponent()
		return &ast.BinaryExpression{Token: tok, Operator: "**", Left: left, Right: right}
	}
	return left
}

var unaryOps = map[token.Type]string{
	token.NOT: "!", token.MINUS: "-", token.PLUS: "+", token.BIT_NOT: "~",
	token.TYPEOF: "typeof", token.DELETE: "delete",
}

func (p *Parser) parseUnary() ast.Expression {
	tok := p.c.peek(0)
	if tok.Type == token.AWAIT && p.allowAwait {
		p.c.next()
		p.setGoalForPrefix()
		return &ast.AwaitExpression{Token: tok, Argument: p.parseUnary()}
	}
	if op, ok := unaryOps[tok.Type]; ok {
		p.c.next()
		p.setGoalForPrefix()
		return &ast.UnaryExpression{Token: tok, Operator: op, Operand: p.parseUnary()}
	}
	if tok.Type == token.INC || tok.Type == token.DEC {
		p.c.next()
		op := "++"
		if tok.Type == token.DEC {
			op = "--"
		}
		p.setGoalForPrefix()
		return &ast.UpdateExpression{Token: tok, Operator: op, Operand: p.parseUnary(), Prefix: true}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parseLeftHandSide()
	if (p.c.at(token.INC) || p.c.at(token.DEC)) && !p.c.atLineBreak() {
		tok := p.c.next()
		op := "++"
		if tok.Type == token.DEC {
			op = "--"
		}
		p.setGoalForDiv()
		return &ast.UpdateExpression{Token: tok, Operator: op, Operand: expr, Prefix: false}
	}
	p.setGoalForDiv()
	return expr
}

// parseLeftHandSide parses MemberExpression/NewExpression/
// CallExpression, left-recursively appending call/member/template
// suffixes, per spec.md §4.2.
func (p *Parser) parseLeftHandSide() ast.Expression {
	var expr ast.Expression
	if p.c.at(token.NEW) {
		expr = p.parseNewExpression()
	} else {
		expr = p.parsePrimary()
	}
	return p.parseCallTail(expr)
}

func (p *Parser) parseNewExpression() ast.Expression {
	tok := p.c.next()
	if p.c.at(token.DOT) { // new.target
		p.c.next()
		p.c.expect(token.IDENT)
		return &ast.Identifier{Token: tok, Name: "new.target"}
	}
	var callee ast.Expression
	if p.c.at(token.NEW) {
		callee = p.parseNewExpression()
	} else {
		callee = p.parsePrimary()
	}
	callee = p.parseMemberTail(callee)
	ne := &ast.NewExpression{Token: tok, Callee: callee}
	if p.c.at(token.LPAREN) {
		ne.Arguments = p.parseArguments()
	}
	return ne
}

// parseMemberTail appends `.prop`/`[expr]`/template-tag suffixes without
// consuming a call's `(args)` — used while still inside a `new` callee,
// where a following `(...)` belongs to the `new` itself, not a nested
// call.
func (p *Parser) parseMemberTail(expr ast.Expression) ast.Expression {
	for {
		switch {
		case p.c.at(token.DOT):
			tok := p.c.next()
			name := p.parsePropertyName()
			expr = &ast.MemberExpression{Token: tok, Object: expr, Property: name}
		case p.c.at(token.LBRACKET):
			tok := p.c.next()
			p.setGoalForPrefix()
			idx := p.parseExpression()
			p.c.expect(token.RBRACKET)
			expr = &ast.MemberExpression{Token: tok, Object: expr, Property: idx, Computed: true}
		default:
			return expr
		}
	}
}

func (p *Parser) parsePropertyName() ast.Expression {
	if p.c.at(token.PRIVATE_IDENT) {
		tok := p.c.next()
		return &ast.PrivateIdentifier{Token: tok, Name: strings.TrimPrefix(tok.Literal, "#")}
	}
	tok := p.c.next()
	return &ast.Identifier{Token: tok, Name: tok.Literal}
}

// parseCallTail appends every trailing `(args)`, `.prop`, `[expr]`,
// `?.`, and tagged-template suffix, left-recursively, per spec.md §4.2's
// CallExpression grammar.
func (p *Parser) parseCallTail(expr ast.Expression) ast.Expression {
	for {
		switch {
		case p.c.at(token.LPAREN):
			tok := p.c.peek(0)
			args := p.parseArguments()
			expr = &ast.CallExpression{Token: tok, Callee: expr, Arguments: args}
		case p.c.at(token.DOT):
			tok := p.c.next()
			name := p.parsePropertyName()
			expr = &ast.MemberExpression{Token: tok, Object: expr, Property: name}
		case p.c.at(token.OPTIONAL_CHAIN):
			tok := p.c.next()
			if p.c.at(token.LPAREN) {
				args := p.parseArguments()
				expr = &ast.CallExpression{Token: tok, Callee: expr, Arguments: args, Optional: true}
			} else if p.c.at(token.LBRACKET) {
				p.c.next()
				p.setGoalForPrefix()
				idx := p.parseExpression()
				p.c.expect(token.RBRACKET)
				expr = &ast.MemberExpression{Token: tok, Object: expr, Property: idx, Computed: true, Optional: true}
			} else {
				name := p.parsePropertyName()
				expr = &ast.MemberExpression{Token: tok, Object: expr, Property: name, Optional: true}
			}
		case p.c.at(token.LBRACKET):
			tok := p.c.next()
			p.setGoalForPrefix()
			idx := p.parseExpression()
			p.c.expect(token.RBRACKET)
			expr = &ast.MemberExpression{Token: tok, Object: expr, Property: idx, Computed: true}
		case p.c.at(token.NO_SUBSTITUTION) || p.c.at(token.TEMPLATE_HEAD):
			tmpl := p.parseTemplateLiteral()
			expr = &ast.TaggedTemplate{Token: tmpl.Token, Tag: expr, Template: tmpl}
		default:
			return expr
		}
		p.setGoalForDiv()
	}
}

func (p *Parser) parseArguments() []ast.Expression {
	p.c.expect(token.LPAREN)
	var args []ast.Expression
	p.setGoalForPrefix()
	for !p.c.at(token.RPAREN) && !p.c.at(token.EOF) {
		if p.c.at(token.DOT_DOT_DOT) {
			tok := p.c.next()
			p.setGoalForPrefix()
			args = append(args, &ast.Spread{Token: tok, Argument: p.parseAssignmentExpression()})
		} else {
			args = append(args, p.parseAssignmentExpression())
		}
		if !p.c.at(token.COMMA) {
			break
		}
		p.c.next()
		p.setGoalForPrefix()
	}
	p.c.expect(token.RPAREN)
	return args
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.c.peek(0)
	switch tok.Type {
	case token.NUMBER:
		p.c.next()
		return &ast.NumericLiteral{Token: tok, Raw: tok.Literal, Value: parseNumericLiteral(tok.Literal)}
	case token.STRING:
		p.c.next()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}
	case token.TRUE, token.FALSE:
		p.c.next()
		return &ast.BooleanLiteral{Token: tok, Value: tok.Type == token.TRUE}
	case token.NULL:
		p.c.next()
		return &ast.NullLiteral{Token: tok}
	case token.UNDEFINED:
		p.c.next()
		return &ast.UndefinedLiteral{Token: tok}
	case token.THIS:
		p.c.next()
		return &ast.ThisExpression{Token: tok}
	case token.SUPER:
		p.c.next()
		return &ast.SuperExpression{Token: tok}
	case token.IDENT, token.ASYNC, token.OF, token.GET, token.SET, token.STATIC, token.YIELD, token.AWAIT:
		p.c.next()
		if tok.Type == token.ASYNC && p.c.at(token.FUNCTION) && !p.c.atLineBreak() {
			return p.parseAsyncFunctionExpression(tok)
		}
		return &ast.Identifier{Token: tok, Name: tok.Literal}
	case token.FUNCTION:
		return p.parseFunctionLiteral(false)
	case token.CLASS:
		return p.parseClassExpression()
	case token.LPAREN:
		return p.parseParenthesizedOrArrow()
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseObjectLiteral()
	case token.NO_SUBSTITUTION, token.TEMPLATE_HEAD:
		return p.parseTemplateLiteral()
	case token.REGEXP:
		p.c.next()
		return parseRegExpLiteral(tok)
	default:
		p.c.errorf(tok, "expression", "unexpected token in expression position")
		p.c.next()
		return &ast.UndefinedLiteral{Token: tok}
	}
}

func (p *Parser) parseAsyncFunctionExpression(asyncTok token.Token) ast.Expression {
	fn := p.parseFunctionLiteral(false)
	fn.Async = true
	fn.Token = asyncTok
	return fn
}

func parseRegExpLiteral(tok token.Token) *ast.RegExpLiteral {
	lit := tok.Literal
	end := strings.LastIndexByte(lit, '/')
	if end <= 0 {
		return &ast.RegExpLiteral{Token: tok, Source: lit}
	}
	return &ast.RegExpLiteral{Token: tok, Source: lit[1:end], Flags: lit[end+1:]}
}

func parseNumericLiteral(lit string) float64 {
	clean := strings.ReplaceAll(lit, "_", "")
	if f, err := strconv.ParseFloat(clean, 64); err == nil {
		return f
	}
	if n, err := strconv.ParseInt(clean, 0, 64); err == nil {
		return float64(n)
	}
	if len(clean) > 1 && clean[0] == '0' {
		if n, err := strconv.ParseInt(clean[1:], 8, 64); err == nil {
			return float64(n)
		}
	}
	return 0
}

func (p *Parser) parseTemplateLiteral() *ast.TemplateLiteral {
	tok := p.c.peek(0)
	tmpl := &ast.TemplateLiteral{Token: tok}
	if p.c.at(token.NO_SUBSTITUTION) {
		t := p.c.next()
		tmpl.Quasis = append(tmpl.Quasis, t.Literal)
		return tmpl
	}
	head := p.c.next() // TEMPLATE_HEAD
	tmpl.Quasis = append(tmpl.Quasis, head.Literal)
	for {
		p.setGoalForPrefix()
		tmpl.Expressions = append(tmpl.Expressions, p.parseExpression())
		p.c.setGoal(lexer.GoalTemplateTail)
		part := p.c.next()
		tmpl.Quasis = append(tmpl.Quasis, part.Literal)
		if part.Type == token.TEMPLATE_TAIL {
			break
		}
	}
	return tmpl
}

func (p *Parser) parseArrayLiteral() *ast.ArrayLiteral {
	tok, _ := p.c.expect(token.LBRACKET)
	arr := &ast.ArrayLiteral{Token: tok}
	p.setGoalForPrefix()
	for !p.c.at(token.RBRACKET) && !p.c.at(token.EOF) {
		if p.c.at(token.COMMA) {
			arr.Elements = append(arr.Elements, nil)
			p.c.next()
			p.setGoalForPrefix()
			continue
		}
		if p.c.at(token.DOT_DOT_DOT) {
			t := p.c.next()
			p.setGoalForPrefix()
			arr.Elements = append(arr.Elements, &ast.Spread{Token: t, Argument: p.parseAssignmentExpression()})
		} else {
			arr.Elements = append(arr.Elements, p.parseAssignmentExpression())
		}
		if !p.c.at(token.COMMA) {
			break
		}
		p.c.next()
		p.setGoalForPrefix()
	}
	p.c.expect(token.RBRACKET)
	return arr
}

func (p *Parser) parseObjectLiteral() *ast.ObjectLiteral {
	tok, _ := p.c.expect(token.LBRACE)
	obj := &ast.ObjectLiteral{Token: tok}
	p.setGoalForPrefix()
	for !p.c.at(token.RBRACE) && !p.c.at(token.EOF) {
		obj.Properties = append(obj.Properties, p.parseObjectProperty())
		if !p.c.at(token.COMMA) {
			break
		}
		p.c.next()
		p.setGoalForPrefix()
	}
	p.c.expect(token.RBRACE)
	return obj
}

func (p *Parser) parseObjectProperty() ast.ObjectProperty {
	if p.c.at(token.DOT_DOT_DOT) {
		p.c.next()
		p.setGoalForPrefix()
		return ast.ObjectProperty{Kind: ast.PropertySpread, Value: p.parseAssignmentExpression()}
	}

	if (p.c.at(token.GET) || p.c.at(token.SET)) && p.c.peek(1).Type != token.COLON &&
		p.c.peek(1).Type != token.COMMA && p.c.peek(1).Type != token.RBRACE && p.c.peek(1).Type != token.LPAREN {
		kindTok := p.c.next()
		key, computed := p.parsePropertyKey()
		fn := &ast.FunctionExpression{Token: kindTok}
		fn.Params = p.parseParams()
		fn.Body = p.parseBlock()
		kind := ast.PropertyGet
		if kindTok.Type == token.SET {
			kind = ast.PropertySet
		}
		return ast.ObjectProperty{Key: key, Value: fn, Computed: computed, Kind: kind}
	}

	isAsync := false
	isGenerator := false
	startTok := p.c.peek(0)
	if p.c.at(token.ASYNC) && p.c.peek(1).Type != token.COLON && p.c.peek(1).Type != token.COMMA &&
		p.c.peek(1).Type != token.RBRACE && p.c.peek(1).Type != token.LPAREN {
		p.c.next()
		isAsync = true
	}
	if p.c.at(token.STAR) {
		p.c.next()
		isGenerator = true
	}

	key, computed := p.parsePropertyKey()

	if p.c.at(token.LPAREN) { // method shorthand
		fn := &ast.FunctionExpression{Token: startTok, Async: isAsync, Generator: isGenerator}
		fn.Params = p.parseParams()
		fn.Body = p.parseBlock()
		return ast.ObjectProperty{Key: key, Value: fn, Computed: computed, Kind: ast.PropertyMethod}
	}

	if p.c.at(token.COLON) {
		p.c.next()
		p.setGoalForPrefix()
		val := p.parseAssignmentExpression()
		return ast.ObjectProperty{Key: key, Value: val, Computed: computed, Kind: ast.PropertyInit}
	}

	// Shorthand `{ x }` or `{ x = defaultForDestructuring }` (the
	// latter only legal when this literal is later reinterpreted as an
	// ObjectPattern; parsed permissively here as an AssignmentExpression
	// the same way V8's cover grammar does).
	ident, _ := key.(*ast.Identifier)
	if p.c.at(token.ASSIGN) {
		p.c.next()
		p.setGoalForPrefix()
		def := p.parseAssignmentExpression()
		return ast.ObjectProperty{
			Key: key, Shorthand: true, Kind: ast.PropertyInit,
			Value: &ast.AssignmentExpression{Operator: "=", Target: ident, Value: def},
		}
	}
	return ast.ObjectProperty{Key: key, Value: ident, Shorthand: true, Kind: ast.PropertyInit}
}

func (p *Parser) parsePropertyKey() (ast.Expression, bool) {
	if p.c.at(token.LBRACKET) {
		p.c.next()
		p.setGoalForPrefix()
		key := p.parseAssignmentExpression()
		p.c.expect(token.RBRACKET)
		return key, true
	}
	if p.c.at(token.PRIVATE_IDENT) {
		tok := p.c.next()
		return &ast.PrivateIdentifier{Token: tok, Name: strings.TrimPrefix(tok.Literal, "#")}, false
	}
	if p.c.at(token.STRING) {
		tok := p.c.next()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}, false
	}
	if p.c.at(token.NUMBER) {
		tok := p.c.next()
		return &ast.NumericLiteral{Token: tok, Raw: tok.Literal, Value: parseNumericLiteral(tok.Literal)}, false
	}
	tok := p.c.next()
	return &ast.Identifier{Token: tok, Name: tok.Literal}, false
}

// parseParenthesizedOrArrow resolves the Arrow-parameter /
// parenthesized-expression cover grammar (spec.md §4.2): it saves lexer
// state, attempts to parse an arrow parameter list, and if `=>` follows,
// commits to it; otherwise it rewinds and parses a parenthesized
// expression instead.
func (p *Parser) parseParenthesizedOrArrow() ast.Expression {
	if arrow := p.tryParseArrowFunction(); arrow != nil {
		return arrow
	}
	p.c.expect(token.LPAREN)
	p.setGoalForPrefix()
	expr := p.parseExpression()
	p.c.expect(token.RPAREN)
	return expr
}

// tryParseArrowFunction speculatively parses `(params) =>` or
// `ident =>`; it rewinds the lexer and returns nil if the input doesn't
// actually form an arrow function, letting the caller fall back to
// parsing a parenthesized expression or bare identifier instead.
func (p *Parser) tryParseArrowFunction() ast.Expression {
	tok := p.c.peek(0)
	isAsync := false
	startSave := p.c.lex.Save()
	startBuf := append([]token.Token(nil), p.c.buf...)

	if tok.Type == token.ASYNC && p.c.peek(1).Type != token.ARROW && !p.c.peek(1).OnNewLine {
		// `async (x) => ...` or `async x => ...`
		if p.c.peek(1).Type == token.LPAREN || p.c.peek(1).Type == token.IDENT {
			p.c.next()
			isAsync = true
			tok = p.c.peek(0)
		}
	}

	if tok.Type == token.IDENT {
		if p.c.peek(1).Type == token.ARROW && !p.c.peek(1).OnNewLine {
			name := p.c.next()
			p.c.next() // =>
			return p.finishArrow([]ast.Param{{Pattern: &ast.Identifier{Token: name, Name: name.Literal}}}, isAsync)
		}
		if !isAsync {
			return nil
		}
	}

	if tok.Type != token.LPAREN {
		p.restoreCursor(startSave, startBuf)
		return nil
	}

	params, ok := p.tryParseParamsForArrow()
	if !ok || !p.c.at(token.ARROW) || p.c.atLineBreak() {
		p.restoreCursor(startSave, startBuf)
		return nil
	}
	p.c.next() // =>
	return p.finishArrow(params, isAsync)
}

func (p *Parser) restoreCursor(s lexer.State, buf []token.Token) {
	p.c.lex.Restore(s)
	p.c.buf = buf
}

// tryParseParamsForArrow attempts to parse `(params)` as an arrow
// parameter list; ok is false if the contents don't form a valid
// parameter list (the caller then rewinds).
func (p *Parser) tryParseParamsForArrow() (params []ast.Param, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	errCountBefore := len(p.c.errors)
	params = p.parseParams()
	if len(p.c.errors) > errCountBefore {
		p.c.errors = p.c.errors[:errCountBefore]
		return nil, false
	}
	return params, true
}

func (p *Parser) finishArrow(params []ast.Param, isAsync bool) ast.Expression {
	arrow := &ast.ArrowFunctionExpression{Params: params, Async: isAsync}
	savedAwait, savedYield := p.allowAwait, p.allowYield
	p.allowAwait, p.allowYield = isAsync, false
	p.setGoalForPrefix()
	if p.c.at(token.LBRACE) {
		arrow.Body = p.parseBlock()
	} else {
		arrow.ExprBody = p.parseAssignmentExpression()
	}
	p.allowAwait, p.allowYield = savedAwait, savedYield
	return arrow
}
