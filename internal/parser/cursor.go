// Package parser turns a internal/lexer token stream into a
// internal/ast.Program, per spec.md §4.2: recursive descent with an
// n-deep peek buffer, goal-symbol-aware lookahead, and the three
// grammar flags (AllowIn, AllowYield, AllowAwait) ECMAScript's cover
// grammars require.
package parser

import (
	"fmt"

	"github.com/quill-lang/quill/internal/lexer"
	"github.com/quill-lang/quill/internal/token"
)

// ParseError is the typed diagnostic spec.md §4.2 requires: a kind, the
// token actually found, what was expected, and a position.
type ParseError struct {
	Message  string
	Found    token.Token
	Expected string
	Pos      token.Position
}

func (e *ParseError) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf("%s: expected %s, found %s at %s", e.Message, e.Expected, e.Found.Type, e.Pos)
	}
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

// cursor wraps a *lexer.Lexer with peek(n)/next()/expect()/setGoal(),
// per spec.md §4.2. Saved peek results are invalidated by next() or by
// a goal change whose re-lex would change what's buffered — setGoal
// clears the buffer outright so the next peek always re-lexes under the
// new goal.
type cursor struct {
	lex *lexer.Lexer

	buf []token.Token // pending peeked tokens, oldest first

	// states holds, by token offset, the lexer state saved just before
	// each buffered token was scanned, so setGoal can rewind to it.
	states map[int]lexer.State

	errors []*ParseError
}

func newCursor(lex *lexer.Lexer) *cursor {
	return &cursor{lex: lex, states: map[int]lexer.State{}}
}

// fill ensures at least n+1 tokens are buffered (peek(0) is the current
// token).
func (c *cursor) fill(n int) {
	for len(c.buf) <= n {
		st := c.lex.Save()
		tok := c.lex.NextToken()
		c.states[tok.Pos.Offset] = st
		c.buf = append(c.buf, tok)
	}
}

// peek returns the n-th upcoming token (0 = next unconsumed token)
// without consuming it.
func (c *cursor) peek(n int) token.Token {
	c.fill(n)
	return c.buf[n]
}

// next consumes and returns the next token.
func (c *cursor) next() token.Token {
	c.fill(0)
	tok := c.buf[0]
	c.buf = c.buf[1:]
	return tok
}

// setGoal sets the lexer's goal symbol for the *next* scan. Because a
// goal change can retokenize bytes the cursor has already buffered
// under the old goal (e.g. `/` scanned as division vs. regex), any
// buffered-but-unconsumed tokens are discarded and will be re-lexed
// under the new goal on the next peek/next.
func (c *cursor) setGoal(g lexer.Goal) {
	if len(c.buf) > 0 {
		c.lex.Restore(c.states[c.buf[0].Pos.Offset])
		c.buf = nil
	}
	c.lex.SetGoal(g)
}

func (c *cursor) errorf(found token.Token, expected, format string, args ...any) {
	c.errors = append(c.errors, &ParseError{
		Message: fmt.Sprintf(format, args...), Found: found, Expected: expected, Pos: found.Pos,
	})
}

// expect consumes the next token if it has type tt, else records a
// ParseError and returns the zero Token with ok=false.
func (c *cursor) expect(tt token.Type) (token.Token, bool) {
	tok := c.peek(0)
	if tok.Type != tt {
		c.errorf(tok, tt.String(), "unexpected token")
		return token.Token{}, false
	}
	return c.next(), true
}

func (c *cursor) at(tt token.Type) bool { return c.peek(0).Type == tt }

// atLineBreak reports whether a line terminator separates the current
// token from the previous one — used for ASI and for restricting
// `return`/`break`/`continue`/postfix `++`/`--` to the same line.
func (c *cursor) atLineBreak() bool { return c.peek(0).OnNewLine }

// consumeSemicolon implements automatic semicolon insertion (spec.md
// §4.1): an explicit `;` is consumed if present; otherwise ASI applies
// when the next token is `}`, EOF, or separated by a line break.
func (c *cursor) consumeSemicolon() bool {
	if c.at(token.SEMICOLON) {
		c.next()
		return true
	}
	if c.at(token.RBRACE) || c.at(token.EOF) || c.atLineBreak() {
		return true
	}
	c.errorf(c.peek(0), ";", "missing semicolon")
	return false
}
