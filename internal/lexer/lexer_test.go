package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-lang/quill/internal/lexer"
	"github.com/quill-lang/quill/internal/token"
)

func allTokens(t *testing.T, l *lexer.Lexer) []token.Token {
	t.Helper()
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func TestLexesPunctuatorsAndOperators(t *testing.T) {
	l := lexer.New("( ) { } [ ] ; , . ... ?. ?? ??= => === !== >>> <<=")
	toks := allTokens(t, l)
	var kinds []token.Type
	for _, tok := range toks {
		kinds = append(kinds, tok.Type)
	}
	require.Equal(t, []token.Type{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
		token.LBRACKET, token.RBRACKET, token.SEMICOLON, token.COMMA,
		token.DOT, token.DOT_DOT_DOT, token.OPTIONAL_CHAIN, token.NULLISH,
		token.NULLISH_ASSIGN, token.ARROW, token.STRICT_EQ, token.STRICT_NOT_EQ,
		token.USHR, token.SHL_ASSIGN, token.EOF,
	}, kinds)
	assert.Empty(t, l.Errors())
}

func TestLexesKeywordsAndIdentifiers(t *testing.T) {
	l := lexer.New("let x = function foo() { return this; }")
	toks := allTokens(t, l)
	require.GreaterOrEqual(t, len(toks), 9)
	assert.Equal(t, token.LET, toks[0].Type)
	assert.Equal(t, token.IDENT, toks[1].Type)
	assert.Equal(t, "x", toks[1].Literal)
	assert.Equal(t, token.FUNCTION, toks[3].Type)
	assert.Equal(t, token.IDENT, toks[4].Type)
	assert.Equal(t, "foo", toks[4].Literal)
}

func TestLexesPrivateIdentifier(t *testing.T) {
	l := lexer.New("#field")
	tok := l.NextToken()
	require.Equal(t, token.PRIVATE_IDENT, tok.Type)
	require.Equal(t, "#field", tok.Literal)
}

func TestLexesNumericLiteralForms(t *testing.T) {
	cases := []string{"123", "0x1F", "0b101", "0o17", "3.14", "1e10", "1_000_000"}
	for _, src := range cases {
		l := lexer.New(src)
		tok := l.NextToken()
		assert.Equal(t, token.NUMBER, tok.Type, "source: %s", src)
		assert.Equal(t, src, tok.Literal, "source: %s", src)
	}
}

func TestLexesStringEscapes(t *testing.T) {
	l := lexer.New(`"a\nb\tc"`)
	tok := l.NextToken()
	require.Equal(t, token.STRING, tok.Type)
	require.Equal(t, "a\nb\tc", tok.Literal)
}

func TestGoalDivProducesSlashAsDivision(t *testing.T) {
	l := lexer.New("a / b")
	l.NextToken() // a
	l.SetGoal(lexer.GoalDiv)
	tok := l.NextToken()
	require.Equal(t, token.SLASH, tok.Type)
}

func TestGoalRegExpProducesRegexLiteral(t *testing.T) {
	l := lexer.New("/abc[/]def/gi")
	l.SetGoal(lexer.GoalRegExp)
	tok := l.NextToken()
	require.Equal(t, token.REGEXP, tok.Type)
	assert.Contains(t, tok.Literal, "abc[/]def")
}

func TestTemplateLiteralNoSubstitution(t *testing.T) {
	l := lexer.New("`hello`")
	tok := l.NextToken()
	require.Equal(t, token.NO_SUBSTITUTION, tok.Type)
	require.Equal(t, "hello", tok.Literal)
}

func TestTemplateLiteralWithSubstitution(t *testing.T) {
	l := lexer.New("`a${1}b`")
	head := l.NextToken()
	require.Equal(t, token.TEMPLATE_HEAD, head.Type)
	require.Equal(t, "a", head.Literal)

	num := l.NextToken()
	require.Equal(t, token.NUMBER, num.Type)
	require.Equal(t, "1", num.Literal)

	l.SetGoal(lexer.GoalTemplateTail)
	tail := l.NextToken()
	require.Equal(t, token.TEMPLATE_TAIL, tail.Type)
	require.Equal(t, "b", tail.Literal)
}

func TestOnNewLineFlagTracksAutomaticSemicolonInsertionSites(t *testing.T) {
	l := lexer.New("let x = 1\nlet y = 2")
	toks := allTokens(t, l)
	var secondLet token.Token
	seenFirstLet := false
	for _, tok := range toks {
		if tok.Type == token.LET {
			if !seenFirstLet {
				seenFirstLet = true
				continue
			}
			secondLet = tok
			break
		}
	}
	require.True(t, secondLet.OnNewLine)
}

func TestSaveRestoreRewindsLexerState(t *testing.T) {
	l := lexer.New("abc def")
	first := l.NextToken()
	require.Equal(t, "abc", first.Literal)

	saved := l.Save()
	second := l.NextToken()
	require.Equal(t, "def", second.Literal)

	l.Restore(saved)
	replay := l.NextToken()
	require.Equal(t, "def", replay.Literal)
}

func TestIllegalCharacterRecordsLexerError(t *testing.T) {
	l := lexer.New("let x = @")
	_ = allTokens(t, l)
	require.NotEmpty(t, l.Errors())
}
