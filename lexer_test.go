package twen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestLexSineCall(t *testing.T) {
	tokens, err := lex("Sine(440, 0.5)")
	require.NoError(t, err)
	assert.Equal(t, []TokenKind{
		TokenIdentifier, TokenLParen, TokenNumber, TokenComma, TokenNumber, TokenRParen, TokenEOF,
	}, kinds(tokens))
	assert.Equal(t, "Sine", tokens[0].Lexeme)
	assert.Equal(t, float32(440), tokens[2].Value)
	assert.Equal(t, float32(0.5), tokens[4].Value)
}

func TestLexWhitespaceAndComments(t *testing.T) {
	tokens, err := lex("a\t=\r\n1 # trailing comment\n# whole line\nb")
	require.NoError(t, err)
	assert.Equal(t, []TokenKind{
		TokenIdentifier, TokenEquals, TokenNumber, TokenIdentifier, TokenEOF,
	}, kinds(tokens))
}

func TestLexCommentAtEndOfInput(t *testing.T) {
	tokens, err := lex("x # no newline after this")
	require.NoError(t, err)
	assert.Equal(t, []TokenKind{TokenIdentifier, TokenEOF}, kinds(tokens))
}

func TestLexNumbers(t *testing.T) {
	for _, tc := range []struct {
		src  string
		want float32
	}{
		{"440", 440},
		{"-1", -1},
		{"0.5", 0.5},
		{"-0.25", -0.25},
		{".5", 0.5},
	} {
		tokens, err := lex(tc.src)
		require.NoError(t, err, tc.src)
		require.Equal(t, []TokenKind{TokenNumber, TokenEOF}, kinds(tokens), tc.src)
		assert.Equal(t, tc.want, tokens[0].Value, tc.src)
	}
}

func TestLexMalformedNumber(t *testing.T) {
	for _, src := range []string{"1.2.3", "-", "1-2", "..", "4.4-"} {
		_, err := lex(src)
		var lexErr *LexError
		require.ErrorAs(t, err, &lexErr, src)
	}
}

func TestLexIdentifiers(t *testing.T) {
	tokens, err := lex("_osc freq2 LFO")
	require.NoError(t, err)
	require.Equal(t, []TokenKind{TokenIdentifier, TokenIdentifier, TokenIdentifier, TokenEOF}, kinds(tokens))
	assert.Equal(t, "_osc", tokens[0].Lexeme)
	assert.Equal(t, "freq2", tokens[1].Lexeme)
}

func TestLexUnknownRuneIsNotAnError(t *testing.T) {
	tokens, err := lex("a % b")
	require.NoError(t, err)
	assert.Equal(t, []TokenKind{TokenIdentifier, TokenUnknown, TokenIdentifier, TokenEOF}, kinds(tokens))
}

func TestLexEmptySource(t *testing.T) {
	tokens, err := lex("")
	require.NoError(t, err)
	assert.Equal(t, []TokenKind{TokenEOF}, kinds(tokens))
}
