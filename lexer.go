package twen

import "strconv"

type TokenKind int

const (
	TokenUnknown TokenKind = iota
	TokenIdentifier
	TokenNumber
	TokenLParen
	TokenRParen
	TokenEquals
	TokenComma
	TokenEOF
)

var tokenNames = [...]string{
	TokenUnknown:    "Unknown",
	TokenIdentifier: "Identifier",
	TokenNumber:     "Number",
	TokenLParen:     "LParen",
	TokenRParen:     "RParen",
	TokenEquals:     "Equals",
	TokenComma:      "Comma",
	TokenEOF:        "EOF",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return "Unknown"
}

// Token is one lexical unit of graph source. Value is only meaningful
// for TokenNumber, Lexeme for identifiers and numbers.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Value  float32
}

func isAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// identifiers may start with an underscore but not contain one
func isAlphaNum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || isDigit(c)
}

// lex materialises the whole token stream eagerly, terminated by an EOF
// sentinel. The only lexical error is a malformed number; anything else
// unrecognised becomes an Unknown token for the parser to reject.
func lex(src string) ([]Token, error) {
	var tokens []Token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case isAlpha(c):
			j := i + 1
			for j < len(src) && isAlphaNum(src[j]) {
				j++
			}
			tokens = append(tokens, Token{Kind: TokenIdentifier, Lexeme: src[i:j]})
			i = j
		case c == '-' || c == '.' || isDigit(c):
			j := i + 1
			for j < len(src) && (isDigit(src[j]) || src[j] == '.' || src[j] == '-') {
				j++
			}
			text := src[i:j]
			v, err := strconv.ParseFloat(text, 32)
			if err != nil {
				return nil, &LexError{Text: text}
			}
			tokens = append(tokens, Token{Kind: TokenNumber, Lexeme: text, Value: float32(v)})
			i = j
		case c == '(':
			tokens = append(tokens, Token{Kind: TokenLParen, Lexeme: "("})
			i++
		case c == ')':
			tokens = append(tokens, Token{Kind: TokenRParen, Lexeme: ")"})
			i++
		case c == '=':
			tokens = append(tokens, Token{Kind: TokenEquals, Lexeme: "="})
			i++
		case c == ',':
			tokens = append(tokens, Token{Kind: TokenComma, Lexeme: ","})
			i++
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++
		case c == '#':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		default:
			tokens = append(tokens, Token{Kind: TokenUnknown, Lexeme: string(c)})
			i++
		}
	}
	return append(tokens, Token{Kind: TokenEOF}), nil
}
