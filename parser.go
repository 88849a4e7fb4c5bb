package twen

// Expr is a node of the immutable statement/call tree produced by parse.
type Expr interface {
	expr()
}

type Literal struct {
	Value float32
}

type Identifier struct {
	Name string
}

type Assign struct {
	Target Expr // always *Identifier in a well-formed program
	Value  Expr
}

type Call struct {
	Name string
	Args []Expr
}

type Program struct {
	Statements []Expr
}

func (*Literal) expr()    {}
func (*Identifier) expr() {}
func (*Assign) expr()     {}
func (*Call) expr()       {}
func (*Program) expr()    {}

// parser is recursive descent with one token of lookahead, no
// backtracking and no recovery. Grammar:
//
//	program   := statement* EOF
//	statement := factor ('=' factor)?
//	factor    := NUMBER | IDENTIFIER ('(' args ')')? | EOF
//	args      := (factor (',' factor)*)?
type parser struct {
	tokens []Token
	pos    int
}

func parse(src string) (*Program, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	var statements []Expr
	for p.peek().Kind != TokenEOF {
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, s)
	}
	return &Program{Statements: statements}, nil
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *parser) prev() Token {
	if p.pos == 0 {
		return Token{}
	}
	return p.tokens[p.pos-1]
}

func (p *parser) accept(k TokenKind) bool {
	if p.peek().Kind == k {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expect(k TokenKind) error {
	if p.accept(k) {
		return nil
	}
	return &SyntaxError{Got: p.peek().Kind, Expected: k, Missing: true}
}

func (p *parser) statement() (Expr, error) {
	lhs, err := p.factor()
	if err != nil {
		return nil, err
	}
	if !p.accept(TokenEquals) {
		return lhs, nil
	}
	if _, ok := lhs.(*Identifier); !ok {
		return nil, &SyntaxError{Got: TokenEquals}
	}
	rhs, err := p.factor()
	if err != nil {
		return nil, err
	}
	return &Assign{Target: lhs, Value: rhs}, nil
}

func (p *parser) factor() (Expr, error) {
	switch {
	case p.accept(TokenNumber):
		return &Literal{Value: p.prev().Value}, nil
	case p.accept(TokenIdentifier):
		name := p.prev().Lexeme
		if p.peek().Kind != TokenLParen {
			return &Identifier{Name: name}, nil
		}
		return p.call(name)
	case p.peek().Kind == TokenEOF:
		// a dangling statement reads as zero
		return &Literal{}, nil
	default:
		return nil, &SyntaxError{Got: p.peek().Kind}
	}
}

func (p *parser) call(name string) (Expr, error) {
	if err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	var args []Expr
	if !p.accept(TokenRParen) {
		for {
			a, err := p.factor()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.accept(TokenRParen) {
				break
			}
			if err := p.expect(TokenComma); err != nil {
				return nil, err
			}
		}
	}
	return &Call{Name: name, Args: args}, nil
}
