package lambda

import (
	"fmt"
	"unicode"
)

type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdent
	TokenBinder
	TokenDot
	TokenComma
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenAnd
	TokenOr
	TokenImplies
	TokenIff
	TokenNot
	TokenIllegal
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of formula"
	case TokenIdent:
		return "symbol"
	case TokenBinder:
		return "binder"
	case TokenDot:
		return "'.'"
	case TokenComma:
		return "','"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenLBracket:
		return "'['"
	case TokenRBracket:
		return "']'"
	case TokenAnd:
		return "'&'"
	case TokenOr:
		return "'|'"
	case TokenImplies:
		return "'->'"
	case TokenIff:
		return "'<->'"
	case TokenNot:
		return "'~'"
	case TokenIllegal:
		return "illegal character"
	default:
		return "unknown token"
	}
}

type Token struct {
	Type    TokenType
	Literal string
	Pos     int
	// Binder is set on TokenBinder.
	Binder binderKind
}

type binderKind int

const (
	bindLambda binderKind = iota
	bindForall
	bindExists
	bindIota
)

// ParseError reports a malformed formula.
type ParseError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("formula %q: %s at offset %d", e.Input, e.Msg, e.Pos)
}

// Parser reads the formula language:
//
//	expr   ::= or [ ('->' | '<->') expr ]
//	or     ::= and [ '|' or ]
//	and    ::= factor [ '&' and ]
//	factor ::= BINDER IDENT '.' expr | '~' factor | '[' expr ']'
//	         | IDENT { '(' args ')' } | '(' expr ')' { '(' args ')' }
//
// Binders are L/λ/\ (lambda), A/∀ (forall), E/∃ (exists) and i/ι (iota),
// written either as Lx. or L x.
type Parser struct {
	input   []rune
	pos     int
	current Token
	pending []Token
}

func NewParser(input string) *Parser {
	p := &Parser{input: []rune(input)}
	p.next()
	return p
}

func (p *Parser) next() {
	if len(p.pending) > 0 {
		p.current = p.pending[0]
		p.pending = p.pending[1:]
		return
	}
	p.skipWhitespace()
	if p.pos >= len(p.input) {
		p.current = Token{Type: TokenEOF, Pos: p.pos}
		return
	}

	start := p.pos
	ch := p.input[p.pos]
	switch {
	case ch == 'λ' || ch == '\\':
		p.pos++
		p.current = Token{Type: TokenBinder, Binder: bindLambda, Literal: string(ch), Pos: start}
	case ch == '∀':
		p.pos++
		p.current = Token{Type: TokenBinder, Binder: bindForall, Literal: string(ch), Pos: start}
	case ch == '∃':
		p.pos++
		p.current = Token{Type: TokenBinder, Binder: bindExists, Literal: string(ch), Pos: start}
	case ch == 'ι':
		p.pos++
		p.current = Token{Type: TokenBinder, Binder: bindIota, Literal: string(ch), Pos: start}
	case isLetter(ch):
		lit := p.scanIdent()
		p.current = Token{Type: TokenIdent, Literal: lit, Pos: start}
		p.splitBinder(lit, start)
	case ch == '.':
		p.pos++
		p.current = Token{Type: TokenDot, Literal: ".", Pos: start}
	case ch == ',':
		p.pos++
		p.current = Token{Type: TokenComma, Literal: ",", Pos: start}
	case ch == '(':
		p.pos++
		p.current = Token{Type: TokenLParen, Literal: "(", Pos: start}
	case ch == ')':
		p.pos++
		p.current = Token{Type: TokenRParen, Literal: ")", Pos: start}
	case ch == '[':
		p.pos++
		p.current = Token{Type: TokenLBracket, Literal: "[", Pos: start}
	case ch == ']':
		p.pos++
		p.current = Token{Type: TokenRBracket, Literal: "]", Pos: start}
	case ch == '&':
		p.pos++
		p.current = Token{Type: TokenAnd, Literal: "&", Pos: start}
	case ch == '|':
		p.pos++
		p.current = Token{Type: TokenOr, Literal: "|", Pos: start}
	case ch == '~':
		p.pos++
		p.current = Token{Type: TokenNot, Literal: "~", Pos: start}
	case ch == '-' && p.peekIs(1, '>'):
		p.pos += 2
		p.current = Token{Type: TokenImplies, Literal: "->", Pos: start}
	case ch == '<' && p.peekIs(1, '-') && p.peekIs(2, '>'):
		p.pos += 3
		p.current = Token{Type: TokenIff, Literal: "<->", Pos: start}
	default:
		p.pos++
		p.current = Token{Type: TokenIllegal, Literal: string(ch), Pos: start}
	}
}

// splitBinder turns an identifier that opens a binder into a binder token.
// "Lx." becomes binder L plus identifier x; a lone "L" followed by "x." is a
// binder too. Any other identifier is left alone.
func (p *Parser) splitBinder(lit string, start int) {
	kind, ok := binderLetter(rune(lit[0]))
	if !ok {
		return
	}
	if len(lit) > 1 && p.dotFollows() {
		p.current = Token{Type: TokenBinder, Binder: kind, Literal: lit[:1], Pos: start}
		p.pending = append(p.pending, Token{Type: TokenIdent, Literal: lit[1:], Pos: start + 1})
		return
	}
	if len(lit) == 1 {
		// Look ahead for "IDENT ." without consuming anything.
		save := p.pos
		p.skipWhitespace()
		if p.pos < len(p.input) && isLetter(p.input[p.pos]) {
			p.scanIdent()
			if p.dotFollows() {
				p.current = Token{Type: TokenBinder, Binder: kind, Literal: lit, Pos: start}
			}
		}
		p.pos = save
	}
}

// dotFollows reports whether the next non-space character is '.'.
func (p *Parser) dotFollows() bool {
	i := p.pos
	for i < len(p.input) && unicode.IsSpace(p.input[i]) {
		i++
	}
	return i < len(p.input) && p.input[i] == '.'
}

func binderLetter(ch rune) (binderKind, bool) {
	switch ch {
	case 'L':
		return bindLambda, true
	case 'A':
		return bindForall, true
	case 'E':
		return bindExists, true
	case 'i':
		return bindIota, true
	}
	return 0, false
}

func (p *Parser) scanIdent() string {
	start := p.pos
	for p.pos < len(p.input) && isIdentChar(p.input[p.pos]) {
		// a hyphen belongs to the symbol unless it starts "->"
		if p.input[p.pos] == '-' && p.peekIs(1, '>') {
			break
		}
		p.pos++
	}
	return string(p.input[start:p.pos])
}

func (p *Parser) peekIs(offset int, ch rune) bool {
	i := p.pos + offset
	return i < len(p.input) && p.input[i] == ch
}

func (p *Parser) skipWhitespace() {
	for p.pos < len(p.input) && unicode.IsSpace(p.input[p.pos]) {
		p.pos++
	}
}

func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentChar(ch rune) bool {
	return isLetter(ch) || (ch >= '0' && ch <= '9') || ch == '_' || ch == '\'' || ch == '-'
}

func (p *Parser) errorf(tok Token, format string, args ...interface{}) error {
	return &ParseError{Input: string(p.input), Pos: tok.Pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) unexpected() error {
	if p.current.Type == TokenIllegal {
		return p.errorf(p.current, "unexpected character %q", p.current.Literal)
	}
	if p.current.Type == TokenEOF {
		return p.errorf(p.current, "premature end of formula")
	}
	return p.errorf(p.current, "unexpected %s", p.current.Type)
}

func (p *Parser) expect(tt TokenType) (Token, error) {
	if p.current.Type != tt {
		if p.current.Type == TokenIllegal || p.current.Type == TokenEOF {
			return Token{}, p.unexpected()
		}
		return Token{}, p.errorf(p.current, "expected %s, found %s", tt, p.current.Type)
	}
	tok := p.current
	p.next()
	return tok, nil
}

// parseSyntax parses a formula without assigning types.
func (p *Parser) parseSyntax() (expr, error) {
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.current.Type != TokenEOF {
		if p.current.Type == TokenIllegal {
			return nil, p.unexpected()
		}
		return nil, p.errorf(p.current, "trailing %s", p.current.Type)
	}
	return e, nil
}

func (p *Parser) parseExpr() (expr, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	var op Op
	switch p.current.Type {
	case TokenImplies:
		op = Implies
	case TokenIff:
		op = Iff
	default:
		return left, nil
	}
	p.next()
	right, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &opExpr{op: op, args: []expr{left, right}}, nil
}

func (p *Parser) parseOr() (expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	if p.current.Type != TokenOr {
		return left, nil
	}
	p.next()
	right, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	return &opExpr{op: Or, args: []expr{left, right}}, nil
}

func (p *Parser) parseAnd() (expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	if p.current.Type != TokenAnd {
		return left, nil
	}
	p.next()
	right, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	return &opExpr{op: And, args: []expr{left, right}}, nil
}

func (p *Parser) parseFactor() (expr, error) {
	switch p.current.Type {
	case TokenBinder:
		return p.parseBinder()
	case TokenNot:
		p.next()
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &opExpr{op: Not, args: []expr{operand}}, nil
	case TokenLBracket:
		p.next()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRBracket); err != nil {
			return nil, err
		}
		return p.parseCalls(e)
	case TokenLParen:
		p.next()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return p.parseCalls(e)
	case TokenIdent:
		tok := p.current
		p.next()
		return p.parseCalls(&symExpr{name: tok.Literal, pos: tok.Pos})
	default:
		return nil, p.unexpected()
	}
}

// parseCalls reads any number of "(args)" suffixes; F(a, b) means F(a)(b).
func (p *Parser) parseCalls(fun expr) (expr, error) {
	for p.current.Type == TokenLParen {
		p.next()
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			fun = &callExpr{fun: fun, arg: arg}
			if p.current.Type == TokenComma {
				p.next()
				continue
			}
			if _, err := p.expect(TokenRParen); err != nil {
				return nil, err
			}
			break
		}
	}
	return fun, nil
}

func (p *Parser) parseBinder() (expr, error) {
	tok := p.current
	p.next() // consume binder
	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenDot); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &bindExpr{kind: tok.Binder, name: name.Literal, body: body, pos: tok.Pos}, nil
}
