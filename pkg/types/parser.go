package types

import (
	"fmt"
	"unicode"
)

// ParseError reports a malformed type string.
type ParseError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("type %q: %s at offset %d", e.Input, e.Msg, e.Pos)
}

type typeParser struct {
	input []rune
	pos   int
}

// Parse reads a type string such as "e", "et", "<e, t>" or "<<e,t>,<<e,t>,t>>".
//
// The letters v (events) and s (worlds) are recognized so they can be rejected
// with an UnsupportedError rather than a syntax error.
func Parse(src string) (Type, error) {
	p := &typeParser{input: []rune(src)}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()
	if p.pos < len(p.input) {
		return nil, p.errorf("trailing input")
	}
	return t, nil
}

func (p *typeParser) errorf(format string, args ...interface{}) error {
	return &ParseError{Input: string(p.input), Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *typeParser) skipWhitespace() {
	for p.pos < len(p.input) && unicode.IsSpace(p.input[p.pos]) {
		p.pos++
	}
}

func (p *typeParser) expect(ch rune) error {
	p.skipWhitespace()
	if p.pos >= len(p.input) || p.input[p.pos] != ch {
		return p.errorf("expected %q", ch)
	}
	p.pos++
	return nil
}

// type ::= '<' type ',' type '>' | letter | letter letter
func (p *typeParser) parseType() (Type, error) {
	p.skipWhitespace()
	if p.pos >= len(p.input) {
		return nil, p.errorf("unexpected end of type")
	}
	if p.input[p.pos] == '<' {
		p.pos++
		dom, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if err := p.expect(','); err != nil {
			return nil, err
		}
		rng, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if err := p.expect('>'); err != nil {
			return nil, err
		}
		return Fn(dom, rng), nil
	}

	first, err := p.parseLetter()
	if err != nil {
		return nil, err
	}
	// "et" is shorthand for <e, t>; only adjacent letters combine.
	if p.pos < len(p.input) && isTypeLetter(p.input[p.pos]) {
		second, err := p.parseLetter()
		if err != nil {
			return nil, err
		}
		return Fn(first, second), nil
	}
	return first, nil
}

func isTypeLetter(ch rune) bool {
	return ch == 'e' || ch == 't' || ch == 'v' || ch == 's'
}

func (p *typeParser) parseLetter() (Type, error) {
	ch := p.input[p.pos]
	switch ch {
	case 'e':
		p.pos++
		return Entity, nil
	case 't':
		p.pos++
		return Truth, nil
	case 'v':
		return nil, &UnsupportedError{Feature: "event type v", Detail: "theta roles and tense are not implemented"}
	case 's':
		return nil, &UnsupportedError{Feature: "world type s", Detail: "intensionality is not implemented"}
	default:
		return nil, p.errorf("unexpected %q", ch)
	}
}
