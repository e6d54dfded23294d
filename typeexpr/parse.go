package typeexpr

import (
	"fmt"

	"github.com/wippyai/contractgen/errors"
)

// maxParseDepth bounds bracket nesting in text.
const maxParseDepth = 256

// Parse parses a single type expression.
func Parse(input string) (Expr, error) {
	p := &parser{tokens: tokenize(input)}
	e, err := p.parseType(0)
	if err != nil {
		return Expr{}, errors.ParseFailed(fmt.Sprintf("type expression %q", input), err)
	}
	if t := p.peek(); t != nil {
		return Expr{}, errors.ParseFailed(fmt.Sprintf("type expression %q", input),
			fmt.Errorf("col %d: unexpected %s %q after type", t.Col, t.Type, t.Value))
	}
	return e, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(input string) Expr {
	e, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return e
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() *token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos]
}

func (p *parser) next() *token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	t := &p.tokens[p.pos]
	p.pos++
	return t
}

func (p *parser) expect(typ tokenType) (*token, error) {
	t := p.next()
	if t == nil {
		return nil, fmt.Errorf("unexpected end of input, expected %v", typ)
	}
	if t.Type != typ {
		return nil, fmt.Errorf("col %d: expected %v, got %q", t.Col, typ, t.Value)
	}
	return t, nil
}

func (p *parser) parseType(depth int) (Expr, error) {
	if depth > maxParseDepth {
		return Expr{}, fmt.Errorf("nesting deeper than %d", maxParseDepth)
	}
	t := p.peek()
	if t == nil {
		return Expr{}, fmt.Errorf("unexpected end of input, expected type")
	}
	switch t.Type {
	case tokLParen:
		return p.parseTuple(depth)
	case tokIdent, tokPathSep:
		return p.parseNamed(depth)
	default:
		return Expr{}, fmt.Errorf("col %d: unexpected %s %q", t.Col, t.Type, t.Value)
	}
}

// parseNamed reads a possibly path-qualified name and its generic arguments.
// Only the last path segment is kept.
func (p *parser) parseNamed(depth int) (Expr, error) {
	start := p.peek().Col
	if p.peek().Type == tokPathSep {
		p.next()
	}
	id, err := p.expect(tokIdent)
	if err != nil {
		return Expr{}, err
	}
	name := id.Value
	for t := p.peek(); t != nil && t.Type == tokPathSep; t = p.peek() {
		p.next()
		seg, err := p.expect(tokIdent)
		if err != nil {
			return Expr{}, err
		}
		name = seg.Value
	}

	e := Expr{Name: name, Pos: start}
	if t := p.peek(); t == nil || t.Type != tokLAngle {
		return e, nil
	}
	p.next()
	args, err := p.parseList(depth, tokRAngle)
	if err != nil {
		return Expr{}, err
	}
	if len(args) == 0 {
		return Expr{}, fmt.Errorf("col %d: empty generic argument list for %s", start, name)
	}
	e.Args = args
	return e, nil
}

// parseTuple handles (), (T), (T,) and (A, B, ...). A single element without
// a trailing comma is a parenthesized type, not a tuple.
func (p *parser) parseTuple(depth int) (Expr, error) {
	open := p.next()
	if t := p.peek(); t != nil && t.Type == tokRParen {
		p.next()
		return Expr{Tuple: true, Args: []Expr{}, Pos: open.Col}, nil
	}

	first, err := p.parseType(depth + 1)
	if err != nil {
		return Expr{}, err
	}
	t := p.next()
	if t == nil {
		return Expr{}, fmt.Errorf("unexpected end of input, expected ')'")
	}
	switch t.Type {
	case tokRParen:
		return first, nil
	case tokComma:
	default:
		return Expr{}, fmt.Errorf("col %d: expected ',' or ')', got %q", t.Col, t.Value)
	}

	rest, err := p.parseList(depth, tokRParen)
	if err != nil {
		return Expr{}, err
	}
	return Expr{Tuple: true, Args: append([]Expr{first}, rest...), Pos: open.Col}, nil
}

// parseList reads comma separated types up to and including the closing
// token. A trailing comma is allowed.
func (p *parser) parseList(depth int, closing tokenType) ([]Expr, error) {
	list := []Expr{}
	for {
		t := p.peek()
		if t == nil {
			return nil, fmt.Errorf("unexpected end of input, expected %v", closing)
		}
		if t.Type == closing {
			p.next()
			return list, nil
		}
		e, err := p.parseType(depth + 1)
		if err != nil {
			return nil, err
		}
		list = append(list, e)

		t = p.next()
		if t == nil {
			return nil, fmt.Errorf("unexpected end of input, expected %v", closing)
		}
		switch t.Type {
		case closing:
			return list, nil
		case tokComma:
		default:
			return nil, fmt.Errorf("col %d: expected ',' or %v, got %q", t.Col, closing, t.Value)
		}
	}
}
