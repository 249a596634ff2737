package discovery

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrBadExpression is returned for a malformed -m or -k expression
var ErrBadExpression = errors.New("bad selection expression")

// Expression is a parsed selection expression such as `not slow` or `square and (area or perimeter)`.
//
//	expr := or
//	or   := and ("or" and)*
//	and  := not ("and" not)*
//	not  := "not" not | "(" expr ")" | ident
type Expression struct {
	source string
	root   exprNode
}

type exprNode interface {
	eval(match func(ident string) bool) bool
}

type identNode string
type notNode struct{ x exprNode }
type andNode struct{ l, r exprNode }
type orNode struct{ l, r exprNode }

func (n identNode) eval(match func(string) bool) bool { return match(string(n)) }
func (n notNode) eval(match func(string) bool) bool   { return !n.x.eval(match) }
func (n andNode) eval(match func(string) bool) bool   { return n.l.eval(match) && n.r.eval(match) }
func (n orNode) eval(match func(string) bool) bool    { return n.l.eval(match) || n.r.eval(match) }

// ParseExpression parses a selection expression. An empty expression matches everything.
func ParseExpression(source string) (*Expression, error) {
	p := &exprParser{tokens: tokenize(source)}
	if len(p.tokens) == 0 {
		return &Expression{source: source}, nil
	}

	root, err := p.parseOr()
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrBadExpression, source, err)
	}
	if p.pos < len(p.tokens) {
		return nil, fmt.Errorf("%w: %q: unexpected %q", ErrBadExpression, source, p.tokens[p.pos])
	}
	return &Expression{source: source, root: root}, nil
}

// String returns the expression source
func (e *Expression) String() string { return e.source }

// Empty reports whether the expression selects everything
func (e *Expression) Empty() bool { return e == nil || e.root == nil }

// Eval evaluates the expression, calling match for every identifier
func (e *Expression) Eval(match func(ident string) bool) bool {
	if e.Empty() {
		return true
	}
	return e.root.eval(match)
}

func tokenize(s string) []string {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			flush()
		case r == '(' || r == ')':
			flush()
			tokens = append(tokens, string(r))
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}

type exprParser struct {
	tokens []string
	pos    int
}

func (p *exprParser) peek() string {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return ""
}

func (p *exprParser) parseOr() (exprNode, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek() == "or" {
		p.pos++
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orNode{left, right}
	}
	return left, nil
}

func (p *exprParser) parseAnd() (exprNode, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.peek() == "and" {
		p.pos++
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = andNode{left, right}
	}
	return left, nil
}

func (p *exprParser) parseNot() (exprNode, error) {
	tok := p.peek()
	switch tok {
	case "":
		return nil, errors.New("unexpected end of expression")
	case "not":
		p.pos++
		x, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return notNode{x}, nil
	case "(":
		p.pos++
		x, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.peek() != ")" {
			return nil, errors.New("missing closing parenthesis")
		}
		p.pos++
		return x, nil
	case ")", "and", "or":
		return nil, fmt.Errorf("unexpected %q", tok)
	}
	p.pos++
	return identNode(tok), nil
}
