package schema

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/wippyai/borsh/errors"
)

// Expr is a parsed type expression such as "vec<option<u8>>" or
// "array<Results, 3>".
type Expr struct {
	Name   string
	Params []Expr
	Len    int
	HasLen bool
}

func (e Expr) String() string {
	if len(e.Params) == 0 && !e.HasLen {
		return e.Name
	}
	parts := make([]string, 0, len(e.Params)+1)
	for _, p := range e.Params {
		parts = append(parts, p.String())
	}
	if e.HasLen {
		parts = append(parts, strconv.Itoa(e.Len))
	}
	return e.Name + "<" + strings.Join(parts, ", ") + ">"
}

// ParseExpr parses a type expression.
func ParseExpr(s string) (Expr, error) {
	p := &exprParser{src: s}
	e, err := p.expr()
	if err != nil {
		return Expr{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return Expr{}, p.fail("unexpected %q", p.src[p.pos:])
	}
	return e, nil
}

type exprParser struct {
	src string
	pos int
}

func (p *exprParser) fail(format string, args ...any) error {
	return errors.New(errors.PhaseSchema, errors.KindInvalidData).
		Value(p.src).
		Detail("type %q at %d: "+format, append([]any{p.src, p.pos}, args...)...).
		Build()
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *exprParser) peek() byte {
	p.skipSpace()
	if p.pos < len(p.src) {
		return p.src[p.pos]
	}
	return 0
}

func (p *exprParser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		r := rune(p.src[p.pos])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		if p.pos == start && unicode.IsDigit(r) {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *exprParser) number() (int, bool) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if start == p.pos {
		return 0, false
	}
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		p.pos = start
		return 0, false
	}
	return n, true
}

func (p *exprParser) expr() (Expr, error) {
	name := p.ident()
	if name == "" {
		return Expr{}, p.fail("expected a type name")
	}
	e := Expr{Name: name}
	if p.peek() != '<' {
		return e, nil
	}
	p.pos++

	for {
		if n, ok := p.number(); ok {
			if e.HasLen {
				return Expr{}, p.fail("more than one length")
			}
			e.Len, e.HasLen = n, true
		} else {
			if e.HasLen {
				return Expr{}, p.fail("length must be the last argument")
			}
			param, err := p.expr()
			if err != nil {
				return Expr{}, err
			}
			e.Params = append(e.Params, param)
		}

		switch p.peek() {
		case ',':
			p.pos++
		case '>':
			p.pos++
			return e, nil
		default:
			return Expr{}, p.fail("expected ',' or '>'")
		}
	}
}
