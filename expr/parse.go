package expr

import (
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

// Parse reads an expression from its textual form. The grammar covers
// numbers (integer, decimal and rationals like 3/4), symbols, the four
// arithmetic operators, ^ for powers, parentheses, known function
// calls (exp, ln, log, sin, cos, sqrt), unknown function applications
// like f(t), the derivative shorthand df(t)/dt and the explicit form
// diff(f(t), t). Output of String() parses back to an equal tree.
func Parse(src string) (Expr, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, fmt.Errorf("unexpected %q at position %d", p.tok.text, p.tok.pos)
	}
	return e.Simplify(), nil
}

// ParseEquation reads "lhs = rhs". A bare expression is treated as
// "expr = 0".
func ParseEquation(src string) (Equation, error) {
	parts := strings.Split(src, "=")
	switch len(parts) {
	case 1:
		lhs, err := Parse(parts[0])
		if err != nil {
			return Equation{}, err
		}
		return Eq(lhs, Int(0)), nil
	case 2:
		lhs, err := Parse(parts[0])
		if err != nil {
			return Equation{}, err
		}
		rhs, err := Parse(parts[1])
		if err != nil {
			return Equation{}, err
		}
		return Eq(lhs, rhs), nil
	}
	return Equation{}, fmt.Errorf("expected a single = in %q", src)
}

// MustParse is Parse for fixed inputs known to be well-formed.
func MustParse(src string) Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

type parser struct {
	toks []token
	i    int
	tok  token
}

func newParser(src string) (*parser, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	p.tok = p.toks[0]
	return p, nil
}

func (p *parser) next() {
	if p.i < len(p.toks)-1 {
		p.i++
	}
	p.tok = p.toks[p.i]
}

func (p *parser) peek() token {
	if p.i < len(p.toks)-1 {
		return p.toks[p.i+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) expect(k tokenKind, what string) error {
	if p.tok.kind != k {
		return fmt.Errorf("expected %s at position %d, got %q", what, p.tok.pos, p.tok.text)
	}
	p.next()
	return nil
}

func lex(src string) ([]token, error) {
	var toks []token
	runes := []rune(src)
	i := 0
	for i < len(runes) {
		c := runes[i]
		switch {
		case unicode.IsSpace(c):
			i++
		case unicode.IsDigit(c) || c == '.':
			start := i
			seenDot := false
			for i < len(runes) && (unicode.IsDigit(runes[i]) || (runes[i] == '.' && !seenDot)) {
				if runes[i] == '.' {
					seenDot = true
				}
				i++
			}
			toks = append(toks, token{tokNumber, string(runes[start:i]), start})
		case unicode.IsLetter(c) || c == '_':
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			toks = append(toks, token{tokIdent, string(runes[start:i]), start})
		default:
			kind, ok := map[rune]tokenKind{
				'+': tokPlus, '-': tokMinus, '*': tokStar, '/': tokSlash,
				'^': tokCaret, '(': tokLParen, ')': tokRParen, ',': tokComma,
			}[c]
			if !ok {
				return nil, fmt.Errorf("unexpected character %q at position %d", c, i)
			}
			toks = append(toks, token{kind, string(c), i})
			i++
		}
	}
	toks = append(toks, token{tokEOF, "", len(runes)})
	return toks, nil
}

// parseExpr handles + and -.
func (p *parser) parseExpr() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokPlus || p.tok.kind == tokMinus {
		op := p.tok.kind
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if op == tokMinus {
			right = Neg(right)
		}
		left = Add(left, right)
	}
	return left, nil
}

// parseTerm handles * and /, plus the df(t)/dt derivative shorthand.
func (p *parser) parseTerm() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokStar || p.tok.kind == tokSlash {
		op := p.tok.kind
		if op == tokSlash {
			if d, ok := derivShorthand(left, p.peek()); ok {
				p.next()
				p.next()
				left = d
				continue
			}
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if op == tokSlash {
			left = Div(left, right)
		} else {
			left = Mul(left, right)
		}
	}
	return left, nil
}

// derivShorthand recognizes df(t)/dt: an unknown application whose
// name is d-prefixed, divided by an identifier naming d plus the
// argument symbol.
func derivShorthand(left Expr, next token) (Expr, bool) {
	f, ok := left.(*FuncVal)
	if !ok || len(f.name) < 2 || !strings.HasPrefix(f.name, "d") {
		return nil, false
	}
	arg, ok := f.arg.(*Symbol)
	if !ok || next.kind != tokIdent || next.text != "d"+arg.name {
		return nil, false
	}
	return D(Fn(f.name[1:], arg), arg.name), true
}

func (p *parser) parseUnary() (Expr, error) {
	switch p.tok.kind {
	case tokMinus:
		p.next()
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Neg(e), nil
	case tokPlus:
		p.next()
		return p.parseUnary()
	}
	return p.parsePower()
}

// parsePower handles ^, right associative.
func (p *parser) parsePower() (Expr, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokCaret {
		return base, nil
	}
	p.next()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return Pow(base, exp), nil
}

func (p *parser) parseAtom() (Expr, error) {
	switch p.tok.kind {
	case tokNumber:
		text := p.tok.text
		p.next()
		r, ok := new(big.Rat).SetString(text)
		if !ok {
			return nil, fmt.Errorf("malformed number %q", text)
		}
		return fromRat(r), nil
	case tokLParen:
		p.next()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen, ")"); err != nil {
			return nil, err
		}
		return e, nil
	case tokIdent:
		name := p.tok.text
		p.next()
		if p.tok.kind != tokLParen {
			return Var(name), nil
		}
		p.next()
		return p.parseCall(name)
	}
	return nil, fmt.Errorf("unexpected %q at position %d", p.tok.text, p.tok.pos)
}

// parseCall is entered with the opening parenthesis consumed.
func (p *parser) parseCall(name string) (Expr, error) {
	arg, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if name == "diff" {
		if err := p.expect(tokComma, ","); err != nil {
			return nil, err
		}
		wrt, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen, ")"); err != nil {
			return nil, err
		}
		s, ok := wrt.(*Symbol)
		if !ok {
			return nil, fmt.Errorf("diff wants a symbol as second argument, got %s", wrt)
		}
		return arg.Diff(s.name), nil
	}
	if err := p.expect(tokRParen, ")"); err != nil {
		return nil, err
	}
	switch name {
	case "exp":
		return Exp(arg), nil
	case "ln", "log":
		return Ln(arg), nil
	case "sin":
		return Sin(arg), nil
	case "cos":
		return Cos(arg), nil
	case "sqrt":
		return Sqrt(arg), nil
	}
	return Fn(name, arg), nil
}
