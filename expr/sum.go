package expr

import (
	"math/big"
	"sort"
	"strings"
)

// Sum is an n-ary addition. Canonical form: like terms collected with
// exact rational coefficients, terms sorted by (class, string), numeric
// constant last, never fewer than two terms.
type Sum struct {
	terms []Expr
}

// Add sums the given expressions and simplifies.
func Add(terms ...Expr) Expr { return (&Sum{terms: terms}).Simplify() }

func (s *Sum) Terms() []Expr { return s.terms }
func (s *Sum) sortClass() int { return classOther }

func (s *Sum) Simplify() Expr {
	flat := make([]Expr, 0, len(s.terms))
	for _, t := range s.terms {
		c := t.Simplify()
		if inner, ok := c.(*Sum); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, c)
		}
	}

	// Collect like terms: each non-numeric term splits into an exact
	// rational coefficient and a canonical rest; rests are grouped by
	// their printed form.
	konst := new(big.Rat)
	type group struct {
		coeff *big.Rat
		rest  Expr
	}
	groups := map[string]*group{}
	keys := []string{}
	for _, t := range flat {
		if n, ok := t.(*Number); ok {
			konst = ratAdd(konst, n.val)
			continue
		}
		coeff, rest := splitCoeff(t)
		k := rest.String()
		g, seen := groups[k]
		if !seen {
			g = &group{coeff: new(big.Rat), rest: rest}
			groups[k] = g
			keys = append(keys, k)
		}
		g.coeff = ratAdd(g.coeff, coeff)
	}

	sort.Strings(keys)
	out := make([]Expr, 0, len(keys)+1)
	for _, k := range keys {
		g := groups[k]
		switch {
		case g.coeff.Sign() == 0:
			// cancelled
		case g.coeff.Cmp(ratOne) == 0:
			out = append(out, g.rest)
		default:
			out = append(out, withCoeff(fromRat(g.coeff), g.rest))
		}
	}
	if konst.Sign() != 0 {
		out = append(out, fromRat(konst))
	}

	switch len(out) {
	case 0:
		return Int(0)
	case 1:
		return out[0]
	}
	return &Sum{terms: out}
}

func (s *Sum) Sub(name string, value Expr) Expr {
	out := make([]Expr, len(s.terms))
	for i, t := range s.terms {
		out[i] = t.Sub(name, value)
	}
	return Add(out...)
}

func (s *Sum) Diff(name string) Expr {
	out := make([]Expr, len(s.terms))
	for i, t := range s.terms {
		out[i] = t.Diff(name)
	}
	return Add(out...)
}

func (s *Sum) Equal(o Expr) bool {
	t, ok := o.(*Sum)
	if !ok || len(s.terms) != len(t.terms) {
		return false
	}
	for i := range s.terms {
		if !s.terms[i].Equal(t.terms[i]) {
			return false
		}
	}
	return true
}

func (s *Sum) String() string {
	var b strings.Builder
	for i, t := range s.terms {
		neg, body := signSplit(t, Expr.String)
		switch {
		case i == 0 && neg:
			b.WriteString("-")
			b.WriteString(body)
		case i == 0:
			b.WriteString(body)
		case neg:
			b.WriteString(" - ")
			b.WriteString(body)
		default:
			b.WriteString(" + ")
			b.WriteString(body)
		}
	}
	return b.String()
}

func (s *Sum) LaTeX() string {
	var b strings.Builder
	for i, t := range s.terms {
		neg, body := signSplit(t, Expr.LaTeX)
		switch {
		case i == 0 && neg:
			b.WriteString("-")
			b.WriteString(body)
		case i == 0:
			b.WriteString(body)
		case neg:
			b.WriteString(" - ")
			b.WriteString(body)
		default:
			b.WriteString(" + ")
			b.WriteString(body)
		}
	}
	return b.String()
}

// signSplit pulls a negative sign out of a term for rendering, so sums
// print as "a - b" rather than "a + -1*b".
func signSplit(t Expr, render func(Expr) string) (neg bool, body string) {
	if n, ok := t.(*Number); ok && n.IsNegative() {
		return true, render(fromRat(ratNeg(n.val)))
	}
	if p, ok := t.(*Product); ok && len(p.factors) > 0 {
		if n, ok := p.factors[0].(*Number); ok && n.IsNegative() {
			flipped := withCoeff(fromRat(ratNeg(n.val)), stripCoeff(p))
			return true, render(flipped)
		}
	}
	return false, render(t)
}
