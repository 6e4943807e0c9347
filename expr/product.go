package expr

import (
	"math/big"
	"sort"
	"strings"
)

// Product is an n-ary multiplication. Canonical form: a single rational
// coefficient first (when not 1), powers of a common base merged, exp
// factors merged into one via exp(a)*exp(b) = exp(a+b), remaining
// factors sorted by (class, string).
type Product struct {
	factors []Expr
}

// Mul multiplies the given expressions and simplifies.
func Mul(factors ...Expr) Expr { return (&Product{factors: factors}).Simplify() }

// Div is shorthand for num * den^-1.
func Div(num, den Expr) Expr { return Mul(num, Pow(den, Int(-1))) }

// Neg is shorthand for -1 * e.
func Neg(e Expr) Expr { return Mul(Int(-1), e) }

func (p *Product) Factors() []Expr { return p.factors }
func (p *Product) sortClass() int  { return classOther }

func (p *Product) Simplify() Expr {
	flat := make([]Expr, 0, len(p.factors))
	for _, f := range p.factors {
		c := f.Simplify()
		if inner, ok := c.(*Product); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, c)
		}
	}

	coeff := new(big.Rat).SetInt64(1)
	var expArgs []Expr
	type group struct {
		base Expr
		exps []Expr
	}
	groups := map[string]*group{}
	keys := []string{}
	addBase := func(base, exp Expr) {
		k := base.String()
		g, seen := groups[k]
		if !seen {
			g = &group{base: base}
			groups[k] = g
			keys = append(keys, k)
		}
		g.exps = append(g.exps, exp)
	}

	for _, f := range flat {
		switch v := f.(type) {
		case *Number:
			coeff = ratMul(coeff, v.val)
		case *Call:
			if v.name == "exp" {
				expArgs = append(expArgs, v.arg)
				continue
			}
			addBase(v, Int(1))
		case *Power:
			addBase(v.base, v.exp)
		default:
			addBase(f, Int(1))
		}
	}
	if coeff.Sign() == 0 {
		return Int(0)
	}

	out := make([]Expr, 0, len(keys)+1)
	for _, k := range keys {
		g := groups[k]
		e := Add(g.exps...)
		if isZero(e) {
			continue
		}
		var f Expr
		if isOne(e) {
			f = g.base
		} else {
			f = Pow(g.base, e)
		}
		if n, ok := f.(*Number); ok {
			coeff = ratMul(coeff, n.val)
			continue
		}
		out = append(out, f)
	}
	if len(expArgs) > 0 {
		merged := Exp(Add(expArgs...))
		if n, ok := merged.(*Number); ok {
			coeff = ratMul(coeff, n.val)
		} else {
			out = append(out, merged)
		}
	}
	if coeff.Sign() == 0 {
		return Int(0)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ci, cj := out[i].sortClass(), out[j].sortClass()
		if ci != cj {
			return ci < cj
		}
		return out[i].String() < out[j].String()
	})

	switch {
	case len(out) == 0:
		return fromRat(coeff)
	case coeff.Cmp(ratOne) == 0 && len(out) == 1:
		return out[0]
	case coeff.Cmp(ratOne) == 0:
		return &Product{factors: out}
	}
	return &Product{factors: append([]Expr{fromRat(coeff)}, out...)}
}

func (p *Product) Sub(name string, value Expr) Expr {
	out := make([]Expr, len(p.factors))
	for i, f := range p.factors {
		out[i] = f.Sub(name, value)
	}
	return Mul(out...)
}

// Diff applies the product rule across all factors.
func (p *Product) Diff(name string) Expr {
	terms := make([]Expr, len(p.factors))
	for i, fi := range p.factors {
		parts := make([]Expr, 0, len(p.factors))
		parts = append(parts, fi.Diff(name))
		for j, fj := range p.factors {
			if j != i {
				parts = append(parts, fj)
			}
		}
		terms[i] = Mul(parts...)
	}
	return Add(terms...)
}

func (p *Product) Equal(o Expr) bool {
	q, ok := o.(*Product)
	if !ok || len(p.factors) != len(q.factors) {
		return false
	}
	for i := range p.factors {
		if !p.factors[i].Equal(q.factors[i]) {
			return false
		}
	}
	return true
}

func (p *Product) String() string { return p.render(Expr.String, "*") }
func (p *Product) LaTeX() string  { return p.render(Expr.LaTeX, `\,`) }

func (p *Product) render(f func(Expr) string, sep string) string {
	factors := p.factors
	prefix := ""
	if n, ok := factors[0].(*Number); ok && n.val.Cmp(ratMinusOne) == 0 {
		prefix = "-"
		factors = factors[1:]
	}
	parts := make([]string, len(factors))
	for i, x := range factors {
		if _, isSum := x.(*Sum); isSum {
			parts[i] = "(" + f(x) + ")"
		} else {
			parts[i] = f(x)
		}
	}
	return prefix + strings.Join(parts, sep)
}

var ratMinusOne = new(big.Rat).SetInt64(-1)

// splitCoeff separates a term into its rational coefficient and the
// remaining canonical factor. Non-products count as coefficient 1.
func splitCoeff(t Expr) (*big.Rat, Expr) {
	if p, ok := t.(*Product); ok && len(p.factors) > 0 {
		if n, ok := p.factors[0].(*Number); ok {
			return new(big.Rat).Set(n.val), stripCoeff(p)
		}
	}
	return new(big.Rat).SetInt64(1), t
}

// stripCoeff drops a leading numeric factor from a canonical product.
func stripCoeff(p *Product) Expr {
	rest := p.factors
	if _, ok := rest[0].(*Number); ok {
		rest = rest[1:]
	}
	if len(rest) == 1 {
		return rest[0]
	}
	return &Product{factors: rest}
}

// withCoeff prefixes a canonical expression with a rational coefficient.
func withCoeff(n *Number, rest Expr) Expr {
	if n.IsOne() {
		return rest
	}
	if p, ok := rest.(*Product); ok {
		return &Product{factors: append([]Expr{n}, p.factors...)}
	}
	return &Product{factors: []Expr{n, rest}}
}
