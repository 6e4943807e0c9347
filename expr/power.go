package expr

// Power is base^exponent.
type Power struct {
	base, exp Expr
}

// Pow raises base to exp and simplifies.
func Pow(base, exp Expr) Expr { return (&Power{base: base, exp: exp}).Simplify() }

// Sqrt is shorthand for e^(1/2).
func Sqrt(e Expr) Expr { return Pow(e, Rat(1, 2)) }

func (p *Power) Base() Expr     { return p.base }
func (p *Power) Exp() Expr      { return p.exp }
func (p *Power) sortClass() int { return classPower }

func (p *Power) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	if en, ok := exp.(*Number); ok {
		if en.IsZero() {
			return Int(1)
		}
		if en.IsOne() {
			return base
		}
	}

	if bn, ok := base.(*Number); ok {
		if bn.IsZero() {
			// 0^positive collapses; everything else stays inert, since a
			// symbolic exponent could be zero or negative.
			if en, ok := exp.(*Number); ok && !en.IsZero() && !en.IsNegative() {
				return Int(0)
			}
			return &Power{base: base, exp: exp}
		}
		if bn.IsOne() {
			return Int(1)
		}
		if en, ok := exp.(*Number); ok && en.IsInteger() {
			if e := en.val.Num().Int64(); e >= -20 && e <= 20 {
				return fromRat(ratPow(bn.val, e))
			}
		}
		if en, ok := exp.(*Number); ok && en.val.Cmp(ratHalf) == 0 {
			if r, ok := ratSqrt(bn.val); ok {
				return fromRat(r)
			}
		}
	}

	// exp(a)^b folds into exp(a*b).
	if c, ok := base.(*Call); ok && c.name == "exp" {
		return Exp(Mul(c.arg, exp))
	}

	// (b^m)^n folds when either exponent is an integer constant.
	if inner, ok := base.(*Power); ok {
		if isIntConst(exp) || isIntConst(inner.exp) {
			return Pow(inner.base, Mul(inner.exp, exp))
		}
	}

	// (a*b)^n distributes over the factors for integer constant n, so
	// reciprocals of products normalize: (p*K^(-1))^(-1) = K*p^(-1).
	if pr, ok := base.(*Product); ok && isIntConst(exp) {
		out := make([]Expr, len(pr.factors))
		for i, f := range pr.factors {
			out[i] = Pow(f, exp)
		}
		return Mul(out...)
	}

	return &Power{base: base, exp: exp}
}

func isIntConst(e Expr) bool {
	n, ok := e.(*Number)
	return ok && n.IsInteger()
}

func (p *Power) Sub(name string, value Expr) Expr {
	return Pow(p.base.Sub(name, value), p.exp.Sub(name, value))
}

func (p *Power) Diff(name string) Expr {
	du := p.base.Diff(name)
	dv := p.exp.Diff(name)
	if isZero(dv) {
		// power rule with chain: v*u^(v-1)*u'
		return Mul(p.exp, Pow(p.base, Add(p.exp, Int(-1))), du)
	}
	if isZero(du) {
		// a^v: a^v * ln(a) * v'
		return Mul(Pow(p.base, p.exp), Ln(p.base), dv)
	}
	// general: u^v * (v'*ln(u) + v*u'/u)
	return Mul(Pow(p.base, p.exp),
		Add(Mul(dv, Ln(p.base)), Mul(p.exp, du, Pow(p.base, Int(-1)))))
}

func (p *Power) Equal(o Expr) bool {
	q, ok := o.(*Power)
	return ok && p.base.Equal(q.base) && p.exp.Equal(q.exp)
}

func (p *Power) String() string {
	base := p.base.String()
	switch p.base.(type) {
	case *Sum, *Product, *Power:
		base = "(" + base + ")"
	}
	exp := p.exp.String()
	if !atomicExp(p.exp) {
		exp = "(" + exp + ")"
	}
	return base + "^" + exp
}

func (p *Power) LaTeX() string {
	base := p.base.LaTeX()
	switch p.base.(type) {
	case *Sum, *Product, *Power:
		base = `\left(` + base + `\right)`
	}
	return base + "^{" + p.exp.LaTeX() + "}"
}

// atomicExp reports whether an exponent renders without parentheses:
// nonnegative integers and bare symbols only.
func atomicExp(e Expr) bool {
	switch v := e.(type) {
	case *Number:
		return v.IsInteger() && !v.IsNegative()
	case *Symbol:
		return true
	}
	return false
}
