package expr

// PolyCoeffs views e as a polynomial in the named symbol and returns
// its coefficients by degree. The second result is false when e is not
// polynomial in that symbol (the symbol appears inside a function, a
// non-integer power, or a denominator).
func PolyCoeffs(e Expr, name string) (map[int]Expr, bool) {
	out := map[int]Expr{}
	if !polyCollect(e.Simplify(), name, out) {
		return nil, false
	}
	for d, c := range out {
		out[d] = c.Simplify()
	}
	return out, true
}

func polyCollect(e Expr, name string, out map[int]Expr) bool {
	if s, ok := e.(*Sum); ok {
		for _, t := range s.terms {
			if !polyCollect(t, name, out) {
				return false
			}
		}
		return true
	}
	deg, coeff, ok := monomial(e, name)
	if !ok {
		return false
	}
	if prev, exists := out[deg]; exists {
		out[deg] = Add(prev, coeff)
	} else {
		out[deg] = coeff
	}
	return true
}

// monomial splits a single term into (degree, coefficient) with
// respect to name.
func monomial(e Expr, name string) (int, Expr, bool) {
	switch v := e.(type) {
	case *Symbol:
		if v.name == name {
			return 1, Int(1), true
		}
		return 0, v, true
	case *Power:
		if s, ok := v.base.(*Symbol); ok && s.name == name {
			n, ok := v.exp.(*Number)
			if !ok || !n.IsInteger() || n.IsNegative() {
				return 0, nil, false
			}
			return int(n.val.Num().Int64()), Int(1), true
		}
		if ContainsSymbol(v, name) {
			return 0, nil, false
		}
		return 0, v, true
	case *Product:
		deg := 0
		coeff := make([]Expr, 0, len(v.factors))
		for _, f := range v.factors {
			d, c, ok := monomial(f, name)
			if !ok {
				return 0, nil, false
			}
			deg += d
			coeff = append(coeff, c)
		}
		return deg, Mul(coeff...), true
	}
	if ContainsSymbol(e, name) {
		return 0, nil, false
	}
	return 0, e, true
}

// PolyDegree returns the degree of e in name, treating absent
// coefficients and a zero polynomial as degree 0.
func PolyDegree(coeffs map[int]Expr) int {
	deg := 0
	for d, c := range coeffs {
		if d > deg && !isZero(c) {
			deg = d
		}
	}
	return deg
}
