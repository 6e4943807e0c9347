// Package algebra solves equations for a chosen symbol.
//
// Solve works by isolation: it peels sums, products, powers and the
// invertible functions exp and ln off the side holding the target
// symbol. When the target cannot be isolated structurally the equation
// is retried as a polynomial of degree one or two, solved exactly. An
// equation with an even power yields two candidate roots, principal
// root first; callers that need a single answer take the first and may
// inspect the rest.
package algebra

import (
	"popgrow/expr"
)

// maxPeel bounds isolation so malformed trees cannot loop.
const maxPeel = 64

// Solve returns the solutions of eq for the named symbol, simplified.
// An empty slice means no solution was found; it never means the
// equation was proven unsolvable.
func Solve(eq expr.Equation, name string) []expr.Expr {
	roots := isolate(eq.LHS.Simplify(), eq.RHS.Simplify(), name, maxPeel)
	if roots == nil {
		roots = polynomial(eq.Residual(), name)
	}
	return dedup(roots)
}

// isolate peels structure off lhs until it is the bare target symbol.
// Returns nil when the shape is not invertible; the polynomial path
// then gets its turn.
func isolate(lhs, rhs expr.Expr, name string, depth int) []expr.Expr {
	if depth == 0 {
		return nil
	}
	lin := expr.ContainsSymbol(lhs, name)
	rin := expr.ContainsSymbol(rhs, name)
	switch {
	case lin && rin:
		return nil
	case !lin && rin:
		lhs, rhs = rhs, lhs
	case !lin && !rin:
		return nil
	}

	switch v := lhs.(type) {
	case *expr.Symbol:
		return []expr.Expr{rhs.Simplify()}
	case *expr.Sum:
		keep, move := partition(v.Terms(), name)
		if len(keep) == 0 || len(keep) == len(v.Terms()) {
			return nil
		}
		return isolate(expr.Add(keep...), expr.Add(rhs, expr.Neg(expr.Add(move...))), name, depth-1)
	case *expr.Product:
		keep, move := partition(v.Factors(), name)
		if len(keep) != 1 {
			return nil
		}
		return isolate(keep[0], expr.Div(rhs, expr.Mul(move...)), name, depth-1)
	case *expr.Power:
		if expr.ContainsSymbol(v.Exp(), name) {
			return nil
		}
		n, ok := v.Exp().(*expr.Number)
		if !ok || !n.IsInteger() {
			return nil
		}
		k := n.Rat().Num().Int64()
		switch {
		case k == -1:
			return isolate(v.Base(), expr.Pow(rhs, expr.Int(-1)), name, depth-1)
		case k%2 == 0:
			// even power: two candidate roots, principal first. A
			// negative constant on the other side has no real root.
			if n, ok := rhs.Simplify().(*expr.Number); ok && n.IsNegative() {
				return nil
			}
			principal := expr.Pow(rhs, expr.Rat(1, k))
			pos := isolate(v.Base(), principal, name, depth-1)
			neg := isolate(v.Base(), expr.Neg(principal), name, depth-1)
			if pos == nil || neg == nil {
				return nil
			}
			return append(pos, neg...)
		default:
			return isolate(v.Base(), expr.Pow(rhs, expr.Rat(1, k)), name, depth-1)
		}
	case *expr.Call:
		switch v.FuncName() {
		case "exp":
			return isolate(v.Arg(), expr.Ln(rhs), name, depth-1)
		case "ln":
			return isolate(v.Arg(), expr.Exp(rhs), name, depth-1)
		}
	}
	return nil
}

// partition splits children into those containing the target and the
// rest.
func partition(es []expr.Expr, name string) (with, without []expr.Expr) {
	for _, e := range es {
		if expr.ContainsSymbol(e, name) {
			with = append(with, e)
		} else {
			without = append(without, e)
		}
	}
	return with, without
}

// polynomial solves residual == 0 as a degree <= 2 polynomial in name.
func polynomial(residual expr.Expr, name string) []expr.Expr {
	coeffs, ok := expr.PolyCoeffs(residual, name)
	if !ok {
		return nil
	}
	at := func(d int) expr.Expr {
		if c, ok := coeffs[d]; ok {
			return c
		}
		return expr.Int(0)
	}
	switch expr.PolyDegree(coeffs) {
	case 1:
		// c1*x + c0 = 0
		return []expr.Expr{expr.Div(expr.Neg(at(0)), at(1)).Simplify()}
	case 2:
		c0, c1, c2 := at(0), at(1), at(2)
		disc := expr.Add(expr.Pow(c1, expr.Int(2)),
			expr.Neg(expr.Mul(expr.Int(4), c0, c2))).Simplify()
		if n, ok := disc.(*expr.Number); ok && n.IsNegative() {
			return nil
		}
		root := expr.Sqrt(disc)
		twoA := expr.Mul(expr.Int(2), c2)
		plus := expr.Div(expr.Add(expr.Neg(c1), root), twoA).Simplify()
		minus := expr.Div(expr.Add(expr.Neg(c1), expr.Neg(root)), twoA).Simplify()
		if plus.Equal(minus) {
			return []expr.Expr{plus}
		}
		return []expr.Expr{plus, minus}
	}
	return nil
}

func dedup(roots []expr.Expr) []expr.Expr {
	seen := map[string]struct{}{}
	out := roots[:0]
	for _, r := range roots {
		k := r.String()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}
