// Package equiv decides symbolic equivalence of expressions.
//
// The check is sound but incomplete: it normalizes the difference of
// the two expressions into a single expanded fraction and tests the
// numerator against zero. A zero numerator proves equivalence; a
// nonzero one proves nothing, so the verdict is Inconclusive, never
// "not equal".
package equiv

import "popgrow/expr"

// Status is the verdict of a check.
type Status int

const (
	Equivalent Status = iota
	Inconclusive
)

func (s Status) String() string {
	if s == Equivalent {
		return "equivalent"
	}
	return "inconclusive"
}

// Result carries the verdict and the residual that was tested. For an
// Equivalent verdict the residual is 0; otherwise it is the expanded
// numerator that failed to cancel, useful for diagnostics.
type Result struct {
	Status   Status
	Residual expr.Expr
}

// Check reports whether a and b are provably the same function of
// their free symbols.
func Check(a, b expr.Expr) Result {
	diff := expr.Add(a, expr.Neg(b)).Simplify()
	if isZero(diff) {
		return Result{Status: Equivalent, Residual: diff}
	}
	num, _ := expr.SplitQuotient(diff)
	num = expr.Expand(num)
	if isZero(num) {
		return Result{Status: Equivalent, Residual: num}
	}
	return Result{Status: Inconclusive, Residual: num}
}

// CheckEquation reports whether the two sides of an equation are
// provably the same.
func CheckEquation(eq expr.Equation) Result { return Check(eq.LHS, eq.RHS) }

func isZero(e expr.Expr) bool {
	n, ok := e.(*expr.Number)
	return ok && n.IsZero()
}
