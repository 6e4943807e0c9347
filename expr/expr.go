// Package expr implements the symbolic expression kernel for popgrow.
//
// Expressions are immutable trees built from exact rational constants
// (math/big.Rat), symbols, sums, products, powers, known function calls
// (exp, ln, sin, cos) and applications of unknown functions such as f(t).
// Every operation (simplification, substitution, differentiation)
// returns a new expression; nothing mutates in place.
//
// Simplification is deterministic: identical inputs always produce the
// same canonical form and the same String() output. Two expressions are
// Equal only when structurally identical; semantic equivalence is the
// business of the equiv package.
package expr

// Expr is the interface satisfied by every node kind.
type Expr interface {
	// Simplify returns the canonical form of the expression.
	Simplify() Expr
	// Sub replaces every occurrence of the named symbol with value.
	Sub(name string, value Expr) Expr
	// Diff differentiates with respect to the named symbol.
	Diff(name string) Expr
	// Equal reports structural equality.
	Equal(o Expr) bool

	String() string
	LaTeX() string

	// sortClass orders node kinds inside canonical products and sums.
	sortClass() int
}

// sort classes: numbers first, then symbols, powers, calls, the rest.
const (
	classNumber = iota
	classSymbol
	classPower
	classCall
	classOther
)

// Equation is an ordered pair of expressions asserting symbolic
// equality. It is never evaluated unless a solve or simplification
// routine is invoked on it.
type Equation struct {
	LHS, RHS Expr
}

// Eq builds an equation.
func Eq(lhs, rhs Expr) Equation { return Equation{LHS: lhs, RHS: rhs} }

func (e Equation) String() string { return e.LHS.String() + " = " + e.RHS.String() }
func (e Equation) LaTeX() string  { return e.LHS.LaTeX() + " = " + e.RHS.LaTeX() }

// Residual returns LHS - RHS, simplified. A residual of exactly 0 shows
// the equation holds identically.
func (e Equation) Residual() Expr {
	return Add(e.LHS, Mul(Int(-1), e.RHS)).Simplify()
}
