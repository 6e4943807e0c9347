package algebra_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"popgrow/algebra"
	"popgrow/expr"
)

func solveOne(t *testing.T, src, name string) expr.Expr {
	t.Helper()
	eq, err := expr.ParseEquation(src)
	require.NoError(t, err)
	roots := algebra.Solve(eq, name)
	require.Len(t, roots, 1, "expected a single root for %s", src)
	return roots[0]
}

func TestSolve_Linear(t *testing.T) {
	root := solveOne(t, "x + 2 = 5", "x")
	require.Equal(t, "3", root.String())
}

func TestSolve_LinearSymbolicCoefficients(t *testing.T) {
	root := solveOne(t, "a*x + b = 0", "x")
	require.Equal(t, "-b*a^(-1)", root.String())
}

func TestSolve_TargetOnRight(t *testing.T) {
	root := solveOne(t, "5 = x + 2", "x")
	require.Equal(t, "3", root.String())
}

func TestSolve_ThroughExp(t *testing.T) {
	// p0 = C*exp(0) style binding reduces before it gets here, so
	// exercise a live exponent instead.
	root := solveOne(t, "exp(x) = a", "x")
	require.Equal(t, "ln(a)", root.String())
}

func TestSolve_ThroughReciprocal(t *testing.T) {
	eq, err := expr.ParseEquation("p0 = K/(1 + c)")
	require.NoError(t, err)
	roots := algebra.Solve(eq, "c")
	require.Len(t, roots, 1)
	require.Equal(t, "K*p0^(-1) - 1", roots[0].String())
}

func TestSolve_EvenPowerYieldsTwoRoots(t *testing.T) {
	eq, err := expr.ParseEquation("x^2 = 9")
	require.NoError(t, err)
	roots := algebra.Solve(eq, "x")
	require.Len(t, roots, 2)
	// principal root first
	require.Equal(t, "3", roots[0].String())
	require.Equal(t, "-3", roots[1].String())
}

func TestSolve_QuadraticExact(t *testing.T) {
	eq, err := expr.ParseEquation("x^2 - 5*x + 6 = 0")
	require.NoError(t, err)
	roots := algebra.Solve(eq, "x")
	require.Len(t, roots, 2)
	require.Equal(t, "3", roots[0].String())
	require.Equal(t, "2", roots[1].String())
}

func TestSolve_EvenPowerNegativeRHS(t *testing.T) {
	// x^2 = -4 has no real root; the isolation path must not invent
	// (-4)^(1/2) candidates.
	eq, err := expr.ParseEquation("x^2 = -4")
	require.NoError(t, err)
	require.Empty(t, algebra.Solve(eq, "x"))
}

func TestSolve_QuadraticNegativeDiscriminant(t *testing.T) {
	eq, err := expr.ParseEquation("x^2 + 1 = 0")
	require.NoError(t, err)
	require.Empty(t, algebra.Solve(eq, "x"))
}

func TestSolve_NoOccurrence(t *testing.T) {
	eq, err := expr.ParseEquation("a = b")
	require.NoError(t, err)
	require.Empty(t, algebra.Solve(eq, "x"))
}

func TestSolve_NotSolvable(t *testing.T) {
	// target both inside and outside a transcendental: out of scope
	eq, err := expr.ParseEquation("x + exp(x) = 1")
	require.NoError(t, err)
	require.Empty(t, algebra.Solve(eq, "x"))
}
