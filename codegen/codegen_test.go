package codegen_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"popgrow/codegen"
	"popgrow/equiv"
	"popgrow/expr"
	"popgrow/ode"
)

func bind(t *testing.T, src string, p0 string) *ode.Particular {
	t.Helper()
	eq, err := expr.ParseEquation(src)
	require.NoError(t, err)
	g, err := ode.Solve(eq)
	require.NoError(t, err)
	p, err := ode.Bind(g, expr.Int(0), expr.Var(p0))
	require.NoError(t, err)
	return p
}

func TestFormula_DivisionRendering(t *testing.T) {
	e := expr.MustParse("K/(1 + c)")
	got := codegen.Formula(e)
	require.NotContains(t, got, "^(-1)")
	require.Contains(t, got, "/")
}

func TestFormula_RationalCoefficient(t *testing.T) {
	got := codegen.Formula(expr.MustParse("x/2"))
	require.Equal(t, "x/2", got)
}

func TestFormula_RoundTrips(t *testing.T) {
	cases := []string{
		"x0 + c*t",
		"p0*exp(alpha*t)",
		"K/(1 + ((K - p0)/p0)*exp(-r*t))",
		"3*x^2 - 1/2",
		"-r*t",
	}
	for _, src := range cases {
		e := expr.MustParse(src)
		formula := codegen.Formula(e)
		back, err := expr.Parse(formula)
		require.NoError(t, err, "formula %q does not parse", formula)
		res := equiv.Check(e, back)
		require.Equal(t, equiv.Equivalent, res.Status,
			"%q -> %q does not round-trip", src, formula)
	}
}

// A bound solution evaluated through the formula dialect at t = 0
// must give back the initial population.
func TestFormula_InitialConditionRoundTrip(t *testing.T) {
	for _, src := range []string{
		"df(t)/dt = c",
		"df(t)/dt = alpha*f(t)",
		"df(t)/dt = r*f(t)*(1 - f(t)/K)",
	} {
		p := bind(t, src, "p0")
		back, err := expr.Parse(codegen.Formula(p.Expr))
		require.NoError(t, err)
		got, err := expr.EvalAt(back, map[string]float64{
			"t": 0, "p0": 120, "c": 3, "alpha": 0.04, "r": 0.3, "K": 1000,
		})
		require.NoError(t, err)
		require.InDelta(t, 120, got, 1e-9, "equation %s", src)
	}
}

func TestGoSource_Exponential(t *testing.T) {
	p := bind(t, "df(t)/dt = alpha*f(t)", "p0")
	src := codegen.GoSource("growth", "Population", p)
	require.Contains(t, src, "package growth")
	require.Contains(t, src, `import "math"`)
	require.Contains(t, src, "func Population(t float64, alpha float64, p0 float64) float64")
	require.Contains(t, src, "math.Exp")
	require.Contains(t, src, "Code generated")
}

func TestGoSource_ConstantGrowthNeedsNoMathImport(t *testing.T) {
	p := bind(t, "df(t)/dt = c", "x0")
	src := codegen.GoSource("growth", "Population", p)
	require.NotContains(t, src, `"math"`)
	require.Contains(t, src, "func Population(t float64, c float64, x0 float64) float64")
}

func TestGoSource_LogisticMentionsAllParams(t *testing.T) {
	p := bind(t, "df(t)/dt = r*f(t)*(1 - f(t)/K)", "p0")
	src := codegen.GoSource("growth", "Population", p)
	for _, name := range []string{"K", "p0", "r"} {
		require.Contains(t, src, name+" float64")
	}
	// one statement, no stray NaN fallback
	require.False(t, strings.Contains(src, "math.NaN"), "unsupported node leaked:\n%s", src)
}

func TestGoExprValuesMatchEvalAt(t *testing.T) {
	// the Go text for p0*exp(alpha*t) is a fixed shape; spot-check it
	p := bind(t, "df(t)/dt = alpha*f(t)", "p0")
	src := codegen.GoSource("growth", "Population", p)
	require.Contains(t, src, "return (p0 * math.Exp((alpha * t)))")
	want := 120 * math.Exp(0.04*2)
	got, err := expr.EvalAt(p.Expr, map[string]float64{"t": 2, "p0": 120, "alpha": 0.04})
	require.NoError(t, err)
	require.InDelta(t, want, got, 1e-9)
}
