package sim_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"popgrow/expr"
	"popgrow/sim"
)

func exponentialRHS(t *testing.T) sim.RHS {
	t.Helper()
	eq, err := expr.ParseEquation("df(t)/dt = alpha*f(t)")
	require.NoError(t, err)
	return sim.CompileRHS(eq.RHS, "f", "t", map[string]float64{"alpha": 0.1})
}

func TestDifference_UnitSteps(t *testing.T) {
	f := exponentialRHS(t)
	pts, err := sim.Difference(f, 100, 3)
	require.NoError(t, err)
	require.Len(t, pts, 4)
	// p[n+1] = p[n] * 1.1 for the exponential law
	require.InDelta(t, 110, pts[1].P, 1e-9)
	require.InDelta(t, 121, pts[2].P, 1e-9)
	require.InDelta(t, 133.1, pts[3].P, 1e-9)
}

func TestEuler_ConvergesRoughly(t *testing.T) {
	f := exponentialRHS(t)
	pts, err := sim.Euler(f, 0, 100, 0.01, 1000)
	require.NoError(t, err)
	last := pts[len(pts)-1]
	require.InDelta(t, 10, last.T, 1e-9)
	exact := 100 * math.Exp(0.1*10)
	// first order: percent-level agreement at this step size
	require.InDelta(t, exact, last.P, exact*0.01)
}

func TestRK4_MatchesExactClosely(t *testing.T) {
	f := exponentialRHS(t)
	pts, err := sim.RK4(f, 0, 100, 0.1, 100)
	require.NoError(t, err)
	last := pts[len(pts)-1]
	exact := 100 * math.Exp(0.1*10)
	require.InDelta(t, exact, last.P, 1e-6)
}

func TestRK4_LogisticApproachesCarryingCapacity(t *testing.T) {
	eq, err := expr.ParseEquation("df(t)/dt = r*f(t)*(1 - f(t)/K)")
	require.NoError(t, err)
	f := sim.CompileRHS(eq.RHS, "f", "t", map[string]float64{"r": 0.5, "K": 1000})
	pts, err := sim.RK4(f, 0, 10, 0.1, 400)
	require.NoError(t, err)
	last := pts[len(pts)-1]
	require.InDelta(t, 1000, last.P, 1e-3)
}

func TestRK4_AgreesWithSymbolicSolution(t *testing.T) {
	eq, err := expr.ParseEquation("df(t)/dt = r*f(t)*(1 - f(t)/K)")
	require.NoError(t, err)
	params := map[string]float64{"r": 0.3, "K": 500}
	f := sim.CompileRHS(eq.RHS, "f", "t", params)
	pts, err := sim.RK4(f, 0, 50, 0.05, 200)
	require.NoError(t, err)

	closed := expr.MustParse("K/(1 + ((K - p0)/p0)*exp(-r*t))")
	params["p0"] = 50
	at := sim.CompileSolution(closed, "t", params)
	for _, pt := range []sim.Point{pts[40], pts[120], pts[200]} {
		want, err := at(pt.T)
		require.NoError(t, err)
		require.InDelta(t, want, pt.P, math.Abs(want)*1e-6)
	}
}

func TestEuler_RejectsBadStep(t *testing.T) {
	f := exponentialRHS(t)
	_, err := sim.Euler(f, 0, 100, 0, 10)
	require.Error(t, err)
	_, err = sim.RK4(f, 0, 100, -1, 10)
	require.Error(t, err)
}

func TestCompileRHS_UnboundParam(t *testing.T) {
	eq, err := expr.ParseEquation("df(t)/dt = alpha*f(t)")
	require.NoError(t, err)
	f := sim.CompileRHS(eq.RHS, "f", "t", nil)
	_, err = f(0, 100)
	require.Error(t, err)
}
