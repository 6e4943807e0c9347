package model_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"popgrow/model"
	"popgrow/ode"
)

func TestBuiltin_HasThreeModels(t *testing.T) {
	c := model.Builtin()
	for _, name := range []string{"constant", "exponential", "logistic"} {
		m, err := c.Find(name)
		require.NoError(t, err)
		require.NotEmpty(t, m.Equation)
		require.NotEmpty(t, m.Initial)
	}
}

func TestBuiltin_AllSolvable(t *testing.T) {
	for _, m := range model.Builtin().Models {
		eq, err := m.ParseEquation()
		require.NoError(t, err, m.Name)
		_, err = ode.Solve(eq)
		require.NoError(t, err, "builtin %s must have a closed form", m.Name)
	}
}

func TestDefaults_IncludeInitial(t *testing.T) {
	m, err := model.Builtin().Find("logistic")
	require.NoError(t, err)
	d := m.Defaults()
	require.Equal(t, 0.5, d["r"])
	require.Equal(t, 1000.0, d["K"])
	require.Equal(t, 10.0, d["p0"])
}

func TestGrowth_CustomFunctionName(t *testing.T) {
	// A user model may call its function anything; simulation must pick
	// the names up from the derivative node, not assume f and t.
	m := model.Model{
		Name:     "decay",
		Equation: "dp(s)/ds = -lambda*p(s)",
		Initial:  "n0",
	}
	rhs, fn, ivar, err := m.Growth()
	require.NoError(t, err)
	require.Equal(t, "p", fn)
	require.Equal(t, "s", ivar)
	require.Equal(t, "-lambda*p(s)", rhs.String())
}

func TestGrowth_DerivativeOnRight(t *testing.T) {
	m := model.Model{Name: "flipped", Equation: "c = df(t)/dt", Initial: "x0"}
	rhs, fn, ivar, err := m.Growth()
	require.NoError(t, err)
	require.Equal(t, "f", fn)
	require.Equal(t, "t", ivar)
	require.Equal(t, "c", rhs.String())
}

func TestGrowth_NoDerivative(t *testing.T) {
	m := model.Model{Name: "static", Equation: "f(t) = c", Initial: "x0"}
	_, _, _, err := m.Growth()
	require.Error(t, err)
}

func TestFind_Unknown(t *testing.T) {
	_, err := model.Builtin().Find("gompertz")
	require.Error(t, err)
}

func TestLoad_UserCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "models.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
models:
  - name: doubling
    equation: df(t)/dt = f(t)
    initial: p0
    initial_default: 1
`), 0o644))
	c, err := model.Load(path)
	require.NoError(t, err)
	m, err := c.Find("doubling")
	require.NoError(t, err)
	require.Equal(t, 1.0, m.Defaults()["p0"])
}

func TestLoad_RejectsBadEquation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "models.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
models:
  - name: broken
    equation: df(t)/dt = = 2
    initial: p0
`), 0o644))
	_, err := model.Load(path)
	require.Error(t, err)
}

func TestLoad_RejectsDuplicates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "models.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
models:
  - name: x
    equation: df(t)/dt = c
    initial: p0
  - name: x
    equation: df(t)/dt = c
    initial: p0
`), 0o644))
	_, err := model.Load(path)
	require.Error(t, err)
}

func TestMerge_UserOverridesBuiltin(t *testing.T) {
	user := model.Catalog{Models: []model.Model{{
		Name:     "logistic",
		Equation: "df(t)/dt = r*f(t)*(1 - f(t)/K)",
		Initial:  "p0",
	}, {
		Name:     "custom",
		Equation: "df(t)/dt = c",
		Initial:  "x0",
	}}}
	merged := model.Builtin().Merge(user)
	require.Len(t, merged.Models, 4)
	m, err := merged.Find("logistic")
	require.NoError(t, err)
	require.Empty(t, m.Params, "override should have replaced the builtin")
}
