package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"popgrow"
	"popgrow/expr"
	"popgrow/internal/config"
)

func newDeriveTestCmd() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().String("model", "", "")
	cmd.Flags().String("initial", "", "")
	return cmd
}

func TestResolveEquation_Explicit(t *testing.T) {
	cmd := newDeriveTestCmd()
	eq, initial, err := resolveEquation(cmd, config.Default(), []string{"df(t)/dt = c"})
	require.NoError(t, err)
	assert.Equal(t, "df(t)/dt = c", eq)
	assert.Equal(t, "p0", initial)
}

func TestResolveEquation_Model(t *testing.T) {
	cmd := newDeriveTestCmd()
	require.NoError(t, cmd.Flags().Set("model", "exponential"))
	eq, initial, err := resolveEquation(cmd, config.Default(), nil)
	require.NoError(t, err)
	assert.Contains(t, eq, "df(t)/dt")
	assert.Equal(t, "p0", initial)
}

func TestResolveEquation_UnknownModel(t *testing.T) {
	cmd := newDeriveTestCmd()
	require.NoError(t, cmd.Flags().Set("model", "gompertz"))
	_, _, err := resolveEquation(cmd, config.Default(), nil)
	assert.Error(t, err)
}

func TestResolveEquation_NoInput(t *testing.T) {
	cmd := newDeriveTestCmd()
	_, _, err := resolveEquation(cmd, config.Default(), nil)
	assert.Error(t, err)
}

func TestPlainDerivation(t *testing.T) {
	d, err := popgrow.Derive("df(t)/dt = alpha*f(t)", expr.Int(0), expr.Var("p0"))
	require.NoError(t, err)
	out := plainDerivation(d)
	assert.Contains(t, out, "class:    linear")
	assert.Contains(t, out, "solution: f(t) = p0*exp(alpha*t)")
}
