package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"popgrow/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, "exponential", cfg.DefaultModel)
	require.Equal(t, "pretty", cfg.Output.Format)
	require.Equal(t, "rk4", cfg.Sim.Method)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "popgrow.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
default_model = "logistic"

[output]
format = "plain"

[sim]
method = "euler"
step = 0.5
steps = 20
`), 0o644))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "logistic", cfg.DefaultModel)
	require.Equal(t, "plain", cfg.Output.Format)
	require.Equal(t, "euler", cfg.Sim.Method)
	require.Equal(t, 0.5, cfg.Sim.Step)
	require.Equal(t, 20, cfg.Sim.Steps)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "popgrow.toml")
	require.NoError(t, os.WriteFile(path, []byte(`default_model = "constant"`), 0o644))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "constant", cfg.DefaultModel)
	require.Equal(t, "pretty", cfg.Output.Format)
	require.Equal(t, 100, cfg.Sim.Steps)
}

func TestLoad_RejectsBadFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "popgrow.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[output]
format = "html"
`), 0o644))
	_, err := config.Load(path)
	require.Error(t, err)
}

func TestLoad_RejectsBadStep(t *testing.T) {
	path := filepath.Join(t.TempDir(), "popgrow.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[sim]
method = "rk4"
step = -1.0
steps = 10
`), 0o644))
	_, err := config.Load(path)
	require.Error(t, err)
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}
