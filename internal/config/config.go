// Package config loads popgrow's TOML configuration. Settings come
// from an explicit --config path, a popgrow.toml in the working
// directory, or $XDG_CONFIG_HOME/popgrow/popgrow.toml, first match
// wins; missing files fall back to defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the full popgrow configuration.
type Config struct {
	// DefaultModel is used by commands when no model or equation is
	// given.
	DefaultModel string `toml:"default_model"`

	// Catalog is the path of a user model catalog merged over the
	// builtins.
	Catalog string `toml:"catalog,omitempty"`

	Output OutputConfig `toml:"output"`
	Sim    SimConfig    `toml:"sim"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	// Format is "pretty" (markdown through the terminal renderer),
	// "plain" or "latex".
	Format string `toml:"format"`

	// Color forces colored output on or off; empty means auto.
	Color string `toml:"color,omitempty"`
}

// SimConfig holds simulation defaults.
type SimConfig struct {
	Method string  `toml:"method"`
	Step   float64 `toml:"step"`
	Steps  int     `toml:"steps"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DefaultModel: "exponential",
		Output:       OutputConfig{Format: "pretty"},
		Sim:          SimConfig{Method: "rk4", Step: 0.1, Steps: 100},
	}
}

// Load reads the configuration from path, or from the standard
// locations when path is empty.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = find()
		if path == "" {
			return cfg, nil
		}
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("loading config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Output.Format {
	case "pretty", "plain", "latex":
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	switch c.Sim.Method {
	case "rk4", "euler", "difference":
	default:
		return fmt.Errorf("unknown sim method %q", c.Sim.Method)
	}
	if c.Sim.Step <= 0 {
		return fmt.Errorf("sim step must be positive, got %g", c.Sim.Step)
	}
	if c.Sim.Steps <= 0 {
		return fmt.Errorf("sim steps must be positive, got %d", c.Sim.Steps)
	}
	return nil
}

// find returns the first config file present in the search path.
func find() string {
	if _, err := os.Stat("popgrow.toml"); err == nil {
		return "popgrow.toml"
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	p := filepath.Join(base, "popgrow", "popgrow.toml")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}
