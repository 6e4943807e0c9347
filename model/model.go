// Package model maintains the catalog of growth models: the built-in
// constant, exponential and logistic laws, plus user-defined models
// loaded from YAML files. A model pairs a growth equation with its
// parameter descriptions and default values.
package model

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"popgrow/expr"
)

// Param describes one free parameter of a growth equation.
type Param struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	Default     float64 `yaml:"default"`
}

// Model is one catalog entry.
type Model struct {
	Name           string  `yaml:"name"`
	Description    string  `yaml:"description,omitempty"`
	Equation       string  `yaml:"equation"`
	Initial        string  `yaml:"initial"`
	InitialDefault float64 `yaml:"initial_default"`
	Params         []Param `yaml:"params,omitempty"`
}

// ParseEquation parses the model's growth law.
func (m *Model) ParseEquation() (expr.Equation, error) {
	eq, err := expr.ParseEquation(m.Equation)
	if err != nil {
		return expr.Equation{}, fmt.Errorf("model %s: %w", m.Name, err)
	}
	return eq, nil
}

// Growth returns the numeric view of the model's law: the growth-rate
// expression with the function and time-variable names taken from the
// derivative side of the equation, whichever side that is.
func (m *Model) Growth() (expr.Expr, string, string, error) {
	eq, err := m.ParseEquation()
	if err != nil {
		return nil, "", "", err
	}
	side, rate := eq.LHS, eq.RHS
	if _, ok := eq.RHS.(*expr.Deriv); ok {
		side, rate = eq.RHS, eq.LHS
	}
	d, ok := side.(*expr.Deriv)
	if !ok {
		return nil, "", "", fmt.Errorf("model %s: no derivative in %q", m.Name, m.Equation)
	}
	return rate, d.Fn().FuncName(), d.Wrt(), nil
}

// Defaults returns the default parameter bindings, including the
// initial population.
func (m *Model) Defaults() map[string]float64 {
	out := make(map[string]float64, len(m.Params)+1)
	for _, p := range m.Params {
		out[p.Name] = p.Default
	}
	if m.Initial != "" {
		out[m.Initial] = m.InitialDefault
	}
	return out
}

// Catalog is an ordered collection of models.
type Catalog struct {
	Models []Model `yaml:"models"`
}

// Find returns the named model.
func (c Catalog) Find(name string) (*Model, error) {
	for i := range c.Models {
		if c.Models[i].Name == name {
			return &c.Models[i], nil
		}
	}
	return nil, fmt.Errorf("unknown model %q", name)
}

// Merge appends other's models, with same-name entries in other
// replacing earlier ones.
func (c Catalog) Merge(other Catalog) Catalog {
	out := Catalog{Models: append([]Model(nil), c.Models...)}
next:
	for _, m := range other.Models {
		for i := range out.Models {
			if out.Models[i].Name == m.Name {
				out.Models[i] = m
				continue next
			}
		}
		out.Models = append(out.Models, m)
	}
	return out
}

//go:embed builtin.yaml
var builtinYAML []byte

// Builtin returns the embedded model catalog.
func Builtin() Catalog {
	c, err := parse(builtinYAML)
	if err != nil {
		panic(fmt.Sprintf("builtin catalog: %v", err))
	}
	return c
}

// Load reads a catalog from a YAML file and validates it.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, err
	}
	return parse(data)
}

func parse(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("parsing catalog: %w", err)
	}
	seen := map[string]struct{}{}
	for i := range c.Models {
		m := &c.Models[i]
		if m.Name == "" {
			return Catalog{}, fmt.Errorf("model %d has no name", i)
		}
		if _, dup := seen[m.Name]; dup {
			return Catalog{}, fmt.Errorf("duplicate model %q", m.Name)
		}
		seen[m.Name] = struct{}{}
		if _, err := m.ParseEquation(); err != nil {
			return Catalog{}, err
		}
	}
	return c, nil
}
