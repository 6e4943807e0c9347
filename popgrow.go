// Package popgrow derives population growth formulas symbolically.
//
// The pipeline starts from a growth law such as df(t)/dt = alpha*f(t),
// solves it in closed form with one integration constant, binds the
// constant from an initial condition, and hands back exact expressions
// throughout. Subpackages cover the expression kernel (expr), equation
// solving (algebra, ode), equivalence checking (equiv), code emission
// (codegen), numeric simulation (sim) and the model catalog (model).
package popgrow

import (
	"fmt"

	"popgrow/expr"
	"popgrow/model"
	"popgrow/ode"
)

// Version is stamped at build time.
var Version = "dev"

// Derivation is the full record of one derivation run.
type Derivation struct {
	Input      expr.Equation
	General    *ode.GeneralSolution
	Particular *ode.Particular
}

// Derive solves the growth equation in src and binds the integration
// constant with the initial condition f(t0) = p0.
func Derive(src string, t0, p0 expr.Expr) (*Derivation, error) {
	eq, err := expr.ParseEquation(src)
	if err != nil {
		return nil, fmt.Errorf("parsing equation: %w", err)
	}
	g, err := ode.Solve(eq)
	if err != nil {
		return nil, err
	}
	p, err := ode.Bind(g, t0, p0)
	if err != nil {
		return nil, err
	}
	return &Derivation{Input: eq, General: g, Particular: p}, nil
}

// DeriveGeneral solves the growth equation without binding an initial
// condition.
func DeriveGeneral(src string) (*Derivation, error) {
	eq, err := expr.ParseEquation(src)
	if err != nil {
		return nil, fmt.Errorf("parsing equation: %w", err)
	}
	g, err := ode.Solve(eq)
	if err != nil {
		return nil, err
	}
	return &Derivation{Input: eq, General: g}, nil
}

// DeriveModel derives a catalog model, binding at t = 0 with the
// model's initial-population symbol.
func DeriveModel(m *model.Model) (*Derivation, error) {
	if m.Initial == "" {
		return nil, fmt.Errorf("model %s has no initial-condition symbol", m.Name)
	}
	return Derive(m.Equation, expr.Int(0), expr.Var(m.Initial))
}
