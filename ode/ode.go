// Package ode derives closed-form solutions for first-order ordinary
// differential equations of population growth: constant growth,
// linear (exponential) growth, and the quadratic right-hand sides that
// cover logistic growth.
//
// Solve classifies dp/dt = rhs by viewing rhs as a polynomial in p and
// pattern matching on the degree. Anything outside the supported
// shapes, including time-dependent right-hand sides, reports
// ErrNoClosedForm rather than guessing.
package ode

import (
	"errors"
	"fmt"

	"popgrow/algebra"
	"popgrow/expr"
)

var (
	// ErrNoClosedForm marks equations outside the solvable classes.
	ErrNoClosedForm = errors.New("no closed-form solution for this equation")
	// ErrNoConstant marks a general solution with no integration
	// constant left to bind.
	ErrNoConstant = errors.New("general solution has no integration constant")
)

// Class names the recognized equation shape.
type Class string

const (
	ClassConstant      Class = "constant"
	ClassLinear        Class = "linear"
	ClassLogistic      Class = "logistic"
	ClassPureQuadratic Class = "quadratic"
)

// GeneralSolution is a solved equation p(t) = RHS with one free
// integration constant.
type GeneralSolution struct {
	Fn       string // the unknown function, e.g. "p"
	Var      string // the independent variable, e.g. "t"
	Constant string // the integration constant symbol, e.g. "C1"
	Class    Class
	RHS      expr.Expr
}

// Equation renders the solution as fn(var) = rhs.
func (g *GeneralSolution) Equation() expr.Equation {
	return expr.Eq(expr.Fn(g.Fn, expr.Var(g.Var)), g.RHS)
}

func (g *GeneralSolution) String() string { return g.Equation().String() }

// Particular is a general solution with the constant bound by an
// initial condition.
type Particular struct {
	Fn  string
	Var string
	// Expr is p(t) with the constant substituted.
	Expr expr.Expr
	// Constant is the bound value of the integration constant.
	Constant expr.Expr
	// Alternates holds further constant candidates when the binding
	// equation had several roots; Expr uses the first.
	Alternates []expr.Expr
}

func (p *Particular) String() string {
	return expr.Eq(expr.Fn(p.Fn, expr.Var(p.Var)), p.Expr).String()
}

// Solve derives the general solution of a first-order equation
// dp/dt = rhs. The left side must be a first derivative of a single
// unknown function; the right side may mention that function and free
// parameter symbols, but not the independent variable (except in the
// degree-zero case, where rhs is any constant expression).
func Solve(eq expr.Equation) (*GeneralSolution, error) {
	d, rhs, err := normalize(eq)
	if err != nil {
		return nil, err
	}
	fn := d.Fn().FuncName()
	ivar := d.Wrt()

	// Replace f(t) with a plain symbol so rhs can be analyzed as a
	// polynomial in the population.
	ph := placeholder(fn, rhs)
	flat := expr.Expand(expr.ReplaceFunc(rhs, fn, expr.Var(ph)))
	if others := expr.UnknownFuncs(flat); len(others) > 0 {
		return nil, fmt.Errorf("%w: unknown functions on the right-hand side", ErrNoClosedForm)
	}
	if expr.ContainsSymbol(flat, ivar) {
		return nil, fmt.Errorf("%w: time-dependent right-hand side", ErrNoClosedForm)
	}

	coeffs, ok := expr.PolyCoeffs(flat, ph)
	if !ok {
		return nil, fmt.Errorf("%w: right-hand side is not polynomial in %s", ErrNoClosedForm, fn)
	}
	deg := expr.PolyDegree(coeffs)
	at := func(d int) expr.Expr {
		if c, ok := coeffs[d]; ok {
			return c
		}
		return expr.Int(0)
	}

	cname := constantName(rhs)
	C := expr.Var(cname)
	t := expr.Var(ivar)

	g := &GeneralSolution{Fn: fn, Var: ivar, Constant: cname}
	switch deg {
	case 0:
		// dp/dt = b: straight line through C1
		g.Class = ClassConstant
		g.RHS = expr.Add(C, expr.Mul(at(0), t)).Simplify()
	case 1:
		// dp/dt = a*p + b: C1*exp(a*t) - b/a
		a, b := at(1), at(0)
		g.Class = ClassLinear
		g.RHS = expr.Add(
			expr.Mul(C, expr.Exp(expr.Mul(a, t))),
			expr.Neg(expr.Div(b, a)),
		).Simplify()
	case 2:
		if !isZeroExpr(at(0)) {
			return nil, fmt.Errorf("%w: quadratic with a constant term (Riccati)", ErrNoClosedForm)
		}
		a, b := at(1), at(2)
		if isZeroExpr(a) {
			// dp/dt = b*p^2: -1/(b*t + C1)
			g.Class = ClassPureQuadratic
			g.RHS = expr.Neg(expr.Pow(expr.Add(expr.Mul(b, t), C), expr.Int(-1))).Simplify()
		} else {
			// dp/dt = a*p + b*p^2, via u = 1/p:
			// p(t) = 1/(C1*exp(-a*t) - b/a)
			g.Class = ClassLogistic
			g.RHS = expr.Pow(expr.Add(
				expr.Mul(C, expr.Exp(expr.Neg(expr.Mul(a, t)))),
				expr.Neg(expr.Div(b, a)),
			), expr.Int(-1)).Simplify()
		}
	default:
		return nil, fmt.Errorf("%w: degree %d right-hand side", ErrNoClosedForm, deg)
	}
	return g, nil
}

// Bind fixes the integration constant from the initial condition
// p(t0) = p0. When the constant equation has several roots the first
// is used and the rest are reported as alternates.
func Bind(g *GeneralSolution, t0, p0 expr.Expr) (*Particular, error) {
	if !expr.ContainsSymbol(g.RHS, g.Constant) {
		return nil, ErrNoConstant
	}
	at0 := g.RHS.Sub(g.Var, t0).Simplify()
	roots := algebra.Solve(expr.Eq(p0, at0), g.Constant)
	if len(roots) == 0 {
		return nil, fmt.Errorf("cannot determine %s from %s(%s) = %s", g.Constant, g.Fn, t0, p0)
	}
	p := &Particular{
		Fn:       g.Fn,
		Var:      g.Var,
		Expr:     g.RHS.Sub(g.Constant, roots[0]).Simplify(),
		Constant: roots[0],
	}
	if len(roots) > 1 {
		p.Alternates = roots[1:]
	}
	return p, nil
}

// normalize orients the equation so the derivative is alone on the
// left.
func normalize(eq expr.Equation) (*expr.Deriv, expr.Expr, error) {
	if d, ok := eq.LHS.(*expr.Deriv); ok {
		return checkDeriv(d, eq.RHS)
	}
	if d, ok := eq.RHS.(*expr.Deriv); ok {
		return checkDeriv(d, eq.LHS)
	}
	return nil, nil, fmt.Errorf("%w: left-hand side is not a first derivative", ErrNoClosedForm)
}

func checkDeriv(d *expr.Deriv, rhs expr.Expr) (*expr.Deriv, expr.Expr, error) {
	if d.Order() != 1 {
		return nil, nil, fmt.Errorf("%w: order %d derivative", ErrNoClosedForm, d.Order())
	}
	arg, ok := d.Fn().Arg().(*expr.Symbol)
	if !ok || arg.Name() != d.Wrt() {
		return nil, nil, fmt.Errorf("%w: derivative argument must be the independent variable", ErrNoClosedForm)
	}
	return d, rhs.Simplify(), nil
}

// placeholder picks a symbol name for the unknown function that does
// not collide with any free symbol of rhs.
func placeholder(fn string, rhs expr.Expr) string {
	name := fn
	for expr.ContainsSymbol(rhs, name) {
		name += "_"
	}
	return name
}

// constantName picks the first Cn not already used in rhs.
func constantName(rhs expr.Expr) string {
	for i := 1; ; i++ {
		name := fmt.Sprintf("C%d", i)
		if !expr.ContainsSymbol(rhs, name) {
			return name
		}
	}
}

func isZeroExpr(e expr.Expr) bool {
	n, ok := e.Simplify().(*expr.Number)
	return ok && n.IsZero()
}
