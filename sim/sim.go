// Package sim evaluates population models numerically: the discrete
// difference-equation reading of a growth law, and Euler and
// fourth-order Runge-Kutta integration of its continuous reading.
// It exists to cross-check symbolic solutions against step-by-step
// trajectories.
package sim

import (
	"fmt"

	"popgrow/expr"
)

// RHS is the numeric right-hand side of dp/dt = f(t, p).
type RHS func(t, p float64) (float64, error)

// Point is one sample of a trajectory.
type Point struct {
	T float64 `json:"t"`
	P float64 `json:"p"`
}

// CompileRHS turns the symbolic right-hand side of an equation like
// df(t)/dt = r*f(t) into a numeric function. fn names the unknown
// function, ivar the independent variable; params binds every other
// free symbol.
func CompileRHS(rhs expr.Expr, fn, ivar string, params map[string]float64) RHS {
	ph := fn
	for expr.ContainsSymbol(rhs, ph) {
		ph += "_"
	}
	body := expr.ReplaceFunc(rhs, fn, expr.Var(ph)).Simplify()
	return func(t, p float64) (float64, error) {
		env := make(map[string]float64, len(params)+2)
		for k, v := range params {
			env[k] = v
		}
		env[ivar] = t
		env[ph] = p
		return expr.EvalAt(body, env)
	}
}

// CompileSolution turns a closed-form p(t) into a numeric function of
// t with all parameters bound.
func CompileSolution(sol expr.Expr, ivar string, params map[string]float64) func(t float64) (float64, error) {
	return func(t float64) (float64, error) {
		env := make(map[string]float64, len(params)+1)
		for k, v := range params {
			env[k] = v
		}
		env[ivar] = t
		return expr.EvalAt(sol, env)
	}
}

// Difference iterates the discrete reading p[n+1] = p[n] + f(n, p[n])
// with a unit time step.
func Difference(f RHS, p0 float64, steps int) ([]Point, error) {
	out := make([]Point, 0, steps+1)
	p := p0
	out = append(out, Point{T: 0, P: p})
	for n := 0; n < steps; n++ {
		d, err := f(float64(n), p)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", n, err)
		}
		p += d
		out = append(out, Point{T: float64(n + 1), P: p})
	}
	return out, nil
}

// Euler integrates dp/dt = f with the explicit Euler method.
func Euler(f RHS, t0, p0, h float64, steps int) ([]Point, error) {
	if h <= 0 {
		return nil, fmt.Errorf("step size must be positive, got %g", h)
	}
	out := make([]Point, 0, steps+1)
	t, p := t0, p0
	out = append(out, Point{T: t, P: p})
	for n := 0; n < steps; n++ {
		d, err := f(t, p)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", n, err)
		}
		p += h * d
		t = t0 + float64(n+1)*h
		out = append(out, Point{T: t, P: p})
	}
	return out, nil
}

// RK4 integrates dp/dt = f with the classic fourth-order Runge-Kutta
// scheme.
func RK4(f RHS, t0, p0, h float64, steps int) ([]Point, error) {
	if h <= 0 {
		return nil, fmt.Errorf("step size must be positive, got %g", h)
	}
	const (
		half     = 0.5
		oneSixth = 1 / 6.0
		oneThird = 1 / 3.0
	)
	out := make([]Point, 0, steps+1)
	t, p := t0, p0
	out = append(out, Point{T: t, P: p})
	for n := 0; n < steps; n++ {
		k1, err := f(t, p)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", n, err)
		}
		k2, err := f(t+half*h, p+half*h*k1)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", n, err)
		}
		k3, err := f(t+half*h, p+half*h*k2)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", n, err)
		}
		k4, err := f(t+h, p+h*k3)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", n, err)
		}
		p += h * (oneSixth*(k1+k4) + oneThird*(k2+k3))
		t = t0 + float64(n+1)*h
		out = append(out, Point{T: t, P: p})
	}
	return out, nil
}
