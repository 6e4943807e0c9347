package expr

import (
	"fmt"
	"math"
)

// Simplify is a top-level convenience wrapper.
func Simplify(e Expr) Expr { return e.Simplify() }

// FreeSymbols returns the set of symbol names occurring in e.
func FreeSymbols(e Expr) map[string]struct{} {
	out := map[string]struct{}{}
	collectSymbols(e, out)
	return out
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Symbol:
		out[v.name] = struct{}{}
	case *Sum:
		for _, t := range v.terms {
			collectSymbols(t, out)
		}
	case *Product:
		for _, f := range v.factors {
			collectSymbols(f, out)
		}
	case *Power:
		collectSymbols(v.base, out)
		collectSymbols(v.exp, out)
	case *Call:
		collectSymbols(v.arg, out)
	case *FuncVal:
		collectSymbols(v.arg, out)
	case *Deriv:
		collectSymbols(v.fn.arg, out)
	}
}

// ContainsSymbol reports whether the named symbol occurs in e.
func ContainsSymbol(e Expr, name string) bool {
	_, ok := FreeSymbols(e)[name]
	return ok
}

// UnknownFuncs returns the names of unknown functions applied in e.
func UnknownFuncs(e Expr) map[string]struct{} {
	out := map[string]struct{}{}
	collectFuncs(e, out)
	return out
}

func collectFuncs(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sum:
		for _, t := range v.terms {
			collectFuncs(t, out)
		}
	case *Product:
		for _, f := range v.factors {
			collectFuncs(f, out)
		}
	case *Power:
		collectFuncs(v.base, out)
		collectFuncs(v.exp, out)
	case *Call:
		collectFuncs(v.arg, out)
	case *FuncVal:
		out[v.name] = struct{}{}
		collectFuncs(v.arg, out)
	case *Deriv:
		out[v.fn.name] = struct{}{}
		collectFuncs(v.fn.arg, out)
	}
}

// ReplaceFunc substitutes every application of the unknown function
// fnName with the given expression, regardless of argument. The ode
// package uses this to turn f(t) into a plain symbol before classifying
// the right-hand side.
func ReplaceFunc(e Expr, fnName string, with Expr) Expr {
	switch v := e.(type) {
	case *Sum:
		out := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			out[i] = ReplaceFunc(t, fnName, with)
		}
		return Add(out...)
	case *Product:
		out := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			out[i] = ReplaceFunc(f, fnName, with)
		}
		return Mul(out...)
	case *Power:
		return Pow(ReplaceFunc(v.base, fnName, with), ReplaceFunc(v.exp, fnName, with))
	case *Call:
		return (&Call{name: v.name, arg: ReplaceFunc(v.arg, fnName, with)}).Simplify()
	case *FuncVal:
		if v.name == fnName {
			return with
		}
		return &FuncVal{name: v.name, arg: ReplaceFunc(v.arg, fnName, with)}
	}
	return e
}

// Expand distributes products over sums and unrolls small integer
// powers, then simplifies.
func Expand(e Expr) Expr { return expand(e.Simplify()).Simplify() }

func expand(e Expr) Expr {
	switch v := e.(type) {
	case *Product:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = expand(f)
		}
		for i, f := range factors {
			s, ok := f.(*Sum)
			if !ok {
				continue
			}
			rest := make([]Expr, 0, len(factors)-1)
			rest = append(rest, factors[:i]...)
			rest = append(rest, factors[i+1:]...)
			terms := make([]Expr, len(s.terms))
			for k, t := range s.terms {
				terms[k] = expand(Mul(append([]Expr{t}, rest...)...))
			}
			return expand(Add(terms...))
		}
		return Mul(factors...)
	case *Sum:
		out := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			out[i] = expand(t)
		}
		return Add(out...)
	case *Power:
		if n, ok := v.exp.(*Number); ok && n.IsInteger() {
			if k := n.val.Num().Int64(); k >= 2 && k <= 10 {
				// (a+b)^k multiplies out term lists directly; rebuilding
				// through Mul would re-merge the factors into a power and
				// loop. A non-Sum base is already as expanded as it gets.
				if s, ok := expand(v.base).(*Sum); ok {
					terms := append([]Expr(nil), s.terms...)
					for i := int64(1); i < k; i++ {
						terms = mulTerms(terms, s.terms)
					}
					return Add(terms...)
				}
			}
		}
		return Pow(expand(v.base), expand(v.exp))
	}
	return e
}

// mulTerms multiplies two term lists pairwise.
func mulTerms(a, b []Expr) []Expr {
	out := make([]Expr, 0, len(a)*len(b))
	for _, x := range a {
		for _, y := range b {
			out = append(out, Mul(x, y))
		}
	}
	return out
}

// EvalAt numerically evaluates e with the given symbol bindings.
// Unknown-function applications and unbound symbols are errors.
func EvalAt(e Expr, env map[string]float64) (float64, error) {
	switch v := e.(type) {
	case *Number:
		return v.Float(), nil
	case *Symbol:
		val, ok := env[v.name]
		if !ok {
			return 0, fmt.Errorf("unbound symbol %q", v.name)
		}
		return val, nil
	case *Sum:
		acc := 0.0
		for _, t := range v.terms {
			x, err := EvalAt(t, env)
			if err != nil {
				return 0, err
			}
			acc += x
		}
		return acc, nil
	case *Product:
		acc := 1.0
		for _, f := range v.factors {
			x, err := EvalAt(f, env)
			if err != nil {
				return 0, err
			}
			acc *= x
		}
		return acc, nil
	case *Power:
		b, err := EvalAt(v.base, env)
		if err != nil {
			return 0, err
		}
		x, err := EvalAt(v.exp, env)
		if err != nil {
			return 0, err
		}
		r := math.Pow(b, x)
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return 0, fmt.Errorf("power %s is not finite at this point", v)
		}
		return r, nil
	case *Call:
		x, err := EvalAt(v.arg, env)
		if err != nil {
			return 0, err
		}
		switch v.name {
		case "exp":
			return math.Exp(x), nil
		case "ln":
			if x <= 0 {
				return 0, fmt.Errorf("ln of non-positive value %g", x)
			}
			return math.Log(x), nil
		case "sin":
			return math.Sin(x), nil
		case "cos":
			return math.Cos(x), nil
		}
		return 0, fmt.Errorf("cannot evaluate %s numerically", v.name)
	}
	return 0, fmt.Errorf("cannot evaluate %s numerically", e)
}
