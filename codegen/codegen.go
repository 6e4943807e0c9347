// Package codegen turns solved population formulas into executable
// artifacts: a plain-text formula dialect that parses back into the
// same expression, and standalone Go source for embedding a formula in
// another program.
package codegen

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"popgrow/expr"
	"popgrow/ode"
)

// Formula renders e in the numeric formula dialect. Unlike String,
// negative powers render as division, so a logistic solution reads
// K/(1 + ...) rather than K*(1 + ...)^(-1). The output re-parses to an
// expression equal to e.
func Formula(e expr.Expr) string {
	return renderFormula(e.Simplify(), false)
}

// FormulaEquation renders fn(var) = formula.
func FormulaEquation(fn, ivar string, e expr.Expr) string {
	return fmt.Sprintf("%s(%s) = %s", fn, ivar, Formula(e))
}

// renderFormula renders one node; inSum suppresses outer parentheses
// that the caller provides.
func renderFormula(e expr.Expr, parenSum bool) string {
	switch v := e.(type) {
	case *expr.Sum:
		var b strings.Builder
		if parenSum {
			b.WriteString("(")
		}
		for i, t := range v.Terms() {
			neg, body := formulaSign(t)
			switch {
			case i == 0 && neg:
				b.WriteString("-" + body)
			case i == 0:
				b.WriteString(body)
			case neg:
				b.WriteString(" - " + body)
			default:
				b.WriteString(" + " + body)
			}
		}
		if parenSum {
			b.WriteString(")")
		}
		return b.String()
	case *expr.Product:
		return renderQuotient(v.Factors())
	case *expr.Power:
		if k, ok := negIntExp(v); ok {
			return "1/" + denFactor(v.Base(), k)
		}
		return renderPow(v)
	case *expr.Number:
		return v.String()
	}
	return e.String()
}

// formulaSign pulls a leading minus out of a term.
func formulaSign(t expr.Expr) (bool, string) {
	if n, ok := t.(*expr.Number); ok && n.IsNegative() {
		m := n.Rat()
		m.Neg(m)
		return true, ratString(m)
	}
	if p, ok := t.(*expr.Product); ok {
		if n, ok := p.Factors()[0].(*expr.Number); ok && n.IsNegative() {
			m := n.Rat()
			m.Neg(m)
			flipped := make([]expr.Expr, len(p.Factors()))
			copy(flipped, p.Factors())
			flipped[0] = numFromRat(m)
			return true, renderQuotient(flipped)
		}
	}
	return false, renderFormula(t, true)
}

// renderQuotient splits product factors into numerator and denominator
// and joins them with a single slash.
func renderQuotient(factors []expr.Expr) string {
	var num, den []string
	prefix := ""
	for _, f := range factors {
		switch v := f.(type) {
		case *expr.Number:
			r := v.Rat()
			if r.Sign() < 0 {
				prefix = "-"
				r.Neg(r)
			}
			if r.Num().Cmp(oneInt) != 0 {
				num = append(num, r.Num().String())
			}
			if !r.IsInt() {
				den = append(den, r.Denom().String())
			}
		case *expr.Power:
			if k, ok := negIntExp(v); ok {
				den = append(den, denFactor(v.Base(), k))
				continue
			}
			num = append(num, renderPow(v))
		default:
			num = append(num, renderFormula(f, true))
		}
	}
	if len(num) == 0 {
		num = []string{"1"}
	}
	out := prefix + strings.Join(num, "*")
	switch len(den) {
	case 0:
		return out
	case 1:
		return out + "/" + den[0]
	}
	return out + "/(" + strings.Join(den, "*") + ")"
}

// negIntExp reports the positive exponent when p has a negative
// integer one.
func negIntExp(p *expr.Power) (int64, bool) {
	n, ok := p.Exp().(*expr.Number)
	if !ok || !n.IsInteger() || !n.IsNegative() {
		return 0, false
	}
	return -n.Rat().Num().Int64(), true
}

// denFactor renders base^k as a denominator factor; k is positive.
func denFactor(base expr.Expr, k int64) string {
	b := renderFormula(base, true)
	switch base.(type) {
	case *expr.Product, *expr.Power:
		b = "(" + b + ")"
	}
	if k == 1 {
		return b
	}
	return fmt.Sprintf("%s^%d", b, k)
}

func renderPow(v *expr.Power) string {
	b := renderFormula(v.Base(), true)
	switch v.Base().(type) {
	case *expr.Product, *expr.Power:
		b = "(" + b + ")"
	}
	e := renderFormula(v.Exp(), false)
	if !atomicFormula(v.Exp()) {
		e = "(" + e + ")"
	}
	return b + "^" + e
}

func atomicFormula(e expr.Expr) bool {
	switch v := e.(type) {
	case *expr.Number:
		return v.IsInteger() && !v.IsNegative()
	case *expr.Symbol:
		return true
	}
	return false
}

var oneInt = big.NewInt(1)

func numFromRat(r *big.Rat) expr.Expr {
	if r.IsInt() {
		return expr.Int(r.Num().Int64())
	}
	return expr.Rat(r.Num().Int64(), r.Denom().Int64())
}

func ratString(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	return r.RatString()
}

// ============================================================
// Go source emission
// ============================================================

// GoSource emits a standalone Go file computing the bound solution.
// The function takes the independent variable and every free parameter
// of the formula as float64 arguments, in sorted order after the
// variable.
func GoSource(pkg, fn string, p *ode.Particular) string {
	params := paramNames(p)
	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated by popgrow. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	if needsMath(p.Expr) {
		b.WriteString("import \"math\"\n\n")
	}
	fmt.Fprintf(&b, "// %s evaluates %s.\n", fn, FormulaEquation(p.Fn, p.Var, p.Expr))
	fmt.Fprintf(&b, "func %s(%s float64", fn, p.Var)
	for _, name := range params {
		fmt.Fprintf(&b, ", %s float64", name)
	}
	b.WriteString(") float64 {\n")
	fmt.Fprintf(&b, "\treturn %s\n", goExpr(p.Expr))
	b.WriteString("}\n")
	return b.String()
}

// paramNames lists the free symbols of the solution other than the
// independent variable, sorted.
func paramNames(p *ode.Particular) []string {
	var names []string
	for name := range expr.FreeSymbols(p.Expr) {
		if name != p.Var {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func needsMath(e expr.Expr) bool {
	switch v := e.(type) {
	case *expr.Sum:
		for _, t := range v.Terms() {
			if needsMath(t) {
				return true
			}
		}
	case *expr.Product:
		for _, f := range v.Factors() {
			if needsMath(f) {
				return true
			}
		}
	case *expr.Power:
		if _, ok := negIntExp(v); ok {
			return needsMath(v.Base())
		}
		if n, ok := v.Exp().(*expr.Number); ok && n.IsInteger() && !n.IsNegative() {
			return needsMath(v.Base())
		}
		return true
	case *expr.Call:
		return true
	}
	return false
}

// goExpr renders an expression as a Go float64 expression.
func goExpr(e expr.Expr) string {
	switch v := e.(type) {
	case *expr.Number:
		r := v.Rat()
		if r.IsInt() {
			return r.Num().String()
		}
		return fmt.Sprintf("(%s.0 / %s.0)", r.Num().String(), r.Denom().String())
	case *expr.Symbol:
		return v.Name()
	case *expr.Sum:
		parts := make([]string, len(v.Terms()))
		for i, t := range v.Terms() {
			parts[i] = goExpr(t)
		}
		return "(" + strings.Join(parts, " + ") + ")"
	case *expr.Product:
		var num, den []string
		for _, f := range v.Factors() {
			if p, ok := f.(*expr.Power); ok {
				if k, ok := negIntExp(p); ok {
					den = append(den, goPow(p.Base(), k))
					continue
				}
			}
			num = append(num, goExpr(f))
		}
		out := strings.Join(num, " * ")
		if len(num) == 0 {
			out = "1"
		}
		if len(den) > 0 {
			out = "(" + out + ") / (" + strings.Join(den, " * ") + ")"
		}
		return "(" + out + ")"
	case *expr.Power:
		if k, ok := negIntExp(v); ok {
			return "(1.0 / " + goPow(v.Base(), k) + ")"
		}
		if n, ok := v.Exp().(*expr.Number); ok && n.IsInteger() {
			return goPow(v.Base(), n.Rat().Num().Int64())
		}
		return "math.Pow(" + goExpr(v.Base()) + ", " + goExpr(v.Exp()) + ")"
	case *expr.Call:
		arg := goExpr(v.Arg())
		switch v.FuncName() {
		case "exp":
			return "math.Exp(" + arg + ")"
		case "ln":
			return "math.Log(" + arg + ")"
		case "sin":
			return "math.Sin(" + arg + ")"
		case "cos":
			return "math.Cos(" + arg + ")"
		}
	}
	return "math.NaN()"
}

// goPow renders base^k for small positive integer k as explicit
// multiplication, falling back to math.Pow.
func goPow(base expr.Expr, k int64) string {
	b := goExpr(base)
	switch {
	case k == 1:
		return b
	case k >= 2 && k <= 4:
		parts := make([]string, k)
		for i := range parts {
			parts[i] = b
		}
		return "(" + strings.Join(parts, " * ") + ")"
	}
	return fmt.Sprintf("math.Pow(%s, %d)", b, k)
}
