package expr

import "fmt"

// Call is an application of a known transcendental function to a single
// argument. Supported names: exp, ln, sin, cos.
type Call struct {
	name string
	arg  Expr
}

// Exp builds exp(arg).
func Exp(arg Expr) Expr { return (&Call{name: "exp", arg: arg}).Simplify() }

// Ln builds the natural logarithm ln(arg).
func Ln(arg Expr) Expr { return (&Call{name: "ln", arg: arg}).Simplify() }

// Sin builds sin(arg).
func Sin(arg Expr) Expr { return (&Call{name: "sin", arg: arg}).Simplify() }

// Cos builds cos(arg).
func Cos(arg Expr) Expr { return (&Call{name: "cos", arg: arg}).Simplify() }

func (c *Call) FuncName() string { return c.name }
func (c *Call) Arg() Expr        { return c.arg }
func (c *Call) sortClass() int   { return classCall }

// Simplify applies exact rewrites only. Constants are never folded to
// floats here; numeric evaluation belongs to EvalAt.
func (c *Call) Simplify() Expr {
	arg := c.arg.Simplify()
	switch c.name {
	case "exp":
		if isZero(arg) {
			return Int(1)
		}
		if inner, ok := arg.(*Call); ok && inner.name == "ln" {
			return inner.arg
		}
	case "ln":
		if isOne(arg) {
			return Int(0)
		}
		if inner, ok := arg.(*Call); ok && inner.name == "exp" {
			return inner.arg
		}
	case "sin":
		if isZero(arg) {
			return Int(0)
		}
	case "cos":
		if isZero(arg) {
			return Int(1)
		}
	}
	return &Call{name: c.name, arg: arg}
}

func (c *Call) Sub(name string, value Expr) Expr {
	return (&Call{name: c.name, arg: c.arg.Sub(name, value)}).Simplify()
}

func (c *Call) Diff(name string) Expr {
	du := c.arg.Diff(name)
	var outer Expr
	switch c.name {
	case "exp":
		outer = Exp(c.arg)
	case "ln":
		outer = Pow(c.arg, Int(-1))
	case "sin":
		outer = Cos(c.arg)
	case "cos":
		outer = Neg(Sin(c.arg))
	default:
		return &Deriv{fn: &FuncVal{name: c.name, arg: c.arg}, wrt: name, order: 1}
	}
	return Mul(outer, du)
}

func (c *Call) Equal(o Expr) bool {
	d, ok := o.(*Call)
	return ok && c.name == d.name && c.arg.Equal(d.arg)
}

func (c *Call) String() string { return c.name + "(" + c.arg.String() + ")" }

func (c *Call) LaTeX() string {
	switch c.name {
	case "exp":
		return `e^{` + c.arg.LaTeX() + `}`
	case "ln", "sin", "cos":
		return `\` + c.name + `\left(` + c.arg.LaTeX() + `\right)`
	}
	return `\operatorname{` + c.name + `}\left(` + c.arg.LaTeX() + `\right)`
}

// FuncVal is the application of an unknown named function to an
// argument, such as f(t). It is inert: no rewrite rule touches it.
type FuncVal struct {
	name string
	arg  Expr
}

// Fn builds the unknown-function application name(arg).
func Fn(name string, arg Expr) *FuncVal { return &FuncVal{name: name, arg: arg} }

func (f *FuncVal) FuncName() string { return f.name }
func (f *FuncVal) Arg() Expr        { return f.arg }
func (f *FuncVal) sortClass() int   { return classCall }

func (f *FuncVal) Simplify() Expr {
	return &FuncVal{name: f.name, arg: f.arg.Simplify()}
}

func (f *FuncVal) Sub(name string, value Expr) Expr {
	return &FuncVal{name: f.name, arg: f.arg.Sub(name, value)}
}

func (f *FuncVal) Diff(name string) Expr {
	if s, ok := f.arg.(*Symbol); ok && s.name == name {
		return &Deriv{fn: f, wrt: name, order: 1}
	}
	if !ContainsSymbol(f.arg, name) {
		return Int(0)
	}
	// chain rule through a composite argument
	return Mul(&Deriv{fn: f, wrt: name, order: 1}, f.arg.Diff(name))
}

func (f *FuncVal) Equal(o Expr) bool {
	g, ok := o.(*FuncVal)
	return ok && f.name == g.name && f.arg.Equal(g.arg)
}

func (f *FuncVal) String() string { return f.name + "(" + f.arg.String() + ")" }

func (f *FuncVal) LaTeX() string {
	return f.name + `\left(` + f.arg.LaTeX() + `\right)`
}

// Deriv is the derivative of an unknown function with respect to a
// symbol, such as df(t)/dt. Purely symbolic; the ode package pattern
// matches on it.
type Deriv struct {
	fn    *FuncVal
	wrt   string
	order int
}

// D builds the first derivative of fn with respect to wrt.
func D(fn *FuncVal, wrt string) *Deriv { return &Deriv{fn: fn, wrt: wrt, order: 1} }

func (d *Deriv) Fn() *FuncVal   { return d.fn }
func (d *Deriv) Wrt() string    { return d.wrt }
func (d *Deriv) Order() int     { return d.order }
func (d *Deriv) sortClass() int { return classOther }

func (d *Deriv) Simplify() Expr {
	return &Deriv{fn: d.fn.Simplify().(*FuncVal), wrt: d.wrt, order: d.order}
}

func (d *Deriv) Sub(name string, value Expr) Expr {
	return &Deriv{fn: d.fn.Sub(name, value).(*FuncVal), wrt: d.wrt, order: d.order}
}

func (d *Deriv) Diff(name string) Expr {
	if name == d.wrt {
		return &Deriv{fn: d.fn, wrt: d.wrt, order: d.order + 1}
	}
	return Int(0)
}

func (d *Deriv) Equal(o Expr) bool {
	e, ok := o.(*Deriv)
	return ok && d.wrt == e.wrt && d.order == e.order && d.fn.Equal(e.fn)
}

func (d *Deriv) String() string {
	if d.order == 1 {
		return fmt.Sprintf("d%s/d%s", d.fn.String(), d.wrt)
	}
	return fmt.Sprintf("d^%d%s/d%s^%d", d.order, d.fn.String(), d.wrt, d.order)
}

func (d *Deriv) LaTeX() string {
	if d.order == 1 {
		return fmt.Sprintf(`\frac{d}{d %s} %s`, d.wrt, d.fn.LaTeX())
	}
	return fmt.Sprintf(`\frac{d^{%d}}{d %s^{%d}} %s`, d.order, d.wrt, d.order, d.fn.LaTeX())
}
