package expr

import (
	"fmt"
	"math/big"
)

// Number is an exact rational constant.
type Number struct {
	val *big.Rat
}

// Int returns the integer constant n.
func Int(n int64) *Number { return &Number{val: new(big.Rat).SetInt64(n)} }

// Rat returns the exact fraction p/q. Panics on q == 0.
func Rat(p, q int64) *Number {
	if q == 0 {
		panic("expr: denominator is zero")
	}
	return &Number{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

// FromFloat converts a float to its exact rational representation.
func FromFloat(f float64) *Number { return &Number{val: new(big.Rat).SetFloat64(f)} }

func fromRat(r *big.Rat) *Number { return &Number{val: new(big.Rat).Set(r)} }

func (n *Number) Simplify() Expr            { return n }
func (n *Number) Sub(string, Expr) Expr     { return n }
func (n *Number) Diff(string) Expr          { return Int(0) }
func (n *Number) sortClass() int            { return classNumber }
func (n *Number) IsZero() bool              { return n.val.Sign() == 0 }
func (n *Number) IsOne() bool               { return n.val.Cmp(ratOne) == 0 }
func (n *Number) IsNegative() bool          { return n.val.Sign() < 0 }
func (n *Number) IsInteger() bool           { return n.val.IsInt() }
func (n *Number) Rat() *big.Rat             { return new(big.Rat).Set(n.val) }
func (n *Number) Float() float64            { f, _ := n.val.Float64(); return f }

func (n *Number) Equal(o Expr) bool {
	m, ok := o.(*Number)
	return ok && n.val.Cmp(m.val) == 0
}

func (n *Number) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func (n *Number) LaTeX() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	v := new(big.Rat).Set(n.val)
	sign := ""
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return fmt.Sprintf(`%s\frac{%s}{%s}`, sign, v.Num().String(), v.Denom().String())
}

var ratOne = new(big.Rat).SetInt64(1)

func ratAdd(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(a, b) }
func ratMul(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) }
func ratNeg(a *big.Rat) *big.Rat    { return new(big.Rat).Neg(a) }

// ratPow raises r to an integer power, |e| bounded by the caller.
func ratPow(r *big.Rat, e int64) *big.Rat {
	out := new(big.Rat).SetInt64(1)
	neg := e < 0
	if neg {
		e = -e
	}
	for i := int64(0); i < e; i++ {
		out.Mul(out, r)
	}
	if neg {
		out.Inv(out)
	}
	return out
}

var ratHalf = big.NewRat(1, 2)

// ratSqrt returns the exact square root of r when both numerator and
// denominator are perfect squares.
func ratSqrt(r *big.Rat) (*big.Rat, bool) {
	if r.Sign() < 0 {
		return nil, false
	}
	n := new(big.Int).Sqrt(r.Num())
	d := new(big.Int).Sqrt(r.Denom())
	if new(big.Int).Mul(n, n).Cmp(r.Num()) != 0 ||
		new(big.Int).Mul(d, d).Cmp(r.Denom()) != 0 {
		return nil, false
	}
	return new(big.Rat).SetFrac(n, d), true
}

// isZero reports whether e is the literal constant 0.
func isZero(e Expr) bool {
	n, ok := e.(*Number)
	return ok && n.IsZero()
}

// isOne reports whether e is the literal constant 1.
func isOne(e Expr) bool {
	n, ok := e.(*Number)
	return ok && n.IsOne()
}
