package expr

import "math/big"

// SplitQuotient rewrites e as a single fraction num/den, clearing
// nested reciprocals, rational constants and negative exponents. The
// pair is returned simplified; den is 1 when e has no denominator.
//
// Together with Expand this gives a zero test for rational
// expressions: e == 0 exactly when Expand(num) simplifies to 0.
func SplitQuotient(e Expr) (num, den Expr) {
	num, den = split(e.Simplify())
	return num.Simplify(), den.Simplify()
}

func split(e Expr) (num, den Expr) {
	switch v := e.(type) {
	case *Number:
		n := &Number{val: new(big.Rat).SetInt(v.val.Num())}
		d := &Number{val: new(big.Rat).SetInt(v.val.Denom())}
		return n, d
	case *Sum:
		num, den = Int(0), Int(1)
		for _, t := range v.terms {
			tn, td := split(t)
			num = Add(Mul(num, td), Mul(tn, den))
			den = Mul(den, td)
		}
		return num, den
	case *Product:
		num, den = Int(1), Int(1)
		for _, f := range v.factors {
			fn, fd := split(f)
			num = Mul(num, fn)
			den = Mul(den, fd)
		}
		return num, den
	case *Power:
		if n, ok := v.exp.(*Number); ok && n.IsInteger() {
			k := n.val.Num().Int64()
			bn, bd := split(v.base)
			switch {
			case k < 0:
				return powInt(bd, -k), powInt(bn, -k)
			case k > 0:
				return powInt(bn, k), powInt(bd, k)
			default:
				return Int(1), Int(1)
			}
		}
		return e, Int(1)
	case *Call:
		if v.name == "exp" {
			if c, _ := splitCoeff(v.arg); c.Sign() < 0 {
				return Int(1), Exp(Neg(v.arg))
			}
			if n, ok := v.arg.(*Number); ok && n.IsNegative() {
				return Int(1), Exp(Neg(v.arg))
			}
		}
		return e, Int(1)
	}
	return e, Int(1)
}

func powInt(e Expr, k int64) Expr {
	if k == 1 {
		return e
	}
	return Pow(e, Int(k))
}
