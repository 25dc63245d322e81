package apreal

import "math/big"

// Add returns r+o, rounded to nearest-even at 256 bits. Special-value
// handling follows IEEE 754 semantics exactly (spec.md §4.2 "Failure
// model": NaN propagates; infinities follow IEEE; 0/0-style
// indeterminate forms yield NaN).
func (r Real) Add(o Real) Real {
	if r.IsNaN() || o.IsNaN() {
		return NaN()
	}
	if r.IsInfinite() || o.IsInfinite() {
		switch {
		case r.IsInfinite() && o.IsInfinite():
			if r.neg == o.neg {
				return SignedInfinity(r.neg)
			}
			return NaN() // opposite-signed infinities: invalid
		case r.IsInfinite():
			return SignedInfinity(r.neg)
		default:
			return SignedInfinity(o.neg)
		}
	}
	if r.IsZero() && o.IsZero() {
		return SignedZero(r.IsNegative() && o.IsNegative())
	}
	if r.IsZero() {
		return o
	}
	if o.IsZero() {
		return r
	}

	z := newFloat().Add(r.f, o.f)
	if z.Sign() == 0 {
		return SignedZero(false)
	}
	return Real{k: kindFinite, neg: z.Sign() < 0, f: z}
}

// Sub returns r-o.
func (r Real) Sub(o Real) Real {
	return r.Add(o.Neg())
}

// Mul returns r*o.
func (r Real) Mul(o Real) Real {
	if r.IsNaN() || o.IsNaN() {
		return NaN()
	}
	sign := r.IsNegative() != o.IsNegative()
	switch {
	case r.IsZero() && o.IsInfinite(), r.IsInfinite() && o.IsZero():
		return NaN()
	case r.IsInfinite() || o.IsInfinite():
		return SignedInfinity(sign)
	case r.IsZero() || o.IsZero():
		return SignedZero(sign)
	}

	z := newFloat().Mul(r.f, o.f)
	return Real{k: kindFinite, neg: z.Sign() < 0, f: z}
}

// Div returns r/o.
func (r Real) Div(o Real) Real {
	if r.IsNaN() || o.IsNaN() {
		return NaN()
	}
	sign := r.IsNegative() != o.IsNegative()
	switch {
	case r.IsInfinite() && o.IsInfinite():
		return NaN()
	case r.IsZero() && o.IsZero():
		return NaN()
	case o.IsZero():
		return SignedInfinity(sign)
	case r.IsZero():
		return SignedZero(sign)
	case r.IsInfinite():
		return SignedInfinity(sign)
	case o.IsInfinite():
		return SignedZero(sign)
	}

	z := newFloat().Quo(r.f, o.f)
	if z.Sign() == 0 {
		return SignedZero(sign)
	}
	return Real{k: kindFinite, neg: z.Sign() < 0, f: z}
}

// Remainder returns the IEEE remainder of r/o: r - n*o, where n is the
// integer nearest r/o, ties resolved to even.
func (r Real) Remainder(o Real) Real {
	if r.IsNaN() || o.IsNaN() || r.IsInfinite() || o.IsZero() {
		return NaN()
	}
	if o.IsInfinite() || r.IsZero() {
		return r
	}

	q := newFloat().Quo(r.f, o.f)
	n := roundToEvenInt(q)
	prod := newFloat().Mul(n, o.f)
	rem := newFloat().Sub(r.f, prod)
	if rem.Sign() == 0 {
		return SignedZero(r.IsNegative())
	}
	return Real{k: kindFinite, neg: rem.Sign() < 0, f: rem}
}

// roundToEvenInt rounds x to the nearest integer, ties to even, returned
// as a Float so it can participate in further big.Float arithmetic.
func roundToEvenInt(x *big.Float) *big.Float {
	trunc, _ := x.Int(nil)
	truncF := newFloat().SetInt(trunc)
	frac := newFloat().Sub(x, truncF)
	half := big.NewFloat(0.5)
	absFrac := newFloat().Abs(frac)

	switch absFrac.Cmp(half) {
	case -1:
		return truncF
	case 1:
		return bumpAwayFromZero(trunc, x.Sign() < 0)
	default:
		if trunc.Bit(0) == 0 {
			return truncF
		}
		return bumpAwayFromZero(trunc, x.Sign() < 0)
	}
}

func bumpAwayFromZero(trunc *big.Int, neg bool) *big.Float {
	delta := big.NewInt(1)
	if neg {
		delta = big.NewInt(-1)
	}
	bumped := new(big.Int).Add(trunc, delta)
	return newFloat().SetInt(bumped)
}

// FMA returns r*o + addend, computed with the product carried at extended
// precision before the single final rounding to 256 bits, approximating
// fused-multiply-add semantics (spec.md §4.2).
func (r Real) FMA(o, addend Real) Real {
	if r.IsNaN() || o.IsNaN() || addend.IsNaN() {
		return NaN()
	}
	product := new(big.Float).SetPrec(Precision * 2).SetMode(big.ToNearestEven)
	switch {
	case r.IsZero() && o.IsInfinite(), r.IsInfinite() && o.IsZero():
		return NaN()
	case r.IsInfinite() || o.IsInfinite():
		sign := r.IsNegative() != o.IsNegative()
		return SignedInfinity(sign).Add(addend)
	case r.IsZero() || o.IsZero():
		sign := r.IsNegative() != o.IsNegative()
		return SignedZero(sign).Add(addend)
	}
	product.Mul(r.f, o.f)
	wide := Real{k: kindFinite, neg: product.Sign() < 0, f: product}
	return wide.Add(addend)
}

// Sqrt returns the correctly-rounded square root of r.
func (r Real) Sqrt() Real {
	if r.IsNaN() {
		return NaN()
	}
	if r.IsNegative() && !r.IsZero() {
		return NaN()
	}
	if r.IsZero() {
		return SignedZero(r.IsNegative())
	}
	if r.IsInfinite() {
		return SignedInfinity(false)
	}
	z := newFloat().Sqrt(r.f)
	return Real{k: kindFinite, neg: false, f: z}
}

// Neg returns the exact negation of r, including for zero and infinity.
func (r Real) Neg() Real {
	switch r.k {
	case kindNaN:
		return NaN()
	case kindZero:
		return SignedZero(!r.neg)
	case kindInfinite:
		return SignedInfinity(!r.neg)
	default:
		z := newFloat().Neg(r.f)
		return Real{k: kindFinite, neg: z.Sign() < 0, f: z}
	}
}

// Cmp returns -1, 0, or +1 comparing r and o as real numbers. Callers must
// check IsNaN on both operands first: NaN has no ordering, and Cmp does
// not special-case it.
func (r Real) Cmp(o Real) int {
	switch {
	case r.IsInfinite() && o.IsInfinite():
		return sign3(r.IsNegative()) - sign3(o.IsNegative())
	case r.IsInfinite():
		if r.IsNegative() {
			return -1
		}
		return 1
	case o.IsInfinite():
		if o.IsNegative() {
			return 1
		}
		return -1
	case r.IsZero() && o.IsZero():
		return 0
	case r.IsZero():
		return -o.Sign()
	case o.IsZero():
		return r.Sign()
	default:
		return r.f.Cmp(o.f)
	}
}

func sign3(negative bool) int {
	if negative {
		return -1
	}
	return 1
}

// Abs returns the exact absolute value of r.
func (r Real) Abs() Real {
	switch r.k {
	case kindNaN:
		return NaN()
	case kindZero:
		return SignedZero(false)
	case kindInfinite:
		return SignedInfinity(false)
	default:
		z := newFloat().Abs(r.f)
		return Real{k: kindFinite, neg: false, f: z}
	}
}
