package codec

import (
	"math/big"

	"github.com/johnwbyrd/opine/apreal"
	"github.com/johnwbyrd/opine/format"
	"github.com/johnwbyrd/opine/policy"
	"github.com/johnwbyrd/opine/wide"
)

// RoundToFormat converts an exact real value into the format's storage
// pattern: correctly rounding any finite value that does not fit exactly
// into the format's significand width, per spec.md §4.3.2. Rounding mode is
// fixed at ties-to-even: neither the codec nor any adapter reads the
// Format's Rounding field (the codec implements only the one mode the
// oracle requires for Testable Property 1).
func RoundToFormat(f format.Format, r apreal.Real) wide.Value {
	switch {
	case r.IsNaN():
		return encodeNaN(f)
	case r.IsInfinite():
		return encodeInfinity(f, r.IsNegative())
	case r.IsZero():
		return encodeZero(f, r.IsNegative())
	default:
		return encodeFinite(f, r)
	}
}

func encodeNaN(f format.Format) wide.Value {
	g := f.Geometry
	total := g.TotalBits
	switch f.Encoding.NaN {
	case policy.NaNTrapValue, policy.NaNNegativeZeroPattern:
		return wide.Bit(total, total-1)
	case policy.NaNReservedExponent:
		expAllOnes := wide.Ones(g.ExpBits, g.ExpBits)
		var mant wide.Value
		if bool(f.Encoding.Implicit) {
			// Quiet bit is the mantissa field's MSB.
			mant = wide.Bit(g.MantBits, g.MantBits-1)
		} else {
			// J-bit set, quiet bit is the next-highest fraction bit.
			mant = wide.Bit(g.MantBits, g.MantBits-1).Or(wide.Bit(g.MantBits, g.MantBits-2))
		}
		return packFields(f, false, expAllOnes, mant)
	default: // policy.NaNNone
		return wide.FromUint64(total, 0)
	}
}

func encodeInfinity(f format.Format, neg bool) wide.Value {
	g := f.Geometry
	total := g.TotalBits
	switch f.Encoding.Infinity {
	case policy.InfinityIntegerExtremes:
		if neg {
			return wide.Bit(total, total-1)
		}
		return wide.Ones(total, total-1)
	case policy.InfinityReservedExponent:
		expAllOnes := wide.Ones(g.ExpBits, g.ExpBits)
		var mant wide.Value
		if bool(f.Encoding.Implicit) {
			mant = wide.FromUint64(g.MantBits, 0)
		} else {
			mant = wide.Bit(g.MantBits, g.MantBits-1) // J=1, fraction=0
		}
		return packFields(f, neg, expAllOnes, mant)
	default: // policy.InfinityNone
		return encodeZero(f, false)
	}
}

func encodeZero(f format.Format, neg bool) wide.Value {
	g := f.Geometry
	if f.Encoding.Zero == policy.ZeroSignDoesNotExist {
		neg = false
	}
	return packFields(f, neg, wide.FromUint64(g.ExpBits, 0), wide.FromUint64(g.MantBits, 0))
}

func encodeLargestFinite(f format.Format, neg bool) wide.Value {
	g := f.Geometry
	maxExp := f.MaxFiniteBiasedExponent()
	return packFields(f, neg, wide.FromUint64(g.ExpBits, uint64(maxExp)), wide.Ones(g.MantBits, g.MantBits))
}

func encodeFinite(f format.Format, r apreal.Real) wide.Value {
	g := f.Geometry
	implicit := bool(f.Encoding.Implicit)
	M := int64(g.MantBits)
	Mp := int64(f.SignificandWidth())
	bias := f.ResolvedBias()
	eMin := 1 - bias
	sign := r.IsNegative()

	mantissa, scale := r.ToIntScale()
	absM := new(big.Int).Abs(mantissa)
	bitLen := int64(absM.BitLen())
	e := int64(scale) + bitLen - 1

	subnormal := e < eMin

	var shift int64
	if !subnormal {
		shift = int64(scale) + Mp - e
	} else {
		shift = int64(scale) + (bias - 1 + Mp)
	}

	rounded := roundShift(absM, shift)

	if !subnormal {
		twoMp1 := new(big.Int).Lsh(big.NewInt(1), uint(Mp+1))
		if rounded.Cmp(twoMp1) == 0 {
			e++
			rounded.Rsh(rounded, 1)
		}

		biasedExp := e + bias
		if biasedExp > f.MaxFiniteBiasedExponent() {
			if f.Encoding.Infinity != policy.InfinityNone {
				return encodeInfinity(f, sign)
			}
			return encodeLargestFinite(f, sign)
		}

		var mantField wide.Value
		if implicit {
			twoM := new(big.Int).Lsh(big.NewInt(1), uint(M))
			frac := new(big.Int).Sub(rounded, twoM)
			mantField = wide.FromBigInt(g.MantBits, frac)
		} else {
			mantField = wide.FromBigInt(g.MantBits, rounded)
		}
		expField := wide.FromUint64(g.ExpBits, uint64(biasedExp))
		return packFields(f, sign, expField, mantField)
	}

	// Subnormal path.
	twoMp := new(big.Int).Lsh(big.NewInt(1), uint(Mp))
	switch {
	case rounded.Sign() == 0:
		return encodeZero(f, sign)
	case rounded.Cmp(twoMp) >= 0:
		// Rounding pushed the subnormal up into the smallest normal.
		var mantField wide.Value
		if implicit {
			mantField = wide.FromUint64(g.MantBits, 0)
		} else {
			mantField = wide.Bit(g.MantBits, g.MantBits-1)
		}
		return packFields(f, sign, wide.FromUint64(g.ExpBits, 1), mantField)
	default:
		if flushesOutputToZero(f.Encoding.Denormal) {
			// DenormalFlushOutput/FlushBoth/None: a genuinely subnormal
			// result is flushed to signed zero rather than gradually
			// underflowing (spec.md §1, §3 "denormal mode"). Rounding
			// up into the smallest normal, handled above, is unaffected
			// — that result is not a subnormal.
			return encodeZero(f, sign)
		}
		mantField := wide.FromBigInt(g.MantBits, rounded)
		return packFields(f, sign, wide.FromUint64(g.ExpBits, 0), mantField)
	}
}

// flushesOutputToZero reports whether a Format's denormal policy flushes
// a genuinely subnormal rounding result to zero rather than encoding it
// with gradual underflow (spec.md §1, §3).
func flushesOutputToZero(d policy.DenormalMode) bool {
	switch d {
	case policy.DenormalFlushOutput, policy.DenormalFlushBoth, policy.DenormalNone:
		return true
	default:
		return false
	}
}

// roundShift computes round(absM * 2^shift), ties resolved to even. shift
// may be negative (discarding low-order bits, the common case when a
// 256-bit working value is rounded down to a narrow format) or
// non-negative (exact, widening only).
func roundShift(absM *big.Int, shift int64) *big.Int {
	if shift >= 0 {
		return new(big.Int).Lsh(absM, uint(shift))
	}
	n := uint(-shift)
	divisor := new(big.Int).Lsh(big.NewInt(1), n)
	quotient, remainder := new(big.Int), new(big.Int)
	quotient.DivMod(absM, divisor, remainder)

	half := new(big.Int).Rsh(divisor, 1)
	switch remainder.Cmp(half) {
	case 1:
		quotient.Add(quotient, big.NewInt(1))
	case 0:
		// Exact tie: round to even.
		if quotient.Bit(0) != 0 {
			quotient.Add(quotient, big.NewInt(1))
		}
	}
	return quotient
}
