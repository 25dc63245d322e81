package codec

import (
	"github.com/johnwbyrd/opine/apreal"
	"github.com/johnwbyrd/opine/format"
	"github.com/johnwbyrd/opine/policy"
	"github.com/johnwbyrd/opine/wide"
)

// Decode converts a raw storage pattern into its exact mathematical value,
// following the five-phase pipeline of spec.md §4.3.1:
//
//  1. mask the pattern to the format's total-bits
//  2. check whole-pattern special values (trap NaN, integer-extreme
//     infinity, negative-zero-pattern NaN)
//  3. recover the sign and extract the exponent/mantissa fields
//  4. check field-based special values (reserved exponent NaN/infinity)
//  5. decode the finite value
//
// Non-canonical explicit-bit patterns (unnormals, pseudo-denormals,
// pseudo-infinities, pseudo-NaNs) are never rejected: phase 4 catches the
// reserved-exponent infinity (J=1, fraction zero) and every reserved-exponent
// pattern with a non-zero fraction, whatever its J-bit, as NaN (so a
// pseudo-NaN decodes as NaN), and phase 5's formulas use the
// stored significand field exactly as it sits, so an unnormal or
// pseudo-denormal decodes at whatever value that formula produces rather
// than panicking (spec.md §4.3.1, scenarios S2/S3).
func Decode(f format.Format, bits wide.Value) apreal.Real {
	g := f.Geometry
	total := g.TotalBits
	enc := f.Encoding

	full := bits.Resize(total)

	// Phase 2: whole-pattern special values, checked before any field
	// extraction or sign recovery.
	if enc.NaN == policy.NaNTrapValue && full.Eq(wide.Bit(total, total-1)) {
		return apreal.NaN()
	}
	if enc.Infinity == policy.InfinityIntegerExtremes {
		if full.Eq(wide.Ones(total, total-1)) {
			return apreal.SignedInfinity(false)
		}
		if full.Eq(wide.Bit(total, total-1)) {
			return apreal.SignedInfinity(true)
		}
	}
	if enc.NaN == policy.NaNNegativeZeroPattern && full.Eq(wide.Bit(total, total-1)) {
		return apreal.NaN()
	}

	// Phase 3: sign recovery and field extraction.
	signBit := full.Shr(uint(total-1)).Uint64()&1 == 1
	var sign bool
	var expField, mantField wide.Value

	switch enc.Sign {
	case policy.TwosComplement:
		if signBit {
			magnitude := twosNegate(full)
			sign = true
			expField = extractField(magnitude, g.ExpOffset, g.ExpBits)
			mantField = extractField(magnitude, g.MantOffset, g.MantBits)
		} else {
			sign = false
			expField = extractField(full, g.ExpOffset, g.ExpBits)
			mantField = extractField(full, g.MantOffset, g.MantBits)
		}
	case policy.OnesComplement:
		rawExp := extractField(full, g.ExpOffset, g.ExpBits)
		rawMant := extractField(full, g.MantOffset, g.MantBits)
		if signBit {
			sign = true
			expField = rawExp.Not()
			mantField = rawMant.Not()
		} else {
			sign = false
			expField = rawExp
			mantField = rawMant
		}
	default: // policy.SignMagnitude
		sign = signBit
		expField = extractField(full, g.ExpOffset, g.ExpBits)
		mantField = extractField(full, g.MantOffset, g.MantBits)
	}

	// Phase 4: field-based special values. Infinity is checked ahead of
	// NaN so that, for explicit-bit formats, the canonical infinity
	// pattern (J=1, fraction=0) is never mistaken for a NaN by a naive
	// whole-mantissa-field test.
	expAllOnes := expField.Eq(wide.Ones(g.ExpBits, g.ExpBits))
	implicit := bool(enc.Implicit)

	var jBit bool
	var fraction wide.Value
	if !implicit {
		jBit = mantField.Shr(uint(g.MantBits-1)).Uint64()&1 == 1
		fraction = mantField.And(wide.Ones(g.MantBits, g.MantBits-1))
	}

	if enc.Infinity == policy.InfinityReservedExponent && expAllOnes {
		if implicit {
			if mantField.Eq(wide.FromUint64(g.MantBits, 0)) {
				return apreal.SignedInfinity(sign)
			}
		} else if jBit && fraction.Eq(wide.FromUint64(g.MantBits, 0)) {
			return apreal.SignedInfinity(sign)
		}
	}

	if enc.NaN == policy.NaNReservedExponent && expAllOnes {
		if implicit {
			if !mantField.Eq(wide.FromUint64(g.MantBits, 0)) {
				return apreal.NaN()
			}
		} else if !fraction.Eq(wide.FromUint64(g.MantBits, 0)) {
			return apreal.NaN()
		}
	}

	// Phase 5: finite value.
	zeroExp := expField.Eq(wide.FromUint64(g.ExpBits, 0))
	zeroMant := mantField.Eq(wide.FromUint64(g.MantBits, 0))
	if zeroExp && zeroMant {
		if enc.Zero == policy.ZeroSignDoesNotExist {
			sign = false
		}
		return apreal.SignedZero(sign)
	}

	// A canonical subnormal is the zero-exponent, non-zero-mantissa
	// pattern with no explicit leading one set (explicit-bit formats
	// also require J=0 — J=1 at exponent zero is the non-canonical
	// pseudo-denormal of scenario S3, which always decodes at its exact
	// formula value regardless of denormal policy). DenormalFlushInput,
	// DenormalFlushBoth, and DenormalNone all treat this input as signed
	// zero rather than performing gradual underflow (spec.md §3, §1
	// "denormal mode").
	canonicalSubnormal := zeroExp && !zeroMant && (implicit || !jBit)
	if canonicalSubnormal {
		switch enc.Denormal {
		case policy.DenormalFlushInput, policy.DenormalFlushBoth, policy.DenormalNone:
			if enc.Zero == policy.ZeroSignDoesNotExist {
				sign = false
			}
			return apreal.SignedZero(sign)
		}
	}

	bias := f.ResolvedBias()
	M := int64(g.MantBits)

	var significand = mantField.BigInt()
	var unbiasedExp int64

	if implicit {
		if !zeroExp {
			one := wide.Bit(g.MantBits+1, g.MantBits)
			significand = one.Resize(g.MantBits + 1).Or(mantField.Resize(g.MantBits + 1)).BigInt()
			unbiasedExp = int64(expField.Uint64()) - bias - M
		} else {
			unbiasedExp = 1 - bias - M
		}
	} else {
		if !zeroExp {
			unbiasedExp = int64(expField.Uint64()) - bias - (M - 1)
		} else {
			unbiasedExp = 1 - bias - (M - 1)
		}
	}

	r := apreal.FromIntScale(significand, int(unbiasedExp))
	if sign {
		r = r.Neg()
	}
	return r
}
