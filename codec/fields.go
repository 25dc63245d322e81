// Package codec implements the Format Codec: the decode and round-to-format
// halves of spec.md §4.3, the translation layer between a Wide
// Bit-Container's raw storage pattern and an Arbitrary-Precision Real's
// exact mathematical value. This is the component that must get every
// non-canonical encoding, every bias derivation, and every sign encoding
// right, since every other package builds on it.
package codec

import (
	"math/big"

	"github.com/johnwbyrd/opine/format"
	"github.com/johnwbyrd/opine/policy"
	"github.com/johnwbyrd/opine/wide"
)

// extractField reads the `width`-bit field starting at bit `offset` out of
// bits, returning it as a Value of exactly that width.
func extractField(bits wide.Value, offset, width uint8) wide.Value {
	return bits.Shr(uint(offset)).Resize(width)
}

// placeField shifts a `width`-bit field up to bit `offset` within a
// container of the given total width.
func placeField(field wide.Value, offset, totalWidth uint8) wide.Value {
	return field.Resize(totalWidth).Shl(uint(offset))
}

// twosNegate returns the two's-complement negation of v, modulo 2^width.
func twosNegate(v wide.Value) wide.Value {
	bound := new(big.Int).Lsh(big.NewInt(1), uint(v.Width()))
	neg := new(big.Int).Sub(bound, v.BigInt())
	neg.Mod(neg, bound)
	return wide.FromBigInt(v.Width(), neg)
}

// Pack assembles a storage word directly from a biased exponent and a raw
// mantissa-field integer, bypassing any rounding. The edge-case generator
// uses this to construct exact non-canonical and boundary bit patterns
// that RoundToFormat's correctly-rounded path would never produce on its
// own (spec.md §4.4).
func Pack(f format.Format, neg bool, biasedExp uint64, mantissa *big.Int) wide.Value {
	expField := wide.FromUint64(f.Geometry.ExpBits, biasedExp)
	mantField := wide.FromBigInt(f.Geometry.MantBits, mantissa)
	return packFields(f, neg, expField, mantField)
}

// NegateBits flips the sign of a storage pattern by direct bit
// manipulation, without going through Decode/RoundToFormat. This is
// required for non-canonical encodings: decoding a pseudo-denormal and
// re-encoding its negation would canonicalize it, destroying the exact
// bit pattern the adapter is supposed to be exercising (spec.md §4.6,
// §9 "Non-canonical encodings must not be silently normalised").
func NegateBits(f format.Format, bits wide.Value) wide.Value {
	total := f.Geometry.TotalBits
	full := bits.Resize(total)
	switch f.Encoding.Sign {
	case policy.SignMagnitude:
		return full.Xor(wide.Bit(total, total-1))
	case policy.TwosComplement:
		return twosNegate(full)
	default: // policy.OnesComplement: negation is a whole-word bitwise NOT.
		return full.Not()
	}
}

// AbsBits clears the sign of a storage pattern by direct bit
// manipulation, for the same reason NegateBits avoids decode/re-encode.
func AbsBits(f format.Format, bits wide.Value) wide.Value {
	total := f.Geometry.TotalBits
	full := bits.Resize(total)
	signSet := full.Shr(uint(total-1)).Uint64()&1 == 1
	if !signSet {
		return full
	}
	switch f.Encoding.Sign {
	case policy.SignMagnitude:
		return full.And(wide.Ones(total, total-1))
	case policy.TwosComplement:
		return twosNegate(full)
	default: // policy.OnesComplement
		return full.Not()
	}
}

// packFields assembles a storage word from a recovered sign and already
// field-widthed exponent/mantissa values, applying the inverse of decode's
// sign-recovery step (spec.md §4.3, phase 3, run backwards).
func packFields(f format.Format, neg bool, expField, mantField wide.Value) wide.Value {
	g := f.Geometry
	total := g.TotalBits

	positive := wide.FromUint64(total, 0).
		Or(placeField(expField, g.ExpOffset, total)).
		Or(placeField(mantField, g.MantOffset, total))

	if !neg {
		return positive
	}

	switch f.Encoding.Sign {
	case policy.SignMagnitude:
		return positive.Or(wide.Bit(total, total-1))
	case policy.TwosComplement:
		return twosNegate(positive)
	case policy.OnesComplement:
		invExp := expField.Not()
		invMant := mantField.Not()
		return wide.FromUint64(total, 0).
			Or(placeField(invExp, g.ExpOffset, total)).
			Or(placeField(invMant, g.MantOffset, total)).
			Or(wide.Bit(total, total-1))
	default:
		return positive
	}
}
