package policy

// Encoding bundles the special-value and sign policy axes that together
// describe how a format's bit patterns map to sign, NaN, infinity, zero,
// and significand representation. It is pure data: validity is checked
// separately by Validate so that construction and validation remain two
// distinct, individually testable steps.
type Encoding struct {
	Sign        SignEncoding
	NaN         NaNEncoding
	Infinity    InfinityEncoding
	Denormal    DenormalMode
	Zero        ZeroSign
	Implicit    ImplicitBit
	Bias        Bias
}

// Validate checks the six policy invariants from spec.md §3. It returns
// the first violated invariant, named, so a caller can report it the way a
// compiler would report an illegal type instantiation.
func Validate(e Encoding) error {
	switch {
	case e.Sign == TwosComplement && e.Zero == ZeroSignExists:
		return newPolicyError("twos-complement-no-negative-zero",
			"two's-complement sign encoding cannot coexist with a negative-zero pattern")

	case e.Sign == TwosComplement && e.NaN != NaNTrapValue && e.NaN != NaNNone:
		return newPolicyError("twos-complement-nan-trap-or-none",
			"two's-complement sign encoding requires NaN encoding to be TrapValue or None")

	case e.Sign == TwosComplement && e.Infinity != InfinityIntegerExtremes && e.Infinity != InfinityNone:
		return newPolicyError("twos-complement-infinity-extremes-or-none",
			"two's-complement sign encoding requires infinity encoding to be IntegerExtremes or None")

	case e.Sign == OnesComplement && e.Zero != ZeroSignExists:
		return newPolicyError("ones-complement-negative-zero-exists",
			"one's-complement sign encoding requires a negative-zero encoding")

	case e.NaN == NaNNegativeZeroPattern && e.Zero == ZeroSignExists:
		return newPolicyError("negative-zero-pattern-excludes-negative-zero",
			"a format cannot reuse the negative-zero bit pattern for NaN while also supporting negative zero")

	case e.Infinity == InfinityReservedExponent && e.NaN != NaNReservedExponent:
		return newPolicyError("reserved-exponent-infinity-implies-reserved-exponent-nan",
			"infinity and NaN must share the reserved (maximum) exponent, or infinity must use a different encoding")
	}

	return nil
}
