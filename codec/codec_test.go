package codec

import (
	"math/big"
	"testing"

	"github.com/johnwbyrd/opine/apreal"
	"github.com/johnwbyrd/opine/format"
	"github.com/johnwbyrd/opine/policy"
	"github.com/johnwbyrd/opine/wide"
	"github.com/stretchr/testify/assert"
)

// binary32Variant builds a binary32-shaped Format with a different
// denormal policy, to exercise the flush-to-zero behaviors that
// DenormalFull, used by every format.IEEEFormats builtin, never hits.
func binary32Variant(denormal policy.DenormalMode) format.Format {
	enc := format.Binary32.Encoding
	enc.Denormal = denormal
	return format.MustNew("binary32variant", format.Binary32.Geometry, enc, format.Binary32.Rounding, format.Binary32.Platform)
}

const (
	binary32SmallestSubnormalBits = 0x00000001 // smallest positive subnormal
	binary32SmallestNormalBits    = 0x00800000 // smallest positive normal
)

func TestDecodeFlushesSubnormalInputToZeroUnderFlushInput(t *testing.T) {
	f := binary32Variant(policy.DenormalFlushInput)
	r := Decode(f, bits32(binary32SmallestSubnormalBits))
	assert.True(t, r.IsZero())
	assert.False(t, r.IsNegative())
}

func TestDecodeFlushesSubnormalInputToZeroUnderFlushBoth(t *testing.T) {
	f := binary32Variant(policy.DenormalFlushBoth)
	r := Decode(f, bits32(binary32SmallestSubnormalBits))
	assert.True(t, r.IsZero())
}

func TestDecodeFlushesSubnormalInputToZeroUnderNoDenormal(t *testing.T) {
	f := binary32Variant(policy.DenormalNone)
	r := Decode(f, bits32(binary32SmallestSubnormalBits))
	assert.True(t, r.IsZero())
}

func TestDecodeStillDecodesSubnormalInputUnderFlushOutput(t *testing.T) {
	// Flush-output only governs rounding results, not decode.
	f := binary32Variant(policy.DenormalFlushOutput)
	r := Decode(f, bits32(binary32SmallestSubnormalBits))
	assert.False(t, r.IsZero())
}

func TestDecodeStillDecodesSubnormalInputUnderFull(t *testing.T) {
	r := Decode(format.Binary32, bits32(binary32SmallestSubnormalBits))
	assert.False(t, r.IsZero())
}

func TestRoundToFormatFlushesSubnormalResultToZeroUnderFlushOutput(t *testing.T) {
	f := binary32Variant(policy.DenormalFlushOutput)
	smallestSubnormal := Decode(format.Binary32, bits32(binary32SmallestSubnormalBits))
	got := RoundToFormat(f, smallestSubnormal)
	assert.Equal(t, uint64(0), got.Uint64())
}

func TestRoundToFormatFlushesSubnormalResultToZeroUnderFlushBoth(t *testing.T) {
	f := binary32Variant(policy.DenormalFlushBoth)
	smallestSubnormal := Decode(format.Binary32, bits32(binary32SmallestSubnormalBits))
	got := RoundToFormat(f, smallestSubnormal)
	assert.Equal(t, uint64(0), got.Uint64())
}

func TestRoundToFormatFlushesSubnormalResultToZeroUnderNoDenormal(t *testing.T) {
	f := binary32Variant(policy.DenormalNone)
	smallestSubnormal := Decode(format.Binary32, bits32(binary32SmallestSubnormalBits))
	got := RoundToFormat(f, smallestSubnormal)
	assert.Equal(t, uint64(0), got.Uint64())
}

func TestRoundToFormatStillEncodesSubnormalResultUnderFlushInput(t *testing.T) {
	// Flush-input only governs decode, not rounding results.
	f := binary32Variant(policy.DenormalFlushInput)
	smallestSubnormal := Decode(format.Binary32, bits32(binary32SmallestSubnormalBits))
	got := RoundToFormat(f, smallestSubnormal)
	assert.Equal(t, uint64(binary32SmallestSubnormalBits), got.Uint64())
}

func TestRoundToFormatRoundingUpToSmallestNormalIsNotFlushed(t *testing.T) {
	// A value that rounds up into the smallest normal is not a subnormal
	// result, so flush-output policies must not zero it. 2^-126 - 2^-151
	// lies below the smallest normal, and rounding it to the subnormal
	// grid (2^-149) carries it up to 2^-126.
	f := binary32Variant(policy.DenormalFlushOutput)
	justBelowSmallestNormal := apreal.FromIntScale(big.NewInt((1<<25)-1), -151)
	got := RoundToFormat(f, justBelowSmallestNormal)
	assert.Equal(t, uint64(binary32SmallestNormalBits), got.Uint64())
}

func bits32(pattern uint32) wide.Value {
	return wide.FromUint64(32, uint64(pattern))
}

func TestDecodeBinary32One(t *testing.T) {
	// 1.0f = 0x3F800000
	r := Decode(format.Binary32, bits32(0x3F800000))
	m, s := r.ToIntScale()
	assert.Equal(t, "1", m.String())
	assert.Equal(t, 0, s)
}

func TestDecodeBinary32NegativeOne(t *testing.T) {
	// -1.0f = 0xBF800000
	r := Decode(format.Binary32, bits32(0xBF800000))
	assert.True(t, r.IsNegative())
	m, _ := r.ToIntScale()
	assert.Equal(t, "-1", m.String())
}

func TestDecodeBinary32PositiveZero(t *testing.T) {
	r := Decode(format.Binary32, bits32(0x00000000))
	assert.True(t, r.IsZero())
	assert.False(t, r.IsNegative())
}

func TestDecodeBinary32NegativeZero(t *testing.T) {
	r := Decode(format.Binary32, bits32(0x80000000))
	assert.True(t, r.IsZero())
	assert.True(t, r.IsNegative())
}

func TestDecodeBinary32Infinity(t *testing.T) {
	posInf := Decode(format.Binary32, bits32(0x7F800000))
	assert.True(t, posInf.IsInfinite())
	assert.False(t, posInf.IsNegative())

	negInf := Decode(format.Binary32, bits32(0xFF800000))
	assert.True(t, negInf.IsInfinite())
	assert.True(t, negInf.IsNegative())
}

func TestDecodeBinary32NaN(t *testing.T) {
	r := Decode(format.Binary32, bits32(0x7FC00000))
	assert.True(t, r.IsNaN())
}

func TestDecodeBinary32Subnormal(t *testing.T) {
	// Smallest positive subnormal: 0x00000001 == 2^-149.
	r := Decode(format.Binary32, bits32(0x00000001))
	m, s := r.ToIntScale()
	assert.Equal(t, "1", m.String())
	assert.Equal(t, -149, s)
}

func TestRoundTripBinary32RandomValues(t *testing.T) {
	patterns := []uint32{0x3F800000, 0xBF800000, 0x40490FDB, 0x00800000, 0x007FFFFF}
	for _, p := range patterns {
		r := Decode(format.Binary32, bits32(p))
		got := RoundToFormat(format.Binary32, r)
		assert.Equal(t, p, uint32(got.Uint64()), "round-trip mismatch for 0x%X", p)
	}
}

// Scenario S2 (spec.md §8): non-canonical unnormal with exponent biased to
// the value representing unbiased exponent 0, J-bit clear, fraction zero —
// decodes to signed zero rather than being rejected.
func TestDecodeExtFloat80UnnormalZero(t *testing.T) {
	// sign=0, exp=0x3FFF (bias), significand field = 0 (J=0, fraction=0).
	bits := wide.FromUint64(80, 0).Or(wide.FromUint64(80, 0x3FFF).Shl(64))
	r := Decode(format.ExtFloat80, bits)
	assert.True(t, r.IsZero())
	assert.False(t, r.IsNegative())
}

// Scenario S3 (spec.md §8): explicit-bit value equivalence. decode({exp=1,
// sig=0}) must equal decode(+0); decode({exp=0, J=1, fraction=0}) (a
// pseudo-denormal) must equal decode({exp=1, J=1, fraction=0}) (the
// smallest normal), both 2^(1-bias).
func TestDecodeExtFloat80ValueEquivalence(t *testing.T) {
	unnormalZero := wide.FromUint64(80, 0).Or(wide.FromUint64(80, 1).Shl(64))
	plusZero := wide.FromUint64(80, 0)
	r1 := Decode(format.ExtFloat80, unnormalZero)
	r2 := Decode(format.ExtFloat80, plusZero)
	assert.True(t, r1.IsZero())
	assert.True(t, r2.IsZero())
	assert.Equal(t, r1.IsNegative(), r2.IsNegative())

	pseudoDenormal := wide.FromUint64(80, 1<<63) // exp=0, J=1, fraction=0
	smallestNormal := wide.FromUint64(80, uint64(1)<<63).Or(wide.FromUint64(80, 1).Shl(64))
	r3 := Decode(format.ExtFloat80, pseudoDenormal)
	r4 := Decode(format.ExtFloat80, smallestNormal)
	m3, s3 := r3.ToIntScale()
	m4, s4 := r4.ToIntScale()
	v3 := new(big.Float).SetInt(m3)
	v3.SetMantExp(v3, s3)
	v4 := new(big.Float).SetInt(m4)
	v4.SetMantExp(v4, s4)
	assert.Equal(t, 0, v3.Cmp(v4))
}

func TestDecodeFloat8E4M3FNUZNaN(t *testing.T) {
	// NaN is the would-be-negative-zero pattern: sign=1, rest clear.
	r := Decode(format.Float8E4M3FNUZ, wide.FromUint64(8, 0x80))
	assert.True(t, r.IsNaN())
}

func TestDecodeFloat8E4M3FNUZHasNoInfinity(t *testing.T) {
	// Largest finite magnitude pattern does not decode to infinity.
	r := Decode(format.Float8E4M3FNUZ, wide.FromUint64(8, 0x7F))
	assert.False(t, r.IsInfinite())
}

func TestDecodeTwosComplement8PositiveInfinity(t *testing.T) {
	posInf := Decode(format.TwosComplement8, wide.FromUint64(8, 0x7F))
	assert.True(t, posInf.IsInfinite())
	assert.False(t, posInf.IsNegative())
}

func TestDecodeTwosComplement8TrapNaNShadowsNegativeInfinity(t *testing.T) {
	// 0x80 (sign bit only) is simultaneously the trap-value NaN pattern
	// and the signed-integer-minimum infinity pattern. Phase 2 checks NaN
	// first, so this format's negative infinity is unreachable — a
	// consequence of combining NaNTrapValue with InfinityIntegerExtremes
	// on the same format, not a decode defect.
	r := Decode(format.TwosComplement8, wide.FromUint64(8, 0x80))
	assert.True(t, r.IsNaN())
}

func TestRoundToFormatOverflowSaturatesWhenNoInfinity(t *testing.T) {
	huge := apreal.FromIntScale(big.NewInt(1), 1000) // far beyond float8's range
	got := RoundToFormat(format.Float8E4M3FNUZ, huge)
	// Largest finite: exponent all ones (this format reserves no exponent
	// for infinity or NaN), mantissa all ones.
	assert.False(t, got.Eq(wide.FromUint64(8, 0)))
	decoded := Decode(format.Float8E4M3FNUZ, got)
	assert.False(t, decoded.IsInfinite())
	assert.False(t, decoded.IsNaN())
}

func TestRoundToFormatOverflowSaturatesToInfinityWhenSupported(t *testing.T) {
	huge := apreal.FromIntScale(big.NewInt(1), 1000)
	got := RoundToFormat(format.Binary32, huge)
	decoded := Decode(format.Binary32, got)
	assert.True(t, decoded.IsInfinite())
	assert.False(t, decoded.IsNegative())
}

func TestRoundToFormatNaNAndInfinityAndZero(t *testing.T) {
	assert.True(t, Decode(format.Binary32, RoundToFormat(format.Binary32, apreal.NaN())).IsNaN())

	inf := RoundToFormat(format.Binary32, apreal.SignedInfinity(true))
	decodedInf := Decode(format.Binary32, inf)
	assert.True(t, decodedInf.IsInfinite())
	assert.True(t, decodedInf.IsNegative())

	zero := RoundToFormat(format.Binary32, apreal.SignedZero(true))
	decodedZero := Decode(format.Binary32, zero)
	assert.True(t, decodedZero.IsZero())
	assert.True(t, decodedZero.IsNegative())
}

func TestRoundToFormatTiesToEven(t *testing.T) {
	// Exactly halfway between two representable binary32 values should
	// round to the even mantissa. 2^24 + 1 is not exactly representable
	// in 24 significand bits; 2^24 is even-mantissa-adjacent and should
	// win the tie.
	val := apreal.FromIntScale(big.NewInt((1<<24)+1), 0)
	got := RoundToFormat(format.Binary32, val)
	decoded := Decode(format.Binary32, got)
	m, s := decoded.ToIntScale()
	v := new(big.Float).SetInt(m)
	v.SetMantExp(v, s)
	expect := new(big.Float).SetInt64(1 << 24)
	assert.Equal(t, 0, v.Cmp(expect))
}
