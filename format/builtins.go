package format

import "github.com/johnwbyrd/opine/policy"

// ieeeEncoding is the standard layout shared by every reserved-exponent,
// implicit-bit IEEE binary format: mantissa at offset 0, exponent above
// it, sign at the MSB (spec.md §6 "Standard layout").
var ieeeEncoding = policy.Encoding{
	Sign:     policy.SignMagnitude,
	NaN:      policy.NaNReservedExponent,
	Infinity: policy.InfinityReservedExponent,
	Denormal: policy.DenormalFull,
	Zero:     policy.ZeroSignExists,
	Implicit: policy.ImplicitBitPresent,
	Bias:     policy.AutoBias,
}

func ieeeGeometry(expBits, mantBits, totalBits uint8) Geometry {
	return Geometry{
		SignBits: 1, SignOffset: totalBits - 1,
		ExpBits: expBits, ExpOffset: mantBits,
		MantBits: mantBits, MantOffset: 0,
		TotalBits: totalBits,
	}
}

// Binary16 is the IEEE 754 binary16 ("half") format: 1 sign, 5 exponent,
// 10 mantissa bits.
var Binary16 = MustNew("binary16", ieeeGeometry(5, 10, 16), ieeeEncoding, policy.TiesToEven, policy.GenericPlatform{})

// Binary32 is the IEEE 754 binary32 ("single") format.
var Binary32 = MustNew("binary32", ieeeGeometry(8, 23, 32), ieeeEncoding, policy.TiesToEven, policy.GenericPlatform{})

// Binary64 is the IEEE 754 binary64 ("double") format.
var Binary64 = MustNew("binary64", ieeeGeometry(11, 52, 64), ieeeEncoding, policy.TiesToEven, policy.GenericPlatform{})

// Binary128 is the IEEE 754 binary128 ("quad") format.
var Binary128 = MustNew("binary128", ieeeGeometry(15, 112, 128), ieeeEncoding, policy.TiesToEven, policy.GenericPlatform{})

// ExtFloat80 is the x87 80-bit extended-precision format: explicit
// leading J-bit (no implicit bit), which is exactly why its decode
// pipeline must accept non-canonical encodings (spec.md §4.3.1, scenario
// S2/S3).
var ExtFloat80 = MustNew("extFloat80", Geometry{
	SignBits: 1, SignOffset: 79,
	ExpBits: 15, ExpOffset: 64,
	MantBits: 64, MantOffset: 0,
	TotalBits: 80,
}, policy.Encoding{
	Sign:     policy.SignMagnitude,
	NaN:      policy.NaNReservedExponent,
	Infinity: policy.InfinityReservedExponent,
	Denormal: policy.DenormalFull,
	Zero:     policy.ZeroSignExists,
	Implicit: policy.ImplicitBitAbsent,
	Bias:     policy.AutoBias,
}, policy.TiesToEven, policy.GenericPlatform{})

// Float8E4M3FNUZ is an 8-bit ML training format: sign-magnitude, 4
// exponent bits, 3 mantissa bits, NaN is the would-be-negative-zero
// pattern, no infinity, no negative zero (scenario S5).
var Float8E4M3FNUZ = MustNew("float8e4m3fnuz", ieeeGeometry(4, 3, 8), policy.Encoding{
	Sign:     policy.SignMagnitude,
	NaN:      policy.NaNNegativeZeroPattern,
	Infinity: policy.InfinityNone,
	Denormal: policy.DenormalFull,
	Zero:     policy.ZeroSignDoesNotExist,
	Implicit: policy.ImplicitBitPresent,
	Bias:     policy.ExplicitBias(8),
}, policy.TiesToEven, policy.GenericPlatform{})

// TwosComplement8 is an 8-bit format (1 sign, 3 exponent, 4 mantissa)
// with two's-complement sign encoding, used by the exhaustive monotonic
// ordering scenario (S4): the whole word, read as a signed integer, is
// monotonic in the decoded real value.
var TwosComplement8 = MustNew("twosComplement8", ieeeGeometry(3, 4, 8), policy.Encoding{
	Sign:     policy.TwosComplement,
	NaN:      policy.NaNTrapValue,
	Infinity: policy.InfinityIntegerExtremes,
	Denormal: policy.DenormalFull,
	Zero:     policy.ZeroSignDoesNotExist,
	Implicit: policy.ImplicitBitPresent,
	Bias:     policy.AutoBias,
}, policy.TiesToEven, policy.GenericPlatform{})

// IEEEFormats lists the formats used by Testable Property 5 (oracle ↔
// reference agreement across the IEEE family).
var IEEEFormats = []Format{Binary16, Binary32, Binary64, ExtFloat80, Binary128}
