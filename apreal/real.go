// Package apreal implements the Arbitrary-Precision Real: an owned handle
// to a real value carried at a fixed 256-bit working precision, used by
// the oracle adapter to compute the mathematically correct result of an
// operation before it is rounded back to a target format. Precision of
// 256 bits is unconditionally lossless for add/sub/mul of any IEEE
// binary128 operand pair (spec.md §4.2).
package apreal

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Precision is the fixed working precision, in bits, of every Real.
const Precision = 256

type kind uint8

const (
	kindNaN kind = iota
	kindFinite
	kindZero
	kindInfinite
)

// Real is an owned handle to an exact or 256-bit-rounded real value. The
// zero Real is NaN, matching the teacher's convention that an
// unpacked/un-constructed special value defaults to the "something went
// wrong" state rather than to a silently-finite zero.
//
// Real must not be copied by a caller that intends to keep using the
// source after taking a copy elsewhere; every constructor and arithmetic
// method returns a fresh value, and Move documents the one place content
// is intentionally taken from another Real.
type Real struct {
	k   kind
	neg bool
	f   *big.Float // non-nil only when k == kindFinite
}

func newFloat() *big.Float {
	return new(big.Float).SetPrec(Precision).SetMode(big.ToNearestEven)
}

// NaN returns a quiet-NaN-equivalent Real.
func NaN() Real { return Real{k: kindNaN} }

// SignedInfinity returns a signed infinite Real.
func SignedInfinity(negative bool) Real { return Real{k: kindInfinite, neg: negative} }

// SignedZero returns a signed zero Real.
func SignedZero(negative bool) Real { return Real{k: kindZero, neg: negative} }

// FromIntScale returns the exact value mantissa × 2^scale. The sign is
// taken from mantissa's own sign; a zero mantissa yields positive zero
// (callers needing signed zero use SignedZero directly).
func FromIntScale(mantissa *big.Int, scale int) Real {
	if mantissa.Sign() == 0 {
		return SignedZero(false)
	}
	f := newFloat().SetInt(mantissa)
	f.SetMantExp(f, scale)
	neg := mantissa.Sign() < 0
	return Real{k: kindFinite, neg: neg, f: f}
}

// FromFloat64 returns the exact Real corresponding to a Go float64,
// preserving NaN/Inf/signed-zero, used by the soft-float adapter to bring
// its hardware float64 results back into the codec (spec.md §4.6).
func FromFloat64(v float64) Real {
	switch {
	case math.IsNaN(v):
		return NaN()
	case math.IsInf(v, 1):
		return SignedInfinity(false)
	case math.IsInf(v, -1):
		return SignedInfinity(true)
	case v == 0:
		return SignedZero(math.Signbit(v))
	default:
		f := newFloat().SetFloat64(v)
		return Real{k: kindFinite, neg: f.Sign() < 0, f: f}
	}
}

// Float64 returns r rounded to the nearest float64, with the usual
// overflow-to-infinity behavior when r's magnitude exceeds float64 range.
func (r Real) Float64() float64 {
	switch r.k {
	case kindNaN:
		return math.NaN()
	case kindInfinite:
		if r.neg {
			return math.Inf(-1)
		}
		return math.Inf(1)
	case kindZero:
		return math.Copysign(0, signF(r.neg))
	default:
		v, _ := r.f.Float64()
		return v
	}
}

func signF(neg bool) float64 {
	if neg {
		return -1
	}
	return 1
}

// Move transfers r's content to the returned Real and leaves r set to NaN,
// the Go analogue of the teacher's move-leaves-source-in-defined-NaN-state
// semantics for a uniquely owned handle (spec.md §5, "Move-on-assign
// leaves the source in a defined NaN state").
func (r *Real) Move() Real {
	out := *r
	*r = NaN()
	return out
}

// IsNaN reports whether r is Not-a-Number.
func (r Real) IsNaN() bool { return r.k == kindNaN }

// IsInfinite reports whether r is positive or negative infinity.
func (r Real) IsInfinite() bool { return r.k == kindInfinite }

// IsZero reports whether r is positive or negative zero.
func (r Real) IsZero() bool {
	if r.k == kindZero {
		return true
	}
	return r.k == kindFinite && r.f.Sign() == 0
}

// IsNegative reports the sign bit, distinct from Sign(): a signed zero
// or signed infinity is negative even though Sign() reports 0 or ±1
// without that distinction collapsing zero. Spec.md §9 calls this out
// explicitly as a property naive implementations lose.
func (r Real) IsNegative() bool {
	switch r.k {
	case kindZero, kindInfinite:
		return r.neg
	case kindFinite:
		return r.f.Sign() < 0
	default:
		return false
	}
}

// Sign returns -1, 0, or +1. Unlike IsNegative, Sign does not distinguish
// the two zeros: both return 0.
func (r Real) Sign() int {
	switch r.k {
	case kindZero:
		return 0
	case kindInfinite:
		if r.neg {
			return -1
		}
		return 1
	case kindFinite:
		return r.f.Sign()
	default:
		return 0
	}
}

// ToIntScale converts a finite Real back to mantissa × 2^scale form for
// re-encoding by the codec: mantissa × 2^scale == r, exactly, with the
// trailing zero bits of mantissa shifted into scale (so 1.0 is (1, 0) and
// a zero Real is (0, 0)). It panics
// if r is not finite; callers must check IsNaN/IsInfinite/IsZero first,
// exactly as the codec's round-to-format does before calling it.
func (r Real) ToIntScale() (mantissa *big.Int, scale int) {
	if r.k == kindZero {
		return new(big.Int), 0
	}
	if r.k != kindFinite {
		panic("apreal: ToIntScale on non-finite Real")
	}

	// big.Float's 'b' format is defined to be exact: a decimal integer
	// mantissa and a base-2 exponent such that mantissa*2^exponent == x,
	// with no precision loss from the fixed working width.
	text := r.f.Text('b', 0)
	neg := false
	if strings.HasPrefix(text, "-") {
		neg = true
		text = text[1:]
	}
	parts := strings.SplitN(text, "p", 2)
	mant, ok := new(big.Int).SetString(parts[0], 10)
	if !ok {
		panic("apreal: malformed mantissa in " + text)
	}
	exp, err := strconv.Atoi(parts[1])
	if err != nil {
		panic("apreal: malformed exponent in " + text)
	}
	if tz := mant.TrailingZeroBits(); tz > 0 {
		mant.Rsh(mant, tz)
		exp += int(tz)
	}
	if neg {
		mant.Neg(mant)
	}
	return mant, exp
}
