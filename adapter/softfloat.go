package adapter

import (
	"math"

	"github.com/johnwbyrd/opine/apreal"
	"github.com/johnwbyrd/opine/codec"
	"github.com/johnwbyrd/opine/format"
	"github.com/johnwbyrd/opine/policy"
	"github.com/johnwbyrd/opine/wide"
)

// SoftFloat is the bit-exact soft-float reference adapter (spec.md §4.6
// item 2): it shares the codec's decode/encode with the oracle, but
// computes results by bridging through Go's hardware float64 rather than
// apreal's fixed 256-bit working precision. For any Format whose
// significand is wider than float64's 53 bits — binary128, extFloat80 —
// this is a genuinely different, lower-precision computational path than
// Oracle, which is exactly the kind of implementation disagreement the
// differential harness exists to surface; for binary32/binary64 it
// should agree with Oracle exactly (Testable Property 5).
type SoftFloat struct {
	Format format.Format
}

func (s SoftFloat) Name() string { return "softfloat(" + s.Format.Name + ")" }

func (s SoftFloat) Binary(tag BinaryTag, a, b wide.Value) Output {
	ra := codec.Decode(s.Format, a)
	rb := codec.Decode(s.Format, b)

	if tag == Equal || tag == LessThan || tag == LessOrEqual {
		return s.compare(tag, ra, rb)
	}

	x, y := ra.Float64(), rb.Float64()
	var flags policy.Exception
	var z float64
	switch tag {
	case Add:
		z = x + y
	case Sub:
		z = x - y
	case Mul:
		z = x * y
	case Div:
		if y == 0 && x != 0 && !math.IsNaN(x) {
			flags |= policy.ExceptionDivisionByZero
		}
		z = x / y
	case Remainder:
		z = math.Remainder(x, y)
	}
	if math.IsNaN(z) && !ra.IsNaN() && !rb.IsNaN() {
		flags |= policy.ExceptionInvalidOperation
	}
	if math.IsInf(z, 0) && !ra.IsInfinite() && !rb.IsInfinite() {
		flags |= policy.ExceptionOverflow
	}
	return Output{Bits: codec.RoundToFormat(s.Format, apreal.FromFloat64(z)), Flags: flags}
}

func (s SoftFloat) compare(tag BinaryTag, ra, rb apreal.Real) Output {
	total := s.Format.Geometry.TotalBits
	if ra.IsNaN() || rb.IsNaN() {
		return Output{Bits: wide.FromUint64(total, 0), Flags: policy.ExceptionInvalidOperation}
	}
	cmp := ra.Cmp(rb)
	var result bool
	switch tag {
	case Equal:
		result = cmp == 0
	case LessThan:
		result = cmp < 0
	case LessOrEqual:
		result = cmp <= 0
	}
	return boolOutput(total, result)
}

func (s SoftFloat) Unary(tag UnaryTag, a wide.Value) Output {
	switch tag {
	case Negate:
		return Output{Bits: codec.NegateBits(s.Format, a)}
	case Absolute:
		return Output{Bits: codec.AbsBits(s.Format, a)}
	case Sqrt:
		ra := codec.Decode(s.Format, a)
		x := ra.Float64()
		var flags policy.Exception
		if x < 0 {
			flags |= policy.ExceptionInvalidOperation
		}
		z := math.Sqrt(x)
		return Output{Bits: codec.RoundToFormat(s.Format, apreal.FromFloat64(z)), Flags: flags}
	default:
		return Output{}
	}
}

func (s SoftFloat) Ternary(tag TernaryTag, a, b, c wide.Value) Output {
	ra := codec.Decode(s.Format, a)
	rb := codec.Decode(s.Format, b)
	rc := codec.Decode(s.Format, c)
	result := math.FMA(ra.Float64(), rb.Float64(), rc.Float64())
	var flags policy.Exception
	if math.IsNaN(result) && !ra.IsNaN() && !rb.IsNaN() && !rc.IsNaN() {
		flags |= policy.ExceptionInvalidOperation
	}
	return Output{Bits: codec.RoundToFormat(s.Format, apreal.FromFloat64(result)), Flags: flags}
}
