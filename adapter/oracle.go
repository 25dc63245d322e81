package adapter

import (
	"github.com/johnwbyrd/opine/apreal"
	"github.com/johnwbyrd/opine/codec"
	"github.com/johnwbyrd/opine/format"
	"github.com/johnwbyrd/opine/policy"
	"github.com/johnwbyrd/opine/wide"
)

// Oracle is the arbitrary-precision reference adapter: it decodes inputs
// via the codec, performs exact arithmetic at apreal's fixed 256-bit
// precision, and rounds the result back. Negate and Absolute bypass
// decode/re-encode entirely, since those are pure bit manipulations that
// must preserve non-canonical encodings exactly (spec.md §4.6, §9).
type Oracle struct {
	Format format.Format
}

func (o Oracle) Name() string { return "oracle(" + o.Format.Name + ")" }

func (o Oracle) Binary(tag BinaryTag, a, b wide.Value) Output {
	switch tag {
	case Equal, LessThan, LessOrEqual:
		return o.compare(tag, a, b)
	}

	ra := codec.Decode(o.Format, a)
	rb := codec.Decode(o.Format, b)

	var result apreal.Real
	var flags policy.Exception
	switch tag {
	case Add:
		result = ra.Add(rb)
	case Sub:
		result = ra.Sub(rb)
	case Mul:
		result = ra.Mul(rb)
	case Div:
		if rb.IsZero() && !ra.IsZero() && !ra.IsNaN() {
			flags |= policy.ExceptionDivisionByZero
		}
		result = ra.Div(rb)
	case Remainder:
		result = ra.Remainder(rb)
	}

	if result.IsNaN() && !ra.IsNaN() && !rb.IsNaN() {
		flags |= policy.ExceptionInvalidOperation
	}
	if result.IsInfinite() && !ra.IsInfinite() && !rb.IsInfinite() {
		flags |= policy.ExceptionOverflow
	}

	return Output{Bits: codec.RoundToFormat(o.Format, result), Flags: flags}
}

func (o Oracle) compare(tag BinaryTag, a, b wide.Value) Output {
	total := o.Format.Geometry.TotalBits
	falseV, trueV := wide.FromUint64(total, 0), wide.FromUint64(total, 1)

	ra := codec.Decode(o.Format, a)
	rb := codec.Decode(o.Format, b)
	if ra.IsNaN() || rb.IsNaN() {
		// Unordered: every IEEE comparison except not-equal is false.
		return Output{Bits: falseV, Flags: policy.ExceptionInvalidOperation}
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
	if result {
		return Output{Bits: trueV}
	}
	return Output{Bits: falseV}
}

func (o Oracle) Unary(tag UnaryTag, a wide.Value) Output {
	switch tag {
	case Negate:
		return Output{Bits: codec.NegateBits(o.Format, a)}
	case Absolute:
		return Output{Bits: codec.AbsBits(o.Format, a)}
	case Sqrt:
		ra := codec.Decode(o.Format, a)
		var flags policy.Exception
		if ra.IsNegative() && !ra.IsZero() {
			flags |= policy.ExceptionInvalidOperation
		}
		result := ra.Sqrt()
		return Output{Bits: codec.RoundToFormat(o.Format, result), Flags: flags}
	default:
		return Output{}
	}
}

func (o Oracle) Ternary(tag TernaryTag, a, b, c wide.Value) Output {
	ra := codec.Decode(o.Format, a)
	rb := codec.Decode(o.Format, b)
	rc := codec.Decode(o.Format, c)
	result := ra.FMA(rb, rc)
	var flags policy.Exception
	if result.IsNaN() && !ra.IsNaN() && !rb.IsNaN() && !rc.IsNaN() {
		flags |= policy.ExceptionInvalidOperation
	}
	return Output{Bits: codec.RoundToFormat(o.Format, result), Flags: flags}
}
