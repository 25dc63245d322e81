package adapter

import (
	"fmt"
	"math"

	"github.com/johnwbyrd/opine/format"
	"github.com/johnwbyrd/opine/policy"
	"github.com/johnwbyrd/opine/wide"
	"go.uber.org/zap"
)

// Native wraps the host's native hardware floating-point arithmetic for
// the Format Types where one applies: binary32 and binary64, via
// bit-reinterpretation between the Wide Bit-Container and Go's float32/
// float64 (spec.md §4.6 item 3). Every dispatch method of a Native adapter
// whose Format is not 32 or 64 bits wide panics, since there is no native
// hardware type to bridge to; neither Native nor the opine-harness driver
// consults f.Platform.HasNativeFloat.
type Native struct {
	Format format.Format
}

func (n Native) Name() string { return "native(" + n.Format.Name + ")" }

func (n Native) checkWidth() {
	w := n.Format.Geometry.TotalBits
	if w != 32 && w != 64 {
		msg := fmt.Sprintf("adapter: native has no hardware type for %d-bit format %q", w, n.Format.Name)
		Logger().Error(msg, zap.Uint8("totalBits", w), zap.String("format", n.Format.Name))
		panic(msg)
	}
}

func (n Native) toFloat64(bits wide.Value) float64 {
	n.checkWidth()
	if n.Format.Geometry.TotalBits == 32 {
		return float64(math.Float32frombits(uint32(bits.Uint64())))
	}
	return math.Float64frombits(bits.Uint64())
}

func (n Native) fromFloat64(v float64) wide.Value {
	n.checkWidth()
	w := n.Format.Geometry.TotalBits
	if w == 32 {
		return wide.FromUint64(32, uint64(math.Float32bits(float32(v))))
	}
	return wide.FromUint64(64, math.Float64bits(v))
}

func (n Native) Binary(tag BinaryTag, a, b wide.Value) Output {
	n.checkWidth()
	total := n.Format.Geometry.TotalBits
	x, y := n.toFloat64(a), n.toFloat64(b)

	switch tag {
	case Equal:
		return boolOutput(total, x == y)
	case LessThan:
		return boolOutput(total, x < y)
	case LessOrEqual:
		return boolOutput(total, x <= y)
	}

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
	if math.IsNaN(z) && !math.IsNaN(x) && !math.IsNaN(y) {
		flags |= policy.ExceptionInvalidOperation
	}
	if math.IsInf(z, 0) && !math.IsInf(x, 0) && !math.IsInf(y, 0) {
		flags |= policy.ExceptionOverflow
	}
	return Output{Bits: n.fromFloat64(z), Flags: flags}
}

func boolOutput(totalBits uint8, v bool) Output {
	if v {
		return Output{Bits: wide.FromUint64(totalBits, 1)}
	}
	return Output{Bits: wide.FromUint64(totalBits, 0)}
}

func (n Native) Unary(tag UnaryTag, a wide.Value) Output {
	n.checkWidth()
	switch tag {
	case Negate:
		return Output{Bits: n.fromFloat64(-n.toFloat64(a))}
	case Absolute:
		return Output{Bits: n.fromFloat64(math.Abs(n.toFloat64(a)))}
	case Sqrt:
		x := n.toFloat64(a)
		var flags policy.Exception
		if x < 0 {
			flags |= policy.ExceptionInvalidOperation
		}
		return Output{Bits: n.fromFloat64(math.Sqrt(x)), Flags: flags}
	default:
		return Output{}
	}
}

func (n Native) Ternary(tag TernaryTag, a, b, c wide.Value) Output {
	n.checkWidth()
	x, y, z := n.toFloat64(a), n.toFloat64(b), n.toFloat64(c)
	result := math.FMA(x, y, z)
	var flags policy.Exception
	if math.IsNaN(result) && !math.IsNaN(x) && !math.IsNaN(y) && !math.IsNaN(z) {
		flags |= policy.ExceptionInvalidOperation
	}
	return Output{Bits: n.fromFloat64(result), Flags: flags}
}
