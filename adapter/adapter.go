// Package adapter implements the Implementation Adapters of spec.md §4.6:
// uniform binary/unary/ternary dispatch surfaces over three different
// ways of computing the same arithmetic — an arbitrary-precision oracle,
// a bit-exact soft-float reference, and the host's native FPU — so the
// Differential Harness can run the same operation through two of them
// and compare.
package adapter

import (
	"github.com/johnwbyrd/opine/policy"
	"github.com/johnwbyrd/opine/wide"
)

// BinaryTag enumerates the binary dispatch operations.
type BinaryTag uint8

const (
	Add BinaryTag = iota
	Sub
	Mul
	Div
	Remainder
	Equal
	LessThan
	LessOrEqual
)

// UnaryTag enumerates the unary dispatch operations.
type UnaryTag uint8

const (
	Sqrt UnaryTag = iota
	Negate
	Absolute
)

// TernaryTag enumerates the ternary dispatch operations.
type TernaryTag uint8

const (
	FMA TernaryTag = iota
)

// Output is a Test Output: a bit pattern plus the exception flags the
// operation raised. Comparison ops encode their boolean result as 0 or 1
// in Bits rather than a Format-encoded value (spec.md §4.6).
type Output struct {
	Bits  wide.Value
	Flags policy.Exception
}

// Adapter is the uniform dispatch surface every implementation strategy
// exposes. All three adapters are interchangeable from the harness's
// point of view.
type Adapter interface {
	Name() string
	Binary(tag BinaryTag, a, b wide.Value) Output
	Unary(tag UnaryTag, a wide.Value) Output
	Ternary(tag TernaryTag, a, b, c wide.Value) Output
}
