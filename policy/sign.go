// Package policy defines the orthogonal policy axes that describe a
// floating-point format: sign encoding, special-value encoding, denormal
// handling, rounding, and the exception/platform policies layered on top.
// Values here are pure data; they carry no arithmetic behavior of their
// own, only the vocabulary that the format and codec packages consume.
package policy

import "fmt"

// SignEncoding describes how the sign of a value relates to its most
// significant bit and how a negative magnitude is recovered from the
// stored pattern.
type SignEncoding uint8

const (
	// SignMagnitude stores an explicit sign bit alongside an unsigned
	// magnitude. This is the IEEE 754 convention.
	SignMagnitude SignEncoding = iota
	// TwosComplement stores negative values as the two's-complement
	// negation of the whole storage word.
	TwosComplement
	// OnesComplement stores negative values with every field bit
	// (exponent and mantissa) inverted.
	OnesComplement
)

func (s SignEncoding) String() string {
	switch s {
	case SignMagnitude:
		return "SignMagnitude"
	case TwosComplement:
		return "TwosComplement"
	case OnesComplement:
		return "OnesComplement"
	default:
		return fmt.Sprintf("SignEncoding(%d)", uint8(s))
	}
}
