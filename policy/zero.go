package policy

import "fmt"

// ZeroSign describes whether a format can distinguish negative zero from
// positive zero.
type ZeroSign uint8

const (
	// ZeroSignExists means the format retains a distinct negative-zero
	// encoding.
	ZeroSignExists ZeroSign = iota
	// ZeroSignDoesNotExist means negative results that round to zero
	// collapse to the single, positive, zero encoding.
	ZeroSignDoesNotExist
)

func (z ZeroSign) String() string {
	switch z {
	case ZeroSignExists:
		return "ZeroSignExists"
	case ZeroSignDoesNotExist:
		return "ZeroSignDoesNotExist"
	default:
		return fmt.Sprintf("ZeroSign(%d)", uint8(z))
	}
}

// ImplicitBit reports whether a format's normals omit the leading
// significand bit from the stored mantissa field (true), or store it
// explicitly as the "J-bit" (false), which admits non-canonical
// encodings.
type ImplicitBit bool

const (
	// ImplicitBitPresent is the IEEE binary convention: normals have an
	// understood leading 1 that is not stored.
	ImplicitBitPresent ImplicitBit = true
	// ImplicitBitAbsent is the x87-extended-precision convention: the
	// leading "J-bit" is stored explicitly, and can therefore disagree
	// with the exponent field (an "unnormal").
	ImplicitBitAbsent ImplicitBit = false
)

func (i ImplicitBit) String() string {
	if i {
		return "ImplicitBitPresent"
	}
	return "ImplicitBitAbsent"
}
