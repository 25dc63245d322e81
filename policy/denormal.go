package policy

import "fmt"

// DenormalMode describes a format's handling of subnormal (denormal)
// values: those with a zero stored exponent and a non-zero mantissa.
type DenormalMode uint8

const (
	// DenormalFull supports gradual underflow: subnormals decode and
	// round normally, with no implicit leading bit.
	DenormalFull DenormalMode = iota
	// DenormalFlushOutput flushes subnormal results of rounding to
	// signed zero, but still decodes subnormal inputs.
	DenormalFlushOutput
	// DenormalFlushInput treats subnormal inputs as signed zero on
	// decode, but can still produce subnormal results when rounding.
	DenormalFlushInput
	// DenormalFlushBoth flushes subnormals to zero on both decode and
	// round-to-format.
	DenormalFlushBoth
	// DenormalNone means the format has no subnormal range: the
	// smallest normal is the smallest representable non-zero value.
	DenormalNone
)

func (d DenormalMode) String() string {
	switch d {
	case DenormalFull:
		return "DenormalFull"
	case DenormalFlushOutput:
		return "DenormalFlushOutput"
	case DenormalFlushInput:
		return "DenormalFlushInput"
	case DenormalFlushBoth:
		return "DenormalFlushBoth"
	case DenormalNone:
		return "DenormalNone"
	default:
		return fmt.Sprintf("DenormalMode(%d)", uint8(d))
	}
}
