package policy

import "fmt"

// NaNEncoding describes how (or whether) a format represents Not-a-Number.
type NaNEncoding uint8

const (
	// NaNReservedExponent is the IEEE-style encoding: the maximum
	// exponent with a non-zero fraction.
	NaNReservedExponent NaNEncoding = iota
	// NaNTrapValue encodes NaN as the single bit pattern at the
	// two's-complement extremum (sign bit set, all else clear).
	NaNTrapValue
	// NaNNegativeZeroPattern encodes NaN as {sign=1, exponent=0,
	// mantissa=0} — the pattern that would otherwise be negative zero.
	NaNNegativeZeroPattern
	// NaNNone means the format has no NaN representation at all.
	NaNNone
)

func (n NaNEncoding) String() string {
	switch n {
	case NaNReservedExponent:
		return "NaNReservedExponent"
	case NaNTrapValue:
		return "NaNTrapValue"
	case NaNNegativeZeroPattern:
		return "NaNNegativeZeroPattern"
	case NaNNone:
		return "NaNNone"
	default:
		return fmt.Sprintf("NaNEncoding(%d)", uint8(n))
	}
}
