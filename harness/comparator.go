package harness

import (
	"github.com/johnwbyrd/opine/adapter"
	"github.com/johnwbyrd/opine/wide"
)

// Comparator judges whether two adapter Outputs for the same input agree.
// spec.md §4.7 names three: bit-exact, bit-exact-ignoring-flags, and a
// NaN-aware variant that treats any two NaN bit patterns as equivalent.
type Comparator func(a, b adapter.Output) bool

// BitExact requires identical output bits and identical exception flags.
func BitExact(a, b adapter.Output) bool {
	return a.Bits.Eq(b.Bits) && a.Flags == b.Flags
}

// BitExactIgnoringFlags requires identical output bits, regardless of
// which exception flags each adapter happened to raise. Useful when
// comparing against Native, which does not track every IEEE exception
// the oracle distinguishes.
func BitExactIgnoringFlags(a, b adapter.Output) bool {
	return a.Bits.Eq(b.Bits)
}

// NaNAware treats any two NaN-quiet-pattern outputs as equal regardless
// of payload or sign, since IEEE 754 never mandates a specific NaN
// payload survive an operation — only that the result is some NaN.
// NaNAware needs to know whether a Format's bit pattern for a given
// Output is a NaN, which is a codec/format concern; harness takes a
// predicate rather than importing codec itself, keeping the comparator
// generic over any Format and avoiding an import cycle (codec already
// depends on nothing in harness, but harness stays decode-agnostic).
func NaNAware(isNaN func(bits wide.Value) bool) Comparator {
	return func(a, b adapter.Output) bool {
		if isNaN(a.Bits) && isNaN(b.Bits) {
			return true
		}
		return BitExact(a, b)
	}
}
