// Package format defines the Format Type: the currency token every other
// OPINE component consumes. A Format composes a bit-geometry description
// with a policy bundle and exposes the constants derived from that
// composition (resolved bias, storage width, lane count).
package format

import (
	"fmt"

	"github.com/johnwbyrd/opine/policy"
)

// Geometry describes the bit layout of a format's storage integer: every
// field sits at an explicit offset, unsigned, per spec.md §6.
type Geometry struct {
	SignBits, SignOffset uint8
	ExpBits, ExpOffset   uint8
	MantBits, MantOffset uint8
	TotalBits            uint8
}

// Format is a compile-time singleton in spirit: once constructed via New
// or MustNew, every field is immutable, and every other package treats a
// Format as a plain value to pass around, never to mutate.
type Format struct {
	Name     string
	Geometry Geometry
	Encoding policy.Encoding
	Rounding policy.Rounding
	Platform policy.Platform
}

// New validates the policy invariants (policy.Validate) and the geometry,
// returning an error naming the first violation instead of panicking —
// the Go analogue of a compile-time constraint failure (spec.md §9).
func New(name string, g Geometry, enc policy.Encoding, rounding policy.Rounding, platform policy.Platform) (Format, error) {
	if err := policy.Validate(enc); err != nil {
		return Format{}, err
	}
	if int(g.SignBits)+int(g.ExpBits)+int(g.MantBits) > int(g.TotalBits) {
		return Format{}, fmt.Errorf("format %s: fields (%d+%d+%d) exceed total-bits %d",
			name, g.SignBits, g.ExpBits, g.MantBits, g.TotalBits)
	}
	if g.TotalBits == 0 || g.TotalBits > 128 {
		return Format{}, fmt.Errorf("format %s: total-bits %d out of range [1,128]", name, g.TotalBits)
	}
	if rounding > policy.MaxRounding {
		return Format{}, fmt.Errorf("format %s: unknown rounding mode %d", name, rounding)
	}
	if platform == nil {
		platform = policy.GenericPlatform{}
	}
	return Format{Name: name, Geometry: g, Encoding: enc, Rounding: rounding, Platform: platform}, nil
}

// MustNew panics if New returns an error. Used for the package-level
// built-in format singletons (see builtins.go).
func MustNew(name string, g Geometry, enc policy.Encoding, rounding policy.Rounding, platform policy.Platform) Format {
	f, err := New(name, g, enc, rounding, platform)
	if err != nil {
		panic(err)
	}
	return f
}

// ResolvedBias returns the format's exponent bias, deriving it from the
// exponent width and sign encoding when the Encoding requested AutoBias.
func (f Format) ResolvedBias() int64 {
	return f.Encoding.Bias.Resolve(f.Geometry.ExpBits, f.Encoding.Sign)
}

// StorageWidth returns the width, in bits, of the smallest Wide
// Bit-Container that can hold this format's total-bits — the first of 8,
// 16, 32, 64, 80, 96 and 128 that is >= TotalBits, capped at 128.
func (f Format) StorageWidth() uint8 {
	w := f.Geometry.TotalBits
	for _, candidate := range []uint8{8, 16, 32, 64, 80, 96, 128} {
		if candidate >= w {
			return candidate
		}
	}
	return 128
}

// LaneCount returns how many copies of this format pack into its storage
// container's natural SWAR width (128 bits), a derived constant spec.md
// §3 lists even though no vectorized adapter ships in this scope.
func (f Format) LaneCount() uint8 {
	total := f.Geometry.TotalBits
	if total == 0 {
		return 0
	}
	return 128 / total
}

// MaxFiniteBiasedExponent returns (2^E - 2) when the maximum encoded
// exponent is reserved for infinity/NaN, else (2^E - 1) (spec.md §4.3.2).
func (f Format) MaxFiniteBiasedExponent() int64 {
	max := (int64(1) << f.Geometry.ExpBits) - 1
	if f.Encoding.Infinity == policy.InfinityReservedExponent || f.Encoding.NaN == policy.NaNReservedExponent {
		return max - 1
	}
	return max
}

// SignificandWidth returns the rounding-mantissa width M' used by
// round-to-format: M for implicit-bit formats, M-1 for explicit-bit
// formats (spec.md §4.3.2).
func (f Format) SignificandWidth() uint8 {
	if bool(f.Encoding.Implicit) {
		return f.Geometry.MantBits
	}
	return f.Geometry.MantBits - 1
}

func (f Format) String() string {
	return fmt.Sprintf("Format{%s: %d.%d.%d/%d}", f.Name,
		f.Geometry.SignBits, f.Geometry.ExpBits, f.Geometry.MantBits, f.Geometry.TotalBits)
}
