// Package edgecase implements the Edge-Case Generator (spec.md §4.4): for
// a given Format Type, a fixed list of bit patterns chosen because they
// sit on a boundary an implementation is likely to get wrong — the two
// zeros, both infinities, NaN payload extremes, the subnormal/normal
// boundary, the finite/infinite boundary, a handful of named values and
// their neighboring ULPs, and, for explicit-bit formats, every class of
// non-canonical encoding the codec must decode without rejecting.
package edgecase

import (
	"math/big"

	"github.com/johnwbyrd/opine/apreal"
	"github.com/johnwbyrd/opine/codec"
	"github.com/johnwbyrd/opine/format"
	"github.com/johnwbyrd/opine/policy"
	"github.com/johnwbyrd/opine/wide"
)

// Generate returns the fixed interesting-bit-pattern list for f, in a
// stable order, with duplicates collapsed (some categories coincide for
// small formats, e.g. float8's maximum subnormal and minimum normal can
// be adjacent bit patterns that are still worth keeping once each).
func Generate(f format.Format) []wide.Value {
	g := f.Geometry
	enc := f.Encoding
	M := g.MantBits

	var out []wide.Value
	add := func(v wide.Value) { out = append(out, v) }

	add(codec.RoundToFormat(f, apreal.SignedZero(false)))
	if enc.Zero == policy.ZeroSignExists {
		add(codec.RoundToFormat(f, apreal.SignedZero(true)))
	}

	if enc.Infinity != policy.InfinityNone {
		add(codec.RoundToFormat(f, apreal.SignedInfinity(false)))
		add(codec.RoundToFormat(f, apreal.SignedInfinity(true)))
	}

	// For explicit-bit formats the J-bit is stored in the mantissa field:
	// canonical NaNs and normals carry it, canonical subnormals do not.
	jBit := new(big.Int)
	if !bool(enc.Implicit) {
		jBit.Lsh(big.NewInt(1), uint(M-1))
	}

	if enc.NaN == policy.NaNReservedExponent {
		maxExp := (uint64(1) << g.ExpBits) - 1
		quietBit := new(big.Int).Lsh(big.NewInt(1), uint(f.SignificandWidth()-1))
		quietBit.Or(quietBit, jBit)
		allOnes := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(M)), big.NewInt(1))
		add(codec.Pack(f, false, maxExp, quietBit))                             // quiet NaN, minimum payload
		add(codec.Pack(f, false, maxExp, allOnes))                              // quiet NaN, maximum payload
		add(codec.Pack(f, false, maxExp, new(big.Int).Or(jBit, big.NewInt(1)))) // signaling NaN
	} else if enc.NaN != policy.NaNNone {
		// Trap-value and negative-zero-pattern NaN are single bit
		// patterns; RoundToFormat already emits the canonical one.
		add(codec.RoundToFormat(f, apreal.NaN()))
	}

	bias := f.ResolvedBias()
	maxFiniteExp := f.MaxFiniteBiasedExponent()
	one := big.NewInt(1)
	allOnesMant := new(big.Int).Sub(new(big.Int).Lsh(one, uint(M)), one)
	maxSubnormalMant := new(big.Int).Sub(new(big.Int).Lsh(one, uint(f.SignificandWidth())), one)

	for _, neg := range []bool{false, true} {
		add(codec.Pack(f, neg, 0, one))                            // minimum subnormal
		add(codec.Pack(f, neg, 0, maxSubnormalMant))               // maximum subnormal
		add(codec.Pack(f, neg, 1, jBit))                           // minimum normal
		add(codec.Pack(f, neg, uint64(maxFiniteExp), allOnesMant)) // maximum finite
	}

	named := []int64{1, -1, 2}
	for _, n := range named {
		add(codec.RoundToFormat(f, apreal.FromIntScale(big.NewInt(n), 0)))
	}
	add(codec.RoundToFormat(f, apreal.FromIntScale(big.NewInt(1), -1))) // 0.5

	oneVal := apreal.FromIntScale(big.NewInt(1), 0)
	epsilon := apreal.FromIntScale(big.NewInt(1), -int(f.SignificandWidth()))
	add(codec.RoundToFormat(f, oneVal.Add(epsilon))) // 1.0 + 1 ULP
	add(codec.RoundToFormat(f, oneVal.Sub(apreal.FromIntScale(big.NewInt(1), -int(f.SignificandWidth())-1)))) // 1.0 - 1 ULP
	add(codec.RoundToFormat(f, epsilon)) // machine epsilon, 2^-M'

	smallestNormal := apreal.FromIntScale(big.NewInt(1), int(1-bias))
	normalULP := apreal.FromIntScale(big.NewInt(1), int(1-bias)-int(f.SignificandWidth()))
	add(codec.RoundToFormat(f, smallestNormal.Add(normalULP))) // minimum normal + 1 ULP

	if !bool(enc.Implicit) {
		out = append(out, explicitNonCanonical(f)...)
	}

	return dedupe(out)
}

// explicitNonCanonical generates every class of non-canonical encoding
// listed by spec.md §4.4 for explicit-bit formats: patterns where the
// codec must compute a mathematical value rather than reject the pattern.
func explicitNonCanonical(f format.Format) []wide.Value {
	g := f.Geometry
	M := g.MantBits
	bias := f.ResolvedBias()
	maxExp := (uint64(1) << g.ExpBits) - 1
	mid := maxExp / 2

	jBit := new(big.Int).Lsh(big.NewInt(1), uint(M-1))
	fractionAllOnes := new(big.Int).Sub(jBit, big.NewInt(1))
	pseudoDenormalFractions := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		fractionAllOnes,
	}

	var out []wide.Value
	add := func(v wide.Value) { out = append(out, v) }

	// Unnormal-zero (J=0, fraction=0) at exponents 1 and bias.
	add(codec.Pack(f, false, 1, big.NewInt(0)))
	add(codec.Pack(f, false, uint64(bias), big.NewInt(0)))

	// Unnormal with J=0, fraction=all-ones at low, middle, and maximum
	// (non-reserved) exponents.
	for _, e := range []uint64{1, mid, maxExp - 1} {
		add(codec.Pack(f, false, e, fractionAllOnes))
	}

	// Pseudo-denormals: exponent=0, J=1, several fractions.
	for _, frac := range pseudoDenormalFractions {
		m := new(big.Int).Or(jBit, frac)
		add(codec.Pack(f, false, 0, m))
	}

	// Pseudo-infinities: exponent=max, J=0, fraction=0, both signs.
	add(codec.Pack(f, false, maxExp, big.NewInt(0)))
	add(codec.Pack(f, true, maxExp, big.NewInt(0)))

	// Pseudo-NaNs: exponent=max, J=0, minimum and maximum non-zero
	// fraction.
	add(codec.Pack(f, false, maxExp, big.NewInt(1)))
	add(codec.Pack(f, false, maxExp, fractionAllOnes))

	return out
}

func dedupe(vs []wide.Value) []wide.Value {
	seen := make(map[string]bool, len(vs))
	out := make([]wide.Value, 0, len(vs))
	for _, v := range vs {
		key := v.Hex()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}
