package harness

import (
	"math/big"
	"testing"

	"github.com/johnwbyrd/opine/adapter"
	"github.com/johnwbyrd/opine/codec"
	"github.com/johnwbyrd/opine/edgecase"
	"github.com/johnwbyrd/opine/format"
	"github.com/johnwbyrd/opine/iterate"
	"github.com/johnwbyrd/opine/wide"
	"github.com/stretchr/testify/assert"
)

func TestRunOracleAgreesWithNativeOnBinary32Add(t *testing.T) {
	f := format.Binary32
	o := adapter.Oracle{Format: f}
	n := adapter.Native{Format: f}
	strat := iterate.Targeted{Corpus: edgecase.Generate(f)}
	tag := OperationTag{Arity: ArityBinary, Binary: adapter.Add, Label: "add"}

	// Native passes hardware NaN payloads through while the oracle emits
	// the canonical NaN, so NaN results are compared NaN-aware; flags are
	// ignored because Native does not report every flag the oracle does.
	nanAware := NaNAware(func(bits wide.Value) bool { return codec.Decode(f, bits).IsNaN() })
	cmp := func(x, y adapter.Output) bool {
		x.Flags, y.Flags = 0, 0
		return nanAware(x, y)
	}
	report := Run(o, n, f, strat, tag, cmp)
	assert.Equal(t, 0, report.Failed, report.String())
	assert.Greater(t, report.Total, 0)
}

func TestRunOracleAgreesWithSoftFloatOnBinary32Mul(t *testing.T) {
	f := format.Binary32
	o := adapter.Oracle{Format: f}
	s := adapter.SoftFloat{Format: f}
	strat := iterate.Targeted{Corpus: edgecase.Generate(f)}
	tag := OperationTag{Arity: ArityBinary, Binary: adapter.Mul, Label: "mul"}

	report := Run(o, s, f, strat, tag, BitExactIgnoringFlags)
	assert.Equal(t, 0, report.Failed, report.String())
}

func TestRunRecordsBoundedFailures(t *testing.T) {
	f := format.Binary32
	o := adapter.Oracle{Format: f}
	strat := iterate.Random{Seed: 1, Count: 64}
	tag := OperationTag{Arity: ArityBinary, Binary: adapter.Add, Label: "add"}

	// Compare the oracle against itself but invert the comparator so
	// every pair "fails", to exercise the bounded failure buffer.
	alwaysFail := func(a, b adapter.Output) bool { return false }
	report := Run(o, o, f, strat, tag, alwaysFail)

	assert.Equal(t, 64, report.Total)
	assert.Equal(t, 64, report.Failed)
	assert.Len(t, report.Failures, MaxFailures)
	assert.True(t, report.Truncated)
}

func TestRunUnaryNegateDispatch(t *testing.T) {
	f := format.Binary32
	o := adapter.Oracle{Format: f}
	n := adapter.Native{Format: f}
	strat := iterate.Targeted{Corpus: edgecase.Generate(f)}
	tag := OperationTag{Arity: ArityUnary, Unary: adapter.Negate, Label: "negate"}

	// Native's float32->float64 conversion quiets a signaling NaN, so NaN
	// results are compared NaN-aware; every other result must be bit-exact.
	isNaN := func(bits wide.Value) bool { return codec.Decode(f, bits).IsNaN() }
	report := Run(o, n, f, strat, tag, NaNAware(isNaN))
	assert.Equal(t, 0, report.Failed, report.String())
}

func TestRunTernaryFMADispatch(t *testing.T) {
	f := format.Binary32
	o := adapter.Oracle{Format: f}
	strat := iterate.Random{Seed: 42, Count: 8}
	tag := OperationTag{Arity: ArityTernary, Ternary: adapter.FMA, Label: "fma"}

	report := Run(o, o, f, strat, tag, BitExact)
	assert.Equal(t, 0, report.Failed)
}

func TestNaNAwareComparatorTreatsAnyNaNPairAsEqual(t *testing.T) {
	isNaN := func(bits wide.Value) bool { return bits.Eq(wide.FromUint64(32, 0x7FC00000)) }
	cmp := NaNAware(isNaN)

	nanOut := adapter.Output{Bits: wide.FromUint64(32, 0x7FC00000), Flags: 0}
	otherNaN := adapter.Output{Bits: wide.FromUint64(32, 0x7FC00000), Flags: 0}
	assert.True(t, cmp(nanOut, otherNaN))

	nonNaN := adapter.Output{Bits: wide.FromUint64(32, 0x3F800000), Flags: 0}
	assert.False(t, cmp(nanOut, nonNaN))
}

func TestReportStringFormatsFailures(t *testing.T) {
	f := format.Binary32
	o := adapter.Oracle{Format: f}
	strat := iterate.Targeted{Corpus: edgecase.Generate(f)[:2]}
	tag := OperationTag{Arity: ArityBinary, Binary: adapter.Add, Label: "add"}
	alwaysFail := func(a, b adapter.Output) bool { return false }
	report := Run(o, o, f, strat, tag, alwaysFail)

	s := report.String()
	assert.Contains(t, s, "add:")
	assert.Contains(t, s, "a=")
}

func TestComparatorBitExactIgnoringFlagsIgnoresFlags(t *testing.T) {
	a := adapter.Output{Bits: codec.Pack(format.Binary32, false, 127, big.NewInt(0)), Flags: 0}
	b := a
	b.Flags = 1
	assert.True(t, BitExactIgnoringFlags(a, b))
	assert.False(t, BitExact(a, b))
}
