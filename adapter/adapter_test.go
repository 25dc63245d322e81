package adapter

import (
	"testing"

	"github.com/johnwbyrd/opine/format"
	"github.com/johnwbyrd/opine/wide"
	"github.com/stretchr/testify/assert"
)

func bits32(v uint32) wide.Value { return wide.FromUint64(32, uint64(v)) }

func TestOracleAddOneAndTwo(t *testing.T) {
	o := Oracle{Format: format.Binary32}
	out := o.Binary(Add, bits32(0x3F800000), bits32(0x40000000)) // 1.0 + 2.0
	assert.Equal(t, uint64(0x40400000), out.Bits.Uint64())       // 3.0
}

func TestOracleAndNativeAgreeOnBinary32Add(t *testing.T) {
	o := Oracle{Format: format.Binary32}
	n := Native{Format: format.Binary32}
	a, b := bits32(0x3F800000), bits32(0x40000000)
	assert.Equal(t, o.Binary(Add, a, b).Bits.Uint64(), n.Binary(Add, a, b).Bits.Uint64())
}

func TestOracleAndSoftFloatAgreeOnBinary32Div(t *testing.T) {
	o := Oracle{Format: format.Binary32}
	s := SoftFloat{Format: format.Binary32}
	a, b := bits32(0x40490FDB), bits32(0x40000000) // pi / 2
	assert.Equal(t, o.Binary(Div, a, b).Bits.Uint64(), s.Binary(Div, a, b).Bits.Uint64())
}

func TestOracleNegateBypassesCanonicalization(t *testing.T) {
	o := Oracle{Format: format.ExtFloat80}
	// A non-canonical unnormal: exp=0x3FFF, significand field=0.
	bits := wide.FromUint64(80, 0).Or(wide.FromUint64(80, 0x3FFF).Shl(64))
	out := o.Unary(Negate, bits)
	// Negate must only flip the sign bit, leaving the non-canonical
	// exponent/significand exactly as they were.
	assert.Equal(t, uint64(0x3FFF), (out.Bits.Shr(64)).Uint64()&0x7FFF)
	assert.Equal(t, uint64(1), out.Bits.Shr(79).Uint64()&1)
}

func TestOracleCompareUnorderedOnNaN(t *testing.T) {
	o := Oracle{Format: format.Binary32}
	nan := bits32(0x7FC00000)
	one := bits32(0x3F800000)
	out := o.Binary(LessThan, nan, one)
	assert.Equal(t, uint64(0), out.Bits.Uint64())
	out2 := o.Binary(Equal, nan, nan)
	assert.Equal(t, uint64(0), out2.Bits.Uint64())
}

func TestNativePanicsOnUnsupportedWidth(t *testing.T) {
	n := Native{Format: format.Binary16}
	assert.Panics(t, func() {
		n.Binary(Add, wide.FromUint64(16, 0), wide.FromUint64(16, 0))
	})
}

func TestOracleSqrtOfNegativeIsNaN(t *testing.T) {
	o := Oracle{Format: format.Binary32}
	out := o.Unary(Sqrt, bits32(0xBF800000)) // -1.0
	decoded := wide.FromUint64(32, out.Bits.Uint64())
	assert.Equal(t, uint64(0x7FC00000)&0x7F800000, decoded.Uint64()&0x7F800000)
}
