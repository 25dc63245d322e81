// Package wide implements the Wide Bit-Container: a uniform semantic value
// with shift/mask/logic/comparison operations defined over widths from 1
// to 128 bits. A Value is not an integer in the arithmetic sense — it is
// a bag of bits with modular-wrap semantics at its declared width, used
// exclusively to carry raw format bit patterns through the codec and
// harness.
package wide

import (
	"fmt"
	"math/big"
)

// MaxNativeBits is the largest width that uses the uint64 fast path.
// Widths above this use math/big as the documented fallback (spec.md
// §4.1: "larger widths may be supported where the host language provides
// them, with an explicit fallback limit documented").
const MaxNativeBits = 64

// Value is an unsigned bit pattern of a declared width. The zero Value has
// width 0, a width New rejects.
type Value struct {
	width uint8
	u64   uint64
	big   *big.Int // non-nil only when width > MaxNativeBits
}

// New returns the zero Value of the given width. Width must be in
// [1, 128]; wider values are rejected at construction per spec.md §7
// ("Width out of range ... fails at type instantiation").
func New(width uint8) (Value, error) {
	if width == 0 || width > 128 {
		return Value{}, fmt.Errorf("wide: width %d out of range [1,128]", width)
	}
	v := Value{width: width}
	if width > MaxNativeBits {
		v.big = new(big.Int)
	}
	return v, nil
}

// MustNew panics if New would return an error. Used for compile-time-known
// widths, mirroring the format package's MustNew wrapper.
func MustNew(width uint8) Value {
	v, err := New(width)
	if err != nil {
		panic(err)
	}
	return v
}

// FromUint64 returns a Value of the given width holding n, masked to that
// width.
func FromUint64(width uint8, n uint64) Value {
	v := MustNew(width)
	if v.big != nil {
		v.big.SetUint64(n)
	} else {
		v.u64 = n
	}
	return v.Mask()
}

// FromBigInt returns a Value of the given width holding n, masked to that
// width. n is not modified.
func FromBigInt(width uint8, n *big.Int) Value {
	v := MustNew(width)
	if v.big != nil {
		v.big.Set(n)
	} else {
		v.u64 = n.Uint64()
	}
	return v.Mask()
}

// Bit returns a Value of the given width with only bit position pos set.
func Bit(width, pos uint8) Value {
	return FromUint64(width, 1).Shl(uint(pos))
}

// Ones returns a Value of the given width whose lowest `ones` bits are set
// and the rest clear. Used to build field masks wider than 64 bits (e.g. a
// binary128 mantissa field).
func Ones(width, ones uint8) Value {
	if ones == 0 {
		return MustNew(width)
	}
	bound := new(big.Int).Lsh(big.NewInt(1), uint(ones))
	bound.Sub(bound, big.NewInt(1))
	return FromBigInt(width, bound)
}

// Resize reinterprets v's bit pattern at a new width, masking to whichever
// width is smaller. Used to move a value between a sub-field width and its
// containing word's width.
func (v Value) Resize(width uint8) Value {
	nv := MustNew(width)
	raw := v.BigInt()
	if nv.big != nil {
		nv.big.Set(raw)
	} else {
		nv.u64 = raw.Uint64()
	}
	return nv.Mask()
}

// Width returns the declared bit width of v.
func (v Value) Width() uint8 { return v.width }

func (v Value) bigBound() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(v.width))
}

// Mask clears every bit above the declared width and returns the result.
func (v Value) Mask() Value {
	if v.big != nil {
		bound := v.bigBound()
		r := new(big.Int).Mod(v.big, bound)
		return Value{width: v.width, big: r}
	}
	if v.width == 64 {
		return v
	}
	mask := (uint64(1) << v.width) - 1
	return Value{width: v.width, u64: v.u64 & mask}
}

func sameWidth(a, b Value) {
	if a.width != b.width {
		panic(fmt.Sprintf("wide: width mismatch %d != %d", a.width, b.width))
	}
}

// Shl returns v shifted left by n bits, masked to v's width.
func (v Value) Shl(n uint) Value {
	if v.big != nil {
		r := new(big.Int).Lsh(v.big, n)
		return Value{width: v.width, big: r}.Mask()
	}
	if n >= 64 {
		return Value{width: v.width}
	}
	return Value{width: v.width, u64: v.u64 << n}.Mask()
}

// Shr returns v shifted right by n bits (logical, unsigned).
func (v Value) Shr(n uint) Value {
	if v.big != nil {
		r := new(big.Int).Rsh(v.big, n)
		return Value{width: v.width, big: r}
	}
	if n >= 64 {
		return Value{width: v.width}
	}
	return Value{width: v.width, u64: v.u64 >> n}
}

// And returns the bitwise AND of v and o. Both must share the same width.
func (v Value) And(o Value) Value {
	sameWidth(v, o)
	if v.big != nil {
		return Value{width: v.width, big: new(big.Int).And(v.big, o.big)}
	}
	return Value{width: v.width, u64: v.u64 & o.u64}
}

// Or returns the bitwise OR of v and o.
func (v Value) Or(o Value) Value {
	sameWidth(v, o)
	if v.big != nil {
		return Value{width: v.width, big: new(big.Int).Or(v.big, o.big)}
	}
	return Value{width: v.width, u64: v.u64 | o.u64}
}

// Xor returns the bitwise XOR of v and o.
func (v Value) Xor(o Value) Value {
	sameWidth(v, o)
	if v.big != nil {
		return Value{width: v.width, big: new(big.Int).Xor(v.big, o.big)}
	}
	return Value{width: v.width, u64: v.u64 ^ o.u64}
}

// Not returns the bitwise complement of v, masked to its width.
func (v Value) Not() Value {
	if v.big != nil {
		r := new(big.Int).Not(v.big)
		return Value{width: v.width, big: r}.Mask()
	}
	return Value{width: v.width, u64: ^v.u64}.Mask()
}

// Eq reports whether v and o hold the same bit pattern.
func (v Value) Eq(o Value) bool {
	sameWidth(v, o)
	if v.big != nil {
		return v.big.Cmp(o.big) == 0
	}
	return v.u64 == o.u64
}

// Lt reports whether v is unsigned-less-than o.
func (v Value) Lt(o Value) bool {
	sameWidth(v, o)
	if v.big != nil {
		return v.big.Cmp(o.big) < 0
	}
	return v.u64 < o.u64
}

// Uint64 returns v's value truncated to 64 bits. Callers must not rely on
// this for widths above 64 without first checking Width().
func (v Value) Uint64() uint64 {
	if v.big != nil {
		return v.big.Uint64()
	}
	return v.u64
}

// BigInt returns v's value as a big.Int, valid for any width.
func (v Value) BigInt() *big.Int {
	if v.big != nil {
		return new(big.Int).Set(v.big)
	}
	return new(big.Int).SetUint64(v.u64)
}

// Bytes exports v in little-endian byte order, sized to hold its declared
// width. This is the width-agnostic bridge spec.md §9 requires between bit
// containers and the arbitrary-precision real.
func (v Value) Bytes() []byte {
	n := int(v.width+7) / 8
	out := make([]byte, n)
	big := v.BigInt()
	raw := big.Bytes() // big-endian, no leading zeros
	for i := 0; i < len(raw) && i < n; i++ {
		out[i] = raw[len(raw)-1-i]
	}
	return out
}

// SetBytes constructs a Value of the given width from little-endian bytes.
func SetBytes(width uint8, b []byte) Value {
	be := make([]byte, len(b))
	for i, bb := range b {
		be[len(b)-1-i] = bb
	}
	v := MustNew(width)
	n := new(big.Int).SetBytes(be)
	if v.big != nil {
		v.big = n
	} else {
		v.u64 = n.Uint64()
	}
	return v.Mask()
}

// Hex renders v as a zero-padded hexadecimal string, width digits equal to
// ceil(declared-width/4), matching spec.md §4.7's failure-report format.
func (v Value) Hex() string {
	digits := (int(v.width) + 3) / 4
	return fmt.Sprintf("%0*X", digits, v.BigInt())
}

func (v Value) String() string { return "0x" + v.Hex() }
