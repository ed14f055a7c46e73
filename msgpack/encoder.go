package msgpack

import (
	"math"
	"math/big"
	"time"

	structpack "github.com/structpack/structpack"
	"github.com/structpack/structpack/errors"
)

// Extension payload lengths that have a dedicated fixext code.
// The length is implied by the code, so no explicit length field
// is written.
var fixextCodes = map[int]byte{
	1:  Fixext1,
	2:  Fixext2,
	4:  Fixext4,
	8:  Fixext8,
	16: Fixext16,
}

// maxExtLen is the largest extension payload the format can carry.
const maxExtLen = int64(math.MaxUint32)

// EncodeNil writes the nil code at off and returns the bytes written.
func EncodeNil(b structpack.Buffer, off int) int {
	b.WriteU8(off, Nil)
	return 1
}

// EncodeBool writes one of the two boolean codes at off.
func EncodeBool(b structpack.Buffer, off int, v bool) int {
	if v {
		b.WriteU8(off, True)
	} else {
		b.WriteU8(off, False)
	}
	return 1
}

// EncodeInt writes v in its minimal form: fixint when the value fits
// the code byte, otherwise the narrowest tagged unsigned form for
// non-negative values and the narrowest tagged signed form for
// negative ones.
func EncodeInt(b structpack.Buffer, off int, v int64) int {
	if v >= 0 {
		return EncodeUint64(b, off, uint64(v))
	}
	switch {
	case v >= FixintNegMin:
		b.WriteU8(off, uint8(v))
		return 1
	case v >= math.MinInt8:
		b.WriteU8(off, Int8)
		b.WriteU8(off+1, uint8(v))
		return 2
	case v >= math.MinInt16:
		b.WriteU8(off, Int16)
		b.WriteU16(off+1, uint16(v))
		return 3
	case v >= math.MinInt32:
		b.WriteU8(off, Int32)
		b.WriteU32(off+1, uint32(v))
		return 5
	default:
		b.WriteU8(off, Int64)
		b.WriteU64(off+1, uint64(v))
		return 9
	}
}

// EncodeUint64 writes v in its minimal unsigned form.
func EncodeUint64(b structpack.Buffer, off int, v uint64) int {
	switch {
	case v <= FixintPosMax:
		b.WriteU8(off, uint8(v))
		return 1
	case v <= math.MaxUint8:
		b.WriteU8(off, Uint8)
		b.WriteU8(off+1, uint8(v))
		return 2
	case v <= math.MaxUint16:
		b.WriteU8(off, Uint16)
		b.WriteU16(off+1, uint16(v))
		return 3
	case v <= math.MaxUint32:
		b.WriteU8(off, Uint32)
		b.WriteU32(off+1, uint32(v))
		return 5
	default:
		b.WriteU8(off, Uint64)
		b.WriteU64(off+1, v)
		return 9
	}
}

// EncodeBigInt writes v through the integer path when it fits 63 bits,
// and as the unsigned 64-bit form when it occupies exactly 64 bits.
// Larger magnitudes are outside the wire format and fail.
func EncodeBigInt(b structpack.Buffer, off int, v *big.Int) (int, error) {
	if v.IsInt64() {
		return EncodeInt(b, off, v.Int64()), nil
	}
	if v.IsUint64() {
		b.WriteU8(off, Uint64)
		b.WriteU64(off+1, v.Uint64())
		return 9, nil
	}
	return 0, errors.Overflow(errors.PhaseEncode, v.String(), "uint64")
}

// EncodeFloat32 writes v as the fixed-width 32-bit float form.
func EncodeFloat32(b structpack.Buffer, off int, v float32) int {
	b.WriteU8(off, Float32)
	b.WriteF32(off+1, v)
	return 5
}

// EncodeFloat64 writes v as the fixed-width 64-bit float form.
// No narrowing to 32 bits is attempted.
func EncodeFloat64(b structpack.Buffer, off int, v float64) int {
	b.WriteU8(off, Float64)
	b.WriteF64(off+1, v)
	return 9
}

// EncodeStringHeader writes the minimal string header for a payload
// of n bytes: fixstr up to 31 bytes, then 8, 16, or 32-bit lengths.
func EncodeStringHeader(b structpack.Buffer, off int, n int) int {
	switch {
	case n <= maxFixstrLen:
		b.WriteU8(off, FixstrBase|uint8(n))
		return 1
	case n <= math.MaxUint8:
		b.WriteU8(off, Str8)
		b.WriteU8(off+1, uint8(n))
		return 2
	case n <= math.MaxUint16:
		b.WriteU8(off, Str16)
		b.WriteU16(off+1, uint16(n))
		return 3
	default:
		b.WriteU8(off, Str32)
		b.WriteU32(off+1, uint32(n))
		return 5
	}
}

// EncodeString writes the header followed by the UTF-8 payload and
// returns the combined length.
func EncodeString(b structpack.Buffer, off int, s string) int {
	n := EncodeStringHeader(b, off, len(s))
	b.Write(off+n, []byte(s))
	return n + len(s)
}

// EncodeArrayHeader writes the minimal array header for size
// elements: fixarray up to 15, then 16 or 32-bit lengths.
func EncodeArrayHeader(b structpack.Buffer, off int, size int) (int, error) {
	if size < 0 {
		return 0, errors.InvalidSize(errors.PhaseEncode, "array", size)
	}
	switch {
	case size <= maxFixarrayLen:
		b.WriteU8(off, FixarrayBase|uint8(size))
		return 1, nil
	case size <= math.MaxUint16:
		b.WriteU8(off, Array16)
		b.WriteU16(off+1, uint16(size))
		return 3, nil
	default:
		b.WriteU8(off, Array32)
		b.WriteU32(off+1, uint32(size))
		return 5, nil
	}
}

// EncodeMapHeader writes the minimal map header for size key-value
// pairs: fixmap up to 15, then 16 or 32-bit lengths.
func EncodeMapHeader(b structpack.Buffer, off int, size int) (int, error) {
	if size < 0 {
		return 0, errors.InvalidSize(errors.PhaseEncode, "map", size)
	}
	switch {
	case size <= maxFixmapLen:
		b.WriteU8(off, FixmapBase|uint8(size))
		return 1, nil
	case size <= math.MaxUint16:
		b.WriteU8(off, Map16)
		b.WriteU16(off+1, uint16(size))
		return 3, nil
	default:
		b.WriteU8(off, Map32)
		b.WriteU32(off+1, uint32(size))
		return 5, nil
	}
}

// EncodeBinHeader writes the minimal binary header for a payload of
// n bytes. Binary has no fixed-form header; lengths start at 8 bits.
func EncodeBinHeader(b structpack.Buffer, off int, n int) int {
	switch {
	case n <= math.MaxUint8:
		b.WriteU8(off, Bin8)
		b.WriteU8(off+1, uint8(n))
		return 2
	case n <= math.MaxUint16:
		b.WriteU8(off, Bin16)
		b.WriteU16(off+1, uint16(n))
		return 3
	default:
		b.WriteU8(off, Bin32)
		b.WriteU32(off+1, uint32(n))
		return 5
	}
}

// EncodeBin writes the header followed by the payload and returns the
// combined length.
func EncodeBin(b structpack.Buffer, off int, p []byte) int {
	n := EncodeBinHeader(b, off, len(p))
	b.Write(off+n, p)
	return n + len(p)
}

// EncodeExtHeader writes the minimal extension header for a payload
// of the given length with the given extension type tag. Payloads of
// exactly 1, 2, 4, 8, or 16 bytes use a fixext code with the length
// implied (2 header bytes); other lengths carry an explicit 8, 16, or
// 32-bit length field before the type tag. Lengths beyond 32 bits are
// not representable and fail.
func EncodeExtHeader(b structpack.Buffer, off int, length int, typ int8) (int, error) {
	if length < 0 {
		return 0, errors.InvalidSize(errors.PhaseEncode, "ext", length)
	}
	if code, ok := fixextCodes[length]; ok {
		b.WriteU8(off, code)
		b.WriteU8(off+1, uint8(typ))
		return 2, nil
	}
	switch {
	case length <= math.MaxUint8:
		b.WriteU8(off, Ext8)
		b.WriteU8(off+1, uint8(length))
		b.WriteU8(off+2, uint8(typ))
		return 3, nil
	case length <= math.MaxUint16:
		b.WriteU8(off, Ext16)
		b.WriteU16(off+1, uint16(length))
		b.WriteU8(off+3, uint8(typ))
		return 4, nil
	case int64(length) <= maxExtLen:
		b.WriteU8(off, Ext32)
		b.WriteU32(off+1, uint32(length))
		b.WriteU8(off+5, uint8(typ))
		return 6, nil
	default:
		return 0, errors.Overflow(errors.PhaseEncode, length, "ext32")
	}
}

// EncodeRaw writes p verbatim at off.
func EncodeRaw(b structpack.Buffer, off int, p []byte) int {
	b.Write(off, p)
	return len(p)
}

// EncodeTime writes t as the predefined timestamp extension (-1),
// picking the smallest of the 32, 64, and 96-bit forms that can
// represent the instant.
func EncodeTime(b structpack.Buffer, off int, t time.Time) int {
	sec := t.Unix()
	nsec := int64(t.Nanosecond())

	if sec >= 0 && sec <= math.MaxUint32 && nsec == 0 {
		// timestamp 32: fixext4
		b.WriteU8(off, Fixext4)
		b.WriteU8(off+1, uint8(ExtTimestamp&0xff))
		b.WriteU32(off+2, uint32(sec))
		return 6
	}
	if sec >= 0 && sec < 1<<34 {
		// timestamp 64: fixext8, nanoseconds in the top 30 bits
		b.WriteU8(off, Fixext8)
		b.WriteU8(off+1, uint8(ExtTimestamp&0xff))
		b.WriteU64(off+2, uint64(nsec)<<34|uint64(sec))
		return 10
	}
	// timestamp 96: ext8 with a 12-byte payload
	b.WriteU8(off, Ext8)
	b.WriteU8(off+1, 12)
	b.WriteU8(off+2, uint8(ExtTimestamp&0xff))
	b.WriteU32(off+3, uint32(nsec))
	b.WriteU64(off+7, uint64(sec))
	return 15
}
