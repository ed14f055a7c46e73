package msgpack

import (
	"bytes"
	stderrors "errors"
	"math"
	"math/big"
	"testing"

	structpack "github.com/structpack/structpack"
	"github.com/structpack/structpack/errors"
)

func TestEncodeInt_Minimal(t *testing.T) {
	tests := []struct {
		name  string
		value int64
		want  []byte
	}{
		{"zero", 0, []byte{0x00}},
		{"fixint max", 127, []byte{0x7f}},
		{"uint8 min", 128, []byte{0xcc, 0x80}},
		{"uint8 max", 255, []byte{0xcc, 0xff}},
		{"uint16 min", 256, []byte{0xcd, 0x01, 0x00}},
		{"uint16 max", 65535, []byte{0xcd, 0xff, 0xff}},
		{"uint32 min", 65536, []byte{0xce, 0x00, 0x01, 0x00, 0x00}},
		{"2^31", 1 << 31, []byte{0xce, 0x80, 0x00, 0x00, 0x00}},
		{"uint32 max", math.MaxUint32, []byte{0xce, 0xff, 0xff, 0xff, 0xff}},
		{"uint64 min", 1 << 32, []byte{0xcf, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00}},
		{"int64 max", math.MaxInt64, []byte{0xcf, 0x7f, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
		{"neg fixint max", -1, []byte{0xff}},
		{"neg fixint min", -32, []byte{0xe0}},
		{"int8 max", -33, []byte{0xd0, 0xdf}},
		{"int8 min", -128, []byte{0xd0, 0x80}},
		{"int16 max", -129, []byte{0xd1, 0xff, 0x7f}},
		{"int16 min", -32768, []byte{0xd1, 0x80, 0x00}},
		{"int32 max", -32769, []byte{0xd2, 0xff, 0xff, 0x7f, 0xff}},
		{"int32 min", math.MinInt32, []byte{0xd2, 0x80, 0x00, 0x00, 0x00}},
		{"int64", math.MinInt32 - 1, []byte{0xd3, 0xff, 0xff, 0xff, 0xff, 0x7f, 0xff, 0xff, 0xff}},
		{"int64 min", math.MinInt64, []byte{0xd3, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := structpack.NewSliceBuffer(16)
			n := EncodeInt(buf, 0, tt.value)
			if n != len(tt.want) {
				t.Errorf("EncodeInt(%d) wrote %d bytes, want %d", tt.value, n, len(tt.want))
			}
			if !bytes.Equal(buf.Bytes(), tt.want) {
				t.Errorf("EncodeInt(%d) = % x, want % x", tt.value, buf.Bytes(), tt.want)
			}
		})
	}
}

func TestEncodeUint64_Max(t *testing.T) {
	buf := structpack.NewSliceBuffer(16)
	n := EncodeUint64(buf, 0, math.MaxUint64)
	want := []byte{0xcf, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	if n != 9 || !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("EncodeUint64(max) = % x (%d bytes), want % x", buf.Bytes(), n, want)
	}
}

func TestEncodeBigInt(t *testing.T) {
	t.Run("int64 path", func(t *testing.T) {
		buf := structpack.NewSliceBuffer(16)
		n, err := EncodeBigInt(buf, 0, big.NewInt(127))
		if err != nil {
			t.Fatalf("EncodeBigInt failed: %v", err)
		}
		if n != 1 || buf.Bytes()[0] != 0x7f {
			t.Errorf("EncodeBigInt(127) = % x, want 7f", buf.Bytes())
		}
	})

	t.Run("uint64 path", func(t *testing.T) {
		v := new(big.Int).SetUint64(math.MaxUint64)
		buf := structpack.NewSliceBuffer(16)
		n, err := EncodeBigInt(buf, 0, v)
		if err != nil {
			t.Fatalf("EncodeBigInt failed: %v", err)
		}
		if n != 9 || buf.Bytes()[0] != Uint64 {
			t.Errorf("EncodeBigInt(2^64-1) = % x, want uint64 form", buf.Bytes())
		}
	})

	t.Run("too large", func(t *testing.T) {
		v := new(big.Int).Lsh(big.NewInt(1), 64)
		buf := structpack.NewSliceBuffer(16)
		_, err := EncodeBigInt(buf, 0, v)
		if err == nil {
			t.Fatal("expected overflow error for 2^64")
		}
		var e *errors.Error
		if !stderrors.As(err, &e) || e.Kind != errors.KindOverflow {
			t.Errorf("err = %v, want overflow kind", err)
		}
	})

	t.Run("too negative", func(t *testing.T) {
		v := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 64))
		buf := structpack.NewSliceBuffer(16)
		if _, err := EncodeBigInt(buf, 0, v); err == nil {
			t.Fatal("expected overflow error for -2^64")
		}
	})
}

func TestEncodeStringHeader_Boundaries(t *testing.T) {
	tests := []struct {
		length int
		want   int // header bytes
		code   byte
	}{
		{0, 1, FixstrBase},
		{31, 1, FixstrBase | 31},
		{32, 2, Str8},
		{255, 2, Str8},
		{256, 3, Str16},
		{65535, 3, Str16},
		{65536, 5, Str32},
	}

	for _, tt := range tests {
		buf := structpack.NewSliceBuffer(8)
		n := EncodeStringHeader(buf, 0, tt.length)
		if n != tt.want {
			t.Errorf("EncodeStringHeader(%d) = %d bytes, want %d", tt.length, n, tt.want)
		}
		if buf.Bytes()[0] != tt.code {
			t.Errorf("EncodeStringHeader(%d) code = 0x%02x, want 0x%02x", tt.length, buf.Bytes()[0], tt.code)
		}
	}
}

func TestEncodeArrayHeader_Boundaries(t *testing.T) {
	tests := []struct {
		size int
		want int
		code byte
	}{
		{0, 1, FixarrayBase},
		{15, 1, FixarrayBase | 15},
		{16, 3, Array16},
		{65535, 3, Array16},
		{65536, 5, Array32},
	}

	for _, tt := range tests {
		buf := structpack.NewSliceBuffer(8)
		n, err := EncodeArrayHeader(buf, 0, tt.size)
		if err != nil {
			t.Fatalf("EncodeArrayHeader(%d) failed: %v", tt.size, err)
		}
		if n != tt.want || buf.Bytes()[0] != tt.code {
			t.Errorf("EncodeArrayHeader(%d) = %d bytes code 0x%02x, want %d bytes code 0x%02x",
				tt.size, n, buf.Bytes()[0], tt.want, tt.code)
		}
	}
}

func TestEncodeMapHeader_Boundaries(t *testing.T) {
	tests := []struct {
		size int
		want int
		code byte
	}{
		{0, 1, FixmapBase},
		{15, 1, FixmapBase | 15},
		{16, 3, Map16},
		{65535, 3, Map16},
		{65536, 5, Map32},
	}

	for _, tt := range tests {
		buf := structpack.NewSliceBuffer(8)
		n, err := EncodeMapHeader(buf, 0, tt.size)
		if err != nil {
			t.Fatalf("EncodeMapHeader(%d) failed: %v", tt.size, err)
		}
		if n != tt.want || buf.Bytes()[0] != tt.code {
			t.Errorf("EncodeMapHeader(%d) = %d bytes code 0x%02x, want %d bytes code 0x%02x",
				tt.size, n, buf.Bytes()[0], tt.want, tt.code)
		}
	}
}

func TestEncodeHeader_NegativeSize(t *testing.T) {
	buf := structpack.NewSliceBuffer(8)

	if _, err := EncodeArrayHeader(buf, 0, -1); err == nil {
		t.Error("EncodeArrayHeader(-1) should fail")
	}
	if _, err := EncodeMapHeader(buf, 0, -1); err == nil {
		t.Error("EncodeMapHeader(-1) should fail")
	}
	if buf.Len() != 0 {
		t.Errorf("failed header writes left %d bytes in buffer", buf.Len())
	}

	var e *errors.Error
	_, err := EncodeArrayHeader(buf, 0, -1)
	if !stderrors.As(err, &e) || e.Kind != errors.KindInvalidSize {
		t.Errorf("err = %v, want invalid_size kind", err)
	}
}

func TestEncodeBinHeader_Boundaries(t *testing.T) {
	tests := []struct {
		length int
		want   int
		code   byte
	}{
		{0, 2, Bin8},
		{255, 2, Bin8},
		{256, 3, Bin16},
		{65535, 3, Bin16},
		{65536, 5, Bin32},
	}

	for _, tt := range tests {
		buf := structpack.NewSliceBuffer(8)
		n := EncodeBinHeader(buf, 0, tt.length)
		if n != tt.want || buf.Bytes()[0] != tt.code {
			t.Errorf("EncodeBinHeader(%d) = %d bytes code 0x%02x, want %d bytes code 0x%02x",
				tt.length, n, buf.Bytes()[0], tt.want, tt.code)
		}
	}
}

func TestEncodeExtHeader_Boundaries(t *testing.T) {
	tests := []struct {
		length int
		want   int
		code   byte
	}{
		{1, 2, Fixext1},
		{2, 2, Fixext2},
		{4, 2, Fixext4},
		{8, 2, Fixext8},
		{16, 2, Fixext16},
		{3, 3, Ext8},
		{17, 3, Ext8},
		{255, 3, Ext8},
		{256, 4, Ext16},
		{65535, 4, Ext16},
		{65536, 6, Ext32},
	}

	for _, tt := range tests {
		buf := structpack.NewSliceBuffer(8)
		n, err := EncodeExtHeader(buf, 0, tt.length, 7)
		if err != nil {
			t.Fatalf("EncodeExtHeader(%d) failed: %v", tt.length, err)
		}
		if n != tt.want {
			t.Errorf("EncodeExtHeader(%d) = %d bytes, want %d", tt.length, n, tt.want)
		}
		if buf.Bytes()[0] != tt.code {
			t.Errorf("EncodeExtHeader(%d) code = 0x%02x, want 0x%02x", tt.length, buf.Bytes()[0], tt.code)
		}
		// Type tag is the last header byte.
		if buf.Bytes()[n-1] != 7 {
			t.Errorf("EncodeExtHeader(%d) type tag = %d, want 7", tt.length, buf.Bytes()[n-1])
		}
	}
}

func TestEncodeExtHeader_Invalid(t *testing.T) {
	buf := structpack.NewSliceBuffer(8)
	if _, err := EncodeExtHeader(buf, 0, -1, 0); err == nil {
		t.Error("EncodeExtHeader(-1) should fail")
	}
}

func TestEncodeFloat_FixedWidth(t *testing.T) {
	buf := structpack.NewSliceBuffer(16)
	if n := EncodeFloat32(buf, 0, 1.5); n != 5 {
		t.Errorf("EncodeFloat32 wrote %d bytes, want 5", n)
	}
	if buf.Bytes()[0] != Float32 {
		t.Errorf("float32 code = 0x%02x, want 0xca", buf.Bytes()[0])
	}

	buf.Reset()
	// 1.0 fits a float32 exactly but must still take the 64-bit form.
	if n := EncodeFloat64(buf, 0, 1.0); n != 9 {
		t.Errorf("EncodeFloat64 wrote %d bytes, want 9", n)
	}
	if buf.Bytes()[0] != Float64 {
		t.Errorf("float64 code = 0x%02x, want 0xcb", buf.Bytes()[0])
	}
}

func TestEncodeString_Payload(t *testing.T) {
	buf := structpack.NewSliceBuffer(16)
	n := EncodeString(buf, 0, "abc")
	want := []byte{0xa3, 'a', 'b', 'c'}
	if n != 4 || !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("EncodeString(abc) = % x (%d bytes), want % x", buf.Bytes(), n, want)
	}
}

func TestEncode_AtOffset(t *testing.T) {
	// Writes at an arbitrary offset must leave earlier bytes alone.
	buf := structpack.NewSliceBuffer(16)
	buf.Write(0, []byte{0xaa, 0xbb, 0xcc})

	n := EncodeInt(buf, 3, 200)
	if n != 2 {
		t.Fatalf("EncodeInt(200) wrote %d bytes, want 2", n)
	}
	want := []byte{0xaa, 0xbb, 0xcc, 0xcc, 0xc8}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("buffer = % x, want % x", buf.Bytes(), want)
	}
}

func TestEncodeNilBool(t *testing.T) {
	buf := structpack.NewSliceBuffer(4)
	if n := EncodeNil(buf, 0); n != 1 || buf.Bytes()[0] != Nil {
		t.Errorf("EncodeNil = % x", buf.Bytes())
	}
	if n := EncodeBool(buf, 1, true); n != 1 || buf.Bytes()[1] != True {
		t.Errorf("EncodeBool(true) = 0x%02x", buf.Bytes()[1])
	}
	if n := EncodeBool(buf, 2, false); n != 1 || buf.Bytes()[2] != False {
		t.Errorf("EncodeBool(false) = 0x%02x", buf.Bytes()[2])
	}
}
