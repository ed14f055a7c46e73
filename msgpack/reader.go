package msgpack

import (
	"math"
	"time"
	"unicode/utf8"

	"github.com/structpack/structpack/errors"
)

// Reader is a positional reader over a MessagePack byte source. It is
// the mirror of the encode functions: every form they produce can be
// read back. A Reader is not safe for concurrent use.
type Reader struct {
	data []byte
	pos  int
}

// NewReader returns a Reader positioned at the start of data. The
// Reader aliases data and never copies it.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Pos returns the current read position.
func (r *Reader) Pos() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// PeekCode returns the next format code without consuming it.
func (r *Reader) PeekCode() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, errors.UnexpectedEOF(1, 0)
	}
	return r.data[r.pos], nil
}

func (r *Reader) takeByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, errors.UnexpectedEOF(1, 0)
	}
	c := r.data[r.pos]
	r.pos++
	return c, nil
}

func (r *Reader) take(n int) ([]byte, error) {
	if rem := len(r.data) - r.pos; rem < n {
		return nil, errors.UnexpectedEOF(n, rem)
	}
	p := r.data[r.pos : r.pos+n]
	r.pos += n
	return p, nil
}

func (r *Reader) takeU16() (uint16, error) {
	p, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return uint16(p[0])<<8 | uint16(p[1]), nil
}

func (r *Reader) takeU32() (uint32, error) {
	p, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return uint32(p[0])<<24 | uint32(p[1])<<16 | uint32(p[2])<<8 | uint32(p[3]), nil
}

func (r *Reader) takeU64() (uint64, error) {
	p, err := r.take(8)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(p[i])
	}
	return v, nil
}

func badCode(c byte, want string) *errors.Error {
	return errors.New(errors.PhaseDecode, errors.KindInvalidData).
		Detail("unexpected format code 0x%02x, want %s", c, want).
		Build()
}

// ReadNil consumes a nil code.
func (r *Reader) ReadNil() error {
	c, err := r.takeByte()
	if err != nil {
		return err
	}
	if c != Nil {
		return badCode(c, "nil")
	}
	return nil
}

// TryReadNil consumes a nil code if one is next and reports whether
// it did.
func (r *Reader) TryReadNil() bool {
	if r.pos < len(r.data) && r.data[r.pos] == Nil {
		r.pos++
		return true
	}
	return false
}

// ReadBool consumes one of the two boolean codes.
func (r *Reader) ReadBool() (bool, error) {
	c, err := r.takeByte()
	if err != nil {
		return false, err
	}
	switch c {
	case True:
		return true, nil
	case False:
		return false, nil
	default:
		return false, badCode(c, "bool")
	}
}

// ReadInt consumes any integer form and returns it as int64. An
// unsigned 64-bit value above the signed range fails with overflow.
func (r *Reader) ReadInt() (int64, error) {
	c, err := r.takeByte()
	if err != nil {
		return 0, err
	}
	switch {
	case isPosFixint(c):
		return int64(c), nil
	case isNegFixint(c):
		return int64(int8(c)), nil
	}
	switch c {
	case Uint8:
		v, err := r.takeByte()
		return int64(v), err
	case Uint16:
		v, err := r.takeU16()
		return int64(v), err
	case Uint32:
		v, err := r.takeU32()
		return int64(v), err
	case Uint64:
		v, err := r.takeU64()
		if err != nil {
			return 0, err
		}
		if v > math.MaxInt64 {
			return 0, errors.Overflow(errors.PhaseDecode, v, "int64")
		}
		return int64(v), nil
	case Int8:
		v, err := r.takeByte()
		return int64(int8(v)), err
	case Int16:
		v, err := r.takeU16()
		return int64(int16(v)), err
	case Int32:
		v, err := r.takeU32()
		return int64(int32(v)), err
	case Int64:
		v, err := r.takeU64()
		return int64(v), err
	default:
		return 0, badCode(c, "integer")
	}
}

// ReadUint consumes any non-negative integer form and returns it as
// uint64.
func (r *Reader) ReadUint() (uint64, error) {
	c, err := r.takeByte()
	if err != nil {
		return 0, err
	}
	if isPosFixint(c) {
		return uint64(c), nil
	}
	switch c {
	case Uint8:
		v, err := r.takeByte()
		return uint64(v), err
	case Uint16:
		v, err := r.takeU16()
		return uint64(v), err
	case Uint32:
		v, err := r.takeU32()
		return uint64(v), err
	case Uint64:
		return r.takeU64()
	case Int8, Int16, Int32, Int64:
		r.pos--
		v, err := r.ReadInt()
		if err != nil {
			return 0, err
		}
		if v < 0 {
			return 0, errors.Overflow(errors.PhaseDecode, v, "uint64")
		}
		return uint64(v), nil
	default:
		return 0, badCode(c, "unsigned integer")
	}
}

// ReadFloat32 consumes a 32-bit float form.
func (r *Reader) ReadFloat32() (float32, error) {
	c, err := r.takeByte()
	if err != nil {
		return 0, err
	}
	if c != Float32 {
		return 0, badCode(c, "float32")
	}
	v, err := r.takeU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadFloat64 consumes a float form, widening 32-bit floats.
func (r *Reader) ReadFloat64() (float64, error) {
	c, err := r.takeByte()
	if err != nil {
		return 0, err
	}
	switch c {
	case Float32:
		v, err := r.takeU32()
		if err != nil {
			return 0, err
		}
		return float64(math.Float32frombits(v)), nil
	case Float64:
		v, err := r.takeU64()
		if err != nil {
			return 0, err
		}
		return math.Float64frombits(v), nil
	default:
		return 0, badCode(c, "float")
	}
}

func (r *Reader) readStringHeader() (int, error) {
	c, err := r.takeByte()
	if err != nil {
		return 0, err
	}
	if isFixstr(c) {
		return int(c & 0x1f), nil
	}
	switch c {
	case Str8:
		n, err := r.takeByte()
		return int(n), err
	case Str16:
		n, err := r.takeU16()
		return int(n), err
	case Str32:
		n, err := r.takeU32()
		return int(n), err
	default:
		return 0, badCode(c, "string")
	}
}

// ReadString consumes a string form and validates the payload as
// UTF-8.
func (r *Reader) ReadString() (string, error) {
	n, err := r.readStringHeader()
	if err != nil {
		return "", err
	}
	p, err := r.take(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(p) {
		return "", errors.InvalidUTF8(errors.PhaseDecode, nil, p)
	}
	return string(p), nil
}

// ReadArrayHeader consumes an array header and returns the element
// count. Counts the remaining input cannot back are rejected here,
// before any caller allocates storage sized by them; every element
// occupies at least one byte on the wire.
func (r *Reader) ReadArrayHeader() (int, error) {
	c, err := r.takeByte()
	if err != nil {
		return 0, err
	}
	var n int
	if isFixarray(c) {
		n = int(c & 0x0f)
	} else {
		switch c {
		case Array16:
			v, err := r.takeU16()
			if err != nil {
				return 0, err
			}
			n = int(v)
		case Array32:
			v, err := r.takeU32()
			if err != nil {
				return 0, err
			}
			n = int(v)
		default:
			return 0, badCode(c, "array")
		}
	}
	if n > r.Remaining() {
		return 0, errors.UnexpectedEOF(n, r.Remaining())
	}
	return n, nil
}

// ReadMapHeader consumes a map header and returns the pair count.
// Counts the remaining input cannot back are rejected here, before
// any caller allocates storage sized by them; every entry occupies at
// least two bytes on the wire.
func (r *Reader) ReadMapHeader() (int, error) {
	c, err := r.takeByte()
	if err != nil {
		return 0, err
	}
	var n int
	if isFixmap(c) {
		n = int(c & 0x0f)
	} else {
		switch c {
		case Map16:
			v, err := r.takeU16()
			if err != nil {
				return 0, err
			}
			n = int(v)
		case Map32:
			v, err := r.takeU32()
			if err != nil {
				return 0, err
			}
			n = int(v)
		default:
			return 0, badCode(c, "map")
		}
	}
	if n > r.Remaining()/2 {
		return 0, errors.New(errors.PhaseDecode, errors.KindUnexpectedEOF).
			Detail("map of %d entries exceeds %d remaining bytes", n, r.Remaining()).
			Build()
	}
	return n, nil
}

// ReadBinHeader consumes a binary header and returns the payload
// length.
func (r *Reader) ReadBinHeader() (int, error) {
	c, err := r.takeByte()
	if err != nil {
		return 0, err
	}
	switch c {
	case Bin8:
		n, err := r.takeByte()
		return int(n), err
	case Bin16:
		n, err := r.takeU16()
		return int(n), err
	case Bin32:
		n, err := r.takeU32()
		return int(n), err
	default:
		return 0, badCode(c, "bin")
	}
}

// ReadBin consumes a binary form and returns a copy of the payload.
func (r *Reader) ReadBin() ([]byte, error) {
	n, err := r.ReadBinHeader()
	if err != nil {
		return nil, err
	}
	p, err := r.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, p)
	return out, nil
}

// ReadExtHeader consumes an extension header and returns the payload
// length and extension type tag.
func (r *Reader) ReadExtHeader() (int, int8, error) {
	c, err := r.takeByte()
	if err != nil {
		return 0, 0, err
	}
	var n int
	switch c {
	case Fixext1:
		n = 1
	case Fixext2:
		n = 2
	case Fixext4:
		n = 4
	case Fixext8:
		n = 8
	case Fixext16:
		n = 16
	case Ext8:
		v, err := r.takeByte()
		if err != nil {
			return 0, 0, err
		}
		n = int(v)
	case Ext16:
		v, err := r.takeU16()
		if err != nil {
			return 0, 0, err
		}
		n = int(v)
	case Ext32:
		v, err := r.takeU32()
		if err != nil {
			return 0, 0, err
		}
		n = int(v)
	default:
		return 0, 0, badCode(c, "ext")
	}
	typ, err := r.takeByte()
	if err != nil {
		return 0, 0, err
	}
	return n, int8(typ), nil
}

// ReadRaw consumes n bytes verbatim. The returned slice aliases the
// source.
func (r *Reader) ReadRaw(n int) ([]byte, error) {
	return r.take(n)
}

// ReadTime consumes a timestamp extension in any of its three forms.
func (r *Reader) ReadTime() (time.Time, error) {
	n, typ, err := r.ReadExtHeader()
	if err != nil {
		return time.Time{}, err
	}
	if typ != ExtTimestamp {
		return time.Time{}, errors.InvalidData(errors.PhaseDecode, nil,
			"extension is not a timestamp")
	}
	switch n {
	case 4:
		sec, err := r.takeU32()
		if err != nil {
			return time.Time{}, err
		}
		return time.Unix(int64(sec), 0).UTC(), nil
	case 8:
		v, err := r.takeU64()
		if err != nil {
			return time.Time{}, err
		}
		return time.Unix(int64(v&0x3ffffffff), int64(v>>34)).UTC(), nil
	case 12:
		nsec, err := r.takeU32()
		if err != nil {
			return time.Time{}, err
		}
		sec, err := r.takeU64()
		if err != nil {
			return time.Time{}, err
		}
		return time.Unix(int64(sec), int64(nsec)).UTC(), nil
	default:
		return time.Time{}, errors.InvalidData(errors.PhaseDecode, nil,
			"invalid timestamp payload length")
	}
}
