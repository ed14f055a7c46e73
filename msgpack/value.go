package msgpack

import (
	"math"

	"github.com/structpack/structpack/errors"
)

// MapEntry is one key-value pair of a generically decoded map.
type MapEntry struct {
	Key   any
	Value any
}

// RawMap is a generically decoded map with entries in wire order.
type RawMap []MapEntry

// RawExt is a generically decoded extension value of a type the
// reader has no dedicated handling for.
type RawExt struct {
	Type int8
	Data []byte
}

// ReadValue decodes the next value generically, dispatching on the
// format code alone. Integers come back as int64 unless the value
// needs the full unsigned range, in which case they come back as
// uint64. Maps come back as RawMap to preserve wire order; timestamp
// extensions come back as time.Time and other extensions as RawExt.
func (r *Reader) ReadValue() (any, error) {
	c, err := r.PeekCode()
	if err != nil {
		return nil, err
	}
	switch {
	case c == Nil:
		r.pos++
		return nil, nil
	case c == True || c == False:
		return r.ReadBool()
	case isPosFixint(c) || isNegFixint(c):
		return r.ReadInt()
	case isFixstr(c) || c == Str8 || c == Str16 || c == Str32:
		return r.ReadString()
	case isFixarray(c) || c == Array16 || c == Array32:
		return r.readValueArray()
	case isFixmap(c) || c == Map16 || c == Map32:
		return r.readValueMap()
	}
	switch c {
	case Uint8, Uint16, Uint32, Int8, Int16, Int32, Int64:
		return r.ReadInt()
	case Uint64:
		v, err := r.ReadUint()
		if err != nil {
			return nil, err
		}
		if v > math.MaxInt64 {
			return v, nil
		}
		return int64(v), nil
	case Float32:
		return r.ReadFloat32()
	case Float64:
		return r.ReadFloat64()
	case Bin8, Bin16, Bin32:
		return r.ReadBin()
	case Fixext1, Fixext2, Fixext4, Fixext8, Fixext16, Ext8, Ext16, Ext32:
		return r.readValueExt()
	default:
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Detail("unrecognized format code 0x%02x", c).
			Build()
	}
}

func (r *Reader) readValueArray() (any, error) {
	n, err := r.ReadArrayHeader()
	if err != nil {
		return nil, err
	}
	out := make([]any, n)
	for i := range out {
		if out[i], err = r.ReadValue(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *Reader) readValueMap() (any, error) {
	n, err := r.ReadMapHeader()
	if err != nil {
		return nil, err
	}
	out := make(RawMap, n)
	for i := range out {
		if out[i].Key, err = r.ReadValue(); err != nil {
			return nil, err
		}
		if out[i].Value, err = r.ReadValue(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *Reader) readValueExt() (any, error) {
	start := r.pos
	n, typ, err := r.ReadExtHeader()
	if err != nil {
		return nil, err
	}
	if typ == ExtTimestamp {
		r.pos = start
		return r.ReadTime()
	}
	p, err := r.take(n)
	if err != nil {
		return nil, err
	}
	data := make([]byte, n)
	copy(data, p)
	return RawExt{Type: typ, Data: data}, nil
}
