package codec

import (
	"math"
	"math/big"
	"time"

	structpack "github.com/structpack/structpack"
	"github.com/structpack/structpack/errors"
	"github.com/structpack/structpack/msgpack"
	"github.com/structpack/structpack/schema"
)

// primitiveCodec handles every leaf shape. One type rather than one
// per kind: the dispatch is a single switch on the bound descriptor.
type primitiveCodec struct {
	desc *schema.Descriptor
}

func (c *primitiveCodec) Descriptor() *schema.Descriptor {
	return c.desc
}

func (c *primitiveCodec) mismatch(v any) error {
	return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
		GoType(goTypeName(v)).
		SchemaType(c.desc.Key()).
		Build()
}

func (c *primitiveCodec) EncodeTo(b structpack.Buffer, off int, v any) (int, error) {
	switch c.desc.Kind() {
	case schema.KindNil:
		if v != nil {
			return 0, c.mismatch(v)
		}
		return msgpack.EncodeNil(b, off), nil

	case schema.KindBool:
		bv, ok := v.(bool)
		if !ok {
			return 0, c.mismatch(v)
		}
		return msgpack.EncodeBool(b, off, bv), nil

	case schema.KindInt8:
		return c.encodeSizedInt(b, off, v, 8)
	case schema.KindInt16:
		return c.encodeSizedInt(b, off, v, 16)
	case schema.KindInt32:
		return c.encodeSizedInt(b, off, v, 32)
	case schema.KindInt64:
		return c.encodeSizedInt(b, off, v, 64)

	case schema.KindUint64:
		uv, ok := coerceToUint64(v)
		if !ok {
			return 0, c.mismatch(v)
		}
		return msgpack.EncodeUint64(b, off, uv), nil

	case schema.KindFloat32:
		fv, ok := v.(float32)
		if !ok {
			return 0, c.mismatch(v)
		}
		return msgpack.EncodeFloat32(b, off, fv), nil

	case schema.KindFloat64:
		fv, ok := v.(float64)
		if !ok {
			return 0, c.mismatch(v)
		}
		return msgpack.EncodeFloat64(b, off, fv), nil

	case schema.KindString:
		sv, ok := v.(string)
		if !ok {
			return 0, c.mismatch(v)
		}
		return msgpack.EncodeString(b, off, sv), nil

	case schema.KindBinary:
		bv, ok := v.([]byte)
		if !ok {
			return 0, c.mismatch(v)
		}
		return msgpack.EncodeBin(b, off, bv), nil

	case schema.KindBigInt:
		switch bv := v.(type) {
		case *big.Int:
			return msgpack.EncodeBigInt(b, off, bv)
		default:
			iv, ok := coerceToInt64(v)
			if !ok {
				uv, uok := coerceToUint64(v)
				if !uok {
					return 0, c.mismatch(v)
				}
				return msgpack.EncodeUint64(b, off, uv), nil
			}
			return msgpack.EncodeInt(b, off, iv), nil
		}

	case schema.KindTime:
		tv, ok := v.(time.Time)
		if !ok {
			return 0, c.mismatch(v)
		}
		return msgpack.EncodeTime(b, off, tv), nil

	default:
		return 0, errors.UnsupportedShape(c.desc.Key())
	}
}

func (c *primitiveCodec) encodeSizedInt(b structpack.Buffer, off int, v any, bits int) (int, error) {
	iv, ok := coerceToInt64(v)
	if !ok {
		return 0, c.mismatch(v)
	}
	min, max := intRange(bits)
	if iv < min || iv > max {
		return 0, errors.Overflow(errors.PhaseEncode, iv, c.desc.Key())
	}
	return msgpack.EncodeInt(b, off, iv), nil
}

func (c *primitiveCodec) Decode(r *msgpack.Reader) (any, error) {
	switch c.desc.Kind() {
	case schema.KindNil:
		return nil, r.ReadNil()

	case schema.KindBool:
		return r.ReadBool()

	case schema.KindInt8:
		v, err := c.decodeSizedInt(r, 8)
		return int8(v), err
	case schema.KindInt16:
		v, err := c.decodeSizedInt(r, 16)
		return int16(v), err
	case schema.KindInt32:
		v, err := c.decodeSizedInt(r, 32)
		return int32(v), err
	case schema.KindInt64:
		return r.ReadInt()

	case schema.KindUint64:
		return r.ReadUint()

	case schema.KindFloat32:
		return r.ReadFloat32()

	case schema.KindFloat64:
		return r.ReadFloat64()

	case schema.KindString:
		return r.ReadString()

	case schema.KindBinary:
		return r.ReadBin()

	case schema.KindBigInt:
		return c.decodeBigInt(r)

	case schema.KindTime:
		return r.ReadTime()

	default:
		return nil, errors.UnsupportedShape(c.desc.Key())
	}
}

func (c *primitiveCodec) decodeSizedInt(r *msgpack.Reader, bits int) (int64, error) {
	v, err := r.ReadInt()
	if err != nil {
		return 0, err
	}
	min, max := intRange(bits)
	if v < min || v > max {
		return 0, errors.Overflow(errors.PhaseDecode, v, c.desc.Key())
	}
	return v, nil
}

func (c *primitiveCodec) decodeBigInt(r *msgpack.Reader) (*big.Int, error) {
	code, err := r.PeekCode()
	if err != nil {
		return nil, err
	}
	if code == msgpack.Uint64 {
		v, err := r.ReadUint()
		if err != nil {
			return nil, err
		}
		if v > math.MaxInt64 {
			return new(big.Int).SetUint64(v), nil
		}
		return big.NewInt(int64(v)), nil
	}
	v, err := r.ReadInt()
	if err != nil {
		return nil, err
	}
	return big.NewInt(v), nil
}
