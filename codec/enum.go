package codec

import (
	structpack "github.com/structpack/structpack"
	"github.com/structpack/structpack/errors"
	"github.com/structpack/structpack/msgpack"
	"github.com/structpack/structpack/schema"
)

// enumCodec writes the case ordinal, the enumeration's underlying
// representation. Encode accepts an ordinal or a case name; decode
// yields the ordinal.
type enumCodec struct {
	desc *schema.Descriptor
}

func (c *enumCodec) Descriptor() *schema.Descriptor {
	return c.desc
}

func (c *enumCodec) ordinal(v any) (int, error) {
	if name, ok := v.(string); ok {
		for i, cs := range c.desc.Cases() {
			if cs == name {
				return i, nil
			}
		}
		return 0, errors.InvalidEnum(errors.PhaseEncode, nil, name, c.desc.Key())
	}
	iv, ok := coerceToInt64(v)
	if !ok {
		return 0, errors.TypeMismatch(errors.PhaseEncode, nil, goTypeName(v), c.desc.Key())
	}
	if iv < 0 || iv >= int64(len(c.desc.Cases())) {
		return 0, errors.InvalidEnum(errors.PhaseEncode, nil, iv, c.desc.Key())
	}
	return int(iv), nil
}

func (c *enumCodec) EncodeTo(b structpack.Buffer, off int, v any) (int, error) {
	ord, err := c.ordinal(v)
	if err != nil {
		return 0, err
	}
	return msgpack.EncodeInt(b, off, int64(ord)), nil
}

func (c *enumCodec) Decode(r *msgpack.Reader) (any, error) {
	v, err := r.ReadInt()
	if err != nil {
		return nil, err
	}
	if v < 0 || v >= int64(len(c.desc.Cases())) {
		return nil, errors.InvalidEnum(errors.PhaseDecode, nil, v, c.desc.Key())
	}
	return int(v), nil
}
