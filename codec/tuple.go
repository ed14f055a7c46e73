package codec

import (
	structpack "github.com/structpack/structpack"
	"github.com/structpack/structpack/errors"
	"github.com/structpack/structpack/msgpack"
	"github.com/structpack/structpack/schema"
)

// tupleCodec encodes a fixed-arity heterogeneous sequence as an
// array of its elements.
type tupleCodec struct {
	desc  *schema.Descriptor
	elems []Codec
}

func (c *tupleCodec) Descriptor() *schema.Descriptor {
	return c.desc
}

func (c *tupleCodec) EncodeTo(b structpack.Buffer, off int, v any) (int, error) {
	items, ok := v.([]any)
	if !ok {
		return 0, errors.TypeMismatch(errors.PhaseEncode, nil, goTypeName(v), c.desc.Key())
	}
	if len(items) != len(c.elems) {
		return 0, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			SchemaType(c.desc.Key()).
			Detail("arity mismatch: %d values for %d elements", len(items), len(c.elems)).
			Build()
	}

	n, err := msgpack.EncodeArrayHeader(b, off, len(c.elems))
	if err != nil {
		return 0, err
	}
	for i, ec := range c.elems {
		m, err := ec.EncodeTo(b, off+n, items[i])
		if err != nil {
			return 0, err
		}
		n += m
	}
	return n, nil
}

func (c *tupleCodec) Decode(r *msgpack.Reader) (any, error) {
	n, err := r.ReadArrayHeader()
	if err != nil {
		return nil, err
	}
	if n != len(c.elems) {
		return nil, errors.InvalidData(errors.PhaseDecode, nil,
			"tuple arity mismatch")
	}
	items := make([]any, n)
	for i, ec := range c.elems {
		if items[i], err = ec.Decode(r); err != nil {
			return nil, err
		}
	}
	return items, nil
}
