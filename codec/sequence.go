package codec

import (
	structpack "github.com/structpack/structpack"
	"github.com/structpack/structpack/errors"
	"github.com/structpack/structpack/msgpack"
	"github.com/structpack/structpack/schema"
)

// sequenceCodec handles the three list-shaped kinds. They share one
// wire form, an array of elements; only the decode target differs.
// Slice and array shapes decode to []any, the list adapter shape to
// *List.
type sequenceCodec struct {
	desc *schema.Descriptor
	elem Codec
}

func newSequenceCodec(desc *schema.Descriptor, elem Codec) *sequenceCodec {
	return &sequenceCodec{desc: desc, elem: elem}
}

func (c *sequenceCodec) Descriptor() *schema.Descriptor {
	return c.desc
}

func (c *sequenceCodec) items(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case *List:
		return s.Items(), true
	default:
		return nil, false
	}
}

func (c *sequenceCodec) EncodeTo(b structpack.Buffer, off int, v any) (int, error) {
	items, ok := c.items(v)
	if !ok {
		return 0, errors.TypeMismatch(errors.PhaseEncode, nil, goTypeName(v), c.desc.Key())
	}

	n, err := msgpack.EncodeArrayHeader(b, off, len(items))
	if err != nil {
		return 0, err
	}
	for _, item := range items {
		m, err := c.elem.EncodeTo(b, off+n, item)
		if err != nil {
			return 0, err
		}
		n += m
	}
	return n, nil
}

func (c *sequenceCodec) Decode(r *msgpack.Reader) (any, error) {
	n, err := r.ReadArrayHeader()
	if err != nil {
		return nil, err
	}
	items := make([]any, n)
	for i := range items {
		if items[i], err = c.elem.Decode(r); err != nil {
			return nil, err
		}
	}
	if c.desc.Kind() == schema.KindList {
		return NewList(items...), nil
	}
	return items, nil
}
