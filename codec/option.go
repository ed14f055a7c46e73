package codec

import (
	structpack "github.com/structpack/structpack"
	"github.com/structpack/structpack/msgpack"
	"github.com/structpack/structpack/schema"
)

// optionCodec wraps an element codec with nil handling: absent values
// encode as the nil code, present values as the element itself.
type optionCodec struct {
	desc *schema.Descriptor
	elem Codec
}

func (c *optionCodec) Descriptor() *schema.Descriptor {
	return c.desc
}

func (c *optionCodec) EncodeTo(b structpack.Buffer, off int, v any) (int, error) {
	if v == nil {
		return msgpack.EncodeNil(b, off), nil
	}
	return c.elem.EncodeTo(b, off, v)
}

func (c *optionCodec) Decode(r *msgpack.Reader) (any, error) {
	if r.TryReadNil() {
		return nil, nil
	}
	return c.elem.Decode(r)
}
