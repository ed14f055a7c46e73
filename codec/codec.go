package codec

import (
	structpack "github.com/structpack/structpack"
	"github.com/structpack/structpack/msgpack"
	"github.com/structpack/structpack/schema"
)

// Codec is the encode/decode capability bound to one descriptor.
// EncodeTo writes v's wire form into b at off and returns the bytes
// written; Decode reads one value of the bound type from r.
//
// Codecs are immutable and safe for concurrent use.
type Codec interface {
	Descriptor() *schema.Descriptor
	EncodeTo(b structpack.Buffer, off int, v any) (int, error)
	Decode(r *msgpack.Reader) (any, error)
}

// Marshal encodes v with c into a fresh buffer and returns the bytes.
func Marshal(c Codec, v any) ([]byte, error) {
	buf := structpack.NewSliceBuffer(64)
	if _, err := c.EncodeTo(buf, 0, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes one value of c's bound type from data.
func Unmarshal(c Codec, data []byte) (any, error) {
	return c.Decode(msgpack.NewReader(data))
}
