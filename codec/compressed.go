package codec

import (
	"github.com/klauspost/compress/zstd"

	structpack "github.com/structpack/structpack"
	"github.com/structpack/structpack/errors"
	"github.com/structpack/structpack/msgpack"
	"github.com/structpack/structpack/schema"
)

// ExtZstd is the application extension type carrying a
// zstd-compressed MessagePack value.
const ExtZstd int8 = 90

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	// EncodeAll/DecodeAll on shared instances are concurrency-safe.
	zstdEncoder, _ = zstd.NewWriter(nil)
	zstdDecoder, _ = zstd.NewReader(nil)
}

// compressedCodec wraps an inner codec, carrying its wire form
// zstd-compressed inside an extension value. Useful for large binary
// or record payloads where the MessagePack bytes themselves compress
// well.
type compressedCodec struct {
	inner Codec
}

// Compressed wraps inner so its encoded form travels zstd-compressed
// in an ExtZstd extension. Register the result as a known codec to
// apply it to every occurrence of the descriptor.
func Compressed(inner Codec) Codec {
	return &compressedCodec{inner: inner}
}

func (c *compressedCodec) Descriptor() *schema.Descriptor {
	return c.inner.Descriptor()
}

func (c *compressedCodec) EncodeTo(b structpack.Buffer, off int, v any) (int, error) {
	scratch := structpack.NewSliceBuffer(256)
	if _, err := c.inner.EncodeTo(scratch, 0, v); err != nil {
		return 0, err
	}
	payload := zstdEncoder.EncodeAll(scratch.Bytes(), nil)

	n, err := msgpack.EncodeExtHeader(b, off, len(payload), ExtZstd)
	if err != nil {
		return 0, err
	}
	n += msgpack.EncodeRaw(b, off+n, payload)
	return n, nil
}

func (c *compressedCodec) Decode(r *msgpack.Reader) (any, error) {
	length, typ, err := r.ReadExtHeader()
	if err != nil {
		return nil, err
	}
	if typ != ExtZstd {
		return nil, errors.InvalidData(errors.PhaseDecode, nil,
			"extension is not a compressed payload")
	}
	payload, err := r.ReadRaw(length)
	if err != nil {
		return nil, err
	}
	raw, err := zstdDecoder.DecodeAll(payload, nil)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err,
			"decompress payload")
	}
	return c.inner.Decode(msgpack.NewReader(raw))
}
