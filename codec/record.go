package codec

import (
	structpack "github.com/structpack/structpack"
	"github.com/structpack/structpack/errors"
	"github.com/structpack/structpack/msgpack"
	"github.com/structpack/structpack/schema"
)

// recordCodec carries the record descriptor plus one codec per field,
// in declaration order. The wire form is a map keyed by field name so
// the output stays self-describing; fields are written in declaration
// order and accepted in any order on decode.
type recordCodec struct {
	desc   *schema.Descriptor
	codecs []Codec
	index  map[string]int // field name -> position
}

func newRecordCodec(desc *schema.Descriptor, codecs []Codec) *recordCodec {
	index := make(map[string]int, len(codecs))
	for i, f := range desc.Fields() {
		index[f.Name()] = i
	}
	return &recordCodec{desc: desc, codecs: codecs, index: index}
}

func (c *recordCodec) Descriptor() *schema.Descriptor {
	return c.desc
}

func (c *recordCodec) EncodeTo(b structpack.Buffer, off int, v any) (int, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return 0, errors.TypeMismatch(errors.PhaseEncode, nil, goTypeName(v), c.desc.Key())
	}

	fields := c.desc.Fields()
	if len(m) != len(fields) {
		return 0, errors.InvalidData(errors.PhaseEncode, []string{c.desc.Name()},
			"field count mismatch")
	}
	n, err := msgpack.EncodeMapHeader(b, off, len(fields))
	if err != nil {
		return 0, err
	}
	for i, f := range fields {
		n += msgpack.EncodeString(b, off+n, f.Name())
		fn, err := c.codecs[i].EncodeTo(b, off+n, m[f.Name()])
		if err != nil {
			return 0, errors.Wrap(errors.PhaseEncode, errors.KindInvalidData, err,
				"field "+f.Name())
		}
		n += fn
	}
	return n, nil
}

func (c *recordCodec) Decode(r *msgpack.Reader) (any, error) {
	n, err := r.ReadMapHeader()
	if err != nil {
		return nil, err
	}
	if n != len(c.codecs) {
		return nil, errors.InvalidData(errors.PhaseDecode, []string{c.desc.Name()},
			"field count mismatch")
	}

	out := make(map[string]any, n)
	for i := 0; i < n; i++ {
		name, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		idx, ok := c.index[name]
		if !ok {
			return nil, errors.UnknownField(errors.PhaseDecode, []string{c.desc.Name()}, name)
		}
		// A repeated name would pass the count check while leaving
		// another declared field unpopulated.
		if _, dup := out[name]; dup {
			return nil, errors.InvalidData(errors.PhaseDecode, []string{c.desc.Name()},
				"duplicate field "+name)
		}
		v, err := c.codecs[idx].Decode(r)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}
