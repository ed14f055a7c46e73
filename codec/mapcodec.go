package codec

import (
	structpack "github.com/structpack/structpack"
	"github.com/structpack/structpack/errors"
	"github.com/structpack/structpack/msgpack"
	"github.com/structpack/structpack/schema"
)

// hashableKey reports whether d's decode target can key a native Go
// map. Binary decodes to []byte, tuples and sequences to []any, and
// records and maps to maps; hashing any of those panics, so the
// factory refuses to derive a native map codec over them. The
// ordered-map adapter has no such restriction.
func hashableKey(d *schema.Descriptor) bool {
	switch d.Kind() {
	case schema.KindBinary, schema.KindTuple, schema.KindSlice, schema.KindArray,
		schema.KindList, schema.KindMap, schema.KindOrderedMap, schema.KindRecord:
		return false
	case schema.KindOption:
		return hashableKey(d.Arg(0))
	default:
		return true
	}
}

// mapCodec encodes a native map. Iteration order follows Go map
// order, so the wire bytes of the same map can differ between runs;
// the decoded value does not.
type mapCodec struct {
	desc  *schema.Descriptor
	key   Codec
	value Codec
}

func (c *mapCodec) Descriptor() *schema.Descriptor {
	return c.desc
}

func (c *mapCodec) EncodeTo(b structpack.Buffer, off int, v any) (int, error) {
	m, ok := v.(map[any]any)
	if !ok {
		return 0, errors.TypeMismatch(errors.PhaseEncode, nil, goTypeName(v), c.desc.Key())
	}

	n, err := msgpack.EncodeMapHeader(b, off, len(m))
	if err != nil {
		return 0, err
	}
	for k, val := range m {
		kn, err := c.key.EncodeTo(b, off+n, k)
		if err != nil {
			return 0, err
		}
		n += kn
		vn, err := c.value.EncodeTo(b, off+n, val)
		if err != nil {
			return 0, err
		}
		n += vn
	}
	return n, nil
}

func (c *mapCodec) Decode(r *msgpack.Reader) (any, error) {
	n, err := r.ReadMapHeader()
	if err != nil {
		return nil, err
	}
	out := make(map[any]any, n)
	for i := 0; i < n; i++ {
		k, err := c.key.Decode(r)
		if err != nil {
			return nil, err
		}
		v, err := c.value.Decode(r)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

// orderedMapCodec is the collection adapter for map-like collections
// that preserve entry order. Same wire form as mapCodec; the decode
// target is *OrderedMap and encode order is the entry order.
type orderedMapCodec struct {
	desc  *schema.Descriptor
	key   Codec
	value Codec
}

func (c *orderedMapCodec) Descriptor() *schema.Descriptor {
	return c.desc
}

func (c *orderedMapCodec) EncodeTo(b structpack.Buffer, off int, v any) (int, error) {
	m, ok := v.(*OrderedMap)
	if !ok {
		return 0, errors.TypeMismatch(errors.PhaseEncode, nil, goTypeName(v), c.desc.Key())
	}

	entries := m.Entries()
	n, err := msgpack.EncodeMapHeader(b, off, len(entries))
	if err != nil {
		return 0, err
	}
	for _, e := range entries {
		kn, err := c.key.EncodeTo(b, off+n, e.Key)
		if err != nil {
			return 0, err
		}
		n += kn
		vn, err := c.value.EncodeTo(b, off+n, e.Value)
		if err != nil {
			return 0, err
		}
		n += vn
	}
	return n, nil
}

func (c *orderedMapCodec) Decode(r *msgpack.Reader) (any, error) {
	n, err := r.ReadMapHeader()
	if err != nil {
		return nil, err
	}
	out := NewOrderedMap()
	for i := 0; i < n; i++ {
		k, err := c.key.Decode(r)
		if err != nil {
			return nil, err
		}
		v, err := c.value.Decode(r)
		if err != nil {
			return nil, err
		}
		out.Set(k, v)
	}
	return out, nil
}
