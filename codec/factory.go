package codec

import (
	"sync"

	"go.uber.org/zap"

	"github.com/structpack/structpack/errors"
	"github.com/structpack/structpack/schema"
)

// Factory maps descriptors to codecs. Explicitly registered codecs
// ("known codecs") always win; anything else is derived on demand by
// structural recursion and memoized.
//
// The known table is fixed at construction. Extend produces a new
// Factory and never touches the receiver, so a Factory can be shared
// freely; the derivation cache is safe for concurrent use.
type Factory struct {
	known map[string]Codec
	cache sync.Map // descriptor key -> Codec
}

// NewFactory returns a Factory with the given known codecs, each
// registered under its own descriptor. Later entries win on
// descriptor collision.
func NewFactory(known []Codec) *Factory {
	f := &Factory{known: make(map[string]Codec, len(known))}
	for _, c := range known {
		f.known[c.Descriptor().Key()] = c
	}
	return f
}

// Extend returns a new Factory whose known table is the union of the
// receiver's and the additional codecs, right-biased on collision.
// The new Factory starts with an empty derivation cache and shares no
// mutable state with the receiver.
func (f *Factory) Extend(more ...Codec) *Factory {
	merged := &Factory{known: make(map[string]Codec, len(f.known)+len(more))}
	for k, c := range f.known {
		merged.known[k] = c
	}
	for _, c := range more {
		merged.known[c.Descriptor().Key()] = c
	}
	return merged
}

// Resolve returns the codec for d, deriving and caching one if no
// known codec is registered for it.
func (f *Factory) Resolve(d *schema.Descriptor) (Codec, error) {
	return f.resolve(d, nil)
}

// ResolveTyped resolves the codec for a value that describes its own
// structure.
func (f *Factory) ResolveTyped(t schema.Typed) (Codec, error) {
	return f.resolve(t.Descriptor(), nil)
}

// For resolves the codec for the type T's own descriptor.
func For[T schema.Typed](f *Factory) (Codec, error) {
	var zero T
	return f.resolve(zero.Descriptor(), nil)
}

// resolve implements the lookup order: known table, cache, recursion
// guard, then structural derivation. seen holds the descriptor keys
// on the active derivation chain; it is copied before extension so
// sibling branches resolve with independent guard state.
func (f *Factory) resolve(d *schema.Descriptor, seen map[string]struct{}) (Codec, error) {
	key := d.Key()

	if c, ok := f.known[key]; ok {
		return c, nil
	}
	if c, ok := f.cache.Load(key); ok {
		return c.(Codec), nil
	}
	if _, ok := seen[key]; ok {
		return nil, errors.RecursiveType(key)
	}

	next := make(map[string]struct{}, len(seen)+1)
	for k := range seen {
		next[k] = struct{}{}
	}
	next[key] = struct{}{}

	c, err := f.derive(d, next)
	if err != nil {
		return nil, err
	}
	Logger().Debug("derived codec", zap.String("descriptor", key))

	// First store wins; a concurrent derivation of the same
	// descriptor produced an equivalent codec.
	actual, _ := f.cache.LoadOrStore(key, c)
	return actual.(Codec), nil
}

func (f *Factory) derive(d *schema.Descriptor, seen map[string]struct{}) (Codec, error) {
	switch d.Kind() {
	case schema.KindOption:
		elem, err := f.resolve(d.Arg(0), seen)
		if err != nil {
			return nil, err
		}
		return &optionCodec{desc: d, elem: elem}, nil

	case schema.KindTuple:
		elems := make([]Codec, d.NumArgs())
		for i := range elems {
			c, err := f.resolve(d.Arg(i), seen)
			if err != nil {
				return nil, err
			}
			elems[i] = c
		}
		return &tupleCodec{desc: d, elems: elems}, nil

	case schema.KindEnum:
		return &enumCodec{desc: d}, nil

	case schema.KindSlice, schema.KindArray, schema.KindList:
		elem, err := f.resolve(d.Arg(0), seen)
		if err != nil {
			return nil, err
		}
		return newSequenceCodec(d, elem), nil

	case schema.KindMap, schema.KindOrderedMap:
		if d.Kind() == schema.KindMap && !hashableKey(d.Arg(0)) {
			return nil, errors.New(errors.PhaseResolve, errors.KindUnsupportedShape).
				SchemaType(d.Key()).
				Detail("map key shape %s has no hashable decode target", d.Arg(0).Key()).
				Build()
		}
		// Key and value resolve independently: each call copies the
		// guard set, so neither branch sees the other's extensions.
		kc, err := f.resolve(d.Arg(0), seen)
		if err != nil {
			return nil, err
		}
		vc, err := f.resolve(d.Arg(1), seen)
		if err != nil {
			return nil, err
		}
		if d.Kind() == schema.KindOrderedMap {
			return &orderedMapCodec{desc: d, key: kc, value: vc}, nil
		}
		return &mapCodec{desc: d, key: kc, value: vc}, nil

	case schema.KindRecord:
		fields := d.Fields()
		codecs := make([]Codec, len(fields))
		for i, fd := range fields {
			c, err := f.resolve(fd.Type(), seen)
			if err != nil {
				return nil, err
			}
			codecs[i] = c
		}
		return newRecordCodec(d, codecs), nil

	default:
		if d.Kind().IsPrimitive() {
			return &primitiveCodec{desc: d}, nil
		}
		return nil, errors.UnsupportedShape(d.Key())
	}
}
