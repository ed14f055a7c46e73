// Package codec derives MessagePack codecs from structural type
// descriptors.
//
// The Factory is the entry point. Given a schema.Descriptor it
// returns a Codec, consulting three places in order: the known-codec
// table supplied at construction (explicit registrations always win),
// the derivation cache, and finally structural derivation, which
// recursively resolves the descriptor's nested types and assembles a
// codec from the results.
//
//	factory := codec.NewFactory(nil)
//	c, err := factory.Resolve(schema.Slice(schema.String()))
//
// Derivation is memoized per factory: resolving the same descriptor
// twice returns the cached codec without re-deriving. A descriptor
// that references itself before any branch completes derivation is
// rejected with a recursive_type error rather than looping.
//
// # Value Mapping
//
// Derived codecs move values through plain Go representations:
//
//	nil, bool, int8..int64, uint64, float32/64  themselves
//	string, []byte, *big.Int, time.Time         themselves
//	option                                      nil or the element value
//	tuple, slice, array                         []any
//	list                                        *List
//	map                                         map[any]any
//	ordered map                                 *OrderedMap
//	enum                                        ordinal int (case name accepted on encode)
//	record                                      map[string]any keyed by field name
//
// Callers needing a different mapping register their own Codec as a
// known codec; the factory then uses it everywhere the descriptor
// appears, including inside derived composites.
//
// # Concurrency
//
// A Factory is safe for concurrent use. Concurrent first-time
// resolution of one descriptor may derive twice; the first cache
// store wins and both callers get equivalent codecs.
package codec
