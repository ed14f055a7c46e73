// Package structpack provides structural MessagePack serialization for Go.
//
// The library derives reusable codecs from structural type descriptions
// and writes a byte-exact MessagePack encoding into offset-addressed
// buffers. No per-type registration is required: given a descriptor, the
// codec factory resolves a codec for it by structural recursion and
// memoizes the result.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	structpack/          Root package with the Buffer interface and SliceBuffer
//	├── msgpack/         Low-level MessagePack encoder and reader
//	├── schema/          Structural type descriptors (the resolution keys)
//	├── codec/           Codec factory, derivation cache, and concrete codecs
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Describe a type, resolve a codec, and encode:
//
//	desc := schema.Record("point",
//	    schema.Field("x", schema.Int32()),
//	    schema.Field("y", schema.Int32()),
//	)
//
//	factory := codec.NewFactory(nil)
//	c, err := factory.Resolve(desc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	buf := structpack.NewSliceBuffer(64)
//	n, err := c.EncodeTo(buf, 0, map[string]any{"x": int32(3), "y": int32(4)})
//	fmt.Println(n, buf.Bytes())
//
// Decoding mirrors encoding:
//
//	v, err := c.Decode(msgpack.NewReader(buf.Bytes()))
//
// # Supported Shapes
//
// The schema package models a closed set of shapes:
//
//   - Primitives: nil, bool, int8-int64, uint64, f32, f64, string, binary, bigint, time
//   - Compound: option<T>, tuple<...>, slice<T>, array<T>, map<K, V>
//   - Adapters: list<T> and ordered-map<K, V> for non-native collections
//   - Named: record (ordered named fields), enum (ordinal wire form)
//
// # Wire Format
//
// The encoding is plain MessagePack: every value is written with the
// fewest bytes its value permits, and any conforming MessagePack reader
// can consume the output. Timestamps use the predefined -1 extension;
// compressed payloads use an application extension.
//
// # Thread Safety
//
// Encode functions are stateless and reentrant. The codec factory's
// derivation cache is safe for concurrent use; concurrent first-time
// resolution of the same descriptor may derive twice, with one result
// winning, which is benign because derivation is deterministic.
package structpack
