// Package schema models structural type descriptions.
//
// A Descriptor captures a type's shape: a category from a closed Kind
// enum, nested type arguments, and for records an ordered list of
// named fields. Descriptors are the keys the codec factory resolves
// by; two descriptors with the same structure resolve to the same
// codec.
//
// Descriptors are immutable and built through constructors:
//
//	user := schema.Record("user",
//	    schema.Field("name", schema.String()),
//	    schema.Field("age", schema.Option(schema.Int32())),
//	    schema.Field("roles", schema.Slice(schema.Enum("role", "admin", "member"))),
//	)
//
// The package performs no reflection: descriptors are either written
// out like the above or supplied by a caller-owned introspection
// facility through the Typed interface.
package schema
