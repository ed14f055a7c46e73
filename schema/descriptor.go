package schema

import "strings"

// Descriptor is an immutable structural description of a type: a
// shape category plus nested descriptors (type arguments) and, for
// records, ordered named fields. Descriptors are compared by
// structural equality through their Key; the key is what registries
// and caches index by.
//
// Descriptors are built through the package's constructors and never
// mutated afterwards. A descriptor produced by Recursive may contain
// itself; such descriptors are representable but not derivable by the
// codec factory.
type Descriptor struct {
	kind   Kind
	name   string
	args   []*Descriptor
	fields []FieldDesc
	cases  []string
}

// FieldDesc is one named, typed field of a record descriptor.
type FieldDesc struct {
	name string
	typ  *Descriptor
}

// Field constructs a record field.
func Field(name string, typ *Descriptor) FieldDesc {
	return FieldDesc{name: name, typ: typ}
}

// Name returns the field's name.
func (f FieldDesc) Name() string { return f.name }

// Type returns the field's descriptor.
func (f FieldDesc) Type() *Descriptor { return f.typ }

// Typed is the high-level type handle: anything that can describe its
// own structure. The codec factory accepts Typed values directly.
type Typed interface {
	Descriptor() *Descriptor
}

var primitives [KindTime + 1]*Descriptor

func init() {
	for k := KindNil; k <= KindTime; k++ {
		primitives[k] = &Descriptor{kind: k}
	}
}

// Primitive constructors. Each kind has a single shared descriptor.

func Nil() *Descriptor     { return primitives[KindNil] }
func Bool() *Descriptor    { return primitives[KindBool] }
func Int8() *Descriptor    { return primitives[KindInt8] }
func Int16() *Descriptor   { return primitives[KindInt16] }
func Int32() *Descriptor   { return primitives[KindInt32] }
func Int64() *Descriptor   { return primitives[KindInt64] }
func Uint64() *Descriptor  { return primitives[KindUint64] }
func Float32() *Descriptor { return primitives[KindFloat32] }
func Float64() *Descriptor { return primitives[KindFloat64] }
func String() *Descriptor  { return primitives[KindString] }
func Binary() *Descriptor  { return primitives[KindBinary] }
func BigInt() *Descriptor  { return primitives[KindBigInt] }
func Time() *Descriptor    { return primitives[KindTime] }

// Option describes an optional (nullable) value of elem.
func Option(elem *Descriptor) *Descriptor {
	return &Descriptor{kind: KindOption, args: []*Descriptor{elem}}
}

// Tuple describes a fixed-length heterogeneous sequence.
func Tuple(elems ...*Descriptor) *Descriptor {
	return &Descriptor{kind: KindTuple, args: elems}
}

// Enum describes a named enumeration with the given cases. The wire
// representation is the case ordinal.
func Enum(name string, cases ...string) *Descriptor {
	return &Descriptor{kind: KindEnum, name: name, cases: cases}
}

// Slice describes an ordered, non-indexed sequence of elem.
func Slice(elem *Descriptor) *Descriptor {
	return &Descriptor{kind: KindSlice, args: []*Descriptor{elem}}
}

// Array describes an index-addressable sequence of elem. It shares
// the slice wire form; only the decode target differs.
func Array(elem *Descriptor) *Descriptor {
	return &Descriptor{kind: KindArray, args: []*Descriptor{elem}}
}

// List describes a non-native list-like collection of elem, handled
// through a collection adapter.
func List(elem *Descriptor) *Descriptor {
	return &Descriptor{kind: KindList, args: []*Descriptor{elem}}
}

// Map describes a native map from key to value.
func Map(key, value *Descriptor) *Descriptor {
	return &Descriptor{kind: KindMap, args: []*Descriptor{key, value}}
}

// OrderedMap describes a non-native map-like collection that
// preserves entry order, handled through a collection adapter.
func OrderedMap(key, value *Descriptor) *Descriptor {
	return &Descriptor{kind: KindOrderedMap, args: []*Descriptor{key, value}}
}

// Record describes a named aggregate with ordered named fields.
func Record(name string, fields ...FieldDesc) *Descriptor {
	return &Descriptor{kind: KindRecord, name: name, fields: fields}
}

// Recursive builds a descriptor that may reference itself. The build
// function receives a placeholder for the descriptor under
// construction and returns the finished shape; the placeholder is
// then filled in with it. The result is representable but the codec
// factory rejects it during derivation.
func Recursive(build func(self *Descriptor) *Descriptor) *Descriptor {
	self := &Descriptor{}
	*self = *build(self)
	return self
}

// Kind returns the shape category.
func (d *Descriptor) Kind() Kind { return d.kind }

// Name returns the record or enum name, or "" for other shapes.
func (d *Descriptor) Name() string { return d.name }

// NumArgs returns the number of nested type arguments.
func (d *Descriptor) NumArgs() int { return len(d.args) }

// Arg returns the i-th nested type argument.
func (d *Descriptor) Arg(i int) *Descriptor { return d.args[i] }

// Fields returns the record's fields in declaration order. The
// returned slice must not be modified.
func (d *Descriptor) Fields() []FieldDesc { return d.fields }

// Cases returns the enum's case names in ordinal order. The returned
// slice must not be modified.
func (d *Descriptor) Cases() []string { return d.cases }

// Key returns the canonical structural key. Two descriptors are
// structurally equal iff their keys are equal. Self-references
// introduced by Recursive appear as a "self" marker at the point of
// re-entry.
func (d *Descriptor) Key() string {
	var sb strings.Builder
	d.keyInto(&sb, make(map[*Descriptor]bool))
	return sb.String()
}

// String returns the key.
func (d *Descriptor) String() string { return d.Key() }

func (d *Descriptor) keyInto(sb *strings.Builder, visiting map[*Descriptor]bool) {
	if visiting[d] {
		sb.WriteString("self")
		return
	}
	visiting[d] = true
	defer delete(visiting, d)

	sb.WriteString(d.kind.String())
	switch d.kind {
	case KindEnum:
		sb.WriteByte('[')
		sb.WriteString(d.name)
		sb.WriteByte(':')
		sb.WriteString(strings.Join(d.cases, "|"))
		sb.WriteByte(']')
	case KindRecord:
		sb.WriteByte('[')
		sb.WriteString(d.name)
		sb.WriteString(":{")
		for i, f := range d.fields {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(f.name)
			sb.WriteByte(':')
			f.typ.keyInto(sb, visiting)
		}
		sb.WriteString("}]")
	default:
		if len(d.args) > 0 {
			sb.WriteByte('[')
			for i, a := range d.args {
				if i > 0 {
					sb.WriteByte(',')
				}
				a.keyInto(sb, visiting)
			}
			sb.WriteByte(']')
		}
	}
}

// Equal reports structural equality.
func (d *Descriptor) Equal(other *Descriptor) bool {
	if d == other {
		return true
	}
	if d == nil || other == nil {
		return false
	}
	return d.Key() == other.Key()
}
