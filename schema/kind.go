package schema

// Kind is the closed set of shape categories a descriptor can have.
// Adding a shape means extending this enum, not subclassing.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint64
	KindFloat32
	KindFloat64
	KindString
	KindBinary
	KindBigInt
	KindTime
	KindOption
	KindTuple
	KindEnum
	KindSlice
	KindArray
	KindList
	KindMap
	KindOrderedMap
	KindRecord
)

var kindNames = [...]string{
	KindNil:        "nil",
	KindBool:       "bool",
	KindInt8:       "int8",
	KindInt16:      "int16",
	KindInt32:      "int32",
	KindInt64:      "int64",
	KindUint64:     "uint64",
	KindFloat32:    "float32",
	KindFloat64:    "float64",
	KindString:     "string",
	KindBinary:     "binary",
	KindBigInt:     "bigint",
	KindTime:       "time",
	KindOption:     "option",
	KindTuple:      "tuple",
	KindEnum:       "enum",
	KindSlice:      "slice",
	KindArray:      "array",
	KindList:       "list",
	KindMap:        "map",
	KindOrderedMap: "ordmap",
	KindRecord:     "record",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsPrimitive reports whether the kind has no nested type arguments.
func (k Kind) IsPrimitive() bool {
	return k <= KindTime
}
