package msgpack

// Format codes from the MessagePack specification. The one-byte code
// identifies how the following bytes are interpreted. Ranges below
// 0xc0 and above 0xdf embed the value (or a small length) in the code
// byte itself.
const (
	// FixintPosMax is the largest positive fixint (codes 0x00-0x7f).
	FixintPosMax = 0x7f

	// FixintNegMin is the smallest negative fixint (codes 0xe0-0xff).
	FixintNegMin = -32

	// Fixed-form code bases. The low bits carry the size.
	FixmapBase   = 0x80 // 0x80-0x8f, up to 15 pairs
	FixarrayBase = 0x90 // 0x90-0x9f, up to 15 elements
	FixstrBase   = 0xa0 // 0xa0-0xbf, up to 31 bytes

	Nil   = 0xc0
	False = 0xc2
	True  = 0xc3

	Bin8  = 0xc4
	Bin16 = 0xc5
	Bin32 = 0xc6

	Ext8  = 0xc7
	Ext16 = 0xc8
	Ext32 = 0xc9

	Float32 = 0xca
	Float64 = 0xcb

	Uint8  = 0xcc
	Uint16 = 0xcd
	Uint32 = 0xce
	Uint64 = 0xcf

	Int8  = 0xd0
	Int16 = 0xd1
	Int32 = 0xd2
	Int64 = 0xd3

	Fixext1  = 0xd4
	Fixext2  = 0xd5
	Fixext4  = 0xd6
	Fixext8  = 0xd7
	Fixext16 = 0xd8

	Str8  = 0xd9
	Str16 = 0xda
	Str32 = 0xdb

	Array16 = 0xdc
	Array32 = 0xdd

	Map16 = 0xde
	Map32 = 0xdf
)

// ExtTimestamp is the predefined extension type for timestamps.
const ExtTimestamp = -1

// Inline size limits for the fixed-form headers.
const (
	maxFixstrLen   = 31
	maxFixarrayLen = 15
	maxFixmapLen   = 15
)

func isFixstr(c byte) bool   { return c&0xe0 == FixstrBase }
func isFixmap(c byte) bool   { return c&0xf0 == FixmapBase }
func isFixarray(c byte) bool { return c&0xf0 == FixarrayBase }
func isPosFixint(c byte) bool {
	return c <= FixintPosMax
}
func isNegFixint(c byte) bool {
	return c >= 0xe0
}
