// Package msgpack implements the MessagePack wire format at the byte
// level: stateless encode functions that write one semantic unit into
// an offset-addressed buffer, and a positional Reader that mirrors
// them.
//
// # Encoding
//
// Every encode function takes a structpack.Buffer, an offset, and a
// value, writes the value's minimal representation at the offset, and
// returns the number of bytes written:
//
//	buf := structpack.NewSliceBuffer(64)
//	n := msgpack.EncodeInt(buf, 0, 128)        // 2 bytes: uint8 form
//	n += msgpack.EncodeString(buf, n, "hello") // header + payload
//
// The functions never read prior buffer contents and never retain the
// buffer. Capacity is the buffer's concern: a SliceBuffer grows, so
// the encode side has no bounds errors. The only failures are invalid
// arguments (negative array/map sizes, big integers or extension
// lengths beyond the format's range).
//
// # Minimal Encoding
//
// Where several codes could represent the same value, the one needing
// the fewest total bytes is chosen. 0 through 127 and -32 through -1
// encode in the code byte alone; wider values take the narrowest
// tagged form that holds them exactly.
//
// # Decoding
//
// Reader walks a byte source with typed read methods plus a generic
// ReadValue for self-describing traversal. Truncated input surfaces
// as an unexpected_eof error, a mismatched format code as
// invalid_data.
package msgpack
