package structpack

// Buffer is an offset-addressed, mutable byte region that encode
// operations write into. Multi-byte integers are big-endian, floats
// are IEEE-754. Implementations manage their own capacity; a write
// past the current end must grow the region rather than fail, so the
// write methods carry no error return.
//
// A Buffer is owned by the caller performing a sequence of encode
// operations; encoders never retain one across calls.
type Buffer interface {
	WriteU8(off int, v uint8)
	WriteU16(off int, v uint16)
	WriteU32(off int, v uint32)
	WriteU64(off int, v uint64)
	WriteF32(off int, v float32)
	WriteF64(off int, v float64)
	Write(off int, p []byte)
}
