package structpack

import "math"

// SliceBuffer is a growable Buffer backed by a []byte. Writing past
// the current end extends the slice; any gap between the old end and
// the write offset is zero-filled.
//
// The zero value is ready to use.
type SliceBuffer struct {
	buf []byte
}

// NewSliceBuffer returns a SliceBuffer with the given initial capacity.
func NewSliceBuffer(capacity int) *SliceBuffer {
	return &SliceBuffer{buf: make([]byte, 0, capacity)}
}

// ensure grows the buffer so that offsets [0, end) are addressable.
func (b *SliceBuffer) ensure(end int) {
	if end <= len(b.buf) {
		return
	}
	if end <= cap(b.buf) {
		b.buf = b.buf[:end]
		return
	}
	grown := make([]byte, end, growCap(cap(b.buf), end))
	copy(grown, b.buf)
	b.buf = grown
}

func growCap(old, need int) int {
	c := old * 2
	if c < 64 {
		c = 64
	}
	if c < need {
		c = need
	}
	return c
}

func (b *SliceBuffer) WriteU8(off int, v uint8) {
	b.ensure(off + 1)
	b.buf[off] = v
}

func (b *SliceBuffer) WriteU16(off int, v uint16) {
	b.ensure(off + 2)
	b.buf[off] = byte(v >> 8)
	b.buf[off+1] = byte(v)
}

func (b *SliceBuffer) WriteU32(off int, v uint32) {
	b.ensure(off + 4)
	b.buf[off] = byte(v >> 24)
	b.buf[off+1] = byte(v >> 16)
	b.buf[off+2] = byte(v >> 8)
	b.buf[off+3] = byte(v)
}

func (b *SliceBuffer) WriteU64(off int, v uint64) {
	b.ensure(off + 8)
	for i := 0; i < 8; i++ {
		b.buf[off+i] = byte(v >> (56 - 8*i))
	}
}

func (b *SliceBuffer) WriteF32(off int, v float32) {
	b.WriteU32(off, math.Float32bits(v))
}

func (b *SliceBuffer) WriteF64(off int, v float64) {
	b.WriteU64(off, math.Float64bits(v))
}

func (b *SliceBuffer) Write(off int, p []byte) {
	b.ensure(off + len(p))
	copy(b.buf[off:], p)
}

// Bytes returns the written region. The slice aliases the buffer's
// storage and is invalidated by the next write that grows it.
func (b *SliceBuffer) Bytes() []byte {
	return b.buf
}

// Len returns the current length of the written region.
func (b *SliceBuffer) Len() int {
	return len(b.buf)
}

// Reset truncates the buffer to zero length, keeping capacity.
func (b *SliceBuffer) Reset() {
	b.buf = b.buf[:0]
}
