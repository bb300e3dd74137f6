package tlv

import (
	"encoding/binary"
	"math"
)

// Encoder is the target of backward, length-prefix-first encoding: values
// are prepended innermost-last-first, so every TLV-LENGTH is known by the
// time it is written. Buffer materializes bytes; Estimator only counts
// them. Both report identical sizes for the same calls.
type Encoder interface {
	PrependBytes(p []byte) int
	PrependVarNum(v uint64) int
	PrependNonNegativeInteger(v uint64) int
}

// PrependNonNegativeIntegerBlock prepends a complete TLV element whose
// payload is the NonNegativeInteger encoding of v. Returns bytes written.
func PrependNonNegativeIntegerBlock(enc Encoder, typ uint32, v uint64) int {
	n := enc.PrependNonNegativeInteger(v)
	total := n
	total += enc.PrependVarNum(uint64(n))
	total += enc.PrependVarNum(uint64(typ))
	return total
}

// Buffer is a backward-growing encoding buffer. Bytes are written from the
// end of the storage toward the front; when headroom runs out the storage
// is reallocated with the used suffix preserved.
type Buffer struct {
	buf []byte
	pos int // index of the first used byte; buf[pos:] holds the output
}

var _ Encoder = (*Buffer)(nil)
var _ Encoder = Estimator{}

// NewBuffer makes a buffer with the given amount of headroom, typically
// obtained from an Estimator pass over the same structure.
func NewBuffer(estimatedSize int) *Buffer {
	if estimatedSize < 16 {
		estimatedSize = 16
	}
	return &Buffer{buf: make([]byte, estimatedSize), pos: estimatedSize}
}

func (b *Buffer) headroom(n int) {
	if b.pos >= n {
		return
	}
	used := len(b.buf) - b.pos
	c := len(b.buf)
	if c < 16 {
		c = 16
	}
	for c-used < n {
		c <<= 1
	}
	grown := make([]byte, c)
	copy(grown[c-used:], b.buf[b.pos:])
	b.buf, b.pos = grown, c-used
}

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int {
	return len(b.buf) - b.pos
}

// Bytes returns the encoded output. The slice aliases the buffer's storage
// and is invalidated by further prepends.
func (b *Buffer) Bytes() []byte {
	return b.buf[b.pos:]
}

func (b *Buffer) PrependBytes(p []byte) int {
	b.headroom(len(p))
	b.pos -= len(p)
	copy(b.buf[b.pos:], p)
	return len(p)
}

func (b *Buffer) prependByte(v byte) int {
	b.headroom(1)
	b.pos--
	b.buf[b.pos] = v
	return 1
}

func (b *Buffer) PrependVarNum(v uint64) int {
	switch {
	case v < 253:
		return b.prependByte(byte(v))
	case v <= math.MaxUint16:
		b.headroom(3)
		b.pos -= 3
		b.buf[b.pos] = 253
		binary.BigEndian.PutUint16(b.buf[b.pos+1:], uint16(v))
		return 3
	case v <= math.MaxUint32:
		b.headroom(5)
		b.pos -= 5
		b.buf[b.pos] = 254
		binary.BigEndian.PutUint32(b.buf[b.pos+1:], uint32(v))
		return 5
	default:
		b.headroom(9)
		b.pos -= 9
		b.buf[b.pos] = 255
		binary.BigEndian.PutUint64(b.buf[b.pos+1:], v)
		return 9
	}
}

func (b *Buffer) PrependNonNegativeInteger(v uint64) int {
	switch {
	case v <= math.MaxUint8:
		return b.prependByte(byte(v))
	case v <= math.MaxUint16:
		b.headroom(2)
		b.pos -= 2
		binary.BigEndian.PutUint16(b.buf[b.pos:], uint16(v))
		return 2
	case v <= math.MaxUint32:
		b.headroom(4)
		b.pos -= 4
		binary.BigEndian.PutUint32(b.buf[b.pos:], uint32(v))
		return 4
	default:
		b.headroom(8)
		b.pos -= 8
		binary.BigEndian.PutUint64(b.buf[b.pos:], v)
		return 8
	}
}

// Estimator computes encoded sizes without producing bytes.
type Estimator struct{}

func (Estimator) PrependBytes(p []byte) int {
	return len(p)
}

func (Estimator) PrependVarNum(v uint64) int {
	return VarNumSize(v)
}

func (Estimator) PrependNonNegativeInteger(v uint64) int {
	return NonNegativeIntegerSize(v)
}
