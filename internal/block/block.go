// Package block implements the fixed-capacity, block-local storage unit that
// every other package in this module builds on: a byte buffer that frames
// variable-length payloads and tracks how much of itself is in use.
//
// A Block never resizes after construction and never interprets the bytes it
// holds — that is record.Record's job. The block only guarantees that
// Append either writes a complete [size][payload] frame or changes nothing.
package block

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

// DefaultSize is the block size used when a caller does not configure one.
const DefaultSize = 4096

// frameHeaderLen is the width of the little-endian u32 record-size prefix
// that precedes every payload written with Append.
const frameHeaderLen = 4

// Block is a fixed-capacity byte buffer holding a prefix of complete,
// length-prefixed frames followed by undefined trailing bytes.
//
// Invariant: bytes in [0, Used()) are a concatenation of complete frames;
// bytes in [Used(), Cap()) are unspecified. Block never resizes.
type Block struct {
	data     []byte
	capacity int
	used     int
}

// New allocates a Block of the given capacity, empty.
func New(capacity int) *Block {
	if capacity <= 0 {
		panic("block: capacity must be positive")
	}
	return &Block{
		data:     make([]byte, capacity),
		capacity: capacity,
	}
}

// Cap returns the block's fixed capacity.
func (b *Block) Cap() int { return b.capacity }

// Used returns the number of bytes currently holding framed data.
func (b *Block) Used() int { return b.used }

// Free returns the number of bytes available before the block is full.
func (b *Block) Free() int { return b.capacity - b.used }

// Empty reports whether the block holds no framed data.
func (b *Block) Empty() bool { return b.used == 0 }

// FullFor reports whether appending n more bytes of payload would not fit.
func (b *Block) FullFor(payloadLen int) bool {
	return b.Free() < frameHeaderLen+payloadLen
}

// Data returns the block's full backing buffer, including any undefined
// trailing bytes past Used(). Callers that need only the framed prefix
// should slice it as Data()[:Used()].
func (b *Block) Data() []byte { return b.data }

// Append writes [u32 len(payload)][payload] at the current used offset and
// advances Used() by 4+len(payload). It returns false and leaves the block
// unchanged if the frame would not fit.
func (b *Block) Append(payload []byte) bool {
	required := frameHeaderLen + len(payload)
	if b.Free() < required {
		return false
	}
	binary.LittleEndian.PutUint32(b.data[b.used:], uint32(len(payload)))
	copy(b.data[b.used+frameHeaderLen:], payload)
	b.used += required
	return true
}

// Clear resets Used() to zero. The underlying bytes are left as-is; nothing
// beyond Used() is ever read by a well-behaved caller.
func (b *Block) Clear() { b.used = 0 }

// SetUsed is the hint TableReader uses after pouring raw bytes read from disk
// into the block's backing buffer: it has no other way to tell the block how
// much of that buffer is valid.
func (b *Block) SetUsed(n int) {
	if n < 0 || n > b.capacity {
		panic("block: used out of range")
	}
	b.used = n
}

// Cursor returns a forward-only iterator over the frames currently stored in
// the block, starting at offset 0.
func (b *Block) Cursor() *Cursor {
	return &Cursor{block: b}
}

// Cursor walks the frames in a Block from front to back, tolerating trailing
// unused bytes (spec: "no special EOF flag is needed inside a block").
type Cursor struct {
	block  *Block
	offset int
}

// HasNext reports whether a complete frame begins at the cursor's current
// offset. Per spec.md §4.3, a garbled or zero record_size is not fatal — it
// is simply treated as end-of-records for this block.
func (c *Cursor) HasNext() bool {
	b := c.block
	if c.offset+frameHeaderLen > b.used {
		return false
	}
	size := binary.LittleEndian.Uint32(b.data[c.offset:])
	if size == 0 || int(size) > b.capacity {
		return false
	}
	end := c.offset + frameHeaderLen + int(size)
	return end <= b.used
}

// Next returns the payload of the frame at the cursor and advances past it.
// Next panics if HasNext() is false; callers must always check first.
func (c *Cursor) Next() []byte {
	if !c.HasNext() {
		panic(errors.AssertionFailedf("block: Cursor.Next called with no frame available"))
	}
	b := c.block
	size := binary.LittleEndian.Uint32(b.data[c.offset:])
	start := c.offset + frameHeaderLen
	end := start + int(size)
	payload := b.data[start:end]
	c.offset = end
	return payload
}

// Reset rewinds the cursor to the start of the block.
func (c *Cursor) Reset() { c.offset = 0 }
