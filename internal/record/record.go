// Package record implements the variable-length field sequence that is the
// payload of every frame in a block.Block. It knows nothing about blocks or
// files; it only serialises and deserialises its own field list.
package record

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

// fieldHeaderLen is the width of the little-endian u16 field-length prefix
// that precedes every field in a serialised Record payload.
const fieldHeaderLen = 2

// MaxFieldLen is the largest field length the u16 length prefix can encode.
const MaxFieldLen = 1<<16 - 1

// Record is an ordered sequence of byte-string fields. It carries no schema
// or type tag; the caller supplies the interpretation (see package schema).
type Record struct {
	Fields [][]byte
}

// New builds a Record from the given fields, in order.
func New(fields ...[]byte) Record {
	return Record{Fields: fields}
}

// NewFromStrings is a convenience constructor for string fields.
func NewFromStrings(fields ...string) Record {
	out := make([][]byte, len(fields))
	for i, f := range fields {
		out[i] = []byte(f)
	}
	return Record{Fields: out}
}

// Field returns the field at idx as a string.
func (r Record) Field(idx int) string {
	return string(r.Fields[idx])
}

// FieldCount returns the number of fields in the record.
func (r Record) FieldCount() int { return len(r.Fields) }

// SerialisedPayloadSize returns sum(2+len(field)) over all fields — the
// exact number of bytes Payload() will produce, used for capacity arithmetic
// before attempting an Append.
func (r Record) SerialisedPayloadSize() int {
	size := 0
	for _, f := range r.Fields {
		size += fieldHeaderLen + len(f)
	}
	return size
}

// Payload serialises the record's fields as the frame payload:
// [u16 len][bytes] repeated once per field, in order. This does NOT include
// the outer u32 record_size — that framing lives in block.Block.Append.
func (r Record) Payload() []byte {
	out := make([]byte, 0, r.SerialisedPayloadSize())
	var lenBuf [fieldHeaderLen]byte
	for _, f := range r.Fields {
		if len(f) > MaxFieldLen {
			panic(errors.AssertionFailedf("record: field length %d exceeds max %d", errors.Safe(len(f)), errors.Safe(MaxFieldLen)))
		}
		binary.LittleEndian.PutUint16(lenBuf[:], uint16(len(f)))
		out = append(out, lenBuf[:]...)
		out = append(out, f...)
	}
	return out
}

// Decode parses a frame payload (as produced by block.Cursor.Next, i.e. with
// the outer u32 record_size already stripped) into a Record. It reads
// [u16 len][bytes] pairs until the entire payload is consumed; the payload
// carries no field count of its own.
func Decode(payload []byte) (Record, error) {
	var fields [][]byte
	pos := 0
	for pos < len(payload) {
		if pos+fieldHeaderLen > len(payload) {
			return Record{}, errors.Newf("record: truncated field length prefix at offset %d", errors.Safe(pos))
		}
		fieldLen := int(binary.LittleEndian.Uint16(payload[pos:]))
		pos += fieldHeaderLen
		if pos+fieldLen > len(payload) {
			return Record{}, errors.Newf("record: truncated field data at offset %d (want %d bytes)", errors.Safe(pos), errors.Safe(fieldLen))
		}
		field := make([]byte, fieldLen)
		copy(field, payload[pos:pos+fieldLen])
		fields = append(fields, field)
		pos += fieldLen
	}
	return Record{Fields: fields}, nil
}
