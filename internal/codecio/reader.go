// Package codecio provides position-tracking binary readers and writers for
// the tower-unite-save wire format. All multi-byte values are little-endian.
package codecio

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Reader reads little-endian primitives from an in-memory byte slice while
// tracking an absolute stream offset, so that callers can report error
// positions relative to the outermost file even when reading from a
// sub-buffer carved out for an embedded container.
type Reader struct {
	data []byte
	pos  int
	base int64
}

// NewReader wraps data for reading, with absolute offsets starting at 0.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Offset returns the current absolute position in the enclosing stream.
func (r *Reader) Offset() int64 {
	return r.base + int64(r.pos)
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Since returns the bytes consumed between the given absolute offset
// (previously obtained from Offset) and the current position. Used to
// capture a pass-through region after structurally parsing just enough of
// it to find its end.
func (r *Reader) Since(start int64) []byte {
	from := int(start - r.base)
	return r.data[from:r.pos]
}

// Sub carves out the next n bytes as an independent reader whose absolute
// offsets continue from the parent's current position, advancing the parent
// past those n bytes. Used to bound TinyRick parsing and translate any
// inner-format error back to the enclosing stream's coordinates.
func (r *Reader) Sub(n int) (*Reader, error) {
	b, err := r.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	return &Reader{data: b, base: r.base + int64(r.pos-n)}, nil
}

// ReadBytes reads the next n raw bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, fmt.Errorf("codecio: premature EOF at offset %d wanting %d bytes, have %d", r.Offset(), n, r.Remaining())
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadU8 reads one unsigned byte.
func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU16 reads an unsigned 16-bit little-endian integer.
func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadU32 reads an unsigned 32-bit little-endian integer.
func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadU64 reads an unsigned 64-bit little-endian integer.
func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadI32 reads a signed 32-bit little-endian integer.
func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

// ReadI64 reads a signed 64-bit little-endian integer.
func (r *Reader) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err
}

// ReadF32 reads a 32-bit IEEE-754 little-endian float.
func (r *Reader) ReadF32() (float32, error) {
	v, err := r.ReadU32()
	return math.Float32frombits(v), err
}

// ReadF64 reads a 64-bit IEEE-754 little-endian float.
func (r *Reader) ReadF64() (float64, error) {
	v, err := r.ReadU64()
	return math.Float64frombits(v), err
}
