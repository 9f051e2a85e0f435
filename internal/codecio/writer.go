package codecio

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Writer accumulates little-endian bytes in memory. Containers that must be
// prefixed by the byte size of their own payload call ByteSize on the value
// being written (computed by structural recursion, see the ByteSize methods
// in package gvas) rather
// than seeking back to patch a length field.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Offset returns the number of bytes written so far.
func (w *Writer) Offset() int64 {
	return int64(w.buf.Len())
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// WriteBytes appends raw bytes.
func (w *Writer) WriteBytes(b []byte) error {
	_, err := w.buf.Write(b)
	return err
}

// WriteU8 appends one byte.
func (w *Writer) WriteU8(v uint8) error {
	return w.buf.WriteByte(v)
}

// WriteU16 appends an unsigned 16-bit little-endian integer.
func (w *Writer) WriteU16(v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return w.WriteBytes(b[:])
}

// WriteU32 appends an unsigned 32-bit little-endian integer.
func (w *Writer) WriteU32(v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return w.WriteBytes(b[:])
}

// WriteU64 appends an unsigned 64-bit little-endian integer.
func (w *Writer) WriteU64(v uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return w.WriteBytes(b[:])
}

// WriteI32 appends a signed 32-bit little-endian integer.
func (w *Writer) WriteI32(v int32) error {
	return w.WriteU32(uint32(v))
}

// WriteI64 appends a signed 64-bit little-endian integer.
func (w *Writer) WriteI64(v int64) error {
	return w.WriteU64(uint64(v))
}

// WriteF32 appends a 32-bit IEEE-754 little-endian float.
func (w *Writer) WriteF32(v float32) error {
	return w.WriteU32(math.Float32bits(v))
}

// WriteF64 appends a 64-bit IEEE-754 little-endian float.
func (w *Writer) WriteF64(v float64) error {
	return w.WriteU64(math.Float64bits(v))
}
