package rsrcio

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
)

// Writer encodes big-endian values to an underlying byte stream.
type Writer struct {
	w            io.Writer
	err          error
	bytesWritten int
}

// NewWriter returns a Writer over w. A *bytes.Buffer is the common
// choice; Bytes then exposes the accumulated output.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Err returns the first error encountered, if any.
func (w *Writer) Err() error { return w.err }

// BytesWritten returns the number of bytes successfully written.
func (w *Writer) BytesWritten() int { return w.bytesWritten }

// Bytes returns the written bytes when the underlying writer is a
// *bytes.Buffer, nil otherwise or after an error.
func (w *Writer) Bytes() []byte {
	if w.err != nil {
		return nil
	}
	if bb, ok := w.w.(*bytes.Buffer); ok {
		return bb.Bytes()
	}
	return nil
}

func (w *Writer) recordError(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

func (w *Writer) write(p []byte) {
	if w.err != nil {
		return
	}
	n, err := w.w.Write(p)
	w.bytesWritten += n
	w.recordError(err)
}

// WriteU8 writes one unsigned byte.
func (w *Writer) WriteU8(v uint8) {
	w.write([]byte{v})
}

// WriteU16 writes a big-endian uint16.
func (w *Writer) WriteU16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.write(b[:])
}

// WriteU32 writes a big-endian uint32.
func (w *Writer) WriteU32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.write(b[:])
}

// WriteU64 writes a big-endian uint64.
func (w *Writer) WriteU64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.write(b[:])
}

// WriteUint writes the low bytes of v as a big-endian integer of the
// given byte width (1, 2, 4 or 8).
func (w *Writer) WriteUint(v uint64, width int) {
	b := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	w.write(b)
}

// WriteF32 writes a big-endian IEEE float32.
func (w *Writer) WriteF32(v float32) {
	w.WriteU32(math.Float32bits(v))
}

// WriteF64 writes a big-endian IEEE float64.
func (w *Writer) WriteF64(v float64) {
	w.WriteU64(math.Float64bits(v))
}

// WriteBlock writes raw bytes.
func (w *Writer) WriteBlock(p []byte) {
	w.write(p)
}

// WritePrefixedBytes writes a 4-byte unsigned length followed by the
// payload.
func (w *Writer) WritePrefixedBytes(p []byte) {
	w.WriteU32(uint32(len(p)))
	w.write(p)
}
