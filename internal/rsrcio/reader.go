// Package rsrcio provides the cursor-based byte reader and writer the
// data-fill codec drives. All multi-byte values are big-endian, the
// format's canonical byte order. Both sides record the first error and
// turn every later call into a no-op, so a decode routine can issue a
// straight-line sequence of reads and check once at the end.
package rsrcio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
)

// MaxPayloadLen caps a single length-prefixed payload. A corrupt or
// hostile length field must not translate into an unbounded
// allocation.
const MaxPayloadLen = 1 << 28

// ErrPayloadTooLarge reports a length prefix above MaxPayloadLen.
var ErrPayloadTooLarge = errors.New("rsrcio: length-prefixed payload too large")

// Reader decodes big-endian values from an underlying byte stream.
type Reader struct {
	br        *bufio.Reader
	bytesRead int
	err       error
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// NewReaderBytes returns a Reader over a byte slice.
func NewReaderBytes(b []byte) *Reader {
	return NewReader(bytes.NewReader(b))
}

// Err returns the first error encountered, if any.
func (r *Reader) Err() error { return r.err }

// BytesRead returns the number of bytes successfully consumed.
func (r *Reader) BytesRead() int { return r.bytesRead }

func (r *Reader) recordError(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

func (r *Reader) read(p []byte) error {
	if r.err != nil {
		return r.err
	}
	n, err := io.ReadFull(r.br, p)
	r.bytesRead += n
	if err != nil {
		r.recordError(err)
		return err
	}
	return nil
}

// Peek returns the next n bytes without consuming them. The returned
// slice is only valid until the next read.
func (r *Reader) Peek(n int) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	b, err := r.br.Peek(n)
	if err != nil {
		r.recordError(err)
		return nil, err
	}
	return b, nil
}

// ReadU8 reads one unsigned byte.
func (r *Reader) ReadU8() (uint8, error) {
	var b [1]byte
	if err := r.read(b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU16 reads a big-endian uint16.
func (r *Reader) ReadU16() (uint16, error) {
	var b [2]byte
	if err := r.read(b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

// ReadU32 reads a big-endian uint32.
func (r *Reader) ReadU32() (uint32, error) {
	var b [4]byte
	if err := r.read(b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

// ReadU64 reads a big-endian uint64.
func (r *Reader) ReadU64() (uint64, error) {
	var b [8]byte
	if err := r.read(b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

// ReadUint reads an unsigned big-endian integer of the given byte
// width (1, 2, 4 or 8).
func (r *Reader) ReadUint(width int) (uint64, error) {
	b := make([]byte, width)
	if err := r.read(b); err != nil {
		return 0, err
	}
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v, nil
}

// ReadF32 reads a big-endian IEEE float32.
func (r *Reader) ReadF32() (float32, error) {
	v, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadF64 reads a big-endian IEEE float64.
func (r *Reader) ReadF64() (float64, error) {
	v, err := r.ReadU64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadBlock reads exactly n raw bytes.
func (r *Reader) ReadBlock(n int) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}
	b := make([]byte, n)
	if err := r.read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// ReadPrefixedBytes reads a 4-byte unsigned length followed by that
// many raw bytes.
func (r *Reader) ReadPrefixedBytes() ([]byte, error) {
	n, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if n > MaxPayloadLen {
		r.recordError(ErrPayloadTooLarge)
		return nil, r.err
	}
	return r.ReadBlock(int(n))
}

// Skip discards n bytes.
func (r *Reader) Skip(n int) error {
	if r.err != nil {
		return r.err
	}
	m, err := r.br.Discard(n)
	r.bytesRead += m
	if err != nil {
		r.recordError(err)
	}
	return err
}
