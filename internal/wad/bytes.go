package wad

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned by ByteView reads that would cross the end of
// the underlying buffer.
var ErrOutOfBounds = errors.New("read out of bounds")

// ByteView is a bounds-checked, read-only accessor over raw archive bytes.
// All integer reads are little-endian.
type ByteView struct {
	data []byte
}

// NewByteView wraps data without copying it.
func NewByteView(data []byte) ByteView {
	return ByteView{data: data}
}

// Len returns the total byte length of the view.
func (v ByteView) Len() int64 {
	return int64(len(v.data))
}

func (v ByteView) span(offset, length int64) ([]byte, error) {
	if offset < 0 || length < 0 || offset > v.Len() || length > v.Len()-offset {
		return nil, fmt.Errorf("%w: offset %d length %d exceeds %d bytes", ErrOutOfBounds, offset, length, v.Len())
	}
	return v.data[offset : offset+length], nil
}

// Int32 reads a signed little-endian 32-bit integer at offset.
func (v ByteView) Int32(offset int64) (int32, error) {
	b, err := v.span(offset, 4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

// Uint32 reads an unsigned little-endian 32-bit integer at offset.
func (v ByteView) Uint32(offset int64) (uint32, error) {
	b, err := v.span(offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// String reads a fixed-length ASCII field at offset with trailing NUL
// padding removed. NUL bytes inside the field are kept.
func (v ByteView) String(offset, length int64) (string, error) {
	b, err := v.span(offset, length)
	if err != nil {
		return "", err
	}
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return string(b[:end]), nil
}

// Slice returns the bytes in [offset, offset+length). The returned slice
// aliases the view.
func (v ByteView) Slice(offset, length int64) ([]byte, error) {
	return v.span(offset, length)
}
