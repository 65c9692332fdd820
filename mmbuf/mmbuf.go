package mmbuf

import (
	"sync/atomic"
	"unsafe"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidSize is returned for a negative size.
	ErrInvalidSize = errors.New("mmbuf: invalid size")
	// ErrInvalidAlign is returned for an alignment that is not a power of two.
	ErrInvalidAlign = errors.New("mmbuf: alignment must be a power of two")
)

// Buffer is a block of memory obtained from the operating system.
// It owns the memory and releases it on Close.
type Buffer struct {
	data   []byte
	closed atomic.Bool
	unmap  func([]byte) error
}

// Map returns a zero-filled, page-aligned Buffer of size bytes.
// A size of zero yields an empty Buffer that owns nothing.
func Map(size int) (*Buffer, error) {
	if size < 0 {
		return nil, ErrInvalidSize
	}
	if size == 0 {
		return &Buffer{}, nil
	}
	data, unmap, err := osMapAnon(size)
	if err != nil {
		return nil, errors.Wrapf(err, "mmbuf: map %d bytes", size)
	}
	return &Buffer{data: data, unmap: unmap}, nil
}

// Bytes returns the mapped memory, or nil once the Buffer is closed.
// The slice must not be used after Close.
func (b *Buffer) Bytes() []byte {
	if b.closed.Load() {
		return nil
	}
	return b.data
}

// Len returns the size of the Buffer in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Close releases the memory. It is idempotent.
func (b *Buffer) Close() error {
	if b.closed.Swap(true) {
		return nil
	}
	if b.unmap != nil && b.data != nil {
		return errors.Wrap(b.unmap(b.data), "mmbuf: unmap")
	}
	return nil
}

// Aligned returns a heap slice of length size whose first byte is aligned
// to align. align must be a power of two.
func Aligned(size, align int) ([]byte, error) {
	if size < 0 {
		return nil, ErrInvalidSize
	}
	if align <= 0 || align&(align-1) != 0 {
		return nil, ErrInvalidAlign
	}
	raw := make([]byte, size+align)
	skip := int(-uintptr(unsafe.Pointer(unsafe.SliceData(raw))) & uintptr(align-1))
	return raw[skip : skip+size : skip+size], nil
}
