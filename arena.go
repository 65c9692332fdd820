package fixarena

import "math/bits"

// Arena is a bump allocator over a single caller-supplied buffer.
// It never grows and never frees individual allocations; the whole buffer
// is reused through Reset or swapped through Rebind.
//
// Arena performs no safety gating. Use Restartable or SafeRestartable when
// allocations must outlive the caller's own bookkeeping.
type Arena struct {
	buf    []byte
	offset int // next free byte, 0 <= offset <= len(buf)
}

// NewArena returns an Arena that allocates from buf. The caller keeps
// ownership of buf and must keep it valid while the arena uses it.
func NewArena(buf []byte) *Arena {
	return &Arena{buf: buf}
}

// AllocRaw reserves size bytes aligned to align and returns the offset of
// the reservation from the start of the buffer.
//
// Alignment is relative to the buffer start. On failure the cursor is left
// unchanged.
func (a *Arena) AllocRaw(size, align int) (int, error) {
	start, end, err := a.extent(size, align)
	if err != nil {
		return 0, err
	}
	a.offset = end
	return start, nil
}

// AllocBytes reserves size bytes aligned to align and returns them.
// The returned slice has its capacity clipped to size. Contents are whatever
// the buffer held before; nothing is zeroed.
func (a *Arena) AllocBytes(size, align int) ([]byte, error) {
	_, b, err := a.alloc(size, align)
	return b, err
}

func (a *Arena) alloc(size, align int) (int, []byte, error) {
	start, err := a.AllocRaw(size, align)
	if err != nil {
		return 0, nil, err
	}
	end := start + size
	return start, a.buf[start:end:end], nil
}

// Fits reports whether AllocRaw(size, align) would succeed.
func (a *Arena) Fits(size, align int) bool {
	_, _, err := a.extent(size, align)
	return err == nil
}

// Reset moves the cursor back to the start of the buffer. Previously
// returned slices still alias the buffer and will be overwritten by later
// allocations.
func (a *Arena) Reset() {
	a.offset = 0
}

// Rebind replaces the backing buffer and resets the cursor.
func (a *Arena) Rebind(buf []byte) {
	a.buf = buf
	a.offset = 0
}

// Bytes returns the whole backing buffer.
func (a *Arena) Bytes() []byte {
	return a.buf
}

// extent computes the [start, end) range for a request without mutating.
func (a *Arena) extent(size, align int) (int, int, error) {
	if size < 0 {
		return 0, 0, ErrInvalidSize
	}
	if !validAlign(align) {
		return 0, 0, ErrInvalidAlign
	}

	start, carry := bits.Add(uint(a.offset), padding(a.offset, align), 0)
	if carry != 0 {
		return 0, 0, ErrOutOfSpace
	}
	end, carry := bits.Add(start, uint(size), 0)
	if carry != 0 || end > uint(len(a.buf)) {
		return 0, 0, ErrOutOfSpace
	}
	return int(start), int(end), nil
}

// padding returns the number of bytes needed to move off up to the next
// multiple of align. align must be a power of two.
func padding(off, align int) uint {
	return -uint(off) & uint(align-1)
}

func validAlign(align int) bool {
	return align > 0 && align&(align-1) == 0
}
