package fixarena

import "sync/atomic"

// releaser is the live-count a handle reports back to.
type releaser interface {
	release(gen uint64)
}

// ticket is the bookkeeping for one reservation made by a coordinator.
type ticket struct {
	owner releaser
	off   int
	size  int
	gen   uint64
}

// Handle is exclusive access to one range of a coordinator's buffer.
//
// V is the view handed to the caller: []byte for Alloc and Reclaim, []T for
// AllocSliceIn and *T for CreateIn. The handle does not own the bytes; it
// owns one unit of the coordinator's live-count, which keeps the buffer
// from being restarted, rebound or reclaimed until Release is called.
type Handle[V any] struct {
	view     V
	t        ticket
	released atomic.Bool
}

func newHandle[V any](t ticket, view V) *Handle[V] {
	return &Handle[V]{view: view, t: t}
}

// Value returns the view. It panics if the handle has been released.
func (h *Handle[V]) Value() V {
	if h.released.Load() {
		panic("fixarena: use after Release")
	}
	return h.view
}

// Offset returns the start of the range, measured from the buffer start.
func (h *Handle[V]) Offset() int { return h.t.off }

// Len returns the size of the range in bytes.
func (h *Handle[V]) Len() int { return h.t.size }

// Generation returns the buffer generation the handle was allocated in.
func (h *Handle[V]) Generation() uint64 { return h.t.gen }

// Release gives the range back to the coordinator. Only the first call has
// an effect; Release on a nil handle does nothing.
//
// Release may be called from any goroutine for handles that came from a
// SafeRestartable.
func (h *Handle[V]) Release() {
	if h == nil || !h.released.CompareAndSwap(false, true) {
		return
	}
	h.t.owner.release(h.t.gen)
}
