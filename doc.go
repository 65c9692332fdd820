// Package fixarena implements a fixed-capacity bump allocator (memory arena)
// over a caller-supplied byte buffer, with a restart operation that reuses
// the buffer once every allocation made from it has been released.
//
// # Overview
//
// An arena hands out consecutive, aligned ranges of one buffer by advancing
// a cursor. Nothing is freed individually; the whole buffer is reused at
// once. This is useful for:
//
//   - Per-request or per-frame scratch memory
//   - Staging records into a preallocated or memory-mapped region
//   - Keeping short-lived, pointer-free data out of the garbage collector
//
// # Layers
//
// Arena is the bare algorithm. It has no safety gating: Reset and Rebind
// succeed even while slices from the previous round are still in use.
//
// Restartable and SafeRestartable wrap an Arena with a live-count. Every
// allocation returns a *Handle that holds one unit of that count until
// Release is called. Restart, Rebind and Reclaim only succeed when the
// count is zero:
//
//	buf := make([]byte, 4096)
//	c := fixarena.NewRestartable(buf)
//
//	h, err := fixarena.CreateIn(c, uint64(42))
//	if err != nil {
//		return err
//	}
//	*h.Value() += 1
//	h.Release()
//
//	c.Restart() // panics if any handle is still live
//
// The Try forms (TryRestart, TryRebind, TryReclaim) return an error wrapping
// ErrBusy instead of panicking. None of them wait; SafeRestartable.WaitRestart
// polls for callers that want to.
//
// # Thread Safety
//
// Arena and Restartable are not goroutine-safe. SafeRestartable serializes
// the cursor bump under a mutex and keeps the live-count in an atomic, so
// handles may be allocated and released from any goroutine.
//
// # Memory Layout
//
// Alignment is measured from the start of the buffer. Supply a buffer whose
// base address is aligned (see package mmbuf) when absolute alignment
// matters. Bytes are never zeroed, on allocation or on restart.
//
// # Important Notes
//
//   - Types placed with Create, CreateIn, AllocSlice or AllocSliceIn must
//     not contain Go pointers; such types are rejected with ErrPointerType
//   - The caller owns the buffer and must keep it valid until it is rebound
//     or the arena is discarded
//   - Releasing more handles than were allocated panics
package fixarena
