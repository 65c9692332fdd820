package fixarena

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
)

// SafeRestartable is the concurrent form of Restartable. Allocation and
// release may happen on any goroutine, and a handle may be released on a
// different goroutine from the one that allocated it.
//
// The mutex covers only the bump of the cursor and the check-and-mutate of
// Restart, Rebind and Reclaim; it is never held for the lifetime of a
// handle.
type SafeRestartable struct {
	mu    sync.Mutex
	arena Arena // guarded by mu
	live  atomic.Int64
	gen   atomic.Uint64 // written under mu
	log   *slog.Logger
}

var _ Coordinator = (*SafeRestartable)(nil)

// NewSafeRestartable returns a SafeRestartable over buf.
func NewSafeRestartable(buf []byte, opts ...Option) *SafeRestartable {
	o := buildOptions(opts)
	return &SafeRestartable{
		arena: Arena{buf: buf},
		log:   o.logger,
	}
}

// Alloc reserves size bytes aligned to align.
func (s *SafeRestartable) Alloc(size, align int) (*Handle[[]byte], error) {
	t, b, err := s.reserve(size, align)
	if err != nil {
		return nil, err
	}
	return newHandle(t, b), nil
}

func (s *SafeRestartable) reserve(size, align int) (ticket, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reserveLocked(size, align)
}

// reserveLocked bumps the cursor and counts the new handle. The increment
// happens before mu is released so that a cycling operation never sees the
// bump without it.
func (s *SafeRestartable) reserveLocked(size, align int) (ticket, []byte, error) {
	off, b, err := s.arena.alloc(size, align)
	if err != nil {
		return ticket{}, nil, err
	}
	s.live.Add(1)
	return ticket{owner: s, off: off, size: size, gen: s.gen.Load()}, b, nil
}

func (s *SafeRestartable) release(gen uint64) {
	if gen != s.gen.Load() {
		panic(errStaleGeneration)
	}
	for {
		n := s.live.Load()
		if n <= 0 {
			panic(errCounterUnderflow)
		}
		if s.live.CompareAndSwap(n, n-1) {
			return
		}
	}
}

// Live returns the number of handles not yet released.
func (s *SafeRestartable) Live() int { return int(s.live.Load()) }

// Generation returns the number of successful restarts, rebinds and
// reclaims so far.
func (s *SafeRestartable) Generation() uint64 { return s.gen.Load() }

// Restart resets the cursor to the start of the buffer. It panics if any
// handle is still live.
func (s *SafeRestartable) Restart() {
	if err := s.TryRestart(); err != nil {
		panic(err)
	}
}

// TryRestart resets the cursor, or returns an error wrapping ErrBusy if any
// handle is still live. It never waits; see WaitRestart.
func (s *SafeRestartable) TryRestart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.idleLocked("restart"); err != nil {
		return err
	}
	s.arena.Reset()
	gen := s.gen.Add(1)
	s.log.Debug("arena restarted", "generation", gen)
	return nil
}

// WaitRestart polls TryRestart, yielding the processor between attempts,
// until it succeeds or ctx is done.
func (s *SafeRestartable) WaitRestart(ctx context.Context) error {
	for {
		err := s.TryRestart()
		if !errors.Is(err, ErrBusy) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		runtime.Gosched()
	}
}

// Rebind switches to buf and resets the cursor. It panics if any handle is
// still live. The old buffer is left to the caller.
func (s *SafeRestartable) Rebind(buf []byte) {
	if err := s.TryRebind(buf); err != nil {
		panic(err)
	}
}

// TryRebind is Rebind returning an error wrapping ErrBusy instead of
// panicking.
func (s *SafeRestartable) TryRebind(buf []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.idleLocked("rebind"); err != nil {
		return err
	}
	s.arena.Rebind(buf)
	gen := s.gen.Add(1)
	s.log.Debug("arena rebound", "generation", gen, "capacity", len(buf))
	return nil
}

// Reclaim resets the cursor and returns the whole buffer as a single live
// allocation. It panics if any handle is still live.
func (s *SafeRestartable) Reclaim() *Handle[[]byte] {
	h, err := s.TryReclaim()
	if err != nil {
		panic(err)
	}
	return h
}

// TryReclaim is Reclaim returning an error wrapping ErrBusy instead of
// panicking. The cursor is left at the end of the buffer, so allocations
// fail with ErrOutOfSpace until the handle is released and the arena is
// restarted.
func (s *SafeRestartable) TryReclaim() (*Handle[[]byte], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.idleLocked("reclaim"); err != nil {
		return nil, err
	}
	s.arena.Reset()
	gen := s.gen.Add(1)
	t, b, err := s.reserveLocked(s.arena.Capacity(), 1)
	if err != nil {
		return nil, err
	}
	s.log.Debug("arena reclaimed", "generation", gen, "capacity", len(b))
	return newHandle(t, b), nil
}

// idleLocked must be called with mu held, and the caller must keep holding
// mu until its mutation is done.
func (s *SafeRestartable) idleLocked(op string) error {
	if n := s.live.Load(); n != 0 {
		s.log.Debug("arena busy", "op", op, "live", n)
		return busy(op, n)
	}
	return nil
}
