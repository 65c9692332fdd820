package fixarena

import "log/slog"

// Coordinator is implemented by Restartable and SafeRestartable. It lets
// AllocSliceIn and CreateIn work with either.
type Coordinator interface {
	Alloc(size, align int) (*Handle[[]byte], error)
	TryRestart() error
	Live() int
	Generation() uint64

	reserve(size, align int) (ticket, []byte, error)
}

// AllocSliceIn reserves n elements of T from c and returns a handle to them.
// The elements are not initialized.
func AllocSliceIn[T any](c Coordinator, n int) (*Handle[[]T], error) {
	size, align, err := sliceLayout[T](n)
	if err != nil {
		return nil, err
	}
	t, b, err := c.reserve(size, align)
	if err != nil {
		return nil, err
	}
	return newHandle(t, sliceView[T](b, n)), nil
}

// CreateIn places v in c and returns a handle to the copy. On failure the
// error is a *CreateError[T] whose Value is v.
func CreateIn[T any](c Coordinator, v T) (*Handle[*T], error) {
	size, align, err := valueLayout[T]()
	if err != nil {
		return nil, &CreateError[T]{Value: v, Err: err}
	}
	t, b, err := c.reserve(size, align)
	if err != nil {
		return nil, &CreateError[T]{Value: v, Err: err}
	}
	p := valueView[T](b)
	*p = v
	return newHandle(t, p), nil
}

// Restartable is a single-owner arena whose buffer can be reused once every
// handle allocated from it has been released. It is not safe for
// concurrent use; see SafeRestartable.
type Restartable struct {
	arena Arena
	live  int64
	gen   uint64
	log   *slog.Logger
}

var _ Coordinator = (*Restartable)(nil)

// NewRestartable returns a Restartable over buf.
func NewRestartable(buf []byte, opts ...Option) *Restartable {
	o := buildOptions(opts)
	return &Restartable{
		arena: Arena{buf: buf},
		log:   o.logger,
	}
}

// Alloc reserves size bytes aligned to align.
func (c *Restartable) Alloc(size, align int) (*Handle[[]byte], error) {
	t, b, err := c.reserve(size, align)
	if err != nil {
		return nil, err
	}
	return newHandle(t, b), nil
}

func (c *Restartable) reserve(size, align int) (ticket, []byte, error) {
	off, b, err := c.arena.alloc(size, align)
	if err != nil {
		return ticket{}, nil, err
	}
	c.live++
	return ticket{owner: c, off: off, size: size, gen: c.gen}, b, nil
}

func (c *Restartable) release(gen uint64) {
	if c.live == 0 {
		panic(errCounterUnderflow)
	}
	if gen != c.gen {
		panic(errStaleGeneration)
	}
	c.live--
}

// Live returns the number of handles not yet released.
func (c *Restartable) Live() int { return int(c.live) }

// Generation returns the number of successful restarts, rebinds and
// reclaims so far.
func (c *Restartable) Generation() uint64 { return c.gen }

// Restart resets the cursor to the start of the buffer. It panics if any
// handle is still live.
func (c *Restartable) Restart() {
	if err := c.TryRestart(); err != nil {
		panic(err)
	}
}

// TryRestart resets the cursor, or returns an error wrapping ErrBusy if any
// handle is still live. Buffer contents are left as they are.
func (c *Restartable) TryRestart() error {
	if c.live != 0 {
		return c.rejected("restart")
	}
	c.arena.Reset()
	c.gen++
	c.log.Debug("arena restarted", "generation", c.gen)
	return nil
}

// Rebind switches to buf and resets the cursor. It panics if any handle is
// still live. The old buffer is left to the caller.
func (c *Restartable) Rebind(buf []byte) {
	if err := c.TryRebind(buf); err != nil {
		panic(err)
	}
}

// TryRebind is Rebind returning an error wrapping ErrBusy instead of
// panicking.
func (c *Restartable) TryRebind(buf []byte) error {
	if c.live != 0 {
		return c.rejected("rebind")
	}
	c.arena.Rebind(buf)
	c.gen++
	c.log.Debug("arena rebound", "generation", c.gen, "capacity", len(buf))
	return nil
}

// Reclaim resets the cursor and returns the whole buffer as a single live
// allocation. It panics if any handle is still live.
func (c *Restartable) Reclaim() *Handle[[]byte] {
	h, err := c.TryReclaim()
	if err != nil {
		panic(err)
	}
	return h
}

// TryReclaim is Reclaim returning an error wrapping ErrBusy instead of
// panicking. The cursor is left at the end of the buffer, so allocations
// fail with ErrOutOfSpace until the handle is released and the arena is
// restarted.
func (c *Restartable) TryReclaim() (*Handle[[]byte], error) {
	if c.live != 0 {
		return nil, c.rejected("reclaim")
	}
	c.arena.Reset()
	c.gen++
	t, b, err := c.reserve(c.arena.Capacity(), 1)
	if err != nil {
		return nil, err
	}
	c.log.Debug("arena reclaimed", "generation", c.gen, "capacity", len(b))
	return newHandle(t, b), nil
}

func (c *Restartable) rejected(op string) error {
	c.log.Debug("arena busy", "op", op, "live", c.live)
	return busy(op, c.live)
}
