package fixarena

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrOutOfSpace indicates that the request does not fit in the remaining
	// capacity, or that computing its extent would overflow.
	ErrOutOfSpace = errors.New("fixarena: out of space")

	// ErrBusy indicates a restart, rebind or reclaim attempted while
	// allocations from the current buffer are still live.
	ErrBusy = errors.New("fixarena: live allocations outstanding")

	// ErrInvalidAlign indicates an alignment that is not a positive power of two.
	ErrInvalidAlign = errors.New("fixarena: alignment must be a power of two")

	// ErrInvalidSize indicates a negative size or element count.
	ErrInvalidSize = errors.New("fixarena: negative size")

	// ErrPointerType indicates a type that holds Go pointers and so cannot
	// live in an unscanned byte buffer.
	ErrPointerType = errors.New("fixarena: type contains pointers")
)

var (
	errCounterUnderflow = errors.New("fixarena: release with zero live allocations")
	errStaleGeneration  = errors.New("fixarena: release of handle from a previous generation")
)

// CreateError is returned by the Create family when a value could not be
// placed. The rejected value is handed back in Value.
type CreateError[T any] struct {
	Value T
	Err   error
}

func (e *CreateError[T]) Error() string {
	return fmt.Sprintf("fixarena: create %T: %v", e.Value, e.Err)
}

func (e *CreateError[T]) Unwrap() error {
	return e.Err
}

// busy wraps ErrBusy with the operation and the live count observed.
func busy(op string, live int64) error {
	return errors.Wrapf(ErrBusy, "%s with %d live allocations", op, live)
}
