package fixarena

import (
	"math/bits"
	"reflect"
	"sync"
	"unsafe"
)

// AllocSlice reserves room for n elements of T inside the arena and returns
// them as a slice. The elements are not initialized: they hold whatever
// bytes the buffer contained.
//
// T must not contain Go pointers; see ErrPointerType.
func AllocSlice[T any](a *Arena, n int) ([]T, error) {
	size, align, err := sliceLayout[T](n)
	if err != nil {
		return nil, err
	}
	b, err := a.AllocBytes(size, align)
	if err != nil {
		return nil, err
	}
	return sliceView[T](b, n), nil
}

// Create places v inside the arena and returns a pointer to the copy.
// On failure the error is a *CreateError[T] whose Value is v.
func Create[T any](a *Arena, v T) (*T, error) {
	size, align, err := valueLayout[T]()
	if err != nil {
		return nil, &CreateError[T]{Value: v, Err: err}
	}
	b, err := a.AllocBytes(size, align)
	if err != nil {
		return nil, &CreateError[T]{Value: v, Err: err}
	}
	p := valueView[T](b)
	*p = v
	return p, nil
}

func valueLayout[T any]() (size, align int, err error) {
	if !pointerFree(reflect.TypeFor[T]()) {
		return 0, 0, ErrPointerType
	}
	var zero T
	return int(unsafe.Sizeof(zero)), int(unsafe.Alignof(zero)), nil
}

func sliceLayout[T any](n int) (size, align int, err error) {
	if n < 0 {
		return 0, 0, ErrInvalidSize
	}
	elem, align, err := valueLayout[T]()
	if err != nil {
		return 0, 0, err
	}
	hi, lo := bits.Mul(uint(elem), uint(n))
	if hi != 0 || lo > uint(maxInt) {
		return 0, 0, ErrOutOfSpace
	}
	return int(lo), align, nil
}

const maxInt = int(^uint(0) >> 1)

func valueView[T any](b []byte) *T {
	if len(b) == 0 {
		// zero-sized T
		return new(T)
	}
	return (*T)(unsafe.Pointer(unsafe.SliceData(b)))
}

func sliceView[T any](b []byte, n int) []T {
	if n == 0 || len(b) == 0 {
		return make([]T, n)
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
}

var pointerFreeCache sync.Map // reflect.Type -> bool

// pointerFree reports whether values of t can be stored in memory the
// garbage collector does not scan.
func pointerFree(t reflect.Type) bool {
	if v, ok := pointerFreeCache.Load(t); ok {
		return v.(bool)
	}
	ok := scanPointerFree(t)
	pointerFreeCache.Store(t, ok)
	return ok
}

func scanPointerFree(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return t.Len() == 0 || scanPointerFree(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if !scanPointerFree(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
