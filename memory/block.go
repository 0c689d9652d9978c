package memory

import (
	"reflect"
	"unsafe"

	"github.com/pavanmanishd/corelib/result"
)

// Block is a typed handle to storage for a fixed number of T obtained from
// an Allocator. The zero Block is empty and owns nothing.
type Block[T any] struct {
	ptr   *T
	n     int
	align uintptr
}

// Alloc returns storage for n elements of T at T's natural alignment.
// Returns an empty block without consulting a if n == 0.
func Alloc[T any](a Allocator, n int) (Block[T], error) {
	return AllocAligned[T](a, n, alignOf[T]())
}

// AllocAligned returns storage for n elements of T aligned to align, which
// must be a power of two no smaller than T's alignment.
func AllocAligned[T any](a Allocator, n int, align uintptr) (Block[T], error) {
	l := Layout{Type: reflect.TypeFor[T](), Count: n, Align: align}
	l.Validate()
	if n == 0 {
		return Block[T]{}, nil
	}
	p, err := a.Allocate(l)
	if err != nil {
		return Block[T]{}, err
	}
	if p == nil {
		return Block[T]{}, result.AllocationError
	}
	return Block[T]{ptr: (*T)(p), n: n, align: align}, nil
}

// Free returns b's storage to a. b must have come from a.
// Freeing an empty block is a no-op.
func Free[T any](a Allocator, b Block[T]) {
	if b.n == 0 {
		return
	}
	a.Deallocate(unsafe.Pointer(b.ptr), b.Layout())
}

// Slice returns the block's storage as a slice of Len() elements.
// The slice is valid until the block is freed.
func (b Block[T]) Slice() []T {
	if b.n == 0 {
		return nil
	}
	return unsafe.Slice(b.ptr, b.n)
}

// Ptr returns a pointer to the first element, or nil for an empty block.
func (b Block[T]) Ptr() *T { return b.ptr }

// Len returns the number of elements the block holds.
func (b Block[T]) Len() int { return b.n }

// Empty reports whether the block owns no storage.
func (b Block[T]) Empty() bool { return b.n == 0 }

// Layout returns the layout the block was allocated with.
func (b Block[T]) Layout() Layout {
	return Layout{Type: reflect.TypeFor[T](), Count: b.n, Align: b.align}
}
