// Package arraylist provides ArrayList, a growable contiguous sequence whose
// storage comes from a memory.Allocator.
//
// Element lifetimes follow the memory package hooks: copies into the list go
// through memory.Construct, removals through memory.Destroy, and relocation
// during growth is a plain move that runs no hooks. Operations that can fail
// return result.AllocationError or the error of a failing copy hook and
// leave the list in a valid state. Misuse such as an out-of-range index
// panics.
//
//	l := arraylist.New[int]()
//	defer l.Release()
//	if err := l.Append(1, 2, 3); err != nil {
//		return err
//	}
package arraylist

import (
	"iter"
	"slices"
	"unsafe"

	"fortio.org/safecast"
	"go.uber.org/zap"

	"github.com/pavanmanishd/corelib/array"
	"github.com/pavanmanishd/corelib/memory"
)

// noCopy makes go vet flag by-value copies of an ArrayList. Two copies would
// share one buffer and free it twice.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// ArrayList is a growable array. The zero value is an empty list that
// allocates from memory.Heap. An ArrayList must not be copied after first
// use; use Clone for a deep copy and Move to transfer ownership.
type ArrayList[T any] struct {
	_ noCopy

	alloc memory.Allocator
	block memory.Block[T]
	buf   []T // block.Slice(); slots past size are zero
	size  int
}

// Option configures a new ArrayList.
type Option func(*options)

type options struct {
	alloc memory.Allocator
}

// WithAllocator makes the list obtain storage from a.
func WithAllocator(a memory.Allocator) Option {
	return func(o *options) { o.alloc = a }
}

// New returns an empty list. It does not allocate.
func New[T any](opts ...Option) *ArrayList[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &ArrayList[T]{alloc: o.alloc}
}

// WithLength returns a list holding n elements copy-constructed from the
// zero value.
func WithLength[T any](n int, opts ...Option) (*ArrayList[T], error) {
	l := New[T](opts...)
	if err := l.Resize(n); err != nil {
		return nil, err
	}
	return l, nil
}

// Allocator returns the allocator backing the list.
func (l *ArrayList[T]) Allocator() memory.Allocator {
	if l.alloc == nil {
		return memory.Heap{}
	}
	return l.alloc
}

// Len returns the number of elements.
func (l *ArrayList[T]) Len() int { return l.size }

// Cap returns the number of elements the list can hold without reallocating.
func (l *ArrayList[T]) Cap() int { return len(l.buf) }

// Empty reports whether the list holds no elements.
func (l *ArrayList[T]) Empty() bool { return l.size == 0 }

// At returns the element at index i.
func (l *ArrayList[T]) At(i int) T { return *l.Ptr(i) }

// Ptr returns a pointer to the element at index i. The pointer is valid
// until the next operation that reallocates or removes elements.
func (l *ArrayList[T]) Ptr(i int) *T {
	if uint(i) >= uint(l.size) {
		panic("arraylist: index out of range")
	}
	return &l.buf[i]
}

// Set assigns v to the element at index i with memory.Assign. On error the
// element keeps its old value.
func (l *ArrayList[T]) Set(i int, v T) error {
	return memory.Assign(l.Ptr(i), &v)
}

// Front returns the first element. Panics if the list is empty.
func (l *ArrayList[T]) Front() T {
	if l.size == 0 {
		panic("arraylist: Front of empty list")
	}
	return l.buf[0]
}

// Back returns the last element. Panics if the list is empty.
func (l *ArrayList[T]) Back() T {
	if l.size == 0 {
		panic("arraylist: Back of empty list")
	}
	return l.buf[l.size-1]
}

// Data returns a pointer to the first slot of the buffer, or nil if the list
// has no storage.
func (l *ArrayList[T]) Data() *T { return l.block.Ptr() }

// Slice returns the live elements. Appending to the result never writes into
// the list's spare capacity.
func (l *ArrayList[T]) Slice() []T {
	if l.size == 0 {
		return nil
	}
	return l.buf[:l.size:l.size]
}

// View returns a view of the live elements.
func (l *ArrayList[T]) View() array.View[T] { return array.ViewOf(l.Slice()) }

// All returns an iterator over index-value pairs in order.
func (l *ArrayList[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < l.size; i++ {
			if !yield(i, l.buf[i]) {
				return
			}
		}
	}
}

// Backward returns an iterator over index-value pairs in reverse order.
func (l *ArrayList[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := l.size - 1; i >= 0; i-- {
			if !yield(i, l.buf[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements in order.
func (l *ArrayList[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < l.size; i++ {
			if !yield(l.buf[i]) {
				return
			}
		}
	}
}

// Clear destroys every element and keeps the buffer.
func (l *ArrayList[T]) Clear() {
	memory.DestroyAll(l.buf[:l.size])
	l.size = 0
}

// Release destroys every element and returns the buffer to the allocator.
// The list stays usable and keeps its allocator.
func (l *ArrayList[T]) Release() {
	l.Clear()
	l.free()
}

// Move transfers the elements and buffer to a new list and leaves l empty.
func (l *ArrayList[T]) Move() *ArrayList[T] {
	dst := &ArrayList[T]{alloc: l.alloc, block: l.block, buf: l.buf, size: l.size}
	l.block, l.buf, l.size = memory.Block[T]{}, nil, 0
	return dst
}

// Clone returns a deep copy of l using the same allocator. Every element is
// copy-constructed.
func (l *ArrayList[T]) Clone() (*ArrayList[T], error) {
	dst := &ArrayList[T]{alloc: l.alloc}
	if err := dst.Append(l.Slice()...); err != nil {
		return nil, err
	}
	return dst, nil
}

// ShrinkToFit reallocates the buffer to hold exactly Len elements. An empty
// list gives its buffer back.
func (l *ArrayList[T]) ShrinkToFit() error {
	switch {
	case l.size == len(l.buf):
		return nil
	case l.size == 0:
		l.free()
		return nil
	}
	return l.reallocate(l.size)
}

// free returns the buffer to the allocator without destroying anything.
func (l *ArrayList[T]) free() {
	memory.Free(l.Allocator(), l.block)
	l.block, l.buf = memory.Block[T]{}, nil
}

// reallocate moves the live elements into a new buffer of n slots. On
// failure the list is unchanged.
func (l *ArrayList[T]) reallocate(n int) error {
	blk, err := l.allocate(n)
	if err != nil {
		return err
	}
	buf := blk.Slice()
	copy(buf, l.buf[:l.size])
	l.adopt(blk)
	return nil
}

// allocate obtains a buffer of n slots to replace the current one.
func (l *ArrayList[T]) allocate(n int) (memory.Block[T], error) {
	blk, err := memory.Alloc[T](l.Allocator(), n)
	if err != nil {
		return blk, err
	}
	if ce := memory.Logger().Check(zap.DebugLevel, "arraylist: reallocate"); ce != nil {
		ce.Write(zap.Int("from", len(l.buf)), zap.Int("to", n), zap.Int("len", l.size))
	}
	return blk, nil
}

// adopt replaces the buffer with blk, whose slots [0, size) already hold the
// live elements, and frees the old one.
func (l *ArrayList[T]) adopt(blk memory.Block[T]) {
	clear(l.buf[:l.size])
	memory.Free(l.Allocator(), l.block)
	l.block, l.buf = blk, blk.Slice()
}

// growCap returns the capacity to reallocate to so that need elements fit:
// double the current capacity, or need itself if that is larger.
func (l *ArrayList[T]) growCap(need int) int {
	doubled, err := safecast.Conv[int](2 * uint64(len(l.buf)))
	if err != nil || doubled < need {
		return need
	}
	return doubled
}

// overlaps reports whether a shares memory with the buffer behind b.
func overlaps[T any](a, b []T) bool {
	if len(a) == 0 || cap(b) == 0 {
		return false
	}
	size := unsafe.Sizeof(a[0])
	if size == 0 {
		return false
	}
	aStart := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	bStart := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	aEnd := aStart + uintptr(len(a))*size
	bEnd := bStart + uintptr(cap(b))*size
	return aStart < bEnd && bStart < aEnd
}

// detach returns src, or a shallow copy of it if it aliases the list's own
// buffer.
func (l *ArrayList[T]) detach(src []T) []T {
	if overlaps(src, l.buf) {
		return slices.Clone(src)
	}
	return src
}
