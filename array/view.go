// Package array provides a fixed-length owning array and a non-owning view
// over contiguous storage.
//
// Neither type allocates after construction or reports failures. Indexing is
// unchecked beyond Go's own bounds checks: Front and Back on an empty
// container are programming errors and panic.
package array

import (
	"iter"
	"unsafe"
)

// View is a non-owning window over contiguous elements. A View never
// allocates; it is valid only while the storage it refers to is.
type View[T any] struct {
	s []T
}

// ViewOf returns a view over s.
func ViewOf[T any](s []T) View[T] {
	if len(s) == 0 {
		return View[T]{}
	}
	return View[T]{s: s[:len(s):len(s)]}
}

// ViewPtr returns a view over n elements starting at p. p may be nil only
// when n is zero.
func ViewPtr[T any](p *T, n int) View[T] {
	if n == 0 {
		return View[T]{}
	}
	return View[T]{s: unsafe.Slice(p, n)}
}

// Len returns the number of elements in the view.
func (v View[T]) Len() int { return len(v.s) }

// Empty reports whether the view has no elements.
func (v View[T]) Empty() bool { return len(v.s) == 0 }

// At returns the element at i.
func (v View[T]) At(i int) T { return v.s[i] }

// Ptr returns a pointer to the element at i.
func (v View[T]) Ptr(i int) *T { return &v.s[i] }

// Data returns a pointer to the first element, or nil for an empty view.
func (v View[T]) Data() *T { return unsafe.SliceData(v.s) }

// Front returns the first element.
func (v View[T]) Front() T {
	if len(v.s) == 0 {
		panic("array: Front of empty view")
	}
	return v.s[0]
}

// Back returns the last element.
func (v View[T]) Back() T {
	if len(v.s) == 0 {
		panic("array: Back of empty view")
	}
	return v.s[len(v.s)-1]
}

// Sub returns the view of n elements starting at off.
func (v View[T]) Sub(off, n int) View[T] {
	return View[T]{s: v.s[off : off+n : off+n]}
}

// First returns the view of the first n elements.
func (v View[T]) First(n int) View[T] { return v.Sub(0, n) }

// Last returns the view of the last n elements.
func (v View[T]) Last(n int) View[T] { return v.Sub(len(v.s)-n, n) }

// Slice returns the viewed elements as a slice sharing the same storage.
func (v View[T]) Slice() []T { return v.s }

// All returns an iterator over index-value pairs, first to last.
func (v View[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, e := range v.s {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Backward returns an iterator over index-value pairs, last to first.
func (v View[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := len(v.s) - 1; i >= 0; i-- {
			if !yield(i, v.s[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements, first to last.
func (v View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, e := range v.s {
			if !yield(e) {
				return
			}
		}
	}
}

// ViewEqual reports whether a and b have the same length and equal
// elements.
func ViewEqual[T comparable](a, b View[T]) bool {
	if len(a.s) != len(b.s) {
		return false
	}
	for i := range a.s {
		if a.s[i] != b.s[i] {
			return false
		}
	}
	return true
}
