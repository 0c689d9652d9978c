package array

import (
	"iter"
	"unsafe"
)

// Array owns a fixed number of elements. The length is set when the array
// is made and never changes. Copying an Array value shares its storage; use
// Clone for an independent copy.
//
// The zero Array has length zero: Data returns nil and iteration yields
// nothing.
type Array[T any] struct {
	items []T
}

// Of returns an array holding a copy of vs.
func Of[T any](vs ...T) Array[T] {
	if len(vs) == 0 {
		return Array[T]{}
	}
	items := make([]T, len(vs))
	copy(items, vs)
	return Array[T]{items: items}
}

// Make returns an array of n zero values.
func Make[T any](n int) Array[T] {
	if n == 0 {
		return Array[T]{}
	}
	return Array[T]{items: make([]T, n)}
}

// Clone returns an independent copy of a.
func (a Array[T]) Clone() Array[T] { return Of(a.items...) }

// Len returns the number of elements.
func (a Array[T]) Len() int { return len(a.items) }

// Empty reports whether the array has length zero.
func (a Array[T]) Empty() bool { return len(a.items) == 0 }

// At returns the element at i.
func (a Array[T]) At(i int) T { return a.items[i] }

// Ptr returns a pointer to the element at i.
func (a Array[T]) Ptr(i int) *T { return &a.items[i] }

// Set stores v at i.
func (a Array[T]) Set(i int, v T) { a.items[i] = v }

// Data returns a pointer to the first element, or nil when empty.
func (a Array[T]) Data() *T { return unsafe.SliceData(a.items) }

// Front returns the first element.
func (a Array[T]) Front() T {
	if len(a.items) == 0 {
		panic("array: Front of empty array")
	}
	return a.items[0]
}

// Back returns the last element.
func (a Array[T]) Back() T {
	if len(a.items) == 0 {
		panic("array: Back of empty array")
	}
	return a.items[len(a.items)-1]
}

// View returns a view over the array's elements.
func (a Array[T]) View() View[T] { return View[T]{s: a.items} }

// Slice returns the elements as a slice sharing the array's storage.
func (a Array[T]) Slice() []T { return a.items }

// All returns an iterator over index-value pairs, first to last.
func (a Array[T]) All() iter.Seq2[int, T] { return a.View().All() }

// Backward returns an iterator over index-value pairs, last to first.
func (a Array[T]) Backward() iter.Seq2[int, T] { return a.View().Backward() }

// Values returns an iterator over the elements, first to last.
func (a Array[T]) Values() iter.Seq[T] { return a.View().Values() }

// Equal reports whether a and b have the same length and equal elements.
func Equal[T comparable](a, b Array[T]) bool {
	return ViewEqual(a.View(), b.View())
}
