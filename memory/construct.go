package memory

import "unsafe"

// Destroyer is implemented by element pointer types that must be told when
// the slot holding them is vacated. Slots holding the zero value are
// destroyed too, so Destroy must accept one.
type Destroyer interface {
	Destroy()
}

// copier is implemented by *T when copying a T into owned storage must run
// user code. A failed CopyFrom leaves the destination unconstructed.
type copier[T any] interface {
	CopyFrom(src *T) error
}

// assigner is implemented by *T when overwriting a live T must run user
// code. A failed AssignFrom must leave the destination live and unchanged.
type assigner[T any] interface {
	AssignFrom(src *T) error
}

// Construct copies src into the unconstructed slot dst. If *T implements
// CopyFrom(*T) error it is used, and on failure dst is reset to the zero
// value and the error returned.
func Construct[T any](dst, src *T) error {
	if c, ok := any(dst).(copier[T]); ok {
		if err := c.CopyFrom(src); err != nil {
			var zero T
			*dst = zero
			return err
		}
		return nil
	}
	*dst = *src
	return nil
}

// Assign copies src over the live element at dst. If *T implements
// AssignFrom(*T) error it is used. Otherwise, when *T has lifecycle hooks,
// the copy is constructed aside and only then is the old value destroyed,
// so a failed copy leaves dst untouched. Types without hooks are assigned
// directly.
func Assign[T any](dst, src *T) error {
	if a, ok := any(dst).(assigner[T]); ok {
		return a.AssignFrom(src)
	}
	_, copies := any(dst).(copier[T])
	_, destroys := any(dst).(Destroyer)
	if !copies && !destroys {
		*dst = *src
		return nil
	}
	var tmp T
	if err := Construct(&tmp, src); err != nil {
		return err
	}
	Destroy(dst)
	*dst = tmp
	return nil
}

// Destroy ends the lifetime of the element at p: it calls Destroy when *T
// implements Destroyer, then clears the slot.
func Destroy[T any](p *T) {
	if d, ok := any(p).(Destroyer); ok {
		d.Destroy()
	}
	var zero T
	*p = zero
}

// DestroyAll destroys the elements of s from last to first.
func DestroyAll[T any](s []T) {
	for i := len(s) - 1; i >= 0; i-- {
		Destroy(&s[i])
	}
}

// New allocates a single T from a and runs init on it. If init fails the
// storage is released and the error returned. A nil init leaves the zero
// value.
func New[T any](a Allocator, init func(*T) error) (*T, error) {
	b, err := Alloc[T](a, 1)
	if err != nil {
		return nil, err
	}
	if init != nil {
		if err := init(b.ptr); err != nil {
			Free(a, b)
			return nil, err
		}
	}
	return b.ptr, nil
}

// Delete destroys *p and returns its storage to a. p must have come from New
// with the same allocator.
func Delete[T any](a Allocator, p *T) {
	if p == nil {
		return
	}
	Destroy(p)
	Free(a, Block[T]{ptr: p, n: 1, align: alignOf[T]()})
}

// NewArray allocates n elements of T and initializes them left to right.
// If init fails at index k, elements [0, k) are destroyed right to left, the
// storage is released, and the error is returned. A nil init leaves zero
// values.
func NewArray[T any](a Allocator, n int, init func(i int, p *T) error) (Block[T], error) {
	b, err := Alloc[T](a, n)
	if err != nil || init == nil {
		return b, err
	}
	s := b.Slice()
	for i := range s {
		if err := init(i, &s[i]); err != nil {
			var zero T
			s[i] = zero
			DestroyAll(s[:i])
			Free(a, b)
			return Block[T]{}, err
		}
	}
	return b, nil
}

// DeleteArray destroys the elements of b right to left and returns its
// storage to a.
func DeleteArray[T any](a Allocator, b Block[T]) {
	DestroyAll(b.Slice())
	Free(a, b)
}

func alignOf[T any]() uintptr {
	var zero T
	return unsafe.Alignof(zero)
}
