package memory

import (
	"unsafe"

	"fortio.org/safecast"

	"github.com/pavanmanishd/corelib/result"
)

// Limited forwards to another allocator until a budget is exhausted, after
// which Allocate fails with result.AllocationError. It bounds pools and
// injects allocation failures in tests.
type Limited struct {
	next      Allocator
	maxBytes  int
	inUse     int
	remaining int // successful allocations left; negative means unlimited
}

// NewLimited wraps next with a budget of maxBytes bytes in use at any time.
// maxBytes <= 0 leaves the byte budget unlimited. A nil next uses Heap.
func NewLimited(next Allocator, maxBytes int) *Limited {
	if next == nil {
		next = Heap{}
	}
	return &Limited{next: next, maxBytes: maxBytes, remaining: -1}
}

// FailAfter lets n more allocations succeed and fails every one after that.
// A negative n removes the count limit.
func (l *Limited) FailAfter(n int) *Limited {
	l.remaining = n
	return l
}

// InUse returns the bytes currently allocated through l.
func (l *Limited) InUse() int { return l.inUse }

// Allocate implements Allocator.
func (l *Limited) Allocate(lay Layout) (unsafe.Pointer, error) {
	lay.Validate()
	size, err := lay.Size()
	if err != nil {
		return nil, err
	}
	n := safecast.MustConv[int](size)
	if l.remaining == 0 || (l.maxBytes > 0 && n > l.maxBytes-l.inUse) {
		return nil, result.AllocationError
	}
	p, err := l.next.Allocate(lay)
	if err != nil {
		return nil, err
	}
	if l.remaining > 0 {
		l.remaining--
	}
	l.inUse += n
	return p, nil
}

// Deallocate implements Allocator.
func (l *Limited) Deallocate(p unsafe.Pointer, lay Layout) {
	if size, err := lay.Size(); err == nil {
		l.inUse -= safecast.MustConv[int](size)
	}
	l.next.Deallocate(p, lay)
}
