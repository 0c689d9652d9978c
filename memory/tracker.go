package memory

import (
	"unsafe"

	"fortio.org/safecast"
)

// Tracker forwards to another allocator and records its traffic. It checks
// that every Deallocate matches a live allocation with the same layout and
// panics otherwise, which makes it useful for catching leaks and double
// frees in tests.
type Tracker struct {
	next Allocator
	live map[unsafe.Pointer]Layout
	m    AllocatorMetrics
}

// NewTracker wraps next. A nil next tracks Heap.
func NewTracker(next Allocator) *Tracker {
	if next == nil {
		next = Heap{}
	}
	return &Tracker{next: next, live: make(map[unsafe.Pointer]Layout)}
}

// Allocate implements Allocator.
func (t *Tracker) Allocate(l Layout) (unsafe.Pointer, error) {
	p, err := t.next.Allocate(l)
	if err != nil {
		t.m.Failures++
		return nil, err
	}
	size, _ := l.Size()
	if _, dup := t.live[p]; dup && size > 0 {
		panic("memory: allocator returned a block that is still live")
	}
	if size > 0 {
		t.live[p] = l
	}
	t.m.Allocations++
	t.m.LiveBlocks++
	t.m.BytesInUse += safecast.MustConv[int](size)
	t.m.PeakBytes = max(t.m.PeakBytes, t.m.BytesInUse)
	return p, nil
}

// Deallocate implements Allocator.
func (t *Tracker) Deallocate(p unsafe.Pointer, l Layout) {
	size, _ := l.Size()
	if size > 0 {
		got, ok := t.live[p]
		if !ok {
			panic("memory: deallocate of a block that is not live")
		}
		if got != l {
			panic("memory: deallocate with a layout that differs from the allocation")
		}
		delete(t.live, p)
	}
	t.m.Deallocations++
	t.m.LiveBlocks--
	t.m.BytesInUse -= safecast.MustConv[int](size)
	t.next.Deallocate(p, l)
}

// Metrics returns a snapshot of the traffic seen so far.
func (t *Tracker) Metrics() AllocatorMetrics { return t.m }
