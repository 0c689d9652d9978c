package memory

import (
	"sync"
	"unsafe"
)

// SyncAllocator is a mutex-protected wrapper around another allocator so it
// can be shared between goroutines. Containers built on it are still
// single-writer; only the allocator is serialized.
type SyncAllocator struct {
	mu   sync.Mutex
	next Allocator
}

// Synchronized wraps next for concurrent use.
func Synchronized(next Allocator) *SyncAllocator {
	return &SyncAllocator{next: next}
}

// Allocate thread-safely forwards to the wrapped allocator.
func (s *SyncAllocator) Allocate(l Layout) (unsafe.Pointer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next.Allocate(l)
}

// Deallocate thread-safely forwards to the wrapped allocator.
func (s *SyncAllocator) Deallocate(p unsafe.Pointer, l Layout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next.Deallocate(p, l)
}

// Do runs fn with exclusive access to the wrapped allocator, for calls that
// are not part of the Allocator interface (Arena.Reset, Tracker.Metrics).
func (s *SyncAllocator) Do(fn func(Allocator)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.next)
}
