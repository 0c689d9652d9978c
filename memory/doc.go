// Package memory implements the explicit-allocator memory model used by
// corelib containers.
//
// # Overview
//
// An Allocator grants and reclaims raw, typed storage described by a
// Layout (element type, count and alignment). Storage handed out by an
// allocator is zeroed. Allocation failure is never a panic: it is reported
// as result.AllocationError so callers can propagate it.
//
// Allocators in this package:
//
//   - Heap: the default, backed by the Go runtime heap
//   - Arena: a chunked bump allocator for pointer-free element types
//   - Limited: fails once a byte or allocation budget is exhausted
//   - Tracker: counts allocations and bytes in use
//   - Synchronized: serializes access to a shared allocator
//   - Logged: logs every request through zap
//
// # Basic Usage
//
//	var heap memory.Heap
//
//	// Allocate storage for 16 ints
//	block, err := memory.Alloc[int](heap, 16)
//	if err != nil {
//		return err
//	}
//	defer memory.Free(heap, block)
//
//	s := block.Slice()
//	s[0] = 42
//
// # Construction and destruction
//
// NewArray allocates and initializes elements left to right. If an
// initializer fails, the elements already built are destroyed right to left
// and the storage is released before the error is returned. A *T that
// implements Destroyer is notified whenever its slot is vacated; a *T that
// implements CopyFrom(*T) error is used whenever a container copies a value
// into storage it owns.
//
// # Alignment
//
// Alignments must be powers of two no smaller than the element type's own
// alignment. Anything else is a programming error and panics; alignments are
// never silently rounded.
//
// # Arena
//
// The arena allocates memory in chunks (default 64KB). When a chunk fills up,
// a new chunk is allocated. The garbage collector does not scan arena
// chunks for pointers, so the arena refuses layouts whose element type
// contains pointers.
//
//	a := memory.NewArena(0) // default chunk size
//	defer a.Release()
//
//	block, err := memory.Alloc[float32](a, 1024)
//
//	// Reset for reuse (O(number of chunks))
//	a.Reset()
//
// # Thread Safety
//
// Allocators are not thread-safe unless wrapped with Synchronized.
package memory
