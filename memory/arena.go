package memory

import (
	"unsafe"

	"fortio.org/safecast"
	"go.uber.org/zap"

	"github.com/pavanmanishd/corelib/result"
)

// DefaultChunkSize is the default chunk size for new arenas (64 KiB).
const DefaultChunkSize = 1 << 16

// chunk represents a single memory chunk within an arena.
type chunk struct {
	buf    []byte  // backing memory
	offset uintptr // allocation offset within buf
	last   uintptr // start of the most recent allocation
}

// base returns the address of the chunk's first byte.
func (c *chunk) base() uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(c.buf)))
}

// Arena is a chunked bump allocator. Not goroutine-safe; wrap it with
// Synchronized for concurrent access.
//
// Deallocate only reclaims the most recent allocation of the current chunk;
// everything else is reclaimed in bulk by Reset or Release. Arena chunks are
// not scanned by the garbage collector, so layouts whose element type holds
// pointers fail with result.AllocationError.
type Arena struct {
	chunks    []chunk
	chunkSize int
	current   int // index of the chunk being filled
}

// NewArena creates a new Arena with the specified chunk size.
// If chunkSize <= 0, DefaultChunkSize is used.
func NewArena(chunkSize int) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	a := &Arena{chunkSize: chunkSize}
	a.grow(safecast.MustConv[uintptr](chunkSize))
	return a
}

// Allocate implements Allocator.
func (a *Arena) Allocate(l Layout) (unsafe.Pointer, error) {
	l.Validate()
	a.panicIfReleased()
	if hasPointers(l.Type) {
		Logger().Warn("arena: refusing pointer-bearing layout", zap.Stringer("type", l.Type))
		return nil, result.AllocationError
	}
	size, err := l.Size()
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return unsafe.Pointer(&zeroBase), nil
	}
	p := a.allocate(size, l.Align)
	if p == nil {
		return nil, result.AllocationError
	}
	clear(unsafe.Slice((*byte)(p), size))
	return p, nil
}

// Deallocate implements Allocator. Storage other than the most recent
// allocation of the current chunk stays in use until Reset or Release.
func (a *Arena) Deallocate(p unsafe.Pointer, l Layout) {
	a.panicIfReleased()
	size, err := l.Size()
	if err != nil || size == 0 {
		return
	}
	c := &a.chunks[a.current]
	start := uintptr(p) - c.base()
	if start == c.last && start+size == c.offset {
		c.offset = c.last
	}
}

// AllocBytes returns a []byte slice pointing into the arena's backing chunk.
// The caller must ensure the arena remains reachable while the returned slice is in use.
// Returns nil if n <= 0.
func (a *Arena) AllocBytes(n int) []byte {
	if n <= 0 {
		return nil
	}
	a.panicIfReleased()
	const align = unsafe.Sizeof(uintptr(0))
	p := a.allocate(safecast.MustConv[uintptr](n), align)
	if p == nil {
		return nil
	}
	return unsafe.Slice((*byte)(p), n)
}

// allocate carves size bytes aligned to align out of the current chunk,
// growing the arena when the chunk cannot hold them.
func (a *Arena) allocate(size, align uintptr) unsafe.Pointer {
	// Fast path: use cached current chunk
	if p := a.chunks[a.current].carve(size, align); p != nil {
		return p
	}

	// Chunks kept by Reset are reused before growing.
	for a.current+1 < len(a.chunks) {
		a.current++
		if p := a.chunks[a.current].carve(size, align); p != nil {
			return p
		}
	}

	// Slow path: need new chunk, padded so any base address can be aligned
	need := size + align - 1
	if need < size {
		return nil
	}
	if !a.grow(need) {
		return nil
	}
	return a.chunks[a.current].carve(size, align)
}

// carve bump-allocates from c, or returns nil if c is too small.
func (c *chunk) carve(size, align uintptr) unsafe.Pointer {
	base := c.base()
	off := alignUp(base+c.offset, align) - base
	if off+size < off || off+size > uintptr(len(c.buf)) {
		return nil
	}
	c.last = off
	c.offset = off + size
	return unsafe.Add(unsafe.Pointer(unsafe.SliceData(c.buf)), off)
}

// EnsureCapacity ensures the current chunk has at least n free bytes.
// If not, it grows the arena with a new chunk.
func (a *Arena) EnsureCapacity(n int) {
	a.panicIfReleased()
	c := &a.chunks[a.current]
	free := uintptr(0)
	if off := alignPtr(c.offset); off < uintptr(len(c.buf)) {
		free = uintptr(len(c.buf)) - off
	}
	want := safecast.MustConv[uintptr](max(n, 0))
	if want > free {
		a.grow(want)
	}
}

// Reset resets allocation offsets to zero but keeps allocated chunks for reuse.
// Every block handed out before Reset becomes invalid.
func (a *Arena) Reset() {
	a.panicIfReleased()
	for i := range a.chunks {
		a.chunks[i].offset = 0
		a.chunks[i].last = 0
	}
	// Reset cached chunk to first chunk
	a.current = 0
}

// Release drops all chunks and makes the arena unusable.
// Any subsequent operations will panic.
func (a *Arena) Release() {
	a.chunks = nil
	a.current = 0
}

// grow appends a new chunk of at least min bytes and makes it current.
// It reports false when the runtime cannot provide the chunk.
func (a *Arena) grow(min uintptr) bool {
	size, err := safecast.Conv[int](min)
	if err != nil {
		return false
	}
	size = max(size, a.chunkSize)
	p, err := makeTyped(byteType, size)
	if err != nil {
		return false
	}
	a.chunks = append(a.chunks, chunk{buf: unsafe.Slice((*byte)(p), size)})
	a.current = len(a.chunks) - 1
	Logger().Debug("arena: new chunk", zap.Int("size", size), zap.Int("chunks", len(a.chunks)))
	return true
}

// panicIfReleased panics if the arena has been released.
func (a *Arena) panicIfReleased() {
	if a.chunks == nil {
		panic("arena: use after Release()")
	}
}

// alignPtr aligns the offset up to pointer size alignment.
func alignPtr(off uintptr) uintptr {
	return alignUp(off, unsafe.Sizeof(uintptr(0)))
}
