package memory_test

import (
	"errors"
	"math"
	"testing"
	"unsafe"

	"github.com/pavanmanishd/corelib/memory"
	"github.com/pavanmanishd/corelib/result"
)

// TestEdgeCases covers edge cases across allocators
func TestEdgeCases(t *testing.T) {
	t.Run("ZeroAndNegativeChunkSizes", func(t *testing.T) {
		testCases := []struct {
			size     int
			expected int
		}{
			{0, memory.DefaultChunkSize},
			{-1, memory.DefaultChunkSize},
			{-1000, memory.DefaultChunkSize},
			{1, 1},
			{1 << 20, 1 << 20},
		}

		for _, tc := range testCases {
			a := memory.NewArena(tc.size)
			if a.ChunkSize() != tc.expected {
				t.Errorf("NewArena(%d): got chunkSize %d, want %d", tc.size, a.ChunkSize(), tc.expected)
			}
			a.Release()
		}
	})

	t.Run("LargeAllocations", func(t *testing.T) {
		a := memory.NewArena(1024)
		defer a.Release()

		large, err := memory.Alloc[byte](a, 2048)
		if err != nil || large.Len() != 2048 {
			t.Errorf("Large allocation failed: %d, %v", large.Len(), err)
		}

		veryLarge, err := memory.Alloc[uint64](a, 1<<17) // 1MB
		if err != nil || veryLarge.Len() != 1<<17 {
			t.Errorf("Very large allocation failed: %d, %v", veryLarge.Len(), err)
		}
	})

	t.Run("OverflowingRequests", func(t *testing.T) {
		allocators := map[string]memory.Allocator{
			"heap":    memory.Heap{},
			"arena":   memory.NewArena(1024),
			"limited": memory.NewLimited(nil, 0),
		}
		for name, a := range allocators {
			if _, err := memory.Alloc[[4096]byte](a, math.MaxInt/1024); !errors.Is(err, result.AllocationError) {
				t.Errorf("%s: error = %v, want AllocationError", name, err)
			}
		}
	})

	t.Run("AlignmentEdgeCases", func(t *testing.T) {
		a := memory.NewArena(1024)
		defer a.Release()

		type AlignTest1 struct{ a int8 }
		type AlignTest2 struct{ a int64 }
		type AlignTest3 struct {
			a int8
			b int64
		}

		p1, _ := memory.Alloc[AlignTest1](a, 3)
		p2, _ := memory.Alloc[AlignTest2](a, 1)
		p3, _ := memory.Alloc[AlignTest3](a, 1)

		if addr := uintptr(unsafe.Pointer(p1.Ptr())); addr%unsafe.Alignof(AlignTest1{}) != 0 {
			t.Errorf("AlignTest1 not properly aligned: %x", addr)
		}
		if addr := uintptr(unsafe.Pointer(p2.Ptr())); addr%unsafe.Alignof(AlignTest2{}) != 0 {
			t.Errorf("AlignTest2 not properly aligned: %x", addr)
		}
		if addr := uintptr(unsafe.Pointer(p3.Ptr())); addr%unsafe.Alignof(AlignTest3{}) != 0 {
			t.Errorf("AlignTest3 not properly aligned: %x", addr)
		}
	})

	t.Run("UseAfterRelease", func(t *testing.T) {
		a := memory.NewArena(1024)
		a.Release()

		testPanic := func(name string, fn func()) {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("%s: expected panic after Release()", name)
				}
			}()
			fn()
		}

		testPanic("AllocBytes", func() { a.AllocBytes(100) })
		testPanic("EnsureCapacity", func() { a.EnsureCapacity(100) })
		testPanic("Reset", func() { a.Reset() })
		testPanic("Alloc", func() { _, _ = memory.Alloc[int](a, 1) })
	})

	t.Run("MultipleReleases", func(t *testing.T) {
		a := memory.NewArena(1024)
		a.Release()
		a.Release()
		a.Release()
	})
}

// TestMemoryCorruption checks that blocks never overlap
func TestMemoryCorruption(t *testing.T) {
	allocators := map[string]memory.Allocator{
		"heap":  memory.Heap{},
		"arena": memory.NewArena(1024),
	}

	for name, a := range allocators {
		t.Run(name, func(t *testing.T) {
			blocks := make([]memory.Block[[64]byte], 100)
			for i := range blocks {
				var err error
				blocks[i], err = memory.Alloc[[64]byte](a, 1)
				if err != nil {
					t.Fatal(err)
				}
				for j := range blocks[i].Slice()[0] {
					blocks[i].Slice()[0][j] = byte(i)
				}
			}

			for i, blk := range blocks {
				for j, b := range blk.Slice()[0] {
					if b != byte(i) {
						t.Fatalf("Memory corruption detected at block[%d][%d]: got %d, want %d", i, j, b, byte(i))
					}
				}
			}
		})
	}
}
