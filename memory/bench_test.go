package memory

import (
	"testing"
)

// BenchmarkRealisticUsage compares allocators on request-shaped workloads
func BenchmarkRealisticUsage(b *testing.B) {
	type TestStruct struct {
		ID   int64
		Data [56]byte // Total 64 bytes
	}

	// Many small allocations with periodic cleanup
	b.Run("ManySmallAllocs/Arena", func(b *testing.B) {
		a := NewArena(64 * 1024)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			for j := 0; j < 100; j++ {
				_, _ = Alloc[TestStruct](a, 1)
			}
			a.Reset()
		}
	})

	b.Run("ManySmallAllocs/Heap", func(b *testing.B) {
		var h Heap
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			for j := 0; j < 100; j++ {
				_, _ = Alloc[TestStruct](h, 1)
			}
		}
	})

	b.Run("ManySmallAllocs/Builtin", func(b *testing.B) {
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			objects := make([]*TestStruct, 100)
			for j := 0; j < 100; j++ {
				objects[j] = new(TestStruct)
			}
		}
	})

	// Tracking overhead on top of the heap
	b.Run("Tracked/Heap", func(b *testing.B) {
		tr := NewTracker(Heap{})
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			blk, _ := Alloc[TestStruct](tr, 16)
			Free(tr, blk)
		}
	})
}
