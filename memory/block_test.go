package memory

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"testing"
	"unsafe"

	"github.com/pavanmanishd/corelib/result"
)

type testStruct struct {
	a int64
	b int32
	c int16
	d int8
}

func TestAllocEmpty(t *testing.T) {
	tr := NewTracker(Heap{})

	b, err := Alloc[int](tr, 0)
	if err != nil {
		t.Fatalf("Alloc(0) error = %v", err)
	}
	if !b.Empty() || b.Ptr() != nil || b.Slice() != nil {
		t.Errorf("Alloc(0) = %+v, want empty block", b)
	}
	Free(tr, b)
	if m := tr.Metrics(); m.Allocations != 0 || m.Deallocations != 0 {
		t.Errorf("empty block reached the allocator: %+v", m)
	}
}

func TestAllocHeap(t *testing.T) {
	var h Heap

	b, err := Alloc[testStruct](h, 10)
	if err != nil {
		t.Fatalf("Alloc error = %v", err)
	}
	s := b.Slice()
	if len(s) != 10 || cap(s) != 10 || b.Len() != 10 {
		t.Errorf("len = %d cap = %d Len() = %d, want 10", len(s), cap(s), b.Len())
	}
	for i := range s {
		if s[i] != (testStruct{}) {
			t.Errorf("slot %d not zeroed: %+v", i, s[i])
		}
		s[i].a = int64(i)
	}
	if s[9].a != 9 {
		t.Error("could not write to allocated memory")
	}
	Free(h, b)
}

func TestAllocHeapKeepsPointersVisible(t *testing.T) {
	var h Heap
	b, err := Alloc[*testStruct](h, 4)
	if err != nil {
		t.Fatal(err)
	}
	for i := range b.Slice() {
		b.Slice()[i] = &testStruct{a: int64(i)}
	}
	for i, p := range b.Slice() {
		if p.a != int64(i) {
			t.Errorf("element %d = %d", i, p.a)
		}
	}
}

func TestAllocAligned(t *testing.T) {
	var h Heap
	tests := []struct {
		name  string
		align uintptr
		alloc func(uintptr) (unsafe.Pointer, error)
	}{
		{"int64", 64, func(a uintptr) (unsafe.Pointer, error) {
			b, err := AllocAligned[int64](h, 3, a)
			return unsafe.Pointer(b.Ptr()), err
		}},
		{"bytes", 128, func(a uintptr) (unsafe.Pointer, error) {
			b, err := AllocAligned[byte](h, 5, a)
			return unsafe.Pointer(b.Ptr()), err
		}},
		{"pointers", 32, func(a uintptr) (unsafe.Pointer, error) {
			b, err := AllocAligned[*int](h, 7, a)
			return unsafe.Pointer(b.Ptr()), err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for range 20 {
				p, err := tt.alloc(tt.align)
				if err != nil {
					t.Fatalf("error = %v", err)
				}
				if uintptr(p)%tt.align != 0 {
					t.Fatalf("address %x not aligned to %d", uintptr(p), tt.align)
				}
			}
		})
	}
}

// ptrPair is 16 bytes and holds a pointer, so its stride cannot step over
// an 8-byte offset from an aligned address.
type ptrPair struct {
	p *int
	a int64
}

func TestAllocAlignedPointerStride(t *testing.T) {
	var h Heap
	for _, align := range []uintptr{16, 64, 256, 4096} {
		t.Run(fmt.Sprint(align), func(t *testing.T) {
			for n := 1; n < 200; n++ {
				b, err := AllocAligned[ptrPair](h, n, align)
				if err != nil {
					t.Fatalf("n=%d: error = %v", n, err)
				}
				if addr := uintptr(unsafe.Pointer(b.Ptr())); addr%align != 0 {
					t.Fatalf("n=%d: address %x not aligned to %d", n, addr, align)
				}
			}
		})
	}
}

func TestAllocAlignedKeepsPointersLive(t *testing.T) {
	b, err := AllocAligned[ptrPair](Heap{}, 33, 256)
	if err != nil {
		t.Fatal(err)
	}
	s := b.Slice()
	for i := range s {
		v := i
		s[i] = ptrPair{p: &v, a: int64(i)}
	}

	runtime.GC()
	runtime.GC()

	for i, e := range s {
		if *e.p != i || e.a != int64(i) {
			t.Fatalf("slot %d = (%d, %d) after GC", i, *e.p, e.a)
		}
	}
}

func TestAllocInvalidAlignmentPanics(t *testing.T) {
	for _, align := range []uintptr{0, 3, 14, 15, 4} {
		t.Run(fmt.Sprint(align), func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("AllocAligned[int64](align=%d) should panic", align)
				}
			}()
			_, _ = AllocAligned[int64](Heap{}, 1, align)
		})
	}
}

func TestAllocFailure(t *testing.T) {
	tests := []struct {
		name  string
		alloc func() error
	}{
		{"size overflow", func() error { _, err := Alloc[[1 << 20]byte](Heap{}, math.MaxInt/1024); return err }},
		{"beyond address space", func() error { _, err := Alloc[byte](Heap{}, math.MaxInt); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.alloc(); !errors.Is(err, result.AllocationError) {
				t.Errorf("error = %v, want AllocationError", err)
			}
		})
	}
}

func TestAllocZeroSized(t *testing.T) {
	b, err := Alloc[struct{}](Heap{}, 100)
	if err != nil {
		t.Fatal(err)
	}
	if b.Len() != 100 || len(b.Slice()) != 100 {
		t.Errorf("Len() = %d", b.Len())
	}
	Free(Heap{}, b)
}

func BenchmarkAlloc(b *testing.B) {
	a := NewArena(1024 * 1024)

	b.Run("Arena", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = Alloc[int](a, 1)
			if i%1000 == 999 {
				a.Reset()
			}
		}
	})

	b.Run("Heap", func(b *testing.B) {
		var h Heap
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = Alloc[int](h, 1)
		}
	})
}
