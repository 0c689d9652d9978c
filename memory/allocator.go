package memory

import (
	"math"
	"reflect"
	"unsafe"

	"go.uber.org/zap"

	"github.com/pavanmanishd/corelib/result"
)

// Allocator grants and reclaims storage.
//
// Allocate returns zeroed storage for l or fails with
// result.AllocationError. Deallocate releases storage previously obtained
// from the same allocator with the same layout; passing any other pointer or
// layout is undefined.
type Allocator interface {
	Allocate(l Layout) (unsafe.Pointer, error)
	Deallocate(p unsafe.Pointer, l Layout)
}

// zeroBase is handed out for requests that cover zero bytes.
var zeroBase uint64

var byteType = reflect.TypeFor[byte]()

// Heap allocates from the Go runtime heap. Storage is typed, so element
// types holding pointers stay visible to the garbage collector, and
// Deallocate leaves reclamation to the collector.
type Heap struct{}

// Allocate implements Allocator.
func (Heap) Allocate(l Layout) (unsafe.Pointer, error) {
	l.Validate()
	size, err := l.Size()
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return unsafe.Pointer(&zeroBase), nil
	}

	natural := uintptr(l.Type.Align())
	if l.Align <= natural {
		return makeTyped(l.Type, l.Count)
	}

	if !hasPointers(l.Type) {
		if size > math.MaxInt-l.Align {
			return nil, result.AllocationError
		}
		p, err := makeTyped(byteType, int(size+l.Align-1))
		if err != nil {
			return nil, err
		}
		return unsafe.Add(p, alignUp(uintptr(p), l.Align)-uintptr(p)), nil
	}

	// Pointer-bearing and over-aligned: the storage stays typed so the
	// collector sees its pointers. Objects above the runtime's small size
	// limit start on pages of their own, so a miss is retried with the block
	// padded past that limit and a leading pad of words sized from the base
	// address the previous attempt returned.
	if size > math.MaxInt-l.Align-largeObject {
		return nil, result.AllocationError
	}
	if p, err := makeTyped(l.Type, l.Count); err != nil || uintptr(p)%l.Align == 0 {
		return p, err
	}
	pad := 0
	for range paddedAttempts {
		t := paddedType(l.Type, l.Count, pad, size)
		base, err := makeTyped(t, 1)
		if err != nil {
			return nil, err
		}
		p := unsafe.Add(base, t.Field(1).Offset)
		if uintptr(p)%l.Align == 0 {
			return p, nil
		}
		pad = int((l.Align - uintptr(base)%l.Align) % l.Align / wordSize)
	}
	Logger().Warn("memory: no aligned placement for heap request",
		zap.Stringer("type", l.Type), zap.Int("count", l.Count), zap.Uintptr("align", l.Align))
	return nil, result.AllocationError
}

const (
	// largeObject is the runtime's small object size limit.
	largeObject = 32 << 10

	// paddedAttempts bounds the padded allocations made for one
	// over-aligned pointer-bearing request.
	paddedAttempts = 8

	wordSize = unsafe.Sizeof(uintptr(0))
)

var wordType = reflect.TypeFor[uintptr]()

// paddedType returns struct { Pad [pad]uintptr; Data [n]elem; Tail [k]uintptr }
// where Tail takes the struct past largeObject bytes. size is the byte size
// of Data.
func paddedType(elem reflect.Type, n, pad int, size uintptr) reflect.Type {
	tail := 0
	if used := uintptr(pad)*wordSize + size; used <= largeObject {
		tail = int((largeObject-used)/wordSize) + 1
	}
	return reflect.StructOf([]reflect.StructField{
		{Name: "Pad", Type: reflect.ArrayOf(pad, wordType)},
		{Name: "Data", Type: reflect.ArrayOf(n, elem)},
		{Name: "Tail", Type: reflect.ArrayOf(tail, wordType)},
	})
}

// Deallocate implements Allocator.
func (Heap) Deallocate(p unsafe.Pointer, l Layout) {
	if p == nil {
		panic("memory: deallocate of nil pointer")
	}
	l.Validate()
}

// makeTyped allocates n zeroed elements of t. The runtime rejects lengths it
// cannot address with a panic, which is reported as an allocation failure.
func makeTyped(t reflect.Type, n int) (p unsafe.Pointer, err error) {
	defer func() {
		if r := recover(); r != nil {
			Logger().Warn("memory: heap request failed",
				zap.Int("n", n), zap.Stringer("type", t), zap.Any("panic", r))
			p, err = nil, result.AllocationError
		}
	}()
	return reflect.MakeSlice(reflect.SliceOf(t), n, n).UnsafePointer(), nil
}
