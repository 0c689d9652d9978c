package memory

import (
	"math"
	"math/bits"
	"reflect"

	"fortio.org/safecast"

	"github.com/pavanmanishd/corelib/result"
)

// Layout describes a storage request: Count elements of Type at Align.
type Layout struct {
	Type  reflect.Type
	Count int
	Align uintptr
}

// LayoutFor returns the layout of n elements of T at T's natural alignment.
func LayoutFor[T any](n int) Layout {
	t := reflect.TypeFor[T]()
	return Layout{Type: t, Count: n, Align: uintptr(t.Align())}
}

// IsValidAlignment reports whether a is a usable alignment: a non-zero
// power of two.
func IsValidAlignment(a uintptr) bool {
	return a != 0 && a&(a-1) == 0
}

// Validate panics if l is not a well-formed request.
func (l Layout) Validate() {
	if l.Type == nil {
		panic("memory: layout without element type")
	}
	if l.Count < 0 {
		panic("memory: negative element count")
	}
	if !IsValidAlignment(l.Align) {
		panic("memory: alignment must be a non-zero power of two")
	}
	if l.Align < uintptr(l.Type.Align()) {
		panic("memory: alignment below the element type's alignment")
	}
}

// Size returns the number of bytes l covers. A request too large to be
// addressed fails with result.AllocationError.
func (l Layout) Size() (uintptr, error) {
	n, err := safecast.Conv[uint](l.Count)
	if err != nil {
		return 0, result.AllocationError
	}
	hi, lo := bits.Mul(uint(l.Type.Size()), n)
	if hi != 0 || lo > math.MaxInt {
		return 0, result.AllocationError
	}
	return uintptr(lo), nil
}

// hasPointers reports whether values of t hold pointers the garbage
// collector must see.
func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// alignUp rounds off up to a multiple of align, which must be a power of two.
func alignUp(off, align uintptr) uintptr {
	mask := align - 1
	return (off + mask) & ^mask
}
