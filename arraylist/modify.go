package arraylist

import (
	"iter"
	"math"
	"slices"

	"github.com/pavanmanishd/corelib/array"
	"github.com/pavanmanishd/corelib/memory"
	"github.com/pavanmanishd/corelib/result"
)

// Reserve makes room for at least n elements. On failure the list is
// unchanged.
func (l *ArrayList[T]) Reserve(n int) error {
	if n < 0 {
		panic("arraylist: negative Reserve")
	}
	if n <= len(l.buf) {
		return nil
	}
	return l.reallocate(n)
}

// Resize sets the length to n, destroying the tail or appending elements
// copy-constructed from the zero value. If a copy fails the length is
// unchanged.
func (l *ArrayList[T]) Resize(n int) error {
	if n < 0 {
		panic("arraylist: negative Resize")
	}
	if n <= l.size {
		memory.DestroyAll(l.buf[n:l.size])
		l.size = n
		return nil
	}
	if n > len(l.buf) {
		if err := l.reallocate(l.growCap(n)); err != nil {
			return err
		}
	}
	var zero T
	for i := l.size; i < n; i++ {
		if err := memory.Construct(&l.buf[i], &zero); err != nil {
			memory.DestroyAll(l.buf[l.size:i])
			return err
		}
	}
	l.size = n
	return nil
}

// PushBack appends a copy of v.
func (l *ArrayList[T]) PushBack(v T) error {
	return l.insert(l.size, []T{v})
}

// Append appends copies of vs.
func (l *ArrayList[T]) Append(vs ...T) error {
	return l.insert(l.size, vs)
}

// AppendView appends copies of the elements of v.
func (l *ArrayList[T]) AppendView(v array.View[T]) error {
	return l.insert(l.size, v.Slice())
}

// AppendSeq appends the values of seq, reading it once. seq must not
// observe l.
func (l *ArrayList[T]) AppendSeq(seq iter.Seq[T]) error {
	return l.InsertSeq(l.size, seq)
}

// Insert inserts copies of vs before index pos; pos == Len appends. On
// failure the list is unchanged.
func (l *ArrayList[T]) Insert(pos int, vs ...T) error {
	return l.insert(pos, vs)
}

// InsertView inserts copies of the elements of v before index pos.
func (l *ArrayList[T]) InsertView(pos int, v array.View[T]) error {
	return l.insert(pos, v.Slice())
}

// InsertSeq inserts the values of seq before index pos. seq is read exactly
// once, so single-use sources work; seq must not observe l. On failure the
// list is unchanged.
func (l *ArrayList[T]) InsertSeq(pos int, seq iter.Seq[T]) error {
	l.checkPos(pos)
	start := l.size
	var err error
	for v := range seq {
		if l.size == len(l.buf) {
			if err = l.reallocate(l.growCap(l.size + 1)); err != nil {
				break
			}
		}
		if err = memory.Construct(&l.buf[l.size], &v); err != nil {
			break
		}
		l.size++
	}
	if err != nil {
		memory.DestroyAll(l.buf[start:l.size])
		l.size = start
		return err
	}
	rotate(l.buf[pos:l.size], l.size-start)
	return nil
}

func (l *ArrayList[T]) insert(pos int, src []T) error {
	l.checkPos(pos)
	n := len(src)
	if n == 0 {
		return nil
	}
	if n > math.MaxInt-l.size {
		return result.AllocationError
	}
	src = l.detach(src)
	need := l.size + n

	if need > len(l.buf) {
		// Build the new buffer around a gap at pos so existing elements move once.
		blk, err := l.allocate(l.growCap(need))
		if err != nil {
			return err
		}
		buf := blk.Slice()
		if err := constructAll(buf[pos:pos+n], src); err != nil {
			memory.Free(l.Allocator(), blk)
			return err
		}
		copy(buf[:pos], l.buf[:pos])
		copy(buf[pos+n:], l.buf[pos:l.size])
		l.adopt(blk)
		l.size = need
		return nil
	}

	if err := constructAll(l.buf[l.size:need], src); err != nil {
		return err
	}
	l.size = need
	rotate(l.buf[pos:need], n)
	return nil
}

// Assign replaces the contents with copies of vs.
//
// When vs does not fit the current buffer a new one is built first and a
// failure leaves the list unchanged. Otherwise the buffer is reused: live
// slots are overwritten with memory.Assign, further slots are
// copy-constructed, and any excess tail is destroyed. If a copy fails part
// way, the list is truncated to the elements already assigned.
func (l *ArrayList[T]) Assign(vs ...T) error {
	return l.assign(vs)
}

// AssignView replaces the contents with copies of the elements of v.
func (l *ArrayList[T]) AssignView(v array.View[T]) error {
	return l.assign(v.Slice())
}

// AssignSeq replaces the contents with the values of seq, reading it once
// and reusing the buffer as Assign does. seq must not observe l. On failure
// the list is truncated to the elements already assigned.
func (l *ArrayList[T]) AssignSeq(seq iter.Seq[T]) error {
	i := 0
	var err error
	for v := range seq {
		if i < l.size {
			if err = memory.Assign(&l.buf[i], &v); err != nil {
				break
			}
			i++
			continue
		}
		if l.size == len(l.buf) {
			if err = l.reallocate(l.growCap(l.size + 1)); err != nil {
				break
			}
		}
		if err = memory.Construct(&l.buf[i], &v); err != nil {
			break
		}
		i++
		l.size = i
	}
	l.truncate(i)
	return err
}

func (l *ArrayList[T]) assign(src []T) error {
	n := len(src)
	src = l.detach(src)

	if n > len(l.buf) {
		blk, err := l.allocate(n)
		if err != nil {
			return err
		}
		buf := blk.Slice()
		if err := constructAll(buf, src); err != nil {
			memory.Free(l.Allocator(), blk)
			return err
		}
		l.Clear()
		l.adopt(blk)
		l.size = n
		return nil
	}

	live := min(l.size, n)
	for i := range live {
		if err := memory.Assign(&l.buf[i], &src[i]); err != nil {
			l.truncate(i)
			return err
		}
	}
	for i := live; i < n; i++ {
		if err := memory.Construct(&l.buf[i], &src[i]); err != nil {
			l.size = i
			return err
		}
		l.size = i + 1
	}
	l.truncate(n)
	return nil
}

// Erase removes n elements starting at pos.
func (l *ArrayList[T]) Erase(pos, n int) {
	if pos < 0 || n < 0 || pos > l.size || n > l.size-pos {
		panic("arraylist: Erase range out of bounds")
	}
	if n == 0 {
		return
	}
	memory.DestroyAll(l.buf[pos : pos+n])
	copy(l.buf[pos:], l.buf[pos+n:l.size])
	clear(l.buf[l.size-n : l.size])
	l.size -= n
}

// PopBack destroys the last element. Panics if the list is empty.
func (l *ArrayList[T]) PopBack() {
	if l.size == 0 {
		panic("arraylist: PopBack of empty list")
	}
	l.size--
	memory.Destroy(&l.buf[l.size])
}

// truncate destroys elements from index n on.
func (l *ArrayList[T]) truncate(n int) {
	if n < l.size {
		memory.DestroyAll(l.buf[n:l.size])
		l.size = n
	}
}

func (l *ArrayList[T]) checkPos(pos int) {
	if uint(pos) > uint(l.size) {
		panic("arraylist: position out of range")
	}
}

// constructAll copy-constructs src into dst. On failure every element it
// constructed is destroyed again.
func constructAll[T any](dst, src []T) error {
	for i := range src {
		if err := memory.Construct(&dst[i], &src[i]); err != nil {
			memory.DestroyAll(dst[:i])
			return err
		}
	}
	return nil
}

// rotate moves the last k elements of s to its front, keeping the order of
// both parts. Elements are moved, never copied or destroyed.
func rotate[T any](s []T, k int) {
	if k == 0 || k == len(s) {
		return
	}
	slices.Reverse(s[:len(s)-k])
	slices.Reverse(s[len(s)-k:])
	slices.Reverse(s)
}
