// Package result provides a two-variant value holding either a success
// payload or an error, and the singleton error kinds used across corelib.
//
// A Result lets a value-or-failure travel through code that composes steps
// without branching at every call site:
//
//	r := result.AndThen(openConfig(path), parseConfig)
//	cfg, err := r.Get()
//
// When a step fails, every step after it is skipped and never observes a
// value; the failure reaches the caller unchanged.
package result

// Void is the success payload of operations that produce no value.
type Void struct{}

// Result holds either a value of type T or an error, never both.
//
// The zero Result is a success holding the zero T, so functions returning
// Result[Void] may simply return Result[Void]{}.
type Result[T any] struct {
	value T
	err   error
	moved bool
}

// Ok returns a successful result holding v.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Err returns a failed result holding err. A nil err is a programming error.
func Err[T any](err error) Result[T] {
	if err == nil {
		panic("result: Err with nil error")
	}
	return Result[T]{err: err}
}

// From converts a Go (value, error) pair into a Result.
func From[T any](v T, err error) Result[T] {
	if err != nil {
		return Result[T]{err: err}
	}
	return Result[T]{value: v}
}

// OK reports whether the result holds a value.
func (r Result[T]) OK() bool {
	r.mustBeLive()
	return r.err == nil
}

// Value returns the held value. Calling Value on a failed result panics.
func (r Result[T]) Value() T {
	r.mustBeLive()
	if r.err != nil {
		panic("result: Value called on error result: " + r.err.Error())
	}
	return r.value
}

// Err returns the held error. Calling Err on a successful result panics.
func (r Result[T]) Err() error {
	r.mustBeLive()
	if r.err == nil {
		panic("result: Err called on successful result")
	}
	return r.err
}

// Kind returns the kind of the held error, or nil when the error is not a
// *Kind. Calling Kind on a successful result panics.
func (r Result[T]) Kind() *Kind {
	k, _ := r.Err().(*Kind)
	return k
}

// Get returns the held value and error in Go's conventional form.
func (r Result[T]) Get() (T, error) {
	r.mustBeLive()
	return r.value, r.err
}

// Take moves the value out of a successful result. The receiver is left in
// the moved-from state and must not be queried again.
func (r *Result[T]) Take() T {
	v := r.Value()
	var zero T
	r.value = zero
	r.moved = true
	return v
}

// TakeErr moves the error out of a failed result, leaving the receiver in
// the moved-from state.
func (r *Result[T]) TakeErr() error {
	err := r.Err()
	r.err = nil
	r.moved = true
	return err
}

func (r Result[T]) mustBeLive() {
	if r.moved {
		panic("result: use of moved-from result")
	}
}

// ErrFrom reinterprets a failed result as a failed Result[U] carrying the
// same error. It is the propagation step of an early return:
//
//	if !r.OK() {
//		return result.ErrFrom[Config](r)
//	}
func ErrFrom[U, T any](r Result[T]) Result[U] {
	return Result[U]{err: r.Err()}
}

// Discard drops the value of r while keeping its success or error shape.
func Discard[T any](r Result[T]) Result[Void] {
	r.mustBeLive()
	return Result[Void]{err: r.err}
}

// Map applies f to the value of a successful result.
// A failed result is passed through and f is not called.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	r.mustBeLive()
	if r.err != nil {
		return Result[U]{err: r.err}
	}
	return Result[U]{value: f(r.value)}
}

// AndThen chains a fallible step after r.
// A failed result is passed through and f is not called.
func AndThen[T, U any](r Result[T], f func(T) Result[U]) Result[U] {
	r.mustBeLive()
	if r.err != nil {
		return Result[U]{err: r.err}
	}
	return f(r.value)
}

// Or returns the held value, or fallback if r failed.
func Or[T any](r Result[T], fallback T) T {
	r.mustBeLive()
	if r.err != nil {
		return fallback
	}
	return r.value
}

// Try runs steps in order and stops at the first failure, which it returns.
// Steps after the failing one never run.
func Try(steps ...func() Result[Void]) Result[Void] {
	for _, step := range steps {
		if r := step(); !r.OK() {
			return r
		}
	}
	return Result[Void]{}
}
