package result

import (
	"errors"
	"strconv"
	"testing"
	"testing/quick"
)

func TestOk(t *testing.T) {
	r := Ok(42)
	if !r.OK() {
		t.Fatal("Ok(42).OK() = false")
	}
	if r.Value() != 42 {
		t.Errorf("Value() = %d, want 42", r.Value())
	}
	v, err := r.Get()
	if v != 42 || err != nil {
		t.Errorf("Get() = (%d, %v), want (42, nil)", v, err)
	}
}

func TestErr(t *testing.T) {
	r := Err[int](BackendError)
	if r.OK() {
		t.Fatal("Err(...).OK() = true")
	}
	if r.Err() != BackendError {
		t.Errorf("Err() = %v, want BackendError", r.Err())
	}
	if r.Kind() != BackendError {
		t.Errorf("Kind() = %v, want BackendError", r.Kind())
	}
	if _, err := r.Get(); !errors.Is(err, BackendError) {
		t.Errorf("Get() error = %v, want BackendError", err)
	}
}

func TestZeroResultIsSuccess(t *testing.T) {
	var r Result[Void]
	if !r.OK() {
		t.Error("zero Result should be a success")
	}
}

func TestFrom(t *testing.T) {
	if r := From(7, nil); !r.OK() || r.Value() != 7 {
		t.Errorf("From(7, nil) = %+v", r)
	}
	if r := From(7, PlatformError); r.OK() || r.Err() != PlatformError {
		t.Errorf("From(7, PlatformError) = %+v", r)
	}

	_, err := strconv.Atoi("nope")
	r := From(0, err)
	if r.OK() {
		t.Fatal("From should keep foreign errors")
	}
	if r.Kind() != nil {
		t.Errorf("Kind() of a foreign error = %v, want nil", r.Kind())
	}
}

func TestWrongSidePanics(t *testing.T) {
	testPanic := func(name string, fn func()) {
		t.Helper()
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		fn()
	}

	testPanic("Value on error", func() { Err[int](SystemError).Value() })
	testPanic("Err on value", func() { _ = Ok(1).Err() })
	testPanic("Err with nil", func() { Err[int](nil) })
}

func TestTake(t *testing.T) {
	r := Ok([]int{1, 2, 3})
	v := r.Take()
	if len(v) != 3 {
		t.Fatalf("Take() = %v", v)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic querying a moved-from result")
		}
	}()
	r.OK()
}

func TestTakeErr(t *testing.T) {
	r := Err[string](SystemError)
	if err := r.TakeErr(); err != SystemError {
		t.Fatalf("TakeErr() = %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic querying a moved-from result")
		}
	}()
	r.Get()
}

func TestDiscard(t *testing.T) {
	if r := Discard(Ok("x")); !r.OK() {
		t.Error("Discard(Ok) should succeed")
	}
	if r := Discard(Err[string](BackendError)); r.OK() || r.Err() != BackendError {
		t.Errorf("Discard(Err) = %+v", r)
	}
}

func TestMapAndOr(t *testing.T) {
	double := func(i int) int { return i * 2 }

	if r := Map(Ok(21), double); r.Value() != 42 {
		t.Errorf("Map(Ok(21)) = %d", r.Value())
	}

	called := false
	r := Map(Err[int](SystemError), func(i int) int { called = true; return i })
	if called {
		t.Error("Map must not call f on an error result")
	}
	if Or(r, -1) != -1 {
		t.Errorf("Or = %d, want -1", Or(r, -1))
	}
	if Or(Ok(3), -1) != 3 {
		t.Error("Or on success should return the value")
	}
}

func TestErrFrom(t *testing.T) {
	r := ErrFrom[string](Err[int](PlatformError))
	if r.Err() != PlatformError {
		t.Errorf("ErrFrom() = %v", r.Err())
	}
}

// A chain of three steps where the second fails with kind X yields kind X
// and the third step never runs.
func TestPropagationChain(t *testing.T) {
	x := Declare(BackendError, "DeviceLost")
	thirdRan := false

	first := func() Result[int] { return Ok(1) }
	second := func(int) Result[string] { return Err[string](x) }
	third := func(s string) Result[float64] {
		thirdRan = true
		return Ok(float64(len(s)))
	}

	r := AndThen(AndThen(first(), second), third)
	if r.OK() {
		t.Fatal("chain should fail")
	}
	if r.Kind() != x {
		t.Errorf("chain kind = %v, want %v", r.Kind(), x)
	}
	if thirdRan {
		t.Error("third step observed a value after failure")
	}
}

// The same chain written with the explicit early-return idiom.
func TestPropagationEarlyReturn(t *testing.T) {
	var trace []string

	step := func(name string, fail bool) Result[int] {
		trace = append(trace, name)
		if fail {
			return Err[int](SystemError)
		}
		return Ok(len(trace))
	}

	run := func() Result[Void] {
		a := step("a", false)
		if !a.OK() {
			return ErrFrom[Void](a)
		}
		b := step("b", true)
		if !b.OK() {
			return ErrFrom[Void](b)
		}
		step("c", false)
		return Result[Void]{}
	}

	r := run()
	if r.Kind() != SystemError {
		t.Errorf("run() kind = %v", r.Kind())
	}
	if len(trace) != 2 || trace[1] != "b" {
		t.Errorf("trace = %v, want [a b]", trace)
	}
}

func TestTry(t *testing.T) {
	var ran []int
	step := func(i int, k *Kind) func() Result[Void] {
		return func() Result[Void] {
			ran = append(ran, i)
			if k != nil {
				return Err[Void](k)
			}
			return Result[Void]{}
		}
	}

	r := Try(step(1, nil), step(2, BackendError), step(3, nil))
	if r.Kind() != BackendError {
		t.Errorf("Try kind = %v", r.Kind())
	}
	if len(ran) != 2 {
		t.Errorf("ran = %v, want [1 2]", ran)
	}

	ran = nil
	if r := Try(step(1, nil), step(2, nil)); !r.OK() {
		t.Error("Try of successful steps should succeed")
	}
}

func TestQuickMapPreservesShape(t *testing.T) {
	property := func(v int, fail bool) bool {
		var r Result[int]
		if fail {
			r = Err[int](SystemError)
		} else {
			r = Ok(v)
		}
		m := Map(r, strconv.Itoa)
		if fail {
			return !m.OK() && m.Kind() == SystemError
		}
		return m.OK() && m.Value() == strconv.Itoa(v)
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatalf("Map shape property failed: %v", err)
	}
}
