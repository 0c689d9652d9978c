// Package scope provides deferred cleanup actions that run exactly once.
//
// A Guard wraps a single action and is usually paired with defer:
//
//	g := scope.NewGuard(func() { f.Close() })
//	defer g.Run()
//
// A Stack collects the teardown of a multi-step acquisition. Each step pushes
// its teardown as soon as it succeeds; if a later step fails, closing the
// stack undoes everything in reverse order. Once every step has succeeded,
// Commit disarms the stack and ownership of the resources passes to the
// caller:
//
//	var s scope.Stack
//	defer s.Close()
//
//	win, err := openWindow()
//	if err != nil {
//		return err
//	}
//	s.Push(win.Destroy)
//
//	dev, err := openDevice(win)
//	if err != nil {
//		return err // win.Destroy runs
//	}
//	s.Push(dev.Destroy)
//
//	s.Commit() // nothing runs on return
package scope

// Guard runs an action once, unless disarmed first. The zero Guard does
// nothing.
type Guard struct {
	fn func()
}

// NewGuard returns a guard armed with fn.
func NewGuard(fn func()) *Guard {
	return &Guard{fn: fn}
}

// Run invokes the action if the guard is still armed. Subsequent calls do
// nothing.
func (g *Guard) Run() {
	fn := g.fn
	g.fn = nil
	if fn != nil {
		fn()
	}
}

// Disarm prevents the action from ever running.
func (g *Guard) Disarm() {
	g.fn = nil
}

// Armed reports whether Run would still invoke the action.
func (g *Guard) Armed() bool {
	return g.fn != nil
}
