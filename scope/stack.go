package scope

import "errors"

// Stack is an ordered set of cleanup actions, run last-pushed first.
// The zero Stack is empty and ready to use. A Stack is not safe for
// concurrent use.
type Stack struct {
	actions []*action
}

type action struct {
	fn func() error
}

// Handle refers to one action pushed onto a Stack.
type Handle struct {
	a *action
}

// Disarm removes the action from the stack's pending work.
func (h Handle) Disarm() {
	if h.a != nil {
		h.a.fn = nil
	}
}

// Armed reports whether the action will still run on Close.
func (h Handle) Armed() bool {
	return h.a != nil && h.a.fn != nil
}

// Push adds fn to the stack.
func (s *Stack) Push(fn func()) Handle {
	if fn == nil {
		panic("scope: Push with nil action")
	}
	return s.PushErr(func() error {
		fn()
		return nil
	})
}

// PushErr adds a fallible action. Errors are collected by Close.
func (s *Stack) PushErr(fn func() error) Handle {
	if fn == nil {
		panic("scope: PushErr with nil action")
	}
	a := &action{fn: fn}
	s.actions = append(s.actions, a)
	return Handle{a: a}
}

// Len returns the number of armed actions.
func (s *Stack) Len() int {
	n := 0
	for _, a := range s.actions {
		if a.fn != nil {
			n++
		}
	}
	return n
}

// Commit disarms every pending action. Use it once a multi-step
// acquisition has fully succeeded and the resources belong to the caller.
func (s *Stack) Commit() {
	for _, a := range s.actions {
		a.fn = nil
	}
	s.actions = nil
}

// Close runs every armed action in reverse order of Push, each exactly
// once, and empties the stack. Errors returned by actions are joined.
func (s *Stack) Close() error {
	var errs []error
	for len(s.actions) > 0 {
		last := len(s.actions) - 1
		a := s.actions[last]
		s.actions[last] = nil
		s.actions = s.actions[:last]

		fn := a.fn
		a.fn = nil
		if fn == nil {
			continue
		}
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
