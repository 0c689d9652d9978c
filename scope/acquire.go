package scope

import (
	"go.uber.org/zap"

	"github.com/pavanmanishd/corelib/memory"
	"github.com/pavanmanishd/corelib/result"
)

// Step is one stage of a multi-step acquisition. It registers the teardown
// of whatever it acquired on s before returning success.
type Step func(s *Stack) result.Result[result.Void]

// Acquire runs steps in order. If a step fails, the teardown registered by
// the steps before it runs in reverse order and the failure is returned;
// later steps never run. Teardown errors on that path are logged at warn
// level through memory.Logger. On success all teardown is handed back as a
// Stack the caller closes when the resources are released.
func Acquire(steps ...Step) (*Stack, result.Result[result.Void]) {
	s := &Stack{}
	for _, step := range steps {
		if r := step(s); !r.OK() {
			if err := s.Close(); err != nil {
				memory.Logger().Warn("scope: rollback failed", zap.Error(err), zap.NamedError("cause", r.Err()))
			}
			return nil, r
		}
	}
	return s, result.Result[result.Void]{}
}
