package result

// Kind identifies a category of recoverable failure.
//
// Every Kind is a process-wide singleton: two errors are of the same kind
// exactly when they are the same *Kind. A Kind carries no payload beyond its
// identity, a display name and its parent in the static hierarchy.
//
// *Kind implements error, so a Kind can be returned directly wherever Go
// expects an error and compared with errors.Is.
type Kind struct {
	name   string
	parent *Kind
}

// Built-in kinds. SimpleError is the root of the hierarchy.
var (
	SimpleError     = &Kind{name: "SimpleError"}
	SystemError     = Declare(SimpleError, "SystemError")
	BackendError    = Declare(SimpleError, "BackendError")
	PlatformError   = Declare(SimpleError, "PlatformError")
	AllocationError = Declare(SystemError, "AllocationError")
)

// builtinKinds is the ordered set of kinds the package ships with.
var builtinKinds = []*Kind{
	SimpleError,
	SystemError,
	BackendError,
	PlatformError,
	AllocationError,
}

// Declare creates a new kind below parent. It is meant to be called once per
// kind from a package-level var block; the returned pointer is the kind's
// identity.
func Declare(parent *Kind, name string) *Kind {
	if parent == nil {
		panic("result: Declare with nil parent")
	}
	if name == "" {
		panic("result: Declare with empty name")
	}
	return &Kind{name: name, parent: parent}
}

// Kinds returns the built-in kinds, root first.
func Kinds() []*Kind {
	out := make([]*Kind, len(builtinKinds))
	copy(out, builtinKinds)
	return out
}

// Name returns the human-readable name of the kind.
func (k *Kind) Name() string { return k.name }

// Error implements error.
func (k *Kind) Error() string { return k.name }

// Parent returns the kind k was declared under, or nil for the root.
func (k *Kind) Parent() *Kind { return k.parent }

// Within reports whether k is ancestor or one of its descendants.
func (k *Kind) Within(ancestor *Kind) bool {
	for c := k; c != nil; c = c.parent {
		if c == ancestor {
			return true
		}
	}
	return false
}
