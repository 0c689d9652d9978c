package memory

import (
	"unsafe"

	"go.uber.org/zap"
)

// LoggedAllocator forwards to another allocator and logs every request.
// Successful requests are logged at debug level, failures at warn level.
type LoggedAllocator struct {
	next Allocator
	log  *zap.Logger
}

// Logged wraps next. A nil log uses the package Logger.
func Logged(next Allocator, log *zap.Logger) *LoggedAllocator {
	if log == nil {
		log = Logger()
	}
	return &LoggedAllocator{next: next, log: log.Named("allocator")}
}

// Allocate implements Allocator.
func (a *LoggedAllocator) Allocate(l Layout) (unsafe.Pointer, error) {
	p, err := a.next.Allocate(l)
	if err != nil {
		a.log.Warn("allocate failed", append(layoutFields(l), zap.Error(err))...)
		return nil, err
	}
	if ce := a.log.Check(zap.DebugLevel, "allocate"); ce != nil {
		ce.Write(append(layoutFields(l), zap.Uintptr("addr", uintptr(p)))...)
	}
	return p, nil
}

// Deallocate implements Allocator.
func (a *LoggedAllocator) Deallocate(p unsafe.Pointer, l Layout) {
	if ce := a.log.Check(zap.DebugLevel, "deallocate"); ce != nil {
		ce.Write(append(layoutFields(l), zap.Uintptr("addr", uintptr(p)))...)
	}
	a.next.Deallocate(p, l)
}

func layoutFields(l Layout) []zap.Field {
	size, _ := l.Size()
	return []zap.Field{
		zap.Stringer("type", l.Type),
		zap.Int("count", l.Count),
		zap.Uintptr("align", l.Align),
		zap.Uintptr("size", size),
	}
}
