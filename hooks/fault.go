package hooks

import (
	"go.uber.org/zap"

	"github.com/wippyai/ecs-abi/errors"
)

// Fault is a callback failure contained at the hook boundary.
// Value holds the recovered panic value, Err the returned or internal error.
type Fault struct {
	Value     any
	Err       error
	Component string
	Stack     []byte
	Kind      Kind
}

// AsError converts the fault into a structured error.
func (f Fault) AsError() *errors.Error {
	return errors.Fault(f.Component, f.Kind.String(), f.Value, f.Err)
}

// FaultSink receives contained faults. Implementations must be safe for
// concurrent use: hooks run on engine worker threads.
type FaultSink interface {
	HandleFault(Fault)
}

// FaultSinkFunc adapts a function to FaultSink.
type FaultSinkFunc func(Fault)

// HandleFault calls fn(f).
func (fn FaultSinkFunc) HandleFault(f Fault) { fn(f) }

// LogSink reports faults to a zap logger at error level.
type LogSink struct {
	// Logger defaults to the package Logger when nil.
	Logger *zap.Logger
}

// HandleFault logs f at error level.
func (s LogSink) HandleFault(f Fault) {
	l := s.Logger
	if l == nil {
		l = Logger()
	}
	fields := []zap.Field{
		zap.String("component", f.Component),
		zap.Stringer("event", f.Kind),
	}
	if f.Value != nil {
		fields = append(fields, zap.Any("panic", f.Value))
	}
	if f.Err != nil {
		fields = append(fields, zap.Error(f.Err))
	}
	if len(f.Stack) > 0 {
		fields = append(fields, zap.ByteString("stack", f.Stack))
	}
	l.Error("hook fault", fields...)
}
