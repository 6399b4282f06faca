package hostfuncs

import (
	"context"
)

// HostContext is the context an export and its middleware run with.
// It carries the name of the export being invoked and the caller label set
// by the host adapter.
type HostContext interface {
	context.Context

	// FunctionName returns the name of the export being invoked.
	FunctionName() string

	// Caller returns the label set with WithCaller, or "".
	Caller() string
}

type callerKey struct{}

// WithCaller labels ctx with who is calling into the export table: a guest
// module name, "js" or "http".
func WithCaller(ctx context.Context, caller string) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

type hostContext struct {
	context.Context
	funcName string
}

// NewHostContext creates a new HostContext wrapping the given context.
func NewHostContext(ctx context.Context, funcName string) HostContext {
	return &hostContext{Context: ctx, funcName: funcName}
}

func (c *hostContext) FunctionName() string {
	return c.funcName
}

func (c *hostContext) Caller() string {
	caller, _ := c.Value(callerKey{}).(string)
	return caller
}

// HostContextFrom returns ctx itself when it is already a HostContext for
// funcName, and a fresh HostContext wrapping ctx otherwise. An export invoked
// from inside another export gets its own HostContext.
func HostContextFrom(ctx context.Context, funcName string) HostContext {
	if hc, ok := ctx.(HostContext); ok && hc.FunctionName() == funcName {
		return hc
	}
	return NewHostContext(ctx, funcName)
}
