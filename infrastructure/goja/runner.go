package goja

import (
	"context"
	"fmt"
	"time"

	"github.com/0-don/monero-ts/hostfuncs"
	"github.com/dop251/goja"
)

// MaxScriptSize bounds scripts accepted by Runner.
const MaxScriptSize = 1 << 20

// DefaultTimeout applies when ctx carries no deadline.
const DefaultTimeout = 30 * time.Second

// Runner executes scripts against the export table. Each Run gets a fresh
// runtime.
type Runner struct {
	registry *hostfuncs.Registry
	opts     []Option
}

// NewRunner creates a Runner for registry.
func NewRunner(registry *hostfuncs.Registry, opts ...Option) *Runner {
	return &Runner{registry: registry, opts: opts}
}

// Run evaluates script and, when entry is non-empty, calls the global
// function entry with no arguments. It returns the exported result of the
// last evaluation.
func (r *Runner) Run(ctx context.Context, script, entry string) (any, error) {
	if len(script) > MaxScriptSize {
		return nil, fmt.Errorf("script exceeds maximum size of %d bytes", MaxScriptSize)
	}

	cfg := defaultConfig()
	for _, opt := range r.opts {
		opt(&cfg)
	}

	vm := goja.New()

	timeout := DefaultTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	done := make(chan struct{})
	go func() {
		select {
		case <-time.After(timeout):
			vm.Interrupt("execution timeout")
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()
	defer close(done)

	if err := Register(ctx, vm, r.registry, r.opts...); err != nil {
		return nil, err
	}

	console := vm.NewObject()
	_ = console.Set("log", func(call goja.FunctionCall) goja.Value {
		args := make([]any, len(call.Arguments))
		for i, arg := range call.Arguments {
			args[i] = arg.Export()
		}
		cfg.Logger.Info().Msg(fmt.Sprint(args...))
		return goja.Undefined()
	})
	if err := vm.Set("console", console); err != nil {
		return nil, fmt.Errorf("failed to set console: %w", err)
	}

	result, err := vm.RunString(script)
	if err != nil {
		return nil, fmt.Errorf("script error: %w", err)
	}

	if entry != "" {
		fn, ok := goja.AssertFunction(vm.Get(entry))
		if !ok {
			return nil, fmt.Errorf("entry point '%s' is not a function", entry)
		}
		result, err = fn(goja.Undefined())
		if err != nil {
			return nil, fmt.Errorf("execution error: %w", err)
		}
	}

	if result == nil || goja.IsUndefined(result) || goja.IsNull(result) {
		return nil, nil
	}
	return result.Export(), nil
}
