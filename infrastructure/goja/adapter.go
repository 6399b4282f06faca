// Package goja installs the export table into a goja JavaScript runtime, so
// scripts call create_wallet_random() and friends as plain functions.
package goja

import (
	"context"
	"fmt"
	"math"

	"github.com/0-don/monero-ts/domain/entities"
	"github.com/0-don/monero-ts/hostfuncs"
	"github.com/0-don/monero-ts/log"
	"github.com/dop251/goja"
	"github.com/rs/zerolog"
)

// Config holds configuration for the goja adapter.
type Config struct {
	Logger zerolog.Logger

	// Namespace, when set, installs the exports as properties of one global
	// object instead of as globals.
	Namespace string
}

// Option configures the adapter.
type Option func(*Config)

// WithNamespace installs exports under a global object named ns.
func WithNamespace(ns string) Option {
	return func(c *Config) {
		c.Namespace = ns
	}
}

// WithLogger replaces the script component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

func defaultConfig() Config {
	return Config{Logger: log.Script}
}

// Register binds every export of registry into vm. Calls made from script
// run with ctx.
//
// Argument count or kind mismatches throw a TypeError. An error returned by
// the export is thrown as a GoError whose message is the error's message.
func Register(ctx context.Context, vm *goja.Runtime, registry *hostfuncs.Registry, opts ...Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	set := vm.Set
	if cfg.Namespace != "" {
		ns := vm.NewObject()
		if err := vm.Set(cfg.Namespace, ns); err != nil {
			return fmt.Errorf("failed to set namespace %q: %w", cfg.Namespace, err)
		}
		set = ns.Set
	}

	ctx = hostfuncs.WithCaller(ctx, "js")
	for _, exp := range registry.Exports() {
		if err := set(exp.Name, bindExport(ctx, vm, exp, cfg.Logger)); err != nil {
			return fmt.Errorf("failed to bind %s: %w", exp.Name, err)
		}
	}
	return nil
}

func bindExport(ctx context.Context, vm *goja.Runtime, exp hostfuncs.Export, logger zerolog.Logger) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) != exp.Signature.Arity() {
			panic(vm.NewTypeError("%s: want %d arguments, got %d", exp.Name, exp.Signature.Arity(), len(call.Arguments)))
		}

		args := make([]hostfuncs.Value, len(call.Arguments))
		for i, k := range exp.Signature.Params {
			v, err := fromJS(k, call.Arguments[i])
			if err != nil {
				panic(vm.NewTypeError("%s: argument %d: %v", exp.Name, i, err))
			}
			args[i] = v
		}

		res, err := exp.Call(ctx, args...)
		if err != nil {
			logger.Debug().Err(err).Str("export", exp.Name).Msg("export threw")
			panic(vm.NewGoError(err))
		}
		return toJS(vm, res)
	}
}

// fromJS converts a script value to a boundary value of kind k.
func fromJS(k hostfuncs.Kind, v goja.Value) (hostfuncs.Value, error) {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return hostfuncs.Value{}, fmt.Errorf("want %s, got %v", k, v)
	}

	switch k {
	case hostfuncs.KindBool:
		if b, ok := v.Export().(bool); ok {
			return hostfuncs.BoolValue(b), nil
		}
	case hostfuncs.KindI32:
		if n, ok := integer(v, math.MinInt32, math.MaxInt32); ok {
			return hostfuncs.I32Value(int32(n)), nil
		}
	case hostfuncs.KindI64:
		if n, ok := integer(v, math.MinInt64, math.MaxInt64); ok {
			return hostfuncs.I64Value(n), nil
		}
	case hostfuncs.KindHandle:
		if n, ok := integer(v, 0, math.MaxUint32); ok {
			return hostfuncs.HandleValue(entities.Handle(n)), nil //nolint:gosec // G115: range checked above
		}
	case hostfuncs.KindF64:
		switch n := v.Export().(type) {
		case int64:
			return hostfuncs.F64Value(float64(n)), nil
		case float64:
			return hostfuncs.F64Value(n), nil
		}
	case hostfuncs.KindString:
		if s, ok := v.Export().(string); ok {
			return hostfuncs.StringValue(s), nil
		}
	case hostfuncs.KindBytes:
		switch b := v.Export().(type) {
		case goja.ArrayBuffer:
			return hostfuncs.BytesValue(append([]byte(nil), b.Bytes()...)), nil
		case []byte:
			return hostfuncs.BytesValue(append([]byte(nil), b...)), nil
		}
	}
	return hostfuncs.Value{}, fmt.Errorf("want %s, got %s", k, v.ExportType())
}

// integer accepts JS numbers that are whole and within [lo, hi].
func integer(v goja.Value, lo, hi int64) (int64, bool) {
	switch n := v.Export().(type) {
	case int64:
		return n, n >= lo && n <= hi
	case float64:
		if n != math.Trunc(n) || n < float64(lo) || n > float64(hi) {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}

// toJS converts a boundary value to a script value.
func toJS(vm *goja.Runtime, v hostfuncs.Value) goja.Value {
	switch v.Kind() {
	case hostfuncs.KindBool:
		return vm.ToValue(v.AsBool())
	case hostfuncs.KindI32:
		return vm.ToValue(v.AsI32())
	case hostfuncs.KindI64:
		return vm.ToValue(v.AsI64())
	case hostfuncs.KindF64:
		return vm.ToValue(v.AsF64())
	case hostfuncs.KindString:
		return vm.ToValue(v.AsString())
	case hostfuncs.KindBytes:
		return vm.ToValue(vm.NewArrayBuffer(v.AsBytes()))
	case hostfuncs.KindHandle:
		return vm.ToValue(uint32(v.AsHandle()))
	default:
		return goja.Undefined()
	}
}
