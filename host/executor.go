package host

import (
	"context"
	"fmt"

	"github.com/0-don/monero-ts/hostfuncs"
	"github.com/0-don/monero-ts/log"
	adapter "github.com/0-don/monero-ts/infrastructure/wazero"
	"github.com/rs/zerolog"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

// Executor owns a wazero runtime with WASI and the export table installed.
type Executor struct {
	runtime        wazero.Runtime
	runtimeConfig  wazero.RuntimeConfig
	registry       *hostfuncs.Registry
	logger         zerolog.Logger
	moduleName     string
	maxRequestSize uint32
}

// NewExecutor creates an executor exposing registry to guests.
func NewExecutor(ctx context.Context, registry *hostfuncs.Registry, opts ...Option) (*Executor, error) {
	if registry == nil {
		return nil, fmt.Errorf("executor requires an export registry")
	}

	e := &Executor{
		registry:       registry,
		logger:         log.Wasm,
		moduleName:     adapter.DefaultModuleName,
		maxRequestSize: hostfuncs.DefaultMaxRequestSize,
		runtimeConfig:  wazero.NewRuntimeConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}

	rt := wazero.NewRuntimeWithConfig(ctx, e.runtimeConfig)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)
	e.runtime = rt

	err := adapter.RegisterWithRuntime(ctx, rt, registry,
		adapter.WithModuleName(e.moduleName),
		adapter.WithMaxRequestSize(e.maxRequestSize),
		adapter.WithLogger(e.logger),
		adapter.WithGuestLogging(),
	)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("failed to register host functions: %w", err)
	}

	return e, nil
}

// Close releases resources held by the executor.
func (e *Executor) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// LoadGuest compiles and instantiates a guest module under name.
func (e *Executor) LoadGuest(ctx context.Context, name string, wasmBytes []byte) (*Guest, error) {
	compiled, err := e.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to compile module: %w", err)
	}

	cfg := wazero.NewModuleConfig().
		WithName(name).
		WithStartFunctions() // reactor guests; _initialize is called below
	mod, err := e.runtime.InstantiateModule(ctx, compiled, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate module: %w", err)
	}

	if init := mod.ExportedFunction("_initialize"); init != nil {
		if _, err := init.Call(ctx); err != nil {
			_ = mod.Close(ctx)
			return nil, fmt.Errorf("failed to call _initialize: %w", err)
		}
	}

	e.logger.Debug().Str("guest", name).Msg("guest loaded")
	return &Guest{module: mod, maxSize: e.maxRequestSize}, nil
}
