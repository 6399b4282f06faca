package wazero

import (
	"context"
	"fmt"

	"github.com/0-don/monero-ts/domain/errors"
	"github.com/0-don/monero-ts/hostfuncs"
	"github.com/0-don/monero-ts/log"
	"github.com/rs/zerolog"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// DefaultModuleName is the import module name guests link against.
const DefaultModuleName = "monero"

// AdapterConfig holds configuration for the wazero adapter.
type AdapterConfig struct {
	// Logger receives invocation failures and guest log records.
	Logger zerolog.Logger

	// ModuleName is the host module name (default: "monero").
	ModuleName string

	// CustomHandlers allows adding wazero-specific functions that are not
	// registry exports (e.g., log_message).
	CustomHandlers []CustomHandler

	// MaxRequestSize limits string and bytes arguments read from guest memory.
	// Default is 1MB.
	MaxRequestSize uint32

	// GuestLogging installs log_message.
	GuestLogging bool
}

// CustomHandler represents a raw wazero function installed next to the
// registry exports.
type CustomHandler struct {
	// Handler is the wazero GoModuleFunc implementation.
	Handler api.GoModuleFunc

	// Name is the exported function name.
	Name string

	// ParamTypes are the WASM parameter types.
	ParamTypes []api.ValueType

	// ResultTypes are the WASM result types.
	ResultTypes []api.ValueType
}

// AdapterOption configures the adapter.
type AdapterOption func(*AdapterConfig)

// WithModuleName sets the host module name (default: "monero").
func WithModuleName(name string) AdapterOption {
	return func(c *AdapterConfig) {
		c.ModuleName = name
	}
}

// WithMaxRequestSize sets the maximum argument size read from guest memory.
func WithMaxRequestSize(size uint32) AdapterOption {
	return func(c *AdapterConfig) {
		c.MaxRequestSize = size
	}
}

// WithCustomHandler adds a custom wazero handler.
func WithCustomHandler(h CustomHandler) AdapterOption {
	return func(c *AdapterConfig) {
		c.CustomHandlers = append(c.CustomHandlers, h)
	}
}

// WithLogger replaces the wasm component logger.
func WithLogger(l zerolog.Logger) AdapterOption {
	return func(c *AdapterConfig) {
		c.Logger = l
	}
}

// defaultAdapterConfig returns the default adapter configuration.
func defaultAdapterConfig() AdapterConfig {
	return AdapterConfig{
		Logger:         log.Wasm,
		ModuleName:     DefaultModuleName,
		MaxRequestSize: hostfuncs.DefaultMaxRequestSize,
	}
}

// RegisterWithRuntime installs every export of registry as a function of one
// host module (default: "monero") and instantiates it.
//
// Each export keeps its own signature:
//   - bool, i32 and handle travel as i32; i64 as i64; f64 as f64
//   - string and bytes travel as a packed i64 (ptr<<32 | len) into guest memory
//   - string and bytes results are written into memory obtained from the
//     guest's "allocate" export
//   - void results have no WASM result
//
// A failing export traps the calling guest. The trap carries the original
// error, so errors.Is on the error returned by the guest call still matches.
//
// Example:
//
//	reg, _ := mod.Registry()
//	err := wazero.RegisterWithRuntime(ctx, runtime, reg,
//	    wazero.WithModuleName("monero"),
//	)
func RegisterWithRuntime(ctx context.Context, runtime wazero.Runtime, registry *hostfuncs.Registry, opts ...AdapterOption) error {
	cfg := defaultAdapterConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	builder := runtime.NewHostModuleBuilder(cfg.ModuleName)

	for _, exp := range registry.Exports() {
		exp := exp
		params := make([]api.ValueType, len(exp.Signature.Params))
		for i, k := range exp.Signature.Params {
			params[i] = valueType(k)
		}
		var results []api.ValueType
		if exp.Signature.Result != hostfuncs.KindVoid {
			results = []api.ValueType{valueType(exp.Signature.Result)}
		}

		builder.NewFunctionBuilder().
			WithGoModuleFunction(api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
				handleExportCall(ctx, mod, stack, exp, &cfg)
			}), params, results).
			WithParameterNames(paramNames(exp)...).
			Export(exp.Name)
	}

	handlers := cfg.CustomHandlers
	if cfg.GuestLogging {
		handlers = append(handlers, LogMessageHandler(cfg.Logger, cfg.MaxRequestSize))
	}
	for _, ch := range handlers {
		builder.NewFunctionBuilder().
			WithGoModuleFunction(ch.Handler, ch.ParamTypes, ch.ResultTypes).
			Export(ch.Name)
	}

	_, err := builder.Instantiate(ctx)
	return err
}

// handleExportCall decodes the WASM stack, invokes the export and encodes
// the result back onto the stack. Any failure panics, which wazero turns into
// a trap for the caller.
func handleExportCall(ctx context.Context, mod api.Module, stack []uint64, exp hostfuncs.Export, cfg *AdapterConfig) {
	args := make([]hostfuncs.Value, len(exp.Signature.Params))
	for i, k := range exp.Signature.Params {
		v, err := decodeParam(mod, k, stack[i], cfg.MaxRequestSize)
		if err != nil {
			fail(ctx, cfg, mod, exp.Name, &errors.ArgumentError{Export: exp.Name, Index: i, Reason: err.Error()})
		}
		args[i] = v
	}

	res, err := exp.Call(hostfuncs.WithCaller(ctx, GetGuestName(ctx, mod)), args...)
	if err != nil {
		fail(ctx, cfg, mod, exp.Name, err)
	}

	if exp.Signature.Result == hostfuncs.KindVoid {
		return
	}
	word, err := encodeResult(ctx, mod, res)
	if err != nil {
		fail(ctx, cfg, mod, exp.Name, err)
	}
	stack[0] = word
}

func fail(ctx context.Context, cfg *AdapterConfig, mod api.Module, name string, err error) {
	cfg.Logger.Error().
		Err(err).
		Str("export", name).
		Str("guest", GetGuestName(ctx, mod)).
		Msg("wazero: export call failed")
	panic(err)
}

func paramNames(exp hostfuncs.Export) []string {
	names := make([]string, len(exp.Signature.Params))
	for i, k := range exp.Signature.Params {
		names[i] = fmt.Sprintf("%s%d", k, i)
	}
	return names
}

// writeResponse allocates memory in the guest and writes data into it.
// Returns packed ptr+len.
func writeResponse(ctx context.Context, mod api.Module, data []byte) (uint64, error) {
	allocateFn := mod.ExportedFunction("allocate")
	if allocateFn == nil {
		return 0, fmt.Errorf("guest module %q missing 'allocate' export", mod.Name())
	}
	mem := mod.Memory()
	if mem == nil {
		return 0, fmt.Errorf("guest module %q has no memory", mod.Name())
	}

	results, err := allocateFn.Call(ctx, uint64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("failed to call guest allocate: %w", err)
	}
	ptr := uint32(results[0]) //nolint:gosec // G115: WASM32 pointers are always 32-bit

	if !mem.Write(ptr, data) {
		return 0, fmt.Errorf("failed to write %d bytes to guest memory at %d", len(data), ptr)
	}

	return packPtrLen(ptr, uint32(len(data))), nil //nolint:gosec // G115: Data length is bounded by guest memory
}

// packPtrLen packs a pointer and length into a single i64.
// Upper 32 bits: pointer, lower 32 bits: length.
func packPtrLen(ptr, length uint32) uint64 {
	return (uint64(ptr) << 32) | uint64(length)
}

// unpackPtrLen unpacks a pointer and length from a packed i64.
func unpackPtrLen(packed uint64) (ptr, length uint32) {
	ptr = uint32(packed >> 32)           //nolint:gosec // G115: Packed format stores 32-bit values
	length = uint32(packed & 0xFFFFFFFF) //nolint:gosec // G115: Packed format stores 32-bit values
	return ptr, length
}
