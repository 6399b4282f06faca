package host

import (
	"github.com/rs/zerolog"
	"github.com/tetratelabs/wazero"
)

// Option defines a functional option for configuring the Executor.
type Option func(*Executor)

// WithModuleName sets the host module guests import from.
func WithModuleName(name string) Option {
	return func(e *Executor) {
		e.moduleName = name
	}
}

// WithMaxRequestSize bounds string and bytes arguments read from a guest.
func WithMaxRequestSize(n uint32) Option {
	return func(e *Executor) {
		e.maxRequestSize = n
	}
}

// WithLogger replaces the wasm component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Executor) {
		e.logger = l
	}
}

// WithRuntimeConfig replaces the wazero runtime configuration.
func WithRuntimeConfig(cfg wazero.RuntimeConfig) Option {
	return func(e *Executor) {
		e.runtimeConfig = cfg
	}
}
