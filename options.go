package monero

import (
	"github.com/0-don/monero-ts/hostfuncs"
	"github.com/rs/zerolog"
)

// Option configures a Module.
type Option func(*Module)

// WithMiddleware adds middleware around every export, after the built-in
// panic recovery and logging.
func WithMiddleware(mw ...hostfuncs.Middleware) Option {
	return func(m *Module) {
		m.middleware = append(m.middleware, mw...)
	}
}

// WithExtraExports appends registry options after the export table. Names
// must not collide with the table.
func WithExtraExports(opts ...hostfuncs.RegistryOption) Option {
	return func(m *Module) {
		m.extra = append(m.extra, opts...)
	}
}

// WithLogger replaces the bridge logger.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Module) {
		m.logger = l
	}
}
