package hostfuncs

import (
	"context"
	"time"

	"github.com/0-don/monero-ts/domain/errors"
	"github.com/rs/zerolog"
)

// Middleware wraps a Func to add cross-cutting behavior.
// Middleware executes in FIFO order (first registered wraps first, onion model).
//
// Example usage:
//
//	tracing := func(next Func) Func {
//	    return func(ctx context.Context, args []Value) (Value, error) {
//	        span := start(ctx)
//	        defer span.End()
//	        return next(ctx, args)
//	    }
//	}
type Middleware func(next Func) Func

// RegistryOption is a functional option for configuring a Registry.
type RegistryOption func(*registryBuilder)

// PanicRecoveryMiddleware converts a panicking export into a *errors.PanicError
// so a native fault never unwinds through the host runtime.
func PanicRecoveryMiddleware() Middleware {
	return func(next Func) Func {
		return func(ctx context.Context, args []Value) (res Value, err error) {
			defer func() {
				if r := recover(); r != nil {
					res = Value{}
					err = &errors.PanicError{Value: r, Export: exportName(ctx)}
				}
			}()
			return next(ctx, args)
		}
	}
}

// LoggingMiddleware logs every export call at debug level and failures at warn.
func LoggingMiddleware(logger zerolog.Logger) Middleware {
	return func(next Func) Func {
		return func(ctx context.Context, args []Value) (Value, error) {
			name := exportName(ctx)
			l := logger
			if hc, ok := ctx.(HostContext); ok && hc.Caller() != "" {
				l = logger.With().Str("caller", hc.Caller()).Logger()
			}
			start := time.Now()
			res, err := next(ctx, args)
			if err != nil {
				l.Warn().
					Err(err).
					Str("export", name).
					Dur("duration", time.Since(start)).
					Msg("export failed")
				return res, err
			}
			l.Debug().
				Str("export", name).
				Stringer("result_kind", res.Kind()).
				Dur("duration", time.Since(start)).
				Msg("export completed")
			return res, nil
		}
	}
}
