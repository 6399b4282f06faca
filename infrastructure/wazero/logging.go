package wazero

import (
	"context"
	"encoding/json"

	"github.com/0-don/monero-ts/log"
	"github.com/0-don/monero-ts/wireformat"
	"github.com/rs/zerolog"
	"github.com/tetratelabs/wazero/api"
)

// LogMessageHandler returns the log_message(i64) custom handler. The
// argument is a packed ptr+len of a wireformat.GuestLogWire JSON record,
// which is forwarded to logger.
func LogMessageHandler(logger zerolog.Logger, maxSize uint32) CustomHandler {
	return CustomHandler{
		Name: "log_message",
		Handler: func(ctx context.Context, mod api.Module, stack []uint64) {
			payload, err := readGuest(mod, stack[0], maxSize)
			if err != nil {
				logger.Warn().Err(err).Str("guest", GetGuestName(ctx, mod)).Msg("unreadable guest log")
				return
			}
			logGuestRecord(logger, GetGuestName(ctx, mod), payload)
		},
		ParamTypes:  []api.ValueType{api.ValueTypeI64},
		ResultTypes: []api.ValueType{},
	}
}

// WithGuestLogging installs LogMessageHandler with the adapter's logger.
func WithGuestLogging() AdapterOption {
	return func(c *AdapterConfig) {
		c.GuestLogging = true
	}
}

func logGuestRecord(logger zerolog.Logger, guest string, payload []byte) {
	var rec wireformat.GuestLogWire
	if err := json.Unmarshal(payload, &rec); err != nil {
		logger.Info().Str("guest", guest).Str("payload", string(payload)).Msg("guest log (raw)")
		return
	}

	ev := logger.WithLevel(log.ParseLevel(rec.Level)).Str("guest", guest)
	if rec.Timestamp != nil {
		ev = ev.Time("guest_time", *rec.Timestamp)
	}
	if len(rec.Attrs) > 0 {
		ev = ev.Fields(rec.Attrs)
	}
	ev.Msg(rec.Message)
}
