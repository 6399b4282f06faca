package guest

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/0-don/monero-ts/wireformat"
	"github.com/rs/zerolog"
)

// toRecord converts one zerolog JSON event into the record log_message
// expects. Fields other than level, message and time become attributes.
func toRecord(event []byte) (wireformat.GuestLogWire, error) {
	var fields map[string]any
	if err := json.Unmarshal(event, &fields); err != nil {
		return wireformat.GuestLogWire{}, fmt.Errorf("decode log event: %w", err)
	}

	rec := wireformat.GuestLogWire{Level: zerolog.InfoLevel.String()}
	if lvl, ok := fields[zerolog.LevelFieldName].(string); ok {
		rec.Level = lvl
	}
	if msg, ok := fields[zerolog.MessageFieldName].(string); ok {
		rec.Message = msg
	}
	if ts, ok := fields[zerolog.TimestampFieldName].(string); ok {
		if parsed, err := time.Parse(zerolog.TimeFieldFormat, ts); err == nil {
			rec.Timestamp = &parsed
		}
	}

	delete(fields, zerolog.LevelFieldName)
	delete(fields, zerolog.MessageFieldName)
	delete(fields, zerolog.TimestampFieldName)
	if len(fields) > 0 {
		rec.Attrs = fields
	}
	return rec, nil
}
