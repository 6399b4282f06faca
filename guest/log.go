//go:build wasip1

package guest

import (
	"encoding/json"

	"github.com/0-don/monero-ts/internal/abi"
	"github.com/rs/zerolog"
)

// hostWriter forwards each zerolog event to the host's log_message.
type hostWriter struct{}

func (hostWriter) Write(p []byte) (int, error) {
	rec, err := toRecord(p)
	if err != nil {
		return 0, err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return 0, err
	}
	packed := abi.PackString(string(data))
	defer abi.Release(packed)
	logMessage(packed)
	return len(p), nil
}

// Logger writes through the host's structured logger.
var Logger = zerolog.New(hostWriter{}).With().Timestamp().Logger()
