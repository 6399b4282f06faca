// Package log provides structured zerolog logging for the bridge and its hosts.
package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global logger instance.
var Logger zerolog.Logger

// Component loggers.
var (
	Bridge zerolog.Logger
	Wallet zerolog.Logger
	Utils  zerolog.Logger
	Wasm   zerolog.Logger
	Script zerolog.Logger
	HTTP   zerolog.Logger
)

// Output formats accepted by Init.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

func init() {
	Logger = NewConsoleLogger(os.Stderr, "info")
	initComponentLoggers()
}

// Init replaces the global logger. Unknown levels fall back to info and
// unknown formats to console.
func Init(level, format string) {
	InitWriter(os.Stderr, level, format)
}

// InitWriter is Init with an explicit writer.
func InitWriter(w io.Writer, level, format string) {
	if strings.EqualFold(format, FormatJSON) {
		Logger = NewJSONLogger(w, level)
	} else {
		Logger = NewConsoleLogger(w, level)
	}
	initComponentLoggers()
}

// NewConsoleLogger creates a human-readable console logger.
func NewConsoleLogger(w io.Writer, level string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
	}
	return zerolog.New(output).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// NewJSONLogger creates a structured JSON logger.
func NewJSONLogger(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel converts a level name to a zerolog.Level.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func initComponentLoggers() {
	Bridge = WithComponent("bridge")
	Wallet = WithComponent("wallet")
	Utils = WithComponent("utils")
	Wasm = WithComponent("wasm")
	Script = WithComponent("script")
	HTTP = WithComponent("http")
}

// WithComponent returns a logger with a component field.
func WithComponent(name string) zerolog.Logger {
	return Logger.With().Str("component", name).Logger()
}

// Benchmark returns a func that logs the time elapsed since the call to l at
// debug level. Use it as defer log.Benchmark(l, "op")().
func Benchmark(l zerolog.Logger, name string) func() {
	start := time.Now()
	return func() {
		l.Debug().
			Str("operation", name).
			Dur("duration", time.Since(start)).
			Msg("benchmark")
	}
}
