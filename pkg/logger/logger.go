// Package logger builds the process-wide zerolog logger for the identity
// service binaries. Every event carries a "service" field so the api server
// and the createadmin command are distinguishable in aggregated output.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls how the logger is built.
type Options struct {
	// Service is stamped on every event. Defaults to "identity".
	Service string
	// Level is the minimum level: trace, debug, info, warn, error.
	// Unrecognised or empty values mean info.
	Level string
	// Pretty switches to human-readable console output for local
	// development. Production emits JSON.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	mu       sync.Mutex
	instance zerolog.Logger
	ready    bool
)

// Init builds the logger on first call and returns it; later calls return
// the logger built first, regardless of their options.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if ready {
		return instance
	}

	zerolog.TimeFieldFormat = time.RFC3339

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	service := opts.Service
	if service == "" {
		service = "identity"
	}

	level := parseLevel(opts.Level)
	zerolog.SetGlobalLevel(level)

	instance = zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", service).
		Logger()
	ready = true
	return instance
}

// Get returns the process logger, building one with defaults if Init has not
// run yet.
func Get() zerolog.Logger {
	mu.Lock()
	built := ready
	mu.Unlock()
	if !built {
		return Init(Options{})
	}
	mu.Lock()
	defer mu.Unlock()
	return instance
}

// Reset discards the built logger so the next Init call starts over. For
// tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	instance = zerolog.Logger{}
	ready = false
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
