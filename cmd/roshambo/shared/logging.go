package shared

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// SetupLogger configures zerolog with pretty console output
func SetupLogger(debug bool) zerolog.Logger {
	return newConsoleLogger(os.Stderr, levelFor(debug))
}

// SetupStructuredLogger configures zerolog for structured (JSON) output
func SetupStructuredLogger(debug bool) zerolog.Logger {
	return newJSONLogger(os.Stderr, levelFor(debug))
}

// LogOptions selects where and how the CLI logs
type LogOptions struct {
	Level string // debug, info, warn or error
	JSON  bool
	File  string // empty logs to stderr
	Quiet bool   // discard everything unless File is set
}

// NewLogger builds a logger from opts. The returned close function must be
// called once logging is done.
func NewLogger(opts LogOptions) (zerolog.Logger, func() error, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	closer := func() error { return nil }
	switch {
	case opts.File != "":
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = f.Close
	case opts.Quiet:
		return zerolog.Nop(), closer, nil
	}

	if opts.JSON {
		return newJSONLogger(out, level), closer, nil
	}
	return newConsoleLogger(out, level), closer, nil
}

func levelFor(debug bool) zerolog.Level {
	if debug {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

func newConsoleLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func newJSONLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}
