// Package logging sets up the CLI's zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds a zerolog.Logger writing human-readable, colorized output
// to w (os.Stderr in normal CLI use) at the given level. level accepts
// zerolog's usual names ("debug", "info", "warn", "error", "disabled");
// an unrecognized name falls back to "info".
func New(w io.Writer, level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return zerolog.New(console).Level(parsed).With().Timestamp().Logger()
}

// Nop returns a logger that discards everything, for library callers
// that never set SolveOptions.Logger.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// Default is a stderr logger at the info level.
func Default() zerolog.Logger {
	return New(os.Stderr, "info")
}
