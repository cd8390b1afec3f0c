package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// newLogger returns the console logger used for diagnostics. The report
// itself is written to stdout, never through the logger.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
