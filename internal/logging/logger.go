// Package logging configures the diagnostic logger. It writes to a rotating
// file because stdout and stderr belong to the terminal UI.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a logger writing to the given file path with rotation.
func New(path string, verbose bool) zerolog.Logger {
	return NewWithWriter(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 2,
	}, verbose)
}

func NewWithWriter(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Measure returns a stop function that logs the elapsed time when called.
func Measure(log zerolog.Logger, label string) func() {
	start := time.Now()
	return func() {
		log.Debug().Dur("elapsed", time.Since(start)).Msg(label)
	}
}
