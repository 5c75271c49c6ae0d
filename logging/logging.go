// Package logging configures the zerolog diagnostics logger.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Level maps the -v counter to a zerolog level.
func Level(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// Setup points the global logger at a console writer on w and returns it.
func Setup(verbosity int, w io.Writer, noColor bool) zerolog.Logger {
	zerolog.SetGlobalLevel(Level(verbosity))

	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}

	logger := zerolog.New(console).With().Timestamp().Logger()

	if verbosity >= 2 {
		logger = logger.With().Caller().Logger()
	}

	log.Logger = logger

	logger.Debug().Int("verbosity", verbosity).Msg("Logger initialized")

	return logger
}

// Component returns the global logger tagged with a component name.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
