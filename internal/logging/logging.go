// Package logging configures the process-wide zerolog logger.
package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init builds the root logger from the configured level and format
// ("json" for production, "console" for development) and installs it
// as the zerolog global.
func Init(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if strings.EqualFold(format, "console") {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	logger = logger.Level(lvl).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}
