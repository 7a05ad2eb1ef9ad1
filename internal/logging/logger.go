// Package logging builds the hub's single *zerolog.Logger, handed down
// through constructors the way the teacher threads *Settings/context
// through NewServer/NewRootView.
package logging

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/cuboktahedron/tetsimu2-hub/config"
)

// New builds a logger per cfg.Log: console-writer output unless format
// is "json", at the configured level (defaulting to info on a bad or
// empty value).
func New(cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "json" {
		logger = zerolog.New(os.Stderr)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	return logger.Level(level).With().Timestamp().Logger()
}
