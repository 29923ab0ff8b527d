package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the service-wide logger. Production output is JSON at info
// level tagged with the service name; development gets the console writer
// and debug level.
func New(env string) zerolog.Logger {
	level := zerolog.InfoLevel
	if env == "development" {
		level = zerolog.DebugLevel
	}

	log := zerolog.New(os.Stderr).
		Level(level).
		With().
		Timestamp().
		Str("service", "fleet-service").
		Logger()
	if env == "development" {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return log
}
