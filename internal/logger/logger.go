package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog instance. Console output is used when
// PRETTY_LOGS is set, JSON otherwise.
func Init() {
	zerolog.TimeFieldFormat = time.RFC3339
	if os.Getenv("PRETTY_LOGS") != "" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	log.Logger = log.Logger.With().Str("service", "prepwise-api").Logger()
}
