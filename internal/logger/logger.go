package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process-wide zerolog logger. Development gets a human
// readable console writer, everything else plain JSON on stdout.
func New(environment string) zerolog.Logger {
	if environment == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
