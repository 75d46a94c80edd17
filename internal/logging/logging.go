package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures zerolog for the process.
func Setup(environment string) zerolog.Logger {
	return SetupWithWriter(environment, nil)
}

// SetupWithWriter configures zerolog writing to w, or to stdout when w is nil.
// Development gets a console writer at debug level; everything else is JSON.
func SetupWithWriter(environment string, w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.InfoLevel
	if environment == "development" {
		level = zerolog.DebugLevel
	}

	var out io.Writer = os.Stdout
	if w != nil {
		out = w
	}
	if environment == "development" && w == nil {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	logger := zerolog.New(out).With().Timestamp().Logger().Level(level)
	log.Logger = logger
	return logger
}
