package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"invoice-antifraud/internal/pkg/config"
)

// New builds the service logger from config. Unknown levels fall back to
// info; the console format is meant for local development only.
func New(cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
