// Package logger builds the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/benbeisheim/chessgame/internal/config"
	"github.com/rs/zerolog"
)

// New returns a logger writing to stderr in the configured format and level.
func New(cfg config.Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

func NewWithWriter(cfg config.Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}

	out := w
	if strings.EqualFold(cfg.LogFormat, "console") {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
