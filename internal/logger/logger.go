package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// InitLogger builds the process logger. Pretty output is meant for local runs,
// production gets one JSON object per line.
func InitLogger(level string, pretty bool) zerolog.Logger {
	return New(os.Stderr, level, pretty)
}

func New(out io.Writer, level string, pretty bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
