// Package trace provides structured logging and enumeration tracing for query
// pipelines.
package trace

import (
	"fmt"
	"io"
	"time"

	"github.com/paveg/linq/internal/config"
	"github.com/rs/zerolog"
)

// NewLogger builds a zerolog logger from the configuration. JSON output
// carries RFC3339Nano timestamps under "time"; the console format renders
// human readable lines, coloured when cfg.Color is set.
func NewLogger(cfg config.Config, w io.Writer) (zerolog.Logger, error) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.TimestampFieldName = "time"

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	if cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}

	out := w
	if cfg.LogFormat == "console" {
		out = zerolog.ConsoleWriter{Out: w, NoColor: !cfg.Color, TimeFormat: time.Kitchen}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
