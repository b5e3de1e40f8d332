// Package observability provides the structured loggers used by the probe
// and transcode paths.
package observability

import (
	"context"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/autobrr/go-avprobe/internal/config"
)

type contextKey string

const loggerKey contextKey = "logger"

// Levels between and beyond the four slog defaults, so the classic
// quiet ... trace scale maps onto slog.
const (
	LevelTrace   = slog.Level(-8)
	LevelVerbose = slog.Level(-2)
	LevelFatal   = slog.Level(12)
	LevelPanic   = slog.Level(16)
	LevelQuiet   = slog.Level(math.MaxInt32)
)

// Numeric levels as printed in log reports and accepted by -loglevel.
const (
	AVQuiet   = -8
	AVPanic   = 0
	AVFatal   = 8
	AVError   = 16
	AVWarning = 24
	AVInfo    = 32
	AVVerbose = 40
	AVDebug   = 48
	AVTrace   = 56
)

var levelTable = []struct {
	name  string
	av    int
	level slog.Level
}{
	{"quiet", AVQuiet, LevelQuiet},
	{"panic", AVPanic, LevelPanic},
	{"fatal", AVFatal, LevelFatal},
	{"error", AVError, slog.LevelError},
	{"warning", AVWarning, slog.LevelWarn},
	{"info", AVInfo, slog.LevelInfo},
	{"verbose", AVVerbose, LevelVerbose},
	{"debug", AVDebug, slog.LevelDebug},
	{"trace", AVTrace, LevelTrace},
}

// NewLogger creates a logger writing to stderr.
func NewLogger(cfg config.LoggingConfig) *slog.Logger {
	return NewLoggerWithWriter(cfg, os.Stderr)
}

// NewLoggerWithWriter creates a logger that writes to w in the configured
// format, text by default.
func NewLoggerWithWriter(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: cfg.AddSource,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				if cfg.TimeFormat != "" {
					if t, ok := a.Value.Any().(time.Time); ok {
						return slog.String(slog.TimeKey, t.Format(cfg.TimeFormat))
					}
				}
			case slog.LevelKey:
				if l, ok := a.Value.Any().(slog.Level); ok {
					return slog.String(slog.LevelKey, LevelName(l))
				}
			}
			return a
		},
	}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel converts a level name or numeric level to a slog level. An
// unknown name yields info.
func ParseLevel(level string) slog.Level {
	level = config.StripLevelFlags(level)
	if level == "warn" {
		return slog.LevelWarn
	}
	for _, l := range levelTable {
		if l.name == level {
			return l.level
		}
	}
	if n, err := strconv.Atoi(level); err == nil {
		return FromAV(n)
	}
	return slog.LevelInfo
}

// FromAV maps a numeric level onto the nearest slog level at or below it.
func FromAV(n int) slog.Level {
	if n < AVPanic {
		return LevelQuiet
	}
	lvl := LevelPanic
	for _, l := range levelTable[1:] {
		if n >= l.av {
			lvl = l.level
		}
	}
	return lvl
}

// AV returns the numeric level of l.
func AV(l slog.Level) int {
	av := AVPanic
	for i := len(levelTable) - 1; i > 0; i-- {
		if l >= levelTable[i].level {
			av = levelTable[i].av
		}
	}
	return av
}

// LevelName returns the name used in log output for l.
func LevelName(l slog.Level) string {
	for i := len(levelTable) - 1; i > 0; i-- {
		if l <= levelTable[i].level {
			return levelTable[i].name
		}
	}
	return "panic"
}

// WithComponent adds a component name to the logger.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With(slog.String("component", component))
}

// WithError adds an error to the logger attributes.
func WithError(logger *slog.Logger, err error) *slog.Logger {
	if err == nil {
		return logger
	}
	return logger.With(slog.String("error", err.Error()))
}

// LoggerFromContext extracts a logger from the context, or the default
// logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}
