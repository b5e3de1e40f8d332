package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autobrr/go-avprobe/internal/config"
)

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(config.LoggingConfig{Level: "info", Format: "json"}, &buf)
	logger.Warn("test message", slog.String("key", "value"))

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	assert.Equal(t, "test message", parsed["msg"])
	assert.Equal(t, "value", parsed["key"])
	assert.Equal(t, "warning", parsed["level"])
}

func TestNewLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(config.LoggingConfig{Level: "info", Format: "text"}, &buf)
	logger.Info("test message", slog.String("key", "value"))

	output := buf.String()
	assert.Contains(t, output, "test message")
	assert.Contains(t, output, "key=value")
	assert.Contains(t, output, "level=info")
}

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		name        string
		configLevel string
		logLevel    slog.Level
		shouldLog   bool
	}{
		{"debug logs at debug level", "debug", slog.LevelDebug, true},
		{"info does not log debug", "info", slog.LevelDebug, false},
		{"info does not log verbose", "info", LevelVerbose, false},
		{"verbose logs verbose", "verbose", LevelVerbose, true},
		{"warning does not log info", "warning", slog.LevelInfo, false},
		{"warn alias", "warn", slog.LevelWarn, true},
		{"numeric warning", "24", slog.LevelWarn, true},
		{"numeric warning drops info", "24", slog.LevelInfo, false},
		{"flag prefix", "repeat+error", slog.LevelError, true},
		{"quiet drops panic", "quiet", LevelPanic, false},
		{"trace logs trace", "trace", LevelTrace, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLoggerWithWriter(config.LoggingConfig{Level: tt.configLevel, Format: "json"}, &buf)
			logger.Log(context.Background(), tt.logLevel, "test")
			assert.Equal(t, tt.shouldLog, buf.Len() > 0)
		})
	}
}

func TestAVLevels(t *testing.T) {
	assert.Equal(t, AVInfo, AV(slog.LevelInfo))
	assert.Equal(t, AVWarning, AV(slog.LevelWarn))
	assert.Equal(t, AVError, AV(slog.LevelError))
	assert.Equal(t, AVDebug, AV(slog.LevelDebug))
	assert.Equal(t, AVPanic, AV(LevelPanic))

	assert.Equal(t, slog.LevelInfo, FromAV(32))
	assert.Equal(t, slog.LevelInfo, FromAV(35))
	assert.Equal(t, LevelQuiet, FromAV(-8))

	assert.Equal(t, "verbose", LevelName(LevelVerbose))
	assert.Equal(t, "fatal", LevelName(LevelFatal))
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := WithComponent(NewLoggerWithWriter(config.LoggingConfig{Level: "info", Format: "text"}, &buf), "probe")
	logger.Info("opened")
	assert.Contains(t, buf.String(), "component=probe")
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	base := NewLoggerWithWriter(config.LoggingConfig{Level: "info", Format: "text"}, &buf)

	assert.Same(t, base, WithError(base, nil))

	WithError(base, errors.New("boom")).Error("failed")
	assert.Contains(t, buf.String(), "error=boom")
}

func TestContextLogger(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	ctx := ContextWithLogger(context.Background(), logger)
	assert.Same(t, logger, LoggerFromContext(ctx))
	assert.Same(t, slog.Default(), LoggerFromContext(context.Background()))
}
