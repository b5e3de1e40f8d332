// Package report implements FFREPORT style log files: a copy of every log
// record at or above the report level, written next to the normal stderr
// output.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/autobrr/go-avprobe/internal/avopt"
	"github.com/autobrr/go-avprobe/internal/config"
	"github.com/autobrr/go-avprobe/internal/observability"
)

// EnvVar names the environment variable holding the report settings.
const EnvVar = "FFREPORT"

const DefaultTemplate = "%p-%t.log"

var (
	ErrInvalidLevel = errors.New("invalid report file level")
	ErrSyntax       = errors.New("failed to parse report settings")
)

// Settings is the parsed form of file=<template>:level=<n>.
type Settings struct {
	Template string
	Level    int
	LevelSet bool
	// Unknown lists keys that were ignored.
	Unknown []string
}

// Parse reads colon separated key=value pairs. Parsing stops at the first
// malformed pair; the pairs before it still apply. A non-numeric level is
// fatal.
func Parse(env string) (Settings, error) {
	s := Settings{Template: DefaultTemplate, Level: observability.AVDebug}
	count := 0
	for env != "" {
		key, val, rest, ok := nextPair(env)
		if !ok {
			if count > 0 {
				return s, fmt.Errorf("%w: '%s'", ErrSyntax, env)
			}
			break
		}
		env = rest
		count++
		switch key {
		case "file":
			s.Template = val
		case "level":
			n, err := strconv.Atoi(val)
			if err != nil {
				return s, fmt.Errorf("%w: '%s'", ErrInvalidLevel, val)
			}
			s.Level = n
			s.LevelSet = true
		default:
			s.Unknown = append(s.Unknown, key)
		}
	}
	return s, nil
}

// nextPair splits off one key=value pair.
func nextPair(s string) (key, val, rest string, ok bool) {
	key, s = avopt.Token(s, "=")
	if key == "" || s == "" {
		return "", "", "", false
	}
	val, s = avopt.Token(s[1:], ":")
	if s != "" {
		s = s[1:]
	}
	return key, val, s, true
}

// ExpandTemplate substitutes %p with the program name, %t with the local
// time as YYYYMMDD-HHMMSS and %% with a percent sign. Other escapes are
// dropped.
func ExpandTemplate(tmpl, program string, t time.Time) string {
	var b strings.Builder
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(tmpl) {
			break
		}
		switch tmpl[i] {
		case 'p':
			b.WriteString(program)
		case 't':
			b.WriteString(t.Format("20060102-150405"))
		case '%':
			b.WriteByte('%')
		}
	}
	return b.String()
}

// QuoteArg renders a command line argument the way it is dumped into the
// report, quoting it when it holds shell special characters.
func QuoteArg(a string) string {
	plain := true
	for i := 0; i < len(a); i++ {
		c := a[i]
		if !(c >= '+' && c <= ':' || c >= '@' && c <= 'Z' || c == '_' || c >= 'a' && c <= 'z') {
			plain = false
			break
		}
	}
	if plain {
		return a
	}
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(a); i++ {
		c := a[i]
		switch {
		case c == '\\' || c == '"' || c == '$' || c == '`':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c < ' ' || c > '~':
			fmt.Fprintf(&b, "\\x%02x", c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Report is an open report file.
type Report struct {
	Path  string
	Level int

	file    *os.File
	handler slog.Handler
}

// Open parses env, creates the report file and writes its header and the
// command line. progLevel is the numeric level the program logs at; it
// raises the report level unless env sets one. Unknown keys are logged to
// logger.
func Open(env, program string, progLevel int, args []string, now time.Time, logger *slog.Logger) (*Report, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s, err := Parse(env)
	for _, k := range s.Unknown {
		logger.Error(fmt.Sprintf("Unknown key '%s' in %s", k, EnvVar))
	}
	if errors.Is(err, ErrInvalidLevel) {
		logger.Log(context.Background(), observability.LevelFatal, "Invalid report file level")
		return nil, err
	}
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to parse %s environment variable: %v", EnvVar, err))
	}

	level := s.Level
	if !s.LevelSet {
		level = max(level, progLevel)
	}

	path := ExpandTemplate(s.Template, program, now)
	f, err := os.Create(path)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to open report \"%s\": %v", path, err))
		return nil, fmt.Errorf("opening report: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s started on %s\n", program, now.Format("2006-01-02 at 15:04:05"))
	fmt.Fprintf(&b, "Report written to \"%s\"\n", path)
	fmt.Fprintf(&b, "Log level: %d\n", level)
	b.WriteString("Command line:\n")
	for i, a := range args {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(QuoteArg(a))
	}
	b.WriteByte('\n')
	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing report header: %w", err)
	}

	cfg := config.LoggingConfig{Level: strconv.Itoa(level), Format: "text"}
	return &Report{
		Path:    path,
		Level:   level,
		file:    f,
		handler: observability.NewLoggerWithWriter(cfg, f).Handler(),
	}, nil
}

// Handler returns the slog handler writing into the report.
func (r *Report) Handler() slog.Handler { return r.handler }

// Tee returns a logger that sends every record to both the report and
// logger's own handler.
func (r *Report) Tee(logger *slog.Logger) *slog.Logger {
	return slog.New(teeHandler{logger.Handler(), r.handler})
}

func (r *Report) Close() error { return r.file.Close() }

type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithGroup(name)
	}
	return out
}
