package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/autobrr/go-avprobe/internal/config"
	"github.com/autobrr/go-avprobe/internal/observability"
	"github.com/autobrr/go-avprobe/internal/probe"
	"github.com/autobrr/go-avprobe/internal/report"
	"github.com/autobrr/go-avprobe/internal/section"
	"github.com/autobrr/go-avprobe/internal/writer"
)

const (
	exitOK    = 0
	exitError = 1
)

var errExit = errors.New("exit requested")

// state collects everything the command line sets before the probe runs.
type state struct {
	program string
	stdout  io.Writer
	stderr  io.Writer

	probe      probe.Options
	sel        *section.Overlay
	showOpt    string
	pretty     bool
	logLevel   string
	hideBanner bool
	report     bool
	input      string
}

func newState(program string, cfg *config.Config, stdout, stderr io.Writer) *state {
	st := &state{
		program:  program,
		stdout:   stdout,
		stderr:   stderr,
		sel:      section.NewOverlay(),
		showOpt:  cfg.Output.ShowOptionalFields,
		pretty:   cfg.Output.Pretty,
		logLevel: cfg.Logging.Level,
	}
	st.probe.OutputFormat = cfg.Output.Format
	st.probe.ProbeSize = cfg.Probe.ProbeSize
	st.probe.Writer.Hash = cfg.Output.DataHash
	return st
}

// Run executes an ffprobe style command line. args[0] is the program
// name. A nil cfg means built-in defaults.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer, cfg *config.Config) int {
	if len(args) == 0 {
		return exitError
	}
	if cfg == nil {
		cfg = config.Default()
	}
	st := newState(programName(args[0]), cfg, stdout, stderr)

	// the log level and report settings apply to messages printed while
	// the remaining options are parsed
	st.prescan(args[1:])
	if !config.ValidLevel(st.logLevel) {
		fmt.Fprintf(stderr, "Invalid loglevel \"%s\". Possible levels are numbers or:\n", st.logLevel)
		for _, name := range config.LevelNames {
			fmt.Fprintf(stderr, "\"%s\"\n", name)
		}
		return exitError
	}
	logger := observability.NewLoggerWithWriter(config.LoggingConfig{
		Level:      st.logLevel,
		Format:     cfg.Logging.Format,
		AddSource:  cfg.Logging.AddSource,
		TimeFormat: cfg.Logging.TimeFormat,
	}, stderr)
	level := observability.ParseLevel(st.logLevel)

	if env, ok := os.LookupEnv(report.EnvVar); ok || st.report {
		r, err := report.Open(env, st.program, observability.AV(level), args, time.Now(), logger)
		if errors.Is(err, report.ErrInvalidLevel) {
			return exitError
		}
		if err == nil {
			defer r.Close()
			logger = r.Tee(logger)
		}
	}

	if !st.hideBanner && level <= slog.LevelInfo {
		Banner(st.program, stderr)
	}

	if err := st.parse(args[1:], logger); err != nil {
		if errors.Is(err, errExit) {
			return exitOK
		}
		logger.Error(err.Error())
		return exitError
	}
	if err := st.finish(); err != nil {
		logger.Error(err.Error())
		return exitError
	}

	st.probe.Input = st.input
	st.probe.Selection = st.sel
	st.probe.Interrupt = func() bool { return ctx.Err() != nil }
	err := probe.NewSession(stdout, st.probe, logger).Run(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, probe.ErrNoInput):
		Usage(st.program, stderr)
		logger.Error("You have to specify one input file.")
		logger.Error(fmt.Sprintf("Use -h to get full help or, even better, run 'man %s'.", st.program))
	case errors.Is(err, probe.ErrBitexactVersions),
		errors.Is(err, writer.ErrUnknownWriter),
		errors.Is(err, writer.ErrUnknownHash),
		errors.Is(err, writer.ErrInvalidOption):
		logger.Error(err.Error())
	default:
		logger.Debug("probe failed", "error", err)
	}
	return exitError
}

// prescan picks up -loglevel, -v, -report and -hide_banner ahead of the
// full parse.
func (st *state) prescan(args []string) {
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--":
			return
		case "-loglevel", "-v":
			if i+1 < len(args) {
				st.logLevel = args[i+1]
				i++
			}
		case "-report":
			st.report = true
		case "-hide_banner":
			st.hideBanner = true
		}
	}
}

// finish applies settings that depend on several options.
func (st *state) finish() error {
	show, err := writer.ParseShowOptional(st.showOpt)
	if err != nil {
		return err
	}
	st.probe.Writer.ShowOptional = show
	if st.pretty {
		st.probe.Writer.Unit = true
		st.probe.Writer.Prefix = true
		st.probe.Writer.BinaryPrefix = true
		st.probe.Writer.Sexagesimal = true
	}
	if st.probe.OutputFormat == "" {
		st.probe.OutputFormat = "default"
	}
	if name, _, _ := strings.Cut(st.probe.OutputFormat, "="); name == "" {
		return errors.New("no name specified for the output format")
	}
	return nil
}

func programName(arg0 string) string {
	name := filepath.Base(arg0)
	if runtime.GOOS == "windows" {
		ext := filepath.Ext(name)
		name = strings.TrimSuffix(name, ext)
	}
	return name
}
