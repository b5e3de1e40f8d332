// Package avprobe exposes the stream analyzer and the PCM transcoder to
// other Go programs.
package avprobe

import (
	"context"
	"io"
	"log/slog"

	"github.com/autobrr/go-avprobe/internal/probe"
	"github.com/autobrr/go-avprobe/internal/section"
	"github.com/autobrr/go-avprobe/internal/transcode"
	"github.com/autobrr/go-avprobe/internal/writer"
)

// Types
type Options = probe.Options
type Interval = probe.Interval
type WriterOptions = writer.Options
type Selection = section.Overlay
type TranscodeOptions = transcode.Options
type TranscodeResult = transcode.Result

// Errors
var (
	ErrNoInput       = probe.ErrNoInput
	ErrUnknownWriter = writer.ErrUnknownWriter
	ErrNoAudio       = transcode.ErrNoAudio
)

// NewSelection returns an empty section selection.
func NewSelection() *Selection {
	return section.NewOverlay()
}

// ShowEntries builds a selection from a -show_entries style list such as
// "format=duration:stream=codec_name,width".
func ShowEntries(spec string) (*Selection, error) {
	sel := section.NewOverlay()
	if err := sel.ParseShowEntries(spec); err != nil {
		return nil, err
	}
	return sel, nil
}

func ParseIntervals(spec string) ([]Interval, error) {
	return probe.ParseIntervals(spec)
}

// Probe analyzes opts.Input and writes the report to w.
func Probe(ctx context.Context, w io.Writer, opts Options, logger *slog.Logger) error {
	return probe.NewSession(w, opts, logger).Run(ctx)
}

// Writers lists the output format names.
func Writers() []string {
	return writer.Names()
}

// Transcode re-frames the PCM audio of every input into a WAV file.
func Transcode(ctx context.Context, inputs []string, opts TranscodeOptions, logger *slog.Logger) ([]TranscodeResult, error) {
	return transcode.RunAll(ctx, inputs, opts, logger)
}
