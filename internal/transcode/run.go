package transcode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/autobrr/go-avprobe/internal/audio"
	"github.com/autobrr/go-avprobe/internal/codec"
	"github.com/autobrr/go-avprobe/internal/demux"
	"github.com/autobrr/go-avprobe/internal/media"
	"github.com/autobrr/go-avprobe/internal/observability"
	"github.com/autobrr/go-avprobe/internal/wav"
)

var (
	ErrNoAudio        = errors.New("no PCM audio stream")
	ErrSameFile       = errors.New("output would overwrite the input")
	ErrOutputConflict = errors.New("inputs map to the same output")
)

type Options struct {
	// OutputDir receives <input base name>.wav for every input. Empty
	// means the input's own directory.
	OutputDir string
	FrameSize int
	// SampleFmt is the output sample format. audio.SampleFmtNone keeps
	// the input's.
	SampleFmt audio.SampleFormat
	Jobs      int
	ProbeSize int64
}

// Result describes one finished transcode.
type Result struct {
	Input  string
	Output string
	Stats  Stats
}

// OutputPath returns where the transcode of input is written. When that
// would be the input itself the name gets a "-transcoded" suffix.
func OutputPath(input, dir string) string {
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if dir == "" {
		dir = filepath.Dir(input)
	}
	out := filepath.Join(dir, name+".wav")
	if samePath(out, input) {
		out = filepath.Join(dir, name+"-transcoded.wav")
	}
	return out
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

func samePath(a, b string) bool {
	if absPath(a) == absPath(b) {
		return true
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

// outputPaths maps every input to its output and rejects outputs shared by
// two jobs or landing on one of the inputs.
func outputPaths(inputs []string, dir string) ([]string, error) {
	outputs := make([]string, len(inputs))
	owner := make(map[string]string, len(inputs))
	for i, input := range inputs {
		outputs[i] = OutputPath(input, dir)
		key := absPath(outputs[i])
		if prev, ok := owner[key]; ok {
			return nil, fmt.Errorf("%w: %s and %s both write %s", ErrOutputConflict, prev, input, outputs[i])
		}
		owner[key] = input
	}
	for _, out := range outputs {
		for _, input := range inputs {
			if samePath(out, input) {
				return nil, fmt.Errorf("%s: %w", input, ErrSameFile)
			}
		}
	}
	return outputs, nil
}

// RunAll transcodes inputs concurrently, at most opts.Jobs at a time. The
// first failure cancels the others. Results keep the input order.
func RunAll(ctx context.Context, inputs []string, opts Options, logger *slog.Logger) ([]Result, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	outputs, err := outputPaths(inputs, opts.OutputDir)
	if err != nil {
		return nil, err
	}
	results := make([]Result, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}
	g.SetLimit(jobs)
	for i, input := range inputs {
		g.Go(func() error {
			res, err := Run(ctx, input, outputs[i], opts, logger)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Run transcodes the first PCM audio stream of input into a WAV file at
// output. The file is written under a temporary name and renamed into
// place once complete; output must not be the input.
func Run(ctx context.Context, input, output string, opts Options, logger *slog.Logger) (res Result, err error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	log := observability.WithComponent(logger, "transcode").With("input", input)
	res = Result{Input: input, Output: output}
	if samePath(input, output) {
		return res, ErrSameFile
	}

	in, err := demux.Open(ctx, input, demux.Options{
		ProbeSize: opts.ProbeSize,
		Interrupt: func() bool { return ctx.Err() != nil },
	})
	if err != nil {
		return res, fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	st := findAudio(in.Format)
	if st == nil {
		return res, ErrNoAudio
	}
	dec, err := codec.NewDecoder(st)
	if err != nil {
		return res, fmt.Errorf("opening decoder: %w", err)
	}
	par := st.Codecpar

	outFmt := opts.SampleFmt
	if outFmt == audio.SampleFmtNone {
		outFmt = par.SampleFmt
	}
	outFmt = outFmt.Packed()
	codecName := pcmCodecFor(outFmt)
	if codecName == "" {
		return res, fmt.Errorf("%w: no PCM codec for %s", wav.ErrUnsupportedCodec, outFmt)
	}
	channels := par.Layout.NbChannels
	enc, err := codec.NewPCMEncoder(codecName, channels, opts.FrameSize)
	if err != nil {
		return res, fmt.Errorf("opening encoder: %w", err)
	}

	f, err := os.CreateTemp(filepath.Dir(output), "."+filepath.Base(output)+".*.tmp")
	if err != nil {
		return res, fmt.Errorf("creating output: %w", err)
	}
	_ = f.Chmod(0o644)
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing output: %w", cerr)
		}
		if err == nil {
			if rerr := os.Rename(f.Name(), output); rerr != nil {
				err = fmt.Errorf("renaming output: %w", rerr)
			}
		}
		if err != nil {
			os.Remove(f.Name())
		}
	}()
	mux, err := wav.NewMuxer(f, codecName, par.SampleRate, channels)
	if err != nil {
		return res, err
	}
	if title, ok := in.Format.Tags.Get("title"); ok {
		mux.Tags.Set("title", title)
	}
	if err := mux.WriteHeader(); err != nil {
		return res, err
	}

	sess, err := NewSession(
		audio.Params{Format: par.SampleFmt, Rate: par.SampleRate, Layout: par.Layout},
		audio.Params{Format: outFmt, Rate: par.SampleRate, Layout: par.Layout},
		enc, mux, log,
	)
	if err != nil {
		return res, err
	}
	log.Debug("transcoding", "codec", par.CodecName, "output", output, "encoder", codecName, "frame_size", opts.FrameSize)

	if err := pump(ctx, in, st.Index, dec, sess); err != nil {
		return res, err
	}
	if err := sess.Finish(); err != nil {
		return res, err
	}
	res.Stats = sess.Stats()
	log.Info("transcoded", "output", output, "samples", res.Stats.SamplesOut, "packets", res.Stats.Packets)
	return res, nil
}

// pump reads packets until EOF, decoding and pushing every frame of the
// selected stream. A decode error aborts; EOF puts the decoder in flush
// mode.
func pump(ctx context.Context, in *demux.Input, index int, dec codec.Decoder, sess *Session) error {
	pkt := media.NewPacket()
	for {
		if ctx.Err() != nil {
			return media.ErrExit
		}
		err := in.ReadPacket(pkt)
		if errors.Is(err, media.ErrEOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading packet: %w", err)
		}
		if pkt.StreamIndex != index {
			continue
		}
		if err := dec.SendPacket(pkt); err != nil {
			return fmt.Errorf("decoding: %w", err)
		}
		if err := receive(dec, sess); err != nil {
			return err
		}
	}
	if err := dec.SendPacket(nil); err != nil && !errors.Is(err, media.ErrEOF) {
		return fmt.Errorf("flushing decoder: %w", err)
	}
	return receive(dec, sess)
}

func receive(dec codec.Decoder, sess *Session) error {
	for {
		frame := media.NewFrame()
		err := dec.ReceiveFrame(frame)
		if errors.Is(err, media.ErrAgain) || errors.Is(err, media.ErrEOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("decoding: %w", err)
		}
		if err := sess.Push(frame); err != nil {
			return err
		}
	}
}

func findAudio(fc *media.FormatContext) *media.Stream {
	for _, st := range fc.Streams {
		if st.Codecpar.Type != media.TypeAudio {
			continue
		}
		if _, ok := codec.PCMSampleFormat(st.Codecpar.CodecName); ok {
			return st
		}
	}
	return nil
}

func pcmCodecFor(f audio.SampleFormat) string {
	switch f {
	case audio.SampleFmtFLT, audio.SampleFmtDBL:
		return codec.PCMCodec(f.BytesPerSample()*8, true)
	case audio.SampleFmtU8, audio.SampleFmtS16, audio.SampleFmtS32:
		return codec.PCMCodec(f.BytesPerSample()*8, false)
	}
	return ""
}
