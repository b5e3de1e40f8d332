// Package demux opens media files, picks a container demuxer by probe
// score and hands out packets after a stream info pass has filled in the
// codec parameters.
package demux

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/autobrr/go-avprobe/internal/codec"
	"github.com/autobrr/go-avprobe/internal/media"
)

const (
	// ScoreMax is the probe score of an unambiguous match.
	ScoreMax = 100
	// ScoreExtension is the score of a match on the file extension only.
	ScoreExtension = 50

	probeBufSize = 4096

	defaultProbeSize   = 5000000
	maxAnalyzePackets  = 2500
	durationProbeBytes = 1 << 20
)

var (
	ErrUnknownFormat = errors.New("unknown input format")
	ErrSeek          = errors.New("seeking is not supported")
)

// Demuxer reads one container. ReadHeader creates the streams known up
// front; ReadPacket may add more streams to the context as they appear.
type Demuxer interface {
	ReadHeader(fc *media.FormatContext) error
	// ReadPacket fills pkt with the next packet or returns media.ErrEOF.
	ReadPacket(pkt *media.Packet) error
	// Seek positions the demuxer at the first packet at or after ts,
	// given in media.TimeBase units.
	Seek(ts int64) error
	Close() error
}

// durationEstimator is implemented by demuxers whose streams carry no
// duration in the header.
type durationEstimator interface {
	EstimateDurations(fc *media.FormatContext) error
}

// Options configure Open.
type Options struct {
	// Format forces a demuxer by name.
	Format string
	// ProbeSize bounds the bytes read during stream analysis.
	ProbeSize int64
	// Interrupt is polled during blocking waits. Returning true aborts the
	// wait with media.ErrExit.
	Interrupt func() bool
}

// Format describes a registered demuxer.
type Format struct {
	Name       string
	LongName   string
	Extensions []string
	// ShowIDs marks containers whose stream ids are meaningful to print.
	ShowIDs bool
	// Probe scores how likely buf, the head of the file, belongs to this
	// format.
	Probe func(buf []byte, filename string) int
	Open  func(r io.ReadSeeker, filename string, opts Options) Demuxer
}

var formats = []*Format{
	wavFormat,
	mpegtsFormat,
	hlsFormat,
}

// Formats lists the registered demuxers.
func Formats() []*Format { return formats }

// FindFormat returns a demuxer by name, or nil.
func FindFormat(name string) *Format {
	for _, f := range formats {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Probe returns the best scoring format for buf, or nil when none claims
// it.
func Probe(buf []byte, filename string) (*Format, int) {
	var best *Format
	bestScore := 0
	for _, f := range formats {
		if score := f.Probe(buf, filename); score > bestScore {
			best, bestScore = f, score
		}
	}
	return best, bestScore
}

func matchExtension(filename string, exts []string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}

// Input is an opened file with its format context.
type Input struct {
	Format *media.FormatContext

	file    *os.File
	format  *Format
	demuxer Demuxer
	queue   []*media.Packet
	opts    Options
}

// Open opens filename, probes or forces its format, reads the header and
// analyzes the first packets until every stream's parameters are known.
func Open(ctx context.Context, filename string, opts Options) (*Input, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	in := &Input{file: f, opts: opts}
	if err := in.open(ctx, filename); err != nil {
		f.Close()
		return nil, err
	}
	return in, nil
}

func (in *Input) open(ctx context.Context, filename string) error {
	fc := media.NewFormatContext(filename)
	if st, err := in.file.Stat(); err == nil && st.Mode().IsRegular() {
		fc.Size = st.Size()
	}

	var format *Format
	if in.opts.Format != "" {
		format = FindFormat(in.opts.Format)
		if format == nil {
			return fmt.Errorf("%w: %s", ErrUnknownFormat, in.opts.Format)
		}
		fc.ProbeScore = ScoreMax
	} else {
		buf := make([]byte, probeBufSize)
		n, err := io.ReadFull(in.file, buf)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
			return err
		}
		format, fc.ProbeScore = Probe(buf[:n], filename)
		if format == nil {
			return media.ErrInvalidData
		}
		if _, err := in.file.Seek(0, io.SeekStart); err != nil {
			return err
		}
	}
	fc.FormatName = format.Name
	fc.FormatLongName = format.LongName
	in.format = format

	in.demuxer = format.Open(in.file, filename, in.opts)
	if err := in.demuxer.ReadHeader(fc); err != nil {
		in.demuxer.Close()
		return err
	}
	in.Format = fc
	if err := in.findStreamInfo(ctx); err != nil {
		in.demuxer.Close()
		return err
	}
	if est, ok := in.demuxer.(durationEstimator); ok {
		if err := est.EstimateDurations(fc); err != nil {
			in.demuxer.Close()
			return err
		}
	}
	fc.UpdateTimings()
	return nil
}

// findStreamInfo reads packets until every stream has complete codec
// parameters or the probe budget runs out. The packets are queued and
// returned again by ReadPacket.
func (in *Input) findStreamInfo(ctx context.Context) error {
	fc := in.Format
	limit := in.opts.ProbeSize
	if limit <= 0 {
		limit = defaultProbeSize
	}
	complete := make(map[int]bool)
	for _, st := range fc.Streams {
		if len(st.Codecpar.ExtraData) > 0 || st.Codecpar.CodecName == "" {
			complete[st.Index] = codec.Analyze(st, nil)
		}
	}

	var read int64
	for n := 0; n < maxAnalyzePackets && read < limit; n++ {
		if ctx.Err() != nil {
			return media.ErrExit
		}
		if len(fc.Streams) > 0 && len(complete) == len(fc.Streams) && allTrue(complete) {
			break
		}
		pkt := media.NewPacket()
		err := in.demuxer.ReadPacket(pkt)
		if errors.Is(err, media.ErrEOF) {
			break
		}
		if err != nil {
			return err
		}
		read += int64(len(pkt.Data))
		st := fc.Streams[pkt.StreamIndex]
		if !complete[st.Index] {
			complete[st.Index] = codec.Analyze(st, pkt.Data)
		}
		codec.ParsePacket(st, pkt)
		if st.StartTime == media.NoPTS {
			if pkt.PTS != media.NoPTS {
				st.StartTime = pkt.PTS
			} else if pkt.DTS != media.NoPTS {
				st.StartTime = pkt.DTS
			}
		}
		in.queue = append(in.queue, pkt)
	}

	for _, st := range fc.Streams {
		if st.AvgFrameRate.IsZero() && !st.RFrameRate.IsZero() {
			st.AvgFrameRate = st.RFrameRate
		}
	}
	return nil
}

func allTrue(m map[int]bool) bool {
	for _, v := range m {
		if !v {
			return false
		}
	}
	return true
}

// ReadPacket returns the next packet, first replaying those consumed by
// stream analysis.
func (in *Input) ReadPacket(pkt *media.Packet) error {
	if len(in.queue) > 0 {
		*pkt = *in.queue[0]
		in.queue[0] = nil
		in.queue = in.queue[1:]
		return nil
	}
	if err := in.demuxer.ReadPacket(pkt); err != nil {
		return err
	}
	if pkt.StreamIndex < len(in.Format.Streams) {
		codec.ParsePacket(in.Format.Streams[pkt.StreamIndex], pkt)
	}
	return nil
}

// Demuxer returns the format the input was opened with.
func (in *Input) Demuxer() *Format { return in.format }

// Seek positions the input at ts, in media.TimeBase units.
func (in *Input) Seek(ts int64) error {
	in.queue = nil
	return in.demuxer.Seek(ts)
}

func (in *Input) Close() error {
	var err error
	if in.demuxer != nil {
		err = in.demuxer.Close()
	}
	if cerr := in.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// interrupted reports whether the interrupt callback asks to stop.
func (o Options) interrupted() bool {
	return o.Interrupt != nil && o.Interrupt()
}
