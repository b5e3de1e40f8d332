// Package probe runs one probe session: it opens an input, reads packets
// and frames inside the requested intervals and prints the selected
// sections through a report writer.
package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/autobrr/go-avprobe/internal/codec"
	"github.com/autobrr/go-avprobe/internal/demux"
	"github.com/autobrr/go-avprobe/internal/media"
	"github.com/autobrr/go-avprobe/internal/observability"
	"github.com/autobrr/go-avprobe/internal/section"
	"github.com/autobrr/go-avprobe/internal/writer"
)

var (
	ErrNoInput            = errors.New("no input file specified")
	ErrBitexactVersions   = errors.New("-bitexact and -show_program_version or -show_library_versions options are incompatible")
	ErrUndefinedTimestamp = errors.New("could not seek to relative position since current timestamp is not defined")
)

// Options configure a Session.
type Options struct {
	Input string
	// PrintFilename replaces the input name in the format section.
	PrintFilename string
	// Format forces a demuxer.
	Format    string
	ProbeSize int64

	// OutputFormat is the writer spec, name[=options].
	OutputFormat string
	Writer       writer.Options
	Selection    *section.Overlay

	SelectStreams string
	Intervals     []Interval

	ShowData bool
	// ShowLog is the highest log level printed in frame logs, 0 disables
	// capturing.
	ShowLog      int
	CountFrames  bool
	CountPackets bool
	Bitexact     bool

	Interrupt func() bool
}

type inputStream struct {
	st       *media.Stream
	dec      codec.Decoder
	subDec   codec.SubtitleDecoder
	selected bool
}

// Session probes one input. It is not safe for concurrent use.
type Session struct {
	opts    Options
	out     io.Writer
	log     *slog.Logger
	logs    *LogBuffer
	showLog int
	sel     *section.Overlay
	w       *writer.Context

	in      *demux.Input
	streams []*inputStream
	spec    *demux.StreamSpecifier
}

// NewSession prepares a session writing its report to out.
func NewSession(out io.Writer, opts Options, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Session{opts: opts, out: out, sel: opts.Selection, showLog: opts.ShowLog}
	if s.sel == nil {
		s.sel = section.NewOverlay()
	}
	if s.showLog == 0 && s.sel.Active(section.FrameLogs) {
		s.showLog = observability.AVPanic + 1
	}
	if s.showLog > 0 {
		s.logs = NewLogBuffer(logger.Handler())
		logger = slog.New(s.logs)
	}
	s.log = observability.WithComponent(logger, "probe")
	return s
}

func (s *Session) showsFileSections() bool {
	for _, id := range []section.ID{section.Format, section.Programs, section.StreamGroups,
		section.Streams, section.Chapters, section.Packets, section.Frames, section.Error} {
		if s.sel.Active(id) {
			return true
		}
	}
	return false
}

// Run prints the report. With no input it fails with ErrNoInput unless
// only version sections were requested.
func (s *Session) Run(ctx context.Context) (err error) {
	showProgram := s.sel.Active(section.ProgramVersion)
	showLibraries := s.sel.Active(section.LibraryVersions)
	showPixFmts := s.sel.Active(section.PixelFormats)
	if s.opts.Bitexact && (showProgram || showLibraries) {
		return ErrBitexactVersions
	}

	wopts := s.opts.Writer
	wopts.Selection = s.sel
	if wopts.Logger == nil {
		wopts.Logger = observability.WithComponent(s.log, "output")
	}
	w, err := writer.Open(s.out, s.opts.OutputFormat, wopts)
	if err != nil {
		return fmt.Errorf("failed to open writer: %w", err)
	}
	s.w = w
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()

	w.Header(section.Root, nil)
	if showProgram {
		s.showProgramVersion()
	}
	if showLibraries {
		s.showLibraryVersions()
	}
	if showPixFmts {
		s.showPixelFormats()
	}

	switch {
	case s.opts.Input == "" && (s.showsFileSections() || (!showProgram && !showLibraries && !showPixFmts)):
		err = ErrNoInput
	case s.opts.Input != "":
		err = s.probeFile(ctx)
		if err != nil && s.sel.Active(section.Error) {
			s.showError(err)
		}
	}
	w.Footer()
	return err
}

func (s *Session) probeFile(ctx context.Context) error {
	in, err := demux.Open(ctx, s.opts.Input, demux.Options{
		Format:    s.opts.Format,
		ProbeSize: s.opts.ProbeSize,
		Interrupt: s.opts.Interrupt,
	})
	if err != nil {
		_, msg := errorCode(err)
		s.log.Error(fmt.Sprintf("%s: %s", s.opts.Input, msg))
		return err
	}
	s.in = in
	defer func() {
		in.Close()
		s.in = nil
		s.streams = nil
	}()

	if s.opts.SelectStreams != "" {
		spec, err := demux.ParseStreamSpecifier(s.opts.SelectStreams)
		if err != nil {
			s.log.Error(fmt.Sprintf("Invalid stream specifier: %s", s.opts.SelectStreams))
			return err
		}
		s.spec = spec
	}
	s.dumpFormat()
	s.syncStreams()

	showPackets := s.sel.Active(section.Packets)
	showFrames := s.sel.Active(section.Frames)
	if showPackets || showFrames || s.opts.CountFrames || s.opts.CountPackets {
		id := section.Frames
		switch {
		case showPackets && showFrames && s.w.SameChapter():
			id = section.PacketsAndFrames
		case showPackets && !showFrames:
			id = section.Packets
		}
		if showPackets || showFrames {
			s.w.Header(id, nil)
		}
		err := s.readPackets(ctx)
		if showPackets || showFrames {
			s.w.Footer()
		}
		if err != nil {
			return err
		}
	}

	if s.sel.Active(section.Programs) {
		if err := s.showPrograms(); err != nil {
			return err
		}
	}
	if s.sel.Active(section.StreamGroups) {
		if err := s.showStreamGroups(); err != nil {
			return err
		}
	}
	if s.sel.Active(section.Streams) {
		if err := s.showStreams(); err != nil {
			return err
		}
	}
	if s.sel.Active(section.Chapters) {
		if err := s.showChapters(); err != nil {
			return err
		}
	}
	if s.sel.Active(section.Format) {
		if err := s.showFormat(); err != nil {
			return err
		}
	}
	return nil
}

// syncStreams opens decoders and applies the stream selection for streams
// the demuxer has added since the last call.
func (s *Session) syncStreams() {
	fc := s.in.Format
	for i := len(s.streams); i < len(fc.Streams); i++ {
		st := fc.Streams[i]
		ist := &inputStream{st: st, selected: s.spec == nil || s.spec.Match(fc, st)}
		switch st.Codecpar.Type {
		case media.TypeSubtitle:
			ist.subDec, _ = codec.NewSubtitleDecoder(st)
		case media.TypeVideo, media.TypeAudio:
			dec, err := codec.NewDecoder(st)
			if err != nil {
				s.log.Warn(fmt.Sprintf("Unsupported codec %s for input stream %d", st.Codecpar.CodecName, i))
			}
			ist.dec = dec
		}
		if st.Codecpar.CodecName == "" {
			s.log.Warn(fmt.Sprintf("Failed to probe codec for input stream %d", i))
		}
		s.streams = append(s.streams, ist)
	}
}

func (s *Session) readPackets(ctx context.Context) error {
	if len(s.opts.Intervals) == 0 {
		return s.readInterval(ctx, Interval{})
	}
	for _, iv := range s.opts.Intervals {
		if err := s.readInterval(ctx, iv); err != nil {
			return err
		}
	}
	return nil
}

// readInterval reads packets from the interval start until its end. A
// decoding failure ends the interval early without failing the run.
func (s *Session) readInterval(ctx context.Context, iv Interval) (err error) {
	fc := s.in.Format
	readFrames := s.sel.Active(section.Frames) || s.opts.CountFrames
	readPackets := s.sel.Active(section.Packets) || s.opts.CountPackets
	showPackets := s.sel.Active(section.Packets)

	defer func() {
		if err != nil {
			s.log.Error("Could not read packets in interval " + iv.String())
		}
	}()

	curTS := fc.StartTime
	s.log.Log(ctx, observability.LevelVerbose, "Processing read interval "+iv.String())
	if iv.HasStart {
		target := iv.Start
		if iv.StartIsOffset {
			if curTS == media.NoPTS {
				s.log.Error("Could not seek to relative position since current timestamp is not defined")
				return ErrUndefinedTimestamp
			}
			target += curTS
		}
		s.log.Log(ctx, observability.LevelVerbose, fmt.Sprintf("Seeking to read interval start point %s", tsString(target)))
		if err := s.in.Seek(target); err != nil {
			s.log.Error(fmt.Sprintf("Could not seek to position %d: %s", target, err))
			return err
		}
	}

	start, end := int64(0), iv.End
	hasStart, hasEnd := false, iv.HasEnd && !iv.EndIsOffset
	var frameCount int64
	var decodeErr error

	for decodeErr == nil {
		if ctx.Err() != nil {
			return media.ErrExit
		}
		pkt := media.NewPacket()
		if err := s.in.ReadPacket(pkt); err != nil {
			if errors.Is(err, media.ErrEOF) {
				break
			}
			return err
		}
		s.syncStreams()
		if pkt.StreamIndex >= len(s.streams) || !s.streams[pkt.StreamIndex].selected {
			continue
		}
		ist := s.streams[pkt.StreamIndex]

		ts := pkt.PTS
		if ts == media.NoPTS {
			ts = pkt.DTS
		}
		if ts != media.NoPTS {
			curTS = media.Rescale(ts, ist.st.TimeBase, media.TimeBaseQ)
		}
		if !hasStart && curTS != media.NoPTS {
			start, hasStart = curTS, true
		}
		if hasStart && !hasEnd && iv.EndIsOffset {
			end, hasEnd = start+iv.End, true
		}
		if iv.EndIsOffset && iv.DurationFrames {
			if frameCount >= iv.End {
				break
			}
		} else if hasEnd && curTS != media.NoPTS && curTS >= end {
			break
		}
		frameCount++

		if readPackets {
			if showPackets {
				s.showPacket(pkt)
			}
			ist.st.NbReadPackets++
		}
		if readFrames {
			packetNew := true
			for {
				more, err := s.processFrame(pkt.StreamIndex, pkt, &packetNew)
				if err != nil {
					decodeErr = err
					break
				}
				if !more {
					break
				}
			}
		}
	}

	if readFrames {
		for i := range s.streams {
			packetNew := true
			for {
				more, err := s.processFrame(i, nil, &packetNew)
				if err != nil || !more {
					break
				}
			}
			if dec := s.streams[i].dec; dec != nil {
				dec.Flush()
			}
		}
	}
	if decodeErr != nil {
		observability.WithError(s.log, decodeErr).Warn("Could not read packets in interval " + iv.String())
	}
	return nil
}

// processFrame feeds pkt to the stream's decoder once and receives at most
// one frame. It reports whether calling it again may yield more output.
func (s *Session) processFrame(idx int, pkt *media.Packet, packetNew *bool) (bool, error) {
	if idx >= len(s.streams) {
		return false, nil
	}
	ist := s.streams[idx]
	gotFrame := false

	switch {
	case ist.dec != nil:
		if *packetNew {
			err := ist.dec.SendPacket(pkt)
			switch {
			case errors.Is(err, media.ErrAgain):
			case err == nil || errors.Is(err, media.ErrEOF):
				*packetNew = false
			default:
				return false, err
			}
		}
		f := media.NewFrame()
		err := ist.dec.ReceiveFrame(f)
		switch {
		case err == nil:
			gotFrame = true
			ist.st.NbReadFrames++
			if s.sel.Active(section.Frames) {
				s.showFrame(f, ist.st)
			}
		case errors.Is(err, media.ErrAgain), errors.Is(err, media.ErrEOF):
		default:
			return false, err
		}
	case ist.subDec != nil && pkt != nil:
		*packetNew = false
		sub, err := ist.subDec.DecodeSubtitle(pkt)
		if err != nil {
			return false, err
		}
		if sub != nil {
			gotFrame = true
			ist.st.NbReadFrames++
			if s.sel.Active(section.Frames) {
				s.showSubtitle(sub)
			}
		}
	default:
		*packetNew = false
	}
	return gotFrame || *packetNew, nil
}
