package probe

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/autobrr/go-avprobe/internal/audio"
	"github.com/autobrr/go-avprobe/internal/codec"
	"github.com/autobrr/go-avprobe/internal/demux"
	"github.com/autobrr/go-avprobe/internal/media"
	"github.com/autobrr/go-avprobe/internal/pixdesc"
	"github.com/autobrr/go-avprobe/internal/section"
	"github.com/autobrr/go-avprobe/internal/sidedata"
	"github.com/autobrr/go-avprobe/internal/writer"
)

// container selects the section ids a stream is printed under.
type container int

const (
	inStreams container = iota
	inProgram
	inStreamGroup
)

var containerSections = [...]struct {
	stream, disposition, tags section.ID
}{
	inStreams:     {section.Stream, section.StreamDisposition, section.StreamTags},
	inProgram:     {section.ProgramStream, section.ProgramStreamDisposition, section.ProgramStreamTags},
	inStreamGroup: {section.StreamGroupStream, section.StreamGroupStreamDisposition, section.StreamGroupStreamTags},
}

func (s *Session) showTags(id section.ID, tags *media.Dict) error {
	if tags.Len() == 0 {
		return nil
	}
	s.w.Header(id, nil)
	defer s.w.Footer()
	for _, e := range tags.Entries() {
		if err := s.w.StrValidate(e.Key, e.Value); err != nil {
			return err
		}
	}
	return nil
}

func knownType(t media.Type) bool {
	return t >= media.TypeVideo && t <= media.TypeAttachment
}

func (s *Session) printType(key string, t media.Type) {
	if knownType(t) {
		s.w.Str(key, t.String())
	} else {
		s.w.StrOpt(key, "unknown")
	}
}

func (s *Session) showPacket(pkt *media.Packet) {
	w := s.w
	st := s.in.Format.Streams[pkt.StreamIndex]

	w.Header(section.Packet, nil)
	s.printType("codec_type", st.Codecpar.Type)
	w.Int("stream_index", int64(pkt.StreamIndex))
	w.TS("pts", pkt.PTS)
	w.Time("pts_time", pkt.PTS, st.TimeBase)
	w.TS("dts", pkt.DTS)
	w.Time("dts_time", pkt.DTS, st.TimeBase)
	w.DurationTS("duration", pkt.Duration)
	w.DurationTime("duration_time", pkt.Duration, st.TimeBase)
	w.Val("size", int64(len(pkt.Data)), writer.UnitByte)
	if pkt.Pos != -1 {
		w.Fmt("pos", "%d", pkt.Pos)
	} else {
		w.StrOpt("pos", "N/A")
	}
	w.Fmt("flags", "%c%c", flagChar(pkt.Flags&media.PacketKey != 0, 'K'), flagChar(pkt.Flags&media.PacketDiscard != 0, 'D'))

	if w.Active(section.PacketTags) {
		s.showTags(section.PacketTags, &pkt.Tags)
	}
	if len(pkt.SideData) > 0 {
		sidedata.PrintList(w, pkt.SideData, section.PacketSideDataList, section.PacketSideData, s.env(st))
	}
	if s.opts.ShowData {
		w.Data("data", pkt.Data)
	}
	w.DataHash("data_hash", pkt.Data)
	w.Footer()
}

func flagChar(set bool, c byte) byte {
	if set {
		return c
	}
	return '_'
}

func (s *Session) env(st *media.Stream) sidedata.Env {
	return sidedata.Env{
		Width:     st.Codecpar.Width,
		Height:    st.Codecpar.Height,
		FrameRate: st.AvgFrameRate,
		ShowData:  s.opts.ShowData,
	}
}

// checkRotation warns about display matrices that do not rotate by a
// multiple of 90 degrees.
func (s *Session) checkRotation(list []media.SideData) {
	sd := media.FindSideData(list, media.SideDataDisplayMatrix)
	if sd == nil {
		return
	}
	p, ok := sidedata.Decode(sd)
	if !ok {
		return
	}
	m, ok := p.(sidedata.DisplayMatrix)
	if !ok {
		return
	}
	if theta, odd := sidedata.DisplayRotation(m); odd {
		s.log.Warn(fmt.Sprintf("Odd rotation angle %.2f, the video may be displayed skewed", theta))
	}
}

func (s *Session) showSubtitle(sub *media.Subtitle) {
	w := s.w
	w.Header(section.Subtitle, nil)
	w.Str("media_type", "subtitle")
	w.TS("pts", sub.PTS)
	w.Time("pts_time", sub.PTS, media.TimeBaseQ)
	w.Int("format", int64(sub.Format))
	w.Int("start_display_time", int64(sub.StartDisplayTime))
	w.Int("end_display_time", int64(sub.EndDisplayTime))
	w.Int("num_rects", int64(sub.NumRects))
	w.Footer()
}

func guessSAR(par *media.CodecParameters, f *media.Frame) media.Rational {
	sar := par.SAR
	if f != nil {
		sar = f.SAR
	}
	if sar.Num <= 0 || sar.Den <= 0 {
		return media.Rational{Num: 0, Den: 1}
	}
	return sar.Reduce()
}

func (s *Session) showFrame(f *media.Frame, st *media.Stream) {
	w := s.w
	w.Header(section.Frame, nil)
	s.printType("media_type", f.MediaType)
	w.Int("stream_index", int64(st.Index))
	w.Int("key_frame", boolInt(f.KeyFrame))
	w.TS("pts", f.PTS)
	w.Time("pts_time", f.PTS, st.TimeBase)
	w.TS("pkt_dts", f.PktDTS)
	w.Time("pkt_dts_time", f.PktDTS, st.TimeBase)
	w.TS("best_effort_timestamp", f.BestEffortTS)
	w.Time("best_effort_timestamp_time", f.BestEffortTS, st.TimeBase)
	w.DurationTS("pkt_duration", f.Duration)
	w.DurationTime("pkt_duration_time", f.Duration, st.TimeBase)
	if f.PktPos != -1 {
		w.Fmt("pkt_pos", "%d", f.PktPos)
	} else {
		w.StrOpt("pkt_pos", "N/A")
	}
	if f.PktSize != -1 {
		w.Val("pkt_size", int64(f.PktSize), writer.UnitByte)
	} else {
		w.StrOpt("pkt_size", "N/A")
	}

	switch st.Codecpar.Type {
	case media.TypeVideo:
		w.Int("width", int64(f.Width))
		w.Int("height", int64(f.Height))
		s.printPixFmt(f.PixFmt)
		if sar := guessSAR(st.Codecpar, f); sar.Num != 0 {
			w.Rational("sample_aspect_ratio", sar, ':')
		} else {
			w.StrOpt("sample_aspect_ratio", "N/A")
		}
		w.Fmt("pict_type", "%c", f.PictType.Char())
		w.Int("interlaced_frame", boolInt(f.Interlaced))
		w.Int("top_field_first", boolInt(f.TopFieldFirst))
		w.Int("repeat_pict", int64(f.RepeatPict))
		s.printColorRange(f.ColorRange)
		s.printColorSpace(f.ColorSpace)
		s.printColorPrimaries(f.ColorPrims)
		s.printColorTransfer(f.ColorTransfer)
		s.printChromaLocation(f.ChromaLoc)
	case media.TypeAudio:
		s.printSampleFmt(f.SampleFmt)
		w.Int("nb_samples", int64(f.NbSamples))
		s.printLayout(f.Layout)
	}

	if w.Active(section.FrameTags) {
		s.showTags(section.FrameTags, &f.Tags)
	}
	if s.showLog > 0 {
		s.showLogs(section.FrameLogs, section.FrameLog)
	}
	if len(f.SideData) > 0 {
		s.checkRotation(f.SideData)
		sidedata.PrintFrameList(w, f.SideData, s.env(st))
	}
	w.Footer()
}

func (s *Session) showLogs(listID, itemID section.ID) {
	entries, ok := s.logs.Drain(s.showLog)
	if !ok {
		return
	}
	w := s.w
	w.Header(listID, nil)
	for _, e := range entries {
		w.Header(itemID, nil)
		w.Str("context", e.Context)
		w.Int("level", int64(e.Level))
		w.Int("category", int64(e.Category))
		if e.ParentContext != "" {
			w.Str("parent_context", e.ParentContext)
			w.Int("parent_category", int64(e.ParentCategory))
		} else {
			w.StrOpt("parent_context", "N/A")
			w.StrOpt("parent_category", "N/A")
		}
		w.Str("message", e.Message)
		w.Footer()
	}
	w.Footer()
}

func (s *Session) printPixFmt(f pixdesc.PixelFormat) {
	if name, ok := pixdesc.Name(f); ok {
		s.w.Str("pix_fmt", name)
	} else {
		s.w.StrOpt("pix_fmt", "unknown")
	}
}

func (s *Session) printSampleFmt(f audio.SampleFormat) {
	if f != audio.SampleFmtNone {
		s.w.Str("sample_fmt", f.String())
	} else {
		s.w.StrOpt("sample_fmt", "unknown")
	}
}

func (s *Session) printLayout(l audio.ChannelLayout) {
	s.w.Int("channels", int64(l.NbChannels))
	if l.Order != audio.OrderUnspec {
		s.w.Str("channel_layout", l.Describe())
	} else {
		s.w.StrOpt("channel_layout", "unknown")
	}
}

func (s *Session) printColor(key, name string, ok, unspecified bool, fallback string) {
	if !ok || unspecified {
		s.w.StrOpt(key, fallback)
		return
	}
	s.w.Str(key, name)
}

func (s *Session) printColorRange(v pixdesc.ColorRange) {
	name, ok := v.Name()
	s.printColor("color_range", name, ok, v == pixdesc.ColorRangeUnspecified, "unknown")
}

func (s *Session) printColorSpace(v pixdesc.ColorSpace) {
	name, ok := v.Name()
	s.printColor("color_space", name, ok, v == pixdesc.ColorSpaceUnspecified, "unknown")
}

func (s *Session) printColorPrimaries(v pixdesc.ColorPrimaries) {
	name, ok := v.Name()
	s.printColor("color_primaries", name, ok, v == pixdesc.ColorPrimariesUnspecified, "unknown")
}

func (s *Session) printColorTransfer(v pixdesc.ColorTransfer) {
	name, ok := v.Name()
	s.printColor("color_transfer", name, ok, v == pixdesc.ColorTransferUnspecified, "unknown")
}

func (s *Session) printChromaLocation(v pixdesc.ChromaLocation) {
	name, ok := v.Name()
	s.printColor("chroma_location", name, ok, v == pixdesc.ChromaLocUnspecified, "unspecified")
}

// fourcc renders a codec tag, escaping bytes that are not printable.
func fourcc(tag uint32) string {
	var b strings.Builder
	for i := 0; i < 4; i++ {
		c := byte(tag >> (8 * i))
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z',
			c == ' ', c == '.', c == '-', c == '_':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "[%d]", c)
		}
	}
	return b.String()
}

func (s *Session) showStream(idx int, where container) error {
	w := s.w
	ist := s.streams[idx]
	st := ist.st
	par := st.Codecpar
	ids := containerSections[where]
	bitexact := s.opts.Bitexact

	w.Header(ids.stream, nil)
	w.Int("index", int64(st.Index))

	if d := codec.Find(par.CodecName); d != nil {
		w.Str("codec_name", d.Name)
		if !bitexact {
			w.Str("codec_long_name", d.LongName)
		}
	} else {
		w.StrOpt("codec_name", "unknown")
		if !bitexact {
			w.StrOpt("codec_long_name", "unknown")
		}
	}
	if name, ok := codec.ProfileName(par.CodecName, par.Profile); ok && !bitexact {
		w.Str("profile", name)
	} else if par.Profile != media.ProfileUnknown {
		w.Fmt("profile", "%d", par.Profile)
	} else {
		w.StrOpt("profile", "unknown")
	}
	s.printType("codec_type", par.Type)
	w.Str("codec_tag_string", fourcc(par.CodecTag))
	w.Fmt("codec_tag", "0x%04x", par.CodecTag)

	switch par.Type {
	case media.TypeVideo:
		w.Int("width", int64(par.Width))
		w.Int("height", int64(par.Height))
		if ist.dec != nil {
			w.Int("coded_width", int64(par.CodedWidth))
			w.Int("coded_height", int64(par.CodedHeight))
			w.Int("closed_captions", boolInt(par.ClosedCaption))
			w.Int("film_grain", boolInt(par.FilmGrain))
		}
		w.Int("has_b_frames", int64(par.HasBFrames))
		if sar := guessSAR(par, nil); sar.Num != 0 {
			w.Rational("sample_aspect_ratio", sar, ':')
			dar := media.Rational{Num: par.Width * sar.Num, Den: par.Height * sar.Den}
			if dar.Den != 0 {
				dar = dar.Reduce()
			}
			w.Rational("display_aspect_ratio", dar, ':')
		} else {
			w.StrOpt("sample_aspect_ratio", "N/A")
			w.StrOpt("display_aspect_ratio", "N/A")
		}
		s.printPixFmt(par.PixFmt)
		w.Int("level", int64(par.Level))
		s.printColorRange(par.ColorRange)
		s.printColorSpace(par.ColorSpace)
		s.printColorTransfer(par.ColorTransfer)
		s.printColorPrimaries(par.ColorPrims)
		s.printChromaLocation(par.ChromaLoc)
		if par.FieldOrder != media.FieldUnknown {
			w.Str("field_order", par.FieldOrder.String())
		} else {
			w.StrOpt("field_order", "unknown")
		}
		if ist.dec != nil {
			w.Int("refs", int64(par.Refs))
		}
	case media.TypeAudio:
		s.printSampleFmt(par.SampleFmt)
		w.Val("sample_rate", int64(par.SampleRate), writer.UnitHertz)
		s.printLayout(par.Layout)
		w.Int("bits_per_sample", int64(par.BitsPerSample))
		w.Int("initial_padding", int64(par.InitialPad))
	case media.TypeSubtitle:
		if par.Width != 0 {
			w.Int("width", int64(par.Width))
		} else {
			w.StrOpt("width", "N/A")
		}
		if par.Height != 0 {
			w.Int("height", int64(par.Height))
		} else {
			w.StrOpt("height", "N/A")
		}
	}

	if s.in.Demuxer().ShowIDs {
		w.Fmt("id", "0x%x", st.ID)
	} else {
		w.StrOpt("id", "N/A")
	}
	w.Rational("r_frame_rate", st.RFrameRate, '/')
	w.Rational("avg_frame_rate", st.AvgFrameRate, '/')
	w.Rational("time_base", st.TimeBase, '/')
	w.TS("start_pts", st.StartTime)
	w.Time("start_time", st.StartTime, st.TimeBase)
	w.TS("duration_ts", st.Duration)
	w.Time("duration", st.Duration, st.TimeBase)
	if par.BitRate > 0 {
		w.Val("bit_rate", par.BitRate, writer.UnitBitPerSec)
	} else {
		w.StrOpt("bit_rate", "N/A")
	}
	w.StrOpt("max_bit_rate", "N/A")
	if par.BitsPerRawSample > 0 {
		w.Fmt("bits_per_raw_sample", "%d", par.BitsPerRawSample)
	} else {
		w.StrOpt("bits_per_raw_sample", "N/A")
	}
	optCount(w, "nb_frames", st.NbFrames)
	optCount(w, "nb_read_frames", st.NbReadFrames)
	optCount(w, "nb_read_packets", st.NbReadPackets)
	if s.opts.ShowData {
		w.Data("extradata", par.ExtraData)
	}
	if len(par.ExtraData) > 0 {
		w.Int("extradata_size", int64(len(par.ExtraData)))
		w.DataHash("extradata_hash", par.ExtraData)
	}

	if w.Active(ids.disposition) {
		s.printDispositions(st.Disposition, ids.disposition)
	}
	var err error
	if w.Active(ids.tags) {
		err = s.showTags(ids.tags, &st.Tags)
	}
	if err == nil && where == inStreams && len(st.SideData) > 0 {
		s.checkRotation(st.SideData)
		sidedata.PrintList(w, st.SideData, section.StreamSideDataList, section.StreamSideData, s.env(st))
	}
	w.Footer()
	return err
}

func optCount(w *writer.Context, key string, n int64) {
	if n != 0 {
		w.Fmt(key, "%d", n)
	} else {
		w.StrOpt(key, "N/A")
	}
}

func (s *Session) printDispositions(d media.Disposition, id section.ID) {
	s.w.Header(id, nil)
	for _, dn := range media.DispositionNames {
		s.w.Int(dn.Name, boolInt(d.Has(dn.Flag)))
	}
	s.w.Footer()
}

func (s *Session) showStreams() error {
	s.w.Header(section.Streams, nil)
	defer s.w.Footer()
	for i, ist := range s.streams {
		if !ist.selected {
			continue
		}
		if err := s.showStream(i, inStreams); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) showPrograms() error {
	s.w.Header(section.Programs, nil)
	defer s.w.Footer()
	for _, p := range s.in.Format.Programs {
		if err := s.showProgram(p); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) showProgram(p *media.Program) error {
	w := s.w
	w.Header(section.Program, nil)
	defer w.Footer()
	w.Int("program_id", int64(p.ID))
	w.Int("program_num", int64(p.ProgramNum))
	w.Int("nb_streams", int64(len(p.Streams)))
	w.Int("pmt_pid", int64(p.PMTPid))
	w.Int("pcr_pid", int64(p.PCRPid))
	if w.Active(section.ProgramTags) {
		if err := s.showTags(section.ProgramTags, &p.Tags); err != nil {
			return err
		}
	}

	w.Header(section.ProgramStreams, nil)
	defer w.Footer()
	for _, idx := range p.Streams {
		if idx >= len(s.streams) || !s.streams[idx].selected {
			continue
		}
		if err := s.showStream(idx, inProgram); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) showStreamGroups() error {
	s.w.Header(section.StreamGroups, nil)
	defer s.w.Footer()
	for _, g := range s.in.Format.StreamGroups {
		if err := s.showStreamGroup(g); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) showStreamGroup(g *media.StreamGroup) error {
	w := s.w
	w.Header(section.StreamGroup, nil)
	defer w.Footer()
	w.Int("index", int64(g.Index))
	if s.in.Demuxer().ShowIDs {
		w.Fmt("id", "0x%x", g.ID)
	} else {
		w.StrOpt("id", "N/A")
	}
	w.Int("nb_streams", int64(len(g.Streams)))
	if g.Type != media.GroupNone {
		w.Str("type", g.Type.String())
	} else {
		w.StrOpt("type", "unknown")
	}
	if w.Active(section.StreamGroupComponents) {
		s.printTileGrid(g)
	}
	if w.Active(section.StreamGroupDisposition) {
		s.printDispositions(g.Disposition, section.StreamGroupDisposition)
	}
	if w.Active(section.StreamGroupTags) {
		if err := s.showTags(section.StreamGroupTags, &g.Tags); err != nil {
			return err
		}
	}

	w.Header(section.StreamGroupStreams, nil)
	defer w.Footer()
	for _, idx := range g.Streams {
		if idx >= len(s.streams) || !s.streams[idx].selected {
			continue
		}
		if err := s.showStream(idx, inStreamGroup); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) printTileGrid(g *media.StreamGroup) {
	w := s.w
	w.Header(section.StreamGroupComponents, nil)
	defer w.Footer()
	tg := g.TileGrid
	if g.Type != media.GroupTileGrid || tg == nil {
		return
	}
	w.Header(section.StreamGroupComponent, tg)
	w.Int("nb_tiles", int64(len(tg.Tiles)))
	w.Int("coded_width", int64(tg.CodedWidth))
	w.Int("coded_height", int64(tg.CodedHeight))
	w.Int("horizontal_offset", int64(tg.HOffset))
	w.Int("vertical_offset", int64(tg.VOffset))
	w.Int("width", int64(tg.Width))
	w.Int("height", int64(tg.Height))
	w.Header(section.StreamGroupSubcomponents, nil)
	for _, t := range tg.Tiles {
		w.Header(section.StreamGroupSubcomponent, "tile_offset")
		w.Int("stream_index", int64(t.StreamIndex))
		w.Int("tile_horizontal_offset", int64(t.Horizontal))
		w.Int("tile_vertical_offset", int64(t.Vertical))
		w.Footer()
	}
	w.Footer()
	w.Footer()
}

func (s *Session) showChapters() error {
	w := s.w
	w.Header(section.Chapters, nil)
	defer w.Footer()
	for _, c := range s.in.Format.Chapters {
		w.Header(section.Chapter, nil)
		w.Int("id", c.ID)
		w.Rational("time_base", c.TimeBase, '/')
		w.Int("start", c.Start)
		w.Time("start_time", c.Start, c.TimeBase)
		w.Int("end", c.End)
		w.Time("end_time", c.End, c.TimeBase)
		var err error
		if w.Active(section.ChapterTags) {
			err = s.showTags(section.ChapterTags, &c.Tags)
		}
		w.Footer()
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) showFormat() error {
	w := s.w
	fc := s.in.Format
	w.Header(section.Format, nil)
	defer w.Footer()

	filename := fc.Filename
	if s.opts.PrintFilename != "" {
		filename = s.opts.PrintFilename
	}
	w.StrValidate("filename", filename)
	w.Int("nb_streams", int64(len(fc.Streams)))
	w.Int("nb_programs", int64(len(fc.Programs)))
	w.Int("nb_stream_groups", int64(len(fc.StreamGroups)))
	w.Str("format_name", fc.FormatName)
	if !s.opts.Bitexact {
		if fc.FormatLongName != "" {
			w.Str("format_long_name", fc.FormatLongName)
		} else {
			w.StrOpt("format_long_name", "unknown")
		}
	}
	w.Time("start_time", fc.StartTime, media.TimeBaseQ)
	w.Time("duration", fc.Duration, media.TimeBaseQ)
	if fc.Size >= 0 {
		w.Val("size", fc.Size, writer.UnitByte)
	} else {
		w.StrOpt("size", "N/A")
	}
	if fc.BitRate > 0 {
		w.Val("bit_rate", fc.BitRate, writer.UnitBitPerSec)
	} else {
		w.StrOpt("bit_rate", "N/A")
	}
	w.Int("probe_score", int64(fc.ProbeScore))
	if w.Active(section.FormatTags) {
		return s.showTags(section.FormatTags, &fc.Tags)
	}
	return nil
}

// Error codes reported in the error section, matching the negative errno
// and tag values other probing tools print.
const (
	codeNoEnt        = -2
	codeAccess       = -13
	codeInvalidArg   = -22
	codeEOF          = -541478725
	codeExit         = -1414092869
	codeInvalidData  = -1094995529
	codeDecoderNF    = -1128613112
	codeStreamNF     = -1381258232
	codeDemuxerNF    = -1296385272
	codeBug          = -558323010
	defaultErrString = "Invalid argument"
)

func errorCode(err error) (int, string) {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return codeNoEnt, "No such file or directory"
	case errors.Is(err, fs.ErrPermission):
		return codeAccess, "Permission denied"
	case errors.Is(err, media.ErrEOF):
		return codeEOF, "End of file"
	case errors.Is(err, media.ErrExit):
		return codeExit, "Immediate exit requested"
	case errors.Is(err, media.ErrInvalidData), errors.Is(err, writer.ErrInvalidString):
		return codeInvalidData, "Invalid data found when processing input"
	case errors.Is(err, codec.ErrDecoderNotFound):
		return codeDecoderNF, "Decoder not found"
	case errors.Is(err, media.ErrStreamNotFound):
		return codeStreamNF, "Stream not found"
	case errors.Is(err, demux.ErrUnknownFormat):
		return codeDemuxerNF, "Demuxer not found"
	case errors.Is(err, demux.ErrInvalidSpecifier), errors.Is(err, ErrUndefinedTimestamp):
		return codeInvalidArg, defaultErrString
	}
	return codeBug, err.Error()
}

func (s *Session) showError(err error) {
	code, msg := errorCode(err)
	s.w.Header(section.Error, nil)
	s.w.Int("code", int64(code))
	s.w.Str("string", msg)
	s.w.Footer()
}
