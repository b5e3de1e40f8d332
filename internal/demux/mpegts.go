package demux

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/asticode/go-astits"
	"golang.org/x/text/encoding/charmap"

	"github.com/autobrr/go-avprobe/internal/codec"
	"github.com/autobrr/go-avprobe/internal/media"
)

const (
	tsPacketSize = 188

	// headerDataLimit bounds how much is demuxed while waiting for the
	// program tables.
	headerDataLimit = 2000
	maxParseErrors  = 100

	descriptorTagISO639      = 0x0a
	descriptorTagTeletextVBI = 0x46
	descriptorTagService     = 0x48
	descriptorTagTeletext    = 0x56
	descriptorTagSubtitling  = 0x59
	descriptorTagAC3         = 0x6a
	descriptorTagEAC3        = 0x7a
)

var tsExtensions = []string{"ts", "m2t", "mts"}

var mpegtsFormat = &Format{
	Name:       "mpegts",
	LongName:   "MPEG-TS (MPEG-2 Transport Stream)",
	Extensions: tsExtensions,
	ShowIDs:    true,
	Probe:      probeTS,
	Open: func(r io.ReadSeeker, _ string, _ Options) Demuxer {
		return newTSDemuxer(func() (io.Reader, error) {
			if _, err := r.Seek(0, io.SeekStart); err != nil {
				return nil, err
			}
			return r, nil
		}, r)
	},
}

func probeTS(buf []byte, filename string) int {
	run := 0
	for off := 0; off < len(buf) && buf[off] == 0x47; off += tsPacketSize {
		run++
	}
	available := (len(buf) + tsPacketSize - 1) / tsPacketSize
	switch {
	case run >= 10:
		return ScoreMax
	case run >= 3 && run == available:
		return ScoreMax/2 + run
	case matchExtension(filename, tsExtensions):
		return ScoreExtension
	}
	return 0
}

// tsClock undoes the 33 bit wrap of PES timestamps.
type tsClock struct {
	last   int64
	offset int64
	ok     bool
}

func (c *tsClock) unwrap(ts int64) int64 {
	if !c.ok {
		c.last, c.ok = ts, true
		return ts
	}
	if ts < c.last && c.last-ts > 1<<32 {
		c.offset += 1 << 33
	}
	c.last = ts
	return ts + c.offset
}

// ptsDelta is the distance between two 33 bit timestamps.
func ptsDelta(start, end int64) int64 {
	start &= 1<<33 - 1
	end &= 1<<33 - 1
	if end < start {
		end += 1 << 33
	}
	return end - start
}

type tsStream struct {
	st       *media.Stream
	pts, dts tsClock
}

type tsDemuxer struct {
	open func() (io.Reader, error)
	// seekable is the underlying file, used for the duration estimate.
	seekable io.ReadSeeker
	src      io.Reader

	ctx    context.Context
	cancel context.CancelFunc
	dmx    *astits.Demuxer

	fc *media.FormatContext
	// hidePrograms keeps the transport programs out of the format context
	// when an outer demuxer reports its own.
	hidePrograms bool
	streams      map[uint16]*tsStream
	programs     map[uint16]*media.Program
	pending      []*media.Packet

	skipBefore int64
}

func newTSDemuxer(open func() (io.Reader, error), seekable io.ReadSeeker) *tsDemuxer {
	return &tsDemuxer{
		open:       open,
		seekable:   seekable,
		streams:    make(map[uint16]*tsStream),
		programs:   make(map[uint16]*media.Program),
		skipBefore: media.NoPTS,
	}
}

func (d *tsDemuxer) start() error {
	if d.cancel != nil {
		d.cancel()
	}
	src, err := d.open()
	if err != nil {
		return err
	}
	d.src = src
	d.ctx, d.cancel = context.WithCancel(context.Background())
	d.dmx = astits.NewDemuxer(d.ctx, src, astits.DemuxerOptPacketSize(tsPacketSize))
	for _, ts := range d.streams {
		ts.pts, ts.dts = tsClock{}, tsClock{}
	}
	return nil
}

func (d *tsDemuxer) ReadHeader(fc *media.FormatContext) error {
	d.fc = fc
	if err := d.start(); err != nil {
		return err
	}
	for i := 0; i < headerDataLimit; i++ {
		if d.tablesComplete() {
			return nil
		}
		data, err := d.next()
		if errors.Is(err, media.ErrEOF) {
			break
		}
		if err != nil {
			return err
		}
		d.handle(data)
	}
	if len(fc.Streams) == 0 && len(d.pending) == 0 && len(d.programs) == 0 {
		return fmt.Errorf("%w: no program tables found", media.ErrInvalidData)
	}
	return nil
}

// tablesComplete reports whether every program announced in the PAT has
// had its PMT parsed.
func (d *tsDemuxer) tablesComplete() bool {
	if len(d.programs) == 0 {
		return false
	}
	for _, p := range d.programs {
		if p.PCRPid < 0 {
			return false
		}
	}
	return true
}

// next returns the next demuxed unit. Parse errors on single units are
// skipped.
func (d *tsDemuxer) next() (*astits.DemuxerData, error) {
	for errs := 0; ; errs++ {
		data, err := d.dmx.NextData()
		if err == nil {
			return data, nil
		}
		if s, ok := d.src.(interface{ Err() error }); ok && s.Err() != nil {
			return nil, s.Err()
		}
		if errors.Is(err, astits.ErrNoMorePackets) {
			return nil, media.ErrEOF
		}
		if errs >= maxParseErrors {
			return nil, err
		}
	}
}

func (d *tsDemuxer) handle(data *astits.DemuxerData) {
	switch {
	case data.PAT != nil:
		for _, p := range data.PAT.Programs {
			if p.ProgramNumber == 0 {
				continue
			}
			prog := d.program(p.ProgramNumber)
			prog.PMTPid = int(p.ProgramMapID)
		}
	case data.PMT != nil:
		prog := d.program(data.PMT.ProgramNumber)
		prog.PCRPid = int(data.PMT.PCRPID)
		for _, es := range data.PMT.ElementaryStreams {
			ts := d.stream(es)
			if ts == nil {
				continue
			}
			if !containsInt(prog.Streams, ts.st.Index) {
				prog.Streams = append(prog.Streams, ts.st.Index)
			}
		}
	case data.SDT != nil:
		for _, svc := range data.SDT.Services {
			prog, ok := d.programs[svc.ServiceID]
			if !ok {
				continue
			}
			for _, desc := range svc.Descriptors {
				if desc.Tag != descriptorTagService || desc.Service == nil {
					continue
				}
				prog.Tags.Set("service_name", dvbString(desc.Service.Name))
				prog.Tags.Set("service_provider", dvbString(desc.Service.Provider))
			}
		}
	case data.PES != nil:
		if pkt := d.packet(data); pkt != nil {
			d.pending = append(d.pending, pkt)
		}
	}
}

func (d *tsDemuxer) program(number uint16) *media.Program {
	if p, ok := d.programs[number]; ok {
		return p
	}
	p := &media.Program{
		ID:         int(number),
		ProgramNum: int(number),
		PMTPid:     -1,
		PCRPid:     -1,
		StartTime:  media.NoPTS,
		EndTime:    media.NoPTS,
	}
	d.programs[number] = p
	if !d.hidePrograms {
		d.fc.Programs = append(d.fc.Programs, p)
	}
	return p
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// stream returns the stream for an elementary stream entry, creating it on
// first sight.
func (d *tsDemuxer) stream(es *astits.PMTElementaryStream) *tsStream {
	if ts, ok := d.streams[es.ElementaryPID]; ok {
		return ts
	}
	streamType := uint8(es.StreamType)
	typ, name := mapStreamType(streamType, es.ElementaryStreamDescriptors)
	if typ == media.TypeUnknown {
		return nil
	}
	par := media.NewCodecParameters(typ, name)
	par.CodecTag = uint32(streamType)
	st := d.fc.AddStream(par)
	st.ID = int(es.ElementaryPID)
	st.TimeBase = media.Rational{Num: 1, Den: 90000}
	for _, desc := range es.ElementaryStreamDescriptors {
		if desc.Tag != descriptorTagISO639 || desc.ISO639LanguageAndAudioType == nil {
			continue
		}
		st.Tags.Set("language", string(desc.ISO639LanguageAndAudioType.Language))
		switch desc.ISO639LanguageAndAudioType.Type {
		case 1:
			st.Disposition |= media.DispositionCleanEffects
		case 2:
			st.Disposition |= media.DispositionHearingImpaired
		case 3:
			st.Disposition |= media.DispositionVisualImpaired
		}
	}
	ts := &tsStream{st: st}
	d.streams[es.ElementaryPID] = ts
	return ts
}

func mapStreamType(streamType uint8, descs []*astits.Descriptor) (media.Type, string) {
	switch streamType {
	case 0x01, 0x02:
		return media.TypeVideo, "mpeg2video"
	case 0x03, 0x04:
		return media.TypeAudio, "mp3"
	case 0x0f:
		return media.TypeAudio, "aac"
	case 0x10:
		return media.TypeVideo, "mpeg4"
	case 0x11:
		return media.TypeAudio, "aac_latm"
	case 0x15:
		return media.TypeData, "timed_id3"
	case 0x1b:
		return media.TypeVideo, "h264"
	case 0x24:
		return media.TypeVideo, "hevc"
	case 0x81:
		return media.TypeAudio, "ac3"
	case 0x86:
		return media.TypeData, "scte_35"
	case 0x87:
		return media.TypeAudio, "eac3"
	case 0xea:
		return media.TypeVideo, "vc1"
	case 0x06:
		for _, desc := range descs {
			switch desc.Tag {
			case descriptorTagAC3:
				return media.TypeAudio, "ac3"
			case descriptorTagEAC3:
				return media.TypeAudio, "eac3"
			case descriptorTagTeletext, descriptorTagTeletextVBI:
				return media.TypeSubtitle, "dvb_teletext"
			case descriptorTagSubtitling:
				return media.TypeSubtitle, "dvb_subtitle"
			}
		}
		return media.TypeData, "bin_data"
	}
	return media.TypeUnknown, ""
}

// dvbString decodes a DVB text field, honoring the character table
// selector of EN 300 468 annex A.
func dvbString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	table := charmap.ISO8859_1
	switch c := b[0]; {
	case c >= 0x20:
	case c == 0x15:
		return string(b[1:])
	case c >= 0x01 && c <= 0x0b:
		tables := map[byte]*charmap.Charmap{
			0x01: charmap.ISO8859_5, 0x02: charmap.ISO8859_6, 0x03: charmap.ISO8859_7,
			0x04: charmap.ISO8859_8, 0x05: charmap.ISO8859_9, 0x06: charmap.ISO8859_10,
			0x07: charmap.Windows874, 0x09: charmap.ISO8859_13, 0x0a: charmap.ISO8859_14,
			0x0b: charmap.ISO8859_15,
		}
		if t, ok := tables[c]; ok {
			table = t
		}
		b = b[1:]
	case c == 0x10 && len(b) >= 3:
		tables := map[byte]*charmap.Charmap{
			1: charmap.ISO8859_1, 2: charmap.ISO8859_2, 3: charmap.ISO8859_3, 4: charmap.ISO8859_4,
			5: charmap.ISO8859_5, 6: charmap.ISO8859_6, 7: charmap.ISO8859_7, 8: charmap.ISO8859_8,
			9: charmap.ISO8859_9, 10: charmap.ISO8859_10, 13: charmap.ISO8859_13,
			14: charmap.ISO8859_14, 15: charmap.ISO8859_15, 16: charmap.ISO8859_16,
		}
		if t, ok := tables[b[2]]; ok {
			table = t
		}
		b = b[3:]
	default:
		b = b[1:]
	}
	out, err := table.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}

func (d *tsDemuxer) packet(data *astits.DemuxerData) *media.Packet {
	ts, ok := d.streams[data.PID]
	if !ok || data.PES == nil {
		return nil
	}
	pkt := media.NewPacket()
	pkt.StreamIndex = ts.st.Index
	pkt.Data = data.PES.Data
	if h := data.PES.Header; h != nil && h.OptionalHeader != nil {
		if h.OptionalHeader.PTS != nil {
			pkt.PTS = ts.pts.unwrap(h.OptionalHeader.PTS.Base)
		}
		if h.OptionalHeader.DTS != nil {
			pkt.DTS = ts.dts.unwrap(h.OptionalHeader.DTS.Base)
		} else {
			pkt.DTS = pkt.PTS
		}
	}
	if d.skipBefore != media.NoPTS {
		t := pkt.PTS
		if t == media.NoPTS {
			t = pkt.DTS
		}
		if t != media.NoPTS && media.Rescale(t, ts.st.TimeBase, media.TimeBaseQ) < d.skipBefore {
			return nil
		}
	}
	return pkt
}

func (d *tsDemuxer) ReadPacket(pkt *media.Packet) error {
	for len(d.pending) == 0 {
		data, err := d.next()
		if err != nil {
			return err
		}
		d.handle(data)
	}
	*pkt = *d.pending[0]
	d.pending[0] = nil
	d.pending = d.pending[1:]
	return nil
}

// Seek restarts demuxing from the beginning and drops packets before ts.
func (d *tsDemuxer) Seek(ts int64) error {
	d.pending = nil
	if err := d.start(); err != nil {
		return fmt.Errorf("%w: %v", ErrSeek, err)
	}
	d.skipBefore = ts
	return nil
}

// EstimateDurations reads the last PES timestamps near the end of the file
// and derives each stream's duration from them.
func (d *tsDemuxer) EstimateDurations(fc *media.FormatContext) error {
	ra, ok := d.seekable.(io.ReaderAt)
	if !ok || fc.Size <= 0 {
		return nil
	}
	off := fc.Size - durationProbeBytes
	if off < 0 {
		off = 0
	}
	off -= off % tsPacketSize
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	dmx := astits.NewDemuxer(ctx, io.NewSectionReader(ra, off, fc.Size-off), astits.DemuxerOptPacketSize(tsPacketSize))

	type end struct {
		pts      int64
		duration int64
	}
	last := make(map[uint16]end)
	for errs := 0; errs < maxParseErrors; {
		data, err := dmx.NextData()
		if errors.Is(err, astits.ErrNoMorePackets) {
			break
		}
		if err != nil {
			errs++
			continue
		}
		ts, ok := d.streams[data.PID]
		if !ok || data.PES == nil || data.PES.Header == nil || data.PES.Header.OptionalHeader == nil {
			continue
		}
		oh := data.PES.Header.OptionalHeader
		if oh.PTS == nil {
			continue
		}
		probe := media.NewPacket()
		probe.Data = data.PES.Data
		codec.ParsePacket(ts.st, probe)
		if prev, ok := last[data.PID]; !ok || ptsDelta(prev.pts, oh.PTS.Base) < 1<<32 {
			last[data.PID] = end{pts: oh.PTS.Base, duration: probe.Duration}
		}
	}

	for pid, e := range last {
		st := d.streams[pid].st
		if st.StartTime == media.NoPTS || st.Duration != media.NoPTS {
			continue
		}
		st.Duration = ptsDelta(st.StartTime, e.pts) + e.duration
	}
	return nil
}

func (d *tsDemuxer) Close() error {
	if d.cancel != nil {
		d.cancel()
	}
	if c, ok := d.src.(io.Closer); ok && d.src != io.Reader(d.seekable) {
		return c.Close()
	}
	return nil
}
