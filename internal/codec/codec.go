// Package codec names codecs and their profiles and provides parser level
// decoders. The decoders do not reconstruct pictures or samples, except for
// PCM; they derive frame metadata such as geometry, key frames, picture
// types, sample counts and side data from the bitstream headers.
package codec

import (
	"errors"
	"fmt"

	"github.com/autobrr/go-avprobe/internal/media"
)

var ErrDecoderNotFound = errors.New("decoder not found")

type Profile struct {
	ID   int
	Name string
}

type Descriptor struct {
	Name     string
	LongName string
	Type     media.Type
	Profiles []Profile
}

const (
	profileH264Constrained = 1 << 9
	profileH264Intra       = 1 << 11
)

var descriptors = []Descriptor{
	{"h264", "H.264 / AVC / MPEG-4 AVC / MPEG-4 part 10", media.TypeVideo, []Profile{
		{66, "Baseline"},
		{66 | profileH264Constrained, "Constrained Baseline"},
		{77, "Main"},
		{88, "Extended"},
		{100, "High"},
		{110, "High 10"},
		{110 | profileH264Intra, "High 10 Intra"},
		{118, "Multiview High"},
		{122, "High 4:2:2"},
		{122 | profileH264Intra, "High 4:2:2 Intra"},
		{128, "Stereo High"},
		{144, "High 4:4:4"},
		{244, "High 4:4:4 Predictive"},
		{244 | profileH264Intra, "High 4:4:4 Intra"},
		{44, "CAVLC 4:4:4"},
	}},
	{"hevc", "H.265 / HEVC (High Efficiency Video Coding)", media.TypeVideo, []Profile{
		{1, "Main"},
		{2, "Main 10"},
		{3, "Main Still Picture"},
		{4, "Rext"},
		{9, "SCC"},
	}},
	{"mpeg2video", "MPEG-2 video", media.TypeVideo, []Profile{
		{0, "422"},
		{1, "High"},
		{2, "Spatially Scalable"},
		{3, "SNR Scalable"},
		{4, "Main"},
		{5, "Simple"},
	}},
	{"mpeg1video", "MPEG-1 video", media.TypeVideo, nil},
	{"mpeg4", "MPEG-4 part 2", media.TypeVideo, nil},
	{"vc1", "SMPTE VC-1", media.TypeVideo, nil},
	{"rawvideo", "raw video", media.TypeVideo, nil},
	{"aac", "AAC (Advanced Audio Coding)", media.TypeAudio, []Profile{
		{0, "Main"},
		{1, "LC"},
		{2, "SSR"},
		{3, "LTP"},
		{4, "HE-AAC"},
		{28, "HE-AACv2"},
		{22, "LD"},
		{38, "ELD"},
	}},
	{"aac_latm", "AAC LATM (Advanced Audio Coding LATM syntax)", media.TypeAudio, nil},
	{"mp2", "MP2 (MPEG audio layer 2)", media.TypeAudio, nil},
	{"mp3", "MP3 (MPEG audio layer 3)", media.TypeAudio, nil},
	{"ac3", "ATSC A/52A (AC-3)", media.TypeAudio, nil},
	{"eac3", "ATSC A/52B (AC-3, E-AC-3)", media.TypeAudio, nil},
	{"pcm_u8", "PCM unsigned 8-bit", media.TypeAudio, nil},
	{"pcm_s16le", "PCM signed 16-bit little-endian", media.TypeAudio, nil},
	{"pcm_s24le", "PCM signed 24-bit little-endian", media.TypeAudio, nil},
	{"pcm_s32le", "PCM signed 32-bit little-endian", media.TypeAudio, nil},
	{"pcm_f32le", "PCM 32-bit floating point little-endian", media.TypeAudio, nil},
	{"pcm_f64le", "PCM 64-bit floating point little-endian", media.TypeAudio, nil},
	{"dvb_subtitle", "DVB subtitles", media.TypeSubtitle, nil},
	{"dvb_teletext", "DVB teletext", media.TypeSubtitle, nil},
	{"webvtt", "WebVTT subtitle", media.TypeSubtitle, nil},
	{"scte_35", "SCTE 35 Message Queue", media.TypeData, nil},
	{"timed_id3", "timed ID3 metadata", media.TypeData, nil},
	{"bin_data", "binary data", media.TypeData, nil},
}

// Find returns the descriptor for a codec name, or nil.
func Find(name string) *Descriptor {
	for i := range descriptors {
		if descriptors[i].Name == name {
			return &descriptors[i]
		}
	}
	return nil
}

// LongName returns the descriptive codec name, or "unknown".
func LongName(name string) string {
	if d := Find(name); d != nil {
		return d.LongName
	}
	return "unknown"
}

// ProfileName returns the profile name for a codec and profile id. The
// boolean is false when the codec has no such profile.
func ProfileName(name string, profile int) (string, bool) {
	d := Find(name)
	if d == nil {
		return "", false
	}
	for _, p := range d.Profiles {
		if p.ID == profile {
			return p.Name, true
		}
	}
	return "", false
}

// Decoder turns packets into frames. SendPacket with a nil packet enters
// draining mode; ReceiveFrame then returns the remaining frames followed
// by media.ErrEOF. media.ErrAgain means more input is needed. Flush
// discards queued frames and leaves draining mode so decoding can resume
// after a seek.
type Decoder interface {
	SendPacket(pkt *media.Packet) error
	ReceiveFrame(f *media.Frame) error
	Flush()
}

// NewDecoder opens a decoder for the stream's codec. Parameters learned
// while decoding are written back into the stream's codec parameters.
func NewDecoder(st *media.Stream) (Decoder, error) {
	par := st.Codecpar
	switch par.CodecName {
	case "h264":
		return &h264Decoder{state: newH264State(par)}, nil
	case "hevc":
		return &hevcDecoder{state: newHEVCState(par)}, nil
	case "aac", "mp2", "mp3", "ac3", "eac3":
		return &audioParserDecoder{par: par, tb: st.TimeBase}, nil
	}
	if f, ok := pcmFormats[par.CodecName]; ok {
		return newPCMDecoder(par, f, st.TimeBase)
	}
	return nil, fmt.Errorf("%w: %s", ErrDecoderNotFound, par.CodecName)
}

// frameQueue holds parsed frames until they are received.
type frameQueue struct {
	frames   []*media.Frame
	draining bool
}

func (q *frameQueue) push(f *media.Frame) { q.frames = append(q.frames, f) }

func (q *frameQueue) drain() { q.draining = true }

func (q *frameQueue) Flush() {
	clear(q.frames)
	q.frames = q.frames[:0]
	q.draining = false
}

func (q *frameQueue) accept(pkt *media.Packet) (bool, error) {
	if q.draining {
		return false, media.ErrEOF
	}
	if pkt == nil {
		q.drain()
		return false, nil
	}
	return true, nil
}

func (q *frameQueue) ReceiveFrame(f *media.Frame) error {
	if len(q.frames) == 0 {
		if q.draining {
			return media.ErrEOF
		}
		return media.ErrAgain
	}
	*f = *q.frames[0]
	q.frames[0] = nil
	q.frames = q.frames[1:]
	return nil
}

// packetFrame returns a frame carrying the packet's timing.
func packetFrame(t media.Type, pkt *media.Packet) *media.Frame {
	f := media.NewFrame()
	f.MediaType = t
	f.StreamIndex = pkt.StreamIndex
	f.PTS = pkt.PTS
	f.PktDTS = pkt.DTS
	f.Duration = pkt.Duration
	f.PktPos = pkt.Pos
	f.PktSize = len(pkt.Data)
	f.BestEffortTS = pkt.PTS
	if f.BestEffortTS == media.NoPTS {
		f.BestEffortTS = pkt.DTS
	}
	return f
}

// Analyze fills the stream's codec parameters from one packet of
// bitstream data, the way a stream info probe would. It reports whether
// the parameters are complete afterwards.
func Analyze(st *media.Stream, data []byte) bool {
	par := st.Codecpar
	switch par.CodecName {
	case "h264":
		s := newH264State(par)
		s.scan(data)
		if s.fps > 0 && st.RFrameRate.IsZero() {
			st.RFrameRate = rateFromFPS(s.fps)
		}
		return par.Width > 0
	case "hevc":
		s := newHEVCState(par)
		s.scan(data)
		if s.fps > 0 && st.RFrameRate.IsZero() {
			st.RFrameRate = rateFromFPS(s.fps)
		}
		return par.Width > 0
	case "aac", "mp2", "mp3", "ac3", "eac3":
		if len(data) == 0 && par.CodecName == "aac" && len(par.ExtraData) > 0 {
			return applyAudioSpecificConfig(par, par.ExtraData)
		}
		h, ok := parseAudioHeader(par.CodecName, data)
		if !ok {
			return par.SampleRate > 0
		}
		h.apply(par)
		return true
	}
	if _, ok := pcmFormats[par.CodecName]; ok {
		return par.SampleRate > 0
	}
	return true
}

// rateFromFPS maps a float frame rate onto the usual NTSC or integer
// rational.
func rateFromFPS(fps float64) media.Rational {
	for _, n := range []int{24, 30, 48, 60, 120} {
		ntsc := float64(n) * 1000 / 1001
		if fps > ntsc-0.001 && fps < ntsc+0.001 {
			return media.Rational{Num: n * 1000, Den: 1001}
		}
	}
	r := media.Rational{Num: int(fps*1000 + 0.5), Den: 1000}
	return r.Reduce()
}
