package codec

import (
	"bytes"
	"errors"
	"testing"

	"github.com/autobrr/go-avprobe/internal/audio"
	"github.com/autobrr/go-avprobe/internal/media"
	"github.com/autobrr/go-avprobe/internal/pixdesc"
)

// bitsToBytes packs a string of '0' and '1' into bytes, zero padded.
func bitsToBytes(bits string) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, c := range bits {
		if c == '1' {
			out[i/8] |= 1 << (7 - uint(i%8))
		}
	}
	return out
}

func annexB(nalus ...[]byte) []byte {
	var b []byte
	for _, n := range nalus {
		b = append(b, 0, 0, 0, 1)
		b = append(b, n...)
	}
	return b
}

// 320x240 constrained baseline, level 3.0, progressive.
var testSPS = append([]byte{0x67, 0x42, 0x40, 0x1e}, bitsToBytes(
	"1"+ // seq_parameter_set_id
		"1"+ // log2_max_frame_num_minus4
		"011"+ // pic_order_cnt_type 2
		"010"+ // max_num_ref_frames 1
		"0"+
		"000010100"+ // pic_width_in_mbs_minus1 19
		"0001111"+ // pic_height_in_map_units_minus1 14
		"1"+ // frame_mbs_only_flag
		"1"+
		"0"+
		"0"+ // no VUI
		"1")...)

var (
	// first_mb_in_slice 0, slice_type 7
	testIDR = []byte{0x65, 0x88, 0x80}
	// first_mb_in_slice 0, slice_type 5
	testPFrame = []byte{0x41, 0x9a}
)

func TestProfileNames(t *testing.T) {
	if name, ok := ProfileName("h264", 66|profileH264Constrained); !ok || name != "Constrained Baseline" {
		t.Fatalf("got %q, %v", name, ok)
	}
	if name, ok := ProfileName("aac", 1); !ok || name != "LC" {
		t.Fatalf("got %q, %v", name, ok)
	}
	if _, ok := ProfileName("pcm_s16le", 0); ok {
		t.Fatalf("pcm has no profiles")
	}
	if LongName("nope") != "unknown" || LongName("hevc") != "H.265 / HEVC (High Efficiency Video Coding)" {
		t.Fatalf("long names")
	}
}

func TestAnalyzeH264(t *testing.T) {
	st := media.NewStream(0, media.NewCodecParameters(media.TypeVideo, "h264"))
	if !Analyze(st, annexB(testSPS, testIDR)) {
		t.Fatalf("parameters incomplete after SPS")
	}
	par := st.Codecpar
	if par.Width != 320 || par.Height != 240 {
		t.Fatalf("size %dx%d", par.Width, par.Height)
	}
	if par.Profile != 66|profileH264Constrained || par.Level != 30 {
		t.Fatalf("profile %d level %d", par.Profile, par.Level)
	}
	if par.PixFmt != pixdesc.PixFmtYUV420P || par.FieldOrder != media.FieldProgressive || par.Refs != 1 {
		t.Fatalf("pix_fmt %v field order %v refs %d", par.PixFmt, par.FieldOrder, par.Refs)
	}
	if par.ChromaLoc != pixdesc.ChromaLocLeft {
		t.Fatalf("chroma location %v", par.ChromaLoc)
	}
}

func TestH264Decoder(t *testing.T) {
	st := media.NewStream(0, media.NewCodecParameters(media.TypeVideo, "h264"))
	dec, err := NewDecoder(st)
	if err != nil {
		t.Fatal(err)
	}
	pkts := [][]byte{annexB(testSPS, testIDR), annexB(testPFrame)}
	var frames []media.Frame
	for i, data := range pkts {
		pkt := media.NewPacket()
		pkt.PTS = int64(i) * 3000
		pkt.Data = data
		if err := dec.SendPacket(pkt); err != nil {
			t.Fatal(err)
		}
		var f media.Frame
		if err := dec.ReceiveFrame(&f); err != nil {
			t.Fatalf("packet %d: %v", i, err)
		}
		frames = append(frames, f)
		if err := dec.ReceiveFrame(&f); !errors.Is(err, media.ErrAgain) {
			t.Fatalf("expected ErrAgain, got %v", err)
		}
	}
	if !frames[0].KeyFrame || frames[0].PictType != media.PictureI || frames[0].Width != 320 {
		t.Fatalf("first frame %+v", frames[0])
	}
	if frames[1].KeyFrame || frames[1].PictType != media.PictureP || frames[1].PTS != 3000 {
		t.Fatalf("second frame %+v", frames[1])
	}
	if err := dec.SendPacket(nil); err != nil {
		t.Fatal(err)
	}
	var f media.Frame
	if err := dec.ReceiveFrame(&f); !errors.Is(err, media.ErrEOF) {
		t.Fatalf("expected ErrEOF, got %v", err)
	}
}

// adtsFrame builds an AAC LC 48 kHz stereo ADTS frame with a payload of n
// bytes.
func adtsFrame(n int) []byte {
	l := 7 + n
	h := []byte{
		0xff, 0xf1,
		1<<6 | 3<<2,
		2<<6 | byte(l>>11)&0x03,
		byte(l >> 3),
		byte(l&0x07)<<5 | 0x1f,
		0xfc,
	}
	return append(h, make([]byte, n)...)
}

func TestAACParser(t *testing.T) {
	par := media.NewCodecParameters(media.TypeAudio, "aac")
	st := media.NewStream(0, par)
	if !Analyze(st, adtsFrame(10)) {
		t.Fatalf("ADTS header not recognised")
	}
	if par.SampleRate != 48000 || par.Layout.NbChannels != 2 || par.Profile != 1 || par.FrameSize != 1024 {
		t.Fatalf("params %+v", par)
	}
	if par.SampleFmt != audio.SampleFmtFLTP {
		t.Fatalf("sample format %s", par.SampleFmt)
	}

	dec, err := NewDecoder(st)
	if err != nil {
		t.Fatal(err)
	}
	pkt := media.NewPacket()
	pkt.PTS = 90000
	pkt.Data = append(adtsFrame(10), adtsFrame(20)...)
	if err := dec.SendPacket(pkt); err != nil {
		t.Fatal(err)
	}
	var f media.Frame
	var pts []int64
	for dec.ReceiveFrame(&f) == nil {
		if f.NbSamples != 1024 {
			t.Fatalf("nb_samples %d", f.NbSamples)
		}
		pts = append(pts, f.PTS)
	}
	if len(pts) != 2 || pts[0] != 90000 || pts[1] != 90000+1920 {
		t.Fatalf("frame timestamps %v", pts)
	}
}

func TestAudioSpecificConfig(t *testing.T) {
	par := media.NewCodecParameters(media.TypeAudio, "aac")
	// AAC LC, 44100 Hz, mono
	par.ExtraData = []byte{0x12, 0x08}
	if !Analyze(media.NewStream(0, par), nil) {
		t.Fatalf("extradata not applied")
	}
	if par.SampleRate != 44100 || par.Layout.NbChannels != 1 || par.Profile != 1 {
		t.Fatalf("params %+v", par)
	}
}

func TestAC3Header(t *testing.T) {
	// 48 kHz, 128 kb/s, 3/2 with LFE
	frame := []byte{0x0b, 0x77, 0, 0, 0x10, 0x40, 0xe1}
	h, ok := parseAudioHeader("ac3", frame)
	if !ok {
		t.Fatalf("header rejected")
	}
	if h.sampleRate != 48000 || h.samples != 1536 || h.bitRate != 128000 || h.frameLen != 512 {
		t.Fatalf("header %+v", h)
	}
	if got := h.layout.Describe(); got != "5.1(side)" {
		t.Fatalf("layout %q", got)
	}
}

func TestMPEGAudioHeader(t *testing.T) {
	h, ok := parseAudioHeader("mp2", []byte{0xff, 0xfd, 0xc4, 0x00, 0, 0, 0})
	if !ok {
		t.Fatalf("header rejected")
	}
	if h.codec != "mp2" || h.samples != 1152 || h.sampleRate != 48000 || h.frameLen != 768 {
		t.Fatalf("header %+v", h)
	}
	h, ok = parseAudioHeader("mp2", []byte{0xff, 0xfb, 0x90, 0xc0, 0, 0, 0})
	if !ok || h.codec != "mp3" || h.layout.NbChannels != 1 || h.sampleRate != 44100 {
		t.Fatalf("layer 3 header %+v, %v", h, ok)
	}
}

func TestPCMRoundTrip(t *testing.T) {
	par := media.NewCodecParameters(media.TypeAudio, "pcm_s24le")
	par.SampleRate = 48000
	par.Layout = audio.DefaultLayout(2)
	st := media.NewStream(0, par)
	st.TimeBase = media.Rational{Num: 1, Den: 48000}
	dec, err := NewDecoder(st)
	if err != nil {
		t.Fatal(err)
	}
	raw := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	pkt := media.NewPacket()
	pkt.PTS = 0
	pkt.Data = raw
	if err := dec.SendPacket(pkt); err != nil {
		t.Fatal(err)
	}
	f := media.NewFrame()
	if err := dec.ReceiveFrame(f); err != nil {
		t.Fatal(err)
	}
	if f.NbSamples != 2 || f.SampleFmt != audio.SampleFmtS32 || f.Duration != 2 {
		t.Fatalf("frame %+v", f)
	}
	if !bytes.Equal(f.Data[0][:4], []byte{0, 1, 2, 3}) {
		t.Fatalf("first sample %v", f.Data[0][:4])
	}

	enc, err := NewPCMEncoder("pcm_s24le", 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := enc.SendFrame(f); err != nil {
		t.Fatal(err)
	}
	out := media.NewPacket()
	if err := enc.ReceivePacket(out); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out.Data, raw) || out.Duration != 2 {
		t.Fatalf("packet %v duration %d", out.Data, out.Duration)
	}
}

func TestDecoderFlushResumesAfterDrain(t *testing.T) {
	par := media.NewCodecParameters(media.TypeAudio, "pcm_s16le")
	par.SampleRate = 8000
	par.Layout = audio.DefaultLayout(1)
	st := media.NewStream(0, par)
	st.TimeBase = media.Rational{Num: 1, Den: 8000}
	dec, err := NewDecoder(st)
	if err != nil {
		t.Fatal(err)
	}
	pkt := media.NewPacket()
	pkt.PTS = 0
	pkt.Data = []byte{1, 0, 2, 0}
	if err := dec.SendPacket(pkt); err != nil {
		t.Fatal(err)
	}
	if err := dec.SendPacket(nil); err != nil {
		t.Fatal(err)
	}
	if err := dec.SendPacket(pkt); !errors.Is(err, media.ErrEOF) {
		t.Fatalf("send while draining: %v", err)
	}

	// a queued frame is discarded by Flush
	dec.Flush()
	f := media.NewFrame()
	if err := dec.ReceiveFrame(f); !errors.Is(err, media.ErrAgain) {
		t.Fatalf("receive after flush: %v", err)
	}
	pkt.PTS = 100
	if err := dec.SendPacket(pkt); err != nil {
		t.Fatalf("send after flush: %v", err)
	}
	if err := dec.ReceiveFrame(f); err != nil {
		t.Fatal(err)
	}
	if f.PTS != 100 || f.NbSamples != 2 {
		t.Fatalf("frame pts %d samples %d", f.PTS, f.NbSamples)
	}
}

func TestPCMEncoderFrameSize(t *testing.T) {
	enc, err := NewPCMEncoder("pcm_s16le", 1, 4)
	if err != nil {
		t.Fatal(err)
	}
	frame := func(n int) *media.Frame {
		f := media.NewFrame()
		f.SampleFmt = audio.SampleFmtS16
		f.NbSamples = n
		f.Data = [][]byte{make([]byte, n*2)}
		return f
	}
	if err := enc.SendFrame(frame(5)); !errors.Is(err, ErrFrameSize) {
		t.Fatalf("oversized frame: %v", err)
	}
	if err := enc.SendFrame(frame(3)); err != nil {
		t.Fatal(err)
	}
	if err := enc.SendFrame(frame(4)); !errors.Is(err, ErrFrameSize) {
		t.Fatalf("frame after a short one: %v", err)
	}
	if err := enc.SendFrame(nil); err != nil {
		t.Fatal(err)
	}
	pkt := media.NewPacket()
	if err := enc.ReceivePacket(pkt); err != nil || pkt.Duration != 3 {
		t.Fatalf("packet %v, %v", pkt.Duration, err)
	}
	if err := enc.ReceivePacket(pkt); !errors.Is(err, media.ErrEOF) {
		t.Fatalf("expected ErrEOF, got %v", err)
	}
}

func TestRateFromFPS(t *testing.T) {
	if r := rateFromFPS(29.97002997); r != (media.Rational{Num: 30000, Den: 1001}) {
		t.Fatalf("got %v", r)
	}
	if r := rateFromFPS(25); r != (media.Rational{Num: 25, Den: 1}) {
		t.Fatalf("got %v", r)
	}
}

func TestDVBSubtitleDecoder(t *testing.T) {
	st := media.NewStream(0, media.NewCodecParameters(media.TypeSubtitle, "dvb_subtitle"))
	dec, err := NewSubtitleDecoder(st)
	if err != nil {
		t.Fatalf("NewSubtitleDecoder: %v", err)
	}

	page := []byte{0x0f, dvbSegmentPage, 0x00, 0x01, 0x00, 0x0e,
		5, 0x04, // timeout, version/state
		0, 0, 0x00, 0x10, 0x00, 0x20, // region 0
		1, 0, 0x00, 0x10, 0x00, 0x40, // region 1
	}
	end := []byte{0x0f, dvbSegmentEndDisplay, 0x00, 0x01, 0x00, 0x00}

	pkt := media.NewPacket()
	pkt.PTS = 90000
	pkt.Data = append([]byte{0x20, 0x00}, page...)
	sub, err := dec.DecodeSubtitle(pkt)
	if err != nil || sub != nil {
		t.Fatalf("page only: sub %v, err %v", sub, err)
	}

	pkt.Data = append([]byte{0x20, 0x00}, append(end, 0xff)...)
	sub, err = dec.DecodeSubtitle(pkt)
	if err != nil || sub == nil {
		t.Fatalf("end of display: sub %v, err %v", sub, err)
	}
	if sub.PTS != 1000000 || sub.EndDisplayTime != 5000 || sub.NumRects != 2 {
		t.Fatalf("got %+v", *sub)
	}

	pkt.Data = []byte{0x20, 0x00, 0x01}
	if _, err := dec.DecodeSubtitle(pkt); !errors.Is(err, media.ErrInvalidData) {
		t.Fatalf("broken packet: %v", err)
	}
}
