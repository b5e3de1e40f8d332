package demux

import (
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/autobrr/go-avprobe/internal/audio"
	"github.com/autobrr/go-avprobe/internal/media"
)

// wavBytes builds a 16-bit PCM WAV file with a LIST/INFO title.
func wavBytes(rate, channels, samples int, title string) []byte {
	blockAlign := channels * 2
	le16 := func(v int) []byte { return binary.LittleEndian.AppendUint16(nil, uint16(v)) }
	le32 := func(v int) []byte { return binary.LittleEndian.AppendUint32(nil, uint32(v)) }

	var fmtChunk []byte
	fmtChunk = append(fmtChunk, le16(wavFormatPCM)...)
	fmtChunk = append(fmtChunk, le16(channels)...)
	fmtChunk = append(fmtChunk, le32(rate)...)
	fmtChunk = append(fmtChunk, le32(rate*blockAlign)...)
	fmtChunk = append(fmtChunk, le16(blockAlign)...)
	fmtChunk = append(fmtChunk, le16(16)...)

	name := append([]byte(title), 0)
	info := append([]byte("INFO"), "INAM"...)
	info = append(info, le32(len(name))...)
	info = append(info, name...)
	if len(name)%2 == 1 {
		info = append(info, 0)
	}

	data := make([]byte, samples*blockAlign)
	for i := range data {
		data[i] = byte(i)
	}

	var body []byte
	body = append(body, "WAVE"...)
	body = append(body, "fmt "...)
	body = append(body, le32(len(fmtChunk))...)
	body = append(body, fmtChunk...)
	body = append(body, "LIST"...)
	body = append(body, le32(len(info))...)
	body = append(body, info...)
	body = append(body, "data"...)
	body = append(body, le32(len(data))...)
	body = append(body, data...)

	out := append([]byte("RIFF"), le32(len(body))...)
	return append(out, body...)
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readAll(t *testing.T, in *Input) []*media.Packet {
	t.Helper()
	var pkts []*media.Packet
	for {
		pkt := media.NewPacket()
		err := in.ReadPacket(pkt)
		if errors.Is(err, media.ErrEOF) {
			return pkts
		}
		if err != nil {
			t.Fatalf("read packet: %v", err)
		}
		pkts = append(pkts, pkt)
	}
}

func TestProbe(t *testing.T) {
	tests := []struct {
		name     string
		buf      []byte
		filename string
		format   string
		score    int
	}{
		{"wav", wavBytes(8000, 1, 10, "x"), "a.bin", "wav", ScoreMax - 1},
		{"hls", []byte("#EXTM3U\n#EXT-X-TARGETDURATION:4\n"), "list.txt", "hls", ScoreMax},
		{"ts extension", []byte("garbage"), "clip.ts", "mpegts", ScoreExtension},
		{"m3u8 extension", []byte("#EXTM3U\n"), "list.m3u8", "hls", ScoreExtension},
		{"unknown", []byte("garbage"), "clip.bin", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, score := Probe(tt.buf, tt.filename)
			name := ""
			if f != nil {
				name = f.Name
			}
			if name != tt.format || score != tt.score {
				t.Fatalf("got %q/%d, want %q/%d", name, score, tt.format, tt.score)
			}
		})
	}
}

func TestExtensionsProbeToTheirFormat(t *testing.T) {
	for _, f := range Formats() {
		if f.Name == "wav" {
			continue
		}
		for _, ext := range f.Extensions {
			got, score := Probe([]byte("garbage"), "clip."+ext)
			if got != f || score != ScoreExtension {
				t.Fatalf("%s: extension %s probed as %v/%d", f.Name, ext, got, score)
			}
		}
	}
}

func TestOpenWAV(t *testing.T) {
	path := writeFile(t, "tone.wav", wavBytes(48000, 2, 3000, "Tone"))
	in, err := Open(context.Background(), path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()

	fc := in.Format
	if fc.FormatName != "wav" || fc.ProbeScore != ScoreMax-1 || len(fc.Streams) != 1 {
		t.Fatalf("format %s score %d streams %d", fc.FormatName, fc.ProbeScore, len(fc.Streams))
	}
	if title, _ := fc.Tags.Get("title"); title != "Tone" {
		t.Fatalf("title %q", title)
	}
	st := fc.Streams[0]
	par := st.Codecpar
	if par.CodecName != "pcm_s16le" || par.SampleRate != 48000 || par.Layout.NbChannels != 2 {
		t.Fatalf("codec %s rate %d channels %d", par.CodecName, par.SampleRate, par.Layout.NbChannels)
	}
	if st.Duration != 3000 || st.StartTime != 0 || fc.Duration != 62500 || fc.BitRate != 1536000 {
		t.Fatalf("duration %d start %d format duration %d bit rate %d", st.Duration, st.StartTime, fc.Duration, fc.BitRate)
	}

	pkts := readAll(t, in)
	if len(pkts) != 3 {
		t.Fatalf("got %d packets", len(pkts))
	}
	wantPTS := []int64{0, 1024, 2048}
	wantDur := []int64{1024, 1024, 952}
	for i, p := range pkts {
		if p.PTS != wantPTS[i] || p.Duration != wantDur[i] || !p.Key() {
			t.Fatalf("packet %d: pts %d duration %d", i, p.PTS, p.Duration)
		}
	}

	// 20ms at 48kHz
	if err := in.Seek(20000); err != nil {
		t.Fatal(err)
	}
	pkt := media.NewPacket()
	if err := in.ReadPacket(pkt); err != nil || pkt.PTS != 960 {
		t.Fatalf("after seek: pts %d, %v", pkt.PTS, err)
	}
}

func TestOpenForcedFormat(t *testing.T) {
	path := writeFile(t, "tone.wav", wavBytes(8000, 1, 100, "x"))
	if _, err := Open(context.Background(), path, Options{Format: "nope"}); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	in, err := Open(context.Background(), path, Options{Format: "wav"})
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()
	if in.Format.ProbeScore != ScoreMax {
		t.Fatalf("forced probe score %d", in.Format.ProbeScore)
	}
}

func TestOpenInvalid(t *testing.T) {
	path := writeFile(t, "noise.bin", []byte("this is not media"))
	if _, err := Open(context.Background(), path, Options{}); !errors.Is(err, media.ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData, got %v", err)
	}
}

func specifierFixture() *media.FormatContext {
	fc := media.NewFormatContext("x")
	v := fc.AddStream(media.NewCodecParameters(media.TypeVideo, "h264"))
	v.ID = 0x100
	a1 := fc.AddStream(media.NewCodecParameters(media.TypeAudio, "aac"))
	a1.ID = 0x101
	a1.Tags.Set("language", "eng")
	a2 := fc.AddStream(media.NewCodecParameters(media.TypeAudio, "ac3"))
	a2.ID = 0x102
	a2.Tags.Set("language", "deu")
	fc.Programs = append(fc.Programs, &media.Program{ID: 1, Streams: []int{1, 2}})
	return fc
}

func TestStreamSpecifier(t *testing.T) {
	fc := specifierFixture()
	tests := []struct {
		spec string
		want []int
	}{
		{"", []int{0, 1, 2}},
		{"v", []int{0}},
		{"a", []int{1, 2}},
		{"a:1", []int{2}},
		{"1", []int{1}},
		{"p:1", []int{1, 2}},
		{"p:1:0", []int{1}},
		{"p:1:a:1", []int{2}},
		{"#0x101", []int{1}},
		{"i:258", []int{2}},
		{"m:language", []int{1, 2}},
		{"m:language:deu", []int{2}},
		{"s", nil},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			s, err := ParseStreamSpecifier(tt.spec)
			if err != nil {
				t.Fatal(err)
			}
			var got []int
			for _, st := range fc.Streams {
				if s.Match(fc, st) {
					got = append(got, st.Index)
				}
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestStreamSpecifierUsable(t *testing.T) {
	fc := specifierFixture()
	par := fc.Streams[1].Codecpar
	par.SampleRate = 48000
	par.Layout.NbChannels = 2
	par.SampleFmt = audio.SampleFmtFLTP
	s, err := ParseStreamSpecifier("u")
	if err != nil {
		t.Fatal(err)
	}
	if s.Match(fc, fc.Streams[0]) || !s.Match(fc, fc.Streams[1]) {
		t.Fatalf("only the complete audio stream is usable")
	}
}

func TestStreamSpecifierInvalid(t *testing.T) {
	for _, spec := range []string{"x", "a:b", "v:a", "p:", "m:", "1:a", "#zz"} {
		if _, err := ParseStreamSpecifier(spec); !errors.Is(err, ErrInvalidSpecifier) {
			t.Fatalf("%q: expected ErrInvalidSpecifier, got %v", spec, err)
		}
	}
}
