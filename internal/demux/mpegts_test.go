package demux

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/autobrr/go-avprobe/internal/media"
)

func crc32MPEG(b []byte) uint32 {
	crc := uint32(0xffffffff)
	for _, v := range b {
		crc ^= uint32(v) << 24
		for i := 0; i < 8; i++ {
			if crc&0x80000000 != 0 {
				crc = crc<<1 ^ 0x04c11db7
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// psiSection wraps a table body with the long section header and CRC.
func psiSection(tableID byte, idExt uint16, body []byte) []byte {
	length := 5 + len(body) + 4
	s := []byte{tableID, 0xb0 | byte(length>>8)&0x0f, byte(length), byte(idExt >> 8), byte(idExt), 0xc1, 0, 0}
	s = append(s, body...)
	crc := crc32MPEG(s)
	return append(s, byte(crc>>24), byte(crc>>16), byte(crc>>8), byte(crc))
}

type tsWriter struct {
	buf []byte
	cc  map[uint16]byte
}

func (w *tsWriter) write(pid uint16, payload []byte, psi bool) {
	if w.cc == nil {
		w.cc = make(map[uint16]byte)
	}
	if psi {
		payload = append([]byte{0}, payload...)
	}
	for first := true; first || len(payload) > 0; first = false {
		pkt := make([]byte, tsPacketSize)
		pkt[0] = 0x47
		pkt[1] = byte(pid>>8) & 0x1f
		if first {
			pkt[1] |= 0x40
		}
		pkt[2] = byte(pid)
		cc := w.cc[pid]
		w.cc[pid] = (cc + 1) & 0x0f
		n := min(len(payload), 184)
		if n == 184 || psi {
			pkt[3] = 0x10 | cc
			copy(pkt[4:], payload[:n])
			for i := 4 + n; i < tsPacketSize; i++ {
				pkt[i] = 0xff
			}
		} else {
			// stuff with an adaptation field
			pkt[3] = 0x30 | cc
			afLen := 183 - n
			pkt[4] = byte(afLen)
			if afLen > 0 {
				for i := 6; i < 5+afLen; i++ {
					pkt[i] = 0xff
				}
			}
			copy(pkt[5+afLen:], payload[:n])
		}
		payload = payload[n:]
		w.buf = append(w.buf, pkt...)
	}
}

func ptsBytes(pts int64) []byte {
	return []byte{
		0x20 | byte(pts>>29)&0x0e | 1,
		byte(pts >> 22),
		byte(pts>>14)&0xfe | 1,
		byte(pts >> 7),
		byte(pts<<1)&0xfe | 1,
	}
}

func pes(streamID byte, pts int64, data []byte) []byte {
	h := []byte{0, 0, 1, streamID, 0, 0, 0x80, 0x80, 5}
	h = append(h, ptsBytes(pts)...)
	if streamID < 0xe0 {
		length := len(h) - 6 + len(data)
		h[4], h[5] = byte(length>>8), byte(length)
	}
	return append(h, data...)
}

func annexB(nalus ...[]byte) []byte {
	var b []byte
	for _, n := range nalus {
		b = append(b, 0, 0, 0, 1)
		b = append(b, n...)
	}
	return b
}

var (
	// 320x240 constrained baseline, level 3.0
	testSPS    = []byte{0x67, 0x42, 0x40, 0x1e, 0xda, 0x05, 0x07, 0xe4}
	testIDR    = []byte{0x65, 0x88, 0x80}
	testPFrame = []byte{0x41, 0x9a}
)

// adtsFrame is an AAC LC 48 kHz stereo frame with an empty payload.
func adtsFrame() []byte {
	return []byte{0xff, 0xf1, 0x4c, 0x80, 0x00, 0xff, 0xfc}
}

const (
	testPMTPid   = 0x1000
	testVideoPid = 0x100
	testAudioPid = 0x101
)

// tsFixture is a single program transport stream: H.264 video with two
// access units and one English AAC frame.
func tsFixture() []byte {
	var w tsWriter
	w.write(0, psiSection(0x00, 1, []byte{0x00, 0x01, 0xe0 | testPMTPid>>8, testPMTPid & 0xff}), true)

	pmt := []byte{0xe0 | testVideoPid>>8, testVideoPid & 0xff, 0xf0, 0x00}
	pmt = append(pmt, 0x1b, 0xe0|testVideoPid>>8, testVideoPid&0xff, 0xf0, 0x00)
	pmt = append(pmt, 0x0f, 0xe0|testAudioPid>>8, testAudioPid&0xff, 0xf0, 0x06)
	pmt = append(pmt, descriptorTagISO639, 4, 'e', 'n', 'g', 0)
	w.write(testPMTPid, psiSection(0x02, 1, pmt), true)

	svc := []byte{descriptorTagService, 0, 0x01, 7}
	svc = append(svc, "avprobe"...)
	svc = append(svc, 9)
	svc = append(svc, "Service01"...)
	svc[1] = byte(len(svc) - 2)
	sdt := []byte{0x00, 0x01, 0xff, 0x00, 0x01, 0xfc, 0x80, byte(len(svc))}
	sdt = append(sdt, svc...)
	w.write(0x11, psiSection(0x42, 1, sdt), true)

	w.write(testVideoPid, pes(0xe0, 126000, annexB(testSPS, testIDR)), false)
	w.write(testAudioPid, pes(0xc0, 126000, adtsFrame()), false)
	w.write(testVideoPid, pes(0xe0, 129600, annexB(testPFrame)), false)
	return w.buf
}

func TestOpenMPEGTS(t *testing.T) {
	path := writeFile(t, "clip.ts", tsFixture())
	in, err := Open(context.Background(), path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()

	fc := in.Format
	if fc.FormatName != "mpegts" || fc.ProbeScore != ScoreMax/2+6 {
		t.Fatalf("format %s score %d", fc.FormatName, fc.ProbeScore)
	}
	if len(fc.Streams) != 2 {
		t.Fatalf("got %d streams", len(fc.Streams))
	}
	v, a := fc.Streams[0], fc.Streams[1]
	if v.Codecpar.CodecName != "h264" || v.ID != testVideoPid || v.Codecpar.Width != 320 || v.Codecpar.Height != 240 {
		t.Fatalf("video %+v", v.Codecpar)
	}
	if a.Codecpar.CodecName != "aac" || a.Codecpar.SampleRate != 48000 || a.Codecpar.Layout.NbChannels != 2 {
		t.Fatalf("audio %+v", a.Codecpar)
	}
	if lang, _ := a.Tags.Get("language"); lang != "eng" {
		t.Fatalf("language %q", lang)
	}
	if v.StartTime != 126000 || a.StartTime != 126000 {
		t.Fatalf("start times %d %d", v.StartTime, a.StartTime)
	}
	if v.Duration != 3600 || a.Duration != 1920 {
		t.Fatalf("durations %d %d", v.Duration, a.Duration)
	}
	if fc.StartTime != 1400000 || fc.Duration != 40000 {
		t.Fatalf("format start %d duration %d", fc.StartTime, fc.Duration)
	}

	if len(fc.Programs) != 1 {
		t.Fatalf("got %d programs", len(fc.Programs))
	}
	p := fc.Programs[0]
	if p.ID != 1 || p.PMTPid != testPMTPid || p.PCRPid != testVideoPid || len(p.Streams) != 2 {
		t.Fatalf("program %+v", p)
	}

	pkts := readAll(t, in)
	if len(pkts) != 3 {
		t.Fatalf("got %d packets", len(pkts))
	}
	var keys, video int
	for _, pkt := range pkts {
		if pkt.StreamIndex == v.Index {
			video++
			if pkt.Key() {
				keys++
			}
		}
	}
	if video != 2 || keys != 1 {
		t.Fatalf("video packets %d, key %d", video, keys)
	}
	if name, _ := p.Tags.Get("service_name"); name != "Service01" {
		t.Fatalf("service_name %q", name)
	}
	if provider, _ := p.Tags.Get("service_provider"); provider != "avprobe" {
		t.Fatalf("service_provider %q", provider)
	}

	if err := in.Seek(1420000); err != nil {
		t.Fatal(err)
	}
	pkts = readAll(t, in)
	if len(pkts) != 1 || pkts[0].PTS != 129600 {
		t.Fatalf("after seek got %d packets", len(pkts))
	}
}

func TestTSClockUnwrap(t *testing.T) {
	var c tsClock
	if got := c.unwrap(1<<33 - 900); got != 1<<33-900 {
		t.Fatalf("first %d", got)
	}
	if got := c.unwrap(2700); got != 1<<33+2700 {
		t.Fatalf("after wrap %d", got)
	}
	if d := ptsDelta(1<<33-900, 2700); d != 3600 {
		t.Fatalf("delta %d", d)
	}
}

func TestDVBString(t *testing.T) {
	if got := dvbString([]byte("Plain")); got != "Plain" {
		t.Fatalf("got %q", got)
	}
	// ISO 8859-5 selector, 0xbf is CYRILLIC CAPITAL LETTER PE
	if got := dvbString([]byte{0x01, 0xbf}); got != "П" {
		t.Fatalf("got %q", got)
	}
	if got := dvbString([]byte{0x15, 'o', 'k'}); got != "ok" {
		t.Fatalf("got %q", got)
	}
}

func writeHLS(t *testing.T, playlist string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "seg0.ts"), tsFixture(), 0o644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "index.m3u8")
	if err := os.WriteFile(path, []byte(playlist), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenHLS(t *testing.T) {
	path := writeHLS(t, "#EXTM3U\n#EXT-X-VERSION:3\n#EXT-X-TARGETDURATION:2\n#EXT-X-MEDIA-SEQUENCE:0\n"+
		"#EXTINF:1.000,\nseg0.ts\n#EXT-X-ENDLIST\n")
	in, err := Open(context.Background(), path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()

	fc := in.Format
	if fc.FormatName != "hls" || len(fc.Streams) != 2 || fc.Duration != 1000000 {
		t.Fatalf("format %s streams %d duration %d", fc.FormatName, len(fc.Streams), fc.Duration)
	}
	if len(fc.Programs) != 1 || len(fc.Programs[0].Streams) != 2 {
		t.Fatalf("programs %+v", fc.Programs)
	}
	if br, _ := fc.Streams[0].Tags.Get("variant_bitrate"); br != "0" {
		t.Fatalf("variant_bitrate %q", br)
	}
	if pkts := readAll(t, in); len(pkts) != 3 {
		t.Fatalf("got %d packets", len(pkts))
	}
}

func TestHLSLiveInterrupt(t *testing.T) {
	path := writeHLS(t, "#EXTM3U\n#EXT-X-VERSION:3\n#EXT-X-TARGETDURATION:2\n#EXT-X-MEDIA-SEQUENCE:0\n"+
		"#EXTINF:1.000,\nseg0.ts\n")
	in, err := Open(context.Background(), path, Options{Interrupt: func() bool { return true }})
	if err == nil {
		defer in.Close()
		for err == nil {
			err = in.ReadPacket(media.NewPacket())
		}
	}
	if !errors.Is(err, media.ErrExit) {
		t.Fatalf("expected ErrExit, got %v", err)
	}
}
