package wav

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/autobrr/go-avprobe/internal/demux"
	"github.com/autobrr/go-avprobe/internal/media"
)

func TestMuxerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	m, err := NewMuxer(f, "pcm_s16le", 8000, 2)
	if err != nil {
		t.Fatalf("new muxer: %v", err)
	}
	m.Tags.Set("title", "tone")
	if err := m.WriteHeader(); err != nil {
		t.Fatalf("header: %v", err)
	}
	for i := 0; i < 3; i++ {
		pkt := media.NewPacket()
		pkt.Data = make([]byte, 400)
		for j := range pkt.Data {
			pkt.Data[j] = byte(i)
		}
		if err := m.WritePacket(pkt); err != nil {
			t.Fatalf("packet %d: %v", i, err)
		}
	}
	if err := m.WriteTrailer(); err != nil {
		t.Fatalf("trailer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if m.DataSize() != 1200 {
		t.Fatalf("data size %d, want 1200", m.DataSize())
	}

	in, err := demux.Open(context.Background(), path, demux.Options{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer in.Close()
	if in.Format.FormatName != "wav" || len(in.Format.Streams) != 1 {
		t.Fatalf("format %s with %d streams", in.Format.FormatName, len(in.Format.Streams))
	}
	par := in.Format.Streams[0].Codecpar
	if par.CodecName != "pcm_s16le" || par.SampleRate != 8000 || par.Layout.NbChannels != 2 {
		t.Fatalf("codec %s %d Hz %d channels", par.CodecName, par.SampleRate, par.Layout.NbChannels)
	}
	if title, _ := in.Format.Tags.Get("title"); title != "tone" {
		t.Fatalf("title %q", title)
	}

	var total int
	pkt := media.NewPacket()
	for {
		err := in.ReadPacket(pkt)
		if errors.Is(err, media.ErrEOF) {
			break
		}
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		total += len(pkt.Data)
	}
	if total != 1200 {
		t.Fatalf("read %d payload bytes, want 1200", total)
	}
}

func TestMuxerRejects(t *testing.T) {
	if _, err := NewMuxer(nil, "aac", 48000, 2); !errors.Is(err, ErrUnsupportedCodec) {
		t.Fatalf("aac: %v", err)
	}
	f, err := os.Create(filepath.Join(t.TempDir(), "x.wav"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	m, err := NewMuxer(f, "pcm_s16le", 48000, 2)
	if err != nil {
		t.Fatalf("new muxer: %v", err)
	}
	pkt := media.NewPacket()
	pkt.Data = make([]byte, 4)
	if err := m.WritePacket(pkt); !errors.Is(err, ErrNoHeader) {
		t.Fatalf("packet before header: %v", err)
	}
	if err := m.WriteHeader(); err != nil {
		t.Fatalf("header: %v", err)
	}
	pkt.Data = make([]byte, 6)
	if err := m.WritePacket(pkt); !errors.Is(err, media.ErrInvalidData) {
		t.Fatalf("misaligned packet: %v", err)
	}
}
