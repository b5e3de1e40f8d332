package avprobe_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/autobrr/go-avprobe/internal/mediatest"
	"github.com/autobrr/go-avprobe/pkg/avprobe"
)

func TestProbeShowEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	if err := os.WriteFile(path, mediatest.WAV(8000, 2, 100, "tone"), 0o644); err != nil {
		t.Fatal(err)
	}
	sel, err := avprobe.ShowEntries("stream=codec_type,sample_rate")
	if err != nil {
		t.Fatalf("ShowEntries: %v", err)
	}

	var out bytes.Buffer
	err = avprobe.Probe(context.Background(), &out, avprobe.Options{
		Input:        path,
		OutputFormat: "csv",
		Selection:    sel,
	}, nil)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "stream,audio,8000" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestProxyErrors(t *testing.T) {
	if _, err := avprobe.ShowEntries("nothing"); err == nil {
		t.Fatal("expected error for unknown section")
	}
	if _, err := avprobe.ParseIntervals("abc"); err == nil {
		t.Fatal("expected error for bad interval")
	}
	if len(avprobe.Writers()) == 0 {
		t.Fatal("no writers registered")
	}
	err := avprobe.Probe(context.Background(), &bytes.Buffer{}, avprobe.Options{OutputFormat: "json"}, nil)
	if !errors.Is(err, avprobe.ErrNoInput) {
		t.Fatalf("err = %v", err)
	}
}
