package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func s16Samples(vals ...int16) []byte {
	b := make([]byte, 2*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint16(b[2*i:], uint16(v))
	}
	return b
}

func ramp(n, start int) []byte {
	vals := make([]int16, n)
	for i := range vals {
		vals[i] = int16(start + i)
	}
	return s16Samples(vals...)
}

func TestFIFORoundTrip(t *testing.T) {
	q, err := NewFIFO(SampleFmtS16, 1, 4)
	if err != nil {
		t.Fatalf("new fifo: %v", err)
	}
	in := ramp(100, 1)
	if _, err := q.Write([][]byte{in}, 100); err != nil {
		t.Fatalf("write: %v", err)
	}
	if q.Size() != 100 || q.Cap() < 100 {
		t.Fatalf("size %d cap %d", q.Size(), q.Cap())
	}
	out := make([]byte, len(in))
	if _, err := q.Read([][]byte{out}, 100); err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(in, out) {
		t.Fatalf("round trip mismatch")
	}
	if q.Size() != 0 {
		t.Fatalf("fifo not empty: %d", q.Size())
	}
}

func TestFIFOWritesAreAssociative(t *testing.T) {
	split, _ := NewFIFO(SampleFmtS16P, 2, 1)
	whole, _ := NewFIFO(SampleFmtS16P, 2, 1)

	left := ramp(70, 0)
	right := ramp(70, 1000)
	if _, err := split.Write([][]byte{left[:60], right[:60]}, 30); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := split.Write([][]byte{left[60:], right[60:]}, 40); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := whole.Write([][]byte{left, right}, 70); err != nil {
		t.Fatalf("write: %v", err)
	}

	a := [][]byte{make([]byte, 140), make([]byte, 140)}
	b := [][]byte{make([]byte, 140), make([]byte, 140)}
	if _, err := split.Read(a, 70); err != nil {
		t.Fatalf("read split: %v", err)
	}
	if _, err := whole.Read(b, 70); err != nil {
		t.Fatalf("read whole: %v", err)
	}
	for ch := range a {
		if !bytes.Equal(a[ch], b[ch]) {
			t.Fatalf("channel %d differs", ch)
		}
	}
}

func TestFIFOWrapsAndGrows(t *testing.T) {
	q, _ := NewFIFO(SampleFmtS16, 1, 8)
	out := make([]byte, 16)
	for round := 0; round < 5; round++ {
		if _, err := q.Write([][]byte{ramp(6, round*10)}, 6); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := q.Read([][]byte{out}, 6); err != nil {
			t.Fatalf("read: %v", err)
		}
		if !bytes.Equal(out[:12], ramp(6, round*10)) {
			t.Fatalf("round %d: wrapped read mismatch", round)
		}
	}
	if q.Cap() != 8 {
		t.Fatalf("capacity grew without need: %d", q.Cap())
	}

	// a partially drained ring must keep order when it grows
	q.Write([][]byte{ramp(6, 0)}, 6)
	q.Drain(4)
	q.Write([][]byte{ramp(10, 6)}, 10)
	if q.Size() != 12 || q.Cap() != 12 {
		t.Fatalf("size %d cap %d", q.Size(), q.Cap())
	}
	out = make([]byte, 24)
	q.Read([][]byte{out}, 12)
	if !bytes.Equal(out, ramp(12, 4)) {
		t.Fatalf("order lost after growth")
	}
	if err := q.Realloc(4); err != nil || q.Cap() != 12 {
		t.Fatalf("realloc must not shrink: cap %d err %v", q.Cap(), err)
	}
}

func TestFIFOErrors(t *testing.T) {
	q, _ := NewFIFO(SampleFmtFLT, 2, 16)
	q.Write([][]byte{make([]byte, 8*10)}, 10)
	if _, err := q.Read([][]byte{make([]byte, 8*11)}, 11); !errors.Is(err, ErrShortRead) {
		t.Fatalf("expected ErrShortRead, got %v", err)
	}
	if q.Size() != 10 {
		t.Fatalf("failed read consumed samples")
	}
	if _, err := q.Write([][]byte{make([]byte, 4)}, 10); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for short plane, got %v", err)
	}

	old := maxAlloc
	maxAlloc = 1024
	defer func() { maxAlloc = old }()
	if err := q.Realloc(1000); !errors.Is(err, ErrNoMem) {
		t.Fatalf("expected ErrNoMem, got %v", err)
	}
	if errors.Is(ErrNoMem, ErrShortRead) {
		t.Fatalf("allocation and short read errors must differ")
	}
}

func TestConverterS16ToFLTP(t *testing.T) {
	in := Params{Format: SampleFmtS16, Rate: 48000, Layout: DefaultLayout(2)}
	out := Params{Format: SampleFmtFLTP, Rate: 48000, Layout: DefaultLayout(2)}
	c, err := NewConverter(in, out)
	if err != nil {
		t.Fatalf("new converter: %v", err)
	}
	planes, err := c.Convert([][]byte{s16Samples(16384, -16384, -32768, 0)}, 2)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if len(planes) != 2 || len(planes[0]) != 8 {
		t.Fatalf("unexpected output layout %d planes, %d bytes", len(planes), len(planes[0]))
	}
	if got := readSample(planes, SampleFmtFLTP, 2, 0, 0); got != 0.5 {
		t.Fatalf("L0 = %v", got)
	}
	if got := readSample(planes, SampleFmtFLTP, 2, 1, 0); got != -0.5 {
		t.Fatalf("R0 = %v", got)
	}
	if got := readSample(planes, SampleFmtFLTP, 2, 0, 1); got != -1 {
		t.Fatalf("L1 = %v", got)
	}

	back, _ := NewConverter(out, in)
	restored, err := back.Convert(planes, 2)
	if err != nil {
		t.Fatalf("convert back: %v", err)
	}
	if !bytes.Equal(restored[0], s16Samples(16384, -16384, -32768, 0)) {
		t.Fatalf("s16 round trip mismatch % x", restored[0])
	}
	if c.Converted() != 2 {
		t.Fatalf("converted count %d", c.Converted())
	}
}

func TestConverterRejectsRateChange(t *testing.T) {
	in := Params{Format: SampleFmtS16, Rate: 44100, Layout: DefaultLayout(2)}
	out := Params{Format: SampleFmtS16, Rate: 48000, Layout: DefaultLayout(2)}
	if _, err := NewConverter(in, out); !errors.Is(err, ErrRateMismatch) {
		t.Fatalf("expected ErrRateMismatch, got %v", err)
	}
}

func TestConverterMonoUpmix(t *testing.T) {
	in := Params{Format: SampleFmtU8, Rate: 8000, Layout: DefaultLayout(1)}
	out := Params{Format: SampleFmtS16, Rate: 8000, Layout: DefaultLayout(2)}
	c, err := NewConverter(in, out)
	if err != nil {
		t.Fatalf("new converter: %v", err)
	}
	planes, err := c.Convert([][]byte{{0xc0}}, 1)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !bytes.Equal(planes[0], s16Samples(16384, 16384)) {
		t.Fatalf("got % x", planes[0])
	}
}

func TestLayouts(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{1, "mono"},
		{2, "stereo"},
		{3, "2.1"},
		{6, "5.1"},
		{8, "7.1"},
		{11, "11 channels"},
	}
	for _, tc := range cases {
		if got := DefaultLayout(tc.n).Describe(); got != tc.want {
			t.Fatalf("%d channels: got %q want %q", tc.n, got, tc.want)
		}
	}
	odd := LayoutFromMask(mask(ChanFL, ChanFR, ChanLFE2))
	if got := odd.Describe(); got != "3 channels (FL+FR+LFE2)" {
		t.Fatalf("got %q", got)
	}
	l, err := ParseLayout("5.1(side)")
	if err != nil || l.NbChannels != 6 {
		t.Fatalf("parse: %v %v", l, err)
	}
}

func TestSampleFormats(t *testing.T) {
	if SampleFmtFLTP.Packed() != SampleFmtFLT || SampleFmtS16.Planar() != SampleFmtS16P {
		t.Fatalf("packed/planar mapping broken")
	}
	if SampleFmtDBLP.BytesPerSample() != 8 || !SampleFmtDBLP.IsPlanar() {
		t.Fatalf("dblp properties")
	}
	if SampleFormatFromName("s64p") != SampleFmtS64P || SampleFormatFromName("x") != SampleFmtNone {
		t.Fatalf("name lookup")
	}
	size, linesize, err := BufferSize(2, 960, SampleFmtFLTP, 1)
	if err != nil || size != 7680 || linesize != 3840 {
		t.Fatalf("fltp buffer: %d %d %v", size, linesize, err)
	}
}
