package pixdesc

import (
	"errors"
	"strings"
	"testing"
)

func TestBitsPerPixel(t *testing.T) {
	cases := []struct {
		name   string
		bpp    int
		padded int
	}{
		{"yuv420p", 12, 12},
		{"rgb24", 24, 24},
		{"nv12", 12, 12},
		{"pal8", 8, 8},
		{"monow", 1, 1},
		{"yuyv422", 16, 16},
		{"yuv410p", 9, 9},
		{"rgb565le", 16, 16},
		{"yuva420p", 20, 20},
		{"p010le", 15, 24},
		{"rgb0", 24, 32},
		{"vaapi", 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := Lookup(tc.name)
			d := Get(f)
			if d == nil {
				t.Fatalf("lookup %q failed", tc.name)
			}
			if got := d.BitsPerPixel(); got != tc.bpp {
				t.Fatalf("bits per pixel: got %d want %d", got, tc.bpp)
			}
			if got := d.PaddedBitsPerPixel(); got != tc.padded {
				t.Fatalf("padded bits per pixel: got %d want %d", got, tc.padded)
			}
		})
	}
}

func TestLookupAliases(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"gray", "gray"},
		{"gray8", "gray"},
		{"Y8", "gray"},
		{"rgb32", "bgra"},
		{"bgr32", "rgba"},
		{"gray16", "gray16le"},
		{"yuv420p10", "yuv420p10le"},
	}
	for _, tc := range cases {
		if got := Lookup(tc.in).String(); got != tc.want {
			t.Fatalf("Lookup(%q): got %q want %q", tc.in, got, tc.want)
		}
	}
	if f := Lookup("nonexistent"); f != PixFmtNone {
		t.Fatalf("expected none, got %v", f)
	}
	if got := Get(Lookup("gray")).Aliases(); strings.Join(got, ",") != "gray8,y8" {
		t.Fatalf("unexpected aliases %v", got)
	}
}

func TestIDsMatchTable(t *testing.T) {
	for d := Next(nil); d != nil; d = Next(d) {
		if got := Lookup(d.Name); got != d.ID() {
			t.Fatalf("%s: lookup id %d, table id %d", d.Name, got, d.ID())
		}
	}
	if PixFmtYUV420P.String() != "yuv420p" || PixFmtNV12.String() != "nv12" || PixFmtP010LE.String() != "p010le" {
		t.Fatalf("named constants drifted from table order")
	}
}

func TestSwapEndiannessIsInvolution(t *testing.T) {
	partners := 0
	for i := 0; i < Count(); i++ {
		f := PixelFormat(i)
		swapped := SwapEndianness(f)
		if swapped == PixFmtNone {
			continue
		}
		partners++
		if back := SwapEndianness(swapped); back != f {
			t.Fatalf("%s -> %s -> %s", f, swapped, back)
		}
	}
	if partners == 0 {
		t.Fatalf("no endian twins found")
	}
	for _, name := range []string{"yuv420p", "rgb24", "vaapi", "pal8"} {
		if got := SwapEndianness(Lookup(name)); got != PixFmtNone {
			t.Fatalf("%s: unexpected partner %s", name, got)
		}
	}
	if got := SwapEndianness(Lookup("gray16be")); got.String() != "gray16le" {
		t.Fatalf("gray16be swap: got %s", got)
	}
}

func TestDescriptorsValid(t *testing.T) {
	for i := 0; i < Count(); i++ {
		if err := Get(PixelFormat(i)).Validate(); err != nil {
			t.Fatalf("descriptor %d: %v", i, err)
		}
	}
}

func TestChromaComponentsAreIndexOneAndTwo(t *testing.T) {
	for d := Next(nil); d != nil; d = Next(d) {
		if d.Has(FlagHWAccel) || d.Log2ChromaW+d.Log2ChromaH == 0 {
			continue
		}
		if d.NbComponents < 3 || d.Has(FlagRGB) || d.Has(FlagPAL) {
			t.Fatalf("%s: subsampled format without chroma in components 1 and 2", d.Name)
		}
	}
}

func TestCountPlanes(t *testing.T) {
	cases := map[string]int{
		"yuv420p": 3,
		"nv12":    2,
		"rgb24":   1,
		"gbrap":   4,
		"vaapi":   0,
	}
	for name, want := range cases {
		got, err := CountPlanes(Lookup(name))
		if err != nil || got != want {
			t.Fatalf("%s: got %d, %v want %d", name, got, err, want)
		}
	}
	if _, err := CountPlanes(PixelFormat(10000)); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestChromaSubsample(t *testing.T) {
	w, h, err := ChromaSubsample(PixFmtYUV420P)
	if err != nil || w != 1 || h != 1 {
		t.Fatalf("yuv420p: got %d %d %v", w, h, err)
	}
	if _, _, err := ChromaSubsample(PixFmtVAAPI); !errors.Is(err, ErrInvalid) {
		t.Fatalf("hwaccel: expected ErrInvalid, got %v", err)
	}
}

func TestImageLineRoundTrip(t *testing.T) {
	d := Get(Lookup("rgb565be"))
	buf := make([]byte, 8)
	data := [4][]byte{buf}
	linesize := [4]int{8}
	WriteImageLine([]uint32{31, 7}, data, linesize, d, 0, 0, 0, 2)
	WriteImageLine([]uint32{63, 1}, data, linesize, d, 0, 0, 1, 2)
	got := make([]uint32, 2)
	ReadImageLine(got, data, linesize, d, 0, 0, 0, 2, false)
	if got[0] != 31 || got[1] != 7 {
		t.Fatalf("red: got %v", got)
	}
	ReadImageLine(got, data, linesize, d, 0, 0, 1, 2, false)
	if got[0] != 63 || got[1] != 1 {
		t.Fatalf("green: got %v", got)
	}
	if buf[0] != 0xff || buf[1] != 0xe0 {
		t.Fatalf("unexpected packing % x", buf[:2])
	}
}

func TestImageLineBitstream(t *testing.T) {
	d := Get(PixFmtMonoBlack)
	buf := make([]byte, 2)
	data := [4][]byte{buf}
	linesize := [4]int{2}
	WriteImageLine([]uint32{1, 0, 1, 1, 0, 0, 0, 1, 1}, data, linesize, d, 0, 0, 0, 9)
	if buf[0] != 0xb1 || buf[1] != 0x80 {
		t.Fatalf("unexpected bits % x", buf)
	}
	got := make([]uint32, 3)
	ReadImageLine(got, data, linesize, d, 6, 0, 0, 3, false)
	if got[0] != 0 || got[1] != 1 || got[2] != 1 {
		t.Fatalf("got %v", got)
	}
}

func TestImageLinePalette(t *testing.T) {
	d := Get(PixFmtPAL8)
	pal := make([]byte, PaletteSize)
	pal[4*3+0] = 0x11
	pal[4*3+2] = 0x33
	data := [4][]byte{{3, 0}, pal}
	linesize := [4]int{2}
	got := make([]uint32, 2)
	ReadImageLine(got, data, linesize, d, 0, 0, 0, 2, true)
	if got[0] != 0x11 || got[1] != 0 {
		t.Fatalf("palette read: got %v", got)
	}
}

func TestFindBestOf2(t *testing.T) {
	best, loss := FindBestOf2(PixFmtYUV420P, PixFmtYUV444P, PixFmtYUV444P, false, lossAll)
	if best != PixFmtYUV444P || loss != 0 {
		t.Fatalf("got %s loss %v", best, loss)
	}
	best, loss = FindBestOf2(PixFmtGray8, PixFmtYUV420P, PixFmtRGB24, false, lossAll)
	if best != PixFmtYUV420P {
		t.Fatalf("got %s", best)
	}
	if loss&LossColorspace == 0 || loss&LossResolution == 0 {
		t.Fatalf("expected colorspace and resolution loss, got %b", loss)
	}
	loss, ok := ConversionLoss(PixFmtRGB24, PixFmtRGBA, true)
	if !ok || loss&LossAlpha == 0 {
		t.Fatalf("expected alpha loss, got %b %v", loss, ok)
	}
	if _, ok := ConversionLoss(PixFmtVAAPI, PixFmtYUV420P, false); ok {
		t.Fatalf("hwaccel conversion should not be scored")
	}
}

func TestColorNames(t *testing.T) {
	if n, _ := ColorPrimaries(22).Name(); n != "jedec-p22" {
		t.Fatalf("got %q", n)
	}
	if _, ok := ColorPrimaries(15).Name(); ok {
		t.Fatalf("gap entry should have no name")
	}
	if n, _ := ColorRangeMPEG.Name(); n != "tv" {
		t.Fatalf("got %q", n)
	}
	if tr, ok := ColorTransferFromName("smpte2084"); !ok || tr != ColorTransferSMPTE2084 {
		t.Fatalf("got %d %v", tr, ok)
	}
	if sp, ok := ColorSpaceFromName("bt2020nc"); !ok || sp != ColorSpaceBT2020NCL {
		t.Fatalf("got %d %v", sp, ok)
	}
	if _, ok := ChromaLocationFromName("sideways"); ok {
		t.Fatalf("expected no match")
	}
}
