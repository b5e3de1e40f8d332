package sidedata

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/autobrr/go-avprobe/internal/media"
	"github.com/autobrr/go-avprobe/internal/section"
	"github.com/autobrr/go-avprobe/internal/writer"
)

func TestNormalizeRotation(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
		odd  bool
	}{
		{90.3, 90.3, false},
		{93, 93, true},
		{-90, 270, false},
		{450, 90, false},
		{0, 0, false},
		{45, 45, true},
	}
	for _, tc := range cases {
		got, odd := NormalizeRotation(tc.in)
		if got != tc.want || odd != tc.odd {
			t.Fatalf("NormalizeRotation(%v) = %v, %v; want %v, %v", tc.in, got, odd, tc.want, tc.odd)
		}
	}
}

func TestDisplayRotation(t *testing.T) {
	for _, angle := range []float64{0, 90, 180, 270} {
		got, odd := DisplayRotation(RotationMatrix(angle))
		if got != angle || odd {
			t.Fatalf("DisplayRotation(RotationMatrix(%v)) = %v, %v", angle, got, odd)
		}
	}
	if got, odd := DisplayRotation(DisplayMatrix{}); got != 0 || odd {
		t.Fatalf("degenerate matrix: %v, %v", got, odd)
	}
}

func TestDecodeRejectsWrongSize(t *testing.T) {
	cases := []media.SideData{
		{Type: media.SideDataSkipSamples, Data: make([]byte, 9)},
		{Type: media.SideDataContentLight, Data: make([]byte, 6)},
		{Type: media.SideDataDisplayMatrix, Data: make([]byte, 35)},
		{Type: media.SideDataDOVIConf, Data: make([]byte, 8)},
		{Type: media.SideDataMasteringDisplay, Data: make([]byte, 81)},
		{Type: media.SideDataA53CC, Data: make([]byte, 3)},
	}
	for _, sd := range cases {
		if p, ok := Decode(&sd); ok {
			t.Fatalf("%s with %d bytes decoded as %#v", sd.Type, len(sd.Data), p)
		}
	}

	sd := Encode(SkipSamples{Skip: 1024, DiscardPadding: 7, SkipReason: 1})
	if len(sd.Data) != 10 {
		t.Fatalf("skip samples payload is %d bytes", len(sd.Data))
	}
	p, ok := Decode(&sd)
	if !ok || p.(SkipSamples).Skip != 1024 || p.(SkipSamples).DiscardPadding != 7 {
		t.Fatalf("skip samples decoded as %#v, %v", p, ok)
	}
}

func TestHDRPlusRoundTrip(t *testing.T) {
	in := HDRPlus{
		ApplicationVersion:   1,
		TargetedMaxLuminance: 4000,
		Windows: []HDRPlusWindow{
			{
				MaxSCL:               [3]uint32{1000, 2000, 3000},
				AverageMaxRGB:        500,
				Percentiles:          []HDRPlusPercentile{{1, 10}, {99, 90000}},
				FractionBrightPixels: 3,
				ToneMapping:          true,
				KneePointX:           100,
				KneePointY:           200,
				BezierAnchors:        []uint16{1, 2, 3},
			},
			{
				UpperLeftX:             10,
				LowerRightX:            1920,
				RotationAngle:          45,
				OverlapProcess:         true,
				MaxSCL:                 [3]uint32{4, 5, 6},
				ColorSaturationMapping: true,
				ColorSaturationWeight:  9,
			},
		},
		MasteringPeak: [][]uint8{{1, 2}, {3, 4}},
	}
	sd := Encode(in)
	p, ok := Decode(&sd)
	if !ok {
		t.Fatalf("HDR10+ payload rejected")
	}
	out := p.(HDRPlus)
	if out.TargetedMaxLuminance != 4000 || len(out.Windows) != 2 || out.Windows[1].RotationAngle != 45 {
		t.Fatalf("decoded %+v", out)
	}
	if !reflect.DeepEqual(out.MasteringPeak, in.MasteringPeak) || out.TargetedPeak != nil {
		t.Fatalf("peak grids %v %v", out.TargetedPeak, out.MasteringPeak)
	}
	if !reflect.DeepEqual(out.Windows[0].BezierAnchors, []uint16{1, 2, 3}) || out.Windows[1].ColorSaturationWeight != 9 {
		t.Fatalf("windows %+v", out.Windows)
	}

	sd.Data = sd.Data[:len(sd.Data)/2]
	if _, ok := Decode(&sd); ok {
		t.Fatalf("truncated HDR10+ payload accepted")
	}
}

func TestDOVIConf(t *testing.T) {
	cfg := DOVIConf{VersionMajor: 1, Profile: 8, Level: 6, RPUPresent: true, BLPresent: true, CompatibilityID: 1}
	sd := Encode(cfg)
	if len(sd.Data) != DOVIConfSize {
		t.Fatalf("record is %d bytes", len(sd.Data))
	}
	p, ok := Decode(&sd)
	if !ok || p.(DOVIConf) != cfg {
		t.Fatalf("decoded %#v, %v", p, ok)
	}
	want := "Dolby Vision, Version 1.0, Profile 8.1, dvhe.08.06, BL+RPU, HDR10 compatible"
	if got := cfg.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestTimecodes(t *testing.T) {
	gop := GOPTimecode(1<<19 | 2<<13 | 3<<6 | 4)
	if got := gop.String(); got != "01:02:03:04" {
		t.Fatalf("gop timecode %q", got)
	}
	tc := PackSMPTE(10, 20, 30, 12, true)
	if got := SMPTETimecode(media.Rational{Num: 30000, Den: 1001}, tc); got != "10:20:30;12" {
		t.Fatalf("smpte timecode %q", got)
	}
	if got := SMPTETimecode(media.Rational{Num: 50, Den: 1}, tc|1<<7); got != "10:20:30;25" {
		t.Fatalf("field counted timecode %q", got)
	}
}

// escape inserts emulation prevention bytes.
func escape(rbsp []byte) []byte {
	var out []byte
	zeros := 0
	for _, b := range rbsp {
		if zeros == 2 && b <= 3 {
			out = append(out, 3)
			zeros = 0
		}
		out = append(out, b)
		if b == 0 {
			zeros++
		} else {
			zeros = 0
		}
	}
	return out
}

func TestHEVCSEI(t *testing.T) {
	mastering := []byte{
		0x21, 0x34, 0x9b, 0xaa, // green
		0x19, 0x96, 0x08, 0xfc, // blue
		0x8a, 0x48, 0x39, 0x08, // red
		0x3d, 0x13, 0x40, 0x42, // white point
		0x00, 0x98, 0x96, 0x80, // max 1000 cd/m2
		0x00, 0x00, 0x00, 0x32, // min 0.005 cd/m2
	}
	rbsp := append([]byte{137, byte(len(mastering))}, mastering...)
	rbsp = append(rbsp, 144, 4, 0x03, 0xe8, 0x01, 0x90, 0x80)
	nal := append([]byte{39 << 1, 0x01}, escape(rbsp)...)

	list := FromHEVCSEI(nal)
	if len(list) != 2 {
		t.Fatalf("got %d side data entries", len(list))
	}
	p, ok := Decode(&list[0])
	if !ok {
		t.Fatalf("mastering display rejected")
	}
	m := p.(MasteringDisplay)
	if m.Primaries[0][0] != (media.Rational{Num: 35400, Den: 50000}) || m.Primaries[1][1] != (media.Rational{Num: 39850, Den: 50000}) {
		t.Fatalf("primaries %v", m.Primaries)
	}
	if m.MaxLuminance != (media.Rational{Num: 10000000, Den: 10000}) || m.MinLuminance.Num != 50 {
		t.Fatalf("luminance %v %v", m.MinLuminance, m.MaxLuminance)
	}
	p, ok = Decode(&list[1])
	if !ok || p.(ContentLight) != (ContentLight{MaxCLL: 1000, MaxFALL: 400}) {
		t.Fatalf("content light %#v, %v", p, ok)
	}

	if FromH264SEI(nal) != nil {
		t.Fatalf("HEVC NAL accepted as H.264 SEI")
	}
}

func TestH264SEIHDRPlus(t *testing.T) {
	h := HDRPlus{ApplicationVersion: 1, TargetedMaxLuminance: 1000, Windows: []HDRPlusWindow{{AverageMaxRGB: 7}}}
	body := append([]byte{0xb5, 0x00, 0x3c, 0x00, 0x01, 0x04}, h.marshal()...)
	rbsp := append([]byte{4, byte(len(body))}, body...)
	rbsp = append(rbsp, 0x80)
	list := FromH264SEI(append([]byte{0x06}, escape(rbsp)...))
	if len(list) != 1 || list[0].Type != media.SideDataDynamicHDRPlus {
		t.Fatalf("got %+v", list)
	}
	p, ok := Decode(&list[0])
	if !ok || p.(HDRPlus).Windows[0].AverageMaxRGB != 7 {
		t.Fatalf("decoded %#v, %v", p, ok)
	}
}

func TestPrintStreamSideData(t *testing.T) {
	var buf bytes.Buffer
	w, err := writer.Open(&buf, "default", writer.Options{})
	if err != nil {
		t.Fatal(err)
	}
	list := []media.SideData{
		Encode(RotationMatrix(90)),
		Encode(ContentLight{MaxCLL: 1000, MaxFALL: 400}),
		{Type: media.SideDataSkipSamples, Data: []byte{1, 2, 3}},
	}
	w.Header(section.Root, nil)
	PrintList(w, list, section.StreamSideDataList, section.StreamSideData, Env{})
	w.Footer()
	w.Close()

	out := buf.String()
	for _, want := range []string{
		"side_data_type=Display Matrix\n",
		"rotation=-90\n",
		"max_content=1000\nmax_average=400\n",
		"side_data_type=Skip Samples\n[/SIDE_DATA]",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Count(out, "[SIDE_DATA]") != 3 {
		t.Fatalf("expected three entries:\n%s", out)
	}
}

func TestPrintDegenerateDisplayMatrix(t *testing.T) {
	var buf bytes.Buffer
	w, err := writer.Open(&buf, "default", writer.Options{})
	if err != nil {
		t.Fatal(err)
	}
	var m DisplayMatrix
	m[8] = 1 << 30
	w.Header(section.Root, nil)
	PrintList(w, []media.SideData{Encode(m)}, section.StreamSideDataList, section.StreamSideData, Env{})
	w.Footer()
	w.Close()

	out := buf.String()
	if !strings.Contains(out, "rotation=N/A\n") {
		t.Fatalf("expected rotation=N/A in:\n%s", out)
	}
}

func TestPrintFrameTimecodes(t *testing.T) {
	var buf bytes.Buffer
	w, err := writer.Open(&buf, "json", writer.Options{})
	if err != nil {
		t.Fatal(err)
	}
	tc := S12MTimecode{2, PackSMPTE(0, 0, 1, 0, false), PackSMPTE(0, 0, 1, 1, false)}
	w.Header(section.Root, nil)
	PrintFrameList(w, []media.SideData{Encode(tc)}, Env{FrameRate: media.Rational{Num: 25, Den: 1}})
	w.Footer()
	w.Close()

	out := buf.String()
	for _, want := range []string{`"side_data_type": "SMPTE 12-1 timecode"`, `"value": "00:00:01:00"`, `"value": "00:00:01:01"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}
