package writer

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/autobrr/go-avprobe/internal/media"
	"github.com/autobrr/go-avprobe/internal/section"
)

func open(t *testing.T, spec string, opts Options) (*Context, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	w, err := Open(&buf, spec, opts)
	if err != nil {
		t.Fatalf("Open(%q): %v", spec, err)
	}
	return w, &buf
}

func finish(t *testing.T, w *Context, buf *bytes.Buffer) string {
	t.Helper()
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return buf.String()
}

// writeStreams prints two streams, the first one with a disposition and
// tags, followed by a format section.
func writeStreams(w *Context) {
	w.Header(section.Root, nil)
	w.Header(section.Streams, nil)
	for i := 0; i < 2; i++ {
		w.Header(section.Stream, nil)
		w.Int("index", int64(i))
		w.Str("codec_name", "h264")
		if i == 0 {
			w.Header(section.StreamDisposition, nil)
			w.Int("default", 1)
			w.Footer()
			w.Header(section.StreamTags, nil)
			w.Str("language", "eng")
			w.Footer()
		}
		w.Footer()
	}
	w.Footer()
	w.Header(section.Format, nil)
	w.Str("filename", "a&b.ts")
	w.Footer()
	w.Footer()
}

func TestJSONOutput(t *testing.T) {
	w, buf := open(t, "json", Options{})
	w.Header(section.Root, nil)
	w.Header(section.Streams, nil)
	w.Header(section.Stream, nil)
	w.Int("index", 0)
	w.Str("codec_type", "video")
	w.Footer()
	w.Footer()
	w.Header(section.Format, nil)
	w.Str("filename", "a.ts")
	w.Footer()
	w.Footer()

	want := `{
    "streams": [
        {
            "index": 0,
            "codec_type": "video"
        }
    ],
    "format": {
        "filename": "a.ts"
    }
}
`
	if got := finish(t, w, buf); got != want {
		t.Fatalf("json output:\n%s\nwant:\n%s", got, want)
	}
}

func TestJSONIsValid(t *testing.T) {
	for _, spec := range []string{"json", "json=compact=1"} {
		w, buf := open(t, spec, Options{})
		writeStreams(w)
		out := finish(t, w, buf)

		var doc struct {
			Streams []map[string]any `json:"streams"`
			Format  map[string]any   `json:"format"`
		}
		if err := json.Unmarshal([]byte(out), &doc); err != nil {
			t.Fatalf("%s: %v\n%s", spec, err, out)
		}
		if len(doc.Streams) != 2 {
			t.Fatalf("%s: got %d streams", spec, len(doc.Streams))
		}
		if doc.Format["filename"] != "a&b.ts" {
			t.Fatalf("%s: filename %v", spec, doc.Format["filename"])
		}
		tags, _ := doc.Streams[0]["tags"].(map[string]any)
		if tags["language"] != "eng" {
			t.Fatalf("%s: tags %v", spec, doc.Streams[0]["tags"])
		}
	}
}

func TestDefaultOutput(t *testing.T) {
	w, buf := open(t, "default", Options{})
	writeStreams(w)
	want := "[STREAM]\nindex=0\ncodec_name=h264\nDISPOSITION:default=1\nTAG:language=eng\n[/STREAM]\n" +
		"[STREAM]\nindex=1\ncodec_name=h264\n[/STREAM]\n" +
		"[FORMAT]\nfilename=a&b.ts\n[/FORMAT]\n"
	if got := finish(t, w, buf); got != want {
		t.Fatalf("default output:\n%s\nwant:\n%s", got, want)
	}

	w, buf = open(t, "default=nw=1:nk=1", Options{})
	writeStreams(w)
	if got := finish(t, w, buf); strings.Contains(got, "[STREAM]") || !strings.HasPrefix(got, "0\nh264\n1\n") {
		t.Fatalf("noprint_wrappers/nokey output:\n%s", got)
	}
}

func TestCompactOutput(t *testing.T) {
	w, buf := open(t, "compact", Options{})
	w.Header(section.Root, nil)
	w.Header(section.Streams, nil)
	w.Header(section.Stream, nil)
	w.Int("index", 0)
	w.Str("codec_name", "h|264")
	w.Header(section.StreamDisposition, nil)
	w.Int("default", 1)
	w.Footer()
	w.Footer()
	w.Footer()
	w.Footer()

	want := "stream|index=0|codec_name=h\\|264|disposition:default=1\n"
	if got := finish(t, w, buf); got != want {
		t.Fatalf("compact output %q, want %q", got, want)
	}
}

func TestCSVOutput(t *testing.T) {
	w, buf := open(t, "csv", Options{})
	w.Header(section.Root, nil)
	w.Header(section.Streams, nil)
	w.Header(section.Stream, nil)
	w.Int("index", 0)
	w.Str("codec_name", `a,"b"`)
	w.Header(section.StreamDisposition, nil)
	w.Int("default", 1)
	w.Footer()
	w.Footer()
	w.Footer()
	w.Footer()

	want := "stream,0,\"a,\"\"b\"\"\",1\n"
	if got := finish(t, w, buf); got != want {
		t.Fatalf("csv output %q, want %q", got, want)
	}
}

func TestCompactOptionErrors(t *testing.T) {
	for _, spec := range []string{"compact=item_sep=ab", "csv=e=shell"} {
		if _, err := Open(&bytes.Buffer{}, spec, Options{}); !errors.Is(err, ErrInvalidOption) {
			t.Fatalf("%s: got %v", spec, err)
		}
	}
}

func TestFlatOutput(t *testing.T) {
	w, buf := open(t, "flat", Options{})
	w.Header(section.Root, nil)
	w.Header(section.Streams, nil)
	for i := 0; i < 2; i++ {
		w.Header(section.Stream, nil)
		w.Int("index", int64(i))
		w.Header(section.StreamTags, nil)
		w.Str("handler name", `a"b$`)
		w.Footer()
		w.Footer()
	}
	w.Footer()
	w.Footer()

	want := "streams.stream.0.index=0\n" +
		"streams.stream.0.tags.handler_name=\"a\\\"b\\$\"\n" +
		"streams.stream.1.index=1\n" +
		"streams.stream.1.tags.handler_name=\"a\\\"b\\$\"\n"
	if got := finish(t, w, buf); got != want {
		t.Fatalf("flat output:\n%s\nwant:\n%s", got, want)
	}
}

func TestFlatNumbersByType(t *testing.T) {
	sel := section.NewOverlay()
	sel.Mark(section.Root, true, nil)
	sel.Mark(section.PacketsAndFrames, true, nil)
	w, buf := open(t, "flat", Options{Selection: sel})

	w.Header(section.Root, nil)
	w.Header(section.PacketsAndFrames, nil)
	for _, id := range []section.ID{section.Packet, section.Frame, section.Packet} {
		w.Header(id, nil)
		w.Int("stream_index", 0)
		w.Footer()
	}
	w.Footer()
	w.Footer()

	want := "packets_and_frames.packet.0.stream_index=0\n" +
		"packets_and_frames.frame.0.stream_index=0\n" +
		"packets_and_frames.packet.1.stream_index=0\n"
	if got := finish(t, w, buf); got != want {
		t.Fatalf("flat output:\n%s\nwant:\n%s", got, want)
	}
}

func TestJSONTypedEntries(t *testing.T) {
	sel := section.NewOverlay()
	sel.Mark(section.PacketsAndFrames, true, nil)
	w, buf := open(t, "json", Options{Selection: sel})

	w.Header(section.Root, nil)
	w.Header(section.PacketsAndFrames, nil)
	w.Header(section.Packet, nil)
	w.Int("stream_index", 0)
	w.Footer()
	w.Header(section.Frame, nil)
	w.Int("stream_index", 1)
	w.Footer()
	w.Footer()
	w.Footer()

	var doc struct {
		Entries []struct {
			Type        string `json:"type"`
			StreamIndex int    `json:"stream_index"`
		} `json:"packets_and_frames"`
	}
	out := finish(t, w, buf)
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("%v\n%s", err, out)
	}
	if len(doc.Entries) != 2 || doc.Entries[0].Type != "packet" || doc.Entries[1].Type != "frame" || doc.Entries[1].StreamIndex != 1 {
		t.Fatalf("entries %+v", doc.Entries)
	}
}

func TestINIOutput(t *testing.T) {
	w, buf := open(t, "ini", Options{})
	w.Header(section.Root, nil)
	w.Header(section.Streams, nil)
	for i := 0; i < 2; i++ {
		w.Header(section.Stream, nil)
		w.Int("index", int64(i))
		w.Str("title", "a=b")
		w.Footer()
	}
	w.Footer()
	w.Footer()

	want := "# ffprobe output\n\n" +
		"[streams.stream.0]\nindex=0\ntitle=a\\=b\n" +
		"\n[streams.stream.1]\nindex=1\ntitle=a\\=b\n"
	if got := finish(t, w, buf); got != want {
		t.Fatalf("ini output:\n%s\nwant:\n%s", got, want)
	}
}

func TestXMLOutput(t *testing.T) {
	w, buf := open(t, "xml", Options{})
	writeStreams(w)
	want := `<?xml version="1.0" encoding="UTF-8"?>
<ffprobe>
    <streams>
        <stream index="0" codec_name="h264">
            <disposition default="1"/>
            <tags>
                <tag key="language" value="eng"/>
            </tags>
        </stream>
        <stream index="1" codec_name="h264"/>
    </streams>

    <format filename="a&amp;b.ts"/>
</ffprobe>
`
	if got := finish(t, w, buf); got != want {
		t.Fatalf("xml output:\n%s\nwant:\n%s", got, want)
	}
}

func TestXMLSideDataType(t *testing.T) {
	w, buf := open(t, "xml", Options{})
	sd := &media.SideData{Type: media.SideDataDisplayMatrix}
	w.Header(section.Root, nil)
	w.Header(section.StreamSideData, sd)
	w.Int("rotation", -90)
	w.Footer()
	w.Footer()

	got := finish(t, w, buf)
	if !strings.Contains(got, `<side_data type="Display Matrix">`) {
		t.Fatalf("missing typed element:\n%s", got)
	}
	if !strings.Contains(got, `<side_datum key="rotation" value="-90"/>`) {
		t.Fatalf("missing side datum:\n%s", got)
	}
}

func TestXMLStrictRejectsUnits(t *testing.T) {
	_, err := Open(&bytes.Buffer{}, "xml=x=1", Options{Unit: true})
	if !errors.Is(err, ErrInvalidOption) || !strings.Contains(err.Error(), "-nounit") {
		t.Fatalf("got %v", err)
	}
	w, buf := open(t, "xml=xsd_strict=1", Options{})
	w.Header(section.Root, nil)
	w.Footer()
	if got := finish(t, w, buf); !strings.Contains(got, "<ffprobe:ffprobe xmlns:xsi=") || !strings.HasSuffix(got, "</ffprobe:ffprobe>\n") {
		t.Fatalf("qualified output:\n%s", got)
	}
}

func TestOptionalFields(t *testing.T) {
	cases := []struct {
		spec string
		show ShowOptional
		want bool
	}{
		{"default", OptionalAuto, true},
		{"json", OptionalAuto, false},
		{"json", OptionalAlways, true},
		{"default", OptionalNever, false},
	}
	for _, tc := range cases {
		w, buf := open(t, tc.spec, Options{ShowOptional: tc.show})
		w.Header(section.Root, nil)
		w.Header(section.Format, nil)
		w.TS("start_pts", media.NoPTS)
		w.DurationTime("duration", 0, media.TimeBaseQ)
		w.Footer()
		w.Footer()
		got := strings.Contains(finish(t, w, buf), "N/A")
		if got != tc.want {
			t.Fatalf("%s show=%d: N/A printed %v, want %v", tc.spec, tc.show, got, tc.want)
		}
	}
}

func TestSelectedFieldsOnly(t *testing.T) {
	sel := section.NewOverlay()
	sel.Mark(section.Format, false, []string{"duration"})
	w, buf := open(t, "default", Options{Selection: sel})
	w.Header(section.Root, nil)
	w.Header(section.Format, nil)
	w.Str("filename", "x")
	w.Time("duration", 90000, media.Rational{Num: 1, Den: 90000})
	w.Footer()
	w.Footer()
	if got := finish(t, w, buf); got != "[FORMAT]\nduration=1.000000\n[/FORMAT]\n" {
		t.Fatalf("got %q", got)
	}
}

func TestStringValidation(t *testing.T) {
	w, buf := open(t, "default=svr=?", Options{})
	w.Header(section.Root, nil)
	w.Header(section.Format, nil)
	if err := w.StrValidate("title", "a\xffb"); err != nil {
		t.Fatalf("replace: %v", err)
	}
	w.Footer()
	w.Footer()
	if got := finish(t, w, buf); !strings.Contains(got, "title=a?b\n") {
		t.Fatalf("replace output %q", got)
	}

	w, buf = open(t, "default=sv=fail", Options{})
	w.Header(section.Root, nil)
	w.Header(section.Format, nil)
	if err := w.StrValidate("title", "a\xffb"); !errors.Is(err, ErrInvalidString) {
		t.Fatalf("fail: got %v", err)
	}
	w.Footer()
	w.Footer()
	if got := finish(t, w, buf); strings.Contains(got, "title=") {
		t.Fatalf("invalid string printed: %q", got)
	}

	w, buf = open(t, "xml", Options{})
	w.Header(section.Root, nil)
	w.Header(section.Format, nil)
	w.StrValidate("title", "a\x01b")
	w.Footer()
	w.Footer()
	if got := finish(t, w, buf); !strings.Contains(got, `title="ab"`) {
		t.Fatalf("xml control code kept: %q", got)
	}
}

func TestValueString(t *testing.T) {
	cases := []struct {
		opts Options
		v    Value
		want string
	}{
		{Options{}, Value{I: 42, Unit: UnitHertz}, "42"},
		{Options{Unit: true}, Value{I: 48000, Unit: UnitHertz}, "48000 Hz"},
		{Options{}, Value{F: 1.5, Unit: UnitSecond}, "1.500000"},
		{Options{Sexagesimal: true}, Value{F: 3725.5, Unit: UnitSecond}, "1:02:05.500000"},
		{Options{Unit: true, Prefix: true}, Value{I: 1500000, Unit: UnitBitPerSec}, "1.500000 Mbit/s"},
		{Options{Unit: true, Prefix: true, BinaryPrefix: true}, Value{I: 2048, Unit: UnitByte}, "2 Kibyte"},
		{Options{Prefix: true}, Value{I: 1, Unit: UnitByte}, "1"},
	}
	for _, tc := range cases {
		if got := tc.opts.ValueString(tc.v); got != tc.want {
			t.Fatalf("ValueString(%+v, %+v) = %q, want %q", tc.opts, tc.v, got, tc.want)
		}
	}
}

func TestHexDump(t *testing.T) {
	got := HexDump([]byte("0123456789abcdefXY"))
	lines := strings.Split(got, "\n")
	if lines[0] != "" {
		t.Fatalf("dump must start on a new line: %q", got)
	}
	if want := "00000000: 3031 3233 3435 3637 3839 6162 6364 6566  0123456789abcdef"; lines[1] != want {
		t.Fatalf("line 1 = %q, want %q", lines[1], want)
	}
	if !strings.HasPrefix(lines[2], "00000010: 5859 ") || !strings.HasSuffix(lines[2], "XY") {
		t.Fatalf("line 2 = %q", lines[2])
	}
	if len(lines[2]) != len(lines[1])-14 {
		t.Fatalf("ascii column misaligned: %q", lines[2])
	}
}

func TestDataHash(t *testing.T) {
	w, buf := open(t, "default", Options{Hash: "md5"})
	w.Header(section.Root, nil)
	w.Header(section.Packet, nil)
	w.DataHash("data_hash", []byte("abc"))
	w.Footer()
	w.Footer()
	if got := finish(t, w, buf); !strings.Contains(got, "data_hash=MD5:900150983cd24fb0d6963f7d28e17f72\n") {
		t.Fatalf("got %q", got)
	}
}

func TestOpenErrors(t *testing.T) {
	if _, err := Open(&bytes.Buffer{}, "yaml", Options{}); !errors.Is(err, ErrUnknownWriter) {
		t.Fatalf("unknown writer: %v", err)
	}
	if _, err := Open(&bytes.Buffer{}, "json", Options{Hash: "whirlpool"}); !errors.Is(err, ErrUnknownHash) {
		t.Fatalf("unknown hash: %v", err)
	}
	if _, err := Open(&bytes.Buffer{}, "json=bogus=1", Options{}); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("unknown option: %v", err)
	}
	if _, err := Open(&bytes.Buffer{}, "json=sv=maybe", Options{}); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("bad validation mode: %v", err)
	}
}
