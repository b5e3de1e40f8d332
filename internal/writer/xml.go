package writer

import (
	"fmt"
	"strings"

	"github.com/autobrr/go-avprobe/internal/avopt"
	"github.com/autobrr/go-avprobe/internal/section"
)

const xmlQualified = ` xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" ` +
	`xmlns:ffprobe="http://www.ffmpeg.org/schema/ffprobe" ` +
	`xsi:schemaLocation="http://www.ffmpeg.org/schema/ffprobe ffprobe.xsd"`

type xmlFormat struct {
	withinTag      bool
	indentLevel    int
	fullyQualified bool
	xsdStrict      bool
}

func newXML() (Formatter, []avopt.Option) {
	f := &xmlFormat{}
	return f, []avopt.Option{
		{Name: "fully_qualified", Alias: "q", Set: avopt.Bool(&f.fullyQualified)},
		{Name: "xsd_strict", Alias: "x", Set: avopt.Bool(&f.xsdStrict)},
	}
}

func (f *xmlFormat) init(w *Context) error {
	if !f.xsdStrict {
		return nil
	}
	f.fullyQualified = true
	for _, c := range []struct {
		on   bool
		name string
	}{
		{w.opts.ShowPrivate, "private"},
		{w.opts.Unit, "unit"},
		{w.opts.Prefix, "prefix"},
	} {
		if c.on {
			return fmt.Errorf("%w: XSD-compliant output selected but option '%s' was selected, XML output may be non-compliant.\n"+
				"You need to disable such option with '-no%s'", ErrInvalidOption, c.name, c.name)
		}
	}
	return nil
}

func (f *xmlFormat) Flags() Flags { return FlagSameChapter }

func (f *xmlFormat) ns() string {
	if f.fullyQualified {
		return "ffprobe:"
	}
	return ""
}

func (f *xmlFormat) SectionHeader(w *Context, data any) {
	s := w.cur()
	p := w.parent()
	if w.level == 0 {
		qual := ""
		if f.fullyQualified {
			qual = xmlQualified
		}
		w.puts("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
		w.printf("<%sffprobe%s>\n", f.ns(), qual)
		return
	}
	if f.withinTag {
		f.withinTag = false
		w.puts(">\n")
	}
	if p != nil && p.Has(section.IsWrapper) && w.nbItem[w.level-1] > 0 {
		w.puts("\n")
	}
	f.indentLevel++
	w.indent(f.indentLevel)
	if s.Has(section.IsArray | section.HasVariableFields) {
		w.printf("<%s", s.Name)
		if s.Has(section.HasType) && s.GetType != nil {
			w.printf(" type=\"%s\"", xmlEscape(s.GetType(data)))
		}
		w.puts(">\n")
		return
	}
	w.printf("<%s ", s.Name)
	f.withinTag = true
}

func (f *xmlFormat) SectionFooter(w *Context) {
	s := w.cur()
	switch {
	case w.level == 0:
		w.printf("</%sffprobe>\n", f.ns())
	case f.withinTag:
		f.withinTag = false
		w.puts("/>\n")
		f.indentLevel--
	default:
		w.indent(f.indentLevel)
		w.printf("</%s>\n", s.Name)
		f.indentLevel--
	}
}

func (f *xmlFormat) Str(w *Context, key, val string) {
	s := w.cur()
	if s.Has(section.HasVariableFields) {
		f.indentLevel++
		w.indent(f.indentLevel)
		w.printf("<%s key=\"%s\" value=\"%s\"/>\n", s.Element(), xmlEscape(key), xmlEscape(val))
		f.indentLevel--
		return
	}
	if w.nbItem[w.level] > 0 {
		w.puts(" ")
	}
	w.printf("%s=\"%s\"", key, xmlEscape(val))
}

func (f *xmlFormat) Int(w *Context, key string, val int64) {
	s := w.cur()
	if s.Has(section.HasVariableFields) {
		f.Str(w, key, fmt.Sprint(val))
		return
	}
	if w.nbItem[w.level] > 0 {
		w.puts(" ")
	}
	w.printf("%s=\"%d\"", key, val)
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func xmlEscape(src string) string {
	return xmlReplacer.Replace(src)
}
