package writer

import (
	"fmt"
	"strings"

	"github.com/autobrr/go-avprobe/internal/avopt"
	"github.com/autobrr/go-avprobe/internal/section"
)

type jsonFormat struct {
	compact      bool
	indentLevel  int
	itemSep      string
	itemStartEnd string
}

func newJSON() (Formatter, []avopt.Option) {
	f := &jsonFormat{}
	return f, []avopt.Option{
		{Name: "compact", Alias: "c", Set: avopt.Bool(&f.compact)},
	}
}

func (f *jsonFormat) init(_ *Context) error {
	f.itemSep, f.itemStartEnd = ",\n", "\n"
	if f.compact {
		f.itemSep, f.itemStartEnd = ", ", " "
	}
	return nil
}

func (f *jsonFormat) Flags() Flags { return FlagSameChapter }

func (f *jsonFormat) SectionHeader(w *Context, _ any) {
	s := w.cur()
	p := w.parent()
	if w.level > 0 && w.nbItem[w.level-1] > 0 {
		w.puts(",\n")
	}
	if s.Has(section.IsWrapper) {
		w.puts("{\n")
		f.indentLevel++
		return
	}
	name := jsonEscape(s.Name)
	w.indent(f.indentLevel)
	f.indentLevel++
	switch {
	case s.Has(section.IsArray):
		w.printf("\"%s\": [\n", name)
	case p != nil && !p.Has(section.IsArray):
		w.printf("\"%s\": {%s", name, f.itemStartEnd)
	default:
		w.printf("{%s", f.itemStartEnd)
		// lets readers tell interleaved packets and frames apart
		if p != nil && p.Has(section.NumberingByType) {
			if !f.compact {
				w.indent(f.indentLevel)
			}
			w.printf("\"type\": \"%s\"", name)
			w.nbItem[w.level]++
		}
	}
}

func (f *jsonFormat) SectionFooter(w *Context) {
	s := w.cur()
	switch {
	case w.level == 0:
		f.indentLevel--
		w.puts("\n}\n")
	case s.Has(section.IsArray):
		w.puts("\n")
		f.indentLevel--
		w.indent(f.indentLevel)
		w.puts("]")
	default:
		w.puts(f.itemStartEnd)
		f.indentLevel--
		if !f.compact {
			w.indent(f.indentLevel)
		}
		w.puts("}")
	}
}

func (f *jsonFormat) item(w *Context) {
	if w.nbItem[w.level] > 0 {
		w.puts(f.itemSep)
	}
	if !f.compact {
		w.indent(f.indentLevel)
	}
}

func (f *jsonFormat) Str(w *Context, key, val string) {
	f.item(w)
	w.printf("\"%s\": \"%s\"", jsonEscape(key), jsonEscape(val))
}

func (f *jsonFormat) Int(w *Context, key string, val int64) {
	f.item(w)
	w.printf("\"%s\": %d", jsonEscape(key), val)
}

func jsonEscape(src string) string {
	var b strings.Builder
	for i := 0; i < len(src); i++ {
		switch c := src[i]; c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if c < 32 {
				fmt.Fprintf(&b, `\u00%02x`, c)
			} else {
				b.WriteByte(c)
			}
		}
	}
	return b.String()
}
