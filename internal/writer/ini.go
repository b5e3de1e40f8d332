package writer

import (
	"fmt"
	"strings"

	"github.com/autobrr/go-avprobe/internal/avopt"
	"github.com/autobrr/go-avprobe/internal/section"
)

type iniFormat struct {
	hierarchical bool
}

func newINI() (Formatter, []avopt.Option) {
	f := &iniFormat{hierarchical: true}
	return f, []avopt.Option{
		{Name: "hierarchical", Alias: "h", Set: avopt.Bool(&f.hierarchical)},
	}
}

func (f *iniFormat) Flags() Flags { return FlagDisplayOptionalFields | FlagSameChapter }

func (f *iniFormat) SectionHeader(w *Context, _ any) {
	s := w.cur()
	p := w.parent()
	w.prefix[w.level] = ""
	if p == nil {
		w.puts("# ffprobe output\n\n")
		return
	}
	if w.nbItem[w.level-1] > 0 {
		w.puts("\n")
	}
	prefix := w.prefix[w.level-1]
	if f.hierarchical || !s.Has(section.IsArray|section.IsWrapper) {
		if prefix != "" {
			prefix += "."
		}
		prefix += s.Name
		if p.Has(section.IsArray) {
			prefix += fmt.Sprintf(".%d", entryIndex(w))
		}
	}
	w.prefix[w.level] = prefix
	if !s.Has(section.IsArray | section.IsWrapper) {
		w.printf("[%s]\n", prefix)
	}
}

func (f *iniFormat) SectionFooter(*Context) {}

func (f *iniFormat) Str(w *Context, key, val string) {
	w.printf("%s=%s\n", iniEscape(key), iniEscape(val))
}

func (f *iniFormat) Int(w *Context, key string, val int64) {
	w.printf("%s=%d\n", key, val)
}

func iniEscape(src string) string {
	var b strings.Builder
	for i := 0; i < len(src); i++ {
		switch c := src[i]; c {
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
		case '\\', '#', '=', ':':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			if c < 32 {
				fmt.Fprintf(&b, `\x00%02x`, c)
			} else {
				b.WriteByte(c)
			}
		}
	}
	return b.String()
}
