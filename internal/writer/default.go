package writer

import (
	"strings"

	"github.com/autobrr/go-avprobe/internal/avopt"
	"github.com/autobrr/go-avprobe/internal/section"
)

// defaultFormat prints [SECTION] blocks with one key=value per line.
type defaultFormat struct {
	nokey      bool
	noWrappers bool
	nested     [maxLevels]bool
}

func newDefault() (Formatter, []avopt.Option) {
	d := &defaultFormat{}
	return d, []avopt.Option{
		{Name: "noprint_wrappers", Alias: "nw", Set: avopt.Bool(&d.noWrappers)},
		{Name: "nokey", Alias: "nk", Set: avopt.Bool(&d.nokey)},
	}
}

func (d *defaultFormat) Flags() Flags { return FlagDisplayOptionalFields }

func (d *defaultFormat) SectionHeader(w *Context, _ any) {
	s := w.cur()
	w.prefix[w.level] = ""
	d.nested[w.level] = false
	if p := w.parent(); p != nil && !p.Has(section.IsWrapper|section.IsArray) {
		d.nested[w.level] = true
		w.prefix[w.level] = w.prefix[w.level-1] + strings.ToUpper(s.Element()) + ":"
	}
	if d.noWrappers || d.nested[w.level] {
		return
	}
	if !s.Has(section.IsWrapper | section.IsArray) {
		w.printf("[%s]\n", strings.ToUpper(s.Name))
	}
}

func (d *defaultFormat) SectionFooter(w *Context) {
	s := w.cur()
	if d.noWrappers || d.nested[w.level] {
		return
	}
	if !s.Has(section.IsWrapper | section.IsArray) {
		w.printf("[/%s]\n", strings.ToUpper(s.Name))
	}
}

func (d *defaultFormat) Str(w *Context, key, val string) {
	if !d.nokey {
		w.printf("%s%s=", w.prefix[w.level], key)
	}
	w.printf("%s\n", val)
}

func (d *defaultFormat) Int(w *Context, key string, val int64) {
	if !d.nokey {
		w.printf("%s%s=", w.prefix[w.level], key)
	}
	w.printf("%d\n", val)
}
