package writer

import (
	"fmt"
	"strings"

	"github.com/autobrr/go-avprobe/internal/avopt"
	"github.com/autobrr/go-avprobe/internal/section"
)

// compactFormat prints one line per section with separated fields. The
// csv format is the same printer with different defaults.
type compactFormat struct {
	itemSep      string
	sep          byte
	nokey        bool
	printSection bool
	escapeMode   string
	escape       func(src string, sep byte) string

	nested         [maxLevels]bool
	hasNestedElems [maxLevels]bool
	terminateLine  [maxLevels]bool
}

func compactOptions(c *compactFormat) []avopt.Option {
	return []avopt.Option{
		{Name: "item_sep", Alias: "s", Set: avopt.String(&c.itemSep)},
		{Name: "nokey", Alias: "nk", Set: avopt.Bool(&c.nokey)},
		{Name: "escape", Alias: "e", Set: avopt.String(&c.escapeMode)},
		{Name: "print_section", Alias: "p", Set: avopt.Bool(&c.printSection)},
	}
}

func newCompact() (Formatter, []avopt.Option) {
	c := &compactFormat{itemSep: "|", escapeMode: "c", printSection: true}
	return c, compactOptions(c)
}

func newCSV() (Formatter, []avopt.Option) {
	c := &compactFormat{itemSep: ",", nokey: true, escapeMode: "csv", printSection: true}
	return c, compactOptions(c)
}

func (c *compactFormat) init(_ *Context) error {
	if len(c.itemSep) != 1 {
		return fmt.Errorf("%w: item separator '%s' specified, but must contain a single character", ErrInvalidOption, c.itemSep)
	}
	c.sep = c.itemSep[0]
	switch c.escapeMode {
	case "none":
		c.escape = func(src string, _ byte) string { return src }
	case "c":
		c.escape = cEscape
	case "csv":
		c.escape = csvEscape
	default:
		return fmt.Errorf("%w: unknown escape mode '%s'", ErrInvalidOption, c.escapeMode)
	}
	return nil
}

func (c *compactFormat) Flags() Flags { return FlagDisplayOptionalFields }

func (c *compactFormat) SectionHeader(w *Context, _ any) {
	s := w.cur()
	p := w.parent()
	l := w.level
	c.terminateLine[l] = true
	c.hasNestedElems[l] = false
	c.nested[l] = false
	w.prefix[l] = ""
	if !s.Has(section.IsArray) && p != nil && !p.Has(section.IsWrapper|section.IsArray) {
		c.nested[l] = true
		c.hasNestedElems[l-1] = true
		w.prefix[l] = w.prefix[l-1] + s.Element() + ":"
		w.nbItem[l] = w.nbItem[l-1]
		return
	}
	if p != nil && c.hasNestedElems[l-1] && s.Has(section.IsArray) {
		c.terminateLine[l-1] = false
	}
	if p != nil && !p.Has(section.IsWrapper|section.IsArray) && w.nbItem[l-1] > 0 {
		w.out.WriteByte(c.sep)
	}
	if c.printSection && !s.Has(section.IsWrapper|section.IsArray) {
		w.printf("%s%c", s.Name, c.sep)
	}
}

func (c *compactFormat) SectionFooter(w *Context) {
	l := w.level
	if !c.nested[l] && c.terminateLine[l] && !w.cur().Has(section.IsWrapper|section.IsArray) {
		w.puts("\n")
	}
}

func (c *compactFormat) Str(w *Context, key, val string) {
	if w.nbItem[w.level] > 0 {
		w.out.WriteByte(c.sep)
	}
	if !c.nokey {
		w.printf("%s%s=", w.prefix[w.level], key)
	}
	w.puts(c.escape(val, c.sep))
}

func (c *compactFormat) Int(w *Context, key string, val int64) {
	if w.nbItem[w.level] > 0 {
		w.out.WriteByte(c.sep)
	}
	if !c.nokey {
		w.printf("%s%s=", w.prefix[w.level], key)
	}
	w.printf("%d", val)
}

// cEscape applies C-like escaping and protects the separator.
func cEscape(src string, sep byte) string {
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
		case '\\':
			b.WriteString(`\\`)
		default:
			if c == sep {
				b.WriteByte('\\')
			}
			b.WriteByte(c)
		}
	}
	return b.String()
}

// csvEscape quotes fields holding the separator, quotes or line breaks
// as RFC 4180 asks.
func csvEscape(src string, sep byte) string {
	if !strings.ContainsAny(src, string([]byte{sep, '"', '\n', '\r'})) {
		return src
	}
	return `"` + strings.ReplaceAll(src, `"`, `""`) + `"`
}
