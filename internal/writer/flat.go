package writer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/autobrr/go-avprobe/internal/avopt"
	"github.com/autobrr/go-avprobe/internal/section"
)

// flatFormat prints one shell-sourceable assignment per field.
type flatFormat struct {
	sepStr       string
	hierarchical bool
}

func newFlat() (Formatter, []avopt.Option) {
	f := &flatFormat{sepStr: ".", hierarchical: true}
	return f, []avopt.Option{
		{Name: "sep_char", Alias: "s", Set: avopt.String(&f.sepStr)},
		{Name: "hierarchical", Alias: "h", Set: avopt.Bool(&f.hierarchical)},
	}
}

func (f *flatFormat) init(_ *Context) error {
	if len(f.sepStr) != 1 {
		return fmt.Errorf("%w: item separator '%s' specified, but must contain a single character", ErrInvalidOption, f.sepStr)
	}
	return nil
}

func (f *flatFormat) Flags() Flags { return FlagDisplayOptionalFields | FlagSameChapter }

// entryIndex numbers the current section inside its array parent.
func entryIndex(w *Context) int {
	p := w.parent()
	if p.Has(section.NumberingByType) {
		return w.nbItemType[w.level-1][w.cur().ID]
	}
	return w.nbItem[w.level-1]
}

func (f *flatFormat) SectionHeader(w *Context, _ any) {
	s := w.cur()
	p := w.parent()
	w.prefix[w.level] = ""
	if p == nil {
		return
	}
	prefix := w.prefix[w.level-1]
	if f.hierarchical || !s.Has(section.IsArray|section.IsWrapper) {
		prefix += s.Name + f.sepStr
		if p.Has(section.IsArray) {
			prefix += strconv.Itoa(entryIndex(w)) + f.sepStr
		}
	}
	w.prefix[w.level] = prefix
}

func (f *flatFormat) SectionFooter(*Context) {}

func (f *flatFormat) Int(w *Context, key string, val int64) {
	w.printf("%s%s=%d\n", w.prefix[w.level], key, val)
}

func (f *flatFormat) Str(w *Context, key, val string) {
	w.printf("%s%s=\"%s\"\n", w.prefix[w.level], flatKey(key), flatValue(val))
}

func flatKey(src string) string {
	b := []byte(src)
	for i, c := range b {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			b[i] = '_'
		}
	}
	return string(b)
}

var flatReplacer = strings.NewReplacer(
	"\n", `\n`,
	"\r", `\r`,
	`\`, `\\`,
	`"`, `\"`,
	"`", "\\`",
	"$", `\$`,
)

func flatValue(src string) string {
	return flatReplacer.Replace(src)
}
