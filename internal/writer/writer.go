// Package writer prints the section tree of a probe report through one of
// several output formats. A Context tracks nesting and item counts; each
// format only decides how headers, footers and fields look.
package writer

import (
	"bufio"
	"errors"
	"fmt"
	"hash"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/autobrr/go-avprobe/internal/avopt"
	"github.com/autobrr/go-avprobe/internal/media"
	"github.com/autobrr/go-avprobe/internal/section"
)

const maxLevels = 10

var (
	ErrUnknownWriter = errors.New("unknown output format")
	ErrUnknownHash   = errors.New("unknown hash algorithm")
	ErrInvalidString = errors.New("invalid UTF-8 sequence found in string")
	ErrInvalidOption = errors.New("invalid writer option")
)

type Flags int

const (
	// FlagDisplayOptionalFields prints N/A placeholders in auto mode.
	FlagDisplayOptionalFields Flags = 1 << iota
	// FlagSameChapter interleaves packets and frames in one section.
	FlagSameChapter
)

// Formatter renders headers, footers and fields for one output format.
type Formatter interface {
	Flags() Flags
	SectionHeader(w *Context, data any)
	SectionFooter(w *Context)
	Int(w *Context, key string, val int64)
	Str(w *Context, key, val string)
}

type initializer interface {
	init(w *Context) error
}

type definition struct {
	name string
	// build returns a fresh formatter and the options it accepts.
	build func() (Formatter, []avopt.Option)
}

var registry = []definition{
	{"default", newDefault},
	{"compact", newCompact},
	{"csv", newCSV},
	{"flat", newFlat},
	{"ini", newINI},
	{"json", newJSON},
	{"xml", newXML},
}

// Names lists the registered output formats.
func Names() []string {
	names := make([]string, len(registry))
	for i, d := range registry {
		names[i] = d.name
	}
	return names
}

func lookup(name string) *definition {
	for i := range registry {
		if registry[i].name == name {
			return &registry[i]
		}
	}
	return nil
}

type Validation int

const (
	ValidationIgnore Validation = iota
	ValidationReplace
	ValidationFail
)

func parseValidation(s string) (Validation, error) {
	switch s {
	case "ignore":
		return ValidationIgnore, nil
	case "replace":
		return ValidationReplace, nil
	case "fail":
		return ValidationFail, nil
	}
	return 0, fmt.Errorf("%w: string validation mode '%s'", avopt.ErrInvalidArg, s)
}

type ShowOptional int

const (
	OptionalAuto ShowOptional = iota
	OptionalNever
	OptionalAlways
)

// ParseShowOptional accepts always, never, auto or the numeric forms
// 1, 0 and -1.
func ParseShowOptional(s string) (ShowOptional, error) {
	switch s {
	case "auto", "-1":
		return OptionalAuto, nil
	case "never", "0":
		return OptionalNever, nil
	case "always", "1":
		return OptionalAlways, nil
	}
	return 0, fmt.Errorf("%w: show_optional_fields '%s'", avopt.ErrInvalidArg, s)
}

// Options are the report wide settings shared by every format.
type Options struct {
	ShowOptional ShowOptional
	Unit         bool
	Prefix       bool
	BinaryPrefix bool
	Sexagesimal  bool
	ShowPrivate  bool
	// Hash names the digest used by DataHash. Empty disables hashing.
	Hash      string
	Selection *section.Overlay
	Logger    *slog.Logger
}

// Context is an open report. It is not safe for concurrent use.
type Context struct {
	name string
	f    Formatter
	out  *bufio.Writer
	opts Options
	sel  *section.Overlay
	log  *slog.Logger

	hashName string
	hash     hash.Hash

	validation  Validation
	replacement string
	xmlControl  bool

	level      int
	nbItem     [maxLevels]int
	nbItemType [maxLevels][section.Count]int
	sections   [maxLevels]*section.Section
	prefix     [maxLevels]string
}

// Open creates a report writer from a "name[=opt=val:opt=val]" spec.
func Open(out io.Writer, spec string, opts Options) (*Context, error) {
	name, args, _ := strings.Cut(spec, "=")
	def := lookup(name)
	if def == nil {
		return nil, fmt.Errorf("%w with name '%s'", ErrUnknownWriter, name)
	}
	f, fopts := def.build()

	w := &Context{
		name:       name,
		f:          f,
		out:        bufio.NewWriter(out),
		opts:       opts,
		sel:        opts.Selection,
		log:        opts.Logger,
		validation: ValidationReplace,
		level:      -1,
	}
	if w.log == nil {
		w.log = slog.New(slog.DiscardHandler)
	}
	if w.sel == nil {
		w.sel = section.NewOverlay()
		w.sel.Mark(section.Root, true, nil)
	}
	if opts.Hash != "" {
		h, canonical, err := NewHash(opts.Hash)
		if err != nil {
			return nil, err
		}
		w.hash, w.hashName = h, canonical
	}

	all := append([]avopt.Option{
		{Name: "string_validation", Alias: "sv", Set: func(s string) error {
			v, err := parseValidation(s)
			w.validation = v
			return err
		}},
		{Name: "string_validation_replacement", Alias: "svr", Set: avopt.String(&w.replacement)},
	}, fopts...)
	if args != "" {
		pairs, err := avopt.ParseDict(args, "=", ":")
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse option string '%s' provided to writer context: %w", ErrInvalidOption, args, err)
		}
		if err := avopt.Apply(all, pairs); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidOption, err)
		}
	}
	if !utf8.ValidString(w.replacement) {
		return nil, fmt.Errorf("%w: invalid UTF8 sequence found in string validation replace '%s'", ErrInvalidOption, w.replacement)
	}
	if name == "xml" {
		w.xmlControl = true
	}
	if in, ok := f.(initializer); ok {
		if err := in.init(w); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (w *Context) Name() string { return w.name }

func (w *Context) Flags() Flags { return w.f.Flags() }

// SameChapter reports whether packets and frames share one section.
func (w *Context) SameChapter() bool { return w.f.Flags()&FlagSameChapter != 0 }

// Active reports whether section id or one of its descendants was selected.
func (w *Context) Active(id section.ID) bool { return w.sel.Active(id) }

// Level returns the current nesting depth, -1 before the root header.
func (w *Context) Level() int { return w.level }

// Close flushes buffered output.
func (w *Context) Close() error {
	return w.out.Flush()
}

func (w *Context) printf(format string, args ...any) {
	fmt.Fprintf(w.out, format, args...)
}

func (w *Context) puts(s string) {
	w.out.WriteString(s)
}

// indent writes n*4 columns, at least one.
func (w *Context) indent(n int) {
	w.printf("%*c", n*4, ' ')
}

func (w *Context) cur() *section.Section { return w.sections[w.level] }

func (w *Context) parent() *section.Section {
	if w.level <= 0 {
		return nil
	}
	return w.sections[w.level-1]
}

// Header opens section id. data is the live object for typed sections.
func (w *Context) Header(id section.ID, data any) {
	w.level++
	if w.level >= maxLevels {
		panic("writer: section nesting too deep")
	}
	w.nbItem[w.level] = 0
	w.nbItemType[w.level] = [section.Count]int{}
	w.sections[w.level] = section.Get(id)
	w.f.SectionHeader(w, data)
}

func (w *Context) Footer() {
	id := w.sections[w.level].ID
	if w.level > 0 {
		w.nbItem[w.level-1]++
		w.nbItemType[w.level-1][id]++
	}
	w.f.SectionFooter(w)
	w.level--
}

func (w *Context) shows(key string) bool {
	return w.sel.Shows(w.cur().ID, key)
}

func (w *Context) Int(key string, val int64) {
	if w.shows(key) {
		w.f.Int(w, key, val)
		w.nbItem[w.level]++
	}
}

const (
	strOptional = 1 << iota
	strValidate
)

func (w *Context) Str(key, val string)    { w.str(key, val, 0) }
func (w *Context) StrOpt(key, val string) { w.str(key, val, strOptional) }

// StrValidate prints a string coming from the input, checking it is valid
// UTF-8 according to the string validation mode.
func (w *Context) StrValidate(key, val string) error {
	return w.str(key, val, strValidate)
}

func (w *Context) Fmt(key, format string, args ...any) {
	w.str(key, fmt.Sprintf(format, args...), 0)
}

func (w *Context) str(key, val string, flags int) error {
	show := w.opts.ShowOptional
	if show == OptionalNever ||
		(show == OptionalAuto && flags&strOptional != 0 && w.f.Flags()&FlagDisplayOptionalFields == 0) {
		return nil
	}
	if !w.shows(key) {
		return nil
	}
	var err error
	if flags&strValidate != 0 {
		var k, v string
		if k, err = w.validate(key); err == nil {
			if v, err = w.validate(val); err == nil {
				w.f.Str(w, k, v)
			}
		}
		if err != nil {
			w.log.Error(fmt.Sprintf("Invalid key=value string combination %s=%s in section %s", key, val, w.cur().Unique()))
		}
	} else {
		w.f.Str(w, key, val)
	}
	w.nbItem[w.level]++
	return err
}

func (w *Context) validRune(r rune, size int) bool {
	if r == utf8.RuneError && size <= 1 {
		return false
	}
	if r == 0xfffe || r == 0xffff {
		return false
	}
	if w.xmlControl && r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
		return false
	}
	return true
}

func (w *Context) validate(src string) (string, error) {
	var b strings.Builder
	invalid := 0
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRuneInString(src[i:])
		chunk := src[i : i+size]
		i += size
		if w.validRune(r, size) {
			b.WriteString(chunk)
			continue
		}
		invalid++
		switch w.validation {
		case ValidationFail:
			w.log.Error(fmt.Sprintf("Invalid UTF-8 sequence found in string '%s'", src))
			return "", ErrInvalidString
		case ValidationReplace:
			b.WriteString(w.replacement)
		case ValidationIgnore:
			b.WriteString(chunk)
		}
	}
	if invalid > 0 && w.validation == ValidationReplace {
		w.log.Warn(fmt.Sprintf("%d invalid UTF-8 sequence(s) found in string '%s', replaced with '%s'", invalid, src, w.replacement))
	}
	return b.String(), nil
}

// Rational prints q as num, sep, den.
func (w *Context) Rational(key string, q media.Rational, sep byte) {
	w.str(key, fmt.Sprintf("%d%c%d", q.Num, sep, q.Den), 0)
}

// Time prints ts scaled by tb in seconds, or N/A for an unset timestamp.
func (w *Context) Time(key string, ts int64, tb media.Rational) {
	w.time(key, ts, tb, false)
}

// DurationTime is Time for durations, where zero means unknown.
func (w *Context) DurationTime(key string, ts int64, tb media.Rational) {
	w.time(key, ts, tb, true)
}

func (w *Context) time(key string, ts int64, tb media.Rational, isDuration bool) {
	if (!isDuration && ts == media.NoPTS) || (isDuration && ts == 0) {
		w.str(key, "N/A", strOptional)
		return
	}
	d := float64(ts) * tb.Float()
	w.str(key, w.opts.ValueString(Value{F: d, Unit: UnitSecond}), 0)
}

// TS prints a raw timestamp, or N/A when unset.
func (w *Context) TS(key string, ts int64) {
	if ts == media.NoPTS {
		w.str(key, "N/A", strOptional)
		return
	}
	w.Int(key, ts)
}

func (w *Context) DurationTS(key string, ts int64) {
	if ts == 0 {
		w.str(key, "N/A", strOptional)
		return
	}
	w.Int(key, ts)
}

// Val prints an integer with its unit according to the value options.
func (w *Context) Val(key string, v int64, unit Unit) {
	w.str(key, w.opts.ValueString(Value{I: v, Unit: unit}), 0)
}

// Data prints a hex dump, 16 bytes per line with an ASCII column.
func (w *Context) Data(key string, data []byte) {
	w.str(key, HexDump(data), 0)
}

// HexDump formats data the way Data prints it.
func HexDump(data []byte) string {
	var b strings.Builder
	b.WriteString("\n")
	offset := 0
	for len(data) > 0 {
		fmt.Fprintf(&b, "%08x: ", offset)
		l := min(len(data), 16)
		i := 0
		for ; i < l; i++ {
			fmt.Fprintf(&b, "%02x", data[i])
			if i&1 == 1 {
				b.WriteByte(' ')
			}
		}
		b.WriteString(strings.Repeat(" ", 41-2*i-i/2))
		for i = 0; i < l; i++ {
			c := data[i]
			if c-32 >= 95 {
				c = '.'
			}
			b.WriteByte(c)
		}
		b.WriteString("\n")
		offset += l
		data = data[l:]
	}
	return b.String()
}

// DataHash prints "NAME:hexdigest" of data when a hash is configured.
func (w *Context) DataHash(key string, data []byte) {
	if w.hash == nil {
		return
	}
	w.hash.Reset()
	w.hash.Write(data)
	w.str(key, fmt.Sprintf("%s:%x", w.hashName, w.hash.Sum(nil)), 0)
}

// Integers prints n little-endian values of size bytes from data, columns
// per line, each rendered with format.
func (w *Context) Integers(key string, data []byte, n int, format string, columns, bytes, offsetAdd int) {
	var b strings.Builder
	b.WriteString("\n")
	offset := 0
	for n > 0 {
		fmt.Fprintf(&b, "%08x: ", offset)
		l := min(n, columns)
		for i := 0; i < l; i++ {
			switch bytes {
			case 1:
				fmt.Fprintf(&b, format, data[0])
			case 2:
				fmt.Fprintf(&b, format, uint16(data[0])|uint16(data[1])<<8)
			case 4:
				fmt.Fprintf(&b, format, int32(uint32(data[0])|uint32(data[1])<<8|uint32(data[2])<<16|uint32(data[3])<<24))
			}
			data = data[bytes:]
			n--
		}
		b.WriteString("\n")
		offset += offsetAdd
	}
	w.str(key, b.String(), 0)
}
