package section

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/autobrr/go-avprobe/internal/avopt"
)

var ErrNoMatch = errors.New("no match for section")

// Overlay records which sections and fields a run asked for. The schema
// itself never changes; one Overlay lives for one invocation.
type Overlay struct {
	showAll [Count]bool
	entries [Count]map[string]struct{}
}

func NewOverlay() *Overlay {
	return &Overlay{}
}

// Mark selects fields of one section. With showAll set every field of the
// section and of all its descendants is selected.
func (o *Overlay) Mark(id ID, showAll bool, fields []string) {
	o.showAll[id] = showAll
	if showAll {
		for _, child := range sections[id].Children {
			o.Mark(child, true, nil)
		}
		return
	}
	if len(fields) == 0 {
		return
	}
	if o.entries[id] == nil {
		o.entries[id] = make(map[string]struct{}, len(fields))
	}
	for _, f := range fields {
		o.entries[id][f] = struct{}{}
	}
}

// MarkByName applies Mark to every section matching name and returns how
// many matched.
func (o *Overlay) MarkByName(name string, showAll bool, fields []string) int {
	ids := Match(name)
	for _, id := range ids {
		o.Mark(id, showAll, fields)
	}
	return len(ids)
}

// Active reports whether id or any of its descendants has been selected.
func (o *Overlay) Active(id ID) bool {
	if o.showAll[id] || len(o.entries[id]) > 0 {
		return true
	}
	for _, child := range sections[id].Children {
		if o.Active(child) {
			return true
		}
	}
	return false
}

// Shows reports whether field key of section id should be printed.
func (o *Overlay) Shows(id ID, key string) bool {
	if o.showAll[id] {
		return true
	}
	_, ok := o.entries[id][key]
	return ok
}

func (o *Overlay) ShowsAll(id ID) bool {
	return o.showAll[id]
}

// ParseShowEntries applies a selection of the form
// SECTION[=field1,field2,...][:SECTION2...].
func (o *Overlay) ParseShowEntries(arg string) error {
	p := arg
	for p != "" {
		var name string
		name, p = avopt.Token(p, "=:")
		showAll := true
		var fields []string
		if strings.HasPrefix(p, "=") {
			showAll = false
			p = p[1:]
			for p != "" && p[0] != ':' {
				var entry string
				entry, p = avopt.Token(p, ",:")
				fields = append(fields, entry)
				if strings.HasPrefix(p, ",") {
					p = p[1:]
				}
			}
		}
		if o.MarkByName(name, showAll, fields) == 0 {
			return fmt.Errorf("%w '%s'", ErrNoMatch, name)
		}
		if p != "" {
			p = p[1:]
		}
	}
	return nil
}

// PrintSections writes the schema tree with one flag column per section
// property.
func PrintSections(w io.Writer) {
	fmt.Fprint(w, "Sections:\n"+
		"W... = Section is a wrapper (contains other sections, no local entries)\n"+
		".A.. = Section contains an array of elements of the same type\n"+
		"..V. = Section may contain a variable number of fields with variable keys\n"+
		"...T = Section contain a unique type\n"+
		"FLAGS NAME/UNIQUE_NAME\n"+
		"----\n")
	Walk(func(s *Section, depth int) {
		flag := func(f Flags, c byte) byte {
			if s.Has(f) {
				return c
			}
			return '.'
		}
		fmt.Fprintf(w, "%c%c%c%c", flag(IsWrapper, 'W'), flag(IsArray, 'A'), flag(HasVariableFields, 'V'), flag(HasType, 'T'))
		fmt.Fprintf(w, "%*c  %s", depth*4, ' ', s.Name)
		if s.UniqueName != "" {
			fmt.Fprintf(w, "/%s", s.UniqueName)
		}
		fmt.Fprintln(w)
	})
}
