// Package pixdesc is the pixel format registry: one immutable descriptor per
// format describing how its components are packed in memory.
package pixdesc

import (
	"errors"
	"strings"
)

type Flags uint64

const (
	FlagBE Flags = 1 << iota
	FlagPAL
	FlagBitstream
	FlagHWAccel
	FlagPlanar
	FlagRGB
	FlagPseudoPal
	FlagAlpha
	FlagBayer
	FlagFloat
)

// Component describes where one color or alpha channel lives.
// For bitstream formats Step, Offset and Shift are counted in bits.
type Component struct {
	Plane  int
	Step   int
	Offset int
	Shift  int
	Depth  int

	StepMinus1  int
	DepthMinus1 int
	OffsetPlus1 int
}

type Descriptor struct {
	Name         string
	NbComponents int
	Log2ChromaW  int
	Log2ChromaH  int
	Flags        Flags
	Comp         [4]Component
	Alias        string
}

// PixelFormat is the dense index of a descriptor in the registry.
type PixelFormat int

var (
	ErrUnknownFormat = errors.New("unknown pixel format")
	ErrInvalid       = errors.New("invalid pixel format descriptor")
)

func Count() int {
	return len(descriptors)
}

// Get returns the descriptor for f, or nil when f is out of range.
func Get(f PixelFormat) *Descriptor {
	if f < 0 || int(f) >= len(descriptors) {
		return nil
	}
	return &descriptors[f]
}

// Next iterates the registry in id order. Passing nil yields the first entry.
func Next(prev *Descriptor) *Descriptor {
	if prev == nil {
		return &descriptors[0]
	}
	id := prev.ID()
	if id == PixFmtNone || int(id)+1 >= len(descriptors) {
		return nil
	}
	return &descriptors[id+1]
}

func (d *Descriptor) ID() PixelFormat {
	for i := range descriptors {
		if &descriptors[i] == d {
			return PixelFormat(i)
		}
	}
	return PixFmtNone
}

func (d *Descriptor) Has(flag Flags) bool {
	return d.Flags&flag != 0
}

func (d *Descriptor) Aliases() []string {
	if d.Alias == "" {
		return nil
	}
	return strings.Split(d.Alias, ",")
}

func (f PixelFormat) String() string {
	if d := Get(f); d != nil {
		return d.Name
	}
	return "none"
}

func Name(f PixelFormat) (string, bool) {
	d := Get(f)
	if d == nil {
		return "", false
	}
	return d.Name, true
}

func lookupExact(name string) PixelFormat {
	for i := range descriptors {
		d := &descriptors[i]
		if d.Name == name || matchAlias(name, d.Alias) {
			return PixelFormat(i)
		}
	}
	return PixFmtNone
}

func matchAlias(name, list string) bool {
	if list == "" {
		return false
	}
	for _, alias := range strings.Split(list, ",") {
		if strings.EqualFold(alias, name) {
			return true
		}
	}
	return false
}

// Lookup resolves a name or alias. The packed 32-bit names resolve to their
// little-endian layout, and a bare name such as "gray16" falls back to the
// little-endian variant.
func Lookup(name string) PixelFormat {
	switch name {
	case "rgb32":
		name = "bgra"
	case "bgr32":
		name = "rgba"
	}
	f := lookupExact(name)
	if f == PixFmtNone {
		f = lookupExact(name + "le")
	}
	return f
}

// BitsPerPixel counts the bits of one pixel averaged over the subsampled
// block. Components 1 and 2 are chroma and only counted once per block.
func (d *Descriptor) BitsPerPixel() int {
	bits := 0
	log2Pixels := d.Log2ChromaW + d.Log2ChromaH
	for c := 0; c < d.NbComponents; c++ {
		s := log2Pixels
		if c == 1 || c == 2 {
			s = 0
		}
		bits += d.Comp[c].Depth << s
	}
	return bits >> log2Pixels
}

// PaddedBitsPerPixel is like BitsPerPixel but counts whole steps, so padding
// bits inside a packed word are included.
func (d *Descriptor) PaddedBitsPerPixel() int {
	var steps [4]int
	bits := 0
	log2Pixels := d.Log2ChromaW + d.Log2ChromaH
	if d.Has(FlagHWAccel) {
		return 0
	}
	for c := 0; c < d.NbComponents; c++ {
		comp := d.Comp[c]
		s := log2Pixels
		if c == 1 || c == 2 {
			s = 0
		}
		steps[comp.Plane] = comp.Step << s
	}
	for _, step := range steps {
		bits += step
	}
	if !d.Has(FlagBitstream) {
		bits *= 8
	}
	return bits >> log2Pixels
}

// SwapEndianness returns the opposite-endian twin of f, or PixFmtNone.
func SwapEndianness(f PixelFormat) PixelFormat {
	d := Get(f)
	if d == nil || len(d.Name) < 2 {
		return PixFmtNone
	}
	i := len(d.Name) - 2
	suffix := d.Name[i:]
	if suffix != "be" && suffix != "le" {
		return PixFmtNone
	}
	name := []byte(d.Name)
	name[i] ^= 'b' ^ 'l'
	return lookupExact(string(name))
}

func CountPlanes(f PixelFormat) (int, error) {
	d := Get(f)
	if d == nil {
		return 0, ErrUnknownFormat
	}
	var planes [4]bool
	for c := 0; c < d.NbComponents; c++ {
		planes[d.Comp[c].Plane] = true
	}
	n := 0
	for _, used := range planes {
		if used {
			n++
		}
	}
	return n, nil
}

func ChromaSubsample(f PixelFormat) (w, h int, err error) {
	d := Get(f)
	if d == nil {
		return 0, 0, ErrUnknownFormat
	}
	if d.Has(FlagHWAccel) {
		return 0, 0, ErrInvalid
	}
	return d.Log2ChromaW, d.Log2ChromaH, nil
}
