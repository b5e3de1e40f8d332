package probe

import (
	"time"

	"github.com/autobrr/go-avprobe/internal/pixdesc"
	"github.com/autobrr/go-avprobe/internal/section"
	"github.com/autobrr/go-avprobe/internal/version"
)

func (s *Session) showProgramVersion() {
	w := s.w
	w.Header(section.ProgramVersion, nil)
	w.Str("version", version.Format(version.Resolve()))
	w.Str("copyright", version.Copyright(time.Now().Year()))
	w.Str("compiler_ident", version.CompilerIdent())
	w.Str("configuration", version.Configuration())
	w.Footer()
}

func (s *Session) showLibraryVersions() {
	w := s.w
	w.Header(section.LibraryVersions, nil)
	for _, lib := range version.Libraries() {
		w.Header(section.LibraryVersion, nil)
		w.Str("name", lib.Name)
		w.Int("major", int64(lib.Major))
		w.Int("minor", int64(lib.Minor))
		w.Int("micro", int64(lib.Micro))
		w.Int("version", int64(lib.Packed()))
		w.Str("ident", lib.Ident)
		w.Footer()
	}
	w.Footer()
}

var pixFmtFlags = []struct {
	name string
	flag pixdesc.Flags
}{
	{"big_endian", pixdesc.FlagBE},
	{"palette", pixdesc.FlagPAL},
	{"bitstream", pixdesc.FlagBitstream},
	{"hwaccel", pixdesc.FlagHWAccel},
	{"planar", pixdesc.FlagPlanar},
	{"rgb", pixdesc.FlagRGB},
	{"alpha", pixdesc.FlagAlpha},
}

func (s *Session) showPixelFormats() {
	w := s.w
	w.Header(section.PixelFormats, nil)
	for d := pixdesc.Next(nil); d != nil; d = pixdesc.Next(d) {
		w.Header(section.PixelFormat, nil)
		w.Str("name", d.Name)
		w.Int("nb_components", int64(d.NbComponents))
		if d.NbComponents >= 3 && !d.Has(pixdesc.FlagRGB) {
			w.Int("log2_chroma_w", int64(d.Log2ChromaW))
			w.Int("log2_chroma_h", int64(d.Log2ChromaH))
		} else {
			w.StrOpt("log2_chroma_w", "N/A")
			w.StrOpt("log2_chroma_h", "N/A")
		}
		if bpp := d.BitsPerPixel(); bpp != 0 {
			w.Int("bits_per_pixel", int64(bpp))
		} else {
			w.StrOpt("bits_per_pixel", "N/A")
		}
		if w.Active(section.PixelFormatFlags) {
			w.Header(section.PixelFormatFlags, nil)
			for _, f := range pixFmtFlags {
				w.Int(f.name, boolInt(d.Has(f.flag)))
			}
			w.Footer()
		}
		if w.Active(section.PixelFormatComponents) && d.NbComponents > 0 {
			w.Header(section.PixelFormatComponents, nil)
			for i := 0; i < d.NbComponents; i++ {
				w.Header(section.PixelFormatComponent, nil)
				w.Int("index", int64(i+1))
				w.Int("bit_depth", int64(d.Comp[i].Depth))
				w.Footer()
			}
			w.Footer()
		}
		w.Footer()
	}
	w.Footer()
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
