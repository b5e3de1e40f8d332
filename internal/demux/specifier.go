package demux

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/autobrr/go-avprobe/internal/audio"
	"github.com/autobrr/go-avprobe/internal/media"
	"github.com/autobrr/go-avprobe/internal/pixdesc"
)

var ErrInvalidSpecifier = errors.New("invalid stream specifier")

// StreamSpecifier selects streams the way -select_streams does:
//
//	[v|a|s|d|t|V][:p:<program>][:#<id>|:i:<id>][:m:<key>[:<value>]][:u][:<index>]
//
// An index counts only the streams matched by the rest of the specifier,
// within the program when one is given.
type StreamSpecifier struct {
	typ        media.Type
	hasType    bool
	noAttached bool

	program    int
	hasProgram bool

	id    int
	hasID bool

	key, value string
	hasKey     bool
	hasValue   bool

	usable bool

	index    int
	hasIndex bool
}

// ParseStreamSpecifier parses spec. An empty specifier matches every
// stream.
func ParseStreamSpecifier(spec string) (*StreamSpecifier, error) {
	s := &StreamSpecifier{}
	orig := spec
	for spec != "" {
		switch c := spec[0]; {
		case c >= '0' && c <= '9':
			n, err := strconv.Atoi(spec)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w: %q", ErrInvalidSpecifier, orig)
			}
			s.index, s.hasIndex = n, true
			spec = ""
			continue
		case (len(spec) == 1 || spec[1] == ':') && strings.IndexByte("vasdtV", c) >= 0:
			if s.hasType {
				return nil, fmt.Errorf("%w: %q has two stream types", ErrInvalidSpecifier, orig)
			}
			s.hasType = true
			switch c {
			case 'v':
				s.typ = media.TypeVideo
			case 'V':
				s.typ, s.noAttached = media.TypeVideo, true
			case 'a':
				s.typ = media.TypeAudio
			case 's':
				s.typ = media.TypeSubtitle
			case 'd':
				s.typ = media.TypeData
			case 't':
				s.typ = media.TypeAttachment
			}
			spec = spec[1:]
		case strings.HasPrefix(spec, "p:"):
			n, rest, err := leadingInt(spec[2:])
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidSpecifier, orig)
			}
			s.program, s.hasProgram = int(n), true
			spec = rest
		case c == '#' || strings.HasPrefix(spec, "i:"):
			if c == '#' {
				spec = spec[1:]
			} else {
				spec = spec[2:]
			}
			n, rest, err := leadingInt(spec)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidSpecifier, orig)
			}
			s.id, s.hasID = int(n), true
			spec = rest
		case strings.HasPrefix(spec, "m:"):
			kv := spec[2:]
			if k, v, ok := strings.Cut(kv, ":"); ok {
				s.key, s.value, s.hasValue = k, v, true
			} else {
				s.key = kv
			}
			if s.key == "" {
				return nil, fmt.Errorf("%w: %q", ErrInvalidSpecifier, orig)
			}
			s.hasKey = true
			spec = ""
			continue
		case c == 'u' && (len(spec) == 1 || spec[1] == ':'):
			s.usable = true
			spec = spec[1:]
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidSpecifier, orig)
		}
		if spec != "" {
			if spec[0] != ':' {
				return nil, fmt.Errorf("%w: %q", ErrInvalidSpecifier, orig)
			}
			spec = spec[1:]
		}
	}
	return s, nil
}

// leadingInt parses the integer at the start of s, in base 10 or with a
// 0x prefix, and returns the rest.
func leadingInt(s string) (int64, string, error) {
	end := strings.IndexByte(s, ':')
	if end < 0 {
		end = len(s)
	}
	n, err := strconv.ParseInt(s[:end], 0, 64)
	return n, s[end:], err
}

// Match reports whether st of fc is selected.
func (s *StreamSpecifier) Match(fc *media.FormatContext, st *media.Stream) bool {
	if !s.matchBase(fc, st) {
		return false
	}
	if !s.hasIndex {
		return true
	}
	candidates := fc.Streams
	if s.hasProgram {
		candidates = nil
		for _, p := range fc.Programs {
			if p.ID != s.program {
				continue
			}
			for _, idx := range p.Streams {
				if idx < len(fc.Streams) {
					candidates = append(candidates, fc.Streams[idx])
				}
			}
		}
	}
	n := 0
	for _, c := range candidates {
		if !s.matchBase(fc, c) {
			continue
		}
		if c == st {
			return n == s.index
		}
		n++
	}
	return false
}

func (s *StreamSpecifier) matchBase(fc *media.FormatContext, st *media.Stream) bool {
	par := st.Codecpar
	if s.hasType {
		if par.Type != s.typ {
			return false
		}
		if s.noAttached && st.Disposition.Has(media.DispositionAttachedPic) {
			return false
		}
	}
	if s.hasProgram {
		found := false
		for _, p := range fc.Programs {
			if p.ID == s.program && containsInt(p.Streams, st.Index) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if s.hasID && st.ID != s.id {
		return false
	}
	if s.hasKey {
		v, ok := st.Tags.Get(s.key)
		if !ok || (s.hasValue && v != s.value) {
			return false
		}
	}
	if s.usable && !usable(par) {
		return false
	}
	return true
}

// usable reports whether the codec parameters are complete enough to
// decode the stream.
func usable(par *media.CodecParameters) bool {
	if par.CodecName == "" {
		return false
	}
	switch par.Type {
	case media.TypeAudio:
		return par.SampleRate > 0 && par.Layout.NbChannels > 0 && par.SampleFmt != audio.SampleFmtNone
	case media.TypeVideo:
		return par.Width > 0 && par.Height > 0 && par.PixFmt != pixdesc.PixFmtNone
	case media.TypeUnknown:
		return false
	}
	return true
}
