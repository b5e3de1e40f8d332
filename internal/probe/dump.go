package probe

import (
	"fmt"
	"strings"

	"github.com/autobrr/go-avprobe/internal/codec"
	"github.com/autobrr/go-avprobe/internal/media"
	"github.com/autobrr/go-avprobe/internal/pixdesc"
)

// dumpFormat logs a human readable summary of the opened input.
func (s *Session) dumpFormat() {
	fc := s.in.Format
	log := s.log.With("component", "demuxer")

	log.Info(fmt.Sprintf("Input #0, %s, from '%s':", fc.FormatName, fc.Filename))
	for _, e := range fc.Tags.Entries() {
		log.Info(fmt.Sprintf("    %-16s: %s", e.Key, e.Value))
	}

	var b strings.Builder
	b.WriteString("  Duration: ")
	if fc.Duration != media.NoPTS {
		d := fc.Duration + 5000
		secs := d / media.TimeBase
		us := d % media.TimeBase
		fmt.Fprintf(&b, "%02d:%02d:%02d.%02d", secs/3600, (secs/60)%60, secs%60, 100*us/media.TimeBase)
	} else {
		b.WriteString("N/A")
	}
	if fc.StartTime != media.NoPTS {
		secs := fc.StartTime / media.TimeBase
		us := fc.StartTime % media.TimeBase
		if us < 0 {
			us = -us
		}
		fmt.Fprintf(&b, ", start: %d.%06d", secs, us)
	}
	b.WriteString(", bitrate: ")
	if fc.BitRate > 0 {
		fmt.Fprintf(&b, "%d kb/s", fc.BitRate/1000)
	} else {
		b.WriteString("N/A")
	}
	log.Info(b.String())

	for _, p := range fc.Programs {
		name, _ := p.Tags.Get("service_name")
		log.Info(fmt.Sprintf("  Program %d %s", p.ProgramNum, name))
	}
	for _, st := range fc.Streams {
		log.Info(describeStream(st, s.in.Demuxer().ShowIDs))
	}
}

func describeStream(st *media.Stream, showID bool) string {
	par := st.Codecpar
	var b strings.Builder
	fmt.Fprintf(&b, "  Stream #0:%d", st.Index)
	if showID {
		fmt.Fprintf(&b, "[0x%x]", st.ID)
	}
	if lang, ok := st.Tags.Get("language"); ok {
		fmt.Fprintf(&b, "(%s)", lang)
	}
	typ := par.Type.String()
	if typ != "" {
		typ = strings.ToUpper(typ[:1]) + typ[1:]
	}
	name := par.CodecName
	if name == "" {
		name = "none"
	}
	fmt.Fprintf(&b, ": %s: %s", typ, name)
	if profile, ok := codec.ProfileName(par.CodecName, par.Profile); ok {
		fmt.Fprintf(&b, " (%s)", profile)
	}

	switch par.Type {
	case media.TypeVideo:
		if par.PixFmt != pixdesc.PixFmtNone {
			fmt.Fprintf(&b, ", %s", par.PixFmt)
		}
		if par.Width > 0 {
			fmt.Fprintf(&b, ", %dx%d", par.Width, par.Height)
			if sar := guessSAR(par, nil); sar.Num != 0 {
				dar := media.Rational{Num: par.Width * sar.Num, Den: par.Height * sar.Den}.Reduce()
				fmt.Fprintf(&b, " [SAR %d:%d DAR %d:%d]", sar.Num, sar.Den, dar.Num, dar.Den)
			}
		}
		if fps := st.AvgFrameRate; fps.Den != 0 && fps.Num != 0 {
			fmt.Fprintf(&b, ", %.4g fps", fps.Float())
		}
	case media.TypeAudio:
		if par.SampleRate > 0 {
			fmt.Fprintf(&b, ", %d Hz", par.SampleRate)
		}
		if par.Layout.NbChannels > 0 {
			fmt.Fprintf(&b, ", %s", par.Layout.Describe())
		}
		fmt.Fprintf(&b, ", %s", par.SampleFmt)
	}
	if par.BitRate > 0 {
		fmt.Fprintf(&b, ", %d kb/s", par.BitRate/1000)
	}
	return b.String()
}
