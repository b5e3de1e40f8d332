package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/autobrr/go-avprobe/internal/media"
)

// SubtitleDecoder turns subtitle packets into display events. A nil
// subtitle with a nil error means the packet did not complete an event.
type SubtitleDecoder interface {
	DecodeSubtitle(pkt *media.Packet) (*media.Subtitle, error)
}

func NewSubtitleDecoder(st *media.Stream) (SubtitleDecoder, error) {
	switch st.Codecpar.CodecName {
	case "dvb_subtitle":
		return &dvbSubDecoder{tb: st.TimeBase}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrDecoderNotFound, st.Codecpar.CodecName)
}

const (
	dvbSegmentPage       = 0x10
	dvbSegmentEndDisplay = 0x80
)

// dvbSubDecoder tracks page composition segments far enough to report
// timing and region counts. Region pixel data is not decoded.
type dvbSubDecoder struct {
	tb      media.Rational
	timeout int
	regions int
}

func (d *dvbSubDecoder) DecodeSubtitle(pkt *media.Packet) (*media.Subtitle, error) {
	p := pkt.Data
	// data_identifier and subtitle_stream_id
	if len(p) >= 2 && p[0] == 0x20 && p[1] == 0x00 {
		p = p[2:]
	}
	if len(p) <= 6 || p[0] != 0x0f {
		return nil, media.ErrInvalidData
	}

	var sub *media.Subtitle
	for len(p) >= 6 && p[0] == 0x0f {
		n := int(binary.BigEndian.Uint16(p[4:6]))
		if len(p) < 6+n {
			return nil, media.ErrInvalidData
		}
		seg := p[6 : 6+n]
		switch p[1] {
		case dvbSegmentPage:
			if len(seg) >= 2 {
				d.timeout = int(seg[0])
				d.regions = (len(seg) - 2) / 6
			}
		case dvbSegmentEndDisplay:
			pts := media.NoPTS
			if pkt.PTS != media.NoPTS {
				pts = media.Rescale(pkt.PTS, d.tb, media.TimeBaseQ)
			}
			sub = &media.Subtitle{
				PTS:            pts,
				EndDisplayTime: uint32(d.timeout) * 1000,
				NumRects:       d.regions,
			}
		}
		p = p[6+n:]
	}
	return sub, nil
}
