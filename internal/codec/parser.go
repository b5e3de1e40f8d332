package codec

import (
	"github.com/bluenviron/mediacommon/v2/pkg/codecs/h264"
	"github.com/bluenviron/mediacommon/v2/pkg/codecs/h265"

	"github.com/autobrr/go-avprobe/internal/media"
)

// ParsePacket sets the key flag and, for audio, the duration of a freshly
// demuxed packet from its bitstream headers.
func ParsePacket(st *media.Stream, pkt *media.Packet) {
	par := st.Codecpar
	switch par.CodecName {
	case "h264":
		lengthPrefixed := len(par.ExtraData) > 0 && par.ExtraData[0] == 1
		for _, nalu := range splitNALUs(pkt.Data, lengthPrefixed) {
			if len(nalu) > 0 && h264.NALUType(nalu[0]&0x1f) == h264.NALUTypeIDR {
				pkt.Flags |= media.PacketKey
				return
			}
		}
	case "hevc":
		for _, nalu := range splitNALUs(pkt.Data, false) {
			if len(nalu) < 2 {
				continue
			}
			typ := h265.NALUType((nalu[0] >> 1) & 0x3f)
			if typ >= 16 && typ <= 23 {
				pkt.Flags |= media.PacketKey
				return
			}
		}
	case "aac", "mp2", "mp3", "ac3", "eac3":
		pkt.Flags |= media.PacketKey
		if pkt.Duration > 0 || par.SampleRate <= 0 {
			return
		}
		samples := 0
		data := pkt.Data
		for len(data) > 0 {
			h, ok := audioHeaderAt(par.CodecName, data)
			if !ok || h.frameLen <= 0 || h.frameLen > len(data) {
				break
			}
			samples += h.samples
			data = data[h.frameLen:]
		}
		if samples > 0 {
			pkt.Duration = media.Rescale(int64(samples), media.Rational{Num: 1, Den: par.SampleRate}, st.TimeBase)
		}
	default:
		if par.Type != media.TypeVideo {
			pkt.Flags |= media.PacketKey
		}
	}
}
