package codec

import (
	"github.com/bluenviron/mediacommon/v2/pkg/codecs/mpeg4audio"

	"github.com/autobrr/go-avprobe/internal/audio"
	"github.com/autobrr/go-avprobe/internal/media"
)

// audioHeader is the information one compressed audio frame header
// carries.
type audioHeader struct {
	codec      string
	sampleRate int
	layout     audio.ChannelLayout
	samples    int
	frameLen   int
	bitRate    int64
	profile    int
	sampleFmt  audio.SampleFormat
}

func (h audioHeader) apply(par *media.CodecParameters) {
	par.CodecName = h.codec
	par.SampleRate = h.sampleRate
	par.Layout = h.layout
	par.FrameSize = h.samples
	par.SampleFmt = h.sampleFmt
	if h.bitRate > 0 {
		par.BitRate = h.bitRate
	}
	if h.profile != media.ProfileUnknown {
		par.Profile = h.profile
	}
}

// parseAudioHeader finds the first frame header of the codec family in
// data.
func parseAudioHeader(codecName string, data []byte) (audioHeader, bool) {
	for i := 0; i+7 <= len(data); i++ {
		if h, ok := audioHeaderAt(codecName, data[i:]); ok {
			return h, true
		}
	}
	return audioHeader{}, false
}

func audioHeaderAt(codecName string, data []byte) (audioHeader, bool) {
	switch codecName {
	case "aac":
		return parseADTSHeader(data)
	case "mp2", "mp3":
		return parseMPEGAudioHeader(data)
	case "ac3", "eac3":
		return parseAC3Header(data)
	}
	return audioHeader{}, false
}

func chMask(chs ...audio.Channel) uint64 {
	var m uint64
	for _, c := range chs {
		m |= 1 << uint(c)
	}
	return m
}

var adtsSampleRates = []int{
	96000, 88200, 64000, 48000, 44100, 32000, 24000, 22050,
	16000, 12000, 11025, 8000, 7350, 0, 0, 0,
}

// aacLayout maps an MPEG-4 channel configuration onto a layout.
func aacLayout(config int) audio.ChannelLayout {
	names := []string{"", "mono", "stereo", "3.0", "4.0", "5.0", "5.1", "7.1(wide)"}
	if config <= 0 || config >= len(names) {
		return audio.DefaultLayout(config)
	}
	l, err := audio.ParseLayout(names[config])
	if err != nil {
		return audio.DefaultLayout(config)
	}
	return l
}

// aacProfile maps an audio object type onto a profile id.
func aacProfile(objectType int) int {
	switch {
	case objectType >= 1 && objectType <= 4:
		return objectType - 1
	case objectType == 5:
		return 4
	case objectType == 29:
		return 28
	case objectType == 23:
		return 22
	case objectType == 39:
		return 38
	}
	return media.ProfileUnknown
}

func parseADTSHeader(data []byte) (audioHeader, bool) {
	if len(data) < 7 || data[0] != 0xff || data[1]&0xf6 != 0xf0 {
		return audioHeader{}, false
	}
	objectType := int(data[2]>>6) + 1
	rate := adtsSampleRates[(data[2]>>2)&0x0f]
	if rate == 0 {
		return audioHeader{}, false
	}
	channelConfig := int(data[2]&0x01)<<2 | int(data[3]>>6)
	frameLen := int(data[3]&0x03)<<11 | int(data[4])<<3 | int(data[5]>>5)
	headerLen := 7
	if data[1]&0x01 == 0 {
		headerLen = 9
	}
	if frameLen < headerLen {
		return audioHeader{}, false
	}
	blocks := int(data[6]&0x03) + 1
	samples := 1024 * blocks
	return audioHeader{
		codec:      "aac",
		sampleRate: rate,
		layout:     aacLayout(channelConfig),
		samples:    samples,
		frameLen:   frameLen,
		bitRate:    int64(frameLen) * 8 * int64(rate) / int64(samples),
		profile:    aacProfile(objectType),
		sampleFmt:  audio.SampleFmtFLTP,
	}, true
}

// applyAudioSpecificConfig fills AAC parameters from MPEG-4 extradata.
func applyAudioSpecificConfig(par *media.CodecParameters, extradata []byte) bool {
	var conf mpeg4audio.AudioSpecificConfig
	if err := conf.Unmarshal(extradata); err != nil {
		return false
	}
	par.SampleRate = conf.SampleRate
	par.Layout = aacLayout(conf.ChannelCount)
	par.Profile = aacProfile(int(conf.Type))
	par.SampleFmt = audio.SampleFmtFLTP
	par.FrameSize = 1024
	return conf.SampleRate > 0
}

func mpegAudioSampleRate(versionID, index byte) int {
	var rates []int
	switch versionID {
	case 0x03:
		rates = []int{44100, 48000, 32000}
	case 0x02:
		rates = []int{22050, 24000, 16000}
	case 0x00:
		rates = []int{11025, 12000, 8000}
	}
	if int(index) >= len(rates) {
		return 0
	}
	return rates[index]
}

func mpegAudioBitrateKbps(versionID, layerID, index byte) int {
	var rates []int
	switch layerID {
	case 0x03: // Layer I
		if versionID == 0x03 {
			rates = []int{0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448}
		} else {
			rates = []int{0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256}
		}
	case 0x02: // Layer II
		if versionID == 0x03 {
			rates = []int{0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384}
		} else {
			rates = []int{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160}
		}
	case 0x01: // Layer III
		if versionID == 0x03 {
			rates = []int{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320}
		} else {
			rates = []int{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160}
		}
	}
	if int(index) >= len(rates) {
		return 0
	}
	return rates[index]
}

func mpegAudioSamplesPerFrame(versionID, layerID byte) int {
	switch layerID {
	case 0x03:
		return 384
	case 0x02:
		return 1152
	case 0x01:
		if versionID == 0x03 {
			return 1152
		}
		return 576
	}
	return 0
}

func parseMPEGAudioHeader(hdr []byte) (audioHeader, bool) {
	if len(hdr) < 4 || hdr[0] != 0xff || hdr[1]&0xe0 != 0xe0 {
		return audioHeader{}, false
	}
	versionID := (hdr[1] >> 3) & 0x03
	layerID := (hdr[1] >> 1) & 0x03
	if versionID == 0x01 || layerID == 0x00 {
		return audioHeader{}, false
	}
	bitrateIndex := (hdr[2] >> 4) & 0x0f
	sampleRateIndex := (hdr[2] >> 2) & 0x03
	if bitrateIndex == 0x00 || bitrateIndex == 0x0f || sampleRateIndex == 0x03 {
		return audioHeader{}, false
	}
	kbps := mpegAudioBitrateKbps(versionID, layerID, bitrateIndex)
	rate := mpegAudioSampleRate(versionID, sampleRateIndex)
	if kbps == 0 || rate == 0 {
		return audioHeader{}, false
	}
	pad := int(hdr[2]>>1) & 0x01
	var frameLen int
	switch layerID {
	case 0x03:
		frameLen = (12000*kbps/rate + pad) * 4
	default:
		coef := 144000
		if versionID != 0x03 && layerID == 0x01 {
			coef = 72000
		}
		frameLen = coef*kbps/rate + pad
	}

	h := audioHeader{
		codec:      "mp2",
		sampleRate: rate,
		layout:     audio.LayoutFromMask(chMask(audio.ChanFL, audio.ChanFR)),
		samples:    mpegAudioSamplesPerFrame(versionID, layerID),
		frameLen:   frameLen,
		bitRate:    int64(kbps) * 1000,
		profile:    media.ProfileUnknown,
		sampleFmt:  audio.SampleFmtS16P,
	}
	if (hdr[3]>>6)&0x03 == 0x03 {
		h.layout = audio.LayoutFromMask(chMask(audio.ChanFC))
	}
	if layerID == 0x01 {
		h.codec = "mp3"
		h.sampleFmt = audio.SampleFmtFLTP
	}
	return h, true
}

var ac3FrameSizeWords = [38][3]int{
	{64, 69, 96}, {64, 70, 96}, {80, 87, 120}, {80, 88, 120},
	{96, 104, 144}, {96, 105, 144}, {112, 121, 168}, {112, 122, 168},
	{128, 139, 192}, {128, 140, 192}, {160, 174, 240}, {160, 175, 240},
	{192, 208, 288}, {192, 209, 288}, {224, 243, 336}, {224, 244, 336},
	{256, 278, 384}, {256, 279, 384}, {320, 348, 480}, {320, 349, 480},
	{384, 417, 576}, {384, 418, 576}, {448, 487, 672}, {448, 488, 672},
	{512, 557, 768}, {512, 558, 768}, {640, 696, 960}, {640, 697, 960},
	{768, 835, 1152}, {768, 836, 1152}, {896, 975, 1344}, {896, 976, 1344},
	{1024, 1114, 1536}, {1024, 1115, 1536}, {1152, 1253, 1728}, {1152, 1254, 1728},
	{1280, 1393, 1920}, {1280, 1394, 1920},
}

var ac3Bitrates = []int64{32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384, 448, 512, 576, 640}

var ac3SampleRates = []int{48000, 44100, 32000}

// ac3Layout maps acmod and the LFE flag onto a channel layout.
func ac3Layout(acmod int, lfe bool) audio.ChannelLayout {
	var m uint64
	switch acmod {
	case 0, 2:
		m = chMask(audio.ChanFL, audio.ChanFR)
	case 1:
		m = chMask(audio.ChanFC)
	case 3:
		m = chMask(audio.ChanFL, audio.ChanFR, audio.ChanFC)
	case 4:
		m = chMask(audio.ChanFL, audio.ChanFR, audio.ChanBC)
	case 5:
		m = chMask(audio.ChanFL, audio.ChanFR, audio.ChanFC, audio.ChanBC)
	case 6:
		m = chMask(audio.ChanFL, audio.ChanFR, audio.ChanSL, audio.ChanSR)
	case 7:
		m = chMask(audio.ChanFL, audio.ChanFR, audio.ChanFC, audio.ChanSL, audio.ChanSR)
	}
	if lfe {
		m |= chMask(audio.ChanLFE)
	}
	return audio.LayoutFromMask(m)
}

func parseAC3Header(data []byte) (audioHeader, bool) {
	if len(data) < 7 || data[0] != 0x0b || data[1] != 0x77 {
		return audioHeader{}, false
	}
	bsid := int(data[5] >> 3)
	if bsid > 10 {
		return parseEAC3Header(data)
	}
	fscod := int(data[4] >> 6)
	frmsizecod := int(data[4] & 0x3f)
	if fscod > 2 || frmsizecod >= len(ac3FrameSizeWords) {
		return audioHeader{}, false
	}
	br := newBitReader(data[6:])
	acmod, _ := br.readBits(3)
	if acmod&1 != 0 && acmod != 1 {
		br.readBits(2) // cmixlev
	}
	if acmod&4 != 0 {
		br.readBits(2) // surmixlev
	}
	if acmod == 2 {
		br.readBits(2) // dsurmod
	}
	lfe, ok := br.readFlag()
	if !ok {
		return audioHeader{}, false
	}
	return audioHeader{
		codec:      "ac3",
		sampleRate: ac3SampleRates[fscod],
		layout:     ac3Layout(int(acmod), lfe),
		samples:    1536,
		frameLen:   ac3FrameSizeWords[frmsizecod][fscod] * 2,
		bitRate:    ac3Bitrates[frmsizecod>>1] * 1000,
		profile:    media.ProfileUnknown,
		sampleFmt:  audio.SampleFmtFLTP,
	}, true
}

func parseEAC3Header(data []byte) (audioHeader, bool) {
	br := newBitReader(data[2:])
	br.readBits(2) // strmtyp
	br.readBits(3) // substreamid
	frmsiz, _ := br.readBits(11)
	fscod, _ := br.readBits(2)
	rate, blocks := 0, 6
	if fscod == 3 {
		fscod2, _ := br.readBits(2)
		if fscod2 == 3 {
			return audioHeader{}, false
		}
		rate = ac3SampleRates[fscod2] / 2
	} else {
		numblkscod, _ := br.readBits(2)
		rate = ac3SampleRates[fscod]
		blocks = []int{1, 2, 3, 6}[numblkscod]
	}
	acmod, _ := br.readBits(3)
	lfe, ok := br.readFlag()
	if !ok {
		return audioHeader{}, false
	}
	frameLen := (int(frmsiz) + 1) * 2
	samples := 256 * blocks
	return audioHeader{
		codec:      "eac3",
		sampleRate: rate,
		layout:     ac3Layout(int(acmod), lfe),
		samples:    samples,
		frameLen:   frameLen,
		bitRate:    int64(frameLen) * 8 * int64(rate) / int64(samples),
		profile:    media.ProfileUnknown,
		sampleFmt:  audio.SampleFmtFLTP,
	}, true
}

// audioParserDecoder emits one frame per compressed audio frame found in
// a packet.
type audioParserDecoder struct {
	frameQueue
	par *media.CodecParameters
	tb  media.Rational
}

func (d *audioParserDecoder) SendPacket(pkt *media.Packet) error {
	if ok, err := d.accept(pkt); !ok {
		return err
	}
	data := pkt.Data
	elapsed := 0
	for len(data) > 0 {
		h, ok := audioHeaderAt(d.par.CodecName, data)
		if !ok || h.frameLen <= 0 {
			// resync on the next byte
			data = data[1:]
			continue
		}
		h.apply(d.par)
		d.push(d.frame(pkt, h.samples, elapsed))
		elapsed += h.samples
		if h.frameLen > len(data) {
			break
		}
		data = data[h.frameLen:]
	}
	if elapsed == 0 && d.par.CodecName == "aac" && d.par.SampleRate > 0 && len(pkt.Data) > 0 {
		// raw access unit without ADTS framing
		d.push(d.frame(pkt, 1024, 0))
	}
	return nil
}

func (d *audioParserDecoder) frame(pkt *media.Packet, samples, offset int) *media.Frame {
	f := packetFrame(media.TypeAudio, pkt)
	f.KeyFrame = true
	f.SampleFmt = d.par.SampleFmt
	f.SampleRate = d.par.SampleRate
	f.Layout = d.par.Layout
	f.NbSamples = samples
	rate := media.Rational{Num: 1, Den: d.par.SampleRate}
	if d.tb.Num > 0 && d.par.SampleRate > 0 {
		f.Duration = media.Rescale(int64(samples), rate, d.tb)
		if offset > 0 {
			shift := media.Rescale(int64(offset), rate, d.tb)
			if f.PTS != media.NoPTS {
				f.PTS += shift
			}
			if f.BestEffortTS != media.NoPTS {
				f.BestEffortTS += shift
			}
			f.PktDTS = media.NoPTS
		}
	}
	return f
}
