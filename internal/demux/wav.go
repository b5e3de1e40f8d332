package demux

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/autobrr/go-avprobe/internal/audio"
	"github.com/autobrr/go-avprobe/internal/codec"
	"github.com/autobrr/go-avprobe/internal/media"
)

const (
	wavFormatPCM        = 0x0001
	wavFormatIEEEFloat  = 0x0003
	wavFormatExtensible = 0xfffe

	wavMaxPacketSize = 4096
)

var wavFormat = &Format{
	Name:       "wav",
	LongName:   "WAV / WAVE (Waveform Audio)",
	Extensions: []string{"wav"},
	Probe:      probeWAV,
	Open: func(r io.ReadSeeker, _ string, _ Options) Demuxer {
		return &wavDemuxer{r: r}
	},
}

func probeWAV(buf []byte, _ string) int {
	if len(buf) >= 12 && string(buf[0:4]) == "RIFF" && string(buf[8:12]) == "WAVE" {
		return ScoreMax - 1
	}
	return 0
}

var riffInfoTags = map[string]string{
	"IART": "artist",
	"ICMT": "comment",
	"ICOP": "copyright",
	"ICRD": "date",
	"IGNR": "genre",
	"ILNG": "language",
	"INAM": "title",
	"IPRD": "album",
	"IPRT": "track",
	"ITRK": "track",
	"ISFT": "encoder",
	"ISMP": "timecode",
	"ITCH": "encoded_by",
}

type wavFmt struct {
	formatTag     uint16
	channels      uint16
	sampleRate    uint32
	byteRate      uint32
	blockAlign    uint16
	bitsPerSample uint16
	channelMask   uint32
}

type wavDemuxer struct {
	r          io.ReadSeeker
	st         *media.Stream
	blockAlign int64
	dataStart  int64
	dataEnd    int64
	cur        int64
}

func (d *wavDemuxer) ReadHeader(fc *media.FormatContext) error {
	if _, err := d.r.Seek(0, io.SeekStart); err != nil {
		return err
	}
	header := make([]byte, 12)
	if _, err := io.ReadFull(d.r, header); err != nil {
		return media.ErrInvalidData
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		return media.ErrInvalidData
	}

	var (
		wf       wavFmt
		fmtFound bool
		dataSize int64 = -1
		pos      int64 = 12
	)
chunks:
	for {
		chunkHeader := make([]byte, 8)
		if _, err := io.ReadFull(d.r, chunkHeader); err != nil {
			break
		}
		pos += 8
		chunkID := string(chunkHeader[0:4])
		chunkSize := int64(binary.LittleEndian.Uint32(chunkHeader[4:8]))

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return fmt.Errorf("%w: fmt chunk of %d bytes", media.ErrInvalidData, chunkSize)
			}
			data := make([]byte, chunkSize)
			if _, err := io.ReadFull(d.r, data); err != nil {
				return media.ErrInvalidData
			}
			wf = parseWAVFmt(data)
			fmtFound = true
		case "data":
			d.dataStart = pos
			dataSize = chunkSize
			if chunkSize == 0 || chunkSize == 0xffffffff {
				dataSize = -1
			}
			if dataSize < 0 {
				// streamed file, data runs to the end
				break chunks
			}
			if _, err := d.r.Seek(chunkSize, io.SeekCurrent); err != nil {
				return err
			}
		case "LIST":
			data := make([]byte, chunkSize)
			if _, err := io.ReadFull(d.r, data); err != nil {
				break chunks
			}
			parseRIFFInfo(data, &fc.Tags)
		default:
			if _, err := d.r.Seek(chunkSize, io.SeekCurrent); err != nil {
				return err
			}
		}
		pos += chunkSize
		if chunkSize%2 == 1 {
			if _, err := d.r.Seek(1, io.SeekCurrent); err != nil {
				return err
			}
			pos++
		}
	}
	if !fmtFound || d.dataStart == 0 {
		return fmt.Errorf("%w: no fmt or data chunk", media.ErrInvalidData)
	}

	float := wf.formatTag == wavFormatIEEEFloat
	name := ""
	if wf.formatTag == wavFormatPCM || float || wf.formatTag == wavFormatExtensible {
		name = codec.PCMCodec(int(wf.bitsPerSample), float)
	}
	if name == "" {
		return fmt.Errorf("%w: wav format tag 0x%04x with %d bits", codec.ErrDecoderNotFound, wf.formatTag, wf.bitsPerSample)
	}
	if wf.channels == 0 || wf.sampleRate == 0 || wf.blockAlign == 0 {
		return fmt.Errorf("%w: wav without channels, rate or block size", media.ErrInvalidData)
	}

	par := media.NewCodecParameters(media.TypeAudio, name)
	par.CodecTag = uint32(wf.formatTag)
	par.SampleRate = int(wf.sampleRate)
	par.BitsPerSample = int(wf.bitsPerSample)
	par.BitRate = int64(wf.byteRate) * 8
	if sf, ok := codec.PCMSampleFormat(name); ok {
		par.SampleFmt = sf
	}
	par.Layout = audio.DefaultLayout(int(wf.channels))
	if wf.channelMask != 0 {
		if l := audio.LayoutFromMask(uint64(wf.channelMask)); l.NbChannels == int(wf.channels) {
			par.Layout = l
		}
	}

	d.st = fc.AddStream(par)
	d.st.TimeBase = media.Rational{Num: 1, Den: int(wf.sampleRate)}
	d.st.StartTime = 0
	d.blockAlign = int64(wf.blockAlign)
	if dataSize >= 0 {
		d.dataEnd = d.dataStart + dataSize
		if fc.Size > 0 && d.dataEnd > fc.Size {
			d.dataEnd = fc.Size
		}
		d.st.Duration = (d.dataEnd - d.dataStart) / d.blockAlign
	} else {
		d.dataEnd = -1
		if fc.Size > d.dataStart {
			d.st.Duration = (fc.Size - d.dataStart) / d.blockAlign
		}
	}
	fc.BitRate = par.BitRate
	fc.StartTime = 0

	d.cur = d.dataStart
	_, err := d.r.Seek(d.dataStart, io.SeekStart)
	return err
}

func parseWAVFmt(data []byte) wavFmt {
	wf := wavFmt{
		formatTag:     binary.LittleEndian.Uint16(data[0:2]),
		channels:      binary.LittleEndian.Uint16(data[2:4]),
		sampleRate:    binary.LittleEndian.Uint32(data[4:8]),
		byteRate:      binary.LittleEndian.Uint32(data[8:12]),
		blockAlign:    binary.LittleEndian.Uint16(data[12:14]),
		bitsPerSample: binary.LittleEndian.Uint16(data[14:16]),
	}
	// WAVE_FORMAT_EXTENSIBLE: cbSize, valid bits, channel mask, sub format
	if wf.formatTag == wavFormatExtensible && len(data) >= 40 {
		wf.channelMask = binary.LittleEndian.Uint32(data[20:24])
		switch binary.LittleEndian.Uint16(data[24:26]) {
		case wavFormatIEEEFloat:
			wf.formatTag = wavFormatIEEEFloat
		case wavFormatPCM:
			wf.formatTag = wavFormatPCM
		}
	}
	return wf
}

// parseRIFFInfo copies LIST/INFO strings into tags.
func parseRIFFInfo(data []byte, tags *media.Dict) {
	if len(data) < 4 || string(data[0:4]) != "INFO" {
		return
	}
	data = data[4:]
	for len(data) >= 8 {
		id := string(data[0:4])
		size := int(binary.LittleEndian.Uint32(data[4:8]))
		data = data[8:]
		if size > len(data) {
			return
		}
		if key, ok := riffInfoTags[id]; ok {
			tags.Set(key, strings.TrimRight(string(data[:size]), "\x00"))
		}
		if size%2 == 1 && size < len(data) {
			size++
		}
		data = data[size:]
	}
}

func (d *wavDemuxer) ReadPacket(pkt *media.Packet) error {
	size := int64(wavMaxPacketSize) / d.blockAlign * d.blockAlign
	if size == 0 {
		size = d.blockAlign
	}
	if d.dataEnd >= 0 {
		if left := d.dataEnd - d.cur; left < size {
			size = left / d.blockAlign * d.blockAlign
		}
	}
	if size <= 0 {
		return media.ErrEOF
	}
	buf := make([]byte, size)
	n, err := io.ReadFull(d.r, buf)
	n -= n % int(d.blockAlign)
	if n == 0 {
		if err == nil || err == io.EOF || err == io.ErrUnexpectedEOF {
			return media.ErrEOF
		}
		return err
	}
	pkt.Reset()
	pkt.StreamIndex = d.st.Index
	pkt.Data = buf[:n]
	pkt.Pos = d.cur
	pkt.PTS = (d.cur - d.dataStart) / d.blockAlign
	pkt.DTS = pkt.PTS
	pkt.Duration = int64(n) / d.blockAlign
	pkt.Flags = media.PacketKey
	d.cur += int64(n)
	return nil
}

func (d *wavDemuxer) Seek(ts int64) error {
	sample := media.Rescale(ts, media.TimeBaseQ, d.st.TimeBase)
	if sample < 0 {
		sample = 0
	}
	off := d.dataStart + sample*d.blockAlign
	if d.dataEnd >= 0 && off > d.dataEnd {
		off = d.dataEnd
	}
	if _, err := d.r.Seek(off, io.SeekStart); err != nil {
		return err
	}
	d.cur = off
	return nil
}

func (d *wavDemuxer) Close() error { return nil }
