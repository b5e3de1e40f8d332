package codec

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/autobrr/go-avprobe/internal/audio"
	"github.com/autobrr/go-avprobe/internal/media"
)

var ErrFrameSize = errors.New("frame size does not match the encoder")

// pcmFormat describes a little-endian PCM codec and the sample format it
// decodes to.
type pcmFormat struct {
	bits      int
	sampleFmt audio.SampleFormat
}

var pcmFormats = map[string]pcmFormat{
	"pcm_u8":    {8, audio.SampleFmtU8},
	"pcm_s16le": {16, audio.SampleFmtS16},
	"pcm_s24le": {24, audio.SampleFmtS32},
	"pcm_s32le": {32, audio.SampleFmtS32},
	"pcm_f32le": {32, audio.SampleFmtFLT},
	"pcm_f64le": {64, audio.SampleFmtDBL},
}

// PCMCodec returns the PCM codec name for a sample size, or "" when there
// is none. Float selects the IEEE float variants.
func PCMCodec(bits int, float bool) string {
	switch {
	case float && bits == 32:
		return "pcm_f32le"
	case float && bits == 64:
		return "pcm_f64le"
	case float:
		return ""
	case bits == 8:
		return "pcm_u8"
	case bits == 16:
		return "pcm_s16le"
	case bits == 24:
		return "pcm_s24le"
	case bits == 32:
		return "pcm_s32le"
	}
	return ""
}

// PCMSampleFormat returns the sample format a PCM codec decodes to.
func PCMSampleFormat(codecName string) (audio.SampleFormat, bool) {
	f, ok := pcmFormats[codecName]
	return f.sampleFmt, ok
}

// PCMBits returns the stored sample size of a PCM codec and whether it
// carries IEEE floats.
func PCMBits(codecName string) (bits int, float bool, ok bool) {
	f, ok := pcmFormats[codecName]
	if !ok {
		return 0, false, false
	}
	return f.bits, f.sampleFmt == audio.SampleFmtFLT || f.sampleFmt == audio.SampleFmtDBL, true
}

type pcmDecoder struct {
	frameQueue
	par    *media.CodecParameters
	format pcmFormat
	tb     media.Rational
}

func newPCMDecoder(par *media.CodecParameters, f pcmFormat, tb media.Rational) (*pcmDecoder, error) {
	if par.SampleRate <= 0 || par.Layout.NbChannels <= 0 {
		return nil, fmt.Errorf("%w: %s without sample rate or channels", audio.ErrInvalid, par.CodecName)
	}
	par.SampleFmt = f.sampleFmt
	par.BitsPerSample = f.bits
	return &pcmDecoder{par: par, format: f, tb: tb}, nil
}

func (d *pcmDecoder) SendPacket(pkt *media.Packet) error {
	if ok, err := d.accept(pkt); !ok {
		return err
	}
	channels := d.par.Layout.NbChannels
	blockAlign := d.format.bits / 8 * channels
	n := len(pkt.Data) / blockAlign
	if n == 0 {
		return nil
	}
	f := packetFrame(media.TypeAudio, pkt)
	f.KeyFrame = true
	f.SampleFmt = d.format.sampleFmt
	f.SampleRate = d.par.SampleRate
	f.Layout = d.par.Layout
	f.NbSamples = n
	if f.Duration <= 0 && d.tb.Num > 0 {
		f.Duration = media.Rescale(int64(n), media.Rational{Num: 1, Den: d.par.SampleRate}, d.tb)
	}
	src := pkt.Data[:n*blockAlign]
	if d.format.bits == 24 {
		out := make([]byte, n*channels*4)
		for i := 0; i < n*channels; i++ {
			s := src[i*3:]
			v := uint32(s[0])<<8 | uint32(s[1])<<16 | uint32(s[2])<<24
			binary.LittleEndian.PutUint32(out[i*4:], v)
		}
		f.Data = [][]byte{out}
	} else {
		f.Data = [][]byte{append([]byte(nil), src...)}
	}
	d.push(f)
	return nil
}

// Encoder turns frames into packets. SendFrame with a nil frame flushes;
// ReceivePacket then returns the remaining packets followed by
// media.ErrEOF.
type Encoder interface {
	SendFrame(f *media.Frame) error
	ReceivePacket(pkt *media.Packet) error
	// FrameSize is the number of samples every frame but the last must
	// carry, or 0 when any size is accepted.
	FrameSize() int
	SampleFormat() audio.SampleFormat
}

// PCMEncoder packs interleaved samples into fixed size packets.
type PCMEncoder struct {
	codec     string
	format    pcmFormat
	channels  int
	frameSize int
	packets   []*media.Packet
	flushed   bool
	partial   bool
}

// NewPCMEncoder returns an encoder for a PCM codec that accepts frames of
// exactly frameSize samples, except for one final shorter frame.
func NewPCMEncoder(codecName string, channels, frameSize int) (*PCMEncoder, error) {
	f, ok := pcmFormats[codecName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDecoderNotFound, codecName)
	}
	if channels <= 0 || frameSize < 0 {
		return nil, audio.ErrInvalid
	}
	return &PCMEncoder{codec: codecName, format: f, channels: channels, frameSize: frameSize}, nil
}

func (e *PCMEncoder) CodecName() string { return e.codec }

func (e *PCMEncoder) FrameSize() int { return e.frameSize }

func (e *PCMEncoder) SampleFormat() audio.SampleFormat { return e.format.sampleFmt }

func (e *PCMEncoder) SendFrame(f *media.Frame) error {
	if e.flushed {
		return media.ErrEOF
	}
	if f == nil {
		e.flushed = true
		return nil
	}
	if e.frameSize > 0 {
		if e.partial || f.NbSamples > e.frameSize {
			return fmt.Errorf("%w: %d samples after a short frame or above %d", ErrFrameSize, f.NbSamples, e.frameSize)
		}
		e.partial = f.NbSamples < e.frameSize
	}
	if f.SampleFmt != e.format.sampleFmt || len(f.Data) == 0 {
		return fmt.Errorf("%w: expected %s input, got %s", audio.ErrInvalid, e.format.sampleFmt, f.SampleFmt)
	}
	n := f.NbSamples * e.channels
	src := f.Data[0]
	size := e.format.sampleFmt.BytesPerSample()
	if len(src) < n*size {
		return fmt.Errorf("%w: frame holds %d bytes, need %d", audio.ErrInvalid, len(src), n*size)
	}
	var data []byte
	if e.format.bits == 24 {
		data = make([]byte, n*3)
		for i := 0; i < n; i++ {
			copy(data[i*3:i*3+3], src[i*4+1:i*4+4])
		}
	} else {
		data = append([]byte(nil), src[:n*size]...)
	}
	pkt := media.NewPacket()
	pkt.PTS = f.PTS
	pkt.DTS = f.PTS
	pkt.Duration = int64(f.NbSamples)
	pkt.Data = data
	pkt.Flags = media.PacketKey
	e.packets = append(e.packets, pkt)
	return nil
}

func (e *PCMEncoder) ReceivePacket(pkt *media.Packet) error {
	if len(e.packets) == 0 {
		if e.flushed {
			return media.ErrEOF
		}
		return media.ErrAgain
	}
	*pkt = *e.packets[0]
	e.packets[0] = nil
	e.packets = e.packets[1:]
	return nil
}
