package audio

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Params describes one side of a conversion.
type Params struct {
	Format SampleFormat
	Rate   int
	Layout ChannelLayout
}

func (p Params) validate() error {
	if p.Format.BytesPerSample() == 0 || p.Rate <= 0 || !p.Layout.Valid() {
		return fmt.Errorf("%w: %s %d Hz %s", ErrInvalid, p.Format, p.Rate, p.Layout)
	}
	return nil
}

// Converter changes sample format and channel layout. Rate conversion is
// not supported, so input and output rates must match. A Converter keeps
// its configuration and running sample count across calls and is meant to
// live for one stream.
type Converter struct {
	in, out   Params
	converted int64
}

func NewConverter(in, out Params) (*Converter, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := out.validate(); err != nil {
		return nil, err
	}
	if in.Rate != out.Rate {
		return nil, fmt.Errorf("%w: %d -> %d", ErrRateMismatch, in.Rate, out.Rate)
	}
	ic, oc := in.Layout.NbChannels, out.Layout.NbChannels
	if ic != oc && ic != 1 && oc != 1 {
		return nil, fmt.Errorf("%w: cannot remix %s to %s", ErrInvalid, in.Layout, out.Layout)
	}
	return &Converter{in: in, out: out}, nil
}

func (c *Converter) In() Params  { return c.in }
func (c *Converter) Out() Params { return c.out }

// Converted returns the number of input samples consumed so far.
func (c *Converter) Converted() int64 { return c.converted }

// Delay reports buffered samples not yet returned. Without rate
// conversion nothing is held back.
func (c *Converter) Delay() int { return 0 }

// Convert allocates output planes sized for nbSamples and fills them.
func (c *Converter) Convert(src [][]byte, nbSamples int) ([][]byte, error) {
	dst, err := Alloc(c.out.Layout.NbChannels, nbSamples, c.out.Format)
	if err != nil {
		return nil, err
	}
	if _, err := c.ConvertInto(dst, src, nbSamples); err != nil {
		return nil, err
	}
	return dst, nil
}

// ConvertInto converts nbSamples from src into caller owned dst planes.
func (c *Converter) ConvertInto(dst, src [][]byte, nbSamples int) (int, error) {
	ic, oc := c.in.Layout.NbChannels, c.out.Layout.NbChannels
	if err := checkPlanes(src, c.in.Format, ic, nbSamples); err != nil {
		return 0, err
	}
	if err := checkPlanes(dst, c.out.Format, oc, nbSamples); err != nil {
		return 0, err
	}
	frame := make([]float64, ic)
	for i := 0; i < nbSamples; i++ {
		for ch := 0; ch < ic; ch++ {
			frame[ch] = readSample(src, c.in.Format, ic, ch, i)
		}
		for ch := 0; ch < oc; ch++ {
			writeSample(dst, c.out.Format, oc, ch, i, remix(frame, ch, oc))
		}
	}
	c.converted += int64(nbSamples)
	return nbSamples, nil
}

func remix(frame []float64, ch, outChannels int) float64 {
	switch {
	case len(frame) == outChannels:
		return frame[ch]
	case len(frame) == 1:
		return frame[0]
	default:
		var sum float64
		for _, v := range frame {
			sum += v
		}
		return sum / float64(len(frame))
	}
}

func checkPlanes(planes [][]byte, f SampleFormat, channels, nbSamples int) error {
	want := 1
	lineSamples := nbSamples * channels
	if f.IsPlanar() {
		want = channels
		lineSamples = nbSamples
	}
	if len(planes) < want {
		return fmt.Errorf("%w: %d planes, need %d", ErrInvalid, len(planes), want)
	}
	need := lineSamples * f.BytesPerSample()
	for i := 0; i < want; i++ {
		if len(planes[i]) < need {
			return fmt.Errorf("%w: plane %d holds %d bytes, need %d", ErrInvalid, i, len(planes[i]), need)
		}
	}
	return nil
}

func sampleAt(planes [][]byte, f SampleFormat, channels, ch, i int) []byte {
	bps := f.BytesPerSample()
	if f.IsPlanar() {
		return planes[ch][i*bps:]
	}
	return planes[0][(i*channels+ch)*bps:]
}

func readSample(planes [][]byte, f SampleFormat, channels, ch, i int) float64 {
	b := sampleAt(planes, f, channels, ch, i)
	switch f.Packed() {
	case SampleFmtU8:
		return float64(int(b[0])-0x80) / 128
	case SampleFmtS16:
		return float64(int16(binary.LittleEndian.Uint16(b))) / (1 << 15)
	case SampleFmtS32:
		return float64(int32(binary.LittleEndian.Uint32(b))) / (1 << 31)
	case SampleFmtS64:
		return float64(int64(binary.LittleEndian.Uint64(b))) / (1 << 63)
	case SampleFmtFLT:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	case SampleFmtDBL:
		return math.Float64frombits(binary.LittleEndian.Uint64(b))
	}
	return 0
}

func writeSample(planes [][]byte, f SampleFormat, channels, ch, i int, v float64) {
	b := sampleAt(planes, f, channels, ch, i)
	switch f.Packed() {
	case SampleFmtU8:
		b[0] = uint8(clip(math.RoundToEven(v*128), -128, 127) + 128)
	case SampleFmtS16:
		binary.LittleEndian.PutUint16(b, uint16(int16(clip(math.RoundToEven(v*(1<<15)), math.MinInt16, math.MaxInt16))))
	case SampleFmtS32:
		binary.LittleEndian.PutUint32(b, uint32(int32(clip(math.RoundToEven(v*(1<<31)), math.MinInt32, math.MaxInt32))))
	case SampleFmtS64:
		binary.LittleEndian.PutUint64(b, uint64(clipInt64(math.RoundToEven(v*(1<<63)))))
	case SampleFmtFLT:
		binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v)))
	case SampleFmtDBL:
		binary.LittleEndian.PutUint64(b, math.Float64bits(v))
	}
}

func clip(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clipInt64(v float64) int64 {
	if v >= math.MaxInt64 {
		return math.MaxInt64
	}
	if v <= math.MinInt64 {
		return math.MinInt64
	}
	return int64(v)
}
