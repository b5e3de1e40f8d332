// Package audio holds sample formats, channel layouts, the sample FIFO and
// the conversion stage used by the transcode pipeline.
package audio

import (
	"errors"
	"strings"
)

var (
	ErrNoMem        = errors.New("cannot allocate memory")
	ErrShortRead    = errors.New("not enough samples buffered")
	ErrRateMismatch = errors.New("input and output sample rates differ")
	ErrInvalid      = errors.New("invalid audio parameters")
)

type SampleFormat int

const (
	SampleFmtNone SampleFormat = iota - 1
	SampleFmtU8
	SampleFmtS16
	SampleFmtS32
	SampleFmtFLT
	SampleFmtDBL
	SampleFmtU8P
	SampleFmtS16P
	SampleFmtS32P
	SampleFmtFLTP
	SampleFmtDBLP
	SampleFmtS64
	SampleFmtS64P
)

type sampleFmtInfo struct {
	name   string
	bits   int
	planar bool
	alt    SampleFormat
}

var sampleFmts = [...]sampleFmtInfo{
	SampleFmtU8:   {"u8", 8, false, SampleFmtU8P},
	SampleFmtS16:  {"s16", 16, false, SampleFmtS16P},
	SampleFmtS32:  {"s32", 32, false, SampleFmtS32P},
	SampleFmtFLT:  {"flt", 32, false, SampleFmtFLTP},
	SampleFmtDBL:  {"dbl", 64, false, SampleFmtDBLP},
	SampleFmtU8P:  {"u8p", 8, true, SampleFmtU8},
	SampleFmtS16P: {"s16p", 16, true, SampleFmtS16},
	SampleFmtS32P: {"s32p", 32, true, SampleFmtS32},
	SampleFmtFLTP: {"fltp", 32, true, SampleFmtFLT},
	SampleFmtDBLP: {"dblp", 64, true, SampleFmtDBL},
	SampleFmtS64:  {"s64", 64, false, SampleFmtS64P},
	SampleFmtS64P: {"s64p", 64, true, SampleFmtS64},
}

func (f SampleFormat) valid() bool {
	return f >= 0 && int(f) < len(sampleFmts)
}

// String returns the short name, or "unknown" for out of range values.
func (f SampleFormat) String() string {
	if !f.valid() {
		return "unknown"
	}
	return sampleFmts[f].name
}

func SampleFormatFromName(name string) SampleFormat {
	for i, info := range sampleFmts {
		if info.name == name {
			return SampleFormat(i)
		}
	}
	return SampleFmtNone
}

func (f SampleFormat) BytesPerSample() int {
	if !f.valid() {
		return 0
	}
	return sampleFmts[f].bits >> 3
}

func (f SampleFormat) IsPlanar() bool {
	return f.valid() && sampleFmts[f].planar
}

// Packed returns the interleaved variant of f.
func (f SampleFormat) Packed() SampleFormat {
	if !f.valid() {
		return SampleFmtNone
	}
	if sampleFmts[f].planar {
		return sampleFmts[f].alt
	}
	return f
}

// Planar returns the planar variant of f.
func (f SampleFormat) Planar() SampleFormat {
	if !f.valid() {
		return SampleFmtNone
	}
	if sampleFmts[f].planar {
		return f
	}
	return sampleFmts[f].alt
}

// BufferSize returns the byte size of one buffer holding nbSamples for
// every channel, and the line size of each plane. Planar formats use one
// line per channel.
func BufferSize(channels, nbSamples int, f SampleFormat, align int) (size, linesize int, err error) {
	bps := f.BytesPerSample()
	if bps == 0 || channels <= 0 || nbSamples < 0 {
		return 0, 0, ErrInvalid
	}
	if align <= 0 {
		align = 1
	}
	planes := 1
	lineSamples := nbSamples * channels
	if f.IsPlanar() {
		planes = channels
		lineSamples = nbSamples
	}
	linesize = lineSamples * bps
	linesize = (linesize + align - 1) &^ (align - 1)
	return linesize * planes, linesize, nil
}

// Alloc returns zeroed sample planes sized for nbSamples.
func Alloc(channels, nbSamples int, f SampleFormat) ([][]byte, error) {
	size, linesize, err := BufferSize(channels, nbSamples, f, 1)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, size)
	planes := 1
	if f.IsPlanar() {
		planes = channels
	}
	out := make([][]byte, planes)
	for i := range out {
		out[i] = buf[i*linesize : (i+1)*linesize : (i+1)*linesize]
	}
	return out, nil
}

// ParseSampleFormat accepts a name or a case-insensitive alias.
func ParseSampleFormat(s string) (SampleFormat, error) {
	f := SampleFormatFromName(strings.ToLower(strings.TrimSpace(s)))
	if f == SampleFmtNone {
		return f, ErrInvalid
	}
	return f, nil
}
