// Package transcode converts PCM audio through the sample FIFO into fixed
// size encoder frames and muxes the result to WAV.
package transcode

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/autobrr/go-avprobe/internal/audio"
	"github.com/autobrr/go-avprobe/internal/codec"
	"github.com/autobrr/go-avprobe/internal/media"
)

// ErrFlushStalled is returned when an encoder in flush mode asks for more
// input instead of finishing.
var ErrFlushStalled = errors.New("encoder requested input while flushing")

// Sink receives encoded packets in presentation order.
type Sink interface {
	WritePacket(pkt *media.Packet) error
	WriteTrailer() error
}

// Stats counts what a Session has done so far.
type Stats struct {
	FramesIn      int
	SamplesIn     int64
	FramesEncoded int
	SamplesOut    int64
	Packets       int
}

// Session moves decoded frames through conversion, the FIFO and the
// encoder. The output PTS counter starts at zero and advances by the
// sample count of every encoded frame.
type Session struct {
	log   *slog.Logger
	conv  *audio.Converter
	fifo  *audio.FIFO
	enc   codec.Encoder
	sink  Sink
	pts   int64
	stats Stats
	done  bool
}

// NewSession wires a converter from in to out, a FIFO in the output
// format and the encoder. out.Format must match the encoder's sample
// format.
func NewSession(in, out audio.Params, enc codec.Encoder, sink Sink, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if enc.SampleFormat() != out.Format {
		return nil, fmt.Errorf("%w: encoder takes %s, output is %s", audio.ErrInvalid, enc.SampleFormat(), out.Format)
	}
	conv, err := audio.NewConverter(in, out)
	if err != nil {
		return nil, fmt.Errorf("creating converter: %w", err)
	}
	size := enc.FrameSize()
	if size < 1 {
		size = 1
	}
	fifo, err := audio.NewFIFO(out.Format, out.Layout.NbChannels, size)
	if err != nil {
		return nil, fmt.Errorf("creating fifo: %w", err)
	}
	return &Session{log: logger, conv: conv, fifo: fifo, enc: enc, sink: sink}, nil
}

func (s *Session) Stats() Stats { return s.stats }

// Buffered returns the number of converted samples waiting in the FIFO.
func (s *Session) Buffered() int { return s.fifo.Size() }

// PTS returns the timestamp the next encoded frame will carry.
func (s *Session) PTS() int64 { return s.pts }

// Push converts one decoded frame into the FIFO and encodes every full
// encoder frame that is then available.
func (s *Session) Push(f *media.Frame) error {
	if s.done {
		return media.ErrEOF
	}
	if f.NbSamples <= 0 {
		return nil
	}
	converted, err := s.conv.Convert(f.Data, f.NbSamples)
	if err != nil {
		return fmt.Errorf("converting samples: %w", err)
	}
	if _, err := s.fifo.Write(converted, f.NbSamples); err != nil {
		return fmt.Errorf("staging samples: %w", err)
	}
	s.stats.FramesIn++
	s.stats.SamplesIn += int64(f.NbSamples)

	size := s.frameSize()
	for s.fifo.Size() >= size {
		if err := s.encode(size); err != nil {
			return err
		}
	}
	return nil
}

// Finish encodes what is left in the FIFO as one short frame, drains the
// encoder and writes the trailer.
func (s *Session) Finish() error {
	if s.done {
		return nil
	}
	s.done = true
	if n := s.fifo.Size(); n > 0 {
		if err := s.encode(n); err != nil {
			return err
		}
	}
	if err := s.enc.SendFrame(nil); err != nil {
		return fmt.Errorf("flushing encoder: %w", err)
	}
	if err := s.drain(true); err != nil {
		return err
	}
	if err := s.sink.WriteTrailer(); err != nil {
		return fmt.Errorf("writing trailer: %w", err)
	}
	s.log.Debug("pipeline finished",
		"frames_in", s.stats.FramesIn,
		"frames_encoded", s.stats.FramesEncoded,
		"samples", s.stats.SamplesOut,
	)
	return nil
}

func (s *Session) frameSize() int {
	if n := s.enc.FrameSize(); n > 0 {
		return n
	}
	if n := s.fifo.Size(); n > 0 {
		return n
	}
	return 1
}

func (s *Session) encode(n int) error {
	out := s.conv.Out()
	data, err := audio.Alloc(out.Layout.NbChannels, n, out.Format)
	if err != nil {
		return fmt.Errorf("allocating frame: %w", err)
	}
	if _, err := s.fifo.Read(data, n); err != nil {
		return fmt.Errorf("reading fifo: %w", err)
	}

	frame := media.NewFrame()
	frame.MediaType = media.TypeAudio
	frame.KeyFrame = true
	frame.SampleFmt = out.Format
	frame.SampleRate = out.Rate
	frame.Layout = out.Layout
	frame.NbSamples = n
	frame.Data = data
	frame.PTS = s.pts
	s.pts += int64(n)

	if err := s.enc.SendFrame(frame); err != nil {
		return fmt.Errorf("encoding frame: %w", err)
	}
	s.stats.FramesEncoded++
	s.stats.SamplesOut += int64(n)
	return s.drain(false)
}

// drain writes every packet the encoder has ready. When flushing it keeps
// receiving until the encoder reports EOF.
func (s *Session) drain(flushing bool) error {
	for {
		pkt := media.NewPacket()
		err := s.enc.ReceivePacket(pkt)
		switch {
		case errors.Is(err, media.ErrEOF):
			return nil
		case errors.Is(err, media.ErrAgain):
			if flushing {
				return ErrFlushStalled
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("receiving packet: %w", err)
		}
		if err := s.sink.WritePacket(pkt); err != nil {
			return fmt.Errorf("writing packet: %w", err)
		}
		s.stats.Packets++
	}
}
