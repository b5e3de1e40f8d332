// Package wav writes RIFF/WAVE files from PCM packets.
package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/autobrr/go-avprobe/internal/codec"
	"github.com/autobrr/go-avprobe/internal/media"
)

const (
	formatPCM       = 0x0001
	formatIEEEFloat = 0x0003

	headerSize = 44
)

var (
	ErrUnsupportedCodec = errors.New("codec not supported in wav")
	ErrTooLarge         = errors.New("wav data exceeds 4 GiB")
	ErrNoHeader         = errors.New("wav header not written")
)

// Muxer writes a canonical 44 byte header followed by the packet payloads.
// Chunk sizes are patched in WriteTrailer, so the output must be seekable.
type Muxer struct {
	// Tags with a RIFF INFO mapping are written after the data chunk.
	Tags media.Dict

	w        io.WriteSeeker
	codec    string
	rate     int
	channels int
	bits     int
	float    bool
	dataSize int64
	header   bool
	finished bool
}

func NewMuxer(w io.WriteSeeker, codecName string, rate, channels int) (*Muxer, error) {
	bits, float, ok := codec.PCMBits(codecName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCodec, codecName)
	}
	if rate <= 0 || channels <= 0 || channels > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", ErrUnsupportedCodec, rate, channels)
	}
	return &Muxer{w: w, codec: codecName, rate: rate, channels: channels, bits: bits, float: float}, nil
}

func (m *Muxer) blockAlign() int { return m.bits / 8 * m.channels }

// DataSize returns the number of payload bytes written so far.
func (m *Muxer) DataSize() int64 { return m.dataSize }

func (m *Muxer) WriteHeader() error {
	tag := formatPCM
	if m.float {
		tag = formatIEEEFloat
	}
	b := make([]byte, 0, headerSize)
	b = append(b, "RIFF"...)
	b = binary.LittleEndian.AppendUint32(b, 0)
	b = append(b, "WAVE"...)
	b = append(b, "fmt "...)
	b = binary.LittleEndian.AppendUint32(b, 16)
	b = binary.LittleEndian.AppendUint16(b, uint16(tag))
	b = binary.LittleEndian.AppendUint16(b, uint16(m.channels))
	b = binary.LittleEndian.AppendUint32(b, uint32(m.rate))
	b = binary.LittleEndian.AppendUint32(b, uint32(m.rate*m.blockAlign()))
	b = binary.LittleEndian.AppendUint16(b, uint16(m.blockAlign()))
	b = binary.LittleEndian.AppendUint16(b, uint16(m.bits))
	b = append(b, "data"...)
	b = binary.LittleEndian.AppendUint32(b, 0)
	if _, err := m.w.Write(b); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	m.header = true
	return nil
}

func (m *Muxer) WritePacket(pkt *media.Packet) error {
	if !m.header {
		return ErrNoHeader
	}
	if len(pkt.Data)%m.blockAlign() != 0 {
		return fmt.Errorf("%w: packet of %d bytes is not a multiple of %d", media.ErrInvalidData, len(pkt.Data), m.blockAlign())
	}
	if m.dataSize+int64(len(pkt.Data)) > math.MaxUint32-headerSize {
		return ErrTooLarge
	}
	n, err := m.w.Write(pkt.Data)
	m.dataSize += int64(n)
	if err != nil {
		return fmt.Errorf("writing packet: %w", err)
	}
	return nil
}

// WriteTrailer pads the data chunk to an even size, appends a LIST/INFO
// chunk when tags are set and patches the RIFF and data sizes.
func (m *Muxer) WriteTrailer() error {
	if !m.header {
		return ErrNoHeader
	}
	if m.finished {
		return nil
	}
	m.finished = true

	var tail []byte
	if m.dataSize%2 == 1 {
		tail = append(tail, 0)
	}
	tail = append(tail, m.infoChunk()...)
	if len(tail) > 0 {
		if _, err := m.w.Write(tail); err != nil {
			return fmt.Errorf("writing trailer: %w", err)
		}
	}

	riffSize := headerSize - 8 + m.dataSize + int64(len(tail))
	if err := m.patch(4, uint32(riffSize)); err != nil {
		return err
	}
	if err := m.patch(40, uint32(m.dataSize)); err != nil {
		return err
	}
	_, err := m.w.Seek(0, io.SeekEnd)
	return err
}

func (m *Muxer) patch(off int64, v uint32) error {
	if _, err := m.w.Seek(off, io.SeekStart); err != nil {
		return fmt.Errorf("seeking to size field: %w", err)
	}
	if _, err := m.w.Write(binary.LittleEndian.AppendUint32(nil, v)); err != nil {
		return fmt.Errorf("patching size field: %w", err)
	}
	return nil
}

var infoIDs = map[string]string{
	"title":     "INAM",
	"artist":    "IART",
	"comment":   "ICMT",
	"copyright": "ICOP",
	"date":      "ICRD",
	"genre":     "IGNR",
	"encoder":   "ISFT",
}

func (m *Muxer) infoChunk() []byte {
	var body []byte
	for _, e := range m.Tags.Entries() {
		id, ok := infoIDs[e.Key]
		if !ok || e.Value == "" {
			continue
		}
		v := append([]byte(e.Value), 0)
		body = append(body, id...)
		body = binary.LittleEndian.AppendUint32(body, uint32(len(v)))
		body = append(body, v...)
		if len(v)%2 == 1 {
			body = append(body, 0)
		}
	}
	if len(body) == 0 {
		return nil
	}
	out := append([]byte("LIST"), binary.LittleEndian.AppendUint32(nil, uint32(len(body)+4))...)
	out = append(out, "INFO"...)
	return append(out, body...)
}
