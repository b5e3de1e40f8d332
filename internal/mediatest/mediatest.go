// Package mediatest builds small synthetic media files for tests: PCM WAV
// files and MPEG transport streams carrying H.264 and AAC.
package mediatest

import (
	"encoding/binary"
)

// WAV returns a 16-bit PCM WAV file of samples frames with a LIST/INFO
// title. Sample bytes count up from zero.
func WAV(rate, channels, samples int, title string) []byte {
	blockAlign := channels * 2
	le16 := func(v int) []byte { return binary.LittleEndian.AppendUint16(nil, uint16(v)) }
	le32 := func(v int) []byte { return binary.LittleEndian.AppendUint32(nil, uint32(v)) }

	var fmtChunk []byte
	fmtChunk = append(fmtChunk, le16(1)...)
	fmtChunk = append(fmtChunk, le16(channels)...)
	fmtChunk = append(fmtChunk, le32(rate)...)
	fmtChunk = append(fmtChunk, le32(rate*blockAlign)...)
	fmtChunk = append(fmtChunk, le16(blockAlign)...)
	fmtChunk = append(fmtChunk, le16(16)...)

	name := append([]byte(title), 0)
	info := append([]byte("INFO"), "INAM"...)
	info = append(info, le32(len(name))...)
	info = append(info, name...)
	if len(name)%2 == 1 {
		info = append(info, 0)
	}

	data := make([]byte, samples*blockAlign)
	for i := range data {
		data[i] = byte(i)
	}

	var body []byte
	body = append(body, "WAVE"...)
	body = append(body, "fmt "...)
	body = append(body, le32(len(fmtChunk))...)
	body = append(body, fmtChunk...)
	body = append(body, "LIST"...)
	body = append(body, le32(len(info))...)
	body = append(body, info...)
	body = append(body, "data"...)
	body = append(body, le32(len(data))...)
	body = append(body, data...)

	out := append([]byte("RIFF"), le32(len(body))...)
	return append(out, body...)
}

// BitWriter packs big-endian bit fields.
type BitWriter struct {
	buf  []byte
	nbit int
}

func (b *BitWriter) Bit(v bool) {
	if b.nbit%8 == 0 {
		b.buf = append(b.buf, 0)
	}
	if v {
		b.buf[len(b.buf)-1] |= 0x80 >> (b.nbit % 8)
	}
	b.nbit++
}

// Bits writes the low n bits of v.
func (b *BitWriter) Bits(v uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		b.Bit(v>>i&1 == 1)
	}
}

// UE writes an unsigned Exp-Golomb code.
func (b *BitWriter) UE(v uint64) {
	v++
	n := 0
	for x := v; x > 1; x >>= 1 {
		n++
	}
	b.Bits(0, n)
	b.Bits(v, n+1)
}

// Trailing writes the RBSP stop bit and pads to a byte boundary.
func (b *BitWriter) Trailing() {
	b.Bit(true)
	for b.nbit%8 != 0 {
		b.Bit(false)
	}
}

func (b *BitWriter) Bytes() []byte { return b.buf }

// escape inserts emulation prevention bytes.
func escape(rbsp []byte) []byte {
	out := make([]byte, 0, len(rbsp)+4)
	zeros := 0
	for _, c := range rbsp {
		if zeros >= 2 && c <= 3 {
			out = append(out, 3)
			zeros = 0
		}
		out = append(out, c)
		if c == 0 {
			zeros++
		} else {
			zeros = 0
		}
	}
	return out
}

// H264SPS returns a constrained baseline 4:2:0 8-bit sequence parameter
// set NAL unit for the given picture size, cropped from whole
// macroblocks.
func H264SPS(width, height int) []byte {
	mbW, mbH := (width+15)/16, (height+15)/16
	cropRight, cropBottom := (mbW*16-width)/2, (mbH*16-height)/2

	var b BitWriter
	b.Bits(66, 8)   // profile_idc
	b.Bits(0x40, 8) // constraint_set1
	b.Bits(40, 8)   // level_idc
	b.UE(0)         // seq_parameter_set_id
	b.UE(0)         // log2_max_frame_num_minus4
	b.UE(2)         // pic_order_cnt_type
	b.UE(1)         // max_num_ref_frames
	b.Bit(false)
	b.UE(uint64(mbW - 1))
	b.UE(uint64(mbH - 1))
	b.Bit(true) // frame_mbs_only_flag
	b.Bit(true) // direct_8x8_inference_flag
	cropped := cropRight > 0 || cropBottom > 0
	b.Bit(cropped)
	if cropped {
		b.UE(0)
		b.UE(uint64(cropRight))
		b.UE(0)
		b.UE(uint64(cropBottom))
	}
	b.Bit(false) // vui_parameters_present_flag
	b.Trailing()
	return append([]byte{0x67}, escape(b.Bytes())...)
}

var (
	// H264IDR is an IDR slice header: first_mb_in_slice 0, slice_type 7.
	H264IDR = []byte{0x65, 0x88, 0x80}
	// H264P is a non-IDR P slice header.
	H264P = []byte{0x41, 0x9a}
)

// AnnexB joins NAL units with 4 byte start codes.
func AnnexB(nalus ...[]byte) []byte {
	var b []byte
	for _, n := range nalus {
		b = append(b, 0, 0, 0, 1)
		b = append(b, n...)
	}
	return b
}

var adtsRates = []int{96000, 88200, 64000, 48000, 44100, 32000, 24000, 22050, 16000, 12000, 11025, 8000, 7350}

// ADTS returns an AAC LC frame with an ADTS header around payload.
func ADTS(rate, channels int, payload []byte) []byte {
	idx := 15
	for i, r := range adtsRates {
		if r == rate {
			idx = i
		}
	}
	n := 7 + len(payload)
	h := []byte{
		0xff, 0xf1,
		1<<6 | byte(idx)<<2 | byte(channels>>2)&1,
		byte(channels&3)<<6 | byte(n>>11)&3,
		byte(n >> 3),
		byte(n&7)<<5 | 0x1f,
		0xfc,
	}
	return append(h, payload...)
}

const tsPacketSize = 188

// CRC32MPEG is the CRC used by PSI sections.
func CRC32MPEG(b []byte) uint32 {
	crc := uint32(0xffffffff)
	for _, v := range b {
		crc ^= uint32(v) << 24
		for i := 0; i < 8; i++ {
			if crc&0x80000000 != 0 {
				crc = crc<<1 ^ 0x04c11db7
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// PSISection wraps a table body with the long section header and CRC.
func PSISection(tableID byte, idExt uint16, body []byte) []byte {
	length := 5 + len(body) + 4
	s := []byte{tableID, 0xb0 | byte(length>>8)&0x0f, byte(length), byte(idExt >> 8), byte(idExt), 0xc1, 0, 0}
	s = append(s, body...)
	crc := CRC32MPEG(s)
	return append(s, byte(crc>>24), byte(crc>>16), byte(crc>>8), byte(crc))
}

// PES builds a PES packet with a PTS. Video stream ids get an unbounded
// length.
func PES(streamID byte, pts int64, data []byte) []byte {
	h := []byte{0, 0, 1, streamID, 0, 0, 0x80, 0x80, 5,
		0x20 | byte(pts>>29)&0x0e | 1,
		byte(pts >> 22),
		byte(pts>>14)&0xfe | 1,
		byte(pts >> 7),
		byte(pts<<1)&0xfe | 1,
	}
	if streamID < 0xe0 {
		length := len(h) - 6 + len(data)
		h[4], h[5] = byte(length>>8), byte(length)
	}
	return append(h, data...)
}

// TS packetizes payloads into 188 byte transport packets, keeping a
// continuity counter per PID.
type TS struct {
	buf []byte
	cc  map[uint16]byte
}

// Write splits payload over packets of pid. PSI payloads get a pointer
// field.
func (w *TS) Write(pid uint16, payload []byte, psi bool) {
	if w.cc == nil {
		w.cc = make(map[uint16]byte)
	}
	if psi {
		payload = append([]byte{0}, payload...)
	}
	for first := true; first || len(payload) > 0; first = false {
		pkt := make([]byte, tsPacketSize)
		pkt[0] = 0x47
		pkt[1] = byte(pid>>8) & 0x1f
		if first {
			pkt[1] |= 0x40
		}
		pkt[2] = byte(pid)
		cc := w.cc[pid]
		w.cc[pid] = (cc + 1) & 0x0f
		n := min(len(payload), 184)
		if n == 184 || psi {
			pkt[3] = 0x10 | cc
			copy(pkt[4:], payload[:n])
			for i := 4 + n; i < tsPacketSize; i++ {
				pkt[i] = 0xff
			}
		} else {
			pkt[3] = 0x30 | cc
			afLen := 183 - n
			pkt[4] = byte(afLen)
			for i := 6; i < 5+afLen; i++ {
				pkt[i] = 0xff
			}
			copy(pkt[5+afLen:], payload[:n])
		}
		payload = payload[n:]
		w.buf = append(w.buf, pkt...)
	}
}

func (w *TS) Bytes() []byte { return w.buf }

const (
	PMTPid   = 0x1000
	VideoPid = 0x100
	AudioPid = 0x101
)

// VideoAudioTS returns a single program transport stream with two H.264
// access units of the given size and two AAC LC frames, all starting at
// 1.4 seconds.
func VideoAudioTS(width, height, rate, channels int) []byte {
	var w TS
	w.Write(0, PSISection(0x00, 1, []byte{0x00, 0x01, 0xe0 | PMTPid>>8, PMTPid & 0xff}), true)

	pmt := []byte{0xe0 | VideoPid>>8, VideoPid & 0xff, 0xf0, 0x00}
	pmt = append(pmt, 0x1b, 0xe0|VideoPid>>8, VideoPid&0xff, 0xf0, 0x00)
	pmt = append(pmt, 0x0f, 0xe0|AudioPid>>8, AudioPid&0xff, 0xf0, 0x00)
	w.Write(PMTPid, PSISection(0x02, 1, pmt), true)

	frameTicks := int64(1024 * 90000 / rate)
	w.Write(VideoPid, PES(0xe0, 126000, AnnexB(H264SPS(width, height), H264IDR)), false)
	w.Write(AudioPid, PES(0xc0, 126000, ADTS(rate, channels, nil)), false)
	w.Write(AudioPid, PES(0xc0, 126000+frameTicks, ADTS(rate, channels, nil)), false)
	w.Write(VideoPid, PES(0xe0, 129600, AnnexB(H264P)), false)
	return w.Bytes()
}
