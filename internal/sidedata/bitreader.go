package sidedata

// bitReader reads big-endian bit fields. Reads past the end yield zero
// and latch the short flag so decoders can reject truncated payloads.
type bitReader struct {
	data  []byte
	pos   int
	bit   uint8
	short bool
}

func newBitReader(data []byte) *bitReader {
	return &bitReader{data: data}
}

func (br *bitReader) bits(n uint8) uint64 {
	var value uint64
	for i := uint8(0); i < n; i++ {
		if br.pos >= len(br.data) {
			br.short = true
			return 0
		}
		bit := (br.data[br.pos] >> (7 - br.bit)) & 1
		value = (value << 1) | uint64(bit)
		br.bit++
		if br.bit == 8 {
			br.bit = 0
			br.pos++
		}
	}
	return value
}

func (br *bitReader) int(n uint8) int { return int(br.bits(n)) }

func (br *bitReader) flag() bool { return br.bits(1) == 1 }

// left returns the unread bit count.
func (br *bitReader) left() int {
	return (len(br.data)-br.pos)*8 - int(br.bit)
}

// bitWriter is the encoding twin of bitReader.
type bitWriter struct {
	data []byte
	bit  uint8
}

func (bw *bitWriter) put(n uint8, v uint64) {
	for i := int(n) - 1; i >= 0; i-- {
		if bw.bit == 0 {
			bw.data = append(bw.data, 0)
		}
		if v>>uint(i)&1 == 1 {
			bw.data[len(bw.data)-1] |= 1 << (7 - bw.bit)
		}
		bw.bit = (bw.bit + 1) % 8
	}
}

func (bw *bitWriter) putFlag(b bool) {
	if b {
		bw.put(1, 1)
	} else {
		bw.put(1, 0)
	}
}

func (bw *bitWriter) bytes() []byte { return bw.data }
