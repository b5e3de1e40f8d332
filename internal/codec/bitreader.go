package codec

// bitReader reads the Exp-Golomb coded slice and parameter set headers.
type bitReader struct {
	data []byte
	pos  int
	bit  uint8
}

func newBitReader(data []byte) *bitReader {
	return &bitReader{data: data}
}

func (br *bitReader) readBits(n uint8) (uint64, bool) {
	var value uint64
	for i := uint8(0); i < n; i++ {
		if br.pos >= len(br.data) {
			return 0, false
		}
		bit := (br.data[br.pos] >> (7 - br.bit)) & 1
		value = (value << 1) | uint64(bit)
		br.bit++
		if br.bit == 8 {
			br.bit = 0
			br.pos++
		}
	}
	return value, true
}

func (br *bitReader) readFlag() (bool, bool) {
	v, ok := br.readBits(1)
	return v == 1, ok
}

func (br *bitReader) readUE() (int, bool) {
	zeros := 0
	for {
		bit, ok := br.readBits(1)
		if !ok || zeros > 31 {
			return 0, false
		}
		if bit == 1 {
			break
		}
		zeros++
	}
	if zeros == 0 {
		return 0, true
	}
	value, ok := br.readBits(uint8(zeros))
	if !ok {
		return 0, false
	}
	return (1 << zeros) - 1 + int(value), true
}

// nalToRBSP drops header bytes and emulation prevention bytes.
func nalToRBSP(nal []byte, header int) []byte {
	if len(nal) <= header {
		return nil
	}
	nal = nal[header:]
	rbsp := make([]byte, 0, len(nal))
	zeroCount := 0
	for _, b := range nal {
		if zeroCount == 2 && b == 0x03 {
			zeroCount = 0
			continue
		}
		rbsp = append(rbsp, b)
		if b == 0x00 {
			zeroCount++
		} else {
			zeroCount = 0
		}
	}
	return rbsp
}
