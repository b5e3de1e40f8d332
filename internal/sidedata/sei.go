package sidedata

import (
	"encoding/binary"

	"github.com/autobrr/go-avprobe/internal/media"
)

const (
	seiUserDataRegistered   = 4
	seiUserDataUnregistered = 5
	seiMasteringDisplay     = 137
	seiContentLight         = 144
)

// unescapeRBSP strips the NAL header and emulation prevention bytes.
func unescapeRBSP(nal []byte, header int) []byte {
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

// FromH264SEI extracts frame side data from an H.264 SEI NAL unit,
// header byte included.
func FromH264SEI(nal []byte) []media.SideData {
	if len(nal) < 2 || nal[0]&0x1f != 6 {
		return nil
	}
	return parseSEI(unescapeRBSP(nal, 1))
}

// FromHEVCSEI extracts frame side data from an HEVC prefix or suffix SEI
// NAL unit, header bytes included.
func FromHEVCSEI(nal []byte) []media.SideData {
	if len(nal) < 3 {
		return nil
	}
	if t := (nal[0] >> 1) & 0x3f; t != 39 && t != 40 {
		return nil
	}
	return parseSEI(unescapeRBSP(nal, 2))
}

func parseSEI(rbsp []byte) []media.SideData {
	var out []media.SideData
	for i := 0; i < len(rbsp); {
		// rbsp trailing bits
		if rbsp[i] == 0x80 && i == len(rbsp)-1 {
			break
		}
		payloadType := 0
		for i < len(rbsp) && rbsp[i] == 0xff {
			payloadType += 255
			i++
		}
		if i >= len(rbsp) {
			break
		}
		payloadType += int(rbsp[i])
		i++
		payloadSize := 0
		for i < len(rbsp) && rbsp[i] == 0xff {
			payloadSize += 255
			i++
		}
		if i >= len(rbsp) {
			break
		}
		payloadSize += int(rbsp[i])
		i++
		if i+payloadSize > len(rbsp) {
			break
		}
		payload := rbsp[i : i+payloadSize]
		i += payloadSize

		var p Payload
		switch payloadType {
		case seiMasteringDisplay:
			p = parseMasteringSEI(payload)
		case seiContentLight:
			if len(payload) >= 4 {
				p = ContentLight{
					MaxCLL:  uint32(binary.BigEndian.Uint16(payload[0:2])),
					MaxFALL: uint32(binary.BigEndian.Uint16(payload[2:4])),
				}
			}
		case seiUserDataRegistered:
			p = parseT35(payload)
		case seiUserDataUnregistered:
			if len(payload) >= 16 {
				p = Raw{Kind: media.SideDataSEIUnregistered, Data: append([]byte(nil), payload...)}
			}
		}
		if p != nil {
			out = append(out, Encode(p))
		}
	}
	return out
}

// parseMasteringSEI maps the G, B, R primaries order of the SEI message
// onto R, G, B.
func parseMasteringSEI(payload []byte) Payload {
	if len(payload) < 24 {
		return nil
	}
	u16 := func(i int) int { return int(binary.BigEndian.Uint16(payload[i*2 : i*2+2])) }
	const chroma, luma = 50000, 10000
	var m MasteringDisplay
	for i, j := range [3]int{2, 0, 1} {
		m.Primaries[i][0] = media.Rational{Num: u16(j * 2), Den: chroma}
		m.Primaries[i][1] = media.Rational{Num: u16(j*2 + 1), Den: chroma}
	}
	m.WhitePoint[0] = media.Rational{Num: u16(6), Den: chroma}
	m.WhitePoint[1] = media.Rational{Num: u16(7), Den: chroma}
	m.MaxLuminance = media.Rational{Num: int(binary.BigEndian.Uint32(payload[16:20])), Den: luma}
	m.MinLuminance = media.Rational{Num: int(binary.BigEndian.Uint32(payload[20:24])), Den: luma}
	m.HasPrimaries, m.HasLuminance = true, true
	return m
}

const (
	t35CountryUS    = 0xb5
	t35CountryChina = 0x26
)

// parseT35 recognizes HDR10+, HDR Vivid and ATSC A/53 caption payloads.
func parseT35(payload []byte) Payload {
	if len(payload) < 3 {
		return nil
	}
	country := payload[0]
	provider := binary.BigEndian.Uint16(payload[1:3])
	rest := payload[3:]
	switch {
	case country == t35CountryUS && provider == 0x003c:
		// provider oriented code 1, application identifier 4
		if len(rest) < 3 || binary.BigEndian.Uint16(rest[0:2]) != 0x0001 || rest[2] != 0x04 {
			return nil
		}
		if p, ok := decodeHDRPlus(rest[3:]); ok {
			return p
		}
	case country == t35CountryUS && provider == 0x0031:
		if len(rest) < 5 || string(rest[0:4]) != "GA94" || rest[4] != 0x03 {
			return nil
		}
		return parseA53(rest[5:])
	case country == t35CountryChina && provider == 0x0004:
		if len(rest) < 2 || binary.BigEndian.Uint16(rest[0:2]) != 0x0005 {
			return nil
		}
		if p, ok := decodeHDRVivid(rest[2:]); ok {
			return p
		}
	}
	return nil
}

// parseA53 keeps the cc_data triplets of an A/53 cc_data() structure.
func parseA53(data []byte) Payload {
	if len(data) < 2 || data[0]&0x40 == 0 {
		return nil
	}
	count := int(data[0] & 0x1f)
	data = data[2:]
	if len(data) < count*3 {
		return nil
	}
	return Raw{Kind: media.SideDataA53CC, Data: append([]byte(nil), data[:count*3]...)}
}
