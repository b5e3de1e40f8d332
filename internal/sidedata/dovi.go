package sidedata

import (
	"fmt"
	"strings"

	"github.com/autobrr/go-avprobe/internal/media"
)

// DOVIConfSize is the size of a dvcC/dvvC decoder configuration record.
const DOVIConfSize = 24

// DOVIConf is a Dolby Vision decoder configuration record.
type DOVIConf struct {
	VersionMajor    uint8
	VersionMinor    uint8
	Profile         uint8
	Level           uint8
	RPUPresent      bool
	ELPresent       bool
	BLPresent       bool
	CompatibilityID uint8
	CompressionID   uint8
}

func (DOVIConf) Type() media.SideDataType { return media.SideDataDOVIConf }

func decodeDOVIConf(payload []byte) (Payload, bool) {
	if len(payload) != DOVIConfSize {
		return nil, false
	}
	cfg := DOVIConf{
		VersionMajor: payload[0],
		VersionMinor: payload[1],
	}
	if cfg.VersionMajor == 0 || cfg.VersionMajor > 3 {
		return nil, false
	}
	br := newBitReader(payload[2:])
	cfg.Profile = uint8(br.bits(7))
	cfg.Level = uint8(br.bits(6))
	cfg.RPUPresent = br.flag()
	cfg.ELPresent = br.flag()
	cfg.BLPresent = br.flag()
	cfg.CompatibilityID = uint8(br.bits(4))
	cfg.CompressionID = uint8(br.bits(2))
	return cfg, true
}

func (c DOVIConf) marshal() []byte {
	bw := &bitWriter{}
	bw.put(8, uint64(c.VersionMajor))
	bw.put(8, uint64(c.VersionMinor))
	bw.put(7, uint64(c.Profile))
	bw.put(6, uint64(c.Level))
	bw.putFlag(c.RPUPresent)
	bw.putFlag(c.ELPresent)
	bw.putFlag(c.BLPresent)
	bw.put(4, uint64(c.CompatibilityID))
	bw.put(2, uint64(c.CompressionID))
	out := bw.bytes()
	return append(out, make([]byte, DOVIConfSize-len(out))...)
}

var doviCompatibility = []string{
	"",
	"HDR10",
	"SDR",
	"",
	"HLG",
	"",
	"Blu-ray",
}

func doviProfilePrefix(profile uint8) string {
	switch profile {
	case 0, 1, 9:
		return "dvav"
	case 2, 3, 4, 5, 6, 7, 8:
		return "dvhe"
	case 10:
		return "dav1"
	case 20:
		return "dvh1"
	case 32:
		return "davc"
	case 34:
		return "dvh8"
	}
	return ""
}

func doviCompression(id uint8) string {
	switch id {
	case 0:
		return "no metadata compression"
	case 1:
		return "limited metadata compression"
	case 3:
		return "extended metadata compression"
	}
	return ""
}

func doviCompatibilityName(id uint8) string {
	if int(id) >= len(doviCompatibility) {
		return ""
	}
	return doviCompatibility[id]
}

// String describes the record, e.g.
// "Dolby Vision, Version 1.0, Profile 8.1, dvhe.08.06, BL+RPU, HDR10 compatible".
func (c DOVIConf) String() string {
	parts := []string{"Dolby Vision", fmt.Sprintf("Version %d.%d", c.VersionMajor, c.VersionMinor)}
	if prefix := doviProfilePrefix(c.Profile); prefix != "" {
		if doviCompatibilityName(c.CompatibilityID) != "" {
			parts = append(parts, fmt.Sprintf("Profile %d.%x", c.Profile, c.CompatibilityID))
		} else {
			parts = append(parts, fmt.Sprintf("Profile %d", c.Profile))
		}
		parts = append(parts, fmt.Sprintf("%s.%02d.%02d", prefix, c.Profile, c.Level))
	}
	var layers []string
	if c.BLPresent {
		layers = append(layers, "BL")
	}
	if c.ELPresent {
		layers = append(layers, "EL")
	}
	if c.RPUPresent {
		layers = append(layers, "RPU")
	}
	if len(layers) > 0 {
		parts = append(parts, strings.Join(layers, "+"))
	}
	if c.CompressionID != 0 {
		if s := doviCompression(c.CompressionID); s != "" {
			parts = append(parts, s)
		}
	}
	result := strings.Join(parts, ", ")
	if compat := doviCompatibilityName(c.CompatibilityID); compat != "" {
		result += ", " + compat + " compatible"
	}
	return result
}
