package sidedata

import (
	"fmt"

	"github.com/autobrr/go-avprobe/internal/media"
)

// S12MTimecode holds up to three SMPTE 12M packed timecodes; the first
// word is the number of valid entries.
type S12MTimecode [4]uint32

func (S12MTimecode) Type() media.SideDataType { return media.SideDataS12MTimecode }
func (t S12MTimecode) marshal() []byte        { return encodeFixed(t) }

// Timecodes returns the valid packed values.
func (t S12MTimecode) Timecodes() []uint32 {
	n := min(int(t[0]), 3)
	return t[1 : 1+n]
}

// GOPTimecode is the 25 bit MPEG-2 group of pictures timecode.
type GOPTimecode int64

func (GOPTimecode) Type() media.SideDataType { return media.SideDataGOPTimecode }
func (t GOPTimecode) marshal() []byte        { return encodeFixed(t) }

func (t GOPTimecode) String() string {
	sep := ':'
	if t&(1<<24) != 0 {
		sep = ';'
	}
	return fmt.Sprintf("%02d:%02d:%02d%c%02d", t>>19&0x1f, t>>13&0x3f, t>>6&0x3f, sep, t&0x3f)
}

func bcd2uint(bcd uint32) uint32 {
	low, high := bcd&0xf, bcd>>4
	if low > 9 || high > 9 {
		return 0
	}
	return low + 10*high
}

// SMPTETimecode renders a packed SMPTE 12M timecode. Frame rates above 30
// count fields with the field bit.
func SMPTETimecode(rate media.Rational, tc uint32) string {
	hh := bcd2uint(tc & 0x3f)
	mm := bcd2uint(tc >> 8 & 0x7f)
	ss := bcd2uint(tc >> 16 & 0x7f)
	ff := bcd2uint(tc >> 24 & 0x3f)
	drop := tc&(1<<30) != 0

	if rate.Den > 0 && rate.Num > 30*rate.Den {
		ff <<= 1
		field := tc&(1<<23) != 0
		if rate.Num == 50*rate.Den {
			field = tc&(1<<7) != 0
		}
		if field {
			ff++
		}
	}
	sep := ':'
	if drop {
		sep = ';'
	}
	return fmt.Sprintf("%02d:%02d:%02d%c%02d", hh, mm, ss, sep, ff)
}

// PackSMPTE builds a packed timecode from its fields, the inverse of
// SMPTETimecode for rates up to 30.
func PackSMPTE(hh, mm, ss, ff int, drop bool) uint32 {
	bcd := func(v int) uint32 { return uint32(v/10)<<4 | uint32(v%10) }
	tc := bcd(hh) | bcd(mm)<<8 | bcd(ss)<<16 | bcd(ff)<<24
	if drop {
		tc |= 1 << 30
	}
	return tc
}
