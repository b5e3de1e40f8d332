package audio

import (
	"fmt"
	"math/bits"
	"strings"
)

type Channel int

const (
	ChanFL Channel = iota
	ChanFR
	ChanFC
	ChanLFE
	ChanBL
	ChanBR
	ChanFLC
	ChanFRC
	ChanBC
	ChanSL
	ChanSR
	ChanTC
	ChanTFL
	ChanTFC
	ChanTFR
	ChanTBL
	ChanTBC
	ChanTBR
)

const (
	ChanDL Channel = iota + 29
	ChanDR
	ChanWL
	ChanWR
	ChanSDL
	ChanSDR
	ChanLFE2
	ChanTSL
	ChanTSR
	ChanBFC
	ChanBFL
	ChanBFR
)

var channelNames = map[Channel]string{
	ChanFL: "FL", ChanFR: "FR", ChanFC: "FC", ChanLFE: "LFE",
	ChanBL: "BL", ChanBR: "BR", ChanFLC: "FLC", ChanFRC: "FRC",
	ChanBC: "BC", ChanSL: "SL", ChanSR: "SR", ChanTC: "TC",
	ChanTFL: "TFL", ChanTFC: "TFC", ChanTFR: "TFR", ChanTBL: "TBL",
	ChanTBC: "TBC", ChanTBR: "TBR", ChanDL: "DL", ChanDR: "DR",
	ChanWL: "WL", ChanWR: "WR", ChanSDL: "SDL", ChanSDR: "SDR",
	ChanLFE2: "LFE2", ChanTSL: "TSL", ChanTSR: "TSR", ChanBFC: "BFC",
	ChanBFL: "BFL", ChanBFR: "BFR",
}

func (c Channel) String() string {
	if n, ok := channelNames[c]; ok {
		return n
	}
	return fmt.Sprintf("USR%d", int(c))
}

func mask(chs ...Channel) uint64 {
	var m uint64
	for _, c := range chs {
		m |= 1 << uint(c)
	}
	return m
}

type Order int

const (
	OrderUnspec Order = iota
	OrderNative
)

// ChannelLayout describes channel count and, for native order, which
// speakers are present.
type ChannelLayout struct {
	Order      Order
	NbChannels int
	Mask       uint64
}

type namedLayout struct {
	name string
	mask uint64
}

var (
	maskMono       = mask(ChanFC)
	maskStereo     = mask(ChanFL, ChanFR)
	mask21         = maskStereo | mask(ChanLFE)
	mask30         = maskStereo | mask(ChanFC)
	mask30Back     = maskStereo | mask(ChanBC)
	mask40         = mask30 | mask(ChanBC)
	maskQuad       = maskStereo | mask(ChanBL, ChanBR)
	maskQuadSide   = maskStereo | mask(ChanSL, ChanSR)
	mask31         = mask30 | mask(ChanLFE)
	mask50         = mask30 | mask(ChanBL, ChanBR)
	mask50Side     = mask30 | mask(ChanSL, ChanSR)
	mask41         = mask40 | mask(ChanLFE)
	mask51         = mask50 | mask(ChanLFE)
	mask51Side     = mask50Side | mask(ChanLFE)
	mask60         = mask50Side | mask(ChanBC)
	mask60Front    = maskQuadSide | mask(ChanFLC, ChanFRC)
	maskHexagonal  = mask50 | mask(ChanBC)
	mask61         = mask51Side | mask(ChanBC)
	mask61Back     = mask51 | mask(ChanBC)
	mask61Front    = maskQuadSide | mask(ChanFLC, ChanFRC, ChanLFE)
	mask70         = mask50Side | mask(ChanBL, ChanBR)
	mask70Front    = mask50Side | mask(ChanFLC, ChanFRC)
	mask71         = mask51Side | mask(ChanBL, ChanBR)
	mask71Wide     = mask51 | mask(ChanFLC, ChanFRC)
	mask71WideSide = mask51Side | mask(ChanFLC, ChanFRC)
	maskOctagonal  = mask50 | mask(ChanBC, ChanSL, ChanSR)
	maskDownmix    = mask(ChanDL, ChanDR)
)

// Ordered so that the first entry with a given channel count is the
// default layout for that count.
var standardLayouts = []namedLayout{
	{"mono", maskMono},
	{"stereo", maskStereo},
	{"2.1", mask21},
	{"3.0", mask30},
	{"3.0(back)", mask30Back},
	{"4.0", mask40},
	{"quad", maskQuad},
	{"quad(side)", maskQuadSide},
	{"3.1", mask31},
	{"5.0", mask50},
	{"5.0(side)", mask50Side},
	{"4.1", mask41},
	{"5.1", mask51},
	{"5.1(side)", mask51Side},
	{"6.0", mask60},
	{"6.0(front)", mask60Front},
	{"hexagonal", maskHexagonal},
	{"6.1", mask61},
	{"6.1(back)", mask61Back},
	{"6.1(front)", mask61Front},
	{"7.0", mask70},
	{"7.0(front)", mask70Front},
	{"7.1", mask71},
	{"7.1(wide)", mask71Wide},
	{"7.1(wide-side)", mask71WideSide},
	{"octagonal", maskOctagonal},
	{"downmix", maskDownmix},
}

func LayoutFromMask(m uint64) ChannelLayout {
	return ChannelLayout{Order: OrderNative, NbChannels: bits.OnesCount64(m), Mask: m}
}

// DefaultLayout returns the conventional layout for n channels, or an
// unspecified layout when none exists.
func DefaultLayout(n int) ChannelLayout {
	for _, l := range standardLayouts {
		if bits.OnesCount64(l.mask) == n {
			return LayoutFromMask(l.mask)
		}
	}
	return ChannelLayout{Order: OrderUnspec, NbChannels: n}
}

func (l ChannelLayout) Valid() bool {
	if l.NbChannels <= 0 {
		return false
	}
	if l.Order == OrderNative {
		return bits.OnesCount64(l.Mask) == l.NbChannels
	}
	return true
}

func (l ChannelLayout) Equal(o ChannelLayout) bool {
	return l.Order == o.Order && l.NbChannels == o.NbChannels && l.Mask == o.Mask
}

// Describe renders the layout as "stereo", "5.1(side)" or
// "3 channels (FL+FR+LFE2)".
func (l ChannelLayout) Describe() string {
	switch l.Order {
	case OrderNative:
		for _, s := range standardLayouts {
			if s.mask == l.Mask {
				return s.name
			}
		}
		names := make([]string, 0, l.NbChannels)
		for c := Channel(0); c < 64; c++ {
			if l.Mask&(1<<uint(c)) != 0 {
				names = append(names, c.String())
			}
		}
		return fmt.Sprintf("%d channels (%s)", l.NbChannels, strings.Join(names, "+"))
	default:
		return fmt.Sprintf("%d channels", l.NbChannels)
	}
}

func (l ChannelLayout) String() string {
	return l.Describe()
}

// ParseLayout accepts a standard layout name or a channel count such as "6c".
func ParseLayout(s string) (ChannelLayout, error) {
	for _, l := range standardLayouts {
		if l.name == s {
			return LayoutFromMask(l.mask), nil
		}
	}
	var n int
	if _, err := fmt.Sscanf(s, "%dc", &n); err == nil && n > 0 {
		return DefaultLayout(n), nil
	}
	return ChannelLayout{}, fmt.Errorf("%w: channel layout %q", ErrInvalid, s)
}
