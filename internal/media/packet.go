package media

import (
	"github.com/autobrr/go-avprobe/internal/audio"
	"github.com/autobrr/go-avprobe/internal/pixdesc"
)

type PacketFlags int

const (
	PacketKey PacketFlags = 1 << iota
	PacketCorrupt
	PacketDiscard
)

// Packet is one demuxed unit of compressed data. It is borrowed by the
// reader of ReadPacket and must not be retained past the next call.
type Packet struct {
	StreamIndex int
	PTS         int64
	DTS         int64
	Duration    int64
	Pos         int64
	Data        []byte
	Flags       PacketFlags
	SideData    []SideData
	Tags        Dict
}

// NewPacket returns an empty packet with unset timestamps.
func NewPacket() *Packet {
	return &Packet{PTS: NoPTS, DTS: NoPTS, Pos: -1}
}

func (p *Packet) Key() bool { return p.Flags&PacketKey != 0 }

// Reset clears p for reuse.
func (p *Packet) Reset() {
	*p = Packet{PTS: NoPTS, DTS: NoPTS, Pos: -1, Data: p.Data[:0]}
}

type PictureType int

const (
	PictureNone PictureType = iota
	PictureI
	PictureP
	PictureB
	PictureS
	PictureSI
	PictureSP
	PictureBI
)

// Char returns the single letter used in frame reports.
func (t PictureType) Char() byte {
	switch t {
	case PictureI:
		return 'I'
	case PictureP:
		return 'P'
	case PictureB:
		return 'B'
	case PictureS:
		return 'S'
	case PictureSI:
		return 'i'
	case PictureSP:
		return 'p'
	case PictureBI:
		return 'b'
	default:
		return '?'
	}
}

// Frame is one decoded unit. For audio frames Data holds the sample
// planes in SampleFmt layout.
type Frame struct {
	MediaType        Type
	StreamIndex      int
	KeyFrame         bool
	PTS              int64
	PktDTS           int64
	BestEffortTS     int64
	Duration         int64
	PktPos           int64
	PktSize          int
	Width            int
	Height           int
	CropTop          int
	CropBottom       int
	CropLeft         int
	CropRight        int
	PixFmt           pixdesc.PixelFormat
	SAR              Rational
	PictType         PictureType
	Interlaced       bool
	TopFieldFirst    bool
	Lossless         bool
	RepeatPict       int
	ColorRange       pixdesc.ColorRange
	ColorSpace       pixdesc.ColorSpace
	ColorPrims       pixdesc.ColorPrimaries
	ColorTransfer    pixdesc.ColorTransfer
	ChromaLoc        pixdesc.ChromaLocation
	SampleFmt        audio.SampleFormat
	SampleRate       int
	NbSamples        int
	Layout           audio.ChannelLayout
	Data             [][]byte
	Tags             Dict
	SideData         []SideData
	DecodeErrorFlags int
}

// NewFrame returns a frame with unset timestamps and formats.
func NewFrame() *Frame {
	return &Frame{
		PTS:           NoPTS,
		PktDTS:        NoPTS,
		BestEffortTS:  NoPTS,
		PktPos:        -1,
		PktSize:       -1,
		PixFmt:        pixdesc.PixFmtNone,
		SampleFmt:     audio.SampleFmtNone,
		ColorPrims:    pixdesc.ColorPrimariesUnspecified,
		ColorTransfer: pixdesc.ColorTransferUnspecified,
		ColorSpace:    pixdesc.ColorSpaceUnspecified,
	}
}

// Subtitle is a decoded subtitle event.
type Subtitle struct {
	PTS              int64
	Format           int
	StartDisplayTime uint32
	EndDisplayTime   uint32
	NumRects         int
}

// SideData is an auxiliary record attached to a packet, frame or stream.
// The payload layout depends on Type.
type SideData struct {
	Type     SideDataType
	Data     []byte
	Metadata Dict
}

// TypeName implements the typed section contract.
func (sd *SideData) TypeName() string {
	return sd.Type.String()
}

type SideDataType int

const (
	SideDataUnknown SideDataType = iota
	SideDataDisplayMatrix
	SideDataStereo3D
	SideDataSpherical
	SideDataMasteringDisplay
	SideDataContentLight
	SideDataDynamicHDRPlus
	SideDataDynamicHDRVivid
	SideDataDOVIConf
	SideDataDOVIMetadata
	SideDataSkipSamples
	SideDataCPBProperties
	SideDataAFD
	SideDataFrameCropping
	SideDataAudioServiceType
	SideDataMPEGTSStreamID
	SideDataWebVTTIdentifier
	SideDataWebVTTSettings
	SideDataICCProfile
	SideDataS12MTimecode
	SideDataGOPTimecode
	SideDataA53CC
	SideDataReplayGain
	SideDataSEIUnregistered
	SideDataFilmGrain
	SideDataViewID
	SideDataAmbientViewing

	sideDataCount
)

var sideDataNames = [sideDataCount]struct{ pkt, frame string }{
	SideDataUnknown:          {"", ""},
	SideDataDisplayMatrix:    {"Display Matrix", "3x3 displaymatrix"},
	SideDataStereo3D:         {"Stereo 3D", "Stereo 3D"},
	SideDataSpherical:        {"Spherical Mapping", "Spherical Mapping"},
	SideDataMasteringDisplay: {"Mastering display metadata", "Mastering display metadata"},
	SideDataContentLight:     {"Content light level metadata", "Content light level metadata"},
	SideDataDynamicHDRPlus:   {"HDR10+ Dynamic Metadata (SMPTE 2094-40)", "HDR Dynamic Metadata SMPTE2094-40 (HDR10+)"},
	SideDataDynamicHDRVivid:  {"HDR Dynamic Metadata CUVA 005.1 2021 (Vivid)", "HDR Dynamic Metadata CUVA 005.1 2021 (Vivid)"},
	SideDataDOVIConf:         {"DOVI configuration record", "DOVI configuration record"},
	SideDataDOVIMetadata:     {"Dolby Vision Metadata", "Dolby Vision Metadata"},
	SideDataSkipSamples:      {"Skip Samples", "Skip samples"},
	SideDataCPBProperties:    {"CPB properties", "CPB properties"},
	SideDataAFD:              {"Active Format Description data", "Active format description"},
	SideDataFrameCropping:    {"Frame Cropping", "Frame Cropping"},
	SideDataAudioServiceType: {"Audio service type", "Audio service type"},
	SideDataMPEGTSStreamID:   {"MPEGTS Stream ID", "MPEGTS Stream ID"},
	SideDataWebVTTIdentifier: {"WebVTT ID", "WebVTT ID"},
	SideDataWebVTTSettings:   {"WebVTT Settings", "WebVTT Settings"},
	SideDataICCProfile:       {"ICC Profile", "ICC profile"},
	SideDataS12MTimecode:     {"SMPTE ST 12-1:2014", "SMPTE 12-1 timecode"},
	SideDataGOPTimecode:      {"GOP timecode", "GOP timecode"},
	SideDataA53CC:            {"ATSC A53 Part 4 Closed Captions", "ATSC A53 Part 4 Closed Captions"},
	SideDataReplayGain:       {"Replay Gain", "AVReplayGain"},
	SideDataSEIUnregistered:  {"SEI unregistered data", "H.26[45] User Data Unregistered SEI message"},
	SideDataFilmGrain:        {"Film grain parameters", "Film grain parameters"},
	SideDataViewID:           {"View ID", "View ID"},
	SideDataAmbientViewing:   {"Ambient viewing environment", "Ambient viewing environment"},
}

// String returns the packet side data name, "unknown" when unnamed.
func (t SideDataType) String() string {
	if t <= SideDataUnknown || t >= sideDataCount || sideDataNames[t].pkt == "" {
		return "unknown"
	}
	return sideDataNames[t].pkt
}

// FrameName returns the frame side data name, "unknown" when unnamed.
func (t SideDataType) FrameName() string {
	if t <= SideDataUnknown || t >= sideDataCount || sideDataNames[t].frame == "" {
		return "unknown"
	}
	return sideDataNames[t].frame
}

// FrameSideData wraps frame side data so typed sections print the frame
// flavoured name.
type FrameSideData struct {
	*SideData
}

func (f FrameSideData) TypeName() string {
	return f.Type.FrameName()
}

// FindSideData returns the first entry of type t, or nil.
func FindSideData(list []SideData, t SideDataType) *SideData {
	for i := range list {
		if list[i].Type == t {
			return &list[i]
		}
	}
	return nil
}
