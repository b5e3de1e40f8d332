package media

import (
	"github.com/autobrr/go-avprobe/internal/audio"
	"github.com/autobrr/go-avprobe/internal/pixdesc"
)

// ProfileUnknown marks a codec profile that was not signalled.
const ProfileUnknown = -99

// LevelUnknown marks a codec level that was not signalled.
const LevelUnknown = -99

type FieldOrder int

const (
	FieldUnknown FieldOrder = iota
	FieldProgressive
	FieldTT
	FieldBB
	FieldTB
	FieldBT
)

func (f FieldOrder) String() string {
	switch f {
	case FieldProgressive:
		return "progressive"
	case FieldTT:
		return "tt"
	case FieldBB:
		return "bb"
	case FieldTB:
		return "tb"
	case FieldBT:
		return "bt"
	default:
		return "unknown"
	}
}

// CodecParameters is the static description of one elementary stream.
type CodecParameters struct {
	Type          Type
	CodecName     string
	CodecTag      uint32
	Profile       int
	Level         int
	Width         int
	Height        int
	CodedWidth    int
	CodedHeight   int
	PixFmt        pixdesc.PixelFormat
	SAR           Rational
	HasBFrames    int
	Refs          int
	FieldOrder    FieldOrder
	ColorRange    pixdesc.ColorRange
	ColorSpace    pixdesc.ColorSpace
	ColorTransfer pixdesc.ColorTransfer
	ColorPrims    pixdesc.ColorPrimaries
	ChromaLoc     pixdesc.ChromaLocation
	ClosedCaption bool
	FilmGrain     bool

	SampleFmt     audio.SampleFormat
	SampleRate    int
	Layout        audio.ChannelLayout
	BitsPerSample int
	FrameSize     int
	InitialPad    int

	BitRate          int64
	BitsPerRawSample int
	ExtraData        []byte
}

// NewCodecParameters returns parameters with every optional field unset.
func NewCodecParameters(t Type, name string) *CodecParameters {
	return &CodecParameters{
		Type:          t,
		CodecName:     name,
		Profile:       ProfileUnknown,
		Level:         LevelUnknown,
		PixFmt:        pixdesc.PixFmtNone,
		SampleFmt:     audio.SampleFmtNone,
		ColorPrims:    pixdesc.ColorPrimariesUnspecified,
		ColorTransfer: pixdesc.ColorTransferUnspecified,
		ColorSpace:    pixdesc.ColorSpaceUnspecified,
		Refs:          1,
	}
}

// Disposition is a bit set of stream roles.
type Disposition uint32

const (
	DispositionDefault Disposition = 1 << iota
	DispositionDub
	DispositionOriginal
	DispositionComment
	DispositionLyrics
	DispositionKaraoke
	DispositionForced
	DispositionHearingImpaired
	DispositionVisualImpaired
	DispositionCleanEffects
	DispositionAttachedPic
	DispositionTimedThumbnails
	DispositionNonDiegetic
	DispositionCaptions
	DispositionDescriptions
	DispositionMetadata
	DispositionDependent
	DispositionStillImage
	DispositionMultilayer
)

// DispositionNames lists every disposition in print order.
var DispositionNames = []struct {
	Flag Disposition
	Name string
}{
	{DispositionDefault, "default"},
	{DispositionDub, "dub"},
	{DispositionOriginal, "original"},
	{DispositionComment, "comment"},
	{DispositionLyrics, "lyrics"},
	{DispositionKaraoke, "karaoke"},
	{DispositionForced, "forced"},
	{DispositionHearingImpaired, "hearing_impaired"},
	{DispositionVisualImpaired, "visual_impaired"},
	{DispositionCleanEffects, "clean_effects"},
	{DispositionAttachedPic, "attached_pic"},
	{DispositionTimedThumbnails, "timed_thumbnails"},
	{DispositionNonDiegetic, "non_diegetic"},
	{DispositionCaptions, "captions"},
	{DispositionDescriptions, "descriptions"},
	{DispositionMetadata, "metadata"},
	{DispositionDependent, "dependent"},
	{DispositionStillImage, "still_image"},
	{DispositionMultilayer, "multilayer"},
}

func (d Disposition) Has(f Disposition) bool { return d&f != 0 }

type Stream struct {
	Index        int
	ID           int
	Codecpar     *CodecParameters
	TimeBase     Rational
	StartTime    int64
	Duration     int64
	NbFrames     int64
	AvgFrameRate Rational
	RFrameRate   Rational
	Disposition  Disposition
	Tags         Dict
	SideData     []SideData

	// Filled while reading when counting is requested.
	NbReadFrames  int64
	NbReadPackets int64
}

// NewStream returns a stream with unset timestamps.
func NewStream(index int, par *CodecParameters) *Stream {
	return &Stream{
		Index:     index,
		Codecpar:  par,
		TimeBase:  Rational{1, 90000},
		StartTime: NoPTS,
		Duration:  NoPTS,
	}
}

type Program struct {
	ID         int
	ProgramNum int
	PMTPid     int
	PCRPid     int
	Streams    []int
	Tags       Dict
	StartTime  int64
	EndTime    int64
}

type Chapter struct {
	ID       int64
	TimeBase Rational
	Start    int64
	End      int64
	Tags     Dict
}

type StreamGroupType int

const (
	GroupNone StreamGroupType = iota
	GroupIAMFAudioElement
	GroupIAMFMixPresentation
	GroupTileGrid
	GroupLCEVC
)

func (t StreamGroupType) String() string {
	switch t {
	case GroupIAMFAudioElement:
		return "IAMF Audio Element"
	case GroupIAMFMixPresentation:
		return "IAMF Mix Presentation"
	case GroupTileGrid:
		return "Tile Grid"
	case GroupLCEVC:
		return "LCEVC (Split Track)"
	default:
		return "unknown"
	}
}

// TileGrid is the parameter block of a tile grid stream group.
type TileGrid struct {
	Tiles       []Tile
	CodedWidth  int
	CodedHeight int
	Width       int
	Height      int
	HOffset     int
	VOffset     int
	Background  [4]uint8
}

type Tile struct {
	StreamIndex int
	Horizontal  int
	Vertical    int
}

// TypeName names the component kind in the stream group report.
func (g *TileGrid) TypeName() string { return "Tile Grid" }

type StreamGroup struct {
	Index       int
	ID          int64
	Type        StreamGroupType
	Streams     []int
	Disposition Disposition
	Tags        Dict
	TileGrid    *TileGrid
}

// FormatContext is an opened input: its container properties and streams.
type FormatContext struct {
	Filename       string
	FormatName     string
	FormatLongName string
	Streams        []*Stream
	Programs       []*Program
	Chapters       []*Chapter
	StreamGroups   []*StreamGroup

	// StartTime and Duration are in TimeBase units.
	StartTime  int64
	Duration   int64
	Size       int64
	BitRate    int64
	ProbeScore int
	Tags       Dict
}

// NewFormatContext returns a context with unset timing.
func NewFormatContext(filename string) *FormatContext {
	return &FormatContext{
		Filename:  filename,
		StartTime: NoPTS,
		Duration:  NoPTS,
		Size:      -1,
	}
}

func (fc *FormatContext) AddStream(par *CodecParameters) *Stream {
	st := NewStream(len(fc.Streams), par)
	fc.Streams = append(fc.Streams, st)
	return st
}

// ProgramOf returns the first program carrying stream index i, or nil.
func (fc *FormatContext) ProgramOf(i int) *Program {
	for _, p := range fc.Programs {
		for _, idx := range p.Streams {
			if idx == i {
				return p
			}
		}
	}
	return nil
}

// UpdateTimings derives container start and duration from stream timing
// when the demuxer did not set them.
func (fc *FormatContext) UpdateTimings() {
	start, end := NoPTS, NoPTS
	for _, st := range fc.Streams {
		if st.StartTime == NoPTS {
			continue
		}
		s := Rescale(st.StartTime, st.TimeBase, TimeBaseQ)
		if start == NoPTS || s < start {
			start = s
		}
		if st.Duration != NoPTS {
			e := s + Rescale(st.Duration, st.TimeBase, TimeBaseQ)
			if end == NoPTS || e > end {
				end = e
			}
		}
	}
	if fc.StartTime == NoPTS {
		fc.StartTime = start
	}
	if fc.Duration == NoPTS && start != NoPTS && end != NoPTS {
		fc.Duration = end - start
	}
	if fc.BitRate == 0 && fc.Size > 0 && fc.Duration > 0 {
		fc.BitRate = fc.Size * 8 * TimeBase / fc.Duration
	}
}
