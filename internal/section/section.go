// Package section holds the static tree describing every entity a probe
// report can contain, plus the per-run selection overlay.
package section

type ID int

const None ID = -1

const (
	Root ID = iota
	Chapters
	Chapter
	ChapterTags
	Error
	Format
	FormatTags
	Frames
	Frame
	FrameTags
	FrameSideDataList
	FrameSideData
	FrameSideDataTimecodeList
	FrameSideDataTimecode
	FrameSideDataComponentList
	FrameSideDataComponent
	FrameSideDataPieceList
	FrameSideDataPiece
	FrameLogs
	FrameLog
	Subtitle
	LibraryVersions
	LibraryVersion
	Packets
	PacketsAndFrames
	Packet
	PacketTags
	PacketSideDataList
	PacketSideData
	PixelFormats
	PixelFormat
	PixelFormatFlags
	PixelFormatComponents
	PixelFormatComponent
	Programs
	Program
	ProgramTags
	ProgramStreams
	ProgramStream
	ProgramStreamDisposition
	ProgramStreamTags
	ProgramVersion
	StreamGroups
	StreamGroup
	StreamGroupTags
	StreamGroupDisposition
	StreamGroupComponents
	StreamGroupComponent
	StreamGroupSubcomponents
	StreamGroupSubcomponent
	StreamGroupPieces
	StreamGroupPiece
	StreamGroupSubpieces
	StreamGroupSubpiece
	StreamGroupBlocks
	StreamGroupBlock
	StreamGroupStreams
	StreamGroupStream
	StreamGroupStreamDisposition
	StreamGroupStreamTags
	Streams
	Stream
	StreamDisposition
	StreamTags
	StreamSideDataList
	StreamSideData

	Count
)

type Flags int

const (
	// IsWrapper sections only contain other sections.
	IsWrapper Flags = 1 << iota
	// IsArray sections repeat one element type.
	IsArray
	// HasVariableFields sections carry free-form keys such as tags.
	HasVariableFields
	// HasType sections expose a subtype through GetType.
	HasType
	// NumberingByType array children are numbered per child type.
	NumberingByType
)

type Section struct {
	ID          ID
	Name        string
	Flags       Flags
	Children    []ID
	ElementName string
	UniqueName  string
	// GetType maps the live object printed in this section to a subtype name.
	GetType func(data any) string
}

func (s *Section) Has(f Flags) bool {
	return s.Flags&f != 0
}

// Unique returns the unique name, falling back to the plain name.
func (s *Section) Unique() string {
	if s.UniqueName != "" {
		return s.UniqueName
	}
	return s.Name
}

// Element returns the label used for one entry of the section.
func (s *Section) Element() string {
	if s.ElementName != "" {
		return s.ElementName
	}
	return s.Name
}

// Typed is implemented by live objects printed in HasType sections.
type Typed interface {
	TypeName() string
}

func typeName(data any) string {
	if t, ok := data.(Typed); ok {
		return t.TypeName()
	}
	return "unknown"
}

func rawString(data any) string {
	if s, ok := data.(string); ok {
		return s
	}
	return ""
}

const (
	vf      = HasVariableFields
	vft     = HasVariableFields | HasType
	tagElem = "tag"
)

var sections = [Count]Section{
	Root: {Root, "root", IsWrapper, []ID{Chapters, Format, Frames, Programs, StreamGroups, Streams, Packets, Error, ProgramVersion, LibraryVersions, PixelFormats}, "", "", nil},

	Chapters:    {Chapters, "chapters", IsArray, []ID{Chapter}, "", "", nil},
	Chapter:     {Chapter, "chapter", 0, []ID{ChapterTags}, "", "", nil},
	ChapterTags: {ChapterTags, "tags", vf, nil, tagElem, "chapter_tags", nil},

	Error: {Error, "error", 0, nil, "", "", nil},

	Format:     {Format, "format", 0, []ID{FormatTags}, "", "", nil},
	FormatTags: {FormatTags, "tags", vf, nil, tagElem, "format_tags", nil},

	Frames:                     {Frames, "frames", IsArray, []ID{Frame, Subtitle}, "", "", nil},
	Frame:                      {Frame, "frame", 0, []ID{FrameTags, FrameSideDataList, FrameLogs}, "", "", nil},
	FrameTags:                  {FrameTags, "tags", vf, nil, tagElem, "frame_tags", nil},
	FrameSideDataList:          {FrameSideDataList, "side_data_list", IsArray, []ID{FrameSideData}, "side_data", "frame_side_data_list", nil},
	FrameSideData:              {FrameSideData, "side_data", vft, []ID{FrameSideDataTimecodeList, FrameSideDataComponentList}, "side_datum", "frame_side_data", typeName},
	FrameSideDataTimecodeList:  {FrameSideDataTimecodeList, "timecodes", IsArray, []ID{FrameSideDataTimecode}, "", "", nil},
	FrameSideDataTimecode:      {FrameSideDataTimecode, "timecode", 0, nil, "", "", nil},
	FrameSideDataComponentList: {FrameSideDataComponentList, "components", IsArray, []ID{FrameSideDataComponent}, "component", "frame_side_data_components", nil},
	FrameSideDataComponent:     {FrameSideDataComponent, "component", vft, []ID{FrameSideDataPieceList}, "component_entry", "frame_side_data_component", rawString},
	FrameSideDataPieceList:     {FrameSideDataPieceList, "pieces", IsArray, []ID{FrameSideDataPiece}, "piece", "frame_side_data_pieces", nil},
	FrameSideDataPiece:         {FrameSideDataPiece, "piece", vft, nil, "piece_entry", "frame_side_data_piece", rawString},
	FrameLogs:                  {FrameLogs, "logs", IsArray, []ID{FrameLog}, "", "", nil},
	FrameLog:                   {FrameLog, "log", 0, nil, "", "", nil},
	Subtitle:                   {Subtitle, "subtitle", 0, nil, "", "", nil},

	LibraryVersions: {LibraryVersions, "library_versions", IsArray, []ID{LibraryVersion}, "", "", nil},
	LibraryVersion:  {LibraryVersion, "library_version", 0, nil, "", "", nil},

	Packets:            {Packets, "packets", IsArray, []ID{Packet}, "", "", nil},
	PacketsAndFrames:   {PacketsAndFrames, "packets_and_frames", IsArray | NumberingByType, []ID{Packet, Frame, Subtitle}, "", "", nil},
	Packet:             {Packet, "packet", 0, []ID{PacketTags, PacketSideDataList}, "", "", nil},
	PacketTags:         {PacketTags, "tags", vf, nil, tagElem, "packet_tags", nil},
	PacketSideDataList: {PacketSideDataList, "side_data_list", IsArray, []ID{PacketSideData}, "side_data", "packet_side_data_list", nil},
	PacketSideData:     {PacketSideData, "side_data", vft, nil, "side_datum", "packet_side_data", typeName},

	PixelFormats:          {PixelFormats, "pixel_formats", IsArray, []ID{PixelFormat}, "", "", nil},
	PixelFormat:           {PixelFormat, "pixel_format", 0, []ID{PixelFormatFlags, PixelFormatComponents}, "", "", nil},
	PixelFormatFlags:      {PixelFormatFlags, "flags", 0, nil, "", "pixel_format_flags", nil},
	PixelFormatComponents: {PixelFormatComponents, "components", IsArray, []ID{PixelFormatComponent}, "", "pixel_format_components", nil},
	PixelFormatComponent:  {PixelFormatComponent, "component", 0, nil, "", "", nil},

	Programs:                 {Programs, "programs", IsArray, []ID{Program}, "", "", nil},
	Program:                  {Program, "program", 0, []ID{ProgramTags, ProgramStreams}, "", "", nil},
	ProgramTags:              {ProgramTags, "tags", vf, nil, tagElem, "program_tags", nil},
	ProgramStreams:           {ProgramStreams, "streams", IsArray, []ID{ProgramStream}, "", "program_streams", nil},
	ProgramStream:            {ProgramStream, "stream", 0, []ID{ProgramStreamDisposition, ProgramStreamTags}, "", "program_stream", nil},
	ProgramStreamDisposition: {ProgramStreamDisposition, "disposition", 0, nil, "", "program_stream_disposition", nil},
	ProgramStreamTags:        {ProgramStreamTags, "tags", vf, nil, tagElem, "program_stream_tags", nil},
	ProgramVersion:           {ProgramVersion, "program_version", 0, nil, "", "", nil},

	StreamGroups:                 {StreamGroups, "stream_groups", IsArray, []ID{StreamGroup}, "", "", nil},
	StreamGroup:                  {StreamGroup, "stream_group", 0, []ID{StreamGroupTags, StreamGroupDisposition, StreamGroupComponents, StreamGroupStreams}, "", "", nil},
	StreamGroupTags:              {StreamGroupTags, "tags", vf, nil, tagElem, "stream_group_tags", nil},
	StreamGroupDisposition:       {StreamGroupDisposition, "disposition", 0, nil, "", "stream_group_disposition", nil},
	StreamGroupComponents:        {StreamGroupComponents, "components", IsArray, []ID{StreamGroupComponent}, "component", "stream_group_components", nil},
	StreamGroupComponent:         {StreamGroupComponent, "component", vft, []ID{StreamGroupSubcomponents}, "component_entry", "stream_group_component", typeName},
	StreamGroupSubcomponents:     {StreamGroupSubcomponents, "subcomponents", IsArray, []ID{StreamGroupSubcomponent}, "component", "stream_group_subcomponents", nil},
	StreamGroupSubcomponent:      {StreamGroupSubcomponent, "subcomponent", vft, []ID{StreamGroupPieces}, "subcomponent_entry", "stream_group_subcomponent", rawString},
	StreamGroupPieces:            {StreamGroupPieces, "pieces", IsArray, []ID{StreamGroupPiece}, "piece", "stream_group_pieces", nil},
	StreamGroupPiece:             {StreamGroupPiece, "piece", vft, []ID{StreamGroupSubpieces}, "piece_entry", "stream_group_piece", rawString},
	StreamGroupSubpieces:         {StreamGroupSubpieces, "subpieces", IsArray, []ID{StreamGroupSubpiece}, "subpiece", "stream_group_subpieces", nil},
	StreamGroupSubpiece:          {StreamGroupSubpiece, "subpiece", vft, []ID{StreamGroupBlocks}, "subpiece_entry", "stream_group_subpiece", rawString},
	StreamGroupBlocks:            {StreamGroupBlocks, "blocks", IsArray, []ID{StreamGroupBlock}, "block", "stream_group_blocks", nil},
	StreamGroupBlock:             {StreamGroupBlock, "block", vft, nil, "block_entry", "stream_group_block", rawString},
	StreamGroupStreams:           {StreamGroupStreams, "streams", IsArray, []ID{StreamGroupStream}, "", "stream_group_streams", nil},
	StreamGroupStream:            {StreamGroupStream, "stream", 0, []ID{StreamGroupStreamDisposition, StreamGroupStreamTags}, "", "stream_group_stream", nil},
	StreamGroupStreamDisposition: {StreamGroupStreamDisposition, "disposition", 0, nil, "", "stream_group_stream_disposition", nil},
	StreamGroupStreamTags:        {StreamGroupStreamTags, "tags", vf, nil, tagElem, "stream_group_stream_tags", nil},

	Streams:            {Streams, "streams", IsArray, []ID{Stream}, "", "", nil},
	Stream:             {Stream, "stream", 0, []ID{StreamDisposition, StreamTags, StreamSideDataList}, "", "", nil},
	StreamDisposition:  {StreamDisposition, "disposition", 0, nil, "", "stream_disposition", nil},
	StreamTags:         {StreamTags, "tags", vf, nil, tagElem, "stream_tags", nil},
	StreamSideDataList: {StreamSideDataList, "side_data_list", IsArray, []ID{StreamSideData}, "side_data", "stream_side_data_list", nil},
	StreamSideData:     {StreamSideData, "side_data", vft, nil, "side_datum", "stream_side_data", typeName},
}

// Get returns the section for id. It panics on ids outside the table.
func Get(id ID) *Section {
	return &sections[id]
}

// Detached reports sections that are printed in place of their siblings
// rather than hanging off the root.
func Detached(id ID) bool {
	return id == PacketsAndFrames
}

// Walk visits the tree depth first starting at Root.
func Walk(visit func(s *Section, depth int)) {
	walk(Root, 0, visit)
}

func walk(id ID, depth int, visit func(s *Section, depth int)) {
	s := &sections[id]
	visit(s, depth)
	for _, child := range s.Children {
		walk(child, depth+1, visit)
	}
}

// Match returns every section whose name or unique name equals name.
func Match(name string) []ID {
	var ids []ID
	for i := range sections {
		s := &sections[i]
		if s.Name == name || s.UniqueName == name {
			ids = append(ids, s.ID)
		}
	}
	return ids
}
