package codec

import (
	"fmt"

	"github.com/bluenviron/mediacommon/v2/pkg/codecs/h264"
	"github.com/bluenviron/mediacommon/v2/pkg/codecs/h265"

	"github.com/autobrr/go-avprobe/internal/media"
	"github.com/autobrr/go-avprobe/internal/pixdesc"
	"github.com/autobrr/go-avprobe/internal/sidedata"
)

// accessUnit is what one packet of video revealed.
type accessUnit struct {
	slice    bool
	key      bool
	pict     media.PictureType
	sideData []media.SideData
}

// splitNALUs returns the NAL units of an Annex B or length prefixed
// access unit.
func splitNALUs(data []byte, lengthPrefixed bool) [][]byte {
	if lengthPrefixed {
		var au h264.AVCC
		if err := au.Unmarshal(data); err != nil {
			return nil
		}
		return au
	}
	var au h264.AnnexB
	if err := au.Unmarshal(data); err != nil {
		return nil
	}
	return au
}

// vui carries the colour and aspect fields shared by the H.264 and HEVC
// video usability information.
type vui struct {
	aspectIdc            uint8
	sarWidth, sarHeight  uint16
	hasAspect            bool
	fullRange            bool
	hasSignalType        bool
	primaries, transfer  uint8
	matrix               uint8
	hasColourDescription bool
}

// sarTable holds the predefined sample aspect ratios, indexed by
// aspect_ratio_idc.
var sarTable = []media.Rational{
	{0, 1}, {1, 1}, {12, 11}, {10, 11}, {16, 11}, {40, 33}, {24, 11}, {20, 11},
	{32, 11}, {80, 33}, {18, 11}, {15, 11}, {64, 33}, {160, 99}, {4, 3}, {3, 2}, {2, 1},
}

func (v vui) apply(par *media.CodecParameters) {
	if v.hasAspect {
		switch {
		case v.aspectIdc == 255 && v.sarHeight != 0:
			par.SAR = media.Rational{Num: int(v.sarWidth), Den: int(v.sarHeight)}.Reduce()
		case int(v.aspectIdc) < len(sarTable):
			par.SAR = sarTable[v.aspectIdc]
		}
	}
	if v.hasSignalType {
		par.ColorRange = pixdesc.ColorRangeMPEG
		if v.fullRange {
			par.ColorRange = pixdesc.ColorRangeJPEG
		}
	}
	if v.hasColourDescription {
		par.ColorPrims = pixdesc.ColorPrimaries(v.primaries)
		par.ColorTransfer = pixdesc.ColorTransfer(v.transfer)
		par.ColorSpace = pixdesc.ColorSpace(v.matrix)
	}
}

// videoPixFmt names the planar YUV layout for a chroma format and depth.
func videoPixFmt(chroma, depth int, fullRange bool) pixdesc.PixelFormat {
	bases := []string{"gray", "yuv420p", "yuv422p", "yuv444p"}
	if chroma < 0 || chroma >= len(bases) {
		return pixdesc.PixFmtNone
	}
	name := bases[chroma]
	switch {
	case depth > 8:
		name = fmt.Sprintf("%s%d", name, depth)
	case fullRange && chroma > 0:
		name = "yuvj" + name[3:]
	}
	return pixdesc.Lookup(name)
}

func setDepth(par *media.CodecParameters, chroma, depth int) {
	par.PixFmt = videoPixFmt(chroma, depth, par.ColorRange == pixdesc.ColorRangeJPEG)
	par.BitsPerRawSample = depth
	if chroma == 1 && par.ChromaLoc == pixdesc.ChromaLocUnspecified {
		par.ChromaLoc = pixdesc.ChromaLocLeft
	}
}

// videoFrame describes one access unit against the current parameters.
func videoFrame(par *media.CodecParameters, pkt *media.Packet, au accessUnit) *media.Frame {
	f := packetFrame(media.TypeVideo, pkt)
	f.KeyFrame = au.key || pkt.Key()
	f.PictType = au.pict
	f.Width = par.Width
	f.Height = par.Height
	f.CropRight = par.CodedWidth - par.Width
	f.CropBottom = par.CodedHeight - par.Height
	if f.CropRight < 0 || f.CropBottom < 0 {
		f.CropRight, f.CropBottom = 0, 0
	}
	f.PixFmt = par.PixFmt
	f.SAR = par.SAR
	f.ColorRange = par.ColorRange
	f.ColorSpace = par.ColorSpace
	f.ColorPrims = par.ColorPrims
	f.ColorTransfer = par.ColorTransfer
	f.ChromaLoc = par.ChromaLoc
	f.Interlaced = par.FieldOrder != media.FieldProgressive && par.FieldOrder != media.FieldUnknown
	f.TopFieldFirst = par.FieldOrder == media.FieldTT || par.FieldOrder == media.FieldTB
	f.SideData = au.sideData
	return f
}

type h264State struct {
	par            *media.CodecParameters
	lengthPrefixed bool
	fps            float64
}

func newH264State(par *media.CodecParameters) *h264State {
	s := &h264State{par: par}
	if len(par.ExtraData) > 6 && par.ExtraData[0] == 1 {
		s.lengthPrefixed = true
		s.parseAVCConfig(par.ExtraData)
	} else if len(par.ExtraData) > 0 {
		s.scan(par.ExtraData)
	}
	return s
}

// parseAVCConfig reads the parameter sets of an avcC record.
func (s *h264State) parseAVCConfig(payload []byte) {
	par := s.par
	if par.Profile == media.ProfileUnknown {
		par.Profile = int(payload[1])
		par.Level = int(payload[3])
	}
	spsCount := int(payload[5] & 0x1f)
	offset := 6
	for i := 0; i < spsCount && offset+2 <= len(payload); i++ {
		n := int(payload[offset])<<8 | int(payload[offset+1])
		offset += 2
		if offset+n > len(payload) {
			return
		}
		s.setSPS(payload[offset : offset+n])
		offset += n
	}
}

func (s *h264State) setSPS(nalu []byte) {
	var sps h264.SPS
	if err := sps.Unmarshal(nalu); err != nil {
		return
	}
	par := s.par
	par.Width = sps.Width()
	par.Height = sps.Height()
	fieldFactor := 2
	if sps.FrameMbsOnlyFlag {
		fieldFactor = 1
		par.FieldOrder = media.FieldProgressive
	}
	par.CodedWidth = (int(sps.PicWidthInMbsMinus1) + 1) * 16
	par.CodedHeight = (int(sps.PicHeightInMapUnitsMinus1) + 1) * 16 * fieldFactor

	par.Profile = int(sps.ProfileIdc)
	switch {
	case sps.ProfileIdc == 66 && sps.ConstraintSet1Flag:
		par.Profile |= profileH264Constrained
	case (sps.ProfileIdc == 110 || sps.ProfileIdc == 122 || sps.ProfileIdc == 244) && sps.ConstraintSet3Flag:
		par.Profile |= profileH264Intra
	}
	par.Level = int(sps.LevelIdc)
	par.Refs = int(sps.MaxNumRefFrames)

	if sps.VUI != nil {
		v := sps.VUI
		vui{
			aspectIdc:            v.AspectRatioIdc,
			sarWidth:             v.SarWidth,
			sarHeight:            v.SarHeight,
			hasAspect:            v.AspectRatioInfoPresentFlag,
			fullRange:            v.VideoFullRangeFlag,
			hasSignalType:        v.VideoSignalTypePresentFlag,
			primaries:            v.ColourPrimaries,
			transfer:             v.TransferCharacteristics,
			matrix:               v.MatrixCoefficients,
			hasColourDescription: v.ColourDescriptionPresentFlag,
		}.apply(par)
	}

	chroma, depth := 1, 8
	if isHighProfile(sps.ProfileIdc) {
		chroma = int(sps.ChromaFormatIdc)
		depth = int(sps.BitDepthLumaMinus8) + 8
	}
	setDepth(par, chroma, depth)
	s.fps = sps.FPS()
}

// isHighProfile reports whether the SPS carries chroma format and bit
// depth fields.
func isHighProfile(profileIdc uint8) bool {
	switch profileIdc {
	case 100, 110, 122, 244, 44, 83, 86, 118, 128, 138, 139, 134, 135:
		return true
	}
	return false
}

func (s *h264State) scan(data []byte) accessUnit {
	var au accessUnit
	for _, nalu := range splitNALUs(data, s.lengthPrefixed) {
		if len(nalu) == 0 {
			continue
		}
		switch typ := h264.NALUType(nalu[0] & 0x1f); typ {
		case h264.NALUTypeSPS:
			s.setSPS(nalu)
		case h264.NALUTypeSEI:
			au.sideData = append(au.sideData, sidedata.FromH264SEI(nalu)...)
		case h264.NALUTypeIDR, h264.NALUTypeNonIDR:
			if au.slice {
				continue
			}
			au.slice = true
			au.key = typ == h264.NALUTypeIDR
			au.pict = h264PictType(nalu)
		}
	}
	return au
}

// h264PictType reads slice_type from the slice header.
func h264PictType(nalu []byte) media.PictureType {
	br := newBitReader(nalToRBSP(nalu, 1))
	if _, ok := br.readUE(); !ok { // first_mb_in_slice
		return media.PictureNone
	}
	sliceType, ok := br.readUE()
	if !ok {
		return media.PictureNone
	}
	switch sliceType % 5 {
	case 0:
		return media.PictureP
	case 1:
		return media.PictureB
	case 2:
		return media.PictureI
	case 3:
		return media.PictureSP
	default:
		return media.PictureSI
	}
}

type h264Decoder struct {
	frameQueue
	state *h264State
}

func (d *h264Decoder) SendPacket(pkt *media.Packet) error {
	if ok, err := d.accept(pkt); !ok {
		return err
	}
	au := d.state.scan(pkt.Data)
	if au.slice {
		d.push(videoFrame(d.state.par, pkt, au))
	}
	return nil
}

type hevcState struct {
	par *media.CodecParameters
	fps float64
	// extraSliceHeaderBits comes from the last PPS.
	extraSliceHeaderBits int
}

func newHEVCState(par *media.CodecParameters) *hevcState {
	s := &hevcState{par: par}
	if len(par.ExtraData) > 0 && par.ExtraData[0] != 1 {
		s.scan(par.ExtraData)
	}
	return s
}

func (s *hevcState) setSPS(nalu []byte) {
	var sps h265.SPS
	if err := sps.Unmarshal(nalu); err != nil {
		return
	}
	par := s.par
	par.Width = sps.Width()
	par.Height = sps.Height()
	par.CodedWidth = int(sps.PicWidthInLumaSamples)
	par.CodedHeight = int(sps.PicHeightInLumaSamples)
	par.Profile = int(sps.ProfileTierLevel.GeneralProfileIdc)
	par.Level = int(sps.ProfileTierLevel.GeneralLevelIdc)
	par.FieldOrder = media.FieldProgressive
	if sps.VUI != nil {
		v := sps.VUI
		vui{
			aspectIdc:            v.AspectRatioIdc,
			sarWidth:             v.SarWidth,
			sarHeight:            v.SarHeight,
			hasAspect:            v.AspectRatioInfoPresentFlag,
			fullRange:            v.VideoFullRangeFlag,
			hasSignalType:        v.VideoSignalTypePresentFlag,
			primaries:            v.ColourPrimaries,
			transfer:             v.TransferCharacteristics,
			matrix:               v.MatrixCoefficients,
			hasColourDescription: v.ColourDescriptionPresentFlag,
		}.apply(par)
	}
	setDepth(par, int(sps.ChromaFormatIdc), int(sps.BitDepthLumaMinus8)+8)
	s.fps = sps.FPS()
}

func (s *hevcState) setPPS(nalu []byte) {
	br := newBitReader(nalToRBSP(nalu, 2))
	br.readUE() // pps_pic_parameter_set_id
	br.readUE() // pps_seq_parameter_set_id
	br.readBits(2)
	if n, ok := br.readBits(3); ok {
		s.extraSliceHeaderBits = int(n)
	}
}

func (s *hevcState) scan(data []byte) accessUnit {
	var au accessUnit
	for _, nalu := range splitNALUs(data, false) {
		if len(nalu) < 2 {
			continue
		}
		typ := h265.NALUType((nalu[0] >> 1) & 0x3f)
		switch {
		case typ == h265.NALUType_SPS_NUT:
			s.setSPS(nalu)
		case typ == h265.NALUType_PPS_NUT:
			s.setPPS(nalu)
		case typ == h265.NALUType_PREFIX_SEI_NUT || typ == h265.NALUType_SUFFIX_SEI_NUT:
			au.sideData = append(au.sideData, sidedata.FromHEVCSEI(nalu)...)
		case typ < 32 && !au.slice:
			pict, first := s.pictType(nalu, typ)
			if !first {
				continue
			}
			au.slice = true
			// IRAP pictures, BLA through the reserved IRAP range
			au.key = typ >= 16 && typ <= 23
			au.pict = pict
		}
	}
	return au
}

// pictType reads slice_type from the first slice segment of a picture.
func (s *hevcState) pictType(nalu []byte, typ h265.NALUType) (media.PictureType, bool) {
	br := newBitReader(nalToRBSP(nalu, 2))
	first, ok := br.readFlag()
	if !ok || !first {
		return media.PictureNone, false
	}
	if typ >= 16 && typ <= 23 {
		br.readBits(1) // no_output_of_prior_pics_flag
	}
	br.readUE() // slice_pic_parameter_set_id
	br.readBits(uint8(s.extraSliceHeaderBits))
	sliceType, ok := br.readUE()
	if !ok {
		return media.PictureNone, true
	}
	switch sliceType {
	case 0:
		return media.PictureB, true
	case 1:
		return media.PictureP, true
	case 2:
		return media.PictureI, true
	}
	return media.PictureNone, true
}

type hevcDecoder struct {
	frameQueue
	state *hevcState
}

func (d *hevcDecoder) SendPacket(pkt *media.Packet) error {
	if ok, err := d.accept(pkt); !ok {
		return err
	}
	au := d.state.scan(pkt.Data)
	if au.slice {
		d.push(videoFrame(d.state.par, pkt, au))
	}
	return nil
}
