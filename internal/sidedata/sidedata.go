// Package sidedata decodes the typed side data records attached to
// streams, packets and frames, and prints them into a report.
//
// Every fixed layout is little-endian and must match its exact size; a
// record whose payload does not fit is skipped rather than reported.
package sidedata

import (
	"encoding/binary"
	"fmt"

	"github.com/autobrr/go-avprobe/internal/media"
)

// Payload is a decoded side data record.
type Payload interface {
	Type() media.SideDataType
	marshal() []byte
}

// Encode serializes p into a side data entry.
func Encode(p Payload) media.SideData {
	return media.SideData{Type: p.Type(), Data: p.marshal()}
}

// Decode returns the typed payload of sd. ok is false for types without a
// decoder and for payloads of the wrong size.
func Decode(sd *media.SideData) (Payload, bool) {
	d := sd.Data
	switch sd.Type {
	case media.SideDataDisplayMatrix:
		if len(d) < 9*4 {
			return nil, false
		}
		return decodeFixed[DisplayMatrix](d[:9*4])
	case media.SideDataStereo3D:
		return decodeFixed[Stereo3D](d)
	case media.SideDataSpherical:
		return decodeFixed[Spherical](d)
	case media.SideDataSkipSamples:
		return decodeFixed[SkipSamples](d)
	case media.SideDataMasteringDisplay:
		p, ok := decodeFixed[masteringWire](d)
		if !ok {
			return nil, false
		}
		return p.(masteringWire).payload(), true
	case media.SideDataContentLight:
		return decodeFixed[ContentLight](d)
	case media.SideDataCPBProperties:
		return decodeFixed[CPBProperties](d)
	case media.SideDataFrameCropping:
		return decodeFixed[FrameCropping](d)
	case media.SideDataAudioServiceType:
		return decodeFixed[AudioServiceType](d)
	case media.SideDataMPEGTSStreamID:
		return decodeFixed[MPEGTSStreamID](d)
	case media.SideDataAFD:
		return decodeFixed[AFD](d)
	case media.SideDataS12MTimecode:
		return decodeFixed[S12MTimecode](d)
	case media.SideDataGOPTimecode:
		if len(d) < 8 {
			return nil, false
		}
		return decodeFixed[GOPTimecode](d[:8])
	case media.SideDataDOVIConf:
		return decodeDOVIConf(d)
	case media.SideDataDynamicHDRPlus:
		return decodeHDRPlus(d)
	case media.SideDataDynamicHDRVivid:
		return decodeHDRVivid(d)
	}
	return nil, false
}

func decodeFixed[T Payload](data []byte) (Payload, bool) {
	var v T
	if len(data) != binary.Size(&v) {
		return nil, false
	}
	if _, err := binary.Decode(data, binary.LittleEndian, &v); err != nil {
		return nil, false
	}
	return v, true
}

func encodeFixed(v any) []byte {
	b, err := binary.Append(nil, binary.LittleEndian, v)
	if err != nil {
		panic(fmt.Sprintf("sidedata: %T is not a fixed layout: %v", v, err))
	}
	return b
}

// q32 is the wire form of a rational.
type q32 struct {
	Num int32
	Den int32
}

func (q q32) rational() media.Rational { return media.Rational{Num: int(q.Num), Den: int(q.Den)} }

func toQ32(r media.Rational) q32 { return q32{int32(r.Num), int32(r.Den)} }

type Stereo3DType int32

const (
	Stereo3D2D Stereo3DType = iota
	Stereo3DSideBySide
	Stereo3DTopBottom
	Stereo3DFrameSequence
	Stereo3DCheckerboard
	Stereo3DSideBySideQuincunx
	Stereo3DLines
	Stereo3DColumns
	Stereo3DUnspecified
)

var stereo3DNames = []string{
	"2D",
	"side by side",
	"top and bottom",
	"frame alternate",
	"checkerboard",
	"side by side (quincunx subsampling)",
	"interleaved lines",
	"interleaved columns",
	"unspecified",
}

func (t Stereo3DType) String() string {
	if t < 0 || int(t) >= len(stereo3DNames) {
		return "unknown"
	}
	return stereo3DNames[t]
}

// Stereo3DFlagInvert marks views stored in inverted order.
const Stereo3DFlagInvert = 1

type Stereo3D struct {
	Kind  Stereo3DType
	Flags int32
}

func (Stereo3D) Type() media.SideDataType { return media.SideDataStereo3D }
func (s Stereo3D) marshal() []byte        { return encodeFixed(s) }

type Projection int32

const (
	ProjectionEquirectangular Projection = iota
	ProjectionCubemap
	ProjectionEquirectangularTile
	ProjectionHalfEquirectangular
	ProjectionRectilinear
	ProjectionFisheye
)

var projectionNames = []string{
	"equirectangular",
	"cubemap",
	"tiled equirectangular",
	"half equirectangular",
	"rectilinear",
	"fisheye",
}

func (p Projection) String() string {
	if p < 0 || int(p) >= len(projectionNames) {
		return "unknown"
	}
	return projectionNames[p]
}

// Spherical describes a 360 video mapping. Yaw, pitch and roll are 16.16
// fixed point degrees; bounds are 0.32 fixed point fractions.
type Spherical struct {
	Projection  Projection
	Yaw         int32
	Pitch       int32
	Roll        int32
	BoundLeft   uint32
	BoundTop    uint32
	BoundRight  uint32
	BoundBottom uint32
	Padding     uint32
}

func (Spherical) Type() media.SideDataType { return media.SideDataSpherical }
func (s Spherical) marshal() []byte        { return encodeFixed(s) }

// TileBounds converts the fractional bounds of a tiled equirectangular
// mapping into pixels for a video of the given size.
func (s Spherical) TileBounds(width, height int) (left, top, right, bottom uint64) {
	const max32 = uint64(^uint32(0))
	w, h := uint64(width), uint64(height)
	origW := w * max32 / (max32 - uint64(s.BoundRight) - uint64(s.BoundLeft))
	origH := h * max32 / (max32 - uint64(s.BoundBottom) - uint64(s.BoundTop))
	left = (origW*uint64(s.BoundLeft) + max32 - 1) / max32
	top = (origH*uint64(s.BoundTop) + max32 - 1) / max32
	right = origW - w - left
	bottom = origH - h - top
	return left, top, right, bottom
}

type SkipSamples struct {
	Skip           uint32
	DiscardPadding uint32
	SkipReason     uint8
	DiscardReason  uint8
}

func (SkipSamples) Type() media.SideDataType { return media.SideDataSkipSamples }
func (s SkipSamples) marshal() []byte        { return encodeFixed(s) }

// MasteringDisplay carries SMPTE ST 2086 mastering display colour volume.
// Primaries are ordered red, green, blue.
type MasteringDisplay struct {
	Primaries    [3][2]media.Rational
	WhitePoint   [2]media.Rational
	MinLuminance media.Rational
	MaxLuminance media.Rational
	HasPrimaries bool
	HasLuminance bool
}

type masteringWire struct {
	Primaries    [3][2]q32
	WhitePoint   [2]q32
	MinLuminance q32
	MaxLuminance q32
	HasPrimaries bool
	HasLuminance bool
}

func (m masteringWire) Type() media.SideDataType { return media.SideDataMasteringDisplay }
func (m masteringWire) marshal() []byte          { return encodeFixed(m) }

func (m masteringWire) payload() MasteringDisplay {
	var out MasteringDisplay
	for i := range m.Primaries {
		for j := range m.Primaries[i] {
			out.Primaries[i][j] = m.Primaries[i][j].rational()
		}
	}
	out.WhitePoint = [2]media.Rational{m.WhitePoint[0].rational(), m.WhitePoint[1].rational()}
	out.MinLuminance = m.MinLuminance.rational()
	out.MaxLuminance = m.MaxLuminance.rational()
	out.HasPrimaries, out.HasLuminance = m.HasPrimaries, m.HasLuminance
	return out
}

func (MasteringDisplay) Type() media.SideDataType { return media.SideDataMasteringDisplay }

func (m MasteringDisplay) marshal() []byte {
	var w masteringWire
	for i := range m.Primaries {
		for j := range m.Primaries[i] {
			w.Primaries[i][j] = toQ32(m.Primaries[i][j])
		}
	}
	w.WhitePoint = [2]q32{toQ32(m.WhitePoint[0]), toQ32(m.WhitePoint[1])}
	w.MinLuminance = toQ32(m.MinLuminance)
	w.MaxLuminance = toQ32(m.MaxLuminance)
	w.HasPrimaries, w.HasLuminance = m.HasPrimaries, m.HasLuminance
	return w.marshal()
}

// ContentLight holds MaxCLL and MaxFALL in cd/m2.
type ContentLight struct {
	MaxCLL  uint32
	MaxFALL uint32
}

func (ContentLight) Type() media.SideDataType { return media.SideDataContentLight }
func (c ContentLight) marshal() []byte        { return encodeFixed(c) }

// CPBProperties describes the coded picture buffer. VBVDelay is in 90 kHz
// ticks.
type CPBProperties struct {
	MaxBitrate int64
	MinBitrate int64
	AvgBitrate int64
	BufferSize int64
	VBVDelay   uint64
}

func (CPBProperties) Type() media.SideDataType { return media.SideDataCPBProperties }
func (c CPBProperties) marshal() []byte        { return encodeFixed(c) }

type FrameCropping struct {
	Top    uint32
	Bottom uint32
	Left   uint32
	Right  uint32
}

func (FrameCropping) Type() media.SideDataType { return media.SideDataFrameCropping }
func (c FrameCropping) marshal() []byte        { return encodeFixed(c) }

type AudioServiceType int32

const (
	ServiceMain AudioServiceType = iota
	ServiceEffects
	ServiceVisuallyImpaired
	ServiceHearingImpaired
	ServiceDialogue
	ServiceCommentary
	ServiceEmergency
	ServiceVoiceOver
	ServiceKaraoke
)

func (AudioServiceType) Type() media.SideDataType { return media.SideDataAudioServiceType }
func (a AudioServiceType) marshal() []byte        { return encodeFixed(a) }

type MPEGTSStreamID uint8

func (MPEGTSStreamID) Type() media.SideDataType { return media.SideDataMPEGTSStreamID }
func (m MPEGTSStreamID) marshal() []byte        { return []byte{byte(m)} }

// AFD is an active format description code.
type AFD uint8

func (AFD) Type() media.SideDataType { return media.SideDataAFD }
func (a AFD) marshal() []byte        { return []byte{byte(a)} }

// Raw wraps payloads that are printed as data, such as WebVTT cue
// identifiers or ICC profiles.
type Raw struct {
	Kind media.SideDataType
	Data []byte
}

func (r Raw) Type() media.SideDataType { return r.Kind }
func (r Raw) marshal() []byte          { return r.Data }
