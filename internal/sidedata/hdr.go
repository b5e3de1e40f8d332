package sidedata

import (
	"github.com/autobrr/go-avprobe/internal/media"
)

// HDRPlus is SMPTE ST 2094-40 dynamic metadata, carried in the ITU-T
// T.35 payload that follows the application identifier.
type HDRPlus struct {
	ApplicationVersion uint8
	Windows            []HDRPlusWindow
	// TargetedMaxLuminance is in units of 1/10000 cd/m2.
	TargetedMaxLuminance uint32
	// TargetedPeak and MasteringPeak are rows x cols grids of 4 bit
	// values; nil when absent.
	TargetedPeak  [][]uint8
	MasteringPeak [][]uint8
}

// HDRPlusWindow holds the processing window parameters. Geometry is only
// coded for windows after the first.
type HDRPlusWindow struct {
	UpperLeftX        uint16
	UpperLeftY        uint16
	LowerRightX       uint16
	LowerRightY       uint16
	CenterX           uint16
	CenterY           uint16
	RotationAngle     uint8
	SemimajorInternal uint16
	SemimajorExternal uint16
	SemiminorExternal uint16
	OverlapProcess    bool

	MaxSCL               [3]uint32
	AverageMaxRGB        uint32
	Percentiles          []HDRPlusPercentile
	FractionBrightPixels uint16

	ToneMapping   bool
	KneePointX    uint16
	KneePointY    uint16
	BezierAnchors []uint16

	ColorSaturationMapping bool
	ColorSaturationWeight  uint8
}

type HDRPlusPercentile struct {
	Percentage uint8
	Percentile uint32
}

func (HDRPlus) Type() media.SideDataType { return media.SideDataDynamicHDRPlus }

func readPeakGrid(br *bitReader) [][]uint8 {
	rows := br.int(5)
	cols := br.int(5)
	grid := make([][]uint8, rows)
	for i := range grid {
		grid[i] = make([]uint8, cols)
		for j := range grid[i] {
			grid[i][j] = uint8(br.bits(4))
		}
	}
	return grid
}

func writePeakGrid(bw *bitWriter, grid [][]uint8) {
	cols := 0
	if len(grid) > 0 {
		cols = len(grid[0])
	}
	bw.put(5, uint64(len(grid)))
	bw.put(5, uint64(cols))
	for _, row := range grid {
		for _, v := range row {
			bw.put(4, uint64(v))
		}
	}
}

func decodeHDRPlus(data []byte) (Payload, bool) {
	if len(data) < 1 {
		return nil, false
	}
	h := HDRPlus{ApplicationVersion: data[0]}
	br := newBitReader(data[1:])
	n := br.int(2)
	if n < 1 {
		return nil, false
	}
	h.Windows = make([]HDRPlusWindow, n)
	for w := 1; w < n; w++ {
		p := &h.Windows[w]
		p.UpperLeftX = uint16(br.bits(16))
		p.UpperLeftY = uint16(br.bits(16))
		p.LowerRightX = uint16(br.bits(16))
		p.LowerRightY = uint16(br.bits(16))
		p.CenterX = uint16(br.bits(16))
		p.CenterY = uint16(br.bits(16))
		p.RotationAngle = uint8(br.bits(8))
		p.SemimajorInternal = uint16(br.bits(16))
		p.SemimajorExternal = uint16(br.bits(16))
		p.SemiminorExternal = uint16(br.bits(16))
		p.OverlapProcess = br.flag()
	}
	h.TargetedMaxLuminance = uint32(br.bits(27))
	if br.flag() {
		h.TargetedPeak = readPeakGrid(br)
	}
	for w := range h.Windows {
		p := &h.Windows[w]
		for i := range p.MaxSCL {
			p.MaxSCL[i] = uint32(br.bits(17))
		}
		p.AverageMaxRGB = uint32(br.bits(17))
		p.Percentiles = make([]HDRPlusPercentile, br.int(4))
		for i := range p.Percentiles {
			p.Percentiles[i].Percentage = uint8(br.bits(7))
			p.Percentiles[i].Percentile = uint32(br.bits(17))
		}
		p.FractionBrightPixels = uint16(br.bits(10))
	}
	if br.flag() {
		h.MasteringPeak = readPeakGrid(br)
	}
	for w := range h.Windows {
		p := &h.Windows[w]
		if p.ToneMapping = br.flag(); p.ToneMapping {
			p.KneePointX = uint16(br.bits(12))
			p.KneePointY = uint16(br.bits(12))
			p.BezierAnchors = make([]uint16, br.int(4))
			for i := range p.BezierAnchors {
				p.BezierAnchors[i] = uint16(br.bits(10))
			}
		}
		if p.ColorSaturationMapping = br.flag(); p.ColorSaturationMapping {
			p.ColorSaturationWeight = uint8(br.bits(6))
		}
	}
	if br.short {
		return nil, false
	}
	return h, true
}

func (h HDRPlus) marshal() []byte {
	bw := &bitWriter{}
	bw.put(2, uint64(len(h.Windows)))
	for w := 1; w < len(h.Windows); w++ {
		p := h.Windows[w]
		for _, v := range []uint16{p.UpperLeftX, p.UpperLeftY, p.LowerRightX, p.LowerRightY, p.CenterX, p.CenterY} {
			bw.put(16, uint64(v))
		}
		bw.put(8, uint64(p.RotationAngle))
		bw.put(16, uint64(p.SemimajorInternal))
		bw.put(16, uint64(p.SemimajorExternal))
		bw.put(16, uint64(p.SemiminorExternal))
		bw.putFlag(p.OverlapProcess)
	}
	bw.put(27, uint64(h.TargetedMaxLuminance))
	bw.putFlag(h.TargetedPeak != nil)
	if h.TargetedPeak != nil {
		writePeakGrid(bw, h.TargetedPeak)
	}
	for _, p := range h.Windows {
		for _, v := range p.MaxSCL {
			bw.put(17, uint64(v))
		}
		bw.put(17, uint64(p.AverageMaxRGB))
		bw.put(4, uint64(len(p.Percentiles)))
		for _, pc := range p.Percentiles {
			bw.put(7, uint64(pc.Percentage))
			bw.put(17, uint64(pc.Percentile))
		}
		bw.put(10, uint64(p.FractionBrightPixels))
	}
	bw.putFlag(h.MasteringPeak != nil)
	if h.MasteringPeak != nil {
		writePeakGrid(bw, h.MasteringPeak)
	}
	for _, p := range h.Windows {
		bw.putFlag(p.ToneMapping)
		if p.ToneMapping {
			bw.put(12, uint64(p.KneePointX))
			bw.put(12, uint64(p.KneePointY))
			bw.put(4, uint64(len(p.BezierAnchors)))
			for _, a := range p.BezierAnchors {
				bw.put(10, uint64(a))
			}
		}
		bw.putFlag(p.ColorSaturationMapping)
		if p.ColorSaturationMapping {
			bw.put(6, uint64(p.ColorSaturationWeight))
		}
	}
	return append([]byte{h.ApplicationVersion}, bw.bytes()...)
}

// HDRVivid is CUVA 005.1 dynamic metadata.
type HDRVivid struct {
	SystemStartCode uint8
	Windows         []HDRVividWindow
}

type HDRVividWindow struct {
	MinimumMaxRGB  uint16
	AverageMaxRGB  uint16
	VarianceMaxRGB uint16
	MaximumMaxRGB  uint16

	ToneMappingMode bool
	ToneMapping     []HDRVividToneMapping

	ColorSaturationMapping bool
	ColorSaturationGain    []uint8
}

type HDRVividToneMapping struct {
	TargetedMaxLuminance uint16

	BaseEnable         bool
	BaseParamMP        uint16
	BaseParamMM        uint8
	BaseParamMA        uint16
	BaseParamMB        uint16
	BaseParamMN        uint8
	BaseParamK1        uint8
	BaseParamK2        uint8
	BaseParamK3        uint8
	BaseParamDeltaMode uint8
	BaseParamDelta     uint8

	ThreeSplineEnable bool
	ThreeSplines      []HDRVividSpline
}

type HDRVividSpline struct {
	THMode         uint8
	THEnableMB     uint8
	THEnable       uint16
	THDelta1       uint16
	THDelta2       uint16
	EnableStrength uint8
}

func (HDRVivid) Type() media.SideDataType { return media.SideDataDynamicHDRVivid }

func decodeHDRVivid(data []byte) (Payload, bool) {
	br := newBitReader(data)
	v := HDRVivid{SystemStartCode: uint8(br.bits(8))}
	if v.SystemStartCode != 0x01 {
		return nil, false
	}
	v.Windows = make([]HDRVividWindow, 1)
	for w := range v.Windows {
		p := &v.Windows[w]
		p.MinimumMaxRGB = uint16(br.bits(12))
		p.AverageMaxRGB = uint16(br.bits(12))
		p.VarianceMaxRGB = uint16(br.bits(10))
		p.MaximumMaxRGB = uint16(br.bits(12))
	}
	for w := range v.Windows {
		p := &v.Windows[w]
		if p.ToneMappingMode = br.flag(); p.ToneMappingMode {
			p.ToneMapping = make([]HDRVividToneMapping, br.int(1)+1)
			for i := range p.ToneMapping {
				tm := &p.ToneMapping[i]
				tm.TargetedMaxLuminance = uint16(br.bits(12))
				if tm.BaseEnable = br.flag(); tm.BaseEnable {
					tm.BaseParamMP = uint16(br.bits(14))
					tm.BaseParamMM = uint8(br.bits(6))
					tm.BaseParamMA = uint16(br.bits(10))
					tm.BaseParamMB = uint16(br.bits(10))
					tm.BaseParamMN = uint8(br.bits(6))
					tm.BaseParamK1 = uint8(br.bits(2))
					tm.BaseParamK2 = uint8(br.bits(2))
					tm.BaseParamK3 = uint8(br.bits(4))
					tm.BaseParamDeltaMode = uint8(br.bits(3))
					tm.BaseParamDelta = uint8(br.bits(7))
				}
				if tm.ThreeSplineEnable = br.flag(); tm.ThreeSplineEnable {
					tm.ThreeSplines = make([]HDRVividSpline, br.int(1)+1)
					for j := range tm.ThreeSplines {
						s := &tm.ThreeSplines[j]
						s.THMode = uint8(br.bits(2))
						if s.THMode == 0 || s.THMode == 2 {
							s.THEnableMB = uint8(br.bits(8))
						}
						s.THEnable = uint16(br.bits(12))
						s.THDelta1 = uint16(br.bits(10))
						s.THDelta2 = uint16(br.bits(10))
						s.EnableStrength = uint8(br.bits(8))
					}
				}
			}
		}
		if p.ColorSaturationMapping = br.flag(); p.ColorSaturationMapping {
			p.ColorSaturationGain = make([]uint8, br.int(3))
			for i := range p.ColorSaturationGain {
				p.ColorSaturationGain[i] = uint8(br.bits(8))
			}
		}
	}
	if br.short {
		return nil, false
	}
	return v, true
}

func (v HDRVivid) marshal() []byte {
	bw := &bitWriter{}
	bw.put(8, uint64(v.SystemStartCode))
	for _, p := range v.Windows {
		bw.put(12, uint64(p.MinimumMaxRGB))
		bw.put(12, uint64(p.AverageMaxRGB))
		bw.put(10, uint64(p.VarianceMaxRGB))
		bw.put(12, uint64(p.MaximumMaxRGB))
	}
	for _, p := range v.Windows {
		bw.putFlag(p.ToneMappingMode)
		if p.ToneMappingMode {
			bw.put(1, uint64(len(p.ToneMapping)-1))
			for _, tm := range p.ToneMapping {
				bw.put(12, uint64(tm.TargetedMaxLuminance))
				bw.putFlag(tm.BaseEnable)
				if tm.BaseEnable {
					bw.put(14, uint64(tm.BaseParamMP))
					bw.put(6, uint64(tm.BaseParamMM))
					bw.put(10, uint64(tm.BaseParamMA))
					bw.put(10, uint64(tm.BaseParamMB))
					bw.put(6, uint64(tm.BaseParamMN))
					bw.put(2, uint64(tm.BaseParamK1))
					bw.put(2, uint64(tm.BaseParamK2))
					bw.put(4, uint64(tm.BaseParamK3))
					bw.put(3, uint64(tm.BaseParamDeltaMode))
					bw.put(7, uint64(tm.BaseParamDelta))
				}
				bw.putFlag(tm.ThreeSplineEnable)
				if tm.ThreeSplineEnable {
					bw.put(1, uint64(len(tm.ThreeSplines)-1))
					for _, s := range tm.ThreeSplines {
						bw.put(2, uint64(s.THMode))
						if s.THMode == 0 || s.THMode == 2 {
							bw.put(8, uint64(s.THEnableMB))
						}
						bw.put(12, uint64(s.THEnable))
						bw.put(10, uint64(s.THDelta1))
						bw.put(10, uint64(s.THDelta2))
						bw.put(8, uint64(s.EnableStrength))
					}
				}
			}
		}
		bw.putFlag(p.ColorSaturationMapping)
		if p.ColorSaturationMapping {
			bw.put(3, uint64(len(p.ColorSaturationGain)))
			for _, g := range p.ColorSaturationGain {
				bw.put(8, uint64(g))
			}
		}
	}
	return bw.bytes()
}
