package sidedata

import (
	"math"

	"github.com/autobrr/go-avprobe/internal/media"
	"github.com/autobrr/go-avprobe/internal/section"
	"github.com/autobrr/go-avprobe/internal/writer"
)

// Env is the stream context some records are rendered against.
type Env struct {
	Width     int
	Height    int
	FrameRate media.Rational
	// ShowData prints raw payloads as hex dumps.
	ShowData bool
}

// PrintList prints stream or packet side data under listID, one itemID
// section per entry.
func PrintList(w *writer.Context, list []media.SideData, listID, itemID section.ID, env Env) {
	w.Header(listID, nil)
	for i := range list {
		sd := &list[i]
		w.Header(itemID, sd)
		w.Str("side_data_type", sd.Type.String())
		printPayload(w, sd, env)
		w.Footer()
	}
	w.Footer()
}

// PrintFrameList prints frame side data, which uses the frame flavoured
// type names.
func PrintFrameList(w *writer.Context, list []media.SideData, env Env) {
	w.Header(section.FrameSideDataList, nil)
	for i := range list {
		sd := &list[i]
		w.Header(section.FrameSideData, media.FrameSideData{SideData: sd})
		w.Str("side_data_type", sd.Type.FrameName())
		printPayload(w, sd, env)
		w.Footer()
	}
	w.Footer()
}

func q(v uint64, den int) media.Rational {
	return media.Rational{Num: int(v), Den: den}
}

func printPayload(w *writer.Context, sd *media.SideData, env Env) {
	switch sd.Type {
	case media.SideDataWebVTTIdentifier, media.SideDataWebVTTSettings:
		if env.ShowData {
			w.Data("data", sd.Data)
		}
		w.DataHash("data_hash", sd.Data)
		return
	case media.SideDataICCProfile:
		if name, ok := sd.Metadata.Get("name"); ok {
			w.Str("name", name)
		}
		w.Int("size", int64(len(sd.Data)))
		w.DataHash("data_hash", sd.Data)
		return
	}

	p, ok := Decode(sd)
	if !ok {
		return
	}
	switch v := p.(type) {
	case DisplayMatrix:
		w.Integers("displaymatrix", sd.Data, 9, " %11d", 3, 4, 1)
		if r := v.Rotation(); math.IsNaN(r) {
			w.Str("rotation", "N/A")
		} else {
			w.Int("rotation", int64(r))
		}
	case Stereo3D:
		w.Str("type", v.Kind.String())
		inverted := int64(0)
		if v.Flags&Stereo3DFlagInvert != 0 {
			inverted = 1
		}
		w.Int("inverted", inverted)
	case Spherical:
		w.Str("projection", v.Projection.String())
		switch v.Projection {
		case ProjectionCubemap:
			w.Int("padding", int64(v.Padding))
		case ProjectionEquirectangularTile:
			l, t, r, b := v.TileBounds(env.Width, env.Height)
			w.Int("bound_left", int64(l))
			w.Int("bound_top", int64(t))
			w.Int("bound_right", int64(r))
			w.Int("bound_bottom", int64(b))
		}
		w.Int("yaw", int64(fixedToFloat(v.Yaw)))
		w.Int("pitch", int64(fixedToFloat(v.Pitch)))
		w.Int("roll", int64(fixedToFloat(v.Roll)))
	case SkipSamples:
		w.Int("skip_samples", int64(v.Skip))
		w.Int("discard_padding", int64(v.DiscardPadding))
		w.Int("skip_reason", int64(v.SkipReason))
		w.Int("discard_reason", int64(v.DiscardReason))
	case MasteringDisplay:
		if v.HasPrimaries {
			for i, c := range []string{"red", "green", "blue"} {
				w.Rational(c+"_x", v.Primaries[i][0], '/')
				w.Rational(c+"_y", v.Primaries[i][1], '/')
			}
			w.Rational("white_point_x", v.WhitePoint[0], '/')
			w.Rational("white_point_y", v.WhitePoint[1], '/')
		}
		if v.HasLuminance {
			w.Rational("min_luminance", v.MinLuminance, '/')
			w.Rational("max_luminance", v.MaxLuminance, '/')
		}
	case ContentLight:
		w.Int("max_content", int64(v.MaxCLL))
		w.Int("max_average", int64(v.MaxFALL))
	case DOVIConf:
		w.Int("dv_version_major", int64(v.VersionMajor))
		w.Int("dv_version_minor", int64(v.VersionMinor))
		w.Int("dv_profile", int64(v.Profile))
		w.Int("dv_level", int64(v.Level))
		w.Int("rpu_present_flag", boolInt(v.RPUPresent))
		w.Int("el_present_flag", boolInt(v.ELPresent))
		w.Int("bl_present_flag", boolInt(v.BLPresent))
		w.Int("dv_bl_signal_compatibility_id", int64(v.CompatibilityID))
	case AudioServiceType:
		w.Int("service_type", int64(v))
	case MPEGTSStreamID:
		w.Int("id", int64(v))
	case CPBProperties:
		w.Int("max_bitrate", v.MaxBitrate)
		w.Int("min_bitrate", v.MinBitrate)
		w.Int("avg_bitrate", v.AvgBitrate)
		w.Int("buffer_size", v.BufferSize)
		w.Int("vbv_delay", int64(v.VBVDelay))
	case AFD:
		w.Int("active_format", int64(v))
	case FrameCropping:
		w.Int("crop_top", int64(v.Top))
		w.Int("crop_bottom", int64(v.Bottom))
		w.Int("crop_left", int64(v.Left))
		w.Int("crop_right", int64(v.Right))
	case GOPTimecode:
		w.Str("timecode", v.String())
	case S12MTimecode:
		w.Header(section.FrameSideDataTimecodeList, nil)
		for _, tc := range v.Timecodes() {
			w.Header(section.FrameSideDataTimecode, nil)
			w.Str("value", SMPTETimecode(env.FrameRate, tc))
			w.Footer()
		}
		w.Footer()
	case HDRPlus:
		printHDRPlus(w, v)
	case HDRVivid:
		printHDRVivid(w, v)
	}
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func printPeakGrid(w *writer.Context, name string, grid [][]uint8) {
	cols := 0
	if len(grid) > 0 {
		cols = len(grid[0])
	}
	w.Int("num_rows_"+name, int64(len(grid)))
	w.Int("num_cols_"+name, int64(cols))
	for _, row := range grid {
		for _, v := range row {
			w.Rational(name, q(uint64(v), 15), '/')
		}
	}
}

func printHDRPlus(w *writer.Context, h HDRPlus) {
	w.Int("application version", int64(h.ApplicationVersion))
	w.Int("num_windows", int64(len(h.Windows)))
	for n := 1; n < len(h.Windows); n++ {
		p := h.Windows[n]
		w.Rational("window_upper_left_corner_x", q(uint64(p.UpperLeftX), 1), '/')
		w.Rational("window_upper_left_corner_y", q(uint64(p.UpperLeftY), 1), '/')
		w.Rational("window_lower_right_corner_x", q(uint64(p.LowerRightX), 1), '/')
		w.Rational("window_lower_right_corner_y", q(uint64(p.LowerRightY), 1), '/')
		w.Int("center_of_ellipse_x", int64(p.CenterX))
		w.Int("center_of_ellipse_y", int64(p.CenterY))
		w.Int("rotation_angle", int64(p.RotationAngle))
		w.Int("semimajor_axis_internal_ellipse", int64(p.SemimajorInternal))
		w.Int("semimajor_axis_external_ellipse", int64(p.SemimajorExternal))
		w.Int("semiminor_axis_external_ellipse", int64(p.SemiminorExternal))
		w.Int("overlap_process_option", boolInt(p.OverlapProcess))
	}
	w.Rational("targeted_system_display_maximum_luminance", q(uint64(h.TargetedMaxLuminance), 10000), '/')
	if h.TargetedPeak != nil {
		printPeakGrid(w, "targeted_system_display_actual_peak_luminance", h.TargetedPeak)
	}
	for _, p := range h.Windows {
		for _, v := range p.MaxSCL {
			w.Rational("maxscl", q(uint64(v), 100000), '/')
		}
		w.Rational("average_maxrgb", q(uint64(p.AverageMaxRGB), 100000), '/')
		w.Int("num_distribution_maxrgb_percentiles", int64(len(p.Percentiles)))
		for _, pc := range p.Percentiles {
			w.Int("distribution_maxrgb_percentage", int64(pc.Percentage))
			w.Rational("distribution_maxrgb_percentile", q(uint64(pc.Percentile), 100000), '/')
		}
		w.Rational("fraction_bright_pixels", q(uint64(p.FractionBrightPixels), 1000), '/')
	}
	if h.MasteringPeak != nil {
		printPeakGrid(w, "mastering_display_actual_peak_luminance", h.MasteringPeak)
	}
	for _, p := range h.Windows {
		if p.ToneMapping {
			w.Rational("knee_point_x", q(uint64(p.KneePointX), 4095), '/')
			w.Rational("knee_point_y", q(uint64(p.KneePointY), 4095), '/')
			w.Int("num_bezier_curve_anchors", int64(len(p.BezierAnchors)))
			for _, a := range p.BezierAnchors {
				w.Rational("bezier_curve_anchors", q(uint64(a), 1023), '/')
			}
		}
		if p.ColorSaturationMapping {
			w.Rational("color_saturation_weight", q(uint64(p.ColorSaturationWeight), 8), '/')
		}
	}
}

func printHDRVivid(w *writer.Context, v HDRVivid) {
	w.Int("system_start_code", int64(v.SystemStartCode))
	w.Int("num_windows", int64(len(v.Windows)))
	for _, p := range v.Windows {
		w.Rational("minimum_maxrgb", q(uint64(p.MinimumMaxRGB), 4095), '/')
		w.Rational("average_maxrgb", q(uint64(p.AverageMaxRGB), 4095), '/')
		w.Rational("variance_maxrgb", q(uint64(p.VarianceMaxRGB), 1023), '/')
		w.Rational("maximum_maxrgb", q(uint64(p.MaximumMaxRGB), 4095), '/')
	}
	for _, p := range v.Windows {
		w.Int("tone_mapping_mode_flag", boolInt(p.ToneMappingMode))
		w.Int("tone_mapping_param_num", int64(len(p.ToneMapping)))
		for _, tm := range p.ToneMapping {
			w.Rational("targeted_system_display_maximum_luminance", q(uint64(tm.TargetedMaxLuminance), 4095), '/')
			w.Int("base_enable_flag", boolInt(tm.BaseEnable))
			if tm.BaseEnable {
				w.Rational("base_param_m_p", q(uint64(tm.BaseParamMP), 16383), '/')
				w.Rational("base_param_m_m", q(uint64(tm.BaseParamMM), 10), '/')
				w.Rational("base_param_m_a", q(uint64(tm.BaseParamMA), 1023), '/')
				w.Rational("base_param_m_b", q(uint64(tm.BaseParamMB), 1023), '/')
				w.Rational("base_param_m_n", q(uint64(tm.BaseParamMN), 10), '/')
				w.Int("base_param_k1", int64(tm.BaseParamK1))
				w.Int("base_param_k2", int64(tm.BaseParamK2))
				w.Int("base_param_k3", int64(tm.BaseParamK3))
				w.Int("base_param_Delta_enable_mode", int64(tm.BaseParamDeltaMode))
				w.Rational("base_param_Delta", q(uint64(tm.BaseParamDelta), 127), '/')
			}
			w.Int("3Spline_enable_flag", boolInt(tm.ThreeSplineEnable))
			if tm.ThreeSplineEnable {
				w.Int("3Spline_num", int64(len(tm.ThreeSplines)))
				for _, s := range tm.ThreeSplines {
					w.Int("3Spline_TH_mode", int64(s.THMode))
					if s.THMode == 0 || s.THMode == 2 {
						w.Rational("3Spline_TH_enable_MB", q(uint64(s.THEnableMB), 255), '/')
					}
					w.Rational("3Spline_TH_enable", q(uint64(s.THEnable), 4095), '/')
					w.Rational("3Spline_TH_Delta1", q(uint64(s.THDelta1), 1023), '/')
					w.Rational("3Spline_TH_Delta2", q(uint64(s.THDelta2), 1023), '/')
					w.Rational("3Spline_enable_Strength", q(uint64(s.EnableStrength), 255), '/')
				}
			}
		}
		w.Int("color_saturation_mapping_flag", boolInt(p.ColorSaturationMapping))
		if p.ColorSaturationMapping {
			w.Int("color_saturation_num", int64(len(p.ColorSaturationGain)))
			for _, g := range p.ColorSaturationGain {
				w.Rational("color_saturation_gain", q(uint64(g), 128), '/')
			}
		}
	}
}
