package pixdesc

import (
	"math"
	"strings"
)

// Loss flags describe what a conversion from one format to another drops.
type Loss uint

const (
	LossResolution Loss = 1 << iota
	LossDepth
	LossColorspace
	LossAlpha
	LossColorQuant
	LossChroma
)

const lossAll = ^Loss(0)

type colorType int

const (
	colorNA colorType = iota - 1
	colorRGB
	colorGray
	colorYUV
	colorYUVJPEG
	colorXYZ
)

func (d *Descriptor) colorType() colorType {
	switch {
	case d.Has(FlagPAL):
		return colorRGB
	case d.NbComponents == 1 || d.NbComponents == 2:
		return colorGray
	case strings.HasPrefix(d.Name, "yuvj"):
		return colorYUVJPEG
	case strings.HasPrefix(d.Name, "xyz"):
		return colorXYZ
	case d.Has(FlagRGB):
		return colorRGB
	case d.NbComponents == 0:
		return colorNA
	}
	return colorYUV
}

func (d *Descriptor) hasAlpha() bool {
	return d.NbComponents == 2 || d.NbComponents == 4 || d.Has(FlagPAL)
}

func (d *Descriptor) depthRange() (lo, hi int, ok bool) {
	if d.NbComponents == 0 {
		return 0, 0, false
	}
	lo, hi = math.MaxInt32, -math.MaxInt32
	for i := 0; i < d.NbComponents; i++ {
		lo = min(lo, d.Comp[i].Depth)
		hi = max(hi, d.Comp[i].Depth)
	}
	return lo, hi, true
}

// score rates converting src into dst; higher is better. Negative scores
// mark impossible conversions.
func score(dst, src PixelFormat, consider Loss) (int, Loss) {
	srcDesc, dstDesc := Get(src), Get(dst)
	if srcDesc == nil || dstDesc == nil {
		return -4, 0
	}
	if srcDesc.Has(FlagHWAccel) || dstDesc.Has(FlagHWAccel) {
		if dst == src {
			return -1, 0
		}
		return -2, 0
	}
	if dst == src {
		return math.MaxInt32, 0
	}
	if _, _, ok := srcDesc.depthRange(); !ok {
		return -3, 0
	}
	if _, _, ok := dstDesc.depthRange(); !ok {
		return -3, 0
	}

	var loss Loss
	s := math.MaxInt32 - 1
	srcColor, dstColor := srcDesc.colorType(), dstDesc.colorType()

	n := min(srcDesc.NbComponents, dstDesc.NbComponents)
	if dst == PixFmtPAL8 {
		n = min(srcDesc.NbComponents, 4)
	}
	for i := 0; i < n; i++ {
		depthMinus1 := dstDesc.Comp[i].Depth - 1
		if dst == PixFmtPAL8 {
			depthMinus1 = 7 / n
		}
		if srcDesc.Comp[i].Depth-1 > depthMinus1 && consider&LossDepth != 0 {
			loss |= LossDepth
			s -= 65536 >> uint(depthMinus1)
		}
	}

	if consider&LossResolution != 0 {
		if dstDesc.Log2ChromaW > srcDesc.Log2ChromaW {
			loss |= LossResolution
			s -= 256 << uint(dstDesc.Log2ChromaW)
		}
		if dstDesc.Log2ChromaH > srcDesc.Log2ChromaH {
			loss |= LossResolution
			s -= 256 << uint(dstDesc.Log2ChromaH)
		}
		// 4:2:0 is preferred over 4:2:2 when downsampling from 4:4:4
		if dstDesc.Log2ChromaW == 1 && srcDesc.Log2ChromaW == 0 &&
			dstDesc.Log2ChromaH == 1 && srcDesc.Log2ChromaH == 0 {
			s += 512
		}
	}

	if consider&LossColorspace != 0 {
		switch dstColor {
		case colorRGB:
			if srcColor != colorRGB && srcColor != colorGray {
				loss |= LossColorspace
			}
		case colorGray:
			if srcColor != colorGray {
				loss |= LossColorspace
			}
		case colorYUV:
			if srcColor != colorYUV {
				loss |= LossColorspace
			}
		case colorYUVJPEG:
			if srcColor != colorYUVJPEG && srcColor != colorYUV && srcColor != colorGray {
				loss |= LossColorspace
			}
		default:
			if srcColor != dstColor {
				loss |= LossColorspace
			}
		}
	}
	if loss&LossColorspace != 0 {
		s -= (n * 65536) >> uint(min(dstDesc.Comp[0].Depth-1, srcDesc.Comp[0].Depth-1))
	}
	if dstColor == colorGray && srcColor != colorGray && consider&LossChroma != 0 {
		loss |= LossChroma
		s -= 2 * 65536
	}
	if !dstDesc.hasAlpha() && srcDesc.hasAlpha() && consider&LossAlpha != 0 {
		loss |= LossAlpha
		s -= 65536
	}
	if dst == PixFmtPAL8 && consider&LossColorQuant != 0 && src != PixFmtPAL8 &&
		(srcColor != colorGray || (srcDesc.hasAlpha() && consider&LossAlpha != 0)) {
		loss |= LossColorQuant
		s -= 65536
	}
	return s, loss
}

// ConversionLoss reports what converting src to dst loses.
func ConversionLoss(dst, src PixelFormat, hasAlpha bool) (Loss, bool) {
	consider := lossAll
	if !hasAlpha {
		consider &^= LossAlpha
	}
	s, loss := score(dst, src, consider)
	if s < 0 {
		return 0, false
	}
	return loss, true
}

// FindBestOf2 picks whichever of dst1 and dst2 loses less when converting
// from src. mask lists the losses the caller cares about; ties go to the
// smaller format.
func FindBestOf2(dst1, dst2, src PixelFormat, hasAlpha bool, mask Loss) (PixelFormat, Loss) {
	desc1, desc2 := Get(dst1), Get(dst2)
	var best PixelFormat
	switch {
	case desc1 == nil:
		best = dst2
	case desc2 == nil:
		best = dst1
	default:
		if !hasAlpha {
			mask &^= LossAlpha
		}
		score1, _ := score(dst1, src, mask)
		score2, _ := score(dst2, src, mask)
		if score1 == score2 {
			bpp1, bpp2 := desc1.PaddedBitsPerPixel(), desc2.PaddedBitsPerPixel()
			if bpp1 != bpp2 {
				best = dst1
				if bpp2 < bpp1 {
					best = dst2
				}
			} else {
				best = dst1
				if desc2.NbComponents < desc1.NbComponents {
					best = dst2
				}
			}
		} else {
			best = dst1
			if score1 < score2 {
				best = dst2
			}
		}
	}
	loss, _ := ConversionLoss(best, src, hasAlpha)
	return best, loss
}
