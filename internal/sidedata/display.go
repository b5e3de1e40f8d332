package sidedata

import (
	"math"

	"github.com/autobrr/go-avprobe/internal/media"
)

// DisplayMatrix is a 3x3 transformation matrix in row major order. The
// first two columns are 16.16 fixed point, the last one 2.30.
type DisplayMatrix [9]int32

func (DisplayMatrix) Type() media.SideDataType { return media.SideDataDisplayMatrix }
func (m DisplayMatrix) marshal() []byte        { return encodeFixed(m) }

func fixedToFloat(x int32) float64 { return float64(x) / (1 << 16) }

// Rotation returns the counterclockwise angle in degrees applied by m, in
// the range [-180, 180]. A degenerate matrix yields NaN.
func (m DisplayMatrix) Rotation() float64 {
	scale0 := math.Hypot(fixedToFloat(m[0]), fixedToFloat(m[3]))
	scale1 := math.Hypot(fixedToFloat(m[1]), fixedToFloat(m[4]))
	if scale0 == 0 || scale1 == 0 {
		return math.NaN()
	}
	rotation := math.Atan2(fixedToFloat(m[1])/scale1, fixedToFloat(m[0])/scale0) * 180 / math.Pi
	return -rotation
}

// RotationMatrix builds a pure rotation matrix that DisplayRotation
// reports as angle.
func RotationMatrix(angle float64) DisplayMatrix {
	radians := -angle * math.Pi / 180
	c, s := math.Cos(radians), math.Sin(radians)
	var m DisplayMatrix
	m[0] = int32(math.Round(c * (1 << 16)))
	m[1] = int32(math.Round(-s * (1 << 16)))
	m[3] = int32(math.Round(s * (1 << 16)))
	m[4] = int32(math.Round(c * (1 << 16)))
	m[8] = 1 << 30
	return m
}

// NormalizeRotation folds a clockwise display angle into [0, 360) and
// reports whether it is more than 2 degrees away from a multiple of 90.
func NormalizeRotation(theta float64) (float64, bool) {
	theta -= 360 * math.Floor(theta/360+0.9/360)
	odd := math.Abs(theta-90*math.Round(theta/90)) > 2
	return theta, odd
}

// DisplayRotation is the clockwise rotation a player applies for m.
func DisplayRotation(m DisplayMatrix) (float64, bool) {
	r := m.Rotation()
	if math.IsNaN(r) {
		return 0, false
	}
	return NormalizeRotation(-math.Round(r))
}
