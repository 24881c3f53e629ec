package fontkit

import (
	"fmt"
	"math"
)

// sizeScale is the fixed-point scale for Size: one point is stored as
// 1_000_000 units, giving a resolution of 1e-6 pt.
const sizeScale = 1_000_000

// Size is a font size in points, stored as a scaled integer rather than a
// float so that equal logical sizes always compare equal and hash to the
// same GlyphKey cache slot, no matter how many unit conversions produced
// them.
//
// The zero value is 0pt, which no operation accepts as a valid font size.
type Size struct {
	// pts is the size in units of 1e-6 points.
	pts int64
}

// FromPoints creates a Size from a point value.
func FromPoints(pt float64) Size {
	return Size{pts: roundAway(pt * sizeScale)}
}

// FromPixels creates a Size from a pixel value at the given scale factor
// (device pixels per point). The result is rounded to the fixed-point
// resolution, so FromPixels(s.Pixels(k), k) == s for any k > 0.
func FromPixels(px, scale float64) Size {
	return Size{pts: roundAway(px / scale * sizeScale)}
}

// Points returns the size in points.
func (s Size) Points() float64 {
	return float64(s.pts) / sizeScale
}

// Pixels returns the size in device pixels at the given scale factor.
func (s Size) Pixels(scale float64) float64 {
	return float64(s.pts) / sizeScale * scale
}

// ScaledBy returns the size multiplied by factor, re-rounded to the
// fixed-point resolution. This is the only Size operation that can
// accumulate rounding drift.
func (s Size) ScaledBy(factor float64) Size {
	return Size{pts: roundAway(float64(s.pts) * factor)}
}

// IsZero reports whether the size is exactly zero.
func (s Size) IsZero() bool {
	return s.pts == 0
}

// String returns the size formatted in points, e.g. "12pt".
func (s Size) String() string {
	return fmt.Sprintf("%gpt", s.Points())
}

// roundAway rounds half away from zero, the deterministic rounding rule
// used for all Size arithmetic. math.Round implements exactly this.
func roundAway(x float64) int64 {
	return int64(math.Round(x))
}
