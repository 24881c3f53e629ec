package fontkit

// Metrics holds font-wide measurements for one loaded face, in pixels at
// the face's size. Metrics are computed once per FontKey and never change
// for the key's lifetime, so consumers may cache them by value.
//
// Ascent and Descent are both stored as positive distances from the
// baseline. Underline and strikeout positions follow the font convention:
// negative values lie below the baseline.
type Metrics struct {
	Ascent     float64
	Descent    float64
	LineHeight float64

	UnderlinePosition  float64
	UnderlineThickness float64
	StrikeoutPosition  float64
	StrikeoutThickness float64

	// AverageAdvance is the mean advance width of the printable ASCII
	// glyphs, the cell-width estimate terminal renderers use.
	AverageAdvance float64

	// MaxAdvance is the widest advance among those glyphs.
	MaxAdvance float64
}

// Consistent reports whether the metrics are physically plausible:
// non-negative ascent and a line height that holds at least
// ascent plus descent. Backends must only return consistent metrics.
func (m Metrics) Consistent() bool {
	return m.Ascent >= 0 && m.LineHeight >= m.Ascent+m.Descent
}
