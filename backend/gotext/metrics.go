package gotext

import (
	"fmt"
	"math"

	gtfont "github.com/go-text/typesetting/font"

	"github.com/gogpu/fontkit"
)

// Metrics implements fontkit.Rasterizer. Ascent, descent and line height
// come from the sfnt vertical metrics; underline and strikeout come from
// the font's post and OS/2 tables via typesetting, with synthesized
// values when the tables are absent.
func (r *Rasterizer) Metrics(font fontkit.FontKey) (fontkit.Metrics, error) {
	f, ok := r.faces[font]
	if !ok {
		return fontkit.Metrics{}, &fontkit.ConfigurationError{Reason: "unknown font key"}
	}
	px := f.size.Pixels(r.cfg.Scale)
	ppem := r.ppem(f.size)

	fm, err := f.ot.Metrics(&r.buf, ppem, r.hinting())
	if err != nil {
		return fontkit.Metrics{}, &fontkit.PlatformError{Op: "font metrics", Err: err}
	}
	m := fontkit.Metrics{
		Ascent:     f26(fm.Ascent),
		Descent:    f26(fm.Descent),
		LineHeight: f26(fm.Height),
	}
	if m.LineHeight < m.Ascent+m.Descent {
		m.LineHeight = m.Ascent + m.Descent
	}

	r.lineDecorations(f, px, f26(fm.XHeight), &m)

	var total float64
	var count int
	for ch := rune('!'); ch <= '~'; ch++ {
		gid, err := f.ot.GlyphIndex(&r.buf, ch)
		if err != nil || gid == 0 {
			continue
		}
		adv, err := f.ot.GlyphAdvance(&r.buf, gid, ppem, r.hinting())
		if err != nil {
			continue
		}
		v := f26(adv)
		total += v
		count++
		if v > m.MaxAdvance {
			m.MaxAdvance = v
		}
	}
	if count > 0 {
		m.AverageAdvance = total / float64(count)
	}

	fontkit.Logger().Debug("computed font metrics",
		"font", f.desc.String(), "size", f.size.String(),
		"metrics", fmt.Sprintf("%+v", m))
	return m, nil
}

// lineDecorations fills the underline and strikeout metrics. Positions
// are relative to the baseline, negative below it.
func (r *Rasterizer) lineDecorations(f *face, px, xHeight float64, m *fontkit.Metrics) {
	if f.gt != nil && f.upem > 0 {
		scale := px / f.upem
		m.UnderlinePosition = float64(f.gt.LineMetric(gtfont.UnderlinePosition)) * scale
		m.UnderlineThickness = float64(f.gt.LineMetric(gtfont.UnderlineThickness)) * scale
		m.StrikeoutPosition = float64(f.gt.LineMetric(gtfont.StrikethroughPosition)) * scale
		m.StrikeoutThickness = float64(f.gt.LineMetric(gtfont.StrikethroughThickness)) * scale
	}
	if m.UnderlineThickness == 0 {
		m.UnderlineThickness = math.Max(px/14, 1)
		m.UnderlinePosition = -m.Descent / 2
	}
	if m.StrikeoutThickness == 0 {
		m.StrikeoutThickness = m.UnderlineThickness
		if xHeight > 0 {
			m.StrikeoutPosition = xHeight / 2
		} else {
			m.StrikeoutPosition = m.Ascent * 0.3
		}
	}
}
