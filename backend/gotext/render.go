package gotext

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	xdraw "golang.org/x/image/draw"

	gtfont "github.com/go-text/typesetting/font"

	"github.com/gogpu/fontkit"
)

// Glyph implements fontkit.Rasterizer.
func (r *Rasterizer) Glyph(key fontkit.GlyphKey) (fontkit.RasterizedGlyph, error) {
	f, ok := r.faces[key.Font]
	if !ok {
		return fontkit.RasterizedGlyph{}, &fontkit.ConfigurationError{
			Reason: fmt.Sprintf("unknown font key for character %q", key.Character),
		}
	}
	px := key.Size.Pixels(r.cfg.Scale)
	gid, err := f.ot.GlyphIndex(&r.buf, key.Character)
	if err != nil {
		return fontkit.RasterizedGlyph{}, &fontkit.PlatformError{Op: "glyph lookup", Err: err}
	}
	if gid == 0 {
		// The face has no glyph for this character. Render its notdef
		// slot so a placeholder travels with the error.
		notdef, _ := r.renderGlyph(f, 0, px, key.Character)
		return fontkit.RasterizedGlyph{}, &fontkit.MissingGlyphError{
			Character: key.Character,
			Glyph:     notdef,
		}
	}
	return r.renderGlyph(f, gid, px, key.Character)
}

// Notdef implements fontkit.NotdefSource. When the font's own notdef slot
// renders to nothing, a hollow box is synthesized so callers always get a
// visible placeholder.
func (r *Rasterizer) Notdef(font fontkit.FontKey, size fontkit.Size) (fontkit.RasterizedGlyph, bool) {
	f, ok := r.faces[font]
	if !ok {
		return fontkit.RasterizedGlyph{}, false
	}
	px := size.Pixels(r.cfg.Scale)
	g, err := r.renderGlyph(f, 0, px, 0)
	if err != nil || g.Empty() {
		g = synthesizeNotdef(px)
	}
	return g, true
}

// renderGlyph rasterizes one glyph slot at the given pixel size.
func (r *Rasterizer) renderGlyph(f *face, gid sfnt.GlyphIndex, px float64, ch rune) (fontkit.RasterizedGlyph, error) {
	ppem := fixed.Int26_6(math.Round(px * 64))
	segments, err := f.ot.LoadGlyph(&r.buf, gid, ppem, nil)
	if err != nil {
		if errors.Is(err, sfnt.ErrColoredGlyph) {
			return r.renderColor(f, gid, px, ch)
		}
		return fontkit.RasterizedGlyph{}, &fontkit.PlatformError{Op: "load glyph", Err: err}
	}

	advance := 0
	if adv, err := f.ot.GlyphAdvance(&r.buf, gid, ppem, r.hinting()); err == nil {
		advance = int(math.Round(f26(adv)))
	}
	if len(segments) == 0 {
		// Whitespace and other blank glyphs carry only an advance.
		return fontkit.RasterizedGlyph{Character: ch, AdvanceX: advance}, nil
	}

	// Outline coordinates are 26.6 pixels with the origin at the pen
	// position and the y axis pointing down. Control points are included
	// in the bounds, which can only overestimate.
	minX, minY := fixed.Int26_6(math.MaxInt32), fixed.Int26_6(math.MaxInt32)
	maxX, maxY := fixed.Int26_6(math.MinInt32), fixed.Int26_6(math.MinInt32)
	for _, seg := range segments {
		for _, p := range seg.Args[:segmentPoints(seg.Op)] {
			minX = min(minX, p.X)
			minY = min(minY, p.Y)
			maxX = max(maxX, p.X)
			maxY = max(maxY, p.Y)
		}
	}
	x0, y0 := floor26(minX), floor26(minY)
	w, h := ceil26(maxX)-x0, ceil26(maxY)-y0
	if w <= 0 || h <= 0 {
		return fontkit.RasterizedGlyph{Character: ch, AdvanceX: advance}, nil
	}

	ras := vector.NewRasterizer(w, h)
	ras.DrawOp = draw.Src
	ox, oy := float32(x0), float32(y0)
	for _, seg := range segments {
		a := seg.Args
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			ras.MoveTo(p26(a[0].X)-ox, p26(a[0].Y)-oy)
		case sfnt.SegmentOpLineTo:
			ras.LineTo(p26(a[0].X)-ox, p26(a[0].Y)-oy)
		case sfnt.SegmentOpQuadTo:
			ras.QuadTo(p26(a[0].X)-ox, p26(a[0].Y)-oy, p26(a[1].X)-ox, p26(a[1].Y)-oy)
		case sfnt.SegmentOpCubeTo:
			ras.CubeTo(p26(a[0].X)-ox, p26(a[0].Y)-oy, p26(a[1].X)-ox, p26(a[1].Y)-oy,
				p26(a[2].X)-ox, p26(a[2].Y)-oy)
		}
	}
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	ras.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	g := fontkit.RasterizedGlyph{
		Character: ch,
		Width:     w,
		Height:    h,
		Left:      x0,
		Top:       -y0,
		AdvanceX:  advance,
	}
	g.Buffer = packCoverage(mask.Pix, r.cfg.Smoothing)
	return g, nil
}

// packCoverage converts an alpha coverage mask into the configured pixel
// format. Subpixel smoothing has no LCD pipeline here and renders as
// grayscale.
func packCoverage(alpha []byte, smoothing fontkit.Smoothing) fontkit.BitmapBuffer {
	if smoothing == fontkit.SmoothingNone {
		pix := make([]byte, len(alpha))
		for i, a := range alpha {
			if a >= 0x80 {
				pix[i] = 0xFF
			}
		}
		return fontkit.BitmapBuffer{Format: fontkit.FormatMono, Pix: pix}
	}
	pix := make([]byte, 0, len(alpha)*3)
	for _, a := range alpha {
		pix = append(pix, a, a, a)
	}
	return fontkit.BitmapBuffer{Format: fontkit.FormatRGB, Pix: pix}
}

// renderColor decodes a color bitmap strike for glyphs that have no
// outline, typically emoji.
func (r *Rasterizer) renderColor(f *face, gid sfnt.GlyphIndex, px float64, ch rune) (fontkit.RasterizedGlyph, error) {
	if f.gt == nil {
		return fontkit.RasterizedGlyph{}, &fontkit.PlatformError{
			Op: "color glyph", Err: errors.New("no bitmap strike source for face"),
		}
	}
	bm, ok := f.gt.GlyphData(gtfont.GID(gid)).(gtfont.GlyphBitmap)
	if !ok || bm.Format != gtfont.PNG {
		return fontkit.RasterizedGlyph{}, &fontkit.PlatformError{
			Op: "color glyph", Err: fmt.Errorf("unsupported bitmap strike format for %q", ch),
		}
	}
	img, err := png.Decode(bytes.NewReader(bm.Data))
	if err != nil {
		return fontkit.RasterizedGlyph{}, &fontkit.PlatformError{Op: "color glyph", Err: err}
	}
	rgba := scaleStrike(img, px)

	advance := int(math.Round(float64(f.gt.HorizontalAdvance(gtfont.GID(gid))) * px / f.upem))
	return fontkit.RasterizedGlyph{
		Character: ch,
		Width:     rgba.Rect.Dx(),
		Height:    rgba.Rect.Dy(),
		Top:       rgba.Rect.Dy(),
		AdvanceX:  advance,
		Buffer:    fontkit.BitmapBuffer{Format: fontkit.FormatRGBA, Pix: rgba.Pix},
	}, nil
}

// scaleStrike converts a decoded bitmap strike to premultiplied RGBA at
// the requested pixel size. Strikes larger than the target em height are
// downsampled so bitmap dimensions agree with the scaled advance;
// smaller strikes are kept at native resolution rather than blurred up.
func scaleStrike(img image.Image, px float64) *image.RGBA {
	b := img.Bounds()
	h := int(math.Round(px))
	if h <= 0 || b.Dy() <= h {
		rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
		return rgba
	}
	w := int(math.Round(float64(b.Dx()) * float64(h) / float64(b.Dy())))
	if w < 1 {
		w = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// synthesizeNotdef draws the hollow box placeholder used when a face has
// no usable notdef outline.
func synthesizeNotdef(px float64) fontkit.RasterizedGlyph {
	w := int(math.Round(px * 0.5))
	h := int(math.Round(px * 0.7))
	if w < 2 {
		w = 2
	}
	if h < 2 {
		h = 2
	}
	t := h / 10
	if t < 1 {
		t = 1
	}
	pix := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < t || x >= w-t || y < t || y >= h-t {
				pix[y*w+x] = 0xFF
			}
		}
	}
	return fontkit.RasterizedGlyph{
		Width:    w,
		Height:   h,
		Top:      h,
		AdvanceX: w + t,
		Buffer:   fontkit.BitmapBuffer{Format: fontkit.FormatMono, Pix: pix},
	}
}

// segmentPoints returns how many of a segment's argument points its
// opcode uses.
func segmentPoints(op sfnt.SegmentOp) int {
	switch op {
	case sfnt.SegmentOpQuadTo:
		return 2
	case sfnt.SegmentOpCubeTo:
		return 3
	default:
		return 1
	}
}

func p26(v fixed.Int26_6) float32 { return float32(v) / 64 }

func floor26(v fixed.Int26_6) int { return int(v >> 6) }

func ceil26(v fixed.Int26_6) int { return int((v + 63) >> 6) }
