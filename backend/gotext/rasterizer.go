package gotext

import (
	"fmt"
	"math"

	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	xfont "golang.org/x/image/font"

	gtfont "github.com/go-text/typesetting/font"

	"github.com/gogpu/fontkit"
)

// Rasterizer implements fontkit.Rasterizer with pure Go font parsing and
// rasterization. Create one with New.
type Rasterizer struct {
	cfg  fontkit.Config
	opts options

	// registry holds faces registered with WithFontData, in registration
	// order. Registered faces shadow system fonts of the same family.
	registry []*registeredFont

	faces  map[fontkit.FontKey]*face
	buf    sfnt.Buffer
	system systemIndex
	closed bool
}

// face is one loaded font face at one size.
type face struct {
	desc fontkit.FontDesc
	size fontkit.Size

	ot *opentype.Font

	// gt is the typesetting view of the same face, used for line
	// decoration metrics and color bitmap strikes. It is nil when
	// typesetting could not parse the file; outline rendering still works
	// without it.
	gt *gtfont.Face

	upem float64
}

// New creates a Rasterizer with the given configuration. Fonts registered
// via WithFontData are parsed eagerly so that invalid data fails here
// rather than at the first LoadFont.
func New(cfg fontkit.Config, opts ...Option) (*Rasterizer, error) {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	r := &Rasterizer{
		cfg:   cfg,
		opts:  o,
		faces: make(map[fontkit.FontKey]*face),
	}
	for _, data := range o.fontData {
		if err := r.register(data); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// LoadFont implements fontkit.Rasterizer.
func (r *Rasterizer) LoadFont(desc fontkit.FontDesc, size fontkit.Size) (fontkit.FontKey, error) {
	if r.closed {
		return fontkit.FontKey{}, &fontkit.ConfigurationError{Reason: "rasterizer is closed"}
	}
	if desc.NormalizedFamily() == "" {
		return fontkit.FontKey{}, &fontkit.ConfigurationError{Reason: "font family must not be empty"}
	}
	if size.Points() <= 0 {
		return fontkit.FontKey{}, &fontkit.ConfigurationError{Reason: fmt.Sprintf("invalid font size %s", size)}
	}

	src := r.resolve(desc)
	if src == nil {
		return fontkit.FontKey{}, &fontkit.FontNotFoundError{Desc: desc}
	}

	key := fontkit.NextFontKey()
	r.faces[key] = &face{
		desc: desc,
		size: size,
		ot:   src.ot,
		gt:   src.gt,
		upem: float64(src.ot.UnitsPerEm()),
	}
	fontkit.Logger().Debug("loaded font face",
		"font", desc.String(), "size", size.String(), "origin", src.origin)
	return key, nil
}

// Kerning implements fontkit.Rasterizer. Only the TrueType kern table is
// consulted; fonts that carry their kerning in GPOS report (0, 0).
func (r *Rasterizer) Kerning(left, right fontkit.GlyphID, font fontkit.FontKey) (dx, dy int) {
	f, ok := r.faces[font]
	if !ok {
		return 0, 0
	}
	k, err := f.ot.Kern(&r.buf, sfnt.GlyphIndex(left), sfnt.GlyphIndex(right), r.ppem(f.size), r.hinting())
	if err != nil {
		return 0, 0
	}
	return int(math.Round(float64(k) / 64)), 0
}

// UpdateSetting implements fontkit.Rasterizer.
func (r *Rasterizer) UpdateSetting(s fontkit.Setting) {
	switch s := s.(type) {
	case fontkit.ScaleSetting:
		if float64(s) > 0 {
			r.cfg.Scale = float64(s)
		}
	case fontkit.Hinting:
		r.cfg.Hinting = s
	case fontkit.Smoothing:
		r.cfg.Smoothing = s
	}
}

// Close implements fontkit.Rasterizer. The backend holds no native
// handles; Close drops the parsed faces so the memory can be reclaimed.
func (r *Rasterizer) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.faces = nil
	r.registry = nil
	return nil
}

// GlyphIndex implements fontkit.GlyphIndexer.
func (r *Rasterizer) GlyphIndex(font fontkit.FontKey, ch rune) (fontkit.GlyphID, bool) {
	f, ok := r.faces[font]
	if !ok {
		return 0, false
	}
	gid, err := f.ot.GlyphIndex(&r.buf, ch)
	if err != nil || gid == 0 {
		return 0, false
	}
	return fontkit.GlyphID(gid), true
}

// ppem returns the pixels-per-em for a size at the current scale, in 26.6
// fixed point.
func (r *Rasterizer) ppem(size fontkit.Size) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(size.Pixels(r.cfg.Scale) * 64))
}

// hinting maps the configured hinting mode to x/image terms.
func (r *Rasterizer) hinting() xfont.Hinting {
	switch r.cfg.Hinting {
	case fontkit.HintingVertical:
		return xfont.HintingVertical
	case fontkit.HintingFull:
		return xfont.HintingFull
	default:
		return xfont.HintingNone
	}
}

// f26 converts 26.6 fixed point to float64 pixels.
func f26(x fixed.Int26_6) float64 {
	return float64(x) / 64
}
