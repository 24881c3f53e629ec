package fontkit

// Hinting specifies the hinting mode a backend applies when rasterizing.
type Hinting int

const (
	// HintingNone disables hinting.
	HintingNone Hinting = iota
	// HintingVertical applies vertical hinting only.
	HintingVertical
	// HintingFull applies full hinting.
	HintingFull
)

// String returns the string representation of the hinting.
func (h Hinting) String() string {
	switch h {
	case HintingNone:
		return "None"
	case HintingVertical:
		return "Vertical"
	case HintingFull:
		return "Full"
	default:
		return unknownStr
	}
}

// Smoothing specifies the anti-aliasing mode a backend applies.
type Smoothing int

const (
	// SmoothingGrayscale is grayscale anti-aliasing.
	SmoothingGrayscale Smoothing = iota
	// SmoothingNone disables anti-aliasing.
	SmoothingNone
	// SmoothingSubpixel requests subpixel (LCD) anti-aliasing where the
	// backend supports it; backends without subpixel rendering fall back
	// to grayscale.
	SmoothingSubpixel
)

// String returns the string representation of the smoothing mode.
func (s Smoothing) String() string {
	switch s {
	case SmoothingGrayscale:
		return "Grayscale"
	case SmoothingNone:
		return "None"
	case SmoothingSubpixel:
		return "Subpixel"
	default:
		return unknownStr
	}
}

// Config carries the backend-tunable options passed to a backend's
// constructor.
type Config struct {
	// Scale is the device pixel ratio: device pixels per point.
	// Zero or negative means 1.
	Scale float64

	Hinting   Hinting
	Smoothing Smoothing
}

// DefaultConfig returns the default rasterizer configuration.
func DefaultConfig() Config {
	return Config{Scale: 1}
}

// Setting is a backend option applied after initialization via
// UpdateSetting. Concrete settings are ScaleSetting, Hinting and
// Smoothing.
type Setting interface {
	isSetting()
}

// ScaleSetting updates the device pixel ratio for subsequent
// rasterizations.
type ScaleSetting float64

func (ScaleSetting) isSetting() {}
func (Hinting) isSetting()      {}
func (Smoothing) isSetting()    {}

// Rasterizer is the capability contract every backend adapter implements:
// one native font engine instance that turns a descriptor and a character
// into pixels.
//
// All operations are synchronous and run to completion on the calling
// goroutine. Native font-engine handles are assumed non-thread-safe, so a
// Rasterizer and everything layered on it must be confined to a single
// owner; the contract performs no internal locking. Every native resource
// a backend allocates is owned by the instance that created it and is
// released exactly once by Close.
type Rasterizer interface {
	// LoadFont loads the face described by desc at the given size and
	// returns a key for it. It fails with *FontNotFoundError when no face
	// matches and the backend offers no substitution. The contract does
	// not require dedup: calling twice with an equal descriptor may
	// legitimately allocate a fresh native handle each time; dedup is
	// the Cache's job.
	LoadFont(desc FontDesc, size Size) (FontKey, error)

	// Glyph rasterizes the glyph for key.Character in the font identified
	// by key.Font at key.Size. It fails with *MissingGlyphError when that
	// exact font has no glyph for the character; fallback search is the
	// Cache's responsibility, never this call's.
	Glyph(key GlyphKey) (RasterizedGlyph, error)

	// Kerning returns the kerning offset in pixels between two glyphs of
	// the given font. Backends without kerning tables return (0, 0);
	// Kerning never fails.
	Kerning(left, right GlyphID, font FontKey) (dx, dy int)

	// Metrics returns font-wide metrics for the font. The returned values
	// are physically consistent (see Metrics.Consistent) and stable for
	// the key's lifetime.
	Metrics(font FontKey) (Metrics, error)

	// UpdateSetting applies a backend option to all subsequent Glyph
	// calls on this instance. It does not retroactively invalidate
	// bitmaps already produced; callers who need an immediate effect
	// clear their glyph cache themselves.
	UpdateSetting(s Setting)

	// Close releases every native resource held by the instance. The
	// Rasterizer must not be used afterwards.
	Close() error
}

// FallbackSource is implemented by backends that can enumerate the
// platform's fallback fonts, in the order the platform would consult
// them. The Cache uses this list when the caller supplies none.
type FallbackSource interface {
	FallbackFonts() []FontDesc
}

// NotdefSource is implemented by backends that can render a font's
// designated missing-glyph slot on demand. The Cache uses it to attach a
// placeholder bitmap when every fallback candidate lacks a character.
type NotdefSource interface {
	Notdef(font FontKey, size Size) (RasterizedGlyph, bool)
}

// GlyphIndexer is implemented by backends that expose the font's
// character-to-glyph mapping, which callers need to drive Kerning.
type GlyphIndexer interface {
	GlyphIndex(font FontKey, r rune) (GlyphID, bool)
}
