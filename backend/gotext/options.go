package gotext

import "github.com/gogpu/fontkit"

// Option configures a Rasterizer during creation.
//
// Example:
//
//	// System fonts only
//	r, err := gotext.New(fontkit.DefaultConfig())
//
//	// An embedded font, no disk access
//	r, err := gotext.New(fontkit.DefaultConfig(),
//	    gotext.WithFontData(goregular.TTF),
//	    gotext.WithoutSystemFonts())
type Option func(*options)

// options holds optional configuration for Rasterizer creation.
type options struct {
	fontData  [][]byte
	fallbacks []fontkit.FontDesc
	useSystem bool
}

// defaultOptions returns the default rasterizer options.
func defaultOptions() options {
	return options{useSystem: true}
}

// WithFontData registers an in-memory font file (TTF, OTF or TTC). Every
// face in the file becomes loadable by its family name, ahead of any
// system font with the same name. The data slice must not be modified
// after the call.
func WithFontData(data []byte) Option {
	return func(o *options) {
		o.fontData = append(o.fontData, data)
	}
}

// WithFallbackFonts sets the fallback candidate list this backend
// surfaces to the fontkit.Cache, replacing the platform default list.
func WithFallbackFonts(descs ...fontkit.FontDesc) Option {
	return func(o *options) {
		o.fallbacks = append([]fontkit.FontDesc(nil), descs...)
	}
}

// WithoutSystemFonts disables system font discovery. Only fonts
// registered with WithFontData can be loaded; useful for hermetic tests
// and embedders that ship their own fonts.
func WithoutSystemFonts() Option {
	return func(o *options) {
		o.useSystem = false
	}
}
