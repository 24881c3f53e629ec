package fontkit

import "fmt"

// The error taxonomy is shared across all backends: adapters map every
// native failure into one of the types below at the contract boundary, and
// the Cache never invents new kinds on top of them.

// FontNotFoundError is returned by LoadFont when no face matches the
// descriptor and the backend offers no substitution. It is fatal to that
// load only; the Rasterizer stays usable.
type FontNotFoundError struct {
	Desc FontDesc
}

func (e *FontNotFoundError) Error() string {
	return fmt.Sprintf("fontkit: font %s not found", e.Desc)
}

// MissingGlyphError is returned by Glyph when the addressed font has no
// glyph for the character. It is recoverable: the Cache runs the fallback
// search around it, and callers of the Cache can use Character plus the
// placeholder bitmap returned alongside the error to render a substitute.
//
// Backends fill Glyph with their rendering of the failing font's notdef
// slot when one is available, so a placeholder travels with the error.
type MissingGlyphError struct {
	Character rune

	// Glyph is the notdef placeholder bitmap, possibly empty.
	Glyph RasterizedGlyph
}

func (e *MissingGlyphError) Error() string {
	return fmt.Sprintf("fontkit: glyph for character %q not found", e.Character)
}

// PlatformError reports a native engine initialization failure or an
// unexpected native failure during an operation. It is fatal to the
// operation, but the Rasterizer instance remains usable for unrelated
// subsequent requests.
type PlatformError struct {
	// Op names the failing operation, e.g. "load font".
	Op  string
	Err error
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("fontkit: %s: %v", e.Op, e.Err)
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

// ConfigurationError reports an invalid Size, descriptor or font key
// passed by the caller.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "fontkit: " + e.Reason
}
