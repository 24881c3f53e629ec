package fontkit

import "sync/atomic"

// FontKey identifies one loaded font face at one style and size, scoped to
// the Rasterizer instance that issued it. Keys are never reused: the token
// counter is process-global, so keys from independent instances never
// collide either.
//
// The zero FontKey is invalid and identifies no font.
type FontKey struct {
	token uint32
}

// IsZero reports whether the key is the invalid zero key.
func (k FontKey) IsZero() bool {
	return k.token == 0
}

// fontKeyToken is the process-global token counter. The first key issued
// carries token 1, keeping the zero value free as a sentinel.
var fontKeyToken atomic.Uint32

// NextFontKey returns a fresh, globally unique FontKey. Backend adapters
// call this once per loaded face.
func NextFontKey() FontKey {
	return FontKey{token: fontKeyToken.Add(1)}
}

// GlyphID is a glyph index within a font face, as assigned by the font
// file. Index 0 is the font's notdef (missing glyph) slot.
type GlyphID uint16

// GlyphKey identifies exactly one rasterized glyph variant: a character
// from one font at one size. GlyphKey is comparable; two keys with equal
// components are interchangeable as cache keys.
type GlyphKey struct {
	Font      FontKey
	Character rune
	Size      Size
}
