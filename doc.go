// Package fontkit provides a platform-independent contract for turning a
// font descriptor and a character into a rasterized glyph bitmap.
//
// # Overview
//
// fontkit is the abstraction layer between a consumer (typically a
// terminal or canvas renderer) and whichever native font engine the host
// platform offers. It defines the shared identity and value types
// (FontDesc, FontKey, GlyphKey, Size, Metrics, RasterizedGlyph), a
// unified error taxonomy, the Rasterizer capability contract every
// backend adapter implements, and the Cache: a font and glyph cache with
// per-character fallback resolution layered above one concrete backend.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/fontkit"
//	    "github.com/gogpu/fontkit/backend/gotext"
//	)
//
//	r, err := gotext.New(fontkit.DefaultConfig())
//	if err != nil { ... }
//	c := fontkit.NewCache(r)
//	defer c.Close()
//
//	key, err := c.LoadFont(fontkit.FontDesc{Family: "Mono"}, fontkit.FromPoints(12))
//	if err != nil { ... }
//	glyph, err := c.Glyph(fontkit.GlyphKey{Font: key, Character: 'A', Size: fontkit.FromPoints(12)})
//
// # Semantics
//
// The Cache guarantees one deterministic contract regardless of backend:
// exact fixed-point size arithmetic, one metrics definition, one
// missing-glyph policy, one fallback ordering, and load dedup for equal
// descriptors. Glyph bitmaps are cached without eviction by default; see
// WithGlyphCapacity for an opt-in bound.
//
// # Concurrency
//
// A Rasterizer and the Cache wrapping it are confined to a single owner.
// Use one instance per goroutine, or serialize access externally.
package fontkit
