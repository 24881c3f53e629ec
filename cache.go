package fontkit

import (
	"errors"
	"log/slog"
)

// fontIdent is the dedup key for loaded fonts: the normalized descriptor
// plus the exact Size.
type fontIdent struct {
	family string
	style  string
	weight Weight
	slant  Slant
	size   Size
}

// faceEntry records a loaded font. metrics is nil until the first Metrics
// call, then cached permanently.
type faceEntry struct {
	desc    FontDesc
	size    Size
	metrics *Metrics
}

// glyphEntry is a glyph cache entry. prev and next form the LRU list,
// maintained only when a capacity bound is set.
type glyphEntry struct {
	key   GlyphKey
	glyph RasterizedGlyph

	prev *glyphEntry
	next *glyphEntry
}

// fallbackKey addresses one memoized fallback resolution.
type fallbackKey struct {
	font      FontKey
	character rune
}

// CacheStats holds cache statistics.
type CacheStats struct {
	Hits           uint64
	Misses         uint64
	Evictions      uint64
	FallbackProbes uint64
}

// Cache wraps one concrete Rasterizer with the font and glyph caches and
// the per-character fallback search. It presents the same operations as
// the Rasterizer contract with three additional guarantees:
//
//   - LoadFont is idempotent: an equal descriptor (after family-name
//     normalization) at an equal Size always returns the same FontKey for
//     the life of the instance.
//   - Glyph never invokes the backend twice for an already-seen key.
//   - When the addressed font lacks a glyph, the fallback candidate list
//     is scanned in priority order, the first hit is memoized, and the
//     result is cached under the original key, so fallback stays
//     transparent to callers.
//
// By default cache growth is unbounded for the life of the instance: no
// eviction, no capacity bound, no TTL. This mirrors the documented
// behavior of the system this package descends from; callers who need
// bounded memory opt in with WithGlyphCapacity.
//
// A Cache is confined to a single owner, like the Rasterizer it wraps.
// It performs no internal locking; concurrent use requires one instance
// per goroutine or external mutual exclusion.
type Cache struct {
	r Rasterizer

	byDesc map[fontIdent]FontKey
	faces  map[FontKey]*faceEntry

	glyphs   map[GlyphKey]*glyphEntry
	head     *glyphEntry // most recently used, tracked only with capacity
	tail     *glyphEntry // least recently used
	capacity int

	// fallbacks memoizes fallback search results. The zero FontKey marks
	// a character known to be missing from every candidate.
	fallbacks map[fallbackKey]FontKey

	candidates       []FontDesc
	candidatesLoaded bool

	stats CacheStats
}

// NewCache creates a Cache over the given backend Rasterizer.
func NewCache(r Rasterizer, opts ...CacheOption) *Cache {
	o := defaultCacheOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Cache{
		r:         r,
		byDesc:    make(map[fontIdent]FontKey),
		faces:     make(map[FontKey]*faceEntry),
		glyphs:    make(map[GlyphKey]*glyphEntry),
		fallbacks: make(map[fallbackKey]FontKey),
		capacity:  o.glyphCapacity,
	}
	if o.fallbacks != nil {
		c.candidates = o.fallbacks
		c.candidatesLoaded = true
	}
	return c
}

// LoadFont loads the described font at the given size, or returns the
// FontKey of an equivalent font loaded earlier. Same descriptor and size
// always yield the same key for the life of the instance.
//
// A FontNotFoundError from the backend propagates unchanged: there is no
// automatic fallback at font-load granularity. Fallback applies per
// character, inside Glyph.
func (c *Cache) LoadFont(desc FontDesc, size Size) (FontKey, error) {
	id, err := identFor(desc, size)
	if err != nil {
		return FontKey{}, err
	}

	if key, ok := c.byDesc[id]; ok {
		return key, nil
	}

	key, err := c.r.LoadFont(desc, size)
	if err != nil {
		return FontKey{}, err
	}

	c.byDesc[id] = key
	// A backend may hand out one key for two descriptors resolving to the
	// same face; keep the first entry in that case.
	if _, ok := c.faces[key]; !ok {
		c.faces[key] = &faceEntry{desc: desc, size: size}
	}
	Logger().Debug("fontkit: loaded font", slog.String("desc", desc.String()), slog.String("size", size.String()))
	return key, nil
}

// Glyph returns the rasterized glyph for the key, rasterizing on first
// use and serving the cached bitmap afterwards. When the primary font
// lacks the character, the fallback chain is searched and the result is
// cached under the original key.
//
// When no candidate has the character either, Glyph returns a
// *MissingGlyphError together with a best-effort placeholder bitmap (the
// primary font's notdef slot when the backend exposes one, otherwise a
// zero-size bitmap), so rendering pipelines always receive some bitmap
// alongside the error.
func (c *Cache) Glyph(key GlyphKey) (RasterizedGlyph, error) {
	if e, ok := c.glyphs[key]; ok {
		c.stats.Hits++
		c.touch(e)
		return e.glyph, nil
	}
	c.stats.Misses++

	glyph, err := c.r.Glyph(key)
	if err == nil {
		c.insert(key, glyph)
		return glyph, nil
	}

	var missing *MissingGlyphError
	if !errors.As(err, &missing) {
		return RasterizedGlyph{}, err
	}

	// Memoized fallback resolution for this (font, character) pair.
	fk := fallbackKey{font: key.Font, character: key.Character}
	if resolved, ok := c.fallbacks[fk]; ok {
		if resolved.IsZero() {
			return c.missingGlyph(key, missing)
		}
		glyph, err := c.r.Glyph(GlyphKey{Font: resolved, Character: key.Character, Size: key.Size})
		if err == nil {
			c.insert(key, glyph)
			return glyph, nil
		}
		return c.missingGlyph(key, missing)
	}

	// First miss for this pair: scan the candidate list in priority
	// order. The first success wins and is memoized for reuse.
	for _, cand := range c.fallbackCandidates() {
		c.stats.FallbackProbes++
		candKey, err := c.LoadFont(cand, key.Size)
		if err != nil {
			continue
		}
		glyph, err := c.r.Glyph(GlyphKey{Font: candKey, Character: key.Character, Size: key.Size})
		if err != nil {
			continue
		}
		c.fallbacks[fk] = candKey
		c.insert(key, glyph)
		Logger().Debug("fontkit: fallback resolved",
			slog.String("character", string(key.Character)),
			slog.String("family", cand.Family))
		return glyph, nil
	}

	// Every candidate misses the character too. Remember that, so later
	// requests fail without rescanning the chain.
	c.fallbacks[fk] = FontKey{}
	return c.missingGlyph(key, missing)
}

// Metrics returns the font-wide metrics for the key, computed by the
// backend on first request and cached permanently. Two calls on the same
// key return identical values.
func (c *Cache) Metrics(font FontKey) (Metrics, error) {
	e, ok := c.faces[font]
	if !ok {
		return Metrics{}, &ConfigurationError{Reason: "metrics: unknown font key"}
	}
	if e.metrics != nil {
		return *e.metrics, nil
	}

	m, err := c.r.Metrics(font)
	if err != nil {
		return Metrics{}, err
	}
	if !m.Consistent() {
		Logger().Warn("fontkit: backend returned inconsistent metrics",
			slog.String("desc", e.desc.String()))
	}
	e.metrics = &m
	return m, nil
}

// Kerning passes through to the backend. It never fails; fonts without
// kerning tables yield zero offsets.
func (c *Cache) Kerning(left, right GlyphID, font FontKey) (dx, dy int) {
	return c.r.Kerning(left, right, font)
}

// UpdateSetting applies a backend option to subsequent rasterizations.
// Already-cached bitmaps are not invalidated; call ClearGlyphs for an
// immediate effect.
func (c *Cache) UpdateSetting(s Setting) {
	c.r.UpdateSetting(s)
}

// ClearGlyphs drops every cached glyph bitmap. Loaded fonts, metrics and
// memoized fallback resolutions are kept.
func (c *Cache) ClearGlyphs() {
	c.glyphs = make(map[GlyphKey]*glyphEntry)
	c.head = nil
	c.tail = nil
}

// GlyphCount returns the number of cached glyph bitmaps.
func (c *Cache) GlyphCount() int {
	return len(c.glyphs)
}

// Stats returns a snapshot of the cache statistics.
func (c *Cache) Stats() CacheStats {
	return c.stats
}

// Close closes the underlying Rasterizer, releasing its native
// resources. The Cache must not be used afterwards.
func (c *Cache) Close() error {
	return c.r.Close()
}

// missingGlyph builds the error return for a character no candidate
// covers: the primary font's notdef placeholder when available, an empty
// bitmap otherwise.
func (c *Cache) missingGlyph(key GlyphKey, missing *MissingGlyphError) (RasterizedGlyph, error) {
	placeholder := missing.Glyph
	if placeholder.Empty() {
		if ns, ok := c.r.(NotdefSource); ok {
			if nd, ok := ns.Notdef(key.Font, key.Size); ok {
				placeholder = nd
			}
		}
	}
	placeholder.Character = key.Character
	return placeholder, &MissingGlyphError{Character: key.Character, Glyph: placeholder}
}

// fallbackCandidates returns the ordered candidate list, asking the
// backend once when the caller supplied none.
func (c *Cache) fallbackCandidates() []FontDesc {
	if !c.candidatesLoaded {
		c.candidatesLoaded = true
		if fs, ok := c.r.(FallbackSource); ok {
			c.candidates = fs.FallbackFonts()
		}
	}
	return c.candidates
}

// identFor validates a descriptor and size and builds the dedup key.
func identFor(desc FontDesc, size Size) (fontIdent, error) {
	family := desc.NormalizedFamily()
	if family == "" {
		return fontIdent{}, &ConfigurationError{Reason: "load font: empty family name"}
	}
	if size.Points() <= 0 {
		return fontIdent{}, &ConfigurationError{Reason: "load font: size must be positive"}
	}
	return fontIdent{
		family: family,
		style:  desc.Style,
		weight: desc.Weight,
		slant:  desc.Slant,
		size:   size,
	}, nil
}

// insert stores a glyph, evicting the least recently used entry when a
// capacity bound is set.
func (c *Cache) insert(key GlyphKey, glyph RasterizedGlyph) {
	e := &glyphEntry{key: key, glyph: glyph}

	if c.capacity > 0 {
		for len(c.glyphs) >= c.capacity && c.tail != nil {
			c.removeTail()
			c.stats.Evictions++
		}
		c.addToFront(e)
	}

	c.glyphs[key] = e
}

// touch moves an entry to the front of the LRU list.
func (c *Cache) touch(e *glyphEntry) {
	if c.capacity == 0 || e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

// addToFront adds an entry to the front of the LRU list.
func (c *Cache) addToFront(e *glyphEntry) {
	e.prev = nil
	e.next = c.head

	if c.head != nil {
		c.head.prev = e
	}
	c.head = e

	if c.tail == nil {
		c.tail = e
	}
}

// remove unlinks an entry from the LRU list (does not delete from map).
func (c *Cache) remove(e *glyphEntry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}

	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}

	e.prev = nil
	e.next = nil
}

// removeTail evicts the least recently used entry.
func (c *Cache) removeTail() {
	if c.tail == nil {
		return
	}
	e := c.tail
	delete(c.glyphs, e.key)
	c.remove(e)
}
