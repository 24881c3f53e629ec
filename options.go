package fontkit

// CacheOption configures a Cache during creation.
//
// Example:
//
//	// Default: unbounded glyph cache, backend-provided fallbacks
//	c := fontkit.NewCache(r)
//
//	// Bounded cache with an explicit fallback chain
//	c := fontkit.NewCache(r,
//	    fontkit.WithGlyphCapacity(4096),
//	    fontkit.WithFallbacks(fontkit.FontDesc{Family: "Noto Sans"}))
type CacheOption func(*cacheOptions)

// cacheOptions holds optional configuration for Cache creation.
type cacheOptions struct {
	fallbacks     []FontDesc
	glyphCapacity int
}

// defaultCacheOptions returns the default cache options.
func defaultCacheOptions() cacheOptions {
	return cacheOptions{}
}

// WithFallbacks sets the ordered fallback candidate list consulted when a
// font lacks a glyph, overriding whatever list the backend surfaces.
// Earlier entries have higher priority.
func WithFallbacks(descs ...FontDesc) CacheOption {
	return func(o *cacheOptions) {
		o.fallbacks = append([]FontDesc(nil), descs...)
	}
}

// WithGlyphCapacity bounds the glyph cache to n entries with LRU
// eviction. The default (0) keeps the documented unbounded behavior: no
// eviction for the life of the instance.
func WithGlyphCapacity(n int) CacheOption {
	return func(o *cacheOptions) {
		if n < 0 {
			n = 0
		}
		o.glyphCapacity = n
	}
}
