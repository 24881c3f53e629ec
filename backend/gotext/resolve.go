package gotext

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/go-text/typesetting/fontscan"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	gtfont "github.com/go-text/typesetting/font"

	"github.com/gogpu/fontkit"
)

// registeredFont is one face of a font file registered with WithFontData.
type registeredFont struct {
	data      []byte
	index     int
	family    string // normalized
	subfamily string // lowercased name table subfamily, e.g. "bold italic"
	ot        *opentype.Font
}

// source is a resolved font face ready to be wrapped in a face.
type source struct {
	ot     *opentype.Font
	gt     *gtfont.Face
	origin string
}

// register parses a font file and adds every face it contains to the
// registry.
func (r *Rasterizer) register(data []byte) error {
	c, err := opentype.ParseCollection(data)
	if err != nil {
		return &fontkit.ConfigurationError{Reason: fmt.Sprintf("invalid font data: %v", err)}
	}
	for i := 0; i < c.NumFonts(); i++ {
		f, err := c.Font(i)
		if err != nil {
			return &fontkit.ConfigurationError{Reason: fmt.Sprintf("invalid font data: face %d: %v", i, err)}
		}
		family, err := f.Name(&r.buf, sfnt.NameIDFamily)
		if err != nil {
			continue
		}
		subfamily, _ := f.Name(&r.buf, sfnt.NameIDSubfamily)
		r.registry = append(r.registry, &registeredFont{
			data:      data,
			index:     i,
			family:    fontkit.FontDesc{Family: family}.NormalizedFamily(),
			subfamily: strings.ToLower(subfamily),
			ot:        f,
		})
	}
	return nil
}

// resolve finds a face for the descriptor: registered fonts first, then
// the system font index, then a file name probe. Returns nil when nothing
// matches.
func (r *Rasterizer) resolve(desc fontkit.FontDesc) *source {
	if rf := r.matchRegistered(desc); rf != nil {
		return &source{ot: rf.ot, gt: parseGT(rf.data, rf.index), origin: "registered"}
	}
	if !r.opts.useSystem {
		return nil
	}
	if fm := r.system.load(); fm != nil {
		if loc, ok := fm.FindSystemFont(desc.Family); ok {
			if src := loadFontFile(loc.File, int(loc.Index), desc); src != nil {
				src.origin = loc.File
				return src
			}
		}
	}
	for _, name := range fileNameCandidates(desc) {
		path, err := findfont.Find(name)
		if err != nil {
			continue
		}
		if src := loadFontFile(path, 0, desc); src != nil {
			src.origin = path
			return src
		}
	}
	return nil
}

// matchRegistered returns the registered face whose subfamily best matches
// the descriptor's style attributes, or nil when the family is unknown.
func (r *Rasterizer) matchRegistered(desc fontkit.FontDesc) *registeredFont {
	family := desc.NormalizedFamily()
	var best *registeredFont
	bestScore := -1
	for _, rf := range r.registry {
		if rf.family != family {
			continue
		}
		if score := styleScore(desc, rf.subfamily); score > bestScore {
			best, bestScore = rf, score
		}
	}
	return best
}

// styleScore rates how well a face's name table subfamily matches the
// descriptor. An explicit Style must match the subfamily exactly;
// otherwise the Weight and Slant attributes are matched against the
// conventional subfamily keywords.
func styleScore(desc fontkit.FontDesc, subfamily string) int {
	if style := strings.ToLower(strings.TrimSpace(desc.Style)); style != "" {
		if subfamily == style {
			return 4
		}
		return 0
	}
	score := 0
	bold := strings.Contains(subfamily, "bold")
	if bold == (desc.Weight == fontkit.WeightBold) {
		score++
	}
	italic := strings.Contains(subfamily, "italic") || strings.Contains(subfamily, "oblique")
	if italic == (desc.Slant != fontkit.SlantNormal) {
		score++
	}
	return score
}

// systemIndex lazily builds the fontscan system font map. The index scan
// walks every font directory on the host, so it only runs when a lookup
// actually needs it, and a failure is remembered instead of retried.
type systemIndex struct {
	fm     *fontscan.FontMap
	failed bool
}

func (s *systemIndex) load() *fontscan.FontMap {
	if s.fm != nil || s.failed {
		return s.fm
	}
	fm := fontscan.NewFontMap(log.New(io.Discard, "", 0))
	cacheDir := ""
	if dir, err := os.UserCacheDir(); err == nil {
		cacheDir = filepath.Join(dir, "fontkit")
	}
	if err := fm.UseSystemFonts(cacheDir); err != nil {
		s.failed = true
		fontkit.Logger().Warn("system font index unavailable", "error", err)
		return nil
	}
	s.fm = fm
	return fm
}

// loadFontFile reads and parses one face of a font file. Within a
// collection the descriptor's style attributes pick the face, the same
// way matchRegistered scores registered faces, so system-resolved fonts
// honor Style/Weight/Slant too. Parse failures are logged and reported
// as a miss so resolution can try the next candidate.
func loadFontFile(path string, index int, desc fontkit.FontDesc) *source {
	data, err := os.ReadFile(path)
	if err != nil {
		fontkit.Logger().Warn("failed to read font file", "path", path, "error", err)
		return nil
	}
	c, err := opentype.ParseCollection(data)
	if err != nil {
		fontkit.Logger().Warn("failed to parse font file", "path", path, "error", err)
		return nil
	}
	if index < 0 || index >= c.NumFonts() {
		index = 0
	}
	if c.NumFonts() > 1 {
		index = bestFaceIndex(c, desc, index)
	}
	f, err := c.Font(index)
	if err != nil {
		fontkit.Logger().Warn("failed to parse font file", "path", path, "error", err)
		return nil
	}
	return &source{ot: f, gt: parseGT(data, index)}
}

// bestFaceIndex returns the collection face whose name table subfamily
// best matches the descriptor, falling back to def when no name table is
// readable.
func bestFaceIndex(c *opentype.Collection, desc fontkit.FontDesc, def int) int {
	var buf sfnt.Buffer
	best, bestScore := def, -1
	for i := 0; i < c.NumFonts(); i++ {
		f, err := c.Font(i)
		if err != nil {
			continue
		}
		subfamily, err := f.Name(&buf, sfnt.NameIDSubfamily)
		if err != nil {
			continue
		}
		if score := styleScore(desc, strings.ToLower(subfamily)); score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// parseGT parses the typesetting view of a font file, returning nil when
// the file is not parseable or the index is out of range. A nil result
// degrades line decoration metrics and color glyphs, nothing else.
func parseGT(data []byte, index int) *gtfont.Face {
	if f, err := gtfont.ParseTTF(bytes.NewReader(data)); err == nil {
		if index == 0 {
			return f
		}
		return nil
	}
	if faces, err := gtfont.ParseTTC(bytes.NewReader(data)); err == nil && index < len(faces) {
		return faces[index]
	}
	return nil
}

// fileNameCandidates returns the file names to probe for a descriptor
// when the system index has no entry for the family. Styled names come
// first so a bold or italic request does not land on the family's
// default file.
func fileNameCandidates(desc fontkit.FontDesc) []string {
	compact := strings.ReplaceAll(strings.TrimSpace(desc.Family), " ", "")
	if compact == "" {
		return nil
	}
	var names []string
	if token := styleToken(desc); token != "" {
		names = append(names, compact+"-"+token+".ttf", compact+token+".ttf")
	}
	return append(names, compact+".ttf", compact+".otf")
}

// styleToken derives the conventional file-name style suffix from a
// descriptor: the explicit Style when set, otherwise the Weight/Slant
// keywords. Empty for the default face.
func styleToken(desc fontkit.FontDesc) string {
	if style := strings.ReplaceAll(strings.TrimSpace(desc.Style), " ", ""); style != "" {
		return style
	}
	var b strings.Builder
	if desc.Weight == fontkit.WeightBold {
		b.WriteString("Bold")
	}
	switch desc.Slant {
	case fontkit.SlantItalic:
		b.WriteString("Italic")
	case fontkit.SlantOblique:
		b.WriteString("Oblique")
	}
	return b.String()
}

// FallbackFonts implements fontkit.FallbackSource. Registered families
// come first, in registration order, followed by the platform's
// conventional fallback fonts. WithFallbackFonts replaces the whole list.
func (r *Rasterizer) FallbackFonts() []fontkit.FontDesc {
	if r.opts.fallbacks != nil {
		return r.opts.fallbacks
	}
	var descs []fontkit.FontDesc
	seen := make(map[string]bool)
	for _, rf := range r.registry {
		if seen[rf.family] {
			continue
		}
		seen[rf.family] = true
		descs = append(descs, fontkit.FontDesc{Family: rf.family})
	}
	return append(descs, platformFallbacks()...)
}

// platformFallbacks lists the fonts a platform is conventionally expected
// to carry, in the order they should be probed.
func platformFallbacks() []fontkit.FontDesc {
	var families []string
	switch runtime.GOOS {
	case "darwin":
		families = []string{"Menlo", "Helvetica", "Apple Symbols", "Apple Color Emoji"}
	case "windows":
		families = []string{"Consolas", "Segoe UI", "Segoe UI Symbol", "Segoe UI Emoji"}
	default:
		families = []string{
			"DejaVu Sans Mono", "DejaVu Sans", "Noto Sans",
			"Noto Sans Symbols", "Noto Color Emoji", "Liberation Sans",
		}
	}
	descs := make([]fontkit.FontDesc, len(families))
	for i, f := range families {
		descs[i] = fontkit.FontDesc{Family: f}
	}
	return descs
}
