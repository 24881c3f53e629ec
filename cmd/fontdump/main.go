// Command fontdump loads a font through the fontkit cache and prints its
// metrics and ASCII renderings of the requested characters. It is a
// debugging aid for backend output.
//
//	fontdump -family "DejaVu Sans Mono" -size 14 -text "Ag"
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/fontkit"
	"github.com/gogpu/fontkit/backend/gotext"
)

// shades maps coverage to characters, darkest last.
const shades = " .:-=+*#%@"

func main() {
	var (
		family  = flag.String("family", "DejaVu Sans Mono", "font family to load")
		style   = flag.String("style", "", "font style, e.g. Bold Italic")
		size    = flag.Float64("size", 12, "font size in points")
		scale   = flag.Float64("scale", 1, "device pixel ratio")
		text    = flag.String("text", "Ag", "characters to render")
		verbose = flag.Bool("v", false, "log font loads and fallback probes")
	)
	flag.Parse()

	if *verbose {
		fontkit.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg := fontkit.DefaultConfig()
	cfg.Scale = *scale
	r, err := gotext.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create rasterizer: %v", err)
	}
	cache := fontkit.NewCache(r)
	defer cache.Close()

	desc := fontkit.FontDesc{Family: *family, Style: *style}
	pts := fontkit.FromPoints(*size)
	key, err := cache.LoadFont(desc, pts)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", desc, err)
	}

	m, err := cache.Metrics(key)
	if err != nil {
		log.Fatalf("Failed to read metrics: %v", err)
	}
	fmt.Printf("%s at %s (scale %g)\n", desc, pts, *scale)
	fmt.Printf("  ascent %.2f  descent %.2f  line height %.2f\n",
		m.Ascent, m.Descent, m.LineHeight)
	fmt.Printf("  underline %.2f/%.2f  strikeout %.2f/%.2f\n",
		m.UnderlinePosition, m.UnderlineThickness,
		m.StrikeoutPosition, m.StrikeoutThickness)
	fmt.Printf("  average advance %.2f  max advance %.2f\n",
		m.AverageAdvance, m.MaxAdvance)

	for _, ch := range *text {
		g, err := cache.Glyph(fontkit.GlyphKey{Font: key, Character: ch, Size: pts})
		if err != nil {
			fmt.Printf("\n%q: %v\n", ch, err)
			if g.Empty() {
				continue
			}
			fmt.Println("placeholder:")
		} else {
			fmt.Printf("\n%q: %dx%d  bearing (%d, %d)  advance %d\n",
				ch, g.Width, g.Height, g.Left, g.Top, g.AdvanceX)
		}
		dump(g)
	}
}

// dump prints a glyph bitmap as ASCII art.
func dump(g fontkit.RasterizedGlyph) {
	bpp := g.Buffer.Format.BytesPerPixel()
	if bpp == 0 || g.Empty() {
		return
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			fmt.Printf("%c", shade(g, x, y, bpp))
		}
		fmt.Println()
	}
}

// shade picks the ASCII shade for one pixel. For RGBA the alpha channel
// is the coverage; for Mono and RGB the first channel is.
func shade(g fontkit.RasterizedGlyph, x, y, bpp int) byte {
	p := (y*g.Width + x) * bpp
	v := g.Buffer.Pix[p]
	if g.Buffer.Format == fontkit.FormatRGBA {
		v = g.Buffer.Pix[p+3]
	}
	return shades[int(v)*(len(shades)-1)/255]
}
