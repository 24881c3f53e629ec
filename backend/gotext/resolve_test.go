package gotext

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/fontkit"
)

// makeCollection packs standalone font files into a TTC so collection
// handling can be tested without shipping a fixture.
func makeCollection(t *testing.T, fonts ...[]byte) []byte {
	t.Helper()
	out := []byte{'t', 't', 'c', 'f', 0x00, 0x01, 0x00, 0x00}
	out = binary.BigEndian.AppendUint32(out, uint32(len(fonts)))
	offset := 12 + 4*len(fonts)
	for _, f := range fonts {
		out = binary.BigEndian.AppendUint32(out, uint32(offset))
		offset += len(f)
	}
	base := 12 + 4*len(fonts)
	for _, f := range fonts {
		out = append(out, retarget(t, f, base)...)
		base += len(f)
	}
	return out
}

// retarget shifts a font's table directory offsets from file-relative to
// collection-relative, as the TTC format requires.
func retarget(t *testing.T, font []byte, base int) []byte {
	t.Helper()
	if len(font) < 12 {
		t.Fatal("font file too short")
	}
	f := append([]byte(nil), font...)
	numTables := int(binary.BigEndian.Uint16(f[4:6]))
	for i := 0; i < numTables; i++ {
		rec := 12 + 16*i
		off := binary.BigEndian.Uint32(f[rec+8 : rec+12])
		binary.BigEndian.PutUint32(f[rec+8:rec+12], off+uint32(base))
	}
	return f
}

func TestBestFaceIndex(t *testing.T) {
	ttc := makeCollection(t, goregular.TTF, gobold.TTF)
	c, err := opentype.ParseCollection(ttc)
	if err != nil {
		t.Fatalf("ParseCollection: %v", err)
	}
	if c.NumFonts() != 2 {
		t.Fatalf("NumFonts = %d, want 2", c.NumFonts())
	}

	tests := []struct {
		desc fontkit.FontDesc
		want int
	}{
		{fontkit.FontDesc{Family: "Go"}, 0},
		{fontkit.FontDesc{Family: "Go", Weight: fontkit.WeightBold}, 1},
		{fontkit.FontDesc{Family: "Go", Style: "Bold"}, 1},
		{fontkit.FontDesc{Family: "Go", Style: "Regular"}, 0},
	}
	for _, tt := range tests {
		if got := bestFaceIndex(c, tt.desc, 0); got != tt.want {
			t.Errorf("bestFaceIndex(%s) = %d, want %d", tt.desc, got, tt.want)
		}
	}
}

func TestLoadFontFileSelectsStyledFace(t *testing.T) {
	ttc := makeCollection(t, goregular.TTF, gobold.TTF)
	path := filepath.Join(t.TempDir(), "go.ttc")
	if err := os.WriteFile(path, ttc, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	// The system index hands back index 0 for a family; a styled request
	// must still land on the bold face.
	src := loadFontFile(path, 0, fontkit.FontDesc{Family: "Go", Weight: fontkit.WeightBold})
	if src == nil {
		t.Fatal("loadFontFile returned no source")
	}
	var buf sfnt.Buffer
	subfamily, err := src.ot.Name(&buf, sfnt.NameIDSubfamily)
	if err != nil {
		t.Fatalf("Name: %v", err)
	}
	if !strings.EqualFold(subfamily, "Bold") {
		t.Errorf("selected subfamily %q, want Bold", subfamily)
	}

	src = loadFontFile(path, 0, fontkit.FontDesc{Family: "Go"})
	if src == nil {
		t.Fatal("loadFontFile returned no source")
	}
	subfamily, err = src.ot.Name(&buf, sfnt.NameIDSubfamily)
	if err != nil {
		t.Fatalf("Name: %v", err)
	}
	if !strings.EqualFold(subfamily, "Regular") {
		t.Errorf("selected subfamily %q, want Regular", subfamily)
	}
}

func TestCollectionRegistration(t *testing.T) {
	ttc := makeCollection(t, goregular.TTF, gobold.TTF)
	r, err := New(fontkit.DefaultConfig(), WithFontData(ttc), WithoutSystemFonts())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Close()

	size := fontkit.FromPoints(12)
	regular, err := r.LoadFont(fontkit.FontDesc{Family: "Go"}, size)
	if err != nil {
		t.Fatalf("LoadFont regular: %v", err)
	}
	bold, err := r.LoadFont(fontkit.FontDesc{Family: "Go", Weight: fontkit.WeightBold}, size)
	if err != nil {
		t.Fatalf("LoadFont bold: %v", err)
	}

	gr, err := r.Glyph(fontkit.GlyphKey{Font: regular, Character: 'H', Size: size})
	if err != nil {
		t.Fatalf("Glyph regular: %v", err)
	}
	gb, err := r.Glyph(fontkit.GlyphKey{Font: bold, Character: 'H', Size: size})
	if err != nil {
		t.Fatalf("Glyph bold: %v", err)
	}
	if reflect.DeepEqual(gr.Buffer, gb.Buffer) {
		t.Error("bold collection face rendered like the regular face")
	}
}

func TestFileNameCandidates(t *testing.T) {
	tests := []struct {
		desc fontkit.FontDesc
		want []string
	}{
		{
			fontkit.FontDesc{Family: "DejaVu Sans"},
			[]string{"DejaVuSans.ttf", "DejaVuSans.otf"},
		},
		{
			fontkit.FontDesc{Family: "DejaVu Sans", Weight: fontkit.WeightBold},
			[]string{"DejaVuSans-Bold.ttf", "DejaVuSansBold.ttf", "DejaVuSans.ttf", "DejaVuSans.otf"},
		},
		{
			fontkit.FontDesc{Family: "DejaVu Sans", Weight: fontkit.WeightBold, Slant: fontkit.SlantItalic},
			[]string{"DejaVuSans-BoldItalic.ttf", "DejaVuSansBoldItalic.ttf", "DejaVuSans.ttf", "DejaVuSans.otf"},
		},
		{
			fontkit.FontDesc{Family: "DejaVu Sans", Slant: fontkit.SlantOblique},
			[]string{"DejaVuSans-Oblique.ttf", "DejaVuSansOblique.ttf", "DejaVuSans.ttf", "DejaVuSans.otf"},
		},
		{
			fontkit.FontDesc{Family: "Liberation Mono", Style: "Bold Italic"},
			[]string{"LiberationMono-BoldItalic.ttf", "LiberationMonoBoldItalic.ttf", "LiberationMono.ttf", "LiberationMono.otf"},
		},
		{fontkit.FontDesc{Family: "   "}, nil},
	}
	for _, tt := range tests {
		if got := fileNameCandidates(tt.desc); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("fileNameCandidates(%s) = %v, want %v", tt.desc, got, tt.want)
		}
	}
}
