package fontkit

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// PixelFormat tags the pixel layout of a glyph bitmap.
type PixelFormat uint8

const (
	// FormatMono is a monochrome coverage mask, one byte per pixel.
	FormatMono PixelFormat = iota
	// FormatRGB is an RGB alpha mask, three bytes per pixel.
	FormatRGB
	// FormatRGBA is premultiplied RGBA color, four bytes per pixel.
	// Color (emoji) fonts produce this format.
	FormatRGBA
)

// String returns the string representation of the format.
func (f PixelFormat) String() string {
	switch f {
	case FormatMono:
		return "Mono"
	case FormatRGB:
		return "RGB"
	case FormatRGBA:
		return "RGBA"
	default:
		return unknownStr
	}
}

// BytesPerPixel returns the pixel stride for the format.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case FormatMono:
		return 1
	case FormatRGB:
		return 3
	case FormatRGBA:
		return 4
	default:
		return 0
	}
}

// BitmapBuffer is a tagged glyph pixel buffer. Pix holds Width*Height
// pixels in row-major order at the format's stride.
type BitmapBuffer struct {
	Format PixelFormat
	Pix    []byte
}

// RasterizedGlyph is one character rasterized at one size: the pixel
// buffer plus the placement information needed to position it relative to
// the pen. A RasterizedGlyph is immutable once produced.
type RasterizedGlyph struct {
	// Character is the Unicode scalar this bitmap renders.
	Character rune

	// Width and Height are the bitmap dimensions in pixels.
	Width  int
	Height int

	// Left and Top are the bearings: Left is the horizontal offset from
	// the pen to the bitmap's left edge, Top the vertical distance from
	// the baseline up to the bitmap's top edge.
	Left int
	Top  int

	// AdvanceX and AdvanceY are the pen advance in pixels after this
	// glyph is placed.
	AdvanceX int
	AdvanceY int

	Buffer BitmapBuffer
}

// Empty reports whether the glyph has no pixels.
func (g RasterizedGlyph) Empty() bool {
	return g.Width <= 0 || g.Height <= 0
}
