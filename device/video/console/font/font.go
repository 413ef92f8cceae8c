// Package font provides the bitmap fonts used by the framebuffer console.
//
// Fonts are stored in PC Screen Font (PSF1 or PSF2) format and embedded into
// the kernel image. A Font keeps the whole blob, header included, and glyphs
// are addressed relative to the header size.
package font

var (
	// The list of available fonts.
	availableFonts []*Font
)

// Font describes a bitmap font that can be used by a console device.
type Font struct {
	// The name of the font
	Name string

	// The width of each glyph in pixels. Only 8 pixel wide fonts are
	// supported so each glyph row fits in a single byte.
	GlyphWidth uint32

	// The height of each glyph in pixels.
	GlyphHeight uint32

	// The recommended console resolution for this font.
	RecommendedWidth  uint32
	RecommendedHeight uint32

	// Font priority (lower is better). When auto-detecting a font to use, the font with
	// the lowest priority will be preferred
	Priority uint32

	// The number of bytes describing a row in a glyph.
	BytesPerRow uint32

	// The number of bytes describing a whole glyph.
	BytesPerGlyph uint32

	// The offset of the glyph table inside Data.
	HeaderSize uint32

	// The number of glyphs in the glyph table.
	NumGlyphs uint32

	// The raw font blob. The glyph for character code c starts at
	// HeaderSize + c*BytesPerGlyph; each bit of a row selects the
	// foreground (1) or background (0) color, MSB first.
	Data []byte
}

// Width returns the glyph width in pixels.
func (f *Font) Width() uint32 {
	return f.GlyphWidth
}

// Height returns the glyph height in pixels.
func (f *Font) Height() uint32 {
	return f.GlyphHeight
}

// Row returns the bitmap for the given row of the glyph that corresponds to
// code. The most significant bit maps to the leftmost pixel. Codes outside
// the glyph table select glyph 0; row must be less than GlyphHeight.
func (f *Font) Row(code, row uint32) uint8 {
	if code >= f.NumGlyphs {
		code = 0
	}

	return f.Data[f.HeaderSize+code*f.BytesPerGlyph+row*f.BytesPerRow]
}

// Register adds f to the list of available fonts.
func Register(f *Font) {
	if f == nil {
		return
	}

	availableFonts = append(availableFonts, f)
}

// FindByName looks up a font instance by name. If the font is not found then
// the function returns nil.
func FindByName(name string) *Font {
	for _, f := range availableFonts {
		if f.Name == name {
			return f
		}
	}

	return nil
}

// BestFit returns the best font from the available font list given the
// specified console dimensions. If multiple fonts match the dimension criteria
// then their priority attribute is used to select one.
//
// The algorithm for selecting the best font is the following:
//
//	For each font:
//	  - calculate the sum of abs differences between the font recommended dimension
//	    and the console dimensions.
//	  - if the font score is lower than the current best font's score then the
//	    font becomes the new best font.
//	  - if the font score is equal to the current best font's score then the
//	    font with the lowest priority becomes the new best font.
func BestFit(consoleWidth, consoleHeight uint32) *Font {
	var (
		best      *Font
		bestDelta uint32
	)

	for _, f := range availableFonts {
		delta := absDiff(f.RecommendedWidth, consoleWidth) + absDiff(f.RecommendedHeight, consoleHeight)

		if best == nil {
			best, bestDelta = f, delta
			continue
		}

		if best.Priority < f.Priority || delta > bestDelta {
			continue
		}

		best, bestDelta = f, delta
	}

	return best
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
