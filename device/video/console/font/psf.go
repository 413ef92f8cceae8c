package font

import "limgo/kernel"

const (
	psf1Magic0     = 0x36
	psf1Magic1     = 0x04
	psf1HeaderSize = 4
	psf1Mode512    = 0x01

	psf2Magic      = 0x864ab572
	psf2HeaderSize = 32

	// supportedGlyphWidth is the only glyph width the console rasterizer
	// knows how to draw.
	supportedGlyphWidth = 8
)

var (
	errShortHeader           = &kernel.Error{Module: "font", Message: "font data too short for a PSF header"}
	errBadMagic              = &kernel.Error{Module: "font", Message: "font data is not in PSF1 or PSF2 format"}
	errUnsupportedGlyphWidth = &kernel.Error{Module: "font", Message: "only 8 pixel wide glyphs are supported"}
	errBadGlyphSize          = &kernel.Error{Module: "font", Message: "glyph size does not match glyph dimensions"}
	errTruncatedGlyphTable   = &kernel.Error{Module: "font", Message: "glyph table extends past the end of the font data"}
	errNoGlyphs              = &kernel.Error{Module: "font", Message: "font does not define any glyphs"}
)

// Parse decodes the PSF1 or PSF2 header at the start of data and returns a
// Font that references data. The glyph table is validated against the
// length of data so that any in-range glyph lookup stays inside the blob.
func Parse(name string, data []byte) (*Font, *kernel.Error) {
	var f *Font

	switch {
	case len(data) >= 2 && data[0] == psf1Magic0 && data[1] == psf1Magic1:
		if len(data) < psf1HeaderSize {
			return nil, errShortHeader
		}

		numGlyphs := uint32(256)
		if data[2]&psf1Mode512 != 0 {
			numGlyphs = 512
		}

		f = &Font{
			GlyphWidth:    supportedGlyphWidth,
			GlyphHeight:   uint32(data[3]),
			BytesPerRow:   1,
			BytesPerGlyph: uint32(data[3]),
			HeaderSize:    psf1HeaderSize,
			NumGlyphs:     numGlyphs,
		}
	case len(data) >= 4 && le32(data, 0) == psf2Magic:
		if len(data) < psf2HeaderSize {
			return nil, errShortHeader
		}

		// Header layout: magic, version, headersize, flags, numglyph,
		// bytesperglyph, height, width (all little-endian uint32).
		f = &Font{
			HeaderSize:    le32(data, 8),
			NumGlyphs:     le32(data, 16),
			BytesPerGlyph: le32(data, 20),
			GlyphHeight:   le32(data, 24),
			GlyphWidth:    le32(data, 28),
		}
		f.BytesPerRow = (f.GlyphWidth + 7) / 8
	case len(data) < 4:
		return nil, errShortHeader
	default:
		return nil, errBadMagic
	}

	if f.GlyphWidth != supportedGlyphWidth {
		return nil, errUnsupportedGlyphWidth
	}

	if f.NumGlyphs == 0 {
		return nil, errNoGlyphs
	}

	if f.GlyphHeight == 0 || f.BytesPerGlyph < f.GlyphHeight*f.BytesPerRow {
		return nil, errBadGlyphSize
	}

	if uint64(f.HeaderSize)+uint64(f.NumGlyphs)*uint64(f.BytesPerGlyph) > uint64(len(data)) {
		return nil, errTruncatedGlyphTable
	}

	f.Name = name
	f.Data = data
	return f, nil
}

// le32 decodes the little-endian uint32 stored at data[off:].
func le32(data []byte, off int) uint32 {
	return uint32(data[off]) | uint32(data[off+1])<<8 | uint32(data[off+2])<<16 | uint32(data[off+3])<<24
}
