package font

import (
	_ "embed" // for the embedded PSF font
	"limgo/kernel/kfmt"
)

// vga8x16Data is the standard IBM VGA 8x16 font in PSF2 format.
//
//go:embed vga8x16.psf
var vga8x16Data []byte

func init() {
	f, err := Parse("vga8x16", vga8x16Data)
	if err != nil {
		kfmt.Panic(err)
		return
	}

	f.RecommendedWidth = 1024
	f.RecommendedHeight = 768
	Register(f)
}
