package main

import (
	"image"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"limgo/device/video/console"
)

// toRGBA copies the visible part of fb into an RGBA image.
func toRGBA(fb *console.Framebuffer) *image.RGBA {
	var (
		w   = int(fb.Width())
		h   = int(fb.Height())
		img = image.NewRGBA(image.Rect(0, 0, w, h))
	)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := fb.PixelAt(uint32(x), uint32(y))
			off := img.PixOffset(x, y)
			img.Pix[off+0] = uint8(p >> 16)
			img.Pix[off+1] = uint8(p >> 8)
			img.Pix[off+2] = uint8(p)
			img.Pix[off+3] = 0xff
		}
	}

	return img
}

// scaleImage enlarges img by an integer factor without smoothing so glyph
// pixels stay sharp.
func scaleImage(img *image.RGBA, factor int) *image.RGBA {
	if factor <= 1 {
		return img
	}

	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*factor, bounds.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

// snapshot builds the (optionally gridded) image that is saved as a PNG.
// A zero cell size disables the grid.
func snapshot(fb *console.Framebuffer, factor, cellW, cellH int) *image.RGBA {
	img := scaleImage(toRGBA(fb), factor)
	if cellW == 0 || cellH == 0 {
		return img
	}

	dc := gg.NewContextForRGBA(img)
	dc.SetRGBA(0.2, 0.6, 1, 0.5)
	dc.SetLineWidth(1)

	w, h := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	for x := cellW * factor; x < img.Bounds().Dx(); x += cellW * factor {
		dc.DrawLine(float64(x)+0.5, 0, float64(x)+0.5, h)
	}
	for y := cellH * factor; y < img.Bounds().Dy(); y += cellH * factor {
		dc.DrawLine(0, float64(y)+0.5, w, float64(y)+0.5)
	}
	dc.Stroke()

	return img
}

func writeSnapshot(path string, fb *console.Framebuffer, factor, cellW, cellH int) error {
	return gg.NewContextForRGBA(snapshot(fb, factor, cellW, cellH)).SavePNG(path)
}
