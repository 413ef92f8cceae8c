package console

import (
	"limgo/kernel"
	"sync/atomic"
	"unsafe"
)

// Pixel is a 32-bit packed RGB color value (0x00RRGGBB).
type Pixel uint32

// The two colors used by the console.
const (
	ColorBlack Pixel = 0x000000
	ColorWhite Pixel = 0xffffff
)

// bytesPerPixel is the size of a Pixel in framebuffer memory.
const bytesPerPixel = 4

// Framebuffer describes a region of display memory: a base, a length and a
// stride between scanlines. All stores into the region are issued as atomic
// 32-bit writes so the compiler never coalesces or drops them.
type Framebuffer struct {
	pixels []uint32

	// stride is the number of pixels between the start of two
	// consecutive scanlines (pitch / 4).
	stride uint32

	// visible dimensions in pixels.
	width, height uint32
}

// NewFramebuffer wraps pixels as a framebuffer with the supplied visible
// dimensions and row pitch in bytes. The pitch must be a multiple of 4 and
// at least width*4; pixels must hold at least height rows.
func NewFramebuffer(pixels []uint32, width, height, pitch uint32) *Framebuffer {
	return &Framebuffer{
		pixels: pixels,
		stride: pitch / bytesPerPixel,
		width:  width,
		height: height,
	}
}

// MapFramebuffer overlays a Framebuffer on the display memory at addr.
func MapFramebuffer(addr uintptr, width, height, pitch uint32) *Framebuffer {
	count := uintptr(height) * uintptr(pitch) / bytesPerPixel
	pixels := unsafe.Slice((*uint32)(unsafe.Pointer(addr)), count)
	return NewFramebuffer(pixels, width, height, pitch)
}

// Width returns the visible width in pixels.
func (fb *Framebuffer) Width() uint32 { return fb.width }

// Height returns the visible height in pixels.
func (fb *Framebuffer) Height() uint32 { return fb.height }

// Stride returns the number of pixels per scanline, including padding.
func (fb *Framebuffer) Stride() uint32 { return fb.stride }

// Plot writes c to the pixel at column x, row y. The pixel is stored at the
// linear index y*stride + x. Coordinates outside the visible area are
// ignored.
func (fb *Framebuffer) Plot(x, y uint32, c Pixel) {
	if x >= fb.width || y >= fb.height {
		return
	}

	index := uintptr(y)*uintptr(fb.stride) + uintptr(x)
	if index >= uintptr(len(fb.pixels)) {
		return
	}

	atomic.StoreUint32(&fb.pixels[index], uint32(c))
}

// PixelAt returns the color of the pixel at column x, row y or ColorBlack if
// the coordinates are outside the visible area.
func (fb *Framebuffer) PixelAt(x, y uint32) Pixel {
	if x >= fb.width || y >= fb.height {
		return ColorBlack
	}

	index := uintptr(y)*uintptr(fb.stride) + uintptr(x)
	if index >= uintptr(len(fb.pixels)) {
		return ColorBlack
	}

	return Pixel(atomic.LoadUint32(&fb.pixels[index]))
}

// Clear sets every visible pixel to c. Padding between the end of a
// scanline and the start of the next one is left untouched.
func (fb *Framebuffer) Clear(c Pixel) {
	for y := uint32(0); y < fb.height; y++ {
		start := uintptr(y) * uintptr(fb.stride)
		if start >= uintptr(len(fb.pixels)) {
			return
		}

		end := start + uintptr(fb.width)
		if end > uintptr(len(fb.pixels)) {
			end = uintptr(len(fb.pixels))
		}

		kernel.Fill32(fb.pixels[start:end], uint32(c))
	}
}
