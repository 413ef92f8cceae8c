package console

import (
	"io"
	"limgo/device"
	"limgo/device/video/console/font"
	"limgo/kernel"
	"limgo/kernel/boot/limine"
	"limgo/kernel/kfmt"
)

// tabWidth is the number of cells a tab character advances the cursor by.
const tabWidth = 6

var (
	errNoFramebufferAddress = &kernel.Error{Module: "fb_console", Message: "framebuffer address is not set"}
	errUnsupportedBpp       = &kernel.Error{Module: "fb_console", Message: "only 32bpp framebuffers are supported"}
	errPitchTooSmall        = &kernel.Error{Module: "fb_console", Message: "framebuffer pitch is smaller than a row of pixels"}
	errUnsupportedModel     = &kernel.Error{Module: "fb_console", Message: "framebuffer memory model is not RGB"}
)

// FbConsole is a text console that renders bitmap font glyphs into a 32bpp
// linear framebuffer. Text cells have the dimensions of the active font's
// glyphs. The console holds no cursor state; callers supply a Cursor to every
// drawing call.
type FbConsole struct {
	fb   *Framebuffer
	font *font.Font

	// Framebuffer description used by DriverInit to map the display
	// memory when the console was created from the boot protocol.
	fbAddr      uintptr
	width       uint32
	height      uint32
	pitch       uint32
	bpp         uint16
	memoryModel uint8

	defaultFg Pixel
	defaultBg Pixel
}

// NewFbConsole returns a console that renders into an already mapped
// framebuffer.
func NewFbConsole(fb *Framebuffer) *FbConsole {
	return &FbConsole{
		fb:          fb,
		width:       fb.Width(),
		height:      fb.Height(),
		pitch:       fb.Stride() * bytesPerPixel,
		bpp:         32,
		memoryModel: limine.MemoryModelRGB,
		defaultFg:   ColorWhite,
		defaultBg:   ColorBlack,
	}
}

// newFbConsoleFromInfo returns a console for the framebuffer described by
// the loader. The framebuffer is mapped by DriverInit.
func newFbConsoleFromInfo(info *limine.FramebufferInfo) *FbConsole {
	return &FbConsole{
		fbAddr:      info.Address,
		width:       uint32(info.Width),
		height:      uint32(info.Height),
		pitch:       uint32(info.Pitch),
		bpp:         info.Bpp,
		memoryModel: info.MemoryModel,
		defaultFg:   ColorWhite,
		defaultBg:   ColorBlack,
	}
}

// SetFont selects a bitmap font to be used by the console.
func (cons *FbConsole) SetFont(f *font.Font) {
	if f == nil {
		return
	}

	cons.font = f
}

// Font returns the active font.
func (cons *FbConsole) Font() *font.Font {
	return cons.font
}

// Framebuffer returns the framebuffer the console renders into.
func (cons *FbConsole) Framebuffer() *Framebuffer {
	return cons.fb
}

// Dimensions returns the console width and height in the specified dimension.
func (cons *FbConsole) Dimensions(dim Dimension) (uint32, uint32) {
	switch dim {
	case Characters:
		if cons.font == nil {
			return 0, 0
		}
		return cons.width / cons.font.Width(), cons.height / cons.font.Height()
	default:
		return cons.width, cons.height
	}
}

// DefaultColors returns the default foreground and background colors
// used by this console.
func (cons *FbConsole) DefaultColors() (fg, bg Pixel) {
	return cons.defaultFg, cons.defaultBg
}

// DrawGlyph renders the glyph for code into the cell at the cursor position.
// Each glyph row is decoded MSB first: a set bit selects fg and a clear bit
// selects bg. The cursor is not advanced.
func (cons *FbConsole) DrawGlyph(cur *Cursor, code uint8, fg, bg Pixel) {
	if cons.font == nil || cons.fb == nil {
		return
	}

	var (
		glyphW = cons.font.Width()
		glyphH = cons.font.Height()
		color  Pixel
	)

	// The cursor is unbounded; cells that start outside the framebuffer
	// are dropped before the pixel offsets can overflow.
	cellX := uint64(cur.X) * uint64(glyphW)
	cellY := uint64(cur.Y) * uint64(glyphH)
	if cellX >= uint64(cons.fb.Width()) || cellY >= uint64(cons.fb.Height()) {
		return
	}

	pX, pY := uint32(cellX), uint32(cellY)

	for row := uint32(0); row < glyphH; row++ {
		rowData := cons.font.Row(uint32(code), row)
		for col := uint32(0); col < glyphW; col++ {
			if (rowData>>(7-col))&1 != 0 {
				color = fg
			} else {
				color = bg
			}

			cons.fb.Plot(pX+col, pY+row, color)
		}
	}
}

// Print renders text starting at the cursor position. A NUL byte ends
// processing, '\n' moves the cursor to the start of the next row and '\t'
// advances it by tabWidth cells; neither draws anything. Every other byte is
// drawn with DrawGlyph and advances the cursor by one cell.
//
// The cursor is never wrapped or clamped to the console dimensions; glyphs
// that fall outside the framebuffer are clipped.
func (cons *FbConsole) Print(cur *Cursor, text []byte, fg, bg Pixel) {
	for _, ch := range text {
		switch ch {
		case 0:
			return
		case '\n':
			cur.Y++
			cur.X = 0
		case '\t':
			cur.X += tabWidth
		default:
			cons.DrawGlyph(cur, ch, fg, bg)
			cur.X++
		}
	}
}

// DriverName returns the name of this driver.
func (cons *FbConsole) DriverName() string {
	return "limine_fb_console"
}

// DriverVersion returns the version of this driver.
func (cons *FbConsole) DriverVersion() (uint16, uint16, uint16) {
	return 0, 1, 0
}

// DriverInit validates the framebuffer description, maps the display memory
// (unless the console was created on top of a mapped framebuffer) and clears
// it to the default background color.
func (cons *FbConsole) DriverInit(w io.Writer) *kernel.Error {
	switch {
	case cons.fb == nil && cons.fbAddr == 0:
		return errNoFramebufferAddress
	case cons.bpp != 32:
		return errUnsupportedBpp
	case cons.memoryModel != limine.MemoryModelRGB:
		return errUnsupportedModel
	case cons.pitch < cons.width*bytesPerPixel:
		return errPitchTooSmall
	}

	if cons.fb == nil {
		cons.fb = mapFramebufferFn(cons.fbAddr, cons.width, cons.height, cons.pitch)
		kfmt.Fprintf(w, "mapped framebuffer at 0x%x (%dx%d, pitch %d)\n", cons.fbAddr, cons.width, cons.height, cons.pitch)
	}

	cons.fb.Clear(cons.defaultBg)
	return nil
}

// probeForFbConsole returns a console driver for the first framebuffer
// reported by the loader.
func probeForFbConsole() device.Driver {
	info := getFramebufferInfoFn()
	if info == nil {
		return nil
	}

	return newFbConsoleFromInfo(info)
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Order: device.DetectOrderConsole,
		Probe: probeForFbConsole,
	})
}
