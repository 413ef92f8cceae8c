package console

import "limgo/device/video/console/font"

// Dimension defines the types of dimensions that can be queried off a device.
type Dimension uint8

const (
	// Characters describes the number of characters in
	// the console depending on the currently active
	// font.
	Characters Dimension = iota

	// Pixels describes the number of pixels in the console framebuffer.
	Pixels
)

// Cursor is a text cell position. Both coordinates are zero-based and are
// not clamped to the console dimensions; the caller owns the cursor and
// passes it to every drawing call.
type Cursor struct {
	X, Y uint32
}

// The Device interface is implemented by objects that can function as system
// consoles.
type Device interface {
	// Dimensions returns the width and height of the console
	// using a particular dimension.
	Dimensions(Dimension) (uint32, uint32)

	// DefaultColors returns the default foreground and background colors
	// used by this console.
	DefaultColors() (fg, bg Pixel)

	// DrawGlyph renders the glyph for code in the cell at the cursor
	// position. The cursor is not modified.
	DrawGlyph(cur *Cursor, code uint8, fg, bg Pixel)

	// Print renders text starting at the cursor position and advances
	// the cursor. Processing stops at the first NUL byte.
	Print(cur *Cursor, text []byte, fg, bg Pixel)
}

// FontSetter is an interface implemented by console devices that
// support loadable bitmap fonts.
//
// SetFont selects a bitmap font to be used by the console.
type FontSetter interface {
	SetFont(*font.Font)
}
