package kmain

import (
	"limgo/device/video/console"
	"limgo/device/video/console/logo"
	"limgo/kernel/kfmt"
)

// wrapColumn is the number of character codes printed per row by the
// character table.
const wrapColumn = 64

var (
	// codeBuf and lineFeed are shared buffers for printing single bytes
	// without allocating.
	codeBuf  [1]byte
	lineFeed = []byte{'\n'}
)

// Render prints the startup screen on cons starting at cur: the banner that
// best fits the console width, a line naming the loader (when loaderName is
// not empty) and a table of every character code from 0 to 255.
func Render(cons console.Device, cur *console.Cursor, loaderName, loaderVersion string) {
	fg, bg := cons.DefaultColors()
	w := &console.Writer{Console: cons, Cursor: cur, Fg: fg, Bg: bg}

	consW, _ := cons.Dimensions(console.Characters)
	if banner := logo.BestFit(consW); banner != nil {
		col := banner.Column(consW)
		for _, line := range banner.Lines {
			cur.X = col
			kfmt.Fprintf(w, "%s\n", line)
		}
		kfmt.Fprintf(w, "\n")
	}

	if loaderName != "" {
		kfmt.Fprintf(w, "booted by %s %s\n\n", loaderName, loaderVersion)
	}

	renderCharTable(cons, cur, fg, bg)
}

// renderCharTable prints each code through Print and starts a new row after
// every wrapColumn codes. The column count is kept separately from the
// cursor: codes that Print treats as control characters (NUL, tab and line
// feed) still count towards it.
func renderCharTable(cons console.Device, cur *console.Cursor, fg, bg console.Pixel) {
	var column uint32

	for code := 0; code < 256; code++ {
		codeBuf[0] = uint8(code)
		cons.Print(cur, codeBuf[:], fg, bg)

		if column++; column == wrapColumn {
			column = 0
			cons.Print(cur, lineFeed, fg, bg)
		}
	}
}
