package main

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/mattn/go-tty"
	"golang.org/x/image/draw"
	"golang.org/x/term"

	"limgo/device/video/console"
)

var errNotATerminal = errors.New("-term requires stdout to be a terminal")

// inkThreshold is the luminance above which a terminal cell is drawn.
const inkThreshold = 0x40

// terminalArt downsamples fb to cols x rows terminal cells. Terminal cells
// are roughly twice as tall as they are wide, so each cell covers a block of
// pixels with a 1:2 aspect ratio. Lit cells are drawn with '#'.
func terminalArt(fb *console.Framebuffer, cols, rows int) []string {
	src := toRGBA(fb)
	bounds := src.Bounds()

	// Keep the aspect ratio of the framebuffer
	if fit := bounds.Dy() * cols / (bounds.Dx() * 2); fit < rows {
		rows = fit
	}
	if rows < 1 {
		rows = 1
	}

	gray := image.NewGray(image.Rect(0, 0, cols, rows))
	draw.BiLinear.Scale(gray, gray.Bounds(), src, bounds, draw.Src, nil)

	lines := make([]string, rows)
	for y := 0; y < rows; y++ {
		line := make([]byte, cols)
		for x := 0; x < cols; x++ {
			line[x] = ' '
			if gray.GrayAt(x, y).Y > inkThreshold {
				line[x] = '#'
			}
		}
		lines[y] = string(line)
	}

	return lines
}

func writeTerminalArt(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		fmt.Fprintf(bw, "%s\r\n", line)
	}
	return bw.Flush()
}

// showInTerminal draws fb scaled to the terminal size and waits for a key
// press.
func showInTerminal(fb *console.Framebuffer) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotATerminal
	}

	t, err := tty.Open()
	if err != nil {
		return err
	}
	defer t.Close()

	cols, rows, err := t.Size()
	if err != nil {
		return err
	}

	// Leave room for the prompt
	if err = writeTerminalArt(os.Stdout, terminalArt(fb, cols, rows-1)); err != nil {
		return err
	}

	fmt.Fprint(os.Stdout, "press any key to exit")
	_, err = t.ReadRune()
	fmt.Fprint(os.Stdout, "\r\n")
	return err
}
