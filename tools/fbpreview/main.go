// Command fbpreview renders the kernel's startup screen into an in-memory
// framebuffer using the same console, font and banner code the kernel runs
// and shows the result as a PNG snapshot, in the terminal or in a window.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"limgo/device/video/console"
	"limgo/device/video/console/font"
	"limgo/kernel/kmain"
)

type config struct {
	width, height, pitch uint32
	scale                int
	grid                 bool
	fontPath             string
	loaderName           string
	loaderVersion        string
	out                  string
	term                 bool
	window               bool
}

func exit(err error) {
	fmt.Fprintf(os.Stderr, "[fbpreview] error: %s\n", err.Error())
	os.Exit(1)
}

func parseFlags(args []string) (*config, error) {
	var (
		cfg                  config
		width, height, pitch uint
		fs                   = flag.NewFlagSet("fbpreview", flag.ContinueOnError)
	)

	fs.UintVar(&width, "width", 1024, "the framebuffer width in pixels")
	fs.UintVar(&height, "height", 768, "the framebuffer height in pixels")
	fs.UintVar(&pitch, "pitch", 0, "the framebuffer row pitch in bytes (0 selects width*4)")
	fs.IntVar(&cfg.scale, "scale", 1, "the integer scale factor applied to snapshots and the window")
	fs.BoolVar(&cfg.grid, "grid", false, "overlay the text cell grid on PNG snapshots")
	fs.StringVar(&cfg.fontPath, "font", "", "a PSF1/PSF2 font to use instead of the embedded one")
	fs.StringVar(&cfg.loaderName, "loader-name", "Limine", "the bootloader name shown on the startup screen")
	fs.StringVar(&cfg.loaderVersion, "loader-version", "8.0.0", "the bootloader version shown on the startup screen")
	fs.StringVar(&cfg.out, "out", "", "write a PNG snapshot to this file")
	fs.BoolVar(&cfg.term, "term", false, "draw the framebuffer in the terminal")
	fs.BoolVar(&cfg.window, "window", false, "show the framebuffer in a window")
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), "fbpreview: render the kernel startup screen on the host\n\n")
		fmt.Fprint(fs.Output(), "Usage: fbpreview [options]\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if pitch == 0 {
		pitch = width * 4
	}

	cfg.width, cfg.height, cfg.pitch = uint32(width), uint32(height), uint32(pitch)

	switch {
	case cfg.width == 0 || cfg.height == 0:
		return nil, errors.New("framebuffer dimensions must be non-zero")
	case cfg.pitch%4 != 0 || cfg.pitch < cfg.width*4:
		return nil, fmt.Errorf("pitch must be a multiple of 4 and at least %d", cfg.width*4)
	case cfg.scale < 1:
		return nil, errors.New("scale must be at least 1")
	case cfg.out == "" && !cfg.term && !cfg.window:
		return nil, errors.New("one of -out, -term or -window is required")
	}

	return &cfg, nil
}

// loadFont returns the font selected by cfg or nil to keep the console's
// default.
func loadFont(cfg *config) (*font.Font, error) {
	if cfg.fontPath == "" {
		return font.FindByName("vga8x16"), nil
	}

	data, err := os.ReadFile(cfg.fontPath)
	if err != nil {
		return nil, err
	}

	f, kerr := font.Parse(filepath.Base(cfg.fontPath), data)
	if kerr != nil {
		return nil, fmt.Errorf("%s: %w", cfg.fontPath, kerr)
	}

	return f, nil
}

// renderPreview draws the startup screen into a new framebuffer.
func renderPreview(cfg *config, f *font.Font, log io.Writer) (*console.Framebuffer, error) {
	fb := console.NewFramebuffer(make([]uint32, cfg.height*cfg.pitch/4), cfg.width, cfg.height, cfg.pitch)

	cons := console.NewFbConsole(fb)
	if kerr := cons.DriverInit(log); kerr != nil {
		return nil, kerr
	}
	cons.SetFont(f)

	if w, h := cons.Dimensions(console.Characters); w == 0 || h == 0 {
		return nil, errors.New("framebuffer is smaller than a single text cell")
	}

	var cur console.Cursor
	kmain.Render(cons, &cur, cfg.loaderName, cfg.loaderVersion)

	return fb, nil
}

func run(args []string) error {
	cfg, err := parseFlags(args)
	if err != nil {
		return err
	}

	f, err := loadFont(cfg)
	if err != nil {
		return err
	}

	fb, err := renderPreview(cfg, f, os.Stderr)
	if err != nil {
		return err
	}

	if cfg.out != "" {
		cellW, cellH := cellGrid(cfg, f)
		if err = writeSnapshot(cfg.out, fb, cfg.scale, cellW, cellH); err != nil {
			return err
		}
	}

	if cfg.term {
		if err = showInTerminal(fb); err != nil {
			return err
		}
	}

	if cfg.window {
		return showInWindow(fb, cfg.scale)
	}

	return nil
}

func cellGrid(cfg *config, f *font.Font) (int, int) {
	if !cfg.grid {
		return 0, 0
	}
	return int(f.Width()), int(f.Height())
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		exit(err)
	}
}
