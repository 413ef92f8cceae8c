package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"go/format"
	"image"
	"os"
	"strings"

	"golang.org/x/image/draw"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// cellAspect is the height/width ratio of a console text cell (8x16 glyphs).
const cellAspect = 2

func exit(err error) {
	fmt.Fprintf(os.Stderr, "[makelogo] error: %s\n", err.Error())
	os.Exit(1)
}

// rasterize scales img so that it is cols characters wide and maps every
// cell to ink when its luminance is below threshold. Trailing blanks are
// trimmed from each line.
func rasterize(img image.Image, cols int, threshold uint8, ink byte) ([]string, error) {
	bounds := img.Bounds()
	if cols <= 0 || bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, errors.New("image and banner dimensions must be non-zero")
	}

	rows := (bounds.Dy()*cols + bounds.Dx()*cellAspect/2) / (bounds.Dx() * cellAspect)
	if rows == 0 {
		rows = 1
	}

	scaled := image.NewGray(image.Rect(0, 0, cols, rows))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, bounds, draw.Src, nil)

	lines := make([]string, rows)
	for y := 0; y < rows; y++ {
		line := make([]byte, cols)
		for x := 0; x < cols; x++ {
			line[x] = ' '
			if scaled.GrayAt(x, y).Y < threshold {
				line[x] = ink
			}
		}
		lines[y] = strings.TrimRight(string(line), " ")
	}

	// Drop blank rows at the top and bottom
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	if len(lines) == 0 {
		return nil, errors.New("image does not contain any pixels darker than the threshold")
	}

	return lines, nil
}

func genLogoFile(lines []string, logoVar, name, align string) ([]byte, error) {
	var (
		buf   bytes.Buffer
		width int
	)

	for _, line := range lines {
		if len(line) > width {
			width = len(line)
		}
	}

	fmt.Fprint(&buf, "// Code generated by makelogo; DO NOT EDIT.\n\npackage logo\n\n")
	fmt.Fprintf(&buf, "var %s = Banner{\nName: %q,\nWidth: %d,\nAlign: %s,\nLines: []string{\n", logoVar, name, width, align)
	for _, line := range lines {
		fmt.Fprintf(&buf, "%q,\n", line)
	}
	fmt.Fprint(&buf, "},\n}\n\n")
	fmt.Fprintf(&buf, "func init() {\nregister(&%s)\n}\n", logoVar)

	return format.Source(buf.Bytes())
}

func parseAlign(align string) (string, error) {
	switch align {
	case "left":
		return "AlignLeft", nil
	case "center":
		return "AlignCenter", nil
	case "right":
		return "AlignRight", nil
	default:
		return "", errors.New("invalid alignment specification; supported values are: left, center or right")
	}
}

func runTool() error {
	cols := flag.Int("cols", 40, "the banner width in console columns")
	threshold := flag.Uint("threshold", 128, "pixels with a luminance below this value are drawn")
	ink := flag.String("ink", "#", "the character used for drawn cells")
	logoVar := flag.String("var-name", "Logo", "the name of the variable containing the banner")
	name := flag.String("name", "logo", "the banner name")
	align := flag.String("align", "center", "the horizontal alignment for the banner (left, center or right)")
	output := flag.String("out", "-", "a file to write the generated banner or - to output to STDOUT")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, "makelogo: convert a png/jpg or gif image to a console text banner\n\n")
		fmt.Fprint(os.Stderr, "Usage: makelogo [options] image\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		return errors.New("missing image file argument")
	}

	if len(*ink) != 1 || (*ink)[0] < 0x21 || (*ink)[0] > 0x7e {
		return errors.New("ink must be a single printable character")
	}

	alignConst, err := parseAlign(*align)
	if err != nil {
		return err
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return err
	}

	lines, err := rasterize(img, *cols, uint8(*threshold), (*ink)[0])
	if err != nil {
		return err
	}

	src, err := genLogoFile(lines, *logoVar, *name, alignConst)
	if err != nil {
		return err
	}

	if *output == "-" {
		_, err = os.Stdout.Write(src)
		return err
	}

	return os.WriteFile(*output, src, 0o644)
}

func main() {
	if err := runTool(); err != nil {
		exit(err)
	}
}
