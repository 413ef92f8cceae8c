package console

import (
	"bytes"
	"fmt"
	"limgo/device/video/console/font"
	"limgo/kernel"
	"limgo/kernel/boot/limine"
	"reflect"
	"strings"
	"testing"
)

const (
	fg = ColorWhite
	bg = Pixel(0x0000aa)
)

// mockFont8x2 defines 256 glyphs; the first row of each glyph is the
// character code and the second row its complement.
var mockFont8x2 = func() *font.Font {
	data := make([]byte, 256*2)
	for code := 0; code < 256; code++ {
		data[code*2] = uint8(code)
		data[code*2+1] = ^uint8(code)
	}

	return &font.Font{
		Name:          "mock8x2",
		GlyphWidth:    8,
		GlyphHeight:   2,
		BytesPerRow:   1,
		BytesPerGlyph: 2,
		NumGlyphs:     256,
		Data:          data,
	}
}()

func newTestConsole(widthInCells, heightInCells uint32, f *font.Font) (*FbConsole, []uint32) {
	var (
		width  = widthInCells * f.GlyphWidth
		height = heightInCells * f.GlyphHeight
		pixels = make([]uint32, width*height)
	)

	cons := NewFbConsole(NewFramebuffer(pixels, width, height, width*4))
	cons.SetFont(f)
	return cons, pixels
}

// cellRows decodes the pixels of a text cell back into glyph row bitmaps.
func cellRows(cons *FbConsole, cellX, cellY uint32) []uint8 {
	var (
		f    = cons.Font()
		rows = make([]uint8, f.GlyphHeight)
	)

	for row := uint32(0); row < f.GlyphHeight; row++ {
		for col := uint32(0); col < f.GlyphWidth; col++ {
			if cons.fb.PixelAt(cellX*f.GlyphWidth+col, cellY*f.GlyphHeight+row) == fg {
				rows[row] |= 1 << (7 - col)
			}
		}
	}

	return rows
}

func dumpFramebuffer(fb *Framebuffer) string {
	var buf bytes.Buffer
	for y := uint32(0); y < fb.Height(); y++ {
		for x := uint32(0); x < fb.Width(); x++ {
			switch fb.PixelAt(x, y) {
			case fg:
				buf.WriteByte('#')
			case bg:
				buf.WriteByte('.')
			default:
				buf.WriteByte(' ')
			}
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}

func TestFbConsoleGlyphBitExtraction(t *testing.T) {
	f := &font.Font{
		GlyphWidth:    8,
		GlyphHeight:   1,
		BytesPerRow:   1,
		BytesPerGlyph: 1,
		NumGlyphs:     1,
		Data:          []byte{0xb0}, // 10110000
	}
	cons, _ := newTestConsole(1, 1, f)

	cons.DrawGlyph(&Cursor{}, 0, fg, bg)

	exp := []Pixel{fg, bg, fg, fg, bg, bg, bg, bg}
	for col, expColor := range exp {
		if got := cons.fb.PixelAt(uint32(col), 0); got != expColor {
			t.Errorf("expected column %d to be 0x%06x; got 0x%06x", col, expColor, got)
		}
	}
}

func TestFbConsoleDrawGlyphAtCursor(t *testing.T) {
	cons, _ := newTestConsole(2, 2, mockFont8x2)

	cur := Cursor{X: 1, Y: 1}
	cons.DrawGlyph(&cur, 0xc3, fg, bg)

	exp := "" +
		"                \n" +
		"                \n" +
		"        ##....##\n" +
		"        ..####..\n"

	if got := dumpFramebuffer(cons.fb); got != exp {
		t.Fatalf("unexpected framebuffer contents:\n%s", diffDumps(exp, got))
	}

	if cur != (Cursor{X: 1, Y: 1}) {
		t.Fatalf("expected DrawGlyph not to move the cursor; got %+v", cur)
	}
}

func TestFbConsolePrintAdvancesCursor(t *testing.T) {
	cons, _ := newTestConsole(4, 4, mockFont8x2)

	cur := Cursor{X: 2, Y: 3}
	cons.Print(&cur, []byte("x"), fg, bg)

	if exp := (Cursor{X: 3, Y: 3}); cur != exp {
		t.Fatalf("expected cursor to be at %+v; got %+v", exp, cur)
	}

	if got := cellRows(cons, 2, 3); !reflect.DeepEqual(got, []uint8{'x', ^uint8('x')}) {
		t.Fatalf("expected cell (2, 3) to contain glyph 'x'; got %v", got)
	}
}

func TestFbConsolePrintLineFeed(t *testing.T) {
	cons, _ := newTestConsole(4, 4, mockFont8x2)

	var cur Cursor
	cons.Print(&cur, []byte("A\nB"), fg, bg)

	if got := cellRows(cons, 0, 0); !reflect.DeepEqual(got, []uint8{'A', ^uint8('A')}) {
		t.Errorf("expected cell (0, 0) to contain glyph 'A'; got %v", got)
	}

	if got := cellRows(cons, 0, 1); !reflect.DeepEqual(got, []uint8{'B', ^uint8('B')}) {
		t.Errorf("expected cell (0, 1) to contain glyph 'B'; got %v", got)
	}

	if exp := (Cursor{X: 1, Y: 1}); cur != exp {
		t.Errorf("expected cursor to be at %+v; got %+v", exp, cur)
	}

	// The line feed itself draws nothing
	if got := cellRows(cons, 1, 0); !reflect.DeepEqual(got, []uint8{0, 0}) {
		t.Errorf("expected cell (1, 0) to be untouched; got %v", got)
	}
}

func TestFbConsolePrintTab(t *testing.T) {
	cons, pixels := newTestConsole(8, 2, mockFont8x2)

	cur := Cursor{X: 1, Y: 1}
	cons.Print(&cur, []byte("\t"), fg, bg)

	if exp := (Cursor{X: 7, Y: 1}); cur != exp {
		t.Fatalf("expected cursor to be at %+v; got %+v", exp, cur)
	}

	for index, got := range pixels {
		if got != 0 {
			t.Fatalf("expected tab not to write any pixels; pixel %d is 0x%x", index, got)
		}
	}
}

func TestFbConsolePrintStopsAtNUL(t *testing.T) {
	specs := []struct {
		text      string
		expCursor Cursor
		expCells  string
	}{
		{"AB\x00CD", Cursor{X: 2}, "AB"},
		{"\x00AB", Cursor{}, ""},
		{"A\x00\nB", Cursor{X: 1}, "A"},
		{"ABCD", Cursor{X: 4}, "ABCD"},
	}

	for specIndex, spec := range specs {
		cons, _ := newTestConsole(4, 2, mockFont8x2)

		var cur Cursor
		cons.Print(&cur, []byte(spec.text), fg, bg)

		if cur != spec.expCursor {
			t.Errorf("[spec %d] expected cursor to be at %+v; got %+v", specIndex, spec.expCursor, cur)
		}

		for cellX := uint32(0); cellX < 4; cellX++ {
			exp := []uint8{0, 0}
			if int(cellX) < len(spec.expCells) {
				ch := spec.expCells[cellX]
				exp = []uint8{ch, ^ch}
			}

			if got := cellRows(cons, cellX, 0); !reflect.DeepEqual(got, exp) {
				t.Errorf("[spec %d] expected cell (%d, 0) to contain %v; got %v", specIndex, cellX, exp, got)
			}
		}

		if got := cellRows(cons, 0, 1); !reflect.DeepEqual(got, []uint8{0, 0}) {
			t.Errorf("[spec %d] expected second row to be untouched; got %v", specIndex, got)
		}
	}
}

func TestFbConsolePrintPastEdges(t *testing.T) {
	cons, pixels := newTestConsole(2, 1, mockFont8x2)

	cur := Cursor{X: 1}
	cons.Print(&cur, []byte("abc\nd"), fg, bg)

	// The cursor is not wrapped; glyphs outside the framebuffer are clipped.
	if exp := (Cursor{X: 1, Y: 1}); cur != exp {
		t.Fatalf("expected cursor to be at %+v; got %+v", exp, cur)
	}

	if got := cellRows(cons, 1, 0); !reflect.DeepEqual(got, []uint8{'a', ^uint8('a')}) {
		t.Fatalf("expected cell (1, 0) to contain glyph 'a'; got %v", got)
	}

	if got := cellRows(cons, 0, 0); !reflect.DeepEqual(got, []uint8{0, 0}) {
		t.Fatalf("expected cell (0, 0) to be untouched; got %v", got)
	}

	if exp, got := 2*8*2, len(pixels); got != exp {
		t.Fatalf("expected the framebuffer to keep its size; got %d", got)
	}
}

func TestFbConsolePrintFarOffscreen(t *testing.T) {
	vga := font.FindByName("vga8x16")

	specs := []struct {
		font      *font.Font
		cur       Cursor
		expCursor Cursor
	}{
		// Cell origins that would wrap around in 32-bit pixel arithmetic
		{mockFont8x2, Cursor{X: 1 << 29}, Cursor{X: 1<<29 + 1}},
		{vga, Cursor{X: 1 << 29}, Cursor{X: 1<<29 + 1}},
		{vga, Cursor{Y: 1 << 28}, Cursor{X: 1, Y: 1 << 28}},
		{mockFont8x2, Cursor{X: 1<<29 + 1, Y: 1<<31 + 1}, Cursor{X: 1<<29 + 2, Y: 1<<31 + 1}},
		{mockFont8x2, Cursor{X: 0xffffffff}, Cursor{X: 0}},
	}

	for specIndex, spec := range specs {
		cons, pixels := newTestConsole(8, 2, spec.font)

		cur := spec.cur
		cons.Print(&cur, []byte("A"), fg, bg)

		if cur != spec.expCursor {
			t.Errorf("[spec %d] expected cursor to be at %+v; got %+v", specIndex, spec.expCursor, cur)
		}

		for index, got := range pixels {
			if got != 0 {
				t.Errorf("[spec %d] expected an off-screen glyph not to be drawn; pixel %d is 0x%x", specIndex, index, got)
				break
			}
		}
	}
}

func TestFbConsoleWithoutFont(t *testing.T) {
	pixels := make([]uint32, 8*16)
	cons := NewFbConsole(NewFramebuffer(pixels, 8, 16, 32))

	cons.SetFont(nil)

	var cur Cursor
	cons.DrawGlyph(&cur, 'A', fg, bg)
	for index, got := range pixels {
		if got != 0 {
			t.Fatalf("expected DrawGlyph without a font to be a no-op; pixel %d is 0x%x", index, got)
		}
	}

	if w, h := cons.Dimensions(Characters); w != 0 || h != 0 {
		t.Fatalf("expected console dimensions to be 0x0 before setting a font; got %dx%d", w, h)
	}
}

func TestFbConsoleDimensions(t *testing.T) {
	var cons Device = NewFbConsole(NewFramebuffer(make([]uint32, 1024*768), 1024, 768, 4096))
	cons.(FontSetter).SetFont(mockFont8x2)

	if w, h := cons.Dimensions(Characters); w != 128 || h != 384 {
		t.Fatalf("expected console character dimensions to be 128x384; got %dx%d", w, h)
	}

	if w, h := cons.Dimensions(Pixels); w != 1024 || h != 768 {
		t.Fatalf("expected console pixel dimensions to be 1024x768; got %dx%d", w, h)
	}

	if fg, bg := cons.DefaultColors(); fg != ColorWhite || bg != ColorBlack {
		t.Fatalf("expected default colors to be white on black; got 0x%06x on 0x%06x", fg, bg)
	}
}

func TestFbConsoleWithEmbeddedFont(t *testing.T) {
	f := font.FindByName("vga8x16")
	if f == nil {
		t.Fatal("expected the vga8x16 font to be available")
	}

	cons, _ := newTestConsole(2, 1, f)

	var cur Cursor
	cons.Print(&cur, []byte("A"), fg, bg)

	exp := make([]uint8, f.Height())
	for row := range exp {
		exp[row] = f.Row('A', uint32(row))
	}

	if got := cellRows(cons, 0, 0); !reflect.DeepEqual(got, exp) {
		t.Fatalf("expected cell (0, 0) to contain glyph 'A':\n%v\ngot:\n%v", exp, got)
	}
}

func TestFbConsoleDriverInit(t *testing.T) {
	defer func() {
		mapFramebufferFn = MapFramebuffer
	}()

	var (
		mappedAddr uintptr
		pixels     []uint32
	)
	mapFramebufferFn = func(addr uintptr, width, height, pitch uint32) *Framebuffer {
		mappedAddr = addr
		pixels = make([]uint32, height*pitch/4)
		for i := range pixels {
			pixels[i] = 0xffffffff
		}
		return NewFramebuffer(pixels, width, height, pitch)
	}

	validInfo := limine.FramebufferInfo{
		Address:     0xffff8000fd000000,
		Width:       16,
		Height:      4,
		Pitch:       80,
		Bpp:         32,
		MemoryModel: limine.MemoryModelRGB,
	}

	specs := []struct {
		mutate func(*limine.FramebufferInfo)
		expErr *kernel.Error
	}{
		{func(*limine.FramebufferInfo) {}, nil},
		{func(info *limine.FramebufferInfo) { info.Address = 0 }, errNoFramebufferAddress},
		{func(info *limine.FramebufferInfo) { info.Bpp = 24 }, errUnsupportedBpp},
		{func(info *limine.FramebufferInfo) { info.MemoryModel = 0 }, errUnsupportedModel},
		{func(info *limine.FramebufferInfo) { info.Pitch = 60 }, errPitchTooSmall},
	}

	for specIndex, spec := range specs {
		info := validInfo
		spec.mutate(&info)
		mappedAddr, pixels = 0, nil

		var buf bytes.Buffer
		cons := newFbConsoleFromInfo(&info)
		err := cons.DriverInit(&buf)
		if err != spec.expErr {
			t.Errorf("[spec %d] expected error %v; got %v", specIndex, spec.expErr, err)
			continue
		}

		if err != nil {
			if pixels != nil {
				t.Errorf("[spec %d] expected framebuffer not to be mapped when init fails", specIndex)
			}
			continue
		}

		if mappedAddr != info.Address {
			t.Errorf("[spec %d] expected framebuffer at 0x%x to be mapped; got 0x%x", specIndex, info.Address, mappedAddr)
		}

		if exp := "mapped framebuffer at 0xffff8000fd000000 (16x4, pitch 80)\n"; buf.String() != exp {
			t.Errorf("[spec %d] expected init log %q; got %q", specIndex, exp, buf.String())
		}

		// Visible pixels are cleared; row padding is left alone
		for index, got := range pixels {
			exp := uint32(ColorBlack)
			if index%20 >= 16 {
				exp = 0xffffffff
			}

			if got != exp {
				t.Errorf("[spec %d] expected pixel %d to be 0x%x after init; got 0x%x", specIndex, index, exp, got)
				break
			}
		}
	}
}

func TestFbConsoleDriverInitPremapped(t *testing.T) {
	cons, pixels := newTestConsole(1, 1, mockFont8x2)
	for i := range pixels {
		pixels[i] = 0xff
	}

	if err := cons.DriverInit(nil); err != nil {
		t.Fatal(err)
	}

	for index, got := range pixels {
		if got != uint32(ColorBlack) {
			t.Fatalf("expected pixel %d to be cleared; got 0x%x", index, got)
		}
	}

	if cons.DriverName() != "limine_fb_console" {
		t.Fatalf("unexpected driver name %q", cons.DriverName())
	}

	if major, minor, patch := cons.DriverVersion(); major != 0 || minor != 1 || patch != 0 {
		t.Fatalf("unexpected driver version %d.%d.%d", major, minor, patch)
	}
}

func TestProbeForFbConsole(t *testing.T) {
	defer func() {
		getFramebufferInfoFn = limine.GetFramebufferInfo
	}()

	getFramebufferInfoFn = func() *limine.FramebufferInfo { return nil }
	if drv := probeForFbConsole(); drv != nil {
		t.Fatalf("expected probe to return nil without a framebuffer; got %v", drv)
	}

	info := &limine.FramebufferInfo{Address: 0x1000, Width: 640, Height: 480, Pitch: 2560, Bpp: 32, MemoryModel: limine.MemoryModelRGB}
	getFramebufferInfoFn = func() *limine.FramebufferInfo { return info }

	drv := probeForFbConsole()
	cons, ok := drv.(*FbConsole)
	if !ok {
		t.Fatalf("expected probe to return a *FbConsole; got %T", drv)
	}

	if w, h := cons.Dimensions(Pixels); w != 640 || h != 480 {
		t.Fatalf("expected console pixel dimensions to be 640x480; got %dx%d", w, h)
	}
}

func diffDumps(exp, got string) string {
	var (
		buf      bytes.Buffer
		expLines = strings.Split(exp, "\n")
		gotLines = strings.Split(got, "\n")
	)

	for i := 0; i < len(expLines) || i < len(gotLines); i++ {
		var left, right string
		if i < len(expLines) {
			left = expLines[i]
		}
		if i < len(gotLines) {
			right = gotLines[i]
		}
		fmt.Fprintf(&buf, "%-20s | %s\n", left, right)
	}

	return buf.String()
}
