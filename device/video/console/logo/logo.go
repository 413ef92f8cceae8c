// Package logo contains text banners that are printed at the top of a
// framebuffer console.
package logo

var (
	// The list of available banners.
	availableLogos []*Banner
)

// Alignment defines the supported horizontal alignments for a console banner.
type Alignment uint8

const (
	// AlignLeft aligns the banner to the left side of the console.
	AlignLeft Alignment = iota

	// AlignCenter aligns the banner to the center of the console.
	AlignCenter

	// AlignRight aligns the banner to the right side of the console.
	AlignRight
)

// Banner describes a block of text drawn with the console font.
type Banner struct {
	// Name identifies the banner.
	Name string

	// Width is the length of the longest line in characters.
	Width uint32

	// Align specifies the horizontal alignment for the banner.
	Align Alignment

	// Lines holds the banner text, one entry per console row. Lines must
	// not contain control characters.
	Lines []string
}

// Height returns the number of console rows occupied by the banner.
func (b *Banner) Height() uint32 {
	return uint32(len(b.Lines))
}

// Column returns the console column of the first character of each banner
// line when the banner is drawn on a console consoleWidth characters wide.
func (b *Banner) Column(consoleWidth uint32) uint32 {
	if b.Width >= consoleWidth {
		return 0
	}

	switch b.Align {
	case AlignCenter:
		return (consoleWidth - b.Width) / 2
	case AlignRight:
		return consoleWidth - b.Width
	default:
		return 0
	}
}

// BestFit returns the widest banner that fits in a console with the
// specified width in characters. If no banner fits, BestFit returns nil.
func BestFit(consoleWidth uint32) *Banner {
	var best *Banner

	for _, l := range availableLogos {
		if l.Width > consoleWidth {
			continue
		}

		if best == nil || l.Width > best.Width {
			best = l
		}
	}

	return best
}

func register(b *Banner) {
	availableLogos = append(availableLogos, b)
}
