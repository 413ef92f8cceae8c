package logo

import "testing"

func TestBestFit(t *testing.T) {
	defer func(origList []*Banner) {
		availableLogos = origList
	}(availableLogos)

	availableLogos = []*Banner{
		{Name: "small", Width: 10},
		{Name: "large", Width: 64},
		{Name: "medium", Width: 30},
	}

	specs := []struct {
		consW   uint32
		expName string
	}{
		{0, ""},
		{9, ""},
		{10, "small"},
		{29, "small"},
		{30, "medium"},
		{80, "large"},
		{128, "large"},
	}

	for specIndex, spec := range specs {
		got := BestFit(spec.consW)
		switch {
		case spec.expName == "" && got != nil:
			t.Errorf("[spec %d] expected no banner to fit; got %q", specIndex, got.Name)
		case spec.expName != "" && got == nil:
			t.Errorf("[spec %d] unable to find a banner", specIndex)
		case got != nil && got.Name != spec.expName:
			t.Errorf("[spec %d] expected to get banner %q; got %q", specIndex, spec.expName, got.Name)
		}
	}
}

func TestBannerColumn(t *testing.T) {
	specs := []struct {
		align     Alignment
		width     uint32
		consW     uint32
		expColumn uint32
	}{
		{AlignLeft, 27, 128, 0},
		{AlignCenter, 27, 128, 50},
		{AlignCenter, 28, 128, 50},
		{AlignRight, 27, 128, 101},
		{AlignCenter, 27, 27, 0},
		{AlignRight, 27, 10, 0},
	}

	for specIndex, spec := range specs {
		b := &Banner{Width: spec.width, Align: spec.align}
		if got := b.Column(spec.consW); got != spec.expColumn {
			t.Errorf("[spec %d] expected column %d; got %d", specIndex, spec.expColumn, got)
		}
	}
}

func TestBuiltinBanners(t *testing.T) {
	for _, b := range []*Banner{&Limgo, &LimgoCompact} {
		var maxLen uint32
		for lineIndex, line := range b.Lines {
			if uint32(len(line)) > maxLen {
				maxLen = uint32(len(line))
			}

			for i := 0; i < len(line); i++ {
				if line[i] < 0x20 || line[i] > 0x7e {
					t.Errorf("[%s] line %d contains non-printable byte 0x%x", b.Name, lineIndex, line[i])
				}
			}
		}

		if maxLen != b.Width {
			t.Errorf("[%s] expected Width to be %d; got %d", b.Name, maxLen, b.Width)
		}

		if b.Height() != uint32(len(b.Lines)) {
			t.Errorf("[%s] expected Height to be %d; got %d", b.Name, len(b.Lines), b.Height())
		}
	}

	if got := BestFit(128); got != &Limgo {
		t.Errorf("expected the full size banner on a 128 column console; got %v", got)
	}

	if got := BestFit(20); got != &LimgoCompact {
		t.Errorf("expected the compact banner on a 20 column console; got %v", got)
	}
}
