package logo

var (
	// Limgo is the full size banner.
	Limgo = Banner{
		Name:  "limgo",
		Width: 27,
		Align: AlignCenter,
		Lines: []string{
			" _ _",
			"| (_)_ __ ___   __ _  ___",
			"| | | '_ ` _ \\ / _` |/ _ \\",
			"| | | | | | | | (_| | (_) |",
			"|_|_|_| |_| |_|\\__, |\\___/",
			"               |___/",
		},
	}

	// LimgoCompact is used on consoles too narrow for Limgo.
	LimgoCompact = Banner{
		Name:  "limgo-compact",
		Width: 9,
		Align: AlignCenter,
		Lines: []string{
			"[ limgo ]",
		},
	}
)

func init() {
	register(&Limgo)
	register(&LimgoCompact)
}
