package console

// Writer adapts a console Device to io.Writer so formatted output (e.g. from
// kfmt.Fprintf) can be rendered at a cursor. Writes always report the full
// length of p even if a NUL byte stops rendering early.
type Writer struct {
	Console Device
	Cursor  *Cursor
	Fg, Bg  Pixel
}

// Write renders p at the writer's cursor.
func (w *Writer) Write(p []byte) (int, error) {
	w.Console.Print(w.Cursor, p, w.Fg, w.Bg)
	return len(p), nil
}
