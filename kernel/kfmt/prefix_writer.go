package kfmt

import "io"

// PrefixWriter is an io.Writer that wraps another io.Writer and injects a
// prefix at the beginning of each line. The HAL uses it to tag driver
// initialization output with the driver name and version.
type PrefixWriter struct {
	// A writer where all writes get sent to. If nil, output is captured
	// by the early print buffer like Printf output.
	Sink io.Writer

	// The prefix injected at the beginning of each line.
	Prefix []byte

	// midLine is set when the last write did not end with a line feed.
	midLine bool
}

// Write writes len(p) bytes from p to the underlying data stream and returns
// back the number of bytes written. The injected prefixes are not included in
// the returned byte count.
func (w *PrefixWriter) Write(p []byte) (int, error) {
	var written, start int

	for i := 0; i < len(p); i++ {
		if p[i] != '\n' {
			continue
		}

		n, err := w.writeLine(p[start : i+1])
		written += n
		if err != nil {
			return written, err
		}
		w.midLine = false
		start = i + 1
	}

	if start < len(p) {
		n, err := w.writeLine(p[start:])
		written += n
		w.midLine = true
		if err != nil {
			return written, err
		}
	}

	return written, nil
}

// writeLine emits the prefix (unless a line is already in progress) followed
// by a chunk that contains at most one line feed at its end.
func (w *PrefixWriter) writeLine(chunk []byte) (int, error) {
	if !w.midLine {
		doWrite(w.Sink, w.Prefix)
	}

	if w.Sink == nil {
		return earlyPrintBuffer.Write(chunk)
	}
	return w.Sink.Write(chunk)
}
