package typegen

import (
	"fmt"
	"io"
	"strings"
)

// Writer wraps an io.Writer and keeps the first write error, so emitters can
// write line after line and check once.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Printf writes formatted text.
func (w *Writer) Printf(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

// Println writes formatted text followed by a newline.
func (w *Writer) Println(format string, args ...interface{}) {
	w.Printf(format+"\n", args...)
}

// Comments writes one comment line per entry with the given marker ("///", "//").
func (w *Writer) Comments(indent int, marker string, comments []string) {
	tabs := strings.Repeat("\t", indent)
	for _, c := range comments {
		w.Printf("%s%s %s\n", tabs, marker, c)
	}
}

// Err returns the first error encountered.
func (w *Writer) Err() error {
	return w.err
}
