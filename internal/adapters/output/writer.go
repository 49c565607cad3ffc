// Package output provides adapters for writing application output.
package output

import (
	"fmt"
	"io"
	"os"
)

// Writer writes the composed release-notes document to the configured
// output destination. By default, it writes to stdout.
type Writer struct {
	out io.Writer
}

// NewWriter creates a new Writer that writes to stdout.
func NewWriter() *Writer {
	return &Writer{out: os.Stdout}
}

// NewWriterWithOutput creates a new Writer with a custom output destination.
// This is useful for testing.
func NewWriterWithOutput(out io.Writer) *Writer {
	return &Writer{out: out}
}

// WriteDocument writes the complete document in a single call, with no
// framing added. Callers only invoke this after composition has fully
// succeeded, so output is all-or-nothing.
func (w *Writer) WriteDocument(doc string) error {
	_, err := fmt.Fprint(w.out, doc)
	return err
}
