// Package report serializes scan hits in the legacy tabular format
// and, optionally, as GFF features (spec §4.7, SPEC_FULL.md §6).
package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/kortschak/epcr/scan"
)

// Sink is satisfied by both Writer and GFFWriter, letting callers
// pick a formatter without depending on either's concrete type.
type Sink interface {
	WriteAll([]scan.Hit) error
}

// Writer formats hits to an underlying sink. It is line-buffered and
// flushes after every hit so output can be piped promptly (spec
// §4.7); callers that write many hits from a single goroutine do not
// need to flush themselves.
type Writer struct {
	w *bufio.Writer
}

// NewWriter wraps sink in a line-buffered tabular Writer.
func NewWriter(sink io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(sink)}
}

// Write emits one line for h: {label}\t{pos1}..{pos2}\t{sts_id}\t
// ({strand})[\t{annotation}], the annotation field appended only when
// non-empty and preserved verbatim, including any embedded tabs (spec
// §4.7, §9).
func (w *Writer) Write(h scan.Hit) error {
	_, err := fmt.Fprintf(w.w, "%s\t%d..%d\t%s\t(%s)", h.Target, h.Start, h.End, h.STS.ID, h.Strand)
	if err != nil {
		return err
	}
	if h.STS.Annotation != "" {
		if _, err := fmt.Fprintf(w.w, "\t%s", h.STS.Annotation); err != nil {
			return err
		}
	}
	if _, err := w.w.WriteString("\n"); err != nil {
		return err
	}
	return w.w.Flush()
}

// WriteAll writes every hit in hits, in order, stopping at the first
// error.
func (w *Writer) WriteAll(hits []scan.Hit) error {
	for _, h := range hits {
		if err := w.Write(h); err != nil {
			return err
		}
	}
	return nil
}
