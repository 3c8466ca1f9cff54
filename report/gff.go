package report

import (
	"io"

	"github.com/biogo/biogo/io/featio/gff"
	"github.com/biogo/biogo/seq"

	"github.com/kortschak/epcr/scan"
)

// GFFWriter formats hits as GFF features, mirroring the teacher's
// repeat-annotation GFF output (cmd/ins/main.go): an STS hit becomes
// a "STS" feature spanning h.Start..h.End, with the STS id and its
// annotation carried in a single Note attribute.
type GFFWriter struct {
	enc *gff.Writer
}

// NewGFFWriter wraps sink in a GFFWriter. width is the GFF header's
// wrap width, matching gff.NewWriter's signature.
func NewGFFWriter(sink io.Writer, width int) *GFFWriter {
	return &GFFWriter{enc: gff.NewWriter(sink, width, true)}
}

// Write emits h as one GFF feature.
func (w *GFFWriter) Write(h scan.Hit) error {
	note := h.STS.ID
	if h.STS.Annotation != "" {
		note = h.STS.ID + " " + h.STS.Annotation
	}
	_, err := w.enc.Write(&gff.Feature{
		SeqName:    h.Target,
		Source:     "epcr",
		Feature:    "STS",
		FeatStart:  h.Start,
		FeatEnd:    h.End,
		FeatFrame:  gff.NoFrame,
		FeatStrand: gffStrand(h.Strand),
		FeatAttributes: gff.Attributes{{
			Tag:   "Note",
			Value: note,
		}},
	})
	return err
}

// WriteAll writes every hit in hits, in order, stopping at the first
// error.
func (w *GFFWriter) WriteAll(hits []scan.Hit) error {
	for _, h := range hits {
		if err := w.Write(h); err != nil {
			return err
		}
	}
	return nil
}

// gffStrand follows cmd/ins/main.go's own convention of casting a
// signed strand value straight into seq.Strand rather than naming
// constants that package doesn't appear to export.
func gffStrand(s scan.Strand) seq.Strand {
	if s == scan.Minus {
		return seq.Strand(-1)
	}
	return seq.Strand(1)
}
