package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kortschak/epcr/primer"
	"github.com/kortschak/epcr/scan"
)

func TestWriteLineFormat(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	h := scan.Hit{
		Target: "chr1",
		Start:  4,
		End:    26,
		STS:    &primer.STS{ID: "S1"},
		Strand: scan.Plus,
	}
	if err := w.Write(h); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := "chr1\t4..26\tS1\t(+)\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteIncludesAnnotationWhenPresent(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	h := scan.Hit{
		Target: "chr1",
		Start:  1,
		End:    10,
		STS:    &primer.STS{ID: "S2", Annotation: "chromosome 7 marker"},
		Strand: scan.Minus,
	}
	if err := w.Write(h); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := "chr1\t1..10\tS2\t(-)\tchromosome 7 marker\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteOmitsAnnotationWhenEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	h := scan.Hit{Target: "t", Start: 1, End: 5, STS: &primer.STS{ID: "S3"}, Strand: scan.Plus}
	if err := w.Write(h); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if strings.Count(buf.String(), "\t") != 3 {
		t.Fatalf("expected exactly 4 tab-separated fields, got %q", buf.String())
	}
}

func TestWriteAllStopsOnFirstError(t *testing.T) {
	w := NewWriter(failingWriter{})
	hits := []scan.Hit{
		{Target: "t", Start: 1, End: 5, STS: &primer.STS{ID: "S1"}},
	}
	if err := w.WriteAll(hits); err == nil {
		t.Fatal("expected an error from a failing sink")
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errWriteFailed
}

var errWriteFailed = errFixed("write failed")

type errFixed string

func (e errFixed) Error() string { return string(e) }
