package stsfile

import (
	"strings"
	"testing"
)

func TestLoadParsesBasicRecord(t *testing.T) {
	in := "S1\tACGTACGT\tTTTTGGGG\t200\tsample annotation\n"
	out, err := Load(strings.NewReader(in), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	s := out[0]
	if s.ID != "S1" || string(s.Primer1) != "ACGTACGT" || string(s.Primer2) != "TTTTGGGG" || s.PCRSize != 200 || s.Annotation != "sample annotation" {
		t.Fatalf("got %+v", s)
	}
}

func TestLoadSkipsCommentsAndBlankLines(t *testing.T) {
	in := "# comment\n\nS1\tACGT\tTTTT\t100\n   \n# another\nS2\tGGGG\tCCCC\t150\n"
	out, err := Load(strings.NewReader(in), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
}

func TestLoadRangeSizeUsesFlooredMidpoint(t *testing.T) {
	in := "S1\tACGT\tTTTT\t100-201\n"
	out, err := Load(strings.NewReader(in), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out[0].PCRSize != 150 {
		t.Fatalf("PCRSize = %d, want 150", out[0].PCRSize)
	}
}

func TestLoadRecordWithoutAnnotation(t *testing.T) {
	in := "S1\tACGT\tTTTT\t100\n"
	out, err := Load(strings.NewReader(in), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out[0].Annotation != "" {
		t.Fatalf("Annotation = %q, want empty", out[0].Annotation)
	}
}

func TestLoadReportsMalformedLinesAndSkipsThem(t *testing.T) {
	in := "S1\tACGT\tTTTT\t100\nbroken line with too few fields\nS2\tGGGG\tCCCC\tnot-a-number\n"
	var bad []*Error
	out, err := Load(strings.NewReader(in), func(e *Error) { bad = append(bad, e) })
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if len(bad) != 2 {
		t.Fatalf("len(bad) = %d, want 2", len(bad))
	}
	for _, e := range bad {
		if e.Error() == "" {
			t.Fatal("expected non-empty error message")
		}
	}
}

func TestLoadNilBadLineCallbackDoesNotPanic(t *testing.T) {
	in := "broken\n"
	if _, err := Load(strings.NewReader(in), nil); err != nil {
		t.Fatalf("Load: %v", err)
	}
}
