package partition

import "testing"

func TestSpansDegenerateSmallSequence(t *testing.T) {
	spans := Spans(50, 0, 10)
	if len(spans) != 1 || spans[0] != (Span{0, 50}) {
		t.Fatalf("Spans(50,0,10) = %v, want single full span", spans)
	}
	spans = Spans(50, 100, 10)
	if len(spans) != 1 || spans[0] != (Span{0, 50}) {
		t.Fatalf("Spans(50,100,10) = %v, want single full span", spans)
	}
}

func TestSpansCoverWithOverlap(t *testing.T) {
	spans := Spans(100, 30, 5)
	if len(spans) == 0 {
		t.Fatal("expected at least one span")
	}
	if spans[0].Start != 0 {
		t.Fatalf("first span should start at 0, got %d", spans[0].Start)
	}
	if spans[len(spans)-1].End != 100 {
		t.Fatalf("last span should end at 100, got %d", spans[len(spans)-1].End)
	}
	for i := 1; i < len(spans); i++ {
		if spans[i].Start >= spans[i-1].End {
			t.Fatalf("span %d starts at %d, not overlapping previous span ending %d", i, spans[i].Start, spans[i-1].End)
		}
		want := spans[i-1].Start + 30
		if spans[i].Start != want {
			t.Fatalf("span %d starts at %d, want %d", i, spans[i].Start, want)
		}
	}
}

func TestSpansEmptySequence(t *testing.T) {
	if spans := Spans(0, 10, 5); spans != nil {
		t.Fatalf("Spans(0,...) = %v, want nil", spans)
	}
}
