package audit

import (
	"path/filepath"
	"testing"

	"github.com/kortschak/epcr/primer"
	"github.com/kortschak/epcr/scan"
)

func testHits() []scan.Hit {
	return []scan.Hit{
		{Target: "chr2", Start: 50, End: 90, STS: &primer.STS{ID: "S2"}, Strand: scan.Plus},
		{Target: "chr1", Start: 10, End: 40, STS: &primer.STS{ID: "S1", Annotation: "marker"}, Strand: scan.Minus},
		{Target: "chr1", Start: 10, End: 40, STS: &primer.STS{ID: "S0"}, Strand: scan.Plus},
	}
}

func TestWriteAndEachRoundTripsInKeyOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	sink, err := Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := sink.Write(testHits()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer reopened.Close()

	var keys []scan.Key
	var recs []Record
	err = reopened.Each(func(k scan.Key, r Record) error {
		keys = append(keys, k)
		recs = append(recs, r)
		return nil
	})
	if err != nil {
		t.Fatalf("Each: %v", err)
	}
	if len(keys) != 3 {
		t.Fatalf("len(keys) = %d, want 3", len(keys))
	}
	// chr1 sorts before chr2; within chr1, both hits share start and
	// end, so STS id S0 sorts before S1.
	if keys[0].Target != "chr1" || keys[0].STSID != "S0" {
		t.Fatalf("keys[0] = %+v, want chr1/S0 first", keys[0])
	}
	if keys[1].Target != "chr1" || keys[1].STSID != "S1" {
		t.Fatalf("keys[1] = %+v, want chr1/S1 second", keys[1])
	}
	if keys[2].Target != "chr2" {
		t.Fatalf("keys[2] = %+v, want chr2 last", keys[2])
	}
	if recs[1].Annotation != "marker" {
		t.Fatalf("recs[1].Annotation = %q, want %q", recs[1].Annotation, "marker")
	}
}

func TestMarshalUnmarshalHitKeyRoundTrips(t *testing.T) {
	h := scan.Hit{Target: "scaffold_7", Start: 123, End: 456, STS: &primer.STS{ID: "abc"}, Strand: scan.Minus}
	k := UnmarshalHitKey(MarshalHitKey(h))
	if k != h.Key() {
		t.Fatalf("round-tripped key = %+v, want %+v", k, h.Key())
	}
}

func TestByHitKeyOrdersDistinctKeys(t *testing.T) {
	a := MarshalHitKey(scan.Hit{Target: "chr1", Start: 1, End: 10, STS: &primer.STS{ID: "x"}})
	b := MarshalHitKey(scan.Hit{Target: "chr1", Start: 2, End: 10, STS: &primer.STS{ID: "x"}})
	if ByHitKey(a, b) >= 0 {
		t.Fatal("expected a < b")
	}
	if ByHitKey(b, a) <= 0 {
		t.Fatal("expected b > a")
	}
	if ByHitKey(a, a) != 0 {
		t.Fatal("expected equal keys to compare equal")
	}
}
