package engine

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/kortschak/epcr/primer"
	"github.com/kortschak/epcr/scan"
)

func baseConfig() Config {
	return Config{
		WordSize:       4,
		Margin:         0,
		Mismatches:     0,
		Protect:        0,
		DefaultPCRSize: 20,
		Threads:        1,
		ChunkSize:      0,
	}
}

func TestNewRejectsOutOfRangeConfig(t *testing.T) {
	lib := []*primer.STS{{ID: "S1", Primer1: []byte("AAACCCGG"), Primer2: []byte("TTTGGGCC"), PCRSize: 20}}
	cfg := baseConfig()
	cfg.WordSize = 20
	if _, err := New(cfg, lib); err == nil {
		t.Fatal("expected a ConfigError for out-of-range word size")
	} else if _, ok := err.(*ConfigError); !ok {
		t.Fatalf("err = %T, want *ConfigError", err)
	}
}

func TestNewRejectsWordSizeExceedingShortestPrimer(t *testing.T) {
	lib := []*primer.STS{{ID: "S1", Primer1: []byte("AAA"), Primer2: []byte("TTTGGGCC"), PCRSize: 20}}
	cfg := baseConfig()
	cfg.WordSize = 4
	if _, err := New(cfg, lib); err == nil {
		t.Fatal("expected a ConfigError: word size exceeds shortest primer")
	}
}

func TestNewDefaultsMissingPCRSize(t *testing.T) {
	lib := []*primer.STS{{ID: "S1", Primer1: []byte("AAACCCGG"), Primer2: []byte("TTTGGGCC")}}
	cfg := baseConfig()
	if _, err := New(cfg, lib); err != nil {
		t.Fatalf("New: %v", err)
	}
	if lib[0].PCRSize != cfg.DefaultPCRSize {
		t.Fatalf("PCRSize = %d, want default %d", lib[0].PCRSize, cfg.DefaultPCRSize)
	}
}

func TestNewRejectsEmptyLibrary(t *testing.T) {
	if _, err := New(baseConfig(), nil); err == nil {
		t.Fatal("expected a ConfigError for an empty library")
	}
}

func TestNewDerivesOverlapFromLibraryAndMargin(t *testing.T) {
	lib := []*primer.STS{
		{ID: "S1", Primer1: []byte("AAACCCGG"), Primer2: []byte("TTTGGGCC"), PCRSize: 100},
		{ID: "S2", Primer1: []byte("AAAACCCC"), Primer2: []byte("GGGGGTTTTT"), PCRSize: 500},
	}
	cfg := baseConfig()
	cfg.Margin = 10
	e, err := New(cfg, lib)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// S2 dominates: PCRSize 500 + margin 10 + longest primer (10) = 520.
	want := 520
	if e.overlap != want {
		t.Fatalf("overlap = %d, want %d", e.overlap, want)
	}
}

func TestSearchWritesFormattedHits(t *testing.T) {
	s := &primer.STS{ID: "S1", Primer1: []byte("AAACCCGG"), Primer2: []byte("TTTGGGCC"), PCRSize: 20}
	lib := []*primer.STS{s}
	e, err := New(baseConfig(), lib)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	target := []byte("NNNNNNNNNN" + "AAACCCGG" + "TTTT" + "GGCCCAAA" + "NNNNNNNNNN")
	var buf bytes.Buffer
	out := e.cfg.Writer(&buf)
	hits, err := e.Search(context.Background(), "t", target, out, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("expected at least one hit")
	}
	if buf.Len() == 0 {
		t.Fatal("expected formatted output to be written")
	}
}

type erroringSink struct{}

func (erroringSink) WriteAll(hits []scan.Hit) error {
	return errBoom
}

var errBoom = errors.New("boom")

func TestSearchPropagatesOutputErrorAsOutputError(t *testing.T) {
	s := &primer.STS{ID: "S1", Primer1: []byte("AAACCCGG"), Primer2: []byte("TTTGGGCC"), PCRSize: 20}
	e, err := New(baseConfig(), []*primer.STS{s})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	target := []byte("AAACCCGG" + "TTTT" + "GGCCCAAA")
	_, err = e.Search(context.Background(), "t", target, erroringSink{}, nil)
	if err == nil {
		t.Fatal("expected an error from a failing sink")
	}
	if _, ok := err.(*OutputError); !ok {
		t.Fatalf("err = %T, want *OutputError", err)
	}
}
