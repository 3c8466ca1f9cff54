package engine

import (
	"context"
	"io"
	"log"

	"github.com/kortschak/epcr/audit"
	"github.com/kortschak/epcr/index"
	"github.com/kortschak/epcr/partition"
	"github.com/kortschak/epcr/primer"
	"github.com/kortschak/epcr/report"
	"github.com/kortschak/epcr/scan"
)

// Engine holds a frozen, preprocessed STS library ready to search any
// number of targets (spec §6: "The engine is stateless across
// invocations" — a frozen Engine may be reused concurrently across
// independent Search calls).
type Engine struct {
	cfg     Config
	idx     *index.Index
	overlap int
}

// New builds an Engine over lib under cfg. Any STS omitting its
// amplicon size is defaulted to cfg.DefaultPCRSize in place. If cfg is
// out of range, or any loaded primer is shorter than cfg.WordSize, New
// returns a *ConfigError before building anything; it also returns one
// if no STS yields an indexed or fallback record.
func New(cfg Config, lib []*primer.STS) (*Engine, error) {
	for _, s := range lib {
		if s.PCRSize <= 0 {
			s.PCRSize = cfg.DefaultPCRSize
		}
	}

	minLen := shortestPrimerLen(lib)
	if err := cfg.Validate(minLen); err != nil {
		return nil, err
	}

	indexed, fallback, rejected := primer.Preprocess(lib, cfg.WordSize)
	for _, s := range rejected {
		log.Printf("engine: degenerate primer pair for %s shorter than word size %d: excluded", s.ID, cfg.WordSize)
	}
	if len(indexed) == 0 && len(fallback) == 0 {
		return nil, &ConfigError{Option: "STS library", Detail: "no valid records loaded"}
	}

	return &Engine{
		cfg:     cfg,
		idx:     index.Build(indexed, fallback, cfg.WordSize),
		overlap: libOverlap(lib, cfg.Margin),
	}, nil
}

func shortestPrimerLen(lib []*primer.STS) int {
	min := 0
	for _, s := range lib {
		for _, n := range [2]int{len(s.Primer1), len(s.Primer2)} {
			if min == 0 || n < min {
				min = n
			}
		}
	}
	return min
}

// libOverlap derives the partition overlap from the loaded library and
// the configured margin: the largest span any STS could need verified
// across a chunk boundary is its declared PCR size plus the margin
// tolerance plus its longer primer (spec §4.6 — "computed once from
// the library"). Using a library-derived overlap rather than a fixed
// constant is what keeps the hit multiset identical regardless of
// worker count (spec §8.4).
func libOverlap(lib []*primer.STS, margin int) int {
	overlap := 0
	for _, s := range lib {
		primerLen := len(s.Primer1)
		if len(s.Primer2) > primerLen {
			primerLen = len(s.Primer2)
		}
		if n := s.PCRSize + margin + primerLen; n > overlap {
			overlap = n
		}
	}
	return overlap
}

// Search scans target (labelled label) against the engine's index,
// persisting every hit to audit (if non-nil) as it is produced and
// writing the final, deduplicated, deterministically ordered hit set
// to out once every partition worker has finished. The choice between
// GFF and native tabular formatting is made by out itself (see
// Config.Writer).
//
// An error from either sink propagates as an *OutputError. An audit
// error cancels the partition spans not yet started (spec §7); out is
// only written after scanning has completed.
func (e *Engine) Search(ctx context.Context, label string, target []byte, out report.Sink, auditSink *audit.Sink) ([]scan.Hit, error) {
	scfg := scan.Config{
		Margin:     e.cfg.Margin,
		Mismatches: e.cfg.Mismatches,
		Protect:    e.cfg.Protect,
		IUPAC:      e.cfg.IUPAC,
	}
	workers := e.cfg.effectiveThreads(len(target))

	var sink partition.Sink
	if auditSink != nil {
		sink = func(hits []scan.Hit) error {
			if err := auditSink.Write(hits); err != nil {
				return &OutputError{Err: err}
			}
			return nil
		}
	}

	hits, err := partition.Scan(ctx, label, target, e.idx, scfg, e.cfg.ChunkSize, e.overlap, workers, sink)
	if err != nil {
		return nil, err
	}

	if out != nil {
		if err := out.WriteAll(hits); err != nil {
			return hits, &OutputError{Err: err}
		}
	}
	return hits, nil
}

// Writer returns either a GFF or native tabular report writer for
// sink, according to cfg.GFF.
func (cfg Config) Writer(sink io.Writer) report.Sink {
	if cfg.GFF {
		return report.NewGFFWriter(sink, 0)
	}
	return report.NewWriter(sink)
}
