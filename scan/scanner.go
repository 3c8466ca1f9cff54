// Package scan implements the rolling-hash target scanner that probes
// a preprocessed STS index against raw target bytes (spec §4.5).
package scan

import (
	"github.com/kortschak/epcr/compare"
	"github.com/kortschak/epcr/index"
	"github.com/kortschak/epcr/nucleic"
	"github.com/kortschak/epcr/primer"
)

// Config holds the scan-relevant subset of the engine's tunable
// policy (spec §6). The word size W is not part of Config: it is
// fixed by the Index passed to Scan.
type Config struct {
	Margin     int // M, tolerance around an STS's declared PCR size
	Mismatches int // N
	Protect    int // X
	IUPAC      bool
}

func (c Config) compareConfig() compare.Config {
	return compare.Config{Mismatches: c.Mismatches, Protect: c.Protect, IUPAC: c.IUPAC}
}

// Scan walks target against idx and appends every verified hit to
// dst, returning the grown slice so callers can reuse a buffer across
// many calls. base is added to every 0-based position before hits are
// reported, letting callers scan a partition of a larger sequence and
// have hits land in the parent's coordinate system (spec §4.6).
//
// Scan performs a single left-to-right pass maintaining a rolling
// 2-bit-per-base hash of the trailing W bases, alongside a run
// counter of consecutive unambiguous bases; a position is hashable
// once that run reaches W. Fallback (fully ambiguous) records are
// probed at every position regardless of hashability (spec §4.3).
//
// Scan never mutates target or idx.
func Scan(dst []Hit, label string, target []byte, base int, idx *index.Index, cfg Config) []Hit {
	w := idx.WordSize()
	if len(target) < w {
		return dst
	}
	ccfg := cfg.compareConfig()

	mask := uint64(1)<<uint(2*w) - 1
	var h uint64
	validRun := 0

	fallback := idx.Fallback()

	for p := 0; p < len(target); p++ {
		for _, r := range fallback {
			dst = verify(dst, label, target, base, p, r, cfg.Margin, ccfg)
		}

		c := nucleic.Code2(target[p])
		if c == nucleic.Invalid {
			validRun = 0
			h = 0
			continue
		}
		h = ((h << 2) | uint64(c)) & mask
		validRun++
		if validRun < w {
			continue
		}

		for _, r := range idx.Lookup(h) {
			// the hashed window sits at r.HashOffset within Primary,
			// not necessarily at its start.
			anchor := p - w + 1 - r.HashOffset
			dst = verify(dst, label, target, base, anchor, r, cfg.Margin, ccfg)
		}
	}
	return dst
}

// verify runs the primary/partner verification for one candidate
// Record anchored at target position anchor (0-based start of
// Record.Primary), appending a Hit to dst for every partner match
// found within the margin window (spec §4.5 steps 1-4).
func verify(dst []Hit, label string, target []byte, base, anchor int, r primer.Record, margin int, ccfg compare.Config) []Hit {
	primaryLen := len(r.Primary)
	if anchor < 0 || anchor+primaryLen > len(target) {
		return dst
	}

	primaryDir := compare.FWD
	if r.Orientation == primer.REV {
		primaryDir = compare.REV
	}
	if !compare.Compare(r.Primary, target[anchor:anchor+primaryLen], primaryDir, ccfg) {
		return dst
	}

	partnerLen := len(r.Partner)
	partnerDir := primaryDir.Opposite()
	size := r.STS.PCRSize

	var lo, hi int
	if r.Orientation == primer.FWD {
		lo = anchor + size - margin - partnerLen
		hi = anchor + size + margin - partnerLen
	} else {
		lo = anchor + primaryLen - size - margin
		hi = anchor + primaryLen - size + margin
	}

	for ps := lo; ps <= hi; ps++ {
		if ps < 0 || ps+partnerLen > len(target) {
			continue
		}
		if !compare.Compare(r.Partner, target[ps:ps+partnerLen], partnerDir, ccfg) {
			continue
		}
		dst = append(dst, hitFor(label, base, anchor, primaryLen, ps, partnerLen, r))
	}
	return dst
}

func hitFor(label string, base, anchor, primaryLen, ps, partnerLen int, r primer.Record) Hit {
	var start, end int
	if r.Orientation == primer.FWD {
		start = anchor
		end = ps + partnerLen - 1
	} else {
		start = ps
		end = anchor + primaryLen - 1
	}
	strand := Plus
	if r.Orientation == primer.REV {
		strand = Minus
	}
	return Hit{
		Target: label,
		Start:  base + start + 1,
		End:    base + end + 1,
		STS:    r.STS,
		Strand: strand,
	}
}
