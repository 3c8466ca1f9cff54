package partition

import (
	"sort"

	"github.com/kortschak/epcr/scan"
)

// Dedup removes hits sharing the same identity tuple (spec §3) — the
// same hit can legitimately be produced twice, once by each of two
// overlapping chunks — then sorts into report order: by target label,
// then start, then end, then STS id, then strand. Hits from the FWD
// and REV scan paths carry different strands, so they are never
// merged with each other.
func Dedup(hits []scan.Hit) []scan.Hit {
	seen := make(map[scan.Key]bool, len(hits))
	out := hits[:0]
	for _, h := range hits {
		k := h.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, h)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Target != b.Target {
			return a.Target < b.Target
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		if a.STS.ID != b.STS.ID {
			return a.STS.ID < b.STS.ID
		}
		return a.Strand < b.Strand
	})
	return out
}
