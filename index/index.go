// Package index builds and queries the k-mer hash index over a
// preprocessed STS library (spec §4.3).
package index

import "github.com/kortschak/epcr/primer"

// denseThreshold is the word size at or below which the index uses a
// dense array keyed directly by the k-mer's 2-bit value, per spec
// §4.3 ("W ≤ 13" SHOULD use a dense array). Above it, a sparse map is
// used instead; the choice is invisible to callers.
const denseThreshold = 13

// Index maps a k-mer word value in [0, 4^W) to the primer Records
// that carry it at their designated hash site, plus the list of fully
// ambiguous Records that cannot be reached by any hash value and must
// be probed at every scan position (spec §4.3, §4.5).
//
// An Index is built once from a frozen library and is safe for
// concurrent read-only use by any number of goroutines: buckets are
// never mutated after Build returns.
type Index struct {
	w int

	dense  [][]primer.Record // used when 4^w <= 4^denseThreshold
	sparse map[uint64][]primer.Record

	fallback []primer.Record
}

// WordSize returns the word size W the index was built with.
func (idx *Index) WordSize() int { return idx.w }

// Fallback returns the fully ambiguous Records that must be checked
// at every scan position regardless of the rolling hash.
func (idx *Index) Fallback() []primer.Record { return idx.fallback }

// Lookup returns the bucket of Records sharing hash value h. The
// returned slice must not be modified; it may be nil.
func (idx *Index) Lookup(h uint64) []primer.Record {
	if idx.dense != nil {
		if h >= uint64(len(idx.dense)) {
			return nil
		}
		return idx.dense[h]
	}
	return idx.sparse[h]
}

// Build constructs an Index over indexed (Records with a concrete
// hash value) and fallback (fully ambiguous Records), for k-mer width
// w. Bucket order is the order Records appear in indexed, which in
// turn preserves the loaded STS library's iteration order (spec
// §4.3), making scan output deterministic.
func Build(indexed, fallback []primer.Record, w int) *Index {
	idx := &Index{w: w, fallback: fallback}
	if w <= denseThreshold {
		idx.dense = make([][]primer.Record, uint64(1)<<uint(2*w))
		for _, r := range indexed {
			idx.dense[r.HashValue] = append(idx.dense[r.HashValue], r)
		}
		return idx
	}
	idx.sparse = make(map[uint64][]primer.Record)
	for _, r := range indexed {
		idx.sparse[r.HashValue] = append(idx.sparse[r.HashValue], r)
	}
	return idx
}
