// Package partition divides a target sequence into overlapping chunks
// and scans them concurrently, merging the results into a single
// deterministic hit list (spec §4.6).
package partition

// Span is a half-open [Start,End) byte range of a target sequence
// assigned to one worker.
type Span struct {
	Start, End int
}

// Spans divides a sequence of length n into chunks of approximately
// size bytes, each extended by overlap bytes into the following
// chunk, so a hit straddling a chunk boundary is found whole by
// whichever chunk contains its entire span. overlap should be at
// least the longest amplicon span (PCR size plus margin) the STS
// library can produce, so no hit is missed at a boundary (spec §4.6).
//
// If size is non-positive or already covers the whole sequence,
// Spans returns a single Span covering it entirely — the degenerate,
// unpartitioned case used for small targets or a worker count of 1.
func Spans(n, size, overlap int) []Span {
	if n <= 0 {
		return nil
	}
	if size <= 0 || size >= n {
		return []Span{{0, n}}
	}
	var spans []Span
	for start := 0; start < n; start += size {
		end := start + size + overlap
		if end > n {
			end = n
		}
		spans = append(spans, Span{start, end})
		if end == n {
			break
		}
	}
	return spans
}
