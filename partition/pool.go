package partition

import (
	"context"
	"sync"

	"github.com/kortschak/epcr/index"
	"github.com/kortschak/epcr/scan"
)

// Sink receives the hits produced by one span's scan, in span order
// of completion (not submission order — spans finish whenever their
// goroutine finishes). Returning a non-nil error cancels every span
// that has not yet started; spans already running finish their scan
// but their hits are discarded from the final result (spec §4.6, §5).
type Sink func(hits []scan.Hit) error

// Scan partitions target into Spans sized chunkSize (plus overlap)
// and scans each concurrently, at most workers at a time, merging all
// hits into a single deduplicated, deterministically ordered slice.
//
// The concurrency shape is a bounded semaphore: a span is only
// started once a slot is free, and its goroutine frees its slot on
// return, so at most workers scans run simultaneously regardless of
// how many spans there are. If workers <= 0, it is treated as 1.
func Scan(ctx context.Context, label string, target []byte, idx *index.Index, cfg scan.Config, chunkSize, overlap, workers int, sink Sink) ([]scan.Hit, error) {
	if workers <= 0 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	spans := Spans(len(target), chunkSize, overlap)
	limit := make(chan struct{}, workers)
	results := make(chan []scan.Hit, len(spans))

	var (
		wg      sync.WaitGroup
		errOnce sync.Once
		firstErr error
	)

	for _, sp := range spans {
		if ctx.Err() != nil {
			break
		}
		limit <- struct{}{}
		wg.Add(1)
		go func(sp Span) {
			defer wg.Done()
			defer func() { <-limit }()

			if ctx.Err() != nil {
				results <- nil
				return
			}
			hits := scan.Scan(nil, label, target[sp.Start:sp.End], sp.Start, idx, cfg)
			if sink != nil {
				if err := sink(hits); err != nil {
					errOnce.Do(func() { firstErr = err })
					cancel()
					results <- nil
					return
				}
			}
			results <- hits
		}(sp)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var all []scan.Hit
	for hits := range results {
		all = append(all, hits...)
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return Dedup(all), nil
}
