package service

import (
	"context"
	"sync"

	"github.com/hirelens/hirelens/internal/domain/model"
)

// forEachParallel fans items out to n worker goroutines and blocks until all
// picked-up items finish. Once ctx is cancelled no further items are handed
// out; in-flight calls are expected to honor ctx themselves.
func forEachParallel[T any](ctx context.Context, n int, items []T, fn func(context.Context, T)) {
	if n < 1 {
		n = 1
	}
	if n > len(items) {
		n = len(items)
	}

	ch := make(chan T)
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range ch {
				fn(ctx, item)
			}
		}()
	}

feed:
	for _, item := range items {
		if ctx.Err() != nil {
			break
		}
		select {
		case ch <- item:
		case <-ctx.Done():
			break feed
		}
	}
	close(ch)
	wg.Wait()
}

// tracker accumulates pass statistics across workers and relays progress to
// the pass run. All methods are safe for concurrent use.
type tracker struct {
	mu        sync.Mutex
	total     int
	completed int
	stats     model.PassStats
	progress  model.ProgressFunc
}

func newTracker(total int, progress model.ProgressFunc) *tracker {
	return &tracker{total: total, progress: progress}
}

// tested records one probed seed and whether it hit.
func (t *tracker) tested(hit bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stats.Tested++
	if hit {
		t.stats.Hits++
	}
}

// jobs records reconcile deltas for one company.
func (t *tracker) jobs(added, closed int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stats.JobsAdded += added
	t.stats.JobsClosed += closed
}

// failed records one non-fatal error.
func (t *tracker) failed() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stats.Errors++
}

// done marks one work item complete and reports progress.
func (t *tracker) done() {
	t.mu.Lock()
	t.completed++
	progress := float64(t.completed) / float64(t.total)
	stats := t.stats
	fn := t.progress
	t.mu.Unlock()

	if fn != nil {
		fn(progress, stats)
	}
}

// snapshot returns the accumulated stats.
func (t *tracker) snapshot() model.PassStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}
