package core

import (
	"errors"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/panjf2000/ants/v2"
)

// ErrEmptyBatch is returned when a batch has no sources or no
// destinations. Individual unreachable sources are not errors.
var ErrEmptyBatch = errors.New("batch needs at least one source and one destination")

// BatchStats summarises one batch run. Bounded counts searches that hit
// the MaxHops budget without reaching a destination, which diagnostics
// must keep distinguishable from plain unreachability.
type BatchStats struct {
	Completed int
	Reachable int
	Bounded   int
}

// BatchOptions tunes a ShortestPaths run. The zero value picks one
// worker per CPU, no progress logging and a discarded logger.
type BatchOptions struct {
	// Workers caps the number of concurrent searches. Defaults to
	// runtime.NumCPU().
	Workers int
	// ProgressEvery logs a progress line every n completed queries.
	// Zero disables progress logging.
	ProgressEvery int
	Log           *slog.Logger
}

// ShortestPaths runs an independent ShortestPath query for every source
// against the same destination set, on a fixed-size worker pool sharing
// the read-only graph. The i-th result always belongs to the i-th
// source: each worker writes into its own pre-allocated slot, so
// completion order never leaks into the output.
func (g *Graph) ShortestPaths(sources []uint32, dests NodeSet, opts BatchOptions) ([]Path, BatchStats, error) {
	if len(sources) == 0 || len(dests) == 0 {
		return nil, BatchStats{}, ErrEmptyBatch
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	log := opts.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, BatchStats{}, err
	}
	// reap the pool synchronously so back-to-back batches never
	// accumulate winding-down maintenance goroutines
	defer func() { _ = pool.ReleaseTimeout(time.Second) }()

	results := make([]Path, len(sources))
	var (
		wg        sync.WaitGroup
		completed atomic.Int64
		reachable atomic.Int64
		bounded   atomic.Int64
	)

	total := len(sources)
	for i, src := range sources {
		i, src := i, src
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			p, hitBound := g.shortestPath(src, dests)
			results[i] = p

			switch {
			case p != nil:
				reachable.Add(1)
				log.Info("shortest path completed",
					"from", FormatAddr(src),
					"to", FormatAddr(p[len(p)-1]),
					"hops", len(p)-1)
			case hitBound:
				bounded.Add(1)
				log.Info("shortest path abandoned at hop budget",
					"from", FormatAddr(src), "maxHops", MaxHops)
			default:
				log.Info("no path found", "from", FormatAddr(src))
			}

			n := completed.Add(1)
			if opts.ProgressEvery > 0 && (n%int64(opts.ProgressEvery) == 0 || n == int64(total)) {
				log.Info("search progress",
					"completed", humanize.Comma(n),
					"total", humanize.Comma(int64(total)))
			}
		})
		if err != nil {
			// pool refused the task, give the slot back and stop
			wg.Done()
			wg.Wait()
			return nil, BatchStats{}, err
		}
	}
	wg.Wait()

	stats := BatchStats{
		Completed: int(completed.Load()),
		Reachable: int(reachable.Load()),
		Bounded:   int(bounded.Load()),
	}
	return results, stats, nil
}
