package tally

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// AggregateFiles aggregates several outcome logs concurrently, one
// shard per file, then merges the shards into a single Aggregator. The
// merge replays seen keys, so a key appearing in multiple files counts
// once. workers bounds concurrent file reads; values below 1 mean one
// worker per CPU.
func AggregateFiles(ctx context.Context, paths []string, workers int, opts ...Option) (*Aggregator, error) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	shards := make([]*Aggregator, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening outcome log: %w", err)
			}
			defer f.Close()

			shard := New(opts...)
			if err := shard.ConsumeContext(ctx, f); err != nil {
				return fmt.Errorf("aggregating %s: %w", path, err)
			}
			shards[i] = shard
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := New(opts...)
	for _, shard := range shards {
		merged.Merge(shard)
	}
	return merged, nil
}
