package query

import (
	"context"
	"fmt"
	"iter"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"
)

// Distinct removes duplicate records. The input is partitioned by a hash of
// each record across the environment's workers, and each worker keeps the
// first occurrence it sees. Output is grouped by partition, in input order
// within a partition.
func Distinct[T comparable](d DataSet[T]) DataSet[T] {
	return d.derive("distinct", func(ctx context.Context) iter.Seq2[T, error] {
		return func(yield func(T, error) bool) {
			parts, err := dedupe(ctx, d, d.env.Parallelism())
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for _, part := range parts {
				for _, v := range part {
					if !yield(v, nil) {
						return
					}
				}
			}
		}
	})
}

func dedupe[T comparable](ctx context.Context, d DataSet[T], workers int) ([][]T, error) {
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	inputs := make([]chan T, workers)
	parts := make([][]T, workers)
	for i := range inputs {
		inputs[i] = make(chan T, 64)
		g.Go(func() error {
			seen := make(map[T]struct{})
			for v := range inputs[i] {
				if _, ok := seen[v]; ok {
					continue
				}
				seen[v] = struct{}{}
				parts[i] = append(parts[i], v)
			}
			return nil
		})
	}

	g.Go(func() error {
		defer func() {
			for _, in := range inputs {
				close(in)
			}
		}()
		for v, err := range d.iterate(gctx) {
			if err != nil {
				return err
			}
			select {
			case inputs[partitionOf(v, workers)] <- v:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return parts, nil
}

// partitionOf hashes the Go-syntax rendering of v, so equal records always
// land on the same worker.
func partitionOf[T any](v T, workers int) int {
	if workers == 1 {
		return 0
	}
	return int(xxh3.HashString(fmt.Sprintf("%#v", v)) % uint64(workers))
}
