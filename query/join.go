package query

import (
	"context"
	"iter"

	"golang.org/x/sync/errgroup"
)

// Pair is one result of a join.
type Pair[L, R any] struct {
	Left  L
	Right R
}

// Join performs an inner equi-join. Both inputs are drained concurrently;
// the right side is hashed by rightKey and probed with every left record.
// Records without a partner are dropped. Output follows left input order,
// and for each left record the order of its right partners.
func Join[L, R any, K comparable](left DataSet[L], right DataSet[R], leftKey func(L) K, rightKey func(R) K) DataSet[Pair[L, R]] {
	return DataSet[Pair[L, R]]{
		env:  left.env,
		name: "join(" + left.name + ", " + right.name + ")",
		run: func(ctx context.Context) iter.Seq2[Pair[L, R], error] {
			return func(yield func(Pair[L, R], error) bool) {
				var (
					lefts []L
					table = make(map[K][]R)
				)

				g, gctx := errgroup.WithContext(ctx)
				g.Go(func() error {
					for v, err := range left.iterate(gctx) {
						if err != nil {
							return err
						}
						lefts = append(lefts, v)
					}
					return nil
				})
				g.Go(func() error {
					for v, err := range right.iterate(gctx) {
						if err != nil {
							return err
						}
						k := rightKey(v)
						table[k] = append(table[k], v)
					}
					return nil
				})
				if err := g.Wait(); err != nil {
					yield(Pair[L, R]{}, err)
					return
				}

				for _, l := range lefts {
					for _, r := range table[leftKey(l)] {
						if !yield(Pair[L, R]{Left: l, Right: r}, nil) {
							return
						}
					}
				}
			}
		},
	}
}
