package query

import (
	"context"
	"iter"

	"github.com/go-kit/log/level"
)

// DataSet is a lazy sequence of records of type T. Every evaluation starts
// from the sources again, so a dataset may be collected more than once. The
// zero DataSet is empty.
type DataSet[T any] struct {
	env  *Environment
	name string
	run  func(ctx context.Context) iter.Seq2[T, error]
}

// FromSeq wraps a record sequence. The sequence must be restartable if the
// dataset is evaluated more than once.
func FromSeq[T any](env *Environment, name string, seq iter.Seq2[T, error]) DataSet[T] {
	return DataSet[T]{
		env:  env,
		name: name,
		run: func(ctx context.Context) iter.Seq2[T, error] {
			return func(yield func(T, error) bool) {
				for v, err := range seq {
					if err != nil {
						yield(v, err)
						return
					}
					if err := ctx.Err(); err != nil {
						var zero T
						yield(zero, err)
						return
					}
					if !yield(v, nil) {
						return
					}
				}
			}
		},
	}
}

// FromSlice returns a dataset over items.
func FromSlice[T any](env *Environment, name string, items []T) DataSet[T] {
	return FromSeq(env, name, func(yield func(T, error) bool) {
		for _, v := range items {
			if !yield(v, nil) {
				return
			}
		}
	})
}

// Name describes the plan that produces the dataset.
func (d DataSet[T]) Name() string {
	return d.name
}

// Environment returns the environment the dataset belongs to.
func (d DataSet[T]) Environment() *Environment {
	return d.env
}

// All evaluates the plan lazily. The first error ends the sequence.
func (d DataSet[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return d.iterate(ctx)
}

func (d DataSet[T]) iterate(ctx context.Context) iter.Seq2[T, error] {
	if d.run == nil {
		return func(func(T, error) bool) {}
	}
	return d.run(ctx)
}

// Filter keeps the records for which keep returns true.
func (d DataSet[T]) Filter(keep func(T) bool) DataSet[T] {
	return d.derive("filter", func(ctx context.Context) iter.Seq2[T, error] {
		return func(yield func(T, error) bool) {
			for v, err := range d.iterate(ctx) {
				if err != nil {
					yield(v, err)
					return
				}
				if keep(v) && !yield(v, nil) {
					return
				}
			}
		}
	})
}

// First keeps at most n records, in the order the input produces them.
// Upstream evaluation stops as soon as n records were seen.
func (d DataSet[T]) First(n int) DataSet[T] {
	return d.derive("first", func(ctx context.Context) iter.Seq2[T, error] {
		return func(yield func(T, error) bool) {
			if n <= 0 {
				return
			}
			seen := 0
			for v, err := range d.iterate(ctx) {
				if err != nil {
					yield(v, err)
					return
				}
				if !yield(v, nil) {
					return
				}
				seen++
				if seen == n {
					return
				}
			}
		}
	})
}

// Collect evaluates the plan and returns all records.
func (d DataSet[T]) Collect(ctx context.Context) ([]T, error) {
	var out []T
	for v, err := range d.iterate(ctx) {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	level.Debug(d.env.log()).Log("msg", "plan evaluated", "plan", d.name, "records", len(out))
	return out, nil
}

func (d DataSet[T]) derive(op string, run func(ctx context.Context) iter.Seq2[T, error]) DataSet[T] {
	return DataSet[T]{env: d.env, name: op + "(" + d.name + ")", run: run}
}

// Map projects every record through fn.
func Map[T, U any](d DataSet[T], fn func(T) U) DataSet[U] {
	return DataSet[U]{
		env:  d.env,
		name: "map(" + d.name + ")",
		run: func(ctx context.Context) iter.Seq2[U, error] {
			return func(yield func(U, error) bool) {
				for v, err := range d.iterate(ctx) {
					if err != nil {
						var zero U
						yield(zero, err)
						return
					}
					if !yield(fn(v), nil) {
						return
					}
				}
			}
		},
	}
}
