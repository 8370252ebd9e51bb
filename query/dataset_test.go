package query

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromSliceCollect(t *testing.T) {
	env := NewEnvironment()
	d := FromSlice(env, "numbers", []int{1, 2, 3})

	got, err := d.Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, got)

	// evaluating again starts from the source
	again, err := d.Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, got, again)
}

func TestFilterAndMap(t *testing.T) {
	env := NewEnvironment()
	d := FromSlice(env, "numbers", []int{1, 2, 3, 4, 5, 6})

	even := d.Filter(func(n int) bool { return n%2 == 0 })
	labels := Map(even, func(n int) string { return fmt.Sprintf("n%d", n) })

	got, err := labels.Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"n2", "n4", "n6"}, got)
	require.Equal(t, "map(filter(numbers))", labels.Name())
}

func TestFirst(t *testing.T) {
	env := NewEnvironment()
	d := FromSlice(env, "numbers", []int{1, 2, 3, 4, 5})

	tests := []struct {
		n    int
		want []int
	}{
		{n: 0, want: nil},
		{n: -1, want: nil},
		{n: 2, want: []int{1, 2}},
		{n: 5, want: []int{1, 2, 3, 4, 5}},
		{n: 10, want: []int{1, 2, 3, 4, 5}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d", tt.n), func(t *testing.T) {
			got, err := d.First(tt.n).Collect(context.Background())
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFirstStopsUpstream(t *testing.T) {
	pulled := 0
	d := FromSeq(NewEnvironment(), "counter", func(yield func(int, error) bool) {
		for i := 0; i < 100; i++ {
			pulled++
			if !yield(i, nil) {
				return
			}
		}
	})

	got, err := d.First(3).Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, got)
	require.Equal(t, 3, pulled)
}

func TestSourceErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	d := FromSeq(NewEnvironment(), "broken", func(yield func(int, error) bool) {
		if !yield(1, nil) {
			return
		}
		yield(0, boom)
	})

	_, err := Map(d.Filter(func(int) bool { return true }), func(n int) int { return n * 2 }).Collect(context.Background())
	require.ErrorIs(t, err, boom)

	_, err = Distinct(d).Collect(context.Background())
	require.ErrorIs(t, err, boom)

	_, err = Join(d, FromSlice(NewEnvironment(), "other", []int{1}),
		func(n int) int { return n }, func(n int) int { return n }).Collect(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestCollectCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := FromSlice(NewEnvironment(), "numbers", []int{1, 2, 3})
	_, err := d.Collect(ctx)
	require.ErrorIs(t, err, context.Canceled)

	_, err = Distinct(d).Collect(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEnvironmentOptions(t *testing.T) {
	env := NewEnvironment(WithParallelism(3))
	require.Equal(t, 3, env.Parallelism())

	env = NewEnvironment(WithParallelism(0), WithLogger(nil))
	require.GreaterOrEqual(t, env.Parallelism(), 1)
	require.NotNil(t, env.logger)
}

func TestNilEnvironmentUsesDefaults(t *testing.T) {
	var env *Environment
	require.GreaterOrEqual(t, env.Parallelism(), 1)

	d := FromSlice(env, "numbers", []int{2, 1, 2, 3})
	got, err := Distinct(d.Filter(func(n int) bool { return n > 0 })).First(10).Collect(context.Background())
	require.NoError(t, err)
	require.ElementsMatch(t, []int{1, 2, 3}, got)

	pairs, err := Join(d, d, func(n int) int { return n }, func(n int) int { return n }).Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, pairs, 6)
}

func TestZeroDataSetIsEmpty(t *testing.T) {
	var d DataSet[int]
	got, err := Distinct(Map(d, func(n int) int { return n })).Collect(context.Background())
	require.NoError(t, err)
	require.Empty(t, got)
}
