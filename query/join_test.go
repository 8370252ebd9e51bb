package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type person struct {
	ID   int
	Name string
}

type order struct {
	ID     int
	Person int
}

func TestJoinInner(t *testing.T) {
	env := NewEnvironment()
	people := FromSlice(env, "people", []person{
		{ID: 1, Name: "alice"},
		{ID: 2, Name: "bob"},
		{ID: 3, Name: "carol"},
	})
	orders := FromSlice(env, "orders", []order{
		{ID: 100, Person: 1},
		{ID: 101, Person: 1},
		{ID: 102, Person: 2},
		{ID: 103, Person: 9},
	})

	got, err := Join(people, orders,
		func(p person) int { return p.ID },
		func(o order) int { return o.Person },
	).Collect(context.Background())
	require.NoError(t, err)

	// unmatched on either side are dropped, output follows the left input
	require.Equal(t, []Pair[person, order]{
		{Left: person{1, "alice"}, Right: order{100, 1}},
		{Left: person{1, "alice"}, Right: order{101, 1}},
		{Left: person{2, "bob"}, Right: order{102, 2}},
	}, got)
}

func TestJoinDuplicatesMultiply(t *testing.T) {
	env := NewEnvironment()
	people := FromSlice(env, "people", []person{
		{ID: 1, Name: "alice"},
		{ID: 1, Name: "alias"},
	})
	orders := FromSlice(env, "orders", []order{
		{ID: 100, Person: 1},
		{ID: 101, Person: 1},
		{ID: 102, Person: 1},
	})

	got, err := Join(people, orders,
		func(p person) int { return p.ID },
		func(o order) int { return o.Person },
	).Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 6)
}

func TestJoinEmptySide(t *testing.T) {
	env := NewEnvironment()
	people := FromSlice(env, "people", []person{{ID: 1, Name: "alice"}})
	orders := FromSlice[order](env, "orders", nil)

	got, err := Join(people, orders,
		func(p person) int { return p.ID },
		func(o order) int { return o.Person },
	).Collect(context.Background())
	require.NoError(t, err)
	require.Empty(t, got)

	reversed, err := Join(orders.Filter(func(order) bool { return false }), people,
		func(o order) int { return o.Person },
		func(p person) int { return p.ID },
	).First(1).Collect(context.Background())
	require.NoError(t, err)
	require.Empty(t, reversed)
}
