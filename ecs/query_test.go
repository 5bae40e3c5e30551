package ecs_test

import (
	"testing"

	"github.com/plus3/curvedemo/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryIter(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	storage.Spawn(Position{X: 2}, Velocity{DX: 1}, Label("labeled"))
	storage.Spawn(Position{X: 3})

	query := ecs.NewQuery[moverView](storage)
	assert.Equal(t, 2, query.Count())

	for m := range query.Iter() {
		m.Position.X += m.Velocity.DX
	}

	var xs []float32
	for _, m := range query.Entries() {
		xs = append(xs, m.Position.X)
	}
	assert.ElementsMatch(t, []float32{2, 3}, xs)
}

func TestQuerySeesNewArchetypes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[struct{ *Label }](storage)

	_, ok := query.First()
	assert.False(t, ok)
	assert.Equal(t, 0, query.Count())

	storage.Spawn(Label("first"))
	first, ok := query.First()
	require.True(t, ok)
	assert.Equal(t, Label("first"), *first.Label)

	storage.Spawn(Label("second"), Frozen{})
	assert.Equal(t, 2, query.Count())
}

func TestQueryEntriesMatchIds(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	a := storage.Spawn(Label("a"))
	b := storage.Spawn(Label("b"), Position{})

	query := ecs.NewQuery[struct{ *Label }](storage)
	got := map[ecs.EntityId]Label{}
	for id, v := range query.Entries() {
		got[id] = *v.Label
	}
	assert.Equal(t, map[ecs.EntityId]Label{a: "a", b: "b"}, got)
}

func TestQueryBeforeInitPanics(t *testing.T) {
	var query ecs.Query[struct{ *Label }]
	assert.Panics(t, func() { query.Count() })
}
