package ecs

import "iter"

// Query is a View that caches the list of matching archetypes. Declare it as
// a field of a System and the Scheduler binds it on Register.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	cachedArchetypes   []*Archetype
	lastArchetypeCount int
}

// NewQuery creates a query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage and drops its cache.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cachedArchetypes = nil
	q.lastArchetypeCount = -1
}

func (q *Query[T]) archetypes() []*Archetype {
	if q.storage == nil {
		panic("Query used before Init")
	}
	if n := len(q.storage.archetypes); n != q.lastArchetypeCount {
		q.cachedArchetypes = q.cachedArchetypes[:0]
		for _, archetype := range q.storage.archetypes {
			if q.view.matchesArchetype(archetype) {
				q.cachedArchetypes = append(q.cachedArchetypes, archetype)
			}
		}
		q.lastArchetypeCount = n
	}
	return q.cachedArchetypes
}

// Entries yields every matching entity id with its filled view.
func (q *Query[T]) Entries() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range q.archetypes() {
			if !q.view.iterArchetype(archetype, yield) {
				return
			}
		}
	}
}

// Iter yields the filled view of every matching entity.
func (q *Query[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range q.Entries() {
			if !yield(item) {
				return
			}
		}
	}
}

// First returns the first matching view.
func (q *Query[T]) First() (T, bool) {
	for item := range q.Iter() {
		return item, true
	}
	var zero T
	return zero, false
}

// Count returns the number of matching entities.
func (q *Query[T]) Count() int {
	n := 0
	for range q.Entries() {
		n++
	}
	return n
}
