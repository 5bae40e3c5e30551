package ecs

import "reflect"

// Singleton gives systems typed access to a value that belongs to the world
// rather than to an entity: camera, input state, frame counters.
type Singleton[T any] struct {
	storage *Storage
	entry   *singletonEntry
}

// NewSingleton returns an accessor for T, storing initializer (or the zero
// value) first when the storage has no T yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	typ := reflect.TypeFor[T]()
	if storage.getSingletonEntry(typ) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}

	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

// Init binds the accessor to storage. The Scheduler calls it for Singleton
// fields of registered systems.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.entry = storage.getSingletonEntry(reflect.TypeFor[T]())
}

// Get returns the stored value, or nil when the storage has no T.
func (s *Singleton[T]) Get() *T {
	if s.storage == nil {
		return nil
	}
	current := s.storage.getSingletonEntry(reflect.TypeFor[T]())
	if current != s.entry {
		s.entry = current
	}
	if s.entry == nil {
		return nil
	}
	return (*T)(s.entry.dataPtr)
}

// Exists reports whether the storage currently holds a T.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
