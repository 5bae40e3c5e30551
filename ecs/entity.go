package ecs

// EntityId packs the archetype hash (upper 32 bits) and the slot index inside
// that archetype (lower 32 bits). The zero value never names a live entity.
type EntityId uint64

// NewEntityId builds an EntityId from an archetype hash and slot index.
func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

// ArchetypeId returns the archetype hash encoded in the id.
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index returns the slot index encoded in the id.
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// EntityRef is a long-lived handle to an entity. Storage keeps it current
// when the entity is deleted (Id becomes 0).
type EntityRef struct {
	Id        EntityId
	Archetype *Archetype
}

// Valid reports whether the referenced entity is still alive.
func (r *EntityRef) Valid() bool {
	return r != nil && r.Id != 0
}
