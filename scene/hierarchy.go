package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/curvedemo/ecs"
)

// maxDepth bounds the parent walk so a cycle cannot hang a frame.
const maxDepth = 32

// WorldMatrix returns the entity's local matrix composed with every ancestor's.
// Missing transforms count as identity.
func WorldMatrix(storage *ecs.Storage, id ecs.EntityId) mgl32.Mat4 {
	m := mgl32.Ident4()
	for depth := 0; depth < maxDepth; depth++ {
		if t := ecs.ReadComponent[Transform](storage, id); t != nil {
			m = t.Matrix().Mul4(m)
		}

		parent := ecs.ReadComponent[Parent](storage, id)
		if parent == nil {
			break
		}
		next, ok := storage.ResolveEntityRef(parent.Ref)
		if !ok {
			break
		}
		id = next
	}
	return m
}

// WorldPosition returns the entity's origin in world space.
func WorldPosition(storage *ecs.Storage, id ecs.EntityId) mgl32.Vec3 {
	return WorldMatrix(storage, id).Col(3).Vec3()
}
