// Package scene holds the components that describe a 3D scene inside an ECS
// storage: transforms, group parenting, meshes, lines, lights and the camera.
package scene

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/curvedemo/ecs"
)

// Name labels an entity for the inspector and logs.
type Name string

// Transform places an entity relative to its parent (or the world).
// Rotation is Euler angles in radians applied X, then Y, then Z.
// A zero Scale is treated as (1, 1, 1).
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

// At returns a unit-scale transform at p.
func At(p mgl32.Vec3) Transform {
	return Transform{Position: p, Scale: mgl32.Vec3{1, 1, 1}}
}

// Matrix returns translation * rotation * scale.
func (t Transform) Matrix() mgl32.Mat4 {
	s := t.Scale
	if s == (mgl32.Vec3{}) {
		s = mgl32.Vec3{1, 1, 1}
	}
	rot := mgl32.HomogRotate3DX(t.Rotation.X()).
		Mul4(mgl32.HomogRotate3DY(t.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(t.Rotation.Z()))
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(rot).
		Mul4(mgl32.Scale3D(s.X(), s.Y(), s.Z()))
}

// Parent attaches an entity to a group entity; the child's Transform is then
// relative to the parent's.
type Parent struct {
	Ref *ecs.EntityRef
}

// Group marks an entity that exists only to carry a shared transform.
type Group struct{}

// MaterialKind selects how a surface is shaded.
type MaterialKind uint8

const (
	// MaterialBasic is unlit: the base color is drawn as is.
	MaterialBasic MaterialKind = iota
	// MaterialLambert is diffuse-lit by ambient and spot lights.
	MaterialLambert
	// MaterialShadow is invisible except where shadows fall on it.
	MaterialShadow
)

// Material is the surface description of a Mesh.
type Material struct {
	Kind    MaterialKind
	Color   color.RGBA
	Opacity float32 // 0 means opaque
}

// Alpha returns the effective opacity in [0, 1].
func (m Material) Alpha() float32 {
	if m.Opacity <= 0 || m.Opacity > 1 {
		return 1
	}
	return m.Opacity
}

// Mesh draws triangle geometry with a material.
type Mesh struct {
	Geometry      *Geometry
	Material      Material
	CastShadow    bool
	ReceiveShadow bool
}

// Line draws a polyline in the entity's local space.
type Line struct {
	Points []mgl32.Vec3
	Color  color.RGBA
	Width  float32
}

// GridHelper draws a square grid of Divisions x Divisions cells on the
// entity's local XZ plane.
type GridHelper struct {
	Size        float32
	Divisions   int
	CenterColor color.RGBA
	Color       color.RGBA
	Opacity     float32
}

// AmbientLight lights every surface evenly.
type AmbientLight struct {
	Color     color.RGBA
	Intensity float32
}

// SpotLight shines from the entity's position towards Target inside a cone
// of half-angle Angle (radians).
type SpotLight struct {
	Color      color.RGBA
	Intensity  float32
	Target     mgl32.Vec3
	Angle      float32
	CastShadow bool
}

// Cone returns the cosine of the cone half-angle.
func (l SpotLight) Cone() float32 {
	a := l.Angle
	if a <= 0 || a > math.Pi/2 {
		a = math.Pi / 3
	}
	return float32(math.Cos(float64(a)))
}

// Background is the clear color, stored as a singleton.
type Background struct {
	Color color.RGBA
}

// Hex converts 0xRRGGBB to an opaque color.
func Hex(rgb uint32) color.RGBA {
	return color.RGBA{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb), A: 0xFF}
}

// RegisterComponents registers every scene component with registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Parent](registry)
	ecs.RegisterComponent[Group](registry)
	ecs.RegisterComponent[Mesh](registry)
	ecs.RegisterComponent[Line](registry)
	ecs.RegisterComponent[GridHelper](registry)
	ecs.RegisterComponent[AmbientLight](registry)
	ecs.RegisterComponent[SpotLight](registry)
}
