package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/curvedemo/ecs"
)

// receiver is a flat shadow-receiving surface: points x with normal.x = d.
type receiver struct {
	normal mgl32.Vec3
	d      float32
	owner  ecs.EntityId
}

// planeFromWorld returns the plane of a mesh whose geometry lies in its local
// XY plane facing +Z, as scene.Plane builds it.
func planeFromWorld(world mgl32.Mat4) (receiver, bool) {
	n := world.Mul4x1(mgl32.Vec4{0, 0, 1, 0}).Vec3()
	if n.Len() == 0 {
		return receiver{}, false
	}
	n = n.Normalize()
	return receiver{normal: n, d: n.Dot(world.Col(3).Vec3())}, true
}

// above reports whether p is strictly on the normal side of the plane.
func (r receiver) above(p mgl32.Vec3) bool {
	return r.normal.Dot(p) > r.d
}

// project casts p onto the plane along the ray from light. It fails when p
// is under the plane or the ray runs parallel to it.
func (r receiver) project(light, p mgl32.Vec3) (mgl32.Vec3, bool) {
	dir := p.Sub(light)
	denom := r.normal.Dot(dir)
	if denom > -1e-6 {
		return mgl32.Vec3{}, false
	}
	t := (r.d - r.normal.Dot(light)) / denom
	if t < 1-1e-4 {
		return mgl32.Vec3{}, false
	}
	return light.Add(dir.Mul(t)), true
}
