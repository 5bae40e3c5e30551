package render

import (
	"github.com/go-gl/mathgl/mgl32"
)

// minW keeps vertices strictly in front of the eye after near clipping.
const minW = 1e-5

// projector maps world-space geometry to pixels for one camera.
type projector struct {
	viewProj mgl32.Mat4
	width    float32
	height   float32

	// scratch buffers reused between primitives
	in, out []mgl32.Vec4
}

func newProjector(viewProj mgl32.Mat4, width, height int) *projector {
	return &projector{
		viewProj: viewProj,
		width:    float32(width),
		height:   float32(height),
		in:       make([]mgl32.Vec4, 0, 8),
		out:      make([]mgl32.Vec4, 0, 8),
	}
}

func (p *projector) clip(v mgl32.Vec3) mgl32.Vec4 {
	return p.viewProj.Mul4x1(v.Vec4(1))
}

// ndcToScreen maps normalized device coordinates to pixels, y down.
func (p *projector) ndcToScreen(x, y float32) mgl32.Vec2 {
	return mgl32.Vec2{
		(x*0.5 + 0.5) * p.width,
		(1 - (y*0.5 + 0.5)) * p.height,
	}
}

func (p *projector) toScreen(c mgl32.Vec4) mgl32.Vec2 {
	return p.ndcToScreen(c.X()/c.W(), c.Y()/c.W())
}

// nearDistance is positive for clip-space points on the visible side of the
// near plane.
func nearDistance(c mgl32.Vec4) float32 {
	return c.Z() + c.W()
}

// clipNear clips a convex polygon against the near plane (Sutherland-Hodgman)
// and returns the kept vertices in p.out.
func (p *projector) clipNear(poly []mgl32.Vec4) []mgl32.Vec4 {
	out := p.out[:0]
	n := len(poly)
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%n]
		da, db := nearDistance(a), nearDistance(b)
		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) {
			t := da / (da - db)
			out = append(out, lerp4(a, b, t))
		}
	}
	p.out = out
	return out
}

// triangle projects a world-space triangle and calls emit once per screen
// triangle that survives near clipping, passing the mean clip w as depth.
// With cull set, triangles facing away from the camera are dropped and
// reported as culled.
func (p *projector) triangle(a, b, c mgl32.Vec3, cull bool, emit func(pts [3]mgl32.Vec2, depth float32)) (culled bool) {
	p.in = append(p.in[:0], p.clip(a), p.clip(b), p.clip(c))
	poly := p.clipNear(p.in)
	if len(poly) < 3 {
		return false
	}

	var buf [4]mgl32.Vec2
	pts := buf[:0]
	var depth float32
	for _, v := range poly {
		if v.W() < minW {
			return false
		}
		pts = append(pts, p.toScreen(v))
		depth += v.W()
	}
	depth /= float32(len(poly))

	// Screen y points down, so a counter-clockwise face has negative area.
	if cull && signedArea(pts[0], pts[1], pts[2]) > 0 {
		return true
	}

	for i := 1; i+1 < len(pts); i++ {
		emit([3]mgl32.Vec2{pts[0], pts[i], pts[i+1]}, depth)
	}
	return false
}

// segment projects a world-space segment, clipped to the near plane.
func (p *projector) segment(a, b mgl32.Vec3) (sa, sb mgl32.Vec2, depth float32, ok bool) {
	ca, cb := p.clip(a), p.clip(b)
	da, db := nearDistance(ca), nearDistance(cb)
	switch {
	case da < 0 && db < 0:
		return sa, sb, 0, false
	case da < 0:
		ca = lerp4(ca, cb, da/(da-db))
	case db < 0:
		cb = lerp4(ca, cb, da/(da-db))
	}
	if ca.W() < minW || cb.W() < minW {
		return sa, sb, 0, false
	}
	return p.toScreen(ca), p.toScreen(cb), (ca.W() + cb.W()) / 2, true
}

func signedArea(a, b, c mgl32.Vec2) float32 {
	return (b.X()-a.X())*(c.Y()-a.Y()) - (b.Y()-a.Y())*(c.X()-a.X())
}

func lerp4(a, b mgl32.Vec4, t float32) mgl32.Vec4 {
	return a.Add(b.Sub(a).Mul(t))
}
