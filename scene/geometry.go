package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Geometry is an indexed triangle list with counter-clockwise front faces.
type Geometry struct {
	Positions []mgl32.Vec3
	Indices   []uint16
}

// Triangles returns the number of triangles.
func (g *Geometry) Triangles() int {
	return len(g.Indices) / 3
}

// Transformed returns a copy of g with every position multiplied by m.
func (g *Geometry) Transformed(m mgl32.Mat4) *Geometry {
	out := &Geometry{
		Positions: make([]mgl32.Vec3, len(g.Positions)),
		Indices:   append([]uint16(nil), g.Indices...),
	}
	for i, p := range g.Positions {
		out.Positions[i] = mgl32.TransformCoordinate(p, m)
	}
	return out
}

// Box builds an axis-aligned box centred on the origin. Each face is split
// into segments x segments quads.
func Box(width, height, depth float32, segments int) *Geometry {
	if segments < 1 {
		segments = 1
	}
	g := &Geometry{}
	hw, hh, hd := width/2, height/2, depth/2

	// Each face: origin corner, u axis, v axis, chosen so u x v points outward.
	faces := [6][3]mgl32.Vec3{
		{{hw, -hh, hd}, {0, 0, -depth}, {0, height, 0}},   // +X
		{{-hw, -hh, -hd}, {0, 0, depth}, {0, height, 0}},  // -X
		{{-hw, hh, hd}, {width, 0, 0}, {0, 0, -depth}},    // +Y
		{{-hw, -hh, -hd}, {width, 0, 0}, {0, 0, depth}},   // -Y
		{{-hw, -hh, hd}, {width, 0, 0}, {0, height, 0}},   // +Z
		{{hw, -hh, -hd}, {-width, 0, 0}, {0, height, 0}},  // -Z
	}
	for _, f := range faces {
		g.addGrid(f[0], f[1], f[2], segments, segments)
	}
	return g
}

// Plane builds a width x height rectangle in the XY plane facing +Z, like an
// unrotated ground plane before it is laid flat.
func Plane(width, height float32) *Geometry {
	g := &Geometry{}
	g.addGrid(mgl32.Vec3{-width / 2, -height / 2, 0}, mgl32.Vec3{width, 0, 0}, mgl32.Vec3{0, height, 0}, 1, 1)
	return g
}

// Sphere builds a unit UV sphere.
func Sphere(widthSegments, heightSegments int) *Geometry {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	g := &Geometry{}
	for y := 0; y <= heightSegments; y++ {
		v := float64(y) / float64(heightSegments)
		theta := v * math.Pi
		for x := 0; x <= widthSegments; x++ {
			u := float64(x) / float64(widthSegments)
			phi := u * 2 * math.Pi
			g.Positions = append(g.Positions, mgl32.Vec3{
				float32(-math.Cos(phi) * math.Sin(theta)),
				float32(math.Cos(theta)),
				float32(math.Sin(phi) * math.Sin(theta)),
			})
		}
	}

	stride := widthSegments + 1
	for y := 0; y < heightSegments; y++ {
		for x := 0; x < widthSegments; x++ {
			a := uint16(y*stride + x + 1)
			b := uint16(y*stride + x)
			c := uint16((y+1)*stride + x)
			d := uint16((y+1)*stride + x + 1)
			if y != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if y != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}
	return g
}

// addGrid appends a nu x nv grid of quads spanning origin + [0,1]u + [0,1]v.
// Triangles wind so that u x v is the front face normal.
func (g *Geometry) addGrid(origin, u, v mgl32.Vec3, nu, nv int) {
	base := uint16(len(g.Positions))
	for j := 0; j <= nv; j++ {
		for i := 0; i <= nu; i++ {
			p := origin.
				Add(u.Mul(float32(i) / float32(nu))).
				Add(v.Mul(float32(j) / float32(nv)))
			g.Positions = append(g.Positions, p)
		}
	}

	stride := uint16(nu + 1)
	for j := 0; j < nv; j++ {
		for i := 0; i < nu; i++ {
			a := base + uint16(j)*stride + uint16(i)
			b := a + 1
			c := a + stride + 1
			d := a + stride
			g.Indices = append(g.Indices, a, b, c, a, c, d)
		}
	}
}
