package follow

import (
	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/spatial/r3"
)

// MeshScale multiplies the sampled Y coordinate before it is written to the
// driven mesh's X position.
const MeshScale = 10

// Sampler is a curve that can be sampled by arc-length fraction.
type Sampler interface {
	PointAt(t float64) r3.Vec
}

// Sample is the result of one tick: where the follower objects go for the
// parameter value T.
type Sample struct {
	T     float64
	Point r3.Vec     // curve point in the curve's local space
	Orb   mgl32.Vec3 // Point offset by the group translation
	MeshX float32    // Point.Y * MeshScale
}

// Tick samples the curve at the parameter's current value. It depends only
// on t, the curve and the group translation, so repeated calls agree.
func Tick(p *Parameter, curve Sampler, groupTranslation r3.Vec) Sample {
	t := p.T()
	point := curve.PointAt(t)
	orb := r3.Add(point, groupTranslation)

	return Sample{
		T:     t,
		Point: point,
		Orb:   mgl32.Vec3{float32(orb.X), float32(orb.Y), float32(orb.Z)},
		// Cross-axis: the curve's Y drives the mesh's X.
		MeshX: float32(point.Y * MeshScale),
	}
}
