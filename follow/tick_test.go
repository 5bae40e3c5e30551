package follow_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/curvedemo/curve"
	"github.com/plus3/curvedemo/follow"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

type fixedSampler map[float64]r3.Vec

func (s fixedSampler) PointAt(t float64) r3.Vec {
	return s[t]
}

var demoCurve = curve.MustCatmullRom([]r3.Vec{
	{X: -1, Y: 0, Z: 0},
	{X: -0.3, Y: 0.3, Z: 0},
	{X: 0, Y: 0, Z: 0},
	{X: 0.3, Y: -0.3, Z: 0},
	{X: 1, Y: 0, Z: 0},
}, curve.Options{})

var groupOffset = r3.Vec{X: -2, Y: 1.5, Z: -2}

func TestTickAtStart(t *testing.T) {
	p := newParameter(t, 0)
	s := follow.Tick(p, fixedSampler{0: {X: -1}}, groupOffset)

	assert.Equal(t, mgl32.Vec3{-3, 1.5, -2}, s.Orb)
	assert.Equal(t, float32(0), s.MeshX)
	assert.Equal(t, 0.0, s.T)
}

func TestTickMapsCurveYToMeshX(t *testing.T) {
	p := newParameter(t, 0)
	for i := 0; i < follow.Steps; i++ {
		s := follow.Tick(p, demoCurve, groupOffset)
		point := demoCurve.PointAt(p.T())

		assert.Equal(t, float32(point.Y*follow.MeshScale), s.MeshX)
		assert.InDelta(t, point.X+groupOffset.X, float64(s.Orb.X()), 1e-6)
		assert.InDelta(t, point.Y+groupOffset.Y, float64(s.Orb.Y()), 1e-6)
		assert.InDelta(t, point.Z+groupOffset.Z, float64(s.Orb.Z()), 1e-6)

		p.Advance(follow.Forward)
	}
}

func TestTickIsIdempotentForFixedT(t *testing.T) {
	p := newParameter(t, 7)
	a := follow.Tick(p, demoCurve, groupOffset)
	b := follow.Tick(p, demoCurve, groupOffset)
	assert.Equal(t, a, b)
}

func TestTickSeesLatestParameter(t *testing.T) {
	p := newParameter(t, 0)
	for i := 0; i < 5; i++ {
		p.Advance(follow.Forward)
	}
	s := follow.Tick(p, fixedSampler{0.5: {X: 0, Y: 0.25, Z: 0}}, r3.Vec{})
	assert.Equal(t, 0.5, s.T)
	assert.Equal(t, float32(2.5), s.MeshX)
}
