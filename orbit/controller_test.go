package orbit_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/curvedemo/orbit"
	"github.com/plus3/curvedemo/scene"
	"github.com/stretchr/testify/assert"
)

func demoCamera() scene.Camera {
	cam := scene.NewCamera(800, 600)
	cam.Position = mgl32.Vec3{-5, 3, 10}
	cam.LookAt(mgl32.Vec3{})
	return cam
}

func assertVecInDelta(t *testing.T, expected, actual mgl32.Vec3, delta float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, expected[i], actual[i], delta, "component %d of %v vs %v", i, expected, actual)
	}
}

func TestNewControllerReproducesCamera(t *testing.T) {
	cam := demoCamera()
	c := orbit.NewController(cam)

	assert.InDelta(t, math.Sqrt(25+9+100), c.Radius, 1e-5)
	assertVecInDelta(t, cam.Position, c.Position(), 1e-4)

	moved := cam
	c.Apply(&moved)
	assertVecInDelta(t, cam.Position, moved.Position, 1e-4)
	assert.Equal(t, cam.Target, moved.Target)
}

func TestRotateWithoutDampingAppliesAtOnce(t *testing.T) {
	c := orbit.NewController(demoCamera())
	c.Damping = 0
	yaw := c.Yaw

	c.Rotate(0.5, 0)
	c.Update()

	assert.InDelta(t, yaw+0.5, c.Yaw, 1e-6)
	assert.False(t, c.Pending())
}

func TestRotateWithDampingSettles(t *testing.T) {
	c := orbit.NewController(demoCamera())
	yaw := c.Yaw

	c.Rotate(1, 0)
	c.Update()
	assert.InDelta(t, yaw+orbit.DefaultDamping, c.Yaw, 1e-6)
	assert.True(t, c.Pending())

	for i := 0; i < 200 && c.Pending(); i++ {
		c.Update()
	}
	assert.False(t, c.Pending())
	assert.InDelta(t, yaw+1, c.Yaw, 1e-4)
}

func TestRotateKeepsRadius(t *testing.T) {
	c := orbit.NewController(demoCamera())
	c.Damping = 0
	r := c.Radius

	c.Rotate(1.3, -0.4)
	c.Update()

	assert.InDelta(t, r, c.Position().Sub(c.Target).Len(), 1e-4)
}

func TestPitchIsClamped(t *testing.T) {
	c := orbit.NewController(demoCamera())
	c.Damping = 0

	c.Rotate(0, 10)
	c.Update()
	assert.Less(t, c.Pitch, float32(math.Pi/2))

	c.Rotate(0, -20)
	c.Update()
	assert.Greater(t, c.Pitch, float32(-math.Pi/2))
}

func TestZoomClampsRadius(t *testing.T) {
	c := orbit.NewController(demoCamera())

	c.Zoom(0.5)
	assert.InDelta(t, math.Sqrt(134)/2, c.Radius, 1e-4)

	c.Zoom(1e-6)
	assert.Equal(t, c.MinRadius, c.Radius)

	c.Zoom(1e9)
	assert.Equal(t, c.MaxRadius, c.Radius)

	before := c.Radius
	c.Zoom(-1)
	assert.Equal(t, before, c.Radius, "non-positive factors are ignored")
}

func TestPanMovesTargetAndCamera(t *testing.T) {
	c := orbit.NewController(demoCamera())
	before := c.Position().Sub(c.Target)

	c.Pan(1, 0)

	assert.InDelta(t, 1, c.Target.Len(), 1e-5)
	assert.InDelta(t, 0, c.Target.Y(), 1e-5, "panning right stays level")
	assertVecInDelta(t, before, c.Position().Sub(c.Target), 1e-4)
}

func TestApplySetsDefaultUp(t *testing.T) {
	c := orbit.NewController(demoCamera())
	var cam scene.Camera
	c.Apply(&cam)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, cam.Up)

	c.Apply(nil)
}
