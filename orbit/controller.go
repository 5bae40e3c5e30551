// Package orbit moves the camera around a target point with the mouse:
// drag to rotate, right-drag to pan, wheel to zoom.
package orbit

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/curvedemo/scene"
)

// DefaultDamping is the share of a pending rotation applied per Update.
const DefaultDamping = 0.2

const maxPitch = math.Pi/2 - 0.01

// Controller keeps the camera on a sphere around Target. Yaw is measured
// around +Y from +Z, Pitch up from the XZ plane.
type Controller struct {
	Target mgl32.Vec3
	Yaw    float32
	Pitch  float32
	Radius float32

	MinRadius float32
	MaxRadius float32

	// Damping in (0, 1] spreads rotations over several updates. Zero
	// applies them at once.
	Damping float32

	pendingYaw   float32
	pendingPitch float32
}

// NewController derives the orbit from the camera's current position and
// target.
func NewController(cam scene.Camera) *Controller {
	offset := cam.Position.Sub(cam.Target)
	c := &Controller{
		Target:    cam.Target,
		Radius:    offset.Len(),
		MinRadius: 1,
		MaxRadius: 200,
		Damping:   DefaultDamping,
	}
	if c.Radius > 0 {
		c.Yaw = float32(math.Atan2(float64(offset.X()), float64(offset.Z())))
		c.Pitch = float32(math.Asin(float64(offset.Y() / c.Radius)))
	}
	if c.Radius < c.MinRadius {
		c.MinRadius = c.Radius
	}
	if c.Radius > c.MaxRadius {
		c.MaxRadius = c.Radius
	}
	return c
}

// Rotate queues a rotation; Update applies it.
func (c *Controller) Rotate(deltaYaw, deltaPitch float32) {
	c.pendingYaw += deltaYaw
	c.pendingPitch += deltaPitch
}

// Zoom scales the radius by factor (<1 moves closer), clamped to
// [MinRadius, MaxRadius].
func (c *Controller) Zoom(factor float32) {
	if factor <= 0 {
		return
	}
	c.Radius *= factor
	if c.MinRadius != 0 && c.Radius < c.MinRadius {
		c.Radius = c.MinRadius
	}
	if c.MaxRadius != 0 && c.Radius > c.MaxRadius {
		c.Radius = c.MaxRadius
	}
}

// Pan moves the target along the camera's right and up axes.
func (c *Controller) Pan(right, up float32) {
	forward := c.Target.Sub(c.Position()).Normalize()
	r := forward.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
	u := r.Cross(forward)
	c.Target = c.Target.Add(r.Mul(right)).Add(u.Mul(up))
}

// Pending reports whether a queued rotation is still being applied.
func (c *Controller) Pending() bool {
	const eps = 1e-5
	return abs(c.pendingYaw) > eps || abs(c.pendingPitch) > eps
}

// Update applies the damped share of the queued rotation.
func (c *Controller) Update() {
	k := c.Damping
	if k <= 0 || k > 1 {
		k = 1
	}

	c.Yaw += c.pendingYaw * k
	c.Pitch += c.pendingPitch * k
	c.pendingYaw *= 1 - k
	c.pendingPitch *= 1 - k

	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
	if !c.Pending() {
		c.pendingYaw, c.pendingPitch = 0, 0
	}
}

// Position returns the camera position for the current orbit.
func (c *Controller) Position() mgl32.Vec3 {
	sy, cy := math.Sincos(float64(c.Yaw))
	sp, cp := math.Sincos(float64(c.Pitch))
	r := float64(c.Radius)
	return c.Target.Add(mgl32.Vec3{
		float32(r * cp * sy),
		float32(r * sp),
		float32(r * cp * cy),
	})
}

// Apply points cam at the orbit.
func (c *Controller) Apply(cam *scene.Camera) {
	if cam == nil {
		return
	}
	cam.Position = c.Position()
	cam.Target = c.Target
	if cam.Up == (mgl32.Vec3{}) {
		cam.Up = mgl32.Vec3{0, 1, 0}
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
