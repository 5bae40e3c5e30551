package scene

import "github.com/go-gl/mathgl/mgl32"

// Camera is a perspective camera stored as a singleton. FOVY is the vertical
// field of view in degrees; Width and Height are the viewport in pixels.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	FOVY float32
	Near float32
	Far  float32

	Width  int
	Height int
}

// NewCamera returns a camera with a 45 degree field of view looking down -Z.
func NewCamera(width, height int) Camera {
	return Camera{
		Target: mgl32.Vec3{0, 0, -1},
		Up:     mgl32.Vec3{0, 1, 0},
		FOVY:   45,
		Near:   0.1,
		Far:    2000,
		Width:  width,
		Height: height,
	}
}

// Aspect returns Width/Height, or 1 for an empty viewport.
func (c Camera) Aspect() float32 {
	if c.Width <= 0 || c.Height <= 0 {
		return 1
	}
	return float32(c.Width) / float32(c.Height)
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target mgl32.Vec3) {
	c.Target = target
}

// View returns the world-to-camera matrix.
func (c Camera) View() mgl32.Mat4 {
	up := c.Up
	if up == (mgl32.Vec3{}) {
		up = mgl32.Vec3{0, 1, 0}
	}
	return mgl32.LookAtV(c.Position, c.Target, up)
}

// Projection returns the perspective projection for the current viewport.
func (c Camera) Projection() mgl32.Mat4 {
	fovy := c.FOVY
	if fovy <= 0 {
		fovy = 45
	}
	near, far := c.Near, c.Far
	if near <= 0 {
		near = 0.1
	}
	if far <= near {
		far = near + 1000
	}
	return mgl32.Perspective(mgl32.DegToRad(fovy), c.Aspect(), near, far)
}

// ViewProjection returns Projection * View.
func (c Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}
