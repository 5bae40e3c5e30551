package orbit

import (
	"math"

	"github.com/plus3/curvedemo/ecs"
	"github.com/plus3/curvedemo/input"
	"github.com/plus3/curvedemo/scene"
)

// WheelZoom is the radius factor per wheel notch.
const WheelZoom = 0.95

// System feeds mouse input into a Controller and writes the result to the
// Camera singleton. Mouse input is ignored while an overlay captures it; the
// pending rotation still settles.
type System struct {
	Input  ecs.Singleton[input.State]
	Camera ecs.Singleton[scene.Camera]

	Controller *Controller

	dragging bool
	lastX    int
	lastY    int
}

func (s *System) Execute(frame *ecs.UpdateFrame) {
	cam := s.Camera.Get()
	if cam == nil {
		return
	}
	if s.Controller == nil {
		s.Controller = NewController(*cam)
	}

	state := s.Input.Get()
	if state != nil && !state.MouseCaptured {
		s.handleMouse(state, cam)
	} else {
		s.dragging = false
	}

	s.Controller.Update()
	s.Controller.Apply(cam)
}

func (s *System) handleMouse(state *input.State, cam *scene.Camera) {
	x, y := state.CursorPosition()
	rotating := state.MousePressed(input.MouseLeft)
	panning := state.MousePressed(input.MouseRight)

	if (rotating || panning) && s.dragging {
		dx, dy := float32(x-s.lastX), float32(y-s.lastY)
		height := float32(cam.Height)
		if height <= 0 {
			height = 1
		}
		if rotating {
			s.Controller.Rotate(-2*math.Pi*dx/height, 2*math.Pi*dy/height)
		} else {
			// World units per pixel at the target distance.
			fovy := float64(cam.FOVY)
			if fovy <= 0 {
				fovy = 45
			}
			scale := 2 * s.Controller.Radius * float32(math.Tan(fovy*math.Pi/360)) / height
			s.Controller.Pan(-dx*scale, dy*scale)
		}
	}
	s.dragging = rotating || panning
	s.lastX, s.lastY = x, y

	if _, wy := state.Wheel(); wy != 0 {
		s.Controller.Zoom(float32(math.Pow(WheelZoom, wy)))
	}
}
