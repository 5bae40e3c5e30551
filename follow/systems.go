package follow

import (
	"errors"

	"github.com/plus3/curvedemo/ecs"
	"github.com/plus3/curvedemo/input"
	"github.com/plus3/curvedemo/render"
	"github.com/plus3/curvedemo/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrIncompleteTrack is returned by NewTrack when the parameter or curve is missing.
var ErrIncompleteTrack = errors.New("follow: track needs a parameter and a curve")

// FollowerOrb marks an entity whose whole position tracks the curve point in
// world space.
type FollowerOrb struct{}

// DrivenMesh marks an entity whose X position tracks the curve point's Y
// scaled by MeshScale. Its other axes are left alone.
type DrivenMesh struct{}

// Track is the singleton owning the loop state: the parameter, the curve and
// the group entity whose translation places the curve in the world.
type Track struct {
	Param *Parameter
	Curve Sampler
	Group *ecs.EntityRef
}

// NewTrack validates and builds a Track.
func NewTrack(param *Parameter, curve Sampler, group *ecs.EntityRef) (Track, error) {
	if param == nil || curve == nil {
		return Track{}, ErrIncompleteTrack
	}
	return Track{Param: param, Curve: curve, Group: group}, nil
}

// Status records what the loop did last; the render side and the debug UI
// read it.
type Status struct {
	Ticks uint64
	// Advances counts key presses that moved t. A backward press at t = 0
	// does not count.
	Advances uint64
	Last     Sample
}

// RegisterComponents registers the follower markers with registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[FollowerOrb](registry)
	ecs.RegisterComponent[DrivenMesh](registry)
}

// GroupTranslation returns the position of the group entity, or zero when
// the group is unset or gone.
func GroupTranslation(storage *ecs.Storage, group *ecs.EntityRef) r3.Vec {
	id, ok := storage.ResolveEntityRef(group)
	if !ok {
		return r3.Vec{}
	}
	t := ecs.ReadComponent[scene.Transform](storage, id)
	if t == nil {
		return r3.Vec{}
	}
	return r3.Vec{X: float64(t.Position.X()), Y: float64(t.Position.Y()), Z: float64(t.Position.Z())}
}

// Binding maps a key to a direction.
type Binding struct {
	Key       input.Key
	Direction Direction
}

// DefaultBindings is w = forward, s = backward.
var DefaultBindings = []Binding{
	{Key: input.KeyW, Direction: Forward},
	{Key: input.KeyS, Direction: Backward},
}

// KeyDispatchSystem turns key presses into Parameter advances. It does
// nothing while the keyboard is captured by an overlay.
type KeyDispatchSystem struct {
	Input  ecs.Singleton[input.State]
	Track  ecs.Singleton[Track]
	Status ecs.Singleton[Status]

	Bindings []Binding
}

func (s *KeyDispatchSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.Input.Get()
	track := s.Track.Get()
	if state == nil || track == nil || track.Param == nil || state.KeyboardCaptured {
		return
	}

	bindings := s.Bindings
	if bindings == nil {
		bindings = DefaultBindings
	}

	for _, b := range bindings {
		if !state.KeyJustPressed(b.Key) {
			continue
		}
		if !track.Param.Advance(b.Direction) {
			continue
		}
		if status := s.Status.Get(); status != nil {
			status.Advances++
		}
	}
}

// CurveFollowSystem is the per-frame update: it samples the curve at the
// current parameter, moves the followers and requests a render.
type CurveFollowSystem struct {
	Orbs ecs.Query[struct {
		*scene.Transform
		*FollowerOrb
	}]
	Meshes ecs.Query[struct {
		*scene.Transform
		*DrivenMesh
	}]
	Track  ecs.Singleton[Track]
	Status ecs.Singleton[Status]
	Render ecs.Singleton[render.Request]
}

func (s *CurveFollowSystem) Execute(frame *ecs.UpdateFrame) {
	track := s.Track.Get()
	if track == nil || track.Param == nil || track.Curve == nil {
		return
	}

	sample := Tick(track.Param, track.Curve, GroupTranslation(frame.Storage, track.Group))

	for item := range s.Orbs.Iter() {
		item.Transform.Position = sample.Orb
	}
	for item := range s.Meshes.Iter() {
		item.Transform.Position[0] = sample.MeshX
	}

	if status := s.Status.Get(); status != nil {
		status.Ticks++
		status.Last = sample
	}
	if req := s.Render.Get(); req != nil {
		req.Mark()
	}
}
