// Package demo assembles the curve-follower scene: the curve and its group,
// the driven box, the follower orb, lights, ground and camera, plus the
// systems that animate and render them.
package demo

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/curvedemo/curve"
	"github.com/plus3/curvedemo/ecs"
	"github.com/plus3/curvedemo/follow"
	"github.com/plus3/curvedemo/input"
	"github.com/plus3/curvedemo/orbit"
	"github.com/plus3/curvedemo/render"
	"github.com/plus3/curvedemo/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

// LineSegments is how many pieces the curve is drawn with.
const LineSegments = 50

// ControlPoints returns the control points of the demo curve.
func ControlPoints() []r3.Vec {
	return []r3.Vec{
		{X: -1, Y: 0, Z: 0},
		{X: -0.3, Y: 0.3, Z: 0},
		{X: 0, Y: 0, Z: 0},
		{X: 0.3, Y: -0.3, Z: 0},
		{X: 1, Y: 0, Z: 0},
	}
}

// GroupPosition is where the curve's group sits in the world.
var GroupPosition = mgl32.Vec3{-2, 1.5, -2}

// CameraPosition is the initial eye position; the camera looks at the origin.
var CameraPosition = mgl32.Vec3{-5, 3, 10}

// Options configures Build.
type Options struct {
	Width  int
	Height int
	// InitialStep is the starting parameter in tenths.
	InitialStep int
	// Input is the source key presses are read from. Nil reads no input.
	Input input.Source
}

// Handles are the entities and state created by Build.
type Handles struct {
	Group  ecs.EntityId
	Line   ecs.EntityId
	Mesh   ecs.EntityId
	Orb    ecs.EntityId
	Ground ecs.EntityId
	Grid   ecs.EntityId
	Light  ecs.EntityId

	Curve *curve.CatmullRom
	Param *follow.Parameter
}

// NewRegistry returns a registry with every component the demo spawns.
func NewRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	scene.RegisterComponents(registry)
	follow.RegisterComponents(registry)
	return registry
}

// Build spawns the demo scene into storage and installs its singletons.
func Build(storage *ecs.Storage, opts Options) (*Handles, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("demo: invalid viewport %dx%d", opts.Width, opts.Height)
	}

	spline, err := curve.NewCatmullRom(ControlPoints(), curve.Options{})
	if err != nil {
		return nil, fmt.Errorf("demo: build curve: %w", err)
	}
	param, err := follow.NewParameter(opts.InitialStep)
	if err != nil {
		return nil, fmt.Errorf("demo: %w", err)
	}

	h := &Handles{Curve: spline, Param: param}

	ecs.NewSingleton(storage, scene.Background{Color: scene.Hex(0xf0f0f0)})

	storage.Spawn(scene.Name("ambient"), scene.AmbientLight{Color: scene.Hex(0xf0f0f0), Intensity: 1})
	h.Light = storage.Spawn(
		scene.Name("spot"),
		scene.At(mgl32.Vec3{5, 13, 5}),
		scene.SpotLight{Color: scene.Hex(0xffffff), Intensity: 1, Angle: math.Pi * 0.2, CastShadow: true},
	)

	h.Ground = storage.Spawn(
		scene.Name("ground"),
		scene.Transform{Position: mgl32.Vec3{0, -0.5, 0}, Rotation: mgl32.Vec3{-math.Pi / 2, 0, 0}},
		scene.Mesh{
			Geometry:      scene.Plane(2000, 2000),
			Material:      scene.Material{Kind: scene.MaterialShadow, Opacity: 0.2},
			ReceiveShadow: true,
		},
	)
	h.Grid = storage.Spawn(
		scene.Name("grid"),
		scene.At(mgl32.Vec3{0, -0.5, 0}),
		scene.GridHelper{Size: 20, Divisions: 20, Opacity: 0.25},
	)

	h.Group = storage.Spawn(scene.Name("curve group"), scene.Group{}, scene.At(GroupPosition))
	groupRef := storage.CreateEntityRef(h.Group)
	h.Line = storage.Spawn(
		scene.Name("curve"),
		scene.At(mgl32.Vec3{}),
		scene.Parent{Ref: groupRef},
		scene.Line{Points: toVec3s(spline.Points(LineSegments)), Color: scene.Hex(0xaaaaaa)},
	)

	h.Mesh = storage.Spawn(
		scene.Name("box"),
		scene.At(mgl32.Vec3{}),
		scene.Mesh{
			Geometry:   scene.Box(1, 1, 1, 5),
			Material:   scene.Material{Kind: scene.MaterialLambert, Color: scene.Hex(0xcc3fd3)},
			CastShadow: true,
		},
		follow.DrivenMesh{},
	)
	h.Orb = storage.Spawn(
		scene.Name("orb"),
		scene.Transform{Scale: mgl32.Vec3{0.1, 0.1, 0.1}},
		scene.Mesh{
			Geometry: scene.Sphere(32, 16),
			Material: scene.Material{Kind: scene.MaterialBasic, Color: scene.Hex(0x009900)},
		},
		follow.FollowerOrb{},
	)

	cam := scene.NewCamera(opts.Width, opts.Height)
	cam.Position = CameraPosition
	cam.LookAt(mgl32.Vec3{})
	ecs.NewSingleton(storage, cam)

	track, err := follow.NewTrack(param, spline, groupRef)
	if err != nil {
		return nil, err
	}
	ecs.NewSingleton(storage, track)
	ecs.NewSingleton(storage, follow.Status{})
	ecs.NewSingleton(storage, input.State{Source: opts.Input})
	ecs.NewSingleton(storage, render.DrawList{})
	ecs.NewSingleton(storage, render.Request{})

	return h, nil
}

// NewUpdateScheduler returns the per-frame update: the given systems first
// (input plumbing), then key dispatch, camera orbit and the curve follower.
func NewUpdateScheduler(storage *ecs.Storage, before ...ecs.System) *ecs.Scheduler {
	s := ecs.NewScheduler(storage)
	for _, sys := range before {
		s.Register(sys)
	}
	s.Register(&follow.KeyDispatchSystem{})
	s.Register(&orbit.System{})
	s.Register(&follow.CurveFollowSystem{})
	return s
}

// NewRenderScheduler returns the scheduler that rebuilds the DrawList.
func NewRenderScheduler(storage *ecs.Storage) *ecs.Scheduler {
	s := ecs.NewScheduler(storage)
	s.Register(&render.System{})
	return s
}

func toVec3s(points []r3.Vec) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(points))
	for i, p := range points {
		out[i] = mgl32.Vec3{float32(p.X), float32(p.Y), float32(p.Z)}
	}
	return out
}
