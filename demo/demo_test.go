package demo_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/curvedemo/demo"
	"github.com/plus3/curvedemo/ecs"
	"github.com/plus3/curvedemo/follow"
	"github.com/plus3/curvedemo/input"
	"github.com/plus3/curvedemo/render"
	"github.com/plus3/curvedemo/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type app struct {
	storage *ecs.Storage
	handles *demo.Handles
	script  *input.Script
	update  *ecs.Scheduler
	draw    *ecs.Scheduler
}

func newApp(t *testing.T, step int) *app {
	t.Helper()

	storage := ecs.NewStorage(demo.NewRegistry())
	script := input.NewScript()
	handles, err := demo.Build(storage, demo.Options{Width: 800, Height: 600, InitialStep: step, Input: script})
	require.NoError(t, err)

	return &app{
		storage: storage,
		handles: handles,
		script:  script,
		update:  demo.NewUpdateScheduler(storage),
		draw:    demo.NewRenderScheduler(storage),
	}
}

func (a *app) frame() {
	a.script.Step()
	a.update.Once(1.0 / 60.0)
	a.draw.Once(1.0 / 60.0)
}

func (a *app) position(id ecs.EntityId) mgl32.Vec3 {
	return ecs.ReadComponent[scene.Transform](a.storage, id).Position
}

func TestBuildRejectsBadOptions(t *testing.T) {
	storage := ecs.NewStorage(demo.NewRegistry())

	_, err := demo.Build(storage, demo.Options{Width: 0, Height: 600})
	assert.Error(t, err)

	_, err = demo.Build(storage, demo.Options{Width: 800, Height: 600, InitialStep: 10})
	assert.Error(t, err)
}

func TestFirstFrame(t *testing.T) {
	a := newApp(t, 0)
	a.frame()

	assert.Equal(t, mgl32.Vec3{-3, 1.5, -2}, a.position(a.handles.Orb))
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, a.position(a.handles.Mesh))

	out := ecs.NewSingleton[render.DrawList](a.storage).Get()
	assert.Equal(t, scene.Hex(0xf0f0f0), out.Background)
	assert.Positive(t, out.Count(render.LayerScene, render.KindTriangle))
	assert.Equal(t, demo.LineSegments, out.Count(render.LayerScene, render.KindSegment))
	assert.Positive(t, out.Count(render.LayerGround, render.KindSegment))
	assert.Positive(t, out.Count(render.LayerShadow, render.KindTriangle))
	assert.InDelta(t, 0.2, out.ShadowOpacity, 1e-6)
	assert.Equal(t, uint64(1), out.Builds)

	a.draw.Once(0)
	assert.Equal(t, uint64(1), out.Builds, "no update, no rebuild")
	a.frame()
	assert.Equal(t, uint64(2), out.Builds)
}

func TestCurveLineIsInGroup(t *testing.T) {
	a := newApp(t, 0)
	line := ecs.ReadComponent[scene.Line](a.storage, a.handles.Line)
	require.NotNil(t, line)
	require.Len(t, line.Points, demo.LineSegments+1)

	start := mgl32.TransformCoordinate(line.Points[0], scene.WorldMatrix(a.storage, a.handles.Line))
	assert.True(t, start.ApproxEqual(mgl32.Vec3{-3, 1.5, -2}), "got %v", start)
}

func TestKeysWalkTheCurve(t *testing.T) {
	a := newApp(t, 0)
	a.frame()

	var seen []float64
	for i := 0; i < follow.Steps; i++ {
		a.script.Press(input.KeyW)
		a.frame()

		status := ecs.NewSingleton[follow.Status](a.storage).Get()
		seen = append(seen, status.Last.T)

		point := a.handles.Curve.PointAt(a.handles.Param.T())
		orb := a.position(a.handles.Orb)
		assert.InDelta(t, point.X+float64(demo.GroupPosition.X()), float64(orb.X()), 1e-5)
		assert.InDelta(t, point.Y+float64(demo.GroupPosition.Y()), float64(orb.Y()), 1e-5)
		assert.Equal(t, float32(point.Y*follow.MeshScale), a.position(a.handles.Mesh).X())
	}

	assert.InDeltaSlice(t, []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 0}, seen, 1e-12)
	assert.Equal(t, mgl32.Vec3{-3, 1.5, -2}, a.position(a.handles.Orb), "back at the start")
}

func TestBackwardKeyAtStartDoesNothing(t *testing.T) {
	a := newApp(t, 0)
	a.script.Press(input.KeyS)
	a.frame()

	assert.Equal(t, 0.0, a.handles.Param.T())
	assert.Equal(t, mgl32.Vec3{-3, 1.5, -2}, a.position(a.handles.Orb))
	assert.Equal(t, uint64(0), ecs.NewSingleton[follow.Status](a.storage).Get().Advances)
}

func TestInitialStep(t *testing.T) {
	a := newApp(t, 5)
	a.frame()

	point := a.handles.Curve.PointAt(0.5)
	assert.Equal(t, float32(point.Y*follow.MeshScale), a.position(a.handles.Mesh).X())
}
