package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/curvedemo/demo"
	"github.com/plus3/curvedemo/ecs"
	"github.com/plus3/curvedemo/ecs/debugui"
	debugui_ebiten "github.com/plus3/curvedemo/ecs/debugui/ebiten"
	"github.com/plus3/curvedemo/input"
	"github.com/plus3/curvedemo/render"
	"github.com/plus3/curvedemo/scene"
)

const windowTitle = "Curve follower"

// Game implements ebiten.Game around a demo.App. The ImGui backend is nil
// when the debug UI is off.
type Game struct {
	app     *demo.App
	dt      float64
	backend *ecs.Singleton[debugui_ebiten.ImguiBackend]
	camera  *ecs.Singleton[scene.Camera]
	input   *ecs.Singleton[input.State]
	list    *ecs.Singleton[render.DrawList]
	painter painter
}

// captureSystem forwards ImGui's capture flags to the demo's input state so
// typing into a panel does not move the orb.
type captureSystem struct {
	Imgui ecs.Singleton[debugui.ImguiInputState]
	Input ecs.Singleton[input.State]
}

func (s *captureSystem) Execute(frame *ecs.UpdateFrame) {
	imguiState, state := s.Imgui.Get(), s.Input.Get()
	if imguiState == nil || state == nil {
		return
	}
	state.KeyboardCaptured = imguiState.WantCaptureKeyboard
	state.MouseCaptured = imguiState.WantCaptureMouse
}

func newGame(cfg demo.Config) (*Game, error) {
	var (
		register func(*ecs.ComponentRegistry)
		before   []ecs.System
	)
	if cfg.DebugUI {
		register = debugui.RegisterDebugUIComponents
		before = []ecs.System{&debugui.ImguiSystem{}, &captureSystem{}}
	}

	app, err := demo.NewApp(cfg, ebitenSource{}, register, before...)
	if err != nil {
		return nil, err
	}

	g := &Game{
		app:    app,
		dt:     1.0 / float64(cfg.TPS),
		camera: ecs.NewSingleton[scene.Camera](app.Storage),
		input:  ecs.NewSingleton[input.State](app.Storage),
		list:   ecs.NewSingleton[render.DrawList](app.Storage),
	}

	ebiten.SetTPS(cfg.TPS)
	if cfg.DebugUI {
		ecs.NewSingleton(app.Storage, debugui_ebiten.NewImguiBackend(windowTitle, cfg.Width, cfg.Height))
		g.backend = ecs.NewSingleton[debugui_ebiten.ImguiBackend](app.Storage)

		debugui.SpawnDebugUI(app.Storage, demo.Label,
			debugui.NamedScheduler{Name: "Update", Scheduler: app.Update},
			debugui.NamedScheduler{Name: "Render", Scheduler: app.Render},
		)
		app.Storage.Spawn(debugui.ImguiItem{Render: newCurvePanel(app).Render})
	} else {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
		ebiten.SetWindowTitle(windowTitle)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if state := g.input.Get(); inpututil.IsKeyJustPressed(ebiten.KeyQ) && (state == nil || !state.KeyboardCaptured) {
		return ebiten.Termination
	}

	if g.backend != nil {
		g.backend.Get().BeginFrame()
	}
	g.app.Update.Once(g.dt)
	if g.backend != nil {
		g.backend.Get().EndFrame()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.app.Render.Once(0)
	if list := g.list.Get(); list != nil {
		g.painter.Paint(screen, list)
	}

	if g.backend != nil {
		g.backend.Get().Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if cam := g.camera.Get(); cam != nil {
		cam.Width = outsideWidth
		cam.Height = outsideHeight
	}
	if g.backend != nil {
		g.backend.Get().Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
