package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"
	"github.com/plus3/curvedemo/demo"
	"github.com/plus3/curvedemo/ecs"
	"github.com/plus3/curvedemo/follow"
)

const meshHistory = 240

// curvePanel shows the follower state and offers buttons doing what w and s
// do on the keyboard.
type curvePanel struct {
	app     *demo.App
	status  *ecs.Singleton[follow.Status]
	history []float32
	ordered []float32
	index   int
}

func newCurvePanel(app *demo.App) *curvePanel {
	return &curvePanel{
		app:     app,
		status:  ecs.NewSingleton[follow.Status](app.Storage),
		history: make([]float32, meshHistory),
		ordered: make([]float32, meshHistory),
	}
}

func (p *curvePanel) Render() {
	status := p.app.Status()
	p.history[p.index] = status.Last.MeshX
	p.index = (p.index + 1) % len(p.history)

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 320), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(300, 260), imgui.CondOnce)
	if !imgui.BeginV("Curve", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	param := p.app.Handles.Param
	imgui.Text(fmt.Sprintf("t = %.1f (step %d)", param.T(), param.Step()))
	if imgui.Button("< s") {
		p.advance(follow.Backward)
	}
	imgui.SameLine()
	if imgui.Button("w >") {
		p.advance(follow.Forward)
	}

	orb := status.Last.Orb
	imgui.Text(fmt.Sprintf("Orb:  (%.3f, %.3f, %.3f)", orb.X(), orb.Y(), orb.Z()))
	imgui.Text(fmt.Sprintf("Mesh x: %.3f", status.Last.MeshX))
	imgui.Text(fmt.Sprintf("Ticks: %d  Advances: %d", status.Ticks, status.Advances))

	copy(p.ordered, p.history[p.index:])
	copy(p.ordered[len(p.history)-p.index:], p.history[:p.index])
	if implot.BeginPlotV("Mesh x", imgui.NewVec2(-1, 120), 0) {
		implot.SetupAxesV("Frame", "x", 0, implot.AxisFlagsAutoFit)
		implot.PlotLineFloatPtrInt("x", &p.ordered[0], int32(len(p.ordered)))
		implot.EndPlot()
	}

	imgui.End()
}

func (p *curvePanel) advance(d follow.Direction) {
	if !p.app.Handles.Param.Advance(d) {
		return
	}
	if status := p.status.Get(); status != nil {
		status.Advances++
	}
}
