package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"
	"github.com/plus3/curvedemo/ecs"
)

// NamedScheduler labels a scheduler in the performance panel.
type NamedScheduler struct {
	Name      string
	Scheduler *ecs.Scheduler
}

// PerformanceStats shows frame times, storage occupancy and per-system
// timings of the given schedulers.
type PerformanceStats struct {
	storage    *ecs.Storage
	schedulers []NamedScheduler
	timer      FrameTimer

	history []float32
	ordered []float32
	index   int
}

func NewPerformanceStats(storage *ecs.Storage, historyFrames int, schedulers ...NamedScheduler) *PerformanceStats {
	if historyFrames < 2 {
		historyFrames = 2
	}
	return &PerformanceStats{
		storage:    storage,
		schedulers: schedulers,
		timer:      NewFrameTimer(),
		history:    make([]float32, historyFrames),
		ordered:    make([]float32, historyFrames),
	}
}

func (ps *PerformanceStats) Render() {
	ps.history[ps.index] = ps.timer.DeltaTime() * 1000
	ps.index = (ps.index + 1) % len(ps.history)

	imgui.SetNextWindowPosV(imgui.NewVec2(450, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(340, 300), imgui.CondOnce)
	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := ps.storage.CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d  Archetypes: %d  Singletons: %d",
		stats.TotalEntityCount, stats.ArchetypeCount, stats.SingletonCount))

	var avg float32
	for _, ft := range ps.history {
		avg += ft
	}
	avg /= float32(len(ps.history))
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Frame: %.2f ms (%.0f FPS)", avg, 1000/avg))
	}

	copy(ps.ordered, ps.history[ps.index:])
	copy(ps.ordered[len(ps.history)-ps.index:], ps.history[:ps.index])
	if implot.BeginPlotV("Frame time", imgui.NewVec2(-1, 120), 0) {
		implot.SetupAxesV("Frame", "ms", 0, implot.AxisFlagsAutoFit)
		implot.PlotLineFloatPtrInt("ms", &ps.ordered[0], int32(len(ps.ordered)))
		implot.EndPlot()
	}

	for _, ns := range ps.schedulers {
		ps.renderScheduler(ns)
	}

	if imgui.TreeNodeStr("Archetypes") {
		for _, arch := range stats.ArchetypeBreakdown {
			imgui.BulletText(fmt.Sprintf("0x%08X  %d entities  %v", arch.ID, arch.EntityCount, arch.ComponentTypes))
		}
		imgui.TreePop()
	}
	if imgui.TreeNodeStr("Singletons") {
		for _, name := range stats.SingletonTypes {
			imgui.BulletText(name)
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (ps *PerformanceStats) renderScheduler(ns NamedScheduler) {
	if ns.Scheduler == nil || !imgui.TreeNodeStr(ns.Name) {
		return
	}
	stats := ns.Scheduler.Stats()
	imgui.Text(fmt.Sprintf("Frames: %d  Systems: %d", stats.Frames, stats.SystemCount))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSizingFixedFit
	if imgui.BeginTableV(ns.Name+"##systems", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Avg (ms)")
		imgui.TableSetupColumn("Max (ms)")
		imgui.TableSetupColumn("Last (ms)")
		imgui.TableHeadersRow()
		for _, sys := range stats.Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(sys.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.3f", millis(sys.AvgDuration)))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.3f", millis(sys.MaxDuration)))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.3f", millis(sys.LastDuration)))
		}
		imgui.EndTable()
	}
	imgui.TreePop()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// FrameTimer measures wall time between calls.
type FrameTimer struct {
	last time.Time
}

func NewFrameTimer() FrameTimer {
	return FrameTimer{last: time.Now()}
}

// DeltaTime returns the seconds since the previous call.
func (ft *FrameTimer) DeltaTime() float32 {
	now := time.Now()
	d := float32(now.Sub(ft.last).Seconds())
	ft.last = now
	return d
}
