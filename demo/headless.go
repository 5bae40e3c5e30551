package demo

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/curvedemo/ecs"
	"github.com/plus3/curvedemo/input"
	"github.com/plus3/curvedemo/scene"
)

// HeadlessOptions controls RunHeadless.
type HeadlessOptions struct {
	// Commands is read line by line; each whitespace-separated word naming a
	// key ("w", "s") presses it once. Nil reads nothing.
	Commands io.Reader
	// Logf receives progress lines. Nil discards them.
	Logf func(format string, args ...any)
	// GCPauseMetrics adds GC pause totals to the report.
	GCPauseMetrics bool
}

// RunHeadless drives cfg without a window: a ticker at cfg.TPS runs the
// update and render schedulers, and key presses come from opts.Commands. It
// stops after cfg.Ticks ticks, or when ctx is done, and returns a report of
// the run either way.
func RunHeadless(ctx context.Context, cfg Config, opts HeadlessOptions) (*Report, error) {
	script := input.NewScript()
	app, err := NewApp(cfg, script, nil)
	if err != nil {
		return nil, err
	}

	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	if opts.Commands != nil {
		go func() {
			if err := FeedCommands(opts.Commands, script); err != nil {
				logf("reading commands: %v", err)
			}
		}()
	}

	report := &Report{
		TPS:            cfg.TPS,
		Entities:       app.Storage.CollectStats().TotalEntityCount,
		GCPauseMetrics: opts.GCPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	interval := time.Second / time.Duration(cfg.TPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	start := time.Now()
	last := start
	var runErr error

Loop:
	for {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
			break Loop
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			script.Step()
			updateStart := time.Now()
			app.Update.Once(dt)
			renderStart := time.Now()
			app.Render.Once(dt)
			report.UpdateTime.Add(renderStart.Sub(updateStart))
			report.RenderTime.Add(time.Since(renderStart))
			report.Ticks++

			if cfg.LogEvery > 0 && report.Ticks%cfg.LogEvery == 0 {
				logf("%s", app.Describe())
			}
			if cfg.Ticks > 0 && report.Ticks >= cfg.Ticks {
				break Loop
			}
		}
	}

	report.TotalTime = time.Since(start)
	report.UpdateTime.Finalize()
	report.RenderTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Final = app.Status()
	report.Orb = app.position(app.Handles.Orb)
	report.Mesh = app.position(app.Handles.Mesh)
	return report, runErr
}

// FeedCommands reads r until EOF and presses every key it names on script.
// Unknown words are skipped.
func FeedCommands(r io.Reader, script *input.Script) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		for _, word := range strings.Fields(strings.ToLower(scanner.Text())) {
			if k, ok := input.ParseKey(word); ok {
				script.Press(k)
			}
		}
	}
	return scanner.Err()
}

// Describe is a one-line summary of the follower state.
func (a *App) Describe() string {
	orb := a.position(a.Handles.Orb)
	return fmt.Sprintf("frame=%d t=%.1f orb=(%.3f, %.3f, %.3f) mesh.x=%.3f advances=%d",
		a.Update.Frames(), a.Handles.Param.T(), orb.X(), orb.Y(), orb.Z(),
		a.position(a.Handles.Mesh).X(), a.Status().Advances)
}

func (a *App) position(id ecs.EntityId) mgl32.Vec3 {
	if t := ecs.ReadComponent[scene.Transform](a.Storage, id); t != nil {
		return t.Position
	}
	return mgl32.Vec3{}
}
