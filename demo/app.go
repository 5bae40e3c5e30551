package demo

import (
	"github.com/plus3/curvedemo/ecs"
	"github.com/plus3/curvedemo/follow"
	"github.com/plus3/curvedemo/input"
	"github.com/plus3/curvedemo/scene"
)

// App is a built demo world with its two schedulers. Update moves things,
// Render rebuilds the DrawList.
type App struct {
	Storage *ecs.Storage
	Handles *Handles
	Update  *ecs.Scheduler
	Render  *ecs.Scheduler
}

// NewApp builds the scene for cfg into a fresh storage. Extra components are
// registered with registerExtra before the storage is created; before runs
// ahead of the demo's own update systems.
func NewApp(cfg Config, src input.Source, registerExtra func(*ecs.ComponentRegistry), before ...ecs.System) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	registry := NewRegistry()
	if registerExtra != nil {
		registerExtra(registry)
	}
	storage := ecs.NewStorage(registry)

	handles, err := Build(storage, Options{
		Width:       cfg.Width,
		Height:      cfg.Height,
		InitialStep: cfg.Step,
		Input:       src,
	})
	if err != nil {
		return nil, err
	}

	return &App{
		Storage: storage,
		Handles: handles,
		Update:  NewUpdateScheduler(storage, before...),
		Render:  NewRenderScheduler(storage),
	}, nil
}

// Status returns the follower status singleton.
func (a *App) Status() follow.Status {
	if s := ecs.NewSingleton[follow.Status](a.Storage).Get(); s != nil {
		return *s
	}
	return follow.Status{}
}

// Label names entities by their scene.Name component.
func Label(storage *ecs.Storage, id ecs.EntityId) string {
	if name := ecs.ReadComponent[scene.Name](storage, id); name != nil {
		return string(*name)
	}
	return ""
}
