package ecs_test

import (
	"fmt"

	"github.com/plus3/curvedemo/ecs"
)

type Orbit struct {
	Angle, Speed float64
}

type Tracer struct {
	Samples int
}

type OrbitSystem struct {
	Bodies ecs.Query[struct {
		*Orbit
		Tracer *Tracer `ecs:"optional"`
	}]
}

func (s *OrbitSystem) Execute(frame *ecs.UpdateFrame) {
	for body := range s.Bodies.Iter() {
		body.Orbit.Angle += body.Orbit.Speed * frame.DeltaTime
		if body.Tracer != nil {
			body.Tracer.Samples++
		}
	}
}

type TracerSpawner struct{}

func (TracerSpawner) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.Spawn(Tracer{Samples: int(frame.Frame)})
}

// ExampleScheduler registers a system, whose Query field is bound by
// Register, and steps it twice.
func ExampleScheduler() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Orbit](registry)
	ecs.RegisterComponent[Tracer](registry)
	storage := ecs.NewStorage(registry)

	traced := storage.Spawn(Orbit{Speed: 2}, Tracer{})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&OrbitSystem{})
	scheduler.Once(0.25)
	scheduler.Once(0.25)

	view := ecs.NewView[struct {
		*Orbit
		*Tracer
	}](storage)
	body := view.Get(traced)
	fmt.Printf("angle=%.2f samples=%d frames=%d\n", body.Orbit.Angle, body.Tracer.Samples, scheduler.Frames())
	// Output: angle=1.00 samples=2 frames=2
}

// ExampleNewView reads optional components, which are nil when an entity
// lacks them.
func ExampleNewView() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Orbit](registry)
	ecs.RegisterComponent[Tracer](registry)
	storage := ecs.NewStorage(registry)

	plain := storage.Spawn(Orbit{Speed: 1})

	view := ecs.NewView[struct {
		*Orbit
		Tracer *Tracer `ecs:"optional"`
	}](storage)
	body := view.Get(plain)
	fmt.Println(body.Orbit.Speed, body.Tracer == nil)
	// Output: 1 true
}

// ExampleNewSingleton shares one value between systems and the host.
func ExampleNewSingleton() {
	registry := ecs.NewComponentRegistry()
	storage := ecs.NewStorage(registry)

	type Settings struct{ Paused bool }
	settings := ecs.NewSingleton(storage, Settings{})
	settings.Get().Paused = true

	var read *Settings
	storage.ReadSingleton(&read)
	fmt.Println(read.Paused)
	// Output: true
}

// ExampleStorage_CreateEntityRef keeps a handle that notices deletion.
func ExampleStorage_CreateEntityRef() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Orbit](registry)
	storage := ecs.NewStorage(registry)

	id := storage.Spawn(Orbit{})
	ref := storage.CreateEntityRef(id)
	fmt.Println(ref.Valid())

	storage.Delete(id)
	fmt.Println(ref.Valid())
	// Output:
	// true
	// false
}

// ExampleCommands queues a spawn from inside a system; it lands when the
// frame ends.
func ExampleCommands() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Tracer](registry)
	storage := ecs.NewStorage(registry)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&TracerSpawner{})
	scheduler.Once(0)
	scheduler.Once(0)

	fmt.Println(ecs.NewQuery[struct{ *Tracer }](storage).Count())
	// Output: 2
}
