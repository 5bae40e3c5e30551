package ecs_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/plus3/curvedemo/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type movementSystem struct {
	Movers ecs.Query[struct {
		*Position
		*Velocity
		Frozen *Frozen `ecs:"optional"`
	}]
	Clock ecs.Singleton[Clock]
}

func (s *movementSystem) Execute(frame *ecs.UpdateFrame) {
	if clock := s.Clock.Get(); clock != nil {
		clock.Elapsed += frame.DeltaTime
	}
	dt := float32(frame.DeltaTime)
	for m := range s.Movers.Iter() {
		if m.Frozen != nil {
			continue
		}
		m.Position.X += m.Velocity.DX * dt
		m.Position.Y += m.Velocity.DY * dt
	}
}

type recorderSystem struct {
	name  string
	log   *[]string
	frame uint64
}

func (s *recorderSystem) Execute(frame *ecs.UpdateFrame) {
	*s.log = append(*s.log, s.name)
	s.frame = frame.Frame
}

func TestSchedulerBindsFields(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton(storage, Clock{})
	mover := storage.Spawn(Position{}, Velocity{DX: 2, DY: -1})
	frozen := storage.Spawn(Position{}, Velocity{DX: 2}, Frozen{})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&movementSystem{})
	scheduler.Once(0.5)
	scheduler.Once(0.5)

	assert.Equal(t, Position{X: 2, Y: -1}, *ecs.ReadComponent[Position](storage, mover))
	assert.Equal(t, Position{}, *ecs.ReadComponent[Position](storage, frozen))

	var clock *Clock
	require.True(t, storage.ReadSingleton(&clock))
	assert.Equal(t, 1.0, clock.Elapsed)
}

func TestSchedulerRunsInRegistrationOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	var log []string
	last := &recorderSystem{name: "second", log: &log}

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&recorderSystem{name: "first", log: &log})
	scheduler.Register(last)

	scheduler.Once(0)
	scheduler.Once(0)
	scheduler.Once(0)

	assert.Equal(t, []string{"first", "second", "first", "second", "first", "second"}, log)
	assert.Equal(t, uint64(2), last.frame)
	assert.Equal(t, uint64(3), scheduler.Frames())
}

func TestSchedulerStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&movementSystem{})
	scheduler.Register(&reaperSystem{})

	stats := scheduler.Stats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(0), stats.TotalExecutions)
	assert.Equal(t, time.Duration(0), stats.Systems[0].MinDuration)

	for range 4 {
		scheduler.Once(1.0 / 60)
	}

	stats = scheduler.Stats()
	assert.Equal(t, uint64(4), stats.Frames)
	assert.Equal(t, int64(8), stats.TotalExecutions)
	require.Len(t, stats.Systems, 2)
	assert.Equal(t, "movementSystem", stats.Systems[0].Name)
	assert.Equal(t, "reaperSystem", stats.Systems[1].Name)
	for _, s := range stats.Systems {
		assert.Equal(t, int64(4), s.ExecutionCount)
		assert.LessOrEqual(t, s.MinDuration, s.AvgDuration)
		assert.LessOrEqual(t, s.AvgDuration, s.MaxDuration)
		assert.GreaterOrEqual(t, s.TotalDuration, s.MaxDuration)
	}
}

func TestSchedulerRunStopsWithContext(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton(storage, Clock{})
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&movementSystem{})

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	err := scheduler.Run(ctx, 5*time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Positive(t, scheduler.Frames())

	var clock *Clock
	require.True(t, storage.ReadSingleton(&clock))
	assert.Positive(t, clock.Elapsed)
}

func TestSingletonAccessor(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	clock := ecs.NewSingleton(storage, Clock{Elapsed: 3})
	assert.True(t, clock.Exists())
	assert.Equal(t, 3.0, clock.Get().Elapsed)

	// A second accessor does not overwrite the stored value.
	other := ecs.NewSingleton(storage, Clock{Elapsed: 100})
	assert.Same(t, clock.Get(), other.Get())

	storage.RemoveSingleton(reflect.TypeFor[Clock]())
	assert.False(t, clock.Exists())
	assert.Nil(t, other.Get())

	storage.AddSingleton(Clock{Elapsed: 5})
	require.True(t, clock.Exists())
	assert.Equal(t, 5.0, clock.Get().Elapsed)
}
