package ecs_test

import (
	"testing"

	"github.com/plus3/curvedemo/ecs"
	"github.com/stretchr/testify/assert"
)

type spawnerSystem struct {
	Labels ecs.Query[struct{ *Label }]
	seen   []int
}

func (s *spawnerSystem) Execute(frame *ecs.UpdateFrame) {
	s.seen = append(s.seen, s.Labels.Count())
	frame.Commands.Spawn(Label("spawned"))
	frame.Commands.Defer(func() {
		s.seen = append(s.seen, s.Labels.Count())
	})
}

func TestCommandsApplyAfterFrame(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	system := &spawnerSystem{}
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(system)

	scheduler.Once(0)
	scheduler.Once(0)

	// Spawns are invisible until the frame ends, and deferred functions run
	// after them.
	assert.Equal(t, []int{0, 1, 1, 2}, system.seen)
}

type reaperSystem struct {
	Hurt ecs.Query[struct{ *Health }]
}

func (s *reaperSystem) Execute(frame *ecs.UpdateFrame) {
	for id, h := range s.Hurt.Entries() {
		if h.Health.Current <= 0 {
			frame.Commands.Delete(id)
		}
	}
}

func TestCommandsDeleteDuringIteration(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	alive := storage.Spawn(Health{Current: 1, Max: 1})
	dead := storage.Spawn(Health{Current: 0, Max: 1})
	deadToo := storage.Spawn(Health{Current: -3, Max: 1})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&reaperSystem{})
	scheduler.Once(0)

	assert.NotNil(t, ecs.ReadComponent[Health](storage, alive))
	assert.Nil(t, ecs.ReadComponent[Health](storage, dead))
	assert.Nil(t, ecs.ReadComponent[Health](storage, deadToo))
}

func TestCommandsFlushOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	old := storage.Spawn(Label("old"))

	var cmds ecs.Commands
	var order []string
	cmds.Defer(func() { order = append(order, "defer") })
	cmds.Spawn(Label("new"))
	cmds.Delete(old)
	assert.Equal(t, 3, cmds.Pending())

	cmds.Flush(storage)

	assert.Equal(t, 0, cmds.Pending())
	assert.Equal(t, []string{"defer"}, order)
	// The delete frees the slot before the spawn takes it.
	assert.Equal(t, Label("new"), *ecs.ReadComponent[Label](storage, old))

	cmds.Flush(storage)
	assert.Len(t, order, 1)
}
