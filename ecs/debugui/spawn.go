package debugui

import "github.com/plus3/curvedemo/ecs"

// RegisterDebugUIComponents registers the components this package spawns.
func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}

// SpawnDebugUI adds the entity inspector and performance panels to storage
// and installs the ImguiInputState singleton.
func SpawnDebugUI(storage *ecs.Storage, label LabelFunc, schedulers ...NamedScheduler) {
	ecs.NewSingleton[ImguiInputState](storage)

	inspector := NewEntityInspector(storage, label)
	stats := NewPerformanceStats(storage, 120, schedulers...)
	storage.Spawn(ImguiItem{Render: inspector.Render})
	storage.Spawn(ImguiItem{Render: stats.Render})
}
