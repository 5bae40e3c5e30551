package ecs

// System is one unit of per-frame behavior. Exported Query and Singleton
// fields are bound by Scheduler.Register; other fields persist across frames.
type System interface {
	Execute(frame *UpdateFrame)
}
