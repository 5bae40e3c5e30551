package ecs

import "unsafe"

// iface mirrors the runtime layout of a non-empty interface value.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}
