// Package input describes the keyboard and mouse state that systems read each
// frame, independent of the window backend that produces it.
package input

// Key identifies a keyboard key the demo reacts to.
type Key uint8

const (
	KeyW Key = iota
	KeyS
	KeyQ
	KeyEscape
	keyCount
)

func (k Key) String() string {
	switch k {
	case KeyW:
		return "w"
	case KeyS:
		return "s"
	case KeyQ:
		return "q"
	case KeyEscape:
		return "escape"
	default:
		return "unknown"
	}
}

// ParseKey maps a key name as typed on a terminal to a Key.
func ParseKey(name string) (Key, bool) {
	for k := Key(0); k < keyCount; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// Source is polled once per frame. KeyJustPressed reports a key at most once
// per physical press.
type Source interface {
	KeyJustPressed(k Key) bool
	CursorPosition() (x, y int)
	MousePressed(b MouseButton) bool
	Wheel() (dx, dy float64)
}

// State is the singleton systems read. The host replaces Source before each
// update; a nil Source reads as no input. The Captured flags are set when an
// overlay (the debug UI) is consuming that device this frame.
type State struct {
	Source Source

	KeyboardCaptured bool
	MouseCaptured    bool
}

// KeyJustPressed is Source.KeyJustPressed with a nil guard.
func (s *State) KeyJustPressed(k Key) bool {
	return s != nil && s.Source != nil && s.Source.KeyJustPressed(k)
}

// CursorPosition is Source.CursorPosition with a nil guard.
func (s *State) CursorPosition() (int, int) {
	if s == nil || s.Source == nil {
		return 0, 0
	}
	return s.Source.CursorPosition()
}

// MousePressed is Source.MousePressed with a nil guard.
func (s *State) MousePressed(b MouseButton) bool {
	return s != nil && s.Source != nil && s.Source.MousePressed(b)
}

// Wheel is Source.Wheel with a nil guard.
func (s *State) Wheel() (float64, float64) {
	if s == nil || s.Source == nil {
		return 0, 0
	}
	return s.Source.Wheel()
}
