package input

import "sync"

// Script is a Source fed programmatically: tests and the headless runner push
// key presses from any goroutine, and Step makes the next batch visible to
// the frame that follows. Mouse state is set directly.
type Script struct {
	mu      sync.Mutex
	queued  []Key
	current [keyCount]bool

	cursorX, cursorY int
	buttons          [3]bool
	wheelX, wheelY   float64
}

// NewScript returns an empty scripted source.
func NewScript() *Script {
	return &Script{}
}

// Press queues one press of k for the next frame.
func (s *Script) Press(keys ...Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queued = append(s.queued, keys...)
}

// Step starts a new frame: queued presses become visible, at most one per key,
// and the rest stay queued. The wheel delta is consumed.
func (s *Script) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = [keyCount]bool{}
	remaining := s.queued[:0]
	for _, k := range s.queued {
		if k >= keyCount {
			continue
		}
		if s.current[k] {
			remaining = append(remaining, k)
			continue
		}
		s.current[k] = true
	}
	s.queued = remaining
	s.wheelX, s.wheelY = 0, 0
}

// Pending returns the number of presses not yet delivered.
func (s *Script) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queued)
}

// MoveCursor sets the cursor position.
func (s *Script) MoveCursor(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursorX, s.cursorY = x, y
}

// SetButton sets a mouse button state.
func (s *Script) SetButton(b MouseButton, down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if int(b) < len(s.buttons) {
		s.buttons[b] = down
	}
}

// Scroll sets the wheel delta reported until the next Step.
func (s *Script) Scroll(dx, dy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wheelX, s.wheelY = dx, dy
}

func (s *Script) KeyJustPressed(k Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return k < keyCount && s.current[k]
}

func (s *Script) CursorPosition() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursorX, s.cursorY
}

func (s *Script) MousePressed(b MouseButton) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int(b) < len(s.buttons) && s.buttons[b]
}

func (s *Script) Wheel() (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wheelX, s.wheelY
}
