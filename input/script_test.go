package input_test

import (
	"testing"

	"github.com/plus3/curvedemo/input"
	"github.com/stretchr/testify/assert"
)

func TestScriptDeliversOnePressPerKeyPerFrame(t *testing.T) {
	s := input.NewScript()
	s.Press(input.KeyW, input.KeyW, input.KeyS)

	assert.False(t, s.KeyJustPressed(input.KeyW), "presses are invisible until Step")

	s.Step()
	assert.True(t, s.KeyJustPressed(input.KeyW))
	assert.True(t, s.KeyJustPressed(input.KeyS))
	assert.Equal(t, 1, s.Pending())

	s.Step()
	assert.True(t, s.KeyJustPressed(input.KeyW))
	assert.False(t, s.KeyJustPressed(input.KeyS))
	assert.Equal(t, 0, s.Pending())

	s.Step()
	assert.False(t, s.KeyJustPressed(input.KeyW))
}

func TestScriptWheelIsConsumedByStep(t *testing.T) {
	s := input.NewScript()
	s.Scroll(0, -2)
	_, dy := s.Wheel()
	assert.Equal(t, -2.0, dy)

	s.Step()
	_, dy = s.Wheel()
	assert.Zero(t, dy)
}

func TestStateWithoutSourceReadsAsIdle(t *testing.T) {
	var st input.State
	assert.False(t, st.KeyJustPressed(input.KeyW))
	assert.False(t, st.MousePressed(input.MouseLeft))
	x, y := st.CursorPosition()
	assert.Zero(t, x+y)

	var nilState *input.State
	assert.False(t, nilState.KeyJustPressed(input.KeyS))
}

func TestParseKey(t *testing.T) {
	k, ok := input.ParseKey("w")
	assert.True(t, ok)
	assert.Equal(t, input.KeyW, k)

	_, ok = input.ParseKey("x")
	assert.False(t, ok)
}
