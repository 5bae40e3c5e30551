package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/curvedemo/input"
)

var keyMap = map[input.Key]ebiten.Key{
	input.KeyW:      ebiten.KeyW,
	input.KeyS:      ebiten.KeyS,
	input.KeyQ:      ebiten.KeyQ,
	input.KeyEscape: ebiten.KeyEscape,
}

var buttonMap = map[input.MouseButton]ebiten.MouseButton{
	input.MouseLeft:   ebiten.MouseButtonLeft,
	input.MouseRight:  ebiten.MouseButtonRight,
	input.MouseMiddle: ebiten.MouseButtonMiddle,
}

// ebitenSource reads input.Source state from ebiten's polled input.
type ebitenSource struct{}

func (ebitenSource) KeyJustPressed(k input.Key) bool {
	key, ok := keyMap[k]
	return ok && inpututil.IsKeyJustPressed(key)
}

func (ebitenSource) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

func (ebitenSource) MousePressed(b input.MouseButton) bool {
	button, ok := buttonMap[b]
	return ok && ebiten.IsMouseButtonPressed(button)
}

func (ebitenSource) Wheel() (float64, float64) {
	return ebiten.Wheel()
}
