// Package input maps keystrokes to environment actions. It performs no
// simulation logic.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/packbotics/warehouse-rl/internal/env/core"
)

var actionKeys = []struct {
	keys   []ebiten.Key
	action core.Action
}{
	{[]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}, core.ActionMoveUp},
	{[]ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}, core.ActionMoveDown},
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, core.ActionMoveLeft},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, core.ActionMoveRight},
	{[]ebiten.Key{ebiten.KeySpace, ebiten.KeyP}, core.ActionPickup},
	{[]ebiten.Key{ebiten.KeyEnter, ebiten.KeyO}, core.ActionDrop},
}

// Action returns the action for a key pressed this frame, if any
func Action() (core.Action, bool) {
	for _, binding := range actionKeys {
		for _, key := range binding.keys {
			if inpututil.IsKeyJustPressed(key) {
				return binding.action, true
			}
		}
	}
	return 0, false
}

// ResetPressed reports whether the reset key was pressed this frame
func ResetPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyR)
}

// QuitPressed reports whether a quit key was pressed this frame
func QuitPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}
