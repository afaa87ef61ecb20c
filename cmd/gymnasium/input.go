package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/freerunner/player"
)

// pollInput maps the keyboard onto controller input. The gymnasium is a
// side view with yaw fixed at zero, so forward is +X: D/Right walks
// toward the course, A/Left walks back.
func pollInput() player.Input {
	var in player.Input

	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		in.Move[1] += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		in.Move[1] -= 1
	}

	in.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	in.JumpHeld = ebiten.IsKeyPressed(ebiten.KeySpace)
	in.JumpReleased = inpututil.IsKeyJustReleased(ebiten.KeySpace)

	in.SprintHeld = ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	in.CrouchHeld = ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyC)

	return in
}
