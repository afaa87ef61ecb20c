package player

import "github.com/go-gl/mathgl/mgl64"

// Input is the normalized per-tick intent snapshot. It is produced by the
// host (keyboard, gamepad, replay) once per tick and only read here.
type Input struct {
	// Move is the desired movement on the ground plane, camera relative:
	// X strafes, Y walks forward/back. Magnitude is at most 1.
	Move mgl64.Vec2

	// Look is the look delta for this tick in radians (yaw, pitch).
	Look mgl64.Vec2

	JumpPressed  bool
	JumpHeld     bool
	JumpReleased bool

	SprintHeld bool
	CrouchHeld bool
}

// Moving reports whether the move axis carries meaningful intent.
func (in Input) Moving() bool {
	return in.Move.LenSqr() > 0.01
}
