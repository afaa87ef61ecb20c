package player

// Mode is the single discrete locomotion state. Exactly one Mode is
// active per tick; transitions happen atomically inside Tick.
type Mode uint8

const (
	// ModeGround is grounded idle/walk.
	ModeGround Mode = iota
	ModeSprint
	ModeCrouch
	ModeSlide
	ModeAir
	// ModeWallJump is airborne flight started by jumping off a ledge
	// wall; it decays to ModeAir at apex.
	ModeWallJump
	ModeLedgeGrab
	ModeLedgeClimb
	ModeLadder
	ModeForcedSlide
)

var modeNames = [...]string{
	ModeGround:      "ground",
	ModeSprint:      "sprint",
	ModeCrouch:      "crouch",
	ModeSlide:       "slide",
	ModeAir:         "air",
	ModeWallJump:    "wall_jump",
	ModeLedgeGrab:   "ledge_grab",
	ModeLedgeClimb:  "ledge_climb",
	ModeLadder:      "ladder",
	ModeForcedSlide: "forced_slide",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// GroundMode reports whether m moves with ground kinematics.
func (m Mode) GroundMode() bool {
	switch m {
	case ModeGround, ModeSprint, ModeCrouch, ModeSlide, ModeForcedSlide:
		return true
	}
	return false
}

// AirMode reports whether m is free-falling.
func (m Mode) AirMode() bool {
	return m == ModeAir || m == ModeWallJump
}

// Scripted reports whether input is ignored while in m.
func (m Mode) Scripted() bool {
	return m == ModeLedgeClimb
}
