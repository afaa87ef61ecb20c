package player

import (
	"fmt"

	"github.com/milk9111/freerunner/phys"
)

// Config is the per-player tuning set. It is read by the controller every
// tick and never mutated by it; owners may swap in a new Config between
// ticks (see tuning.Watcher).
type Config struct {
	WalkSpeed   float64 `yaml:"walk_speed"`
	SprintSpeed float64 `yaml:"sprint_speed"`
	CrouchSpeed float64 `yaml:"crouch_speed"`

	GroundAccel    float64 `yaml:"ground_accel"`
	GroundFriction float64 `yaml:"ground_friction"`
	AirAccel       float64 `yaml:"air_accel"`

	JumpVelocity      float64 `yaml:"jump_velocity"`
	JumpCutMultiplier float64 `yaml:"jump_cut_multiplier"`
	CoyoteTime        float64 `yaml:"coyote_time"`
	JumpBuffer        float64 `yaml:"jump_buffer"`

	StandHeight  float64 `yaml:"stand_height"`
	CrouchHeight float64 `yaml:"crouch_height"`
	Radius       float64 `yaml:"radius"`

	MinSlideSpeed    float64 `yaml:"min_slide_speed"`
	SlideDuration    float64 `yaml:"slide_duration"`
	SlideFriction    float64 `yaml:"slide_friction"`
	SlideBoost       float64 `yaml:"slide_boost"`
	SprintSlideGrace float64 `yaml:"sprint_slide_grace"`
	SlideJumpBoost   float64 `yaml:"slide_jump_boost"`
	SlideJumpGrace   float64 `yaml:"slide_jump_grace"`

	// MaxHorizontalSpeed caps horizontal speed across all modes. Zero
	// leaves speed uncapped.
	MaxHorizontalSpeed float64 `yaml:"max_horizontal_speed"`

	LedgeDetectReach      float64 `yaml:"ledge_detect_reach"`
	LedgeClimbDuration    float64 `yaml:"ledge_climb_duration"`
	LedgeShuffleSpeed     float64 `yaml:"ledge_shuffle_speed"`
	LedgeCooldown         float64 `yaml:"ledge_cooldown"`
	LedgeGrabMaxFallSpeed float64 `yaml:"ledge_grab_max_fall_speed"`
	LedgeGrabAscending    bool    `yaml:"ledge_grab_ascending"`

	LadderClimbSpeed float64 `yaml:"ladder_climb_speed"`

	// MaxSlopeAngle is in degrees; steeper ground is treated as a wall.
	MaxSlopeAngle float64 `yaml:"max_slope_angle"`
	StepUpHeight  float64 `yaml:"step_up_height"`

	PlayerLayer   phys.Layer `yaml:"player_layer"`
	WorldLayer    phys.Layer `yaml:"world_layer"`
	CollisionMask phys.Layer `yaml:"collision_mask"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		WalkSpeed:   5.0,
		SprintSpeed: 8.0,
		CrouchSpeed: 2.5,

		GroundAccel:    50.0,
		GroundFriction: 40.0,
		AirAccel:       15.0,

		JumpVelocity:      8.0,
		JumpCutMultiplier: 0.5,
		CoyoteTime:        0.15,
		JumpBuffer:        0.1,

		StandHeight:  1.8,
		CrouchHeight: 1.0,
		Radius:       0.4,

		MinSlideSpeed:    6.0,
		SlideDuration:    0.8,
		SlideFriction:    2.0,
		SlideBoost:       1.2,
		SprintSlideGrace: 0.15,
		SlideJumpBoost:   3.0,
		SlideJumpGrace:   0.2,

		MaxHorizontalSpeed: 20.0,

		LedgeDetectReach:      0.6,
		LedgeClimbDuration:    1.05,
		LedgeShuffleSpeed:     1.75,
		LedgeCooldown:         0.4,
		LedgeGrabMaxFallSpeed: 10.0,
		LedgeGrabAscending:    false,

		LadderClimbSpeed: 4.0,

		MaxSlopeAngle: 39.0,
		StepUpHeight:  0.35,

		PlayerLayer:   phys.LayerPlayer,
		WorldLayer:    phys.LayerWorld,
		CollisionMask: phys.LayerWorld | phys.LayerTrigger,
	}
}

// Validate reports the first invalid field. It runs once at spawn so a
// bad tuning file fails construction instead of misbehaving mid-tick.
func (c Config) Validate() error {
	nonNegative := []struct {
		name string
		v    float64
	}{
		{"walk_speed", c.WalkSpeed},
		{"sprint_speed", c.SprintSpeed},
		{"crouch_speed", c.CrouchSpeed},
		{"ground_accel", c.GroundAccel},
		{"ground_friction", c.GroundFriction},
		{"air_accel", c.AirAccel},
		{"jump_velocity", c.JumpVelocity},
		{"coyote_time", c.CoyoteTime},
		{"jump_buffer", c.JumpBuffer},
		{"min_slide_speed", c.MinSlideSpeed},
		{"slide_duration", c.SlideDuration},
		{"slide_friction", c.SlideFriction},
		{"slide_boost", c.SlideBoost},
		{"sprint_slide_grace", c.SprintSlideGrace},
		{"slide_jump_boost", c.SlideJumpBoost},
		{"slide_jump_grace", c.SlideJumpGrace},
		{"max_horizontal_speed", c.MaxHorizontalSpeed},
		{"ledge_detect_reach", c.LedgeDetectReach},
		{"ledge_climb_duration", c.LedgeClimbDuration},
		{"ledge_shuffle_speed", c.LedgeShuffleSpeed},
		{"ledge_cooldown", c.LedgeCooldown},
		{"ledge_grab_max_fall_speed", c.LedgeGrabMaxFallSpeed},
		{"ladder_climb_speed", c.LadderClimbSpeed},
		{"max_slope_angle", c.MaxSlopeAngle},
		{"step_up_height", c.StepUpHeight},
	}
	for _, f := range nonNegative {
		if f.v < 0 {
			return fmt.Errorf("config: %s must be >= 0, got %v", f.name, f.v)
		}
	}
	if c.StandHeight <= 0 || c.CrouchHeight <= 0 || c.Radius <= 0 {
		return fmt.Errorf("config: capsule dimensions must be > 0")
	}
	if c.CrouchHeight >= c.StandHeight {
		return fmt.Errorf("config: crouch_height (%v) must be less than stand_height (%v)",
			c.CrouchHeight, c.StandHeight)
	}
	if c.JumpCutMultiplier < 0 || c.JumpCutMultiplier > 1 {
		return fmt.Errorf("config: jump_cut_multiplier must be in [0,1], got %v", c.JumpCutMultiplier)
	}
	return nil
}
