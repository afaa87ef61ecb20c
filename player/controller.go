package player

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/freerunner/common"
	"github.com/milk9111/freerunner/phys"
)

// Controller is one player's movement state machine. It owns the
// kinematic state and the discrete Mode, advances both once per physics
// tick, and hands the resulting velocity/position back to the body.
//
// A Controller is not safe for concurrent use; multiple players each get
// their own Controller and may then be ticked in parallel.
type Controller struct {
	cfg   Config
	world phys.World
	body  phys.Body

	mode Mode
	vel  mgl64.Vec3
	yaw  float64

	grounded      bool
	touchedGround bool // probe result, kept when doJump clears grounded
	groundNormal  mgl64.Vec3
	crouched      bool
	jumpCut       bool
	pendingSlide  bool
	steppedUp     bool
	jumped        bool

	coyote         Timer
	jumpBuf        Timer
	sprintGrace    Timer
	slideJumpGrace Timer
	ledgeCool      Timer

	slide        slideState
	lastSlideDir mgl64.Vec3
	ledge        ledgeState
	climb        climbState
	ladderOut    mgl64.Vec3 // outward normal of the grabbed ladder
	forced       forcedState

	em     emitter
	events []Event
}

type slideState struct {
	dir          mgl64.Vec3
	initialSpeed float64
	elapsed      float64
}

type ledgeState struct {
	surfacePoint mgl64.Vec3
	wallNormal   mgl64.Vec3
}

type climbState struct {
	start, end mgl64.Vec3
	elapsed    float64
	duration   float64
}

type forcedState struct {
	dir    mgl64.Vec3
	normal mgl64.Vec3
}

// New builds a controller for a freshly spawned body. Construction fails
// on invalid config or a spawn position inside world geometry; the tick
// path itself never errors.
func New(world phys.World, body phys.Body, cfg Config) (*Controller, error) {
	if world == nil {
		return nil, fmt.Errorf("player: nil world")
	}
	if body == nil {
		return nil, fmt.Errorf("player: nil body")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Slightly shrunk capsule so resting contact with the floor does not
	// read as an obstruction.
	pos := body.Position()
	if overlaps := world.OverlapCapsule(pos, cfg.Radius*0.9, cfg.StandHeight*0.9, cfg.WorldLayer); len(overlaps) > 0 {
		return nil, fmt.Errorf("player: spawn position %v is inside world geometry", pos)
	}

	c := &Controller{
		cfg:   cfg,
		world: world,
		body:  body,
		mode:  ModeGround,
	}
	c.em.wasGrounded = true
	c.em.wasMode = ModeGround
	return c, nil
}

// Mode returns the active locomotion mode.
func (c *Controller) Mode() Mode { return c.mode }

// Velocity returns the controller-owned velocity.
func (c *Controller) Velocity() mgl64.Vec3 { return c.vel }

// Position returns the body's authoritative position.
func (c *Controller) Position() mgl64.Vec3 { return c.body.Position() }

// Grounded reports whether the player stood on walkable ground this tick.
func (c *Controller) Grounded() bool { return c.grounded }

// Crouched reports whether the capsule is at crouch height.
func (c *Controller) Crouched() bool { return c.crouched }

// Yaw returns the accumulated look yaw in radians.
func (c *Controller) Yaw() float64 { return c.yaw }

// Config returns the active tuning.
func (c *Controller) Config() Config { return c.cfg }

// SetConfig swaps the tuning between ticks. Capsule dimensions are not
// retroactively applied to the live collider; respawn for those.
func (c *Controller) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// Tick advances the state machine by dt seconds and returns the ordered
// event sequence for this tick. The returned slice is reused across
// ticks; callers must not retain it.
func (c *Controller) Tick(dt float64, in Input) []Event {
	c.events = c.events[:0]
	if dt <= 0 {
		return c.events
	}
	c.steppedUp = false
	c.jumped = false

	c.coyote.Tick(dt)
	c.jumpBuf.Tick(dt)
	c.sprintGrace.Tick(dt)
	c.slideJumpGrace.Tick(dt)
	c.ledgeCool.Tick(dt)

	c.yaw += in.Look.X()

	pos := c.body.Position()
	pr := c.runProbes(pos)

	if in.JumpPressed {
		c.jumpBuf.Start(c.cfg.JumpBuffer)
	}

	c.grounded = pr.Ground.Grounded
	c.touchedGround = pr.Ground.Grounded
	c.groundNormal = pr.Ground.Normal

	if c.grounded {
		c.coyote.Start(c.cfg.CoyoteTime)
		c.jumpCut = false
		// Stop gravity accumulating through the floor.
		if c.vel.Y() < 0 {
			c.vel[1] = 0
		}
	} else if math.Abs(c.vel.Y()) < 0.5 {
		// Resting on an edge the center cast missed; keep the jump alive.
		c.coyote.Start(c.cfg.CoyoteTime)
	}

	switch c.mode {
	case ModeLedgeClimb:
		c.tickLedgeClimb(dt)
	case ModeLedgeGrab:
		c.tickLedgeGrab(dt, in, pos)
	case ModeLadder:
		c.tickLadder(in, pr)
	default:
		c.tickFree(dt, in, pos, pr)
	}

	c.events = c.em.tick(c, dt, c.events)
	return c.events
}

// tickFree handles every mode the player moves freely in. Guards run in a
// fixed priority order; when several fire in one tick the first wins:
//
//  1. ledge grab (explicit airborne action)
//  2. slide entry / crouch intent
//  3. jump (direct, buffered, or coyote), with slide-jump boost
//  4. stand-up
//  5. surface overrides (forced slide, ladder)
//  6. ground movement / airborne fallback
func (c *Controller) tickFree(dt float64, in Input, pos mgl64.Vec3, pr Probes) {
	sprinting := in.SprintHeld && c.grounded && !c.crouched && c.mode != ModeSlide
	if sprinting {
		c.sprintGrace.Start(c.cfg.SprintSlideGrace)
	}

	// 1. Ledge grab.
	if !c.grounded && in.JumpPressed && !c.ledgeCool.Active() && pr.Ledge.Hit &&
		(c.cfg.LedgeGrabAscending || c.vel.Y() <= 0) &&
		(c.cfg.LedgeGrabMaxFallSpeed == 0 || c.vel.Y() >= -c.cfg.LedgeGrabMaxFallSpeed) {
		c.jumpBuf.Consume()
		c.enterLedgeGrab(pr.Ledge)
		return
	}

	// 2. Crouch / slide intent.
	c.updateCrouch(in, pr, sprinting)

	// 3. Jump.
	if c.jumpBuf.Active() && (c.grounded || c.coyote.Active()) {
		c.doJump()
	}

	// 4-5. Resolve the grounded/airborne mode, including surface
	// overrides.
	c.resolveFreeMode(in, pr, sprinting)
	if c.mode == ModeLadder {
		return
	}

	// 6. Kinematics for the resolved mode.
	switch {
	case c.mode == ModeSlide:
		c.applySlide(dt)
	case c.mode == ModeForcedSlide:
		c.applyForcedSlide(dt)
	case c.grounded:
		c.applyGroundMove(dt, in, sprinting)
	default:
		c.applyAirMove(dt, in)
	}

	// Jump cut: releasing jump before apex shortens the arc, once.
	if !c.grounded && !c.jumpCut && in.JumpReleased && c.vel.Y() > 0 {
		c.vel[1] *= c.cfg.JumpCutMultiplier
		c.jumpCut = true
	}

	if !c.grounded {
		c.vel = c.vel.Add(c.world.Gravity().Mul(dt))
	}

	// Auto step-up: nudge over passable obstructions instead of letting
	// the collision eat horizontal velocity.
	if c.grounded && pr.Step.Hit && common.HorizontalLen(c.vel) > 0.5 {
		c.body.SetPosition(mgl64.Vec3{pos.X(), pr.Step.SurfaceY + c.capsuleHeight()/2, pos.Z()})
		c.steppedUp = true
	}

	c.applyVelocity()
}

// updateCrouch handles crouch intent: slide initiation (active sprint,
// grace window, or a pending air slide landing), plain crouch, and
// stand-up with clearance.
func (c *Controller) updateCrouch(in Input, pr Probes, sprinting bool) {
	if !in.CrouchHeld {
		c.pendingSlide = false
		if c.crouched && pr.StandClear {
			c.endSlide()
			c.setCrouched(false)
		}
		return
	}
	if c.mode == ModeSlide {
		return
	}

	hvel := common.Horizontal(c.vel)
	hspeed := hvel.Len()

	switch {
	case c.pendingSlide && c.grounded:
		c.pendingSlide = false
		if hspeed > 0.5 {
			c.startSlide(common.NormalizeOrZero(hvel), hspeed)
		}
	case !c.grounded && !c.crouched && hspeed > c.cfg.MinSlideSpeed:
		c.setCrouched(true)
		c.pendingSlide = true
	case c.grounded && !c.crouched && sprinting && hspeed >= c.cfg.MinSlideSpeed:
		c.startSlide(common.NormalizeOrZero(hvel), hspeed)
	case c.grounded && !c.crouched && c.sprintGrace.Active() && hspeed > 0.5:
		// Sprint was just released; slide at sprint speed anyway.
		c.startSlide(common.NormalizeOrZero(hvel), c.cfg.SprintSpeed)
	default:
		c.setCrouched(true)
	}
}

func (c *Controller) doJump() {
	c.jumpBuf.Consume()
	c.coyote.Consume()

	c.vel[1] = c.cfg.JumpVelocity

	// Slide jump: extra forward momentum while sliding or shortly after.
	boosting := c.mode == ModeSlide || c.slideJumpGrace.Active()
	if boosting && c.lastSlideDir.Len() > 0 {
		c.vel = c.vel.Add(c.lastSlideDir.Mul(c.cfg.SlideJumpBoost))
		c.lastSlideDir = mgl64.Vec3{}
		c.slideJumpGrace.Consume()
	}

	c.endSlide()
	c.setCrouched(false)
	c.grounded = false
	c.jumpCut = false
	c.jumped = true
	c.mode = ModeAir
}

// resolveFreeMode picks the grounded or airborne mode after all guards
// have run, including the surface-driven overrides.
func (c *Controller) resolveFreeMode(in Input, pr Probes, sprinting bool) {
	if c.grounded {
		onForceSlide := pr.Ground.Tag == phys.TagForceSlide && pr.Ground.Normal.Dot(worldUp) < 0.99
		switch {
		case c.mode == ModeForcedSlide:
			if !onForceSlide {
				c.mode = ModeGround
			}
		case onForceSlide:
			c.enterForcedSlide(pr.Ground)
		case c.mode == ModeSlide:
			// Slide persists until duration, stand, or jump.
		case c.crouched:
			c.mode = ModeCrouch
		case sprinting:
			c.mode = ModeSprint
		default:
			c.mode = ModeGround
		}
	} else {
		switch c.mode {
		case ModeWallJump:
			if c.vel.Y() <= 0 {
				c.mode = ModeAir
			}
		default:
			c.mode = ModeAir
		}
	}

	// Ladder entry: upward intent while overlapping a ladder volume.
	if pr.Ladder.Hit && in.Move.Y() > 0.5 && c.mode != ModeForcedSlide {
		c.enterLadder(pr.Ladder)
	}
}

// setCrouched swaps capsule height, shifting the center so the feet stay
// planted; without the shift a ground crouch drops the floor out from
// under the probes for a tick.
func (c *Controller) setCrouched(crouched bool) {
	if c.crouched == crouched {
		return
	}
	oldHeight := c.capsuleHeight()
	c.crouched = crouched
	newHeight := c.capsuleHeight()

	pos := c.body.Position()
	c.body.SetPosition(mgl64.Vec3{pos.X(), pos.Y() + (newHeight-oldHeight)/2, pos.Z()})
	c.body.Resize(c.cfg.Radius, newHeight)
}

func (c *Controller) forward() mgl64.Vec3 {
	return mgl64.Vec3{math.Cos(c.yaw), 0, math.Sin(c.yaw)}
}

func (c *Controller) right() mgl64.Vec3 {
	return mgl64.Vec3{-math.Sin(c.yaw), 0, math.Cos(c.yaw)}
}

// moveDirection maps the 2D move axis into the horizontal plane, camera
// relative.
func (c *Controller) moveDirection(in Input) mgl64.Vec3 {
	dir := c.forward().Mul(in.Move.Y()).Add(c.right().Mul(in.Move.X()))
	return common.NormalizeOrZero(dir)
}
