package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/freerunner/common"
)

// applyGroundMove drives horizontal velocity toward the input target with
// an acceleration-limited approach, decelerating by friction when the
// stick is released.
func (c *Controller) applyGroundMove(dt float64, in Input, sprinting bool) {
	targetSpeed := c.cfg.WalkSpeed
	if c.crouched {
		targetSpeed = c.cfg.CrouchSpeed
	} else if sprinting {
		targetSpeed = c.cfg.SprintSpeed
	}

	target := c.moveDirection(in).Mul(targetSpeed)
	current := common.Horizontal(c.vel)

	accel := c.cfg.GroundFriction
	if in.Moving() {
		accel = c.cfg.GroundAccel
	}

	next := common.MoveTowards(current, target, accel*dt)
	c.vel[0] = next.X()
	c.vel[2] = next.Z()
}

// applyAirMove gives reduced control while airborne: acceleration along
// the wish direction, capped so it cannot push past walk speed on its
// own. Gravity is handled by the caller.
func (c *Controller) applyAirMove(dt float64, in Input) {
	if !in.Moving() {
		return
	}
	dir := c.moveDirection(in)
	if dir.Len() == 0 {
		return
	}

	accel := c.cfg.AirAccel
	if math.Abs(c.vel.Y()) < 0.5 {
		// Resting on an edge; restore full control.
		accel = c.cfg.GroundAccel
	}

	currentSpeed := c.vel.Dot(dir)
	addSpeed := math.Max(c.cfg.WalkSpeed-currentSpeed, 0)
	accelSpeed := math.Min(accel*dt, addSpeed)

	c.vel = c.vel.Add(dir.Mul(accelSpeed))
}

func (c *Controller) startSlide(dir mgl64.Vec3, speed float64) {
	if dir.Len() == 0 {
		return
	}
	c.setCrouched(true)
	c.slide = slideState{
		dir:          dir,
		initialSpeed: speed * c.cfg.SlideBoost,
	}
	c.lastSlideDir = dir
	c.mode = ModeSlide
}

// endSlide leaves ModeSlide, opening the slide-jump grace window. The
// capsule stays crouched; stand-up is a separate guard.
func (c *Controller) endSlide() {
	if c.mode != ModeSlide {
		return
	}
	c.lastSlideDir = c.slide.dir
	c.slideJumpGrace.Start(c.cfg.SlideJumpGrace)
	c.slide = slideState{}
	c.mode = ModeCrouch
}

// applySlide decays slide speed along the friction curve; a higher
// exponent keeps more speed early and sheds it late.
func (c *Controller) applySlide(dt float64) {
	c.slide.elapsed += dt
	if c.slide.elapsed >= c.cfg.SlideDuration {
		c.endSlide()
		return
	}

	t := c.slide.elapsed / c.cfg.SlideDuration
	speed := c.slide.initialSpeed * (1 - math.Pow(t, c.cfg.SlideFriction))

	c.lastSlideDir = c.slide.dir
	c.vel[0] = c.slide.dir.X() * speed
	c.vel[2] = c.slide.dir.Z() * speed
}

func (c *Controller) enterForcedSlide(g GroundProbe) {
	gravity := c.world.Gravity()
	downhill := common.NormalizeOrZero(common.ProjectOnPlane(gravity, g.Normal))
	if downhill.Len() == 0 {
		return
	}
	c.endSlide()
	c.forced = forcedState{dir: downhill, normal: g.Normal}
	c.mode = ModeForcedSlide
}

// applyForcedSlide accelerates downhill with no input contribution;
// steeper slopes accelerate harder.
func (c *Controller) applyForcedSlide(dt float64) {
	slopeAccel := c.world.Gravity().Len() * (1 - c.forced.normal.Dot(worldUp))
	c.vel = c.vel.Add(c.forced.dir.Mul(slopeAccel * dt))
}

// applyVelocity caps horizontal speed, projects grounded motion onto the
// slope plane so inclines neither slow nor launch the player, and writes
// the result to the body.
func (c *Controller) applyVelocity() {
	if c.cfg.MaxHorizontalSpeed > 0 {
		if h := common.HorizontalLen(c.vel); h > c.cfg.MaxHorizontalSpeed {
			scale := c.cfg.MaxHorizontalSpeed / h
			c.vel[0] *= scale
			c.vel[2] *= scale
		}
	}

	out := c.vel
	if c.grounded {
		horizontal := common.Horizontal(c.vel)
		hspeed := horizontal.Len()
		if hspeed > 0.01 {
			projected := common.ProjectOnPlane(horizontal, c.groundNormal)
			scale := 1.0
			if projH := common.HorizontalLen(projected); projH > 0.001 {
				// Rescale so the horizontal component of the projected
				// velocity keeps the intended speed.
				scale = hspeed / projH
			}
			slope := projected.Mul(scale)
			out = mgl64.Vec3{slope.X(), math.Min(c.vel.Y()+slope.Y(), slope.Y()), slope.Z()}
		} else {
			// Small downward stick keeps the body adhered on slopes.
			out = mgl64.Vec3{0, math.Min(c.vel.Y(), -0.5), 0}
		}
	}
	c.body.SetVelocity(out)
}
