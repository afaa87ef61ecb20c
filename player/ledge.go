package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/freerunner/common"
)

// facingWallDot is how squarely the player must look into the wall to
// count as facing it (for climb vs wall-jump and shuffle eligibility).
const facingWallDot = 0.25

func (c *Controller) enterLedgeGrab(l LedgeProbe) {
	c.endSlide()
	c.pendingSlide = false

	c.ledge = ledgeState{surfacePoint: l.SurfacePoint, wallNormal: l.WallNormal}
	c.vel = mgl64.Vec3{}
	c.mode = ModeLedgeGrab
	c.ledgeCool.Start(c.cfg.LedgeCooldown)

	c.snapToLedge()
	c.body.SetVelocity(mgl64.Vec3{})
}

// snapToLedge places the capsule hanging against the wall with its top at
// the ledge surface.
func (c *Controller) snapToLedge() {
	halfHeight := c.cfg.StandHeight / 2
	wallOut := common.NormalizeOrZero(common.Horizontal(c.ledge.wallNormal))

	y := c.ledge.surfacePoint.Y() - halfHeight
	contact := mgl64.Vec3{c.ledge.surfacePoint.X(), y, c.ledge.surfacePoint.Z()}
	c.body.SetPosition(contact.Add(wallOut.Mul(c.cfg.Radius)))
}

// tickLedgeGrab is the hang state: drop on crouch/backward/strafe-away,
// climb or wall-jump on jump, shuffle sideways along the edge otherwise.
func (c *Controller) tickLedgeGrab(dt float64, in Input, pos mgl64.Vec3) {
	wallOut := common.NormalizeOrZero(common.Horizontal(c.ledge.wallNormal))
	wallInto := wallOut.Mul(-1)
	fwd := c.forward()
	facingWall := fwd.Dot(wallInto) > facingWallDot

	// Backward movement away from the wall drops.
	if in.Move.Y() < -0.5 {
		moveDir := c.moveDirection(in)
		if moveDir.Dot(wallOut) > facingWallDot {
			c.dropLedge()
			return
		}
	}

	// Strafing while looking away drops.
	if math.Abs(in.Move.X()) > 0.5 && !facingWall {
		c.dropLedge()
		return
	}

	if in.JumpPressed {
		c.jumpBuf.Consume()
		if facingWall {
			c.enterLedgeClimb(pos, wallInto)
		} else {
			c.doWallJump(wallOut)
		}
		return
	}

	if in.CrouchHeld {
		c.dropLedge()
		return
	}

	// Shuffle sideways along the edge while facing the wall.
	if math.Abs(in.Move.X()) > 0.1 && facingWall {
		if !c.shuffleLedge(dt, in, wallOut) {
			c.dropLedge()
			return
		}
	}

	// Hold the hang.
	c.vel = mgl64.Vec3{}
	c.snapToLedge()
	c.body.SetVelocity(mgl64.Vec3{})
}

// shuffleLedge moves the grab point sideways, re-validating the edge with
// a fresh down ray. Returns false when the edge ran out.
func (c *Controller) shuffleLedge(dt float64, in Input, wallOut mgl64.Vec3) bool {
	tangent := common.NormalizeOrZero(wallOut.Cross(worldUp))
	tangentDot := c.right().Mul(in.Move.X()).Dot(tangent)
	if math.Abs(tangentDot) < 0.01 {
		return true
	}

	sign := 1.0
	if tangentDot < 0 {
		sign = -1
	}
	delta := tangent.Mul(sign * c.cfg.LedgeShuffleSpeed * dt)
	next := c.ledge.surfacePoint.Add(delta)

	origin := mgl64.Vec3{next.X(), c.ledge.surfacePoint.Y() + 0.3, next.Z()}
	hit, ok := c.world.CastRay(origin, worldUp.Mul(-1), c.cfg.StandHeight/2, c.cfg.WorldLayer)
	if !ok || hit.Normal.Dot(worldUp) < upwardNormalMin {
		return false
	}

	c.ledge.surfacePoint = mgl64.Vec3{next.X(), origin.Y() - hit.Distance, next.Z()}
	return true
}

func (c *Controller) dropLedge() {
	c.mode = ModeAir
	c.ledgeCool.Start(c.cfg.LedgeCooldown)
}

func (c *Controller) doWallJump(wallOut mgl64.Vec3) {
	c.vel = wallOut.Mul(c.cfg.JumpVelocity * 0.6).Add(worldUp.Mul(c.cfg.JumpVelocity))
	c.body.SetVelocity(c.vel)
	c.mode = ModeWallJump
	c.jumpCut = false
	c.ledgeCool.Start(c.cfg.LedgeCooldown)
}

func (c *Controller) enterLedgeClimb(pos, wallInto mgl64.Vec3) {
	end := mgl64.Vec3{
		c.ledge.surfacePoint.X() + wallInto.X()*(c.cfg.Radius+0.1),
		c.ledge.surfacePoint.Y() + c.cfg.StandHeight/2,
		c.ledge.surfacePoint.Z() + wallInto.Z()*(c.cfg.Radius+0.1),
	}
	c.climb = climbState{
		start:    pos,
		end:      end,
		duration: c.cfg.LedgeClimbDuration,
	}
	c.vel = mgl64.Vec3{}
	c.body.SetVelocity(mgl64.Vec3{})
	c.mode = ModeLedgeClimb
}

// tickLedgeClimb runs the scripted two-phase mantle: up to ledge height,
// then forward past the edge. Input is ignored; climbs run to completion.
func (c *Controller) tickLedgeClimb(dt float64) {
	c.climb.elapsed += dt
	t := common.Clamp(c.climb.elapsed/c.climb.duration, 0, 1)

	var pos mgl64.Vec3
	if t <= 0.5 {
		phase := common.EaseInOutCubic(t * 2)
		pos = mgl64.Vec3{
			c.climb.start.X(),
			common.Lerp(c.climb.start.Y(), c.climb.end.Y(), phase),
			c.climb.start.Z(),
		}
	} else {
		phase := common.EaseInOutCubic((t - 0.5) * 2)
		pos = mgl64.Vec3{
			common.Lerp(c.climb.start.X(), c.climb.end.X(), phase),
			c.climb.end.Y(),
			common.Lerp(c.climb.start.Z(), c.climb.end.Z(), phase),
		}
	}

	c.body.SetPosition(pos)
	c.vel = mgl64.Vec3{}
	c.body.SetVelocity(mgl64.Vec3{})

	if t >= 1 {
		c.setCrouched(false)
		c.grounded = true
		c.mode = ModeGround
		c.ledgeCool.Start(c.cfg.LedgeCooldown)
	}
}
