package player

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/freerunner/common"
)

func (c *Controller) enterLadder(l LadderProbe) {
	c.endSlide()
	c.pendingSlide = false
	c.ladderOut = l.OutwardNormal
	c.vel = mgl64.Vec3{}
	c.mode = ModeLadder
}

// tickLadder climbs with the vertical component of move input, with the
// horizontal velocity clamped to the ladder. Jump dismounts away from the
// ladder; leaving the volume (top or bottom) releases into ground or air.
func (c *Controller) tickLadder(in Input, pr Probes) {
	if !pr.Ladder.Hit {
		if pr.Ground.Grounded {
			c.mode = ModeGround
		} else {
			c.mode = ModeAir
		}
		return
	}

	if in.JumpPressed {
		c.jumpBuf.Consume()
		c.vel = c.ladderOut.Mul(c.cfg.JumpVelocity * 0.4).Add(worldUp.Mul(c.cfg.JumpVelocity))
		c.body.SetVelocity(c.vel)
		c.grounded = false
		c.jumpCut = false
		c.mode = ModeAir
		return
	}

	c.vel = worldUp.Mul(common.Clamp(in.Move.Y(), -1, 1) * c.cfg.LadderClimbSpeed)
	c.body.SetVelocity(c.vel)
}
