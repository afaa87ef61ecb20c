package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/freerunner/common"
	"github.com/milk9111/freerunner/phys"
)

const (
	// groundSkin lets a down-cast slightly short of contact still count
	// as grounded, avoiding one-tick flicker on seams.
	groundSkin = 0.1

	// upwardNormalMin is the minimum dot(normal, up) for a surface to
	// count as "mostly up" (ledge tops, step surfaces).
	upwardNormalMin = 0.7
)

var worldUp = mgl64.Vec3{0, 1, 0}

// GroundProbe is the semantic result of the downward cast.
type GroundProbe struct {
	Hit      bool
	Grounded bool // hit, walkable, and not launching upward
	Normal   mgl64.Vec3
	Distance float64
	SlopeDeg float64
	Walkable bool
	Tag      phys.SurfaceTag
}

// LedgeProbe is the result of the forward three-ray ledge check.
type LedgeProbe struct {
	Hit          bool
	SurfacePoint mgl64.Vec3 // top of the ledge at the grab point
	WallNormal   mgl64.Vec3
}

// StepProbe reports a passable obstruction ahead of the feet.
type StepProbe struct {
	Hit      bool
	Height   float64 // obstruction height above the feet
	SurfaceY float64 // world Y of the step surface
}

// LadderProbe reports an overlapping ladder volume.
type LadderProbe struct {
	Hit           bool
	OutwardNormal mgl64.Vec3 // horizontal, ladder surface toward player
}

// Probes is the immutable per-tick snapshot of all spatial queries. It is
// computed once at the top of Tick and passed by value through the guard
// evaluation, so guards never touch the physics engine directly.
type Probes struct {
	Ground GroundProbe
	Ledge  LedgeProbe
	Step   StepProbe
	Ladder LadderProbe

	// StandClear is whether the space above a crouched capsule fits the
	// standing capsule. Only meaningful while crouched.
	StandClear bool
}

func (c *Controller) runProbes(pos mgl64.Vec3) Probes {
	var p Probes
	p.Ground = c.probeGround(pos)

	// Ledge and step probes point along horizontal velocity; without
	// meaningful horizontal motion there is nothing to probe.
	dir := common.NormalizeOrZero(common.Horizontal(c.vel))
	if dir.Len() > 0 {
		p.Ledge = c.probeLedge(pos, dir)
		p.Step = c.probeStep(pos, dir)
	}
	p.Ladder = c.probeLadder(pos)
	if c.crouched {
		p.StandClear = c.probeStandClear(pos)
	}
	return p
}

func (c *Controller) probeGround(pos mgl64.Vec3) GroundProbe {
	var g GroundProbe

	height := c.capsuleHeight()
	castRadius := c.cfg.Radius * 0.5
	maxDist := height/2 - castRadius + groundSkin

	hit, ok := c.world.CastSphere(pos, worldUp.Mul(-1), castRadius, maxDist, c.cfg.WorldLayer)
	if !ok {
		return g
	}

	g.Hit = true
	g.Normal = hit.Normal
	g.Distance = hit.Distance
	g.Tag = hit.Tag

	cos := common.Clamp(hit.Normal.Dot(worldUp), -1, 1)
	g.SlopeDeg = math.Acos(cos) * 180 / math.Pi
	g.Walkable = g.SlopeDeg <= c.cfg.MaxSlopeAngle

	// Too-steep ground is a wall for adhesion purposes; a fast upward
	// launch (jump start) is not grounded either.
	g.Grounded = g.Walkable && c.vel.Y() < 1.0
	return g
}

// probeLedge runs the three-ray ledge check along dir:
// head ray must miss (open air above the ledge), chest ray must hit a
// ledge-grabbable wall, and a down ray above the wall hit must find a
// mostly-upward surface inside the grab height window.
func (c *Controller) probeLedge(pos, dir mgl64.Vec3) LedgeProbe {
	var l LedgeProbe

	halfHeight := c.cfg.StandHeight / 2
	probeDist := c.cfg.Radius + c.cfg.LedgeDetectReach

	headOrigin := pos.Add(worldUp.Mul(halfHeight))
	if _, ok := c.world.CastRay(headOrigin, dir, probeDist, c.cfg.WorldLayer); ok {
		return l
	}

	chestOrigin := pos.Add(worldUp.Mul(halfHeight * 0.3))
	wall, ok := c.world.CastRay(chestOrigin, dir, probeDist, c.cfg.WorldLayer)
	if !ok || wall.Tag != phys.TagLedgeGrabbable {
		return l
	}

	wallPoint := chestOrigin.Add(dir.Mul(wall.Distance))
	downOrigin := mgl64.Vec3{wallPoint.X(), headOrigin.Y() + 0.3, wallPoint.Z()}
	surface, ok := c.world.CastRay(downOrigin, worldUp.Mul(-1), halfHeight*2, c.cfg.WorldLayer)
	if !ok || surface.Normal.Dot(worldUp) < upwardNormalMin {
		return l
	}

	surfaceY := downOrigin.Y() - surface.Distance
	if surfaceY < pos.Y() || surfaceY > pos.Y()+halfHeight+0.5 {
		return l
	}

	l.Hit = true
	l.SurfacePoint = mgl64.Vec3{wallPoint.X(), surfaceY, wallPoint.Z()}
	l.WallNormal = wall.Normal
	return l
}

// probeStep runs the three-ray step check along dir: foot ray must hit an
// obstruction, a ray at step height must clear it, and a down ray at the
// obstruction must find the step surface.
func (c *Controller) probeStep(pos, dir mgl64.Vec3) StepProbe {
	var s StepProbe

	halfHeight := c.capsuleHeight() / 2
	probeDist := c.cfg.Radius + 0.15
	footY := pos.Y() - halfHeight

	footOrigin := pos.Add(worldUp.Mul(-halfHeight + 0.05))
	foot, ok := c.world.CastRay(footOrigin, dir, probeDist, c.cfg.WorldLayer)
	if !ok {
		return s
	}

	stepOrigin := pos.Add(worldUp.Mul(-halfHeight + c.cfg.StepUpHeight))
	if _, blocked := c.world.CastRay(stepOrigin, dir, probeDist, c.cfg.WorldLayer); blocked {
		return s
	}

	obstaclePoint := footOrigin.Add(dir.Mul(foot.Distance))
	surfaceOrigin := mgl64.Vec3{obstaclePoint.X(), stepOrigin.Y(), obstaclePoint.Z()}
	surface, ok := c.world.CastRay(surfaceOrigin, worldUp.Mul(-1), c.cfg.StepUpHeight, c.cfg.WorldLayer)
	if !ok || surface.Normal.Dot(worldUp) < upwardNormalMin {
		return s
	}

	s.SurfaceY = surfaceOrigin.Y() - surface.Distance
	s.Height = s.SurfaceY - footY
	s.Hit = s.Height > 0 && s.Height <= c.cfg.StepUpHeight
	return s
}

func (c *Controller) probeLadder(pos mgl64.Vec3) LadderProbe {
	var l LadderProbe

	overlaps := c.world.OverlapCapsule(pos, c.cfg.Radius, c.capsuleHeight(), c.cfg.CollisionMask)
	for _, o := range overlaps {
		if o.Tag != phys.TagLadder {
			continue
		}
		outward := common.NormalizeOrZero(common.Horizontal(pos.Sub(o.Center)))
		if outward.Len() == 0 {
			continue
		}
		l.Hit = true
		l.OutwardNormal = outward
		return l
	}
	return l
}

func (c *Controller) probeStandClear(pos mgl64.Vec3) bool {
	rise := c.cfg.StandHeight - c.cfg.CrouchHeight
	top := pos.Add(worldUp.Mul(c.cfg.CrouchHeight / 2))
	_, blocked := c.world.CastSphere(top, worldUp, c.cfg.Radius*0.9, rise, c.cfg.WorldLayer)
	return !blocked
}

func (c *Controller) capsuleHeight() float64 {
	if c.crouched {
		return c.cfg.CrouchHeight
	}
	return c.cfg.StandHeight
}
