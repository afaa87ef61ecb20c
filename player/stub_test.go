package player

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/freerunner/phys"
)

// stubWorld is a tiny analytic scene: an optional horizontal floor, one
// wall face approached from -X, an optional ceiling, and an optional
// ladder volume. Enough geometry to exercise every probe without a real
// physics engine.
type stubWorld struct {
	gravity mgl64.Vec3
	floor   *floorPlane
	wall    *wallFace
	ceiling float64 // 0 = none
	ladder  *ladderVolume
}

type floorPlane struct {
	y      float64
	normal mgl64.Vec3
	tag    phys.SurfaceTag
}

// wallFace is a face at x extending from the floor up to top, hit by
// rays travelling +X. Its top is a flat upward surface.
type wallFace struct {
	x   float64
	top float64
	tag phys.SurfaceTag
}

type ladderVolume struct {
	center       mgl64.Vec3
	halfW, halfH float64
}

func flatWorld(floorY float64) *stubWorld {
	return &stubWorld{
		gravity: mgl64.Vec3{0, -9.81, 0},
		floor:   &floorPlane{y: floorY, normal: mgl64.Vec3{0, 1, 0}},
	}
}

func (w *stubWorld) Gravity() mgl64.Vec3 { return w.gravity }

func (w *stubWorld) CastRay(origin, dir mgl64.Vec3, maxDist float64, mask phys.Layer) (phys.RayHit, bool) {
	return w.cast(origin, dir, 0, maxDist)
}

func (w *stubWorld) CastSphere(origin, dir mgl64.Vec3, radius, maxDist float64, mask phys.Layer) (phys.RayHit, bool) {
	return w.cast(origin, dir, radius, maxDist)
}

func (w *stubWorld) cast(origin, dir mgl64.Vec3, radius, maxDist float64) (phys.RayHit, bool) {
	switch {
	case dir.Y() < -0.5: // downward
		if w.wall != nil && origin.X() >= w.wall.x-1e-6 && origin.Y() >= w.wall.top {
			d := origin.Y() - w.wall.top - radius
			if d <= maxDist {
				return phys.RayHit{
					Normal:   mgl64.Vec3{0, 1, 0},
					Distance: math.Max(d, 0),
					Tag:      w.wall.tag,
				}, true
			}
		}
		if w.floor != nil {
			d := origin.Y() - w.floor.y - radius
			if d <= maxDist {
				return phys.RayHit{
					Normal:   w.floor.normal,
					Distance: math.Max(d, 0),
					Tag:      w.floor.tag,
				}, true
			}
		}
	case dir.Y() > 0.5: // upward
		if w.ceiling != 0 {
			d := w.ceiling - origin.Y() - radius
			if d <= maxDist {
				return phys.RayHit{
					Normal:   mgl64.Vec3{0, -1, 0},
					Distance: math.Max(d, 0),
				}, true
			}
		}
	default: // horizontal, +X only
		if w.wall != nil && dir.X() > 0.5 && origin.X() < w.wall.x && origin.Y() <= w.wall.top {
			d := w.wall.x - origin.X() - radius
			if d <= maxDist {
				return phys.RayHit{
					Normal:   mgl64.Vec3{-1, 0, 0},
					Distance: math.Max(d, 0),
					Tag:      w.wall.tag,
				}, true
			}
		}
	}
	return phys.RayHit{}, false
}

func (w *stubWorld) OverlapCapsule(center mgl64.Vec3, radius, height float64, mask phys.Layer) []phys.Overlap {
	// Ladder volumes are trigger-layer; world-only queries (the spawn
	// check) must not see them.
	if w.ladder == nil || mask&phys.LayerTrigger == 0 {
		return nil
	}
	l := w.ladder
	if math.Abs(center.X()-l.center.X()) > l.halfW+radius {
		return nil
	}
	if math.Abs(center.Y()-l.center.Y()) > l.halfH+height/2 {
		return nil
	}
	return []phys.Overlap{{Center: l.center, Tag: phys.TagLadder}}
}

type stubBody struct {
	pos, vel       mgl64.Vec3
	radius, height float64
}

func (b *stubBody) Position() mgl64.Vec3     { return b.pos }
func (b *stubBody) SetPosition(p mgl64.Vec3) { b.pos = p }
func (b *stubBody) Velocity() mgl64.Vec3     { return b.vel }
func (b *stubBody) SetVelocity(v mgl64.Vec3) { b.vel = v }
func (b *stubBody) Resize(radius, height float64) {
	b.radius = radius
	b.height = height
}

const testDT = 1.0 / 60.0

func newTestController(t *testing.T, w *stubWorld, pos mgl64.Vec3) (*Controller, *stubBody) {
	t.Helper()
	cfg := DefaultConfig()
	body := &stubBody{pos: pos, radius: cfg.Radius, height: cfg.StandHeight}
	c, err := New(w, body, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, body
}

// step ticks the controller and then integrates the body the way the
// engine would between ticks, including resting contact with the floor
// or a wall top.
func step(c *Controller, w *stubWorld, b *stubBody, in Input) []Event {
	ev := c.Tick(testDT, in)
	if c.Mode() == ModeLedgeGrab || c.Mode() == ModeLedgeClimb {
		return ev
	}
	b.pos = b.pos.Add(b.vel.Mul(testDT))

	support := math.Inf(-1)
	if w.wall != nil && b.pos.X() >= w.wall.x {
		support = w.wall.top
	} else if w.floor != nil {
		support = w.floor.y
	}
	if bottom := b.pos.Y() - b.height/2; bottom < support && b.vel.Y() <= 0 {
		b.pos[1] = support + b.height/2
	}
	return ev
}

// run steps n ticks with constant input, collecting every event.
func run(c *Controller, w *stubWorld, b *stubBody, n int, in Input) []Event {
	var all []Event
	for i := 0; i < n; i++ {
		all = append(all, step(c, w, b, in)...)
	}
	return all
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

// standingPos is the resting center height for the standing capsule on a
// floor at y.
func standingPos(floorY float64) mgl64.Vec3 {
	return mgl64.Vec3{0, floorY + DefaultConfig().StandHeight/2, 0}
}

func forwardInput() Input {
	return Input{Move: mgl64.Vec2{0, 1}}
}
