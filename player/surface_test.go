package player

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/freerunner/common"
	"github.com/milk9111/freerunner/phys"
)

// slopeNormal is the unit normal of ground tilted deg degrees, falling
// away toward -X.
func slopeNormal(deg float64) mgl64.Vec3 {
	rad := deg * math.Pi / 180
	return mgl64.Vec3{-math.Sin(rad), math.Cos(rad), 0}
}

func TestForcedSlide(t *testing.T) {
	w := flatWorld(0)
	w.floor.normal = slopeNormal(30)
	w.floor.tag = phys.TagForceSlide
	c, b := newTestController(t, w, standingPos(0))

	ev := step(c, w, b, Input{})
	if c.Mode() != ModeForcedSlide {
		t.Fatalf("expected ModeForcedSlide, got %v", c.Mode())
	}
	if !hasEvent(ev, EventForcedSlideStart) {
		t.Fatalf("missing forced slide start: %v", ev)
	}

	// Zero input; still accelerating downhill, monotonically.
	prev := common.HorizontalLen(c.Velocity())
	for i := 0; i < 60; i++ {
		step(c, w, b, Input{})
		speed := common.HorizontalLen(c.Velocity())
		if speed < prev-1e-9 {
			t.Fatalf("tick %d: forced slide decelerated: %v -> %v", i, prev, speed)
		}
		prev = speed
	}
	if prev < 0.5 {
		t.Fatalf("forced slide barely moved: %v", prev)
	}
	if c.Velocity().X() >= 0 {
		t.Fatalf("downhill is -X on this slope, vx = %v", c.Velocity().X())
	}

	// Back on plain ground the mode releases.
	w.floor.tag = phys.TagNone
	ev = step(c, w, b, Input{})
	if c.Mode() == ModeForcedSlide {
		t.Fatalf("forced slide persisted on plain ground")
	}
	if !hasEvent(ev, EventForcedSlideEnd) {
		t.Fatalf("missing forced slide end: %v", ev)
	}
}

func TestForcedSlideIgnoresInputAcceleration(t *testing.T) {
	build := func() (*Controller, *stubWorld, *stubBody) {
		w := flatWorld(0)
		w.floor.normal = slopeNormal(30)
		w.floor.tag = phys.TagForceSlide
		c, b := newTestController(t, w, standingPos(0))
		return c, w, b
	}
	idle, idleW, idleB := build()
	held, heldW, heldB := build()

	// Holding forward and sprint must leave the trajectory untouched.
	in := forwardInput()
	in.SprintHeld = true
	for i := 0; i < 90; i++ {
		step(idle, idleW, idleB, Input{})
		step(held, heldW, heldB, in)
		if held.Velocity() != idle.Velocity() {
			t.Fatalf("tick %d: input accelerated the forced slide: %v vs %v",
				i, held.Velocity(), idle.Velocity())
		}
	}
	if heldB.pos != idleB.pos {
		t.Fatalf("input moved the forced slide: %v vs %v", heldB.pos, idleB.pos)
	}
}

func TestSteepSlopeIsNotGround(t *testing.T) {
	w := flatWorld(0)
	w.floor.normal = slopeNormal(50)
	c, b := newTestController(t, w, standingPos(0))

	step(c, w, b, Input{})
	if c.Grounded() {
		t.Fatalf("50 degree slope must not count as ground")
	}
	if c.Mode() != ModeAir {
		t.Fatalf("expected ModeAir on unwalkable slope, got %v", c.Mode())
	}
}

func TestStepUp(t *testing.T) {
	w := flatWorld(0)
	w.wall = &wallFace{x: 1.5, top: 0.2}
	c, b := newTestController(t, w, standingPos(0))

	var all []Event
	for i := 0; i < 180; i++ {
		all = append(all, step(c, w, b, forwardInput())...)
	}

	if !hasEvent(all, EventSteppedUp) {
		t.Fatalf("never stepped up the 0.2m riser")
	}
	if b.pos.X() < w.wall.x {
		t.Fatalf("player did not pass the step, x = %v", b.pos.X())
	}
	wantY := w.wall.top + c.cfg.StandHeight/2
	if math.Abs(b.pos.Y()-wantY) > 0.1 {
		t.Fatalf("expected to stand on the step at y ~%v, got %v", wantY, b.pos.Y())
	}
	if !c.Grounded() {
		t.Fatalf("expected grounded on top of the step")
	}
}

func TestStepTooTallIsNotClimbed(t *testing.T) {
	w := flatWorld(0)
	w.wall = &wallFace{x: 1.5, top: 0.5}
	c, b := newTestController(t, w, standingPos(0))

	// Stop before walking through the face; the stub has no lateral
	// collision response.
	var all []Event
	for i := 0; i < 30 && b.pos.X() < w.wall.x-0.1; i++ {
		all = append(all, step(c, w, b, forwardInput())...)
	}

	if hasEvent(all, EventSteppedUp) {
		t.Fatalf("stepped up a riser above the step height limit")
	}
}

func ladderWorld() *stubWorld {
	w := flatWorld(0)
	w.ladder = &ladderVolume{center: mgl64.Vec3{1.0, 1.5, 0}, halfW: 0.3, halfH: 1.5}
	return w
}

func TestLadder(t *testing.T) {
	t.Run("enter_climb_exit_top", func(t *testing.T) {
		w := ladderWorld()
		c, b := newTestController(t, w, mgl64.Vec3{0.5, 0.9, 0})

		ev := step(c, w, b, forwardInput())
		if c.Mode() != ModeLadder {
			t.Fatalf("expected ModeLadder, got %v", c.Mode())
		}
		if !hasEvent(ev, EventLadderEnter) {
			t.Fatalf("missing ladder enter: %v", ev)
		}

		var all []Event
		for i := 0; i < 90; i++ {
			all = append(all, step(c, w, b, forwardInput())...)
			if c.Mode() != ModeLadder {
				break
			}
			if got := c.Velocity().Y(); math.Abs(got-c.cfg.LadderClimbSpeed) > 1e-6 {
				t.Fatalf("climb vy = %v, want %v", got, c.cfg.LadderClimbSpeed)
			}
		}

		if !hasEvent(all, EventLadderExit) {
			t.Fatalf("never left the ladder: %v", all)
		}
		if c.Mode() != ModeAir {
			t.Fatalf("expected ModeAir past the ladder top, got %v", c.Mode())
		}
		if b.pos.Y() < 3 {
			t.Fatalf("expected to climb near the ladder top, y = %v", b.pos.Y())
		}
	})

	t.Run("descend", func(t *testing.T) {
		w := ladderWorld()
		c, b := newTestController(t, w, mgl64.Vec3{0.5, 0.9, 0})
		step(c, w, b, forwardInput())

		// Climb up a bit, then back down.
		run(c, w, b, 30, forwardInput())
		top := b.pos.Y()
		run(c, w, b, 10, Input{Move: mgl64.Vec2{0, -1}})
		if b.pos.Y() >= top {
			t.Fatalf("down input did not descend: %v -> %v", top, b.pos.Y())
		}
	})

	t.Run("jump_dismount", func(t *testing.T) {
		w := ladderWorld()
		c, b := newTestController(t, w, mgl64.Vec3{0.5, 0.9, 0})
		step(c, w, b, forwardInput())
		run(c, w, b, 30, forwardInput())

		ev := step(c, w, b, Input{JumpPressed: true})
		if c.Mode() != ModeAir {
			t.Fatalf("expected ModeAir after dismount, got %v", c.Mode())
		}
		if !hasEvent(ev, EventLadderExit) {
			t.Fatalf("missing ladder exit: %v", ev)
		}
		if c.Velocity().X() >= 0 {
			t.Fatalf("dismount should push away from the ladder, vx = %v", c.Velocity().X())
		}
		if math.Abs(c.Velocity().Y()-c.cfg.JumpVelocity) > 1e-6 {
			t.Fatalf("dismount vy = %v, want %v", c.Velocity().Y(), c.cfg.JumpVelocity)
		}
	})
}
