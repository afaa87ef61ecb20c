package chipmunk

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/freerunner/phys"
)

func TestCastRayHitsBoxTop(t *testing.T) {
	w := NewWorld(9.81)
	w.AddBox(mgl64.Vec3{0, 0.5, 0}, 4, 1, phys.LayerWorld, phys.TagForceSlide)

	hit, ok := w.CastRay(mgl64.Vec3{0, 3, 0}, mgl64.Vec3{0, -1, 0}, 5, phys.LayerWorld)
	if !ok {
		t.Fatalf("expected hit")
	}
	if math.Abs(hit.Distance-2) > 0.01 {
		t.Fatalf("distance = %v, want ~2", hit.Distance)
	}
	if hit.Normal.Y() < 0.99 {
		t.Fatalf("expected upward normal, got %v", hit.Normal)
	}
	if hit.Tag != phys.TagForceSlide {
		t.Fatalf("tag = %v, want force_slide", hit.Tag)
	}
}

func TestCastRayMisses(t *testing.T) {
	w := NewWorld(9.81)
	w.AddBox(mgl64.Vec3{0, 0.5, 0}, 4, 1, phys.LayerWorld, phys.TagNone)

	t.Run("out_of_range", func(t *testing.T) {
		if _, ok := w.CastRay(mgl64.Vec3{0, 10, 0}, mgl64.Vec3{0, -1, 0}, 2, phys.LayerWorld); ok {
			t.Fatalf("hit beyond max distance")
		}
	})
	t.Run("masked_out", func(t *testing.T) {
		if _, ok := w.CastRay(mgl64.Vec3{0, 3, 0}, mgl64.Vec3{0, -1, 0}, 5, phys.LayerTrigger); ok {
			t.Fatalf("layer mask did not filter the hit")
		}
	})
}

func TestCastSegmentSlope(t *testing.T) {
	w := NewWorld(9.81)
	// 45 degree ramp.
	w.AddSegment(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{4, 4, 0}, phys.LayerWorld, phys.TagNone)

	hit, ok := w.CastRay(mgl64.Vec3{2, 4, 0}, mgl64.Vec3{0, -1, 0}, 5, phys.LayerWorld)
	if !ok {
		t.Fatalf("expected hit on ramp")
	}
	want := 1 / math.Sqrt2
	if math.Abs(hit.Normal.X()-(-want)) > 0.05 || math.Abs(hit.Normal.Y()-want) > 0.05 {
		t.Fatalf("ramp normal = %v, want ~{-0.707, 0.707}", hit.Normal)
	}
}

func TestOverlapCapsuleFindsLadder(t *testing.T) {
	w := NewWorld(9.81)
	w.AddBox(mgl64.Vec3{1, 2, 0}, 0.6, 4, phys.LayerTrigger, phys.TagLadder)

	overlaps := w.OverlapCapsule(mgl64.Vec3{1.3, 1.5, 0}, 0.4, 1.8, phys.LayerWorld|phys.LayerTrigger)
	if len(overlaps) != 1 {
		t.Fatalf("expected 1 overlap, got %d", len(overlaps))
	}
	if overlaps[0].Tag != phys.TagLadder {
		t.Fatalf("tag = %v, want ladder", overlaps[0].Tag)
	}
	if overlaps[0].Center.Sub(mgl64.Vec3{1, 2, 0}).Len() > 0.01 {
		t.Fatalf("center = %v, want {1,2,0}", overlaps[0].Center)
	}

	if got := w.OverlapCapsule(mgl64.Vec3{10, 1.5, 0}, 0.4, 1.8, phys.LayerWorld|phys.LayerTrigger); len(got) != 0 {
		t.Fatalf("distant capsule overlapped: %v", got)
	}
}

func TestPlayerBody(t *testing.T) {
	w := NewWorld(9.81)
	b := w.NewPlayerBody(mgl64.Vec3{0, 1, 0}, 0.4, 1.8, phys.LayerPlayer, phys.LayerWorld|phys.LayerTrigger)

	if got := b.Position(); got.Sub(mgl64.Vec3{0, 1, 0}).Len() > 1e-9 {
		t.Fatalf("position = %v", got)
	}

	b.SetVelocity(mgl64.Vec3{3, -1, 0})
	if got := b.Velocity(); got.Sub(mgl64.Vec3{3, -1, 0}).Len() > 1e-9 {
		t.Fatalf("velocity = %v", got)
	}

	b.SetPosition(mgl64.Vec3{5, 2, 0})
	w.Step(1.0 / 60.0)
	got := b.Position()
	if math.Abs(got.X()-(5+3.0/60)) > 0.01 {
		t.Fatalf("step did not integrate velocity: %v", got)
	}

	// Resize keeps the body but swaps the collider.
	b.Resize(0.4, 1.0)
	if b.shape == nil {
		t.Fatalf("resize dropped the shape")
	}
}

func TestGravity(t *testing.T) {
	w := NewWorld(9.81)
	if g := w.Gravity(); g.Y() != -9.81 || g.X() != 0 {
		t.Fatalf("gravity = %v", g)
	}
}
