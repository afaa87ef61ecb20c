package main

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/freerunner/phys"
	"github.com/milk9111/freerunner/phys/chipmunk"
	"github.com/milk9111/freerunner/player"
)

// label is a bit of text pinned to a world position.
type label struct {
	pos  mgl64.Vec3
	text string
}

// buildCourse lays the test course out left to right along X: a slope
// gallery, jump gaps, stairs, crouch tunnels, ledge walls, a ladder
// tower, and a forced-slide chute at the end.
func buildCourse(w *chipmunk.World, cfg player.Config) []label {
	var labels []label
	worldLayer := cfg.WorldLayer

	ground := func(x0, x1 float64) {
		w.AddSegment(mgl64.Vec3{x0, 0, 0}, mgl64.Vec3{x1, 0, 0}, worldLayer, phys.TagNone)
	}
	box := func(cx, cy, width, height float64, tag phys.SurfaceTag) {
		w.AddBox(mgl64.Vec3{cx, cy, 0}, width, height, worldLayer, tag)
	}
	mark := func(x, y float64, text string) {
		labels = append(labels, label{pos: mgl64.Vec3{x, y, 0}, text: text})
	}

	ground(-30, 280)

	// Slope gallery: up-and-over ramps at increasing grades. Anything
	// past the walkable angle just stops the player.
	x := 8.0
	mark(x, 3, "SLOPES")
	for _, deg := range []float64{10, 20, 30, 38, 45} {
		rad := deg * math.Pi / 180
		run := 5.0
		rise := run * math.Tan(rad)
		w.AddSegment(mgl64.Vec3{x, 0, 0}, mgl64.Vec3{x + run, rise, 0}, worldLayer, phys.TagNone)
		w.AddSegment(mgl64.Vec3{x + run, rise, 0}, mgl64.Vec3{x + 2*run, 0, 0}, worldLayer, phys.TagNone)
		mark(x+run, rise+1, fmt.Sprintf("%.0f°", deg))
		x += 2*run + 3
	}

	// Jump course: raised platforms with growing gaps.
	x += 4
	mark(x, 3, "JUMPS")
	platformW := 3.0
	for _, gap := range []float64{2, 3, 4, 5} {
		box(x+platformW/2, 0.55, platformW, 0.5, phys.TagNone)
		mark(x+platformW+gap/2, 2, fmt.Sprintf("%.0fm gap", gap))
		x += platformW + gap
	}
	box(x+platformW/2, 0.55, platformW, 0.5, phys.TagNone)
	x += platformW

	// Stairs: risers up to and past the step-up limit.
	x += 6
	mark(x, 3, "STEPS")
	stepY := 0.0
	for _, rise := range []float64{0.2, 0.3, 0.35, 0.5} {
		stepY += rise
		box(x+1, stepY/2, 2, stepY, phys.TagNone)
		mark(x+1, stepY+0.8, fmt.Sprintf("%.2fm", rise))
		x += 2
	}
	// Walk-off back to ground level.
	w.AddSegment(mgl64.Vec3{x, stepY, 0}, mgl64.Vec3{x + 4, 0, 0}, worldLayer, phys.TagNone)
	x += 4

	// Crouch tunnels: ceilings that force a crouch and stay blocked
	// until there is stand clearance again.
	x += 5
	mark(x, 4, "CROUCH")
	for _, clearance := range []float64{1.5, 1.2, 1.0} {
		box(x+3, clearance+0.5, 6, 1.0, phys.TagNone)
		mark(x+3, clearance+1.6, fmt.Sprintf("%.1fm clear", clearance))
		x += 7
	}

	// Ledge walls: grabbable faces at increasing heights.
	x += 6
	mark(x, 5, "LEDGES")
	for _, h := range []float64{1.5, 2.0, 2.5, 3.0} {
		box(x+1.5, h/2, 3, h, phys.TagLedgeGrabbable)
		mark(x+1.5, h+0.6, fmt.Sprintf("%.1fm", h))
		// Drop back down on the far side.
		x += 3 + 4
	}

	// Ladder tower: a tall wall with a climbable strip on its face.
	x += 5
	mark(x, 7, "LADDER")
	towerH := 6.0
	box(x+1.5, towerH/2, 3, towerH, phys.TagNone)
	w.AddBox(mgl64.Vec3{x - 0.3, towerH / 2, 0}, 0.6, towerH, phys.LayerTrigger, phys.TagLadder)
	x += 3

	// Forced-slide chute off the tower top.
	mark(x+4, towerH+1, "FORCED SLIDE")
	chuteRad := 50.0 * math.Pi / 180
	chuteRun := towerH / math.Tan(chuteRad)
	w.AddSegment(mgl64.Vec3{x, towerH, 0}, mgl64.Vec3{x + chuteRun, 0, 0}, worldLayer, phys.TagForceSlide)

	return labels
}
