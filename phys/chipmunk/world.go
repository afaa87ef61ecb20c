// Package chipmunk backs the phys boundary with a jakecoffman/cp space.
// The space lives in the XZ-slice convention: world X and Y map onto the
// 2D plane and world Z is fixed at zero, which is all the gymnasium demo
// and integration tests need.
package chipmunk

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/freerunner/phys"
)

type World struct {
	space   *cp.Space
	gravity mgl64.Vec3
}

// NewWorld creates an empty space. gravity is the downward magnitude
// reported to controllers; the space itself applies none (controllers own
// their vertical velocity).
func NewWorld(gravity float64) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	return &World{
		space:   space,
		gravity: mgl64.Vec3{0, -gravity, 0},
	}
}

// Space exposes the underlying Chipmunk space for stepping and debug
// rendering.
func (w *World) Space() *cp.Space { return w.space }

// Step advances the simulation.
func (w *World) Step(dt float64) { w.space.Step(dt) }

func (w *World) Gravity() mgl64.Vec3 { return w.gravity }

// AddBox adds a static solid box. Ladder-tagged boxes become sensors so
// the player can overlap them.
func (w *World) AddBox(center mgl64.Vec3, width, height float64, layer phys.Layer, tag phys.SurfaceTag) *cp.Shape {
	body := cp.NewStaticBody()
	body.SetPosition(vec2(center))
	w.space.AddBody(body)

	shape := cp.NewBox(body, width, height, 0)
	w.addShape(shape, layer, tag)
	return shape
}

// AddSegment adds a static line segment (ground strips, ramps).
func (w *World) AddSegment(a, b mgl64.Vec3, layer phys.Layer, tag phys.SurfaceTag) *cp.Shape {
	shape := cp.NewSegment(w.space.StaticBody, vec2(a), vec2(b), 0.05)
	w.addShape(shape, layer, tag)
	return shape
}

func (w *World) addShape(shape *cp.Shape, layer phys.Layer, tag phys.SurfaceTag) {
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetFilter(shapeFilter(layer))
	shape.UserData = tag
	if tag == phys.TagLadder {
		shape.SetSensor(true)
	}
	w.space.AddShape(shape)
}

func (w *World) CastRay(origin, dir mgl64.Vec3, maxDist float64, mask phys.Layer) (phys.RayHit, bool) {
	return w.cast(origin, dir, 0, maxDist, mask)
}

func (w *World) CastSphere(origin, dir mgl64.Vec3, radius, maxDist float64, mask phys.Layer) (phys.RayHit, bool) {
	return w.cast(origin, dir, radius, maxDist, mask)
}

func (w *World) cast(origin, dir mgl64.Vec3, radius, maxDist float64, mask phys.Layer) (phys.RayHit, bool) {
	start := vec2(origin)
	end := vec2(origin.Add(dir.Mul(maxDist)))

	info := w.space.SegmentQueryFirst(start, end, radius, queryFilter(mask))
	if info.Shape == nil {
		return phys.RayHit{}, false
	}
	return phys.RayHit{
		Point:    vec3(info.Point),
		Normal:   vec3(info.Normal),
		Distance: info.Alpha * maxDist,
		Tag:      tagOf(info.Shape),
	}, true
}

func (w *World) OverlapCapsule(center mgl64.Vec3, radius, height float64, mask phys.Layer) []phys.Overlap {
	bb := cp.BB{
		L: center.X() - radius,
		B: center.Y() - height/2,
		R: center.X() + radius,
		T: center.Y() + height/2,
	}

	var out []phys.Overlap
	w.space.BBQuery(bb, queryFilter(mask), func(shape *cp.Shape, _ interface{}) {
		sb := shape.BB()
		out = append(out, phys.Overlap{
			Center: mgl64.Vec3{(sb.L + sb.R) / 2, (sb.B + sb.T) / 2, 0},
			Tag:    tagOf(shape),
		})
	}, nil)
	return out
}

// Body is the player rigid body: a rotation-locked dynamic box the
// controller drives by velocity.
type Body struct {
	body   *cp.Body
	shape  *cp.Shape
	space  *cp.Space
	filter cp.ShapeFilter
}

// NewPlayerBody spawns the player capsule at pos on the given layer,
// colliding with mask.
func (w *World) NewPlayerBody(pos mgl64.Vec3, radius, height float64, layer, mask phys.Layer) *Body {
	body := cp.NewBody(1, math.Inf(1)) // infinite moment locks rotation
	body.SetPosition(vec2(pos))
	w.space.AddBody(body)

	b := &Body{
		body:  body,
		space: w.space,
		filter: cp.ShapeFilter{
			Group:      cp.NO_GROUP,
			Categories: uint(layer),
			Mask:       uint(mask),
		},
	}
	b.attach(radius, height)
	return b
}

func (b *Body) attach(radius, height float64) {
	if b.shape != nil {
		b.space.RemoveShape(b.shape)
	}
	shape := cp.NewBox(b.body, radius*2, height, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetFilter(b.filter)
	b.space.AddShape(shape)
	b.shape = shape
}

func (b *Body) Position() mgl64.Vec3     { return vec3(b.body.Position()) }
func (b *Body) SetPosition(p mgl64.Vec3) { b.body.SetPosition(vec2(p)) }
func (b *Body) Velocity() mgl64.Vec3     { return vec3(b.body.Velocity()) }
func (b *Body) SetVelocity(v mgl64.Vec3) { b.body.SetVelocityVector(vec2(v)) }

// Resize swaps the collider dimensions in place, taking effect before
// any later query against the space.
func (b *Body) Resize(radius, height float64) { b.attach(radius, height) }

func vec2(v mgl64.Vec3) cp.Vector { return cp.Vector{X: v.X(), Y: v.Y()} }

func vec3(v cp.Vector) mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, 0} }

func tagOf(shape *cp.Shape) phys.SurfaceTag {
	if tag, ok := shape.UserData.(phys.SurfaceTag); ok {
		return tag
	}
	return phys.TagNone
}

// shapeFilter is what world geometry carries: it belongs to layer and
// collides with everything.
func shapeFilter(layer phys.Layer) cp.ShapeFilter {
	return cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: uint(layer),
		Mask:       cp.ALL_CATEGORIES,
	}
}

// queryFilter matches any shape whose category intersects mask.
func queryFilter(mask phys.Layer) cp.ShapeFilter {
	return cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: cp.ALL_CATEGORIES,
		Mask:       uint(mask),
	}
}
