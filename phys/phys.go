// Package phys defines the boundary between the movement controller and
// whatever physics engine backs it. The controller only ever talks to the
// World query interface and the Body it was spawned with; implementations
// live elsewhere (see phys/chipmunk for the demo world).
package phys

import "github.com/go-gl/mathgl/mgl64"

// Layer is a collision category bitmask.
type Layer uint32

const (
	LayerNone    Layer = 0
	LayerWorld   Layer = 1 << 0
	LayerPlayer  Layer = 1 << 1
	LayerTrigger Layer = 1 << 2
)

// SurfaceTag marks world geometry with gameplay meaning. Plain surfaces
// carry TagNone.
type SurfaceTag uint8

const (
	TagNone SurfaceTag = iota
	TagLadder
	TagForceSlide
	TagLedgeGrabbable
)

func (t SurfaceTag) String() string {
	switch t {
	case TagLadder:
		return "ladder"
	case TagForceSlide:
		return "force_slide"
	case TagLedgeGrabbable:
		return "ledge_grabbable"
	default:
		return "none"
	}
}

// RayHit is the result of a ray or shape cast.
type RayHit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
	Tag      SurfaceTag
}

// Overlap is a volume the player capsule currently intersects.
type Overlap struct {
	Center mgl64.Vec3
	Tag    SurfaceTag
}

// World is the synchronous spatial-query surface of the physics engine.
// Every call resolves within the current tick; a false/empty result is a
// valid "no hit" answer, never an error.
type World interface {
	// CastRay casts a ray from origin along dir (unit length) up to
	// maxDist against shapes matching mask.
	CastRay(origin, dir mgl64.Vec3, maxDist float64, mask Layer) (RayHit, bool)

	// CastSphere sweeps a sphere of the given radius, for casts that need
	// a fat probe (ground detection, stand-up clearance).
	CastSphere(origin, dir mgl64.Vec3, radius, maxDist float64, mask Layer) (RayHit, bool)

	// OverlapCapsule reports tagged volumes intersecting a capsule at
	// center with the given radius and full height.
	OverlapCapsule(center mgl64.Vec3, radius, height float64, mask Layer) []Overlap

	// Gravity is the engine's gravity vector, applied by the controller
	// while airborne.
	Gravity() mgl64.Vec3
}

// Body is the player's rigid body. The controller owns its velocity and,
// for scripted motions, its position for the duration of a tick; the
// engine owns both between ticks.
type Body interface {
	Position() mgl64.Vec3
	SetPosition(mgl64.Vec3)
	Velocity() mgl64.Vec3
	SetVelocity(mgl64.Vec3)

	// Resize swaps the capsule dimensions (crouch/stand). Implementations
	// must apply the new shape before the next spatial query.
	Resize(radius, height float64)
}
