package player

import "github.com/milk9111/freerunner/common"

// EventKind identifies a discrete controller notification.
type EventKind uint8

const (
	EventFootstep EventKind = iota
	EventLanded
	EventJumped
	EventSlideStart
	EventSlideEnd
	EventLedgeGrabbed
	EventLedgeClimbStarted
	EventLedgeClimbFinished
	EventWallJumped
	EventSteppedUp
	EventLadderEnter
	EventLadderExit
	EventForcedSlideStart
	EventForcedSlideEnd
)

var eventNames = [...]string{
	EventFootstep:           "footstep",
	EventLanded:             "landed",
	EventJumped:             "jumped",
	EventSlideStart:         "slide_start",
	EventSlideEnd:           "slide_end",
	EventLedgeGrabbed:       "ledge_grabbed",
	EventLedgeClimbStarted:  "ledge_climb_started",
	EventLedgeClimbFinished: "ledge_climb_finished",
	EventWallJumped:         "wall_jumped",
	EventSteppedUp:          "stepped_up",
	EventLadderEnter:        "ladder_enter",
	EventLadderExit:         "ladder_exit",
	EventForcedSlideStart:   "forced_slide_start",
	EventForcedSlideEnd:     "forced_slide_end",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is one outbound notification. Speed carries the horizontal speed
// for footsteps and the impact speed for landings; it is zero otherwise.
type Event struct {
	Kind  EventKind
	Speed float64
}

// minLandingImpact filters out trivial landings (stepping off a curb).
const minLandingImpact = 1.0

// emitter turns the already-decided tick output into the ordered event
// sequence. It only compares previous and current controller state; it
// never reads input or probes, keeping the data flow one-way.
type emitter struct {
	wasGrounded bool
	wasMode     Mode
	lastVY      float64

	footstepTimer float64
}

func (e *emitter) tick(c *Controller, dt float64, out []Event) []Event {
	grounded := c.grounded
	mode := c.mode
	was := e.wasMode

	// Landing. touchedGround keeps the probe result even when a buffered
	// jump on the same tick already cleared grounded.
	if (grounded || c.touchedGround) && !e.wasGrounded {
		if impact := -e.lastVY; impact > minLandingImpact {
			out = append(out, Event{Kind: EventLanded, Speed: impact})
		}
		e.footstepTimer = 0
	}

	// Jumps report from the decision, not the grounded transition, so
	// coyote and buffered jumps are never missed. Wall jumps are reported
	// separately below.
	if c.jumped {
		out = append(out, Event{Kind: EventJumped})
	}

	// Footstep cadence scales with speed.
	if grounded && mode != ModeSlide {
		speed := common.HorizontalLen(c.vel)
		if speed > 0.5 {
			interval := 0.5 / (speed / c.cfg.WalkSpeed)
			e.footstepTimer += dt
			if e.footstepTimer >= interval {
				e.footstepTimer -= interval
				out = append(out, Event{Kind: EventFootstep, Speed: speed})
			}
		} else {
			e.footstepTimer = 0
		}
	}

	if c.steppedUp {
		out = append(out, Event{Kind: EventSteppedUp})
	}

	if mode == ModeSlide && was != ModeSlide {
		out = append(out, Event{Kind: EventSlideStart})
	}
	if was == ModeSlide && mode != ModeSlide {
		out = append(out, Event{Kind: EventSlideEnd})
	}

	if mode == ModeWallJump && was == ModeLedgeGrab {
		out = append(out, Event{Kind: EventWallJumped})
	}
	if mode == ModeLedgeGrab && was != ModeLedgeGrab {
		out = append(out, Event{Kind: EventLedgeGrabbed})
	}
	if mode == ModeLedgeClimb && was != ModeLedgeClimb {
		out = append(out, Event{Kind: EventLedgeClimbStarted})
	}
	if was == ModeLedgeClimb && mode != ModeLedgeClimb {
		out = append(out, Event{Kind: EventLedgeClimbFinished})
	}

	if mode == ModeLadder && was != ModeLadder {
		out = append(out, Event{Kind: EventLadderEnter})
	}
	if was == ModeLadder && mode != ModeLadder {
		out = append(out, Event{Kind: EventLadderExit})
	}

	if mode == ModeForcedSlide && was != ModeForcedSlide {
		out = append(out, Event{Kind: EventForcedSlideStart})
	}
	if was == ModeForcedSlide && mode != ModeForcedSlide {
		out = append(out, Event{Kind: EventForcedSlideEnd})
	}

	e.wasGrounded = grounded
	e.wasMode = mode
	e.lastVY = c.vel.Y()
	return out
}
