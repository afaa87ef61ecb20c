package main

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/milk9111/freerunner/player"
)

const synthRate = beep.SampleRate(48000)

// synth turns movement events into short generated tones. If the speaker
// fails to open it stays silent instead of erroring out.
type synth struct {
	ok bool
}

func newSynth(mute bool) *synth {
	s := &synth{}
	if mute {
		return s
	}
	if err := speaker.Init(synthRate, synthRate.N(time.Millisecond*50)); err != nil {
		return s
	}
	s.ok = true
	return s
}

func (s *synth) handle(events []player.Event) {
	if !s.ok {
		return
	}
	for _, ev := range events {
		switch ev.Kind {
		case player.EventFootstep:
			s.play(160, 60*time.Millisecond, 0.25)
		case player.EventLanded:
			s.play(90, 120*time.Millisecond, 0.5)
		case player.EventJumped, player.EventWallJumped:
			s.play(320, 90*time.Millisecond, 0.35)
		case player.EventSlideStart, player.EventForcedSlideStart:
			s.play(220, 200*time.Millisecond, 0.3)
		case player.EventLedgeGrabbed:
			s.play(440, 80*time.Millisecond, 0.35)
		case player.EventLedgeClimbFinished:
			s.play(520, 120*time.Millisecond, 0.3)
		case player.EventSteppedUp:
			s.play(260, 40*time.Millisecond, 0.2)
		case player.EventLadderEnter, player.EventLadderExit:
			s.play(380, 70*time.Millisecond, 0.25)
		}
	}
}

func (s *synth) play(freq float64, dur time.Duration, vol float64) {
	speaker.Play(&tone{
		freq:  freq,
		vol:   vol,
		total: synthRate.N(dur),
	})
}

// tone is a sine burst with a linear decay envelope.
type tone struct {
	freq  float64
	phase float64
	vol   float64
	pos   int
	total int
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, false
		}
		env := 1 - float64(t.pos)/float64(t.total)
		v := math.Sin(2*math.Pi*t.phase) * env * t.vol
		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(synthRate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }
