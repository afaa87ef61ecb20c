package player

// Timer is a countdown window. Start arms it with a duration, Tick burns
// it down, Active reports whether the window is still open, and Consume
// closes it early (e.g. a buffered jump being honored).
//
// The zero Timer is expired.
type Timer struct {
	remaining float64
}

// Start arms the timer with the given window length.
func (t *Timer) Start(window float64) {
	t.remaining = window
}

// Extend lengthens the current window if the new value is longer.
func (t *Timer) Extend(window float64) {
	if window > t.remaining {
		t.remaining = window
	}
}

// Tick advances time. dt must be >= 0.
func (t *Timer) Tick(dt float64) {
	if t.remaining > 0 {
		t.remaining -= dt
		if t.remaining < 0 {
			t.remaining = 0
		}
	}
}

// Active reports whether the window is still open.
func (t *Timer) Active() bool {
	return t.remaining > 0
}

// Remaining returns the time left in the window.
func (t *Timer) Remaining() float64 {
	return t.remaining
}

// Consume closes the window immediately.
func (t *Timer) Consume() {
	t.remaining = 0
}
