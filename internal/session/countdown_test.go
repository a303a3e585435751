package session

import "testing"

func TestCountdownTicksToZeroAndStays(t *testing.T) {
	fired := 0
	c := newCountdown(1, func() { fired++ })

	if done := c.tick(); !done {
		t.Error("tick from 1 should report done")
	}
	if got := c.timeRemaining(); got != 0 {
		t.Errorf("remaining = %d, want 0", got)
	}

	// Further ticks clamp at zero and never refire the notification.
	for i := 0; i < 3; i++ {
		c.tick()
	}
	if got := c.timeRemaining(); got != 0 {
		t.Errorf("remaining after extra ticks = %d, want 0", got)
	}
	if fired != 1 {
		t.Errorf("onZero fired %d times, want exactly 1", fired)
	}
}

func TestCountdownCountsDown(t *testing.T) {
	c := newCountdown(3, nil)

	if done := c.tick(); done {
		t.Error("tick from 3 should not report done")
	}
	if got := c.timeRemaining(); got != 2 {
		t.Errorf("remaining = %d, want 2", got)
	}
}

func TestCountdownNegativeSeedClampsToZero(t *testing.T) {
	c := newCountdown(-5, nil)

	if got := c.timeRemaining(); got != 0 {
		t.Errorf("remaining = %d, want 0 for negative seed", got)
	}
}

func TestCountdownHaltStopsTicking(t *testing.T) {
	fired := 0
	c := newCountdown(3, func() { fired++ })

	c.halt()

	if done := c.tick(); !done {
		t.Error("tick after halt should report done")
	}
	if got := c.timeRemaining(); got != 3 {
		t.Errorf("remaining after halted tick = %d, want unchanged 3", got)
	}
	if fired != 0 {
		t.Errorf("onZero fired %d times after halt, want 0", fired)
	}
}

func TestCountdownHaltIsIdempotent(t *testing.T) {
	c := newCountdown(3, nil)
	c.halt()
	c.halt() // must not panic on the closed quit channel
}
