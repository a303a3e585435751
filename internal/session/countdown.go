package session

import (
	"sync"
	"time"
)

// countdown is a cancellable once-per-second timer for a quiz session.
// It only counts: reaching zero stops the ticking and fires a single
// notification; whether anything gets submitted is the owner's decision.
type countdown struct {
	mu        sync.Mutex
	remaining int
	stopped   bool
	fired     bool
	quit      chan struct{}
	onZero    func()
}

// newCountdown seeds the timer with the server-issued remaining seconds.
// onZero is invoked at most once, on the tick that reaches zero.
func newCountdown(remaining int, onZero func()) *countdown {
	if remaining < 0 {
		remaining = 0
	}
	return &countdown{
		remaining: remaining,
		quit:      make(chan struct{}),
		onZero:    onZero,
	}
}

// start launches the ticking goroutine.
func (c *countdown) start() {
	go c.run()
}

func (c *countdown) run() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-c.quit:
			return
		case <-ticker.C:
			if c.tick() {
				return
			}
		}
	}
}

// tick decrements the remaining time by one second, clamped at zero, and
// reports whether ticking is done. A stopped countdown mutates nothing.
// The zero notification fires exactly once.
func (c *countdown) tick() bool {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return true
	}

	if c.remaining > 0 {
		c.remaining--
	}

	done := c.remaining == 0
	var onZero func()
	if done && !c.fired {
		c.fired = true
		onZero = c.onZero
	}
	c.mu.Unlock()

	if onZero != nil {
		onZero()
	}
	return done
}

// timeRemaining returns the seconds left on the timer.
func (c *countdown) timeRemaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// halt cancels the timer. Safe to call more than once and from any
// goroutine.
func (c *countdown) halt() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}
	c.stopped = true
	close(c.quit)
}
