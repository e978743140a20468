package session

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Countdown counts whole seconds down to zero. It can be driven manually
// with Tick (the TUI does this from its own tick messages) or by Start,
// which runs a ticker goroutine until zero, Stop or context cancellation.
type Countdown struct {
	mu        sync.Mutex
	total     int
	remaining int
	stopped   bool

	cancel context.CancelFunc
	done   chan struct{}
}

// NewCountdown creates a stopped countdown of d, rounded up to whole seconds.
func NewCountdown(d time.Duration) *Countdown {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return &Countdown{total: secs, remaining: secs}
}

// Total is the starting length in seconds.
func (c *Countdown) Total() int { return c.total }

// Remaining is the number of seconds left.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Tick removes one second. It reports the remaining time and whether this
// tick reached zero. Ticks after zero or after Stop change nothing and
// never report expiry again.
func (c *Countdown) Tick() (remaining int, expired bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped || c.remaining == 0 {
		return c.remaining, false
	}
	c.remaining--
	return c.remaining, c.remaining == 0
}

// Start ticks every interval in a new goroutine. onTick sees each new
// remaining value; onExpire runs once when zero is reached. Either may be
// nil. Start on a running countdown is a no-op.
func (c *Countdown) Start(ctx context.Context, interval time.Duration, onTick func(remaining int), onExpire func()) {
	c.mu.Lock()
	if c.done != nil || c.stopped {
		c.mu.Unlock()
		return
	}
	ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})
	done := c.done
	c.mu.Unlock()

	go func() {
		defer close(done)
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				remaining, expired := c.Tick()
				if onTick != nil {
					onTick(remaining)
				}
				if expired {
					if onExpire != nil {
						onExpire()
					}
					return
				}
				if remaining == 0 {
					return
				}
			}
		}
	}()
}

// Stop freezes the countdown and ends a running goroutine.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	if c.cancel != nil {
		c.cancel()
	}
}

// Done is closed when a started countdown's goroutine exits. It is nil
// before Start.
func (c *Countdown) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// Urgency grades the remaining time for display.
type Urgency int

const (
	UrgencyCalm Urgency = iota
	UrgencyWarning
	UrgencyUrgent
)

// UrgencyOf returns UrgencyUrgent for the last 30 seconds and
// UrgencyWarning for the minute before.
func UrgencyOf(seconds int) Urgency {
	switch {
	case seconds <= 30:
		return UrgencyUrgent
	case seconds <= 60:
		return UrgencyWarning
	default:
		return UrgencyCalm
	}
}

// FormatClock renders seconds as m:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
