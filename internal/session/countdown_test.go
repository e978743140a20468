package session

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestCountdown_Tick(t *testing.T) {
	c := NewCountdown(2500 * time.Millisecond)
	if c.Total() != 3 {
		t.Fatalf("total = %d, want 3 (rounded up)", c.Total())
	}
	for want := 2; want >= 1; want-- {
		if got, expired := c.Tick(); got != want || expired {
			t.Fatalf("tick = %d, %v; want %d, false", got, expired, want)
		}
	}
	if got, expired := c.Tick(); got != 0 || !expired {
		t.Fatalf("final tick = %d, %v; want 0, true", got, expired)
	}
	if _, expired := c.Tick(); expired {
		t.Error("expiry reported twice")
	}
}

func TestCountdown_StopFreezes(t *testing.T) {
	c := NewCountdown(5 * time.Second)
	c.Tick()
	c.Stop()
	if got, _ := c.Tick(); got != 4 {
		t.Errorf("remaining after stop = %d, want 4", got)
	}
}

func TestCountdown_StartExpires(t *testing.T) {
	c := NewCountdown(3 * time.Second)
	var ticks atomic.Int32
	expired := make(chan struct{})

	c.Start(context.Background(), time.Millisecond,
		func(int) { ticks.Add(1) },
		func() { close(expired) },
	)

	select {
	case <-expired:
	case <-time.After(2 * time.Second):
		t.Fatal("countdown did not expire")
	}
	<-c.Done()
	if ticks.Load() != 3 {
		t.Errorf("ticks = %d, want 3", ticks.Load())
	}
}

func TestCountdown_ContextCancel(t *testing.T) {
	c := NewCountdown(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	c.Start(ctx, time.Hour, nil, func() { t.Error("should not expire") })
	cancel()

	select {
	case <-c.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("goroutine did not exit on cancel")
	}
}

func TestFormatClockAndUrgency(t *testing.T) {
	tests := []struct {
		secs int
		want string
		urg  Urgency
	}{
		{300, "5:00", UrgencyCalm},
		{61, "1:01", UrgencyCalm},
		{60, "1:00", UrgencyWarning},
		{31, "0:31", UrgencyWarning},
		{30, "0:30", UrgencyUrgent},
		{0, "0:00", UrgencyUrgent},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.secs); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.secs, got, tt.want)
		}
		if got := UrgencyOf(tt.secs); got != tt.urg {
			t.Errorf("UrgencyOf(%d) = %d, want %d", tt.secs, got, tt.urg)
		}
	}
}
