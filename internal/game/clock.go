package game

import (
	"sync"
	"time"
)

// Clock supplies wall time for a session. Game years advance only through
// YearTick; the clock stamps State.LastTickAt and the telemetry event log,
// so stats windows and idle sessions are measured in real time.
type Clock interface {
	Now() time.Time
}

// RealClock is the CLI's clock: session ticks carry the host's time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// FakeClock holds a fixed time until Advance moves it, so LastTickAt and
// event timestamps in engine tests are exact.
type FakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{t: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}
