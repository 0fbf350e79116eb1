package engine

import "time"

// TimeProvider abstracts the wall clock so frame timing can be driven in tests
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider provides the real system time with monotonic clock readings
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a new monotonic time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// FrameClock measures elapsed time between consecutive frames
type FrameClock struct {
	provider TimeProvider
	last     time.Time
}

// NewFrameClock starts measuring from the provider's current time
func NewFrameClock(provider TimeProvider) *FrameClock {
	return &FrameClock{provider: provider, last: provider.Now()}
}

// Tick returns the time since the previous Tick (or construction)
func (c *FrameClock) Tick() time.Duration {
	now := c.provider.Now()
	dt := now.Sub(c.last)
	c.last = now
	if dt < 0 {
		return 0
	}
	return dt
}
