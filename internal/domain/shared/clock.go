package shared

import "time"

// Clock abstracts wall-clock time so repositories can stamp records deterministically in tests
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system time
type RealClock struct{}

// Now returns the current system time in UTC
func (r *RealClock) Now() time.Time {
	return time.Now().UTC()
}

// NewRealClock creates a RealClock instance
func NewRealClock() Clock {
	return &RealClock{}
}

// MockClock implements Clock with a controllable time for testing
type MockClock struct {
	CurrentTime time.Time
}

// Now returns the mock's current time
func (m *MockClock) Now() time.Time {
	return m.CurrentTime
}

// Advance moves the mock clock forward by the given duration
func (m *MockClock) Advance(d time.Duration) {
	m.CurrentTime = m.CurrentTime.Add(d)
}

// NewMockClock creates a MockClock starting at the given time
func NewMockClock(startTime time.Time) *MockClock {
	return &MockClock{CurrentTime: startTime}
}

// SimClock tracks simulated battle time in seconds. It only moves when the tick loop advances it.
type SimClock struct {
	elapsed float64
	ticks   int
}

// Tick advances simulated time by dt seconds
func (c *SimClock) Tick(dt float64) {
	c.elapsed += dt
	c.ticks++
}

// Elapsed returns the simulated seconds since the battle started
func (c *SimClock) Elapsed() float64 {
	return c.elapsed
}

// Ticks returns the number of ticks processed
func (c *SimClock) Ticks() int {
	return c.ticks
}
