package clock

import "time"

// Clocker abstracts time so callers can replace real time in tests.
type Clocker interface {
	Now() time.Time
}

// TimeClocker is the production clock implementation backed by time.Now.
type TimeClocker struct{}

// New returns a TimeClocker that reads the current system time.
func New() *TimeClocker {
	return &TimeClocker{}
}

// Now returns the current system time.
func (*TimeClocker) Now() time.Time {
	return time.Now()
}

// Static is a fixed clock for tests; advance it explicitly with Advance.
type Static struct {
	now time.Time
}

// NewStatic returns a clock frozen at the given time.
func NewStatic(now time.Time) *Static {
	return &Static{now: now}
}

// Now returns the frozen time.
func (s *Static) Now() time.Time {
	return s.now
}

// Advance moves the frozen time forward by d.
func (s *Static) Advance(d time.Duration) {
	s.now = s.now.Add(d)
}
