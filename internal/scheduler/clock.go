package scheduler

import "time"

// Clock supplies the current time to components that would otherwise reach
// for ambient local time. Production code uses FacilityClock; tests inject
// a FixedClock so expansion and overdue evaluation stay deterministic.
type Clock interface {
	Now() time.Time
}

// FacilityClock reports wall-clock time pinned to the facility timezone
type FacilityClock struct {
	loc *time.Location
}

// NewFacilityClock creates a clock for the given facility timezone
func NewFacilityClock(loc *time.Location) *FacilityClock {
	if loc == nil {
		loc = time.UTC
	}
	return &FacilityClock{loc: loc}
}

// Now returns the current time in the facility timezone
func (c *FacilityClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Location returns the facility timezone
func (c *FacilityClock) Location() *time.Location {
	return c.loc
}

// FixedClock always reports the same instant
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant
func (c FixedClock) Now() time.Time {
	return c.T
}
