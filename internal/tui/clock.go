package tui

import "time"

// Clock abstracts the current time so the live view can be tested.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// OffsetClock runs at real speed from a pinned starting instant.
type OffsetClock struct {
	Offset time.Duration
}

// NewOffsetClock returns a clock whose first reading is start.
func NewOffsetClock(start time.Time) OffsetClock {
	return OffsetClock{Offset: time.Until(start)}
}

func (c OffsetClock) Now() time.Time {
	return time.Now().Add(c.Offset)
}
