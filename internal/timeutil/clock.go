package timeutil

import (
	"fmt"
	"time"
)

// DateFormat is the calendar-day format used everywhere dates cross a boundary
const DateFormat = "2006-01-02"

// Clock supplies the current time in the class's local timezone.
// Attendance is keyed by local calendar day, so "now" must always be
// evaluated in a fixed location rather than UTC or the client's zone.
type Clock interface {
	Now() time.Time
}

// LocationClock is the real Clock, pinned to a named timezone
type LocationClock struct {
	loc *time.Location
}

// NewLocationClock creates a Clock for an IANA timezone name
func NewLocationClock(timezone string) (*LocationClock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %s: %w", timezone, err)
	}
	return &LocationClock{loc: loc}, nil
}

func (c *LocationClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Today formats a clock reading as a calendar day string
func Today(clock Clock) string {
	return clock.Now().Format(DateFormat)
}
