package booking

import (
	"errors"
	"time"
)

var ErrInvalidPeriod = errors.New("invalid booking period")

// Period is the half-open rental window [start, end).
type Period struct {
	start time.Time
	end   time.Time
}

// NewPeriod validates a freshly requested window: start strictly before
// end, and neither endpoint behind now. Retroactive bookings are not
// accepted.
func NewPeriod(start, end, now time.Time) (Period, error) {
	if !start.Before(end) {
		return Period{}, ErrInvalidPeriod
	}
	if start.Before(now) || end.Before(now) {
		return Period{}, ErrInvalidPeriod
	}
	return Period{start: start, end: end}, nil
}

// ReconstructPeriod rebuilds a period loaded from storage without the
// creation-time checks; stored bookings legitimately lie in the past.
func ReconstructPeriod(start, end time.Time) Period {
	return Period{start: start, end: end}
}

func (p Period) Start() time.Time {
	return p.start
}

func (p Period) End() time.Time {
	return p.end
}

func (p Period) Duration() time.Duration {
	return p.end.Sub(p.start)
}

// IsCurrent reports whether now falls strictly inside the window.
func (p Period) IsCurrent(now time.Time) bool {
	return p.start.Before(now) && p.end.After(now)
}

func (p Period) IsPast(now time.Time) bool {
	return p.end.Before(now)
}

func (p Period) IsFuture(now time.Time) bool {
	return p.start.After(now)
}
