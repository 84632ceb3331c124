package booking

import (
	"errors"
	"time"
)

var ErrInvalidPeriod = errors.New("start time must be before end time")

// Period is the half-open-in-spirit rental window [start, end]. The
// start < end invariant is enforced here once; classification logic
// assumes it afterwards.
type Period struct {
	start time.Time
	end   time.Time
}

func NewPeriod(start, end time.Time) (Period, error) {
	if !start.Before(end) {
		return Period{}, ErrInvalidPeriod
	}
	return Period{start: start, end: end}, nil
}

func (p Period) Start() time.Time {
	return p.start
}

func (p Period) End() time.Time {
	return p.end
}

// InProgressAt reports whether now falls inside the window, bounds
// inclusive (start <= now <= end).
func (p Period) InProgressAt(now time.Time) bool {
	return !p.start.After(now) && !p.end.Before(now)
}

// FinishedBy reports whether the rental window has fully elapsed.
func (p Period) FinishedBy(now time.Time) bool {
	return p.end.Before(now)
}
