package usecase

import "time"

// Clock supplies the evaluation instant. Streak results depend on it, so use
// cases never read the wall clock directly.
type Clock func() time.Time

// SystemClock returns the current time in loc, which decides the calendar day
// a report belongs to.
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return func() time.Time {
		return time.Now().In(loc)
	}
}
