package streak

import (
	"fmt"
	"strings"
	"time"
)

const (
	secondsPerDay = 24 * 60 * 60
	dayLayout     = "2006-01-02"
)

// Day is a calendar date counted in days since 1970-01-01 (proleptic Gregorian).
// Two timestamps fall on the same day when their Day values are equal.
type Day int64

// DayOf returns the calendar day of t in t's own location. The time of day is
// discarded; no timezone conversion is performed.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return DateOf(y, m, d)
}

// DateOf builds a Day from year, month and day-of-month. Out of range values
// are normalized the same way time.Date normalizes them.
func DateOf(year int, month time.Month, day int) Day {
	return Day(time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay)
}

// ParseDay parses a YYYY-MM-DD date.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: day %q: %v", ErrInvalidArgument, s, err)
	}
	return DayOf(t), nil
}

func (d Day) Next() Day { return d + 1 }

func (d Day) Prev() Day { return d - 1 }

func (d Day) AddDays(n int) Day { return d + Day(n) }

// Follows reports whether d is the calendar day right after prev.
func (d Day) Follows(prev Day) bool {
	return d == prev+1
}

// IsToday reports whether d is the calendar day of now.
func (d Day) IsToday(now time.Time) bool {
	return d == DayOf(now)
}

// Time returns midnight of d in loc.
func (d Day) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	u := time.Unix(int64(d)*secondsPerDay, 0).UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, loc)
}

func (d Day) String() string {
	return time.Unix(int64(d)*secondsPerDay, 0).UTC().Format(dayLayout)
}
