package streak

import "time"

// Result holds the consistency metrics of one entity.
type Result struct {
	Current int `json:"current_streak"`
	Longest int `json:"longest_streak"`
}

// Evaluate computes the current and longest streak of a normalized, ascending
// sequence. The current streak counts completed days ending at the calendar
// day of asOf; it is zero when that day is missing or not completed.
func Evaluate(seq []Observation, asOf time.Time) Result {
	var (
		running int
		best    int
		prev    Day
		hasPrev bool
	)
	completed := make(map[Day]bool, len(seq))
	for _, o := range seq {
		completed[o.Day] = o.Completed
		if !o.Completed {
			running = 0
		} else if hasPrev && o.Day.Follows(prev) {
			running++
		} else {
			running = 1
		}
		if running > best {
			best = running
		}
		// Advance on false days too so the day after a false entry is a gap.
		prev, hasPrev = o.Day, true
	}

	current := 0
	for day := DayOf(asOf); completed[day]; day = day.Prev() {
		current++
	}

	return Result{Current: current, Longest: best}
}

// Compute normalizes raw observations of one entity and evaluates them.
func Compute(obs []Observation, asOf time.Time) (Result, error) {
	seq, err := Normalize(obs)
	if err != nil {
		return Result{}, err
	}
	return Evaluate(seq, asOf), nil
}

// CountCompleted returns the number of completed days in a normalized sequence.
func CountCompleted(seq []Observation) int {
	n := 0
	for _, o := range seq {
		if o.Completed {
			n++
		}
	}
	return n
}

// LastCompleted returns the latest completed day of a normalized sequence.
func LastCompleted(seq []Observation) (Day, bool) {
	for i := len(seq) - 1; i >= 0; i-- {
		if seq[i].Completed {
			return seq[i].Day, true
		}
	}
	return 0, false
}
