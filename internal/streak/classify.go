package streak

// Status classifies an entity by the time elapsed since its last completed day.
type Status int

const (
	StatusNone    Status = iota // never completed
	StatusActive                // completed today
	StatusPending               // completed yesterday, today not logged yet
	StatusBroken                // last completion before yesterday
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusPending:
		return "pending"
	case StatusBroken:
		return "broken"
	default:
		return "none"
	}
}

// Alive reports whether the streak can still be continued today.
func (s Status) Alive() bool {
	return s == StatusActive || s == StatusPending
}

// Classify derives the status from the last completed day relative to today.
// ok is false when nothing was ever completed. A last day after today is
// treated as active.
func Classify(lastCompleted Day, ok bool, today Day) Status {
	if !ok {
		return StatusNone
	}
	switch {
	case lastCompleted >= today:
		return StatusActive
	case today.Follows(lastCompleted):
		return StatusPending
	default:
		return StatusBroken
	}
}

// StatusOf classifies a normalized sequence as of today. A rest day recorded
// for today breaks the streak even when yesterday was completed.
func StatusOf(seq []Observation, today Day) Status {
	last, ok := LastCompleted(seq)
	status := Classify(last, ok, today)
	if status == StatusPending && len(seq) > 0 {
		if latest := seq[len(seq)-1]; latest.Day == today && !latest.Completed {
			return StatusBroken
		}
	}
	return status
}
