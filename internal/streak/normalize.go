package streak

import (
	"fmt"
	"sort"
)

// Observation is one dated true/false record for a tracked entity.
type Observation struct {
	EntityID  string
	Day       Day
	Completed bool
}

// Normalize sorts observations by day and drops duplicate days, keeping the
// one that came last in input order. All observations must belong to the same
// entity. The input slice is not modified.
func Normalize(obs []Observation) ([]Observation, error) {
	if len(obs) == 0 {
		return []Observation{}, nil
	}

	entity := obs[0].EntityID
	latest := make(map[Day]int, len(obs))
	for i, o := range obs {
		if o.EntityID != entity {
			return nil, fmt.Errorf("%w: observations for %q and %q in one call", ErrInvalidArgument, entity, o.EntityID)
		}
		latest[o.Day] = i
	}

	out := make([]Observation, 0, len(latest))
	for _, i := range latest {
		out = append(out, obs[i])
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Day < out[j].Day
	})
	return out, nil
}
