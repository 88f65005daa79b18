package streak_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/fardannozami/sweat-tracker/internal/streak"
)

// =============================================================================
// NORMALIZER TESTS
// =============================================================================
//
// Normalize must produce an ascending, one-entry-per-day sequence where the
// last observation of a day in input order wins.
//
// =============================================================================

func obs(day streak.Day, completed bool) streak.Observation {
	return streak.Observation{EntityID: "user1", Day: day, Completed: completed}
}

func TestNormalize_Empty(t *testing.T) {
	got, err := streak.Normalize(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty sequence, got %v", got)
	}
}

func TestNormalize_SortsAscending(t *testing.T) {
	base := streak.DateOf(2026, 2, 1)
	in := []streak.Observation{obs(base+3, true), obs(base, true), obs(base+1, false)}

	got, err := streak.Normalize(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []streak.Observation{obs(base, true), obs(base+1, false), obs(base+3, true)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestNormalize_LastWriteWins(t *testing.T) {
	day := streak.DateOf(2026, 2, 6)
	in := []streak.Observation{obs(day, true), obs(day-1, true), obs(day, false)}

	got, err := streak.Normalize(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", len(got), got)
	}
	if got[1].Day != day || got[1].Completed {
		t.Errorf("expected last value for %s to be false, got %+v", day, got[1])
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	base := streak.DateOf(2026, 2, 1)
	in := []streak.Observation{obs(base+2, true), obs(base, true), obs(base+2, false)}
	snapshot := append([]streak.Observation(nil), in...)

	if _, err := streak.Normalize(in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(in, snapshot) {
		t.Errorf("input was modified: %v", in)
	}
}

func TestNormalize_FixedPoint(t *testing.T) {
	base := streak.DateOf(2026, 2, 1)
	in := []streak.Observation{obs(base+5, true), obs(base+1, false), obs(base+5, false), obs(base, true), obs(base+2, true)}

	once, err := streak.Normalize(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := streak.Normalize(once)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("normalized sequence changed on second pass: %v vs %v", once, twice)
	}
}

func TestNormalize_MixedEntities(t *testing.T) {
	day := streak.DateOf(2026, 2, 6)
	in := []streak.Observation{
		{EntityID: "user1", Day: day, Completed: true},
		{EntityID: "user2", Day: day, Completed: true},
	}

	_, err := streak.Normalize(in)
	if !errors.Is(err, streak.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}
