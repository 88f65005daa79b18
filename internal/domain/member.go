package domain

import (
	"context"
	"errors"
	"time"

	"github.com/fardannozami/sweat-tracker/internal/streak"
)

var ErrMemberNotFound = errors.New("member not found")

type Member struct {
	UserID   string    `json:"user_id" db:"user_id"`
	Name     string    `json:"name" db:"name"`
	JoinedAt time.Time `json:"joined_at" db:"joined_at"`
}

// MemberStreak is the outward representation of a member. Streak is nil when
// the metrics could not be computed. Running is the streak that can still be
// extended today: the current streak, or the run through yesterday when today
// is not logged yet.
type MemberStreak struct {
	Member
	Streak        *streak.Result `json:"streak,omitempty"`
	Running       int            `json:"running_streak"`
	ActivityCount int            `json:"activity_count"`
	LastActive    string         `json:"last_active,omitempty"`
	Status        string         `json:"status"`
}

type MemberRepository interface {
	GetMember(ctx context.Context, userID string) (*Member, error)
	UpsertMember(ctx context.Context, member *Member) error
	GetAllMembers(ctx context.Context) ([]*Member, error)
	ResolveLIDToPhone(ctx context.Context, lid string) string
}

// ObservationRepository stores at most one observation per (user, day).
// ListObservations returns the full history of a user.
type ObservationRepository interface {
	UpsertObservation(ctx context.Context, obs streak.Observation, recordedAt time.Time) error
	ListObservations(ctx context.Context, userID string) ([]streak.Observation, error)
}
