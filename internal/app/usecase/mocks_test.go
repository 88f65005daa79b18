package usecase_test

import (
	"context"
	"errors"
	"time"

	walog "go.mau.fi/whatsmeow/util/log"

	"github.com/fardannozami/sweat-tracker/internal/app/usecase"
	"github.com/fardannozami/sweat-tracker/internal/domain"
	"github.com/fardannozami/sweat-tracker/internal/streak"
)

// now is the fixed evaluation instant of every use case test.
var now = time.Date(2026, 2, 6, 19, 30, 0, 0, time.FixedZone("WIB", 7*60*60))

func fixedClock() usecase.Clock {
	return func() time.Time { return now }
}

func today() streak.Day { return streak.DayOf(now) }

var errRepo = errors.New("database is locked")

type mockMemberRepo struct {
	members map[string]*domain.Member
	order   []string
	err     error
}

func newMockMemberRepo() *mockMemberRepo {
	return &mockMemberRepo{members: make(map[string]*domain.Member)}
}

func (m *mockMemberRepo) GetMember(ctx context.Context, userID string) (*domain.Member, error) {
	if m.err != nil {
		return nil, m.err
	}
	member, ok := m.members[userID]
	if !ok {
		return nil, nil
	}
	cp := *member
	return &cp, nil
}

func (m *mockMemberRepo) UpsertMember(ctx context.Context, member *domain.Member) error {
	if m.err != nil {
		return m.err
	}
	if existing, ok := m.members[member.UserID]; ok {
		existing.Name = member.Name
		return nil
	}
	cp := *member
	m.members[member.UserID] = &cp
	m.order = append(m.order, member.UserID)
	return nil
}

func (m *mockMemberRepo) GetAllMembers(ctx context.Context) ([]*domain.Member, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []*domain.Member
	for _, id := range m.order {
		result = append(result, m.members[id])
	}
	return result, nil
}

func (m *mockMemberRepo) ResolveLIDToPhone(ctx context.Context, lid string) string {
	return lid
}

// mockObservationRepo returns observations in write order, not sorted by day,
// so the use cases have to normalize them.
type mockObservationRepo struct {
	logs map[string][]streak.Observation
	err  error
}

func newMockObservationRepo() *mockObservationRepo {
	return &mockObservationRepo{logs: make(map[string][]streak.Observation)}
}

func (m *mockObservationRepo) UpsertObservation(ctx context.Context, obs streak.Observation, recordedAt time.Time) error {
	if m.err != nil {
		return m.err
	}
	for i, existing := range m.logs[obs.EntityID] {
		if existing.Day == obs.Day {
			m.logs[obs.EntityID][i] = obs
			return nil
		}
	}
	m.logs[obs.EntityID] = append(m.logs[obs.EntityID], obs)
	return nil
}

func (m *mockObservationRepo) ListObservations(ctx context.Context, userID string) ([]streak.Observation, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]streak.Observation(nil), m.logs[userID]...), nil
}

// seed registers a member and marks the given days relative to today.
func seed(members *mockMemberRepo, observations *mockObservationRepo, userID, name string, completed map[int]bool) {
	_ = members.UpsertMember(context.Background(), &domain.Member{UserID: userID, Name: name, JoinedAt: now.AddDate(0, -1, 0)})
	for offset, done := range completed {
		_ = observations.UpsertObservation(context.Background(), streak.Observation{
			EntityID:  userID,
			Day:       today().AddDays(offset),
			Completed: done,
		}, now)
	}
}

func run(days ...int) map[int]bool {
	m := make(map[int]bool, len(days))
	for _, d := range days {
		m[d] = true
	}
	return m
}

func noopLogger() walog.Logger {
	return walog.Noop
}
