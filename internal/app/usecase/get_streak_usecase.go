package usecase

import (
	"context"
	"time"

	walog "go.mau.fi/whatsmeow/util/log"

	"github.com/fardannozami/sweat-tracker/internal/domain"
	"github.com/fardannozami/sweat-tracker/internal/streak"
)

type GetStreakUsecase struct {
	members      domain.MemberRepository
	observations domain.ObservationRepository
	clock        Clock
	log          walog.Logger
}

func NewGetStreakUsecase(members domain.MemberRepository, observations domain.ObservationRepository, clock Clock, logger walog.Logger) *GetStreakUsecase {
	return &GetStreakUsecase{members: members, observations: observations, clock: clock, log: logger}
}

// Execute returns the member with its streak metrics. Repository failures are
// returned as errors; if only the streak computation fails the member is
// returned without streak data.
func (uc *GetStreakUsecase) Execute(ctx context.Context, userID string) (*domain.MemberStreak, error) {
	member, err := uc.members.GetMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, domain.ErrMemberNotFound
	}

	observations, err := uc.observations.ListObservations(ctx, userID)
	if err != nil {
		return nil, err
	}

	return summarize(member, observations, uc.clock(), uc.log), nil
}

// summarize builds the outward representation of a member from its full
// history. Streak stays nil when the history cannot be evaluated.
func summarize(member *domain.Member, observations []streak.Observation, now time.Time, logger walog.Logger) *domain.MemberStreak {
	ms := &domain.MemberStreak{Member: *member, Status: streak.StatusNone.String()}

	seq, err := streak.Normalize(observations)
	if err != nil {
		logger.Warnf("Skipping streak for %s: %v", member.UserID, err)
		return ms
	}

	result := streak.Evaluate(seq, now)
	status := streak.StatusOf(seq, streak.DayOf(now))

	ms.Streak = &result
	ms.ActivityCount = streak.CountCompleted(seq)
	ms.Status = status.String()
	if last, ok := streak.LastCompleted(seq); ok {
		ms.LastActive = last.String()
	}

	switch status {
	case streak.StatusActive:
		ms.Running = result.Current
	case streak.StatusPending:
		// Not logged yet today; the run through yesterday can still continue.
		ms.Running = streak.Evaluate(seq, now.AddDate(0, 0, -1)).Current
	}
	return ms
}
