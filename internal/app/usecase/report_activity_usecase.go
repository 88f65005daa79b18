package usecase

import (
	"context"
	"fmt"

	"github.com/fardannozami/sweat-tracker/internal/domain"
	"github.com/fardannozami/sweat-tracker/internal/streak"
)

type ReportActivityUsecase struct {
	members      domain.MemberRepository
	observations domain.ObservationRepository
	clock        Clock
}

func NewReportActivityUsecase(members domain.MemberRepository, observations domain.ObservationRepository, clock Clock) *ReportActivityUsecase {
	return &ReportActivityUsecase{members: members, observations: observations, clock: clock}
}

func (uc *ReportActivityUsecase) Execute(ctx context.Context, userID, name string) (string, error) {
	now := uc.clock()
	today := streak.DayOf(now)

	history, err := uc.observations.ListObservations(ctx, userID)
	if err != nil {
		return "", err
	}
	for _, obs := range history {
		if obs.Day == today && obs.Completed {
			return fmt.Sprintf("%s sudah laporan hari ini, ayo jangan curang! 😉", name), nil
		}
	}

	if err := touchMember(ctx, uc.members, userID, name, now); err != nil {
		return "", err
	}

	// A rest day logged earlier today is overwritten by the report.
	obs := streak.Observation{EntityID: userID, Day: today, Completed: true}
	if err := uc.observations.UpsertObservation(ctx, obs, now); err != nil {
		return "", err
	}

	seq, err := streak.Normalize(append(history, obs))
	if err != nil {
		return "", err
	}
	result := streak.Evaluate(seq, now)

	msg := fmt.Sprintf("Laporan diterima, %s sudah berkeringat %d hari. Lanjutkan 🔥", name, streak.CountCompleted(seq))
	if result.Current > 1 {
		msg += fmt.Sprintf("\nStreak %d hari beruntun 💪", result.Current)
	}
	return msg, nil
}
