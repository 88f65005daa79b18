package usecase

import (
	"context"
	"fmt"

	"github.com/fardannozami/sweat-tracker/internal/domain"
	"github.com/fardannozami/sweat-tracker/internal/streak"
)

// SkipActivityUsecase records today as an explicit rest day. A rest day breaks
// the streak exactly like a missed day.
type SkipActivityUsecase struct {
	members      domain.MemberRepository
	observations domain.ObservationRepository
	clock        Clock
}

func NewSkipActivityUsecase(members domain.MemberRepository, observations domain.ObservationRepository, clock Clock) *SkipActivityUsecase {
	return &SkipActivityUsecase{members: members, observations: observations, clock: clock}
}

func (uc *SkipActivityUsecase) Execute(ctx context.Context, userID, name string) (string, error) {
	now := uc.clock()
	today := streak.DayOf(now)

	history, err := uc.observations.ListObservations(ctx, userID)
	if err != nil {
		return "", err
	}
	for _, obs := range history {
		if obs.Day == today {
			if obs.Completed {
				return fmt.Sprintf("%s sudah laporan hari ini, tidak perlu libur 😉", name), nil
			}
			return fmt.Sprintf("%s sudah libur hari ini 💤", name), nil
		}
	}

	if err := touchMember(ctx, uc.members, userID, name, now); err != nil {
		return "", err
	}

	obs := streak.Observation{EntityID: userID, Day: today, Completed: false}
	if err := uc.observations.UpsertObservation(ctx, obs, now); err != nil {
		return "", err
	}

	return fmt.Sprintf("Hari libur %s dicatat. Streak kamu mulai lagi dari nol 💔", name), nil
}
