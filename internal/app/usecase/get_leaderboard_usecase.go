package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	walog "go.mau.fi/whatsmeow/util/log"

	"github.com/fardannozami/sweat-tracker/internal/domain"
)

type GetLeaderboardUsecase struct {
	members      domain.MemberRepository
	observations domain.ObservationRepository
	clock        Clock
	log          walog.Logger
}

func NewGetLeaderboardUsecase(members domain.MemberRepository, observations domain.ObservationRepository, clock Clock, logger walog.Logger) *GetLeaderboardUsecase {
	return &GetLeaderboardUsecase{members: members, observations: observations, clock: clock, log: logger}
}

// Standings returns every member ranked: members whose streak is still alive
// (reported today or yesterday) first, ordered by running streak, then the
// rest ordered by activity count.
func (uc *GetLeaderboardUsecase) Standings(ctx context.Context) ([]*domain.MemberStreak, error) {
	members, err := uc.members.GetAllMembers(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.clock()
	var keepStreak []*domain.MemberStreak
	var loseStreak []*domain.MemberStreak
	for _, m := range members {
		observations, err := uc.observations.ListObservations(ctx, m.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to load activity of %s: %w", m.UserID, err)
		}
		ms := summarize(m, observations, now, uc.log)
		if ms.Running > 0 {
			keepStreak = append(keepStreak, ms)
		} else {
			loseStreak = append(loseStreak, ms)
		}
	}

	sort.SliceStable(keepStreak, func(i, j int) bool {
		if keepStreak[i].Running != keepStreak[j].Running {
			return keepStreak[i].Running > keepStreak[j].Running
		}
		return keepStreak[i].ActivityCount > keepStreak[j].ActivityCount
	})
	sort.SliceStable(loseStreak, func(i, j int) bool {
		return loseStreak[i].ActivityCount > loseStreak[j].ActivityCount
	})

	return append(keepStreak, loseStreak...), nil
}

func (uc *GetLeaderboardUsecase) Execute(ctx context.Context) (string, error) {
	standings, err := uc.Standings(ctx)
	if err != nil {
		return "", err
	}

	// The challenge day is the highest activity count in the group.
	maxDay := 0
	keep := 0
	for _, ms := range standings {
		if ms.ActivityCount > maxDay {
			maxDay = ms.ActivityCount
		}
		if ms.Running > 0 {
			keep++
		}
	}

	sb := strings.Builder{}
	dateStr := uc.clock().Format("02-01-2006")
	sb.WriteString(fmt.Sprintf("30 Days of Sweat Challenge – Day %d (%s)\n\n", maxDay, dateStr))

	sb.WriteString(fmt.Sprintf("Recap day %d:\n", maxDay))
	sb.WriteString(fmt.Sprintf("%d peoples keep the streak 🔥\n", keep))
	sb.WriteString(fmt.Sprintf("%d lose the streak 💔\n", len(standings)-keep))
	sb.WriteString("\nUpdate klasemen sementara:\n")

	for i, ms := range standings {
		if ms.Running > 0 {
			sb.WriteString(fmt.Sprintf("%d. %s - %d days streak 🔥\n", i+1, ms.Name, ms.Running))
		} else {
			sb.WriteString(fmt.Sprintf("%d. %s - Day %d 💔\n", i+1, ms.Name, ms.ActivityCount))
		}
	}

	sb.WriteString("\nYang udah keringetan langsung update/posting aja nanti dimasukkin klasemen 💪\n\nSemangat🔥")

	return sb.String(), nil
}
