package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fardannozami/sweat-tracker/internal/domain"
	"github.com/fardannozami/sweat-tracker/internal/streak"
)

type reportExecutor interface {
	Execute(ctx context.Context, userID, name string) (string, error)
}

type leaderboardExecutor interface {
	Execute(ctx context.Context) (string, error)
}

type streakExecutor interface {
	Execute(ctx context.Context, userID string) (*domain.MemberStreak, error)
}

// HandleMessageUsecase routes group chat commands to their use cases.
// Commands are matched case-insensitively on the first word.
type HandleMessageUsecase struct {
	report      reportExecutor
	skip        reportExecutor
	getStreak   streakExecutor
	leaderboard leaderboardExecutor
}

func NewHandleMessageUsecase(report, skip reportExecutor, getStreak streakExecutor, leaderboard leaderboardExecutor) *HandleMessageUsecase {
	return &HandleMessageUsecase{report: report, skip: skip, getStreak: getStreak, leaderboard: leaderboard}
}

// Execute returns the reply for msg, or an empty string when msg is not a
// command.
func (uc *HandleMessageUsecase) Execute(ctx context.Context, userID, name, msg string) (string, error) {
	fields := strings.Fields(msg)
	if len(fields) == 0 {
		return "", nil
	}

	switch strings.ToLower(fields[0]) {
	case "#lapor":
		return uc.report.Execute(ctx, userID, name)
	case "#skip":
		return uc.skip.Execute(ctx, userID, name)
	case "#streak":
		return uc.replyStreak(ctx, userID, name)
	case "#leaderboard":
		return uc.leaderboard.Execute(ctx)
	default:
		return "", nil
	}
}

func (uc *HandleMessageUsecase) replyStreak(ctx context.Context, userID, name string) (string, error) {
	ms, err := uc.getStreak.Execute(ctx, userID)
	if errors.Is(err, domain.ErrMemberNotFound) {
		return fmt.Sprintf("%s belum pernah laporan. Ketik #lapor untuk mulai 💪", name), nil
	}
	if err != nil {
		return "", err
	}
	if ms.Streak == nil {
		return fmt.Sprintf("Streak %s belum bisa dihitung, coba lagi nanti 🙏", name), nil
	}
	reply := fmt.Sprintf("%s: streak %d hari 🔥\nTerpanjang: %d hari\nTotal: %d hari berkeringat",
		name, ms.Streak.Current, ms.Streak.Longest, ms.ActivityCount)
	if ms.Status == streak.StatusPending.String() {
		reply += fmt.Sprintf("\nBelum laporan hari ini, streak %d hari masih bisa lanjut ⏳", ms.Running)
	}
	return reply, nil
}
