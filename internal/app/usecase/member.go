package usecase

import (
	"context"
	"time"

	"github.com/fardannozami/sweat-tracker/internal/domain"
)

// touchMember registers the member on first contact and keeps the display
// name in sync afterwards.
func touchMember(ctx context.Context, repo domain.MemberRepository, userID, name string, now time.Time) error {
	member, err := repo.GetMember(ctx, userID)
	if err != nil {
		return err
	}
	if member == nil {
		member = &domain.Member{UserID: userID, JoinedAt: now}
	}
	member.Name = name
	return repo.UpsertMember(ctx, member)
}
