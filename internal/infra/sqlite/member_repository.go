package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fardannozami/sweat-tracker/internal/domain"
)

type MemberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) GetMember(ctx context.Context, userID string) (*domain.Member, error) {
	query := `SELECT user_id, name, joined_at FROM members WHERE user_id = ?`
	row := r.db.QueryRowContext(ctx, query, userID)

	var member domain.Member
	var joinedAt string
	err := row.Scan(&member.UserID, &member.Name, &joinedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	member.JoinedAt, err = time.Parse(time.RFC3339, joinedAt)
	if err != nil {
		return nil, err
	}

	return &member, nil
}

// UpsertMember inserts the member or refreshes its display name. joined_at is
// kept from the first insert.
func (r *MemberRepository) UpsertMember(ctx context.Context, member *domain.Member) error {
	query := `
		INSERT INTO members (user_id, name, joined_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			name = excluded.name
	`
	_, err := r.db.ExecContext(ctx, query, member.UserID, member.Name, member.JoinedAt.Format(time.RFC3339))
	return err
}

func (r *MemberRepository) GetAllMembers(ctx context.Context) ([]*domain.Member, error) {
	query := `SELECT user_id, name, joined_at FROM members ORDER BY joined_at ASC, user_id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*domain.Member
	for rows.Next() {
		var member domain.Member
		var joinedAt string
		if err := rows.Scan(&member.UserID, &member.Name, &joinedAt); err != nil {
			return nil, err
		}
		member.JoinedAt, err = time.Parse(time.RFC3339, joinedAt)
		if err != nil {
			return nil, err
		}
		members = append(members, &member)
	}
	return members, rows.Err()
}

// ResolveLIDToPhone maps a WhatsApp LID to the phone number whatsmeow learned
// for it. The LID itself is returned when no mapping is known.
func (r *MemberRepository) ResolveLIDToPhone(ctx context.Context, lid string) string {
	var pn string
	err := r.db.QueryRowContext(ctx, `SELECT pn FROM whatsmeow_lid_map WHERE lid = ?`, lid).Scan(&pn)
	if err != nil || pn == "" {
		return lid
	}
	return pn
}

func (r *MemberRepository) InitTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS members (
			user_id TEXT PRIMARY KEY,
			name TEXT,
			joined_at TEXT
		);
	`
	_, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return err
	}

	// Carry members over from the old counter-based user_reports table.
	// Ignore error if that table does not exist.
	_, _ = r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO members (user_id, name, joined_at)
		SELECT user_id, name, last_report_date FROM user_reports
	`)

	return nil
}
