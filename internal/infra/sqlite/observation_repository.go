package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fardannozami/sweat-tracker/internal/streak"
)

type ObservationRepository struct {
	db *sql.DB
}

func NewObservationRepository(db *sql.DB) *ObservationRepository {
	return &ObservationRepository{db: db}
}

// UpsertObservation records the value of one day. A second write for the same
// (user, day) replaces the first.
func (r *ObservationRepository) UpsertObservation(ctx context.Context, obs streak.Observation, recordedAt time.Time) error {
	query := `
		INSERT INTO activity_logs (user_id, day, completed, recorded_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, day) DO UPDATE SET
			completed = excluded.completed,
			recorded_at = excluded.recorded_at
	`
	_, err := r.db.ExecContext(ctx, query, obs.EntityID, obs.Day.String(), obs.Completed, recordedAt.Format(time.RFC3339))
	return err
}

func (r *ObservationRepository) ListObservations(ctx context.Context, userID string) ([]streak.Observation, error) {
	query := `SELECT user_id, day, completed FROM activity_logs WHERE user_id = ? ORDER BY day ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var observations []streak.Observation
	for rows.Next() {
		var obs streak.Observation
		var day string
		if err := rows.Scan(&obs.EntityID, &day, &obs.Completed); err != nil {
			return nil, err
		}
		obs.Day, err = streak.ParseDay(day)
		if err != nil {
			return nil, fmt.Errorf("activity log of %s: %w", userID, err)
		}
		observations = append(observations, obs)
	}
	return observations, rows.Err()
}

func (r *ObservationRepository) InitTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS activity_logs (
			user_id TEXT NOT NULL,
			day TEXT NOT NULL,
			completed INTEGER NOT NULL DEFAULT 1,
			recorded_at TEXT,
			PRIMARY KEY (user_id, day)
		);
	`
	_, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return err
	}

	// The old user_reports table only kept the last report date; import it as
	// a completed day so that history is not lost.
	// Ignore error if that table does not exist.
	_, _ = r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO activity_logs (user_id, day, completed, recorded_at)
		SELECT user_id, substr(last_report_date, 1, 10), 1, last_report_date FROM user_reports
	`)

	return nil
}
