package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open opens the SQLite file shared with the WhatsApp device store and makes
// sure the activity tables exist.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Enable WAL mode and busy timeout to avoid "database is locked" errors
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := NewMemberRepository(db).InitTable(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init members table: %w", err)
	}
	if err := NewObservationRepository(db).InitTable(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init activity_logs table: %w", err)
	}
	return db, nil
}
