package sqlitekv

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/workly-hq/hrms-backend-go/internal/domain/attendance"
)

// Store persists attendance records in a single-file SQLite database, one
// row per user-date key. This is the single-user single-device deployment
// shape; the server deployment uses the PostgreSQL store instead.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) (*Store, error) {
	const schema = `
		CREATE TABLE IF NOT EXISTS attendance_records (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create attendance_records table: %w", err)
	}
	return &Store{db: db}, nil
}

var _ attendance.Store = (*Store)(nil)

// Get implements attendance.Store.
func (s *Store) Get(ctx context.Context, key string) (attendance.StoredRecord, bool, error) {
	var raw string
	err := s.db.GetContext(ctx, &raw,
		`SELECT value FROM attendance_records WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return attendance.StoredRecord{}, false, nil
	}
	if err != nil {
		return attendance.StoredRecord{}, false, err
	}

	var record attendance.StoredRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return attendance.StoredRecord{}, false, fmt.Errorf("corrupt attendance record %q: %w", key, err)
	}
	return record, true, nil
}

// Set implements attendance.Store.
func (s *Store) Set(ctx context.Context, key string, value attendance.StoredRecord) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO attendance_records (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, string(raw))
	return err
}
