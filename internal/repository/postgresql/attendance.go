package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/workly-hq/hrms-backend-go/internal/domain/attendance"
	"github.com/workly-hq/hrms-backend-go/internal/pkg/database"
)

// attendanceStore persists attendance records as key-value rows, one per
// user-date pair, mirroring the layout single-device deployments keep in
// SQLite.
type attendanceStore struct {
	db *database.DB
}

func NewAttendanceStore(db *database.DB) attendance.Store {
	return &attendanceStore{db: db}
}

// Get implements attendance.Store.
func (s *attendanceStore) Get(ctx context.Context, key string) (attendance.StoredRecord, bool, error) {
	q := GetQuerier(ctx, s.db)

	var raw []byte
	err := q.QueryRow(ctx,
		`SELECT value FROM attendance_records WHERE key = $1`, key,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.StoredRecord{}, false, nil
	}
	if err != nil {
		return attendance.StoredRecord{}, false, fmt.Errorf("failed to get attendance record: %w", err)
	}

	var record attendance.StoredRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return attendance.StoredRecord{}, false, fmt.Errorf("corrupt attendance record %q: %w", key, err)
	}
	return record, true, nil
}

// Set implements attendance.Store.
func (s *attendanceStore) Set(ctx context.Context, key string, value attendance.StoredRecord) error {
	q := GetQuerier(ctx, s.db)

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, `
		INSERT INTO attendance_records (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, raw)
	if err != nil {
		return fmt.Errorf("failed to set attendance record: %w", err)
	}
	return nil
}
