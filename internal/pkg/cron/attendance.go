package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/workly-hq/hrms-backend-go/internal/domain/attendance"
	"github.com/workly-hq/hrms-backend-go/internal/domain/user"
	"github.com/workly-hq/hrms-backend-go/internal/pkg/clock"
)

// AttendanceJobs closes sessions that were left open past their day. A
// session that never checked out keeps CheckedIn=true forever otherwise,
// which would poison the calendar's "open today" detection.
type AttendanceJobs struct {
	store    attendance.Store
	userRepo user.UserRepository
	clock    clock.Clock
	lookback int // days scanned behind today
}

func NewAttendanceJobs(store attendance.Store, userRepo user.UserRepository, clk clock.Clock, lookbackDays int) *AttendanceJobs {
	if lookbackDays <= 0 {
		lookbackDays = 7
	}
	return &AttendanceJobs{
		store:    store,
		userRepo: userRepo,
		clock:    clk,
		lookback: lookbackDays,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_stale_sessions", 1*time.Hour, j.AutoCloseStaleSessions)
}

// AutoCloseStaleSessions walks every user's recent dates (yesterday and
// earlier) and closes any record still flagged as checked in. The checkout
// timestamp is pinned to the end of the record's own date so the frozen
// duration never spans midnight.
func (j *AttendanceJobs) AutoCloseStaleSessions(ctx context.Context) error {
	userIDs, err := j.userRepo.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	now := j.clock.Now()
	closedCount := 0

	for _, userID := range userIDs {
		for daysAgo := 1; daysAgo <= j.lookback; daysAgo++ {
			date := attendance.DateOf(now.AddDate(0, 0, -daysAgo))
			key := attendance.Key(userID, date)

			stored, found, err := j.store.Get(ctx, key)
			if err != nil {
				slog.Error("Cron: failed to read attendance record", "key", key, "error", err)
				continue
			}
			if !found || !stored.CheckedIn {
				continue
			}

			record := attendance.FromStored(userID, stored, now.Location())
			if record.CheckInAt == nil {
				continue
			}

			endOfDay, err := time.ParseInLocation("2006-01-02 15:04:05", date+" 23:59:59", now.Location())
			if err != nil {
				continue
			}

			record.CheckOutAt = &endOfDay
			record.CheckedIn = false
			record.WorkDuration = endOfDay.Sub(*record.CheckInAt)
			if record.WorkDuration < 0 {
				record.WorkDuration = 0
			}

			if err := j.store.Set(ctx, key, record.Stored()); err != nil {
				slog.Error("Cron: failed to auto-close session", "key", key, "error", err)
				continue
			}
			closedCount++
		}
	}

	if closedCount > 0 {
		slog.Info("Cron: auto-closed stale sessions", "count", closedCount)
	}
	return nil
}
