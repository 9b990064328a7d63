package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workly-hq/hrms-backend-go/internal/domain/attendance"
	"github.com/workly-hq/hrms-backend-go/internal/domain/user"
	"github.com/workly-hq/hrms-backend-go/internal/pkg/clock"
	"github.com/workly-hq/hrms-backend-go/internal/repository/memory"
)

type stubUserRepo struct {
	ids []string
}

func (s *stubUserRepo) GetByEmail(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (s *stubUserRepo) GetByID(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (s *stubUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	return u, nil
}

func (s *stubUserRepo) UpdatePassword(context.Context, string, string) error {
	return nil
}

func (s *stubUserRepo) ListIDs(context.Context) ([]string, error) {
	return s.ids, nil
}

func TestAutoCloseStaleSessions(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Date(2025, 3, 11, 3, 0, 0, 0, time.UTC)

	// Yesterday's session was never checked out.
	staleCheckIn := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	stale := attendance.Record{
		UserID:    "u-1",
		Date:      "2025-03-10",
		CheckInAt: &staleCheckIn,
		CheckedIn: true,
	}
	require.NoError(t, store.Set(ctx, attendance.Key("u-1", "2025-03-10"), stale.Stored()))

	// Another user's properly closed session must not be touched.
	closedOut := staleCheckIn.Add(8 * time.Hour)
	closed := attendance.Record{
		UserID:       "u-2",
		Date:         "2025-03-10",
		CheckInAt:    &staleCheckIn,
		CheckOutAt:   &closedOut,
		WorkDuration: 8 * time.Hour,
	}
	require.NoError(t, store.Set(ctx, attendance.Key("u-2", "2025-03-10"), closed.Stored()))

	// Drive the job the way the server does: registered on the scheduler.
	jobs := NewAttendanceJobs(store, &stubUserRepo{ids: []string{"u-1", "u-2"}}, clock.NewFake(now), 7)
	scheduler := NewScheduler()
	jobs.RegisterJobs(scheduler)
	scheduler.RunOnce(ctx)

	stored, found, err := store.Get(ctx, attendance.Key("u-1", "2025-03-10"))
	require.NoError(t, err)
	require.True(t, found)
	assert.False(t, stored.CheckedIn)
	assert.Equal(t, "14:59", stored.WorkHours) // 09:00 to 23:59:59
	assert.NotZero(t, stored.CheckOutEpoch)

	untouched, found, err := store.Get(ctx, attendance.Key("u-2", "2025-03-10"))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, closed.Stored().CheckOutEpoch, untouched.CheckOutEpoch)
	assert.Equal(t, "8:00", untouched.WorkHours)
}

func TestAutoCloseIgnoresTodayOpenSession(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	checkIn := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	open := attendance.Record{
		UserID:    "u-1",
		Date:      "2025-03-10",
		CheckInAt: &checkIn,
		CheckedIn: true,
	}
	require.NoError(t, store.Set(ctx, attendance.Key("u-1", "2025-03-10"), open.Stored()))

	jobs := NewAttendanceJobs(store, &stubUserRepo{ids: []string{"u-1"}}, clock.NewFake(now), 7)
	require.NoError(t, jobs.AutoCloseStaleSessions(ctx))

	stored, _, err := store.Get(ctx, attendance.Key("u-1", "2025-03-10"))
	require.NoError(t, err)
	assert.True(t, stored.CheckedIn, "today's open session must stay open")
}
