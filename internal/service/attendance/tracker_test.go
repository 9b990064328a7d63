package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/workly-hq/hrms-backend-go/internal/domain/attendance"
	"github.com/workly-hq/hrms-backend-go/internal/pkg/clock"
	"github.com/workly-hq/hrms-backend-go/internal/pkg/geolocation"
	"github.com/workly-hq/hrms-backend-go/internal/repository/memory"
)

// 2025-03-10 is a Monday.
var testMorning = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

const testUser = "user-1"

func newTestTracker(t *testing.T, opts ...func(*trackerDeps)) (*TrackerImpl, *memory.Store, *clock.Fake) {
	t.Helper()

	deps := &trackerDeps{
		store:    memory.NewStore(),
		clock:    clock.NewFake(testMorning),
		location: geolocation.Unavailable(),
	}
	for _, opt := range opts {
		opt(deps)
	}

	tracker := NewTracker(
		deps.store,
		deps.clock,
		deps.location,
		nil,
		nil,
		domain.GridPolicy{FullDayMinutes: 480, HalfDayMinutes: 240},
		time.Second,
	)
	return tracker, deps.store, deps.clock
}

type trackerDeps struct {
	store    *memory.Store
	clock    *clock.Fake
	location geolocation.Provider
}

func withLocation(p geolocation.Provider) func(*trackerDeps) {
	return func(d *trackerDeps) { d.location = p }
}

func TestCheckInOpensSession(t *testing.T) {
	tracker, store, _ := newTestTracker(t)
	ctx := context.Background()

	record, err := tracker.CheckIn(ctx, domain.CheckInRequest{UserID: testUser})
	require.NoError(t, err)

	assert.Equal(t, domain.StateOpen, record.State())
	assert.Equal(t, "2025-03-10", record.Date)
	assert.True(t, record.CheckedIn)
	assert.Equal(t, domain.PlaceholderLocation, record.Location)

	stored, found, err := store.Get(ctx, domain.Key(testUser, "2025-03-10"))
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, stored.CheckedIn)
	assert.Equal(t, "09:00:00 AM", stored.CheckInTime)
	assert.Equal(t, testMorning.Unix(), stored.CheckInEpoch)
}

func TestCheckInWithCoordinates(t *testing.T) {
	tracker, _, _ := newTestTracker(t)

	lat, lng := 12.34567, 78.90123
	record, err := tracker.CheckIn(context.Background(), domain.CheckInRequest{
		UserID:   testUser,
		Latitude: &lat, Longitude: &lng,
	})
	require.NoError(t, err)
	assert.Equal(t, "12.3457, 78.9012", record.Location)
}

func TestCheckInIsReentrantWhileOpen(t *testing.T) {
	tracker, _, clk := newTestTracker(t)
	ctx := context.Background()

	first, err := tracker.CheckIn(ctx, domain.CheckInRequest{UserID: testUser})
	require.NoError(t, err)

	clk.Advance(2 * time.Hour)
	second, err := tracker.CheckIn(ctx, domain.CheckInRequest{UserID: testUser})
	require.NoError(t, err)

	// The original check-in time survives.
	assert.True(t, second.CheckInAt.Equal(*first.CheckInAt))
	assert.Equal(t, domain.StateOpen, second.State())
}

func TestCheckInAfterCheckOutIsRejected(t *testing.T) {
	tracker, _, clk := newTestTracker(t)
	ctx := context.Background()

	_, err := tracker.CheckIn(ctx, domain.CheckInRequest{UserID: testUser})
	require.NoError(t, err)

	clk.Advance(8 * time.Hour)
	_, err = tracker.CheckOut(ctx, domain.CheckOutRequest{UserID: testUser})
	require.NoError(t, err)

	record, err := tracker.CheckIn(ctx, domain.CheckInRequest{UserID: testUser})
	assert.ErrorIs(t, err, domain.ErrAlreadyCheckedOut)
	assert.Equal(t, domain.StateClosed, record.State())
}

func TestCheckOutFreezesDuration(t *testing.T) {
	tracker, _, clk := newTestTracker(t)
	ctx := context.Background()

	_, err := tracker.CheckIn(ctx, domain.CheckInRequest{UserID: testUser})
	require.NoError(t, err)

	clk.Advance(8*time.Hour + 45*time.Minute)
	record, err := tracker.CheckOut(ctx, domain.CheckOutRequest{UserID: testUser})
	require.NoError(t, err)

	assert.Equal(t, domain.StateClosed, record.State())
	assert.False(t, record.CheckedIn)
	assert.Equal(t, "8:45", domain.FormatWorkDuration(record.WorkDuration))

	// Time passing after checkout never changes the frozen duration.
	clk.Advance(3 * time.Hour)
	elapsed, err := tracker.Tick(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, "8:45", domain.FormatWorkDuration(elapsed))
}

func TestCheckOutIsIdempotent(t *testing.T) {
	tracker, _, clk := newTestTracker(t)
	ctx := context.Background()

	_, err := tracker.CheckIn(ctx, domain.CheckInRequest{UserID: testUser})
	require.NoError(t, err)

	clk.Advance(8 * time.Hour)
	first, err := tracker.CheckOut(ctx, domain.CheckOutRequest{UserID: testUser})
	require.NoError(t, err)

	clk.Advance(time.Hour)
	second, err := tracker.CheckOut(ctx, domain.CheckOutRequest{UserID: testUser})
	require.NoError(t, err)

	assert.True(t, second.CheckOutAt.Equal(*first.CheckOutAt))
	assert.Equal(t, first.WorkDuration, second.WorkDuration)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	tracker, store, _ := newTestTracker(t)
	ctx := context.Background()

	_, err := tracker.CheckOut(ctx, domain.CheckOutRequest{UserID: testUser})
	assert.ErrorIs(t, err, domain.ErrNotCheckedIn)

	// The failed checkout must not fabricate a record.
	_, found, err := store.Get(ctx, domain.Key(testUser, "2025-03-10"))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCheckOutClockAnomalyClampsToZero(t *testing.T) {
	tracker, _, clk := newTestTracker(t)
	ctx := context.Background()

	_, err := tracker.CheckIn(ctx, domain.CheckInRequest{UserID: testUser})
	require.NoError(t, err)

	clk.Set(testMorning.Add(-time.Hour)) // system clock moved backwards
	record, err := tracker.CheckOut(ctx, domain.CheckOutRequest{UserID: testUser})
	assert.ErrorIs(t, err, domain.ErrClockAnomaly)
	assert.Equal(t, time.Duration(0), record.WorkDuration)
	assert.Equal(t, domain.StateClosed, record.State())
}

func TestTickLiveDuration(t *testing.T) {
	tracker, _, clk := newTestTracker(t)
	ctx := context.Background()

	_, err := tracker.CheckIn(ctx, domain.CheckInRequest{UserID: testUser})
	require.NoError(t, err)

	clk.Advance(30 * time.Second)
	elapsed, err := tracker.Tick(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, "0:00", domain.FormatWorkDuration(elapsed))

	clk.Set(testMorning.Add(90 * time.Minute)) // 10:30
	elapsed, err = tracker.Tick(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, "1:30", domain.FormatWorkDuration(elapsed))
}

func TestTickWithoutSessionIsNoop(t *testing.T) {
	tracker, _, _ := newTestTracker(t)

	elapsed, err := tracker.Tick(context.Background(), testUser)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), elapsed)
}

func TestTickResumesPersistedSession(t *testing.T) {
	// A session persisted by an earlier process lifetime resumes from the
	// stored check-in time, not from tracker startup.
	tracker, store, clk := newTestTracker(t)
	ctx := context.Background()

	checkIn := testMorning
	record := domain.Record{
		UserID:    testUser,
		Date:      "2025-03-10",
		CheckInAt: &checkIn,
		CheckedIn: true,
		Location:  domain.PlaceholderLocation,
	}
	require.NoError(t, store.Set(ctx, domain.Key(testUser, "2025-03-10"), record.Stored()))

	clk.Set(testMorning.Add(2 * time.Hour))
	elapsed, err := tracker.Tick(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, "2:00", domain.FormatWorkDuration(elapsed))
}

func TestTickAfterDateRollover(t *testing.T) {
	// A session left open overnight belongs to yesterday: once the date
	// changes, today is NOT_STARTED and Tick must report zero, even though
	// the live map still holds yesterday's entry.
	tracker, store, clk := newTestTracker(t)
	ctx := context.Background()

	_, err := tracker.CheckIn(ctx, domain.CheckInRequest{UserID: testUser})
	require.NoError(t, err)

	// The background job closes the record at the end of its own date.
	endOfDay := time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC)
	stored, found, err := store.Get(ctx, domain.Key(testUser, "2025-03-10"))
	require.NoError(t, err)
	require.True(t, found)
	stored.CheckedIn = false
	stored.CheckOutEpoch = endOfDay.Unix()
	stored.CheckOutTime24 = "23:59:59"
	stored.WorkHours = "14:59"
	require.NoError(t, store.Set(ctx, domain.Key(testUser, "2025-03-10"), stored))

	clk.Set(time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC))

	elapsed, err := tracker.Tick(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), elapsed)

	// The frozen record is untouched and the stale live entry is gone.
	stored, _, err = store.Get(ctx, domain.Key(testUser, "2025-03-10"))
	require.NoError(t, err)
	assert.Equal(t, "14:59", stored.WorkHours)

	tracker.mu.Lock()
	_, live := tracker.open[testUser]
	tracker.mu.Unlock()
	assert.False(t, live)
}

func TestTickAllDropsRolledOverSessions(t *testing.T) {
	tracker, _, clk := newTestTracker(t)
	ctx := context.Background()

	_, err := tracker.CheckIn(ctx, domain.CheckInRequest{UserID: testUser})
	require.NoError(t, err)

	clk.Set(time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC))
	tracker.tickAll()

	tracker.mu.Lock()
	_, live := tracker.open[testUser]
	tracker.mu.Unlock()
	assert.False(t, live)
}

func TestTickClockAnomaly(t *testing.T) {
	tracker, _, clk := newTestTracker(t)
	ctx := context.Background()

	_, err := tracker.CheckIn(ctx, domain.CheckInRequest{UserID: testUser})
	require.NoError(t, err)

	clk.Set(testMorning.Add(-time.Minute))
	_, err = tracker.Tick(ctx, testUser)
	assert.ErrorIs(t, err, domain.ErrClockAnomaly)
}

func TestUpdateNotes(t *testing.T) {
	tracker, _, clk := newTestTracker(t)
	ctx := context.Background()

	_, err := tracker.UpdateNotes(ctx, testUser, "early draft")
	assert.ErrorIs(t, err, domain.ErrSessionNotOpen)

	_, err = tracker.CheckIn(ctx, domain.CheckInRequest{UserID: testUser})
	require.NoError(t, err)

	record, err := tracker.UpdateNotes(ctx, testUser, "sprint planning")
	require.NoError(t, err)
	assert.Equal(t, "sprint planning", record.Notes)

	clk.Advance(8 * time.Hour)
	_, err = tracker.CheckOut(ctx, domain.CheckOutRequest{UserID: testUser})
	require.NoError(t, err)

	_, err = tracker.UpdateNotes(ctx, testUser, "after hours edit")
	assert.ErrorIs(t, err, domain.ErrSessionNotOpen)
}

func TestLoadToday(t *testing.T) {
	tracker, _, clk := newTestTracker(t)
	ctx := context.Background()

	_, found, err := tracker.LoadToday(ctx, testUser)
	require.NoError(t, err)
	assert.False(t, found)

	_, err = tracker.CheckIn(ctx, domain.CheckInRequest{UserID: testUser})
	require.NoError(t, err)

	clk.Advance(3 * time.Hour)
	record, found, err := tracker.LoadToday(ctx, testUser)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "3:00", domain.FormatWorkDuration(record.WorkDuration))
}

func TestLoadHistory(t *testing.T) {
	tracker, store, clk := newTestTracker(t)
	ctx := context.Background()

	// Seed closed records for Friday and Thursday of the previous week;
	// the weekend has no records at all.
	for _, daysAgo := range []int{3, 4} {
		day := testMorning.AddDate(0, 0, -daysAgo)
		out := day.Add(8 * time.Hour)
		record := domain.Record{
			UserID:       testUser,
			Date:         domain.DateOf(day),
			CheckInAt:    &day,
			CheckOutAt:   &out,
			WorkDuration: 8 * time.Hour,
		}
		require.NoError(t, store.Set(ctx, domain.Key(testUser, record.Date), record.Stored()))
	}

	_, err := tracker.CheckIn(ctx, domain.CheckInRequest{UserID: testUser})
	require.NoError(t, err)
	clk.Advance(time.Hour)

	records, err := tracker.LoadHistory(ctx, testUser, 7)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Most recent first, recordless dates omitted.
	assert.Equal(t, "2025-03-10", records[0].Date)
	assert.Equal(t, "2025-03-07", records[1].Date)
	assert.Equal(t, "2025-03-06", records[2].Date)
}

func TestCheckInPersistFailureIsSurfaced(t *testing.T) {
	failing := &failingStore{}
	tracker := NewTracker(
		failing,
		clock.NewFake(testMorning),
		geolocation.Unavailable(),
		nil, nil,
		domain.GridPolicy{FullDayMinutes: 480, HalfDayMinutes: 240},
		time.Second,
	)

	// The session still opens optimistically; the write failure is reported.
	record, err := tracker.CheckIn(context.Background(), domain.CheckInRequest{UserID: testUser})
	assert.ErrorIs(t, err, domain.ErrPersistFailed)
	assert.Equal(t, domain.StateOpen, record.State())
}

func TestGeolocationSuccessUpdatesRecord(t *testing.T) {
	tracker, store, _ := newTestTracker(t, withLocation(geolocation.Fixed(48.8584, 2.2945)))
	ctx := context.Background()

	record, err := tracker.CheckIn(ctx, domain.CheckInRequest{UserID: testUser})
	require.NoError(t, err)
	assert.Equal(t, domain.PlaceholderLocation, record.Location)

	assert.Eventually(t, func() bool {
		stored, found, err := store.Get(ctx, domain.Key(testUser, "2025-03-10"))
		return err == nil && found && stored.Location == "48.8584, 2.2945"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestGeolocationFailureFallsBack(t *testing.T) {
	tracker, store, _ := newTestTracker(t, withLocation(geolocation.Unavailable()))
	ctx := context.Background()

	_, err := tracker.CheckIn(ctx, domain.CheckInRequest{UserID: testUser})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		stored, found, err := store.Get(ctx, domain.Key(testUser, "2025-03-10"))
		return err == nil && found && stored.Location == domain.FallbackLocation
	}, 2*time.Second, 10*time.Millisecond)
}

type failingStore struct{}

func (f *failingStore) Get(context.Context, string) (domain.StoredRecord, bool, error) {
	return domain.StoredRecord{}, false, nil
}

func (f *failingStore) Set(context.Context, string, domain.StoredRecord) error {
	return errors.New("disk full")
}
