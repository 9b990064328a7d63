package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/workly-hq/hrms-backend-go/internal/domain/attendance"
	"github.com/workly-hq/hrms-backend-go/internal/pkg/clock"
	"github.com/workly-hq/hrms-backend-go/internal/pkg/geolocation"
)

// locateTimeout bounds the best-effort geolocation capture after check-in.
const locateTimeout = 5 * time.Second

type TrackerImpl struct {
	store     attendance.Store
	clock     clock.Clock
	location  geolocation.Provider
	holidays  attendance.HolidaySource
	leaves    attendance.LeaveSource
	policy    attendance.GridPolicy
	tickEvery time.Duration

	mu   sync.Mutex
	open map[string]*openSession // userID -> today's open session
}

// openSession is the in-memory live state of one OPEN record. Ticks update
// duration here; nothing is persisted per tick.
type openSession struct {
	date      string
	checkInAt time.Time
	duration  time.Duration
}

func NewTracker(
	store attendance.Store,
	clk clock.Clock,
	location geolocation.Provider,
	holidays attendance.HolidaySource,
	leaves attendance.LeaveSource,
	policy attendance.GridPolicy,
	tickEvery time.Duration,
) *TrackerImpl {
	return &TrackerImpl{
		store:     store,
		clock:     clk,
		location:  location,
		holidays:  holidays,
		leaves:    leaves,
		policy:    policy,
		tickEvery: tickEvery,
		open:      make(map[string]*openSession),
	}
}

var _ attendance.Tracker = (*TrackerImpl)(nil)

// CheckIn implements attendance.Tracker.
func (t *TrackerImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}

	now := t.clock.Now()
	date := attendance.DateOf(now)

	existing, found, err := t.loadRecord(ctx, req.UserID, date)
	if err != nil {
		return attendance.Record{}, err
	}
	if found {
		switch existing.State() {
		case attendance.StateOpen:
			// Re-entrant check-in: keep the original check-in time.
			t.track(req.UserID, existing)
			return existing, nil
		case attendance.StateClosed:
			return existing, attendance.ErrAlreadyCheckedOut
		}
	}

	record := attendance.Record{
		UserID:       req.UserID,
		Date:         date,
		CheckInAt:    &now,
		CheckedIn:    true,
		WorkDuration: 0,
		Location:     attendance.PlaceholderLocation,
		Notes:        req.Notes,
	}
	if req.Latitude != nil && req.Longitude != nil {
		record.Location = formatCoordinates(*req.Latitude, *req.Longitude)
	}

	t.track(req.UserID, record)

	if err := t.persist(ctx, record); err != nil {
		// The in-memory session stays open; the caller decides whether to
		// retry the write or warn the user.
		return record, err
	}

	// Geolocation resolves after CheckIn returns; the persisted location is
	// updated in place whichever way the capture goes.
	if req.Latitude == nil && t.location != nil {
		go t.captureLocation(req.UserID, date)
	}

	return record, nil
}

// CheckOut implements attendance.Tracker.
func (t *TrackerImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}

	now := t.clock.Now()
	date := attendance.DateOf(now)

	record, found, err := t.loadRecord(ctx, req.UserID, date)
	if err != nil {
		return attendance.Record{}, err
	}
	if !found {
		// Nothing to close; never fabricate a record.
		return attendance.Record{}, attendance.ErrNotCheckedIn
	}
	if record.State() == attendance.StateClosed {
		// Idempotent: the first checkout froze the duration.
		return record, nil
	}

	// Drop the live session before the state becomes CLOSED so a tick can
	// never resurrect the frozen duration.
	t.mu.Lock()
	delete(t.open, req.UserID)
	t.mu.Unlock()

	duration := now.Sub(*record.CheckInAt)
	anomaly := duration < 0
	if anomaly {
		duration = 0
	}

	record.CheckOutAt = &now
	record.CheckedIn = false
	record.WorkDuration = duration

	if err := t.persist(ctx, record); err != nil {
		return record, err
	}
	if anomaly {
		return record, attendance.ErrClockAnomaly
	}
	return record, nil
}

// Tick implements attendance.Tracker. It refreshes the in-memory duration of
// today's open session and is a no-op for closed or absent records.
func (t *TrackerImpl) Tick(ctx context.Context, userID string) (time.Duration, error) {
	now := t.clock.Now()
	date := attendance.DateOf(now)

	t.mu.Lock()
	session, ok := t.open[userID]
	if ok && session.date != date {
		// The calendar date rolled over; yesterday's session no longer
		// belongs to "today" and must not keep accruing duration.
		delete(t.open, userID)
		ok = false
	}
	t.mu.Unlock()

	if !ok {
		// Possibly an open record from a previous process lifetime.
		record, found, err := t.loadRecord(ctx, userID, date)
		if err != nil {
			return 0, err
		}
		if !found || record.State() != attendance.StateOpen {
			return record.WorkDuration, nil
		}
		session = t.track(userID, record)
	}

	elapsed := now.Sub(session.checkInAt)
	if elapsed < 0 {
		return 0, attendance.ErrClockAnomaly
	}

	t.mu.Lock()
	session.duration = elapsed
	t.mu.Unlock()

	return elapsed, nil
}

// UpdateNotes implements attendance.Tracker. Notes are editable only while
// the session is open.
func (t *TrackerImpl) UpdateNotes(ctx context.Context, userID, notes string) (attendance.Record, error) {
	now := t.clock.Now()
	date := attendance.DateOf(now)

	record, found, err := t.loadRecord(ctx, userID, date)
	if err != nil {
		return attendance.Record{}, err
	}
	if !found || record.State() != attendance.StateOpen {
		return attendance.Record{}, attendance.ErrSessionNotOpen
	}

	record.Notes = notes
	if err := t.persist(ctx, record); err != nil {
		return record, err
	}
	return record, nil
}

// LoadToday implements attendance.Tracker.
func (t *TrackerImpl) LoadToday(ctx context.Context, userID string) (attendance.Record, bool, error) {
	now := t.clock.Now()
	date := attendance.DateOf(now)

	record, found, err := t.loadRecord(ctx, userID, date)
	if err != nil || !found {
		return attendance.Record{}, false, err
	}
	if record.State() == attendance.StateOpen {
		if elapsed := now.Sub(*record.CheckInAt); elapsed > 0 {
			record.WorkDuration = elapsed
		}
		t.track(userID, record)
	}
	return record, true, nil
}

// LoadHistory implements attendance.Tracker. Only dates with an actual
// persisted record are included, most recent first.
func (t *TrackerImpl) LoadHistory(ctx context.Context, userID string, daysBack int) ([]attendance.Record, error) {
	now := t.clock.Now()

	records := make([]attendance.Record, 0, daysBack)
	for i := 0; i < daysBack; i++ {
		date := attendance.DateOf(now.AddDate(0, 0, -i))
		record, found, err := t.loadRecord(ctx, userID, date)
		if err != nil {
			return nil, err
		}
		if found {
			records = append(records, record)
		}
	}
	return records, nil
}

// MonthGrid implements attendance.Tracker.
func (t *TrackerImpl) MonthGrid(ctx context.Context, userID string, year int, month time.Month) (attendance.MonthCalendarView, error) {
	now := t.clock.Now()

	holidays := map[string]string{}
	if t.holidays != nil {
		var err error
		holidays, err = t.holidays.HolidaysInMonth(ctx, year, month)
		if err != nil {
			return attendance.MonthCalendarView{}, fmt.Errorf("failed to load holidays: %w", err)
		}
	}

	leaves := map[string]attendance.DayStatus{}
	if t.leaves != nil {
		var err error
		leaves, err = t.leaves.LeaveDaysInMonth(ctx, userID, year, month)
		if err != nil {
			return attendance.MonthCalendarView{}, fmt.Errorf("failed to load leave days: %w", err)
		}
	}

	// Only days up to "today" can have records; later dates are future by
	// construction.
	records := make(map[string]attendance.Record)
	first := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()
	todayDate := attendance.DateOf(now)
	for day := 1; day <= daysInMonth; day++ {
		date := attendance.DateOf(first.AddDate(0, 0, day-1))
		if date > todayDate {
			break
		}
		record, found, err := t.loadRecord(ctx, userID, date)
		if err != nil {
			return attendance.MonthCalendarView{}, err
		}
		if found {
			records[date] = record
		}
	}

	return BuildMonthGrid(now, year, month, holidays, leaves, records, t.policy), nil
}

// Run implements attendance.Tracker: the cooperative tick loop. The ticker is
// released on cancellation and open sessions are left open and resumable.
func (t *TrackerImpl) Run(ctx context.Context) {
	ticker := time.NewTicker(t.tickEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.tickAll()
		}
	}
}

func (t *TrackerImpl) tickAll() {
	now := t.clock.Now()
	date := attendance.DateOf(now)

	t.mu.Lock()
	defer t.mu.Unlock()
	for userID, session := range t.open {
		if session.date != date {
			// Stale entry from before a date rollover; the cron job closes
			// the persisted record, the live map just drops it.
			delete(t.open, userID)
			continue
		}
		elapsed := now.Sub(session.checkInAt)
		if elapsed < 0 {
			slog.Warn("attendance clock anomaly during tick",
				"user_id", userID, "check_in_at", session.checkInAt)
			continue
		}
		session.duration = elapsed
	}
}

// track registers (or refreshes) the in-memory session for an OPEN record.
func (t *TrackerImpl) track(userID string, record attendance.Record) *openSession {
	t.mu.Lock()
	defer t.mu.Unlock()
	session, ok := t.open[userID]
	if !ok || session.date != record.Date {
		session = &openSession{date: record.Date, checkInAt: *record.CheckInAt}
		t.open[userID] = session
	}
	session.duration = record.WorkDuration
	return session
}

// captureLocation resolves geolocation after check-in and updates the
// persisted record in place. Both outcomes are normal control flow.
func (t *TrackerImpl) captureLocation(userID, date string) {
	ctx, cancel := context.WithTimeout(context.Background(), locateTimeout)
	defer cancel()

	location := attendance.FallbackLocation
	if lat, lng, err := t.location.Locate(ctx); err == nil {
		location = formatCoordinates(lat, lng)
	}

	record, found, err := t.loadRecord(ctx, userID, date)
	if err != nil || !found {
		return
	}
	record.Location = location
	if err := t.persist(ctx, record); err != nil {
		slog.Warn("failed to update attendance location", "user_id", userID, "date", date, "error", err)
	}
}

func (t *TrackerImpl) loadRecord(ctx context.Context, userID, date string) (attendance.Record, bool, error) {
	stored, found, err := t.store.Get(ctx, attendance.Key(userID, date))
	if err != nil {
		return attendance.Record{}, false, fmt.Errorf("failed to read attendance record: %w", err)
	}
	if !found {
		return attendance.Record{}, false, nil
	}
	return attendance.FromStored(userID, stored, t.clock.Now().Location()), true, nil
}

func (t *TrackerImpl) persist(ctx context.Context, record attendance.Record) error {
	if err := t.store.Set(ctx, attendance.Key(record.UserID, record.Date), record.Stored()); err != nil {
		return fmt.Errorf("%w: %v", attendance.ErrPersistFailed, err)
	}
	return nil
}

func formatCoordinates(lat, lng float64) string {
	return fmt.Sprintf("%.4f, %.4f", lat, lng)
}
