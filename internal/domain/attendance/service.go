package attendance

import (
	"context"
	"time"
)

// Tracker owns the daily check-in/check-out lifecycle and the derived read
// models (today, recent history, monthly calendar).
type Tracker interface {
	// CheckIn opens today's session. Re-entrant while a session is open:
	// a second call returns the existing record without touching the
	// original check-in time. After checkout the day is terminal and
	// ErrAlreadyCheckedOut is returned.
	CheckIn(ctx context.Context, req CheckInRequest) (Record, error)

	// CheckOut closes today's open session and freezes its work duration.
	// Calling it again returns the already-closed record unchanged; calling
	// it with no record at all is a no-op reported as ErrNotCheckedIn and
	// never fabricates a record.
	CheckOut(ctx context.Context, req CheckOutRequest) (Record, error)

	// Tick recomputes the live work duration of today's open session.
	// It has no effect when the session is closed or not started.
	Tick(ctx context.Context, userID string) (time.Duration, error)

	// UpdateNotes edits the notes field; allowed only while checked in.
	UpdateNotes(ctx context.Context, userID, notes string) (Record, error)

	// LoadToday reads today's record, reporting absence via the bool.
	LoadToday(ctx context.Context, userID string) (Record, bool, error)

	// LoadHistory returns records within the trailing daysBack window, most
	// recent first. Dates without a record are omitted, not synthesized.
	LoadHistory(ctx context.Context, userID string, daysBack int) ([]Record, error)

	// MonthGrid builds the monthly calendar projection for the user.
	MonthGrid(ctx context.Context, userID string, year int, month time.Month) (MonthCalendarView, error)

	// Run drives the periodic tick until ctx is cancelled. Cancellation
	// stops the timer without finalizing open sessions.
	Run(ctx context.Context)
}

// HolidaySource supplies the holiday set consumed by MonthGrid.
type HolidaySource interface {
	HolidaysInMonth(ctx context.Context, year int, month time.Month) (map[string]string, error)
}

// LeaveSource reports approved leave days (including work-from-home days)
// for the calendar projection.
type LeaveSource interface {
	LeaveDaysInMonth(ctx context.Context, userID string, year int, month time.Month) (map[string]DayStatus, error)
}
