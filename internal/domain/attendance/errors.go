package attendance

import "errors"

// Attendance domain errors
var (
	// Invalid transitions. These are recoverable: the session state is left
	// untouched and the caller may simply inform the user.
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out today")
	ErrSessionNotOpen    = errors.New("no open attendance session")

	// ErrClockAnomaly reports a computed negative duration (checkout before
	// check-in, usually a device clock change). The display value is clamped
	// to zero; a negative duration is never shown or persisted.
	ErrClockAnomaly = errors.New("attendance clock anomaly: negative work duration")

	// ErrPersistFailed reports a failed store write. In-memory session state
	// proceeds optimistically; callers should surface the failure so the user
	// can retry.
	ErrPersistFailed = errors.New("failed to persist attendance record")

	ErrRecordNotFound = errors.New("attendance record not found")
)
