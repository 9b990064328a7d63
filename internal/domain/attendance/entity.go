package attendance

import (
	"fmt"
	"time"
)

// SessionState is the per-user per-date check-in lifecycle state.
// A date with no persisted record is implicitly NOT_STARTED; that is a
// normal condition, not an error.
type SessionState string

const (
	StateNotStarted SessionState = "NOT_STARTED"
	StateOpen       SessionState = "OPEN"
	StateClosed     SessionState = "CLOSED"
)

// Record is one attendance record: one user, one calendar date.
// CheckInAt/CheckOutAt are the canonical timestamps; every display string
// is derived from them at render time.
type Record struct {
	UserID       string
	Date         string // local day, YYYY-MM-DD; natural key with UserID
	CheckInAt    *time.Time
	CheckOutAt   *time.Time
	CheckedIn    bool
	WorkDuration time.Duration // live while open, frozen at checkout
	Location     string
	Notes        string
}

func (r Record) State() SessionState {
	switch {
	case r.CheckOutAt != nil:
		return StateClosed
	case r.CheckInAt != nil:
		return StateOpen
	default:
		return StateNotStarted
	}
}

// Location placeholders. Geolocation capture is best-effort: a record is
// written with PlaceholderLocation first and updated in place if the
// provider resolves; a failed lookup degrades to FallbackLocation.
const (
	PlaceholderLocation = "Office"
	FallbackLocation    = "Location not available"
)

const (
	dateLayout   = "2006-01-02"
	clock12Hour  = "03:04:05 PM"
	clock24Hour  = "15:04:05"
	keyNamespace = "attendance"
)

// Key builds the store key for one user-date pair.
func Key(userID, date string) string {
	return keyNamespace + ":" + userID + ":" + date
}

// DateOf renders t as a store date key.
func DateOf(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatWorkDuration renders d as "H:MM", truncated to whole minutes,
// never rounding up. Negative inputs clamp to "0:00"; clock anomalies are
// reported separately by the tracker.
func FormatWorkDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	mins := int(d / time.Minute)
	return fmt.Sprintf("%d:%02d", mins/60, mins%60)
}

// StoredRecord is the persisted key-value layout. The epoch fields are the
// machine-readable source of truth; the display strings mirror them for
// compatibility with records written by older clients, which stored only
// locale-formatted times.
type StoredRecord struct {
	CheckInTime    string `json:"checkInTime,omitempty"`   // hh:mm:ss AM/PM
	CheckInTime24  string `json:"checkInTime24,omitempty"` // HH:mm:ss
	CheckInEpoch   int64  `json:"checkInEpoch,omitempty"`
	CheckOutTime   string `json:"checkOutTime,omitempty"`
	CheckOutTime24 string `json:"checkOutTime24,omitempty"`
	CheckOutEpoch  int64  `json:"checkOutEpoch,omitempty"`
	CheckedIn      bool   `json:"checkedIn"`
	WorkHours      string `json:"workHours"` // H:MM
	Location       string `json:"location,omitempty"`
	Notes          string `json:"notes,omitempty"`
	Date           string `json:"date"`
}

// Stored converts the record to its persisted layout.
func (r Record) Stored() StoredRecord {
	sr := StoredRecord{
		CheckedIn: r.CheckedIn,
		WorkHours: FormatWorkDuration(r.WorkDuration),
		Location:  r.Location,
		Notes:     r.Notes,
		Date:      r.Date,
	}
	if r.CheckInAt != nil {
		sr.CheckInTime = r.CheckInAt.Format(clock12Hour)
		sr.CheckInTime24 = r.CheckInAt.Format(clock24Hour)
		sr.CheckInEpoch = r.CheckInAt.Unix()
	}
	if r.CheckOutAt != nil {
		sr.CheckOutTime = r.CheckOutAt.Format(clock12Hour)
		sr.CheckOutTime24 = r.CheckOutAt.Format(clock24Hour)
		sr.CheckOutEpoch = r.CheckOutAt.Unix()
	}
	return sr
}

// FromStored rebuilds a Record from its persisted layout. Epoch fields win;
// records written by older clients fall back to the 24-hour strings combined
// with the record date in loc.
func FromStored(userID string, sr StoredRecord, loc *time.Location) Record {
	r := Record{
		UserID:    userID,
		Date:      sr.Date,
		CheckedIn: sr.CheckedIn,
		Location:  sr.Location,
		Notes:     sr.Notes,
	}
	r.CheckInAt = storedTime(sr.CheckInEpoch, sr.Date, sr.CheckInTime24, loc)
	r.CheckOutAt = storedTime(sr.CheckOutEpoch, sr.Date, sr.CheckOutTime24, loc)
	if r.CheckInAt != nil && r.CheckOutAt != nil {
		r.WorkDuration = r.CheckOutAt.Sub(*r.CheckInAt)
		if r.WorkDuration < 0 {
			r.WorkDuration = 0
		}
	} else if d, err := parseWorkHours(sr.WorkHours); err == nil {
		r.WorkDuration = d
	}
	return r
}

func storedTime(epoch int64, date, hhmmss string, loc *time.Location) *time.Time {
	if epoch > 0 {
		t := time.Unix(epoch, 0).In(loc)
		return &t
	}
	if date == "" || hhmmss == "" {
		return nil
	}
	t, err := time.ParseInLocation(dateLayout+"T"+clock24Hour, date+"T"+hhmmss, loc)
	if err != nil {
		return nil
	}
	return &t
}

func parseWorkHours(s string) (time.Duration, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, err
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute, nil
}
