package attendance

import "time"

// DayStatus classifies one calendar day cell.
type DayStatus string

const (
	StatusPresent DayStatus = "present"
	StatusAbsent  DayStatus = "absent"
	StatusHalfDay DayStatus = "half-day"
	StatusWeekend DayStatus = "weekend"
	StatusHoliday DayStatus = "holiday"
	StatusLeave   DayStatus = "leave"
	StatusWFH     DayStatus = "wfh"
	StatusFuture  DayStatus = "future"
)

// DayCell is one cell of the month grid. Cells before day 1 are padding:
// Day is 0 and every other field is empty.
type DayCell struct {
	Day         int       `json:"day,omitempty"`
	Date        string    `json:"date,omitempty"`
	Status      DayStatus `json:"status,omitempty"`
	WorkHours   string    `json:"work_hours,omitempty"`
	HolidayName string    `json:"holiday_name,omitempty"`
}

// MonthCalendarView is a read-only projection of attendance history over
// one month. It holds no independent state.
type MonthCalendarView struct {
	Year    int               `json:"year"`
	Month   time.Month        `json:"month"`
	Cells   []DayCell         `json:"cells"`
	Summary map[DayStatus]int `json:"summary"`
}

// GridPolicy holds the classification thresholds for past weekdays. A frozen
// duration of at least FullDayMinutes is a present day; at least
// HalfDayMinutes is a half-day; anything below the half-day floor is absent.
type GridPolicy struct {
	FullDayMinutes int
	HalfDayMinutes int
}

// Classify applies the policy to a frozen work duration.
func (p GridPolicy) Classify(d time.Duration) DayStatus {
	mins := int(d / time.Minute)
	switch {
	case mins >= p.FullDayMinutes:
		return StatusPresent
	case mins >= p.HalfDayMinutes:
		return StatusHalfDay
	default:
		return StatusAbsent
	}
}
