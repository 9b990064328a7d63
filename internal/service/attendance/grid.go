package attendance

import (
	"time"

	domain "github.com/workly-hq/hrms-backend-go/internal/domain/attendance"
)

// BuildMonthGrid projects attendance history onto a month calendar. It is a
// pure function of its inputs.
//
// Classification precedence per day: weekend (Saturday/Sunday, regardless of
// any record), then holiday, then future (strictly after today), then
// approved leave or work-from-home, then the persisted record judged by the
// policy thresholds. A past weekday with no record is absent.
func BuildMonthGrid(
	today time.Time,
	year int,
	month time.Month,
	holidays map[string]string,
	leaves map[string]domain.DayStatus,
	records map[string]domain.Record,
	policy domain.GridPolicy,
) domain.MonthCalendarView {
	first := time.Date(year, month, 1, 0, 0, 0, 0, today.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()
	todayDate := domain.DateOf(today)

	view := domain.MonthCalendarView{
		Year:    year,
		Month:   month,
		Cells:   make([]domain.DayCell, 0, int(first.Weekday())+daysInMonth),
		Summary: make(map[domain.DayStatus]int),
	}

	// Padding cells align day 1 with its weekday column.
	for i := 0; i < int(first.Weekday()); i++ {
		view.Cells = append(view.Cells, domain.DayCell{})
	}

	for day := 1; day <= daysInMonth; day++ {
		current := first.AddDate(0, 0, day-1)
		date := domain.DateOf(current)
		cell := domain.DayCell{Day: day, Date: date}

		switch {
		case current.Weekday() == time.Saturday || current.Weekday() == time.Sunday:
			cell.Status = domain.StatusWeekend
		case holidays[date] != "":
			cell.Status = domain.StatusHoliday
			cell.HolidayName = holidays[date]
		case date > todayDate:
			cell.Status = domain.StatusFuture
		case leaves[date] != "":
			cell.Status = leaves[date]
		default:
			record, found := records[date]
			switch {
			case !found:
				cell.Status = domain.StatusAbsent
			case record.CheckedIn:
				// An open session today counts as present.
				cell.Status = domain.StatusPresent
				cell.WorkHours = domain.FormatWorkDuration(record.WorkDuration)
			default:
				cell.Status = policy.Classify(record.WorkDuration)
				cell.WorkHours = domain.FormatWorkDuration(record.WorkDuration)
			}
		}

		view.Summary[cell.Status]++
		view.Cells = append(view.Cells, cell)
	}

	return view
}
