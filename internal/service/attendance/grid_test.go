package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/workly-hq/hrms-backend-go/internal/domain/attendance"
)

var gridPolicy = domain.GridPolicy{FullDayMinutes: 480, HalfDayMinutes: 240}

func closedRecord(date string, worked time.Duration) domain.Record {
	checkIn, _ := time.Parse("2006-01-02 15:04:05", date+" 09:00:00")
	checkOut := checkIn.Add(worked)
	return domain.Record{
		Date:         date,
		CheckInAt:    &checkIn,
		CheckOutAt:   &checkOut,
		WorkDuration: worked,
	}
}

func cellByDay(t *testing.T, view domain.MonthCalendarView, day int) domain.DayCell {
	t.Helper()
	for _, cell := range view.Cells {
		if cell.Day == day {
			return cell
		}
	}
	t.Fatalf("no cell for day %d", day)
	return domain.DayCell{}
}

func TestBuildMonthGridClassification(t *testing.T) {
	// March 2025: the 1st is a Saturday, the 10th a Monday.
	today := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	openCheckIn := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	records := map[string]domain.Record{
		"2025-03-03": closedRecord("2025-03-03", 8*time.Hour+30*time.Minute),
		"2025-03-04": closedRecord("2025-03-04", 5*time.Hour),
		"2025-03-10": {
			Date:         "2025-03-10",
			CheckInAt:    &openCheckIn,
			CheckedIn:    true,
			WorkDuration: 3 * time.Hour,
		},
	}
	holidays := map[string]string{"2025-03-06": "Founders Day"}
	leaves := map[string]domain.DayStatus{
		"2025-03-05": domain.StatusLeave,
		"2025-03-07": domain.StatusWFH,
	}

	view := BuildMonthGrid(today, 2025, time.March, holidays, leaves, records, gridPolicy)

	assert.Equal(t, 2025, view.Year)
	assert.Equal(t, time.March, view.Month)

	// Saturday column alignment: six padding cells before day 1.
	require.GreaterOrEqual(t, len(view.Cells), 6+31)
	for i := 0; i < 6; i++ {
		assert.Zero(t, view.Cells[i].Day, "cell %d should be padding", i)
	}

	assert.Equal(t, domain.StatusWeekend, cellByDay(t, view, 1).Status)
	assert.Equal(t, domain.StatusWeekend, cellByDay(t, view, 2).Status)

	fullDay := cellByDay(t, view, 3)
	assert.Equal(t, domain.StatusPresent, fullDay.Status)
	assert.Equal(t, "8:30", fullDay.WorkHours)

	halfDay := cellByDay(t, view, 4)
	assert.Equal(t, domain.StatusHalfDay, halfDay.Status)
	assert.Equal(t, "5:00", halfDay.WorkHours)

	assert.Equal(t, domain.StatusLeave, cellByDay(t, view, 5).Status)

	holidayCell := cellByDay(t, view, 6)
	assert.Equal(t, domain.StatusHoliday, holidayCell.Status)
	assert.Equal(t, "Founders Day", holidayCell.HolidayName)

	assert.Equal(t, domain.StatusWFH, cellByDay(t, view, 7).Status)
	assert.Equal(t, domain.StatusWeekend, cellByDay(t, view, 8).Status)
	assert.Equal(t, domain.StatusWeekend, cellByDay(t, view, 9).Status)

	// Today's still-open session counts as present.
	assert.Equal(t, domain.StatusPresent, cellByDay(t, view, 10).Status)

	for day := 11; day <= 31; day++ {
		cell := cellByDay(t, view, day)
		wd := time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC).Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			assert.Equal(t, domain.StatusWeekend, cell.Status, "day %d", day)
		} else {
			assert.Equal(t, domain.StatusFuture, cell.Status, "day %d", day)
		}
	}
}

func TestBuildMonthGridWeekendBeatsEverything(t *testing.T) {
	today := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	// A record, a holiday and a leave entry all landing on Saturday the 1st.
	records := map[string]domain.Record{"2025-03-01": closedRecord("2025-03-01", 8*time.Hour)}
	holidays := map[string]string{"2025-03-01": "Some Holiday"}
	leaves := map[string]domain.DayStatus{"2025-03-01": domain.StatusLeave}

	view := BuildMonthGrid(today, 2025, time.March, holidays, leaves, records, gridPolicy)
	assert.Equal(t, domain.StatusWeekend, cellByDay(t, view, 1).Status)
}

func TestBuildMonthGridHolidayBeatsRecord(t *testing.T) {
	today := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	records := map[string]domain.Record{"2025-03-06": closedRecord("2025-03-06", 8*time.Hour)}
	holidays := map[string]string{"2025-03-06": "Founders Day"}

	view := BuildMonthGrid(today, 2025, time.March, holidays, nil, records, gridPolicy)
	assert.Equal(t, domain.StatusHoliday, cellByDay(t, view, 6).Status)
}

func TestBuildMonthGridAbsentWeekday(t *testing.T) {
	today := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	view := BuildMonthGrid(today, 2025, time.March, nil, nil, nil, gridPolicy)
	assert.Equal(t, domain.StatusAbsent, cellByDay(t, view, 3).Status)
	assert.Equal(t, domain.StatusAbsent, cellByDay(t, view, 10).Status)
}

func TestBuildMonthGridBelowHalfDayFloor(t *testing.T) {
	today := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	// Two hours worked is below the 240-minute half-day floor.
	records := map[string]domain.Record{"2025-03-03": closedRecord("2025-03-03", 2*time.Hour)}
	view := BuildMonthGrid(today, 2025, time.March, nil, nil, records, gridPolicy)

	cell := cellByDay(t, view, 3)
	assert.Equal(t, domain.StatusAbsent, cell.Status)
	assert.Equal(t, "2:00", cell.WorkHours)
}

func TestBuildMonthGridSummary(t *testing.T) {
	today := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	records := map[string]domain.Record{"2025-03-03": closedRecord("2025-03-03", 8*time.Hour)}
	view := BuildMonthGrid(today, 2025, time.March, nil, nil, records, gridPolicy)

	assert.Equal(t, 1, view.Summary[domain.StatusPresent])
	// Mon 3 present; Tue 4 through Mon 10 weekdays absent: 4,5,6,7,10.
	assert.Equal(t, 5, view.Summary[domain.StatusAbsent])
	// Weekends in March 2025: 1,2,8,9,15,16,22,23,29,30.
	assert.Equal(t, 10, view.Summary[domain.StatusWeekend])
	// 11..31 minus weekends 15,16,22,23,29,30 = 15 future weekdays.
	assert.Equal(t, 15, view.Summary[domain.StatusFuture])
}
