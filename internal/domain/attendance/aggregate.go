package attendance

import (
	"time"

	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/leave"
	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/timer"
	"github.com/clockwise-hr/timetracker-backend-go/internal/pkg/timeutil"
)

// DayRecord is one classified calendar day, derived on every query and never
// stored.
type DayRecord struct {
	Date          time.Time
	Status        Status
	HoursWorked   float64
	OvertimeHours float64
	Undertime     bool
}

// PeriodAggregate rolls an employee's daily attendance up over a date range,
// typically one calendar month.
type PeriodAggregate struct {
	EmployeeID           string
	WorkingDays          int
	LeaveDays            int
	Presents             int
	Undertimes           int
	Absences             int
	TotalHoursWorked     float64
	TotalOvertimeHours   float64
	TotalUndertimeHours  float64
	IdealHours           float64
	AttendancePercentage float64
	Days                 []DayRecord
}

// PeriodInput carries everything BuildPeriodAggregate needs, pre-fetched by
// the caller. All dates are midnight-UTC calendar days.
type PeriodInput struct {
	EmployeeID     string
	WorkingHours   float64
	WeeklyWorkdays int
	LeaveDays      map[time.Time]struct{}
	HoursByDate    map[time.Time]float64
	Start          time.Time
	End            time.Time
	Today          time.Time // days after Today are not enumerated
}

// WorkingDay reports whether the day's weekday index (Monday = 0) falls
// within the employee's weekly working-day count.
func WorkingDay(d time.Time, weeklyWorkdays int) bool {
	idx := (int(d.Weekday()) + 6) % 7
	return idx < weeklyWorkdays
}

// LeaveDaySet expands approved leave ranges into the set of covered calendar
// days, clipped to [start, end]. Both leave bounds are inclusive.
func LeaveDaySet(leaves []leave.Leave, start, end time.Time) map[time.Time]struct{} {
	days := make(map[time.Time]struct{})
	for _, lv := range leaves {
		from := timeutil.DateOf(lv.StartDate)
		to := timeutil.DateOf(lv.EndDate)
		if from.Before(start) {
			from = start
		}
		if to.After(end) {
			to = end
		}
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			days[d] = struct{}{}
		}
	}
	return days
}

// SumHoursByDate indexes closed timer logs by their calendar anchor date,
// summing total_hours when several sessions share a day. Open logs carry no
// total yet and are skipped.
func SumHoursByDate(logs []timer.TimerLog) map[time.Time]float64 {
	hours := make(map[time.Time]float64)
	for _, log := range logs {
		if log.TotalHours == nil {
			continue
		}
		hours[timeutil.DateOf(log.Date)] += *log.TotalHours
	}
	return hours
}

// BuildPeriodAggregate reconstructs the daily attendance sequence for the
// range and rolls it up. Enumerated days are the employee's working days not
// after Today; a day on approved leave counts as a leave day regardless of
// any stray timer log on the same date. Ideal hours are the enumerated
// working days times the daily target, so the attendance percentage is 0,
// never NaN, when the employee has no working days.
func BuildPeriodAggregate(in PeriodInput) PeriodAggregate {
	agg := PeriodAggregate{EmployeeID: in.EmployeeID}

	start := timeutil.DateOf(in.Start)
	end := timeutil.DateOf(in.End)
	today := timeutil.DateOf(in.Today)
	if end.After(today) {
		end = today
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !WorkingDay(d, in.WeeklyWorkdays) {
			continue
		}
		agg.WorkingDays++

		if _, onLeave := in.LeaveDays[d]; onLeave {
			agg.LeaveDays++
			agg.Days = append(agg.Days, DayRecord{Date: d, Status: StatusOnLeave})
			continue
		}

		hoursWorked := in.HoursByDate[d]
		status := Classify(hoursWorked, in.WorkingHours, false)
		overtime := OvertimeHours(hoursWorked, in.WorkingHours)
		undertime := Undertime(hoursWorked, in.WorkingHours)

		switch status {
		case StatusPresent:
			agg.Presents++
		case StatusUndertime:
			agg.Undertimes++
		case StatusAbsent:
			agg.Absences++
		}

		agg.TotalHoursWorked += hoursWorked
		agg.TotalOvertimeHours += overtime
		if undertime {
			agg.TotalUndertimeHours += in.WorkingHours - hoursWorked
		}

		agg.Days = append(agg.Days, DayRecord{
			Date:          d,
			Status:        status,
			HoursWorked:   hoursWorked,
			OvertimeHours: overtime,
			Undertime:     undertime,
		})
	}

	agg.IdealHours = float64(agg.WorkingDays) * in.WorkingHours
	if agg.IdealHours > 0 {
		agg.AttendancePercentage = agg.TotalHoursWorked / agg.IdealHours * 100
	}

	return agg
}
