package attendance

import (
	"fmt"
	"time"

	"github.com/clockwise-hr/timetracker-backend-go/internal/pkg/validator"
)

// PeriodRequest selects a calendar month; zero values default to the
// current month at the service boundary.
type PeriodRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *PeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	currentYear := time.Now().Year()
	if r.Year < 2020 || r.Year > currentYear+1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("year must be between 2020 and %d", currentYear+1),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DailyRecordResponse is the persisted attendance entry for one day.
type DailyRecordResponse struct {
	Date          string  `json:"date"`
	HoursWorked   float64 `json:"hours_worked"`
	OvertimeHours float64 `json:"overtime_hours"`
	Status        string  `json:"attendance_status"`
}

// SummaryResponse is the current-month worked-vs-ideal view.
type SummaryResponse struct {
	MonthlyWorkingHours  float64 `json:"monthly_working_hours"`
	IdealMonthlyHours    float64 `json:"ideal_monthly_hours"`
	AttendancePercentage float64 `json:"attendance_percentage"`
	LeaveDays            int     `json:"leave_days"`
}

// DayRecordResponse is one classified day in a tracking sequence. The
// overtime/undertime/absent flags are 0/1 markers for charting.
type DayRecordResponse struct {
	Date        string  `json:"date"`
	Status      string  `json:"attendance_status"`
	HoursWorked float64 `json:"hours_worked"`
	Overtime    int     `json:"overtime"`
	Undertime   int     `json:"undertime"`
	Absent      int     `json:"absent"`
}

// PeriodTotals are the rolled-up day counters for a period.
type PeriodTotals struct {
	LeaveDays  int `json:"leave_days"`
	Absences   int `json:"absences"`
	Undertimes int `json:"undertimes"`
	Presents   int `json:"presents"`
}

// PeriodAggregateResponse is the full monthly rollup for one employee.
type PeriodAggregateResponse struct {
	EmployeeID           string  `json:"employee_id"`
	Month                int     `json:"month"`
	Year                 int     `json:"year"`
	WorkingDays          int     `json:"working_days"`
	LeaveDays            int     `json:"leave_days"`
	Presents             int     `json:"presents"`
	Undertimes           int     `json:"undertimes"`
	Absences             int     `json:"absences"`
	TotalHoursWorked     float64 `json:"total_hours_worked"`
	TotalOvertimeHours   float64 `json:"total_overtime_hours"`
	TotalUndertimeHours  float64 `json:"total_undertime_hours"`
	IdealHours           float64 `json:"ideal_hours"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}

// TrackingResponse is the per-day sequence plus totals for a period.
type TrackingResponse struct {
	AttendanceSummary []DayRecordResponse `json:"attendance_summary"`
	Totals            PeriodTotals        `json:"totals"`
}
