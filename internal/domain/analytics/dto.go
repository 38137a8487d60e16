package analytics

import (
	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/timetracker-backend-go/internal/pkg/validator"
)

// OverviewRequest filters a monthly rollup. Month is "YYYY-MM" and defaults
// to the current month; Department filters by resolved department name.
type OverviewRequest struct {
	Month      string `json:"month"`
	Department string `json:"department"`
}

func (r *OverviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month != "" {
		if _, ok := validator.IsValidMonth(r.Month); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// TopOvertime identifies the employee with the most overtime in a group.
type TopOvertime struct {
	Name  *string `json:"name"`
	Hours float64 `json:"hours"`
}

// DepartmentOverview is the monthly rollup for one department.
type DepartmentOverview struct {
	Department           string      `json:"department"`
	Employees            int         `json:"employees"`
	AttendanceRate       float64     `json:"attendance_rate"`
	TotalWorkingDays     int         `json:"total_working_days"`
	PresentDays          int         `json:"present_days"`
	AbsentDays           int         `json:"absent_days"`
	LeaveDays            int         `json:"leave_days"`
	Undertimes           int         `json:"undertimes"`
	TotalHoursLogged     float64     `json:"total_hours_logged"`
	TotalOvertimeHours   float64     `json:"total_overtime_hours"`
	AverageOvertimeHours float64     `json:"average_overtime_hours"`
	TopOvertime          TopOvertime `json:"employee_with_max_overtime"`
}

// DepartmentsOverviewResponse lists all department rollups for a month.
type DepartmentsOverviewResponse struct {
	Month       string               `json:"month"`
	Departments []DepartmentOverview `json:"departments"`
}

// RateTrend is a subtractive month-over-month comparison of a rate.
type RateTrend struct {
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Trend    float64 `json:"trend"`
}

// PayrollTrend is the ratio-style comparison of yearly payroll cost,
// reporting 100 when there is no prior baseline.
type PayrollTrend struct {
	CurrentCost  float64 `json:"current_cost"`
	PreviousCost float64 `json:"previous_cost"`
	TrendPercent float64 `json:"trend_percent"`
}

// CompanyOverviewResponse is the company-wide dashboard payload. It is
// always well-formed; a company with no active employees yields zeros.
type CompanyOverviewResponse struct {
	ActiveEmployees       int          `json:"active_employees"`
	AverageAttendanceRate float64      `json:"average_attendance_rate"`
	TotalHoursLogged      float64      `json:"total_hours_logged"`
	TotalOvertimeHours    float64      `json:"total_overtime_hours"`
	TotalUndertimeHours   float64      `json:"total_undertime_hours"`
	AverageWorkingHours   float64      `json:"average_working_hours"`
	AttendanceTrend       RateTrend    `json:"attendance_trend"`
	LeaveUtilizationTrend RateTrend    `json:"leave_utilization_trend"`
	PayrollTrend          PayrollTrend `json:"payroll_trend"`
}

// EmployeeAttendanceRecord is one employee's monthly rollup row in the
// employees-attendance listing.
type EmployeeAttendanceRecord struct {
	EmployeeID           string  `json:"employee_id"`
	FirstName            string  `json:"first_name"`
	LastName             string  `json:"last_name"`
	Department           string  `json:"department"`
	AttendancePercentage float64 `json:"attendance_percentage"`
	OvertimeHours        float64 `json:"overtime_hours"`
	UndertimeHours       float64 `json:"undertime_hours"`
	Absences             int     `json:"absences"`
	TotalHoursLogged     float64 `json:"total_hours_logged"`
}

// EmployeesAttendanceResponse lists per-employee rollups for a month.
type EmployeesAttendanceResponse struct {
	Month     string                     `json:"month"`
	Employees []EmployeeAttendanceRecord `json:"employees"`
}

// EmployeeMetricsResponse is the admin view of one employee's monthly
// aggregate plus name and department.
type EmployeeMetricsResponse struct {
	EmployeeName string                             `json:"employee_name"`
	Department   string                             `json:"department"`
	Aggregate    attendance.PeriodAggregateResponse `json:"aggregate"`
}

// SubtractiveTrend is the attendance/leave trend definition:
// current minus previous, antisymmetric by construction.
func SubtractiveTrend(current, previous float64) float64 {
	return current - previous
}
