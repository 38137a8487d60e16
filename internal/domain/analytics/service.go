package analytics

import (
	"context"

	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/attendance"
)

// AnalyticsService exposes the admin-scoped department and company rollups.
// All operations are read-only and derive their views on every call.
type AnalyticsService interface {
	// GetEmployeeAttendance returns the current-month daily sequence plus
	// totals for one employee in the caller's company.
	GetEmployeeAttendance(ctx context.Context, employeeID string) (attendance.TrackingResponse, error)

	// GetDepartmentsOverview groups active employees by resolved department
	// name and rolls up their monthly aggregates.
	GetDepartmentsOverview(ctx context.Context, req OverviewRequest) (DepartmentsOverviewResponse, error)

	// GetCompanyOverview returns company-wide metrics with month-over-month
	// trends. A company with no active employees yields an all-zero payload.
	GetCompanyOverview(ctx context.Context) (CompanyOverviewResponse, error)

	// ListEmployeesAttendance lists per-employee monthly rollups, optionally
	// filtered by department.
	ListEmployeesAttendance(ctx context.Context, req OverviewRequest) (EmployeesAttendanceResponse, error)

	// GetEmployeeMetrics returns one employee's aggregate for an arbitrary
	// month.
	GetEmployeeMetrics(ctx context.Context, employeeID string, req attendance.PeriodRequest) (EmployeeMetricsResponse, error)
}
