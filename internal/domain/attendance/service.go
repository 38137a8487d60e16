package attendance

import (
	"context"
)

// AttendanceService exposes the per-employee attendance views for the
// authenticated identity.
type AttendanceService interface {
	// RecordDailyAttendance computes today's record from the employee's
	// closed timer logs (or the leave flag) and persists it into the
	// attendance history.
	RecordDailyAttendance(ctx context.Context, isLeaveDay bool) (DailyRecordResponse, error)

	// GetSummary returns the current-month worked vs ideal hours view.
	GetSummary(ctx context.Context) (SummaryResponse, error)

	// GetMonthlyAttendance returns the period rollup for the given month.
	GetMonthlyAttendance(ctx context.Context, req PeriodRequest) (PeriodAggregateResponse, error)

	// GetTracking returns the per-day sequence plus totals for the month.
	GetTracking(ctx context.Context, req PeriodRequest) (TrackingResponse, error)
}
