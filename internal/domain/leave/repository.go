package leave

import (
	"context"
	"time"
)

// LeaveRepository is read-only here: the engine classifies against approved
// leaves, it never mutates them.
type LeaveRepository interface {
	// ListApprovedOverlapping returns an employee's approved leaves whose
	// [start_date, end_date] intersects [start, end].
	ListApprovedOverlapping(ctx context.Context, employeeID string, companyID string, start, end time.Time) ([]Leave, error)

	// ListApprovedOverlappingByCompany returns all approved leaves for the
	// company intersecting [start, end], for cross-employee rollups.
	ListApprovedOverlappingByCompany(ctx context.Context, companyID string, start, end time.Time) ([]Leave, error)
}
