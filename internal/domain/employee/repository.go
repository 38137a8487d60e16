package employee

import (
	"context"
	"time"
)

type EmployeeRepository interface {
	// GetByID returns the employee scoped to the company,
	// ErrEmployeeNotFound when absent.
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)

	// ListActiveByCompany returns active employees, optionally filtered by
	// department (case-insensitive exact match on the raw department field).
	ListActiveByCompany(ctx context.Context, companyID string, department *string) ([]Employee, error)

	// ListSuspendedDue returns suspended employees whose suspension end date
	// is at or before now.
	ListSuspendedDue(ctx context.Context, now time.Time) ([]Employee, error)

	// Reactivate flips a suspended employee back to active and clears the
	// suspension end date.
	Reactivate(ctx context.Context, id string) error
}
