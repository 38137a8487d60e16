package payroll

import (
	"context"
	"time"
)

// Snapshot is the yearly payroll cost rollup for a company, written by the
// year-end job and read by the payroll trend metric.
type Snapshot struct {
	CompanyID        string
	Year             int
	TotalPayrollCost float64
	UpdatedAt        time.Time
}

type SnapshotRepository interface {
	// Upsert writes the snapshot for (company, year), replacing any
	// previous value.
	Upsert(ctx context.Context, snapshot Snapshot) error

	// GetByYear returns the snapshot total for a year, 0 and found=false
	// when none was recorded.
	GetByYear(ctx context.Context, companyID string, year int) (float64, bool, error)

	// SnapshotAll writes the year's snapshot for every company with active
	// employees in one statement, returning the number of companies written.
	SnapshotAll(ctx context.Context, year int) (int64, error)
}

// Trend is the payroll-style ratio trend: current over previous as a
// percentage, defaulting to 100 when there is no prior baseline.
func Trend(current, previous float64) float64 {
	if previous == 0 {
		return 100
	}
	return current / previous * 100
}
