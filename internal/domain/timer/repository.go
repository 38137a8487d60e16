package timer

import (
	"context"
	"time"
)

// TimerLogRepository persists work sessions. Mutations on an open session
// are single conditional updates that match on the expected state; a zero-row
// match is surfaced as pgx.ErrNoRows so the service can re-read and report
// the violated invariant.
type TimerLogRepository interface {
	// CreateOpen inserts a new open session. Returns ErrTimerAlreadyRunning
	// when an open session already exists for the employee (enforced by the
	// partial unique index, not by a prior existence check).
	CreateOpen(ctx context.Context, log TimerLog) (TimerLog, error)

	// GetOpen returns the employee's open session, ErrNoActiveTimer if none.
	GetOpen(ctx context.Context, employeeID string, companyID string) (TimerLog, error)

	// AppendPause atomically appends an open paused interval, matching only a
	// session that is running (no open pause).
	AppendPause(ctx context.Context, employeeID string, companyID string, at time.Time) (TimerLog, error)

	// ClosePause atomically sets the end of the last paused interval,
	// matching only a session that is currently paused.
	ClosePause(ctx context.Context, employeeID string, companyID string, at time.Time) (TimerLog, error)

	// Close terminates the open session identified by id, setting end_time
	// and total_hours. The write is a compare-and-swap: it matches only
	// while end_time is still null and the stored pause intervals equal
	// pauses, so hours computed from a stale read never land.
	Close(ctx context.Context, id string, companyID string, endTime time.Time, totalHours float64, pauses PausedIntervals) (TimerLog, error)

	// ListByDateRange returns an employee's logs with date in [start, end].
	ListByDateRange(ctx context.Context, employeeID string, companyID string, start, end time.Time) ([]TimerLog, error)

	// ListByCompanyAndDateRange returns all logs for a company with date in
	// [start, end], for cross-employee rollups.
	ListByCompanyAndDateRange(ctx context.Context, companyID string, start, end time.Time) ([]TimerLog, error)

	// ListOpenDatedBefore returns open sessions across all companies whose
	// anchor date is before the cutoff, for the stale-session sweeper.
	ListOpenDatedBefore(ctx context.Context, cutoff time.Time) ([]TimerLog, error)

	// AverageTotalHours returns the mean total_hours over closed logs for a
	// company in [start, end], 0 when there are none.
	AverageTotalHours(ctx context.Context, companyID string, start, end time.Time) (float64, error)
}
