package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/employee"
	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/payroll"
	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/timer"
	"github.com/clockwise-hr/timetracker-backend-go/internal/pkg/database"
	"github.com/clockwise-hr/timetracker-backend-go/internal/pkg/timeutil"
	"github.com/jackc/pgx/v5"
)

type MaintenanceJobs struct {
	timerLogRepo timer.TimerLogRepository
	employeeRepo employee.EmployeeRepository
	snapshotRepo payroll.SnapshotRepository
	db           *database.DB
}

func NewMaintenanceJobs(
	timerLogRepo timer.TimerLogRepository,
	employeeRepo employee.EmployeeRepository,
	snapshotRepo payroll.SnapshotRepository,
	db *database.DB,
) *MaintenanceJobs {
	return &MaintenanceJobs{
		timerLogRepo: timerLogRepo,
		employeeRepo: employeeRepo,
		snapshotRepo: snapshotRepo,
		db:           db,
	}
}

func (j *MaintenanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_stale_timers", 1*time.Hour, j.AutoCloseStaleTimers)
	scheduler.AddJob("revert_expired_suspensions", 1*time.Hour, j.RevertExpiredSuspensions)
	scheduler.AddJob("yearly_payroll_snapshot", 24*time.Hour, j.YearlyPayrollSnapshot)
}

// AutoCloseStaleTimers closes open sessions left over from a previous day.
// The worked hours stop counting at the end of the session's own day, net of
// completed paused intervals, so a forgotten timer never inflates the next
// day's attendance.
func (j *MaintenanceJobs) AutoCloseStaleTimers(ctx context.Context) error {
	// Only run at midnight (00:00-00:59 UTC)
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting auto-close stale timers job")

	today := timeutil.DateOf(time.Now().UTC())

	staleLogs, err := j.timerLogRepo.ListOpenDatedBefore(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to get stale timer logs: %w", err)
	}

	if len(staleLogs) == 0 {
		slog.Info("Cron: No stale timers found")
		return nil
	}

	closedCount := 0
	for _, log := range staleLogs {
		endOfDay := timeutil.DateOf(log.Date).AddDate(0, 0, 1)

		totalHours := timeutil.HoursBetween(log.StartTime, endOfDay)
		for _, iv := range log.PausedIntervals {
			if iv.End == nil {
				continue
			}
			totalHours -= timeutil.HoursBetween(iv.Start, *iv.End)
		}
		if totalHours < 0 {
			totalHours = 0
		}

		if _, err := j.timerLogRepo.Close(ctx, log.ID, log.CompanyID, endOfDay, totalHours, log.PausedIntervals); err != nil {
			// A session mutated since the listing is picked up next run.
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			slog.Error("Cron: Failed to close stale timer", "timer_log_id", log.ID, "error", err)
			continue
		}
		closedCount++
	}

	slog.Info("Cron: Auto-close stale timers completed", "closed", closedCount, "total", len(staleLogs))
	return nil
}

// RevertExpiredSuspensions reactivates employees whose suspension window has
// elapsed.
func (j *MaintenanceJobs) RevertExpiredSuspensions(ctx context.Context) error {
	now := time.Now().UTC()

	due, err := j.employeeRepo.ListSuspendedDue(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to get suspended employees: %w", err)
	}

	if len(due) == 0 {
		return nil
	}

	revertedCount := 0
	for _, emp := range due {
		if err := j.employeeRepo.Reactivate(ctx, emp.ID); err != nil {
			slog.Error("Cron: Failed to reactivate employee", "employee_id", emp.ID, "error", err)
			continue
		}
		revertedCount++
	}

	slog.Info("Cron: Reverted expired suspensions", "reverted", revertedCount, "total", len(due))
	return nil
}

// YearlyPayrollSnapshot records each company's current payroll cost under
// the running year. Writing daily keeps the snapshot current all year; the
// year-end value is whatever the last run recorded.
func (j *MaintenanceJobs) YearlyPayrollSnapshot(ctx context.Context) error {
	year := time.Now().UTC().Year()

	written, err := j.snapshotRepo.SnapshotAll(ctx, year)
	if err != nil {
		return fmt.Errorf("failed to snapshot payroll costs: %w", err)
	}

	slog.Info("Cron: Payroll snapshot completed", "year", year, "companies", written)
	return nil
}
