package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/timer"
	"github.com/clockwise-hr/timetracker-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type timerLogRepository struct {
	db *database.DB
}

const timerLogColumns = `
	id, company_id, employee_id, start_time, end_time,
	paused_intervals, total_hours, date, created_at, updated_at
`

func scanTimerLog(row pgx.Row) (timer.TimerLog, error) {
	var log timer.TimerLog
	err := row.Scan(
		&log.ID, &log.CompanyID, &log.EmployeeID, &log.StartTime, &log.EndTime,
		&log.PausedIntervals, &log.TotalHours, &log.Date, &log.CreatedAt, &log.UpdatedAt,
	)
	return log, err
}

// CreateOpen implements timer.TimerLogRepository. The partial unique index
// timer_logs_one_open_per_employee (on company_id, employee_id where
// end_time is null) serializes concurrent starts; the violation maps to the
// domain conflict instead of a prior existence check.
func (r *timerLogRepository) CreateOpen(ctx context.Context, newLog timer.TimerLog) (timer.TimerLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO timer_logs (
			company_id, employee_id, start_time, paused_intervals, date
		) VALUES (
			$1, $2, $3, $4, $5
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newLog.CompanyID,
		newLog.EmployeeID,
		newLog.StartTime,
		newLog.PausedIntervals,
		newLog.Date,
	).Scan(&newLog.ID, &newLog.CreatedAt, &newLog.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return timer.TimerLog{}, timer.ErrTimerAlreadyRunning
		}
		return timer.TimerLog{}, fmt.Errorf("failed to create timer log: %w", err)
	}

	return newLog, nil
}

// GetOpen implements timer.TimerLogRepository.
func (r *timerLogRepository) GetOpen(ctx context.Context, employeeID string, companyID string) (timer.TimerLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timerLogColumns + `
		FROM timer_logs
		WHERE employee_id = $1
		  AND company_id = $2
		  AND end_time IS NULL
		ORDER BY start_time DESC
		LIMIT 1
	`

	log, err := scanTimerLog(q.QueryRow(ctx, query, employeeID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timer.TimerLog{}, timer.ErrNoActiveTimer
		}
		return timer.TimerLog{}, fmt.Errorf("failed to get open timer log: %w", err)
	}

	return log, nil
}

// AppendPause implements timer.TimerLogRepository. The filter matches only a
// running session (open log whose last paused interval, if any, is closed),
// so a lost-update race between concurrent pauses leaves exactly one winner.
func (r *timerLogRepository) AppendPause(ctx context.Context, employeeID string, companyID string, at time.Time) (timer.TimerLog, error) {
	q := GetQuerier(ctx, r.db)

	interval, err := json.Marshal(timer.PausedIntervals{{Start: at.UTC()}})
	if err != nil {
		return timer.TimerLog{}, fmt.Errorf("failed to encode paused interval: %w", err)
	}

	query := `
		UPDATE timer_logs
		SET paused_intervals = paused_intervals || $3::jsonb,
		    updated_at = NOW()
		WHERE employee_id = $1
		  AND company_id = $2
		  AND end_time IS NULL
		  AND (jsonb_array_length(paused_intervals) = 0 OR paused_intervals->-1 ? 'end')
		RETURNING ` + timerLogColumns

	log, err := scanTimerLog(q.QueryRow(ctx, query, employeeID, companyID, interval))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timer.TimerLog{}, pgx.ErrNoRows
		}
		return timer.TimerLog{}, fmt.Errorf("failed to pause timer log: %w", err)
	}

	return log, nil
}

// ClosePause implements timer.TimerLogRepository.
func (r *timerLogRepository) ClosePause(ctx context.Context, employeeID string, companyID string, at time.Time) (timer.TimerLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timer_logs
		SET paused_intervals = jsonb_set(
		        paused_intervals,
		        ARRAY[(jsonb_array_length(paused_intervals) - 1)::text, 'end'],
		        to_jsonb($3::timestamptz),
		        true
		    ),
		    updated_at = NOW()
		WHERE employee_id = $1
		  AND company_id = $2
		  AND end_time IS NULL
		  AND jsonb_array_length(paused_intervals) > 0
		  AND NOT (paused_intervals->-1 ? 'end')
		RETURNING ` + timerLogColumns

	log, err := scanTimerLog(q.QueryRow(ctx, query, employeeID, companyID, at.UTC()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timer.TimerLog{}, pgx.ErrNoRows
		}
		return timer.TimerLog{}, fmt.Errorf("failed to resume timer log: %w", err)
	}

	return log, nil
}

// Close implements timer.TimerLogRepository. Matching on end_time IS NULL
// and the pause state the caller computed total_hours from makes the
// terminal write a compare-and-swap: a second stop, or a pause or resume
// landing after the caller's read, finds no row. A pause changes the
// interval count and a resume closes the last interval, so the two
// predicates together detect any interleaved transition.
func (r *timerLogRepository) Close(ctx context.Context, id string, companyID string, endTime time.Time, totalHours float64, pauses timer.PausedIntervals) (timer.TimerLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timer_logs
		SET end_time = $3,
		    total_hours = $4,
		    updated_at = NOW()
		WHERE id = $1
		  AND company_id = $2
		  AND end_time IS NULL
		  AND jsonb_array_length(paused_intervals) = $5
		  AND COALESCE(NOT (paused_intervals->-1 ? 'end'), false) = $6
		RETURNING ` + timerLogColumns

	log, err := scanTimerLog(q.QueryRow(ctx, query, id, companyID, endTime.UTC(), totalHours, len(pauses), pauses.OpenInterval()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timer.TimerLog{}, pgx.ErrNoRows
		}
		return timer.TimerLog{}, fmt.Errorf("failed to close timer log: %w", err)
	}

	return log, nil
}

// ListByDateRange implements timer.TimerLogRepository.
func (r *timerLogRepository) ListByDateRange(ctx context.Context, employeeID string, companyID string, start, end time.Time) ([]timer.TimerLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timerLogColumns + `
		FROM timer_logs
		WHERE employee_id = $1
		  AND company_id = $2
		  AND date >= $3
		  AND date <= $4
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query timer logs: %w", err)
	}
	defer rows.Close()

	var logs []timer.TimerLog
	for rows.Next() {
		log, err := scanTimerLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timer log: %w", err)
		}
		logs = append(logs, log)
	}

	return logs, nil
}

// ListOpenDatedBefore implements timer.TimerLogRepository.
func (r *timerLogRepository) ListOpenDatedBefore(ctx context.Context, cutoff time.Time) ([]timer.TimerLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timerLogColumns + `
		FROM timer_logs
		WHERE end_time IS NULL
		  AND date < $1
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query stale timer logs: %w", err)
	}
	defer rows.Close()

	var logs []timer.TimerLog
	for rows.Next() {
		log, err := scanTimerLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timer log: %w", err)
		}
		logs = append(logs, log)
	}

	return logs, nil
}

// ListByCompanyAndDateRange implements timer.TimerLogRepository.
func (r *timerLogRepository) ListByCompanyAndDateRange(ctx context.Context, companyID string, start, end time.Time) ([]timer.TimerLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timerLogColumns + `
		FROM timer_logs
		WHERE company_id = $1
		  AND date >= $2
		  AND date <= $3
		ORDER BY employee_id, date
	`

	rows, err := q.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query timer logs: %w", err)
	}
	defer rows.Close()

	var logs []timer.TimerLog
	for rows.Next() {
		log, err := scanTimerLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timer log: %w", err)
		}
		logs = append(logs, log)
	}

	return logs, nil
}

// AverageTotalHours implements timer.TimerLogRepository.
func (r *timerLogRepository) AverageTotalHours(ctx context.Context, companyID string, start, end time.Time) (float64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(AVG(total_hours), 0)
		FROM timer_logs
		WHERE company_id = $1
		  AND date >= $2
		  AND date <= $3
		  AND end_time IS NOT NULL
	`

	var avg float64
	if err := q.QueryRow(ctx, query, companyID, start, end).Scan(&avg); err != nil {
		return 0, fmt.Errorf("failed to average timer log hours: %w", err)
	}

	return avg, nil
}

func NewTimerLogRepository(db *database.DB) timer.TimerLogRepository {
	return &timerLogRepository{db: db}
}
