package timer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/timer"
	"github.com/clockwise-hr/timetracker-backend-go/internal/pkg/database"
	"github.com/clockwise-hr/timetracker-backend-go/internal/pkg/timeutil"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
)

type TimerServiceImpl struct {
	db *database.DB
	timer.TimerLogRepository
}

func NewTimerService(db *database.DB, timerLogRepo timer.TimerLogRepository) timer.TimerService {
	return &TimerServiceImpl{
		db:                 db,
		TimerLogRepository: timerLogRepo,
	}
}

func scopeFromContext(ctx context.Context) (companyID string, employeeID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	employeeID, ok = claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	return companyID, employeeID, nil
}

func timeToString(t time.Time) string {
	return timeutil.ToUTC(t).Format(time.RFC3339)
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := timeToString(*t)
	return &s
}

func toResponse(log timer.TimerLog) timer.TimerLogResponse {
	state := timer.StateRunning
	if log.EndTime != nil {
		state = timer.StateCompleted
	} else if log.Paused() {
		state = timer.StatePaused
	}

	intervals := make([]timer.PausedIntervalResponse, 0, len(log.PausedIntervals))
	for _, iv := range log.PausedIntervals {
		intervals = append(intervals, timer.PausedIntervalResponse{
			Start: timeToString(iv.Start),
			End:   timePtrToString(iv.End),
		})
	}

	return timer.TimerLogResponse{
		ID:              log.ID,
		EmployeeID:      log.EmployeeID,
		Date:            timeutil.DateOf(log.Date).Format("2006-01-02"),
		StartTime:       timeToString(log.StartTime),
		EndTime:         timePtrToString(log.EndTime),
		PausedIntervals: intervals,
		TotalHours:      log.TotalHours,
		State:           state,
	}
}

// Start implements timer.TimerService.
func (s *TimerServiceImpl) Start(ctx context.Context) (timer.TimerLogResponse, error) {
	companyID, employeeID, err := scopeFromContext(ctx)
	if err != nil {
		return timer.TimerLogResponse{}, err
	}

	now := time.Now().UTC()

	log, err := s.TimerLogRepository.CreateOpen(ctx, timer.TimerLog{
		CompanyID:       companyID,
		EmployeeID:      employeeID,
		StartTime:       now,
		PausedIntervals: timer.PausedIntervals{},
		Date:            timeutil.DateOf(now),
	})
	if err != nil {
		return timer.TimerLogResponse{}, err
	}

	return toResponse(log), nil
}

// Pause implements timer.TimerService.
func (s *TimerServiceImpl) Pause(ctx context.Context) (timer.TimerLogResponse, error) {
	companyID, employeeID, err := scopeFromContext(ctx)
	if err != nil {
		return timer.TimerLogResponse{}, err
	}

	log, err := s.TimerLogRepository.AppendPause(ctx, employeeID, companyID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The conditional update matched nothing. Re-read to tell a
			// missing session apart from one that is already paused.
			if _, getErr := s.TimerLogRepository.GetOpen(ctx, employeeID, companyID); getErr != nil {
				return timer.TimerLogResponse{}, getErr
			}
			return timer.TimerLogResponse{}, timer.ErrTimerAlreadyPaused
		}
		return timer.TimerLogResponse{}, err
	}

	return toResponse(log), nil
}

// Resume implements timer.TimerService.
func (s *TimerServiceImpl) Resume(ctx context.Context) (timer.TimerLogResponse, error) {
	companyID, employeeID, err := scopeFromContext(ctx)
	if err != nil {
		return timer.TimerLogResponse{}, err
	}

	log, err := s.TimerLogRepository.ClosePause(ctx, employeeID, companyID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := s.TimerLogRepository.GetOpen(ctx, employeeID, companyID); getErr != nil {
				return timer.TimerLogResponse{}, getErr
			}
			return timer.TimerLogResponse{}, timer.ErrTimerNotPaused
		}
		return timer.TimerLogResponse{}, err
	}

	return toResponse(log), nil
}

// Stop implements timer.TimerService.
func (s *TimerServiceImpl) Stop(ctx context.Context) (timer.TimerLogResponse, error) {
	companyID, employeeID, err := scopeFromContext(ctx)
	if err != nil {
		return timer.TimerLogResponse{}, err
	}

	// Close matches the pause state the hours were computed from; a pause
	// or resume landing between the read and the write surfaces as no row
	// and the computation restarts from a fresh read.
	for attempt := 0; attempt < 3; attempt++ {
		open, err := s.TimerLogRepository.GetOpen(ctx, employeeID, companyID)
		if err != nil {
			return timer.TimerLogResponse{}, err
		}

		now := time.Now().UTC()
		totalHours := WorkedHours(open.StartTime, now, open.PausedIntervals)

		closed, err := s.TimerLogRepository.Close(ctx, open.ID, companyID, now, totalHours, open.PausedIntervals)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return timer.TimerLogResponse{}, err
		}
		return toResponse(closed), nil
	}

	return timer.TimerLogResponse{}, timer.ErrNoActiveTimer
}

// WorkedHours computes the net hours between start and end after subtracting
// completed paused intervals. An interval still missing its end is ignored.
// The result never goes below zero.
func WorkedHours(start, end time.Time, pauses timer.PausedIntervals) float64 {
	total := timeutil.HoursBetween(start, end)

	for _, iv := range pauses {
		if iv.End == nil {
			continue
		}
		total -= timeutil.HoursBetween(iv.Start, *iv.End)
	}

	if total < 0 {
		return 0
	}
	return total
}
