package timer

import (
	"context"
	"testing"
	"time"

	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/timer"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCompanyID  = "11111111-1111-1111-1111-111111111111"
	testEmployeeID = "22222222-2222-2222-2222-222222222222"
)

func authedContext(t *testing.T) context.Context {
	t.Helper()

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"company_id":  testCompanyID,
		"employee_id": testEmployeeID,
		"role":        "employee",
		"type":        "access",
	})
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

// fakeTimerLogRepository keeps at most one open session in memory and
// mimics the conditional-update behavior of the real store. beforeClose,
// when set, runs once before the next Close matches, standing in for a
// concurrent transition on the same session.
type fakeTimerLogRepository struct {
	open        *timer.TimerLog
	closed      []timer.TimerLog
	closeCalls  int
	beforeClose func()
}

func (f *fakeTimerLogRepository) CreateOpen(ctx context.Context, log timer.TimerLog) (timer.TimerLog, error) {
	if f.open != nil {
		return timer.TimerLog{}, timer.ErrTimerAlreadyRunning
	}
	log.ID = "log-1"
	f.open = &log
	return log, nil
}

func (f *fakeTimerLogRepository) GetOpen(ctx context.Context, employeeID, companyID string) (timer.TimerLog, error) {
	if f.open == nil {
		return timer.TimerLog{}, timer.ErrNoActiveTimer
	}
	return *f.open, nil
}

func (f *fakeTimerLogRepository) AppendPause(ctx context.Context, employeeID, companyID string, at time.Time) (timer.TimerLog, error) {
	if f.open == nil || f.open.PausedIntervals.OpenInterval() {
		return timer.TimerLog{}, pgx.ErrNoRows
	}
	f.open.PausedIntervals = append(f.open.PausedIntervals, timer.PausedInterval{Start: at})
	return *f.open, nil
}

func (f *fakeTimerLogRepository) ClosePause(ctx context.Context, employeeID, companyID string, at time.Time) (timer.TimerLog, error) {
	if f.open == nil || !f.open.PausedIntervals.OpenInterval() {
		return timer.TimerLog{}, pgx.ErrNoRows
	}
	f.open.PausedIntervals[len(f.open.PausedIntervals)-1].End = &at
	return *f.open, nil
}

func (f *fakeTimerLogRepository) Close(ctx context.Context, id, companyID string, endTime time.Time, totalHours float64, pauses timer.PausedIntervals) (timer.TimerLog, error) {
	f.closeCalls++
	if f.beforeClose != nil {
		hook := f.beforeClose
		f.beforeClose = nil
		hook()
	}
	if f.open == nil || f.open.ID != id {
		return timer.TimerLog{}, pgx.ErrNoRows
	}
	if len(f.open.PausedIntervals) != len(pauses) ||
		f.open.PausedIntervals.OpenInterval() != pauses.OpenInterval() {
		return timer.TimerLog{}, pgx.ErrNoRows
	}
	log := *f.open
	log.EndTime = &endTime
	log.TotalHours = &totalHours
	f.open = nil
	f.closed = append(f.closed, log)
	return log, nil
}

func (f *fakeTimerLogRepository) ListByDateRange(ctx context.Context, employeeID, companyID string, start, end time.Time) ([]timer.TimerLog, error) {
	return f.closed, nil
}

func (f *fakeTimerLogRepository) ListByCompanyAndDateRange(ctx context.Context, companyID string, start, end time.Time) ([]timer.TimerLog, error) {
	return f.closed, nil
}

func (f *fakeTimerLogRepository) ListOpenDatedBefore(ctx context.Context, cutoff time.Time) ([]timer.TimerLog, error) {
	return nil, nil
}

func (f *fakeTimerLogRepository) AverageTotalHours(ctx context.Context, companyID string, start, end time.Time) (float64, error) {
	return 0, nil
}

func TestTimerLifecycle(t *testing.T) {
	ctx := authedContext(t)
	repo := &fakeTimerLogRepository{}
	svc := NewTimerService(nil, repo)

	started, err := svc.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, timer.StateRunning, started.State)
	assert.Equal(t, testEmployeeID, started.EmployeeID)
	assert.Nil(t, started.EndTime)

	paused, err := svc.Pause(ctx)
	require.NoError(t, err)
	assert.Equal(t, timer.StatePaused, paused.State)
	assert.Len(t, paused.PausedIntervals, 1)
	assert.Nil(t, paused.PausedIntervals[0].End)

	resumed, err := svc.Resume(ctx)
	require.NoError(t, err)
	assert.Equal(t, timer.StateRunning, resumed.State)
	assert.NotNil(t, resumed.PausedIntervals[0].End)

	stopped, err := svc.Stop(ctx)
	require.NoError(t, err)
	assert.Equal(t, timer.StateCompleted, stopped.State)
	require.NotNil(t, stopped.TotalHours)
	assert.GreaterOrEqual(t, *stopped.TotalHours, 0.0)
}

func TestStartTwiceConflicts(t *testing.T) {
	ctx := authedContext(t)
	repo := &fakeTimerLogRepository{}
	svc := NewTimerService(nil, repo)

	_, err := svc.Start(ctx)
	require.NoError(t, err)

	_, err = svc.Start(ctx)
	assert.ErrorIs(t, err, timer.ErrTimerAlreadyRunning)
}

func TestPauseStateErrors(t *testing.T) {
	ctx := authedContext(t)

	t.Run("pause without a session", func(t *testing.T) {
		svc := NewTimerService(nil, &fakeTimerLogRepository{})
		_, err := svc.Pause(ctx)
		assert.ErrorIs(t, err, timer.ErrNoActiveTimer)
	})

	t.Run("double pause", func(t *testing.T) {
		svc := NewTimerService(nil, &fakeTimerLogRepository{})
		_, err := svc.Start(ctx)
		require.NoError(t, err)
		_, err = svc.Pause(ctx)
		require.NoError(t, err)
		_, err = svc.Pause(ctx)
		assert.ErrorIs(t, err, timer.ErrTimerAlreadyPaused)
	})

	t.Run("resume while running", func(t *testing.T) {
		svc := NewTimerService(nil, &fakeTimerLogRepository{})
		_, err := svc.Start(ctx)
		require.NoError(t, err)
		_, err = svc.Resume(ctx)
		assert.ErrorIs(t, err, timer.ErrTimerNotPaused)
	})

	t.Run("stop without a session", func(t *testing.T) {
		svc := NewTimerService(nil, &fakeTimerLogRepository{})
		_, err := svc.Stop(ctx)
		assert.ErrorIs(t, err, timer.ErrNoActiveTimer)
	})
}

func TestMissingClaims(t *testing.T) {
	svc := NewTimerService(nil, &fakeTimerLogRepository{})
	_, err := svc.Start(context.Background())
	assert.Error(t, err)
}

func TestStopRecomputesAfterInterleavedResume(t *testing.T) {
	ctx := authedContext(t)
	repo := &fakeTimerLogRepository{}
	svc := NewTimerService(nil, repo)

	now := time.Now().UTC()
	pauseStart := now.Add(-2 * time.Hour)
	pauseEnd := now.Add(-1 * time.Hour)

	repo.open = &timer.TimerLog{
		ID:         "log-1",
		CompanyID:  testCompanyID,
		EmployeeID: testEmployeeID,
		StartTime:  now.Add(-3 * time.Hour),
		Date:       now,
	}

	// A resume completes a one-hour pause after the stop's read; the first
	// close must miss and the hours must come from a fresh read.
	repo.beforeClose = func() {
		repo.open.PausedIntervals = timer.PausedIntervals{{Start: pauseStart, End: &pauseEnd}}
	}

	stopped, err := svc.Stop(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.closeCalls)
	require.NotNil(t, stopped.TotalHours)
	assert.InDelta(t, 2.0, *stopped.TotalHours, 0.01)
}

func TestWorkedHours(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC)

	pauseStart := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	pauseEnd := time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)

	t.Run("completed pause is subtracted", func(t *testing.T) {
		got := WorkedHours(start, end, timer.PausedIntervals{{Start: pauseStart, End: &pauseEnd}})
		assert.InDelta(t, 7.0, got, 1e-9)
	})

	t.Run("open pause is dropped", func(t *testing.T) {
		got := WorkedHours(start, end, timer.PausedIntervals{{Start: pauseStart}})
		assert.InDelta(t, 8.0, got, 1e-9)
	})

	t.Run("pauses exceeding the session clamp to zero", func(t *testing.T) {
		longEnd := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
		got := WorkedHours(start, end, timer.PausedIntervals{{Start: pauseStart, End: &longEnd}})
		assert.Equal(t, 0.0, got)
	})

	t.Run("no pauses", func(t *testing.T) {
		got := WorkedHours(start, end, nil)
		assert.InDelta(t, 8.0, got, 1e-9)
	})
}
