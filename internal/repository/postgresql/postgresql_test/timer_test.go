package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/timer"
	"github.com/clockwise-hr/timetracker-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	timerTestCompanyID  = "11111111-1111-1111-1111-111111111111"
	timerTestEmployeeID = "22222222-2222-2222-2222-222222222222"
)

func newOpenLog(start time.Time) timer.TimerLog {
	return timer.TimerLog{
		CompanyID:       timerTestCompanyID,
		EmployeeID:      timerTestEmployeeID,
		StartTime:       start,
		PausedIntervals: timer.PausedIntervals{},
		Date:            time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
	}
}

func TestTimerLogRepository(t *testing.T) {
	setup := requireTestDatabase(t)
	ctx := context.Background()
	require.NoError(t, setup.TruncateAllTables(ctx))

	repo := postgresql.NewTimerLogRepository(setup.DB)
	start := time.Now().UTC().Truncate(time.Second)

	t.Run("create and get open session", func(t *testing.T) {
		created, err := repo.CreateOpen(ctx, newOpenLog(start))
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)

		got, err := repo.GetOpen(ctx, timerTestEmployeeID, timerTestCompanyID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Nil(t, got.EndTime)
	})

	t.Run("second open session conflicts", func(t *testing.T) {
		_, err := repo.CreateOpen(ctx, newOpenLog(start.Add(time.Minute)))
		assert.ErrorIs(t, err, timer.ErrTimerAlreadyRunning)
	})

	t.Run("pause and resume flip the last interval", func(t *testing.T) {
		paused, err := repo.AppendPause(ctx, timerTestEmployeeID, timerTestCompanyID, start.Add(2*time.Hour))
		require.NoError(t, err)
		require.Len(t, paused.PausedIntervals, 1)
		assert.Nil(t, paused.PausedIntervals[0].End)

		// A second pause matches nothing while already paused
		_, err = repo.AppendPause(ctx, timerTestEmployeeID, timerTestCompanyID, start.Add(3*time.Hour))
		assert.Error(t, err)

		resumed, err := repo.ClosePause(ctx, timerTestEmployeeID, timerTestCompanyID, start.Add(3*time.Hour))
		require.NoError(t, err)
		require.Len(t, resumed.PausedIntervals, 1)
		assert.NotNil(t, resumed.PausedIntervals[0].End)
	})

	t.Run("close misses on a stale pause state", func(t *testing.T) {
		open, err := repo.GetOpen(ctx, timerTestEmployeeID, timerTestCompanyID)
		require.NoError(t, err)

		// The session has one completed pause; a snapshot that missed it
		// must not close the session.
		_, err = repo.Close(ctx, open.ID, timerTestCompanyID, start.Add(8*time.Hour), 8, nil)
		assert.ErrorIs(t, err, pgx.ErrNoRows)
	})

	t.Run("close terminates the session once", func(t *testing.T) {
		open, err := repo.GetOpen(ctx, timerTestEmployeeID, timerTestCompanyID)
		require.NoError(t, err)

		closed, err := repo.Close(ctx, open.ID, timerTestCompanyID, start.Add(8*time.Hour), 7, open.PausedIntervals)
		require.NoError(t, err)
		require.NotNil(t, closed.TotalHours)
		assert.InDelta(t, 7.0, *closed.TotalHours, 1e-9)

		_, err = repo.Close(ctx, open.ID, timerTestCompanyID, start.Add(9*time.Hour), 8, open.PausedIntervals)
		assert.ErrorIs(t, err, pgx.ErrNoRows)

		_, err = repo.GetOpen(ctx, timerTestEmployeeID, timerTestCompanyID)
		assert.ErrorIs(t, err, timer.ErrNoActiveTimer)
	})

	t.Run("closed sessions appear in range queries", func(t *testing.T) {
		date := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
		logs, err := repo.ListByDateRange(ctx, timerTestEmployeeID, timerTestCompanyID, date, date)
		require.NoError(t, err)
		require.Len(t, logs, 1)

		avg, err := repo.AverageTotalHours(ctx, timerTestCompanyID, date, date)
		require.NoError(t, err)
		assert.InDelta(t, 7.0, avg, 1e-9)
	})
}
