package timer

import (
	"context"
)

// TimerService defines the punch-clock state machine for the authenticated
// employee: Idle -> Running -> Paused -> Running -> Idle.
type TimerService interface {
	// Start opens a new session. Fails with ErrTimerAlreadyRunning when an
	// open session exists.
	Start(ctx context.Context) (TimerLogResponse, error)

	// Pause suspends a running session. Fails with ErrNoActiveTimer when no
	// session is open, ErrTimerAlreadyPaused when it is already paused.
	Pause(ctx context.Context) (TimerLogResponse, error)

	// Resume continues a paused session. Fails with ErrNoActiveTimer when no
	// session is open, ErrTimerNotPaused when it is not paused.
	Resume(ctx context.Context) (TimerLogResponse, error)

	// Stop terminates the open session and computes total worked hours net
	// of completed paused intervals. An unresolved pause is dropped from the
	// computation rather than rejected.
	Stop(ctx context.Context) (TimerLogResponse, error)
}
