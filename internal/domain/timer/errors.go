package timer

import "errors"

// Timer domain errors
var (
	// State transition errors
	ErrTimerAlreadyRunning = errors.New("a timer is already running for this employee")
	ErrNoActiveTimer       = errors.New("no active timer found")
	ErrTimerAlreadyPaused  = errors.New("timer is already paused")
	ErrTimerNotPaused      = errors.New("timer is not paused")
)
