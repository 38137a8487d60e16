package timer

// Session states reported to callers.
const (
	StateRunning   = "running"
	StatePaused    = "paused"
	StateCompleted = "completed"
)

// PausedIntervalResponse mirrors one paused interval in API responses.
type PausedIntervalResponse struct {
	Start string  `json:"start"`
	End   *string `json:"end,omitempty"`
}

// TimerLogResponse is the session state returned by every timer operation.
type TimerLogResponse struct {
	ID              string                   `json:"id"`
	EmployeeID      string                   `json:"employee_id"`
	Date            string                   `json:"date"`
	StartTime       string                   `json:"start_time"`
	EndTime         *string                  `json:"end_time,omitempty"`
	PausedIntervals []PausedIntervalResponse `json:"paused_intervals"`
	TotalHours      *float64                 `json:"total_hours,omitempty"`
	State           string                   `json:"state"`
}
