package timer

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// TimerLog is one clock-in/clock-out work session for an employee.
// A log with no EndTime is the employee's open session; once EndTime and
// TotalHours are set the log is terminal and never rewritten.
type TimerLog struct {
	ID              string
	CompanyID       string
	EmployeeID      string
	StartTime       time.Time
	EndTime         *time.Time
	PausedIntervals PausedIntervals
	TotalHours      *float64
	Date            time.Time // calendar anchor (start date), used for per-day grouping
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Open reports whether the session is still running or paused.
func (l TimerLog) Open() bool {
	return l.EndTime == nil
}

// Paused reports whether the last paused interval is still open.
func (l TimerLog) Paused() bool {
	return l.EndTime == nil && l.PausedIntervals.OpenInterval()
}

// PausedInterval is a sub-range of a session during which elapsed time does
// not count toward worked hours. End is nil while the pause is ongoing.
type PausedInterval struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

// PausedIntervals is stored as a JSONB array on the timer log row.
type PausedIntervals []PausedInterval

// OpenInterval reports whether the last interval has no end yet.
func (p PausedIntervals) OpenInterval() bool {
	return len(p) > 0 && p[len(p)-1].End == nil
}

// Value implements driver.Valuer for database storage.
func (p PausedIntervals) Value() (driver.Value, error) {
	if p == nil {
		return json.Marshal(PausedIntervals{})
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner for database retrieval.
func (p *PausedIntervals) Scan(value interface{}) error {
	if value == nil {
		*p = PausedIntervals{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan PausedIntervals: invalid type")
	}

	return json.Unmarshal(bytes, p)
}
