package attendance

import (
	"time"
)

// DailyRecord is the persisted attendance history entry for one employee
// day, written by the daily-attendance endpoint. One row per employee per
// date, upserted on recomputation.
type DailyRecord struct {
	ID            string
	CompanyID     string
	EmployeeID    string
	Date          time.Time
	HoursWorked   float64
	OvertimeHours float64
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
