package leave

import (
	"time"
)

// Leave statuses
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Leave is one leave request. Dates are inclusive calendar days; only
// approved leaves participate in attendance classification.
type Leave struct {
	ID         string
	CompanyID  string
	EmployeeID string
	LeaveType  string
	StartDate  time.Time
	EndDate    time.Time
	Status     string
	CreatedAt  time.Time
}

// DurationDays is the number of calendar days covered, both ends included.
func (l Leave) DurationDays() int {
	days := int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
	if days < 0 {
		return 0
	}
	return days
}
