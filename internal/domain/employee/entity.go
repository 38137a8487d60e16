package employee

import (
	"time"
)

// Employment statuses
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

// Employee is the attendance engine's read view of an employee. Department
// may hold either a department id or a raw name; resolve it through the
// department repository before grouping.
type Employee struct {
	ID               string
	CompanyID        string
	FirstName        string
	LastName         string
	Department       *string
	WorkingHours     float64 // expected hours per working day
	WeeklyWorkdays   int     // weekday indices 0..n-1 count as working days
	EmploymentStatus string
	AnnualLeaveDays  float64

	// Payroll snapshot inputs
	BaseSalary         float64
	OvertimeAllowance  float64
	HousingAllowance   float64
	TransportAllowance float64
	MedicalAllowance   float64
	CompanyMatch       float64

	SuspensionEndDate *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// FullName joins first and last name for display.
func (e Employee) FullName() string {
	if e.FirstName == "" {
		return e.LastName
	}
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// Active reports whether the employee participates in aggregates.
func (e Employee) Active() bool {
	return e.EmploymentStatus == StatusActive
}

// PayrollCost sums base salary and all allowances.
func (e Employee) PayrollCost() float64 {
	return e.BaseSalary + e.OvertimeAllowance + e.HousingAllowance +
		e.TransportAllowance + e.MedicalAllowance + e.CompanyMatch
}
