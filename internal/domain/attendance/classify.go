package attendance

// Status classifies one calendar day of an employee's attendance.
type Status string

const (
	StatusPresent   Status = "present"
	StatusUndertime Status = "undertime"
	StatusAbsent    Status = "absent"
	StatusOnLeave   Status = "on_leave"
)

// Classify determines the attendance status for a day from the hours worked
// against the employee's daily target. An approved leave day short-circuits
// every other check. With a zero target the day is present as soon as any
// hours were logged.
func Classify(hoursWorked float64, workingHours float64, isLeaveDay bool) Status {
	if isLeaveDay {
		return StatusOnLeave
	}
	if workingHours == 0 {
		if hoursWorked > 0 {
			return StatusPresent
		}
		return StatusAbsent
	}
	if hoursWorked >= 0.9*workingHours {
		return StatusPresent
	}
	if hoursWorked >= 0.4*workingHours {
		return StatusUndertime
	}
	return StatusAbsent
}

// OvertimeHours returns the hours worked beyond the daily target, never
// negative. A zero target never yields overtime.
func OvertimeHours(hoursWorked float64, workingHours float64) float64 {
	if workingHours <= 0 {
		return 0
	}
	if hoursWorked > workingHours {
		return hoursWorked - workingHours
	}
	return 0
}

// Undertime reports whether the day fell short of the target while still
// counting as a worked day (at least 40% of the target).
func Undertime(hoursWorked float64, workingHours float64) bool {
	return workingHours > 0 && hoursWorked < workingHours && hoursWorked >= 0.4*workingHours
}
