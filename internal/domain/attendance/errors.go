package attendance

import "errors"

// Attendance domain errors
var (
	ErrNoTimerRecord          = errors.New("no timer record found for today")
	ErrInvalidPeriod          = errors.New("invalid month or year")
	ErrEmployeeScopeRequired  = errors.New("this operation requires an employee identity")
	ErrAdminPrivilegeRequired = errors.New("you are not authorized to perform this action")
)
