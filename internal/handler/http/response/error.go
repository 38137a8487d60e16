package response

import (
	"errors"
	"net/http"

	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/employee"
	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/timer"
	"github.com/clockwise-hr/timetracker-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Timer domain errors
	case errors.Is(err, timer.ErrTimerAlreadyRunning):
		Conflict(w, "A timer is already running")
	case errors.Is(err, timer.ErrTimerAlreadyPaused):
		Conflict(w, "Timer is already paused")
	case errors.Is(err, timer.ErrTimerNotPaused):
		Conflict(w, "Timer is not paused")
	case errors.Is(err, timer.ErrNoActiveTimer):
		NotFound(w, "No active timer found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrNoTimerRecord):
		NotFound(w, "No timer record found for today")
	case errors.Is(err, attendance.ErrInvalidPeriod):
		BadRequest(w, "Invalid month or year", nil)
	case errors.Is(err, attendance.ErrEmployeeScopeRequired):
		Forbidden(w, "This operation requires an employee identity")
	case errors.Is(err, attendance.ErrAdminPrivilegeRequired):
		Forbidden(w, "You are not authorized to perform this action")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found in your company")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
