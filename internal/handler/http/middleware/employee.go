package middleware

import (
	"net/http"

	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/timetracker-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// EmployeeScoped rejects tokens that carry no employee identity, such as
// admin service accounts, before a timer or attendance operation runs.
func EmployeeScoped(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		employeeID, ok := claims["employee_id"].(string)
		if !ok || employeeID == "" {
			response.HandleError(w, attendance.ErrEmployeeScopeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
