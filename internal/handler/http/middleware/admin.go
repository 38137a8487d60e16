package middleware

import (
	"net/http"

	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/timetracker-backend-go/internal/handler/http/response"
	"github.com/clockwise-hr/timetracker-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != jwt.RoleAdmin {
			response.HandleError(w, attendance.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
