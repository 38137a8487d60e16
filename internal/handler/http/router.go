package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/clockwise-hr/timetracker-backend-go/internal/config"
	"github.com/clockwise-hr/timetracker-backend-go/internal/handler/http/middleware"
	"github.com/clockwise-hr/timetracker-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	timerHandler TimerHandler,
	attendanceHandler AttendanceHandler,
	analyticsHandler AnalyticsHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timetracker"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/timer", func(r chi.Router) {
				r.Use(middleware.EmployeeScoped)
				r.Post("/start", timerHandler.Start)
				r.Post("/pause", timerHandler.Pause)
				r.Post("/resume", timerHandler.Resume)
				r.Post("/stop", timerHandler.Stop)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Use(middleware.EmployeeScoped)
				r.Post("/daily-attendance", attendanceHandler.RecordDaily)
				r.Get("/attendance-summary", attendanceHandler.Summary)
				r.Get("/monthly-attendance", attendanceHandler.Monthly)
				r.Get("/attendance-tracking", attendanceHandler.Tracking)
			})

			// Admin only
			r.Route("/attendance-management", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/attendance/{employeeID}", analyticsHandler.EmployeeAttendance)
				r.Get("/departments-overview", analyticsHandler.DepartmentsOverview)
				r.Get("/company-overview", analyticsHandler.CompanyOverview)
				r.Get("/employees-attendance", analyticsHandler.EmployeesAttendance)
				r.Get("/employee-metrics/{employeeID}", analyticsHandler.EmployeeMetrics)
			})
		})
	})
	return r
}
