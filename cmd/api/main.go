package main

import (
	"fmt"
	"net/http"

	"github.com/clockwise-hr/timetracker-backend-go/internal/config"
	appHTTP "github.com/clockwise-hr/timetracker-backend-go/internal/handler/http"
	"github.com/clockwise-hr/timetracker-backend-go/internal/pkg/cron"
	"github.com/clockwise-hr/timetracker-backend-go/internal/pkg/database"
	"github.com/clockwise-hr/timetracker-backend-go/internal/pkg/jwt"
	"github.com/clockwise-hr/timetracker-backend-go/internal/repository/postgresql"
	analyticsService "github.com/clockwise-hr/timetracker-backend-go/internal/service/analytics"
	attendanceService "github.com/clockwise-hr/timetracker-backend-go/internal/service/attendance"
	timerService "github.com/clockwise-hr/timetracker-backend-go/internal/service/timer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	timerLogRepo := postgresql.NewTimerLogRepository(db)
	dailyRecordRepo := postgresql.NewDailyRecordRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	snapshotRepo := postgresql.NewPayrollSnapshotRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	timerSvc := timerService.NewTimerService(db, timerLogRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, dailyRecordRepo, timerLogRepo, employeeRepo, leaveRepo)
	analyticsSvc := analyticsService.NewAnalyticsService(db, timerLogRepo, employeeRepo, leaveRepo, departmentRepo, snapshotRepo)

	timerHandler := appHTTP.NewTimerHandler(timerSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	analyticsHandler := appHTTP.NewAnalyticsHandler(analyticsSvc)

	scheduler := cron.NewScheduler()
	cron.NewMaintenanceJobs(timerLogRepo, employeeRepo, snapshotRepo, db).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		timerHandler,
		attendanceHandler,
		analyticsHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
