package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/employee"
	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/leave"
	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/timer"
	"github.com/clockwise-hr/timetracker-backend-go/internal/pkg/database"
	"github.com/clockwise-hr/timetracker-backend-go/internal/pkg/timeutil"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.DailyRecordRepository
	timer.TimerLogRepository
	employee.EmployeeRepository
	leave.LeaveRepository
}

func NewAttendanceService(
	db *database.DB,
	dailyRecordRepo attendance.DailyRecordRepository,
	timerLogRepo timer.TimerLogRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                    db,
		DailyRecordRepository: dailyRecordRepo,
		TimerLogRepository:    timerLogRepo,
		EmployeeRepository:    employeeRepo,
		LeaveRepository:       leaveRepo,
	}
}

func scopeFromContext(ctx context.Context) (companyID string, employeeID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	employeeID, ok = claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", attendance.ErrEmployeeScopeRequired
	}

	return companyID, employeeID, nil
}

// periodInput pre-fetches everything the monthly rollup needs for one
// employee: the profile, approved leaves and closed timer logs over the
// month.
func (a *AttendanceServiceImpl) periodInput(ctx context.Context, employeeID, companyID string, year int, month time.Month) (attendance.PeriodInput, error) {
	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return attendance.PeriodInput{}, err
	}

	start, end := timeutil.MonthRange(year, month)

	leaves, err := a.LeaveRepository.ListApprovedOverlapping(ctx, employeeID, companyID, start, end)
	if err != nil {
		return attendance.PeriodInput{}, err
	}

	logs, err := a.TimerLogRepository.ListByDateRange(ctx, employeeID, companyID, start, end)
	if err != nil {
		return attendance.PeriodInput{}, err
	}

	return attendance.PeriodInput{
		EmployeeID:     employeeID,
		WorkingHours:   emp.WorkingHours,
		WeeklyWorkdays: emp.WeeklyWorkdays,
		LeaveDays:      attendance.LeaveDaySet(leaves, start, end),
		HoursByDate:    attendance.SumHoursByDate(logs),
		Start:          start,
		End:            end,
		Today:          time.Now().UTC(),
	}, nil
}

// RecordDailyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RecordDailyAttendance(ctx context.Context, isLeaveDay bool) (attendance.DailyRecordResponse, error) {
	companyID, employeeID, err := scopeFromContext(ctx)
	if err != nil {
		return attendance.DailyRecordResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return attendance.DailyRecordResponse{}, err
	}

	today := timeutil.DateOf(time.Now().UTC())

	logs, err := a.TimerLogRepository.ListByDateRange(ctx, employeeID, companyID, today, today)
	if err != nil {
		return attendance.DailyRecordResponse{}, err
	}

	var hoursWorked float64
	closedLogs := 0
	for _, log := range logs {
		if log.TotalHours == nil {
			continue
		}
		hoursWorked += *log.TotalHours
		closedLogs++
	}

	if closedLogs == 0 && !isLeaveDay {
		return attendance.DailyRecordResponse{}, attendance.ErrNoTimerRecord
	}

	status := attendance.Classify(hoursWorked, emp.WorkingHours, isLeaveDay)
	overtime := attendance.OvertimeHours(hoursWorked, emp.WorkingHours)
	if isLeaveDay {
		hoursWorked = 0
		overtime = 0
	}

	saved, err := a.DailyRecordRepository.Upsert(ctx, attendance.DailyRecord{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		EmployeeID:    employeeID,
		Date:          today,
		HoursWorked:   hoursWorked,
		OvertimeHours: overtime,
		Status:        status,
	})
	if err != nil {
		return attendance.DailyRecordResponse{}, err
	}

	return attendance.DailyRecordResponse{
		Date:          saved.Date.Format("2006-01-02"),
		HoursWorked:   saved.HoursWorked,
		OvertimeHours: saved.OvertimeHours,
		Status:        string(saved.Status),
	}, nil
}

// GetSummary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetSummary(ctx context.Context) (attendance.SummaryResponse, error) {
	companyID, employeeID, err := scopeFromContext(ctx)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	now := time.Now().UTC()

	in, err := a.periodInput(ctx, employeeID, companyID, now.Year(), now.Month())
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	agg := attendance.BuildPeriodAggregate(in)

	return attendance.SummaryResponse{
		MonthlyWorkingHours:  agg.TotalHoursWorked,
		IdealMonthlyHours:    agg.IdealHours,
		AttendancePercentage: agg.AttendancePercentage,
		LeaveDays:            agg.LeaveDays,
	}, nil
}

// GetMonthlyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMonthlyAttendance(ctx context.Context, req attendance.PeriodRequest) (attendance.PeriodAggregateResponse, error) {
	companyID, employeeID, err := scopeFromContext(ctx)
	if err != nil {
		return attendance.PeriodAggregateResponse{}, err
	}

	now := time.Now().UTC()
	if req.Month == 0 {
		req.Month = int(now.Month())
	}
	if req.Year == 0 {
		req.Year = now.Year()
	}
	if err := req.Validate(); err != nil {
		return attendance.PeriodAggregateResponse{}, err
	}

	in, err := a.periodInput(ctx, employeeID, companyID, req.Year, time.Month(req.Month))
	if err != nil {
		return attendance.PeriodAggregateResponse{}, err
	}

	agg := attendance.BuildPeriodAggregate(in)

	return attendance.PeriodAggregateResponse{
		EmployeeID:           employeeID,
		Month:                req.Month,
		Year:                 req.Year,
		WorkingDays:          agg.WorkingDays,
		LeaveDays:            agg.LeaveDays,
		Presents:             agg.Presents,
		Undertimes:           agg.Undertimes,
		Absences:             agg.Absences,
		TotalHoursWorked:     agg.TotalHoursWorked,
		TotalOvertimeHours:   agg.TotalOvertimeHours,
		TotalUndertimeHours:  agg.TotalUndertimeHours,
		IdealHours:           agg.IdealHours,
		AttendancePercentage: agg.AttendancePercentage,
	}, nil
}

// GetTracking implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetTracking(ctx context.Context, req attendance.PeriodRequest) (attendance.TrackingResponse, error) {
	companyID, employeeID, err := scopeFromContext(ctx)
	if err != nil {
		return attendance.TrackingResponse{}, err
	}

	now := time.Now().UTC()
	if req.Month == 0 {
		req.Month = int(now.Month())
	}
	if req.Year == 0 {
		req.Year = now.Year()
	}
	if err := req.Validate(); err != nil {
		return attendance.TrackingResponse{}, err
	}

	in, err := a.periodInput(ctx, employeeID, companyID, req.Year, time.Month(req.Month))
	if err != nil {
		return attendance.TrackingResponse{}, err
	}

	agg := attendance.BuildPeriodAggregate(in)

	days := make([]attendance.DayRecordResponse, 0, len(agg.Days))
	for _, day := range agg.Days {
		rec := attendance.DayRecordResponse{
			Date:        day.Date.Format("2006-01-02"),
			Status:      string(day.Status),
			HoursWorked: day.HoursWorked,
		}
		if day.OvertimeHours > 0 {
			rec.Overtime = 1
		}
		if day.Undertime {
			rec.Undertime = 1
		}
		if day.Status == attendance.StatusAbsent {
			rec.Absent = 1
		}
		days = append(days, rec)
	}

	return attendance.TrackingResponse{
		AttendanceSummary: days,
		Totals: attendance.PeriodTotals{
			LeaveDays:  agg.LeaveDays,
			Absences:   agg.Absences,
			Undertimes: agg.Undertimes,
			Presents:   agg.Presents,
		},
	}, nil
}
