package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/analytics"
	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/department"
	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/employee"
	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/leave"
	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/payroll"
	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/timer"
	"github.com/clockwise-hr/timetracker-backend-go/internal/pkg/database"
	"github.com/clockwise-hr/timetracker-backend-go/internal/pkg/timeutil"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/sync/errgroup"
)

type AnalyticsServiceImpl struct {
	db *database.DB
	timer.TimerLogRepository
	employee.EmployeeRepository
	leave.LeaveRepository
	department.DepartmentRepository
	payroll.SnapshotRepository
}

func NewAnalyticsService(
	db *database.DB,
	timerLogRepo timer.TimerLogRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRepository,
	departmentRepo department.DepartmentRepository,
	snapshotRepo payroll.SnapshotRepository,
) analytics.AnalyticsService {
	return &AnalyticsServiceImpl{
		db:                   db,
		TimerLogRepository:   timerLogRepo,
		EmployeeRepository:   employeeRepo,
		LeaveRepository:      leaveRepo,
		DepartmentRepository: departmentRepo,
		SnapshotRepository:   snapshotRepo,
	}
}

func companyFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return companyID, nil
}

// monthAggregates builds the monthly rollup for every given employee from
// three company-wide queries instead of one query per employee.
func (s *AnalyticsServiceImpl) monthAggregates(ctx context.Context, companyID string, employees []employee.Employee, year int, month time.Month) (map[string]attendance.PeriodAggregate, error) {
	start, end := timeutil.MonthRange(year, month)

	leaves, err := s.LeaveRepository.ListApprovedOverlappingByCompany(ctx, companyID, start, end)
	if err != nil {
		return nil, err
	}

	logs, err := s.TimerLogRepository.ListByCompanyAndDateRange(ctx, companyID, start, end)
	if err != nil {
		return nil, err
	}

	leavesByEmployee := make(map[string][]leave.Leave)
	for _, lv := range leaves {
		leavesByEmployee[lv.EmployeeID] = append(leavesByEmployee[lv.EmployeeID], lv)
	}

	logsByEmployee := make(map[string][]timer.TimerLog)
	for _, log := range logs {
		logsByEmployee[log.EmployeeID] = append(logsByEmployee[log.EmployeeID], log)
	}

	today := time.Now().UTC()

	aggregates := make(map[string]attendance.PeriodAggregate, len(employees))
	for _, emp := range employees {
		aggregates[emp.ID] = attendance.BuildPeriodAggregate(attendance.PeriodInput{
			EmployeeID:     emp.ID,
			WorkingHours:   emp.WorkingHours,
			WeeklyWorkdays: emp.WeeklyWorkdays,
			LeaveDays:      attendance.LeaveDaySet(leavesByEmployee[emp.ID], start, end),
			HoursByDate:    attendance.SumHoursByDate(logsByEmployee[emp.ID]),
			Start:          start,
			End:            end,
			Today:          today,
		})
	}

	return aggregates, nil
}

func resolveMonth(raw string) (int, time.Month) {
	if raw != "" {
		if t, err := time.Parse("2006-01", raw); err == nil {
			return t.Year(), t.Month()
		}
	}
	now := time.Now().UTC()
	return now.Year(), now.Month()
}

// filterByDepartment keeps only employees whose resolved department matches
// name. An empty name keeps the whole slice.
func filterByDepartment(employees []employee.Employee, resolver *department.Resolver, name string) []employee.Employee {
	if name == "" {
		return employees
	}
	filtered := employees[:0]
	for _, emp := range employees {
		if resolver.Resolve(emp.Department) == name {
			filtered = append(filtered, emp)
		}
	}
	return filtered
}

// GetEmployeeAttendance implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) GetEmployeeAttendance(ctx context.Context, employeeID string) (attendance.TrackingResponse, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return attendance.TrackingResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return attendance.TrackingResponse{}, err
	}

	now := time.Now().UTC()
	aggregates, err := s.monthAggregates(ctx, companyID, []employee.Employee{emp}, now.Year(), now.Month())
	if err != nil {
		return attendance.TrackingResponse{}, err
	}
	agg := aggregates[emp.ID]

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

// GetDepartmentsOverview implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) GetDepartmentsOverview(ctx context.Context, req analytics.OverviewRequest) (analytics.DepartmentsOverviewResponse, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return analytics.DepartmentsOverviewResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return analytics.DepartmentsOverviewResponse{}, err
	}

	year, month := resolveMonth(req.Month)

	employees, err := s.EmployeeRepository.ListActiveByCompany(ctx, companyID, nil)
	if err != nil {
		return analytics.DepartmentsOverviewResponse{}, err
	}

	departments, err := s.DepartmentRepository.ListByCompany(ctx, companyID)
	if err != nil {
		return analytics.DepartmentsOverviewResponse{}, err
	}
	resolver := department.NewResolver(departments)
	employees = filterByDepartment(employees, resolver, req.Department)

	aggregates, err := s.monthAggregates(ctx, companyID, employees, year, month)
	if err != nil {
		return analytics.DepartmentsOverviewResponse{}, err
	}

	type group struct {
		overview    analytics.DepartmentOverview
		rateSum     float64
		maxOvertime float64
	}
	groups := make(map[string]*group)

	for _, emp := range employees {
		name := resolver.Resolve(emp.Department)
		g, ok := groups[name]
		if !ok {
			g = &group{overview: analytics.DepartmentOverview{Department: name}}
			groups[name] = g
		}

		agg := aggregates[emp.ID]
		g.overview.Employees++
		g.overview.TotalWorkingDays += agg.WorkingDays
		g.overview.PresentDays += agg.Presents
		g.overview.AbsentDays += agg.Absences
		g.overview.LeaveDays += agg.LeaveDays
		g.overview.Undertimes += agg.Undertimes
		g.overview.TotalHoursLogged += agg.TotalHoursWorked
		g.overview.TotalOvertimeHours += agg.TotalOvertimeHours
		g.rateSum += agg.AttendancePercentage

		if agg.TotalOvertimeHours > g.maxOvertime {
			g.maxOvertime = agg.TotalOvertimeHours
			fullName := emp.FullName()
			g.overview.TopOvertime = analytics.TopOvertime{Name: &fullName, Hours: agg.TotalOvertimeHours}
		}
	}

	overviews := make([]analytics.DepartmentOverview, 0, len(groups))
	for _, g := range groups {
		if g.overview.Employees > 0 {
			g.overview.AttendanceRate = g.rateSum / float64(g.overview.Employees)
			g.overview.AverageOvertimeHours = g.overview.TotalOvertimeHours / float64(g.overview.Employees)
		}
		overviews = append(overviews, g.overview)
	}
	sort.Slice(overviews, func(i, j int) bool {
		return overviews[i].Department < overviews[j].Department
	})

	return analytics.DepartmentsOverviewResponse{
		Month:       fmt.Sprintf("%04d-%02d", year, month),
		Departments: overviews,
	}, nil
}

// companyMonthMetrics is one month's company-wide attendance and leave view.
type companyMonthMetrics struct {
	attendanceRate   float64
	leaveUtilization float64
	totalHours       float64
	totalOvertime    float64
	totalUndertime   float64
}

func (s *AnalyticsServiceImpl) companyMonth(ctx context.Context, companyID string, employees []employee.Employee, year int, month time.Month) (companyMonthMetrics, error) {
	var m companyMonthMetrics

	aggregates, err := s.monthAggregates(ctx, companyID, employees, year, month)
	if err != nil {
		return m, err
	}

	var rateSum float64
	var leaveDaysTaken, allottedDays float64
	for _, emp := range employees {
		agg := aggregates[emp.ID]
		rateSum += agg.AttendancePercentage
		m.totalHours += agg.TotalHoursWorked
		m.totalOvertime += agg.TotalOvertimeHours
		m.totalUndertime += agg.TotalUndertimeHours
		leaveDaysTaken += float64(agg.LeaveDays)
		allottedDays += emp.AnnualLeaveDays
	}

	if len(employees) > 0 {
		m.attendanceRate = rateSum / float64(len(employees))
	}
	if allottedDays > 0 {
		m.leaveUtilization = leaveDaysTaken / allottedDays * 100
	}

	return m, nil
}

// GetCompanyOverview implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) GetCompanyOverview(ctx context.Context) (analytics.CompanyOverviewResponse, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return analytics.CompanyOverviewResponse{}, err
	}

	employees, err := s.EmployeeRepository.ListActiveByCompany(ctx, companyID, nil)
	if err != nil {
		return analytics.CompanyOverviewResponse{}, err
	}

	now := time.Now().UTC()
	prevYear, prevMonth := timeutil.PreviousMonth(now.Year(), now.Month())
	monthStart, monthEnd := timeutil.MonthRange(now.Year(), now.Month())

	var (
		current, previous companyMonthMetrics
		avgWorkingHours   float64
		prevPayroll       float64
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		current, err = s.companyMonth(gCtx, companyID, employees, now.Year(), now.Month())
		return err
	})

	g.Go(func() error {
		var err error
		previous, err = s.companyMonth(gCtx, companyID, employees, prevYear, prevMonth)
		return err
	})

	g.Go(func() error {
		var err error
		avgWorkingHours, err = s.TimerLogRepository.AverageTotalHours(gCtx, companyID, monthStart, monthEnd)
		return err
	})

	g.Go(func() error {
		cost, _, err := s.SnapshotRepository.GetByYear(gCtx, companyID, now.Year()-1)
		if err != nil {
			return err
		}
		prevPayroll = cost
		return nil
	})

	if err := g.Wait(); err != nil {
		return analytics.CompanyOverviewResponse{}, err
	}

	var currentPayroll float64
	for _, emp := range employees {
		currentPayroll += emp.PayrollCost()
	}

	return analytics.CompanyOverviewResponse{
		ActiveEmployees:       len(employees),
		AverageAttendanceRate: current.attendanceRate,
		TotalHoursLogged:      current.totalHours,
		TotalOvertimeHours:    current.totalOvertime,
		TotalUndertimeHours:   current.totalUndertime,
		AverageWorkingHours:   avgWorkingHours,
		AttendanceTrend: analytics.RateTrend{
			Current:  current.attendanceRate,
			Previous: previous.attendanceRate,
			Trend:    analytics.SubtractiveTrend(current.attendanceRate, previous.attendanceRate),
		},
		LeaveUtilizationTrend: analytics.RateTrend{
			Current:  current.leaveUtilization,
			Previous: previous.leaveUtilization,
			Trend:    analytics.SubtractiveTrend(current.leaveUtilization, previous.leaveUtilization),
		},
		PayrollTrend: analytics.PayrollTrend{
			CurrentCost:  currentPayroll,
			PreviousCost: prevPayroll,
			TrendPercent: payroll.Trend(currentPayroll, prevPayroll),
		},
	}, nil
}

// ListEmployeesAttendance implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) ListEmployeesAttendance(ctx context.Context, req analytics.OverviewRequest) (analytics.EmployeesAttendanceResponse, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return analytics.EmployeesAttendanceResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return analytics.EmployeesAttendanceResponse{}, err
	}

	year, month := resolveMonth(req.Month)

	employees, err := s.EmployeeRepository.ListActiveByCompany(ctx, companyID, nil)
	if err != nil {
		return analytics.EmployeesAttendanceResponse{}, err
	}

	departments, err := s.DepartmentRepository.ListByCompany(ctx, companyID)
	if err != nil {
		return analytics.EmployeesAttendanceResponse{}, err
	}
	resolver := department.NewResolver(departments)
	employees = filterByDepartment(employees, resolver, req.Department)

	aggregates, err := s.monthAggregates(ctx, companyID, employees, year, month)
	if err != nil {
		return analytics.EmployeesAttendanceResponse{}, err
	}

	records := make([]analytics.EmployeeAttendanceRecord, 0, len(employees))
	for _, emp := range employees {
		agg := aggregates[emp.ID]
		records = append(records, analytics.EmployeeAttendanceRecord{
			EmployeeID:           emp.ID,
			FirstName:            emp.FirstName,
			LastName:             emp.LastName,
			Department:           resolver.Resolve(emp.Department),
			AttendancePercentage: agg.AttendancePercentage,
			OvertimeHours:        agg.TotalOvertimeHours,
			UndertimeHours:       agg.TotalUndertimeHours,
			Absences:             agg.Absences,
			TotalHoursLogged:     agg.TotalHoursWorked,
		})
	}

	return analytics.EmployeesAttendanceResponse{
		Month:     fmt.Sprintf("%04d-%02d", year, month),
		Employees: records,
	}, nil
}

// GetEmployeeMetrics implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) GetEmployeeMetrics(ctx context.Context, employeeID string, req attendance.PeriodRequest) (analytics.EmployeeMetricsResponse, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return analytics.EmployeeMetricsResponse{}, err
	}

	now := time.Now().UTC()
	if req.Month == 0 {
		req.Month = int(now.Month())
	}
	if req.Year == 0 {
		req.Year = now.Year()
	}
	if err := req.Validate(); err != nil {
		return analytics.EmployeeMetricsResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return analytics.EmployeeMetricsResponse{}, err
	}

	departments, err := s.DepartmentRepository.ListByCompany(ctx, companyID)
	if err != nil {
		return analytics.EmployeeMetricsResponse{}, err
	}
	resolver := department.NewResolver(departments)

	aggregates, err := s.monthAggregates(ctx, companyID, []employee.Employee{emp}, req.Year, time.Month(req.Month))
	if err != nil {
		return analytics.EmployeeMetricsResponse{}, err
	}
	agg := aggregates[emp.ID]

	return analytics.EmployeeMetricsResponse{
		EmployeeName: emp.FullName(),
		Department:   resolver.Resolve(emp.Department),
		Aggregate: attendance.PeriodAggregateResponse{
			EmployeeID:           emp.ID,
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
		},
	}, nil
}
