package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/analytics"
	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/department"
	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/employee"
	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/leave"
	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/payroll"
	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/timer"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCompanyID = "11111111-1111-1111-1111-111111111111"

func adminContext(t *testing.T) context.Context {
	t.Helper()

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"company_id": testCompanyID,
		"role":       "admin",
		"type":       "access",
	})
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

type fakeTimerLogRepository struct {
	logs    []timer.TimerLog
	average float64
}

func (f *fakeTimerLogRepository) CreateOpen(ctx context.Context, log timer.TimerLog) (timer.TimerLog, error) {
	return log, nil
}

func (f *fakeTimerLogRepository) GetOpen(ctx context.Context, employeeID, companyID string) (timer.TimerLog, error) {
	return timer.TimerLog{}, timer.ErrNoActiveTimer
}

func (f *fakeTimerLogRepository) AppendPause(ctx context.Context, employeeID, companyID string, at time.Time) (timer.TimerLog, error) {
	return timer.TimerLog{}, timer.ErrNoActiveTimer
}

func (f *fakeTimerLogRepository) ClosePause(ctx context.Context, employeeID, companyID string, at time.Time) (timer.TimerLog, error) {
	return timer.TimerLog{}, timer.ErrNoActiveTimer
}

func (f *fakeTimerLogRepository) Close(ctx context.Context, id, companyID string, endTime time.Time, totalHours float64, pauses timer.PausedIntervals) (timer.TimerLog, error) {
	return timer.TimerLog{}, timer.ErrNoActiveTimer
}

func (f *fakeTimerLogRepository) ListByDateRange(ctx context.Context, employeeID, companyID string, start, end time.Time) ([]timer.TimerLog, error) {
	return f.logs, nil
}

func (f *fakeTimerLogRepository) ListByCompanyAndDateRange(ctx context.Context, companyID string, start, end time.Time) ([]timer.TimerLog, error) {
	var out []timer.TimerLog
	for _, log := range f.logs {
		if !log.Date.Before(start) && !log.Date.After(end) {
			out = append(out, log)
		}
	}
	return out, nil
}

func (f *fakeTimerLogRepository) ListOpenDatedBefore(ctx context.Context, cutoff time.Time) ([]timer.TimerLog, error) {
	return nil, nil
}

func (f *fakeTimerLogRepository) AverageTotalHours(ctx context.Context, companyID string, start, end time.Time) (float64, error) {
	return f.average, nil
}

type fakeEmployeeRepository struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepository) GetByID(ctx context.Context, id, companyID string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepository) ListActiveByCompany(ctx context.Context, companyID string, dept *string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if emp.Active() {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepository) ListSuspendedDue(ctx context.Context, now time.Time) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) Reactivate(ctx context.Context, id string) error {
	return nil
}

type fakeLeaveRepository struct {
	leaves []leave.Leave
}

func (f *fakeLeaveRepository) ListApprovedOverlapping(ctx context.Context, employeeID, companyID string, start, end time.Time) ([]leave.Leave, error) {
	return f.leaves, nil
}

func (f *fakeLeaveRepository) ListApprovedOverlappingByCompany(ctx context.Context, companyID string, start, end time.Time) ([]leave.Leave, error) {
	return f.leaves, nil
}

type fakeDepartmentRepository struct {
	departments []department.Department
}

func (f *fakeDepartmentRepository) ListByCompany(ctx context.Context, companyID string) ([]department.Department, error) {
	return f.departments, nil
}

type fakeSnapshotRepository struct {
	snapshots map[int]float64
}

func (f *fakeSnapshotRepository) Upsert(ctx context.Context, snapshot payroll.Snapshot) error {
	if f.snapshots == nil {
		f.snapshots = make(map[int]float64)
	}
	f.snapshots[snapshot.Year] = snapshot.TotalPayrollCost
	return nil
}

func (f *fakeSnapshotRepository) GetByYear(ctx context.Context, companyID string, year int) (float64, bool, error) {
	cost, ok := f.snapshots[year]
	return cost, ok, nil
}

func (f *fakeSnapshotRepository) SnapshotAll(ctx context.Context, year int) (int64, error) {
	return 0, nil
}

func deptPtr(s string) *string { return &s }

func TestGetCompanyOverviewEmptyCompany(t *testing.T) {
	ctx := adminContext(t)

	svc := NewAnalyticsService(
		nil,
		&fakeTimerLogRepository{},
		&fakeEmployeeRepository{},
		&fakeLeaveRepository{},
		&fakeDepartmentRepository{},
		&fakeSnapshotRepository{},
	)

	res, err := svc.GetCompanyOverview(ctx)
	require.NoError(t, err)

	assert.Equal(t, 0, res.ActiveEmployees)
	assert.Equal(t, 0.0, res.AverageAttendanceRate)
	assert.Equal(t, 0.0, res.TotalHoursLogged)
	assert.Equal(t, 0.0, res.AttendanceTrend.Trend)
	assert.Equal(t, 0.0, res.LeaveUtilizationTrend.Trend)
	// No payroll baseline reports a flat 100 percent
	assert.Equal(t, 100.0, res.PayrollTrend.TrendPercent)
}

func TestGetCompanyOverviewPayrollTrend(t *testing.T) {
	ctx := adminContext(t)

	employees := []employee.Employee{
		{
			ID:               "emp-1",
			CompanyID:        testCompanyID,
			EmploymentStatus: employee.StatusActive,
			WorkingHours:     8,
			WeeklyWorkdays:   5,
			BaseSalary:       100000,
			HousingAllowance: 10000,
		},
	}

	snapshotRepo := &fakeSnapshotRepository{snapshots: map[int]float64{
		time.Now().UTC().Year() - 1: 100000,
	}}

	svc := NewAnalyticsService(
		nil,
		&fakeTimerLogRepository{},
		&fakeEmployeeRepository{employees: employees},
		&fakeLeaveRepository{},
		&fakeDepartmentRepository{},
		snapshotRepo,
	)

	res, err := svc.GetCompanyOverview(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, res.ActiveEmployees)
	assert.InDelta(t, 110000.0, res.PayrollTrend.CurrentCost, 1e-9)
	assert.InDelta(t, 100000.0, res.PayrollTrend.PreviousCost, 1e-9)
	assert.InDelta(t, 110.0, res.PayrollTrend.TrendPercent, 1e-9)
}

func TestGetDepartmentsOverviewGrouping(t *testing.T) {
	ctx := adminContext(t)

	employees := []employee.Employee{
		{ID: "emp-1", EmploymentStatus: employee.StatusActive, WorkingHours: 8, WeeklyWorkdays: 5, Department: deptPtr("d1")},
		{ID: "emp-2", EmploymentStatus: employee.StatusActive, WorkingHours: 8, WeeklyWorkdays: 5, Department: deptPtr("Engineering")},
		{ID: "emp-3", EmploymentStatus: employee.StatusActive, WorkingHours: 8, WeeklyWorkdays: 5, Department: nil},
	}

	svc := NewAnalyticsService(
		nil,
		&fakeTimerLogRepository{},
		&fakeEmployeeRepository{employees: employees},
		&fakeLeaveRepository{},
		&fakeDepartmentRepository{departments: []department.Department{
			{ID: "d1", CompanyID: testCompanyID, Name: "Engineering"},
		}},
		&fakeSnapshotRepository{},
	)

	res, err := svc.GetDepartmentsOverview(ctx, analytics.OverviewRequest{Month: "2023-03"})
	require.NoError(t, err)

	assert.Equal(t, "2023-03", res.Month)
	require.Len(t, res.Departments, 2)

	// Sorted by name: Engineering before Unknown Department
	assert.Equal(t, "Engineering", res.Departments[0].Department)
	assert.Equal(t, 2, res.Departments[0].Employees)
	assert.Equal(t, department.UnknownDepartment, res.Departments[1].Department)
	assert.Equal(t, 1, res.Departments[1].Employees)
}

func TestGetDepartmentsOverviewDepartmentFilter(t *testing.T) {
	ctx := adminContext(t)

	employees := []employee.Employee{
		{ID: "emp-1", EmploymentStatus: employee.StatusActive, WorkingHours: 8, WeeklyWorkdays: 5, Department: deptPtr("d1")},
		{ID: "emp-2", EmploymentStatus: employee.StatusActive, WorkingHours: 8, WeeklyWorkdays: 5, Department: deptPtr("Sales")},
	}

	svc := NewAnalyticsService(
		nil,
		&fakeTimerLogRepository{},
		&fakeEmployeeRepository{employees: employees},
		&fakeLeaveRepository{},
		&fakeDepartmentRepository{departments: []department.Department{
			{ID: "d1", CompanyID: testCompanyID, Name: "Engineering"},
		}},
		&fakeSnapshotRepository{},
	)

	res, err := svc.GetDepartmentsOverview(ctx, analytics.OverviewRequest{Month: "2023-03", Department: "Engineering"})
	require.NoError(t, err)

	require.Len(t, res.Departments, 1)
	assert.Equal(t, "Engineering", res.Departments[0].Department)
	assert.Equal(t, 1, res.Departments[0].Employees)
}

func TestListEmployeesAttendanceDepartmentFilter(t *testing.T) {
	ctx := adminContext(t)

	employees := []employee.Employee{
		{ID: "emp-1", FirstName: "Ada", LastName: "Lovelace", EmploymentStatus: employee.StatusActive, WorkingHours: 8, WeeklyWorkdays: 5, Department: deptPtr("d1")},
		{ID: "emp-2", FirstName: "Grace", LastName: "Hopper", EmploymentStatus: employee.StatusActive, WorkingHours: 8, WeeklyWorkdays: 5, Department: deptPtr("Sales")},
	}

	svc := NewAnalyticsService(
		nil,
		&fakeTimerLogRepository{},
		&fakeEmployeeRepository{employees: employees},
		&fakeLeaveRepository{},
		&fakeDepartmentRepository{departments: []department.Department{
			{ID: "d1", CompanyID: testCompanyID, Name: "Engineering"},
		}},
		&fakeSnapshotRepository{},
	)

	res, err := svc.ListEmployeesAttendance(ctx, analytics.OverviewRequest{Month: "2023-03", Department: "Engineering"})
	require.NoError(t, err)

	require.Len(t, res.Employees, 1)
	assert.Equal(t, "emp-1", res.Employees[0].EmployeeID)
	assert.Equal(t, "Engineering", res.Employees[0].Department)
}
