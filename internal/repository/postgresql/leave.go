package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/leave"
	"github.com/clockwise-hr/timetracker-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRepository struct {
	db *database.DB
}

const leaveColumns = `
	id, company_id, employee_id, leave_type, status,
	start_date, end_date, created_at
`

func scanLeave(row pgx.Row) (leave.Leave, error) {
	var lv leave.Leave
	err := row.Scan(
		&lv.ID, &lv.CompanyID, &lv.EmployeeID, &lv.LeaveType, &lv.Status,
		&lv.StartDate, &lv.EndDate, &lv.CreatedAt,
	)
	return lv, err
}

func collectLeaves(rows pgx.Rows) ([]leave.Leave, error) {
	defer rows.Close()

	var leaves []leave.Leave
	for rows.Next() {
		lv, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		leaves = append(leaves, lv)
	}

	return leaves, nil
}

// ListApprovedOverlapping implements leave.LeaveRepository.
func (r *leaveRepository) ListApprovedOverlapping(ctx context.Context, employeeID string, companyID string, start time.Time, end time.Time) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leaves
		WHERE employee_id = $1 AND company_id = $2
		  AND status = 'approved'
		  AND start_date <= $4 AND end_date >= $3
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query approved leaves: %w", err)
	}

	return collectLeaves(rows)
}

// ListApprovedOverlappingByCompany implements leave.LeaveRepository.
func (r *leaveRepository) ListApprovedOverlappingByCompany(ctx context.Context, companyID string, start time.Time, end time.Time) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leaves
		WHERE company_id = $1
		  AND status = 'approved'
		  AND start_date <= $3 AND end_date >= $2
		ORDER BY employee_id, start_date
	`

	rows, err := q.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query company approved leaves: %w", err)
	}

	return collectLeaves(rows)
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}
