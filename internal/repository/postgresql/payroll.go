package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/payroll"
	"github.com/clockwise-hr/timetracker-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollSnapshotRepository struct {
	db *database.DB
}

// Upsert implements payroll.SnapshotRepository.
func (r *payrollSnapshotRepository) Upsert(ctx context.Context, snapshot payroll.Snapshot) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_snapshots (company_id, year, total_payroll_cost)
		VALUES ($1, $2, $3)
		ON CONFLICT (company_id, year) DO UPDATE
		SET total_payroll_cost = EXCLUDED.total_payroll_cost,
		    updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, snapshot.CompanyID, snapshot.Year, snapshot.TotalPayrollCost); err != nil {
		return fmt.Errorf("failed to upsert payroll snapshot: %w", err)
	}

	return nil
}

// GetByYear implements payroll.SnapshotRepository.
func (r *payrollSnapshotRepository) GetByYear(ctx context.Context, companyID string, year int) (float64, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT total_payroll_cost
		FROM payroll_snapshots
		WHERE company_id = $1 AND year = $2
	`

	var total float64
	err := q.QueryRow(ctx, query, companyID, year).Scan(&total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get payroll snapshot: %w", err)
	}

	return total, true, nil
}

// SnapshotAll implements payroll.SnapshotRepository.
func (r *payrollSnapshotRepository) SnapshotAll(ctx context.Context, year int) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_snapshots (company_id, year, total_payroll_cost)
		SELECT company_id, $1,
		       SUM(base_salary + overtime_allowance + housing_allowance +
		           transport_allowance + medical_allowance + company_match)
		FROM employees
		WHERE employment_status = 'active'
		GROUP BY company_id
		ON CONFLICT (company_id, year) DO UPDATE
		SET total_payroll_cost = EXCLUDED.total_payroll_cost,
		    updated_at = NOW()
	`

	commandTag, err := q.Exec(ctx, query, year)
	if err != nil {
		return 0, fmt.Errorf("failed to snapshot payroll costs: %w", err)
	}

	return commandTag.RowsAffected(), nil
}

func NewPayrollSnapshotRepository(db *database.DB) payroll.SnapshotRepository {
	return &payrollSnapshotRepository{db: db}
}
