package postgresql

import (
	"context"
	"fmt"

	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/department"
	"github.com/clockwise-hr/timetracker-backend-go/internal/pkg/database"
)

type departmentRepository struct {
	db *database.DB
}

// ListByCompany implements department.DepartmentRepository.
func (r *departmentRepository) ListByCompany(ctx context.Context, companyID string) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name
		FROM departments
		WHERE company_id = $1
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	var departments []department.Department
	for rows.Next() {
		var dept department.Department
		if err := rows.Scan(&dept.ID, &dept.CompanyID, &dept.Name); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, dept)
	}

	return departments, nil
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepository{db: db}
}
