package postgresql

import (
	"context"
	"fmt"

	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/timetracker-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type dailyRecordRepository struct {
	db *database.DB
}

const dailyRecordColumns = `
	id, company_id, employee_id, date, hours_worked, overtime_hours, status, created_at, updated_at
`

func scanDailyRecord(row pgx.Row) (attendance.DailyRecord, error) {
	var rec attendance.DailyRecord
	err := row.Scan(
		&rec.ID, &rec.CompanyID, &rec.EmployeeID, &rec.Date,
		&rec.HoursWorked, &rec.OvertimeHours, &rec.Status,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// Upsert implements attendance.DailyRecordRepository.
func (r *dailyRecordRepository) Upsert(ctx context.Context, record attendance.DailyRecord) (attendance.DailyRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			id, company_id, employee_id, date, hours_worked, overtime_hours, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (company_id, employee_id, date) DO UPDATE
		SET hours_worked = EXCLUDED.hours_worked,
		    overtime_hours = EXCLUDED.overtime_hours,
		    status = EXCLUDED.status,
		    updated_at = NOW()
		RETURNING ` + dailyRecordColumns + `
	`

	saved, err := scanDailyRecord(q.QueryRow(ctx, query,
		record.ID, record.CompanyID, record.EmployeeID, record.Date,
		record.HoursWorked, record.OvertimeHours, record.Status,
	))
	if err != nil {
		return attendance.DailyRecord{}, fmt.Errorf("failed to upsert daily attendance record: %w", err)
	}

	return saved, nil
}

func NewDailyRecordRepository(db *database.DB) attendance.DailyRecordRepository {
	return &dailyRecordRepository{db: db}
}
