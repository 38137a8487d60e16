package attendance

import (
	"context"
)

type DailyRecordRepository interface {
	// Upsert writes the record for (employee, date), replacing a previous
	// computation for the same day.
	Upsert(ctx context.Context, record DailyRecord) (DailyRecord, error)
}
