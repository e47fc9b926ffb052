// AngelaMos | 2026
// history.go

package event

import (
	"context"
	"fmt"

	"github.com/mkrzemien-software/homely-sub001/internal/core"
)

// HistoryRepository is append-only: rows are written at completion time and
// never updated or deleted afterwards.
type HistoryRepository interface {
	Append(ctx context.Context, db core.DBTX, h *History) error
	ListByHousehold(
		ctx context.Context,
		db core.DBTX,
		householdID string,
		page, pageSize int,
	) ([]History, int, error)
}

type historyRepository struct{}

func NewHistoryRepository() HistoryRepository {
	return &historyRepository{}
}

func (r *historyRepository) Append(
	ctx context.Context,
	db core.DBTX,
	h *History,
) error {
	query := `
		INSERT INTO event_history
			(id, event_id, task_id, household_id, task_name,
			 completion_date, completed_by, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	err := db.GetContext(ctx, &h.CreatedAt, query,
		h.ID,
		h.EventID,
		h.TaskID,
		h.HouseholdID,
		h.TaskName,
		h.CompletionDate,
		h.CompletedBy,
		h.Notes,
	)
	if err != nil {
		return fmt.Errorf("append event history: %w", err)
	}

	return nil
}

func (r *historyRepository) ListByHousehold(
	ctx context.Context,
	db core.DBTX,
	householdID string,
	page, pageSize int,
) ([]History, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM event_history WHERE household_id = $1`
	if err := db.GetContext(ctx, &total, countQuery, householdID); err != nil {
		return nil, 0, fmt.Errorf("count event history: %w", err)
	}

	query := `
		SELECT id, event_id, task_id, household_id, task_name,
		       completion_date, completed_by, notes, created_at
		FROM event_history
		WHERE household_id = $1
		ORDER BY completion_date DESC, created_at DESC
		LIMIT $2 OFFSET $3`

	var rows []History
	err := db.SelectContext(
		ctx, &rows, query,
		householdID, pageSize, (page-1)*pageSize,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list event history: %w", err)
	}

	return rows, total, nil
}
