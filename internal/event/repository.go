// AngelaMos | 2026
// repository.go

package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mkrzemien-software/homely-sub001/internal/core"
	"github.com/mkrzemien-software/homely-sub001/internal/task"
)

// Listings sort by due date, then by priority severity (high first), then
// id for a stable order. The CASE ranks are generated from
// task.PriorityRank so the SQL tie-break cannot drift from it.
var severityOrder = fmt.Sprintf(`
	due_date ASC,
	CASE priority WHEN '%s' THEN %d WHEN '%s' THEN %d ELSE %d END ASC,
	id ASC`,
	task.PriorityHigh, task.PriorityRank(task.PriorityHigh),
	task.PriorityMedium, task.PriorityRank(task.PriorityMedium),
	task.PriorityRank(task.PriorityLow))

const eventColumns = `
	id, task_id, household_id, assigned_to, due_date, status, priority,
	completion_date, completion_notes, postponed_from_date, postpone_reason,
	created_by, created_at, updated_at, deleted_at`

type Repository interface {
	Create(ctx context.Context, db core.DBTX, e *Event) error
	GetByID(
		ctx context.Context,
		db core.DBTX,
		householdID, id string,
	) (*Event, error)
	GetByIDForUpdate(
		ctx context.Context,
		db core.DBTX,
		householdID, id string,
	) (*Event, error)
	UpdateStatus(ctx context.Context, db core.DBTX, e *Event) error
	List(
		ctx context.Context,
		db core.DBTX,
		householdID string,
		params ListEventsParams,
	) ([]Event, int, error)
	GetOverdueEvents(
		ctx context.Context,
		db core.DBTX,
		householdID string,
		today time.Time,
	) ([]Event, error)
	GetEventsInRange(
		ctx context.Context,
		db core.DBTX,
		householdID string,
		from, to time.Time,
	) ([]Event, error)
	SoftDelete(
		ctx context.Context,
		db core.DBTX,
		householdID, id string,
	) error
}

type repository struct{}

func NewRepository() Repository {
	return &repository{}
}

func (r *repository) Create(
	ctx context.Context,
	db core.DBTX,
	e *Event,
) error {
	query := `
		INSERT INTO events
			(id, task_id, household_id, assigned_to, due_date, status,
			 priority, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := db.GetContext(ctx, e, query,
		e.ID,
		e.TaskID,
		e.HouseholdID,
		e.AssignedTo,
		e.DueDate,
		e.Status,
		e.Priority,
		e.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	db core.DBTX,
	householdID, id string,
) (*Event, error) {
	return r.get(ctx, db, householdID, id, false)
}

// GetByIDForUpdate locks the event row so concurrent lifecycle actions on
// the same occurrence serialize inside their transactions.
func (r *repository) GetByIDForUpdate(
	ctx context.Context,
	db core.DBTX,
	householdID, id string,
) (*Event, error) {
	return r.get(ctx, db, householdID, id, true)
}

func (r *repository) get(
	ctx context.Context,
	db core.DBTX,
	householdID, id string,
	forUpdate bool,
) (*Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE id = $1 AND household_id = $2 AND deleted_at IS NULL`,
		eventColumns)

	if forUpdate {
		query += " FOR UPDATE"
	}

	var e Event
	err := db.GetContext(ctx, &e, query, id, householdID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get event: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	return &e, nil
}

// UpdateStatus writes the lifecycle fields of a loaded event. The due date
// column is only moved together with postponed_from_date, preserving the
// prior date; it is never silently overwritten.
func (r *repository) UpdateStatus(
	ctx context.Context,
	db core.DBTX,
	e *Event,
) error {
	query := `
		UPDATE events
		SET status = $3, due_date = $4, completion_date = $5,
		    completion_notes = $6, postponed_from_date = $7,
		    postpone_reason = $8, updated_at = NOW()
		WHERE id = $1 AND household_id = $2 AND deleted_at IS NULL
		RETURNING updated_at`

	err := db.GetContext(ctx, &e.UpdatedAt, query,
		e.ID,
		e.HouseholdID,
		e.Status,
		e.DueDate,
		e.CompletionDate,
		e.CompletionNotes,
		e.PostponedFromDate,
		e.PostponeReason,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update event: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	db core.DBTX,
	householdID string,
	params ListEventsParams,
) ([]Event, int, error) {
	params.Normalize()

	conditions := []string{"household_id = $1", "deleted_at IS NULL"}
	args := []any{householdID}
	argIdx := 2

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	if params.AssignedTo != "" {
		conditions = append(conditions, fmt.Sprintf("assigned_to = $%d", argIdx))
		args = append(args, params.AssignedTo)
		argIdx++
	}

	if params.From != nil {
		conditions = append(conditions, fmt.Sprintf("due_date >= $%d", argIdx))
		args = append(args, *params.From)
		argIdx++
	}

	if params.To != nil {
		conditions = append(conditions, fmt.Sprintf("due_date <= $%d", argIdx))
		args = append(args, *params.To)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM events WHERE %s",
		whereClause,
	)
	var total int
	if err := db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		eventColumns, whereClause, severityOrder, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var events []Event
	if err := db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}

	return events, total, nil
}

func (r *repository) GetOverdueEvents(
	ctx context.Context,
	db core.DBTX,
	householdID string,
	today time.Time,
) ([]Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE household_id = $1 AND deleted_at IS NULL
		  AND status IN ('pending', 'postponed')
		  AND due_date < $2
		ORDER BY %s`,
		eventColumns, severityOrder)

	var events []Event
	if err := db.SelectContext(ctx, &events, query, householdID, today); err != nil {
		return nil, fmt.Errorf("get overdue events: %w", err)
	}

	return events, nil
}

func (r *repository) GetEventsInRange(
	ctx context.Context,
	db core.DBTX,
	householdID string,
	from, to time.Time,
) ([]Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE household_id = $1 AND deleted_at IS NULL
		  AND status IN ('pending', 'postponed')
		  AND due_date >= $2 AND due_date <= $3
		ORDER BY %s`,
		eventColumns, severityOrder)

	var events []Event
	err := db.SelectContext(ctx, &events, query, householdID, from, to)
	if err != nil {
		return nil, fmt.Errorf("get events in range: %w", err)
	}

	return events, nil
}

func (r *repository) SoftDelete(
	ctx context.Context,
	db core.DBTX,
	householdID, id string,
) error {
	query := `
		UPDATE events
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND household_id = $2 AND deleted_at IS NULL`

	result, err := db.ExecContext(ctx, query, id, householdID)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete event: %w", core.ErrNotFound)
	}

	return nil
}
