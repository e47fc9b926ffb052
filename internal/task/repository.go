// AngelaMos | 2026
// repository.go

package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mkrzemien-software/homely-sub001/internal/core"
)

// Repository methods take the connection or transaction handle explicitly
// and are always scoped by household id. Reads exclude soft-deleted rows.
type Repository interface {
	Create(ctx context.Context, db core.DBTX, t *Task) error
	GetByID(
		ctx context.Context,
		db core.DBTX,
		householdID, id string,
	) (*Task, error)
	List(
		ctx context.Context,
		db core.DBTX,
		householdID string,
		params ListTasksParams,
	) ([]Task, int, error)
	Update(ctx context.Context, db core.DBTX, t *Task) error
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
	t *Task,
) error {
	query := `
		INSERT INTO tasks
			(id, household_id, category_id, name, description,
			 interval_years, interval_months, interval_weeks, interval_days,
			 priority, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	err := db.GetContext(ctx, t, query,
		t.ID,
		t.HouseholdID,
		t.CategoryID,
		t.Name,
		t.Description,
		t.Years,
		t.Months,
		t.Weeks,
		t.Days,
		t.Priority,
		t.IsActive,
		t.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	db core.DBTX,
	householdID, id string,
) (*Task, error) {
	query := `
		SELECT id, household_id, category_id, name, description,
		       interval_years, interval_months, interval_weeks, interval_days,
		       priority, is_active, created_by, created_at, updated_at, deleted_at
		FROM tasks
		WHERE id = $1 AND household_id = $2 AND deleted_at IS NULL`

	var t Task
	err := db.GetContext(ctx, &t, query, id, householdID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get task: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}

	return &t, nil
}

func (r *repository) List(
	ctx context.Context,
	db core.DBTX,
	householdID string,
	params ListTasksParams,
) ([]Task, int, error) {
	params.Normalize()

	conditions := []string{"household_id = $1", "deleted_at IS NULL"}
	args := []any{householdID}
	argIdx := 2

	if params.CategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", argIdx))
		args = append(args, *params.CategoryID)
		argIdx++
	}

	if params.Priority != "" {
		conditions = append(conditions, fmt.Sprintf("priority = $%d", argIdx))
		args = append(args, params.Priority)
		argIdx++
	}

	if params.ActiveOnly {
		conditions = append(conditions, "is_active")
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM tasks WHERE %s",
		whereClause,
	)
	var total int
	if err := db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, household_id, category_id, name, description,
		       interval_years, interval_months, interval_weeks, interval_days,
		       priority, is_active, created_by, created_at, updated_at, deleted_at
		FROM tasks
		WHERE %s
		ORDER BY name ASC, id ASC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var tasks []Task
	if err := db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, total, nil
}

func (r *repository) Update(
	ctx context.Context,
	db core.DBTX,
	t *Task,
) error {
	query := `
		UPDATE tasks
		SET category_id = $3, name = $4, description = $5, priority = $6,
		    is_active = $7, updated_at = NOW()
		WHERE id = $1 AND household_id = $2 AND deleted_at IS NULL
		RETURNING updated_at`

	err := db.GetContext(ctx, &t.UpdatedAt, query,
		t.ID,
		t.HouseholdID,
		t.CategoryID,
		t.Name,
		t.Description,
		t.Priority,
		t.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update task: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	return nil
}

func (r *repository) SoftDelete(
	ctx context.Context,
	db core.DBTX,
	householdID, id string,
) error {
	query := `
		UPDATE tasks
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND household_id = $2 AND deleted_at IS NULL`

	result, err := db.ExecContext(ctx, query, id, householdID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete task: %w", core.ErrNotFound)
	}

	return nil
}
