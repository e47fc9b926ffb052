// AngelaMos | 2026
// repository.go

package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkrzemien-software/homely-sub001/internal/core"
)

type Repository interface {
	ListTypes(ctx context.Context, db core.DBTX) ([]CategoryType, error)
	Create(ctx context.Context, db core.DBTX, c *Category) error
	GetByID(
		ctx context.Context,
		db core.DBTX,
		householdID string,
		id int,
	) (*Category, error)
	List(
		ctx context.Context,
		db core.DBTX,
		householdID string,
	) ([]Category, error)
	Update(ctx context.Context, db core.DBTX, c *Category) error
	SoftDelete(
		ctx context.Context,
		db core.DBTX,
		householdID string,
		id int,
	) error
}

type repository struct{}

func NewRepository() Repository {
	return &repository{}
}

func (r *repository) ListTypes(
	ctx context.Context,
	db core.DBTX,
) ([]CategoryType, error) {
	query := `
		SELECT id, name, sort_order
		FROM category_types
		ORDER BY sort_order ASC, id ASC`

	var types []CategoryType
	if err := db.SelectContext(ctx, &types, query); err != nil {
		return nil, fmt.Errorf("list category types: %w", err)
	}

	return types, nil
}

func (r *repository) Create(
	ctx context.Context,
	db core.DBTX,
	c *Category,
) error {
	query := `
		INSERT INTO categories
			(household_id, category_type_id, name, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := db.GetContext(ctx, c, query,
		c.HouseholdID,
		c.CategoryTypeID,
		c.Name,
		c.SortOrder,
	)
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("create category: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create category: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	db core.DBTX,
	householdID string,
	id int,
) (*Category, error) {
	query := `
		SELECT id, household_id, category_type_id, name, sort_order,
		       created_at, updated_at, deleted_at
		FROM categories
		WHERE id = $1 AND household_id = $2 AND deleted_at IS NULL`

	var c Category
	err := db.GetContext(ctx, &c, query, id, householdID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get category: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}

	return &c, nil
}

func (r *repository) List(
	ctx context.Context,
	db core.DBTX,
	householdID string,
) ([]Category, error) {
	query := `
		SELECT id, household_id, category_type_id, name, sort_order,
		       created_at, updated_at, deleted_at
		FROM categories
		WHERE household_id = $1 AND deleted_at IS NULL
		ORDER BY category_type_id ASC, sort_order ASC, name ASC`

	var categories []Category
	if err := db.SelectContext(ctx, &categories, query, householdID); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return categories, nil
}

func (r *repository) Update(
	ctx context.Context,
	db core.DBTX,
	c *Category,
) error {
	query := `
		UPDATE categories
		SET name = $3, sort_order = $4, updated_at = NOW()
		WHERE id = $1 AND household_id = $2 AND deleted_at IS NULL
		RETURNING updated_at`

	err := db.GetContext(ctx, &c.UpdatedAt, query,
		c.ID,
		c.HouseholdID,
		c.Name,
		c.SortOrder,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update category: %w", core.ErrNotFound)
	}
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("update category: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update category: %w", err)
	}

	return nil
}

func (r *repository) SoftDelete(
	ctx context.Context,
	db core.DBTX,
	householdID string,
	id int,
) error {
	query := `
		UPDATE categories
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND household_id = $2 AND deleted_at IS NULL`

	result, err := db.ExecContext(ctx, query, id, householdID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete category: %w", core.ErrNotFound)
	}

	return nil
}
