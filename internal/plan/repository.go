// AngelaMos | 2026
// repository.go

package plan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkrzemien-software/homely-sub001/internal/core"
)

// Repository methods take the connection or transaction handle explicitly;
// quota reads and the guarded write must share one transaction.
type Repository interface {
	GetPlanType(ctx context.Context, db core.DBTX, id int) (*PlanType, error)
	GetPlanTypeByName(
		ctx context.Context,
		db core.DBTX,
		name string,
	) (*PlanType, error)
	ListPlanTypes(ctx context.Context, db core.DBTX) ([]PlanType, error)
	PlanForHousehold(
		ctx context.Context,
		db core.DBTX,
		householdID string,
	) (*HouseholdPlan, error)
	CountActive(
		ctx context.Context,
		db core.DBTX,
		householdID, usageType string,
	) (int, error)
	UpsertUsage(
		ctx context.Context,
		db core.DBTX,
		householdID, usageType string,
		delta int,
		maxValue *int,
	) error
	TodayUsage(
		ctx context.Context,
		db core.DBTX,
		householdID string,
	) ([]Usage, error)
}

type repository struct{}

func NewRepository() Repository {
	return &repository{}
}

func (r *repository) GetPlanType(
	ctx context.Context,
	db core.DBTX,
	id int,
) (*PlanType, error) {
	query := `
		SELECT id, name, max_household_members, max_tasks,
		       price_monthly, price_yearly, is_active, created_at
		FROM plan_types
		WHERE id = $1`

	var planType PlanType
	err := db.GetContext(ctx, &planType, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get plan type: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get plan type: %w", err)
	}

	return &planType, nil
}

func (r *repository) GetPlanTypeByName(
	ctx context.Context,
	db core.DBTX,
	name string,
) (*PlanType, error) {
	query := `
		SELECT id, name, max_household_members, max_tasks,
		       price_monthly, price_yearly, is_active, created_at
		FROM plan_types
		WHERE name = $1 AND is_active`

	var planType PlanType
	err := db.GetContext(ctx, &planType, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get plan type %q: %w", name, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get plan type %q: %w", name, err)
	}

	return &planType, nil
}

func (r *repository) ListPlanTypes(
	ctx context.Context,
	db core.DBTX,
) ([]PlanType, error) {
	query := `
		SELECT id, name, max_household_members, max_tasks,
		       price_monthly, price_yearly, is_active, created_at
		FROM plan_types
		WHERE is_active
		ORDER BY id`

	var planTypes []PlanType
	if err := db.SelectContext(ctx, &planTypes, query); err != nil {
		return nil, fmt.Errorf("list plan types: %w", err)
	}

	return planTypes, nil
}

// PlanForHousehold locks the household row for the remainder of the
// transaction, serializing concurrent quota-gated creates per household.
func (r *repository) PlanForHousehold(
	ctx context.Context,
	db core.DBTX,
	householdID string,
) (*HouseholdPlan, error) {
	query := `
		SELECT pt.id AS plan_type_id, pt.max_household_members, pt.max_tasks
		FROM households h
		JOIN plan_types pt ON pt.id = h.plan_type_id
		WHERE h.id = $1 AND h.deleted_at IS NULL
		FOR UPDATE OF h`

	var householdPlan HouseholdPlan
	err := db.GetContext(ctx, &householdPlan, query, householdID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("plan for household: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("plan for household: %w", err)
	}

	return &householdPlan, nil
}

func (r *repository) CountActive(
	ctx context.Context,
	db core.DBTX,
	householdID, usageType string,
) (int, error) {
	var query string
	switch usageType {
	case UsageTypeTasks:
		query = `
			SELECT COUNT(*) FROM tasks
			WHERE household_id = $1 AND deleted_at IS NULL AND is_active`
	case UsageTypeMembers:
		query = `
			SELECT COUNT(*) FROM household_members
			WHERE household_id = $1 AND deleted_at IS NULL`
	case UsageTypeEvents:
		query = `
			SELECT COUNT(*) FROM events
			WHERE household_id = $1 AND deleted_at IS NULL`
	default:
		return 0, fmt.Errorf(
			"count active: unknown usage type %q: %w",
			usageType,
			core.ErrInvalidInput,
		)
	}

	var count int
	if err := db.GetContext(ctx, &count, query, householdID); err != nil {
		return 0, fmt.Errorf("count active %s: %w", usageType, err)
	}

	return count, nil
}

func (r *repository) UpsertUsage(
	ctx context.Context,
	db core.DBTX,
	householdID, usageType string,
	delta int,
	maxValue *int,
) error {
	query := `
		INSERT INTO plan_usage
			(id, household_id, usage_type, current_value, max_value, usage_date)
		VALUES ($1, $2, $3, GREATEST($4, 0), $5, CURRENT_DATE)
		ON CONFLICT ON CONSTRAINT plan_usage_daily_uq
		DO UPDATE SET
			current_value = GREATEST(plan_usage.current_value + $4, 0),
			max_value = EXCLUDED.max_value,
			updated_at = NOW()`

	_, err := db.ExecContext(ctx, query,
		uuid.New().String(),
		householdID,
		usageType,
		delta,
		maxValue,
	)
	if err != nil {
		return fmt.Errorf("upsert plan usage: %w", err)
	}

	return nil
}

func (r *repository) TodayUsage(
	ctx context.Context,
	db core.DBTX,
	householdID string,
) ([]Usage, error) {
	query := `
		SELECT id, household_id, usage_type, current_value, max_value,
		       usage_date, created_at, updated_at
		FROM plan_usage
		WHERE household_id = $1 AND usage_date = CURRENT_DATE
		ORDER BY usage_type`

	var usage []Usage
	if err := db.SelectContext(ctx, &usage, query, householdID); err != nil {
		return nil, fmt.Errorf("today usage: %w", err)
	}

	return usage, nil
}
