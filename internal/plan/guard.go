// AngelaMos | 2026
// guard.go

package plan

import (
	"context"
	"fmt"

	"github.com/mkrzemien-software/homely-sub001/internal/core"
	"github.com/mkrzemien-software/homely-sub001/internal/metrics"
)

// Guard gates entity creation against the owning household's plan limits.
// Both CheckLimit and RecordUsage must run on the same transaction handle as
// the guarded write; PlanForHousehold takes a row lock on the household so
// two concurrent creates cannot both pass the check before either commits.
type Guard struct {
	repo Repository
}

func NewGuard(repo Repository) *Guard {
	return &Guard{repo: repo}
}

// CheckLimit returns a QuotaExceeded error when the household's current
// count of usageType entities has reached the plan cap. A nil cap means
// unlimited and always passes.
func (g *Guard) CheckLimit(
	ctx context.Context,
	db core.DBTX,
	householdID, usageType string,
) error {
	householdPlan, err := g.repo.PlanForHousehold(ctx, db, householdID)
	if err != nil {
		return err
	}

	limit := householdPlan.LimitFor(usageType)
	if limit == nil {
		return nil
	}

	current, err := g.repo.CountActive(ctx, db, householdID, usageType)
	if err != nil {
		return err
	}

	if current >= *limit {
		metrics.ObserveQuotaDenial(usageType)
		return fmt.Errorf(
			"check limit %s: %w",
			usageType,
			core.QuotaExceededError(usageType, *limit),
		)
	}

	return nil
}

// RecordUsage upserts today's usage row for the household, shifting
// current_value by delta and stamping max_value from the current plan.
func (g *Guard) RecordUsage(
	ctx context.Context,
	db core.DBTX,
	householdID, usageType string,
	delta int,
) error {
	householdPlan, err := g.repo.PlanForHousehold(ctx, db, householdID)
	if err != nil {
		return err
	}

	err = g.repo.UpsertUsage(
		ctx,
		db,
		householdID,
		usageType,
		delta,
		householdPlan.LimitFor(usageType),
	)
	if err != nil {
		return fmt.Errorf("record usage %s: %w", usageType, err)
	}

	return nil
}
