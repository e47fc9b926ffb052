// AngelaMos | 2026
// entity.go

package plan

import (
	"time"
)

const (
	UsageTypeTasks   = "tasks"
	UsageTypeMembers = "household_members"
	UsageTypeEvents  = "events"
)

// PlanType is seeded reference data; rows are effectively immutable.
type PlanType struct {
	ID                  int       `db:"id"`
	Name                string    `db:"name"`
	MaxHouseholdMembers *int      `db:"max_household_members"`
	MaxTasks            *int      `db:"max_tasks"`
	PriceMonthly        float64   `db:"price_monthly"`
	PriceYearly         float64   `db:"price_yearly"`
	IsActive            bool      `db:"is_active"`
	CreatedAt           time.Time `db:"created_at"`
}

// HouseholdPlan is the slice of plan data the quota guard needs, loaded
// with the household row locked for the duration of the transaction.
type HouseholdPlan struct {
	PlanTypeID          int  `db:"plan_type_id"`
	MaxHouseholdMembers *int `db:"max_household_members"`
	MaxTasks            *int `db:"max_tasks"`
}

// LimitFor returns the plan cap for a usage type, nil meaning unlimited.
// Unknown usage types are uncapped.
func (p *HouseholdPlan) LimitFor(usageType string) *int {
	switch usageType {
	case UsageTypeTasks:
		return p.MaxTasks
	case UsageTypeMembers:
		return p.MaxHouseholdMembers
	default:
		return nil
	}
}

type Usage struct {
	ID           string    `db:"id"`
	HouseholdID  string    `db:"household_id"`
	UsageType    string    `db:"usage_type"`
	CurrentValue int       `db:"current_value"`
	MaxValue     *int      `db:"max_value"`
	UsageDate    time.Time `db:"usage_date"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
