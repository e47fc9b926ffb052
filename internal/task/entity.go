// AngelaMos | 2026
// entity.go

package task

import (
	"time"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// PriorityRank orders priorities by severity for listing tie-breaks:
// high sorts before medium before low. Unknown values sort last.
func PriorityRank(priority string) int {
	switch priority {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

func ValidPriority(priority string) bool {
	return priority == PriorityLow ||
		priority == PriorityMedium ||
		priority == PriorityHigh
}

// Task is a recurring work template. It is never scheduled itself; due-dated
// occurrences are Event rows generated from it.
type Task struct {
	ID          string `db:"id"`
	HouseholdID string `db:"household_id"`
	CategoryID  *int   `db:"category_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Interval
	Priority  string     `db:"priority"`
	IsActive  bool       `db:"is_active"`
	CreatedBy string     `db:"created_by"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

func (t *Task) IsOneOff() bool {
	return t.Interval.IsZero()
}

func (t *Task) IsDeleted() bool {
	return t.DeletedAt != nil
}
