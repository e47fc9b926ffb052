// AngelaMos | 2026
// entity.go

package event

import (
	"time"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusPostponed = "postponed"
	StatusCancelled = "cancelled"
)

// Event is one due-dated occurrence generated from a task template.
// TaskID is nullable: an occurrence outlives a physically removed template.
type Event struct {
	ID                string     `db:"id"`
	TaskID            *string    `db:"task_id"`
	HouseholdID       string     `db:"household_id"`
	AssignedTo        *string    `db:"assigned_to"`
	DueDate           time.Time  `db:"due_date"`
	Status            string     `db:"status"`
	Priority          string     `db:"priority"`
	CompletionDate    *time.Time `db:"completion_date"`
	CompletionNotes   *string    `db:"completion_notes"`
	PostponedFromDate *time.Time `db:"postponed_from_date"`
	PostponeReason    *string    `db:"postpone_reason"`
	CreatedBy         string     `db:"created_by"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
	DeletedAt         *time.Time `db:"deleted_at"`
}

// CanTransition reports whether the event still accepts lifecycle actions.
// Completed and cancelled are terminal; postponed remains actionable.
func (e *Event) CanTransition() bool {
	return e.Status == StatusPending || e.Status == StatusPostponed
}

func (e *Event) IsDeleted() bool {
	return e.DeletedAt != nil
}

// History is the append-only archive row written at completion time.
// Never updated, never soft-deleted.
type History struct {
	ID             string    `db:"id"`
	EventID        string    `db:"event_id"`
	TaskID         *string   `db:"task_id"`
	HouseholdID    string    `db:"household_id"`
	TaskName       string    `db:"task_name"`
	CompletionDate time.Time `db:"completion_date"`
	CompletedBy    *string   `db:"completed_by"`
	Notes          string    `db:"notes"`
	CreatedAt      time.Time `db:"created_at"`
}
