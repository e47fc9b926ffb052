// AngelaMos | 2026
// seeder.go

package event

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mkrzemien-software/homely-sub001/internal/core"
	"github.com/mkrzemien-software/homely-sub001/internal/task"
)

// Seeder creates the initial pending occurrence for a freshly created
// template, inside the template's own transaction.
type Seeder struct {
	repo Repository
}

var _ task.EventSeeder = (*Seeder)(nil)

func NewSeeder(repo Repository) *Seeder {
	return &Seeder{repo: repo}
}

func (s *Seeder) SeedFirstEvent(
	ctx context.Context,
	db core.DBTX,
	t *task.Task,
	dueDate time.Time,
	assignedTo *string,
	createdBy string,
) error {
	taskID := t.ID
	e := &Event{
		ID:          uuid.New().String(),
		TaskID:      &taskID,
		HouseholdID: t.HouseholdID,
		AssignedTo:  assignedTo,
		DueDate:     dueDate,
		Status:      StatusPending,
		Priority:    t.Priority,
		CreatedBy:   createdBy,
	}

	if err := s.repo.Create(ctx, db, e); err != nil {
		return err
	}

	return nil
}
