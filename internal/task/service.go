// AngelaMos | 2026
// service.go

package task

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkrzemien-software/homely-sub001/internal/core"
	"github.com/mkrzemien-software/homely-sub001/internal/plan"
)

// MemberVerifier confirms the acting user belongs to the household being
// operated on. Tenant scoping is always explicit, never ambient.
type MemberVerifier interface {
	EnsureMember(ctx context.Context, householdID, userID string) error
}

// EventSeeder creates the template's first pending occurrence inside the
// same transaction as the template itself.
type EventSeeder interface {
	SeedFirstEvent(
		ctx context.Context,
		db core.DBTX,
		t *Task,
		dueDate time.Time,
		assignedTo *string,
		createdBy string,
	) error
}

type Service struct {
	db      *core.Database
	tx      core.TxRunner
	repo    Repository
	guard   *plan.Guard
	events  EventSeeder
	members MemberVerifier
}

func NewService(
	db *core.Database,
	tx core.TxRunner,
	repo Repository,
	guard *plan.Guard,
	events EventSeeder,
	members MemberVerifier,
) *Service {
	return &Service{
		db:      db,
		tx:      tx,
		repo:    repo,
		guard:   guard,
		events:  events,
		members: members,
	}
}

// Create inserts a template, gated by the household's task quota. When a
// first due date is given the initial pending event is created in the same
// transaction; a quota failure or event insert failure rolls back everything.
func (s *Service) Create(
	ctx context.Context,
	householdID, userID string,
	req CreateTaskRequest,
) (*Task, error) {
	if err := s.members.EnsureMember(ctx, householdID, userID); err != nil {
		return nil, err
	}

	interval := req.Interval.ToInterval()
	if err := interval.Validate(); err != nil {
		return nil, fmt.Errorf("create task: %w", core.ValidationError(err.Error()))
	}

	var firstDue time.Time
	if req.FirstDueDate != "" {
		parsed, err := ParseDate(req.FirstDueDate)
		if err != nil {
			return nil, fmt.Errorf(
				"create task: %w",
				core.ValidationError("first_due_date must be YYYY-MM-DD"),
			)
		}
		firstDue = parsed
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	t := &Task{
		ID:          uuid.New().String(),
		HouseholdID: householdID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Interval:    interval,
		Priority:    priority,
		IsActive:    true,
		CreatedBy:   userID,
	}

	err := s.tx.RunInTx(ctx, func(tx core.DBTX) error {
		if err := s.guard.CheckLimit(
			ctx, tx, householdID, plan.UsageTypeTasks,
		); err != nil {
			return err
		}

		if err := s.repo.Create(ctx, tx, t); err != nil {
			return err
		}

		if err := s.guard.RecordUsage(
			ctx, tx, householdID, plan.UsageTypeTasks, 1,
		); err != nil {
			return err
		}

		if !firstDue.IsZero() {
			if err := s.events.SeedFirstEvent(
				ctx, tx, t, firstDue, req.AssignedTo, userID,
			); err != nil {
				return err
			}

			if err := s.guard.RecordUsage(
				ctx, tx, householdID, plan.UsageTypeEvents, 1,
			); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) Get(
	ctx context.Context,
	householdID, userID, taskID string,
) (*Task, error) {
	if err := s.members.EnsureMember(ctx, householdID, userID); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, s.db.DB, householdID, taskID)
}

func (s *Service) List(
	ctx context.Context,
	householdID, userID string,
	params ListTasksParams,
) ([]Task, int, error) {
	if err := s.members.EnsureMember(ctx, householdID, userID); err != nil {
		return nil, 0, err
	}

	return s.repo.List(ctx, s.db.DB, householdID, params)
}

func (s *Service) Update(
	ctx context.Context,
	householdID, userID, taskID string,
	req UpdateTaskRequest,
) (*Task, error) {
	if err := s.members.EnsureMember(ctx, householdID, userID); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, s.db.DB, householdID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.CategoryID != nil {
		t.CategoryID = req.CategoryID
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, s.db.DB, t); err != nil {
		return nil, err
	}

	return t, nil
}

// Delete soft-deletes the template and decrements task usage in one
// transaction. Outstanding events survive; their task_id is nulled by the
// schema's SET NULL only on physical deletes, so they simply keep pointing
// at a template that default reads no longer return.
func (s *Service) Delete(
	ctx context.Context,
	householdID, userID, taskID string,
) error {
	if err := s.members.EnsureMember(ctx, householdID, userID); err != nil {
		return err
	}

	return s.tx.RunInTx(ctx, func(tx core.DBTX) error {
		if err := s.repo.SoftDelete(ctx, tx, householdID, taskID); err != nil {
			return err
		}

		return s.guard.RecordUsage(
			ctx, tx, householdID, plan.UsageTypeTasks, -1,
		)
	})
}
