// AngelaMos | 2026
// service.go

package event

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mkrzemien-software/homely-sub001/internal/core"
	"github.com/mkrzemien-software/homely-sub001/internal/metrics"
	"github.com/mkrzemien-software/homely-sub001/internal/plan"
	"github.com/mkrzemien-software/homely-sub001/internal/task"
)

// TaskSource loads the originating template when completing an occurrence.
// Satisfied by the task repository.
type TaskSource interface {
	GetByID(
		ctx context.Context,
		db core.DBTX,
		householdID, id string,
	) (*task.Task, error)
}

type MemberVerifier interface {
	EnsureMember(ctx context.Context, householdID, userID string) error
}

// CacheInvalidator drops any cached read views for a household after a
// lifecycle write. Implementations are best effort.
type CacheInvalidator interface {
	InvalidateHousehold(ctx context.Context, householdID string)
}

type Service struct {
	db      *core.Database
	tx      core.TxRunner
	repo    Repository
	history HistoryRepository
	tasks   TaskSource
	guard   *plan.Guard
	members MemberVerifier
	cache   CacheInvalidator
	now     func() time.Time
}

func NewService(
	db *core.Database,
	tx core.TxRunner,
	repo Repository,
	history HistoryRepository,
	tasks TaskSource,
	guard *plan.Guard,
	members MemberVerifier,
	cache CacheInvalidator,
) *Service {
	return &Service{
		db:      db,
		tx:      tx,
		repo:    repo,
		history: history,
		tasks:   tasks,
		guard:   guard,
		members: members,
		cache:   cache,
		now:     time.Now,
	}
}

// Complete marks an occurrence done, archives it to history, and generates
// the successor occurrence from the template's interval. The whole chain
// runs in one transaction behind a row lock, so concurrent completes of the
// same occurrence produce exactly one archive row and one successor.
func (s *Service) Complete(
	ctx context.Context,
	householdID, userID, eventID string,
	req CompleteEventRequest,
) (*Event, *Event, error) {
	if err := s.members.EnsureMember(ctx, householdID, userID); err != nil {
		return nil, nil, err
	}

	completionDate := truncateToDay(s.now())
	if req.CompletionDate != "" {
		parsed, err := time.Parse(dateLayout, req.CompletionDate)
		if err != nil {
			return nil, nil, fmt.Errorf(
				"complete event: %w",
				core.ValidationError("completion_date must be YYYY-MM-DD"),
			)
		}
		completionDate = parsed
	}

	var completed *Event
	var next *Event

	err := s.tx.RunInTx(ctx, func(tx core.DBTX) error {
		next = nil

		e, err := s.repo.GetByIDForUpdate(ctx, tx, householdID, eventID)
		if err != nil {
			return err
		}

		if !e.CanTransition() {
			return fmt.Errorf(
				"complete event: %w",
				core.InvalidTransitionError(e.Status, "complete"),
			)
		}

		e.Status = StatusCompleted
		e.CompletionDate = &completionDate
		if req.Notes != "" {
			notes := req.Notes
			e.CompletionNotes = &notes
		}

		if err := s.repo.UpdateStatus(ctx, tx, e); err != nil {
			return err
		}

		taskName, successor, err := s.deriveSuccessor(
			ctx, tx, e, completionDate, userID,
		)
		if err != nil {
			return err
		}

		h := &History{
			ID:             uuid.New().String(),
			EventID:        e.ID,
			TaskID:         e.TaskID,
			HouseholdID:    e.HouseholdID,
			TaskName:       taskName,
			CompletionDate: completionDate,
			CompletedBy:    &userID,
			Notes:          req.Notes,
		}
		if err := s.history.Append(ctx, tx, h); err != nil {
			return err
		}

		if successor != nil {
			if err := s.repo.Create(ctx, tx, successor); err != nil {
				return err
			}

			if err := s.guard.RecordUsage(
				ctx, tx, householdID, plan.UsageTypeEvents, 1,
			); err != nil {
				return err
			}

			next = successor
		}

		completed = e
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	metrics.ObserveTransition("complete")
	if next != nil {
		metrics.ObserveEventGenerated()
	}
	s.invalidate(ctx, householdID)

	return completed, next, nil
}

// deriveSuccessor figures out the next occurrence for a just-completed
// event. No successor when the template is gone, inactive, or one-off.
// The next due date is computed from the completion date, not the original
// due date, so a late completion does not stack up overdue successors.
func (s *Service) deriveSuccessor(
	ctx context.Context,
	tx core.DBTX,
	e *Event,
	completionDate time.Time,
	userID string,
) (string, *Event, error) {
	taskName := "(deleted task)"

	if e.TaskID == nil {
		return taskName, nil, nil
	}

	t, err := s.tasks.GetByID(ctx, tx, e.HouseholdID, *e.TaskID)
	if errors.Is(err, core.ErrNotFound) {
		return taskName, nil, nil
	}
	if err != nil {
		return "", nil, err
	}

	taskName = t.Name

	if !t.IsActive {
		return taskName, nil, nil
	}

	nextDue, ok := t.Interval.Next(completionDate)
	if !ok {
		return taskName, nil, nil
	}

	successor := &Event{
		ID:          uuid.New().String(),
		TaskID:      e.TaskID,
		HouseholdID: e.HouseholdID,
		AssignedTo:  e.AssignedTo,
		DueDate:     nextDue,
		Status:      StatusPending,
		Priority:    t.Priority,
		CreatedBy:   userID,
	}

	return taskName, successor, nil
}

// Postpone moves an actionable occurrence to a new due date, keeping the
// date it was moved from. Repeated postpones track only the most recent
// prior date.
func (s *Service) Postpone(
	ctx context.Context,
	householdID, userID, eventID string,
	req PostponeEventRequest,
) (*Event, error) {
	if err := s.members.EnsureMember(ctx, householdID, userID); err != nil {
		return nil, err
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, fmt.Errorf(
			"postpone event: %w",
			core.ValidationError("reason is required"),
		)
	}

	newDue, err := time.Parse(dateLayout, req.NewDueDate)
	if err != nil {
		return nil, fmt.Errorf(
			"postpone event: %w",
			core.ValidationError("new_due_date must be YYYY-MM-DD"),
		)
	}

	var postponed *Event

	err = s.tx.RunInTx(ctx, func(tx core.DBTX) error {
		e, err := s.repo.GetByIDForUpdate(ctx, tx, householdID, eventID)
		if err != nil {
			return err
		}

		if !e.CanTransition() {
			return fmt.Errorf(
				"postpone event: %w",
				core.InvalidTransitionError(e.Status, "postpone"),
			)
		}

		previousDue := e.DueDate
		e.Status = StatusPostponed
		e.PostponedFromDate = &previousDue
		e.PostponeReason = &reason
		e.DueDate = newDue

		if err := s.repo.UpdateStatus(ctx, tx, e); err != nil {
			return err
		}

		postponed = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ObserveTransition("postpone")
	s.invalidate(ctx, householdID)

	return postponed, nil
}

// Cancel terminates an occurrence without generating a successor. The
// template keeps producing occurrences only through future completes of
// other events; a cancelled occurrence is a dead end.
func (s *Service) Cancel(
	ctx context.Context,
	householdID, userID, eventID string,
	req CancelEventRequest,
) (*Event, error) {
	if err := s.members.EnsureMember(ctx, householdID, userID); err != nil {
		return nil, err
	}

	var cancelled *Event

	err := s.tx.RunInTx(ctx, func(tx core.DBTX) error {
		e, err := s.repo.GetByIDForUpdate(ctx, tx, householdID, eventID)
		if err != nil {
			return err
		}

		if !e.CanTransition() {
			return fmt.Errorf(
				"cancel event: %w",
				core.InvalidTransitionError(e.Status, "cancel"),
			)
		}

		e.Status = StatusCancelled
		if reason := strings.TrimSpace(req.Reason); reason != "" {
			e.CompletionNotes = &reason
		}

		if err := s.repo.UpdateStatus(ctx, tx, e); err != nil {
			return err
		}

		cancelled = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ObserveTransition("cancel")
	s.invalidate(ctx, householdID)

	return cancelled, nil
}

func (s *Service) Get(
	ctx context.Context,
	householdID, userID, eventID string,
) (*Event, error) {
	if err := s.members.EnsureMember(ctx, householdID, userID); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, s.db.DB, householdID, eventID)
}

func (s *Service) List(
	ctx context.Context,
	householdID, userID string,
	params ListEventsParams,
) ([]Event, int, error) {
	if err := s.members.EnsureMember(ctx, householdID, userID); err != nil {
		return nil, 0, err
	}

	return s.repo.List(ctx, s.db.DB, householdID, params)
}

func (s *Service) Overdue(
	ctx context.Context,
	householdID, userID string,
) ([]Event, error) {
	if err := s.members.EnsureMember(ctx, householdID, userID); err != nil {
		return nil, err
	}

	return s.repo.GetOverdueEvents(
		ctx, s.db.DB, householdID, truncateToDay(s.now()),
	)
}

// Delete soft-deletes an occurrence and releases its event usage. Deleting
// is not a lifecycle action, so terminal events can still be removed.
func (s *Service) Delete(
	ctx context.Context,
	householdID, userID, eventID string,
) error {
	if err := s.members.EnsureMember(ctx, householdID, userID); err != nil {
		return err
	}

	err := s.tx.RunInTx(ctx, func(tx core.DBTX) error {
		if err := s.repo.SoftDelete(ctx, tx, householdID, eventID); err != nil {
			return err
		}

		return s.guard.RecordUsage(
			ctx, tx, householdID, plan.UsageTypeEvents, -1,
		)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, householdID)
	return nil
}

func (s *Service) invalidate(ctx context.Context, householdID string) {
	if s.cache != nil {
		s.cache.InvalidateHousehold(ctx, householdID)
	}
}

func (s *Service) History(
	ctx context.Context,
	householdID, userID string,
	page, pageSize int,
) ([]History, int, error) {
	if err := s.members.EnsureMember(ctx, householdID, userID); err != nil {
		return nil, 0, err
	}

	return s.history.ListByHousehold(
		ctx, s.db.DB, householdID, page, pageSize,
	)
}

// Today returns the service clock truncated to day granularity; handlers
// use it when deriving urgency fields for responses.
func (s *Service) Today() time.Time {
	return truncateToDay(s.now())
}
