// AngelaMos | 2026
// service_test.go

package event

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mkrzemien-software/homely-sub001/internal/core"
	"github.com/mkrzemien-software/homely-sub001/internal/plan"
	"github.com/mkrzemien-software/homely-sub001/internal/task"
)

const (
	testHousehold = "household-1"
	testUser      = "user-1"
)

type fakeTxRunner struct{}

func (f *fakeTxRunner) RunInTx(
	ctx context.Context,
	fn func(tx core.DBTX) error,
) error {
	return fn(nil)
}

type fakeRepo struct {
	events     map[string]Event
	created    []Event
	updates    int
	lockedGets int
}

func newFakeRepo(events ...Event) *fakeRepo {
	r := &fakeRepo{events: make(map[string]Event)}
	for _, e := range events {
		r.events[e.ID] = e
	}
	return r
}

func (r *fakeRepo) Create(ctx context.Context, db core.DBTX, e *Event) error {
	r.events[e.ID] = *e
	r.created = append(r.created, *e)
	return nil
}

func (r *fakeRepo) GetByID(
	ctx context.Context,
	db core.DBTX,
	householdID, id string,
) (*Event, error) {
	e, ok := r.events[id]
	if !ok || e.HouseholdID != householdID {
		return nil, fmt.Errorf("get event: %w", core.ErrNotFound)
	}
	copied := e
	return &copied, nil
}

func (r *fakeRepo) GetByIDForUpdate(
	ctx context.Context,
	db core.DBTX,
	householdID, id string,
) (*Event, error) {
	r.lockedGets++
	return r.GetByID(ctx, db, householdID, id)
}

func (r *fakeRepo) UpdateStatus(
	ctx context.Context,
	db core.DBTX,
	e *Event,
) error {
	if _, ok := r.events[e.ID]; !ok {
		return fmt.Errorf("update event: %w", core.ErrNotFound)
	}
	r.events[e.ID] = *e
	r.updates++
	return nil
}

func (r *fakeRepo) List(
	ctx context.Context,
	db core.DBTX,
	householdID string,
	params ListEventsParams,
) ([]Event, int, error) {
	return nil, 0, nil
}

func (r *fakeRepo) GetOverdueEvents(
	ctx context.Context,
	db core.DBTX,
	householdID string,
	today time.Time,
) ([]Event, error) {
	return nil, nil
}

func (r *fakeRepo) GetEventsInRange(
	ctx context.Context,
	db core.DBTX,
	householdID string,
	from, to time.Time,
) ([]Event, error) {
	return nil, nil
}

func (r *fakeRepo) SoftDelete(
	ctx context.Context,
	db core.DBTX,
	householdID, id string,
) error {
	delete(r.events, id)
	return nil
}

type fakeHistory struct {
	appended []History
}

func (h *fakeHistory) Append(
	ctx context.Context,
	db core.DBTX,
	row *History,
) error {
	h.appended = append(h.appended, *row)
	return nil
}

func (h *fakeHistory) ListByHousehold(
	ctx context.Context,
	db core.DBTX,
	householdID string,
	page, pageSize int,
) ([]History, int, error) {
	return h.appended, len(h.appended), nil
}

type fakeTasks struct {
	tasks map[string]*task.Task
}

func (f *fakeTasks) GetByID(
	ctx context.Context,
	db core.DBTX,
	householdID, id string,
) (*task.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, fmt.Errorf("get task: %w", core.ErrNotFound)
	}
	return t, nil
}

type fakePlanRepo struct {
	plan.Repository
	usageDeltas []int
}

func (f *fakePlanRepo) PlanForHousehold(
	ctx context.Context,
	db core.DBTX,
	householdID string,
) (*plan.HouseholdPlan, error) {
	return &plan.HouseholdPlan{PlanTypeID: 1}, nil
}

func (f *fakePlanRepo) UpsertUsage(
	ctx context.Context,
	db core.DBTX,
	householdID, usageType string,
	delta int,
	maxValue *int,
) error {
	f.usageDeltas = append(f.usageDeltas, delta)
	return nil
}

type allowAllMembers struct{}

func (allowAllMembers) EnsureMember(
	ctx context.Context,
	householdID, userID string,
) error {
	return nil
}

func newTestService(
	repo *fakeRepo,
	history *fakeHistory,
	tasks *fakeTasks,
) (*Service, *fakePlanRepo) {
	planRepo := &fakePlanRepo{}
	s := NewService(
		nil,
		&fakeTxRunner{},
		repo,
		history,
		tasks,
		plan.NewGuard(planRepo),
		allowAllMembers{},
		nil,
	)
	s.now = func() time.Time {
		return time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)
	}
	return s, planRepo
}

func pendingEvent(id, taskID string) Event {
	tid := taskID
	return Event{
		ID:          id,
		TaskID:      &tid,
		HouseholdID: testHousehold,
		DueDate:     time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
		Status:      StatusPending,
		Priority:    task.PriorityMedium,
		CreatedBy:   testUser,
	}
}

func recurringTask(id string, interval task.Interval) *task.Task {
	return &task.Task{
		ID:          id,
		HouseholdID: testHousehold,
		Name:        "Clean gutters",
		Interval:    interval,
		Priority:    task.PriorityHigh,
		IsActive:    true,
	}
}

func TestCompleteGeneratesSuccessor(t *testing.T) {
	repo := newFakeRepo(pendingEvent("evt-1", "task-1"))
	history := &fakeHistory{}
	tasks := &fakeTasks{tasks: map[string]*task.Task{
		"task-1": recurringTask("task-1", task.Interval{Months: 6}),
	}}
	s, planRepo := newTestService(repo, history, tasks)

	completed, next, err := s.Complete(
		context.Background(), testHousehold, testUser, "evt-1",
		CompleteEventRequest{CompletionDate: "2025-01-12", Notes: "done"},
	)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if completed.Status != StatusCompleted {
		t.Errorf("completed status = %q", completed.Status)
	}
	if completed.CompletionDate == nil ||
		!completed.CompletionDate.Equal(date(2025, time.January, 12)) {
		t.Errorf("completion date = %v", completed.CompletionDate)
	}

	if next == nil {
		t.Fatal("expected a successor event")
	}
	if !next.DueDate.Equal(date(2025, time.July, 12)) {
		t.Errorf("successor due date = %v, want 2025-07-12", next.DueDate)
	}
	if next.Status != StatusPending {
		t.Errorf("successor status = %q", next.Status)
	}
	if next.Priority != task.PriorityHigh {
		t.Errorf("successor priority = %q, want template's", next.Priority)
	}

	if len(history.appended) != 1 {
		t.Fatalf("history rows = %d, want 1", len(history.appended))
	}
	if history.appended[0].TaskName != "Clean gutters" {
		t.Errorf("history task name = %q", history.appended[0].TaskName)
	}
	if history.appended[0].Notes != "done" {
		t.Errorf("history notes = %q", history.appended[0].Notes)
	}

	if len(planRepo.usageDeltas) != 1 || planRepo.usageDeltas[0] != 1 {
		t.Errorf("usage deltas = %v, want [1]", planRepo.usageDeltas)
	}
}

func TestCompleteDefaultsToToday(t *testing.T) {
	repo := newFakeRepo(pendingEvent("evt-1", "task-1"))
	tasks := &fakeTasks{tasks: map[string]*task.Task{
		"task-1": recurringTask("task-1", task.Interval{Weeks: 1}),
	}}
	s, _ := newTestService(repo, &fakeHistory{}, tasks)

	completed, _, err := s.Complete(
		context.Background(), testHousehold, testUser, "evt-1",
		CompleteEventRequest{},
	)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if !completed.CompletionDate.Equal(date(2025, time.January, 15)) {
		t.Errorf("completion date = %v, want service clock's today",
			completed.CompletionDate)
	}
}

func TestCompleteTwiceConflicts(t *testing.T) {
	repo := newFakeRepo(pendingEvent("evt-1", "task-1"))
	history := &fakeHistory{}
	tasks := &fakeTasks{tasks: map[string]*task.Task{
		"task-1": recurringTask("task-1", task.Interval{Months: 1}),
	}}
	s, _ := newTestService(repo, history, tasks)

	_, _, err := s.Complete(
		context.Background(), testHousehold, testUser, "evt-1",
		CompleteEventRequest{},
	)
	if err != nil {
		t.Fatalf("first Complete() error = %v", err)
	}

	_, _, err = s.Complete(
		context.Background(), testHousehold, testUser, "evt-1",
		CompleteEventRequest{},
	)
	if !errors.Is(err, core.ErrInvalidTransition) {
		t.Fatalf("second Complete() error = %v, want invalid transition", err)
	}

	if len(history.appended) != 1 {
		t.Errorf("history rows = %d after double complete", len(history.appended))
	}
	if len(repo.created) != 1 {
		t.Errorf("successors created = %d after double complete", len(repo.created))
	}
}

func TestCompleteOneOffHasNoSuccessor(t *testing.T) {
	repo := newFakeRepo(pendingEvent("evt-1", "task-1"))
	tasks := &fakeTasks{tasks: map[string]*task.Task{
		"task-1": recurringTask("task-1", task.Interval{}),
	}}
	s, _ := newTestService(repo, &fakeHistory{}, tasks)

	_, next, err := s.Complete(
		context.Background(), testHousehold, testUser, "evt-1",
		CompleteEventRequest{},
	)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if next != nil {
		t.Errorf("one-off template produced successor %+v", next)
	}
}

func TestCompleteInactiveTaskHasNoSuccessor(t *testing.T) {
	repo := newFakeRepo(pendingEvent("evt-1", "task-1"))
	inactive := recurringTask("task-1", task.Interval{Months: 1})
	inactive.IsActive = false
	tasks := &fakeTasks{tasks: map[string]*task.Task{"task-1": inactive}}
	s, _ := newTestService(repo, &fakeHistory{}, tasks)

	_, next, err := s.Complete(
		context.Background(), testHousehold, testUser, "evt-1",
		CompleteEventRequest{},
	)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if next != nil {
		t.Error("inactive template produced a successor")
	}
}

func TestCompleteWithMissingTaskStillArchives(t *testing.T) {
	repo := newFakeRepo(pendingEvent("evt-1", "task-gone"))
	history := &fakeHistory{}
	tasks := &fakeTasks{tasks: map[string]*task.Task{}}
	s, _ := newTestService(repo, history, tasks)

	_, next, err := s.Complete(
		context.Background(), testHousehold, testUser, "evt-1",
		CompleteEventRequest{},
	)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if next != nil {
		t.Error("orphaned event produced a successor")
	}
	if len(history.appended) != 1 {
		t.Fatalf("history rows = %d, want 1", len(history.appended))
	}
	if history.appended[0].TaskName != "(deleted task)" {
		t.Errorf("history task name = %q", history.appended[0].TaskName)
	}
}

func TestPostpone(t *testing.T) {
	repo := newFakeRepo(pendingEvent("evt-1", "task-1"))
	s, _ := newTestService(repo, &fakeHistory{}, &fakeTasks{})

	postponed, err := s.Postpone(
		context.Background(), testHousehold, testUser, "evt-1",
		PostponeEventRequest{NewDueDate: "2025-02-01", Reason: "on holiday"},
	)
	if err != nil {
		t.Fatalf("Postpone() error = %v", err)
	}

	if postponed.Status != StatusPostponed {
		t.Errorf("status = %q", postponed.Status)
	}
	if !postponed.DueDate.Equal(date(2025, time.February, 1)) {
		t.Errorf("due date = %v", postponed.DueDate)
	}
	if postponed.PostponedFromDate == nil ||
		!postponed.PostponedFromDate.Equal(date(2025, time.January, 10)) {
		t.Errorf("postponed_from_date = %v, want original due date",
			postponed.PostponedFromDate)
	}
	if postponed.PostponeReason == nil || *postponed.PostponeReason != "on holiday" {
		t.Errorf("postpone reason = %v", postponed.PostponeReason)
	}
}

func TestPostponeTracksMostRecentPriorDate(t *testing.T) {
	repo := newFakeRepo(pendingEvent("evt-1", "task-1"))
	s, _ := newTestService(repo, &fakeHistory{}, &fakeTasks{})

	_, err := s.Postpone(
		context.Background(), testHousehold, testUser, "evt-1",
		PostponeEventRequest{NewDueDate: "2025-02-01", Reason: "first"},
	)
	if err != nil {
		t.Fatalf("first Postpone() error = %v", err)
	}

	again, err := s.Postpone(
		context.Background(), testHousehold, testUser, "evt-1",
		PostponeEventRequest{NewDueDate: "2025-03-01", Reason: "second"},
	)
	if err != nil {
		t.Fatalf("second Postpone() error = %v", err)
	}

	if !again.PostponedFromDate.Equal(date(2025, time.February, 1)) {
		t.Errorf("postponed_from_date = %v, want the previous due date",
			again.PostponedFromDate)
	}
}

func TestPostponeRequiresReason(t *testing.T) {
	repo := newFakeRepo(pendingEvent("evt-1", "task-1"))
	s, _ := newTestService(repo, &fakeHistory{}, &fakeTasks{})

	_, err := s.Postpone(
		context.Background(), testHousehold, testUser, "evt-1",
		PostponeEventRequest{NewDueDate: "2025-02-01", Reason: "   "},
	)
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("Postpone() error = %v, want validation error", err)
	}
}

func TestCancelIsTerminal(t *testing.T) {
	repo := newFakeRepo(pendingEvent("evt-1", "task-1"))
	tasks := &fakeTasks{tasks: map[string]*task.Task{
		"task-1": recurringTask("task-1", task.Interval{Months: 1}),
	}}
	s, _ := newTestService(repo, &fakeHistory{}, tasks)

	cancelled, err := s.Cancel(
		context.Background(), testHousehold, testUser, "evt-1",
		CancelEventRequest{Reason: "no longer needed"},
	)
	if err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if cancelled.Status != StatusCancelled {
		t.Errorf("status = %q", cancelled.Status)
	}
	if cancelled.CompletionNotes == nil ||
		*cancelled.CompletionNotes != "no longer needed" {
		t.Errorf("cancel reason = %v", cancelled.CompletionNotes)
	}
	if len(repo.created) != 0 {
		t.Errorf("cancel created %d successors", len(repo.created))
	}

	_, _, err = s.Complete(
		context.Background(), testHousehold, testUser, "evt-1",
		CompleteEventRequest{},
	)
	if !errors.Is(err, core.ErrInvalidTransition) {
		t.Fatalf("Complete() after cancel error = %v, want invalid transition", err)
	}

	_, err = s.Postpone(
		context.Background(), testHousehold, testUser, "evt-1",
		PostponeEventRequest{NewDueDate: "2025-02-01", Reason: "try again"},
	)
	if !errors.Is(err, core.ErrInvalidTransition) {
		t.Fatalf("Postpone() after cancel error = %v, want invalid transition", err)
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
