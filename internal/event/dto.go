// AngelaMos | 2026
// dto.go

package event

import (
	"time"
)

const (
	UrgencyOverdue  = "overdue"
	UrgencyToday    = "today"
	UrgencyUpcoming = "upcoming"
)

type CompleteEventRequest struct {
	CompletionDate string `json:"completion_date" validate:"omitempty,datetime=2006-01-02"`
	Notes          string `json:"notes"           validate:"max=2000"`
}

type PostponeEventRequest struct {
	NewDueDate string `json:"new_due_date" validate:"required,datetime=2006-01-02"`
	Reason     string `json:"reason"       validate:"required,max=500"`
}

type CancelEventRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

type EventResponse struct {
	ID                string     `json:"id"`
	TaskID            *string    `json:"task_id"`
	HouseholdID       string     `json:"household_id"`
	AssignedTo        *string    `json:"assigned_to"`
	DueDate           string     `json:"due_date"`
	Status            string     `json:"status"`
	Priority          string     `json:"priority"`
	CompletionDate    *string    `json:"completion_date,omitempty"`
	CompletionNotes   *string    `json:"completion_notes,omitempty"`
	PostponedFromDate *string    `json:"postponed_from_date,omitempty"`
	PostponeReason    *string    `json:"postpone_reason,omitempty"`
	IsOverdue         bool       `json:"is_overdue"`
	DaysUntilDue      int        `json:"days_until_due"`
	UrgencyStatus     string     `json:"urgency_status"`
	CreatedBy         string     `json:"created_by"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type CompleteEventResponse struct {
	CompletedEvent EventResponse  `json:"completed_event"`
	NextEvent      *EventResponse `json:"next_event"`
}

type HistoryResponse struct {
	ID             string    `json:"id"`
	EventID        string    `json:"event_id"`
	TaskID         *string   `json:"task_id"`
	TaskName       string    `json:"task_name"`
	CompletionDate string    `json:"completion_date"`
	CompletedBy    *string   `json:"completed_by"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}

type ListEventsParams struct {
	Page       int
	PageSize   int
	Status     string
	AssignedTo string
	From       *time.Time
	To         *time.Time
}

func (p *ListEventsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListEventsParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

const dateLayout = "2006-01-02"

// DaysUntilDue is the whole-day distance from today to the due date,
// negative once overdue. Both dates are compared at day granularity.
func DaysUntilDue(dueDate, today time.Time) int {
	due := truncateToDay(dueDate)
	now := truncateToDay(today)
	return int(due.Sub(now).Hours() / 24)
}

// Urgency derives the read-time urgency bucket. Recomputed per request so
// it is always consistent with the caller's current date.
func Urgency(status string, dueDate, today time.Time) (string, bool, int) {
	days := DaysUntilDue(dueDate, today)
	active := status == StatusPending || status == StatusPostponed

	switch {
	case active && days < 0:
		return UrgencyOverdue, true, days
	case active && days == 0:
		return UrgencyToday, false, days
	default:
		return UrgencyUpcoming, false, days
	}
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func ToEventResponse(e *Event, today time.Time) EventResponse {
	urgency, overdue, days := Urgency(e.Status, e.DueDate, today)

	resp := EventResponse{
		ID:             e.ID,
		TaskID:         e.TaskID,
		HouseholdID:    e.HouseholdID,
		AssignedTo:     e.AssignedTo,
		DueDate:        e.DueDate.Format(dateLayout),
		Status:         e.Status,
		Priority:       e.Priority,
		IsOverdue:      overdue,
		DaysUntilDue:   days,
		UrgencyStatus:  urgency,
		CompletionNotes: e.CompletionNotes,
		PostponeReason: e.PostponeReason,
		CreatedBy:      e.CreatedBy,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}

	if e.CompletionDate != nil {
		formatted := e.CompletionDate.Format(dateLayout)
		resp.CompletionDate = &formatted
	}

	if e.PostponedFromDate != nil {
		formatted := e.PostponedFromDate.Format(dateLayout)
		resp.PostponedFromDate = &formatted
	}

	return resp
}

func ToEventResponseList(events []Event, today time.Time) []EventResponse {
	responses := make([]EventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, ToEventResponse(&e, today))
	}
	return responses
}

func ToHistoryResponse(h *History) HistoryResponse {
	return HistoryResponse{
		ID:             h.ID,
		EventID:        h.EventID,
		TaskID:         h.TaskID,
		TaskName:       h.TaskName,
		CompletionDate: h.CompletionDate.Format(dateLayout),
		CompletedBy:    h.CompletedBy,
		Notes:          h.Notes,
		CreatedAt:      h.CreatedAt,
	}
}

func ToHistoryResponseList(rows []History) []HistoryResponse {
	responses := make([]HistoryResponse, 0, len(rows))
	for _, h := range rows {
		responses = append(responses, ToHistoryResponse(&h))
	}
	return responses
}
