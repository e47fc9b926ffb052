// AngelaMos | 2026
// dto_test.go

package event

import (
	"testing"
	"time"
)

func TestUrgency(t *testing.T) {
	today := date(2025, time.June, 10)

	tests := []struct {
		name        string
		status      string
		dueDate     time.Time
		wantUrgency string
		wantOverdue bool
		wantDays    int
	}{
		{
			name:        "pending past due is overdue",
			status:      StatusPending,
			dueDate:     date(2025, time.June, 7),
			wantUrgency: UrgencyOverdue,
			wantOverdue: true,
			wantDays:    -3,
		},
		{
			name:        "postponed past due is overdue",
			status:      StatusPostponed,
			dueDate:     date(2025, time.June, 9),
			wantUrgency: UrgencyOverdue,
			wantOverdue: true,
			wantDays:    -1,
		},
		{
			name:        "due today",
			status:      StatusPending,
			dueDate:     date(2025, time.June, 10),
			wantUrgency: UrgencyToday,
			wantDays:    0,
		},
		{
			name:        "due later this week",
			status:      StatusPending,
			dueDate:     date(2025, time.June, 14),
			wantUrgency: UrgencyUpcoming,
			wantDays:    4,
		},
		{
			name:        "completed never reads as overdue",
			status:      StatusCompleted,
			dueDate:     date(2025, time.June, 1),
			wantUrgency: UrgencyUpcoming,
			wantDays:    -9,
		},
		{
			name:        "cancelled never reads as overdue",
			status:      StatusCancelled,
			dueDate:     date(2025, time.June, 1),
			wantUrgency: UrgencyUpcoming,
			wantDays:    -9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			urgency, overdue, days := Urgency(tt.status, tt.dueDate, today)

			if urgency != tt.wantUrgency {
				t.Errorf("urgency = %q, want %q", urgency, tt.wantUrgency)
			}
			if overdue != tt.wantOverdue {
				t.Errorf("overdue = %v, want %v", overdue, tt.wantOverdue)
			}
			if days != tt.wantDays {
				t.Errorf("days = %d, want %d", days, tt.wantDays)
			}
		})
	}
}

func TestDaysUntilDueIgnoresTimeOfDay(t *testing.T) {
	due := time.Date(2025, time.June, 11, 0, 30, 0, 0, time.UTC)
	now := time.Date(2025, time.June, 10, 23, 45, 0, 0, time.UTC)

	if got := DaysUntilDue(due, now); got != 1 {
		t.Errorf("DaysUntilDue() = %d, want 1", got)
	}
}

func TestListEventsParamsNormalize(t *testing.T) {
	tests := []struct {
		name         string
		params       ListEventsParams
		wantPage     int
		wantPageSize int
	}{
		{"zero values get defaults", ListEventsParams{}, 1, 20},
		{"negative page clamps", ListEventsParams{Page: -3, PageSize: 10}, 1, 10},
		{"oversized page size clamps", ListEventsParams{Page: 2, PageSize: 500}, 2, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.params.Normalize()
			if tt.params.Page != tt.wantPage {
				t.Errorf("page = %d, want %d", tt.params.Page, tt.wantPage)
			}
			if tt.params.PageSize != tt.wantPageSize {
				t.Errorf("page size = %d, want %d",
					tt.params.PageSize, tt.wantPageSize)
			}
		})
	}
}

func TestToEventResponseFormatsDates(t *testing.T) {
	completion := date(2025, time.June, 8)
	e := &Event{
		ID:             "evt-1",
		HouseholdID:    testHousehold,
		DueDate:        date(2025, time.June, 10),
		Status:         StatusCompleted,
		Priority:       "medium",
		CompletionDate: &completion,
		CreatedBy:      testUser,
	}

	resp := ToEventResponse(e, date(2025, time.June, 10))

	if resp.DueDate != "2025-06-10" {
		t.Errorf("due date = %q", resp.DueDate)
	}
	if resp.CompletionDate == nil || *resp.CompletionDate != "2025-06-08" {
		t.Errorf("completion date = %v", resp.CompletionDate)
	}
	if resp.PostponedFromDate != nil {
		t.Errorf("postponed_from_date = %v, want omitted", resp.PostponedFromDate)
	}
}
