// AngelaMos | 2026
// dto_test.go

package dashboard

import (
	"testing"
	"time"

	"github.com/mkrzemien-software/homely-sub001/internal/event"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func pendingOn(id string, due time.Time) event.Event {
	return event.Event{
		ID:          id,
		HouseholdID: "hh-1",
		DueDate:     due,
		Status:      event.StatusPending,
		Priority:    "medium",
		CreatedBy:   "user-1",
	}
}

func TestNewUpcomingResponseCarriesSummary(t *testing.T) {
	today := date(2025, time.June, 10)

	overdue := []event.Event{
		pendingOn("evt-late", date(2025, time.June, 5)),
	}
	upcoming := []event.Event{
		pendingOn("evt-today", today),
		pendingOn("evt-wed", date(2025, time.June, 12)),
		pendingOn("evt-week-edge", date(2025, time.June, 16)),
		pendingOn("evt-later", date(2025, time.June, 25)),
	}

	resp := newUpcomingResponse(30, overdue, upcoming, today)

	if resp.Days != 30 {
		t.Errorf("days = %d", resp.Days)
	}
	if resp.Summary.Overdue != 1 {
		t.Errorf("summary overdue = %d, want 1", resp.Summary.Overdue)
	}
	if resp.Summary.Today != 1 {
		t.Errorf("summary today = %d, want 1", resp.Summary.Today)
	}
	// This week covers today through today+6; evt-later falls outside.
	if resp.Summary.ThisWeek != 3 {
		t.Errorf("summary this_week = %d, want 3", resp.Summary.ThisWeek)
	}

	if len(resp.Overdue) != 1 || len(resp.Upcoming) != 4 {
		t.Errorf("event lists = %d overdue / %d upcoming",
			len(resp.Overdue), len(resp.Upcoming))
	}
}

func TestNewUpcomingResponseEmpty(t *testing.T) {
	today := date(2025, time.June, 10)

	resp := newUpcomingResponse(7, nil, nil, today)

	if resp.Summary != (SummaryResponse{}) {
		t.Errorf("summary = %+v, want zero counts", resp.Summary)
	}
	if resp.Overdue == nil || resp.Upcoming == nil {
		t.Error("event lists should be empty, not null")
	}
}
