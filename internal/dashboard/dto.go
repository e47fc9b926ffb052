// AngelaMos | 2026
// dto.go

package dashboard

import (
	"time"

	"github.com/mkrzemien-software/homely-sub001/internal/event"
)

type UpcomingResponse struct {
	Days     int                   `json:"days"`
	Summary  SummaryResponse       `json:"summary"`
	Overdue  []event.EventResponse `json:"overdue"`
	Upcoming []event.EventResponse `json:"upcoming"`
}

type SummaryResponse struct {
	Overdue  int `json:"overdue"`
	Today    int `json:"today"`
	ThisWeek int `json:"this_week"`
}

// newUpcomingResponse derives the count summary from the already-loaded
// events so the upcoming payload is self-contained. This week means the
// next seven days including today, regardless of the requested window.
func newUpcomingResponse(
	days int,
	overdue, upcoming []event.Event,
	today time.Time,
) *UpcomingResponse {
	weekEnd := today.AddDate(0, 0, 6)

	summary := SummaryResponse{Overdue: len(overdue)}
	for _, e := range upcoming {
		if e.DueDate.Equal(today) {
			summary.Today++
		}
		if !e.DueDate.After(weekEnd) {
			summary.ThisWeek++
		}
	}

	return &UpcomingResponse{
		Days:     days,
		Summary:  summary,
		Overdue:  event.ToEventResponseList(overdue, today),
		Upcoming: event.ToEventResponseList(upcoming, today),
	}
}
