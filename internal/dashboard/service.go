// AngelaMos | 2026
// service.go

package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkrzemien-software/homely-sub001/internal/core"
	"github.com/mkrzemien-software/homely-sub001/internal/event"
)

const cacheTTL = 60 * time.Second

// EventSource is the slice of the event store the dashboard reads.
type EventSource interface {
	GetOverdueEvents(
		ctx context.Context,
		db core.DBTX,
		householdID string,
		today time.Time,
	) ([]event.Event, error)
	GetEventsInRange(
		ctx context.Context,
		db core.DBTX,
		householdID string,
		from, to time.Time,
	) ([]event.Event, error)
}

type MemberVerifier interface {
	EnsureMember(ctx context.Context, householdID, userID string) error
}

type Service struct {
	db      *core.Database
	cache   *core.Redis
	events  EventSource
	members MemberVerifier
	logger  *slog.Logger
	now     func() time.Time
}

func NewService(
	db *core.Database,
	cache *core.Redis,
	events EventSource,
	members MemberVerifier,
	logger *slog.Logger,
) *Service {
	return &Service{
		db:      db,
		cache:   cache,
		events:  events,
		members: members,
		logger:  logger,
		now:     time.Now,
	}
}

// Upcoming returns the actionable events due within the window, overdue
// ones included. Results are cached briefly per household and window; a
// cache failure degrades to a direct read.
func (s *Service) Upcoming(
	ctx context.Context,
	householdID, userID string,
	days int,
) (*UpcomingResponse, error) {
	if err := s.members.EnsureMember(ctx, householdID, userID); err != nil {
		return nil, err
	}

	if days != 7 && days != 14 && days != 30 {
		return nil, fmt.Errorf(
			"dashboard upcoming: %w",
			core.ValidationError("days must be 7, 14, or 30"),
		)
	}

	key := upcomingCacheKey(householdID, days)

	var cached UpcomingResponse
	hit, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("dashboard cache read failed",
			"key", key, "error", err)
	}
	if hit {
		return &cached, nil
	}

	today := s.today()

	overdue, err := s.events.GetOverdueEvents(ctx, s.db.DB, householdID, today)
	if err != nil {
		return nil, err
	}

	upcoming, err := s.events.GetEventsInRange(
		ctx, s.db.DB, householdID, today, today.AddDate(0, 0, days),
	)
	if err != nil {
		return nil, err
	}

	resp := newUpcomingResponse(days, overdue, upcoming, today)

	if err := s.cache.SetJSON(ctx, key, resp, cacheTTL); err != nil {
		s.logger.Warn("dashboard cache write failed",
			"key", key, "error", err)
	}

	return resp, nil
}

// Summary reports counts of overdue, due-today, and due-this-week events.
// This week means the next seven days including today.
func (s *Service) Summary(
	ctx context.Context,
	householdID, userID string,
) (*SummaryResponse, error) {
	if err := s.members.EnsureMember(ctx, householdID, userID); err != nil {
		return nil, err
	}

	key := summaryCacheKey(householdID)

	var cached SummaryResponse
	hit, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("dashboard cache read failed",
			"key", key, "error", err)
	}
	if hit {
		return &cached, nil
	}

	today := s.today()

	overdue, err := s.events.GetOverdueEvents(ctx, s.db.DB, householdID, today)
	if err != nil {
		return nil, err
	}

	week, err := s.events.GetEventsInRange(
		ctx, s.db.DB, householdID, today, today.AddDate(0, 0, 6),
	)
	if err != nil {
		return nil, err
	}

	dueToday := 0
	for _, e := range week {
		if e.DueDate.Equal(today) {
			dueToday++
		}
	}

	resp := &SummaryResponse{
		Overdue:  len(overdue),
		Today:    dueToday,
		ThisWeek: len(week),
	}

	if err := s.cache.SetJSON(ctx, key, resp, cacheTTL); err != nil {
		s.logger.Warn("dashboard cache write failed",
			"key", key, "error", err)
	}

	return resp, nil
}

// InvalidateHousehold drops cached dashboard views after a write to the
// household's events. Best effort; the TTL bounds staleness anyway.
func (s *Service) InvalidateHousehold(ctx context.Context, householdID string) {
	keys := []string{
		summaryCacheKey(householdID),
		upcomingCacheKey(householdID, 7),
		upcomingCacheKey(householdID, 14),
		upcomingCacheKey(householdID, 30),
	}

	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.logger.Warn("dashboard cache invalidation failed",
			"household_id", householdID, "error", err)
	}
}

func (s *Service) today() time.Time {
	year, month, day := s.now().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func upcomingCacheKey(householdID string, days int) string {
	return fmt.Sprintf("dashboard:upcoming:%s:%d", householdID, days)
}

func summaryCacheKey(householdID string) string {
	return fmt.Sprintf("dashboard:summary:%s", householdID)
}
