package app

import (
	"context"
	"time"

	"github.com/atpritam/Event-Flow/internal/auth"
	"github.com/atpritam/Event-Flow/internal/clock"
	"github.com/atpritam/Event-Flow/internal/domain"
)

type EventRepository interface {
	CreateEvent(ctx context.Context, event domain.Event) error
	GetEvent(ctx context.Context, eventID string) (domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
}

// EventService covers the organizer-facing event surface. The
// redemption workflow only ever reads events.
type EventService struct {
	repo  EventRepository
	clock clock.Clock
}

func NewEventService(repo EventRepository, clk clock.Clock) *EventService {
	return &EventService{
		repo:  repo,
		clock: clk,
	}
}

type CreateEventInput struct {
	Title       string
	Description string
	Location    string
	StartsAt    time.Time
	EndsAt      time.Time
	PriceCents  int64
	IsFree      bool
}

func (s *EventService) CreateEvent(ctx context.Context, in CreateEventInput, viewer *auth.Identity) (domain.Event, error) {
	if viewer == nil {
		return domain.Event{}, domain.ErrIdentityRequired
	}
	if in.Title == "" {
		return domain.Event{}, domain.ErrTitleRequired
	}

	now := s.clock.Now()
	startsAt := in.StartsAt
	if startsAt.IsZero() {
		startsAt = now
	}
	endsAt := in.EndsAt
	if endsAt.IsZero() {
		endsAt = startsAt
	}
	if endsAt.Before(startsAt) {
		return domain.Event{}, domain.ErrInvalidEventDates
	}
	if in.PriceCents < 0 {
		return domain.Event{}, domain.ErrInvalidAmount
	}

	event := domain.Event{
		ID:          newID(),
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		PriceCents:  in.PriceCents,
		IsFree:      in.IsFree || in.PriceCents == 0,
		OrganizerID: viewer.Subject,
		CreatedAt:   now,
	}

	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

func (s *EventService) GetEvent(ctx context.Context, eventID string) (domain.Event, error) {
	if !validID(eventID) {
		return domain.Event{}, domain.ErrInvalidID
	}
	return s.repo.GetEvent(ctx, eventID)
}

func (s *EventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	return s.repo.ListEvents(ctx)
}
