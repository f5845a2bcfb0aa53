package app

import (
	"context"
	"errors"
	"time"

	"github.com/atpritam/Event-Flow/internal/clock"
	"github.com/atpritam/Event-Flow/internal/domain"
	"github.com/atpritam/Event-Flow/internal/ticket"
)

// TicketRepository resolves an order together with its event and buyer.
type TicketRepository interface {
	GetOrderWithRefs(ctx context.Context, orderID string) (domain.Order, domain.Event, domain.User, error)
}

// TicketService validates scanned credentials against stored state. It
// is read-only; redemption lives in RedemptionService.
type TicketService struct {
	repo  TicketRepository
	clock clock.Clock
}

func NewTicketService(repo TicketRepository, clk clock.Clock) *TicketService {
	return &TicketService{
		repo:  repo,
		clock: clk,
	}
}

// TicketView is the read-only projection of an order/event/buyer shown
// to a validator's caller.
type TicketView struct {
	EventID      string
	EventTitle   string
	EventStarts  time.Time
	EventEnds    time.Time
	OrganizerID  string
	AttendeeName string
	OrderID      string
	Used         bool
	// Valid reports temporal validity: the event has not yet ended.
	// It is advisory display state, independent of Used.
	Valid bool
}

// Validate resolves a credential to its ticket view. A credential whose
// event or organizer references do not match the stored order resolves
// to ErrTicketNotFound, indistinguishable from a missing order, so a
// probe cannot learn whether an order id exists.
func (s *TicketService) Validate(ctx context.Context, cred ticket.Credential) (TicketView, error) {
	if !validID(cred.OrderID) {
		return TicketView{}, domain.ErrTicketNotFound
	}

	order, event, buyer, err := s.repo.GetOrderWithRefs(ctx, cred.OrderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) || errors.Is(err, domain.ErrInvalidID) {
			return TicketView{}, domain.ErrTicketNotFound
		}
		return TicketView{}, err
	}

	if order.EventID != cred.EventID || event.OrganizerID != cred.OrganizerID {
		return TicketView{}, domain.ErrTicketNotFound
	}

	// Tickets stay usable until the event ends, not just until it starts.
	now := s.clock.Now()
	return TicketView{
		EventID:      event.ID,
		EventTitle:   event.Title,
		EventStarts:  event.StartsAt,
		EventEnds:    event.EndsAt,
		OrganizerID:  event.OrganizerID,
		AttendeeName: buyer.DisplayName(),
		OrderID:      order.ID,
		Used:         order.Used,
		Valid:        !now.After(event.EndsAt),
	}, nil
}

// ValidateToken decodes a raw token and validates it in one step.
func (s *TicketService) ValidateToken(ctx context.Context, token string) (TicketView, error) {
	cred, err := ticket.Decode(token)
	if err != nil {
		return TicketView{}, err
	}
	return s.Validate(ctx, cred)
}
