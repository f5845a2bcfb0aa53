package app

import (
	"context"
	"errors"
	"time"

	"github.com/atpritam/Event-Flow/internal/auth"
	"github.com/atpritam/Event-Flow/internal/clock"
	"github.com/atpritam/Event-Flow/internal/domain"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order domain.Order) error
	GetOrderWithRefs(ctx context.Context, orderID string) (domain.Order, domain.Event, domain.User, error)
	GetEvent(ctx context.Context, eventID string) (domain.Event, error)
	ListOrdersByEvent(ctx context.Context, eventID, buyerNameSearch string) ([]EventOrderRow, error)
}

// EventOrderRow is one line of an organizer's attendee listing.
type EventOrderRow struct {
	OrderID          string
	BuyerName        string
	TotalAmountCents int64
	Used             bool
	CreatedAt        time.Time
}

// OrderService records completed purchases and serves order lookups.
// Payment itself happens at the external processor; this service only
// consumes the resulting order record.
type OrderService struct {
	repo  OrderRepository
	clock clock.Clock
}

func NewOrderService(repo OrderRepository, clk clock.Clock) *OrderService {
	return &OrderService{
		repo:  repo,
		clock: clk,
	}
}

type RecordOrderInput struct {
	EventID          string
	BuyerID          string
	TotalAmountCents int64
}

// RecordOrder persists the order produced by a completed checkout.
func (s *OrderService) RecordOrder(ctx context.Context, in RecordOrderInput) (domain.Order, error) {
	if !validID(in.EventID) {
		return domain.Order{}, domain.ErrInvalidID
	}
	if in.BuyerID == "" {
		return domain.Order{}, domain.ErrIdentityRequired
	}
	if in.TotalAmountCents < 0 {
		return domain.Order{}, domain.ErrInvalidAmount
	}

	if _, err := s.repo.GetEvent(ctx, in.EventID); err != nil {
		return domain.Order{}, err
	}

	order := domain.Order{
		ID:               newID(),
		EventID:          in.EventID,
		BuyerID:          in.BuyerID,
		TotalAmountCents: in.TotalAmountCents,
		Used:             false,
		CreatedAt:        s.clock.Now(),
	}
	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

// OrderDetail is an order resolved with its event and buyer.
type OrderDetail struct {
	Order domain.Order
	Event domain.Event
	Buyer domain.User
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (OrderDetail, error) {
	if !validID(orderID) {
		return OrderDetail{}, domain.ErrInvalidID
	}
	order, event, buyer, err := s.repo.GetOrderWithRefs(ctx, orderID)
	if err != nil {
		return OrderDetail{}, err
	}
	return OrderDetail{Order: order, Event: event, Buyer: buyer}, nil
}

// ListOrdersByEvent returns an event's orders for its organizer,
// optionally filtered by a case-insensitive buyer-name search. Only the
// event's organizer may list; everyone else gets ErrUnauthorized.
func (s *OrderService) ListOrdersByEvent(ctx context.Context, eventID, search string, viewer *auth.Identity) ([]EventOrderRow, error) {
	if viewer == nil {
		return nil, domain.ErrUnauthorized
	}
	if !validID(eventID) {
		return nil, domain.ErrInvalidID
	}

	event, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	if !IsOrganizer(viewer, event.OrganizerID) {
		return nil, domain.ErrUnauthorized
	}

	return s.repo.ListOrdersByEvent(ctx, eventID, search)
}
