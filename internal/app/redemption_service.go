package app

import (
	"context"
	"errors"

	"github.com/atpritam/Event-Flow/internal/auth"
	"github.com/atpritam/Event-Flow/internal/domain"
)

// RedemptionRepository is the minimal store surface for redeeming. The
// MarkUsed implementation must be a single atomic conditional update
// (used=false to used=true); the store, not this service, is the
// serialization point for concurrent redemptions of one order.
type RedemptionRepository interface {
	GetOrderWithEvent(ctx context.Context, orderID string) (domain.Order, domain.Event, error)
	// MarkUsed flips the used flag if and only if it is currently false,
	// returning the order's state after the attempt and whether this call
	// performed the transition.
	MarkUsed(ctx context.Context, orderID string) (domain.Order, bool, error)
}

// RedemptionService applies the one-way Unused -> Used transition.
type RedemptionService struct {
	repo RedemptionRepository
}

func NewRedemptionService(repo RedemptionRepository) *RedemptionService {
	return &RedemptionService{repo: repo}
}

type RedeemResult struct {
	Order domain.Order
	// Redeemed is false when the ticket had already been used; that is a
	// legitimate outcome carrying the existing state, not a failure.
	Redeemed bool
}

// Redeem marks an order's ticket as used, permanently. Authorization is
// derived freshly here from the stored event's organizer; the organizer
// id a credential carries is never trusted. Failures report only "not
// authorized", without naming the real organizer.
func (s *RedemptionService) Redeem(ctx context.Context, orderID string, viewer *auth.Identity) (RedeemResult, error) {
	if viewer == nil {
		return RedeemResult{}, domain.ErrUnauthorized
	}
	if !validID(orderID) {
		return RedeemResult{}, domain.ErrInvalidID
	}

	order, event, err := s.repo.GetOrderWithEvent(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidID) {
			return RedeemResult{}, domain.ErrInvalidID
		}
		return RedeemResult{}, err
	}

	if !IsOrganizer(viewer, event.OrganizerID) {
		return RedeemResult{}, domain.ErrUnauthorized
	}

	// The pre-read of order.Used above is advisory only; the conditional
	// update decides who wins a race.
	if order.Used {
		return RedeemResult{Order: order, Redeemed: false}, nil
	}

	updated, transitioned, err := s.repo.MarkUsed(ctx, orderID)
	if err != nil {
		return RedeemResult{}, err
	}
	return RedeemResult{Order: updated, Redeemed: transitioned}, nil
}
