package app

import (
	"context"
	"sync"
	"testing"

	"github.com/atpritam/Event-Flow/internal/auth"
	"github.com/atpritam/Event-Flow/internal/domain"
)

func organizerIdentity() *auth.Identity {
	return &auth.Identity{Subject: "user_org"}
}

func newRedeemFixture() *fakeRedemptionRepo {
	return &fakeRedemptionRepo{
		orders: map[string]domain.Order{
			testOrderID: {ID: testOrderID, EventID: testEventID, BuyerID: "user_buyer", Used: false},
		},
		events: map[string]domain.Event{
			testEventID: {ID: testEventID, Title: "Summer Gala", OrganizerID: "user_org"},
		},
	}
}

func TestRedemptionService_Redeem(t *testing.T) {
	t.Parallel()

	t.Run("organizer redeems unused ticket", func(t *testing.T) {
		repo := newRedeemFixture()
		svc := NewRedemptionService(repo)

		res, err := svc.Redeem(context.Background(), testOrderID, organizerIdentity())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !res.Redeemed {
			t.Fatalf("expected Redeemed=true")
		}
		if !res.Order.Used {
			t.Fatalf("expected order used=true")
		}
		if repo.markCalls != 1 {
			t.Fatalf("expected 1 conditional update, got %d", repo.markCalls)
		}
	})

	t.Run("second redeem reports already used without re-applying", func(t *testing.T) {
		repo := newRedeemFixture()
		svc := NewRedemptionService(repo)

		if _, err := svc.Redeem(context.Background(), testOrderID, organizerIdentity()); err != nil {
			t.Fatalf("first redeem: %v", err)
		}
		res, err := svc.Redeem(context.Background(), testOrderID, organizerIdentity())
		if err != nil {
			t.Fatalf("second redeem: %v", err)
		}
		if res.Redeemed {
			t.Fatalf("expected Redeemed=false on second call")
		}
		if !res.Order.Used {
			t.Fatalf("expected existing state to be carried")
		}
		if repo.markCalls != 1 {
			t.Fatalf("expected the used flag to be written exactly once, got %d writes", repo.markCalls)
		}
	})

	t.Run("non-organizer is rejected regardless of used state", func(t *testing.T) {
		repo := newRedeemFixture()
		svc := NewRedemptionService(repo)

		for _, viewer := range []*auth.Identity{
			{Subject: "user_buyer"}, // the attendee themselves
			{Subject: "user_other"},
		} {
			if _, err := svc.Redeem(context.Background(), testOrderID, viewer); err != domain.ErrUnauthorized {
				t.Fatalf("viewer %s: expected ErrUnauthorized, got %v", viewer.Subject, err)
			}
		}

		// Same rejection after the ticket has been used.
		if _, err := svc.Redeem(context.Background(), testOrderID, organizerIdentity()); err != nil {
			t.Fatalf("organizer redeem: %v", err)
		}
		if _, err := svc.Redeem(context.Background(), testOrderID, &auth.Identity{Subject: "user_other"}); err != domain.ErrUnauthorized {
			t.Fatalf("expected ErrUnauthorized after use, got %v", err)
		}
	})

	t.Run("anonymous viewer is rejected", func(t *testing.T) {
		svc := NewRedemptionService(newRedeemFixture())

		if _, err := svc.Redeem(context.Background(), testOrderID, nil); err != domain.ErrUnauthorized {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("invalid order id", func(t *testing.T) {
		svc := NewRedemptionService(newRedeemFixture())

		if _, err := svc.Redeem(context.Background(), "not-a-uuid", organizerIdentity()); err != domain.ErrInvalidID {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	})

	t.Run("missing order", func(t *testing.T) {
		svc := NewRedemptionService(newRedeemFixture())

		if _, err := svc.Redeem(context.Background(), testOrderID2, organizerIdentity()); err != domain.ErrOrderNotFound {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})
}

// Concurrent redemptions of one initially-unused order must produce
// exactly one transition; the fake mirrors the store's compare-and-set.
func TestRedemptionService_ConcurrentRedeems(t *testing.T) {
	t.Parallel()

	const n = 16

	repo := newRedeemFixture()
	svc := NewRedemptionService(repo)

	var wg sync.WaitGroup
	results := make([]RedeemResult, n)
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Redeem(context.Background(), testOrderID, organizerIdentity())
		}(i)
	}
	wg.Wait()

	var redeemed, alreadyUsed int
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("redeem %d: %v", i, errs[i])
		}
		if results[i].Redeemed {
			redeemed++
		} else {
			alreadyUsed++
		}
		if !results[i].Order.Used {
			t.Fatalf("redeem %d: expected used=true in result", i)
		}
	}
	if redeemed != 1 {
		t.Fatalf("expected exactly 1 successful transition, got %d", redeemed)
	}
	if alreadyUsed != n-1 {
		t.Fatalf("expected %d already-used outcomes, got %d", n-1, alreadyUsed)
	}
	if repo.transitions != 1 {
		t.Fatalf("expected used flag written exactly once, got %d", repo.transitions)
	}
}

type fakeRedemptionRepo struct {
	mu          sync.Mutex
	orders      map[string]domain.Order
	events      map[string]domain.Event
	markCalls   int
	transitions int
}

func (f *fakeRedemptionRepo) GetOrderWithEvent(_ context.Context, orderID string) (domain.Order, domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return domain.Order{}, domain.Event{}, domain.ErrOrderNotFound
	}
	event, ok := f.events[order.EventID]
	if !ok {
		return domain.Order{}, domain.Event{}, domain.ErrEventNotFound
	}
	return order, event, nil
}

// MarkUsed mimics UPDATE ... SET used = TRUE WHERE id = $1 AND used = FALSE.
func (f *fakeRedemptionRepo) MarkUsed(_ context.Context, orderID string) (domain.Order, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markCalls++
	order, ok := f.orders[orderID]
	if !ok {
		return domain.Order{}, false, domain.ErrOrderNotFound
	}
	if order.Used {
		return order, false, nil
	}
	f.transitions++
	order.Used = true
	f.orders[orderID] = order
	return order, true, nil
}
