package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/atpritam/Event-Flow/internal/domain"
	"github.com/atpritam/Event-Flow/internal/storage/postgres"
	"github.com/atpritam/Event-Flow/internal/testutil"
)

func TestTicketRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	testutil.ApplyMigrations(t, ctx, pool)
	repo := postgres.NewTicketRepository(pool)

	seed := func(t *testing.T, used bool) (orderID, eventID string) {
		t.Helper()
		testutil.TruncateAll(t, ctx, pool)
		testutil.InsertUser(t, ctx, pool, domain.User{ID: "user_org", Email: "org@example.com"})
		testutil.InsertUser(t, ctx, pool, domain.User{
			ID: "user_buyer", Email: "buyer@example.com", FirstName: "Ada", LastName: "Lovelace",
		})
		eventID = testutil.InsertEvent(t, ctx, pool, domain.Event{
			Title:       "Summer Gala",
			StartsAt:    time.Now().Add(-time.Hour),
			EndsAt:      time.Now().Add(2 * time.Hour),
			OrganizerID: "user_org",
		})
		orderID = testutil.InsertOrder(t, ctx, pool, domain.Order{
			EventID: eventID, BuyerID: "user_buyer", TotalAmountCents: 2500, Used: used,
		})
		return orderID, eventID
	}

	t.Run("GetOrderWithRefs joins event and buyer", func(t *testing.T) {
		orderID, eventID := seed(t, false)

		order, event, buyer, err := repo.GetOrderWithRefs(ctx, orderID)
		if err != nil {
			t.Fatalf("get order with refs: %v", err)
		}
		if order.ID != orderID || order.EventID != eventID {
			t.Fatalf("unexpected order %+v", order)
		}
		if event.OrganizerID != "user_org" {
			t.Fatalf("unexpected event %+v", event)
		}
		if buyer.DisplayName() != "Ada Lovelace" {
			t.Fatalf("unexpected buyer %+v", buyer)
		}
	})

	t.Run("GetOrderWithRefs missing order", func(t *testing.T) {
		seed(t, false)

		_, _, _, err := repo.GetOrderWithRefs(ctx, "00000000-0000-4000-8000-000000000000")
		if err != domain.ErrOrderNotFound {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("GetOrderWithRefs invalid id", func(t *testing.T) {
		seed(t, false)

		_, _, _, err := repo.GetOrderWithRefs(ctx, "not-a-uuid")
		if err != domain.ErrInvalidID {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	})

	t.Run("MarkUsed transitions exactly once", func(t *testing.T) {
		orderID, _ := seed(t, false)

		order, transitioned, err := repo.MarkUsed(ctx, orderID)
		if err != nil {
			t.Fatalf("first mark: %v", err)
		}
		if !transitioned || !order.Used {
			t.Fatalf("expected transition, got transitioned=%v order=%+v", transitioned, order)
		}

		order, transitioned, err = repo.MarkUsed(ctx, orderID)
		if err != nil {
			t.Fatalf("second mark: %v", err)
		}
		if transitioned {
			t.Fatalf("expected no second transition")
		}
		if !order.Used {
			t.Fatalf("expected existing used state to be returned")
		}
	})

	t.Run("MarkUsed missing order", func(t *testing.T) {
		seed(t, false)

		_, _, err := repo.MarkUsed(ctx, "00000000-0000-4000-8000-000000000000")
		if err != domain.ErrOrderNotFound {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("concurrent MarkUsed yields one winner", func(t *testing.T) {
		orderID, _ := seed(t, false)

		const n = 8
		var wg sync.WaitGroup
		wins := make([]bool, n)
		errs := make([]error, n)

		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, wins[i], errs[i] = repo.MarkUsed(ctx, orderID)
			}(i)
		}
		wg.Wait()

		var winners int
		for i := 0; i < n; i++ {
			if errs[i] != nil {
				t.Fatalf("mark %d: %v", i, errs[i])
			}
			if wins[i] {
				winners++
			}
		}
		if winners != 1 {
			t.Fatalf("expected exactly 1 winner, got %d", winners)
		}

		var used bool
		if err := pool.QueryRow(ctx, `SELECT used FROM orders WHERE id = $1`, orderID).Scan(&used); err != nil {
			t.Fatalf("read used flag: %v", err)
		}
		if !used {
			t.Fatalf("expected used=true in store")
		}
	})
}
