package app

import (
	"context"
	"errors"
	"testing"

	"github.com/atpritam/Event-Flow/internal/auth"
	"github.com/atpritam/Event-Flow/internal/domain"
)

func autoView() TicketView {
	return TicketView{
		OrderID:     testOrderID,
		OrganizerID: "user_org",
		Used:        false,
		Valid:       true,
	}
}

func TestAutoRedeemPolicy_Apply(t *testing.T) {
	t.Parallel()

	t.Run("redeems once for opted-in organizer", func(t *testing.T) {
		redeemer := &fakeRedeemer{}
		policy := NewAutoRedeemPolicy(fakePrefs{"user_org": true}, redeemer)

		out, err := policy.Apply(context.Background(), organizerIdentity(), autoView())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !out.Attempted {
			t.Fatalf("expected a redemption attempt")
		}
		if !out.Result.Redeemed {
			t.Fatalf("expected Redeemed=true")
		}
		if redeemer.calls != 1 {
			t.Fatalf("expected 1 redeem call, got %d", redeemer.calls)
		}
	})

	t.Run("re-render does not repeat the attempt", func(t *testing.T) {
		redeemer := &fakeRedeemer{}
		policy := NewAutoRedeemPolicy(fakePrefs{"user_org": true}, redeemer)

		if _, err := policy.Apply(context.Background(), organizerIdentity(), autoView()); err != nil {
			t.Fatalf("first apply: %v", err)
		}
		out, err := policy.Apply(context.Background(), organizerIdentity(), autoView())
		if err != nil {
			t.Fatalf("second apply: %v", err)
		}
		if out.Attempted {
			t.Fatalf("expected second apply to be suppressed")
		}
		if redeemer.calls != 1 {
			t.Fatalf("expected 1 redeem call, got %d", redeemer.calls)
		}
	})

	t.Run("failure surfaces once and is not retried", func(t *testing.T) {
		redeemer := &fakeRedeemer{err: errors.New("store down")}
		policy := NewAutoRedeemPolicy(fakePrefs{"user_org": true}, redeemer)

		out, err := policy.Apply(context.Background(), organizerIdentity(), autoView())
		if err == nil {
			t.Fatalf("expected error from automatic call")
		}
		if !out.Attempted {
			t.Fatalf("expected Attempted=true on failure")
		}

		out, err = policy.Apply(context.Background(), organizerIdentity(), autoView())
		if err != nil || out.Attempted {
			t.Fatalf("expected suppressed re-attempt, got attempted=%v err=%v", out.Attempted, err)
		}
		if redeemer.calls != 1 {
			t.Fatalf("expected 1 redeem call, got %d", redeemer.calls)
		}
	})

	t.Run("skips when preference disabled", func(t *testing.T) {
		redeemer := &fakeRedeemer{}
		policy := NewAutoRedeemPolicy(fakePrefs{}, redeemer)

		out, err := policy.Apply(context.Background(), organizerIdentity(), autoView())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.Attempted || redeemer.calls != 0 {
			t.Fatalf("expected no attempt when disabled")
		}
	})

	t.Run("skips attendee viewers", func(t *testing.T) {
		redeemer := &fakeRedeemer{}
		policy := NewAutoRedeemPolicy(fakePrefs{"user_buyer": true}, redeemer)

		out, _ := policy.Apply(context.Background(), &auth.Identity{Subject: "user_buyer"}, autoView())
		if out.Attempted || redeemer.calls != 0 {
			t.Fatalf("expected no attempt for non-organizer")
		}
	})

	t.Run("skips used and expired tickets", func(t *testing.T) {
		redeemer := &fakeRedeemer{}
		policy := NewAutoRedeemPolicy(fakePrefs{"user_org": true}, redeemer)

		used := autoView()
		used.Used = true
		expired := autoView()
		expired.Valid = false

		for _, view := range []TicketView{used, expired} {
			out, err := policy.Apply(context.Background(), organizerIdentity(), view)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if out.Attempted {
				t.Fatalf("expected no attempt for view %+v", view)
			}
		}
		if redeemer.calls != 0 {
			t.Fatalf("expected 0 redeem calls, got %d", redeemer.calls)
		}
	})

	t.Run("preference store failure propagates", func(t *testing.T) {
		policy := NewAutoRedeemPolicy(errPrefs{}, &fakeRedeemer{})

		if _, err := policy.Apply(context.Background(), organizerIdentity(), autoView()); err == nil {
			t.Fatalf("expected preference store error")
		}
	})
}

type fakePrefs map[string]bool

func (f fakePrefs) AutoMark(_ context.Context, subject string) (bool, error) {
	return f[subject], nil
}

func (f fakePrefs) SetAutoMark(_ context.Context, subject string, enabled bool) error {
	f[subject] = enabled
	return nil
}

type errPrefs struct{}

func (errPrefs) AutoMark(context.Context, string) (bool, error) {
	return false, errors.New("prefs unavailable")
}

func (errPrefs) SetAutoMark(context.Context, string, bool) error {
	return errors.New("prefs unavailable")
}

type fakeRedeemer struct {
	calls int
	err   error
}

func (f *fakeRedeemer) Redeem(_ context.Context, orderID string, _ *auth.Identity) (RedeemResult, error) {
	f.calls++
	if f.err != nil {
		return RedeemResult{}, f.err
	}
	return RedeemResult{
		Order:    domain.Order{ID: orderID, Used: true},
		Redeemed: true,
	}, nil
}
