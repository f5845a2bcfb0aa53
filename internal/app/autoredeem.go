package app

import (
	"context"
	"sync"

	"github.com/atpritam/Event-Flow/internal/auth"
)

// PreferenceStore persists the per-scanner auto-mark preference.
type PreferenceStore interface {
	AutoMark(ctx context.Context, subject string) (bool, error)
	SetAutoMark(ctx context.Context, subject string, enabled bool) error
}

// Redeemer is the slice of RedemptionService the policy needs.
type Redeemer interface {
	Redeem(ctx context.Context, orderID string, viewer *auth.Identity) (RedeemResult, error)
}

// AutoRedeemPolicy redeems a scanned ticket without an explicit action
// when the scanner has opted in. Each (scanner, order) pair is attempted
// at most once per process so a re-scan cannot turn a failed call into a
// retry loop; a later manual redeem is always possible.
type AutoRedeemPolicy struct {
	prefs    PreferenceStore
	redeemer Redeemer

	mu        sync.Mutex
	attempted map[string]struct{}
}

const attemptedHighWater = 8192

func NewAutoRedeemPolicy(prefs PreferenceStore, redeemer Redeemer) *AutoRedeemPolicy {
	return &AutoRedeemPolicy{
		prefs:     prefs,
		redeemer:  redeemer,
		attempted: make(map[string]struct{}),
	}
}

type AutoRedeemOutcome struct {
	// Attempted reports whether a redemption call was made at all.
	Attempted bool
	Result    RedeemResult
}

// Apply runs the policy for a resolved ticket view. It is a no-op when
// the viewer is not the organizer, the ticket is already used or
// expired, the preference is off, or this pair was attempted before.
// A failed automatic call surfaces its error exactly once.
func (p *AutoRedeemPolicy) Apply(ctx context.Context, viewer *auth.Identity, view TicketView) (AutoRedeemOutcome, error) {
	if !IsOrganizer(viewer, view.OrganizerID) {
		return AutoRedeemOutcome{}, nil
	}
	if view.Used || !view.Valid {
		return AutoRedeemOutcome{}, nil
	}

	enabled, err := p.prefs.AutoMark(ctx, viewer.Subject)
	if err != nil {
		return AutoRedeemOutcome{}, err
	}
	if !enabled {
		return AutoRedeemOutcome{}, nil
	}

	if !p.markAttempt(viewer.Subject + "\x00" + view.OrderID) {
		return AutoRedeemOutcome{}, nil
	}

	res, err := p.redeemer.Redeem(ctx, view.OrderID, viewer)
	if err != nil {
		return AutoRedeemOutcome{Attempted: true}, err
	}
	return AutoRedeemOutcome{Attempted: true, Result: res}, nil
}

// markAttempt records the pair and reports whether it was new. The set
// resets wholesale at a high-water mark; the conditional update keeps
// duplicate attempts harmless, this guard only suppresses them.
func (p *AutoRedeemPolicy) markAttempt(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, seen := p.attempted[key]; seen {
		return false
	}
	if len(p.attempted) >= attemptedHighWater {
		p.attempted = make(map[string]struct{})
	}
	p.attempted[key] = struct{}{}
	return true
}
