package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/atpritam/Event-Flow/internal/app"
	"github.com/atpritam/Event-Flow/internal/auth"
	"github.com/atpritam/Event-Flow/internal/clock"
	"github.com/atpritam/Event-Flow/internal/metrics"
)

// OrderRedeemer is the minimal interface needed to redeem a ticket.
type OrderRedeemer interface {
	Redeem(ctx context.Context, orderID string, viewer *auth.Identity) (app.RedeemResult, error)
}

type redeemResponse struct {
	OrderID string    `json:"orderId"`
	EventID string    `json:"eventId"`
	Used    bool      `json:"used"`
	Status  string    `json:"status"`
	At      time.Time `json:"at"`
}

// HandleRedeem serves the manual redemption action. An already-used
// ticket answers 200 with status already_used; it is a legitimate
// outcome, not an error.
func HandleRedeem(svc OrderRedeemer, rec metrics.Recorder, clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := auth.IdentityFromContext(r.Context())

		res, err := svc.Redeem(r.Context(), chi.URLParam(r, "id"), viewer)
		if err != nil {
			rec.RecordRedemption("rejected")
			writeDomainError(w, err)
			return
		}

		status := "already_used"
		if res.Redeemed {
			status = "redeemed"
		}
		rec.RecordRedemption(status)

		writeJSON(w, http.StatusOK, redeemResponse{
			OrderID: res.Order.ID,
			EventID: res.Order.EventID,
			Used:    res.Order.Used,
			Status:  status,
			At:      clk.Now(),
		})
	}
}
