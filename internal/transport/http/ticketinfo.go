package http

import (
	"context"
	"net/http"
	"time"

	"github.com/atpritam/Event-Flow/internal/app"
	"github.com/atpritam/Event-Flow/internal/auth"
	"github.com/atpritam/Event-Flow/internal/metrics"
	"github.com/atpritam/Event-Flow/internal/ticket"
)

// AutoRedeemer is the policy invoked for organizer-viewable tickets.
type AutoRedeemer interface {
	Apply(ctx context.Context, viewer *auth.Identity, view app.TicketView) (app.AutoRedeemOutcome, error)
}

type ticketInfoPageResponse struct {
	Role       app.ViewerRole     `json:"role"`
	Status     app.DisplayStatus  `json:"status"`
	TicketInfo ticketInfoResponse `json:"ticketInfo"`
	// AutoMarked reports that the auto-redeem policy fired on this scan.
	AutoMarked bool   `json:"autoMarked"`
	Error      string `json:"error,omitempty"`
}

// HandleTicketInfo serves the scanned-URL landing view: it decodes the
// data query parameter, validates the credential against the store, and
// projects the view the access gate selects for the caller. For an
// opted-in organizer the auto-redeem policy runs before the status is
// computed.
func HandleTicketInfo(svc TicketValidator, policy AutoRedeemer, rec metrics.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() { rec.RecordScanLatency(time.Since(start)) }()

		cred, err := ticket.DecodeQueryParam(r.URL.Query().Get("data"))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		view, err := svc.Validate(r.Context(), cred)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		viewer := auth.IdentityFromContext(r.Context())
		role := app.RoleFor(viewer, view.OrganizerID)

		resp := ticketInfoPageResponse{Role: role}

		markedNow := false
		if role == app.RoleOrganizer {
			outcome, err := policy.Apply(r.Context(), viewer, view)
			switch {
			case err != nil:
				resp.Error = "automatic redemption failed, mark manually"
			case outcome.Attempted:
				markedNow = outcome.Result.Redeemed
				view.Used = outcome.Result.Order.Used
			}
		}

		resp.Status = app.StatusFor(view, markedNow)
		resp.AutoMarked = markedNow
		resp.TicketInfo = *ticketInfoFromView(view)

		writeJSON(w, http.StatusOK, resp)
	}
}
