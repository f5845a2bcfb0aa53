package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atpritam/Event-Flow/internal/app"
	"github.com/atpritam/Event-Flow/internal/auth"
	"github.com/atpritam/Event-Flow/internal/domain"
	"github.com/atpritam/Event-Flow/internal/ticket"
)

// OrderResolver is the minimal interface needed to build a ticket for
// an order.
type OrderResolver interface {
	GetOrder(ctx context.Context, orderID string) (app.OrderDetail, error)
}

type ticketResponse struct {
	Credential ticket.Credential `json:"credential"`
	Token      string            `json:"token"`
	URL        string            `json:"url"`
}

// resolveTicket loads the order and checks that the caller is its buyer
// or the event's organizer; everyone else gets the not-found answer so
// order ids cannot be probed.
func resolveTicket(svc OrderResolver, r *http.Request) (ticket.Credential, error) {
	detail, err := svc.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return ticket.Credential{}, err
	}

	viewer := auth.IdentityFromContext(r.Context())
	isBuyer := viewer != nil && viewer.Subject == detail.Order.BuyerID
	if !isBuyer && !app.IsOrganizer(viewer, detail.Event.OrganizerID) {
		return ticket.Credential{}, domain.ErrOrderNotFound
	}

	return ticket.Credential{
		EventID:     detail.Event.ID,
		OrderID:     detail.Order.ID,
		OrganizerID: detail.Event.OrganizerID,
	}, nil
}

// HandleGetTicket returns the credential and scannable URL for an order.
func HandleGetTicket(svc OrderResolver, baseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cred, err := resolveTicket(svc, r)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ticketResponse{
			Credential: cred,
			Token:      ticket.Encode(cred),
			URL:        ticket.PayloadURL(baseURL, cred),
		})
	}
}

// HandleTicketQR renders the order's scannable code as a PNG.
func HandleTicketQR(svc OrderResolver, baseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cred, err := resolveTicket(svc, r)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		png, err := ticket.QRCodePNG(baseURL, cred)
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(png)
	}
}
