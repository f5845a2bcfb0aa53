package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/atpritam/Event-Flow/internal/app"
	"github.com/atpritam/Event-Flow/internal/auth"
	"github.com/atpritam/Event-Flow/internal/domain"
)

type createOrderRequest struct {
	EventID          string `json:"eventId"`
	TotalAmountCents int64  `json:"totalAmountCents"`
}

type orderResponse struct {
	ID               string    `json:"id"`
	EventID          string    `json:"eventId"`
	BuyerID          string    `json:"buyerId"`
	TotalAmountCents int64     `json:"totalAmountCents"`
	Used             bool      `json:"used"`
	CreatedAt        time.Time `json:"createdAt"`
}

func orderFromDomain(o domain.Order) orderResponse {
	return orderResponse{
		ID:               o.ID,
		EventID:          o.EventID,
		BuyerID:          o.BuyerID,
		TotalAmountCents: o.TotalAmountCents,
		Used:             o.Used,
		CreatedAt:        o.CreatedAt,
	}
}

// HandleCreateOrder records a completed checkout as an order for the
// authenticated buyer.
func HandleCreateOrder(svc *app.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := auth.IdentityFromContext(r.Context())
		if viewer == nil {
			writeError(w, http.StatusUnauthorized, codeIdentityRequired, "authentication required")
			return
		}

		var req createOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		order, err := svc.RecordOrder(r.Context(), app.RecordOrderInput{
			EventID:          req.EventID,
			BuyerID:          viewer.Subject,
			TotalAmountCents: req.TotalAmountCents,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, orderFromDomain(order))
	}
}

type orderDetailResponse struct {
	Order orderResponse `json:"order"`
	Event eventResponse `json:"event"`
	Buyer userResponse  `json:"buyer"`
}

// HandleGetOrder returns an order with its event and buyer. Only the
// buyer and the event's organizer may see it.
func HandleGetOrder(svc *app.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detail, err := svc.GetOrder(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		viewer := auth.IdentityFromContext(r.Context())
		isBuyer := viewer != nil && viewer.Subject == detail.Order.BuyerID
		if !isBuyer && !app.IsOrganizer(viewer, detail.Event.OrganizerID) {
			writeDomainError(w, domain.ErrOrderNotFound)
			return
		}

		writeJSON(w, http.StatusOK, orderDetailResponse{
			Order: orderFromDomain(detail.Order),
			Event: eventFromDomain(detail.Event),
			Buyer: userFromDomain(detail.Buyer),
		})
	}
}
