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

type createEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	PriceCents  int64     `json:"priceCents"`
	IsFree      bool      `json:"isFree"`
}

type eventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	PriceCents  int64     `json:"priceCents"`
	IsFree      bool      `json:"isFree"`
	OrganizerID string    `json:"organizerId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func eventFromDomain(e domain.Event) eventResponse {
	return eventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		PriceCents:  e.PriceCents,
		IsFree:      e.IsFree,
		OrganizerID: e.OrganizerID,
		CreatedAt:   e.CreatedAt,
	}
}

// HandleCreateEvent creates an event owned by the authenticated caller.
func HandleCreateEvent(svc *app.EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		event, err := svc.CreateEvent(r.Context(), app.CreateEventInput{
			Title:       req.Title,
			Description: req.Description,
			Location:    req.Location,
			StartsAt:    req.StartsAt,
			EndsAt:      req.EndsAt,
			PriceCents:  req.PriceCents,
			IsFree:      req.IsFree,
		}, auth.IdentityFromContext(r.Context()))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, eventFromDomain(event))
	}
}

func HandleGetEvent(svc *app.EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event, err := svc.GetEvent(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, eventFromDomain(event))
	}
}

func HandleListEvents(svc *app.EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := svc.ListEvents(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}

		out := make([]eventResponse, 0, len(events))
		for _, e := range events {
			out = append(out, eventFromDomain(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

type eventOrderRowResponse struct {
	OrderID          string    `json:"orderId"`
	BuyerName        string    `json:"buyerName"`
	TotalAmountCents int64     `json:"totalAmountCents"`
	Used             bool      `json:"used"`
	CreatedAt        time.Time `json:"createdAt"`
}

// HandleListEventOrders returns an event's attendee listing for its
// organizer. The optional ?search= filters on buyer name.
func HandleListEventOrders(svc *app.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListOrdersByEvent(
			r.Context(),
			chi.URLParam(r, "id"),
			r.URL.Query().Get("search"),
			auth.IdentityFromContext(r.Context()),
		)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		out := make([]eventOrderRowResponse, 0, len(rows))
		for _, row := range rows {
			out = append(out, eventOrderRowResponse{
				OrderID:          row.OrderID,
				BuyerName:        row.BuyerName,
				TotalAmountCents: row.TotalAmountCents,
				Used:             row.Used,
				CreatedAt:        row.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}
