package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/atpritam/Event-Flow/internal/app"
	"github.com/atpritam/Event-Flow/internal/domain"
	"github.com/atpritam/Event-Flow/internal/metrics"
	"github.com/atpritam/Event-Flow/internal/ticket"
)

// TicketValidator is the minimal interface needed to validate a
// scanned credential.
type TicketValidator interface {
	Validate(ctx context.Context, cred ticket.Credential) (app.TicketView, error)
}

type validateTicketRequest struct {
	OrderID     string `json:"orderId"`
	EventID     string `json:"eventId"`
	OrganizerID string `json:"organizerId"`
}

type ticketInfoResponse struct {
	EventID          string    `json:"eventId"`
	EventName        string    `json:"eventName"`
	EventDate        time.Time `json:"eventDate"`
	EventEndDateTime time.Time `json:"eventEndDateTime"`
	AttendeeName     string    `json:"attendeeName"`
	OrderID          string    `json:"orderId"`
	Used             bool      `json:"used"`
	Valid            bool      `json:"valid"`
}

type validateTicketResponse struct {
	IsValid    bool                `json:"isValid"`
	TicketInfo *ticketInfoResponse `json:"ticketInfo,omitempty"`
	Error      string              `json:"error,omitempty"`
}

// HandleValidateTicket serves the scanner's validation call. A missing
// order and a credential mismatch are deliberately the same answer.
func HandleValidateTicket(svc TicketValidator, rec metrics.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req validateTicketRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			rec.RecordValidation("malformed")
			writeJSON(w, http.StatusBadRequest, validateTicketResponse{IsValid: false, Error: "invalid request body"})
			return
		}

		view, err := svc.Validate(r.Context(), ticket.Credential{
			EventID:     req.EventID,
			OrderID:     req.OrderID,
			OrganizerID: req.OrganizerID,
		})
		if err != nil {
			if errors.Is(err, domain.ErrTicketNotFound) || errors.Is(err, domain.ErrMalformedCredential) {
				rec.RecordValidation("not_found")
				writeJSON(w, http.StatusBadRequest, validateTicketResponse{IsValid: false})
				return
			}
			rec.RecordValidation("error")
			writeJSON(w, http.StatusInternalServerError, validateTicketResponse{IsValid: false, Error: "internal server error"})
			return
		}

		rec.RecordValidation("valid")
		writeJSON(w, http.StatusOK, validateTicketResponse{
			IsValid:    true,
			TicketInfo: ticketInfoFromView(view),
		})
	}
}

func ticketInfoFromView(view app.TicketView) *ticketInfoResponse {
	return &ticketInfoResponse{
		EventID:          view.EventID,
		EventName:        view.EventTitle,
		EventDate:        view.EventStarts,
		EventEndDateTime: view.EventEnds,
		AttendeeName:     view.AttendeeName,
		OrderID:          view.OrderID,
		Used:             view.Used,
		Valid:            view.Valid,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
