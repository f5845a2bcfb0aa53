package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atpritam/Event-Flow/internal/domain"
)

const (
	codeMethodNotAllowed    = "method_not_allowed"
	codeNotFound            = "not_found"
	codeInvalidRequestBody  = "invalid_request_body"
	codeMalformedCredential = "malformed_credential"
	codeTicketNotFound      = "ticket_not_found"
	codeUnauthorized        = "unauthorized"
	codeInvalidID           = "invalid_id"
	codeEventNotFound       = "event_not_found"
	codeOrderNotFound       = "order_not_found"
	codeUserNotFound        = "user_not_found"
	codeTitleRequired       = "title_required"
	codeInvalidEventDates   = "invalid_event_dates"
	codeInvalidAmount       = "invalid_amount"
	codeDuplicateOrder      = "duplicate_order"
	codeIdentityRequired    = "identity_required"
	codeForbidden           = "forbidden"
	codeRateLimited         = "rate_limited"
	codeInternalError       = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps the error taxonomy onto HTTP statuses. Unknown
// errors are store or network failures; they surface as a generic
// try-again message with no internal detail.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMalformedCredential):
		writeError(w, http.StatusBadRequest, codeMalformedCredential, err.Error())
	case errors.Is(err, domain.ErrTicketNotFound):
		writeError(w, http.StatusNotFound, codeTicketNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusForbidden, codeUnauthorized, domain.ErrUnauthorized.Error())
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case errors.Is(err, domain.ErrEventNotFound):
		writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
	case errors.Is(err, domain.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, codeOrderNotFound, err.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, codeUserNotFound, err.Error())
	case errors.Is(err, domain.ErrTitleRequired):
		writeError(w, http.StatusBadRequest, codeTitleRequired, err.Error())
	case errors.Is(err, domain.ErrInvalidEventDates):
		writeError(w, http.StatusBadRequest, codeInvalidEventDates, err.Error())
	case errors.Is(err, domain.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, codeInvalidAmount, err.Error())
	case errors.Is(err, domain.ErrDuplicateOrder):
		writeError(w, http.StatusConflict, codeDuplicateOrder, err.Error())
	case errors.Is(err, domain.ErrIdentityRequired):
		writeError(w, http.StatusUnauthorized, codeIdentityRequired, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "something went wrong, try again")
	}
}
