package http

import (
	"encoding/json"
	"net/http"

	"github.com/atpritam/Event-Flow/internal/app"
	"github.com/atpritam/Event-Flow/internal/auth"
)

type preferencesResponse struct {
	AutoMark bool `json:"autoMark"`
}

type updatePreferencesRequest struct {
	AutoMark bool `json:"autoMark"`
}

// HandleGetPreferences returns the caller's scanner preferences. The
// route is mounted behind RequireIdentity, so the viewer is never nil.
func HandleGetPreferences(prefs app.PreferenceStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := auth.IdentityFromContext(r.Context())

		enabled, err := prefs.AutoMark(r.Context(), viewer.Subject)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, preferencesResponse{AutoMark: enabled})
	}
}

// HandleUpdatePreferences stores the caller's scanner preferences.
func HandleUpdatePreferences(prefs app.PreferenceStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := auth.IdentityFromContext(r.Context())

		var req updatePreferencesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		if err := prefs.SetAutoMark(r.Context(), viewer.Subject, req.AutoMark); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, preferencesResponse{AutoMark: req.AutoMark})
	}
}
