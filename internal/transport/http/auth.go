package http

import (
	"net/http"

	"github.com/atpritam/Event-Flow/internal/auth"
)

// WithIdentity resolves the Authorization header into a viewer identity
// for downstream handlers. An absent header passes through as
// anonymous; a present-but-invalid one is rejected here so handlers
// never see a half-verified identity.
func WithIdentity(verifier *auth.Verifier, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := verifier.FromBearerHeader(r.Header.Get("Authorization"))
		if err != nil {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "not authorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
	})
}

// RequireIdentity rejects anonymous requests before the handler runs.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.IdentityFromContext(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, codeIdentityRequired, "identity required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
