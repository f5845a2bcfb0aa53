package http

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atpritam/Event-Flow/internal/app"
	"github.com/atpritam/Event-Flow/internal/auth"
	"github.com/atpritam/Event-Flow/internal/clock"
	"github.com/atpritam/Event-Flow/internal/metrics"
)

// Deps carries everything the HTTP surface is wired with.
type Deps struct {
	Tickets    *app.TicketService
	Redemption *app.RedemptionService
	Events     *app.EventService
	Orders     *app.OrderService
	Users      *app.UserService
	Prefs      app.PreferenceStore
	AutoRedeem *app.AutoRedeemPolicy

	Verifier *auth.Verifier
	Metrics  *metrics.Collector
	Clock    clock.Clock

	Logger        *log.Logger
	CORSOrigins   []string
	PublicBaseURL string
	RateLimit     *RateLimiter
}

// NewRouter assembles the full route table with the middleware chain:
// request logging, CORS, rate limiting, then identity resolution.
func NewRouter(d Deps) http.Handler {
	rec := metrics.Recorder(d.Metrics)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler { return RequestLogger(next, d.Logger) })
	r.Use(func(next http.Handler) http.Handler { return CORS(d.CORSOrigins, next) })
	if d.RateLimit != nil {
		r.Use(d.RateLimit.Middleware)
	}
	r.Use(func(next http.Handler) http.Handler { return WithIdentity(d.Verifier, next) })

	r.Get("/health", HealthHandler)
	r.Handle("/metrics", d.Metrics.Handler())

	// The scanner surface. ticket-info is the landing URL embedded in
	// the scannable code, so it lives outside the /api prefix.
	r.Post("/api/validate-ticket", HandleValidateTicket(d.Tickets, rec))
	r.Get("/ticket-info", HandleTicketInfo(d.Tickets, d.AutoRedeem, rec))

	r.Route("/api/events", func(r chi.Router) {
		r.Get("/", HandleListEvents(d.Events))
		r.Post("/", HandleCreateEvent(d.Events))
		r.Get("/{id}", HandleGetEvent(d.Events))
		r.Get("/{id}/orders", HandleListEventOrders(d.Orders))
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/", HandleCreateOrder(d.Orders))
		r.Get("/{id}", HandleGetOrder(d.Orders))
		r.Post("/{id}/redeem", HandleRedeem(d.Redemption, rec, d.Clock))
		r.Get("/{id}/ticket", HandleGetTicket(d.Orders, d.PublicBaseURL))
		r.Get("/{id}/ticket/qr", HandleTicketQR(d.Orders, d.PublicBaseURL))
	})

	r.Post("/api/users/sync", HandleSyncUser(d.Users))

	r.Route("/api/scanner/preferences", func(r chi.Router) {
		r.Use(RequireIdentity)
		r.Get("/", HandleGetPreferences(d.Prefs))
		r.Put("/", HandleUpdatePreferences(d.Prefs))
	})

	r.NotFound(NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	})

	return r
}
