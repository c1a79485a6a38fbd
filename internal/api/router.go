package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/starford/laguz/internal/journal"
	"github.com/starford/laguz/internal/sse"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// broker, if non-nil, receives entry change events and serves GET /events
// inside the auth group.
func NewRouter(svc *journal.Service, authEnabled bool, token string, broker *sse.Broker) chi.Router {
	h := NewHandler(svc, broker)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Entries CRUD.
	r.Get("/entries", h.ListEntries)
	r.Post("/entries", h.CreateEntry)
	r.Get("/entries/{id}", h.GetEntry)
	r.Put("/entries/{id}", h.UpdateEntry)
	r.Delete("/entries/{id}", h.DeleteEntry)

	// Search.
	r.Get("/search", h.Search)

	// Views.
	r.Get("/timeline", h.Timeline)
	r.Get("/insights", h.Insights)

	// SSE endpoint (protected by same auth middleware).
	if broker != nil {
		r.Get("/events", broker.ServeHTTP)
	}

	return r
}
