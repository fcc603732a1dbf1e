package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/dagaz/internal/eventservice"
	"github.com/starford/dagaz/internal/viewstate"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /stream inside the auth group.
func NewRouter(svc *eventservice.Service, state *viewstate.State, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc, state)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Events CRUD.
	r.Get("/events", h.ListEvents)
	r.Post("/events", h.CreateEvent)
	r.Get("/events/{id}", h.GetEvent)
	r.Put("/events/{id}", h.UpdateEvent)
	r.Delete("/events/{id}", h.DeleteEvent)
	r.Get("/events/{id}/position", h.EventPosition)

	// Queries.
	r.Get("/search", h.Search)
	r.Get("/upcoming", h.Upcoming)
	r.Get("/categories", h.Categories)
	r.Get("/draft", h.Draft)

	// Projections.
	r.Get("/views/{view}", h.View)
	r.Get("/view", h.CurrentView)

	// Shared view state.
	r.Get("/state", h.State)
	r.Put("/state/view", h.SelectView)
	r.Put("/state/date", h.SetDate)
	r.Post("/state/{direction}", h.Navigate)

	// iCalendar export.
	r.Get("/calendar.ics", h.Export)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/stream", sseHandler.ServeHTTP)
	}

	return r
}
