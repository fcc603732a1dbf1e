package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/calendar"
	"github.com/starford/dagaz/internal/eventservice"
	"github.com/starford/dagaz/internal/models"
	"github.com/starford/dagaz/internal/viewstate"
)

const maxBodyBytes = 1 << 20

// Handler holds API route handlers.
type Handler struct {
	svc   *eventservice.Service
	state *viewstate.State
}

// NewHandler creates a new Handler.
func NewHandler(svc *eventservice.Service, state *viewstate.State) *Handler {
	return &Handler{svc: svc, state: state}
}

// parseDay reads a YYYY-MM-DD query parameter in the calendar's zone,
// falling back to today when absent.
func (h *Handler) parseDay(r *http.Request, key string) (time.Time, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return h.svc.Engine().Today(), nil
	}
	t, err := calendar.ParseDate(s, h.svc.Engine().Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %w", apperr.ErrValidation, key, err)
	}
	return t, nil
}

func (h *Handler) decodeEvent(w http.ResponseWriter, r *http.Request) (models.Fields, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return models.Fields{}, false
	}
	f, err := req.fields(h.svc.Engine().Location())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return models.Fields{}, false
	}
	return f, true
}

// ListEvents handles GET /api/events.
//
//	@Summary		List events, optionally restricted to a date range
//	@Tags			events
//	@Produce		json
//	@Param			from	query		string	false	"First day (YYYY-MM-DD)"
//	@Param			to		query		string	false	"Day after the last (YYYY-MM-DD)"
//	@Success		200		{object}	EventListResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/events [get]
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var events []models.Event
	if q.Get("from") == "" && q.Get("to") == "" {
		events = h.svc.ListEvents(r.Context())
	} else {
		from, err := h.parseDay(r, "from")
		if err != nil {
			writeError(w, "list events", err)
			return
		}
		to := from.AddDate(0, 0, 1)
		if q.Get("to") != "" {
			if to, err = h.parseDay(r, "to"); err != nil {
				writeError(w, "list events", err)
				return
			}
		}
		if events, err = h.svc.EventsInRange(r.Context(), from, to); err != nil {
			writeError(w, "list events", err)
			return
		}
	}
	if events == nil {
		events = []models.Event{}
	}
	writeJSON(w, http.StatusOK, EventListResponse{Events: events, Total: len(events)})
}

// GetEvent handles GET /api/events/{id}.
//
//	@Summary		Get a single event
//	@Tags			events
//	@Produce		json
//	@Param			id	path		string	true	"Event identifier"
//	@Success		200	{object}	models.Event
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/events/{id} [get]
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ev, err := h.svc.GetEvent(r.Context(), id)
	if err != nil {
		writeError(w, "get event", err, slog.String("id", id))
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// CreateEvent handles POST /api/events.
//
//	@Summary		Create an event
//	@Tags			events
//	@Accept			json
//	@Produce		json
//	@Param			body	body		EventRequest	true	"Event to create"
//	@Success		201		{object}	models.Event
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/events [post]
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	f, ok := h.decodeEvent(w, r)
	if !ok {
		return
	}
	ev, err := h.svc.CreateEvent(r.Context(), f)
	if err != nil {
		writeError(w, "create event", err)
		return
	}
	w.Header().Set("Location", "/api/events/"+ev.ID)
	writeJSON(w, http.StatusCreated, ev)
}

// UpdateEvent handles PUT /api/events/{id}.
//
//	@Summary		Replace every editable field of an event
//	@Tags			events
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Event identifier"
//	@Param			body	body		EventRequest	true	"Replacement fields"
//	@Success		200		{object}	models.Event
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/events/{id} [put]
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	f, ok := h.decodeEvent(w, r)
	if !ok {
		return
	}
	ev, err := h.svc.UpdateEvent(r.Context(), id, f)
	if err != nil {
		writeError(w, "update event", err, slog.String("id", id))
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// DeleteEvent handles DELETE /api/events/{id}.
//
//	@Summary		Delete an event
//	@Tags			events
//	@Param			id	path	string	true	"Event identifier"
//	@Success		204	"Event deleted"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/events/{id} [delete]
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.DeleteEvent(r.Context(), id); err != nil {
		writeError(w, "delete event", err, slog.String("id", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EventPosition handles GET /api/events/{id}/position.
//
//	@Summary		Vertical placement of an event in a day column
//	@Tags			events
//	@Produce		json
//	@Param			id	path		string	true	"Event identifier"
//	@Param			day	query		string	false	"Day (YYYY-MM-DD), default today"
//	@Success		200	{object}	PositionResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/events/{id}/position [get]
func (h *Handler) EventPosition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	day, err := h.parseDay(r, "day")
	if err != nil {
		writeError(w, "event position", err)
		return
	}
	pos, ok, err := h.svc.DayPosition(r.Context(), id, day)
	if err != nil {
		writeError(w, "event position", err, slog.String("id", id))
		return
	}
	resp := PositionResponse{ID: id, Day: calendar.DateKey(day), Applicable: ok}
	if ok {
		resp.Position = &pos
	}
	writeJSON(w, http.StatusOK, resp)
}

// Draft handles GET /api/draft.
//
//	@Summary		Prefilled fields for a new event at a slot
//	@Tags			events
//	@Produce		json
//	@Param			date	query		string	false	"Day (YYYY-MM-DD), default today"
//	@Param			time	query		string	false	"Slot start (HH:MM)"
//	@Param			all_day	query		bool	false	"All-day draft"
//	@Success		200		{object}	models.Fields
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/draft [get]
func (h *Handler) Draft(w http.ResponseWriter, r *http.Request) {
	day, err := h.parseDay(r, "date")
	if err != nil {
		writeError(w, "draft", err)
		return
	}
	start := day
	if clock := r.URL.Query().Get("time"); clock != "" {
		start, err = calendar.ParseDateTime(calendar.DateKey(day), clock, h.svc.Engine().Location())
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
			return
		}
	}
	allDay, _ := strconv.ParseBool(r.URL.Query().Get("all_day"))
	writeJSON(w, http.StatusOK, h.svc.Draft(start, allDay))
}

// Search handles GET /api/search.
//
//	@Summary		Full-text search across event titles, descriptions and locations
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		writeError(w, "search", err, slog.String("query", q))
		return
	}
	if results == nil {
		results = []models.Event{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// Upcoming handles GET /api/upcoming.
//
//	@Summary		Events starting today or later
//	@Tags			events
//	@Produce		json
//	@Param			limit	query		int	false	"Max results, default 5"
//	@Success		200		{object}	EventListResponse
//	@Security		BearerAuth
//	@Router			/upcoming [get]
func (h *Handler) Upcoming(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	events := h.svc.Upcoming(r.Context(), limit)
	if events == nil {
		events = []models.Event{}
	}
	writeJSON(w, http.StatusOK, EventListResponse{Events: events, Total: len(events)})
}

// Categories handles GET /api/categories.
//
//	@Summary		Event counts per category
//	@Tags			events
//	@Produce		json
//	@Success		200	{object}	CategoryCountsResponse
//	@Security		BearerAuth
//	@Router			/categories [get]
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.CategoryCounts(r.Context())
	if err != nil {
		writeError(w, "category counts", err)
		return
	}
	writeJSON(w, http.StatusOK, CategoryCountsResponse{Counts: counts})
}
