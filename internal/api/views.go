package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/dagaz/internal/calendar"
	"github.com/starford/dagaz/internal/models"
	"github.com/starford/dagaz/internal/viewstate"
)

// View handles GET /api/views/{view}.
//
//	@Summary		Compute a calendar view for a reference date
//	@Tags			views
//	@Produce		json
//	@Param			view	path		string	true	"View mode"	Enums(day, week, month, year)
//	@Param			date	query		string	false	"Reference date (YYYY-MM-DD), default today"
//	@Success		200		{object}	eventservice.MonthView
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/views/{view} [get]
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	view, err := models.ParseView(chi.URLParam(r, "view"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	ref, err := h.parseDay(r, "date")
	if err != nil {
		writeError(w, "view", err)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.View(r.Context(), view, ref))
}

// CurrentView handles GET /api/view.
//
//	@Summary		Compute the view selected in the shared state
//	@Tags			views
//	@Produce		json
//	@Success		200	{object}	eventservice.MonthView
//	@Security		BearerAuth
//	@Router			/view [get]
func (h *Handler) CurrentView(w http.ResponseWriter, r *http.Request) {
	snap := h.state.Snapshot()
	writeJSON(w, http.StatusOK, h.svc.View(r.Context(), snap.View, snap.Date))
}

// State handles GET /api/state.
//
//	@Summary		Current view mode and reference date
//	@Tags			state
//	@Produce		json
//	@Success		200	{object}	viewstate.Snapshot
//	@Security		BearerAuth
//	@Router			/state [get]
func (h *Handler) State(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.state.Snapshot())
}

// SelectView handles PUT /api/state/view.
//
//	@Summary		Select the view mode
//	@Tags			state
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ViewRequest	true	"View mode"
//	@Success		200		{object}	viewstate.Snapshot
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/state/view [put]
func (h *Handler) SelectView(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req ViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	snap, err := h.state.Select(req.View)
	if err != nil {
		writeError(w, "select view", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// SetDate handles PUT /api/state/date.
//
//	@Summary		Set the reference date
//	@Tags			state
//	@Accept			json
//	@Produce		json
//	@Param			body	body		DateRequest	true	"Reference date"
//	@Success		200		{object}	viewstate.Snapshot
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/state/date [put]
func (h *Handler) SetDate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req DateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	date, err := calendar.ParseDate(req.Date, h.svc.Engine().Location())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, h.state.SetDate(date))
}

// Navigate handles POST /api/state/{direction}.
//
//	@Summary		Move the reference date by one view unit or back to today
//	@Tags			state
//	@Produce		json
//	@Param			direction	path		string	true	"Direction"	Enums(next, prev, today)
//	@Success		200			{object}	viewstate.Snapshot
//	@Failure		404			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/state/{direction} [post]
func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	var snap viewstate.Snapshot
	switch chi.URLParam(r, "direction") {
	case "next":
		snap = h.state.Next()
	case "prev":
		snap = h.state.Prev()
	case "today":
		snap = h.state.Today()
	default:
		writeJSON(w, http.StatusNotFound, errorBody("unknown direction"))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
