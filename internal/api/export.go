package api

import (
	"bytes"
	"net/http"

	"github.com/starford/dagaz/internal/checksum"
	"github.com/starford/dagaz/internal/icalfeed"
)

// Export handles GET /api/calendar.ics.
//
//	@Summary		Export every event as an iCalendar feed
//	@Tags			export
//	@Produce		text/calendar
//	@Success		200	{string}	string	"VCALENDAR"
//	@Success		304	"Not modified"
//	@Security		BearerAuth
//	@Router			/calendar.ics [get]
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	events := h.svc.ListEvents(r.Context())

	// DTSTAMP is pinned to the day so the ETag only moves with the events.
	var buf bytes.Buffer
	if err := icalfeed.Export(&buf, events, h.svc.Engine().Location(), h.svc.Engine().Today()); err != nil {
		writeError(w, "export calendar", err)
		return
	}

	etag := checksum.ETag(buf.Bytes())
	if checksum.Matches(r.Header.Get("If-None-Match"), etag) {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="calendar.ics"`)
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
