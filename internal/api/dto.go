package api

import (
	"time"

	"github.com/starford/dagaz/internal/calendar"
	"github.com/starford/dagaz/internal/models"
)

// EventRequest is the request body for creating or replacing an event.
// Start and end may be given as RFC 3339 timestamps or, form style, as a
// date plus start_time and end_time in the calendar's zone.
type EventRequest struct {
	Title       string             `json:"title" example:"Team Meeting" validate:"required"`
	Start       time.Time          `json:"start"`
	End         time.Time          `json:"end"`
	Date        string             `json:"date,omitempty" example:"2024-03-10"`
	StartTime   string             `json:"start_time,omitempty" example:"09:00"`
	EndTime     string             `json:"end_time,omitempty" example:"10:30"`
	AllDay      bool               `json:"all_day"`
	Location    string             `json:"location,omitempty" example:"Conference Room A"`
	Description string             `json:"description,omitempty" example:"Weekly team sync"`
	Category    models.Category    `json:"category,omitempty" example:"primary" enums:"primary,secondary,success,warning,danger,info"`
	Recurrence  *models.Recurrence `json:"recurrence,omitempty"`
	Attendees   []string           `json:"attendees,omitempty"`
}

// fields converts the request into event fields, resolving form-style
// date and time strings in loc.
func (req EventRequest) fields(loc *time.Location) (models.Fields, error) {
	f := models.Fields{
		Title:       req.Title,
		Start:       req.Start,
		End:         req.End,
		AllDay:      req.AllDay,
		Location:    req.Location,
		Description: req.Description,
		Category:    req.Category,
		Recurrence:  req.Recurrence,
		Attendees:   req.Attendees,
	}
	if req.Date == "" {
		return f, nil
	}
	startClock, endClock := req.StartTime, req.EndTime
	if startClock == "" {
		startClock = "00:00"
	}
	if endClock == "" {
		endClock = startClock
	}
	var err error
	if f.Start, err = calendar.ParseDateTime(req.Date, startClock, loc); err != nil {
		return f, err
	}
	if f.End, err = calendar.ParseDateTime(req.Date, endClock, loc); err != nil {
		return f, err
	}
	return f, nil
}

// EventListResponse wraps event listings.
type EventListResponse struct {
	Events []models.Event `json:"events" validate:"required"`
	Total  int            `json:"total" example:"5" validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []models.Event `json:"results" validate:"required"`
}

// PositionResponse places one event in a day column.
type PositionResponse struct {
	ID         string             `json:"id" validate:"required"`
	Day        string             `json:"day" example:"2024-03-10" validate:"required"`
	Applicable bool               `json:"applicable"`
	Position   *calendar.Position `json:"position,omitempty"`
}

// ViewRequest selects a view mode.
type ViewRequest struct {
	View string `json:"view" example:"week" enums:"day,week,month,year" validate:"required"`
}

// DateRequest moves the reference date.
type DateRequest struct {
	Date string `json:"date" example:"2024-03-10" validate:"required"`
}

// CategoryCountsResponse reports event counts per category.
type CategoryCountsResponse struct {
	Counts map[models.Category]int `json:"counts" validate:"required"`
}
