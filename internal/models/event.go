// Package models defines the domain types for Dagaz.
package models

import (
	"errors"
	"fmt"
	"slices"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Category is a color-coding tag. It carries no behavior.
type Category string

const (
	CategoryPrimary   Category = "primary"
	CategorySecondary Category = "secondary"
	CategorySuccess   Category = "success"
	CategoryWarning   Category = "warning"
	CategoryDanger    Category = "danger"
	CategoryInfo      Category = "info"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryPrimary,
	CategorySecondary,
	CategorySuccess,
	CategoryWarning,
	CategoryDanger,
	CategoryInfo,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

// RecurrenceType is the frequency of a recurrence rule.
type RecurrenceType string

const (
	RecurDaily   RecurrenceType = "daily"
	RecurWeekly  RecurrenceType = "weekly"
	RecurMonthly RecurrenceType = "monthly"
	RecurYearly  RecurrenceType = "yearly"
)

// Recurrence is stored with an event but never expanded into occurrences.
type Recurrence struct {
	Type     RecurrenceType `json:"type" yaml:"type"`
	Interval int            `json:"interval" yaml:"interval"`
	EndDate  *time.Time     `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	Count    *int           `json:"count,omitempty" yaml:"count,omitempty"`
}

// Validate validates the recurrence rule.
func (r Recurrence) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Type, validation.Required, validation.In(RecurDaily, RecurWeekly, RecurMonthly, RecurYearly)),
		validation.Field(&r.Interval, validation.Required, validation.Min(1)),
		validation.Field(&r.Count, validation.Min(0)),
	)
}

func (r *Recurrence) clone() *Recurrence {
	if r == nil {
		return nil
	}
	out := *r
	if r.EndDate != nil {
		d := *r.EndDate
		out.EndDate = &d
	}
	if r.Count != nil {
		n := *r.Count
		out.Count = &n
	}
	return &out
}

// Fields holds the editable part of an Event. Updates replace all of them.
type Fields struct {
	Title       string      `json:"title" yaml:"title"`
	Start       time.Time   `json:"start" yaml:"start"`
	End         time.Time   `json:"end" yaml:"end"`
	AllDay      bool        `json:"all_day" yaml:"all_day"`
	Location    string      `json:"location,omitempty" yaml:"location,omitempty"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Category    Category    `json:"category" yaml:"category"`
	Recurrence  *Recurrence `json:"recurrence,omitempty" yaml:"recurrence,omitempty"`
	Attendees   []string    `json:"attendees,omitempty" yaml:"attendees,omitempty"`
}

// ErrEndBeforeStart is reported when an event would end before it starts.
var ErrEndBeforeStart = errors.New("must not be before start")

// Validate checks required fields, the category enumeration, the time range
// and the recurrence rule. Title must already be trimmed by the caller.
func (f Fields) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required.Error("title is required"), validation.Length(1, 200)),
		validation.Field(&f.Start, validation.Required),
		validation.Field(&f.End, validation.Required, validation.By(notBefore(f.Start))),
		validation.Field(&f.Category, validation.Required, validation.In(categoriesAny()...)),
		validation.Field(&f.Recurrence),
	)
}

func notBefore(start time.Time) validation.RuleFunc {
	return func(value any) error {
		end, ok := value.(time.Time)
		if !ok {
			return fmt.Errorf("unexpected type %T", value)
		}
		if end.Before(start) {
			return ErrEndBeforeStart
		}
		return nil
	}
}

func categoriesAny() []any {
	out := make([]any, len(Categories))
	for i, c := range Categories {
		out[i] = c
	}
	return out
}

// Clone returns a deep copy of f.
func (f Fields) Clone() Fields {
	out := f
	out.Recurrence = f.Recurrence.clone()
	if f.Attendees != nil {
		out.Attendees = slices.Clone(f.Attendees)
	}
	return out
}

// Event is one calendar entry.
type Event struct {
	ID string `json:"id"`
	Fields
}

// NewEvent builds an Event from an identifier and a copy of f.
func NewEvent(id string, f Fields) Event {
	return Event{ID: id, Fields: f.Clone()}
}

// Clone returns a deep copy of e. Views only ever receive clones.
func (e Event) Clone() Event {
	return Event{ID: e.ID, Fields: e.Fields.Clone()}
}

// Duration returns the length of the event.
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// View is a rendering mode of the calendar.
type View string

const (
	ViewDay   View = "day"
	ViewWeek  View = "week"
	ViewMonth View = "month"
	ViewYear  View = "year"
)

// ParseView converts s into a View.
func ParseView(s string) (View, error) {
	switch v := View(s); v {
	case ViewDay, ViewWeek, ViewMonth, ViewYear:
		return v, nil
	}
	return "", fmt.Errorf("unknown view %q", s)
}

// CalendarDay is one cell of a month grid.
type CalendarDay struct {
	Date           time.Time `json:"date"`
	IsCurrentMonth bool      `json:"is_current_month"`
	IsToday        bool      `json:"is_today"`
	Events         []Event   `json:"events"`
}
