// Package icalfeed converts events to and from iCalendar (RFC 5545) data.
package icalfeed

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"

	"github.com/starford/dagaz/internal/calendar"
	"github.com/starford/dagaz/internal/models"
)

// ProductID identifies the generating application in exported feeds.
const ProductID = "-//dagaz//calendar//EN"

// Export writes events as a single VCALENDAR to w. All-day dates are taken
// in loc (time.Local when nil). stamp is used for every DTSTAMP so that
// identical inputs give identical output.
func Export(w io.Writer, events []models.Event, loc *time.Location, stamp time.Time) error {
	if loc == nil {
		loc = time.Local
	}
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, ProductID)

	for _, ev := range events {
		ve, err := toComponent(ev, loc, stamp)
		if err != nil {
			return err
		}
		cal.Children = append(cal.Children, ve)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("icalfeed: encode: %w", err)
	}
	return nil
}

// toComponent converts an Event into a VEVENT component.
func toComponent(ev models.Event, loc *time.Location, stamp time.Time) (*ical.Component, error) {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, ev.ID)
	ve.Props.SetText(ical.PropSummary, ev.Title)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())

	if ev.AllDay {
		start, end := allDayBounds(ev, loc)
		ve.Props.SetDate(ical.PropDateTimeStart, start)
		ve.Props.SetDate(ical.PropDateTimeEnd, end)
	} else {
		ve.Props.SetDateTime(ical.PropDateTimeStart, ev.Start.UTC())
		ve.Props.SetDateTime(ical.PropDateTimeEnd, ev.End.UTC())
	}

	if ev.Description != "" {
		ve.Props.SetText(ical.PropDescription, ev.Description)
	}
	if ev.Location != "" {
		ve.Props.SetText(ical.PropLocation, ev.Location)
	}
	if ev.Category != "" {
		ve.Props.SetText(ical.PropCategories, string(ev.Category))
	}
	for _, attendee := range ev.Attendees {
		p := ical.NewProp(ical.PropAttendee)
		p.SetText(fmt.Sprintf("mailto:%s", attendee))
		ve.Props.Add(p)
	}

	opt, err := ROption(ev.Recurrence)
	if err != nil {
		return nil, err
	}
	if opt != nil {
		ve.Props.SetRecurrenceRule(opt)
	}
	return ve, nil
}

// allDayBounds returns the first day and the exclusive end day of an all-day
// event. An end at exactly midnight does not reach that day.
func allDayBounds(ev models.Event, loc *time.Location) (start, end time.Time) {
	start = calendar.StartOfDay(ev.Start.In(loc))
	last := ev.End.In(loc)
	end = calendar.StartOfDay(last)
	if !end.Equal(last) || !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end
}
