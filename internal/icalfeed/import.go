package icalfeed

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	goical "github.com/arran4/golang-ical"

	"github.com/starford/dagaz/internal/models"
)

// Import parses a VCALENDAR and returns the field sets of its VEVENTs.
// Dates and floating times are read as wall clock in loc; a nil loc means
// time.Local. Events without a summary or start are skipped and reported in
// skipped. Recurrence rules are carried over but not expanded.
func Import(r io.Reader, loc *time.Location) (fields []models.Fields, skipped int, err error) {
	if loc == nil {
		loc = time.Local
	}
	cal, err := goical.ParseCalendar(r)
	if err != nil {
		return nil, 0, fmt.Errorf("icalfeed: parse: %w", err)
	}

	for _, ve := range cal.Events() {
		f, perr := fromVEvent(ve, loc)
		if perr != nil {
			skipped++
			continue
		}
		fields = append(fields, f)
	}
	return fields, skipped, nil
}

func fromVEvent(ve *goical.VEvent, loc *time.Location) (models.Fields, error) {
	var f models.Fields

	p := ve.GetProperty(goical.ComponentPropertySummary)
	if p == nil || strings.TrimSpace(p.Value) == "" {
		return f, errors.New("missing SUMMARY")
	}
	f.Title = strings.TrimSpace(p.Value)

	if p := ve.GetProperty(goical.ComponentPropertyDescription); p != nil {
		f.Description = p.Value
	}
	if p := ve.GetProperty(goical.ComponentPropertyLocation); p != nil {
		f.Location = p.Value
	}

	dtStart := ve.GetProperty(goical.ComponentPropertyDtStart)
	if dtStart == nil {
		return f, errors.New("missing DTSTART")
	}
	f.AllDay = isDateValue(dtStart)

	start, err := ve.GetStartAt()
	if err != nil {
		return f, fmt.Errorf("DTSTART: %w", err)
	}
	if isFloating(dtStart) {
		start = wallClock(start, loc)
	}
	end, err := ve.GetEndAt()
	switch {
	case err != nil:
		end = start
		if f.AllDay {
			end = start.AddDate(0, 0, 1)
		}
	case isFloating(ve.GetProperty(goical.ComponentPropertyDtEnd)):
		end = wallClock(end, loc)
	}
	if f.AllDay {
		start = localDate(start, loc)
		// Stored all-day events end inside their last day.
		end = localDate(end, loc).Add(-time.Second)
	} else {
		start = start.In(loc)
		end = end.In(loc)
	}
	if end.Before(start) {
		end = start
	}
	f.Start, f.End = start, end

	f.Category = models.CategoryPrimary
	if p := ve.GetProperty(goical.ComponentPropertyCategories); p != nil {
		for _, c := range strings.Split(p.Value, ",") {
			if cat := models.Category(strings.ToLower(strings.TrimSpace(c))); cat.Valid() {
				f.Category = cat
				break
			}
		}
	}

	for _, p := range ve.GetProperties(goical.ComponentPropertyAttendee) {
		a := strings.TrimPrefix(p.Value, "mailto:")
		a = strings.TrimPrefix(a, "MAILTO:")
		if a != "" {
			f.Attendees = append(f.Attendees, a)
		}
	}

	if p := ve.GetProperty(goical.ComponentPropertyRrule); p != nil && p.Value != "" {
		rec, err := ParseRRule(p.Value, loc)
		if err != nil {
			return f, err
		}
		f.Recurrence = rec
	}
	return f, nil
}

// isDateValue reports whether prop is date-valued: VALUE=DATE or no time part.
func isDateValue(prop *goical.IANAProperty) bool {
	if vs, ok := prop.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(prop.Value, "T")
}

// isFloating reports whether prop carries neither a UTC marker nor a TZID,
// so its wall clock belongs to the calendar's own zone.
func isFloating(prop *goical.IANAProperty) bool {
	if prop == nil {
		return false
	}
	if _, ok := prop.ICalParameters["TZID"]; ok {
		return false
	}
	return !strings.HasSuffix(strings.ToUpper(prop.Value), "Z")
}

// wallClock keeps t's calendar fields and reinterprets them in loc.
func wallClock(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

// localDate is the midnight in loc of t's own calendar date.
func localDate(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
