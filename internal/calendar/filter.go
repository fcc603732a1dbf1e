package calendar

import (
	"slices"
	"sort"
	"time"

	"github.com/starford/dagaz/internal/models"
)

// FilterByDay returns the events whose start falls on day's calendar day,
// regardless of time of day.
func FilterByDay(events []models.Event, day time.Time) []models.Event {
	out := make([]models.Event, 0)
	for _, ev := range events {
		if SameDay(day, ev.Start) {
			out = append(out, ev.Clone())
		}
	}
	return out
}

// EventsOn returns the events that start on day or whose span crosses into
// it. An event ending exactly at midnight does not reach the next day.
func EventsOn(events []models.Event, day time.Time) []models.Event {
	dayStart := StartOfDay(day)
	out := make([]models.Event, 0)
	for _, ev := range events {
		if SameDay(day, ev.Start) || (ev.Start.Before(dayStart) && ev.End.After(dayStart)) {
			out = append(out, ev.Clone())
		}
	}
	return out
}

// InRange returns the events intersecting [from, to), sorted by start. Events
// starting inside the window are included even when they have no duration.
func InRange(events []models.Event, from, to time.Time) []models.Event {
	out := make([]models.Event, 0)
	for _, ev := range events {
		startsInside := !ev.Start.Before(from) && ev.Start.Before(to)
		if startsInside || (ev.Start.Before(to) && ev.End.After(from)) {
			out = append(out, ev.Clone())
		}
	}
	return SortByTime(out)
}

// GroupByDate partitions events by the ISO date of their start in loc.
// Within a key the input order is preserved.
func GroupByDate(events []models.Event, loc *time.Location) map[string][]models.Event {
	out := make(map[string][]models.Event)
	for _, ev := range events {
		key := DateKey(ev.Start.In(loc))
		out[key] = append(out[key], ev.Clone())
	}
	return out
}

// SortedKeys returns the keys of a GroupByDate result in date order.
func SortedKeys(groups map[string][]models.Event) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CountByMonth counts the events starting in month's month and year.
func CountByMonth(events []models.Event, month time.Time) int {
	n := 0
	for _, ev := range events {
		if SameMonth(month, ev.Start) {
			n++
		}
	}
	return n
}

// SortByTime returns a copy of events ordered by start. Ties keep their
// input order.
func SortByTime(events []models.Event) []models.Event {
	out := make([]models.Event, len(events))
	for i, ev := range events {
		out[i] = ev.Clone()
	}
	slices.SortStableFunc(out, func(a, b models.Event) int {
		return a.Start.Compare(b.Start)
	})
	return out
}

// Upcoming returns at most limit events that start today or later, earliest
// first.
func Upcoming(events []models.Event, now time.Time, limit int) []models.Event {
	out := make([]models.Event, 0)
	for _, ev := range events {
		if SameDay(now, ev.Start) || now.Before(ev.Start) {
			out = append(out, ev)
		}
	}
	out = SortByTime(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SplitAllDay separates all-day events from timed ones, preserving order.
func SplitAllDay(events []models.Event) (allDay, timed []models.Event) {
	allDay = make([]models.Event, 0)
	timed = make([]models.Event, 0)
	for _, ev := range events {
		if ev.AllDay {
			allDay = append(allDay, ev)
		} else {
			timed = append(timed, ev)
		}
	}
	return allDay, timed
}
