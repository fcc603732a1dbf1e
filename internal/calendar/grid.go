package calendar

import (
	"time"

	"github.com/starford/dagaz/internal/models"
)

// Month grids are always six full weeks.
const (
	GridWeeks = 6
	GridCells = GridWeeks * 7
)

// MonthGrid returns the 42 cells of the month containing ref. The first cell
// is the week start on or before the first of the month. Each cell carries the
// events whose span covers that day.
func (e *Engine) MonthGrid(ref time.Time, events []models.Event) []models.CalendarDay {
	start := StartOfWeek(StartOfMonth(ref), e.weekStart)
	days := make([]models.CalendarDay, GridCells)
	for i := range days {
		d := start.AddDate(0, 0, i)
		days[i] = models.CalendarDay{
			Date:           d,
			IsCurrentMonth: SameMonth(ref, d),
			IsToday:        e.IsToday(d),
			Events:         EventsOn(events, d),
		}
	}
	return days
}

// WeekDays returns the seven midnights of the week containing ref.
func (e *Engine) WeekDays(ref time.Time) []time.Time {
	start := StartOfWeek(ref, e.weekStart)
	out := make([]time.Time, 7)
	for i := range out {
		out[i] = start.AddDate(0, 0, i)
	}
	return out
}

// WeekdayNames returns weekday names in display order, either full
// ("Sunday") or abbreviated ("Sun").
func (e *Engine) WeekdayNames(short bool) []string {
	out := make([]string, 7)
	for i := range out {
		name := time.Weekday((int(e.weekStart) + i) % 7).String()
		if short {
			name = name[:3]
		}
		out[i] = name
	}
	return out
}

// MonthSummary is one tile of the year view.
type MonthSummary struct {
	Month          time.Time `json:"month"`
	Name           string    `json:"name"`
	EventCount     int       `json:"event_count"`
	IsCurrentMonth bool      `json:"is_current_month"`
}

// YearMonths returns the twelve months of ref's year with event counts.
// IsCurrentMonth is measured against the wall clock, not ref.
func (e *Engine) YearMonths(ref time.Time, events []models.Event) []MonthSummary {
	now := e.now()
	out := make([]MonthSummary, 12)
	for i := range out {
		m := time.Date(ref.Year(), time.January+time.Month(i), 1, 0, 0, 0, 0, ref.Location())
		out[i] = MonthSummary{
			Month:          m,
			Name:           m.Month().String(),
			EventCount:     CountByMonth(events, m),
			IsCurrentMonth: SameMonth(m, now),
		}
	}
	return out
}

// HourLabels returns the 24 hour labels of a day column ("12:00 AM" ...).
func HourLabels() []string {
	base := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	out := make([]string, 24)
	for h := range out {
		out[h] = base.Add(time.Duration(h) * time.Hour).Format(TimeLayout)
	}
	return out
}

// TimeSlots returns slot start times on day's date from startHour up to (not
// including) endHour, every intervalMinutes. Out of range arguments are
// clamped to a full day of hourly slots.
func TimeSlots(day time.Time, startHour, endHour, intervalMinutes int) []time.Time {
	if startHour < 0 {
		startHour = 0
	}
	if endHour > 24 || endHour <= startHour {
		endHour = 24
	}
	if intervalMinutes <= 0 || intervalMinutes > 60 {
		intervalMinutes = 60
	}
	base := StartOfDay(day)
	var out []time.Time
	for h := startHour; h < endHour; h++ {
		for m := 0; m < 60; m += intervalMinutes {
			out = append(out, time.Date(base.Year(), base.Month(), base.Day(), h, m, 0, 0, base.Location()))
		}
	}
	return out
}
