package calendar

import (
	"fmt"
	"time"

	"github.com/starford/dagaz/internal/models"
)

// TimeLayout is the display format of hour labels and event times.
const TimeLayout = "3:04 PM"

// DayColumn is everything a day or week view needs to render one day.
type DayColumn struct {
	Date    time.Time      `json:"date"`
	IsToday bool           `json:"is_today"`
	AllDay  []models.Event `json:"all_day"`
	Timed   []Placement    `json:"timed"`
	// Now is set only on today's column.
	Now *Position `json:"now,omitempty"`
}

// DayColumn builds the column for day: all-day events in their own row and
// timed events placed vertically and partitioned horizontally.
func (e *Engine) DayColumn(day time.Time, events []models.Event) DayColumn {
	day = StartOfDay(day)
	allDay, timed := SplitAllDay(EventsOn(events, day))

	placed := make([]models.Event, 0, len(timed))
	positions := make(map[string]Position, len(timed))
	for _, ev := range timed {
		if pos, ok := DayPosition(ev, day); ok {
			placed = append(placed, ev)
			positions[ev.ID] = pos
		}
	}
	columns := PartitionColumns(placed)
	for i := range columns {
		columns[i].Position = positions[columns[i].Event.ID]
	}

	col := DayColumn{
		Date:    day,
		IsToday: e.IsToday(day),
		AllDay:  allDay,
		Timed:   columns,
	}
	if col.IsToday {
		now := e.NowIndicator()
		col.Now = &now
	}
	return col
}

// WeekColumns builds the seven day columns of the week containing ref.
func (e *Engine) WeekColumns(ref time.Time, events []models.Event) []DayColumn {
	days := e.WeekDays(ref)
	out := make([]DayColumn, len(days))
	for i, d := range days {
		out[i] = e.DayColumn(d, events)
	}
	return out
}

// Shift moves ref by n units of view: days, weeks, months or years.
func Shift(view models.View, ref time.Time, n int) time.Time {
	switch view {
	case models.ViewDay:
		return ref.AddDate(0, 0, n)
	case models.ViewWeek:
		return ref.AddDate(0, 0, 7*n)
	case models.ViewYear:
		return AddMonths(ref, 12*n)
	default:
		return AddMonths(ref, n)
	}
}

// Title returns the header text for view at ref.
func Title(view models.View, ref time.Time) string {
	switch view {
	case models.ViewDay:
		return ref.Format("Monday, January 2, 2006")
	case models.ViewWeek:
		return "Week of " + ref.Format("January 2, 2006")
	case models.ViewYear:
		return fmt.Sprintf("%d", ref.Year())
	default:
		return ref.Format("January 2006")
	}
}

// Title returns the header text for view at ref. Week titles name the first
// day of the week.
func (e *Engine) Title(view models.View, ref time.Time) string {
	if view == models.ViewWeek {
		ref = StartOfWeek(ref, e.weekStart)
	}
	return Title(view, ref)
}

// VisibleRange returns the half-open interval of time rendered by view at
// ref. The month range covers the padded six-week grid.
func (e *Engine) VisibleRange(view models.View, ref time.Time) (from, to time.Time) {
	switch view {
	case models.ViewDay:
		from = StartOfDay(ref)
		return from, from.AddDate(0, 0, 1)
	case models.ViewWeek:
		from = StartOfWeek(ref, e.weekStart)
		return from, from.AddDate(0, 0, 7)
	case models.ViewYear:
		from = time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, ref.Location())
		return from, from.AddDate(1, 0, 0)
	default:
		from = StartOfWeek(StartOfMonth(ref), e.weekStart)
		return from, from.AddDate(0, 0, GridCells)
	}
}
