package calendar

import (
	"time"

	"github.com/starford/dagaz/internal/models"
)

// Position is the vertical placement of an event inside a 24-hour column,
// as percentages of the column height.
type Position struct {
	OffsetPercent float64 `json:"offset_percent"`
	HeightPercent float64 `json:"height_percent"`
}

func percentOfDay(minutes int) float64 {
	return float64(minutes) / MinutesPerDay * 100
}

// DayPosition places ev in day's column. It returns false for all-day events
// (they render in their own row) and for events that do not touch day.
//
// On its start day an event runs from its start minute; on later days it is
// continued from midnight. The part past the column's midnight is clipped.
func DayPosition(ev models.Event, day time.Time) (Position, bool) {
	if ev.AllDay {
		return Position{}, false
	}
	dayStart := StartOfDay(day)
	dayEnd := dayStart.AddDate(0, 0, 1)
	start := ev.Start.In(day.Location())
	end := ev.End.In(day.Location())

	var from int
	switch {
	case SameDay(day, start):
		from = MinutesFromStartOfDay(start)
	case start.Before(dayStart) && end.After(dayStart):
		from = 0
	default:
		return Position{}, false
	}

	to := MinutesPerDay
	if end.Before(dayEnd) {
		to = MinutesFromStartOfDay(end)
	}
	if to < from {
		to = from
	}
	return Position{
		OffsetPercent: percentOfDay(from),
		HeightPercent: percentOfDay(to - from),
	}, true
}

// NowIndicator returns the position of the current-time line. Its height is
// always zero.
func (e *Engine) NowIndicator() Position {
	return Position{OffsetPercent: percentOfDay(MinutesFromStartOfDay(e.Now()))}
}
